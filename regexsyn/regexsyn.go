// Package regexsyn implements the shunting-yard regex parser: it turns a
// regex source string into an NFA fragment over charset.CharClass edges,
// following the bit-exact regex syntax and reduction rules of the core
// specification (concatenation implicit, alternation `|`, postfix `* + ?`,
// grouping, and `[...]` character classes).
package regexsyn

import (
	"github.com/dekarrin/weir/charset"
	"github.com/dekarrin/weir/fa"
	"github.com/dekarrin/weir/internal/errs"
)

type operator int

const (
	opUnion operator = iota
	opConcat
	opLeftParen
)

func precedence(op operator) int {
	switch op {
	case opUnion:
		return 0
	case opConcat:
		return 1
	default:
		return -1
	}
}

// Parse compiles expr into a single NFA fragment. The returned automaton's
// initial state is non-accepting, except for the empty expression, whose
// single state is both initial and accepting; its final states are exactly
// the states reachable that accept the expression.
func Parse(expr string) (*fa.NFA[charset.CharClass], error) {
	p := &parser{runes: []rune(expr)}
	return p.run()
}

type parser struct {
	runes []rune
	pos   int

	valueStack []*fa.NFA[charset.CharClass]
	opStack    []operator

	insertConcat bool
}

func (p *parser) run() (*fa.NFA[charset.CharClass], error) {
	if len(p.runes) == 0 {
		p.valueStack = append(p.valueStack, emptyFragment())
		return p.valueStack[0], nil
	}

	for p.pos < len(p.runes) {
		c := p.runes[p.pos]

		switch c {
		case '|':
			if err := p.reduceWhile(opUnion); err != nil {
				return nil, err
			}
			p.opStack = append(p.opStack, opUnion)
			p.insertConcat = false
			p.pos++

		case '(':
			if p.insertConcat {
				if err := p.pushConcat(); err != nil {
					return nil, err
				}
			}
			p.opStack = append(p.opStack, opLeftParen)
			p.insertConcat = false
			p.pos++

		case ')':
			if err := p.reduceUntilLeftParen(); err != nil {
				return nil, err
			}
			p.insertConcat = true
			p.pos++

		case '*', '+', '?':
			if err := p.applyPostfix(c); err != nil {
				return nil, err
			}
			p.insertConcat = true
			p.pos++

		case '[':
			cls, negate, newPos, err := p.parseClass(p.pos)
			if err != nil {
				return nil, err
			}
			if negate {
				cls = cls.Complement()
			}
			p.pos = newPos
			if err := p.shiftAtom(classFragment(cls)); err != nil {
				return nil, err
			}

		case '.':
			if err := p.shiftAtom(classFragment(charset.AllButNewline())); err != nil {
				return nil, err
			}
			p.pos++

		case '\\':
			cls, isLiteralChar, litChar, newPos, err := p.parseEscape(p.pos)
			if err != nil {
				return nil, err
			}
			p.pos = newPos
			if isLiteralChar {
				if err := p.shiftAtom(classFragment(charset.Single(litChar))); err != nil {
					return nil, err
				}
			} else {
				if err := p.shiftAtom(classFragment(cls)); err != nil {
					return nil, err
				}
			}

		default:
			if err := p.shiftAtom(classFragment(charset.Single(c))); err != nil {
				return nil, err
			}
			p.pos++
		}
	}

	for len(p.opStack) > 0 {
		top := p.opStack[len(p.opStack)-1]
		if top == opLeftParen {
			return nil, errs.NewParseError(errs.UnbalancedParentheses, p.pos, "unmatched '('")
		}
		if err := p.reduceOnce(); err != nil {
			return nil, err
		}
	}

	if len(p.valueStack) != 1 {
		return nil, errs.NewParseError(errs.UnbalancedOperators, p.pos, "leftover operands after reduction")
	}

	return p.valueStack[0], nil
}

func (p *parser) shiftAtom(frag *fa.NFA[charset.CharClass]) error {
	if p.insertConcat {
		if err := p.pushConcat(); err != nil {
			return err
		}
	}
	p.valueStack = append(p.valueStack, frag)
	p.insertConcat = true
	return nil
}

func (p *parser) pushConcat() error {
	if err := p.reduceWhile(opConcat); err != nil {
		return err
	}
	p.opStack = append(p.opStack, opConcat)
	return nil
}

// reduceWhile pops and reduces operators whose precedence is >= that of op,
// stopping at a left-parenthesis barrier, then pushes nothing itself; the
// caller pushes op after calling this.
func (p *parser) reduceWhile(op operator) error {
	for len(p.opStack) > 0 {
		top := p.opStack[len(p.opStack)-1]
		if top == opLeftParen {
			break
		}
		if precedence(top) < precedence(op) {
			break
		}
		if err := p.reduceOnce(); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) reduceUntilLeftParen() error {
	for {
		if len(p.opStack) == 0 {
			return errs.NewParseError(errs.UnbalancedParentheses, p.pos, "unmatched ')'")
		}
		top := p.opStack[len(p.opStack)-1]
		if top == opLeftParen {
			p.opStack = p.opStack[:len(p.opStack)-1]
			return nil
		}
		if err := p.reduceOnce(); err != nil {
			return err
		}
	}
}

func (p *parser) reduceOnce() error {
	if len(p.opStack) == 0 {
		return errs.NewParseError(errs.UnbalancedOperators, p.pos, "operator stack exhausted")
	}
	op := p.opStack[len(p.opStack)-1]
	p.opStack = p.opStack[:len(p.opStack)-1]

	if len(p.valueStack) < 2 {
		return errs.NewParseError(errs.UnbalancedOperators, p.pos, "insufficient operands")
	}
	b := p.valueStack[len(p.valueStack)-1]
	a := p.valueStack[len(p.valueStack)-2]
	p.valueStack = p.valueStack[:len(p.valueStack)-2]

	var result *fa.NFA[charset.CharClass]
	switch op {
	case opUnion:
		result = union(a, b)
	case opConcat:
		result = concat(a, b)
	default:
		return errs.NewParseError(errs.UnbalancedOperators, p.pos, "unexpected operator on stack")
	}
	p.valueStack = append(p.valueStack, result)
	return nil
}

func (p *parser) applyPostfix(op rune) error {
	if len(p.valueStack) < 1 {
		return errs.NewParseError(errs.UnbalancedOperators, p.pos, "postfix operator with no operand")
	}
	a := p.valueStack[len(p.valueStack)-1]
	p.valueStack = p.valueStack[:len(p.valueStack)-1]

	var result *fa.NFA[charset.CharClass]
	switch op {
	case '*':
		result = star(a)
	case '+':
		result = plus(a)
	case '?':
		result = optional(a)
	}
	p.valueStack = append(p.valueStack, result)
	return nil
}

// parseEscape parses a backslash escape starting at pos (which must index
// the '\'). It returns either a predefined CharClass (isLiteralChar=false)
// or a single literal rune (isLiteralChar=true), plus the position just
// past the escape sequence.
func (p *parser) parseEscape(pos int) (cls charset.CharClass, isLiteralChar bool, litChar rune, newPos int, err error) {
	if pos+1 >= len(p.runes) {
		return charset.CharClass{}, false, 0, pos, errs.NewParseError(errs.UnbalancedOperators, pos, "trailing backslash")
	}
	e := p.runes[pos+1]
	switch e {
	case 'd':
		return charset.DecimalNumber(), false, 0, pos + 2, nil
	case 'D':
		return charset.DecimalNumber().Complement(), false, 0, pos + 2, nil
	case 'w':
		return charset.Word(), false, 0, pos + 2, nil
	case 'W':
		return charset.Word().Complement(), false, 0, pos + 2, nil
	case 's':
		return charset.Whitespace(), false, 0, pos + 2, nil
	case 'S':
		return charset.Whitespace().Complement(), false, 0, pos + 2, nil
	case 'n':
		return charset.CharClass{}, true, '\n', pos + 2, nil
	default:
		return charset.CharClass{}, true, e, pos + 2, nil
	}
}

func emptyFragment() *fa.NFA[charset.CharClass] {
	n := fa.New[charset.CharClass]()
	n.SetFinal(n.Initial())
	return n
}

func classFragment(cls charset.CharClass) *fa.NFA[charset.CharClass] {
	n := fa.New[charset.CharClass]()
	f := n.AddState()
	n.AddTransition(n.Initial(), cls, f)
	n.SetFinal(f)
	return n
}

func concat(a, b *fa.NFA[charset.CharClass]) *fa.NFA[charset.CharClass] {
	aFinals := a.FinalStates()
	_, bInit := a.Join(b)
	for _, f := range aFinals {
		a.ClearFinal(f)
		a.AddEpsilon(f, bInit)
	}
	return a
}

func union(a, b *fa.NFA[charset.CharClass]) *fa.NFA[charset.CharClass] {
	h := fa.New[charset.CharClass]()
	_, aInit := h.Join(a)
	_, bInit := h.Join(b)
	h.AddEpsilon(h.Initial(), aInit)
	h.AddEpsilon(h.Initial(), bInit)

	f := h.AddState()
	for _, s := range h.FinalStates() {
		h.ClearFinal(s)
		h.AddEpsilon(s, f)
	}
	h.SetFinal(f)
	return h
}

func star(a *fa.NFA[charset.CharClass]) *fa.NFA[charset.CharClass] {
	h := fa.New[charset.CharClass]()
	_, aInit := h.Join(a)
	f := h.AddState()

	h.AddEpsilon(h.Initial(), aInit)
	h.AddEpsilon(h.Initial(), f)
	for _, s := range h.FinalStates() {
		h.ClearFinal(s)
		h.AddEpsilon(s, aInit)
		h.AddEpsilon(s, f)
	}
	h.SetFinal(f)
	return h
}

func plus(a *fa.NFA[charset.CharClass]) *fa.NFA[charset.CharClass] {
	h := fa.New[charset.CharClass]()
	_, aInit := h.Join(a)
	f := h.AddState()

	h.AddEpsilon(h.Initial(), aInit)
	for _, s := range h.FinalStates() {
		h.ClearFinal(s)
		h.AddEpsilon(s, aInit)
		h.AddEpsilon(s, f)
	}
	h.SetFinal(f)
	return h
}

func optional(a *fa.NFA[charset.CharClass]) *fa.NFA[charset.CharClass] {
	return union(a, emptyFragment())
}
