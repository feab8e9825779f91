package regexsyn

import (
	"github.com/dekarrin/weir/charset"
	"github.com/dekarrin/weir/internal/errs"
)

// rangeBufState is the three-slot tagged buffer the class sub-lexer uses to
// accumulate a single character or an a-b range before folding it into the
// class being built, kept distinct from the top-level parser state so its
// flags don't interact with the shunting-yard stacks.
type rangeBufState int

const (
	rbEmpty rangeBufState = iota
	rbOne
	rbDash
)

type rangeBuf struct {
	state rangeBufState
	first rune
}

// parseClass parses a `[...]` character class starting at pos (index of the
// '['), returning the accumulated (unnegated) class, whether a leading '^'
// was present, and the position just past the closing ']'.
func (p *parser) parseClass(pos int) (cls charset.CharClass, negate bool, newPos int, err error) {
	i := pos + 1
	if i < len(p.runes) && p.runes[i] == '^' {
		negate = true
		i++
	}

	classBuf := charset.Empty()
	buf := rangeBuf{}

	flush := func() {
		switch buf.state {
		case rbOne:
			classBuf = classBuf.Union(charset.Single(buf.first))
		case rbDash:
			// a trailing, unfinished '-' is treated as two literals
			classBuf = classBuf.Union(charset.Single(buf.first)).Union(charset.Single('-'))
		}
		buf = rangeBuf{}
	}

	appendChar := func(c rune) {
		switch buf.state {
		case rbEmpty:
			buf = rangeBuf{state: rbOne, first: c}
		case rbOne:
			if c == '-' {
				buf.state = rbDash
			} else {
				flush()
				buf = rangeBuf{state: rbOne, first: c}
			}
		case rbDash:
			lo, hi := buf.first, c
			if hi < lo {
				lo, hi = hi, lo
			}
			classBuf = classBuf.Union(charset.FromRange(lo, hi))
			buf = rangeBuf{}
		}
	}

	for {
		if i >= len(p.runes) {
			flush()
			if classBuf.Empty() {
				return charset.CharClass{}, false, i, errs.NewParseError(errs.EmptyCharacterClass, pos, "unterminated character class")
			}
			return classBuf, negate, i, nil
		}

		c := p.runes[i]

		if c == ']' {
			flush()
			if classBuf.Empty() {
				return charset.CharClass{}, false, i + 1, errs.NewParseError(errs.EmptyCharacterClass, pos, "")
			}
			return classBuf, negate, i + 1, nil
		}

		if c == '\\' {
			if i+1 >= len(p.runes) {
				flush()
				appendChar('\\')
				i++
				continue
			}
			e := p.runes[i+1]
			switch e {
			case 'd':
				flush()
				classBuf = classBuf.Union(charset.DecimalNumber())
			case 'D':
				flush()
				classBuf = classBuf.Union(charset.DecimalNumber().Complement())
			case 'w':
				flush()
				classBuf = classBuf.Union(charset.Word())
			case 'W':
				flush()
				classBuf = classBuf.Union(charset.Word().Complement())
			case 's':
				flush()
				classBuf = classBuf.Union(charset.Whitespace())
			case 'S':
				flush()
				classBuf = classBuf.Union(charset.Whitespace().Complement())
			case 'n':
				appendChar('\n')
			default:
				appendChar(e)
			}
			i += 2
			continue
		}

		appendChar(c)
		i++
	}
}
