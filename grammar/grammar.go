// Package grammar implements the context-free grammar model consumed by
// the LR table generators: productions, start symbol, terminal/nonterminal
// distinction, grammar augmentation, and FIRST/FOLLOW fixed-point
// computation.
package grammar

import (
	"strings"

	"github.com/dekarrin/weir/internal/errs"
)

// Endmarker is the distinguished input-terminated terminal, written $ in the
// purple dragon book and in this package's rendered tables.
const Endmarker = "$"

// augmentedStartSuffix names the extra production S' -> S added by
// Augmented; it is appended to the original start symbol's name to produce
// a fresh nonterminal guaranteed not to collide with a real grammar symbol.
const augmentedStartSuffix = "-P"

// Production is a production body: an ordered sequence of terminal and
// nonterminal symbols, referenced by name. Which symbols are terminals is
// determined by the owning Grammar's AddTerm calls, not by anything
// intrinsic to the Production value.
type Production []string

func (p Production) String() string {
	if len(p) == 0 {
		return "ε"
	}
	return strings.Join(p, " ")
}

// Equal reports whether p and o have the same symbols in the same order.
func (p Production) Equal(o Production) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// Rule is one nonterminal's ordered list of alternative productions.
type Rule struct {
	NonTerminal string
	Productions []Production
}

// Grammar is a start symbol plus a mapping from nonterminal to its Rule.
// Terminals are tracked separately so that a symbol's terminal/nonterminal
// status is a property of the Grammar, matching the Grammar<T,N,A> data
// model: any symbol used in a body is a terminal iff it was registered with
// AddTerm, and a nonterminal iff some Rule has it as a head.
type Grammar struct {
	start     string
	rules     map[string]*Rule
	ruleOrder []string
	terms     map[string]bool
	termOrder []string
}

// New returns an empty Grammar with the given start symbol. The start
// symbol's productions are added via AddRule.
func New(start string) *Grammar {
	return &Grammar{
		start: start,
		rules: map[string]*Rule{},
		terms: map[string]bool{},
	}
}

// AddTerm registers id as a terminal symbol.
func (g *Grammar) AddTerm(id string) {
	if !g.terms[id] {
		g.terms[id] = true
		g.termOrder = append(g.termOrder, id)
	}
}

// AddRule appends one production to head's rule, creating the rule if this
// is the first production seen for head.
func (g *Grammar) AddRule(head string, body ...string) {
	r, ok := g.rules[head]
	if !ok {
		r = &Rule{NonTerminal: head}
		g.rules[head] = r
		g.ruleOrder = append(g.ruleOrder, head)
	}
	prod := make(Production, len(body))
	copy(prod, body)
	r.Productions = append(r.Productions, prod)
}

// StartSymbol returns the grammar's start nonterminal.
func (g *Grammar) StartSymbol() string { return g.start }

// IsTerminal reports whether sym was registered via AddTerm.
func (g *Grammar) IsTerminal(sym string) bool { return g.terms[sym] }

// IsNonterminal reports whether sym is the head of some rule.
func (g *Grammar) IsNonterminal(sym string) bool {
	_, ok := g.rules[sym]
	return ok
}

// Rule returns the Rule for head, or nil if head has no productions.
func (g *Grammar) Rule(head string) *Rule { return g.rules[head] }

// NonTerminals returns every nonterminal in first-added order.
func (g *Grammar) NonTerminals() []string {
	out := make([]string, len(g.ruleOrder))
	copy(out, g.ruleOrder)
	return out
}

// Terminals returns every terminal in first-added order.
func (g *Grammar) Terminals() []string {
	out := make([]string, len(g.termOrder))
	copy(out, g.termOrder)
	return out
}

// Validate checks that the start symbol has at least one production and
// that every nonterminal-looking symbol referenced in any production body
// (i.e. not registered as a terminal) is itself the head of some rule.
func (g *Grammar) Validate() error {
	if r, ok := g.rules[g.start]; !ok || len(r.Productions) == 0 {
		return errs.NewUndefinedNonterminalError(g.start)
	}

	for _, head := range g.ruleOrder {
		for _, prod := range g.rules[head].Productions {
			for _, sym := range prod {
				if g.terms[sym] {
					continue
				}
				if _, ok := g.rules[sym]; !ok {
					return errs.NewUndefinedNonterminalError(sym)
				}
			}
		}
	}
	return nil
}

// Augmented returns a new grammar identical to g but with a fresh start
// symbol S' and a single production S' -> S, as required by LR(0)/SLR/LR(1)
// construction. Calling Augmented on an already-augmented grammar is safe
// but not meaningful; callers should only augment an original grammar once.
func (g *Grammar) Augmented() *Grammar {
	newStart := g.start + augmentedStartSuffix
	for g.IsNonterminal(newStart) || g.terms[newStart] {
		newStart += augmentedStartSuffix
	}

	ag := New(newStart)
	for _, t := range g.termOrder {
		ag.AddTerm(t)
	}
	ag.AddRule(newStart, g.start)
	for _, head := range g.ruleOrder {
		for _, prod := range g.rules[head].Productions {
			ag.AddRule(head, prod...)
		}
	}
	return ag
}

// GenerateUniqueTerminal returns a terminal name derived from base that
// collides with no terminal, nonterminal, or the endmarker currently in g;
// used to mint the LALR(1) kernel computation's sentinel lookahead symbol.
func (g *Grammar) GenerateUniqueTerminal(base string) string {
	candidate := base
	for g.terms[candidate] || g.IsNonterminal(candidate) || candidate == Endmarker {
		candidate += "#"
	}
	return candidate
}
