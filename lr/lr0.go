package lr

import "github.com/dekarrin/weir/grammar"

// LR0Automaton is the canonical collection of LR(0) items for an augmented
// grammar: a set of states (each an item set closed under closure0) and, for
// each state, the transition function over grammar symbols.
type LR0Automaton struct {
	Augmented *grammar.Grammar
	States    []itemSet[LR0Item]
	Trans     []map[string]int
}

// StateCount returns the number of automaton states.
func (a *LR0Automaton) StateCount() int { return len(a.States) }

// Items returns the sorted items of state i.
func (a *LR0Automaton) Items(i int) []LR0Item {
	return a.States[i].elements()
}

// Goto returns the destination state for (i, X), if a transition exists.
func (a *LR0Automaton) Goto(i int, sym string) (int, bool) {
	j, ok := a.Trans[i][sym]
	return j, ok
}

// closure0 computes the closure of a kernel item set: repeatedly, for every
// item [A -> α·Bβ] where B is a nonterminal, add [B -> ·γ] for every
// production B -> γ, until no more items can be added.
func closure0(g *grammar.Grammar, kernel []LR0Item) itemSet[LR0Item] {
	set := newItemSet[LR0Item]()
	for _, it := range kernel {
		set.add(it)
	}

	changed := true
	for changed {
		changed = false
		for _, it := range set.elements() {
			sym, ok := it.NextSymbol()
			if !ok || !g.IsNonterminal(sym) {
				continue
			}
			rule := g.Rule(sym)
			for _, prod := range rule.Productions {
				cand := LR0Item{Head: sym, Prod: prod, Pos: 0}
				if !set.has(cand) {
					set.add(cand)
					changed = true
				}
			}
		}
	}
	return set
}

// goto0 computes GOTO(I, X): the closure of every item in I advanced past X.
func goto0(g *grammar.Grammar, i itemSet[LR0Item], sym string) itemSet[LR0Item] {
	var kernel []LR0Item
	for _, it := range i.elements() {
		next, ok := it.NextSymbol()
		if ok && next == sym {
			kernel = append(kernel, it.Advance())
		}
	}
	if len(kernel) == 0 {
		return nil
	}
	return closure0(g, kernel)
}

// symbolsOf returns every grammar symbol (terminals then nonterminals) in a
// stable order, used to enumerate candidate transitions out of a state.
func symbolsOf(g *grammar.Grammar) []string {
	syms := make([]string, 0, len(g.Terminals())+len(g.NonTerminals()))
	syms = append(syms, g.Terminals()...)
	syms = append(syms, g.NonTerminals()...)
	return syms
}

// BuildLR0Automaton augments g and constructs its canonical LR(0) collection
// of items via the standard worklist algorithm: start from
// closure({[S' -> ·S]}) and repeatedly compute GOTO for every state and
// symbol until no new states appear.
func BuildLR0Automaton(g *grammar.Grammar) *LR0Automaton {
	ag := g.Augmented()
	startRule := ag.Rule(ag.StartSymbol())
	initialKernel := []LR0Item{{Head: ag.StartSymbol(), Prod: startRule.Productions[0], Pos: 0}}
	initial := closure0(ag, initialKernel)

	a := &LR0Automaton{Augmented: ag}
	indexOf := map[string]int{}

	addState := func(set itemSet[LR0Item]) int {
		key := stateKey(set)
		if idx, ok := indexOf[key]; ok {
			return idx
		}
		idx := len(a.States)
		indexOf[key] = idx
		a.States = append(a.States, set)
		a.Trans = append(a.Trans, map[string]int{})
		return idx
	}

	initIdx := addState(initial)
	syms := symbolsOf(ag)

	worklist := []int{initIdx}
	for len(worklist) > 0 {
		i := worklist[0]
		worklist = worklist[1:]

		for _, sym := range syms {
			dest := goto0(ag, a.States[i], sym)
			if dest == nil {
				continue
			}
			key := stateKey(dest)
			_, existed := indexOf[key]
			j := addState(dest)
			a.Trans[i][sym] = j
			if !existed {
				worklist = append(worklist, j)
			}
		}
	}

	return a
}
