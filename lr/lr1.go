package lr

import "github.com/dekarrin/weir/grammar"

// LR1Automaton is the canonical collection of LR(1) items: like LR0Automaton
// but each item carries its own lookahead terminal, so states that would be
// merged by LR(0) core can remain distinct when their lookaheads differ.
type LR1Automaton struct {
	Augmented *grammar.Grammar
	First     map[string]grammar.FirstSet
	States    []itemSet[LR1Item]
	Trans     []map[string]int
}

func (a *LR1Automaton) StateCount() int { return len(a.States) }

func (a *LR1Automaton) Items(i int) []LR1Item { return a.States[i].elements() }

func (a *LR1Automaton) Goto(i int, sym string) (int, bool) {
	j, ok := a.Trans[i][sym]
	return j, ok
}

// closure1 computes the LR(1) closure of a kernel item set: for every item
// [A -> α·Bβ, a], and every production B -> γ, add [B -> ·γ, b] for every b
// in FIRST(βa).
func closure1(g *grammar.Grammar, first map[string]grammar.FirstSet, kernel []LR1Item) itemSet[LR1Item] {
	set := newItemSet[LR1Item]()
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
			beta := append(append(grammar.Production{}, it.Prod[it.Pos+1:]...), it.Lookahead)
			lookaheads, _ := grammar.FirstOfSequence(g, first, beta)

			rule := g.Rule(sym)
			for _, prod := range rule.Productions {
				for _, la := range lookaheads.Elements() {
					cand := LR1Item{LR0Item: LR0Item{Head: sym, Prod: prod, Pos: 0}, Lookahead: la}
					if !set.has(cand) {
						set.add(cand)
						changed = true
					}
				}
			}
		}
	}
	return set
}

// goto1 computes GOTO(I, X) over LR(1) items: advance every item in I whose
// next symbol is X, preserving its lookahead, then close the result.
func goto1(g *grammar.Grammar, first map[string]grammar.FirstSet, i itemSet[LR1Item], sym string) itemSet[LR1Item] {
	var kernel []LR1Item
	for _, it := range i.elements() {
		next, ok := it.NextSymbol()
		if ok && next == sym {
			kernel = append(kernel, it.Advance())
		}
	}
	if len(kernel) == 0 {
		return nil
	}
	return closure1(g, first, kernel)
}

// BuildLR1Automaton augments g and constructs the full canonical LR(1)
// collection of items. This is the automaton a canonical LR(1) parser table
// is built from; it generally has more states than the LR(0)/LALR(1)
// automaton because states with the same core but different lookaheads are
// kept separate.
func BuildLR1Automaton(g *grammar.Grammar) *LR1Automaton {
	ag := g.Augmented()
	first := ag.FirstSets()
	startRule := ag.Rule(ag.StartSymbol())
	initialKernel := []LR1Item{{
		LR0Item:   LR0Item{Head: ag.StartSymbol(), Prod: startRule.Productions[0], Pos: 0},
		Lookahead: grammar.Endmarker,
	}}
	initial := closure1(ag, first, initialKernel)

	a := &LR1Automaton{Augmented: ag, First: first}
	indexOf := map[string]int{}

	addState := func(set itemSet[LR1Item]) int {
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
			dest := goto1(ag, first, a.States[i], sym)
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
