package lr

import (
	"github.com/dekarrin/weir/grammar"
	"github.com/dekarrin/weir/internal/setutil"
)

// itemKey names a single kernel item within a specific LR(0) state, used as
// the node identity for the lookahead spontaneous-generation/propagation
// graph.
type itemKey struct {
	State int
	Item  string
}

// kernelOf returns the kernel items of LR(0) state i: the items inherited
// from its predecessor (Pos > 0), plus, for the automaton's initial state
// only, its single seed item [S' -> ·S] even though its dot is at position
// 0 -- every other position-0 item in state 0 was added by closure0 and is
// not a kernel item.
func kernelOf(a *LR0Automaton, i int) []LR0Item {
	startRule := a.Augmented.Rule(a.Augmented.StartSymbol())
	startItem := LR0Item{Head: a.Augmented.StartSymbol(), Prod: startRule.Productions[0], Pos: 0}

	var kernel []LR0Item
	for _, it := range a.Items(i) {
		if it.Pos > 0 || (i == 0 && it.Key() == startItem.Key()) {
			kernel = append(kernel, it)
		}
	}
	return kernel
}

// computeLALR1Lookaheads runs Algorithm 4.63 (Aho, Sethi, Ullman, Ullman):
// for each LR(0) kernel item, determine the set of LALR(1) lookaheads by
// propagating and spontaneously generating lookaheads through the LR(0)
// automaton, using a unique sentinel terminal in place of a real lookahead to
// detect when a lookahead must be propagated from the originating item
// rather than generated on the spot.
//
// This completes the kernel/propagation construction rather than taking the
// shortcut of building the full canonical LR(1) automaton and merging states
// with identical cores: it visits each LR(0) state once and does a single
// closure1 computation per kernel item, independent of how many distinct
// lookaheads the canonical automaton would have produced for that core.
func computeLALR1Lookaheads(ag *grammar.Grammar, first map[string]grammar.FirstSet, a *LR0Automaton) map[itemKey]setutil.StringSet {
	sentinel := ag.GenerateUniqueTerminal("#")

	lookaheads := map[itemKey]setutil.StringSet{}
	propagateTo := map[itemKey][]itemKey{}

	get := func(k itemKey) setutil.StringSet {
		s, ok := lookaheads[k]
		if !ok {
			s = setutil.NewStringSet()
			lookaheads[k] = s
		}
		return s
	}

	// Seed: the initial state's start item always has the endmarker as a
	// spontaneously generated lookahead.
	startRule := ag.Rule(ag.StartSymbol())
	startItem := LR0Item{Head: ag.StartSymbol(), Prod: startRule.Productions[0], Pos: 0}
	get(itemKey{State: 0, Item: startItem.Key()}).Add(grammar.Endmarker)

	for state := 0; state < a.StateCount(); state++ {
		kernel := kernelOf(a, state)
		for _, it := range kernel {
			from := itemKey{State: state, Item: it.Key()}
			seed := LR1Item{LR0Item: it, Lookahead: sentinel}
			closed := closure1(ag, first, []LR1Item{seed})

			for _, b := range closed.elements() {
				sym, ok := b.NextSymbol()
				if !ok {
					continue
				}
				dest, ok := a.Goto(state, sym)
				if !ok {
					continue
				}
				shifted := b.Advance().LR0Item
				to := itemKey{State: dest, Item: shifted.Key()}

				if b.Lookahead == sentinel {
					propagateTo[from] = append(propagateTo[from], to)
				} else {
					get(to).Add(b.Lookahead)
				}
			}
		}
	}

	changed := true
	for changed {
		changed = false
		for from, tos := range propagateTo {
			fromSet := get(from)
			for _, to := range tos {
				toSet := get(to)
				before := toSet.Len()
				lookaheads[to] = toSet.Union(fromSet)
				if lookaheads[to].Len() != before {
					changed = true
				}
			}
		}
	}

	return lookaheads
}

// lalrItemSets expands each LR(0) state's kernel items into their resolved
// LALR(1) lookahead sets and closes the result, producing the full LR(1)-like
// item set used for ACTION/GOTO table construction. States correspond 1:1
// with the underlying LR0Automaton's states: LALR(1) never introduces new
// states beyond the LR(0) core collection, only richer lookaheads on them.
func lalrItemSets(ag *grammar.Grammar, first map[string]grammar.FirstSet, a *LR0Automaton) []itemSet[LR1Item] {
	lookaheads := computeLALR1Lookaheads(ag, first, a)

	sets := make([]itemSet[LR1Item], a.StateCount())
	for state := 0; state < a.StateCount(); state++ {
		var seeds []LR1Item
		for _, it := range kernelOf(a, state) {
			las := lookaheads[itemKey{State: state, Item: it.Key()}]
			for _, la := range las.Elements() {
				seeds = append(seeds, LR1Item{LR0Item: it, Lookahead: la})
			}
		}
		sets[state] = closure1(ag, first, seeds)
	}
	return sets
}
