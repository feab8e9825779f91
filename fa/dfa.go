package fa

import (
	"fmt"
	"sort"
)

// DFA is a deterministic automaton over label alphabet L: at most one
// outgoing edge per state matches any given input, so the labels on a
// state's outgoing edges must be pairwise disjoint for whatever "overlap"
// means for L (the subset constructor in this package enforces that for
// L = charset.CharClass; callers building a DFA[L] directly for some other L
// are responsible for the same discipline).
type DFA[L any] struct {
	numStates int
	initial   int
	final     map[int]bool
	trans     map[int][]Edge[L]

	// NFAOrigin maps a DFA state to the NFA state-set it was constructed
	// from by subset construction. Nil for DFAs not built via Subset.
	NFAOrigin map[int][]int
}

// NewDFA returns a DFA with a single non-accepting initial state.
func NewDFA[L any]() *DFA[L] {
	d := &DFA[L]{final: map[int]bool{}, trans: map[int][]Edge[L]{}}
	d.initial = d.AddState()
	return d
}

func (d *DFA[L]) AddState() int {
	s := d.numStates
	d.numStates++
	return s
}

func (d *DFA[L]) NumStates() int    { return d.numStates }
func (d *DFA[L]) Initial() int      { return d.initial }
func (d *DFA[L]) SetInitial(s int)  { d.initial = s }
func (d *DFA[L]) SetFinal(s int)    { d.final[s] = true }
func (d *DFA[L]) IsFinal(s int) bool { return d.final[s] }

func (d *DFA[L]) FinalStates() []int {
	out := make([]int, 0, len(d.final))
	for s := range d.final {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}

func (d *DFA[L]) AddTransition(src int, label L, dst int) {
	d.trans[src] = append(d.trans[src], Edge[L]{Label: label, Dst: dst})
}

func (d *DFA[L]) Edges(s int) []Edge[L] {
	return d.trans[s]
}

func (d *DFA[L]) String() string {
	return fmt.Sprintf("DFA{states: %d, initial: %d, final: %v}", d.numStates, d.initial, d.FinalStates())
}
