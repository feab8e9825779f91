package fa

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dekarrin/weir/charset"
)

// Subset runs subset construction (purple dragon book algorithm 3.20) over
// an NFA labeled with CharClass edges, producing an equivalent DFA plus the
// DFA-state -> NFA-state-set origin map.
func Subset(n *NFA[charset.CharClass]) *DFA[charset.CharClass] {
	d := NewDFA[charset.CharClass]()
	d.NFAOrigin = map[int][]int{}

	t0 := n.EpsilonClosure([]int{n.Initial()})
	keyOf := func(states []int) string {
		strs := make([]string, len(states))
		for i, s := range states {
			strs[i] = strconv.Itoa(s)
		}
		return strings.Join(strs, ",")
	}

	indexOf := map[string]int{}
	d.numStates = 0
	start := d.AddState()
	d.SetInitial(start)
	indexOf[keyOf(t0)] = start
	d.NFAOrigin[start] = t0
	if isFinalAny(n, t0) {
		d.SetFinal(start)
	}

	type workItem struct {
		idx    int
		states []int
	}
	worklist := []workItem{{idx: start, states: t0}}

	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]

		atoms := alphabetAtoms(n, cur.states)
		// group atoms by identical destination-set key so each distinct
		// target collapses to one (possibly multi-range) DFA edge.
		byTarget := map[string]charset.CharClass{}
		targetStates := map[string][]int{}
		for _, atom := range atoms {
			moved := move(n, cur.states, atom.rep)
			if len(moved) == 0 {
				continue
			}
			closed := n.EpsilonClosure(moved)
			k := keyOf(closed)
			byTarget[k] = byTarget[k].Union(atom.class)
			targetStates[k] = closed
		}

		targetKeys := make([]string, 0, len(byTarget))
		for k := range byTarget {
			targetKeys = append(targetKeys, k)
		}
		sort.Strings(targetKeys)

		for _, k := range targetKeys {
			label := byTarget[k]
			closed := targetStates[k]
			idx, ok := indexOf[k]
			if !ok {
				idx = d.AddState()
				indexOf[k] = idx
				d.NFAOrigin[idx] = closed
				if isFinalAny(n, closed) {
					d.SetFinal(idx)
				}
				worklist = append(worklist, workItem{idx: idx, states: closed})
			}
			d.AddTransition(cur.idx, label, idx)
		}
	}

	return d
}

func isFinalAny(n *NFA[charset.CharClass], states []int) bool {
	for _, s := range states {
		if n.IsFinal(s) {
			return true
		}
	}
	return false
}

// move returns the set of NFA states reachable from states via an edge whose
// label contains c (no epsilon-closure applied).
func move(n *NFA[charset.CharClass], states []int, c rune) []int {
	seen := map[int]bool{}
	var out []int
	for _, s := range states {
		for _, e := range n.Edges(s) {
			if e.Epsilon {
				continue
			}
			if e.Label.Contains(c) && !seen[e.Dst] {
				seen[e.Dst] = true
				out = append(out, e.Dst)
			}
		}
	}
	sort.Ints(out)
	return out
}

type atom struct {
	class charset.CharClass
	rep   rune // representative code point, used to evaluate move()
}

// alphabetAtoms partitions the union of every non-epsilon edge label
// reachable directly from states into pairwise-disjoint, single-range
// CharClass atoms, split at every range boundary of every label, such that
// each original label is a union of atoms. Atoms are not merged here; Subset
// groups them by destination afterwards. This is
// the "disjoint refinement" step referenced by the subset-construction
// component design.
func alphabetAtoms(n *NFA[charset.CharClass], states []int) []atom {
	var labels []charset.CharClass
	for _, s := range states {
		for _, e := range n.Edges(s) {
			if !e.Epsilon {
				labels = append(labels, e.Label)
			}
		}
	}
	if len(labels) == 0 {
		return nil
	}

	boundarySet := map[rune]bool{}
	for _, l := range labels {
		for _, r := range l.Ranges() {
			boundarySet[r.Start] = true
			if r.End < 0x10FFFF {
				boundarySet[r.End+1] = true
			}
		}
	}
	bounds := make([]rune, 0, len(boundarySet))
	for b := range boundarySet {
		bounds = append(bounds, b)
	}
	sort.Slice(bounds, func(i, j int) bool { return bounds[i] < bounds[j] })

	var atoms []atom
	for i := 0; i < len(bounds); i++ {
		lo := bounds[i]
		var hi rune
		if i+1 < len(bounds) {
			hi = bounds[i+1] - 1
		} else {
			hi = 0x10FFFF
		}
		if lo > hi {
			continue
		}
		// only keep the atom if some label actually contains it
		covered := false
		for _, l := range labels {
			if l.Contains(lo) {
				covered = true
				break
			}
		}
		if !covered {
			continue
		}
		atoms = append(atoms, atom{class: charset.FromRange(lo, hi), rep: lo})
	}
	return atoms
}

// Find performs the longest-match search described in the DFA search
// component: it walks d one input rune at a time, recording the most recent
// final state reached, and returns the end offset (exclusive) of the
// longest matched prefix and the final state it ended in. ok is false if no
// prefix of input reaches any final state.
func Find(d *DFA[charset.CharClass], input []rune) (end int, state int, ok bool) {
	cur := d.Initial()
	lastFinalEnd := -1
	lastFinalState := -1
	if d.IsFinal(cur) {
		lastFinalEnd = 0
		lastFinalState = cur
	}

	for i, c := range input {
		next := -1
		for _, e := range d.Edges(cur) {
			if e.Label.Contains(c) {
				next = e.Dst
				break
			}
		}
		if next == -1 {
			break
		}
		cur = next
		if d.IsFinal(cur) {
			lastFinalEnd = i + 1
			lastFinalState = cur
		}
	}

	if lastFinalEnd == -1 {
		return 0, 0, false
	}
	return lastFinalEnd, lastFinalState, true
}
