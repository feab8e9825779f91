package grammar

import "github.com/dekarrin/weir/internal/setutil"

// FirstSet is the FIRST(A) result for one nonterminal: the terminals that
// can begin a string derived from A, plus whether A is nullable (derives
// ε).
type FirstSet struct {
	Symbols  setutil.StringSet
	Nullable bool
}

// FirstSets computes FIRST(A) for every nonterminal A by fixed-point
// iteration: for a production A -> X1 X2 ... Xk, FIRST(X1)\{ε} is always
// added; FIRST(X2)\{ε} is added if X1 is nullable; and so on, and A is
// marked nullable only if every Xi is nullable (including the empty
// production).
func (g *Grammar) FirstSets() map[string]FirstSet {
	first := map[string]FirstSet{}
	for _, nt := range g.ruleOrder {
		first[nt] = FirstSet{Symbols: setutil.NewStringSet()}
	}

	changed := true
	for changed {
		changed = false
		for _, head := range g.ruleOrder {
			cur := first[head]
			for _, prod := range g.rules[head].Productions {
				allNullableSoFar := true
				for _, sym := range prod {
					if g.terms[sym] {
						if !cur.Symbols.Has(sym) {
							cur.Symbols.Add(sym)
							changed = true
						}
						allNullableSoFar = false
						break
					}
					// sym is a nonterminal
					symFirst := first[sym]
					before := cur.Symbols.Len()
					cur.Symbols = cur.Symbols.Union(symFirst.Symbols)
					if cur.Symbols.Len() != before {
						changed = true
					}
					if !symFirst.Nullable {
						allNullableSoFar = false
						break
					}
				}
				if len(prod) == 0 || allNullableSoFar {
					if !cur.Nullable {
						cur.Nullable = true
						changed = true
					}
				}
			}
			first[head] = cur
		}
	}

	return first
}

// FirstOfSequence computes FIRST(seq) (terminals that can begin a string
// derived from the symbol sequence seq) and whether seq is nullable, using
// precomputed nonterminal FIRST sets. Used by LR(1) closure to compute
// FIRST(βa).
func FirstOfSequence(g *Grammar, first map[string]FirstSet, seq []string) (setutil.StringSet, bool) {
	out := setutil.NewStringSet()
	for _, sym := range seq {
		if !g.IsNonterminal(sym) {
			// A terminal, the endmarker, or any other symbol foreign to
			// this grammar (e.g. a lookahead placeholder used by LR table
			// construction) acts as an atomic, non-nullable symbol whose
			// own FIRST set is just itself.
			out.Add(sym)
			return out, false
		}
		sf := first[sym]
		out = out.Union(sf.Symbols)
		if !sf.Nullable {
			return out, false
		}
	}
	return out, true
}

// FollowSet is the FOLLOW(A) result for one nonterminal: the terminals that
// can immediately follow A in some sentential form, plus whether the
// endmarker can immediately follow A.
type FollowSet struct {
	Symbols      setutil.StringSet
	HasEndmarker bool
}

// FollowSets computes FOLLOW(A) for every nonterminal by fixed-point
// iteration, seeding FOLLOW of the start symbol (or startOverride, if
// non-empty) with the endmarker: for a production A -> α B β, FIRST(β)\{ε}
// is added to FOLLOW(B); if β is nullable or empty, FOLLOW(A) (including its
// endmarker flag) is added to FOLLOW(B) too.
func (g *Grammar) FollowSets(startOverride string) map[string]FollowSet {
	start := g.start
	if startOverride != "" {
		start = startOverride
	}

	first := g.FirstSets()

	follow := map[string]FollowSet{}
	for _, nt := range g.ruleOrder {
		follow[nt] = FollowSet{Symbols: setutil.NewStringSet()}
	}
	if f, ok := follow[start]; ok {
		f.HasEndmarker = true
		follow[start] = f
	}

	changed := true
	for changed {
		changed = false
		for _, head := range g.ruleOrder {
			for _, prod := range g.rules[head].Productions {
				for i, sym := range prod {
					if g.terms[sym] {
						continue
					}
					beta := prod[i+1:]
					betaFirst, betaNullable := FirstOfSequence(g, first, beta)

					cur := follow[sym]
					before := cur.Symbols.Len()
					beforeEnd := cur.HasEndmarker
					cur.Symbols = cur.Symbols.Union(betaFirst)

					if len(beta) == 0 || betaNullable {
						headFollow := follow[head]
						cur.Symbols = cur.Symbols.Union(headFollow.Symbols)
						if headFollow.HasEndmarker {
							cur.HasEndmarker = true
						}
					}

					if cur.Symbols.Len() != before || cur.HasEndmarker != beforeEnd {
						changed = true
					}
					follow[sym] = cur
				}
			}
		}
	}

	return follow
}
