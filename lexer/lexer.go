// Package lexer implements the lexer combiner: merging an ordered list of
// (regex, rule-id) pairs into one DFA with a final-state -> rule-id map
// (BuildLexer, the core's build_lexer entry point), plus a small stateful
// scanner shell on top of it for start-state-scoped tokenizing.
package lexer

import (
	"github.com/dekarrin/weir/charset"
	"github.com/dekarrin/weir/fa"
	"github.com/dekarrin/weir/regexsyn"
)

// Rule is one (regex_text, rule_id) pair; its position in the slice passed
// to BuildLexer encodes precedence, earlier wins ties.
type Rule struct {
	ID      string
	Pattern string
}

// BuildLexer parses each rule's pattern, merges the resulting NFA fragments
// into one combined NFA (fresh initial state epsilon-linked to every
// fragment), subset-constructs a DFA, and for every DFA final state records
// the ID of the minimum-precedence rule whose NFA final state it subsumes.
func BuildLexer(rules []Rule) (*fa.DFA[charset.CharClass], map[int]string, error) {
	host := fa.New[charset.CharClass]()
	ruleOfNFAFinal := map[int]int{}

	for i, r := range rules {
		frag, err := regexsyn.Parse(r.Pattern)
		if err != nil {
			return nil, nil, err
		}
		offset, init := host.Join(frag)
		host.AddEpsilon(host.Initial(), init)
		for _, f := range frag.FinalStates() {
			ruleOfNFAFinal[f+offset] = i
		}
	}

	dfa := fa.Subset(host)

	finalRule := map[int]string{}
	for _, s := range dfa.FinalStates() {
		best := -1
		for _, nfaState := range dfa.NFAOrigin[s] {
			if idx, ok := ruleOfNFAFinal[nfaState]; ok {
				if best == -1 || idx < best {
					best = idx
				}
			}
		}
		if best >= 0 {
			finalRule[s] = rules[best].ID
		}
	}

	return dfa, finalRule, nil
}
