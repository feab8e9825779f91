package lr

import (
	"testing"

	"github.com/dekarrin/weir/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// arithGrammar builds E -> E + T | T; T -> T * F | F; F -> ( E ) | id, the
// canonical expression grammar with no SLR/LALR/LR1 conflicts.
func arithGrammar() *grammar.Grammar {
	g := grammar.New("E")
	for _, t := range []string{"+", "*", "(", ")", "id"} {
		g.AddTerm(t)
	}
	g.AddRule("E", "E", "+", "T")
	g.AddRule("E", "T")
	g.AddRule("T", "T", "*", "F")
	g.AddRule("T", "F")
	g.AddRule("F", "(", "E", ")")
	g.AddRule("F", "id")
	return g
}

// assignGrammar builds S -> L = R | R; L -> * R | id; R -> L, the classic
// example that is LALR(1)/LR(1) but not SLR(1): the SLR(1) construction
// conflicts on '=' because FOLLOW(R) includes '=' even though no valid
// viable prefix reaches that state expecting to shift it.
func assignGrammar() *grammar.Grammar {
	g := grammar.New("S")
	for _, t := range []string{"=", "*", "id"} {
		g.AddTerm(t)
	}
	g.AddRule("S", "L", "=", "R")
	g.AddRule("S", "R")
	g.AddRule("L", "*", "R")
	g.AddRule("L", "id")
	g.AddRule("R", "L")
	return g
}

// ambiguousGrammar builds S -> S S | a, which is ambiguous and so has
// genuine conflicts under every LR flavor, including canonical LR(1).
func ambiguousGrammar() *grammar.Grammar {
	g := grammar.New("S")
	g.AddTerm("a")
	g.AddRule("S", "S", "S")
	g.AddRule("S", "a")
	return g
}

func Test_SLR1_ShiftReduceGrammar_Accepts(t *testing.T) {
	tbl, err := SLR1Table(arithGrammar())
	require.NoError(t, err)

	ok, err := tbl.Accept([]string{"id", "+", "id", "*", "id"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = tbl.Accept([]string{"id", "+"})
	assert.False(t, ok)
	assert.Error(t, err)
}

func Test_AssignGrammar_SLR1Conflicts_LALR1AndLR1Accept(t *testing.T) {
	g := assignGrammar()

	_, err := SLR1Table(g)
	assert.Error(t, err, "SLR(1) should conflict on '=' for this grammar")

	lalr, err := LALR1Table(g)
	require.NoError(t, err)

	lr1, err := LR1Table(g)
	require.NoError(t, err)

	for _, tbl := range []*Table{lalr, lr1} {
		ok, err := tbl.Accept([]string{"id", "=", "id"})
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = tbl.Accept([]string{"*", "id"})
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func Test_AllTableFlavors_AgreeOnAcceptance(t *testing.T) {
	g := arithGrammar()

	slr, err := SLR1Table(g)
	require.NoError(t, err)
	lalr, err := LALR1Table(g)
	require.NoError(t, err)
	lr1, err := LR1Table(g)
	require.NoError(t, err)

	inputs := [][]string{
		{"id"},
		{"id", "+", "id"},
		{"id", "+", "id", "*", "id"},
		{"(", "id", "+", "id", ")", "*", "id"},
	}
	rejected := [][]string{
		{"id", "+"},
		{"(", "id"},
		{"*", "id"},
	}

	for _, in := range inputs {
		for name, tbl := range map[string]*Table{"slr": slr, "lalr": lalr, "lr1": lr1} {
			ok, err := tbl.Accept(in)
			assert.NoError(t, err, "%s on %v", name, in)
			assert.True(t, ok, "%s should accept %v", name, in)
		}
	}
	for _, in := range rejected {
		for name, tbl := range map[string]*Table{"slr": slr, "lalr": lalr, "lr1": lr1} {
			ok, _ := tbl.Accept(in)
			assert.False(t, ok, "%s should reject %v", name, in)
		}
	}
}

func Test_AmbiguousGrammar_ConflictsUnderEveryTableFlavor(t *testing.T) {
	g := ambiguousGrammar()

	_, err := SLR1Table(g)
	assert.Error(t, err)

	_, err = LALR1Table(g)
	assert.Error(t, err)

	_, err = LR1Table(g)
	assert.Error(t, err)
}

func Test_BuildLR0Automaton_InitialStateHasAugmentedStartItem(t *testing.T) {
	g := arithGrammar()
	a := BuildLR0Automaton(g)

	require.Greater(t, a.StateCount(), 0)
	found := false
	for _, it := range a.Items(0) {
		if it.Head == a.Augmented.StartSymbol() && it.Pos == 0 {
			found = true
		}
	}
	assert.True(t, found)
}

func Test_LALR1Table_HasFewerOrEqualStatesThanCanonicalLR1(t *testing.T) {
	g := assignGrammar()

	lalr, err := LALR1Table(g)
	require.NoError(t, err)
	lr1, err := LR1Table(g)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(lalr.Action), len(lr1.Action))
}
