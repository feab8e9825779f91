package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// s4Grammar builds E -> E + T | T; T -> T * F | F; F -> ( E ) | id
func s4Grammar() *Grammar {
	g := New("E")
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

func Test_Validate_UndefinedNonterminal(t *testing.T) {
	g := New("S")
	g.AddTerm("a")
	g.AddRule("S", "A")

	err := g.Validate()
	assert.Error(t, err)
}

func Test_Validate_OK(t *testing.T) {
	g := s4Grammar()
	assert.NoError(t, g.Validate())
}

func Test_Augmented_AddsPrimeStart(t *testing.T) {
	g := s4Grammar()
	ag := g.Augmented()

	require.NotEqual(t, g.StartSymbol(), ag.StartSymbol())
	rule := ag.Rule(ag.StartSymbol())
	require.NotNil(t, rule)
	require.Len(t, rule.Productions, 1)
	assert.Equal(t, Production{"E"}, rule.Productions[0])
}

func Test_FirstSets_S4Grammar(t *testing.T) {
	g := s4Grammar()
	first := g.FirstSets()

	for _, nt := range []string{"E", "T", "F"} {
		assert.True(t, first[nt].Symbols.Has("("), "FIRST(%s) should contain (", nt)
		assert.True(t, first[nt].Symbols.Has("id"), "FIRST(%s) should contain id", nt)
		assert.False(t, first[nt].Nullable)
	}
}

func Test_FollowSets_S4Grammar(t *testing.T) {
	g := s4Grammar()
	follow := g.FollowSets("")

	assert.True(t, follow["E"].Symbols.Has("+"))
	assert.True(t, follow["E"].Symbols.Has(")"))
	assert.True(t, follow["E"].HasEndmarker)

	assert.True(t, follow["T"].Symbols.Has("+"))
	assert.True(t, follow["T"].Symbols.Has("*"))
	assert.True(t, follow["T"].Symbols.Has(")"))
}

func Test_FirstSets_FixedPointStable(t *testing.T) {
	g := s4Grammar()
	first1 := g.FirstSets()
	first2 := g.FirstSets()

	for nt := range first1 {
		assert.True(t, first1[nt].Symbols.Equal(first2[nt].Symbols))
		assert.Equal(t, first1[nt].Nullable, first2[nt].Nullable)
	}
}

func Test_Nullable_Production(t *testing.T) {
	g := New("S")
	g.AddTerm("a")
	g.AddRule("S", "A", "a")
	g.AddRule("A") // A -> ε

	first := g.FirstSets()
	assert.True(t, first["A"].Nullable)
	assert.True(t, first["S"].Symbols.Has("a"))
}
