package fa

import (
	"testing"

	"github.com/dekarrin/weir/charset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildAB builds the NFA for "ab" directly via the fa primitives, bypassing
// the regex parser, to test subset construction and Find in isolation.
func buildAB() *NFA[charset.CharClass] {
	n := New[charset.CharClass]()
	s1 := n.AddState()
	s2 := n.AddState()
	n.AddTransition(n.Initial(), charset.Single('a'), s1)
	n.AddTransition(s1, charset.Single('b'), s2)
	n.SetFinal(s2)
	return n
}

func Test_Subset_DeterminismAndAcceptance(t *testing.T) {
	n := buildAB()
	d := Subset(n)

	for s := 0; s < d.NumStates(); s++ {
		edges := d.Edges(s)
		for i := 0; i < len(edges); i++ {
			for j := i + 1; j < len(edges); j++ {
				overlap := edges[i].Label.Intersect(edges[j].Label)
				assert.True(t, overlap.Empty(), "edges out of state %d overlap", s)
			}
		}
	}

	end, _, ok := Find(d, []rune("ab"))
	require.True(t, ok)
	assert.Equal(t, 2, end)

	_, _, ok = Find(d, []rune("ac"))
	assert.False(t, ok)
}

func Test_Join_RebasesStatesAndTransitions(t *testing.T) {
	a := New[charset.CharClass]()
	aFinal := a.AddState()
	a.AddTransition(a.Initial(), charset.Single('x'), aFinal)
	a.SetFinal(aFinal)

	host := New[charset.CharClass]()
	offset, otherInitial := host.Join(a)

	assert.Equal(t, 1, offset) // host already had 1 state (its own initial)
	assert.Equal(t, offset+a.Initial(), otherInitial)
	assert.True(t, host.IsFinal(offset+aFinal))
}
