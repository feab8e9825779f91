package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Union_Coalesces(t *testing.T) {
	a := FromRange('a', 'm')
	b := FromRange('n', 'z')

	got := a.Union(b)

	assert.Equal(t, []CharRange{{Start: 'a', End: 'z'}}, got.Ranges())
}

func Test_Contains(t *testing.T) {
	c := FromRanges([]CharRange{{Start: 'a', End: 'z'}, {Start: '0', End: '9'}})

	assert.True(t, c.Contains('g'))
	assert.True(t, c.Contains('5'))
	assert.False(t, c.Contains('!'))
}

func Test_Complement_Involutive(t *testing.T) {
	c := FromRange('a', 'z')

	got := c.Complement().Complement()

	assert.True(t, c.Equal(got), "expected %s, got %s", c, got)
}

func Test_Normalize_Idempotent(t *testing.T) {
	c := FromRanges([]CharRange{{Start: 'a', End: 'c'}, {Start: 'b', End: 'e'}, {Start: 'x', End: 'z'}})

	reNormalized := FromRanges(c.Ranges())

	assert.True(t, c.Equal(reNormalized))
}

func Test_Word_ContainsLettersDigitsUnderscore(t *testing.T) {
	w := Word()

	assert.True(t, w.Contains('a'))
	assert.True(t, w.Contains('Z'))
	assert.True(t, w.Contains('5'))
	assert.True(t, w.Contains('_'))
	assert.False(t, w.Contains(' '))
}

func Test_LetterComplementIsInvolutive(t *testing.T) {
	letters := FromRanges([]CharRange{{Start: 'a', End: 'z'}, {Start: 'A', End: 'Z'}})

	roundTripped := letters.Complement().Complement()

	assert.True(t, letters.Equal(roundTripped))
}
