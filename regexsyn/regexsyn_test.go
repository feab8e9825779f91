package regexsyn

import (
	"testing"

	"github.com/dekarrin/weir/fa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matches(t *testing.T, expr, input string) (end int, ok bool) {
	t.Helper()
	nfa, err := Parse(expr)
	require.NoError(t, err)
	dfa := fa.Subset(nfa)
	end, _, ok = fa.Find(dfa, []rune(input))
	return end, ok
}

func Test_KleeneStarOverAlternation(t *testing.T) {
	end, ok := matches(t, "a(b|c)*d", "abccbd")
	require.True(t, ok)
	assert.Equal(t, 6, end)

	end, ok = matches(t, "a(b|c)*d", "ad")
	require.True(t, ok)
	assert.Equal(t, 2, end)

	_, ok = matches(t, "a(b|c)*d", "abc")
	assert.False(t, ok)
}

func Test_NegatedClassWithPlus(t *testing.T) {
	end, ok := matches(t, "[^a-z]+", "12!AB")
	require.True(t, ok)
	assert.Equal(t, 5, end)
}

func Test_Optional(t *testing.T) {
	end, ok := matches(t, "colou?r", "color")
	require.True(t, ok)
	assert.Equal(t, 5, end)

	end, ok = matches(t, "colou?r", "colour")
	require.True(t, ok)
	assert.Equal(t, 6, end)
}

func Test_EmptyCharacterClass_Errors(t *testing.T) {
	_, err := Parse("[]")
	assert.Error(t, err)
}

func Test_UnbalancedParentheses(t *testing.T) {
	_, err := Parse("(a|b")
	assert.Error(t, err)

	_, err = Parse("a|b)")
	assert.Error(t, err)
}

func Test_EmptyRegex_MatchesEmptyString(t *testing.T) {
	end, ok := matches(t, "", "anything")
	require.True(t, ok)
	assert.Equal(t, 0, end)
}

func Test_EscapeClasses(t *testing.T) {
	end, ok := matches(t, `\d+`, "42abc")
	require.True(t, ok)
	assert.Equal(t, 2, end)

	end, ok = matches(t, `\w+`, "foo_1 bar")
	require.True(t, ok)
	assert.Equal(t, 5, end)
}
