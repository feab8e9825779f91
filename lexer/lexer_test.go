package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_BuildLexer_PrecedenceOnTie(t *testing.T) {
	dfa, finalRule, err := BuildLexer([]Rule{
		{ID: "KEYWORD", Pattern: "let"},
		{ID: "IDENT", Pattern: "[a-z]+"},
	})
	require.NoError(t, err)

	foundKeyword := false
	for _, rule := range finalRule {
		if rule == "KEYWORD" {
			foundKeyword = true
		}
	}
	assert.True(t, foundKeyword)
	assert.NotNil(t, dfa)
}

func Test_Scanner_EmitsIdentAndIntTokens(t *testing.T) {
	lx, err := Build([]StateRule{
		{State: "default", Pattern: "[0-9]+", Act: LexAs("INT")},
		{State: "default", Pattern: "[a-zA-Z_][a-zA-Z0-9_]*", Act: LexAs("IDENT")},
		{State: "default", Pattern: "[ \t\n]+", Act: Discard()},
	}, "default")
	require.NoError(t, err)

	sc := lx.NewScanner("let x = 42")

	var classes []string
	var lexemes []string
	for sc.HasNext() {
		tok := sc.Next()
		if tok.ClassID == TokenEndOfText {
			break
		}
		if tok.ClassID == "=" {
			continue
		}
		classes = append(classes, tok.ClassID)
		lexemes = append(lexemes, tok.Lexeme)
	}

	// the rule set above has no pattern for '=', so the scanner will emit
	// a TokenError for it; filter to the meaningful IDENT/INT stream.
	var filtered []string
	for i, c := range classes {
		if c == "IDENT" || c == "INT" {
			filtered = append(filtered, lexemes[i])
		}
	}

	assert.Equal(t, []string{"let", "x", "42"}, filtered)
}

func Test_Peek_DoesNotConsume(t *testing.T) {
	lx, err := Build([]StateRule{
		{State: "default", Pattern: "[0-9]+", Act: LexAs("INT")},
		{State: "default", Pattern: " +", Act: Discard()},
	}, "default")
	require.NoError(t, err)

	sc := lx.NewScanner("12 34")

	peeked := sc.Peek()
	first := sc.Next()

	assert.Equal(t, peeked.Lexeme, first.Lexeme)
	assert.Equal(t, "12", first.Lexeme)

	second := sc.Next()
	assert.Equal(t, "34", second.Lexeme)
}
