package weirfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `
[lexer]
start_state = "default"

[[lexer.rule]]
state = "default"
pattern = '[0-9]+'
id = "INT"

[[lexer.rule]]
state = "default"
pattern = '[ \t]+'
id = "WS"

[[grammar.rule]]
head = "E"
body = ["E", "+", "T"]

[[grammar.rule]]
head = "E"
body = ["T"]

[[grammar.rule]]
head = "T"
body = ["INT"]
`

func Test_Parse_RulesAndStartState(t *testing.T) {
	f, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, "default", f.StartState())

	rules := f.Rules()
	require.Len(t, rules, 2)
	assert.Equal(t, "INT", rules[0].ID)
}

func Test_Grammar_InfersTerminalsFromNonHeadSymbols(t *testing.T) {
	f, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	g, err := f.Grammar()
	require.NoError(t, err)

	assert.True(t, g.IsTerminal("+"))
	assert.True(t, g.IsTerminal("INT"))
	assert.True(t, g.IsNonterminal("E"))
	assert.True(t, g.IsNonterminal("T"))
	assert.Equal(t, "E", g.StartSymbol())
}

func Test_Grammar_EmptyRulesIsError(t *testing.T) {
	f, err := Parse([]byte("[lexer]\nstart_state = \"default\"\n"))
	require.NoError(t, err)

	_, err = f.Grammar()
	assert.Error(t, err)
}
