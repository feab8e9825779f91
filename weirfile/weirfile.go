// Package weirfile loads TOML rule files describing a lexer's scan rules
// and a grammar's productions, adapting the parsed document into the values
// the lexer and grammar packages' constructors accept. The format follows
// the array-of-tables section shape the teacher's TQW world-data loader
// uses, adapted from a game-world document to a lexer/grammar rule document;
// it has no FileInfo header table, only [lexer] and [grammar] sections.
package weirfile

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/dekarrin/weir/grammar"
	"github.com/dekarrin/weir/lexer"
)

// lexerRuleDoc is one [[lexer.rule]] table.
type lexerRuleDoc struct {
	State   string `toml:"state"`
	Pattern string `toml:"pattern"`
	ID      string `toml:"id"`
}

// grammarRuleDoc is one [[grammar.rule]] table: one production for Head.
type grammarRuleDoc struct {
	Head string   `toml:"head"`
	Body []string `toml:"body"`
}

type lexerSectionDoc struct {
	StartState string         `toml:"start_state"`
	Rules      []lexerRuleDoc `toml:"rule"`
}

type grammarSectionDoc struct {
	Start string            `toml:"start"`
	Rules []grammarRuleDoc  `toml:"rule"`
}

// doc is the raw shape of a weirfile TOML document.
type doc struct {
	Lexer   lexerSectionDoc   `toml:"lexer"`
	Grammar grammarSectionDoc `toml:"grammar"`
}

// File is a parsed weirfile ready to hand to the lexer and grammar
// packages. Parsing only decodes the TOML; the grammar section is validated
// when Grammar is called.
type File struct {
	raw doc
}

// Load reads and parses the TOML rule file at path. It does not itself
// build the lexer or grammar; call Rules and Grammar on the result to get
// values the lexer.Build and grammar package entry points accept.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("weirfile: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a weirfile document already read into memory.
func Parse(data []byte) (*File, error) {
	var d doc
	if _, err := toml.Decode(string(data), &d); err != nil {
		return nil, fmt.Errorf("weirfile: decoding TOML: %w", err)
	}
	return &File{raw: d}, nil
}

// StartState returns the [lexer] section's declared start state, or
// "default" if the document did not specify one.
func (f *File) StartState() string {
	if f.raw.Lexer.StartState == "" {
		return "default"
	}
	return f.raw.Lexer.StartState
}

// StateRules adapts every [[lexer.rule]] table into a lexer.StateRule that
// lexes as its declared class ID. Discard rules are not expressible in the
// file format; callers needing them build a lexer.Lexer by hand instead.
func (f *File) StateRules() []lexer.StateRule {
	out := make([]lexer.StateRule, 0, len(f.raw.Lexer.Rules))
	for _, r := range f.raw.Lexer.Rules {
		out = append(out, lexer.StateRule{
			State:   r.State,
			Pattern: r.Pattern,
			Act:     lexer.LexAs(r.ID),
		})
	}
	return out
}

// Rules adapts every [[lexer.rule]] table into a lexer.Rule, for callers
// using the single-state lexer.BuildLexer entry point directly.
func (f *File) Rules() []lexer.Rule {
	out := make([]lexer.Rule, 0, len(f.raw.Lexer.Rules))
	for _, r := range f.raw.Lexer.Rules {
		out = append(out, lexer.Rule{ID: r.ID, Pattern: r.Pattern})
	}
	return out
}

// Grammar builds a *grammar.Grammar from the [[grammar.rule]] tables. The
// start symbol is the [grammar] section's declared start, or the head of
// the first rule if unspecified. Any body symbol that is never itself a
// rule head is registered as a terminal, so lexer rule IDs referenced in a
// production body are automatically picked up as the grammar's terminals.
// The returned grammar is validated before being returned.
func (f *File) Grammar() (*grammar.Grammar, error) {
	if len(f.raw.Grammar.Rules) == 0 {
		return nil, fmt.Errorf("weirfile: grammar section has no rules")
	}

	start := f.raw.Grammar.Start
	if start == "" {
		start = f.raw.Grammar.Rules[0].Head
	}

	heads := map[string]bool{}
	for _, r := range f.raw.Grammar.Rules {
		heads[r.Head] = true
	}

	g := grammar.New(start)
	seenTerm := map[string]bool{}
	for _, r := range f.raw.Grammar.Rules {
		for _, sym := range r.Body {
			if !heads[sym] && !seenTerm[sym] {
				g.AddTerm(sym)
				seenTerm[sym] = true
			}
		}
	}
	for _, r := range f.raw.Grammar.Rules {
		g.AddRule(r.Head, r.Body...)
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}
