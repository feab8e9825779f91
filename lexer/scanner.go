package lexer

import (
	"fmt"

	"github.com/dekarrin/weir/charset"
	"github.com/dekarrin/weir/fa"
	"github.com/dekarrin/weir/regexsyn"
)

// TokenEndOfText and TokenError are the distinguished token classes emitted
// when the scanner reaches the end of input, or hits a position no rule in
// the current state can match.
const (
	TokenEndOfText = "$EOT$"
	TokenError     = "$ERROR$"
)

// StateRule is one lexer rule scoped to a start state: when active in
// State, Pattern is tried (in slice-order precedence against its siblings),
// and a match runs Act.
type StateRule struct {
	State   string
	Pattern string
	Act     Action
}

// Lexer is a combined multi-start-state scanner: one DFA per start state,
// with an action recorded for each of that DFA's final states.
type Lexer struct {
	dfas        map[string]*fa.DFA[charset.CharClass]
	finalAction map[string]map[int]Action
	start       string
}

// Build groups rules by start state, combines each group's patterns via
// BuildLexer's NFA-merge-then-subset-construct procedure, and records the
// Action of the minimum-precedence rule backing each DFA final state.
func Build(rules []StateRule, startState string) (*Lexer, error) {
	byState := map[string][]StateRule{}
	var order []string
	for _, r := range rules {
		if _, ok := byState[r.State]; !ok {
			order = append(order, r.State)
		}
		byState[r.State] = append(byState[r.State], r)
	}

	lx := &Lexer{
		dfas:        map[string]*fa.DFA[charset.CharClass]{},
		finalAction: map[string]map[int]Action{},
		start:       startState,
	}

	for _, state := range order {
		group := byState[state]
		host := fa.New[charset.CharClass]()
		actOfNFAFinal := map[int]int{}

		for i, r := range group {
			frag, err := regexsyn.Parse(r.Pattern)
			if err != nil {
				return nil, fmt.Errorf("state %q rule %d: %w", state, i, err)
			}
			offset, init := host.Join(frag)
			host.AddEpsilon(host.Initial(), init)
			for _, f := range frag.FinalStates() {
				actOfNFAFinal[f+offset] = i
			}
		}

		dfa := fa.Subset(host)
		finalAct := map[int]Action{}
		for _, s := range dfa.FinalStates() {
			best := -1
			for _, nfaState := range dfa.NFAOrigin[s] {
				if idx, ok := actOfNFAFinal[nfaState]; ok {
					if best == -1 || idx < best {
						best = idx
					}
				}
			}
			if best >= 0 {
				finalAct[s] = group[best].Act
			}
		}

		lx.dfas[state] = dfa
		lx.finalAction[state] = finalAct
	}

	return lx, nil
}

// Token is one lexed unit: a class identifier plus the literal text matched.
type Token struct {
	ClassID string
	Lexeme  string
	Line    int
	Col     int
}

// Scanner walks an input string against a Lexer's per-state DFAs, applying
// the longest-match-then-action discipline of the scanner shell.
type Scanner struct {
	lx    *Lexer
	input []rune
	pos   int
	state string
	line  int
	col   int
	done  bool

	markPos, markLine, markCol int
	markState                  string
	markDone                   bool
}

// NewScanner returns a Scanner positioned at the start of input in the
// lexer's configured start state.
func (lx *Lexer) NewScanner(input string) *Scanner {
	return &Scanner{lx: lx, input: []rune(input), state: lx.start, line: 1, col: 1}
}

// Next returns the next token, advancing the scanner. Once the input is
// exhausted, every subsequent call returns a TokenEndOfText token.
func (sc *Scanner) Next() Token {
	if sc.done {
		return Token{ClassID: TokenEndOfText, Line: sc.line, Col: sc.col}
	}

	for {
		if sc.pos >= len(sc.input) {
			sc.done = true
			return Token{ClassID: TokenEndOfText, Line: sc.line, Col: sc.col}
		}

		dfa, ok := sc.lx.dfas[sc.state]
		if !ok {
			sc.done = true
			return Token{ClassID: TokenError, Lexeme: fmt.Sprintf("no rules for state %q", sc.state), Line: sc.line, Col: sc.col}
		}

		remaining := sc.input[sc.pos:]
		end, dfaState, matched := fa.Find(dfa, remaining)
		if !matched {
			// No rule in this state matches at the current position:
			// advance past one input element and report it as a
			// TokenError; the next call resumes scanning after it.
			bad := remaining[0]
			sc.advance(string(bad))
			return Token{ClassID: TokenError, Lexeme: string(bad), Line: sc.line, Col: sc.col}
		}

		lexeme := string(remaining[:end])
		act := sc.lx.finalAction[sc.state][dfaState]
		sc.advance(lexeme)

		switch act.Type {
		case ActionNone:
			continue
		case ActionScan:
			return sc.makeToken(act.ClassID, lexeme)
		case ActionState:
			sc.state = act.State
		case ActionScanAndState:
			tok := sc.makeToken(act.ClassID, lexeme)
			sc.state = act.State
			return tok
		}
	}
}

// HasNext reports whether the scanner has any tokens left to emit.
func (sc *Scanner) HasNext() bool {
	return !sc.done
}

// Peek returns the next token without consuming it.
func (sc *Scanner) Peek() Token {
	sc.mark()
	tok := sc.Next()
	sc.restore()
	return tok
}

func (sc *Scanner) mark() {
	sc.markPos, sc.markLine, sc.markCol, sc.markState, sc.markDone = sc.pos, sc.line, sc.col, sc.state, sc.done
}

func (sc *Scanner) restore() {
	sc.pos, sc.line, sc.col, sc.state, sc.done = sc.markPos, sc.markLine, sc.markCol, sc.markState, sc.markDone
}

func (sc *Scanner) advance(lexeme string) {
	for _, r := range lexeme {
		if r == '\n' {
			sc.line++
			sc.col = 1
		} else {
			sc.col++
		}
	}
	sc.pos += len([]rune(lexeme))
}

func (sc *Scanner) makeToken(classID, lexeme string) Token {
	return Token{ClassID: classID, Lexeme: lexeme, Line: sc.line, Col: sc.col}
}
