package lr

import (
	"fmt"

	"github.com/dekarrin/weir/grammar"
)

// Accept drives the table over a sequence of terminal symbols (the
// endmarker is appended automatically) using the standard shift-reduce
// stack algorithm, and reports whether the input is accepted. It does not
// build a parse tree; it exists to let callers (and tests) check acceptance
// equivalence across table flavors built from the same grammar.
func (t *Table) Accept(tokens []string) (bool, error) {
	input := append(append([]string{}, tokens...), grammar.Endmarker)
	stack := []int{t.Initial}
	pos := 0

	for {
		state := stack[len(stack)-1]
		term := input[pos]

		action, ok := t.Action[state][term]
		if !ok {
			return false, fmt.Errorf("no action in state %d on %q", state, term)
		}

		switch action.Kind {
		case Shift:
			stack = append(stack, action.State)
			pos++
		case Reduce:
			n := len(action.Body)
			stack = stack[:len(stack)-n]
			from := stack[len(stack)-1]
			next, ok := t.Goto[from][action.Head]
			if !ok {
				return false, fmt.Errorf("no goto from state %d on %q", from, action.Head)
			}
			stack = append(stack, next)
		case Accept:
			return true, nil
		}
	}
}
