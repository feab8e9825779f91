package lr

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dekarrin/weir/grammar"
	"github.com/dekarrin/weir/internal/errs"
)

// ActionKind is the kind of ACTION table entry: shift, reduce, accept, or
// (implicitly, by the entry's absence) error.
type ActionKind int

const (
	Shift ActionKind = iota
	Reduce
	Accept
)

func (k ActionKind) String() string {
	switch k {
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Accept:
		return "accept"
	default:
		return "error"
	}
}

// Action is one ACTION table cell.
type Action struct {
	Kind  ActionKind
	State int               // target state, for Shift
	Head  string             // production head, for Reduce
	Body  grammar.Production // production body, for Reduce
}

func (a Action) descriptor() errs.LRActionDescriptor {
	switch a.Kind {
	case Shift:
		return errs.LRActionDescriptor{Kind: "shift", State: fmt.Sprintf("%d", a.State)}
	case Reduce:
		return errs.LRActionDescriptor{Kind: "reduce", Head: a.Head, Body: a.Body.String()}
	default:
		return errs.LRActionDescriptor{Kind: "accept"}
	}
}

func (a Action) equal(o Action) bool {
	if a.Kind != o.Kind {
		return false
	}
	switch a.Kind {
	case Shift:
		return a.State == o.State
	case Reduce:
		return a.Head == o.Head && a.Body.Equal(o.Body)
	default:
		return true
	}
}

func (a Action) String() string {
	switch a.Kind {
	case Shift:
		return fmt.Sprintf("s%d", a.State)
	case Reduce:
		return fmt.Sprintf("r(%s -> %s)", a.Head, a.Body)
	case Accept:
		return "acc"
	default:
		return ""
	}
}

// Table is a full ACTION/GOTO table: the LR(0) viable-prefix automaton it
// was built from, plus the resolved action for every (state, terminal) pair
// and the goto for every (state, nonterminal) pair.
type Table struct {
	Kind      string
	Augmented *grammar.Grammar
	LR0       *LR0Automaton
	Initial   int
	Action    []map[string]Action
	Goto      []map[string]int
}

// reduceEntry is one complete item contributing a reduce (or accept) action
// to a state, carrying the lookaheads that trigger it.
type reduceEntry struct {
	Item       LR0Item
	Lookaheads []string
}

// buildTable is the shared ACTION/GOTO construction used by SLR(1), the
// canonical LR(1), and LALR(1): shifts and gotos come straight from the
// LR(0) automaton's transition function (which LALR(1) and SLR(1) reuse
// directly, and which canonical LR(1) uses via its own automaton's
// transitions passed through the lr0 adapter below); reduces and their
// triggering lookaheads are supplied by reduceSource, which is the only
// place the three algorithms differ.
func buildTable(kind string, ag *grammar.Grammar, lr0 *LR0Automaton, reduceSource func(state int) []reduceEntry) (*Table, error) {
	t := &Table{
		Kind:      kind,
		Augmented: ag,
		LR0:       lr0,
		Initial:   0,
		Action:    make([]map[string]Action, lr0.StateCount()),
		Goto:      make([]map[string]int, lr0.StateCount()),
	}

	setAction := func(state int, term string, a Action) error {
		if t.Action[state] == nil {
			t.Action[state] = map[string]Action{}
		}
		if existing, ok := t.Action[state][term]; ok && !existing.equal(a) {
			stateStr := fmt.Sprintf("%d", state)
			if existing.Kind == Shift && a.Kind == Reduce {
				return errs.NewShiftReduceConflict(stateStr, term, existing.descriptor(), a.descriptor())
			}
			if existing.Kind == Reduce && a.Kind == Shift {
				return errs.NewShiftReduceConflict(stateStr, term, a.descriptor(), existing.descriptor())
			}
			return errs.NewReduceReduceConflict(stateStr, term, existing.descriptor(), a.descriptor())
		}
		t.Action[state][term] = a
		return nil
	}

	for state := 0; state < lr0.StateCount(); state++ {
		for _, sym := range symbolsOf(ag) {
			dest, ok := lr0.Goto(state, sym)
			if !ok {
				continue
			}
			if ag.IsTerminal(sym) {
				if err := setAction(state, sym, Action{Kind: Shift, State: dest}); err != nil {
					return nil, err
				}
			} else {
				if t.Goto[state] == nil {
					t.Goto[state] = map[string]int{}
				}
				t.Goto[state][sym] = dest
			}
		}

		for _, entry := range reduceSource(state) {
			if entry.Item.Head == ag.StartSymbol() {
				for _, la := range entry.Lookaheads {
					if la == grammar.Endmarker {
						if err := setAction(state, grammar.Endmarker, Action{Kind: Accept}); err != nil {
							return nil, err
						}
					}
				}
				continue
			}
			for _, la := range entry.Lookaheads {
				act := Action{Kind: Reduce, Head: entry.Item.Head, Body: entry.Item.Prod}
				if err := setAction(state, la, act); err != nil {
					return nil, err
				}
			}
		}
	}

	return t, nil
}

// SLR1Table builds the SLR(1) ACTION/GOTO table: reduces are triggered by a
// complete item [A -> α·] whenever the lookahead is in FOLLOW(A).
func SLR1Table(g *grammar.Grammar) (*Table, error) {
	lr0 := BuildLR0Automaton(g)
	follow := lr0.Augmented.FollowSets("")

	reduceSource := func(state int) []reduceEntry {
		var out []reduceEntry
		for _, it := range lr0.Items(state) {
			if !it.Complete() {
				continue
			}
			f := follow[it.Head]
			var las []string
			las = append(las, f.Symbols.Elements()...)
			if f.HasEndmarker {
				las = append(las, grammar.Endmarker)
			}
			out = append(out, reduceEntry{Item: it, Lookaheads: las})
		}
		return out
	}

	return buildTable("SLR(1)", lr0.Augmented, lr0, reduceSource)
}

// LR1Table builds the canonical LR(1) ACTION/GOTO table from the full
// (unmerged) LR(1) collection of items. It generally has more states than
// SLR1Table/LALR1Table's underlying LR(0) automaton.
func LR1Table(g *grammar.Grammar) (*Table, error) {
	canon := BuildLR1Automaton(g)

	// Adapt the LR(1) automaton's states and transitions into an
	// LR0Automaton shape so buildTable's shift/goto pass can be reused
	// unchanged; the LR0Item cores are exactly canon's items minus their
	// lookahead.
	adapted := &LR0Automaton{
		Augmented: canon.Augmented,
		States:    make([]itemSet[LR0Item], canon.StateCount()),
		Trans:     canon.Trans,
	}
	for i, items := range canon.States {
		adapted.States[i] = items1to0(items)
	}

	reduceSource := func(state int) []reduceEntry {
		byItem := map[string]*reduceEntry{}
		var order []string
		for _, it := range canon.Items(state) {
			if !it.Complete() {
				continue
			}
			key := it.LR0Item.Key()
			e, ok := byItem[key]
			if !ok {
				e = &reduceEntry{Item: it.LR0Item}
				byItem[key] = e
				order = append(order, key)
			}
			e.Lookaheads = append(e.Lookaheads, it.Lookahead)
		}
		out := make([]reduceEntry, 0, len(order))
		for _, k := range order {
			out = append(out, *byItem[k])
		}
		return out
	}

	return buildTable("LR(1)", canon.Augmented, adapted, reduceSource)
}

// items1to0 projects an LR(1) item set down to its LR(0) cores, deduplicating
// items that differ only by lookahead.
func items1to0(items itemSet[LR1Item]) itemSet[LR0Item] {
	out := newItemSet[LR0Item]()
	for _, it := range items.elements() {
		out.add(it.LR0Item)
	}
	return out
}

// LALR1Table builds the LALR(1) ACTION/GOTO table using the completed
// kernel-and-propagation construction (Algorithm 4.63): the states are
// exactly the LR(0) automaton's states, each kernel item annotated with the
// lookaheads computed by computeLALR1Lookaheads.
func LALR1Table(g *grammar.Grammar) (*Table, error) {
	lr0 := BuildLR0Automaton(g)
	first := lr0.Augmented.FirstSets()
	sets := lalrItemSets(lr0.Augmented, first, lr0)

	reduceSource := func(state int) []reduceEntry {
		byItem := map[string]*reduceEntry{}
		var order []string
		for _, it := range sets[state].elements() {
			if !it.Complete() {
				continue
			}
			key := it.LR0Item.Key()
			e, ok := byItem[key]
			if !ok {
				e = &reduceEntry{Item: it.LR0Item}
				byItem[key] = e
				order = append(order, key)
			}
			e.Lookaheads = append(e.Lookaheads, it.Lookahead)
		}
		out := make([]reduceEntry, 0, len(order))
		for _, k := range order {
			out = append(out, *byItem[k])
		}
		return out
	}

	return buildTable("LALR(1)", lr0.Augmented, lr0, reduceSource)
}

// DotString renders the table's underlying state graph in Graphviz dot
// format: one node per state (accepting states drawn as a double circle),
// solid edges for shift actions, and dashed edges for gotos. Symbols are
// visited in the grammar's registered terminal/nonterminal order so the
// rendered graph is stable across runs of the same table.
func (t *Table) DotString() string {
	var sb strings.Builder
	sb.WriteString("digraph {\n")
	sb.WriteString("  rankdir=LR;\n  node [shape=circle];\n")

	for i := 0; i < len(t.Action); i++ {
		shape := "circle"
		for _, a := range t.Action[i] {
			if a.Kind == Accept {
				shape = "doublecircle"
			}
		}
		fmt.Fprintf(&sb, "  s%d [shape=%s label=\"%d\"];\n", i, shape, i)
	}

	terms := append(t.Augmented.Terminals(), grammar.Endmarker)
	for i := 0; i < len(t.Action); i++ {
		for _, term := range terms {
			a, ok := t.Action[i][term]
			if !ok || a.Kind != Shift {
				continue
			}
			fmt.Fprintf(&sb, "  s%d -> s%d [label=%q];\n", i, a.State, term)
		}
	}

	for i := 0; i < len(t.Goto); i++ {
		for _, nt := range t.Augmented.NonTerminals() {
			j, ok := t.Goto[i][nt]
			if !ok {
				continue
			}
			fmt.Fprintf(&sb, "  s%d -> s%d [label=%q style=dashed];\n", i, j, nt)
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

// String renders the table as an aligned ACTION/GOTO grid, primarily for
// debugging and CLI reporting.
func (t *Table) String() string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 2, 2, ' ', 0)
	fmt.Fprintf(w, "state\t| action\t| goto\n")
	for i := 0; i < len(t.Action); i++ {
		var actParts []string
		for _, term := range append(t.Augmented.Terminals(), grammar.Endmarker) {
			if a, ok := t.Action[i][term]; ok {
				actParts = append(actParts, fmt.Sprintf("%s:%s", term, a))
			}
		}
		var gotoParts []string
		for _, nt := range t.Augmented.NonTerminals() {
			if s, ok := t.Goto[i][nt]; ok {
				gotoParts = append(gotoParts, fmt.Sprintf("%s:%d", nt, s))
			}
		}
		fmt.Fprintf(w, "%d\t| %s\t| %s\n", i, strings.Join(actParts, " "), strings.Join(gotoParts, " "))
	}
	w.Flush()
	return sb.String()
}
