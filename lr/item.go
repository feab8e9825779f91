// Package lr implements the LR(0) viable-prefix automaton and the
// SLR(1)/LR(1)/LALR(1) action/goto table generators built on top of it.
package lr

import (
	"sort"
	"strings"

	"github.com/dekarrin/weir/grammar"
)

// LR0Item is a dotted production: (head, body, position of the dot).
// Equality and ordering are structural over these fields, not by pointer
// identity, so item sets can be compared and used as map keys via Key().
type LR0Item struct {
	Head string
	Prod grammar.Production
	Pos  int
}

// NextSymbol returns the grammar symbol immediately after the dot, if any.
func (it LR0Item) NextSymbol() (string, bool) {
	if it.Pos < len(it.Prod) {
		return it.Prod[it.Pos], true
	}
	return "", false
}

// Complete reports whether the dot has reached the end of the production.
func (it LR0Item) Complete() bool {
	return it.Pos >= len(it.Prod)
}

// Advance returns the item with the dot moved one symbol to the right. The
// caller must only call this when NextSymbol returned ok=true.
func (it LR0Item) Advance() LR0Item {
	return LR0Item{Head: it.Head, Prod: it.Prod, Pos: it.Pos + 1}
}

// Key renders the item as a canonical string, used as a map/set key so item
// sets can be compared structurally.
func (it LR0Item) Key() string {
	var sb strings.Builder
	sb.WriteString(it.Head)
	sb.WriteString(" -> ")
	for i, sym := range it.Prod {
		if i == it.Pos {
			sb.WriteString("·")
		}
		sb.WriteString(sym)
		sb.WriteByte(' ')
	}
	if it.Pos == len(it.Prod) {
		sb.WriteString("·")
	}
	return sb.String()
}

func (it LR0Item) String() string { return it.Key() }

// LR1Item is an LR0Item plus a single lookahead terminal (or the
// endmarker, or a sentinel symbol during LALR kernel computation).
type LR1Item struct {
	LR0Item
	Lookahead string
}

func (it LR1Item) Key() string {
	return it.LR0Item.Key() + ", " + it.Lookahead
}

func (it LR1Item) Advance() LR1Item {
	return LR1Item{LR0Item: it.LR0Item.Advance(), Lookahead: it.Lookahead}
}

// itemSet is a generic ordered collection of keyed items, used for both
// LR0Item and LR1Item state identities.
type itemSet[T interface{ Key() string }] map[string]T

func newItemSet[T interface{ Key() string }]() itemSet[T] {
	return itemSet[T]{}
}

func (s itemSet[T]) add(it T) {
	s[it.Key()] = it
}

func (s itemSet[T]) has(it T) bool {
	_, ok := s[it.Key()]
	return ok
}

// elements returns the set's items sorted by key, for deterministic
// iteration and canonical state identity.
func (s itemSet[T]) elements() []T {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]T, len(keys))
	for i, k := range keys {
		out[i] = s[k]
	}
	return out
}

// stateKey returns the canonical identity of an item set: its sorted item
// keys joined together. Two item sets with the same stateKey are the same
// automaton state.
func stateKey[T interface{ Key() string }](s itemSet[T]) string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, "\n")
}
