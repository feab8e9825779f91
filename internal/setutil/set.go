// Package setutil provides small ordered-set helpers shared by the
// automaton, grammar, and LR table packages. Every algorithm in this module
// iterates sets in sorted order so that state numbering and table output are
// reproducible across runs of the same input.
package setutil

import "sort"

// StringSet is a set of strings with deterministic iteration via Elements.
type StringSet map[string]struct{}

// NewStringSet returns an empty StringSet, optionally seeded from of.
func NewStringSet(of ...[]string) StringSet {
	s := StringSet{}
	for _, sl := range of {
		s.AddAll(sl)
	}
	return s
}

// StringSetOf returns a StringSet containing exactly the given elements.
func StringSetOf(items []string) StringSet {
	return NewStringSet(items)
}

func (s StringSet) Add(item string)     { s[item] = struct{}{} }
func (s StringSet) Remove(item string)  { delete(s, item) }
func (s StringSet) Has(item string) bool {
	_, ok := s[item]
	return ok
}
func (s StringSet) Len() int   { return len(s) }
func (s StringSet) Empty() bool { return len(s) == 0 }

func (s StringSet) AddAll(items []string) {
	for _, it := range items {
		s.Add(it)
	}
}

// Elements returns the set's members sorted ascending.
func (s StringSet) Elements() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Copy returns a shallow duplicate of s.
func (s StringSet) Copy() StringSet {
	c := make(StringSet, len(s))
	for k := range s {
		c[k] = struct{}{}
	}
	return c
}

// Union returns a new set containing every element of s and o.
func (s StringSet) Union(o StringSet) StringSet {
	c := s.Copy()
	for k := range o {
		c[k] = struct{}{}
	}
	return c
}

// Equal reports whether s and o contain exactly the same elements.
func (s StringSet) Equal(o StringSet) bool {
	if len(s) != len(o) {
		return false
	}
	for k := range s {
		if _, ok := o[k]; !ok {
			return false
		}
	}
	return true
}

// OrderedKeys returns the keys of m sorted ascending. Used wherever a map
// must be walked in a deterministic order, e.g. when numbering automaton
// states from a set of string-keyed item sets.
func OrderedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
