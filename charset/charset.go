// Package charset implements CharClass, an ordered set of Unicode scalar
// value ranges, and the predefined classes the regex parser seeds its
// character-class atoms from.
package charset

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// maxRune is the top of the Unicode scalar domain.
const maxRune = 0x10FFFF

// surrogateLo and surrogateHi bound the UTF-16 surrogate gap, which is not a
// valid Unicode scalar value and is excluded from the full domain used by
// Complement.
const (
	surrogateLo = 0xD800
	surrogateHi = 0xDFFF
)

// CharRange is an inclusive range of Unicode scalar values.
type CharRange struct {
	Start rune
	End   rune
}

// Contains reports whether c falls within the inclusive range.
func (r CharRange) Contains(c rune) bool {
	return r.Start <= c && c <= r.End
}

func (r CharRange) String() string {
	if r.Start == r.End {
		return fmt.Sprintf("%q", r.Start)
	}
	return fmt.Sprintf("%q-%q", r.Start, r.End)
}

// CharClass is a normalized set of CharRanges: sorted by Start, pairwise
// disjoint, and maximally coalesced (no two ranges are adjacent or
// overlapping). Every constructor and mutating operation in this package
// restores the invariant before returning.
type CharClass struct {
	ranges []CharRange
}

// Empty returns the CharClass containing no characters.
func Empty() CharClass {
	return CharClass{}
}

// Single returns the CharClass containing exactly c.
func Single(c rune) CharClass {
	return CharClass{ranges: []CharRange{{Start: c, End: c}}}
}

// FromRange returns the CharClass containing [lo,hi] inclusive.
func FromRange(lo, hi rune) CharClass {
	return normalize([]CharRange{{Start: lo, End: hi}})
}

// FromRanges builds a CharClass out of a (possibly unsorted, possibly
// overlapping) slice of ranges, normalizing on construction.
func FromRanges(rs []CharRange) CharClass {
	cp := make([]CharRange, len(rs))
	copy(cp, rs)
	return normalize(cp)
}

// AllButNewline is the class matched by the regex metacharacter `.`.
func AllButNewline() CharClass {
	return FromRanges([]CharRange{
		{Start: 0, End: '\n' - 1},
		{Start: '\n' + 1, End: maxRune},
	})
}

// DecimalNumber is Unicode general category Nd, the class matched by `\d`.
func DecimalNumber() CharClass {
	return fromRangeTable(unicode.Nd)
}

// Letter is Unicode general category L, used to build `\w`.
func Letter() CharClass {
	return fromRangeTable(unicode.L)
}

// Whitespace is the class matched by `\s`: Unicode White_Space plus the
// common ASCII control whitespace characters.
func Whitespace() CharClass {
	return fromRangeTable(unicode.White_Space)
}

// Word is the class matched by `\w`: letters, decimal digits, and
// underscore.
func Word() CharClass {
	return Letter().Union(DecimalNumber()).Union(Single('_'))
}

// fromRangeTable converts a stdlib *unicode.RangeTable (as merged by
// x/text/unicode/rangetable) into a CharClass, rather than hand-copying a
// generated table of Unicode code-point ranges.
func fromRangeTable(tabs ...*unicode.RangeTable) CharClass {
	merged := rangetable.Merge(tabs...)
	var out []CharRange
	rangetable.Visit(merged, func(lo, hi rune) {
		out = append(out, CharRange{Start: lo, End: hi})
	})
	return normalize(out)
}

// normalize sorts rs by Start and coalesces overlapping or adjacent ranges.
func normalize(rs []CharRange) CharClass {
	if len(rs) == 0 {
		return CharClass{}
	}
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].Start != rs[j].Start {
			return rs[i].Start < rs[j].Start
		}
		return rs[i].End < rs[j].End
	})

	coalesced := make([]CharRange, 0, len(rs))
	cur := rs[0]
	for _, r := range rs[1:] {
		if r.Start <= cur.End+1 {
			if r.End > cur.End {
				cur.End = r.End
			}
			continue
		}
		coalesced = append(coalesced, cur)
		cur = r
	}
	coalesced = append(coalesced, cur)

	return CharClass{ranges: coalesced}
}

// Ranges returns the normalized ranges backing c, in ascending order. The
// returned slice must not be mutated by the caller.
func (c CharClass) Ranges() []CharRange {
	return c.ranges
}

// Empty reports whether c contains no characters.
func (c CharClass) Empty() bool {
	return len(c.ranges) == 0
}

// Contains reports whether c includes the rune r, via binary search over the
// normalized range list.
func (c CharClass) Contains(r rune) bool {
	i := sort.Search(len(c.ranges), func(i int) bool {
		return c.ranges[i].End >= r
	})
	return i < len(c.ranges) && c.ranges[i].Start <= r
}

// Union returns the normalized union of c and other.
func (c CharClass) Union(other CharClass) CharClass {
	merged := make([]CharRange, 0, len(c.ranges)+len(other.ranges))
	merged = append(merged, c.ranges...)
	merged = append(merged, other.ranges...)
	return normalize(merged)
}

// Intersect returns the normalized intersection of c and other. Used by the
// subset-construction alphabet refinement step to split overlapping edge
// labels into disjoint pieces.
func (c CharClass) Intersect(other CharClass) CharClass {
	var out []CharRange
	i, j := 0, 0
	for i < len(c.ranges) && j < len(other.ranges) {
		a, b := c.ranges[i], other.ranges[j]
		lo := a.Start
		if b.Start > lo {
			lo = b.Start
		}
		hi := a.End
		if b.End < hi {
			hi = b.End
		}
		if lo <= hi {
			out = append(out, CharRange{Start: lo, End: hi})
		}
		if a.End < b.End {
			i++
		} else {
			j++
		}
	}
	return normalize(out)
}

// Complement returns the set difference FullDomain \ c, where FullDomain is
// every Unicode scalar value (the surrogate gap is excluded, since it
// contains no valid scalar values).
func (c CharClass) Complement() CharClass {
	full := []CharRange{
		{Start: 0, End: surrogateLo - 1},
		{Start: surrogateHi + 1, End: maxRune},
	}
	fullClass := normalize(full)

	if c.Empty() {
		return fullClass
	}

	var out []CharRange
	prevEnd := rune(-1)
	for _, r := range c.ranges {
		lo := prevEnd + 1
		hi := r.Start - 1
		if lo <= hi {
			out = append(out, CharRange{Start: lo, End: hi})
		}
		prevEnd = r.End
	}
	if prevEnd < maxRune {
		out = append(out, CharRange{Start: prevEnd + 1, End: maxRune})
	}

	return fullClass.Intersect(normalize(out))
}

// Equal reports whether c and other have identical normalized range lists.
func (c CharClass) Equal(other CharClass) bool {
	if len(c.ranges) != len(other.ranges) {
		return false
	}
	for i := range c.ranges {
		if c.ranges[i] != other.ranges[i] {
			return false
		}
	}
	return true
}

func (c CharClass) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, r := range c.ranges {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(r.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
