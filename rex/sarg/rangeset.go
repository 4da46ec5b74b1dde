package sarg

import (
	"sort"
	"strings"
)

// RangeSet is a disjoint union of intervals in canonical form (sorted,
// non-overlapping, non-adjacent), matching the invariant spec.md §3 requires
// of a Sarg's rangeSet. Grounded on the teacher's []sql.MySQLRangeColumnExpr
// collections (sql/range_test.go builds and normalizes slices of these).
type RangeSet[T any] struct {
	ranges []Range[T]
	cmp    func(a, b T) int
}

func NewRangeSet[T any](cmp func(a, b T) int, ranges ...Range[T]) RangeSet[T] {
	rs := RangeSet[T]{cmp: cmp, ranges: append([]Range[T]{}, ranges...)}
	return rs.canonicalize()
}

func Empty[T any](cmp func(a, b T) int) RangeSet[T] { return RangeSet[T]{cmp: cmp} }
func Universe[T any](cmp func(a, b T) int) RangeSet[T] {
	return RangeSet[T]{cmp: cmp, ranges: []Range[T]{All[T]()}}
}

func (rs RangeSet[T]) Ranges() []Range[T] { return append([]Range[T]{}, rs.ranges...) }
func (rs RangeSet[T]) IsEmpty() bool      { return len(rs.ranges) == 0 }
func (rs RangeSet[T]) IsAll() bool        { return len(rs.ranges) == 1 && rs.ranges[0].IsAll(rs.cmp) }

// IsPoints reports whether every range in the set is a single point, and
// returns them in ascending order.
func (rs RangeSet[T]) IsPoints() ([]T, bool) {
	out := make([]T, 0, len(rs.ranges))
	for _, r := range rs.ranges {
		v, ok := r.IsPoint(rs.cmp)
		if !ok {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}

// Complexity counts the number of finite endpoints in the set, per spec.md
// §3 ("count of endpoints + 1 if nullAs ≠ FALSE", the +1 handled by Sarg).
func (rs RangeSet[T]) Complexity() int {
	n := 0
	for _, r := range rs.ranges {
		if !r.Lower.IsBelowAll() {
			n++
		}
		if !r.Upper.IsAboveAll() {
			n++
		}
	}
	return n
}

func (rs RangeSet[T]) canonicalize() RangeSet[T] {
	if len(rs.ranges) == 0 {
		return rs
	}
	filtered := rs.ranges[:0:0]
	for _, r := range rs.ranges {
		if !r.IsEmpty(rs.cmp) {
			filtered = append(filtered, r)
		}
	}
	if len(filtered) == 0 {
		rs.ranges = nil
		return rs
	}
	sort.Slice(filtered, func(i, j int) bool { return Less(filtered[i].Lower, filtered[j].Lower, rs.cmp) })

	merged := []Range[T]{filtered[0]}
	for _, r := range filtered[1:] {
		last := merged[len(merged)-1]
		if u, ok := last.TryUnion(r, rs.cmp); ok {
			merged[len(merged)-1] = u
			continue
		}
		merged = append(merged, r)
	}
	rs.ranges = merged
	return rs
}

func (rs RangeSet[T]) Union(o RangeSet[T]) RangeSet[T] {
	combined := append(append([]Range[T]{}, rs.ranges...), o.ranges...)
	return RangeSet[T]{cmp: rs.cmp, ranges: combined}.canonicalize()
}

func (rs RangeSet[T]) Intersect(o RangeSet[T]) RangeSet[T] {
	var out []Range[T]
	for _, a := range rs.ranges {
		for _, b := range o.ranges {
			if r, ok := a.TryIntersect(b, rs.cmp); ok {
				out = append(out, r)
			}
		}
	}
	return RangeSet[T]{cmp: rs.cmp, ranges: out}.canonicalize()
}

// Complement returns the set-complement within (-inf, +inf), mirroring the
// teacher's pattern of deriving NOT from a normalized range collection
// rather than re-deriving it operator by operator.
func (rs RangeSet[T]) Complement() RangeSet[T] {
	if rs.IsEmpty() {
		return Universe(rs.cmp)
	}
	var out []Range[T]
	cursor := BelowAll[T]()
	for _, r := range rs.ranges {
		if !Equal(cursor, r.Lower, rs.cmp) {
			out = append(out, Range[T]{Lower: cursor, Upper: r.Lower})
		}
		cursor = r.Upper
	}
	if !cursor.IsAboveAll() {
		out = append(out, Range[T]{Lower: cursor, Upper: AboveAll[T]()})
	}
	return RangeSet[T]{cmp: rs.cmp, ranges: out}.canonicalize()
}

// flip moves a value cut to the other side of its value (Below <-> Above)
// and swaps the two sentinels.
func flip[T any](c Cut[T]) Cut[T] {
	switch {
	case c.IsBelowAll():
		return AboveAll[T]()
	case c.IsAboveAll():
		return BelowAll[T]()
	case c.typ == Above:
		return NewCut(c.value, Below)
	default:
		return NewCut(c.value, Above)
	}
}

func (rs RangeSet[T]) String() string {
	parts := make([]string, len(rs.ranges))
	for i, r := range rs.ranges {
		parts[i] = r.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
