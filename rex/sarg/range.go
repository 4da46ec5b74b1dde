package sarg

import "fmt"

// Range is a single interval (Lower, Upper), following the teacher's
// MySQLRangeColumnExpr{LowerBound, UpperBound}. Both ends use the Above/Below
// sentinel-or-value Cut encoding.
type Range[T any] struct {
	Lower Cut[T]
	Upper Cut[T]
}

func NewRange[T any](lower, upper Cut[T]) Range[T] { return Range[T]{Lower: lower, Upper: upper} }

// All mirrors the teacher's AllRangeColumnExpr: (-inf, +inf).
func All[T any]() Range[T] { return Range[T]{Lower: BelowAll[T](), Upper: AboveAll[T]()} }

// Point mirrors a `= v` contribution: [v, v].
func Point[T any](v T) Range[T] { return Range[T]{Lower: NewCut(v, Below), Upper: NewCut(v, Above)} }

// LessThan/LessThanOrEqual/GreaterThan/GreaterThanOrEqual mirror the
// per-kind range contributions table (spec.md §4.3).
func LessThan[T any](v T) Range[T]           { return Range[T]{Lower: BelowAll[T](), Upper: NewCut(v, Below)} }
func LessThanOrEqual[T any](v T) Range[T]    { return Range[T]{Lower: BelowAll[T](), Upper: NewCut(v, Above)} }
func GreaterThan[T any](v T) Range[T]        { return Range[T]{Lower: NewCut(v, Above), Upper: AboveAll[T]()} }
func GreaterThanOrEqual[T any](v T) Range[T] { return Range[T]{Lower: NewCut(v, Below), Upper: AboveAll[T]()} }

func (r Range[T]) IsEmpty(cmp func(a, b T) int) bool {
	return !Less(r.Lower, r.Upper, cmp)
}

func (r Range[T]) IsAll(cmp func(a, b T) int) bool {
	return r.Lower.IsBelowAll() && r.Upper.IsAboveAll()
}

// IsPoint reports whether the range denotes exactly one value, returning it.
func (r Range[T]) IsPoint(cmp func(a, b T) int) (T, bool) {
	var zero T
	if r.Lower.kind != cutValue || r.Upper.kind != cutValue {
		return zero, false
	}
	if r.Lower.typ == Below && r.Upper.typ == Above && cmp(r.Lower.value, r.Upper.value) == 0 {
		return r.Lower.value, true
	}
	return zero, false
}

// Overlaps/Intersect/tryUnion follow the teacher's TryIntersect/TryUnion
// naming (sql/range_column_expr_test.go).
func (r Range[T]) Overlaps(o Range[T], cmp func(a, b T) int) bool {
	lower := r.Lower
	if Less(lower, o.Lower, cmp) {
		lower = o.Lower
	}
	upper := r.Upper
	if Less(o.Upper, upper, cmp) {
		upper = o.Upper
	}
	return !Range[T]{Lower: lower, Upper: upper}.IsEmpty(cmp)
}

// Adjacent reports whether r and o share a boundary with no gap between them
// (e.g. (-inf, 5) and [5, +inf) are adjacent), which lets TryUnion merge
// them into a single contiguous range even though they don't overlap.
func (r Range[T]) Adjacent(o Range[T], cmp func(a, b T) int) bool {
	return touches(r.Upper, o.Lower, cmp) || touches(o.Upper, r.Lower, cmp)
}

func touches[T any](a, b Cut[T], cmp func(x, y T) int) bool {
	if a.kind != cutValue || b.kind != cutValue {
		return false
	}
	return cmp(a.value, b.value) == 0 && a.typ == b.typ
}

func (r Range[T]) TryIntersect(o Range[T], cmp func(a, b T) int) (Range[T], bool) {
	if !r.Overlaps(o, cmp) {
		return Range[T]{}, false
	}
	lower := r.Lower
	if Less(lower, o.Lower, cmp) {
		lower = o.Lower
	}
	upper := r.Upper
	if Less(o.Upper, upper, cmp) {
		upper = o.Upper
	}
	return Range[T]{Lower: lower, Upper: upper}, true
}

func (r Range[T]) TryUnion(o Range[T], cmp func(a, b T) int) (Range[T], bool) {
	if !r.Overlaps(o, cmp) && !r.Adjacent(o, cmp) {
		return Range[T]{}, false
	}
	lower := r.Lower
	if Less(o.Lower, lower, cmp) {
		lower = o.Lower
	}
	upper := r.Upper
	if Less(upper, o.Upper, cmp) {
		upper = o.Upper
	}
	return Range[T]{Lower: lower, Upper: upper}, true
}

func (r Range[T]) String() string { return fmt.Sprintf("%s..%s", r.Lower, r.Upper) }
