package sarg

import (
	"fmt"

	"github.com/go-rex/rexsimplify/rex"
)

// Sarg packages a RangeSet[T] with a nullAs UnknownAs classification, per
// spec.md §3: "rangeSet is a disjoint union of intervals in canonical form;
// nullAs is independent of the ranges."
type Sarg[T any] struct {
	Ranges RangeSet[T]
	NullAs rex.UnknownAs
}

func New[T any](ranges RangeSet[T], nullAs rex.UnknownAs) Sarg[T] {
	return Sarg[T]{Ranges: ranges, NullAs: nullAs}
}

// Complement negates only the range component, leaving NullAs untouched;
// Negate (below) is the full logical NOT, which also flips NullAs.
func (s Sarg[T]) Complement() Sarg[T] { return Sarg[T]{Ranges: s.Ranges.Complement(), NullAs: s.NullAs} }

// Negate implements `negate()`: complements the ranges and flips nullAs.
func (s Sarg[T]) Negate() Sarg[T] {
	return Sarg[T]{Ranges: s.Ranges.Complement(), NullAs: s.NullAs.Negate()}
}

func (s Sarg[T]) IsPoints() ([]T, bool) { return s.Ranges.IsPoints() }

// IsComplementedPoints reports whether the negation of this Sarg is a pure
// points set (e.g. `<>` chains represented as the complement of a finite
// point set), used by the SEARCH fix-up's "simple Sarg" test.
func (s Sarg[T]) IsComplementedPoints() ([]T, bool) { return s.Ranges.Complement().IsPoints() }

func (s Sarg[T]) IsAll() bool { return s.Ranges.IsAll() }
func (s Sarg[T]) IsNone() bool { return s.Ranges.IsEmpty() }

// Complexity is "count of endpoints + 1 if nullAs ≠ FALSE" (spec.md §3).
func (s Sarg[T]) Complexity() int {
	n := s.Ranges.Complexity()
	if s.NullAs != rex.FALSE {
		n++
	}
	return n
}

func (s Sarg[T]) String() string { return fmt.Sprintf("Sarg%s/%s", s.Ranges, s.NullAs) }
