// Package simplify implements the row-expression simplifier: a structural,
// Kind-dispatched rewrite engine operating over rex.Expression trees under
// three-valued logic. Layout mirrors the teacher's sql/analyzer rule-file
// convention (one file per cohesive concern, all exported through Simplifier).
package simplify

import (
	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/expression"
	"github.com/go-rex/rexsimplify/rex/types"
)

// Comparison is the `ref op literal` (or reversed `literal op ref`, kind
// flipped via Kind.Reversed) view spec.md §4.7 describes, used by OR
// simplification and residue computation to recognize a term as sargable.
type Comparison struct {
	Ref     rex.Expression
	Kind    rex.Kind
	Literal *expression.Literal
}

// ComparisonOf recognizes e as a Comparison view, or returns ok=false.
func ComparisonOf(e rex.Expression) (Comparison, bool) {
	c, ok := e.(*expression.Comparison)
	if !ok {
		return Comparison{}, false
	}
	if lit, ok := c.Right.(*expression.Literal); ok && isRefLike(c.Left) {
		return Comparison{Ref: c.Left, Kind: c.Op, Literal: lit}, true
	}
	if lit, ok := c.Left.(*expression.Literal); ok && isRefLike(c.Right) {
		return Comparison{Ref: c.Right, Kind: c.Op.Reversed(), Literal: lit}, true
	}
	return Comparison{}, false
}

// isRefLike reports whether e is an InputRef, FieldAccess, or a deterministic
// call — the reference shapes a Comparison may pivot on (spec.md §4.7).
func isRefLike(e rex.Expression) bool {
	switch e.(type) {
	case *expression.GetField, *expression.FieldAccess:
		return true
	}
	return e.Deterministic() && e.Kind() != rex.LITERAL
}

// IsPredicate recognizes `e IS [NOT] NULL` where the operand is a
// reference-or-access or deterministic (spec.md §4.7).
type IsPredicate struct {
	Operand rex.Expression
	Negated bool
}

func IsPredicateOf(e rex.Expression) (IsPredicate, bool) {
	n, ok := e.(*expression.IsNull)
	if !ok {
		return IsPredicate{}, false
	}
	if !isRefLike(n.Child) && !n.Child.Deterministic() {
		return IsPredicate{}, false
	}
	return IsPredicate{Operand: n.Child, Negated: n.Negated}, true
}

// safeKinds is the set of operator kinds isSafeExpression treats as safe to
// evaluate without side effects or failure beyond a typed NULL, per spec.md
// §4.7 ("literals, input refs, field accesses, lossless casts, and operators
// flagged safe: arithmetic, comparisons, AND, OR, NOT, CASE, LIKE, COALESCE,
// trim variants, BETWEEN, IN, SEARCH, FLOOR, CEIL, TIMESTAMP_ADD,
// TIMESTAMP_DIFF, IS_*").
var safeKinds = map[rex.Kind]bool{
	rex.AND: true, rex.OR: true, rex.NOT: true, rex.CASE: true, rex.LIKE: true,
	rex.COALESCE: true, rex.TRIM: true, rex.LTRIM: true, rex.RTRIM: true,
	rex.BETWEEN: true, rex.IN: true, rex.NOT_IN: true, rex.SEARCH: true,
	rex.FLOOR: true, rex.CEIL: true,
	rex.IS_NULL: true, rex.IS_NOT_NULL: true, rex.IS_TRUE: true,
	rex.IS_NOT_TRUE: true, rex.IS_FALSE: true, rex.IS_NOT_FALSE: true,
	rex.EQUALS: true, rex.NOT_EQUALS: true, rex.LESS_THAN: true,
	rex.LESS_THAN_OR_EQUAL: true, rex.GREATER_THAN: true, rex.GREATER_THAN_OR_EQUAL: true,
	rex.IS_DISTINCT_FROM: true, rex.IS_NOT_DISTINCT_FROM: true,
	rex.PLUS: true, rex.MINUS: true, rex.TIMES: true,
	rex.CHECKED_PLUS: true, rex.CHECKED_MINUS: true, rex.CHECKED_TIMES: true,
	rex.PLUS_PREFIX: true, rex.MINUS_PREFIX: true,
}

// IsSafeExpression reports whether e's whole tree is safe to evaluate: only
// literals, refs, lossless casts, and operators flagged safe above. DIVIDE /
// CHECKED_DIVIDE are safe only when the divisor is a non-null literal;
// window aggregates, subqueries, dynamic parameters are always unsafe.
func IsSafeExpression(e rex.Expression) bool {
	switch v := e.(type) {
	case *expression.Literal, *expression.GetField:
		return true
	case *expression.FieldAccess:
		return IsSafeExpression(v.Parent)
	case *expression.Convert:
		return isLosslessCastNode(v) && IsSafeExpression(v.Child)
	case *expression.Arithmetic:
		switch v.Op {
		case rex.DIVIDE, rex.CHECKED_DIVIDE:
			if lit, ok := v.Right.(*expression.Literal); !ok || lit.IsNull() {
				return false
			}
		default:
			if !safeKinds[v.Op] {
				return false
			}
		}
		return IsSafeExpression(v.Left) && IsSafeExpression(v.Right)
	case *expression.Over, *expression.SubQuery, *expression.DynamicParam, *expression.Lambda:
		return false
	default:
		if !safeKinds[e.Kind()] {
			return false
		}
		for _, c := range e.Children() {
			if !IsSafeExpression(c) {
				return false
			}
		}
		return true
	}
}

func isLosslessCastNode(c *expression.Convert) bool {
	return types.IsLosslessCast(c.Child.Type(), c.Typ)
}
