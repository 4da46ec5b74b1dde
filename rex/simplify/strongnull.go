package simplify

import (
	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/expression"
	"github.com/go-rex/rexsimplify/rex/types"
)

// Policy classifies how an expression kind's result nullability depends on
// its operands, per spec.md §4.4.
type Policy int

const (
	// NotNull: the result is never null, regardless of operands.
	NotNull Policy = iota
	// Any: the result is null iff any strict operand is null.
	Any
	// AsIs: unknown / not specially analyzed; treated conservatively.
	AsIs
	// Custom: handled case by case (LITERAL checks its own value; CAST and
	// FIELD_ACCESS have independent nullability).
	Custom
)

// StrongNullPolicy returns e's strong-null classification.
func StrongNullPolicy(e rex.Expression) Policy {
	switch e.(type) {
	case *expression.Literal:
		return Custom
	case *expression.Convert, *expression.FieldAccess:
		return Custom
	case *expression.IsNull, *expression.Is:
		return NotNull
	case *expression.In:
		return AsIs
	}
	switch e.Kind() {
	case rex.AND, rex.OR, rex.NOT,
		rex.EQUALS, rex.NOT_EQUALS, rex.LESS_THAN, rex.LESS_THAN_OR_EQUAL,
		rex.GREATER_THAN, rex.GREATER_THAN_OR_EQUAL,
		rex.PLUS, rex.MINUS, rex.TIMES, rex.DIVIDE,
		rex.CHECKED_PLUS, rex.CHECKED_MINUS, rex.CHECKED_TIMES, rex.CHECKED_DIVIDE,
		rex.PLUS_PREFIX, rex.MINUS_PREFIX, rex.LIKE, rex.TRIM, rex.LTRIM, rex.RTRIM:
		return Any
	case rex.IS_DISTINCT_FROM, rex.IS_NOT_DISTINCT_FROM, rex.COALESCE, rex.CASE, rex.SEARCH, rex.BETWEEN, rex.IN, rex.NOT_IN:
		return NotNull
	default:
		return AsIs
	}
}

// IsNull conservatively determines whether e is statically known to be NULL:
// true only for a literal NULL and strict compositions of such (spec.md
// §4.4 "conservatively true only for literal NULL and strict compositions
// thereof").
func IsNull(e rex.Expression) bool {
	if lit, ok := e.(*expression.Literal); ok {
		return lit.IsNull()
	}
	if StrongNullPolicy(e) != Any {
		return false
	}
	for _, c := range e.Children() {
		if IsNull(c) {
			return true
		}
	}
	return false
}

// RefMask names the set of references (by GetField ordinal) considered
// forced-to-NULL for IsNotTrue's purposes.
type RefMask map[int]bool

func NewRefMask(indices ...int) RefMask {
	m := make(RefMask, len(indices))
	for _, i := range indices {
		m[i] = true
	}
	return m
}

// IsNotTrue reports whether forcing every ref named in mask to NULL forces e
// to be non-true (i.e. FALSE or NULL), per spec.md §4.4. Used by the AND
// engine's "strict-operand contradiction" rule (§4.2 step 7).
func IsNotTrue(e rex.Expression, mask RefMask) bool {
	if gf, ok := e.(*expression.GetField); ok {
		return mask[gf.Index] && e.Type().Family() == types.FamilyBoolean
	}
	policy := StrongNullPolicy(e)
	if policy != Any {
		return false
	}
	for _, c := range e.Children() {
		if refMaskHits(c, mask) {
			return true
		}
	}
	return false
}

// refMaskHits reports whether c is a GetField named in mask, or (recursively,
// for Any-policy operators) strictly forces NULL when the mask fires.
func refMaskHits(e rex.Expression, mask RefMask) bool {
	if gf, ok := e.(*expression.GetField); ok {
		return mask[gf.Index]
	}
	if StrongNullPolicy(e) != Any {
		return false
	}
	for _, c := range e.Children() {
		if refMaskHits(c, mask) {
			return true
		}
	}
	return false
}
