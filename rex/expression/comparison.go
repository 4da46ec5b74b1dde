package expression

import (
	"fmt"

	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/types"
)

// Comparison is the shared representation of EQUALS, NOT_EQUALS, LESS_THAN,
// LESS_THAN_OR_EQUAL, GREATER_THAN, GREATER_THAN_OR_EQUAL, IS_DISTINCT_FROM,
// and IS_NOT_DISTINCT_FROM — one struct parameterized by op, matching the
// teacher's pattern of small per-operator wrapper types (comparison_test.go)
// but collapsing the boilerplate since all eight share identical shape.
type Comparison struct {
	BinaryExpression
	Op rex.Kind
}

func newComparison(op rex.Kind, left, right rex.Expression) *Comparison {
	return &Comparison{BinaryExpression{Left: left, Right: right}, op}
}

func NewEquals(left, right rex.Expression) *Comparison           { return newComparison(rex.EQUALS, left, right) }
func NewNotEquals(left, right rex.Expression) *Comparison        { return newComparison(rex.NOT_EQUALS, left, right) }
func NewLessThan(left, right rex.Expression) *Comparison         { return newComparison(rex.LESS_THAN, left, right) }
func NewLessThanOrEqual(left, right rex.Expression) *Comparison  { return newComparison(rex.LESS_THAN_OR_EQUAL, left, right) }
func NewGreaterThan(left, right rex.Expression) *Comparison      { return newComparison(rex.GREATER_THAN, left, right) }
func NewGreaterThanOrEqual(left, right rex.Expression) *Comparison {
	return newComparison(rex.GREATER_THAN_OR_EQUAL, left, right)
}
func NewIsDistinctFrom(left, right rex.Expression) *Comparison {
	return newComparison(rex.IS_DISTINCT_FROM, left, right)
}
func NewIsNotDistinctFrom(left, right rex.Expression) *Comparison {
	return newComparison(rex.IS_NOT_DISTINCT_FROM, left, right)
}

// NewNullSafeEquals mirrors the teacher's expression.NewNullSafeEquals name
// for IS NOT DISTINCT FROM (`<=>` in MySQL).
func NewNullSafeEquals(left, right rex.Expression) *Comparison { return NewIsNotDistinctFrom(left, right) }

func (c *Comparison) Kind() rex.Kind { return c.Op }

func (c *Comparison) Type() types.Type {
	if c.Op == rex.IS_DISTINCT_FROM || c.Op == rex.IS_NOT_DISTINCT_FROM {
		return types.Boolean
	}
	return booleanType(c.Left, c.Right)
}
func (c *Comparison) IsNullable() bool { return c.Type().IsNullable() }

func (c *Comparison) WithChildren(children ...rex.Expression) (rex.Expression, error) {
	l, r, err := arity2(children)
	if err != nil {
		return nil, err
	}
	return newComparison(c.Op, l, r), nil
}

func (c *Comparison) Eval(ctx *rex.Context, row rex.Row) (interface{}, error) {
	l, err := c.Left.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	r, err := c.Right.Eval(ctx, row)
	if err != nil {
		return nil, err
	}

	switch c.Op {
	case rex.IS_DISTINCT_FROM:
		if l == nil || r == nil {
			return l != r, nil
		}
		eq, err := valuesEqual(l, r, c.family())
		if err != nil {
			return nil, err
		}
		return !eq, nil
	case rex.IS_NOT_DISTINCT_FROM:
		if l == nil || r == nil {
			return l == r, nil
		}
		eq, err := valuesEqual(l, r, c.family())
		if err != nil {
			return nil, err
		}
		return eq, nil
	}

	if l == nil || r == nil {
		return nil, nil
	}

	cmp, err := compareValues(l, r, c.family())
	if err != nil {
		return nil, err
	}
	switch c.Op {
	case rex.EQUALS:
		return cmp == 0, nil
	case rex.NOT_EQUALS:
		return cmp != 0, nil
	case rex.LESS_THAN:
		return cmp < 0, nil
	case rex.LESS_THAN_OR_EQUAL:
		return cmp <= 0, nil
	case rex.GREATER_THAN:
		return cmp > 0, nil
	case rex.GREATER_THAN_OR_EQUAL:
		return cmp >= 0, nil
	}
	return nil, fmt.Errorf("rexsimplify: unhandled comparison kind %s", c.Op)
}

func (c *Comparison) family() types.Family {
	ft := types.LeastRestrictive(c.Left.Type(), c.Right.Type())
	return ft.Family()
}

var comparisonSymbols = map[rex.Kind]string{
	rex.EQUALS:                "=",
	rex.NOT_EQUALS:             "<>",
	rex.LESS_THAN:              "<",
	rex.LESS_THAN_OR_EQUAL:     "<=",
	rex.GREATER_THAN:           ">",
	rex.GREATER_THAN_OR_EQUAL:  ">=",
	rex.IS_DISTINCT_FROM:       "IS DISTINCT FROM",
	rex.IS_NOT_DISTINCT_FROM:   "IS NOT DISTINCT FROM",
}

func (c *Comparison) String() string {
	return fmt.Sprintf("(%s %s %s)", c.Left, comparisonSymbols[c.Op], c.Right)
}
