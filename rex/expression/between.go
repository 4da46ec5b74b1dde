package expression

import (
	"fmt"

	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/types"
)

// Between implements `Val BETWEEN Lower AND Upper`, matching the teacher's
// expression.Between (between_test.go). It is kept as its own node rather
// than desugared at construction time because rule 15 ("BETWEEN desugaring")
// rewrites it into `Lower <= Val AND Val <= Upper` only during simplification,
// so the pre-simplified tree still has a single BETWEEN node to inspect.
type Between struct {
	Val   rex.Expression
	Lower rex.Expression
	Upper rex.Expression
	Pos   rex.Pos
}

func NewBetween(val, lower, upper rex.Expression) *Between {
	return &Between{Val: val, Lower: lower, Upper: upper}
}

func (b *Between) Kind() rex.Kind { return rex.BETWEEN }

func (b *Between) Type() types.Type { return booleanType(b.Val, b.Lower, b.Upper) }
func (b *Between) IsNullable() bool { return b.Type().IsNullable() }

func (b *Between) Deterministic() bool {
	return b.Val.Deterministic() && b.Lower.Deterministic() && b.Upper.Deterministic()
}

func (b *Between) Children() []rex.Expression { return []rex.Expression{b.Val, b.Lower, b.Upper} }

func (b *Between) WithChildren(children ...rex.Expression) (rex.Expression, error) {
	if len(children) != 3 {
		return nil, rex.ErrMalformedExpression.New("Between expects exactly 3 children")
	}
	return &Between{Val: children[0], Lower: children[1], Upper: children[2]}, nil
}

// AsAnd desugars BETWEEN into the AND-of-comparisons form the simplifier
// operates on (spec.md §4.1 rule 15).
func (b *Between) AsAnd() rex.Expression {
	return NewAnd(NewLessThanOrEqual(b.Lower, b.Val), NewLessThanOrEqual(b.Val, b.Upper))
}

func (b *Between) Eval(ctx *rex.Context, row rex.Row) (interface{}, error) {
	return b.AsAnd().Eval(ctx, row)
}

func (b *Between) String() string {
	return fmt.Sprintf("(%s BETWEEN %s AND %s)", b.Val, b.Lower, b.Upper)
}
