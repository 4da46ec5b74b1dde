package expression

import (
	"fmt"

	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/types"
)

// IsNull implements IS NULL / IS NOT NULL; the two are distinguished by Negated
// so the strong-null push-through rule (spec.md §4.1 rule 6) can flip one into
// the other without reconstructing a different Go type.
type IsNull struct {
	UnaryExpression
	Negated bool
}

func NewIsNull(child rex.Expression) *IsNull     { return &IsNull{UnaryExpression{Child: child}, false} }
func NewIsNotNull(child rex.Expression) *IsNull   { return &IsNull{UnaryExpression{Child: child}, true} }

func (n *IsNull) Kind() rex.Kind {
	if n.Negated {
		return rex.IS_NOT_NULL
	}
	return rex.IS_NULL
}

func (n *IsNull) Type() types.Type { return types.Boolean }
func (n *IsNull) IsNullable() bool { return false }

func (n *IsNull) WithChildren(children ...rex.Expression) (rex.Expression, error) {
	c, err := arity1(children)
	if err != nil {
		return nil, err
	}
	return &IsNull{UnaryExpression{Child: c}, n.Negated}, nil
}

func (n *IsNull) Eval(ctx *rex.Context, row rex.Row) (interface{}, error) {
	v, err := n.Child.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	isNull := v == nil
	if n.Negated {
		return !isNull, nil
	}
	return isNull, nil
}

func (n *IsNull) String() string {
	if n.Negated {
		return fmt.Sprintf("(%s IS NOT NULL)", n.Child)
	}
	return fmt.Sprintf("(%s IS NULL)", n.Child)
}
