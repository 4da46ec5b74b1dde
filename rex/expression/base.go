// Package expression holds the concrete Expression (rex.Expression) node
// kinds: one file per kind or small family of related kinds, exactly the
// teacher's sql/expression layout (and_or.go / comparison.go / isnull.go /
// case.go / between.go / in.go / like.go / convert.go / arithmetic.go / ...).
package expression

import (
	"fmt"

	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/types"
)

// UnaryExpression is an embeddable base for single-child nodes, mirroring the
// teacher's expression.UnaryExpression convention.
type UnaryExpression struct {
	Child rex.Expression
}

func (u *UnaryExpression) Children() []rex.Expression {
	if u.Child == nil {
		return nil
	}
	return []rex.Expression{u.Child}
}

func (u *UnaryExpression) Deterministic() bool {
	return u.Child == nil || u.Child.Deterministic()
}

func arity1(children []rex.Expression) (rex.Expression, error) {
	if len(children) != 1 {
		return nil, rex.ErrMalformedExpression.New(fmt.Sprintf("expected 1 child, got %d", len(children)))
	}
	return children[0], nil
}

// BinaryExpression is an embeddable base for two-child nodes, mirroring the
// teacher's expression.BinaryExpression convention.
type BinaryExpression struct {
	Left, Right rex.Expression
}

func (b *BinaryExpression) Children() []rex.Expression {
	return []rex.Expression{b.Left, b.Right}
}

func (b *BinaryExpression) Deterministic() bool {
	return b.Left.Deterministic() && b.Right.Deterministic()
}

func arity2(children []rex.Expression) (rex.Expression, rex.Expression, error) {
	if len(children) != 2 {
		return nil, nil, rex.ErrMalformedExpression.New(fmt.Sprintf("expected 2 children, got %d", len(children)))
	}
	return children[0], children[1], nil
}

// booleanType returns the Boolean type, nullable iff any of operands is.
func booleanType(operands ...rex.Expression) types.Type {
	for _, o := range operands {
		if o != nil && o.IsNullable() {
			return types.Nullable(types.Boolean)
		}
	}
	return types.Boolean
}

func allDeterministic(operands []rex.Expression) bool {
	for _, o := range operands {
		if !o.Deterministic() {
			return false
		}
	}
	return true
}
