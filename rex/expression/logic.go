package expression

import (
	"fmt"

	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/types"
)

// And is a binary conjunction; nested conjunctions are built by JoinAnd as a
// left-deep tree, matching the teacher's JoinAnd (sql/expression/logic_test.go
// TestJoinAnd: `NewAnd(NewAnd(a, b), c)`).
type And struct{ BinaryExpression }

func NewAnd(left, right rex.Expression) *And {
	return &And{BinaryExpression{Left: left, Right: right}}
}

func (a *And) Kind() rex.Kind { return rex.AND }

// Type, IsNullable: conservatively nullable iff either operand is nullable
// (the sharper "FALSE absorbs NULL" fact is a simplifier rewrite, not a
// static type fact, matching the teacher's undecorated And.Type()).
func (a *And) Type() types.Type { return booleanType(a.Left, a.Right) }
func (a *And) IsNullable() bool { return a.Type().IsNullable() }

func (a *And) Eval(ctx *rex.Context, row rex.Row) (interface{}, error) {
	l, err := a.Left.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	if lb, ok := l.(bool); ok && !lb {
		return false, nil
	}
	r, err := a.Right.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	if rb, ok := r.(bool); ok && !rb {
		return false, nil
	}
	if l == nil || r == nil {
		return nil, nil
	}
	lb, lok := l.(bool)
	rb, rok := r.(bool)
	if lok && rok {
		return lb && rb, nil
	}
	return false, nil
}

func (a *And) WithChildren(children ...rex.Expression) (rex.Expression, error) {
	l, r, err := arity2(children)
	if err != nil {
		return nil, err
	}
	return NewAnd(l, r), nil
}

func (a *And) String() string { return fmt.Sprintf("(%s AND %s)", a.Left, a.Right) }

// Or is the dual of And.
type Or struct{ BinaryExpression }

func NewOr(left, right rex.Expression) *Or {
	return &Or{BinaryExpression{Left: left, Right: right}}
}

func (o *Or) Kind() rex.Kind   { return rex.OR }
func (o *Or) Type() types.Type { return booleanType(o.Left, o.Right) }
func (o *Or) IsNullable() bool { return o.Type().IsNullable() }

func (o *Or) Eval(ctx *rex.Context, row rex.Row) (interface{}, error) {
	l, err := o.Left.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	if lb, ok := l.(bool); ok && lb {
		return true, nil
	}
	r, err := o.Right.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	if rb, ok := r.(bool); ok && rb {
		return true, nil
	}
	if l == nil || r == nil {
		return nil, nil
	}
	lb, lok := l.(bool)
	rb, rok := r.(bool)
	if lok && rok {
		return lb || rb, nil
	}
	return false, nil
}

func (o *Or) WithChildren(children ...rex.Expression) (rex.Expression, error) {
	l, r, err := arity2(children)
	if err != nil {
		return nil, err
	}
	return NewOr(l, r), nil
}

func (o *Or) String() string { return fmt.Sprintf("(%s OR %s)", o.Left, o.Right) }

// Not is a boolean negation.
type Not struct{ UnaryExpression }

func NewNot(child rex.Expression) *Not {
	return &Not{UnaryExpression{Child: child}}
}

func (n *Not) Kind() rex.Kind   { return rex.NOT }
func (n *Not) Type() types.Type { return booleanType(n.Child) }
func (n *Not) IsNullable() bool { return n.Type().IsNullable() }

func (n *Not) Eval(ctx *rex.Context, row rex.Row) (interface{}, error) {
	v, err := n.Child.Eval(ctx, row)
	if err != nil || v == nil {
		return nil, err
	}
	b, ok := v.(bool)
	if !ok {
		return nil, rex.ErrMalformedExpression.New("NOT operand did not evaluate to a boolean")
	}
	return !b, nil
}

func (n *Not) WithChildren(children ...rex.Expression) (rex.Expression, error) {
	c, err := arity1(children)
	if err != nil {
		return nil, err
	}
	return NewNot(c), nil
}

func (n *Not) String() string { return fmt.Sprintf("(NOT %s)", n.Child) }

// JoinAnd folds a slice of expressions into a left-deep AND tree, exactly the
// teacher's JoinAnd (sql/expression). An empty slice yields nil; a one
// element slice returns that element unchanged.
func JoinAnd(exprs ...rex.Expression) rex.Expression {
	if len(exprs) == 0 {
		return nil
	}
	result := exprs[0]
	for _, e := range exprs[1:] {
		result = NewAnd(result, e)
	}
	return result
}

// JoinOr is JoinAnd's OR dual.
func JoinOr(exprs ...rex.Expression) rex.Expression {
	if len(exprs) == 0 {
		return nil
	}
	result := exprs[0]
	for _, e := range exprs[1:] {
		result = NewOr(result, e)
	}
	return result
}

// FlattenAnd recursively decomposes e into its conjunctive terms, flattening
// nested And nodes — the "conjunctive decomposition that also flattens nested
// ANDs" spec.md §4.2 describes for simplifyAnd2.
func FlattenAnd(e rex.Expression) []rex.Expression {
	and, ok := e.(*And)
	if !ok {
		return []rex.Expression{e}
	}
	return append(FlattenAnd(and.Left), FlattenAnd(and.Right)...)
}

// FlattenOr is FlattenAnd's disjunctive dual.
func FlattenOr(e rex.Expression) []rex.Expression {
	or, ok := e.(*Or)
	if !ok {
		return []rex.Expression{e}
	}
	return append(FlattenOr(or.Left), FlattenOr(or.Right)...)
}
