package expression

import (
	"fmt"

	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/types"
)

// Over, SubQuery, DynamicParam, and Lambda are treated as opaque by the
// simplifier (spec.md §3: "SubQuery / DynamicParam / Lambda / … — treated
// as opaque by the simplifier"); they carry no rewrite logic of their own
// beyond Children()/WithChildren() plumbing, same as the teacher's
// expression.Subquery / expression.GetSessionField style leaves that the
// analyzer passes through untouched.

// Over is a windowed aggregate call: Over(call, window) (spec.md §3).
type Over struct {
	Call   rex.Expression
	Window []rex.Expression // PARTITION BY / ORDER BY terms, opaque to the simplifier
	Typ    types.Type
	Pos    rex.Pos
}

func NewOver(call rex.Expression, window []rex.Expression, typ types.Type) *Over {
	return &Over{Call: call, Window: window, Typ: typ}
}

func (o *Over) Kind() rex.Kind         { return rex.OVER }
func (o *Over) Type() types.Type       { return o.Typ }
func (o *Over) IsNullable() bool       { return o.Typ.IsNullable() }
func (o *Over) Deterministic() bool    { return false } // window aggregates are order-dependent, never folded
func (o *Over) Children() []rex.Expression {
	return append([]rex.Expression{o.Call}, o.Window...)
}

func (o *Over) WithChildren(children ...rex.Expression) (rex.Expression, error) {
	if len(children) < 1 {
		return nil, rex.ErrMalformedExpression.New("Over expects at least 1 child")
	}
	return &Over{Call: children[0], Window: children[1:], Typ: o.Typ}, nil
}

func (o *Over) Eval(ctx *rex.Context, row rex.Row) (interface{}, error) {
	return nil, rex.ErrExecutorFailed.New("OVER cannot be evaluated outside a window context")
}

func (o *Over) String() string { return fmt.Sprintf("%s OVER (...)", o.Call) }

// SubQuery is an opaque correlated or uncorrelated subquery reference.
type SubQuery struct {
	Query string // opaque plan handle; the simplifier never looks inside it
	Typ   types.Type
	Pos   rex.Pos
}

func NewSubQuery(query string, typ types.Type) *SubQuery { return &SubQuery{Query: query, Typ: typ} }

func (s *SubQuery) Kind() rex.Kind           { return rex.SUBQUERY }
func (s *SubQuery) Type() types.Type         { return s.Typ }
func (s *SubQuery) IsNullable() bool         { return s.Typ.IsNullable() }
func (s *SubQuery) Deterministic() bool      { return false }
func (s *SubQuery) Children() []rex.Expression { return nil }
func (s *SubQuery) WithChildren(children ...rex.Expression) (rex.Expression, error) {
	if len(children) != 0 {
		return nil, rex.ErrMalformedExpression.New("SubQuery expects 0 children")
	}
	return s, nil
}
func (s *SubQuery) Eval(ctx *rex.Context, row rex.Row) (interface{}, error) {
	return nil, rex.ErrExecutorFailed.New("SubQuery has no inline evaluation")
}
func (s *SubQuery) String() string { return fmt.Sprintf("(%s)", s.Query) }

// DynamicParam is a `?`-style bind placeholder; it has no compile-time
// value and is never safe to fold or reorder past.
type DynamicParam struct {
	Name string
	Typ  types.Type
	Pos  rex.Pos
}

func NewDynamicParam(name string, typ types.Type) *DynamicParam { return &DynamicParam{Name: name, Typ: typ} }

func (d *DynamicParam) Kind() rex.Kind           { return rex.DYNAMIC_PARAM }
func (d *DynamicParam) Type() types.Type         { return d.Typ }
func (d *DynamicParam) IsNullable() bool         { return d.Typ.IsNullable() }
func (d *DynamicParam) Deterministic() bool      { return false }
func (d *DynamicParam) Children() []rex.Expression { return nil }
func (d *DynamicParam) WithChildren(children ...rex.Expression) (rex.Expression, error) {
	if len(children) != 0 {
		return nil, rex.ErrMalformedExpression.New("DynamicParam expects 0 children")
	}
	return d, nil
}
func (d *DynamicParam) Eval(ctx *rex.Context, row rex.Row) (interface{}, error) {
	return nil, rex.ErrExecutorFailed.New("DynamicParam has no bound value at simplification time")
}
func (d *DynamicParam) String() string { return "?" + d.Name }

// Lambda wraps a Body expression referencing free Params, used by
// higher-order array/map functions; opaque to every rewrite rule.
type Lambda struct {
	Params []string
	Body   rex.Expression
	Pos    rex.Pos
}

func NewLambda(params []string, body rex.Expression) *Lambda { return &Lambda{Params: params, Body: body} }

func (l *Lambda) Kind() rex.Kind           { return rex.LAMBDA }
func (l *Lambda) Type() types.Type         { return l.Body.Type() }
func (l *Lambda) IsNullable() bool         { return l.Body.IsNullable() }
func (l *Lambda) Deterministic() bool      { return false }
func (l *Lambda) Children() []rex.Expression { return []rex.Expression{l.Body} }
func (l *Lambda) WithChildren(children ...rex.Expression) (rex.Expression, error) {
	body, err := arity1(children)
	if err != nil {
		return nil, err
	}
	return &Lambda{Params: l.Params, Body: body}, nil
}
func (l *Lambda) Eval(ctx *rex.Context, row rex.Row) (interface{}, error) {
	return nil, rex.ErrExecutorFailed.New("Lambda requires a calling context to bind its params")
}
func (l *Lambda) String() string { return fmt.Sprintf("(%v -> %s)", l.Params, l.Body) }

// GenericCall is the catch-all operator application (`Call(op, operands,
// type)` in spec.md §3) for any builtin not modeled as its own node kind.
type GenericCall struct {
	Op       string
	Operands []rex.Expression
	Typ      types.Type
	Det      bool
	Pos      rex.Pos
}

func NewGenericCall(op string, operands []rex.Expression, typ types.Type, deterministic bool) *GenericCall {
	return &GenericCall{Op: op, Operands: operands, Typ: typ, Det: deterministic}
}

func (g *GenericCall) Kind() rex.Kind           { return rex.GENERIC_CALL }
func (g *GenericCall) Type() types.Type         { return g.Typ }
func (g *GenericCall) IsNullable() bool         { return g.Typ.IsNullable() }
func (g *GenericCall) Deterministic() bool      { return g.Det && allDeterministic(g.Operands) }
func (g *GenericCall) Children() []rex.Expression { return g.Operands }
func (g *GenericCall) WithChildren(children ...rex.Expression) (rex.Expression, error) {
	return &GenericCall{Op: g.Op, Operands: children, Typ: g.Typ, Det: g.Det}, nil
}
func (g *GenericCall) Eval(ctx *rex.Context, row rex.Row) (interface{}, error) {
	return nil, rex.ErrExecutorFailed.New(fmt.Sprintf("GenericCall %q has no builtin implementation; route through an Executor", g.Op))
}
func (g *GenericCall) String() string {
	parts := make([]string, len(g.Operands))
	for i, o := range g.Operands {
		parts[i] = o.String()
	}
	return fmt.Sprintf("%s(%v)", g.Op, parts)
}
