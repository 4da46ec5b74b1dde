package expression

import (
	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/sarg"
	"github.com/go-rex/rexsimplify/rex/types"
)

// Builder is the expression factory the simplifier rebuilds trees through
// (spec.md §6: "makeLiteral, makeNullLiteral, makeCall, makeCast,
// makeAbstractCast, makeSearchArgumentLiteral, makeWindow. Must preserve
// parser positions on rewrites."). A Builder implementation decides how
// much source-position metadata survives a rewrite; DefaultBuilder below
// is the reference implementation used when no host engine supplies one.
type Builder interface {
	MakeLiteral(value interface{}, typ types.Type, pos rex.Pos) rex.Expression
	MakeNullLiteral(typ types.Type, pos rex.Pos) rex.Expression
	MakeCall(kind rex.Kind, operands []rex.Expression, typ types.Type, pos rex.Pos) (rex.Expression, error)
	MakeCast(child rex.Expression, target types.Type, pos rex.Pos) rex.Expression
	MakeAbstractCast(child rex.Expression, target rex.Expression, typ types.Type, pos rex.Pos) rex.Expression
	MakeSearchArgumentLiteral(ref rex.Expression, arg sarg.Sarg[interface{}], pos rex.Pos) rex.Expression
	MakeWindow(call rex.Expression, window []rex.Expression, typ types.Type, pos rex.Pos) rex.Expression
}

// DefaultBuilder is the stock Builder wired into the simplifier when the
// host engine does not supply its own (SPEC_FULL.md §1a), produced from this
// package's own node constructors.
type DefaultBuilder struct{}

func (DefaultBuilder) MakeLiteral(value interface{}, typ types.Type, pos rex.Pos) rex.Expression {
	l := NewLiteral(value, typ)
	l.Pos = pos
	return l
}

func (DefaultBuilder) MakeNullLiteral(typ types.Type, pos rex.Pos) rex.Expression {
	l := NewNullLiteral(typ)
	l.Pos = pos
	return l
}

// MakeCall dispatches kind to the matching constructor. Kinds outside this
// package's closed set (custom builtins) round-trip through GenericCall,
// per spec.md §7 "Unsupported kind during rewrite: falls through to
// simplifyGenericNode; never fatal."
func (DefaultBuilder) MakeCall(kind rex.Kind, operands []rex.Expression, typ types.Type, pos rex.Pos) (rex.Expression, error) {
	mk := func(e rex.Expression) (rex.Expression, error) { return e, nil }
	switch kind {
	case rex.AND:
		return mk(JoinAnd(operands...))
	case rex.OR:
		return mk(JoinOr(operands...))
	case rex.NOT:
		c, err := arity1(operands)
		if err != nil {
			return nil, err
		}
		return mk(NewNot(c))
	case rex.EQUALS, rex.NOT_EQUALS, rex.LESS_THAN, rex.LESS_THAN_OR_EQUAL,
		rex.GREATER_THAN, rex.GREATER_THAN_OR_EQUAL, rex.IS_DISTINCT_FROM, rex.IS_NOT_DISTINCT_FROM:
		l, r, err := arity2(operands)
		if err != nil {
			return nil, err
		}
		return mk(&Comparison{BinaryExpression{Left: l, Right: r}, kind})
	case rex.IS_NULL:
		c, err := arity1(operands)
		if err != nil {
			return nil, err
		}
		return mk(NewIsNull(c))
	case rex.IS_NOT_NULL:
		c, err := arity1(operands)
		if err != nil {
			return nil, err
		}
		return mk(NewIsNotNull(c))
	case rex.COALESCE:
		return mk(NewCoalesce(operands...))
	default:
		return mk(NewGenericCall(kind.String(), operands, typ, true))
	}
}

func (DefaultBuilder) MakeCast(child rex.Expression, target types.Type, pos rex.Pos) rex.Expression {
	c := NewCast(child, target)
	c.Pos = pos
	return c
}

// MakeAbstractCast builds a CAST whose target type is itself an expression
// (e.g. CAST(x AS <dynamic type param>)); the Target field is kept only for
// callers that need to re-inspect the original type expression, the
// simplifier always operates on the resolved Typ.
func (DefaultBuilder) MakeAbstractCast(child rex.Expression, target rex.Expression, typ types.Type, pos rex.Pos) rex.Expression {
	c := NewCast(child, typ)
	c.Target = target
	c.Pos = pos
	return c
}

func (DefaultBuilder) MakeSearchArgumentLiteral(ref rex.Expression, arg sarg.Sarg[interface{}], pos rex.Pos) rex.Expression {
	s := NewSearch(ref, arg)
	s.Pos = pos
	return s
}

func (DefaultBuilder) MakeWindow(call rex.Expression, window []rex.Expression, typ types.Type, pos rex.Pos) rex.Expression {
	o := NewOver(call, window, typ)
	o.Pos = pos
	return o
}
