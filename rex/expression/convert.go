package expression

import (
	"fmt"

	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/types"
)

// Convert implements CAST and SAFE_CAST, named after the teacher's
// expression.Convert (convert_test.go: `NewConvert`/ConvertToSigned etc.);
// Safe distinguishes SAFE_CAST, whose "no-exception" flag is propagated by
// the CAST-folding rule (spec.md §4.1 rule 10) when the simplifier rebuilds a
// CAST around a reduced operand.
type Convert struct {
	UnaryExpression
	Target rex.Expression // set only when building via MakeAbstractCast; nil otherwise
	Typ    types.Type
	Safe   bool
	Pos    rex.Pos
}

func NewCast(child rex.Expression, target types.Type) *Convert {
	return &Convert{UnaryExpression: UnaryExpression{Child: child}, Typ: target, Safe: false}
}

func NewSafeCast(child rex.Expression, target types.Type) *Convert {
	return &Convert{UnaryExpression: UnaryExpression{Child: child}, Typ: target, Safe: true}
}

func (c *Convert) Kind() rex.Kind {
	if c.Safe {
		return rex.SAFE_CAST
	}
	return rex.CAST
}

// Type, IsNullable: CAST has independent nullability rules (spec.md §4.1 rule
// 6 calls out CAST as one of the operators IS NULL push-through must not
// cross): a SAFE_CAST is always nullable (a failed coercion yields NULL
// instead of an error), while a plain CAST's nullability is the declared
// target type's, widened if the operand is nullable.
func (c *Convert) Type() types.Type {
	if c.Safe {
		return types.Nullable(c.Typ)
	}
	if c.Child.IsNullable() {
		return types.Nullable(c.Typ)
	}
	return c.Typ
}

func (c *Convert) IsNullable() bool { return c.Type().IsNullable() }

func (c *Convert) WithChildren(children ...rex.Expression) (rex.Expression, error) {
	child, err := arity1(children)
	if err != nil {
		return nil, err
	}
	return &Convert{UnaryExpression: UnaryExpression{Child: child}, Typ: c.Typ, Safe: c.Safe}, nil
}

func (c *Convert) Eval(ctx *rex.Context, row rex.Row) (interface{}, error) {
	v, err := c.Child.Eval(ctx, row)
	if err != nil {
		if c.Safe {
			return nil, nil
		}
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	out, err := coerce(v, c.Typ)
	if err != nil {
		if c.Safe {
			return nil, nil
		}
		return nil, err
	}
	return out, nil
}

// coerce performs the actual value conversion; it is intentionally small and
// covers only the families this module's types package defines. A real
// engine's CAST would delegate this to its own type system — here it stands
// in for that black box, exercised only by the builtin Executor and by Eval.
func coerce(v interface{}, target types.Type) (interface{}, error) {
	switch target.Family() {
	case types.FamilyInteger:
		return asInt64(v), nil
	case types.FamilyFloat:
		return asFloat64(v), nil
	case types.FamilyDecimal:
		return asDecimal(v)
	case types.FamilyString:
		return fmt.Sprintf("%v", v), nil
	case types.FamilyBoolean:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("rexsimplify: cannot cast %T to BOOLEAN", v)
		}
		return b, nil
	default:
		return v, nil
	}
}

func (c *Convert) String() string {
	name := "CAST"
	if c.Safe {
		name = "SAFE_CAST"
	}
	return fmt.Sprintf("%s(%s AS %s)", name, c.Child, c.Typ.Name())
}
