package expression

import (
	"fmt"

	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/types"
)

// IsTrueKind selects which of the four IS-predicates an Is node implements.
type IsTrueKind int

const (
	IsTrueOp IsTrueKind = iota
	IsNotTrueOp
	IsFalseOp
	IsNotFalseOp
)

// Is implements IS TRUE / IS NOT TRUE / IS FALSE / IS NOT FALSE, matching the
// teacher's istrue_test.go (NewIsTrue(boolOrNumericOrStringExpr)): the
// operand need not itself be boolean-typed (the teacher tests int/float/
// string operands), a non-zero/non-empty value counting as "true".
type Is struct {
	UnaryExpression
	Op IsTrueKind
}

func NewIsTrue(child rex.Expression) *Is     { return &Is{UnaryExpression{Child: child}, IsTrueOp} }
func NewIsNotTrue(child rex.Expression) *Is  { return &Is{UnaryExpression{Child: child}, IsNotTrueOp} }
func NewIsFalse(child rex.Expression) *Is    { return &Is{UnaryExpression{Child: child}, IsFalseOp} }
func NewIsNotFalse(child rex.Expression) *Is { return &Is{UnaryExpression{Child: child}, IsNotFalseOp} }

func (i *Is) Kind() rex.Kind {
	switch i.Op {
	case IsTrueOp:
		return rex.IS_TRUE
	case IsNotTrueOp:
		return rex.IS_NOT_TRUE
	case IsFalseOp:
		return rex.IS_FALSE
	default:
		return rex.IS_NOT_FALSE
	}
}

func (i *Is) Type() types.Type { return types.Boolean }
func (i *Is) IsNullable() bool { return false }

func (i *Is) WithChildren(children ...rex.Expression) (rex.Expression, error) {
	c, err := arity1(children)
	if err != nil {
		return nil, err
	}
	return &Is{UnaryExpression{Child: c}, i.Op}, nil
}

func truthy(v interface{}, fam types.Family) bool {
	switch fam {
	case types.FamilyBoolean:
		b, _ := v.(bool)
		return b
	case types.FamilyInteger:
		return asInt64(v) != 0
	case types.FamilyFloat:
		return asFloat64(v) != 0
	case types.FamilyString:
		s, _ := v.(string)
		return s != "" && s != "0"
	default:
		return false
	}
}

func (i *Is) Eval(ctx *rex.Context, row rex.Row) (interface{}, error) {
	v, err := i.Child.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	fam := i.Child.Type().Family()
	switch i.Op {
	case IsTrueOp:
		return v != nil && truthy(v, fam), nil
	case IsNotTrueOp:
		return v == nil || !truthy(v, fam), nil
	case IsFalseOp:
		return v != nil && !truthy(v, fam), nil
	default: // IsNotFalseOp
		return v == nil || truthy(v, fam), nil
	}
}

func (i *Is) String() string {
	names := map[IsTrueKind]string{IsTrueOp: "IS TRUE", IsNotTrueOp: "IS NOT TRUE", IsFalseOp: "IS FALSE", IsNotFalseOp: "IS NOT FALSE"}
	return fmt.Sprintf("(%s %s)", i.Child, names[i.Op])
}
