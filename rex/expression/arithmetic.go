package expression

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/types"
)

// Arithmetic is the shared representation of PLUS/MINUS/TIMES/DIVIDE and
// their CHECKED_* overflow-aware variants (spec.md §3, §4.1 rule 11).
type Arithmetic struct {
	BinaryExpression
	Op rex.Kind
}

func newArithmetic(op rex.Kind, left, right rex.Expression) *Arithmetic {
	return &Arithmetic{BinaryExpression{Left: left, Right: right}, op}
}

func NewPlus(l, r rex.Expression) *Arithmetic  { return newArithmetic(rex.PLUS, l, r) }
func NewMinus(l, r rex.Expression) *Arithmetic { return newArithmetic(rex.MINUS, l, r) }
func NewMult(l, r rex.Expression) *Arithmetic  { return newArithmetic(rex.TIMES, l, r) }
func NewDiv(l, r rex.Expression) *Arithmetic   { return newArithmetic(rex.DIVIDE, l, r) }

func NewCheckedPlus(l, r rex.Expression) *Arithmetic  { return newArithmetic(rex.CHECKED_PLUS, l, r) }
func NewCheckedMinus(l, r rex.Expression) *Arithmetic { return newArithmetic(rex.CHECKED_MINUS, l, r) }
func NewCheckedMult(l, r rex.Expression) *Arithmetic  { return newArithmetic(rex.CHECKED_TIMES, l, r) }
func NewCheckedDiv(l, r rex.Expression) *Arithmetic   { return newArithmetic(rex.CHECKED_DIVIDE, l, r) }

func (a *Arithmetic) Kind() rex.Kind { return a.Op }

func (a *Arithmetic) Type() types.Type {
	t := types.LeastRestrictive(a.Left.Type(), a.Right.Type())
	if a.Left.IsNullable() || a.Right.IsNullable() {
		return types.Nullable(t)
	}
	return types.NotNull(t)
}
func (a *Arithmetic) IsNullable() bool { return a.Type().IsNullable() }

func (a *Arithmetic) WithChildren(children ...rex.Expression) (rex.Expression, error) {
	l, r, err := arity2(children)
	if err != nil {
		return nil, err
	}
	return newArithmetic(a.Op, l, r), nil
}

func (a *Arithmetic) unchecked() rex.Kind {
	if u, ok := a.Op.Checked(); ok {
		return u
	}
	return a.Op
}

func (a *Arithmetic) Eval(ctx *rex.Context, row rex.Row) (interface{}, error) {
	l, err := a.Left.Eval(ctx, row)
	if err != nil || l == nil {
		return nil, err
	}
	r, err := a.Right.Eval(ctx, row)
	if err != nil || r == nil {
		return nil, err
	}

	fam := types.LeastRestrictive(a.Left.Type(), a.Right.Type()).Family()
	op := a.unchecked()
	checked := op != a.Op

	if fam == types.FamilyDecimal {
		ld, err := asDecimal(l)
		if err != nil {
			return nil, err
		}
		rd, err := asDecimal(r)
		if err != nil {
			return nil, err
		}
		switch op {
		case rex.PLUS:
			return ld.Add(rd), nil
		case rex.MINUS:
			return ld.Sub(rd), nil
		case rex.TIMES:
			return ld.Mul(rd), nil
		case rex.DIVIDE:
			if rd.IsZero() {
				return nil, divByZeroErr(checked)
			}
			return ld.Div(rd), nil
		}
	}

	if fam == types.FamilyInteger {
		li, ri := asInt64(l), asInt64(r)
		switch op {
		case rex.PLUS:
			return li + ri, nil
		case rex.MINUS:
			return li - ri, nil
		case rex.TIMES:
			return li * ri, nil
		case rex.DIVIDE:
			if ri == 0 {
				return nil, divByZeroErr(checked)
			}
			return li / ri, nil
		}
	}

	lf, rf := asFloat64(l), asFloat64(r)
	switch op {
	case rex.PLUS:
		return lf + rf, nil
	case rex.MINUS:
		return lf - rf, nil
	case rex.TIMES:
		return lf * rf, nil
	case rex.DIVIDE:
		if rf == 0 {
			return nil, divByZeroErr(checked)
		}
		return lf / rf, nil
	}
	return nil, fmt.Errorf("rexsimplify: unhandled arithmetic kind %s", a.Op)
}

func divByZeroErr(checked bool) error {
	if checked {
		return fmt.Errorf("rexsimplify: division by zero (checked)")
	}
	return fmt.Errorf("rexsimplify: division by zero")
}

var arithSymbols = map[rex.Kind]string{
	rex.PLUS: "+", rex.MINUS: "-", rex.TIMES: "*", rex.DIVIDE: "/",
	rex.CHECKED_PLUS: "+", rex.CHECKED_MINUS: "-", rex.CHECKED_TIMES: "*", rex.CHECKED_DIVIDE: "/",
}

func (a *Arithmetic) String() string {
	return fmt.Sprintf("(%s %s %s)", a.Left, arithSymbols[a.Op], a.Right)
}

// UnaryArith implements PLUS_PREFIX/MINUS_PREFIX (spec.md §4.1
// rule 12: "-(-x) → x", "+x → x").
type UnaryArith struct {
	UnaryExpression
	Negative bool
}

func NewUnaryMinus(child rex.Expression) *UnaryArith { return &UnaryArith{UnaryExpression{Child: child}, true} }
func NewUnaryPlus(child rex.Expression) *UnaryArith  { return &UnaryArith{UnaryExpression{Child: child}, false} }

func (u *UnaryArith) Kind() rex.Kind {
	if u.Negative {
		return rex.MINUS_PREFIX
	}
	return rex.PLUS_PREFIX
}

func (u *UnaryArith) Type() types.Type { return u.Child.Type() }
func (u *UnaryArith) IsNullable() bool { return u.Child.IsNullable() }

func (u *UnaryArith) WithChildren(children ...rex.Expression) (rex.Expression, error) {
	c, err := arity1(children)
	if err != nil {
		return nil, err
	}
	return &UnaryArith{UnaryExpression{Child: c}, u.Negative}, nil
}

func (u *UnaryArith) Eval(ctx *rex.Context, row rex.Row) (interface{}, error) {
	v, err := u.Child.Eval(ctx, row)
	if err != nil || v == nil || !u.Negative {
		return v, err
	}
	switch n := v.(type) {
	case int64:
		return -n, nil
	case float64:
		return -n, nil
	case decimal.Decimal:
		return n.Neg(), nil
	default:
		return nil, fmt.Errorf("rexsimplify: cannot negate %T", v)
	}
}

func (u *UnaryArith) String() string {
	if u.Negative {
		return fmt.Sprintf("(-%s)", u.Child)
	}
	return fmt.Sprintf("(+%s)", u.Child)
}
