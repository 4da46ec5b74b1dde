package expression

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/types"
)

func evalAny(t *testing.T, e rex.Expression) interface{} {
	t.Helper()
	v, err := e.Eval(rex.NewContext(), rex.NewRow())
	require.NoError(t, err)
	return v
}

func TestArithmeticInteger(t *testing.T) {
	two, three := intLit(2), intLit(3)
	require.Equal(t, int64(5), evalAny(t, NewPlus(two, three)))
	require.Equal(t, int64(-1), evalAny(t, NewMinus(two, three)))
	require.Equal(t, int64(6), evalAny(t, NewMult(two, three)))
	require.Equal(t, int64(3), evalAny(t, NewDiv(intLit(7), two)))
}

func TestArithmeticNullPropagation(t *testing.T) {
	require.Nil(t, evalAny(t, NewPlus(intLit(2), nullInt())))
}

func TestArithmeticDivisionByZero(t *testing.T) {
	_, err := NewDiv(intLit(1), intLit(0)).Eval(rex.NewContext(), rex.NewRow())
	require.Error(t, err)

	_, err = NewCheckedDiv(intLit(1), intLit(0)).Eval(rex.NewContext(), rex.NewRow())
	require.Error(t, err)
}

func TestArithmeticDecimal(t *testing.T) {
	dt := types.NewDecimal(10, 2)
	a := NewLiteral(decimal.RequireFromString("1.50"), dt)
	b := NewLiteral(decimal.RequireFromString("0.25"), dt)
	got := evalAny(t, NewPlus(a, b)).(decimal.Decimal)
	require.True(t, got.Equal(decimal.RequireFromString("1.75")), "got %s", got)
}

func TestArithmeticFloat(t *testing.T) {
	a := NewLiteral(1.5, types.Float64)
	b := NewLiteral(0.5, types.Float64)
	require.Equal(t, 2.0, evalAny(t, NewPlus(a, b)))
}

func TestUnaryArith(t *testing.T) {
	require.Equal(t, int64(-5), evalAny(t, NewUnaryMinus(intLit(5))))
	require.Equal(t, int64(5), evalAny(t, NewUnaryPlus(intLit(5))))

	// -(-x) negates twice rather than canceling at the node level; the
	// cancellation is a simplifier rewrite, not an Eval-level fact.
	require.Equal(t, int64(5), evalAny(t, NewUnaryMinus(NewUnaryMinus(intLit(5)))))

	require.Nil(t, evalAny(t, NewUnaryMinus(nullInt())))
}

func TestArithmeticString(t *testing.T) {
	require.Equal(t, "(2 + 3)", NewPlus(intLit(2), intLit(3)).String())
	require.Equal(t, "(-2)", NewUnaryMinus(intLit(2)).String())
	require.Equal(t, "(+2)", NewUnaryPlus(intLit(2)).String())
}
