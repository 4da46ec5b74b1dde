package simplify

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/expression"
	"github.com/go-rex/rexsimplify/rex/types"
)

func TestParanoidVerifierAcceptsCorrectSimplification(t *testing.T) {
	x := expression.NewGetField(0, types.Int64, "x", true)
	one := expression.NewLiteral(int64(1), types.Int64)
	e := expression.NewOr(
		expression.NewOr(expression.NewEquals(x, one), expression.NewNot(expression.NewEquals(x, one))),
		expression.NewIsNull(x),
	)
	s := New()
	s.Paranoid = true
	require.NotPanics(t, func() { s.Simplify(e) })
}

func TestParanoidVerifierPanicsOnBogusRewrite(t *testing.T) {
	x := expression.NewGetField(0, types.Int64, "x", false)
	one := expression.NewLiteral(int64(1), types.Int64)
	two := expression.NewLiteral(int64(2), types.Int64)
	// x = 1 and x = 2 are not equivalent for any x, so a verifier fed this
	// "before" against that "after" must reject it.
	before := expression.NewEquals(x, one)
	after := expression.NewEquals(x, two)

	s := New()
	require.Panics(t, func() { s.verify(before, after, rex.UNKNOWN, Empty()) })
}

func TestParanoidVerifierPanicsOnUnreferencedNewVariable(t *testing.T) {
	x := expression.NewGetField(0, types.Int64, "x", false)
	y := expression.NewGetField(1, types.Int64, "y", false)
	one := expression.NewLiteral(int64(1), types.Int64)

	before := expression.NewEquals(x, one)
	after := expression.NewEquals(y, one)

	s := New()
	require.Panics(t, func() { s.verify(before, after, rex.UNKNOWN, Empty()) })
}

func TestParanoidVerifierSkipsUnenumerableDomain(t *testing.T) {
	x := expression.NewGetField(0, types.VarChar, "x", false)
	before := expression.NewEquals(x, expression.NewLiteral("a", types.VarChar))
	after := expression.NewEquals(x, expression.NewLiteral("a", types.VarChar))

	s := New()
	require.NotPanics(t, func() { s.verify(before, after, rex.UNKNOWN, Empty()) })
}

func TestParanoidVerifierSkipsWhenNoReferencedFields(t *testing.T) {
	before := expression.True()
	after := expression.True()
	s := New()
	require.NotPanics(t, func() { s.verify(before, after, rex.UNKNOWN, Empty()) })
}
