package expression

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/types"
)

func lit(v interface{}) *Literal { return NewLiteral(v, types.Boolean) }
func nullBool() *Literal         { return NewNullLiteral(types.Boolean) }

func evalBool(t *testing.T, e rex.Expression) interface{} {
	t.Helper()
	v, err := e.Eval(rex.NewContext(), rex.NewRow())
	require.NoError(t, err)
	return v
}

func TestAndThreeValued(t *testing.T) {
	cases := []struct {
		l, r interface{}
		want interface{}
	}{
		{false, true, false},
		{false, nil, false}, // FALSE absorbs NULL
		{true, true, true},
		{true, nil, nil},
		{nil, nil, nil},
	}
	for _, tc := range cases {
		e := NewAnd(lit(tc.l), lit(tc.r))
		require.Equal(t, tc.want, evalBool(t, e), "l=%v r=%v", tc.l, tc.r)
	}
}

func TestOrThreeValued(t *testing.T) {
	cases := []struct {
		l, r interface{}
		want interface{}
	}{
		{true, false, true},
		{true, nil, true}, // TRUE absorbs NULL
		{false, false, false},
		{false, nil, nil},
		{nil, nil, nil},
	}
	for _, tc := range cases {
		e := NewOr(lit(tc.l), lit(tc.r))
		require.Equal(t, tc.want, evalBool(t, e), "l=%v r=%v", tc.l, tc.r)
	}
}

func TestNotThreeValued(t *testing.T) {
	require.Equal(t, false, evalBool(t, NewNot(lit(true))))
	require.Equal(t, true, evalBool(t, NewNot(lit(false))))
	require.Nil(t, evalBool(t, NewNot(nullBool())))
}

func TestJoinAndLeftDeep(t *testing.T) {
	require.Nil(t, JoinAnd())
	a, b, c := lit(true), lit(false), lit(true)
	require.Same(t, rex.Expression(a), JoinAnd(a))

	joined := JoinAnd(a, b, c)
	and, ok := joined.(*And)
	require.True(t, ok)
	require.Same(t, rex.Expression(c), and.Right)
	inner, ok := and.Left.(*And)
	require.True(t, ok)
	require.Same(t, rex.Expression(a), inner.Left)
	require.Same(t, rex.Expression(b), inner.Right)
}

func TestJoinOrLeftDeep(t *testing.T) {
	a, b := lit(true), lit(false)
	joined := JoinOr(a, b)
	or, ok := joined.(*Or)
	require.True(t, ok)
	require.Same(t, rex.Expression(a), or.Left)
	require.Same(t, rex.Expression(b), or.Right)
}

func TestFlattenAndUnnestsNested(t *testing.T) {
	a, b, c := lit(true), lit(false), lit(true)
	nested := NewAnd(NewAnd(a, b), c)
	require.Equal(t, []rex.Expression{a, b, c}, FlattenAnd(nested))

	require.Equal(t, []rex.Expression{a}, FlattenAnd(a))
}

func TestFlattenOrUnnestsNested(t *testing.T) {
	a, b, c := lit(true), lit(false), lit(true)
	nested := NewOr(a, NewOr(b, c))
	require.Equal(t, []rex.Expression{a, b, c}, FlattenOr(nested))
}
