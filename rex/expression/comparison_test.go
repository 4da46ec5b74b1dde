package expression

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/types"
)

func intLit(v int64) *Literal  { return NewLiteral(v, types.Int64) }
func nullInt() *Literal        { return NewNullLiteral(types.Int64) }

func TestComparisonOrdering(t *testing.T) {
	two, three := intLit(2), intLit(3)
	cases := []struct {
		e    rex.Expression
		want bool
	}{
		{NewEquals(two, two), true},
		{NewEquals(two, three), false},
		{NewNotEquals(two, three), true},
		{NewLessThan(two, three), true},
		{NewLessThan(three, two), false},
		{NewLessThanOrEqual(two, two), true},
		{NewGreaterThan(three, two), true},
		{NewGreaterThanOrEqual(two, two), true},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, evalBool(t, tc.e), "%s", tc.e)
	}
}

func TestComparisonNullPropagation(t *testing.T) {
	for _, op := range []func(l, r rex.Expression) *Comparison{
		NewEquals, NewNotEquals, NewLessThan, NewLessThanOrEqual, NewGreaterThan, NewGreaterThanOrEqual,
	} {
		require.Nil(t, evalBool(t, op(intLit(1), nullInt())))
		require.Nil(t, evalBool(t, op(nullInt(), nullInt())))
	}
}

func TestIsDistinctFrom(t *testing.T) {
	one, two := intLit(1), intLit(2)
	require.Equal(t, true, evalBool(t, NewIsDistinctFrom(one, two)))
	require.Equal(t, false, evalBool(t, NewIsDistinctFrom(one, one)))
	// NULL is distinct from any non-NULL value, and not distinct from NULL.
	require.Equal(t, true, evalBool(t, NewIsDistinctFrom(one, nullInt())))
	require.Equal(t, false, evalBool(t, NewIsDistinctFrom(nullInt(), nullInt())))
}

func TestIsNotDistinctFrom(t *testing.T) {
	one := intLit(1)
	require.Equal(t, true, evalBool(t, NewIsNotDistinctFrom(one, one)))
	require.Equal(t, false, evalBool(t, NewIsNotDistinctFrom(one, nullInt())))
	require.Equal(t, true, evalBool(t, NewIsNotDistinctFrom(nullInt(), nullInt())))
	// NewNullSafeEquals is just the teacher-facing alias for the same node.
	require.Equal(t, rex.IS_NOT_DISTINCT_FROM, NewNullSafeEquals(one, one).Kind())
}

func TestComparisonString(t *testing.T) {
	require.Equal(t, "(2 < 3)", NewLessThan(intLit(2), intLit(3)).String())
	require.Equal(t, "(2 IS DISTINCT FROM 3)", NewIsDistinctFrom(intLit(2), intLit(3)).String())
}
