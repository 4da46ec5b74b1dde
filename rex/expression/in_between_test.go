package expression

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-rex/rexsimplify/rex"
)

func TestInThreeValued(t *testing.T) {
	x := intLit(2)
	list := []rex.Expression{intLit(1), intLit(2), intLit(3)}
	require.Equal(t, true, evalAny(t, NewIn(x, list)))
	require.Equal(t, false, evalAny(t, NewIn(intLit(5), list)))
	require.Equal(t, false, evalAny(t, NewNotIn(x, list)))
	require.Equal(t, true, evalAny(t, NewNotIn(intLit(5), list)))
}

func TestInNullPropagation(t *testing.T) {
	// Probe is NULL: UNKNOWN regardless of the list.
	require.Nil(t, evalAny(t, NewIn(nullInt(), []rex.Expression{intLit(1), intLit(2)})))

	// Probe found among non-NULL elements before reaching a NULL: still TRUE,
	// since SQL IN short-circuits on a match.
	withNull := []rex.Expression{intLit(1), nullInt(), intLit(3)}
	require.Equal(t, true, evalAny(t, NewIn(intLit(1), withNull)))

	// No match found, but a NULL element was seen: UNKNOWN, not FALSE.
	require.Nil(t, evalAny(t, NewIn(intLit(9), withNull)))
}

func TestInString(t *testing.T) {
	e := NewIn(intLit(1), []rex.Expression{intLit(1), intLit(2)})
	require.Equal(t, "(1 IN (1, 2))", e.String())
	ne := NewNotIn(intLit(1), []rex.Expression{intLit(1)})
	require.Equal(t, "(1 NOT IN (1))", ne.String())
}

func TestBetweenDesugarsToAnd(t *testing.T) {
	b := NewBetween(intLit(5), intLit(1), intLit(10))
	require.Equal(t, true, evalAny(t, b))
	require.Equal(t, evalAny(t, b.AsAnd()), evalAny(t, b))

	outside := NewBetween(intLit(20), intLit(1), intLit(10))
	require.Equal(t, false, evalAny(t, outside))
}

func TestBetweenNullPropagation(t *testing.T) {
	require.Nil(t, evalAny(t, NewBetween(nullInt(), intLit(1), intLit(10))))
}

func TestBetweenString(t *testing.T) {
	b := NewBetween(intLit(5), intLit(1), intLit(10))
	require.Equal(t, "(5 BETWEEN 1 AND 10)", b.String())
}
