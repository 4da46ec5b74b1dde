package simplify

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/expression"
	"github.com/go-rex/rexsimplify/rex/types"
)

func intRef(nullable bool) *expression.GetField {
	return expression.NewGetField(0, types.Int64, "x", nullable)
}

// TestScenario1 covers "x = 1 OR NOT x = 1 OR x IS NULL" -> TRUE.
func TestScenario1(t *testing.T) {
	x := intRef(true)
	one := expression.NewLiteral(int64(1), types.Int64)
	e := expression.NewOr(
		expression.NewOr(expression.NewEquals(x, one), expression.NewNot(expression.NewEquals(x, one))),
		expression.NewIsNull(x),
	)
	out := New().Simplify(e)
	b, ok := expression.IsBooleanLiteral(out)
	require.True(t, ok, "got %s", out)
	require.True(t, b)
}

// TestScenario2 covers "x = 1 AND FALSE" -> FALSE.
func TestScenario2(t *testing.T) {
	x := intRef(false)
	one := expression.NewLiteral(int64(1), types.Int64)
	e := expression.NewAnd(expression.NewEquals(x, one), expression.False())
	out := New().Simplify(e)
	b, ok := expression.IsBooleanLiteral(out)
	require.True(t, ok, "got %s", out)
	require.False(t, b)
}

// TestScenario3 covers "x >= 5 AND x BETWEEN 3 AND 10" with no predicates ->
// an equivalent of x BETWEEN 5 AND 10.
func TestScenario3(t *testing.T) {
	x := intRef(false)
	five := expression.NewLiteral(int64(5), types.Int64)
	three := expression.NewLiteral(int64(3), types.Int64)
	ten := expression.NewLiteral(int64(10), types.Int64)
	e := expression.NewAnd(
		expression.NewGreaterThanOrEqual(x, five),
		expression.NewBetween(x, three, ten),
	)
	out := New().Simplify(e)

	row5 := rex.NewRow(int64(5))
	row10 := rex.NewRow(int64(10))
	row4 := rex.NewRow(int64(4))
	row11 := rex.NewRow(int64(11))
	for _, tc := range []struct {
		row  rex.Row
		want bool
	}{{row5, true}, {row10, true}, {row4, false}, {row11, false}} {
		v, err := out.Eval(rex.NewContext(), tc.row)
		require.NoError(t, err)
		require.Equal(t, tc.want, v, "row=%v out=%s", tc.row, out)
	}
}

// TestScenario4 covers residue under predicate x >= 5.
func TestScenario4(t *testing.T) {
	x := intRef(false)
	five := expression.NewLiteral(int64(5), types.Int64)
	preds := Empty().With(expression.NewGreaterThanOrEqual(x, five))

	s := New()

	lt10 := expression.NewLessThan(x, expression.NewLiteral(int64(10), types.Int64))
	out := s.simplify(lt10, rex.UNKNOWN, preds)
	require.True(t, StructurallyEqual(out, lt10), "got %s", out)

	lt5 := expression.NewLessThan(x, five)
	out = s.simplify(lt5, rex.UNKNOWN, preds)
	b, ok := expression.IsBooleanLiteral(out)
	require.True(t, ok, "got %s", out)
	require.False(t, b)

	// A term already implied entirely by the predicate context (here bounded
	// above as well) collapses to a bare nullability check.
	bounded := preds.With(expression.NewLessThanOrEqual(x, expression.NewLiteral(int64(19), types.Int64)))
	lt20 := expression.NewLessThan(x, expression.NewLiteral(int64(20), types.Int64))
	out = s.simplify(lt20, rex.UNKNOWN, bounded)
	require.Equal(t, "(x IS NOT NULL)", out.String())
}

// TestScenario5 covers "CASE WHEN FALSE THEN 1 ELSE 2 END IS NULL" -> FALSE.
func TestScenario5(t *testing.T) {
	c := &expression.Case{
		Branches: []expression.CaseBranch{{
			Cond:  expression.False(),
			Value: expression.NewLiteral(int64(1), types.Int64),
		}},
		Else: expression.NewLiteral(int64(2), types.Int64),
	}
	e := expression.NewIsNull(c)
	out := New().Simplify(e)
	b, ok := expression.IsBooleanLiteral(out)
	require.True(t, ok, "got %s", out)
	require.False(t, b)
}

// TestScenario6 covers "x <> 1 OR x <> 2" on nullable x -> x IS NOT NULL OR
// NULL. Asserts the simplified shape, not just Eval-equivalence: the
// unsimplified tree also happens to satisfy the two probed rows, so an
// Eval-only check cannot tell the merge rule actually fired.
func TestScenario6(t *testing.T) {
	x := intRef(true)
	one := expression.NewLiteral(int64(1), types.Int64)
	two := expression.NewLiteral(int64(2), types.Int64)
	e := expression.NewOr(expression.NewNotEquals(x, one), expression.NewNotEquals(x, two))
	out := New().Simplify(e)

	want := expression.NewOr(expression.NewIsNotNull(x), expression.NewNullLiteral(types.Boolean))
	require.Equal(t, want.String(), out.String())

	row1 := rex.NewRow(int64(1))
	rowNull := rex.NewRow(nil)
	v, err := out.Eval(rex.NewContext(), row1)
	require.NoError(t, err)
	require.Equal(t, true, v)
	v, err = out.Eval(rex.NewContext(), rowNull)
	require.NoError(t, err)
	require.Nil(t, v)
}

// TestScenario6NonNullable covers the same distinct-constant NOT_EQUALS
// merge when x cannot be NULL: the OR is a tautology outright.
func TestScenario6NonNullable(t *testing.T) {
	x := intRef(false)
	one := expression.NewLiteral(int64(1), types.Int64)
	two := expression.NewLiteral(int64(2), types.Int64)
	e := expression.NewOr(expression.NewNotEquals(x, one), expression.NewNotEquals(x, two))
	out := New().Simplify(e)

	lit, ok := expression.IsBooleanLiteral(out)
	require.True(t, ok, "got %s", out)
	require.True(t, lit)
}

// TestScenario7 covers the CEIL/FLOOR rollup rule.
func TestScenario7(t *testing.T) {
	tRef := expression.NewGetField(0, types.Timestamp, "t", false)

	innerHour := expression.NewFloor(tRef, expression.Hour)
	outerDay := expression.NewFloor(innerHour, expression.Day)
	out := New().Simplify(outerDay)
	require.Equal(t, expression.NewFloor(tRef, expression.Day).String(), out.String())

	innerDay := expression.NewFloor(tRef, expression.Day)
	outerSecond := expression.NewFloor(innerDay, expression.Second)
	out = New().Simplify(outerSecond)
	require.Equal(t, outerSecond.String(), out.String())
}

// TestScenario8 covers UnknownAs handling of "x AND NULL".
func TestScenario8(t *testing.T) {
	x := expression.NewGetField(0, types.Boolean, "x", false)
	e := expression.NewAnd(x, expression.NewNullLiteral(types.Nullable(types.Boolean)))

	s := New()
	out := s.SimplifyUnknownAsFalse(e)
	b, ok := expression.IsBooleanLiteral(out)
	require.True(t, ok, "got %s", out)
	require.False(t, b)

	out = s.SimplifyUnknownAs(e, rex.UNKNOWN)
	require.True(t, expression.IsNullLiteral(out) || out.IsNullable(), "got %s", out)
}
