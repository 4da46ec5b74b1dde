package simplify

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/expression"
	"github.com/go-rex/rexsimplify/rex/types"
)

// TestSimplifyCaseSingleBranchKeepsElse covers "CASE WHEN x>5 THEN 1 ELSE 2
// END": a single remaining conditional branch whose condition is not
// always-true must not collapse to the branch value — the ELSE is still
// reachable.
func TestSimplifyCaseSingleBranchKeepsElse(t *testing.T) {
	x := intRef(false)
	five := expression.NewLiteral(int64(5), types.Int64)
	c := expression.NewCase(nil, []expression.CaseBranch{
		{Cond: expression.NewGreaterThan(x, five), Value: expression.NewLiteral(int64(1), types.Int64)},
	}, expression.NewLiteral(int64(2), types.Int64))

	out := New().Simplify(c)

	row3 := rex.NewRow(int64(3))
	row9 := rex.NewRow(int64(9))
	v, err := out.Eval(rex.NewContext(), row3)
	require.NoError(t, err)
	require.Equal(t, int64(2), v, "x=3: got %s", out)

	v, err = out.Eval(rex.NewContext(), row9)
	require.NoError(t, err)
	require.Equal(t, int64(1), v, "x=9: got %s", out)
}

// TestSimplifyCaseSingleAlwaysTrueBranchCollapses covers the legitimate
// collapse: a single branch whose condition folds to TRUE reduces to its
// value outright, regardless of ELSE.
func TestSimplifyCaseSingleAlwaysTrueBranchCollapses(t *testing.T) {
	c := &expression.Case{
		Branches: []expression.CaseBranch{{
			Cond:  expression.True(),
			Value: expression.NewLiteral(int64(1), types.Int64),
		}},
		Else: expression.NewLiteral(int64(2), types.Int64),
	}
	out := New().Simplify(c)
	lit, ok := out.(*expression.Literal)
	require.True(t, ok, "got %s", out)
	require.Equal(t, int64(1), lit.Value)
}
