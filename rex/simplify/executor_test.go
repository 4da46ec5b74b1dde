package simplify

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/expression"
	"github.com/go-rex/rexsimplify/rex/types"
)

func TestBuiltinExecutorFoldsDeterministicExpression(t *testing.T) {
	e := expression.NewPlus(
		expression.NewLiteral(int64(2), types.Int64),
		expression.NewLiteral(int64(3), types.Int64),
	)
	out, err := (BuiltinExecutor{}).Reduce(expression.DefaultBuilder{}, []rex.Expression{e})
	require.NoError(t, err)
	require.Len(t, out, 1)
	lit, ok := out[0].(*expression.Literal)
	require.True(t, ok, "got %T", out[0])
	require.Equal(t, int64(5), lit.Value)
}

func TestBuiltinExecutorFoldsToNullLiteral(t *testing.T) {
	e := expression.NewPlus(
		expression.NewNullLiteral(types.Int64),
		expression.NewLiteral(int64(3), types.Int64),
	)
	out, err := (BuiltinExecutor{}).Reduce(expression.DefaultBuilder{}, []rex.Expression{e})
	require.NoError(t, err)
	require.True(t, expression.IsNullLiteral(out[0]), "got %s", out[0])
}

func TestBuiltinExecutorLeavesInputRefsAlone(t *testing.T) {
	gf := expression.NewGetField(0, types.Int64, "x", false)
	out, err := (BuiltinExecutor{}).Reduce(expression.DefaultBuilder{}, []rex.Expression{gf})
	require.NoError(t, err)
	require.Same(t, rex.Expression(gf), out[0])
}

func TestBuiltinExecutorWrapsEvalErrors(t *testing.T) {
	div := expression.NewDiv(
		expression.NewLiteral(int64(1), types.Int64),
		expression.NewLiteral(int64(0), types.Int64),
	)
	_, err := (BuiltinExecutor{}).Reduce(expression.DefaultBuilder{}, []rex.Expression{div})
	require.Error(t, err)
	require.True(t, rex.ErrExecutorFailed.Is(err), "expected ErrExecutorFailed, got %v", err)
}

// TestExecutorWiredThroughSimplify exercises the constant folder end-to-end:
// a CAST of a literal is folded by the executor to a literal before the
// comparison it feeds into is itself folded.
func TestExecutorWiredThroughSimplify(t *testing.T) {
	cast := expression.NewCast(expression.NewLiteral(int64(5), types.Int64), types.Float64)
	e := expression.NewEquals(cast, expression.NewLiteral(float64(5), types.Float64))
	out := New().Simplify(e)
	b, ok := expression.IsBooleanLiteral(out)
	require.True(t, ok, "got %s", out)
	require.True(t, b)
}
