package simplify

import (
	"fmt"

	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/expression"
)

// Executor folds constant expressions, per spec.md §6 ("reduce(builder,
// [expr], out) folds constant expressions; must be side-effect free") and §5
// ("the only external collaborator that can observably block").
type Executor interface {
	Reduce(builder expression.Builder, exprs []rex.Expression) ([]rex.Expression, error)
}

// BuiltinExecutor is the default Executor wired in when the host engine
// supplies none (SPEC_FULL.md §1a): it evaluates each expression against an
// empty row and wraps the result back up as a Literal, which is correct
// exactly when the expression is already known to be constant (deterministic
// and free of input references) — the only case the simplifier calls the
// executor for.
type BuiltinExecutor struct{}

func (BuiltinExecutor) Reduce(builder expression.Builder, exprs []rex.Expression) ([]rex.Expression, error) {
	out := make([]rex.Expression, len(exprs))
	for i, e := range exprs {
		if !e.Deterministic() || len(referencedFields(e, map[int]*expression.GetField{})) > 0 {
			out[i] = e
			continue
		}
		v, err := e.Eval(rex.NewContext(), nil)
		if err != nil {
			return nil, rex.ErrExecutorFailed.New(fmt.Sprintf("%s: %v", e.String(), err))
		}
		if v == nil {
			out[i] = builder.MakeNullLiteral(e.Type(), rex.Pos{})
		} else {
			out[i] = builder.MakeLiteral(v, e.Type(), rex.Pos{})
		}
	}
	return out, nil
}
