package expression

import (
	"fmt"
	"strings"

	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/types"
)

// CaseBranch is one WHEN cond THEN value arm, matching the teacher's
// expression.CaseBranch (case_test.go).
type CaseBranch struct {
	Cond  rex.Expression
	Value rex.Expression
}

// Case is always represented post-desugaring as [(cond_i, val_i), ...,
// (TRUE, default)] (SPEC_FULL.md §3): NewCase folds a non-nil simple-CASE
// operand into each branch condition at construction time so the simplifier
// never special-cases the simple form (spec.md §4.2 "CASE simplification").
type Case struct {
	Branches []CaseBranch
	Else     rex.Expression
	Pos      rex.Pos
}

// NewCase mirrors the teacher's expression.NewCase(operand, branches, elseExpr):
// operand may be nil (searched CASE, conditions are already boolean) or a
// non-boolean expression (simple CASE, each branch's Cond is compared against
// operand for equality).
func NewCase(operand rex.Expression, branches []CaseBranch, elseExpr rex.Expression) *Case {
	out := make([]CaseBranch, len(branches))
	for i, b := range branches {
		cond := b.Cond
		if operand != nil {
			cond = NewEquals(operand, b.Cond)
		}
		out[i] = CaseBranch{Cond: cond, Value: b.Value}
	}
	if elseExpr == nil {
		// An absent ELSE is SQL-equivalent to `ELSE NULL`, resolved to the
		// least-restrictive type of the branch values (spec.md §6 TypeFactory
		// LeastRestrictive) so case.Type() below stays well-typed.
		vts := make([]types.Type, len(out))
		for i, b := range out {
			vts[i] = b.Value.Type()
		}
		elseExpr = NewNullLiteral(types.LeastRestrictive(vts...))
	}
	return &Case{Branches: out, Else: elseExpr}
}

func (c *Case) Kind() rex.Kind { return rex.CASE }

func (c *Case) Type() types.Type {
	ts := make([]types.Type, 0, len(c.Branches)+1)
	for _, b := range c.Branches {
		ts = append(ts, b.Value.Type())
	}
	ts = append(ts, c.Else.Type())
	return types.LeastRestrictive(ts...)
}

func (c *Case) IsNullable() bool { return c.Type().IsNullable() }

func (c *Case) Deterministic() bool {
	for _, b := range c.Branches {
		if !b.Cond.Deterministic() || !b.Value.Deterministic() {
			return false
		}
	}
	return c.Else.Deterministic()
}

func (c *Case) Children() []rex.Expression {
	out := make([]rex.Expression, 0, 2*len(c.Branches)+1)
	for _, b := range c.Branches {
		out = append(out, b.Cond, b.Value)
	}
	return append(out, c.Else)
}

func (c *Case) WithChildren(children ...rex.Expression) (rex.Expression, error) {
	if len(children) != 2*len(c.Branches)+1 {
		return nil, rex.ErrMalformedExpression.New(fmt.Sprintf("Case expected %d children, got %d", 2*len(c.Branches)+1, len(children)))
	}
	branches := make([]CaseBranch, len(c.Branches))
	for i := range branches {
		branches[i] = CaseBranch{Cond: children[2*i], Value: children[2*i+1]}
	}
	return &Case{Branches: branches, Else: children[len(children)-1]}, nil
}

func (c *Case) Eval(ctx *rex.Context, row rex.Row) (interface{}, error) {
	for _, b := range c.Branches {
		cv, err := b.Cond.Eval(ctx, row)
		if err != nil {
			return nil, err
		}
		if t, ok := cv.(bool); ok && t {
			return b.Value.Eval(ctx, row)
		}
	}
	return c.Else.Eval(ctx, row)
}

func (c *Case) String() string {
	var sb strings.Builder
	sb.WriteString("CASE")
	for _, b := range c.Branches {
		fmt.Fprintf(&sb, " WHEN %s THEN %s", b.Cond, b.Value)
	}
	fmt.Fprintf(&sb, " ELSE %s END", c.Else)
	return sb.String()
}
