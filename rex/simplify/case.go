package simplify

import (
	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/expression"
	"github.com/go-rex/rexsimplify/rex/types"
)

// simplifyCase implements spec.md §4.2 "CASE simplification".
func (s *Simplifier) simplifyCase(c *expression.Case, m rex.UnknownAs, preds *PredicateList) rex.Expression {
	type pending struct {
		cond  rex.Expression
		value rex.Expression
	}
	var branches []pending

	for _, b := range c.Branches {
		cond := s.simplify(b.Cond, rex.FALSE, preds)
		if isAlwaysFalse(cond) {
			continue
		}
		val := s.simplify(b.Value, m, preds)

		if n := len(branches); n > 0 && StructurallyEqual(branches[n-1].value, val) && IsSafeExpression(cond) {
			branches[n-1].cond = s.simplify(expression.NewOr(branches[n-1].cond, cond), rex.FALSE, preds)
			continue
		}
		branches = append(branches, pending{cond: cond, value: val})

		if t, ok := expression.IsBooleanLiteral(cond); ok && t {
			break
		}
	}

	elseVal := s.simplify(c.Else, m, preds)

	if len(branches) == 0 {
		return elseVal
	}
	if len(branches) == 1 {
		if t, ok := expression.IsBooleanLiteral(branches[0].cond); ok && t {
			return widenIfNeeded(branches[0].value, c.Type())
		}
	}

	newBranches := make([]expression.CaseBranch, len(branches))
	for i, b := range branches {
		newBranches[i] = expression.CaseBranch{Cond: b.cond, Value: b.value}
	}
	out := &expression.Case{Branches: newBranches, Else: elseVal}

	if c.Type().Family() == types.FamilyBoolean && allSafe(out) {
		return flattenBooleanCase(out)
	}

	if StructurallyEqual(out, c) {
		return c
	}
	return out
}

func widenIfNeeded(value rex.Expression, target types.Type) rex.Expression {
	if value.IsNullable() == target.IsNullable() || !target.IsNullable() {
		return value
	}
	return expression.NewCast(value, target)
}

func allSafe(c *expression.Case) bool {
	for _, b := range c.Branches {
		if !IsSafeExpression(b.Value) {
			return false
		}
	}
	return IsSafeExpression(c.Else)
}

// flattenBooleanCase rewrites a boolean-valued CASE to
// OR_i (cond_i ∧ val_i ∧ ¬⋃_{j<i} cond_j), per spec.md §4.2.
func flattenBooleanCase(c *expression.Case) rex.Expression {
	var disjuncts []rex.Expression
	var priorConds []rex.Expression
	for _, b := range c.Branches {
		term := expression.NewAnd(b.Cond, b.Value)
		if len(priorConds) > 0 {
			term = expression.NewAnd(term, expression.NewNot(expression.JoinOr(priorConds...)))
		}
		disjuncts = append(disjuncts, term)
		priorConds = append(priorConds, b.Cond)
	}
	elseTerm := c.Else
	if len(priorConds) > 0 {
		elseTerm = expression.NewAnd(c.Else, expression.NewNot(expression.JoinOr(priorConds...)))
	}
	disjuncts = append(disjuncts, elseTerm)
	return expression.JoinOr(disjuncts...)
}
