package simplify

import (
	"github.com/shopspring/decimal"

	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/expression"
	"github.com/go-rex/rexsimplify/rex/sarg"
	"github.com/go-rex/rexsimplify/rex/types"
)

// Simplifier is the row-expression simplifier handle, spec.md §4.1. A zero
// Simplifier is usable with stdlib defaults via New(); a host engine wires in
// its own Builder/Executor to control position-preservation and constant
// folding.
type Simplifier struct {
	Builder  expression.Builder
	Executor Executor
	Default  rex.UnknownAs
	Paranoid bool
}

// New returns a Simplifier wired to the stock DefaultBuilder and
// BuiltinExecutor (SPEC_FULL.md §1a), UnknownAs.UNKNOWN as its default policy,
// paranoid mode off.
func New() *Simplifier {
	return &Simplifier{Builder: expression.DefaultBuilder{}, Executor: BuiltinExecutor{}, Default: rex.UNKNOWN}
}

// Simplify simplifies e under the handle's default UnknownAs policy.
func (s *Simplifier) Simplify(e rex.Expression) rex.Expression { return s.simplifyTop(e, s.Default) }

// SimplifyUnknownAsFalse simplifies assuming NULL is interpreted as FALSE,
// the policy a WHERE clause filter uses.
func (s *Simplifier) SimplifyUnknownAsFalse(e rex.Expression) rex.Expression {
	return s.simplifyTop(e, rex.FALSE)
}

// SimplifyUnknownAs simplifies under an explicit UnknownAs policy.
func (s *Simplifier) SimplifyUnknownAs(e rex.Expression, m rex.UnknownAs) rex.Expression {
	return s.simplifyTop(e, m)
}

// SimplifyPreservingType is SimplifyUnknownAs, except that if matchNullability
// is set and simplification widened e's nullability, the result is re-wrapped
// in a CAST back to e's original (narrower) type.
func (s *Simplifier) SimplifyPreservingType(e rex.Expression, m rex.UnknownAs, matchNullability bool) rex.Expression {
	out := s.simplifyTop(e, m)
	if matchNullability && out.IsNullable() && !e.IsNullable() {
		return expression.NewCast(out, e.Type())
	}
	return out
}

// SimplifyFilterPredicates AND-combines preds, simplifies as UnknownAs=FALSE,
// strips any nullability-only CAST the simplification left behind, and
// returns nil iff the result is provably always false.
func (s *Simplifier) SimplifyFilterPredicates(preds []rex.Expression) rex.Expression {
	if len(preds) == 0 {
		return expression.True()
	}
	out := s.SimplifyUnknownAsFalse(expression.JoinAnd(preds...))
	if c, ok := out.(*expression.Convert); ok && c.Child.Type().EqualsSansNullability(c.Typ) {
		out = c.Child
	}
	if isAlwaysFalse(out) {
		return nil
	}
	return out
}

func (s *Simplifier) simplifyTop(e rex.Expression, m rex.UnknownAs) rex.Expression {
	out := s.simplify(e, m, Empty())
	if s.Paranoid {
		s.verify(e, out, m, Empty())
	}
	return out
}

func (s *Simplifier) builder() expression.Builder {
	if s.Builder != nil {
		return s.Builder
	}
	return expression.DefaultBuilder{}
}

// simplify is the private dispatcher, structural over Kind with fall-through
// to simplifyGenericNode (spec.md §4.1 "Dispatch"). Every rule that actually
// rewrites its input is traced at logrus.TraceLevel (SPEC_FULL.md §1a), via
// the trace wrapper below.
func (s *Simplifier) simplify(e rex.Expression, m rex.UnknownAs, preds *PredicateList) rex.Expression {
	if preds == nil {
		preds = Empty()
	}

	// Rule 1: strict-null pre-check.
	if IsSafeExpression(e) && IsNull(e) {
		if e.Type().Family() == types.FamilyBoolean {
			if b, ok := m.ToBoolean(); ok {
				return s.trace(e, boolLit(b))
			}
		}
		return s.trace(e, expression.NewNullLiteral(e.Type()))
	}

	switch n := e.(type) {
	case *expression.And:
		return s.trace(e, s.simplifyAndNode(n, m, preds))
	case *expression.Or:
		return s.trace(e, s.simplifyOr(n, m, preds))
	case *expression.Not:
		return s.trace(e, s.simplifyNot(n, m, preds))
	case *expression.Case:
		return s.trace(e, s.simplifyCase(n, m, preds))
	case *expression.Comparison:
		return s.trace(e, s.simplifyComparison(n, m, preds))
	case *expression.IsNull:
		return s.trace(e, s.simplifyIsNull(n, m, preds))
	case *expression.Is:
		return s.trace(e, s.simplifyIs(n, m, preds))
	case *expression.Coalesce:
		return s.trace(e, s.simplifyCoalesce(n, m, preds))
	case *expression.Convert:
		return s.trace(e, s.simplifyCast(n, m, preds))
	case *expression.Arithmetic:
		return s.trace(e, s.simplifyArithmetic(n, m, preds))
	case *expression.UnaryArith:
		return s.trace(e, s.simplifyUnaryArith(n, m, preds))
	case *expression.Like:
		return s.trace(e, s.simplifyLike(n, m, preds))
	case *expression.Round:
		return s.trace(e, s.simplifyRound(n, m, preds))
	case *expression.Trim:
		return s.trace(e, s.simplifyTrim(n, m, preds))
	case *expression.Measure:
		return s.trace(e, s.simplifyMeasure(n, m, preds))
	case *expression.Between:
		return s.trace(e, s.simplify(n.AsAnd(), m, preds))
	case *expression.In:
		return s.trace(e, s.simplifyIn(n, m, preds))
	case *expression.Search:
		return s.trace(e, SimplifySearch(n, preds))
	default:
		return s.trace(e, s.simplifyGenericNode(e, m, preds))
	}
}

// trace logs a rule-firing record when before and after differ structurally,
// then returns after unchanged. A no-op (beyond the equality check) unless
// the caller has raised logrus's level to Trace, e.g. via cmd/rexdump's -v.
func (s *Simplifier) trace(before, after rex.Expression) rex.Expression {
	if !StructurallyEqual(before, after) {
		rex.NewContext().Tracef("simplify: %s -> %s", before, after)
	}
	return after
}

// simplifyGenericNode recursively simplifies operands under UnknownAs.UNKNOWN
// and returns input identity if no operand changed, the fallback spec.md
// §4.1 names for kinds with no dedicated rule (OVER, SUBQUERY,
// DYNAMIC_PARAM, LAMBDA, GENERIC_CALL, FIELD_ACCESS, ...).
func (s *Simplifier) simplifyGenericNode(e rex.Expression, m rex.UnknownAs, preds *PredicateList) rex.Expression {
	children := e.Children()
	if len(children) == 0 {
		return e
	}
	newChildren := make([]rex.Expression, len(children))
	changed := false
	for i, c := range children {
		nc := s.simplify(c, rex.UNKNOWN, preds)
		newChildren[i] = nc
		if !StructurallyEqual(nc, c) {
			changed = true
		}
	}
	if !changed {
		return e
	}
	out, err := e.WithChildren(newChildren...)
	if err != nil {
		return e
	}
	return out
}

func boolLit(b bool) rex.Expression {
	if b {
		return expression.True()
	}
	return expression.False()
}

// --- AND --------------------------------------------------------------

func (s *Simplifier) simplifyAndNode(a *expression.And, m rex.UnknownAs, preds *PredicateList) rex.Expression {
	raw := FlattenAndTerms(a)
	ctx := preds
	var terms, notTerms []rex.Expression
	for _, rawTerm := range raw {
		t := s.simplify(rawTerm, rex.UNKNOWN, ctx)
		if nt, ok := t.(*expression.Not); ok {
			notTerms = append(notTerms, nt.Child)
		} else {
			terms = append(terms, t)
		}
		if IsSafeExpression(t) {
			ctx = ctx.With(t)
		}
	}
	result := s.simplifyAnd2(terms, notTerms, m, ctx)
	if StructurallyEqual(result, a) {
		return a
	}
	return result
}

// --- NOT / boolean algebra ---------------------------------------------

func (s *Simplifier) simplifyNot(n *expression.Not, m rex.UnknownAs, preds *PredicateList) rex.Expression {
	switch child := n.Child.(type) {
	case *expression.Not:
		return s.simplify(child.Child, m, preds)
	case *expression.And:
		left := s.simplify(expression.NewNot(child.Left), m.Negate(), preds)
		right := s.simplify(expression.NewNot(child.Right), m.Negate(), preds)
		return s.simplify(expression.NewOr(left, right), m, preds)
	case *expression.Or:
		left := s.simplify(expression.NewNot(child.Left), m.Negate(), preds)
		right := s.simplify(expression.NewNot(child.Right), m.Negate(), preds)
		return s.simplify(expression.NewAnd(left, right), m, preds)
	case *expression.Case:
		branches := make([]expression.CaseBranch, len(child.Branches))
		for i, b := range child.Branches {
			branches[i] = expression.CaseBranch{Cond: b.Cond, Value: expression.NewNot(b.Value)}
		}
		return s.simplify(&expression.Case{Branches: branches, Else: expression.NewNot(child.Else)}, m, preds)
	case *expression.Comparison:
		if k2, ok := child.Op.NegateNullSafe(); ok {
			return s.simplify(&expression.Comparison{BinaryExpression: child.BinaryExpression, Op: k2}, m, preds)
		}
		if _, ok := m.ToBoolean(); ok && !child.IsNullable() {
			if k3, ok3 := child.Op.Negate(); ok3 {
				return s.simplify(&expression.Comparison{BinaryExpression: child.BinaryExpression, Op: k3}, m, preds)
			}
		}
	}

	childOut := s.simplify(n.Child, m.Negate(), preds)
	if b, ok := expression.IsBooleanLiteral(childOut); ok {
		return boolLit(!b)
	}
	if expression.IsNullLiteral(childOut) {
		return expression.NewNullLiteral(types.Boolean)
	}
	out := expression.NewNot(childOut)
	if StructurallyEqual(out, n) {
		return n
	}
	return out
}

// --- Comparisons ---------------------------------------------------------

func (s *Simplifier) simplifyComparison(c *expression.Comparison, m rex.UnknownAs, preds *PredicateList) rex.Expression {
	left := s.simplify(c.Left, rex.UNKNOWN, preds)
	right := s.simplify(c.Right, rex.UNKNOWN, preds)

	// Rule 4: x op x, deterministic x.
	if StructurallyEqual(left, right) && left.Deterministic() {
		switch c.Op {
		case rex.EQUALS, rex.LESS_THAN_OR_EQUAL, rex.GREATER_THAN_OR_EQUAL, rex.IS_NOT_DISTINCT_FROM:
			return s.simplify(expression.NewOr(expression.NewNullLiteral(types.Boolean), expression.NewIsNotNull(left)), m, preds)
		case rex.NOT_EQUALS, rex.LESS_THAN, rex.GREATER_THAN, rex.IS_DISTINCT_FROM:
			return s.simplify(expression.NewAnd(expression.NewNullLiteral(types.Boolean), expression.NewIsNull(left)), m, preds)
		}
	}

	// Rule 3: constant comparison.
	if ll, lok := left.(*expression.Literal); lok {
		if rl, rok := right.(*expression.Literal); rok {
			return foldConstantComparison(c.Op, ll, rl, m)
		}
	}

	// Rule 5: boolean-vs-boolean-constant comparisons.
	if lit, ok := right.(*expression.Literal); ok && !lit.IsNull() && lit.Typ.Family() == types.FamilyBoolean {
		if b, ok2 := lit.Value.(bool); ok2 {
			if res, ok3 := reduceBoolCompare(left, c.Op, b, !left.IsNullable()); ok3 {
				return s.simplify(res, m, preds)
			}
		}
	}
	if lit, ok := left.(*expression.Literal); ok && !lit.IsNull() && lit.Typ.Family() == types.FamilyBoolean {
		if b, ok2 := lit.Value.(bool); ok2 {
			if res, ok3 := reduceBoolCompare(right, c.Op.Reversed(), b, !right.IsNullable()); ok3 {
				return s.simplify(res, m, preds)
			}
		}
	}

	out := &expression.Comparison{BinaryExpression: expression.BinaryExpression{Left: left, Right: right}, Op: c.Op}

	if cv, ok := ComparisonOf(out); ok {
		if res := Residue(cv, preds); res != nil {
			return res
		}
	}

	if StructurallyEqual(out, c) {
		return c
	}
	return out
}

func foldConstantComparison(op rex.Kind, l, r *expression.Literal, m rex.UnknownAs) rex.Expression {
	if l.IsNull() || r.IsNull() {
		switch op {
		case rex.IS_DISTINCT_FROM:
			return boolLit(l.IsNull() != r.IsNull())
		case rex.IS_NOT_DISTINCT_FROM:
			return boolLit(l.IsNull() == r.IsNull())
		}
		if m == rex.FALSE {
			return expression.False()
		}
		return expression.NewNullLiteral(types.Boolean)
	}
	fam := types.LeastRestrictive(l.Typ, r.Typ).Family()
	cmp := sarg.Comparator(fam)(l.Value, r.Value)
	switch op {
	case rex.EQUALS, rex.IS_NOT_DISTINCT_FROM:
		return boolLit(cmp == 0)
	case rex.NOT_EQUALS, rex.IS_DISTINCT_FROM:
		return boolLit(cmp != 0)
	case rex.LESS_THAN:
		return boolLit(cmp < 0)
	case rex.LESS_THAN_OR_EQUAL:
		return boolLit(cmp <= 0)
	case rex.GREATER_THAN:
		return boolLit(cmp > 0)
	default:
		return boolLit(cmp >= 0)
	}
}

// reduceBoolCompare implements rule 5: x = TRUE -> x, x <> TRUE -> NOT x, and
// (when ref is provably non-nullable) the further collapse of order
// comparisons against a boolean constant to a literal.
func reduceBoolCompare(ref rex.Expression, op rex.Kind, b bool, nonNullable bool) (rex.Expression, bool) {
	switch op {
	case rex.EQUALS, rex.IS_NOT_DISTINCT_FROM:
		if b {
			return ref, true
		}
		return expression.NewNot(ref), true
	case rex.NOT_EQUALS, rex.IS_DISTINCT_FROM:
		if b {
			return expression.NewNot(ref), true
		}
		return ref, true
	}
	if !nonNullable {
		return nil, false
	}
	switch op {
	case rex.LESS_THAN:
		if b {
			return expression.NewNot(ref), true
		}
		return expression.False(), true
	case rex.LESS_THAN_OR_EQUAL:
		if b {
			return expression.True(), true
		}
		return expression.NewNot(ref), true
	case rex.GREATER_THAN:
		if b {
			return expression.False(), true
		}
		return ref, true
	case rex.GREATER_THAN_OR_EQUAL:
		if b {
			return ref, true
		}
		return expression.True(), true
	}
	return nil, false
}

// --- IS NULL / IS NOT NULL ----------------------------------------------

func (s *Simplifier) simplifyIsNull(n *expression.IsNull, m rex.UnknownAs, preds *PredicateList) rex.Expression {
	child := s.simplify(n.Child, rex.UNKNOWN, preds)

	if expression.IsNullLiteral(child) {
		return boolLit(!n.Negated)
	}
	if !child.IsNullable() && IsSafeExpression(child) {
		return boolLit(n.Negated)
	}

	if policy := StrongNullPolicy(child); policy == Any {
		kids := child.Children()
		if len(kids) > 0 {
			parts := make([]rex.Expression, len(kids))
			for i, k := range kids {
				parts[i] = rebuildIs(n.Kind(), k)
			}
			var combined rex.Expression
			if n.Negated {
				combined = expression.JoinAnd(parts...)
			} else {
				combined = expression.JoinOr(parts...)
			}
			return s.simplify(combined, m, preds)
		}
	}

	out := rebuildIs(n.Kind(), child)
	if StructurallyEqual(out, n) {
		return n
	}
	return out
}

func rebuildIs(kind rex.Kind, child rex.Expression) rex.Expression {
	switch kind {
	case rex.IS_TRUE:
		return expression.NewIsTrue(child)
	case rex.IS_NOT_TRUE:
		return expression.NewIsNotTrue(child)
	case rex.IS_FALSE:
		return expression.NewIsFalse(child)
	case rex.IS_NOT_FALSE:
		return expression.NewIsNotFalse(child)
	case rex.IS_NOT_NULL:
		return expression.NewIsNotNull(child)
	default:
		return expression.NewIsNull(child)
	}
}

// --- IS TRUE / IS NOT TRUE / IS FALSE / IS NOT FALSE --------------------

func (s *Simplifier) simplifyIs(n *expression.Is, m rex.UnknownAs, preds *PredicateList) rex.Expression {
	child := s.simplify(n.Child, rex.UNKNOWN, preds)

	if notNode, ok := child.(*expression.Not); ok {
		if k2, ok2 := n.Kind().NegateNullSafe(); ok2 {
			return s.simplify(rebuildIs(k2, notNode.Child), m, preds)
		}
	}

	if expression.IsNullLiteral(child) {
		switch n.Op {
		case expression.IsTrueOp, expression.IsFalseOp:
			return expression.False()
		default:
			return expression.True()
		}
	}
	if b, ok := expression.IsBooleanLiteral(child); ok {
		switch n.Op {
		case expression.IsTrueOp:
			return boolLit(b)
		case expression.IsNotTrueOp:
			return boolLit(!b)
		case expression.IsFalseOp:
			return boolLit(!b)
		default:
			return boolLit(b)
		}
	}

	negatedForm := func() rex.Expression { return s.simplify(expression.NewNot(child), m, preds) }
	if !child.IsNullable() {
		switch n.Op {
		case expression.IsTrueOp, expression.IsNotFalseOp:
			return s.simplify(child, m, preds)
		default:
			return negatedForm()
		}
	}

	out := rebuildIs(n.Kind(), child)
	if StructurallyEqual(out, n) {
		return n
	}
	return out
}

// --- COALESCE ------------------------------------------------------------

func (s *Simplifier) simplifyCoalesce(c *expression.Coalesce, m rex.UnknownAs, preds *PredicateList) rex.Expression {
	var kept []rex.Expression
	for _, o := range c.Operands {
		so := s.simplify(o, rex.UNKNOWN, preds)
		if expression.IsNullLiteral(so) {
			continue
		}
		dup := false
		for _, k := range kept {
			if StructurallyEqual(k, so) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		kept = append(kept, so)
		if !so.IsNullable() {
			break
		}
	}
	if len(kept) == 0 {
		return expression.NewNullLiteral(c.Type())
	}
	if len(kept) == 1 {
		return widenIfNeeded(kept[0], c.Type())
	}
	out := expression.NewCoalesce(kept...)
	if StructurallyEqual(out, c) {
		return c
	}
	return out
}

// --- CAST ------------------------------------------------------------------

func (s *Simplifier) simplifyCast(c *expression.Convert, m rex.UnknownAs, preds *PredicateList) rex.Expression {
	child := s.simplify(c.Child, rex.UNKNOWN, preds)

	if child.Type().EqualsSansNullability(c.Typ) && c.Typ.Family() != types.FamilyDecimal {
		return widenIfNeeded(child, c.Type())
	}

	if inner, ok := child.(*expression.Convert); ok {
		if types.IsLosslessCast(inner.Child.Type(), c.Typ) {
			return s.rebuildCast(inner.Child, c.Typ, c.Safe, m, preds)
		}
		if types.IsLosslessCast(inner.Typ, c.Typ) {
			return s.rebuildCast(inner.Child, c.Typ, c.Safe || inner.Safe, m, preds)
		}
	}

	if lit, ok := child.(*expression.Literal); ok {
		if folded, ok2 := canRemoveCastFromLiteral(lit, c.Typ); ok2 {
			return folded
		}
		if s.Executor != nil {
			probe := &expression.Convert{UnaryExpression: expression.UnaryExpression{Child: lit}, Typ: c.Typ, Safe: c.Safe}
			reduced, err := s.Executor.Reduce(s.builder(), []rex.Expression{probe})
			if err == nil && len(reduced) == 1 {
				if rc, ok3 := reduced[0].(*expression.Convert); ok3 && rc.Child.Type().EqualsSansNullability(rc.Typ) {
					return widenIfNeeded(rc.Child, rc.Type())
				}
				return reduced[0]
			}
		}
	}

	out := &expression.Convert{UnaryExpression: expression.UnaryExpression{Child: child}, Typ: c.Typ, Safe: c.Safe, Target: c.Target}
	if StructurallyEqual(out, c) {
		return c
	}
	return out
}

func (s *Simplifier) rebuildCast(child rex.Expression, target types.Type, safe bool, m rex.UnknownAs, preds *PredicateList) rex.Expression {
	return s.simplify(&expression.Convert{UnaryExpression: expression.UnaryExpression{Child: child}, Typ: target, Safe: safe}, m, preds)
}

func canRemoveCastFromLiteral(lit *expression.Literal, target types.Type) (rex.Expression, bool) {
	if lit.IsNull() {
		return expression.NewNullLiteral(target), true
	}
	if lit.Typ.EqualsSansNullability(target) {
		return expression.NewLiteral(lit.Value, types.NotNull(target)), true
	}
	return nil, false
}

// --- Arithmetic / unary ----------------------------------------------------

func (s *Simplifier) simplifyArithmetic(a *expression.Arithmetic, m rex.UnknownAs, preds *PredicateList) rex.Expression {
	left := s.simplify(a.Left, rex.UNKNOWN, preds)
	right := s.simplify(a.Right, rex.UNKNOWN, preds)

	fam := types.LeastRestrictive(left.Type(), right.Type()).Family()
	if fam.IsNumeric() {
		base := a.Op
		if u, ok := a.Op.Checked(); ok {
			base = u
		}
		resultType := (&expression.Arithmetic{BinaryExpression: expression.BinaryExpression{Left: left, Right: right}, Op: a.Op}).Type()
		switch base {
		case rex.PLUS:
			if isZeroLiteral(right) {
				return widenIfNeeded(left, resultType)
			}
			if isZeroLiteral(left) {
				return widenIfNeeded(right, resultType)
			}
		case rex.MINUS:
			if isZeroLiteral(right) {
				return widenIfNeeded(left, resultType)
			}
		case rex.TIMES:
			if isOneLiteral(right) {
				return widenIfNeeded(left, resultType)
			}
			if isOneLiteral(left) {
				return widenIfNeeded(right, resultType)
			}
		case rex.DIVIDE:
			if isOneLiteral(right) {
				return widenIfNeeded(left, resultType)
			}
		}
	}

	out := &expression.Arithmetic{BinaryExpression: expression.BinaryExpression{Left: left, Right: right}, Op: a.Op}
	if StructurallyEqual(out, a) {
		return a
	}
	return out
}

func isZeroLiteral(e rex.Expression) bool { return isNumericLiteralValue(e, 0) }
func isOneLiteral(e rex.Expression) bool  { return isNumericLiteralValue(e, 1) }

func isNumericLiteralValue(e rex.Expression, want int64) bool {
	lit, ok := e.(*expression.Literal)
	if !ok || lit.IsNull() {
		return false
	}
	switch v := lit.Value.(type) {
	case int64:
		return v == want
	case int:
		return int64(v) == want
	case float64:
		return v == float64(want)
	case decimal.Decimal:
		return v.Equal(decimal.NewFromInt(want))
	}
	return false
}

func (s *Simplifier) simplifyUnaryArith(u *expression.UnaryArith, m rex.UnknownAs, preds *PredicateList) rex.Expression {
	child := s.simplify(u.Child, rex.UNKNOWN, preds)
	if !u.Negative {
		return child
	}
	if inner, ok := child.(*expression.UnaryArith); ok && inner.Negative {
		return inner.Child
	}
	out := &expression.UnaryArith{UnaryExpression: expression.UnaryExpression{Child: child}, Negative: true}
	if StructurallyEqual(out, u) {
		return u
	}
	return out
}

// --- LIKE --------------------------------------------------------------

func (s *Simplifier) simplifyLike(l *expression.Like, m rex.UnknownAs, preds *PredicateList) rex.Expression {
	left := s.simplify(l.Left, rex.UNKNOWN, preds)
	right := s.simplify(l.Right, rex.UNKNOWN, preds)
	if lit, ok := right.(*expression.Literal); ok && !lit.IsNull() {
		if pattern, ok2 := lit.Value.(string); ok2 && pattern == "%" {
			return s.simplify(expression.NewEquals(left, left), m, preds)
		}
	}
	out := expression.NewLike(left, right)
	if StructurallyEqual(out, l) {
		return l
	}
	return out
}

// --- CEIL / FLOOR --------------------------------------------------------

func (s *Simplifier) simplifyRound(r *expression.Round, m rex.UnknownAs, preds *PredicateList) rex.Expression {
	arg := s.simplify(r.Arg, rex.UNKNOWN, preds)
	out := &expression.Round{Arg: arg, Unit: r.Unit, Op: r.Op}
	if inner, ok := out.InnerRound(); ok && inner.Op == out.Op && inner.Unit.RollsUpTo(out.Unit) {
		return s.simplify(&expression.Round{Arg: inner.Arg, Unit: out.Unit, Op: out.Op}, m, preds)
	}
	if StructurallyEqual(out, r) {
		return r
	}
	return out
}

// --- TRIM / LTRIM / RTRIM -------------------------------------------------

func (s *Simplifier) simplifyTrim(t *expression.Trim, m rex.UnknownAs, preds *PredicateList) rex.Expression {
	str := s.simplify(t.Str, rex.UNKNOWN, preds)
	var cutset rex.Expression
	if t.Cutset != nil {
		cutset = s.simplify(t.Cutset, rex.UNKNOWN, preds)
	}
	if inner, ok := str.(*expression.Trim); ok && inner.Op == t.Op && sameCutset(inner.Cutset, cutset) {
		return inner
	}
	out := &expression.Trim{Str: str, Cutset: cutset, Op: t.Op}
	if StructurallyEqual(out, t) {
		return t
	}
	return out
}

func sameCutset(a, b rex.Expression) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return StructurallyEqual(a, b)
}

// --- M2V / V2M -------------------------------------------------------------

// simplifyMeasure implements rule 16's round-trip collapse, M2V(V2M(x)) → x.
// It does not also rewrite aggregate calls inside x to single-row window
// aggregates, the rule's second clause — see DESIGN.md for why.
func (s *Simplifier) simplifyMeasure(mm *expression.Measure, m rex.UnknownAs, preds *PredicateList) rex.Expression {
	child := s.simplify(mm.Child, rex.UNKNOWN, preds)
	out := &expression.Measure{UnaryExpression: expression.UnaryExpression{Child: child}, ToValue: mm.ToValue}
	if x, ok := out.IsMeasureRoundTrip(); ok {
		return s.simplify(x, m, preds)
	}
	if StructurallyEqual(out, mm) {
		return mm
	}
	return out
}

// --- IN / NOT IN -----------------------------------------------------------

func (s *Simplifier) simplifyIn(in *expression.In, m rex.UnknownAs, preds *PredicateList) rex.Expression {
	left := s.simplify(in.Left, rex.UNKNOWN, preds)
	list := make([]rex.Expression, len(in.List))
	for i, e := range in.List {
		list[i] = s.simplify(e, rex.UNKNOWN, preds)
	}
	if len(list) == 1 {
		if in.Negated {
			return s.simplify(expression.NewNotEquals(left, list[0]), m, preds)
		}
		return s.simplify(expression.NewEquals(left, list[0]), m, preds)
	}
	var out rex.Expression
	if in.Negated {
		out = expression.NewNotIn(left, list)
	} else {
		out = expression.NewIn(left, list)
	}
	if StructurallyEqual(out, in) {
		return in
	}
	return out
}
