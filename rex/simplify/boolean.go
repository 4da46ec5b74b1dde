package simplify

import (
	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/expression"
	"github.com/go-rex/rexsimplify/rex/types"
)

// simplifyAnd2 implements the conjunction engine, spec.md §4.2. terms and
// notTerms are e's conjunctive decomposition (terms positive, notTerms the
// operands of top-level NOTs); both are already flattened through nested
// ANDs by the caller.
func (s *Simplifier) simplifyAnd2(terms, notTerms []rex.Expression, m rex.UnknownAs, preds *PredicateList) rex.Expression {
	for _, t := range terms {
		if isAlwaysFalse(t) {
			return expression.False()
		}
	}
	if len(terms) == 0 && len(notTerms) == 0 {
		return expression.True()
	}

	// Step 3: for each ¬d in notTerms, if d's conjunction is a subset of terms.
	for _, nt := range notTerms {
		dterms := FlattenAndTerms(nt)
		if subsetOf(dterms, terms) {
			allNonNull := true
			for _, d := range dterms {
				if d.IsNullable() {
					allNonNull = false
					break
				}
			}
			if allNonNull {
				return expression.False()
			}
			conj := make([]rex.Expression, 0, len(dterms)+1)
			conj = append(conj, expression.NewNullLiteral(types.Boolean))
			for _, d := range dterms {
				conj = append(conj, expression.NewIsNull(d))
			}
			return expression.JoinAnd(conj...)
		}
	}

	terms = append([]rex.Expression{}, terms...)

	// Step 4/5: literal-ref equality propagation + range composition, via the
	// Sarg collector (spec.md §4.3's conjunctive half).
	terms = CollectConjunction(terms)
	for _, t := range terms {
		if isAlwaysFalse(t) {
			return expression.False()
		}
	}
	if conflict := detectLiteralConflict(terms); conflict {
		return expression.False()
	}

	// Step 6: negated-term detection.
	for _, t := range terms {
		if neg, ok := negationOf(t); ok {
			for _, other := range terms {
				if StructurallyEqual(neg, other) {
					return expression.False()
				}
			}
		}
	}

	// Step 7: strict-operand contradiction via the strong-null analyzer.
	terms = pruneStrictContradictions(terms)
	if terms == nil {
		return expression.False()
	}

	if m == rex.FALSE {
		kept := terms[:0:0]
		for _, t := range terms {
			if expression.IsNullLiteral(t) {
				return expression.False()
			}
			kept = append(kept, t)
		}
		terms = kept
		if len(terms) == 1 && len(notTerms) == 0 {
			return s.simplify(terms[0], rex.FALSE, preds)
		}
	}

	all := append(append([]rex.Expression{}, terms...), negateAll(notTerms)...)
	if len(all) == 0 {
		return expression.True()
	}
	return expression.JoinAnd(all...)
}

func negateAll(es []rex.Expression) []rex.Expression {
	out := make([]rex.Expression, len(es))
	for i, e := range es {
		out[i] = expression.NewNot(e)
	}
	return out
}

func isAlwaysFalse(e rex.Expression) bool {
	b, ok := expression.IsBooleanLiteral(e)
	return ok && !b
}

func subsetOf(small, big []rex.Expression) bool {
	for _, s := range small {
		found := false
		for _, b := range big {
			if StructurallyEqual(s, b) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return len(small) > 0
}

// FlattenAndTerms decomposes e into AND-terms (delegating to
// expression.FlattenAnd), exported for reuse by the simplifier's dispatcher.
func FlattenAndTerms(e rex.Expression) []rex.Expression { return expression.FlattenAnd(e) }

// FlattenOrTerms is FlattenAndTerms' disjunctive dual.
func FlattenOrTerms(e rex.Expression) []rex.Expression { return expression.FlattenOr(e) }

func negationOf(e rex.Expression) (rex.Expression, bool) {
	c, ok := e.(*expression.Comparison)
	if !ok {
		return nil, false
	}
	neg, ok := c.Op.Negate()
	if !ok {
		return nil, false
	}
	return &expression.Comparison{BinaryExpression: expression.BinaryExpression{Left: c.Left, Right: c.Right}, Op: neg}, true
}

func detectLiteralConflict(terms []rex.Expression) bool {
	seen := map[string]interface{}{}
	for _, t := range terms {
		c, ok := ComparisonOf(t)
		if !ok || c.Kind != rex.EQUALS {
			continue
		}
		key := c.Ref.String()
		if prev, ok := seen[key]; ok {
			if prev != c.Literal.Value {
				return true
			}
		} else {
			seen[key] = c.Literal.Value
		}
	}
	return false
}

// pruneStrictContradictions drops redundant IS NOT NULL terms (whose ref is
// already proven non-null by the strict set) and returns nil if some IS
// NULL(x) in the conjunction collides with a term's strict-null set
// (spec.md §4.2 step 7).
func pruneStrictContradictions(terms []rex.Expression) []rex.Expression {
	strict := RefMask{}
	for _, t := range terms {
		for _, c := range t.Children() {
			if gf, ok := c.(*expression.GetField); ok {
				if IsNotTrue(t, NewRefMask(gf.Index)) {
					strict[gf.Index] = true
				}
			}
		}
	}

	out := make([]rex.Expression, 0, len(terms))
	for _, t := range terms {
		if isp, ok := IsPredicateOf(t); ok {
			if gf, ok := isp.Operand.(*expression.GetField); ok {
				if !isp.Negated && strict[gf.Index] {
					return nil
				}
				if isp.Negated && strict[gf.Index] {
					continue
				}
			}
		}
		out = append(out, t)
	}
	return out
}

// simplifyOr implements the disjunction engine, spec.md §4.2.
func (s *Simplifier) simplifyOr(e *expression.Or, m rex.UnknownAs, preds *PredicateList) rex.Expression {
	terms := FlattenOrTerms(e)

	// Move IS NULL terms to the head.
	reordered := make([]rex.Expression, 0, len(terms))
	for _, t := range terms {
		if n, ok := t.(*expression.IsNull); ok && !n.Negated {
			reordered = append(reordered, t)
		}
	}
	for _, t := range terms {
		if n, ok := t.(*expression.IsNull); !ok || n.Negated {
			reordered = append(reordered, t)
		}
	}
	terms = reordered

	ctx := preds
	out := make([]rex.Expression, 0, len(terms))
	sawNull := false
	for _, raw := range terms {
		t := s.simplify(raw, rex.UNKNOWN, ctx)
		if b, ok := expression.IsBooleanLiteral(t); ok {
			if b {
				if m == rex.TRUE && expression.IsNullLiteral(raw) {
					return expression.NewNullLiteral(types.Boolean)
				}
				return expression.True()
			}
			continue // FALSE term drops out of the OR
		}
		if expression.IsNullLiteral(t) {
			sawNull = true
			continue
		}
		if IsSafeExpression(t) {
			ctx = ctx.With(expression.NewIsNotTrue(t))
		}
		out = append(out, t)
	}

	out = collectDisjunctiveSarg(out)

	// x <> A ∨ x <> B (distinct constants, same ref) → TRUE if x is
	// non-nullable (one of the two always holds), else x IS NOT NULL ∨ NULL:
	// for any non-NULL x at least one NOT_EQUALS term is TRUE, and for NULL x
	// both are NULL. Spec.md §4.2 disjunction / §8 scenario 6.
	if ref, collapsible := distinctNotEqualsRef(out); collapsible {
		if !ref.IsNullable() {
			return expression.True()
		}
		out = replaceDistinctNotEquals(out, ref)
		sawNull = true
	}

	// x ∨ (NOT x) → TRUE if x is non-nullable; else the pair becomes
	// x IS NOT NULL ∨ NULL, and the other disjuncts are kept.
pairs:
	for i, a := range out {
		if n, ok := a.(*expression.Not); ok {
			for j, b := range out {
				if i != j && StructurallyEqual(n.Child, b) {
					if !b.IsNullable() {
						return expression.True()
					}
					out[j] = expression.NewIsNotNull(b)
					out = append(out[:i:i], out[i+1:]...)
					sawNull = true
					break pairs
				}
			}
		}
	}

	if len(out) == 0 {
		if sawNull {
			return expression.NewNullLiteral(types.Boolean)
		}
		return expression.False()
	}
	if len(out) == 1 && !sawNull {
		return out[0]
	}
	result := expression.JoinOr(out...)
	if sawNull {
		result = expression.NewOr(result, expression.NewNullLiteral(types.Boolean))
	}
	return result
}

// collectDisjunctiveSarg applies the Sarg collector to a disjunction by
// negating the whole term list, merging conjunctively, then negating back —
// the "disjunctive is the complement by negate" rule (spec.md §4.3).
func collectDisjunctiveSarg(terms []rex.Expression) []rex.Expression {
	if len(terms) < 2 {
		return terms
	}
	negated := make([]rex.Expression, len(terms))
	for i, t := range terms {
		negated[i] = expression.NewNot(t)
	}
	merged := CollectConjunction(negated)
	if len(merged) == len(negated) {
		return terms // no merge occurred
	}
	out := make([]rex.Expression, len(merged))
	for i, t := range merged {
		out[i] = expression.NewNot(t)
	}
	return out
}

// distinctNotEqualsRef reports the ref of the first group of two or more
// NOT_EQUALS terms over the same ref with pairwise-distinct literal values,
// if any.
func distinctNotEqualsRef(terms []rex.Expression) (rex.Expression, bool) {
	type group struct {
		ref    rex.Expression
		values []interface{}
	}
	var groups []*group
	for _, t := range terms {
		c, ok := ComparisonOf(t)
		if !ok || c.Kind != rex.NOT_EQUALS || c.Literal.IsNull() {
			continue
		}
		var g *group
		for _, cand := range groups {
			if StructurallyEqual(cand.ref, c.Ref) {
				g = cand
				break
			}
		}
		if g == nil {
			g = &group{ref: c.Ref}
			groups = append(groups, g)
		}
		g.values = append(g.values, c.Literal.Value)
	}
	for _, g := range groups {
		for i := 1; i < len(g.values); i++ {
			if g.values[i] != g.values[0] {
				return g.ref, true
			}
		}
	}
	return nil, false
}

// replaceDistinctNotEquals drops every `ref <> literal` term over ref and
// replaces the whole group with a single `ref IS NOT NULL` term.
func replaceDistinctNotEquals(terms []rex.Expression, ref rex.Expression) []rex.Expression {
	out := make([]rex.Expression, 0, len(terms))
	replaced := false
	for _, t := range terms {
		if c, ok := ComparisonOf(t); ok && c.Kind == rex.NOT_EQUALS && StructurallyEqual(c.Ref, ref) {
			if !replaced {
				out = append(out, expression.NewIsNotNull(ref))
				replaced = true
			}
			continue
		}
		out = append(out, t)
	}
	return out
}
