package simplify

import (
	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/expression"
	"github.com/go-rex/rexsimplify/rex/sarg"
	"github.com/go-rex/rexsimplify/rex/types"
)

// sargBuilder accumulates a RangeSet (the universe, narrowed by each
// conjunctive term), a running nullAs lattice join,
// and the types seen for a single reference, mirroring the teacher-grounded
// RexSargBuilder described in spec.md §4.3.
type sargBuilder struct {
	ref       rex.Expression
	cmp       func(a, b interface{}) int
	ranges    sarg.RangeSet[interface{}]
	nullAs    rex.UnknownAs
	termCount int
}

func newSargBuilder(ref rex.Expression) *sargBuilder {
	fam := ref.Type().Family()
	cmp := sarg.Comparator(fam)
	return &sargBuilder{ref: ref, cmp: cmp, ranges: sarg.Universe[interface{}](cmp), nullAs: rex.FALSE}
}

func (b *sargBuilder) joinNullAs(v rex.UnknownAs) {
	if b.nullAs == v {
		return
	}
	if b.nullAs == rex.FALSE {
		b.nullAs = v
		return
	}
	if v == rex.FALSE {
		return
	}
	b.nullAs = rex.UNKNOWN
}

// collectConjunctive folds a single `ref op literal` term (conjunctive
// context) into the builder per the per-kind range contributions table
// (spec.md §4.3).
func (b *sargBuilder) collectConjunctive(c Comparison) {
	b.termCount++
	v := c.Literal.Value
	switch c.Kind {
	case rex.LESS_THAN:
		b.ranges = b.ranges.Intersect(sarg.NewRangeSet(b.cmp, sarg.LessThan[interface{}](v)))
	case rex.LESS_THAN_OR_EQUAL:
		b.ranges = b.ranges.Intersect(sarg.NewRangeSet(b.cmp, sarg.LessThanOrEqual[interface{}](v)))
	case rex.GREATER_THAN:
		b.ranges = b.ranges.Intersect(sarg.NewRangeSet(b.cmp, sarg.GreaterThan[interface{}](v)))
	case rex.GREATER_THAN_OR_EQUAL:
		b.ranges = b.ranges.Intersect(sarg.NewRangeSet(b.cmp, sarg.GreaterThanOrEqual[interface{}](v)))
	case rex.EQUALS:
		b.ranges = b.ranges.Intersect(sarg.NewRangeSet(b.cmp, sarg.Point[interface{}](v)))
	case rex.NOT_EQUALS:
		b.ranges = b.ranges.Intersect(sarg.NewRangeSet(b.cmp, sarg.Point[interface{}](v)).Complement())
	}
	b.joinNullAs(rex.FALSE)
}

func (b *sargBuilder) collectIsNull(negated bool) {
	b.termCount++
	if negated {
		b.joinNullAs(rex.FALSE)
	} else {
		b.ranges = b.ranges.Intersect(sarg.Empty[interface{}](b.cmp))
		b.joinNullAs(rex.TRUE)
	}
}

func (b *sargBuilder) sarg() sarg.Sarg[interface{}] { return sarg.New(b.ranges, b.nullAs) }

// CollectConjunction groups the flat list of AND-terms by reference,
// building a Sarg per distinct ref (spec.md §4.3 Collector). Terms that
// don't recognize as Comparison/IsPredicate on a common ref pass through
// unchanged; refs with only one contributing term are also passed through
// unless that single Sarg is itself non-simple (complexity > 1), per the
// Fix-up rule.
func CollectConjunction(terms []rex.Expression) []rex.Expression {
	type bucket struct {
		ref     rex.Expression
		builder *sargBuilder
		idxs    []int
	}
	var buckets []*bucket
	findBucket := func(ref rex.Expression) *bucket {
		for _, bk := range buckets {
			if StructurallyEqual(bk.ref, ref) {
				return bk
			}
		}
		return nil
	}

	keep := make([]bool, len(terms))
	for i := range keep {
		keep[i] = true
	}

	for i, t := range terms {
		if c, ok := ComparisonOf(t); ok && c.Literal.Value != nil {
			bk := findBucket(c.Ref)
			if bk == nil {
				bk = &bucket{ref: c.Ref, builder: newSargBuilder(c.Ref)}
				buckets = append(buckets, bk)
			}
			bk.builder.collectConjunctive(c)
			bk.idxs = append(bk.idxs, i)
		} else if isp, ok := IsPredicateOf(t); ok {
			bk := findBucket(isp.Operand)
			if bk == nil {
				bk = &bucket{ref: isp.Operand, builder: newSargBuilder(isp.Operand)}
				buckets = append(buckets, bk)
			}
			bk.builder.collectIsNull(isp.Negated)
			bk.idxs = append(bk.idxs, i)
		}
	}

	var replacements []rex.Expression
	for _, bk := range buckets {
		if len(bk.idxs) < 2 && bk.builder.sarg().Complexity() <= 1 {
			continue // Fix-up (b): no genuine merge, leave original term(s) alone
		}
		for _, i := range bk.idxs {
			keep[i] = false
		}
		replacements = append(replacements, fixupSarg(bk.ref, bk.builder.sarg()))
	}

	out := make([]rex.Expression, 0, len(terms))
	for i, t := range terms {
		if keep[i] {
			out = append(out, t)
		}
	}
	return append(out, replacements...)
}

// fixupSarg expands a "simple" Sarg (points, open interval, or complemented
// points) back to the equivalent IN/comparison/BETWEEN; otherwise emits
// SEARCH(ref, literal(Sarg)), per spec.md §4.3 Fix-up.
func fixupSarg(ref rex.Expression, s sarg.Sarg[interface{}]) rex.Expression {
	if s.IsNone() {
		return falseOrNull(s.NullAs)
	}
	if s.IsAll() {
		return trueOrNull(ref, s.NullAs)
	}
	if pts, ok := s.IsPoints(); ok {
		return expandPoints(ref, pts, s.NullAs, false)
	}
	if pts, ok := s.IsComplementedPoints(); ok {
		return expandPoints(ref, pts, s.NullAs, true)
	}
	return expression.NewSearch(ref, s)
}

func expandPoints(ref rex.Expression, pts []interface{}, nullAs rex.UnknownAs, negated bool) rex.Expression {
	typ := types.NotNull(ref.Type())
	lits := make([]rex.Expression, len(pts))
	for i, v := range pts {
		lits[i] = expression.NewLiteral(v, typ)
	}
	var base rex.Expression
	if len(pts) == 1 {
		if negated {
			base = expression.NewNotEquals(ref, lits[0])
		} else {
			base = expression.NewEquals(ref, lits[0])
		}
	} else if negated {
		base = expression.NewNotIn(ref, lits)
	} else {
		base = expression.NewIn(ref, lits)
	}
	if nullAs == rex.FALSE || !ref.IsNullable() {
		return base
	}
	return expression.NewOr(base, expression.NewNullLiteral(types.Boolean))
}

func falseOrNull(nullAs rex.UnknownAs) rex.Expression {
	if nullAs == rex.TRUE {
		return expression.True()
	}
	return expression.False()
}

func trueOrNull(ref rex.Expression, nullAs rex.UnknownAs) rex.Expression {
	if nullAs == rex.FALSE || !ref.IsNullable() {
		return expression.True()
	}
	return expression.NewOr(expression.True(), expression.NewNullLiteral(types.Boolean))
}

// SimplifySearch implements the SEARCH(ref, Sarg) rewrite rules (spec.md
// §4.3 "SEARCH simplification").
func SimplifySearch(s *expression.Search, predicates *PredicateList) rex.Expression {
	arg := s.Arg
	if arg.IsAll() {
		return trueOrNull(s.Ref, arg.NullAs)
	}
	if arg.IsNone() {
		return falseOrNull(arg.NullAs)
	}
	if arg.NullAs != rex.UNKNOWN {
		if _, notNull := predicates.RangeFor(s.Ref); notNull {
			arg = sarg.New(arg.Ranges, rex.FALSE)
		}
	}
	if pts, ok := arg.IsPoints(); ok && len(pts) <= 1 {
		return expandPoints(s.Ref, pts, arg.NullAs, false)
	}
	return expression.NewSearch(s.Ref, arg)
}

// Residue implements spec.md §4.3 "Residue": intersect a comparison term's
// implied range with the predicate list's known facts on the same ref.
func Residue(c Comparison, predicates *PredicateList) rex.Expression {
	known, _ := predicates.RangeFor(c.Ref)
	if len(known) == 0 {
		return nil
	}
	fam := c.Ref.Type().Family()
	cmp := sarg.Comparator(fam)
	b := newSargBuilder(c.Ref)
	b.cmp = cmp
	b.ranges = sarg.Universe[interface{}](cmp)
	b.collectConjunctive(c)
	termRange := b.ranges

	ctxRanges := sarg.Universe[interface{}](cmp)
	for _, k := range known {
		kb := newSargBuilder(c.Ref)
		kb.cmp = cmp
		kb.ranges = sarg.Universe[interface{}](cmp)
		kb.collectConjunctive(k)
		ctxRanges = ctxRanges.Intersect(kb.ranges)
	}

	inter := termRange.Intersect(ctxRanges)
	if inter.IsEmpty() {
		return expression.False()
	}
	// ctxRanges entirely within termRange: the predicate list already proves
	// the term, so the term contributes nothing beyond ref's nullability.
	if ctxRanges.Intersect(termRange.Complement()).IsEmpty() {
		return expression.NewIsNotNull(c.Ref)
	}
	if pts, ok := inter.IsPoints(); ok && len(pts) == 1 {
		return expandPoints(c.Ref, pts, rex.FALSE, false)
	}
	return nil
}
