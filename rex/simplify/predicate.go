package simplify

import (
	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/expression"
)

// PredicateList holds known-true facts gathered from an enclosing context
// (e.g. a WHERE clause's sibling conjuncts, or terms already proven by an OR
// simplification pass), used for residue computation and short-circuiting
// (spec.md §4.3 "Residue", §6 "MetadataProvider-supplied PredicateList").
type PredicateList struct {
	facts []rex.Expression
}

func NewPredicateList(facts ...rex.Expression) *PredicateList {
	return &PredicateList{facts: append([]rex.Expression{}, facts...)}
}

// Empty is the zero-fact predicate list simplify(e) starts from.
func Empty() *PredicateList { return &PredicateList{} }

// With returns a new PredicateList with fact appended; the receiver is left
// untouched so callers can fork predicate context per OR-branch without
// aliasing bugs.
func (p *PredicateList) With(fact rex.Expression) *PredicateList {
	out := make([]rex.Expression, len(p.facts), len(p.facts)+1)
	copy(out, p.facts)
	out = append(out, fact)
	return &PredicateList{facts: out}
}

func (p *PredicateList) Facts() []rex.Expression { return p.facts }

// RangeFor returns the union of range constraints the predicate list implies
// for ref, intersected, along with whether ref is proven non-null by an IS
// NOT NULL fact (or any strict comparison fact).
func (p *PredicateList) RangeFor(ref rex.Expression) (known []Comparison, notNull bool) {
	for _, f := range p.facts {
		if isp, ok := IsPredicateOf(f); ok && sameRef(isp.Operand, ref) {
			if isp.Negated {
				notNull = true
			}
			continue
		}
		if c, ok := ComparisonOf(f); ok && sameRef(c.Ref, ref) {
			known = append(known, c)
			notNull = true
		}
	}
	return known, notNull
}

// Implies reports whether fact is already present verbatim in the predicate
// list (a cheap syntactic containment test; the range/residue machinery in
// range.go handles the semantic case).
func (p *PredicateList) Implies(fact rex.Expression) bool {
	for _, f := range p.facts {
		if StructurallyEqual(f, fact) {
			return true
		}
	}
	return false
}

func sameRef(a, b rex.Expression) bool { return StructurallyEqual(a, b) }

// StructurallyEqual is a deep, type-and-value equality check used throughout
// the simplifier both for fixed-point detection ("return the input node, not
// a copy") and for recognizing when two refs/literals denote the same thing.
func StructurallyEqual(a, b rex.Expression) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case *expression.Literal:
		bv := b.(*expression.Literal)
		return av.IsNull() == bv.IsNull() && av.Value == bv.Value && av.Typ.Equal(bv.Typ)
	case *expression.GetField:
		bv := b.(*expression.GetField)
		return av.Index == bv.Index
	case *expression.FieldAccess:
		bv := b.(*expression.FieldAccess)
		return av.Field == bv.Field && StructurallyEqual(av.Parent, bv.Parent)
	}
	ac, bc := a.Children(), b.Children()
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if !StructurallyEqual(ac[i], bc[i]) {
			return false
		}
	}
	return true
}
