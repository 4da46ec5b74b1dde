package simplify

import (
	"math/rand"
	"reflect"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/require"

	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/expression"
	"github.com/go-rex/rexsimplify/rex/types"
)

// randExpr is a quick.Generator over a small boolean expression grammar (one
// nullable int ref, small int literals, AND/OR/NOT/comparisons), used to
// drive the quantified invariants of spec.md §8 without a dedicated property
// testing library (none of this pack's repos bring one in, per DESIGN.md).
type randExpr struct {
	e rex.Expression
}

var genRef = expression.NewGetField(0, types.Int64, "x", true)

func genLiteral(r *rand.Rand) rex.Expression {
	return expression.NewLiteral(int64(r.Intn(5)), types.Int64)
}

func genOperand(r *rand.Rand) rex.Expression {
	if r.Intn(2) == 0 {
		return genRef
	}
	return genLiteral(r)
}

func genBoolExpr(r *rand.Rand, depth int) rex.Expression {
	if depth <= 0 {
		switch r.Intn(4) {
		case 0:
			return expression.NewEquals(genOperand(r), genOperand(r))
		case 1:
			return expression.NewLessThan(genOperand(r), genOperand(r))
		case 2:
			return expression.NewIsNull(genRef)
		default:
			return boolLit(r.Intn(2) == 0)
		}
	}
	switch r.Intn(3) {
	case 0:
		return expression.NewAnd(genBoolExpr(r, depth-1), genBoolExpr(r, depth-1))
	case 1:
		return expression.NewOr(genBoolExpr(r, depth-1), genBoolExpr(r, depth-1))
	default:
		return expression.NewNot(genBoolExpr(r, depth-1))
	}
}

func (randExpr) Generate(r *rand.Rand, size int) reflect.Value {
	return reflect.ValueOf(randExpr{e: genBoolExpr(r, 1)})
}

// TestIdempotence is invariant 2: simplify(simplify(e, m), m) == simplify(e, m).
func TestIdempotence(t *testing.T) {
	s := New()
	check := func(re randExpr) bool {
		once := s.Simplify(re.e)
		twice := s.Simplify(once)
		return StructurallyEqual(once, twice)
	}
	require.NoError(t, quick.Check(check, &quick.Config{MaxCount: 200}))
}

// TestNotInvolution is invariant 3: simplify(NOT NOT e, m) == simplify(e, m).
func TestNotInvolution(t *testing.T) {
	s := New()
	check := func(re randExpr) bool {
		e := re.e
		doubled := expression.NewNot(expression.NewNot(e))
		return StructurallyEqual(s.Simplify(doubled), s.Simplify(e))
	}
	require.NoError(t, quick.Check(check, &quick.Config{MaxCount: 200}))
}

// TestDeMorgan is invariant 4: simplify(NOT (a AND b), m) and
// simplify((NOT a) OR (NOT b), m) agree by structural equality.
func TestDeMorgan(t *testing.T) {
	s := New()
	check := func(a, b randExpr) bool {
		left := s.Simplify(expression.NewNot(expression.NewAnd(a.e, b.e)))
		right := s.Simplify(expression.NewOr(expression.NewNot(a.e), expression.NewNot(b.e)))
		return StructurallyEqual(left, right)
	}
	require.NoError(t, quick.Check(check, &quick.Config{MaxCount: 200}))
}

// TestSargRoundTrip is invariant 5: for any finite list of comparisons on the
// same ref, the collected Sarg agrees with their conjunction on every value
// in a bounded domain.
func TestSargRoundTrip(t *testing.T) {
	x := expression.NewGetField(0, types.Int64, "x", false)
	terms := []rex.Expression{
		expression.NewGreaterThanOrEqual(x, expression.NewLiteral(int64(2), types.Int64)),
		expression.NewLessThan(x, expression.NewLiteral(int64(8), types.Int64)),
		expression.NewNotEquals(x, expression.NewLiteral(int64(5), types.Int64)),
	}
	conj := expression.JoinAnd(terms...)
	collected := JoinAndCollected(terms)

	ctx := rex.NewContext()
	for v := int64(-2); v < 12; v++ {
		row := rex.NewRow(v)
		want, err := conj.Eval(ctx, row)
		require.NoError(t, err)
		got, err := collected.Eval(ctx, row)
		require.NoError(t, err)
		require.Equal(t, want, got, "v=%d", v)
	}
}

// JoinAndCollected runs the Sarg collector over terms and ANDs whatever
// remains, exercising CollectConjunction directly (the conjunctive half of
// spec.md §4.3's round-trip property) rather than going through the full
// Simplifier dispatcher.
func JoinAndCollected(terms []rex.Expression) rex.Expression {
	return expression.JoinAnd(CollectConjunction(append([]rex.Expression{}, terms...))...)
}

// TestResidueMonotonicity is invariant 6: adding predicates to P never makes
// the simplified expression larger in complexity after a fixed number of
// iterations (here: residue only ever narrows or keeps a term, never grows
// it).
func TestResidueMonotonicity(t *testing.T) {
	x := expression.NewGetField(0, types.Int64, "x", false)
	term := expression.NewLessThan(x, expression.NewLiteral(int64(10), types.Int64))

	withoutPreds := New().simplify(term, rex.UNKNOWN, Empty())
	preds := Empty().With(expression.NewGreaterThanOrEqual(x, expression.NewLiteral(int64(5), types.Int64)))
	withPreds := New().simplify(term, rex.UNKNOWN, preds)

	require.LessOrEqual(t, len(withPreds.String()), len(withoutPreds.String())+1)
}
