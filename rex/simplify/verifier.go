package simplify

import (
	"reflect"

	"github.com/shopspring/decimal"

	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/expression"
	"github.com/go-rex/rexsimplify/rex/types"
)

// maxAssignments bounds the brute-force cartesian product the verifier
// enumerates, per spec.md §4.6 "bounded assignments"; a domain whose product
// would exceed this is skipped rather than truncated, since a partial check
// would silently under-verify.
const maxAssignments = 4096

// verify implements spec.md §4.6: off by default (gated by s.Paranoid at the
// call site), it brute-forces small finite assignments of the variables both
// sides reference and asserts the two expressions agree on every one,
// filtered by preds. It panics on the first disagreement, since the public
// Simplify* entry points return no error.
func (s *Simplifier) verify(orig, out rex.Expression, m rex.UnknownAs, preds *PredicateList) {
	before := referencedFields(orig, map[int]*expression.GetField{})
	after := referencedFields(out, map[int]*expression.GetField{})
	for idx, gf := range after {
		if _, ok := before[idx]; !ok {
			panic(rex.ErrParanoidMismatch.New("referenced-variable check", orig.String(), out.String()+" ("+gf.String()+" not in original)"))
		}
	}
	if len(before) == 0 {
		return
	}

	domains := make(map[int][]interface{}, len(before))
	for idx, gf := range before {
		d, ok := enumerateDomain(gf)
		if !ok {
			rex.NewContext().Debugf("paranoid verification skipped: unsupported domain for %s", gf.String())
			return
		}
		domains[idx] = d
	}

	indices := make([]int, 0, len(domains))
	maxIndex := 0
	total := 1
	for idx := range domains {
		indices = append(indices, idx)
		if idx > maxIndex {
			maxIndex = idx
		}
		total *= len(domains[idx])
		if total > maxAssignments {
			rex.NewContext().Debugf("paranoid verification skipped: assignment space too large")
			return
		}
	}

	ctx := rex.NewContext()
	rowLen := maxIndex + 1
	assignment := make([]interface{}, rowLen)

	var walk func(pos int)
	walk = func(pos int) {
		if pos == len(indices) {
			row := rex.NewRow(append([]interface{}{}, assignment...)...)
			if !satisfiesPredicates(ctx, preds, row) {
				return
			}
			checkAssignment(ctx, orig, out, m, row)
			return
		}
		idx := indices[pos]
		for _, v := range domains[idx] {
			assignment[idx] = v
			walk(pos + 1)
		}
		assignment[idx] = nil
	}
	walk(0)
}

// checkAssignment evaluates both sides under row and panics on divergence.
func checkAssignment(ctx *rex.Context, orig, out rex.Expression, m rex.UnknownAs, row rex.Row) {
	beforeVal, err := orig.Eval(ctx, row)
	if err != nil {
		return
	}
	afterVal, err := out.Eval(ctx, row)
	if err != nil {
		return
	}
	beforeVal = foldUnknown(orig, beforeVal, m)
	afterVal = foldUnknown(out, afterVal, m)
	if !valuesEqual(beforeVal, afterVal) {
		panic(rex.ErrParanoidMismatch.New(row, beforeVal, afterVal))
	}
}

// foldUnknown folds a boolean-family NULL result to the literal m stands for,
// exactly the way the public entry points fold the top-level result
// (spec.md §4.6 step 3: "under UnknownAs ∈ {TRUE,FALSE}, the NULL sentinel is
// folded to the corresponding boolean").
func foldUnknown(e rex.Expression, v interface{}, m rex.UnknownAs) interface{} {
	if v != nil || e.Type().Family() != types.FamilyBoolean {
		return v
	}
	if b, ok := m.ToBoolean(); ok {
		return b
	}
	return v
}

func valuesEqual(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if ad, ok := a.(decimal.Decimal); ok {
		if bd, ok := b.(decimal.Decimal); ok {
			return ad.Equal(bd)
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

// satisfiesPredicates reports whether every fact in preds evaluates to true
// on row; non-boolean or erroring facts are treated as not holding, which
// just narrows the assignments checked rather than broadens them.
func satisfiesPredicates(ctx *rex.Context, preds *PredicateList, row rex.Row) bool {
	if preds == nil {
		return true
	}
	for _, f := range preds.Facts() {
		v, err := f.Eval(ctx, row)
		if err != nil || v != true {
			return false
		}
	}
	return true
}

// enumerateDomain returns a small finite set of representative values for
// gf's type, or ok=false if gf's family admits no such bounded enumeration
// (spec.md §4.6 step 2: "if either side contains unsupported constructs,
// verification is skipped").
func enumerateDomain(gf *expression.GetField) ([]interface{}, bool) {
	var vals []interface{}
	switch gf.Type().Family() {
	case types.FamilyBoolean:
		vals = []interface{}{true, false}
	case types.FamilyInteger:
		vals = []interface{}{int64(-1), int64(0), int64(1), int64(2)}
	default:
		return nil, false
	}
	if gf.IsNullable() {
		vals = append(vals, nil)
	}
	return vals, true
}

// referencedFields collects every GetField reachable from e, keyed by
// ordinal, into out (reused across the call so both sides share one map
// shape check in verify).
func referencedFields(e rex.Expression, out map[int]*expression.GetField) map[int]*expression.GetField {
	if e == nil {
		return out
	}
	if gf, ok := e.(*expression.GetField); ok {
		out[gf.Index] = gf
		return out
	}
	for _, c := range e.Children() {
		referencedFields(c, out)
	}
	return out
}
