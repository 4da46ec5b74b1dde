package expression

import (
	"fmt"
	"strings"

	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/types"
)

// In implements IN / NOT IN over a literal list, matching the teacher's
// expression.InTuple/HashInTuple shape but collapsed to one struct per
// spec.md §3 (IN is represented as a single node, not desugared to ORs).
// The simplifier's IN rule simplifies the operands and rewrites a
// one-element list to `=` / `<>`; it does not dedupe the list or prune NULLs.
type In struct {
	Left     rex.Expression
	List     []rex.Expression
	Negated  bool
	Pos      rex.Pos
}

func NewIn(left rex.Expression, list []rex.Expression) *In    { return &In{Left: left, List: list, Negated: false} }
func NewNotIn(left rex.Expression, list []rex.Expression) *In { return &In{Left: left, List: list, Negated: true} }

func (i *In) Kind() rex.Kind {
	if i.Negated {
		return rex.NOT_IN
	}
	return rex.IN
}

func (i *In) Type() types.Type {
	if i.Left.IsNullable() {
		return types.Nullable(types.Boolean)
	}
	for _, e := range i.List {
		if e.IsNullable() {
			return types.Nullable(types.Boolean)
		}
	}
	return types.NotNull(types.Boolean)
}

func (i *In) IsNullable() bool { return i.Type().IsNullable() }

func (i *In) Deterministic() bool { return i.Left.Deterministic() && allDeterministic(i.List) }

func (i *In) Children() []rex.Expression { return append([]rex.Expression{i.Left}, i.List...) }

func (i *In) WithChildren(children ...rex.Expression) (rex.Expression, error) {
	if len(children) < 1 {
		return nil, rex.ErrMalformedExpression.New("In expects at least 1 child")
	}
	return &In{Left: children[0], List: children[1:], Negated: i.Negated}, nil
}

// Eval follows SQL three-valued IN semantics: TRUE if any element equals the
// probe, UNKNOWN if no element equals but some comparison was UNKNOWN
// (either side NULL), FALSE otherwise.
func (i *In) Eval(ctx *rex.Context, row rex.Row) (interface{}, error) {
	lv, err := i.Left.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	sawUnknown := lv == nil
	fam := i.Left.Type().Family()

	if !sawUnknown {
		for _, e := range i.List {
			rv, err := e.Eval(ctx, row)
			if err != nil {
				return nil, err
			}
			if rv == nil {
				sawUnknown = true
				continue
			}
			eq, err := valuesEqual(lv, rv, fam)
			if err != nil {
				return nil, err
			}
			if eq {
				if i.Negated {
					return false, nil
				}
				return true, nil
			}
		}
	}

	if sawUnknown {
		return nil, nil
	}
	if i.Negated {
		return true, nil
	}
	return false, nil
}

func (i *In) String() string {
	parts := make([]string, len(i.List))
	for idx, e := range i.List {
		parts[idx] = e.String()
	}
	op := "IN"
	if i.Negated {
		op = "NOT IN"
	}
	return fmt.Sprintf("(%s %s (%s))", i.Left, op, strings.Join(parts, ", "))
}
