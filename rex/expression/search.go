package expression

import (
	"fmt"

	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/sarg"
	"github.com/go-rex/rexsimplify/rex/types"
)

// Search is SEARCH(ref, Sarg), the collapsed form the range engine rebuilds
// repeated comparisons into (spec.md §4.3). The Sarg is type-erased to
// interface{} values compared via sarg.Comparator(fam) so one node shape
// serves every orderable column type, mirroring how the teacher keeps a
// single MySQLRangeColumnExpr shape across all its column types.
type Search struct {
	Ref rex.Expression
	Arg sarg.Sarg[interface{}]
	Pos rex.Pos
}

func NewSearch(ref rex.Expression, arg sarg.Sarg[interface{}]) *Search {
	return &Search{Ref: ref, Arg: arg}
}

func (s *Search) Kind() rex.Kind { return rex.SEARCH }
func (s *Search) Type() types.Type {
	return types.NotNull(types.Boolean)
}
func (s *Search) IsNullable() bool { return false }

func (s *Search) Deterministic() bool      { return s.Ref.Deterministic() }
func (s *Search) Children() []rex.Expression { return []rex.Expression{s.Ref} }

func (s *Search) WithChildren(children ...rex.Expression) (rex.Expression, error) {
	ref, err := arity1(children)
	if err != nil {
		return nil, err
	}
	return &Search{Ref: ref, Arg: s.Arg}, nil
}

func (s *Search) Eval(ctx *rex.Context, row rex.Row) (interface{}, error) {
	v, err := s.Ref.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	if v == nil {
		switch s.Arg.NullAs {
		case rex.TRUE:
			return true, nil
		case rex.FALSE:
			return false, nil
		default:
			return nil, nil
		}
	}
	fam := s.Ref.Type().Family()
	cmp := sarg.Comparator(fam)
	for _, r := range s.Arg.Ranges.Ranges() {
		if rangeContains(r, v, cmp) {
			return true, nil
		}
	}
	return false, nil
}

func rangeContains(r sarg.Range[interface{}], v interface{}, cmp func(a, b interface{}) int) bool {
	lowOK := r.Lower.IsBelowAll()
	if !lowOK {
		c := cmp(v, r.Lower.Value())
		if r.Lower.Bound() == sarg.Below {
			lowOK = c >= 0
		} else {
			lowOK = c > 0
		}
	}
	if !lowOK {
		return false
	}
	if r.Upper.IsAboveAll() {
		return true
	}
	c := cmp(v, r.Upper.Value())
	if r.Upper.Bound() == sarg.Above {
		return c <= 0
	}
	return c < 0
}

func (s *Search) String() string { return fmt.Sprintf("SEARCH(%s, %s)", s.Ref, s.Arg) }
