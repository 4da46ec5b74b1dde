package expression

import (
	"fmt"
	"strings"

	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/types"
)

// TrimKind selects TRIM/LTRIM/RTRIM, matching the teacher's expression.Trim
// (trim_test.go TrimType).
type TrimKind int

const (
	TrimBoth TrimKind = iota
	TrimLeading
	TrimTrailing
)

// Trim strips Cutset (default whitespace) from Str, per TrimKind.
type Trim struct {
	Str    rex.Expression
	Cutset rex.Expression // nil means default whitespace
	Op     TrimKind
	Pos    rex.Pos
}

func NewTrim(str, cutset rex.Expression) *Trim  { return &Trim{Str: str, Cutset: cutset, Op: TrimBoth} }
func NewLTrim(str, cutset rex.Expression) *Trim { return &Trim{Str: str, Cutset: cutset, Op: TrimLeading} }
func NewRTrim(str, cutset rex.Expression) *Trim { return &Trim{Str: str, Cutset: cutset, Op: TrimTrailing} }

func (t *Trim) Kind() rex.Kind {
	switch t.Op {
	case TrimLeading:
		return rex.LTRIM
	case TrimTrailing:
		return rex.RTRIM
	default:
		return rex.TRIM
	}
}

func (t *Trim) Type() types.Type {
	if t.Cutset != nil {
		return booleanlessString(t.Str, t.Cutset)
	}
	return booleanlessString(t.Str)
}

// booleanlessString mirrors booleanType's nullable-union logic but returns
// VARCHAR instead of BOOLEAN, since TRIM/LTRIM/RTRIM are not predicates.
func booleanlessString(operands ...rex.Expression) types.Type {
	for _, o := range operands {
		if o.IsNullable() {
			return types.Nullable(types.VarChar)
		}
	}
	return types.NotNull(types.VarChar)
}

func (t *Trim) IsNullable() bool { return t.Type().IsNullable() }

func (t *Trim) Deterministic() bool {
	if t.Cutset != nil && !t.Cutset.Deterministic() {
		return false
	}
	return t.Str.Deterministic()
}

func (t *Trim) Children() []rex.Expression {
	if t.Cutset == nil {
		return []rex.Expression{t.Str}
	}
	return []rex.Expression{t.Str, t.Cutset}
}

func (t *Trim) WithChildren(children ...rex.Expression) (rex.Expression, error) {
	switch len(children) {
	case 1:
		return &Trim{Str: children[0], Op: t.Op}, nil
	case 2:
		return &Trim{Str: children[0], Cutset: children[1], Op: t.Op}, nil
	default:
		return nil, rex.ErrMalformedExpression.New("Trim expects 1 or 2 children")
	}
}

func (t *Trim) Eval(ctx *rex.Context, row rex.Row) (interface{}, error) {
	sv, err := t.Str.Eval(ctx, row)
	if err != nil || sv == nil {
		return nil, err
	}
	s, ok := sv.(string)
	if !ok {
		return nil, fmt.Errorf("rexsimplify: TRIM operand must be a string, got %T", sv)
	}
	cutset := " \t\n\r"
	if t.Cutset != nil {
		cv, err := t.Cutset.Eval(ctx, row)
		if err != nil {
			return nil, err
		}
		if cv == nil {
			return nil, nil
		}
		cutset, _ = cv.(string)
	}
	switch t.Op {
	case TrimLeading:
		return strings.TrimLeft(s, cutset), nil
	case TrimTrailing:
		return strings.TrimRight(s, cutset), nil
	default:
		return strings.Trim(s, cutset), nil
	}
}

func (t *Trim) String() string {
	names := map[TrimKind]string{TrimBoth: "TRIM", TrimLeading: "LTRIM", TrimTrailing: "RTRIM"}
	if t.Cutset != nil {
		return fmt.Sprintf("%s(%s, %s)", names[t.Op], t.Str, t.Cutset)
	}
	return fmt.Sprintf("%s(%s)", names[t.Op], t.Str)
}
