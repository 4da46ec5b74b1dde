package expression

import (
	"fmt"

	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/types"
)

// GetField is a reference to a named input column by 0-based ordinal
// (spec.md §3 "InputRef"), named GetField to match the teacher's
// expression.NewGetField constructor used throughout sql/expression/*_test.go.
type GetField struct {
	Index    int
	Typ      types.Type
	Name     string
	Nullable bool
	Pos      rex.Pos
}

// NewGetField mirrors the teacher's expression.NewGetField(index, typ, name,
// nullable) exactly.
func NewGetField(index int, typ types.Type, name string, nullable bool) *GetField {
	return &GetField{Index: index, Typ: typ, Name: name, Nullable: nullable}
}

func (g *GetField) Kind() rex.Kind             { return rex.INPUT_REF }
func (g *GetField) Type() types.Type           { return g.Typ.WithNullable(g.Nullable) }
func (g *GetField) IsNullable() bool           { return g.Nullable }
func (g *GetField) Deterministic() bool        { return true }
func (g *GetField) Children() []rex.Expression { return nil }

func (g *GetField) WithChildren(children ...rex.Expression) (rex.Expression, error) {
	if len(children) != 0 {
		return nil, rex.ErrMalformedExpression.New("GetField takes no children")
	}
	return g, nil
}

func (g *GetField) Eval(_ *rex.Context, row rex.Row) (interface{}, error) {
	if g.Index < 0 || g.Index >= len(row) {
		return nil, rex.ErrMalformedExpression.New(fmt.Sprintf("field index %d out of range for row of length %d", g.Index, len(row)))
	}
	return row[g.Index], nil
}

func (g *GetField) String() string {
	if g.Name != "" {
		return g.Name
	}
	return fmt.Sprintf("$%d", g.Index)
}

// FieldAccess is a structured field projection off of a parent expression
// (spec.md §3). Unlike CAST, FieldAccess nullability is independent of the
// parent's nullability (accessing a non-null field of a nullable struct may
// still yield NULL if the struct itself is NULL) — spec.md §4.1 rule 6 names
// FIELD_ACCESS (there called ITEM) as one of the kinds with custom
// nullability rules that IS NULL push-through must not cross.
type FieldAccess struct {
	Parent rex.Expression
	Field  string
	Typ    types.Type
	Pos    rex.Pos
}

func NewFieldAccess(parent rex.Expression, field string, typ types.Type) *FieldAccess {
	return &FieldAccess{Parent: parent, Field: field, Typ: typ}
}

func (f *FieldAccess) Kind() rex.Kind   { return rex.FIELD_ACCESS }
func (f *FieldAccess) Type() types.Type { return f.Typ }
func (f *FieldAccess) IsNullable() bool { return f.Typ.IsNullable() }
func (f *FieldAccess) Deterministic() bool {
	return f.Parent.Deterministic()
}
func (f *FieldAccess) Children() []rex.Expression { return []rex.Expression{f.Parent} }

func (f *FieldAccess) WithChildren(children ...rex.Expression) (rex.Expression, error) {
	child, err := arity1(children)
	if err != nil {
		return nil, err
	}
	cp := *f
	cp.Parent = child
	return &cp, nil
}

func (f *FieldAccess) Eval(ctx *rex.Context, row rex.Row) (interface{}, error) {
	v, err := f.Parent.Eval(ctx, row)
	if err != nil || v == nil {
		return nil, err
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, rex.ErrMalformedExpression.New("FieldAccess parent did not evaluate to a struct-like value")
	}
	return m[f.Field], nil
}

func (f *FieldAccess) String() string {
	return fmt.Sprintf("%s.%s", f.Parent, f.Field)
}
