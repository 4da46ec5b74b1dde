package expression

import (
	"fmt"

	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/types"
)

// Literal is a constant value of a declared type; Value is the sentinel nil
// for SQL NULL (spec.md §3: "value may be a domain constant or the sentinel
// NULL").
type Literal struct {
	Value interface{}
	Typ   types.Type
	Pos   rex.Pos
}

// NewLiteral constructs a non-NULL literal of the given type.
func NewLiteral(value interface{}, typ types.Type) *Literal {
	return &Literal{Value: value, Typ: typ}
}

// NewNullLiteral constructs the typed NULL literal used pervasively by the
// simplifier's rules (e.g. rule 1's "typed NULL literal").
func NewNullLiteral(typ types.Type) *Literal {
	return &Literal{Value: nil, Typ: types.Nullable(typ)}
}

func (l *Literal) Kind() rex.Kind               { return rex.LITERAL }
func (l *Literal) Type() types.Type             { return l.Typ }
func (l *Literal) IsNullable() bool             { return l.Typ.IsNullable() || l.Value == nil }
func (l *Literal) Deterministic() bool          { return true }
func (l *Literal) Children() []rex.Expression   { return nil }
func (l *Literal) Eval(_ *rex.Context, _ rex.Row) (interface{}, error) {
	return l.Value, nil
}

func (l *Literal) WithChildren(children ...rex.Expression) (rex.Expression, error) {
	if len(children) != 0 {
		return nil, rex.ErrMalformedExpression.New("Literal takes no children")
	}
	return l, nil
}

func (l *Literal) String() string {
	if l.Value == nil {
		return "NULL"
	}
	if s, ok := l.Value.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", l.Value)
}

// IsNull reports whether this literal is the SQL NULL sentinel.
func (l *Literal) IsNull() bool { return l.Value == nil }

// True and False are the canonical boolean literals the simplifier rewrites
// to; IsTrue/IsFalse recognize them by value+family rather than by identity
// so any equivalently-constructed literal is recognized too.
func True() *Literal  { return NewLiteral(true, types.Boolean) }
func False() *Literal { return NewLiteral(false, types.Boolean) }

// IsBooleanLiteral reports whether e is a (non-NULL) boolean Literal, and if
// so its value.
func IsBooleanLiteral(e rex.Expression) (value bool, ok bool) {
	l, isLit := e.(*Literal)
	if !isLit || l.Typ.Family() != types.FamilyBoolean || l.IsNull() {
		return false, false
	}
	b, ok := l.Value.(bool)
	return b, ok
}

// IsNullLiteral reports whether e is a literal NULL (of any type).
func IsNullLiteral(e rex.Expression) bool {
	l, ok := e.(*Literal)
	return ok && l.IsNull()
}
