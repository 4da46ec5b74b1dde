package expression

import (
	"fmt"

	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/types"
)

// Measure implements M2V (measure-to-value) and V2M (value-to-measure)
// lifting, per spec.md §3/§4.1 rule 16 ("M2V(V2M(x)) → x, with aggregate
// calls inside x rewritten to single-row window aggregates"). The collapse
// itself is IsMeasureRoundTrip below; the aggregate-call rewrite is not
// implemented (see DESIGN.md's Rule 16 entry for why).
type Measure struct {
	UnaryExpression
	ToValue bool // true: M2V, false: V2M
	Pos     rex.Pos
}

func NewM2V(child rex.Expression) *Measure { return &Measure{UnaryExpression{Child: child}, true, rex.Pos{}} }
func NewV2M(child rex.Expression) *Measure { return &Measure{UnaryExpression{Child: child}, false, rex.Pos{}} }

func (m *Measure) Kind() rex.Kind {
	if m.ToValue {
		return rex.M2V
	}
	return rex.V2M
}

func (m *Measure) Type() types.Type { return m.Child.Type() }
func (m *Measure) IsNullable() bool { return m.Child.IsNullable() }

func (m *Measure) WithChildren(children ...rex.Expression) (rex.Expression, error) {
	c, err := arity1(children)
	if err != nil {
		return nil, err
	}
	return &Measure{UnaryExpression{Child: c}, m.ToValue, rex.Pos{}}, nil
}

// IsMeasureRoundTrip reports whether this M2V wraps a V2M directly, the
// shape rule 16 collapses; it returns the V2M's operand for the caller to
// substitute in.
func (m *Measure) IsMeasureRoundTrip() (rex.Expression, bool) {
	if !m.ToValue {
		return nil, false
	}
	inner, ok := m.Child.(*Measure)
	if !ok || inner.ToValue {
		return nil, false
	}
	return inner.Child, true
}

func (m *Measure) Eval(ctx *rex.Context, row rex.Row) (interface{}, error) {
	return m.Child.Eval(ctx, row)
}

func (m *Measure) String() string {
	if m.ToValue {
		return fmt.Sprintf("M2V(%s)", m.Child)
	}
	return fmt.Sprintf("V2M(%s)", m.Child)
}
