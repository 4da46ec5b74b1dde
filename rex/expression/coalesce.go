package expression

import (
	"fmt"
	"strings"

	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/types"
)

// Coalesce returns the first non-NULL operand, spec.md §3/§4.1 rule 9.
type Coalesce struct {
	Operands []rex.Expression
	Pos      rex.Pos
}

func NewCoalesce(operands ...rex.Expression) *Coalesce { return &Coalesce{Operands: operands} }

func (c *Coalesce) Kind() rex.Kind { return rex.COALESCE }

func (c *Coalesce) Type() types.Type {
	if len(c.Operands) == 0 {
		return types.Null
	}
	ts := make([]types.Type, len(c.Operands))
	for i, o := range c.Operands {
		ts[i] = o.Type()
	}
	t := types.LeastRestrictive(ts...)
	// COALESCE is only nullable if every operand is nullable (the last
	// reachable non-nullable operand forces a non-NULL result).
	for _, o := range c.Operands {
		if !o.IsNullable() {
			return types.NotNull(t)
		}
	}
	return types.Nullable(t)
}

func (c *Coalesce) IsNullable() bool         { return c.Type().IsNullable() }
func (c *Coalesce) Deterministic() bool      { return allDeterministic(c.Operands) }
func (c *Coalesce) Children() []rex.Expression { return c.Operands }

func (c *Coalesce) WithChildren(children ...rex.Expression) (rex.Expression, error) {
	return &Coalesce{Operands: children}, nil
}

func (c *Coalesce) Eval(ctx *rex.Context, row rex.Row) (interface{}, error) {
	for _, o := range c.Operands {
		v, err := o.Eval(ctx, row)
		if err != nil {
			return nil, err
		}
		if v != nil {
			return v, nil
		}
	}
	return nil, nil
}

func (c *Coalesce) String() string {
	parts := make([]string, len(c.Operands))
	for i, o := range c.Operands {
		parts[i] = o.String()
	}
	return fmt.Sprintf("COALESCE(%s)", strings.Join(parts, ", "))
}
