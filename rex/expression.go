package rex

import "github.com/go-rex/rexsimplify/rex/types"

// Expression is the immutable, typed expression node (spec.md §3 "Node").
// Concrete variants live in rex/expression; the simplifier and its helpers
// only ever program against this interface and against Kind, never against a
// concrete node's dynamic type, per spec.md §9 "Dispatch over operator kind".
type Expression interface {
	// Kind identifies the node's operator shape for structural dispatch.
	Kind() Kind

	// Type is the node's declared SQL type, carrying the nullability flag
	// that drives every 3VL decision in the simplifier.
	Type() types.Type

	// IsNullable is shorthand for Type().IsNullable().
	IsNullable() bool

	// Deterministic reports whether repeated Eval calls on the same row
	// always return the same value (spec.md §3 "Call ... carries ... a
	// determinism flag"). Non-deterministic calls (e.g. RAND()) are never
	// duplicated by a rewrite.
	Deterministic() bool

	// Children returns the node's direct operands in a fixed, kind-specific
	// order. Leaves (Literal, InputRef, opaque nodes) return nil.
	Children() []Expression

	// WithChildren returns a copy of this node with its children replaced.
	// It returns an error if len(children) does not match Children(), the
	// same "malformed input" taxonomy spec.md §7 describes for wrong arity.
	WithChildren(children ...Expression) (Expression, error)

	// Eval evaluates the node against a row. A NULL result is represented
	// by a nil interface{} in both the value and (for booleans) 3VL terms,
	// matching the teacher's sql.Expression.Eval(ctx, row) contract.
	Eval(ctx *Context, row Row) (interface{}, error)

	// String renders the node for diagnostics and for the paranoid
	// verifier's before/after report; it is not re-parsed by anything.
	String() string
}

// Pos is an opaque source-position marker. rex/expression.Builder methods
// copy Pos from the node they are deriving a replacement for, satisfying the
// "must preserve parser positions on rewrites" requirement of spec.md §6 even
// though this module does not itself parse SQL.
type Pos struct {
	Line, Col int
}
