// Package types is the type system consumed by rexsimplify as a black box
// per spec.md §1 ("The type system / type coercion rules ... consumed as a
// black box via a TypeFactory") — but since this module does not sit inside a
// larger SQL engine that would supply one, a narrow concrete implementation
// lives here (SPEC_FULL.md §3, "Concrete representation decisions"). The
// simplifier calls LeastRestrictive, EqualsSansNullability, IsLosslessCast,
// NotNull, and family queries.
package types

import "fmt"

// Family groups SQL types by the comparison/arithmetic semantics they share.
// Only the families the simplifier's rules actually branch on are modeled.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyNull
	FamilyBoolean
	FamilyInteger
	FamilyFloat
	FamilyDecimal
	FamilyString
	FamilyDate
	FamilyTimestamp
	FamilyInterval
)

func (f Family) String() string {
	switch f {
	case FamilyNull:
		return "NULL"
	case FamilyBoolean:
		return "BOOLEAN"
	case FamilyInteger:
		return "INTEGER"
	case FamilyFloat:
		return "FLOAT"
	case FamilyDecimal:
		return "DECIMAL"
	case FamilyString:
		return "STRING"
	case FamilyDate:
		return "DATE"
	case FamilyTimestamp:
		return "TIMESTAMP"
	case FamilyInterval:
		return "INTERVAL"
	default:
		return "UNKNOWN"
	}
}

// IsNumeric reports whether f is one of the families spec.md §4.1 rule 11
// ("Arithmetic identities ... Binary numeric ops on NUMERIC family only")
// means by NUMERIC.
func (f Family) IsNumeric() bool {
	return f == FamilyInteger || f == FamilyFloat || f == FamilyDecimal
}

// Orderable reports whether two values of this family admit a total order,
// and so can build a RangeSet (rex/sarg).
func (f Family) Orderable() bool {
	switch f {
	case FamilyInteger, FamilyFloat, FamilyDecimal, FamilyString, FamilyDate, FamilyTimestamp:
		return true
	}
	return false
}

// Type is a nominal SQL type plus a nullability flag, exactly spec.md §3's
// "a RelDataType: nominal SQL type plus a nullability flag".
type Type interface {
	// Name is the type's display name, e.g. "INT64", "DECIMAL(10,2)".
	Name() string
	Family() Family
	IsNullable() bool
	// WithNullable returns a copy of this type with the given nullability.
	WithNullable(nullable bool) Type
	// Equal reports exact equality, nullability included.
	Equal(other Type) bool
	// EqualsSansNullability reports equality ignoring nullability, exactly
	// the "equalSansNullability" operation spec.md §6 names on TypeFactory.
	EqualsSansNullability(other Type) bool
}

type sqlType struct {
	name      string
	family    Family
	nullable  bool
	precision int
	scale     int
}

func (t *sqlType) Name() string      { return t.name }
func (t *sqlType) Family() Family     { return t.family }
func (t *sqlType) IsNullable() bool   { return t.nullable }
func (t *sqlType) Precision() int     { return t.precision }
func (t *sqlType) Scale() int         { return t.scale }
func (t *sqlType) String() string     { return t.Name() }

func (t *sqlType) WithNullable(nullable bool) Type {
	if t.nullable == nullable {
		return t
	}
	cp := *t
	cp.nullable = nullable
	return &cp
}

func (t *sqlType) Equal(other Type) bool {
	if other == nil {
		return false
	}
	return t.EqualsSansNullability(other) && t.nullable == other.IsNullable()
}

func (t *sqlType) EqualsSansNullability(other Type) bool {
	o, ok := other.(*sqlType)
	if !ok {
		return false
	}
	return t.name == o.name && t.family == o.family && t.precision == o.precision && t.scale == o.scale
}

// Decimal-specific accessors, used by rex/simplify's CAST-narrowing rule
// (spec.md §4.1 rule 10: "and target is not DECIMAL").
type Decimal interface {
	Type
	Precision() int
	Scale() int
}

func newBase(name string, family Family) Type {
	return &sqlType{name: name, family: family, nullable: true}
}

// Predefined non-nullable base types, mirroring the teacher's types.Int64 /
// types.Boolean / types.Text package-level singletons (sql/types, referenced
// throughout sql/expression/*_test.go). Call .WithNullable(true) (or
// Nullable below) for a nullable column type.
var (
	Null      Type = &sqlType{name: "NULL", family: FamilyNull, nullable: true}
	Boolean        = newBase("BOOLEAN", FamilyBoolean).WithNullable(false)
	Int64          = newBase("INT64", FamilyInteger).WithNullable(false)
	Int32          = newBase("INT32", FamilyInteger).WithNullable(false)
	Float64        = newBase("FLOAT64", FamilyFloat).WithNullable(false)
	VarChar        = newBase("VARCHAR", FamilyString).WithNullable(false)
	Date           = newBase("DATE", FamilyDate).WithNullable(false)
	Timestamp      = newBase("TIMESTAMP", FamilyTimestamp).WithNullable(false)
	Interval       = newBase("INTERVAL", FamilyInterval).WithNullable(false)
)

// NewDecimal constructs a DECIMAL(precision,scale) type, non-nullable by
// default; SPEC_FULL.md §1b wires this through to the constant folder and
// arithmetic-identity rule via github.com/shopspring/decimal.
func NewDecimal(precision, scale int) Type {
	return &sqlType{
		name:      fmt.Sprintf("DECIMAL(%d,%d)", precision, scale),
		family:    FamilyDecimal,
		nullable:  false,
		precision: precision,
		scale:     scale,
	}
}

// Nullable returns a nullable copy of t; a thin helper over WithNullable(true)
// used pervasively by rex/expression constructors.
func Nullable(t Type) Type { return t.WithNullable(true) }

// NotNull returns a non-nullable copy of t.
func NotNull(t Type) Type { return t.WithNullable(false) }
