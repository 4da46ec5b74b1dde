// Package rex defines the core, engine-agnostic expression model consumed by
// rexsimplify: the Expression (node) interface, the closed Kind enum used for
// structural dispatch, the Row/Context plumbing an Eval call needs, and the
// UnknownAs tri-state that governs how a boolean NULL is interpreted at a use
// site.
package rex

// Kind is a closed enum of operator shapes. The simplifier dispatches on Kind,
// never on the dynamic type of an Expression, so adding a node type never
// requires touching existing switch statements except to opt it into a rule.
type Kind int

const (
	UNKNOWN_KIND Kind = iota

	LITERAL
	INPUT_REF
	FIELD_ACCESS

	AND
	OR
	NOT

	CASE
	COALESCE

	CAST
	SAFE_CAST

	IS_NULL
	IS_NOT_NULL
	IS_TRUE
	IS_NOT_TRUE
	IS_FALSE
	IS_NOT_FALSE

	EQUALS
	NOT_EQUALS
	LESS_THAN
	LESS_THAN_OR_EQUAL
	GREATER_THAN
	GREATER_THAN_OR_EQUAL
	IS_DISTINCT_FROM
	IS_NOT_DISTINCT_FROM

	SEARCH
	LIKE
	IN
	NOT_IN

	PLUS
	MINUS
	TIMES
	DIVIDE
	CHECKED_PLUS
	CHECKED_MINUS
	CHECKED_TIMES
	CHECKED_DIVIDE
	PLUS_PREFIX
	MINUS_PREFIX

	CEIL
	FLOOR

	TRIM
	LTRIM
	RTRIM

	BETWEEN

	M2V
	V2M

	OVER
	SUBQUERY
	DYNAMIC_PARAM
	LAMBDA

	// GENERIC_CALL covers operator applications the simplifier does not
	// special-case (TIMESTAMP_ADD, TIMESTAMP_DIFF, user functions, ...): it
	// still flows through simplifyGenericNode and participates in safety /
	// strong-null analysis via its own declared policy.
	GENERIC_CALL
)

var kindNames = map[Kind]string{
	UNKNOWN_KIND:          "UNKNOWN",
	LITERAL:               "LITERAL",
	INPUT_REF:             "INPUT_REF",
	FIELD_ACCESS:          "FIELD_ACCESS",
	AND:                   "AND",
	OR:                    "OR",
	NOT:                   "NOT",
	CASE:                  "CASE",
	COALESCE:              "COALESCE",
	CAST:                  "CAST",
	SAFE_CAST:             "SAFE_CAST",
	IS_NULL:               "IS_NULL",
	IS_NOT_NULL:           "IS_NOT_NULL",
	IS_TRUE:               "IS_TRUE",
	IS_NOT_TRUE:           "IS_NOT_TRUE",
	IS_FALSE:              "IS_FALSE",
	IS_NOT_FALSE:          "IS_NOT_FALSE",
	EQUALS:                "EQUALS",
	NOT_EQUALS:            "NOT_EQUALS",
	LESS_THAN:             "LESS_THAN",
	LESS_THAN_OR_EQUAL:    "LESS_THAN_OR_EQUAL",
	GREATER_THAN:          "GREATER_THAN",
	GREATER_THAN_OR_EQUAL: "GREATER_THAN_OR_EQUAL",
	IS_DISTINCT_FROM:      "IS_DISTINCT_FROM",
	IS_NOT_DISTINCT_FROM:  "IS_NOT_DISTINCT_FROM",
	SEARCH:                "SEARCH",
	LIKE:                  "LIKE",
	IN:                    "IN",
	NOT_IN:                "NOT_IN",
	PLUS:                  "PLUS",
	MINUS:                 "MINUS",
	TIMES:                 "TIMES",
	DIVIDE:                "DIVIDE",
	CHECKED_PLUS:          "CHECKED_PLUS",
	CHECKED_MINUS:         "CHECKED_MINUS",
	CHECKED_TIMES:         "CHECKED_TIMES",
	CHECKED_DIVIDE:        "CHECKED_DIVIDE",
	PLUS_PREFIX:           "PLUS_PREFIX",
	MINUS_PREFIX:          "MINUS_PREFIX",
	CEIL:                  "CEIL",
	FLOOR:                 "FLOOR",
	TRIM:                  "TRIM",
	LTRIM:                 "LTRIM",
	RTRIM:                 "RTRIM",
	BETWEEN:               "BETWEEN",
	M2V:                   "M2V",
	V2M:                   "V2M",
	OVER:                  "OVER",
	SUBQUERY:              "SUBQUERY",
	DYNAMIC_PARAM:         "DYNAMIC_PARAM",
	LAMBDA:                "LAMBDA",
	GENERIC_CALL:          "GENERIC_CALL",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsComparison reports whether k is one of the binary ref/literal comparison
// kinds recognized by Comparison.Of (rex/simplify's views.go).
func (k Kind) IsComparison() bool {
	switch k {
	case EQUALS, NOT_EQUALS, LESS_THAN, LESS_THAN_OR_EQUAL, GREATER_THAN, GREATER_THAN_OR_EQUAL,
		IS_DISTINCT_FROM, IS_NOT_DISTINCT_FROM:
		return true
	}
	return false
}

// IsArithmetic reports whether k is a numeric binary operator kind, including
// the CHECKED_* overflow-aware variants (spec.md §4.1 rule 11).
func (k Kind) IsArithmetic() bool {
	switch k {
	case PLUS, MINUS, TIMES, DIVIDE, CHECKED_PLUS, CHECKED_MINUS, CHECKED_TIMES, CHECKED_DIVIDE:
		return true
	}
	return false
}

// Checked reports whether k is one of the CHECKED_* overflow-aware arithmetic
// kinds, and if so the unchecked kind it corresponds to.
func (k Kind) Checked() (Kind, bool) {
	switch k {
	case CHECKED_PLUS:
		return PLUS, true
	case CHECKED_MINUS:
		return MINUS, true
	case CHECKED_TIMES:
		return TIMES, true
	case CHECKED_DIVIDE:
		return DIVIDE, true
	}
	return k, false
}

// NegateNullSafe returns the kind representing the logical negation of a
// comparison kind that also accounts for NULL operands consistently (i.e. a
// kind k2 such that `NOT (x k y)` simplifies to `x k2 y` without changing the
// UNKNOWN case). IN/NOT_IN deliberately have no such negation (spec.md §4.1
// rule 2: "IN/NOT_IN are not negated").
func (k Kind) NegateNullSafe() (Kind, bool) {
	switch k {
	case EQUALS:
		return NOT_EQUALS, true
	case NOT_EQUALS:
		return EQUALS, true
	case IS_DISTINCT_FROM:
		return IS_NOT_DISTINCT_FROM, true
	case IS_NOT_DISTINCT_FROM:
		return IS_DISTINCT_FROM, true
	case IS_NULL:
		return IS_NOT_NULL, true
	case IS_NOT_NULL:
		return IS_NULL, true
	case IS_TRUE:
		return IS_NOT_TRUE, true
	case IS_NOT_TRUE:
		return IS_TRUE, true
	case IS_FALSE:
		return IS_NOT_FALSE, true
	case IS_NOT_FALSE:
		return IS_FALSE, true
	}
	return k, false
}

// Negate returns the negation of a comparison kind: beyond NegateNullSafe,
// this also covers the order comparisons (`NOT (x < y)` becomes `x >= y`;
// when either side is NULL both forms are NULL).
func (k Kind) Negate() (Kind, bool) {
	if k2, ok := k.NegateNullSafe(); ok {
		return k2, true
	}
	switch k {
	case LESS_THAN:
		return GREATER_THAN_OR_EQUAL, true
	case LESS_THAN_OR_EQUAL:
		return GREATER_THAN, true
	case GREATER_THAN:
		return LESS_THAN_OR_EQUAL, true
	case GREATER_THAN_OR_EQUAL:
		return LESS_THAN, true
	}
	return k, false
}

// Reversed returns the kind obtained by swapping operand order (`literal op
// ref` -> `ref op' literal`), used by Comparison.Of's "literal op ref" shape.
func (k Kind) Reversed() Kind {
	switch k {
	case LESS_THAN:
		return GREATER_THAN
	case LESS_THAN_OR_EQUAL:
		return GREATER_THAN_OR_EQUAL
	case GREATER_THAN:
		return LESS_THAN
	case GREATER_THAN_OR_EQUAL:
		return LESS_THAN_OR_EQUAL
	default:
		return k
	}
}
