package types

// LeastRestrictive picks the narrowest type that every member of ts can be
// losslessly widened to, the "least-restrictive type" operation spec.md §6
// names on TypeFactory. Result nullability is the union (nullable if any
// input is nullable). An empty or all-NULL input yields Null.
func LeastRestrictive(ts ...Type) Type {
	best := Type(nil)
	nullable := false
	for _, t := range ts {
		if t == nil || t.Family() == FamilyNull {
			nullable = nullable || (t != nil && t.IsNullable())
			continue
		}
		nullable = nullable || t.IsNullable()
		if best == nil {
			best = t
			continue
		}
		best = widen(best, t)
	}
	if best == nil {
		return Null
	}
	return best.WithNullable(nullable)
}

// widen returns the narrower-subsuming type of a and b within the same
// family; across families it returns whichever of a and b ranks higher in
// the numeric order integer < float < decimal, with that type's own
// precision and scale, and a when neither ranks higher.
func widen(a, b Type) Type {
	rank := func(t Type) int {
		switch t.Family() {
		case FamilyInteger:
			return 1
		case FamilyFloat:
			return 2
		case FamilyDecimal:
			return 3
		default:
			return 0
		}
	}
	if a.Family() != b.Family() {
		if rank(b) > rank(a) {
			return b
		}
		return a
	}
	if a.Family() == FamilyDecimal {
		ad, bd := a.(*sqlType), b.(*sqlType)
		scale := ad.scale
		if bd.scale > scale {
			scale = bd.scale
		}
		intDigitsA, intDigitsB := ad.precision-ad.scale, bd.precision-bd.scale
		intDigits := intDigitsA
		if intDigitsB > intDigits {
			intDigits = intDigitsB
		}
		return NewDecimal(intDigits+scale, scale)
	}
	return a
}

// CoercionRule is this module's concrete stand-in for the consumed
// TypeCoercionRule of spec.md §6: "canApplyFrom(src, dst) → bool". The
// default implementation allows any same-family widening plus numeric
// family widening (int -> float -> decimal), matching the ranking widen uses.
type CoercionRule interface {
	CanApplyFrom(src, dst Type) bool
}

type defaultCoercionRule struct{}

// DefaultCoercionRule is the stand-in TypeCoercionRule used when the caller
// does not inject one of its own (e.g. a real engine's dialect-specific
// coercion table).
var DefaultCoercionRule CoercionRule = defaultCoercionRule{}

func (defaultCoercionRule) CanApplyFrom(src, dst Type) bool {
	if src == nil || dst == nil {
		return false
	}
	if src.Family() == FamilyNull {
		return true
	}
	if src.EqualsSansNullability(dst) {
		return true
	}
	if src.Family().IsNumeric() && dst.Family().IsNumeric() {
		return widen(NotNull(src), NotNull(dst)).EqualsSansNullability(NotNull(dst))
	}
	return false
}

// IsLosslessCast reports whether a cast from src to dst can never lose
// information — spec.md §4.1 rule 10 and §4.7's "Lossless cast" glossary
// entry: "a cast whose source type embeds injectively into the target type".
// A narrowing cast (e.g. DECIMAL(10,4) -> DECIMAL(6,2)) is never lossless;
// widening within a family, or NULL -> anything, always is.
func IsLosslessCast(src, dst Type) bool {
	if src == nil || dst == nil {
		return false
	}
	if src.Family() == FamilyNull {
		return true
	}
	if src.EqualsSansNullability(dst) {
		return true
	}
	if src.Family() != dst.Family() {
		if !src.Family().IsNumeric() || !dst.Family().IsNumeric() {
			return false
		}
		rank := func(t Type) int {
			switch t.Family() {
			case FamilyInteger:
				return 1
			case FamilyFloat:
				return 2
			case FamilyDecimal:
				return 3
			}
			return 0
		}
		return rank(dst) >= rank(src)
	}
	if src.Family() == FamilyDecimal {
		sd, dd := src.(*sqlType), dst.(*sqlType)
		return dd.scale >= sd.scale && (dd.precision-dd.scale) >= (sd.precision-sd.scale)
	}
	return true
}
