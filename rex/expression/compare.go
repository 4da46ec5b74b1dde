package expression

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/go-rex/rexsimplify/rex/types"
)

// compareValues totally orders two non-NULL values of the same family,
// SPEC_FULL.md §1b: DECIMAL values compare via decimal.Decimal.Cmp rather than
// float conversion, so constant folding and range composition are exact.
func compareValues(a, b interface{}, fam types.Family) (int, error) {
	switch fam {
	case types.FamilyInteger:
		ai, bi := asInt64(a), asInt64(b)
		switch {
		case ai < bi:
			return -1, nil
		case ai > bi:
			return 1, nil
		default:
			return 0, nil
		}
	case types.FamilyFloat:
		af, bf := asFloat64(a), asFloat64(b)
		switch {
		case af < bf:
			return -1, nil
		case af > bf:
			return 1, nil
		default:
			return 0, nil
		}
	case types.FamilyDecimal:
		ad, err := asDecimal(a)
		if err != nil {
			return 0, err
		}
		bd, err := asDecimal(b)
		if err != nil {
			return 0, err
		}
		return ad.Cmp(bd), nil
	case types.FamilyString:
		as, aok := a.(string)
		bs, bok := b.(string)
		if !aok || !bok {
			return 0, fmt.Errorf("rexsimplify: expected string values, got %T, %T", a, b)
		}
		switch {
		case as < bs:
			return -1, nil
		case as > bs:
			return 1, nil
		default:
			return 0, nil
		}
	case types.FamilyBoolean:
		ab, aok := a.(bool)
		bb, bok := b.(bool)
		if !aok || !bok {
			return 0, fmt.Errorf("rexsimplify: expected bool values, got %T, %T", a, b)
		}
		if ab == bb {
			return 0, nil
		}
		if !ab && bb {
			return -1, nil
		}
		return 1, nil
	case types.FamilyDate, types.FamilyTimestamp:
		at, aok := a.(time.Time)
		bt, bok := b.(time.Time)
		if !aok || !bok {
			return 0, fmt.Errorf("rexsimplify: expected time.Time values, got %T, %T", a, b)
		}
		switch {
		case at.Before(bt):
			return -1, nil
		case at.After(bt):
			return 1, nil
		default:
			return 0, nil
		}
	default:
		return 0, fmt.Errorf("rexsimplify: family %s is not orderable", fam)
	}
}

func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case uint:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		return int64(n)
	default:
		return 0
	}
}

func asFloat64(v interface{}) float64 {
	switch n := v.(type) {
	case float32:
		return float64(n)
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

func asDecimal(v interface{}) (decimal.Decimal, error) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, nil
	case string:
		return decimal.NewFromString(n)
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case float64:
		return decimal.NewFromFloat(n), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("rexsimplify: cannot interpret %T as decimal", v)
	}
}

// valuesEqual reports whether two non-NULL values of family fam are equal,
// used by IS [NOT] DISTINCT FROM and by the equality-propagation rule in the
// boolean engine.
func valuesEqual(a, b interface{}, fam types.Family) (bool, error) {
	c, err := compareValues(a, b, fam)
	if err != nil {
		return false, err
	}
	return c == 0, nil
}
