package sarg

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/go-rex/rexsimplify/rex/types"
)

// Comparator returns the ordering function a RangeSet[any] needs for values
// of the given family. Kept independent of package expression (which itself
// imports sarg for SEARCH) to avoid an import cycle; expression/search.go
// only ever builds Sarg[any] through this entry point.
func Comparator(fam types.Family) func(a, b interface{}) int {
	switch fam {
	case types.FamilyInteger:
		return func(a, b interface{}) int { return cmpInt(toInt64(a), toInt64(b)) }
	case types.FamilyFloat:
		return func(a, b interface{}) int { return cmpFloat(toFloat64(a), toFloat64(b)) }
	case types.FamilyDecimal:
		return func(a, b interface{}) int { return toDecimal(a).Cmp(toDecimal(b)) }
	case types.FamilyString:
		return func(a, b interface{}) int {
			as, bs := a.(string), b.(string)
			switch {
			case as < bs:
				return -1
			case as > bs:
				return 1
			default:
				return 0
			}
		}
	case types.FamilyBoolean:
		return func(a, b interface{}) int { return cmpInt(boolInt(a), boolInt(b)) }
	case types.FamilyDate, types.FamilyTimestamp:
		return func(a, b interface{}) int {
			at, bt := a.(time.Time), b.(time.Time)
			switch {
			case at.Before(bt):
				return -1
			case at.After(bt):
				return 1
			default:
				return 0
			}
		}
	default:
		return func(a, b interface{}) int {
			as, bs := fmt.Sprintf("%v", a), fmt.Sprintf("%v", b)
			switch {
			case as < bs:
				return -1
			case as > bs:
				return 1
			default:
				return 0
			}
		}
	}
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func boolInt(v interface{}) int64 {
	if b, _ := v.(bool); b {
		return 1
	}
	return 0
}

func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case int32:
		return int64(n)
	default:
		return 0
	}
}

func toFloat64(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

func toDecimal(v interface{}) decimal.Decimal {
	switch n := v.(type) {
	case decimal.Decimal:
		return n
	case string:
		d, _ := decimal.NewFromString(n)
		return d
	case int64:
		return decimal.NewFromInt(n)
	case float64:
		return decimal.NewFromFloat(n)
	default:
		return decimal.Zero
	}
}
