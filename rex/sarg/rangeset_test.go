package sarg

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/types"
)

func intCmp(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func TestRangeSetIntersect(t *testing.T) {
	lt10 := NewRangeSet(intCmp, LessThan(10))
	gte5 := NewRangeSet(intCmp, GreaterThanOrEqual(5))
	got := lt10.Intersect(gte5)

	require.False(t, got.IsEmpty())
	require.False(t, got.IsAll())
	for v := 5; v < 10; v++ {
		require.True(t, rangeSetContains(got, v), "v=%d", v)
	}
	require.False(t, rangeSetContains(got, 4))
	require.False(t, rangeSetContains(got, 10))
}

func TestRangeSetComplement(t *testing.T) {
	pts := NewRangeSet(intCmp, Point(1), Point(2))
	comp := pts.Complement()
	for v := -3; v < 6; v++ {
		want := v != 1 && v != 2
		require.Equal(t, want, rangeSetContains(comp, v), "v=%d", v)
	}
	doubled := comp.Complement()
	pts2, ok := doubled.IsPoints()
	require.True(t, ok)
	require.Equal(t, []int{1, 2}, pts2)
}

func TestRangeSetUnionMergesAdjacent(t *testing.T) {
	lt5 := NewRangeSet(intCmp, LessThan(5))
	gte5 := NewRangeSet(intCmp, GreaterThanOrEqual(5))
	merged := lt5.Union(gte5)
	require.True(t, merged.IsAll())
}

func TestRangeSetIsPoints(t *testing.T) {
	rs := NewRangeSet(intCmp, Point(3), Point(7))
	pts, ok := rs.IsPoints()
	require.True(t, ok)
	require.Equal(t, []int{3, 7}, pts)

	notPoints := NewRangeSet(intCmp, LessThan(3))
	_, ok = notPoints.IsPoints()
	require.False(t, ok)
}

func TestSargComplexityAndNegate(t *testing.T) {
	rs := NewRangeSet(intCmp, GreaterThanOrEqual(5))
	s := New(rs, rex.FALSE)
	require.Equal(t, 1, s.Complexity())

	neg := s.Negate()
	require.Equal(t, rex.TRUE, neg.NullAs)
	require.True(t, rangeSetContains(neg.Ranges, 4))
	require.False(t, rangeSetContains(neg.Ranges, 5))
}

func TestComparatorFamilies(t *testing.T) {
	cmp := Comparator(types.FamilyInteger)
	require.Equal(t, 0, cmp(int64(3), int64(3)))
	require.True(t, cmp(int64(1), int64(2)) < 0)

	scmp := Comparator(types.FamilyString)
	require.True(t, scmp("a", "b") < 0)
}

func rangeSetContains(rs RangeSet[int], v int) bool {
	for _, r := range rs.Ranges() {
		if rangeContainsTest(r, v, intCmp) {
			return true
		}
	}
	return false
}

func rangeContainsTest(r Range[int], v int, cmp func(a, b int) int) bool {
	lowOK := r.Lower.IsBelowAll()
	if !lowOK {
		c := cmp(v, r.Lower.Value())
		if r.Lower.Bound() == Below {
			lowOK = c >= 0
		} else {
			lowOK = c > 0
		}
	}
	if !lowOK {
		return false
	}
	if r.Upper.IsAboveAll() {
		return true
	}
	c := cmp(v, r.Upper.Value())
	if r.Upper.Bound() == Above {
		return c <= 0
	}
	return c < 0
}
