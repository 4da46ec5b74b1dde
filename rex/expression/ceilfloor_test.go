package expression

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/types"
)

func tsLit(v time.Time) *Literal { return NewLiteral(v, types.Timestamp) }

func TestRoundFloorTruncates(t *testing.T) {
	ts := time.Date(2026, 7, 31, 14, 37, 12, 0, time.UTC)
	f := NewFloor(tsLit(ts), Day)
	got := evalAny(t, f).(time.Time)
	want := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
	require.True(t, got.Equal(want), "got %s", got)
}

func TestRoundCeilAdvancesWhenNotAligned(t *testing.T) {
	ts := time.Date(2026, 7, 31, 14, 37, 12, 0, time.UTC)
	c := NewCeil(tsLit(ts), Day)
	got := evalAny(t, c).(time.Time)
	want := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	require.True(t, got.Equal(want), "got %s", got)
}

func TestRoundCeilAlignedStaysPut(t *testing.T) {
	ts := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
	c := NewCeil(tsLit(ts), Day)
	got := evalAny(t, c).(time.Time)
	require.True(t, got.Equal(ts))
}

func TestRoundNullPropagation(t *testing.T) {
	require.Nil(t, evalAny(t, NewFloor(NewNullLiteral(types.Timestamp), Day)))
}

func TestTimeUnitRollsUpTo(t *testing.T) {
	require.True(t, Hour.RollsUpTo(Day))
	require.True(t, Day.RollsUpTo(Day))
	require.False(t, Day.RollsUpTo(Hour))
	require.False(t, Day.RollsUpTo(Second))

	// QUARTER is the sole exception: it rolls up only into YEAR.
	require.True(t, Quarter.RollsUpTo(Year))
	require.False(t, Quarter.RollsUpTo(Month))
	require.False(t, Month.RollsUpTo(Quarter))
}

func TestRoundInnerRound(t *testing.T) {
	ts := tsLit(time.Now())
	inner := NewFloor(ts, Hour)
	outer := NewFloor(inner, Day)
	got, ok := outer.InnerRound()
	require.True(t, ok)
	require.Same(t, rex.Expression(inner), rex.Expression(got))

	notInner := NewFloor(ts, Day)
	_, ok = notInner.InnerRound()
	require.False(t, ok)
}
