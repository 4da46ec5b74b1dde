package expression

import (
	"fmt"
	"time"

	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/types"
)

// TimeUnit orders the granularities CEIL/FLOOR round to, per spec.md §4.1
// rule 14: "YEAR>QUARTER>MONTH>DAY>HOUR>MINUTE>SECOND>MILLI>MICRO; QUARTER
// rolls up only to YEAR."
type TimeUnit int

const (
	Micro TimeUnit = iota
	Milli
	Second
	Minute
	Hour
	Day
	Month
	Quarter
	Year
)

func (u TimeUnit) String() string {
	names := [...]string{"MICRO", "MILLI", "SECOND", "MINUTE", "HOUR", "DAY", "MONTH", "QUARTER", "YEAR"}
	if int(u) < len(names) {
		return names[u]
	}
	return "UNKNOWN"
}

// RollsUpTo reports whether a CEIL/FLOOR at granularity `outer` can replace
// one already computed at granularity `u` composed with it — i.e. whether
// applying `outer` to a value already rounded to `u` is equivalent to
// applying `outer` directly. QUARTER is the sole exception to the normal
// "coarser absorbs finer" ordering: it only rolls up into YEAR.
func (u TimeUnit) RollsUpTo(outer TimeUnit) bool {
	if u == Quarter {
		return outer == Year
	}
	if outer == Quarter {
		return false
	}
	return outer >= u
}

// RoundKind selects CEIL vs FLOOR.
type RoundKind int

const (
	FloorOp RoundKind = iota
	CeilOp
)

// Round implements CEIL(arg, unit) / FLOOR(arg, unit), matching the spec's
// time-bucketing rollup rule (spec.md §4.1 rule 14, §8 scenario 7).
type Round struct {
	Arg  rex.Expression
	Unit TimeUnit
	Op   RoundKind
	Pos  rex.Pos
}

func NewFloor(arg rex.Expression, unit TimeUnit) *Round { return &Round{Arg: arg, Unit: unit, Op: FloorOp} }
func NewCeil(arg rex.Expression, unit TimeUnit) *Round  { return &Round{Arg: arg, Unit: unit, Op: CeilOp} }

func (r *Round) Kind() rex.Kind {
	if r.Op == CeilOp {
		return rex.CEIL
	}
	return rex.FLOOR
}

func (r *Round) Type() types.Type {
	if r.Arg.IsNullable() {
		return types.Nullable(types.Timestamp)
	}
	return types.NotNull(types.Timestamp)
}

func (r *Round) IsNullable() bool              { return r.Type().IsNullable() }
func (r *Round) Deterministic() bool           { return r.Arg.Deterministic() }
func (r *Round) Children() []rex.Expression    { return []rex.Expression{r.Arg} }

func (r *Round) WithChildren(children ...rex.Expression) (rex.Expression, error) {
	arg, err := arity1(children)
	if err != nil {
		return nil, err
	}
	return &Round{Arg: arg, Unit: r.Unit, Op: r.Op}, nil
}

// InnerRound reports whether the node's own Arg is itself a Round, and if so
// returns it; used by the simplifier's rollup rule rather than duplicated here.
func (r *Round) InnerRound() (*Round, bool) {
	inner, ok := r.Arg.(*Round)
	return inner, ok
}

func (r *Round) Eval(ctx *rex.Context, row rex.Row) (interface{}, error) {
	v, err := r.Arg.Eval(ctx, row)
	if err != nil || v == nil {
		return nil, err
	}
	t, ok := v.(time.Time)
	if !ok {
		return nil, fmt.Errorf("rexsimplify: %s operand must be a timestamp, got %T", r.Kind(), v)
	}
	floored := truncate(t, r.Unit)
	if r.Op == FloorOp || floored.Equal(t) {
		return floored, nil
	}
	return advance(floored, r.Unit), nil
}

func truncate(t time.Time, unit TimeUnit) time.Time {
	switch unit {
	case Micro:
		return t.Truncate(time.Microsecond)
	case Milli:
		return t.Truncate(time.Millisecond)
	case Second:
		return t.Truncate(time.Second)
	case Minute:
		return t.Truncate(time.Minute)
	case Hour:
		return t.Truncate(time.Hour)
	case Day:
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	case Month:
		y, m, _ := t.Date()
		return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	case Quarter:
		y, m, _ := t.Date()
		qm := time.Month(((int(m)-1)/3)*3 + 1)
		return time.Date(y, qm, 1, 0, 0, 0, 0, t.Location())
	case Year:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	default:
		return t
	}
}

func advance(t time.Time, unit TimeUnit) time.Time {
	switch unit {
	case Micro:
		return t.Add(time.Microsecond)
	case Milli:
		return t.Add(time.Millisecond)
	case Second:
		return t.Add(time.Second)
	case Minute:
		return t.Add(time.Minute)
	case Hour:
		return t.Add(time.Hour)
	case Day:
		return t.AddDate(0, 0, 1)
	case Month:
		return t.AddDate(0, 1, 0)
	case Quarter:
		return t.AddDate(0, 3, 0)
	case Year:
		return t.AddDate(1, 0, 0)
	default:
		return t
	}
}

func (r *Round) String() string { return fmt.Sprintf("%s(%s, %s)", r.Kind(), r.Arg, r.Unit) }
