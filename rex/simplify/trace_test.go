package simplify

import (
	"testing"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/go-rex/rexsimplify/rex/expression"
	"github.com/go-rex/rexsimplify/rex/types"
)

// withTraceCapture raises the standard logger to TraceLevel, attaches a test
// hook to capture everything it logs, runs fn, then restores both.
func withTraceCapture(t *testing.T, fn func()) []*logrus.Entry {
	t.Helper()
	prevLevel := logrus.GetLevel()
	prevHooks := logrus.StandardLogger().ReplaceHooks(logrus.LevelHooks{})
	defer func() {
		logrus.SetLevel(prevLevel)
		logrus.StandardLogger().ReplaceHooks(prevHooks)
	}()
	logrus.SetLevel(logrus.TraceLevel)
	hook := logrustest.NewLocal()
	logrus.AddHook(hook)

	fn()

	return hook.AllEntries()
}

// TestSimplifyTracesRuleFirings covers SPEC_FULL.md §1a's Trace-level
// rule-firing log: a rewrite that actually changes the tree (AND's TRUE
// identity) must log at TraceLevel.
func TestSimplifyTracesRuleFirings(t *testing.T) {
	x := expression.NewGetField(0, types.Int64, "x", false)
	e := expression.NewAnd(expression.True(), expression.NewIsNotNull(x))

	entries := withTraceCapture(t, func() { New().Simplify(e) })

	require.NotEmpty(t, entries, "expected at least one trace record for a rule that rewrote its input")
	for _, entry := range entries {
		require.Equal(t, logrus.TraceLevel, entry.Level)
	}
}

// TestSimplifyNoOpDoesNotTrace covers the converse: simplifying a bare
// literal (no rule has anything to rewrite) logs nothing.
func TestSimplifyNoOpDoesNotTrace(t *testing.T) {
	e := expression.NewLiteral(int64(5), types.Int64)

	entries := withTraceCapture(t, func() { New().Simplify(e) })

	require.Empty(t, entries)
}
