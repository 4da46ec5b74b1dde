package rex

import "github.com/sirupsen/logrus"

// Row is a single tuple of input values by 0-based ordinal, the same shape as
// the teacher's sql.Row: a flat slice of dynamically-typed column values.
type Row []interface{}

// NewRow is a small convenience constructor mirroring sql.NewRow from the
// teacher's expression tests.
func NewRow(values ...interface{}) Row {
	return Row(values)
}

// Context carries the logger used for rule-firing trace diagnostics and
// paranoid-verifier warnings (SPEC_FULL.md §1a). It intentionally carries no
// cancellation or deadline: the simplifier is synchronous and performs no I/O
// (spec.md §5), so there is nothing for a context.Context to usefully cancel.
type Context struct {
	Logger *logrus.Entry
}

// NewContext returns a Context logging through logrus's standard logger. The
// standard logger's default level (Info) means Trace/Debug rule-firing
// records are silent unless the caller raises verbosity, matching the
// teacher's "quiet by default" logging posture.
func NewContext() *Context {
	return &Context{Logger: logrus.NewEntry(logrus.StandardLogger())}
}

// WithLogger returns a Context using the given logger, e.g. to attach
// request-scoped fields or raise the level to Trace for diagnosing a specific
// simplification.
func WithLogger(logger *logrus.Entry) *Context {
	return &Context{Logger: logger}
}

func (c *Context) log() *logrus.Entry {
	if c == nil || c.Logger == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return c.Logger
}

// Tracef emits a rule-firing record at Trace level.
func (c *Context) Tracef(format string, args ...interface{}) {
	c.log().Tracef(format, args...)
}

// Debugf emits a diagnostic record at Debug level (e.g. a verifier domain
// that could not be enumerated and was skipped).
func (c *Context) Debugf(format string, args ...interface{}) {
	c.log().Debugf(format, args...)
}

// Warnf emits a diagnostic record at Warn level (e.g. paranoid mode enabled).
func (c *Context) Warnf(format string, args ...interface{}) {
	c.log().Warnf(format, args...)
}
