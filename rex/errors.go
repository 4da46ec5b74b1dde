package rex

import errorkit "gopkg.in/src-d/go-errors.v1"

// Typed sentinel error kinds, one per spec.md §7 error-taxonomy entry. Callers
// match on these with errorkit.Is/As rather than string-matching, exactly the
// pattern the teacher uses throughout its test suite
// (gopkg.in/src-d/go-errors.v1, `errors.NewKind(msg).New(args...)`).
var (
	// ErrMalformedExpression covers wrong arity, a null operand where a
	// non-null one is required, and CASE nodes with an even operand count.
	// It is a programmer error: the caller built an invalid tree, and no
	// retry of the same input can recover from it.
	ErrMalformedExpression = errorkit.NewKind("malformed expression: %s")

	// ErrParanoidMismatch is raised by the paranoid verifier (spec.md §4.6)
	// when the pre- and post-simplification expressions disagree on some
	// enumerated assignment.
	ErrParanoidMismatch = errorkit.NewKind("paranoid verification failed: assignment %v: before=%v after=%v")

	// ErrExecutorFailed wraps whatever error an injected Executor (spec.md
	// §6) returned while folding a literal-only sub-tree; surfaced to the
	// caller unchanged in substance, tagged with this kind for matching.
	ErrExecutorFailed = errorkit.NewKind("constant executor failed: %s")

	// ErrParanoidUnsupported is returned when paranoid mode is requested on
	// an entry point that does not support it (spec.md §7, "Unknown-as
	// misuse on deprecated entry points when paranoid mode is on").
	ErrParanoidUnsupported = errorkit.NewKind("paranoid verification is not supported on this entry point")
)
