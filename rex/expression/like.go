package expression

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/types"
)

// Like implements SQL LIKE, following the teacher's expression.Like
// (like_test.go): '%' matches any run of characters, '_' matches exactly one.
type Like struct {
	BinaryExpression

	mu      sync.Mutex
	cached  *regexp.Regexp
	cacheOf string
}

func NewLike(left, right rex.Expression) *Like { return &Like{BinaryExpression: BinaryExpression{Left: left, Right: right}} }

func (l *Like) Kind() rex.Kind       { return rex.LIKE }
func (l *Like) Type() types.Type     { return booleanType(l.Left, l.Right) }
func (l *Like) IsNullable() bool     { return l.Type().IsNullable() }

func (l *Like) WithChildren(children ...rex.Expression) (rex.Expression, error) {
	left, right, err := arity2(children)
	if err != nil {
		return nil, err
	}
	return NewLike(left, right), nil
}

// likeToRegex compiles a SQL LIKE pattern to an anchored regexp, escaping any
// regex metacharacter the pattern doesn't itself use as a wildcard.
func likeToRegex(pattern string) (*regexp.Regexp, error) {
	var sb strings.Builder
	sb.WriteString("(?s)^")
	for _, r := range pattern {
		switch r {
		case '%':
			sb.WriteString(".*")
		case '_':
			sb.WriteString(".")
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	sb.WriteString("$")
	return regexp.Compile(sb.String())
}

func (l *Like) regexFor(pattern string) (*regexp.Regexp, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cached != nil && l.cacheOf == pattern {
		return l.cached, nil
	}
	re, err := likeToRegex(pattern)
	if err != nil {
		return nil, err
	}
	l.cached, l.cacheOf = re, pattern
	return re, nil
}

func (l *Like) Eval(ctx *rex.Context, row rex.Row) (interface{}, error) {
	lv, err := l.Left.Eval(ctx, row)
	if err != nil || lv == nil {
		return nil, err
	}
	rv, err := l.Right.Eval(ctx, row)
	if err != nil || rv == nil {
		return nil, err
	}
	pattern, ok := rv.(string)
	if !ok {
		return nil, fmt.Errorf("rexsimplify: LIKE pattern operand must be a string, got %T", rv)
	}
	s, ok := lv.(string)
	if !ok {
		return nil, fmt.Errorf("rexsimplify: LIKE left operand must be a string, got %T", lv)
	}
	re, err := l.regexFor(pattern)
	if err != nil {
		return nil, err
	}
	return re.MatchString(s), nil
}

func (l *Like) String() string { return fmt.Sprintf("(%s LIKE %s)", l.Left, l.Right) }
