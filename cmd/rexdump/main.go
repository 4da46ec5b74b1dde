// Command rexdump is a tiny demonstrator for rexsimplify, not a SQL front
// end: it reads a small s-expression encoding of a row expression, builds the
// tree via rex/expression's constructors, simplifies it, and prints the
// before/after String().
//
// Syntax: atoms are integer/float/string literals, true/false, null, or a
// field reference $N (optionally $N:TYPE and/or nullable with a trailing ?,
// e.g. $0?:bool, $1:int). Everything else is a parenthesized call:
// (AND a b), (OR a b), (NOT a), (= a b), (<> a b), (< a b), (<= a b),
// (> a b), (>= a b), (IS_NULL a), (IS_NOT_NULL a), (IS_TRUE a),
// (IS_NOT_TRUE a), (IS_FALSE a), (IS_NOT_FALSE a), (COALESCE a b ...),
// (IN a b c ...), (+ a b), (- a b), (* a b), (/ a b).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/go-rex/rexsimplify/rex"
	"github.com/go-rex/rexsimplify/rex/expression"
	"github.com/go-rex/rexsimplify/rex/simplify"
	"github.com/go-rex/rexsimplify/rex/types"
)

func main() {
	expr := flag.String("e", "", "expression to simplify, s-expression syntax (default: read from stdin)")
	unknownAs := flag.String("unknown-as", "unknown", "UnknownAs policy: true, false, or unknown")
	paranoid := flag.Bool("paranoid", false, "enable the paranoid verifier")
	verbose := flag.Bool("v", false, "trace rule firings at logrus.TraceLevel")
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.TraceLevel)
	}

	src := *expr
	if src == "" {
		b, err := io.ReadAll(bufio.NewReader(os.Stdin))
		if err != nil {
			fmt.Fprintln(os.Stderr, "rexdump:", err)
			os.Exit(1)
		}
		src = string(b)
	}

	e, err := parseExpression(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, "rexdump: parse error:", err)
		os.Exit(1)
	}

	m, err := parseUnknownAs(*unknownAs)
	if err != nil {
		fmt.Fprintln(os.Stderr, "rexdump:", err)
		os.Exit(1)
	}

	s := simplify.New()
	s.Paranoid = *paranoid

	fmt.Println("before:", e.String())
	out := s.SimplifyUnknownAs(e, m)
	fmt.Println("after: ", out.String())
}

func parseUnknownAs(s string) (rex.UnknownAs, error) {
	switch strings.ToLower(s) {
	case "true":
		return rex.TRUE, nil
	case "false":
		return rex.FALSE, nil
	case "unknown", "":
		return rex.UNKNOWN, nil
	default:
		return rex.UNKNOWN, fmt.Errorf("unrecognized -unknown-as %q, want true|false|unknown", s)
	}
}

// tokenizer/parser

type parser struct {
	toks []string
	pos  int
}

func parseExpression(src string) (rex.Expression, error) {
	toks := tokenize(src)
	if len(toks) == 0 {
		return nil, fmt.Errorf("empty expression")
	}
	p := &parser{toks: toks}
	e, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("trailing input starting at %q", p.toks[p.pos])
	}
	return e, nil
}

func tokenize(src string) []string {
	var toks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	inString := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case inString:
			cur.WriteByte(c)
			if c == '"' {
				inString = false
				flush()
			}
		case c == '"':
			flush()
			inString = true
			cur.WriteByte(c)
		case c == '(' || c == ')':
			flush()
			toks = append(toks, string(c))
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return toks
}

func (p *parser) next() (string, error) {
	if p.pos >= len(p.toks) {
		return "", fmt.Errorf("unexpected end of input")
	}
	t := p.toks[p.pos]
	p.pos++
	return t, nil
}

func (p *parser) peek() (string, bool) {
	if p.pos >= len(p.toks) {
		return "", false
	}
	return p.toks[p.pos], true
}

func (p *parser) parseAtom() (rex.Expression, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	if tok == "(" {
		return p.parseCall()
	}
	return parseLiteralOrField(tok)
}

func (p *parser) parseCall() (rex.Expression, error) {
	op, err := p.next()
	if err != nil {
		return nil, err
	}
	var args []rex.Expression
	for {
		t, ok := p.peek()
		if !ok {
			return nil, fmt.Errorf("unterminated call %q", op)
		}
		if t == ")" {
			p.pos++
			break
		}
		a, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	return buildCall(strings.ToUpper(op), args)
}

func arity(op string, args []rex.Expression, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s wants %d argument(s), got %d", op, n, len(args))
	}
	return nil
}

func buildCall(op string, args []rex.Expression) (rex.Expression, error) {
	switch op {
	case "AND":
		if len(args) < 2 {
			return nil, fmt.Errorf("AND wants at least 2 arguments")
		}
		return expression.JoinAnd(args...), nil
	case "OR":
		if len(args) < 2 {
			return nil, fmt.Errorf("OR wants at least 2 arguments")
		}
		return expression.JoinOr(args...), nil
	case "NOT":
		if err := arity(op, args, 1); err != nil {
			return nil, err
		}
		return expression.NewNot(args[0]), nil
	case "=":
		if err := arity(op, args, 2); err != nil {
			return nil, err
		}
		return expression.NewEquals(args[0], args[1]), nil
	case "<>":
		if err := arity(op, args, 2); err != nil {
			return nil, err
		}
		return expression.NewNotEquals(args[0], args[1]), nil
	case "<":
		if err := arity(op, args, 2); err != nil {
			return nil, err
		}
		return expression.NewLessThan(args[0], args[1]), nil
	case "<=":
		if err := arity(op, args, 2); err != nil {
			return nil, err
		}
		return expression.NewLessThanOrEqual(args[0], args[1]), nil
	case ">":
		if err := arity(op, args, 2); err != nil {
			return nil, err
		}
		return expression.NewGreaterThan(args[0], args[1]), nil
	case ">=":
		if err := arity(op, args, 2); err != nil {
			return nil, err
		}
		return expression.NewGreaterThanOrEqual(args[0], args[1]), nil
	case "IS_NULL":
		if err := arity(op, args, 1); err != nil {
			return nil, err
		}
		return expression.NewIsNull(args[0]), nil
	case "IS_NOT_NULL":
		if err := arity(op, args, 1); err != nil {
			return nil, err
		}
		return expression.NewIsNotNull(args[0]), nil
	case "IS_TRUE":
		if err := arity(op, args, 1); err != nil {
			return nil, err
		}
		return expression.NewIsTrue(args[0]), nil
	case "IS_NOT_TRUE":
		if err := arity(op, args, 1); err != nil {
			return nil, err
		}
		return expression.NewIsNotTrue(args[0]), nil
	case "IS_FALSE":
		if err := arity(op, args, 1); err != nil {
			return nil, err
		}
		return expression.NewIsFalse(args[0]), nil
	case "IS_NOT_FALSE":
		if err := arity(op, args, 1); err != nil {
			return nil, err
		}
		return expression.NewIsNotFalse(args[0]), nil
	case "COALESCE":
		if len(args) < 1 {
			return nil, fmt.Errorf("COALESCE wants at least 1 argument")
		}
		return expression.NewCoalesce(args...), nil
	case "IN":
		if len(args) < 2 {
			return nil, fmt.Errorf("IN wants at least 2 arguments")
		}
		return expression.NewIn(args[0], args[1:]), nil
	case "NOT_IN":
		if len(args) < 2 {
			return nil, fmt.Errorf("NOT_IN wants at least 2 arguments")
		}
		return expression.NewNotIn(args[0], args[1:]), nil
	case "BETWEEN":
		if err := arity(op, args, 3); err != nil {
			return nil, err
		}
		return expression.NewBetween(args[0], args[1], args[2]), nil
	case "LIKE":
		if err := arity(op, args, 2); err != nil {
			return nil, err
		}
		return expression.NewLike(args[0], args[1]), nil
	case "+":
		if err := arity(op, args, 2); err != nil {
			return nil, err
		}
		return expression.NewPlus(args[0], args[1]), nil
	case "-":
		if err := arity(op, args, 2); err != nil {
			return nil, err
		}
		return expression.NewMinus(args[0], args[1]), nil
	case "*":
		if err := arity(op, args, 2); err != nil {
			return nil, err
		}
		return expression.NewMult(args[0], args[1]), nil
	case "/":
		if err := arity(op, args, 2); err != nil {
			return nil, err
		}
		return expression.NewDiv(args[0], args[1]), nil
	default:
		return nil, fmt.Errorf("unrecognized operator %q", op)
	}
}

// parseLiteralOrField parses a bare atom: true/false/null, a quoted string, a
// number, or a field reference $N[?][:TYPE].
func parseLiteralOrField(tok string) (rex.Expression, error) {
	switch strings.ToLower(tok) {
	case "true":
		return expression.True(), nil
	case "false":
		return expression.False(), nil
	case "null":
		return expression.NewNullLiteral(types.Nullable(types.Int64)), nil
	}
	if strings.HasPrefix(tok, "$") {
		return parseField(tok)
	}
	if strings.HasPrefix(tok, `"`) && strings.HasSuffix(tok, `"`) && len(tok) >= 2 {
		return expression.NewLiteral(tok[1:len(tok)-1], types.VarChar), nil
	}
	if i, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return expression.NewLiteral(i, types.Int64), nil
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return expression.NewLiteral(f, types.Float64), nil
	}
	return nil, fmt.Errorf("unrecognized atom %q", tok)
}

func parseField(tok string) (rex.Expression, error) {
	body := tok[1:]
	nullable := false
	if strings.HasPrefix(body, "?") {
		nullable = true
		body = body[1:]
	}
	idxStr, typStr := body, "int"
	if i := strings.IndexByte(body, ':'); i >= 0 {
		idxStr, typStr = body[:i], body[i+1:]
	}
	if strings.HasSuffix(idxStr, "?") {
		nullable = true
		idxStr = strings.TrimSuffix(idxStr, "?")
	}
	idx, err := strconv.Atoi(idxStr)
	if err != nil {
		return nil, fmt.Errorf("bad field index in %q: %w", tok, err)
	}
	var base types.Type
	switch strings.ToLower(typStr) {
	case "bool", "boolean":
		base = types.Boolean
	case "int", "int64":
		base = types.Int64
	case "float", "float64":
		base = types.Float64
	case "string", "varchar":
		base = types.VarChar
	default:
		return nil, fmt.Errorf("unrecognized field type %q in %q", typStr, tok)
	}
	return expression.NewGetField(idx, base, fmt.Sprintf("$%d", idx), nullable), nil
}
