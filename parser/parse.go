// Package parser compiles RFC 9535 JSONPath query strings into parse
// trees. Most JSONPath users will use package
// [github.com/rfc9535/jsonpath] instead of this package.
package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/rfc9535/jsonpath/registry"
	"github.com/rfc9535/jsonpath/spec"
)

// Filter expression operator precedences, low to high. parseFilterExpr
// binds operators at or above the precedence it is called with.
const (
	precLowest     = 1
	precOr         = 3
	precAnd        = 4
	precRelational = 5
	precNot        = 7
)

// I-JSON safe integer range for indexes, slice components, and steps.
const (
	minPathInt = -1<<53 + 1
	maxPathInt = 1<<53 - 1
)

// parser holds the token stream and the function registry used for
// name resolution and signature checking.
type parser struct {
	tokens []token
	pos    int
	reg    *registry.Registry
}

// Parse compiles query into a [*spec.PathQuery], resolving filter
// function calls against reg. Returns a [*Error] on compilation failure.
func Parse(reg *registry.Registry, query string) (*spec.PathQuery, error) {
	tokens, lexErr := lex(query)
	if lexErr != nil {
		return nil, lexErr
	}

	p := &parser{tokens: tokens, reg: reg}
	if tok := p.next(); tok.kind != tokRoot {
		return nil, syntaxError(tok, "expected '$', found %v", tok.name())
	}

	segs, err := p.parseSegments()
	if err != nil {
		return nil, err
	}

	if tok := p.next(); tok.kind != tokEOQ {
		return nil, syntaxError(tok, "expected end of query, found %v", tok.name())
	}

	return spec.Query(true, segs), nil
}

// peek returns the next token without consuming it.
func (p *parser) peek() token {
	if p.pos >= len(p.tokens) {
		return token{kind: tokEOQ, start: len(p.tokens), end: len(p.tokens)}
	}
	return p.tokens[p.pos]
}

// next consumes and returns the next token.
func (p *parser) next() token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// parseSegments parses the segment list following a query root.
func (p *parser) parseSegments() ([]*spec.Segment, error) {
	var segs []*spec.Segment
	for {
		switch p.peek().kind {
		case tokDotDot:
			p.next()
			sels, err := p.parseSelectors()
			if err != nil {
				return nil, err
			}
			segs = append(segs, spec.Descendant(sels...))
		case tokLBracket, tokName, tokWild:
			sels, err := p.parseSelectors()
			if err != nil {
				return nil, err
			}
			segs = append(segs, spec.Child(sels...))
		default:
			return segs, nil
		}
	}
}

// parseSelectors parses the selectors of one segment: a shorthand name,
// a wildcard, or a bracketed selection.
func (p *parser) parseSelectors() ([]spec.Selector, error) {
	switch tok := p.peek(); tok.kind {
	case tokName:
		p.next()
		return []spec.Selector{spec.Name(tok.val)}, nil
	case tokWild:
		p.next()
		return []spec.Selector{spec.Wildcard()}, nil
	case tokLBracket:
		return p.parseBracketed()
	default:
		return nil, unexpected(tok, "in segment")
	}
}

// parseBracketed parses a bracketed selection: one or more
// comma-separated selectors and a closing bracket.
func (p *parser) parseBracketed() ([]spec.Selector, error) {
	lbracket := p.next()
	var sels []spec.Selector

	for {
		switch tok := p.peek(); tok.kind {
		case tokRBracket:
			p.next()
			if len(sels) == 0 {
				return nil, syntaxError(lbracket, "empty bracketed selection")
			}
			return sels, nil
		case tokIndex, tokColon:
			sel, err := p.parseSliceOrIndex()
			if err != nil {
				return nil, err
			}
			sels = append(sels, sel)
		case tokSingleQuote, tokDoubleQuote:
			p.next()
			name, err := unescapeToken(tok)
			if err != nil {
				return nil, err
			}
			sels = append(sels, spec.Name(name))
		case tokWild:
			p.next()
			sels = append(sels, spec.Wildcard())
		case tokFilter:
			sel, err := p.parseFilter()
			if err != nil {
				return nil, err
			}
			sels = append(sels, sel)
		case tokEOQ:
			return nil, syntaxError(lbracket, "unexpected end of query")
		default:
			return nil, unexpected(tok, "in bracketed selection")
		}

		// A comma or the closing bracket must follow each selector.
		switch tok := p.peek(); tok.kind {
		case tokRBracket, tokEOQ:
			// Handled at the top of the loop.
		case tokComma:
			p.next()
		default:
			return nil, syntaxError(
				tok, "expected a comma or closing bracket, found %v", tok.name(),
			)
		}
	}
}

// unescapeToken decodes the escape sequences in a string token.
func unescapeToken(tok token) (string, *Error) {
	quote := rune('\'')
	if tok.kind == tokDoubleQuote {
		quote = '"'
	}
	return unescape(tok.val, quote, tok.start)
}

// parseSliceOrIndex parses an index selector or a slice selector from an
// integer or colon token.
func (p *parser) parseSliceOrIndex() (spec.Selector, error) {
	tok := p.next()

	if tok.kind != tokColon && p.peek().kind != tokColon {
		// An index selector.
		idx, err := parsePathInt(tok)
		if err != nil {
			return nil, err
		}
		return spec.Index(idx), nil
	}

	// A slice selector with up to three components.
	var args [3]any
	if tok.kind == tokIndex {
		start, err := parsePathInt(tok)
		if err != nil {
			return nil, err
		}
		args[0] = start
		p.next() // eat colon
	}

	// Stop component, or a second colon.
	if k := p.peek().kind; k == tokIndex || k == tokColon {
		tok := p.next()
		if tok.kind == tokIndex {
			stop, err := parsePathInt(tok)
			if err != nil {
				return nil, err
			}
			args[1] = stop
			if p.peek().kind == tokColon {
				p.next() // eat colon
			}
		}
	}

	// Step component.
	if p.peek().kind == tokIndex {
		step, err := parsePathInt(p.next())
		if err != nil {
			return nil, err
		}
		args[2] = step
	}

	return spec.Slice(args[:]...), nil
}

// parsePathInt parses an integer used as an index, slice component, or
// step, which may not have redundant leading zeros and must lie within
// the I-JSON safe range.
func parsePathInt(tok token) (int64, error) {
	if len(tok.val) > 1 &&
		(strings.HasPrefix(tok.val, "0") || strings.HasPrefix(tok.val, "-0")) {
		return 0, syntaxError(tok, "invalid index %q", tok.val)
	}
	idx, err := strconv.ParseInt(tok.val, 10, 64)
	if err != nil || idx < minPathInt || idx > maxPathInt {
		return 0, syntaxError(tok, "index out of range %q", tok.val)
	}
	return idx, nil
}

// parseFilter parses a filter selector. The filter body must not be a
// bare literal or an uncompared call to a value-returning function.
func (p *parser) parseFilter() (*spec.FilterSelector, error) {
	p.next() // eat ?
	start := p.peek()

	expr, err := p.parseFilterExpr(precLowest)
	if err != nil {
		return nil, err
	}

	if fe, ok := expr.(*spec.FunctionExpr); ok && fe.ResultType() == spec.FuncValue {
		return nil, typeError(start, "result of %v() must be compared", fe.Name())
	}
	if isLiteral(expr) {
		return nil, typeError(start, "filter expression literals must be compared")
	}

	return spec.Filter(expr), nil
}

// parseFilterExpr is the Pratt loop: it parses a basic expression, then
// folds in infix operators whose precedence is at least prec.
func (p *parser) parseFilterExpr(prec int) (spec.FilterExpr, error) {
	left, err := p.parseBasicExpr()
	if err != nil {
		return nil, err
	}

	for {
		kind := p.peek().kind
		if kind == tokEOQ || kind == tokRBracket ||
			!isInfix(kind) || precedence(kind) < prec {
			break
		}
		left, err = p.parseInfixExpr(left)
		if err != nil {
			return nil, err
		}
	}

	return left, nil
}

// parseBasicExpr parses a filter expression atom: a literal, a grouped
// expression, a negation, an embedded query, or a function call.
func (p *parser) parseBasicExpr() (spec.FilterExpr, error) {
	switch tok := p.peek(); tok.kind {
	case tokSingleQuote, tokDoubleQuote:
		p.next()
		val, err := unescapeToken(tok)
		if err != nil {
			return nil, err
		}
		return spec.Literal(val), nil
	case tokTrue:
		p.next()
		return spec.Literal(true), nil
	case tokFalse:
		p.next()
		return spec.Literal(false), nil
	case tokNull:
		p.next()
		return spec.Literal(nil), nil
	case tokInt:
		p.next()
		return parseIntLiteral(tok)
	case tokFloat:
		p.next()
		num, err := strconv.ParseFloat(tok.val, 64)
		if err != nil {
			return nil, syntaxError(tok, "invalid float literal %q", tok.val)
		}
		return spec.Literal(num), nil
	case tokFunction:
		return p.parseFunctionCall()
	case tokRoot, tokCurrent:
		p.next()
		segs, err := p.parseSegments()
		if err != nil {
			return nil, err
		}
		return spec.FilterQuery(spec.Query(tok.kind == tokRoot, segs)), nil
	case tokLParen:
		return p.parseGroupedExpr()
	case tokNot:
		p.next()
		expr, err := p.parseFilterExpr(precNot)
		if err != nil {
			return nil, err
		}
		if isLiteral(expr) {
			return nil, typeError(tok, "filter expression literals must be compared")
		}
		return spec.Not(expr), nil
	case tokRParen, tokRBracket:
		return nil, syntaxError(tok, "expected a filter expression")
	default:
		return nil, unexpected(tok, "in filter expression")
	}
}

// parseIntLiteral parses an integer filter literal. The token may carry
// an exponent, in which case the value is parsed as a float and converted
// back to an integer when it can be represented exactly.
func parseIntLiteral(tok token) (spec.FilterExpr, error) {
	if i, err := strconv.ParseInt(tok.val, 10, 64); err == nil {
		return spec.Literal(i), nil
	}
	num, err := strconv.ParseFloat(tok.val, 64)
	if err != nil {
		return nil, syntaxError(tok, "invalid integer literal %q", tok.val)
	}
	if num == math.Trunc(num) && num >= math.MinInt64 && num <= math.MaxInt64 {
		return spec.Literal(int64(num)), nil
	}
	return spec.Literal(num), nil
}

// parseInfixExpr folds the next infix operator into left. Logical
// operands may not be bare literals; comparison operands must be
// literals, singular queries, or calls to value-returning functions.
func (p *parser) parseInfixExpr(left spec.FilterExpr) (spec.FilterExpr, error) {
	opTok := p.next()
	right, err := p.parseFilterExpr(precedence(opTok.kind))
	if err != nil {
		return nil, err
	}

	switch opTok.kind {
	case tokAnd, tokOr:
		if isLiteral(left) || isLiteral(right) {
			return nil, typeError(opTok, "filter expression literals must be compared")
		}
		op := spec.LogicalAnd
		if opTok.kind == tokOr {
			op = spec.LogicalOr
		}
		return spec.Logical(left, op, right), nil
	case tokEq, tokNe, tokLt, tokLe, tokGt, tokGe:
		if err := assertComparable(left, opTok); err != nil {
			return nil, err
		}
		if err := assertComparable(right, opTok); err != nil {
			return nil, err
		}
		return spec.Comparison(left, compOpFor(opTok.kind), right), nil
	default:
		return nil, syntaxError(opTok, "unexpected %v in filter expression", opTok.name())
	}
}

// parseGroupedExpr parses a parenthesized expression, which must contain
// a filter expression and end with a closing parenthesis.
func (p *parser) parseGroupedExpr() (spec.FilterExpr, error) {
	lparen := p.next()

	expr, err := p.parseFilterExpr(precLowest)
	if err != nil {
		return nil, err
	}

	for {
		switch tok := p.peek(); tok.kind {
		case tokEOQ, tokRBracket:
			return nil, syntaxError(lparen, "unbalanced parentheses")
		case tokRParen:
			p.next()
			return expr, nil
		default:
			expr, err = p.parseInfixExpr(expr)
			if err != nil {
				return nil, err
			}
		}
	}
}

// parseFunctionCall parses a function call. The name must resolve in the
// registry, and the arguments must satisfy the registered signature.
func (p *parser) parseFunctionCall() (spec.FilterExpr, error) {
	nameTok := p.next()
	fn := p.reg.Get(nameTok.val)
	if fn == nil {
		return nil, newError(NameError, nameTok, "unknown function '%v'", nameTok.val)
	}

	var args []spec.FilterExpr
	for p.peek().kind != tokRParen {
		arg, err := p.parseBasicExpr()
		if err != nil {
			return nil, err
		}
		for isInfix(p.peek().kind) {
			arg, err = p.parseInfixExpr(arg)
			if err != nil {
				return nil, err
			}
		}
		args = append(args, arg)

		switch tok := p.peek(); tok.kind {
		case tokRParen:
			// Done.
		case tokComma:
			p.next()
		case tokEOQ:
			return nil, syntaxError(tok, "unexpected end of query")
		default:
			return nil, unexpected(tok, "in function call")
		}
	}
	p.next() // eat closing paren

	if err := checkFunctionArgs(fn, args, nameTok); err != nil {
		return nil, err
	}

	return spec.Function(fn, args), nil
}

// checkFunctionArgs validates a function call against the registered
// signature: the argument count must match the arity, and each argument
// expression must belong to the declared parameter's type class.
func checkFunctionArgs(fn *spec.FuncExtension, args []spec.FilterExpr, tok token) *Error {
	params := fn.Params()
	if len(args) != len(params) {
		plural := ""
		if len(params) != 1 {
			plural = "s"
		}
		return typeError(
			tok, "%v() takes %v argument%v but %v were given",
			fn.Name(), len(params), plural, len(args),
		)
	}

	for i, typ := range params {
		arg := args[i]
		switch typ {
		case spec.FuncValue:
			if !isValueExpr(arg) {
				return typeError(
					tok, "argument %v of %v() must be of a 'Value' type",
					i+1, fn.Name(),
				)
			}
		case spec.FuncLogical:
			if !isLogicalExpr(arg) {
				return typeError(
					tok, "argument %v of %v() must be of a 'Logical' type",
					i+1, fn.Name(),
				)
			}
		case spec.FuncNodes:
			if !isNodesExpr(arg) {
				return typeError(
					tok, "argument %v of %v() must be of a 'Nodes' type",
					i+1, fn.Name(),
				)
			}
		}
	}

	return nil
}

// assertComparable requires expr to be valid as a comparison operand: a
// literal, a singular query, or a call to a value-returning function.
func assertComparable(expr spec.FilterExpr, tok token) *Error {
	switch e := expr.(type) {
	case *spec.LiteralExpr:
		return nil
	case *spec.QueryExpr:
		if !e.Query().IsSingular() {
			return typeError(tok, "non-singular query is not comparable")
		}
		return nil
	case *spec.FunctionExpr:
		if e.ResultType() != spec.FuncValue {
			return typeError(tok, "result of %v() is not comparable", e.Name())
		}
		return nil
	default:
		return typeError(tok, "expression is not comparable")
	}
}

// isLiteral reports whether expr is a bare literal.
func isLiteral(expr spec.FilterExpr) bool {
	_, ok := expr.(*spec.LiteralExpr)
	return ok
}

// isValueExpr reports whether expr produces a single value: a literal, a
// singular query, or a value-returning function call.
func isValueExpr(expr spec.FilterExpr) bool {
	switch e := expr.(type) {
	case *spec.LiteralExpr:
		return true
	case *spec.QueryExpr:
		return e.Query().IsSingular()
	case *spec.FunctionExpr:
		return e.ResultType() == spec.FuncValue
	default:
		return false
	}
}

// isLogicalExpr reports whether expr produces a logical result: a query
// existence test, a comparison, or a logical combination.
func isLogicalExpr(expr spec.FilterExpr) bool {
	switch expr.(type) {
	case *spec.QueryExpr, *spec.LogicalExpr, *spec.ComparisonExpr, *spec.NotExpr:
		return true
	default:
		return false
	}
}

// isNodesExpr reports whether expr produces a node list: any query or a
// nodes-returning function call.
func isNodesExpr(expr spec.FilterExpr) bool {
	switch e := expr.(type) {
	case *spec.QueryExpr:
		return true
	case *spec.FunctionExpr:
		return e.ResultType() == spec.FuncNodes
	default:
		return false
	}
}

// precedence returns the binding power of an infix operator token.
func precedence(kind tokenKind) int {
	switch kind {
	case tokAnd:
		return precAnd
	case tokOr:
		return precOr
	case tokEq, tokNe, tokLt, tokLe, tokGt, tokGe:
		return precRelational
	case tokNot:
		return precNot
	default:
		return precLowest
	}
}

// isInfix reports whether kind is an infix operator.
func isInfix(kind tokenKind) bool {
	switch kind {
	case tokEq, tokNe, tokLt, tokLe, tokGt, tokGe, tokAnd, tokOr:
		return true
	default:
		return false
	}
}

// compOpFor maps an operator token to its [spec.CompOp].
func compOpFor(kind tokenKind) spec.CompOp {
	switch kind {
	case tokEq:
		return spec.EqualTo
	case tokNe:
		return spec.NotEqualTo
	case tokLt:
		return spec.LessThan
	case tokLe:
		return spec.LessThanEqualTo
	case tokGt:
		return spec.GreaterThan
	default:
		return spec.GreaterThanEqualTo
	}
}
