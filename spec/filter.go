package spec

import (
	"strconv"
	"strings"
)

// FilterExpr defines the interface for filter expression tree nodes.
// Implementations:
//
//   - [LiteralExpr]
//   - [QueryExpr]
//   - [NotExpr]
//   - [LogicalExpr]
//   - [ComparisonExpr]
//   - [FunctionExpr]
type FilterExpr interface {
	stringWriter

	// evaluate evaluates the expression against the current and root
	// values and returns the result.
	evaluate(current, root any) FilterValue
}

// FilterSelector is a filter selector, e.g., [?@.price < 10], as defined
// by [RFC 9535 Section 2.3.5]. It selects the children of an object or
// array for which its expression is truthy.
//
// [RFC 9535 Section 2.3.5]: https://www.rfc-editor.org/rfc/rfc9535.html#name-filter-selector
type FilterSelector struct {
	expr FilterExpr
}

// Filter returns a new [FilterSelector] for expr.
func Filter(expr FilterExpr) *FilterSelector {
	return &FilterSelector{expr: expr}
}

// Expression returns f's filter expression.
func (f *FilterSelector) Expression() FilterExpr { return f.expr }

// isSingular returns false: a filter may select multiple values. Defined
// by the [Selector] interface.
func (f *FilterSelector) isSingular() bool { return false }

// String returns a string representation of f.
func (f *FilterSelector) String() string {
	buf := new(strings.Builder)
	f.writeTo(buf)
	return buf.String()
}

// writeTo writes a string representation of f to buf. Defined by
// [stringWriter].
func (f *FilterSelector) writeTo(buf *strings.Builder) {
	buf.WriteByte('?')
	f.expr.writeTo(buf)
}

// Eval evaluates f's expression with current as the current node (@) and
// root as the query argument ($) and returns its truthiness.
func (f *FilterSelector) Eval(current, root any) bool {
	return IsTruthy(f.expr.evaluate(current, root))
}

// Select selects and returns the children of current for which f's
// expression is truthy. Defined by the [Selector] interface.
func (f *FilterSelector) Select(current, root any) []any {
	var ret []any
	switch current := current.(type) {
	case []any:
		for _, v := range current {
			if f.Eval(v, root) {
				ret = append(ret, v)
			}
		}
	case map[string]any:
		for _, v := range current {
			if f.Eval(v, root) {
				ret = append(ret, v)
			}
		}
	}
	return ret
}

// selectLocated selects the children of current for which f's expression
// is truthy, with their locations. Defined by the [Selector] interface.
func (f *FilterSelector) selectLocated(current, root any, loc *location) []node {
	var ret []node
	switch current := current.(type) {
	case []any:
		for i, v := range current {
			if f.Eval(v, root) {
				ret = append(ret, node{val: v, loc: loc.child(Index(i))})
			}
		}
	case map[string]any:
		for k, v := range current {
			if f.Eval(v, root) {
				ret = append(ret, node{val: v, loc: loc.child(Name(k))})
			}
		}
	}
	return ret
}

// LiteralExpr is a literal JSON value in a filter expression: a string,
// int64, float64, bool, or nil. The parser only ever places literals
// inside comparisons and function arguments.
type LiteralExpr struct {
	value any
}

// Literal creates a new [LiteralExpr] for val.
func Literal(val any) *LiteralExpr {
	return &LiteralExpr{value: val}
}

// Value returns the underlying value of e.
func (e *LiteralExpr) Value() any { return e.value }

// evaluate returns the classified literal value. Defined by [FilterExpr].
func (e *LiteralExpr) evaluate(_, _ any) FilterValue {
	return ValueOf(e.value)
}

// String returns a string representation of e.
func (e *LiteralExpr) String() string {
	buf := new(strings.Builder)
	e.writeTo(buf)
	return buf.String()
}

// writeTo writes a string representation of e to buf. Strings render
// single-quoted. Defined by [stringWriter].
func (e *LiteralExpr) writeTo(buf *strings.Builder) {
	switch v := e.value.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		buf.WriteString(strconv.FormatBool(v))
	case int64:
		buf.WriteString(strconv.FormatInt(v, 10))
	case float64:
		buf.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	case string:
		writeQuotedName(buf, v)
	}
}

// QueryExpr is a query embedded in a filter expression, rooted at either
// the current node (@) or the query argument ($). Its value is the node
// list the query selects.
type QueryExpr struct {
	query *PathQuery
}

// FilterQuery creates a new [QueryExpr] for q.
func FilterQuery(q *PathQuery) *QueryExpr {
	return &QueryExpr{query: q}
}

// Query returns the embedded query.
func (e *QueryExpr) Query() *PathQuery { return e.query }

// evaluate returns the nodes the embedded query selects. Defined by
// [FilterExpr].
func (e *QueryExpr) evaluate(current, root any) FilterValue {
	return NodesValue(e.query.Select(current, root))
}

// String returns a string representation of e.
func (e *QueryExpr) String() string { return e.query.String() }

// writeTo writes a string representation of e to buf. Defined by
// [stringWriter].
func (e *QueryExpr) writeTo(buf *strings.Builder) {
	e.query.writeTo(buf)
}

// NotExpr is a logical-not expression.
type NotExpr struct {
	expr FilterExpr
}

// Not creates a new [NotExpr] negating expr.
func Not(expr FilterExpr) *NotExpr {
	return &NotExpr{expr: expr}
}

// Expression returns the negated expression.
func (e *NotExpr) Expression() FilterExpr { return e.expr }

// evaluate returns the inverted truthiness of the negated expression.
// Defined by [FilterExpr].
func (e *NotExpr) evaluate(current, root any) FilterValue {
	return BoolValue(!IsTruthy(e.expr.evaluate(current, root)))
}

// String returns a string representation of e.
func (e *NotExpr) String() string {
	buf := new(strings.Builder)
	e.writeTo(buf)
	return buf.String()
}

// writeTo writes a string representation of e to buf, parenthesizing a
// negated comparison so the rendering parses back to the same tree.
// Defined by [stringWriter].
func (e *NotExpr) writeTo(buf *strings.Builder) {
	buf.WriteByte('!')
	if c, ok := e.expr.(*ComparisonExpr); ok {
		buf.WriteByte('(')
		c.writeTo(buf)
		buf.WriteByte(')')
		return
	}
	e.expr.writeTo(buf)
}

// LogicalExpr combines two expressions with && or ||.
type LogicalExpr struct {
	left  FilterExpr
	op    LogicalOp
	right FilterExpr
}

// Logical creates a new [LogicalExpr] combining left and right with op.
func Logical(left FilterExpr, op LogicalOp, right FilterExpr) *LogicalExpr {
	return &LogicalExpr{left: left, op: op, right: right}
}

// evaluate evaluates the operands left to right, short-circuiting, and
// returns the boolean result. Defined by [FilterExpr].
func (e *LogicalExpr) evaluate(current, root any) FilterValue {
	left := IsTruthy(e.left.evaluate(current, root))
	switch e.op {
	case LogicalAnd:
		return BoolValue(left && IsTruthy(e.right.evaluate(current, root)))
	case LogicalOr:
		return BoolValue(left || IsTruthy(e.right.evaluate(current, root)))
	default:
		return BoolValue(false)
	}
}

// String returns a string representation of e.
func (e *LogicalExpr) String() string {
	buf := new(strings.Builder)
	e.writeTo(buf)
	return buf.String()
}

// writeTo writes a parenthesized string representation of e to buf.
// Defined by [stringWriter].
func (e *LogicalExpr) writeTo(buf *strings.Builder) {
	buf.WriteByte('(')
	e.left.writeTo(buf)
	buf.WriteByte(' ')
	buf.WriteString(e.op.String())
	buf.WriteByte(' ')
	e.right.writeTo(buf)
	buf.WriteByte(')')
}

// ComparisonExpr compares two values, each produced by a literal, a
// singular query, or a function call returning a value.
type ComparisonExpr struct {
	left  FilterExpr
	op    CompOp
	right FilterExpr
}

// Comparison creates a new [ComparisonExpr] that uses op to compare left
// and right.
func Comparison(left FilterExpr, op CompOp, right FilterExpr) *ComparisonExpr {
	return &ComparisonExpr{left: left, op: op, right: right}
}

// evaluate compares the values of the operands. Defined by [FilterExpr].
func (e *ComparisonExpr) evaluate(current, root any) FilterValue {
	left := e.left.evaluate(current, root)
	right := e.right.evaluate(current, root)
	return BoolValue(compare(left, e.op, right))
}

// String returns a string representation of e.
func (e *ComparisonExpr) String() string {
	buf := new(strings.Builder)
	e.writeTo(buf)
	return buf.String()
}

// writeTo writes a string representation of e to buf. Defined by
// [stringWriter].
func (e *ComparisonExpr) writeTo(buf *strings.Builder) {
	e.left.writeTo(buf)
	buf.WriteByte(' ')
	buf.WriteString(e.op.String())
	buf.WriteByte(' ')
	e.right.writeTo(buf)
}

// FunctionExpr is a function extension call in a filter expression.
type FunctionExpr struct {
	fn   *FuncExtension
	args []FilterExpr
}

// Function creates a new [FunctionExpr] calling fn with args. The parser
// validates the arguments against fn's signature before construction.
func Function(fn *FuncExtension, args []FilterExpr) *FunctionExpr {
	return &FunctionExpr{fn: fn, args: args}
}

// Name returns the name of the called extension.
func (e *FunctionExpr) Name() string { return e.fn.Name() }

// Args returns the argument expressions.
func (e *FunctionExpr) Args() []FilterExpr { return e.args }

// ResultType returns the type class of the call's result.
func (e *FunctionExpr) ResultType() FuncType { return e.fn.ResultType() }

// evaluate evaluates each argument, coerces node lists bound for
// non-nodes parameters (an empty list to Nothing, a singleton to its
// value), and invokes the extension. Defined by [FilterExpr].
func (e *FunctionExpr) evaluate(current, root any) FilterValue {
	params := e.fn.Params()
	args := make([]FilterValue, len(e.args))
	for i, arg := range e.args {
		v := arg.evaluate(current, root)
		if i < len(params) && params[i] != FuncNodes {
			if nodes, ok := v.(NodesValue); ok {
				switch len(nodes) {
				case 0:
					v = Nothing
				case 1:
					v = ValueOf(nodes[0])
				}
			}
		}
		args[i] = v
	}
	return e.fn.Evaluate(args)
}

// String returns a string representation of e.
func (e *FunctionExpr) String() string {
	buf := new(strings.Builder)
	e.writeTo(buf)
	return buf.String()
}

// writeTo writes a string representation of e to buf. Defined by
// [stringWriter].
func (e *FunctionExpr) writeTo(buf *strings.Builder) {
	buf.WriteString(e.fn.Name())
	buf.WriteByte('(')
	for i, arg := range e.args {
		if i > 0 {
			buf.WriteString(", ")
		}
		arg.writeTo(buf)
	}
	buf.WriteByte(')')
}
