package spec

//go:generate stringer -linecomment -output function_string.go -type FuncType

// FuncType is a function extension type class as defined by [RFC 9535
// Section 2.4.1]: the declared type of a function parameter or result.
//
// [RFC 9535 Section 2.4.1]: https://www.rfc-editor.org/rfc/rfc9535.html#name-type-system-for-function-ex
type FuncType uint8

const (
	// FuncValue is ValueType: a single JSON value or Nothing.
	FuncValue FuncType = iota + 1 // ValueType

	// FuncLogical is LogicalType: the result of a logical expression.
	FuncLogical // LogicalType

	// FuncNodes is NodesType: a list of nodes selected by a query.
	FuncNodes // NodesType
)

// Evaluator is the implementation of a function extension. It receives
// one [FilterValue] per declared parameter, already coerced per [RFC 9535
// Section 2.4.2], and returns a value of the extension's result type.
//
// [RFC 9535 Section 2.4.2]: https://www.rfc-editor.org/rfc/rfc9535.html#name-type-conversion
type Evaluator func(args []FilterValue) FilterValue

// FuncExtension is a filter-callable function extension: a named
// signature over [FuncType] classes paired with its implementation. The
// parser type-checks calls against the signature at compile time; the
// evaluator invokes the implementation.
type FuncExtension struct {
	name   string
	params []FuncType
	result FuncType
	eval   Evaluator
}

// Extension creates a new [FuncExtension] named name, taking parameters
// of the params type classes, returning a result value, and implemented
// by eval.
func Extension(name string, params []FuncType, result FuncType, eval Evaluator) *FuncExtension {
	return &FuncExtension{name: name, params: params, result: result, eval: eval}
}

// Name returns the name of the extension as written in queries.
func (f *FuncExtension) Name() string { return f.name }

// Params returns the type classes of the extension's parameters.
func (f *FuncExtension) Params() []FuncType { return f.params }

// ResultType returns the type class of the extension's result.
func (f *FuncExtension) ResultType() FuncType { return f.result }

// Evaluate invokes the extension's implementation with args.
func (f *FuncExtension) Evaluate(args []FilterValue) FilterValue {
	return f.eval(args)
}
