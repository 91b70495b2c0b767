// Package jsonpath implements RFC 9535 JSONPath query expressions.
//
// Use [Parse] to compile a query and [Path.Select] or
// [Path.SelectLocated] to execute it against JSON values decoded by
// [encoding/json] into []any and map[string]any values.
package jsonpath

import (
	"github.com/rfc9535/jsonpath/parser"
	"github.com/rfc9535/jsonpath/registry"
	"github.com/rfc9535/jsonpath/spec"
)

// Path represents a compiled [RFC 9535] JSONPath query. A Path is
// immutable and safe for concurrent use.
//
// [RFC 9535]: https://www.rfc-editor.org/rfc/rfc9535.html
type Path struct {
	q *spec.PathQuery
}

// New creates and returns a new [Path] consisting of q.
func New(q *spec.PathQuery) *Path {
	return &Path{q: q}
}

// String returns the canonical string representation of p. The result
// parses back to an equivalent Path.
func (p *Path) String() string {
	return p.q.String()
}

// Query returns p's root query.
func (p *Path) Query() *spec.PathQuery {
	return p.q
}

// IsSingular returns true if p selects at most one node from any input:
// every segment is a child segment with exactly one name or index
// selector.
func (p *Path) IsSingular() bool {
	return p.q.IsSingular()
}

// Select executes p against input and returns the selected values in
// order.
func (p *Path) Select(input any) []any {
	return p.q.Select(nil, input)
}

// SelectLocated executes p against input and returns the selected values
// together with their normalized paths, in order.
func (p *Path) SelectLocated(input any) spec.NodeList {
	return p.q.SelectLocated(nil, input)
}

// Parser compiles JSONPath query strings. It holds the function
// extension registry consulted by filter expressions. A Parser is safe
// for concurrent use.
type Parser struct {
	reg *registry.Registry
}

// Option configures a [Parser].
type Option func(*Parser)

// WithRegistry configures a [Parser] to resolve filter functions against
// reg, which may contain extensions beyond the five standard functions.
func WithRegistry(reg *registry.Registry) Option {
	return func(p *Parser) { p.reg = reg }
}

// NewParser creates a new [Parser]. Without options it resolves filter
// functions against a registry containing the five standard functions.
func NewParser(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	if p.reg == nil {
		p.reg = registry.New()
	}
	return p
}

// Registry returns the function extension registry consulted by p.
func (p *Parser) Registry() *registry.Registry {
	return p.reg
}

// Parse compiles query into a [Path]. Returns a [*parser.Error] on
// failure; use [errors.Is] with [parser.ErrSyntax], [parser.ErrType],
// [parser.ErrName], or [parser.ErrLexer] to classify it.
func (p *Parser) Parse(query string) (*Path, error) {
	q, err := parser.Parse(p.reg, query)
	if err != nil {
		return nil, err
	}
	return New(q), nil
}

// MustParse compiles query into a [Path], panicking on failure.
func (p *Parser) MustParse(query string) *Path {
	path, err := p.Parse(query)
	if err != nil {
		panic(err)
	}
	return path
}

// defaultParser compiles queries for the package-level functions. Its
// registry contains only the standard functions and is never mutated.
var defaultParser = NewParser()

// Parse compiles query into a [Path] using the standard function
// registry.
func Parse(query string) (*Path, error) {
	return defaultParser.Parse(query)
}

// MustParse compiles query into a [Path] using the standard function
// registry, panicking on failure.
func MustParse(query string) *Path {
	return defaultParser.MustParse(query)
}
