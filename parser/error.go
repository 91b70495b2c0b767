package parser

import (
	"errors"
	"fmt"
)

// ErrorKind classifies JSONPath compilation errors.
type ErrorKind uint8

const (
	// LexerError reports an error detected while tokenizing a query.
	LexerError ErrorKind = iota + 1

	// SyntaxError reports a malformed query.
	SyntaxError

	// TypeError reports a well-typedness violation in a filter expression.
	TypeError

	// NameError reports an unknown function name in a filter expression.
	NameError
)

// Sentinel errors matched by [errors.Is] against [*Error] values.
var (
	// ErrParse matches every JSONPath compilation error.
	ErrParse = errors.New("jsonpath parse error")

	// ErrLexer matches lexer errors.
	ErrLexer = errors.New("lexer error")

	// ErrSyntax matches syntax errors.
	ErrSyntax = errors.New("syntax error")

	// ErrType matches type errors.
	ErrType = errors.New("type error")

	// ErrName matches name errors.
	ErrName = errors.New("name error")
)

// String returns the name of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case LexerError:
		return "lexer error"
	case SyntaxError:
		return "syntax error"
	case TypeError:
		return "type error"
	case NameError:
		return "name error"
	default:
		return "error"
	}
}

// Error is a JSONPath compilation error. It carries the error kind, a
// human-readable message, and the byte span of the offending token in the
// query string, suitable for rendering a caret under the source.
type Error struct {
	kind       ErrorKind
	msg        string
	start, end int
}

// newError creates an Error of kind k spanning tok.
func newError(k ErrorKind, tok token, format string, args ...any) *Error {
	return &Error{
		kind:  k,
		msg:   fmt.Sprintf(format, args...),
		start: tok.start,
		end:   tok.end,
	}
}

// syntaxError creates a SyntaxError spanning tok.
func syntaxError(tok token, format string, args ...any) *Error {
	return newError(SyntaxError, tok, format, args...)
}

// typeError creates a TypeError spanning tok.
func typeError(tok token, format string, args ...any) *Error {
	return newError(TypeError, tok, format, args...)
}

// Error returns the error message, including the kind and the position of
// the start of the source span.
func (e *Error) Error() string {
	return fmt.Sprintf("jsonpath: %v: %v at position %v", e.kind, e.msg, e.start+1)
}

// Kind returns the error's classification.
func (e *Error) Kind() ErrorKind { return e.kind }

// Message returns the bare error message without kind or position.
func (e *Error) Message() string { return e.msg }

// Span returns the byte span of the offending token in the query string.
func (e *Error) Span() (start, end int) { return e.start, e.end }

// Is reports whether e matches target. It matches [ErrParse] and the
// sentinel corresponding to e's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrParse:
		return true
	case ErrLexer:
		return e.kind == LexerError
	case ErrSyntax:
		return e.kind == SyntaxError
	case ErrType:
		return e.kind == TypeError
	case ErrName:
		return e.kind == NameError
	default:
		return false
	}
}

// unexpected creates a syntax error for an unexpected token. Error tokens
// retain the lexer's message and become lexer errors.
func unexpected(tok token, context string) *Error {
	if tok.kind == tokError {
		return newError(LexerError, tok, "%v", tok.val)
	}
	if tok.kind == tokEOQ {
		return syntaxError(tok, "unexpected end of query")
	}
	return syntaxError(tok, "unexpected %v %v", tok.name(), context)
}
