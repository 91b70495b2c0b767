// Package registry provides an RFC 9535 JSONPath function extension
// registry.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rfc9535/jsonpath/spec"
)

// Registry maintains a set of JSONPath function extensions, both the
// [RFC 9535]-required functions and custom registrations. A Registry is
// safe for concurrent use.
//
// [RFC 9535]: https://www.rfc-editor.org/rfc/rfc9535.html
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]*spec.FuncExtension
}

// New returns a new [Registry] loaded with the [RFC 9535]-mandated
// function extensions:
//
//   - [length]
//   - [count]
//   - [value]
//   - [match]
//   - [search]
//
// [RFC 9535]: https://www.rfc-editor.org/rfc/rfc9535.html
// [length]: https://www.rfc-editor.org/rfc/rfc9535.html#name-length-function-extension
// [count]: https://www.rfc-editor.org/rfc/rfc9535.html#name-count-function-extension
// [value]: https://www.rfc-editor.org/rfc/rfc9535.html#name-value-function-extension
// [match]: https://www.rfc-editor.org/rfc/rfc9535.html#name-match-function-extension
// [search]: https://www.rfc-editor.org/rfc/rfc9535.html#name-search-function-extension
func New() *Registry {
	return &Registry{
		funcs: map[string]*spec.FuncExtension{
			"length": spec.Extension(
				"length",
				[]spec.FuncType{spec.FuncValue},
				spec.FuncValue,
				lengthFunc,
			),
			"count": spec.Extension(
				"count",
				[]spec.FuncType{spec.FuncNodes},
				spec.FuncValue,
				countFunc,
			),
			"value": spec.Extension(
				"value",
				[]spec.FuncType{spec.FuncNodes},
				spec.FuncValue,
				valueFunc,
			),
			"match": spec.Extension(
				"match",
				[]spec.FuncType{spec.FuncValue, spec.FuncValue},
				spec.FuncLogical,
				newMatcher(true).evaluate,
			),
			"search": spec.Extension(
				"search",
				[]spec.FuncType{spec.FuncValue, spec.FuncValue},
				spec.FuncLogical,
				newMatcher(false).evaluate,
			),
		},
	}
}

// ErrRegister errors are returned by [Registry.Register].
var ErrRegister = errors.New("register")

// Register registers a function extension under name, declaring
// parameters of the params type classes and a result type, implemented by
// eval. Returns [ErrRegister] if eval is nil or if r already contains
// name.
func (r *Registry) Register(
	name string,
	params []spec.FuncType,
	result spec.FuncType,
	eval spec.Evaluator,
) error {
	if eval == nil {
		return fmt.Errorf("%w: evaluator is nil", ErrRegister)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.funcs[name]; dup {
		return fmt.Errorf(
			"%w: Register called twice for function %v",
			ErrRegister, name,
		)
	}

	r.funcs[name] = spec.Extension(name, params, result, eval)
	return nil
}

// Get returns the registered function extension named name, or nil if no
// extension with that name has been registered.
func (r *Registry) Get(name string) *spec.FuncExtension {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.funcs[name]
}
