package registry

import (
	"regexp"
	"regexp/syntax"
	"sync"
	"unicode/utf8"

	"github.com/golang/groupcache/lru"

	"github.com/rfc9535/jsonpath/spec"
)

// lengthFunc implements the [RFC 9535]-standard length function:
//
//   - For a string, the result is the number of Unicode scalar values.
//   - For an array, the result is the number of elements.
//   - For an object, the result is the number of members.
//   - For any other value, including Nothing, the result is Nothing.
//
// [RFC 9535]: https://www.rfc-editor.org/rfc/rfc9535.html
func lengthFunc(args []spec.FilterValue) spec.FilterValue {
	switch v := args[0].(type) {
	case spec.StringValue:
		return spec.IntValue(utf8.RuneCountInString(string(v)))
	case spec.ArrayValue:
		return spec.IntValue(len(v))
	case spec.ObjectValue:
		return spec.IntValue(len(v))
	default:
		return spec.Nothing
	}
}

// countFunc implements the [RFC 9535]-standard count function: the number
// of nodes in its node-list argument.
//
// [RFC 9535]: https://www.rfc-editor.org/rfc/rfc9535.html
func countFunc(args []spec.FilterValue) spec.FilterValue {
	if nodes, ok := args[0].(spec.NodesValue); ok {
		return spec.IntValue(len(nodes))
	}
	return spec.Nothing
}

// valueFunc implements the [RFC 9535]-standard value function: the value
// of the single node in its argument, or Nothing when the node list is
// empty or holds more than one node.
//
// [RFC 9535]: https://www.rfc-editor.org/rfc/rfc9535.html
func valueFunc(args []spec.FilterValue) spec.FilterValue {
	if nodes, ok := args[0].(spec.NodesValue); ok && len(nodes) == 1 {
		return spec.ValueOf(nodes[0])
	}
	return spec.Nothing
}

// maxCachedPatterns bounds each matcher's cache of compiled patterns.
const maxCachedPatterns = 100

// matcher implements the match and search function extensions. Patterns
// are validated as RFC 9485 I-Regexp, mapped to Go regexp syntax, and
// kept in a bounded LRU so repeated evaluations of a compiled query skip
// recompilation. The cache is shared by concurrent evaluations and
// guarded by a mutex.
type matcher struct {
	mu       sync.Mutex
	cache    *lru.Cache
	anchored bool
}

// newMatcher returns a matcher. Pass true for anchored to require the
// pattern to match the entire string, as match() does; false matches
// anywhere, as search() does.
func newMatcher(anchored bool) *matcher {
	return &matcher{cache: lru.New(maxCachedPatterns), anchored: anchored}
}

// evaluate implements the match and search function extensions. Both
// arguments must be strings and the second a valid I-Regexp; otherwise
// the result is false.
func (m *matcher) evaluate(args []spec.FilterValue) spec.FilterValue {
	val, ok := args[0].(spec.StringValue)
	if !ok {
		return spec.BoolValue(false)
	}
	pattern, ok := args[1].(spec.StringValue)
	if !ok {
		return spec.BoolValue(false)
	}

	re := m.compile(string(pattern))
	if re == nil {
		return spec.BoolValue(false)
	}
	return spec.BoolValue(re.MatchString(string(val)))
}

// compile returns the compiled regexp for pattern, consulting the cache
// first. Returns nil if pattern is not a valid I-Regexp or fails to
// compile; failures are not cached, matching the behavior of a
// first-time compile.
func (m *matcher) compile(pattern string) *regexp.Regexp {
	m.mu.Lock()
	defer m.mu.Unlock()

	if v, ok := m.cache.Get(pattern); ok {
		re, _ := v.(*regexp.Regexp)
		return re
	}

	if !checkIRegexp(pattern) {
		return nil
	}
	re := compileRegex(pattern, m.anchored)
	if re != nil {
		m.cache.Add(pattern, re)
	}
	return re
}

// compileRegex compiles pattern into a regular expression, anchored with
// \A and \z when anchored is true. To comply with RFC 9485 dot
// semantics, all instances of "." are replaced with "[^\n\r]", which
// requires parsing the pattern to an AST, rewriting its "." nodes, and
// compiling the result.
func compileRegex(pattern string, anchored bool) *regexp.Regexp {
	if anchored {
		pattern = `\A(?:` + pattern + `)\z`
	}

	// https://www.rfc-editor.org/rfc/rfc9485.html#name-pcre-re2-and-ruby-regexps
	r, err := syntax.Parse(pattern, syntax.Perl|syntax.DotNL)
	if err != nil {
		return nil
	}

	replaceDot(r)
	re, err := regexp.Compile(r.String())
	if err != nil {
		return nil
	}
	return re
}

var crlf, _ = syntax.Parse("[^\n\r]", syntax.Perl)

// replaceDot recurses re to replace all "." nodes with "[^\n\r]" nodes.
func replaceDot(re *syntax.Regexp) {
	if re.Op == syntax.OpAnyChar {
		*re = *crlf
	} else {
		for _, sub := range re.Sub {
			replaceDot(sub)
		}
	}
}
