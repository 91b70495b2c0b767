package spec

import (
	"strconv"
	"strings"
)

// Selector represents a single selector in an RFC 9535 JSONPath query:
// a name, index, slice, wildcard, or filter.
type Selector interface {
	stringWriter

	// Select selects values from current and/or root and returns them.
	Select(current, root any) []any

	// selectLocated selects values from current and/or root and returns
	// them with locations extending loc.
	selectLocated(current, root any, loc *location) []node

	// isSingular returns true for selectors that select at most one value.
	isSingular() bool
}

// Name is an object member name selector, e.g., .name or ['name'], as
// defined by [RFC 9535 Section 2.3.1]. It doubles as the member-name
// element of a [NormalizedPath].
//
// [RFC 9535 Section 2.3.1]: https://www.rfc-editor.org/rfc/rfc9535.html#name-name-selector
type Name string

// isSingular returns true: a name selects a single member value. Defined
// by the [Selector] interface.
func (Name) isSingular() bool { return true }

// String returns the single-quoted representation of n.
func (n Name) String() string {
	buf := new(strings.Builder)
	n.writeTo(buf)
	return buf.String()
}

// writeTo writes the single-quoted representation of n to buf. Defined by
// [stringWriter].
func (n Name) writeTo(buf *strings.Builder) {
	writeQuotedName(buf, string(n))
}

// writeNormalizedTo writes n to buf as a normalized path element,
// ['name']. Defined by [NormalSelector].
func (n Name) writeNormalizedTo(buf *strings.Builder) {
	buf.WriteByte('[')
	writeQuotedName(buf, string(n))
	buf.WriteByte(']')
}

// Select selects member n from input and returns it as a single value in
// a slice. Returns an empty slice if input is not an object or does not
// contain n. Defined by the [Selector] interface.
func (n Name) Select(input, _ any) []any {
	if obj, ok := input.(map[string]any); ok {
		if val, ok := obj[string(n)]; ok {
			return []any{val}
		}
	}
	return nil
}

// selectLocated selects member n from input with its location. Defined by
// the [Selector] interface.
func (n Name) selectLocated(input, _ any, loc *location) []node {
	if obj, ok := input.(map[string]any); ok {
		if val, ok := obj[string(n)]; ok {
			return []node{{val: val, loc: loc.child(n)}}
		}
	}
	return nil
}

// Index is an array index selector, e.g., [3], as defined by [RFC 9535
// Section 2.3.3]. Negative values count from the end of the array. It
// doubles as the array-index element of a [NormalizedPath], where it is
// always non-negative.
//
// [RFC 9535 Section 2.3.3]: https://www.rfc-editor.org/rfc/rfc9535.html#name-index-selector
type Index int64

// isSingular returns true: an index selects a single element. Defined by
// the [Selector] interface.
func (Index) isSingular() bool { return true }

// String returns a string representation of i.
func (i Index) String() string { return strconv.FormatInt(int64(i), 10) }

// writeTo writes a string representation of i to buf. Defined by
// [stringWriter].
func (i Index) writeTo(buf *strings.Builder) {
	buf.WriteString(i.String())
}

// writeNormalizedTo writes i to buf as a normalized path element,
// [index]. Defined by [NormalSelector].
func (i Index) writeNormalizedTo(buf *strings.Builder) {
	buf.WriteByte('[')
	buf.WriteString(strconv.FormatInt(int64(i), 10))
	buf.WriteByte(']')
}

// normalized returns i adjusted for an array of the given length and
// whether the result is in bounds.
func (i Index) normalized(length int) (int, bool) {
	idx := int64(i)
	if idx < 0 {
		idx += int64(length)
	}
	return int(idx), idx >= 0 && idx < int64(length)
}

// Select selects element i from input and returns it as a single value in
// a slice. Returns an empty slice if input is not an array or i is out of
// bounds. Defined by the [Selector] interface.
func (i Index) Select(input, _ any) []any {
	if val, ok := input.([]any); ok {
		if idx, ok := i.normalized(len(val)); ok {
			return []any{val[idx]}
		}
	}
	return nil
}

// selectLocated selects element i from input with its location, recording
// the normalized, non-negative index. Defined by the [Selector]
// interface.
func (i Index) selectLocated(input, _ any, loc *location) []node {
	if val, ok := input.([]any); ok {
		if idx, ok := i.normalized(len(val)); ok {
			return []node{{val: val[idx], loc: loc.child(Index(idx))}}
		}
	}
	return nil
}

// WildcardSelector is a wildcard selector, e.g., * or [*], as defined by
// [RFC 9535 Section 2.3.2]. It selects all members of an object or all
// elements of an array.
//
// [RFC 9535 Section 2.3.2]: https://www.rfc-editor.org/rfc/rfc9535.html#name-wildcard-selector
type WildcardSelector struct{}

// Wildcard returns a [WildcardSelector].
func Wildcard() WildcardSelector { return WildcardSelector{} }

// isSingular returns false: a wildcard may select multiple values.
// Defined by the [Selector] interface.
func (WildcardSelector) isSingular() bool { return false }

// String returns "*".
func (WildcardSelector) String() string { return "*" }

// writeTo writes "*" to buf. Defined by [stringWriter].
func (WildcardSelector) writeTo(buf *strings.Builder) { buf.WriteByte('*') }

// Select selects all values from input and returns them. Returns an
// empty slice if input is not an object or an array. Defined by the
// [Selector] interface.
func (WildcardSelector) Select(input, _ any) []any {
	switch val := input.(type) {
	case []any:
		return val
	case map[string]any:
		vals := make([]any, 0, len(val))
		for _, v := range val {
			vals = append(vals, v)
		}
		return vals
	}
	return nil
}

// selectLocated selects all values from input with their locations.
// Defined by the [Selector] interface.
func (WildcardSelector) selectLocated(input, _ any, loc *location) []node {
	switch val := input.(type) {
	case []any:
		nodes := make([]node, len(val))
		for i, v := range val {
			nodes[i] = node{val: v, loc: loc.child(Index(i))}
		}
		return nodes
	case map[string]any:
		nodes := make([]node, 0, len(val))
		for k, v := range val {
			nodes = append(nodes, node{val: v, loc: loc.child(Name(k))})
		}
		return nodes
	}
	return nil
}

// SliceSelector is an array slice selector, e.g., [0:24:8], as defined by
// [RFC 9535 Section 2.3.4], selecting elements between optional start and
// stop bounds by an optional step.
//
// [RFC 9535 Section 2.3.4]: https://www.rfc-editor.org/rfc/rfc9535.html#name-array-slice-selector
type SliceSelector struct {
	start, stop, step *int64
}

// Slice creates a new [SliceSelector]. Pass up to three values for the
// start, stop, and step arguments, each an int, an int64, or nil for an
// omitted component. Subsequent arguments are ignored.
func Slice(args ...any) SliceSelector {
	var s SliceSelector
	ptrs := []**int64{&s.start, &s.stop, &s.step}
	for i, arg := range args {
		if i >= len(ptrs) {
			break
		}
		switch arg := arg.(type) {
		case int:
			v := int64(arg)
			*ptrs[i] = &v
		case int64:
			v := arg
			*ptrs[i] = &v
		case nil:
			// Omitted component.
		default:
			panic("jsonpath: slice bounds must be integers or nil")
		}
	}
	return s
}

// isSingular returns false: a slice may select multiple values. Defined
// by the [Selector] interface.
func (SliceSelector) isSingular() bool { return false }

// Start returns the start of the slice and whether it was specified.
func (s SliceSelector) Start() (int64, bool) {
	if s.start == nil {
		return 0, false
	}
	return *s.start, true
}

// Stop returns the stop bound of the slice and whether it was specified.
func (s SliceSelector) Stop() (int64, bool) {
	if s.stop == nil {
		return 0, false
	}
	return *s.stop, true
}

// Step returns the step of the slice, defaulting to 1 when unspecified.
func (s SliceSelector) Step() int64 {
	if s.step == nil {
		return 1
	}
	return *s.step
}

// String returns a string representation of s.
func (s SliceSelector) String() string {
	buf := new(strings.Builder)
	s.writeTo(buf)
	return buf.String()
}

// writeTo writes a string representation of s to buf as
// start:stop:step, rendering omitted bounds as empty and an omitted step
// as 1. Defined by [stringWriter].
func (s SliceSelector) writeTo(buf *strings.Builder) {
	if s.start != nil {
		buf.WriteString(strconv.FormatInt(*s.start, 10))
	}
	buf.WriteByte(':')
	if s.stop != nil {
		buf.WriteString(strconv.FormatInt(*s.stop, 10))
	}
	buf.WriteByte(':')
	buf.WriteString(strconv.FormatInt(s.Step(), 10))
}

// bounds returns the iteration bounds and step for an array of the given
// length, following the Python slice semantics specified by RFC 9535
// §2.3.4.2. For a positive step, iterate lower <= i < upper; for a
// negative step, iterate upper >= i > lower.
func (s SliceSelector) bounds(length int) (lower, upper, step int64) {
	n := int64(length)
	step = s.Step()

	normalize := func(i int64) int64 {
		if i < 0 {
			return n + i
		}
		return i
	}
	clamp := func(i, lo, hi int64) int64 {
		return max(min(i, hi), lo)
	}

	switch {
	case step > 0:
		start, stop := int64(0), n
		if s.start != nil {
			start = normalize(*s.start)
		}
		if s.stop != nil {
			stop = normalize(*s.stop)
		}
		return clamp(start, 0, n), clamp(stop, 0, n), step
	case step < 0:
		start, stop := n-1, int64(-1)
		if s.start != nil {
			start = normalize(*s.start)
		}
		if s.stop != nil {
			stop = normalize(*s.stop)
		}
		return clamp(stop, -1, n-1), clamp(start, -1, n-1), step
	default:
		return 0, 0, 0
	}
}

// Select selects the elements of input at the indexes specified by s and
// returns them. Returns an empty slice if input is not an array or the
// step is zero. Defined by the [Selector] interface.
func (s SliceSelector) Select(input, _ any) []any {
	val, ok := input.([]any)
	if !ok {
		return nil
	}
	lower, upper, step := s.bounds(len(val))
	var res []any
	switch {
	case step > 0:
		for i := lower; i < upper; i += step {
			res = append(res, val[i])
		}
	case step < 0:
		for i := upper; i > lower; i += step {
			res = append(res, val[i])
		}
	}
	return res
}

// selectLocated selects the elements of input at the indexes specified by
// s, with their locations. Defined by the [Selector] interface.
func (s SliceSelector) selectLocated(input, _ any, loc *location) []node {
	val, ok := input.([]any)
	if !ok {
		return nil
	}
	lower, upper, step := s.bounds(len(val))
	var res []node
	switch {
	case step > 0:
		for i := lower; i < upper; i += step {
			res = append(res, node{val: val[i], loc: loc.child(Index(i))})
		}
	case step < 0:
		for i := upper; i > lower; i += step {
			res = append(res, node{val: val[i], loc: loc.child(Index(i))})
		}
	}
	return res
}
