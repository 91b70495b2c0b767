package spec

import "strings"

// Segment represents a single segment as defined in [RFC 9535 Section
// 1.4.2]: an ordered list of [Selector] values applied either to the
// children of each input node or, for descendant segments, to every node
// in the self-and-descendants visit of each input.
//
// [RFC 9535 Section 1.4.2]: https://www.rfc-editor.org/rfc/rfc9535.html#name-segments
type Segment struct {
	selectors  []Selector
	descendant bool
}

// Child creates and returns a child [Segment] that applies sel to the
// values selected by the previous segment.
func Child(sel ...Selector) *Segment {
	return &Segment{selectors: sel}
}

// Descendant creates and returns a descendant [Segment] that applies sel
// to every value reachable from the values selected by the previous
// segment, in pre-order, self first.
func Descendant(sel ...Selector) *Segment {
	return &Segment{selectors: sel, descendant: true}
}

// Selectors returns s's [Selector] values.
func (s *Segment) Selectors() []Selector {
	return s.selectors
}

// IsDescendant returns true if s is a descendant segment.
func (s *Segment) IsDescendant() bool { return s.descendant }

// isSingular returns true if the segment selects at most one node: a
// child segment with exactly one name or index selector.
func (s *Segment) isSingular() bool {
	if s.descendant || len(s.selectors) != 1 {
		return false
	}
	return s.selectors[0].isSingular()
}

// String returns a string representation of s: the selectors joined by
// ", " inside brackets, prefixed with ".." for a descendant segment.
func (s *Segment) String() string {
	buf := new(strings.Builder)
	s.writeTo(buf)
	return buf.String()
}

// writeTo writes a string representation of s to buf. Defined by
// [stringWriter].
func (s *Segment) writeTo(buf *strings.Builder) {
	if s.descendant {
		buf.WriteString("..")
	}
	buf.WriteByte('[')
	for i, sel := range s.selectors {
		if i > 0 {
			buf.WriteString(", ")
		}
		sel.writeTo(buf)
	}
	buf.WriteByte(']')
}

// Select selects and returns the values s's selectors yield from current,
// in selector order. For a descendant segment the selectors apply to
// every node of the self-and-descendants visit of current, self first.
func (s *Segment) Select(current, root any) []any {
	var ret []any
	for _, sel := range s.selectors {
		ret = append(ret, sel.Select(current, root)...)
	}
	if s.descendant {
		ret = append(ret, s.descend(current, root)...)
	}
	return ret
}

// descend applies s's selectors to each child of current and its
// descendants, recursively, in pre-order.
func (s *Segment) descend(current, root any) []any {
	var ret []any
	switch val := current.(type) {
	case []any:
		for _, v := range val {
			ret = append(ret, s.Select(v, root)...)
		}
	case map[string]any:
		for _, v := range val {
			ret = append(ret, s.Select(v, root)...)
		}
	}
	return ret
}

// selectLocated is the location-tracking form of [Segment.Select].
func (s *Segment) selectLocated(current, root any, loc *location) []node {
	var ret []node
	for _, sel := range s.selectors {
		ret = append(ret, sel.selectLocated(current, root, loc)...)
	}
	if s.descendant {
		ret = append(ret, s.descendLocated(current, root, loc)...)
	}
	return ret
}

// descendLocated is the location-tracking form of [Segment.descend].
func (s *Segment) descendLocated(current, root any, loc *location) []node {
	var ret []node
	switch val := current.(type) {
	case []any:
		for i, v := range val {
			ret = append(ret, s.selectLocated(v, root, loc.child(Index(i)))...)
		}
	case map[string]any:
		for k, v := range val {
			ret = append(ret, s.selectLocated(v, root, loc.child(Name(k)))...)
		}
	}
	return ret
}
