package spec

import (
	"cmp"
	"strings"
)

// NormalSelector represents a single element of a normalized path: an
// object member name or an array index. Implemented by [Name] and
// [Index].
type NormalSelector interface {
	// writeNormalizedTo writes the element to buf formatted as a
	// [normalized path] element.
	//
	// [normalized path]: https://www.rfc-editor.org/rfc/rfc9535#section-2.7
	writeNormalizedTo(buf *strings.Builder)
}

// NormalizedPath represents the location of a single value in a JSON
// query argument, as [defined by RFC 9535]: `$` followed by `['name']`
// for object-member steps and `[index]` for array-element steps.
//
// [defined by RFC 9535]: https://www.rfc-editor.org/rfc/rfc9535#name-normalized-paths
type NormalizedPath []NormalSelector

// String returns the string representation of np.
func (np NormalizedPath) String() string {
	buf := new(strings.Builder)
	buf.WriteByte('$')
	for _, e := range np {
		e.writeNormalizedTo(buf)
	}
	return buf.String()
}

// Compare compares np to np2 element by element and returns -1 if np
// sorts before np2, 1 if it sorts after, and 0 if they're equal. Indexes
// sort before names.
func (np NormalizedPath) Compare(np2 NormalizedPath) int {
	for i := range np {
		if i >= len(np2) {
			return 1
		}
		switch v1 := np[i].(type) {
		case Name:
			switch v2 := np2[i].(type) {
			case Name:
				if x := cmp.Compare(v1, v2); x != 0 {
					return x
				}
			case Index:
				return 1
			}
		case Index:
			switch v2 := np2[i].(type) {
			case Index:
				if x := cmp.Compare(v1, v2); x != 0 {
					return x
				}
			case Name:
				return -1
			}
		}
	}

	if len(np2) > len(np) {
		return -1
	}
	return 0
}

// MarshalText marshals np into text. Implements [encoding.TextMarshaler].
func (np NormalizedPath) MarshalText() ([]byte, error) {
	return []byte(np.String()), nil
}

// location is a reverse-linked list of path elements. Sibling nodes share
// their parent's spine, so extending a location during descent allocates
// one cell; the normalized path is materialized only when a result node is
// constructed.
type location struct {
	parent *location
	sel    NormalSelector
}

// child returns a new location extending loc by sel.
func (loc *location) child(sel NormalSelector) *location {
	return &location{parent: loc, sel: sel}
}

// path materializes loc as a NormalizedPath.
func (loc *location) path() NormalizedPath {
	depth := 0
	for l := loc; l != nil; l = l.parent {
		depth++
	}
	np := make(NormalizedPath, depth)
	for l := loc; l != nil; l = l.parent {
		depth--
		np[depth] = l.sel
	}
	return np
}

// LocatedNode pairs a value selected from a JSON query argument with the
// normalized path that uniquely identifies its location.
type LocatedNode struct {
	// Node is the value selected from a JSON query argument.
	Node any `json:"node"`

	// Path is the normalized path identifying the location of Node.
	Path NormalizedPath `json:"path"`
}

// newLocatedNode creates a new [LocatedNode], materializing the
// normalized path for loc.
func newLocatedNode(loc *location, node any) *LocatedNode {
	return &LocatedNode{Node: node, Path: loc.path()}
}

// NodeList is the ordered result of a query applied to a JSON value.
// Empty when the query selects nothing.
type NodeList []*LocatedNode

// Values returns the value of each node in list, in order.
func (list NodeList) Values() []any {
	vals := make([]any, len(list))
	for i, n := range list {
		vals[i] = n.Node
	}
	return vals
}

// Paths returns the normalized path of each node in list, in order.
func (list NodeList) Paths() []NormalizedPath {
	paths := make([]NormalizedPath, len(list))
	for i, n := range list {
		paths[i] = n.Path
	}
	return paths
}

// node pairs a value with its shared-spine location during evaluation.
// Locations are materialized into [LocatedNode] values only when a query
// returns.
type node struct {
	val any
	loc *location
}
