package spec

import "strings"

// PathQuery represents a JSONPath query: an ordered sequence of segments
// rooted at either the query argument ($) or, inside filter expressions,
// the current node (@).
type PathQuery struct {
	segments []*Segment
	root     bool
}

// Query returns a new query consisting of segments. Pass true for root
// for a query rooted at $ and false for a filter-relative query rooted
// at @.
func Query(root bool, segments []*Segment) *PathQuery {
	return &PathQuery{root: root, segments: segments}
}

// Segments returns q's segments.
func (q *PathQuery) Segments() []*Segment {
	return q.segments
}

// String returns the canonical representation of q.
func (q *PathQuery) String() string {
	buf := new(strings.Builder)
	q.writeTo(buf)
	return buf.String()
}

// writeTo writes the canonical representation of q to buf. Defined by
// [stringWriter].
func (q *PathQuery) writeTo(buf *strings.Builder) {
	if q.root {
		buf.WriteByte('$')
	} else {
		buf.WriteByte('@')
	}
	for _, s := range q.segments {
		s.writeTo(buf)
	}
}

// IsSingular returns true if q is a singular query: every segment is a
// child segment with exactly one name or index selector. A singular query
// selects at most one node from any input.
func (q *PathQuery) IsSingular() bool {
	for _, s := range q.segments {
		if !s.isSingular() {
			return false
		}
	}
	return true
}

// Select executes q against current (for relative queries) or root and
// returns the selected values in order. Returns the seed value itself if
// q has no segments.
func (q *PathQuery) Select(current, root any) []any {
	res := []any{current}
	if q.root {
		res[0] = root
	}
	for _, seg := range q.segments {
		var segRes []any
		for _, v := range res {
			segRes = append(segRes, seg.Select(v, root)...)
		}
		res = segRes
	}
	return res
}

// SelectLocated executes q against current or root and returns the
// selected values paired with their normalized paths, in order. Location
// spines are shared across siblings during the walk; paths materialize
// only in the returned nodes.
func (q *PathQuery) SelectLocated(current, root any) NodeList {
	seed := current
	if q.root {
		seed = root
	}
	nodes := []node{{val: seed}}
	for _, seg := range q.segments {
		var segRes []node
		for _, n := range nodes {
			segRes = append(segRes, seg.selectLocated(n.val, root, n.loc)...)
		}
		nodes = segRes
	}

	list := make(NodeList, len(nodes))
	for i, n := range nodes {
		list[i] = newLocatedNode(n.loc, n.val)
	}
	return list
}
