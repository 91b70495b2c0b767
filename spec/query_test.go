package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryString(t *testing.T) {
	t.Parallel()

	q := Query(true, []*Segment{Child(Name("a")), Child(Index(1))})
	assert.Equal(t, "$['a'][1]", q.String())
	assert.Len(t, q.Segments(), 2)

	rel := Query(false, []*Segment{Child(Name("a"))})
	assert.Equal(t, "@['a']", rel.String())
}

func TestQueryIsSingular(t *testing.T) {
	t.Parallel()

	assert.True(t, Query(true, nil).IsSingular())
	assert.True(t, Query(true, []*Segment{Child(Name("a")), Child(Index(0))}).IsSingular())
	assert.False(t, Query(true, []*Segment{Child(Wildcard())}).IsSingular())
	assert.False(t, Query(true, []*Segment{Descendant(Name("a"))}).IsSingular())
	assert.False(t, Query(true, []*Segment{Child(Name("a"), Index(0))}).IsSingular())
}

func TestQuerySelect(t *testing.T) {
	t.Parallel()

	doc := map[string]any{"a": []any{float64(1), float64(2), float64(3)}}

	q := Query(true, []*Segment{Child(Name("a")), Child(Index(1))})
	assert.Equal(t, []any{float64(2)}, q.Select(nil, doc))

	located := q.SelectLocated(nil, doc)
	if assert.Len(t, located, 1) {
		assert.Equal(t, float64(2), located[0].Node)
		assert.Equal(t, "$['a'][1]", located[0].Path.String())
	}

	// An empty query selects its seed.
	assert.Equal(t, []any{doc}, Query(true, nil).Select(nil, doc))
	rootOnly := Query(true, nil).SelectLocated(nil, doc)
	if assert.Len(t, rootOnly, 1) {
		assert.Equal(t, "$", rootOnly[0].Path.String())
	}

	// A relative query seeds from current.
	rel := Query(false, []*Segment{Child(Index(0))})
	assert.Equal(t, []any{float64(1)}, rel.Select([]any{float64(1)}, doc))
}

func TestQuerySlices(t *testing.T) {
	t.Parallel()

	doc := map[string]any{"a": []any{
		float64(1), float64(2), float64(3), float64(4), float64(5),
	}}

	for _, tc := range []struct {
		name string
		sel  Selector
		want []any
	}{
		{"middle", Slice(1, 4), []any{float64(2), float64(3), float64(4)}},
		{"reverse", Slice(nil, nil, -1), []any{float64(5), float64(4), float64(3), float64(2), float64(1)}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			q := Query(true, []*Segment{Child(Name("a")), Child(tc.sel)})
			assert.Equal(t, tc.want, q.Select(nil, doc))
		})
	}
}

// Slice results agree with an index-by-index walk using the same bounds,
// mirroring Python list slicing semantics.
func TestSliceSymmetry(t *testing.T) {
	t.Parallel()

	arr := make([]any, 7)
	for i := range arr {
		arr[i] = float64(i)
	}

	for _, sel := range []SliceSelector{
		Slice(),
		Slice(2),
		Slice(nil, 3),
		Slice(1, 6, 2),
		Slice(nil, nil, -1),
		Slice(5, 1, -2),
		Slice(-2, nil),
		Slice(nil, -4),
		Slice(-100, 100),
		Slice(100, -100, -1),
	} {
		t.Run(sel.String(), func(t *testing.T) {
			t.Parallel()
			var want []any
			lower, upper, step := sel.bounds(len(arr))
			switch {
			case step > 0:
				for i := lower; i < upper; i += step {
					want = append(want, arr[i])
				}
			case step < 0:
				for i := upper; i > lower; i += step {
					want = append(want, arr[i])
				}
			}
			assert.Equal(t, want, sel.Select(arr, nil))
		})
	}
}

func TestQueryDeterminism(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"a": []any{
			map[string]any{"n": float64(1)},
			map[string]any{"n": float64(2)},
			map[string]any{"n": float64(3)},
		},
	}

	q := Query(true, []*Segment{Descendant(Name("n"))})
	first := q.SelectLocated(nil, doc)
	for range 10 {
		again := q.SelectLocated(nil, doc)
		require.Equal(t, first, again)
	}
}

func TestFilterPartition(t *testing.T) {
	t.Parallel()

	doc := []any{
		map[string]any{"n": float64(1)},
		map[string]any{"n": float64(2)},
		map[string]any{"n": float64(3)},
	}

	// F and !F partition the array.
	cmp := Comparison(
		FilterQuery(Query(false, []*Segment{Child(Name("n"))})),
		GreaterThan,
		Literal(int64(1)),
	)
	matched := Query(true, []*Segment{Child(Filter(cmp))}).Select(nil, doc)
	unmatched := Query(true, []*Segment{Child(Filter(Not(cmp)))}).Select(nil, doc)
	all := Query(true, []*Segment{Child(Wildcard())}).Select(nil, doc)

	assert.Len(t, matched, 2)
	assert.Len(t, unmatched, 1)
	assert.ElementsMatch(t, all, append(append([]any{}, matched...), unmatched...))
}
