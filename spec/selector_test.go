package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectorInterface(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name string
		sel  any
	}{
		{"name", Name("hi")},
		{"index", Index(42)},
		{"slice", Slice()},
		{"wildcard", Wildcard()},
		{"filter", Filter(Literal(nil))},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Implements(t, (*Selector)(nil), tc.sel)
		})
	}
}

func TestSelectorString(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name string
		sel  Selector
		str  string
		sing bool
	}{
		{"name", Name("hi"), `'hi'`, true},
		{"name_space", Name("hi there"), `'hi there'`, true},
		{"name_quote", Name("it's"), `'it\'s'`, true},
		{"name_backslash", Name(`a\b`), `'a\\b'`, true},
		{"name_newline", Name("a\nb"), `'a\nb'`, true},
		{"name_control", Name("a\x01b"), `'a\u0001b'`, true},
		{"name_unicode", Name("héllo"), `'héllo'`, true},
		{"index", Index(42), "42", true},
		{"index_negative", Index(-1), "-1", true},
		{"slice_defaults", Slice(), "::1", false},
		{"slice_start", Slice(2), "2::1", false},
		{"slice_start_stop", Slice(1, 4), "1:4:1", false},
		{"slice_full", Slice(1, 10, 2), "1:10:2", false},
		{"slice_negative_step", Slice(nil, nil, -1), "::-1", false},
		{"wildcard", Wildcard(), "*", false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.str, tc.sel.String())
			assert.Equal(t, tc.sing, tc.sel.isSingular())
		})
	}
}

func TestNameSelect(t *testing.T) {
	t.Parallel()

	obj := map[string]any{"a": float64(1), "b": "two"}

	assert.Equal(t, []any{float64(1)}, Name("a").Select(obj, nil))
	assert.Equal(t, []any{"two"}, Name("b").Select(obj, nil))
	assert.Empty(t, Name("c").Select(obj, nil))
	assert.Empty(t, Name("a").Select([]any{1, 2}, nil))
	assert.Empty(t, Name("a").Select("scalar", nil))

	nodes := Name("a").selectLocated(obj, nil, nil)
	if assert.Len(t, nodes, 1) {
		assert.Equal(t, float64(1), nodes[0].val)
		assert.Equal(t, "$['a']", nodes[0].loc.path().String())
	}
}

func TestIndexSelect(t *testing.T) {
	t.Parallel()

	arr := []any{"a", "b", "c"}

	for _, tc := range []struct {
		name string
		idx  Index
		want []any
		path string
	}{
		{"zero", Index(0), []any{"a"}, "$[0]"},
		{"middle", Index(1), []any{"b"}, "$[1]"},
		{"last", Index(2), []any{"c"}, "$[2]"},
		{"negative", Index(-1), []any{"c"}, "$[2]"},
		{"negative_first", Index(-3), []any{"a"}, "$[0]"},
		{"out_of_range", Index(3), nil, ""},
		{"negative_out_of_range", Index(-4), nil, ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.idx.Select(arr, nil))

			nodes := tc.idx.selectLocated(arr, nil, nil)
			if tc.want == nil {
				assert.Empty(t, nodes)
				return
			}
			if assert.Len(t, nodes, 1) {
				// Negative indexes normalize in the recorded path.
				assert.Equal(t, tc.path, nodes[0].loc.path().String())
			}
		})
	}

	assert.Empty(t, Index(0).Select(map[string]any{"0": 1}, nil))
}

func TestSliceSelect(t *testing.T) {
	t.Parallel()

	arr := []any{1, 2, 3, 4, 5}

	for _, tc := range []struct {
		name string
		sel  SliceSelector
		want []any
	}{
		{"all_defaults", Slice(), []any{1, 2, 3, 4, 5}},
		{"start_stop", Slice(1, 4), []any{2, 3, 4}},
		{"stop_overrun", Slice(2, 100), []any{3, 4, 5}},
		{"negative_start", Slice(-2), []any{4, 5}},
		{"negative_stop", Slice(nil, -2), []any{1, 2, 3}},
		{"step_two", Slice(nil, nil, 2), []any{1, 3, 5}},
		{"reverse", Slice(nil, nil, -1), []any{5, 4, 3, 2, 1}},
		{"reverse_bounded", Slice(3, 0, -1), []any{4, 3, 2}},
		{"reverse_step_two", Slice(nil, nil, -2), []any{5, 3, 1}},
		{"step_zero", Slice(nil, nil, 0), nil},
		{"empty_range", Slice(3, 1), nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.sel.Select(arr, nil))
		})
	}

	assert.Empty(t, Slice().Select(map[string]any{"a": 1}, nil))
	assert.Empty(t, Slice().Select([]any{}, nil))

	nodes := Slice(1, 3).selectLocated(arr, nil, nil)
	if assert.Len(t, nodes, 2) {
		assert.Equal(t, "$[1]", nodes[0].loc.path().String())
		assert.Equal(t, "$[2]", nodes[1].loc.path().String())
	}
}

func TestWildcardSelect(t *testing.T) {
	t.Parallel()

	arr := []any{1, 2, 3}
	assert.Equal(t, []any{1, 2, 3}, Wildcard().Select(arr, nil))

	obj := map[string]any{"a": 1}
	assert.Equal(t, []any{1}, Wildcard().Select(obj, nil))

	assert.Empty(t, Wildcard().Select("scalar", nil))
	assert.Empty(t, Wildcard().Select(nil, nil))

	nodes := Wildcard().selectLocated(arr, nil, nil)
	if assert.Len(t, nodes, 3) {
		assert.Equal(t, "$[0]", nodes[0].loc.path().String())
		assert.Equal(t, "$[2]", nodes[2].loc.path().String())
	}
}

func TestSliceAccessors(t *testing.T) {
	t.Parallel()

	s := Slice(1, 4, 2)
	start, ok := s.Start()
	assert.True(t, ok)
	assert.Equal(t, int64(1), start)
	stop, ok := s.Stop()
	assert.True(t, ok)
	assert.Equal(t, int64(4), stop)
	assert.Equal(t, int64(2), s.Step())

	s = Slice()
	_, ok = s.Start()
	assert.False(t, ok)
	_, ok = s.Stop()
	assert.False(t, ok)
	assert.Equal(t, int64(1), s.Step())

	assert.Panics(t, func() { Slice("nope") })
}
