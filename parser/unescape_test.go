package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnescape(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name  string
		in    string
		quote rune
		out   string
	}{
		{"plain", "abc", '\'', "abc"},
		{"empty", "", '\'', ""},
		{"unicode_passthrough", "héllo ☺", '"', "héllo ☺"},
		{"named_escapes", `a\b\f\n\r\t\/\\z`, '"', "a\b\f\n\r\t/\\z"},
		{"quote_single", `don\'t`, '\'', "don't"},
		{"quote_double", `say \"hi\"`, '"', `say "hi"`},
		{"unicode_escape", `fo\u00f8`, '"', "foø"},
		{"unicode_uppercase_hex", `\u00D8`, '"', "Ø"},
		{"surrogate_pair", `\uD83D\uDE00`, '"', "\U0001f600"},
		{"bmp_code_point", `\u263a`, '"', "☺"},
		{"escaped_control", `\u0007`, '"', "\a"},
		{"mixed", `abcA\td`, '"', "abcA\td"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			out, err := unescape(tc.in, tc.quote, 0)
			require.Nil(t, err)
			assert.Equal(t, tc.out, out)
		})
	}
}

func TestUnescapeErrors(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name  string
		in    string
		quote rune
		msg   string
	}{
		{"trailing_backslash", `abc\`, '\'', "invalid escape"},
		{"unknown_escape", `\q`, '"', "invalid escape"},
		{"wrong_quote_escape", `\"`, '\'', "invalid escape"},
		{"short_hex", `\u00f`, '"', `invalid \uXXXX escape`},
		{"bad_hex", `\u00fg`, '"', `invalid \uXXXX escape`},
		{"lone_high_surrogate", `\ud83d`, '"', `invalid \uXXXX escape`},
		{"lone_low_surrogate", `\ude00`, '"', `invalid \uXXXX escape`},
		{"high_surrogate_then_text", `\ud83dxx`, '"', `invalid \uXXXX escape`},
		{"high_surrogate_bad_low", `\ud83dA`, '"', `invalid \uXXXX escape`},
		{"raw_control", "a\x01b", '"', "invalid character"},
		{"raw_newline", "a\nb", '"', "invalid character"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := unescape(tc.in, tc.quote, 0)
			require.NotNil(t, err)
			assert.Equal(t, SyntaxError, err.Kind())
			assert.Equal(t, tc.msg, err.Message())
		})
	}
}

func TestUnescapeSpans(t *testing.T) {
	t.Parallel()

	// Escape error spans are offset into the query string.
	_, err := unescape(`ab\q`, '"', 10)
	require.NotNil(t, err)
	start, end := err.Span()
	assert.Equal(t, 12, start)
	assert.Equal(t, 14, end)
}
