package normalize

import (
	"strings"
	"testing"

	perr "langid/internal/platform/errors"
	kit "langid/internal/platform/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test table covers each stage and combined pipelines.
func TestNormalize_Table(t *testing.T) {
	n := New()

	tests := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "identity ascii",
			in:   "hello world",
			out:  "hello world",
		},
		{
			name: "utf8 repair replaces each invalid run once",
			in:   string([]byte{0xff, 0xfe, 'f', 'o', 'o', 0x80, ' ', 'b', 'a', 'r'}),
			out:  "�foo� bar",
		},
		{
			name: "case fold",
			in:   "HeLLo",
			out:  "hello",
		},
		{
			name: "remove zero-width format chars",
			in:   "ha\u200dus\ufeff",
			out:  "haus",
		},
		{
			name: "combining marks are kept and composed",
			in:   "cafe\u0301",
			out:  "café",
		},
		{
			name: "devanagari vowel signs survive",
			in:   "भाइयों",
			out:  "भाइयों",
		},
		{
			name: "width fold fullwidth",
			in:   "ＨＥＬＬＯ there",
			out:  "hello there",
		},
		{
			name: "nfkc ligature",
			in:   "oﬃce",
			out:  "office",
		},
		{
			name: "controls stripped",
			in:   "a\x00b\x7fc\u0085d",
			out:  "abcd",
		},
		{
			name: "collapse whitespace",
			in:   " \t a\t\tb\nc   d \r\n ",
			out:  "a b c d",
		},
		{
			name: "digits and punctuation survive",
			in:   "12345 !!! ???",
			out:  "12345 !!! ???",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := n.Text(tc.in)
			assert.Equal(t, tc.out, got)
			assert.Equal(t, got, n.Text(got), "normalizing again should be identical")
		})
	}
}

func TestNormalize_AbsentAndEmpty(t *testing.T) {
	n := New()

	_, err := n.Normalize(nil)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeInvalidArgument), "nil text err = %v", err)
	_, err = n.NormalizeBytes(nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	s, err := n.Normalize(kit.Ptr(""))
	require.NoError(t, err)
	assert.True(t, s.Empty())
	assert.Zero(t, s.SourceBytes)

	s, err = n.NormalizeBytes([]byte{})
	require.NoError(t, err)
	assert.True(t, s.Empty())
}

func TestNormalize_SampleAccounting(t *testing.T) {
	n := New()
	raw := []byte{'o', 'k', 0xc3, ' ', 0xff, 0xff, 'x'}
	s, err := n.NormalizeBytes(raw)
	require.NoError(t, err)
	assert.Equal(t, len(raw), s.SourceBytes)
	assert.Equal(t, 2, s.Repaired)
	assert.Equal(t, len([]rune(s.String())), s.Len())
	assert.Contains(t, s.String(), "�")
}

func TestSanitize(t *testing.T) {
	clean := "plain text\twith\nbreaks"
	got, n := Sanitize(clean)
	assert.Equal(t, clean, got)
	assert.Zero(t, n)

	got, n = Sanitize("a\x01\xffb\x02\xffc")
	assert.Equal(t, "a�b�c", got)
	assert.Equal(t, 2, n)
}

func TestCollapseSpaces(t *testing.T) {
	assert.Equal(t, "a b c", collapseSpaces(" \t a \n b   c \r\n "))
}

func TestStripMarkup(t *testing.T) {
	cases := []struct {
		name, in, want string
	}{
		{"plain passes through", "no markup here", "no markup here"},
		{"entities decoded", "caf&eacute; &amp; cr&egrave;me", "café & crème"},
		{"script and style dropped", "<style>p{}</style><p>bonjour</p><script>var x = 1</script>", "bonjour"},
		{"inline keeps words", "<p>he<b>llo</b> world</p>", "hello world"},
		{"blocks separate", "<div>one</div><div>two</div>", "one  two"},
		{"img alt", `<p>see <img alt="the sea"></p>`, "see  the sea"},
		{"comments dropped", "<!-- hidden -->shown", "shown"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, StripMarkup(c.in))
		})
	}

	out := StripMarkup("<html><head><title>x</title></head><body><p>Guten Tag</p></body></html>")
	assert.Equal(t, "Guten Tag", strings.TrimSpace(out))
}
