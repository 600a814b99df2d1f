package ngram

import (
	"slices"
	"testing"

	"langid/internal/core/normalize"
	"langid/internal/core/script"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T, s string) normalize.Sample {
	t.Helper()
	out, err := normalize.New().Normalize(&s)
	require.NoError(t, err)
	return out
}

func texts(gs []Gram) []string {
	out := make([]string, len(gs))
	for i, g := range gs {
		out[i] = g.Text
	}
	return out
}

func TestExtract_PaddedTrigrams(t *testing.T) {
	gs := slices.Collect(Extract(sample(t, "Hello, world"), 3))
	assert.Equal(t, []string{" he", "hel", "ell", "llo", "lo ", " wo", "wor", "orl", "rld", "ld "}, texts(gs))

	assert.Equal(t, 5, gs[0].Letters)
	assert.Zero(t, gs[1].Letters)
	assert.Equal(t, 5, gs[5].Letters)
	assert.Equal(t, 0, gs[0].Word)
	assert.Equal(t, 1, gs[5].Word)
	for _, g := range gs {
		assert.Equal(t, script.Latin, g.Script)
		assert.Equal(t, KeyOf(g.Text), g.Key)
	}
}

func TestExtract_Offsets(t *testing.T) {
	gs := slices.Collect(Extract(sample(t, "hi yo"), 3))
	require.Len(t, gs, 4)
	assert.Equal(t, []int{0, 0, 2, 3}, []int{gs[0].Offset, gs[1].Offset, gs[2].Offset, gs[3].Offset})
}

func TestExtract_ScriptChangeSplitsWord(t *testing.T) {
	gs := slices.Collect(Extract(sample(t, "abcабв"), 3))
	require.Len(t, gs, 6)
	assert.Equal(t, "bc ", gs[2].Text)
	assert.Equal(t, " аб", gs[3].Text)
	assert.Equal(t, script.Cyrillic, gs[3].Script)
	assert.Equal(t, 3, gs[3].Letters)
	assert.Equal(t, 1, gs[3].Word)
}

func TestExtract_MarksStayAttached(t *testing.T) {
	gs := slices.Collect(Extract(sample(t, "भाइयों"), 3))
	require.Len(t, gs, 6)
	assert.Equal(t, 3, gs[0].Letters, "vowel signs are not letters")
	for _, g := range gs {
		assert.Equal(t, 0, g.Word)
		assert.Equal(t, script.Devanagari, g.Script)
	}
}

func TestExtract_Degenerate(t *testing.T) {
	gs := slices.Collect(Extract(sample(t, "a"), 3))
	require.Len(t, gs, 1)
	assert.Equal(t, " a ", gs[0].Text)

	gs = slices.Collect(Extract(sample(t, "a"), 5))
	require.Len(t, gs, 1, "short padded words yield one whole gram")
	assert.Equal(t, " a ", gs[0].Text)
	assert.Equal(t, 1, gs[0].Letters)
}

func TestExtract_NoLetters(t *testing.T) {
	assert.Zero(t, Count(sample(t, "12345 !!! ???"), 3))
	assert.Zero(t, Count(sample(t, ""), 3))
	assert.Zero(t, Count(sample(t, "\u0301\u0301"), 3), "a leading mark is not a word")
}

func TestExtract_StopsEarly(t *testing.T) {
	n := 0
	for range Extract(sample(t, "one two three four"), 3) {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestExtract_BoundedByInput(t *testing.T) {
	s := sample(t, "The weather was very nice yesterday and we walked in the park.")
	letters, words := 0, 0
	for g := range Extract(s, 3) {
		if g.Letters > 0 {
			letters += g.Letters
			words++
		}
	}
	assert.LessOrEqual(t, Count(s, 3), letters+words)
	assert.Equal(t, 12, words)
}

func TestExtract_SentenceStarts(t *testing.T) {
	gs := slices.Collect(Extract(sample(t, "Hi there. Ok, so... yes? 好。好"), 3))
	var starts []string
	for _, g := range gs {
		if g.Sentence {
			starts = append(starts, g.Text)
			assert.Positive(t, g.Letters, "only a word's first window is marked")
		}
	}
	assert.Equal(t, []string{" ok", " ye", " 好 ", " 好 "}, starts)
	assert.False(t, gs[0].Sentence, "the first word has nothing before it")
}
