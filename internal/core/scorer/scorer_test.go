package scorer

import (
	"testing"

	"langid/internal/core/langmodel"
	"langid/internal/core/ngram"
	"langid/internal/core/normalize"
	"langid/internal/core/script"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*langmodel.Model, *Scorer) {
	t.Helper()
	m, err := langmodel.Load()
	require.NoError(t, err)
	return m, New(m)
}

func score(t *testing.T, s *Scorer, text string, opts Options) Tally {
	t.Helper()
	sample, err := normalize.New().Normalize(&text)
	require.NoError(t, err)
	return s.Score(ngram.Extract(sample, s.Model().Width), opts)
}

// letters maps language codes to their evidence, skipping zeros
func letters(m *langmodel.Model, t Tally) map[string]int {
	out := map[string]int{}
	for i, n := range t.Letters {
		if n > 0 {
			out[m.Language(langmodel.LangID(i)).Code] = n
		}
	}
	return out
}

func id(t *testing.T, m *langmodel.Model, code string) langmodel.LangID {
	t.Helper()
	l, ok := m.ByCode(code)
	require.True(t, ok, code)
	return l.ID
}

func TestScore_SingleLanguage(t *testing.T) {
	m, s := setup(t)
	tl := score(t, s, "Hello, how are you today?", Options{})

	assert.Equal(t, map[string]int{"en": 19}, letters(m, tl))
	assert.Zero(t, tl.Unknown)
	assert.Equal(t, 1, tl.Chunks)
	assert.Equal(t, 19, tl.Total())
	assert.Equal(t, script.Latin, tl.Scripts.Dominant())

	en, fr := id(t, m, "en"), id(t, m, "fr")
	assert.Less(t, tl.LogScore(en), 0.0)
	assert.Greater(t, tl.LogScore(en), tl.LogScore(fr))
	assert.Zero(t, tl.LogScore(id(t, m, "el")), "direct scripts are never n-gram scored")
}

func TestScore_ThinMarginSplitsLetters(t *testing.T) {
	m, s := setup(t)
	assert.Equal(t, map[string]int{"ru": 5, "uk": 5}, letters(m, score(t, s, "Добрий день", Options{})))
	assert.Equal(t, map[string]int{"es": 2, "pt": 2}, letters(m, score(t, s, "casa", Options{})))
}

func TestScore_HintBoost(t *testing.T) {
	m, s := setup(t)
	tl := score(t, s, "Добрий день", Options{Hints: []langmodel.LangID{id(t, m, "uk")}})
	assert.Equal(t, map[string]int{"uk": 10}, letters(m, tl))

	tl = score(t, s, "casa", Options{Hints: []langmodel.LangID{id(t, m, "pt")}})
	assert.Equal(t, map[string]int{"pt": 4}, letters(m, tl))
}

func TestScore_ExcludeExtended(t *testing.T) {
	m, s := setup(t)
	text := "Morgaŭ ni iros al la plaĝo kun miaj fratoj, se ne pluvos."

	assert.Equal(t, map[string]int{"eo": 44}, letters(m, score(t, s, text, Options{})))
	assert.Equal(t, map[string]int{"fr": 22, "it": 22}, letters(m, score(t, s, text, Options{ExcludeExtended: true})))
}

func TestScore_ChunksAcrossMixedText(t *testing.T) {
	m, s := setup(t)
	text := ""
	for range 3 {
		text += "The weather was very nice yesterday and we walked in the park for hours. " +
			"Le repas était délicieux et nous avons beaucoup ri avec nos amis. "
	}
	tl := score(t, s, text, Options{})
	assert.Equal(t, map[string]int{"en": 174, "fr": 159}, letters(m, tl), "one chunk per sentence")
	assert.Equal(t, 6, tl.Chunks)

	// without sentence cuts chunks straddle both languages and skew the split
	flat := *m
	flat.Policy.SentenceGrams = 0
	sample, err := normalize.New().Normalize(&text)
	require.NoError(t, err)
	tl = New(&flat).Score(ngram.Extract(sample, m.Width), Options{})
	assert.Equal(t, map[string]int{"en": 187, "fr": 146}, letters(m, tl))
	assert.Equal(t, 7, tl.Chunks)
}

func TestScore_ShortPiecesJoinTheirNeighbour(t *testing.T) {
	m, s := setup(t)
	text := "The weather was very nice yesterday and we walked in the park for hours with all of our good friends from school. Merci beaucoup."
	tl := score(t, s, text, Options{})
	assert.Equal(t, map[string]int{"en": 91, "fr": 13}, letters(m, tl))
	assert.Equal(t, 3, tl.Chunks)
}

func TestScore_DirectScripts(t *testing.T) {
	m, s := setup(t)
	cases := map[string]map[string]int{
		"Αύριο θα πάμε στη θάλασσα με τους αδελφούς μου.": {"el": 38},
		"明日は兄弟と一緒に海に行きます。":                                {"ja": 15},
		"明天我们和兄弟们一起去海边。":                                  {"zh": 13},
		"내일 형제들과 함께 바다에 갈 거예요.":                           {"ko": 15},
		"海":   {"zh": 1},
		"海です": {"ja": 3},
	}
	for text, want := range cases {
		assert.Equalf(t, want, letters(m, score(t, s, text, Options{})), "text %q", text)
	}
}

func TestScore_UnmodeledScript(t *testing.T) {
	m, s := setup(t)
	tl := score(t, s, "ᏣᎳᎩ ᎦᏬᏂᎯᏍᏗ", Options{})
	assert.Empty(t, letters(m, tl))
	assert.Equal(t, 9, tl.Unknown)
	assert.Zero(t, tl.Evidence())

	tl = score(t, s, "ᏣᎳᎩ ᎦᏬᏂᎯᏍᏗ ᏣᎳᎩ ᎦᏬᏂᎯᏍᏗ hello world", Options{})
	assert.Equal(t, map[string]int{"en": 10}, letters(m, tl))
	assert.Equal(t, 18, tl.Unknown)
	assert.Equal(t, script.Other, tl.Scripts.Dominant())
}

func TestScore_NoSignal(t *testing.T) {
	_, s := setup(t)
	for _, text := range []string{"", "12345 !!! ???", "   "} {
		tl := score(t, s, text, Options{})
		assert.Zero(t, tl.Total(), text)
		assert.Zero(t, tl.Grams, text)
	}
}

func TestScore_UnseenGramsAreUnknown(t *testing.T) {
	m, s := setup(t)
	// no trigram of this word is in the table
	tl := score(t, s, "qxqxqxq", Options{})
	assert.Empty(t, letters(m, tl))
	assert.Equal(t, 7, tl.Unknown)
	assert.Zero(t, tl.Chunks)
}

func TestScore_Deterministic(t *testing.T) {
	_, s := setup(t)
	text := "Завтра мы поедем на море с моими братьями, если не будет дождя."
	a := score(t, s, text, Options{})
	b := score(t, s, text, Options{})
	assert.Equal(t, a, b)
}
