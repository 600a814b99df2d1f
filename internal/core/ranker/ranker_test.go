package ranker

import (
	"testing"

	"langid/internal/core/langmodel"
	"langid/internal/core/scorer"
	"langid/internal/core/script"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func model(t *testing.T) *langmodel.Model {
	t.Helper()
	m, err := langmodel.Load()
	require.NoError(t, err)
	return m
}

func tally(t *testing.T, m *langmodel.Model, unknown int, letters map[string]int) scorer.Tally {
	t.Helper()
	n := len(m.Languages())
	tl := scorer.Tally{Letters: make([]int, n), LogSum: make([]float64, n), Scored: make([]int, n), Unknown: unknown}
	for code, k := range letters {
		l, ok := m.ByCode(code)
		require.True(t, ok, code)
		tl.Letters[l.ID] = k
		tl.Scripts.Add(l.Script, k)
	}
	return tl
}

func codes(r Result) []string {
	out := make([]string, len(r.Candidates))
	for i, c := range r.Candidates {
		out[i] = c.Code
	}
	return out
}

func TestRank_Sentinel(t *testing.T) {
	m := model(t)
	for _, unknown := range []int{0, 9} {
		r := Rank(tally(t, m, unknown, nil), m, Options{})
		require.Len(t, r.Candidates, 1)
		assert.Equal(t, Sentinel(), r.Candidates[0])
		assert.False(t, r.Reliable)
		assert.Equal(t, unknown, r.Letters)
	}
	assert.Equal(t, "unknown", Result{}.Top().Code)
}

func TestRank_Reliability(t *testing.T) {
	m := model(t)
	cases := []struct {
		name     string
		unknown  int
		letters  map[string]int
		top      string
		reliable bool
	}{
		{"clear", 0, map[string]int{"en": 19}, "en", true},
		{"too short", 0, map[string]int{"en": 5}, "en", false},
		{"exactly long enough", 0, map[string]int{"en": 12}, "en", true},
		{"narrow margin", 0, map[string]int{"en": 187, "fr": 146}, "en", false},
		{"wide margin", 0, map[string]int{"en": 81, "fr": 23}, "en", true},
		{"sixty forty", 0, map[string]int{"en": 60, "fr": 40}, "en", false},
		{"seventy thirty", 0, map[string]int{"en": 70, "fr": 30}, "en", true},
		{"half against a split half", 0, map[string]int{"en": 13, "ru": 7, "uk": 6}, "en", false},
		{"even split", 0, map[string]int{"ru": 5, "uk": 5}, "ru", false},
		{"unknown top", 20, map[string]int{"en": 1}, "unknown", false},
		{"unknown drags share", 8, map[string]int{"en": 11}, "en", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := Rank(tally(t, m, c.unknown, c.letters), m, Options{})
			assert.Equal(t, c.top, r.Top().Code)
			assert.Equal(t, c.reliable, r.Reliable)
			assert.Equal(t, c.reliable, r.Top().Reliable)
			for _, cand := range r.Candidates[1:] {
				assert.False(t, cand.Reliable, "only the top can be reliable")
			}
		})
	}
}

func TestRank_OrderAndShares(t *testing.T) {
	m := model(t)
	r := Rank(tally(t, m, 2, map[string]int{"fr": 3, "de": 3, "en": 4}), m, Options{MaxResults: 5})

	assert.Equal(t, []string{"en", "de", "fr", "unknown"}, codes(r))
	assert.InDelta(t, 4.0/12, r.Candidates[0].Score, 1e-12)
	assert.InDelta(t, 2.0/12, r.Candidates[3].Score, 1e-12)
	assert.Equal(t, 12, r.Letters)
	assert.Equal(t, "English", r.Candidates[0].Name)
	assert.Equal(t, UnknownName, r.Candidates[3].Name)
	assert.Equal(t, script.Latin, r.Script)
}

func TestRank_Truncates(t *testing.T) {
	m := model(t)
	tl := tally(t, m, 0, map[string]int{"en": 10, "fr": 8, "de": 6, "nl": 4})

	assert.Equal(t, []string{"en", "fr", "de"}, codes(Rank(tl, m, Options{})))
	assert.Equal(t, []string{"en"}, codes(Rank(tl, m, Options{MaxResults: 1})))
	assert.Len(t, Rank(tl, m, Options{MaxResults: 10}).Candidates, 4)
}

func TestRank_PercentsNeverExceedHundred(t *testing.T) {
	m := model(t)
	r := Rank(tally(t, m, 0, map[string]int{"de": 3, "en": 3, "fr": 2}), m, Options{})
	require.Len(t, r.Candidates, 3)
	assert.Equal(t, []int{38, 37, 25}, []int{r.Candidates[0].Percent, r.Candidates[1].Percent, r.Candidates[2].Percent})

	r = Rank(tally(t, m, 0, map[string]int{"de": 1, "en": 1, "fr": 1}), m, Options{})
	for _, c := range r.Candidates {
		assert.Equal(t, 33, c.Percent)
	}

	r = Rank(tally(t, m, 0, map[string]int{"en": 19}), m, Options{})
	assert.Equal(t, 100, r.Top().Percent)
}

func TestRank_PickSummary(t *testing.T) {
	m := model(t)
	tl := tally(t, m, 18, map[string]int{"en": 10})

	r := Rank(tl, m, Options{})
	assert.Equal(t, []string{"unknown", "en"}, codes(r))
	assert.Equal(t, 64, r.Candidates[0].Percent)

	r = Rank(tl, m, Options{PickSummary: true})
	assert.Equal(t, []string{"en", "unknown"}, codes(r))
	assert.False(t, r.Reliable)

	weak := tally(t, m, 90, map[string]int{"en": 10})
	assert.Equal(t, "unknown", Rank(weak, m, Options{PickSummary: true}).Top().Code, "10% is below the summary floor")
}

func TestRank_SkipWeakMatches(t *testing.T) {
	m := model(t)
	tl := tally(t, m, 0, map[string]int{"en": 95, "fr": 5})

	assert.Equal(t, []string{"en", "fr"}, codes(Rank(tl, m, Options{})))
	assert.Equal(t, []string{"en"}, codes(Rank(tl, m, Options{SkipWeakMatches: true})))

	even := tally(t, m, 0, map[string]int{"ru": 5, "uk": 5})
	assert.Equal(t, []string{"ru", "uk"}, codes(Rank(even, m, Options{SkipWeakMatches: true})))
}
