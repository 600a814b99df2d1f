// Package ranker orders scorer evidence into a detection result and judges its reliability
package ranker

import (
	"math"
	"slices"
	"strings"

	"langid/internal/core/langmodel"
	"langid/internal/core/scorer"
	"langid/internal/core/script"
)

// Candidate is one ranked language
type Candidate struct {
	Code     string  `json:"code"      yaml:"code"`
	Name     string  `json:"name"      yaml:"name"`
	Score    float64 `json:"score"     yaml:"score"`     // share of letters in [0,1]
	Percent  int     `json:"percent"   yaml:"percent"`   // rounded Score*100
	LogScore float64 `json:"log_score" yaml:"log_score"` // mean log-probability per scored gram
	Reliable bool    `json:"reliable"  yaml:"reliable"`
}

// Result is the ranked outcome of one detection, most confident first
type Result struct {
	Candidates []Candidate   `json:"candidates" yaml:"candidates"`
	Reliable   bool          `json:"reliable"   yaml:"reliable"`
	Letters    int           `json:"letters"    yaml:"letters"`
	TextBytes  int           `json:"text_bytes" yaml:"text_bytes"`
	Script     script.Script `json:"script"     yaml:"script"`
}

// Top returns the most confident candidate
func (r Result) Top() Candidate {
	if len(r.Candidates) == 0 {
		return Sentinel()
	}
	return r.Candidates[0]
}

// Options adjusts ranking
type Options struct {
	MaxResults      int  // 0 uses the model policy
	SkipWeakMatches bool // drop non-top candidates under Policy.WeakMatchPercent
	PickSummary     bool // promote the best real language over an unknown top
}

// UnknownName is the display name of the unknown candidate
const UnknownName = "Unknown"

// Sentinel is the single candidate reported when no language has evidence
func Sentinel() Candidate {
	return Candidate{Code: langmodel.Unknown, Name: UnknownName}
}

// Rank builds the result for t. Ordering is Score desc then Code asc
func Rank(t scorer.Tally, m *langmodel.Model, opts Options) Result {
	pol := m.Policy
	total := t.Total()
	res := Result{Letters: total, Script: t.Scripts.Dominant()}

	if t.Evidence() == 0 {
		res.Candidates = []Candidate{Sentinel()}
		return res
	}

	cands := make([]Candidate, 0, 4)
	for i, n := range t.Letters {
		if n == 0 {
			continue
		}
		l := m.Language(langmodel.LangID(i))
		cands = append(cands, Candidate{
			Code:     l.Code,
			Name:     l.Name,
			Score:    float64(n) / float64(total),
			LogScore: t.LogScore(l.ID),
		})
	}
	if t.Unknown > 0 {
		u := Sentinel()
		u.Score = float64(t.Unknown) / float64(total)
		cands = append(cands, u)
	}
	slices.SortFunc(cands, compare)

	top := &cands[0]
	second := 0.0
	if len(cands) > 1 {
		second = cands[1].Score
	}
	top.Reliable = top.Code != langmodel.Unknown &&
		total >= pol.MinReliableLetters &&
		top.Score >= pol.MinTopShare &&
		top.Score-second >= pol.MinShareMargin

	limit := opts.MaxResults
	if limit <= 0 {
		limit = pol.MaxResults
	}
	if len(cands) > limit {
		cands = cands[:limit]
	}
	percents(cands)

	if opts.PickSummary {
		cands = pickSummary(cands, pol.SummaryMinPercent)
	}
	if opts.SkipWeakMatches {
		cands = skipWeak(cands, pol.WeakMatchPercent)
	}

	res.Candidates = cands
	res.Reliable = cands[0].Reliable
	return res
}

func compare(a, b Candidate) int {
	if a.Score != b.Score {
		if a.Score > b.Score {
			return -1
		}
		return 1
	}
	return strings.Compare(a.Code, b.Code)
}

// percents rounds shares to whole percents that never sum past 100.
// Overflow is taken back from the candidates that were rounded up the most, lowest ranked first
func percents(cands []Candidate) {
	sum := 0
	for i := range cands {
		cands[i].Percent = int(math.Round(cands[i].Score * 100))
		sum += cands[i].Percent
	}
	for sum > 100 {
		worst, excess := -1, math.Inf(-1)
		for i := len(cands) - 1; i >= 0; i-- {
			if e := float64(cands[i].Percent) - cands[i].Score*100; e > excess && cands[i].Percent > 0 {
				worst, excess = i, e
			}
		}
		if worst < 0 {
			return
		}
		cands[worst].Percent--
		sum--
	}
}

// pickSummary moves the best real language in front of an unknown top when it is strong enough
func pickSummary(cands []Candidate, minPercent int) []Candidate {
	if cands[0].Code != langmodel.Unknown {
		return cands
	}
	for i := 1; i < len(cands); i++ {
		if cands[i].Percent >= minPercent {
			out := make([]Candidate, 0, len(cands))
			out = append(out, cands[i])
			out = append(out, cands[:i]...)
			return append(out, cands[i+1:]...)
		}
	}
	return cands
}

func skipWeak(cands []Candidate, minPercent int) []Candidate {
	out := cands[:1]
	for _, c := range cands[1:] {
		if c.Percent >= minPercent {
			out = append(out, c)
		}
	}
	return out
}
