// Package langid is the public detection API: it validates input, runs the
// normalize, ngram, scorer and ranker pipeline and returns a ranked Result
package langid

import (
	"runtime"
	"sync"

	"langid/internal/core/langmodel"
	"langid/internal/core/ngram"
	"langid/internal/core/normalize"
	"langid/internal/core/ranker"
	"langid/internal/core/scorer"
)

type (
	// Result is the ranked outcome of one detection
	Result = ranker.Result
	// Candidate is one ranked language
	Candidate = ranker.Candidate
)

// Unknown is the language code of the no-signal sentinel
const Unknown = langmodel.Unknown

// ErrInvalidArgument is returned when the text is absent
var ErrInvalidArgument = normalize.ErrInvalidInput

// Detector runs detections against one shared, read-only model.
// It holds no per-call state and is safe for concurrent use
type Detector struct {
	m       *langmodel.Model
	norm    *normalize.Normalizer
	sc      *scorer.Scorer
	workers int
}

// Option configures a Detector
type Option func(*Detector)

// WithWorkers bounds DetectBatch concurrency; values below 1 are ignored
func WithWorkers(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.workers = n
		}
	}
}

// New builds a detector over m
func New(m *langmodel.Model, opts ...Option) *Detector {
	d := &Detector{
		m:       m,
		norm:    normalize.New(),
		sc:      scorer.New(m),
		workers: runtime.GOMAXPROCS(0),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// NewFromProvider loads the provider's model, surfacing a load failure
func NewFromProvider(p *langmodel.Provider, opts ...Option) (*Detector, error) {
	m, err := p.Model()
	if err != nil {
		return nil, err
	}
	return New(m, opts...), nil
}

var defaultDetector = sync.OnceValues(func() (*Detector, error) {
	return NewFromProvider(langmodel.Embedded())
})

// Default returns a process-wide detector over the embedded model, loading it on first use
func Default() (*Detector, error) { return defaultDetector() }

// Model returns the detector's model
func (d *Detector) Model() *langmodel.Model { return d.m }

// Detect identifies the languages of text. A nil text is ErrInvalidArgument;
// any present text, the empty string included, yields a non-empty Result
func (d *Detector) Detect(text *string, o Options) (Result, error) {
	if text == nil {
		return Result{}, ErrInvalidArgument
	}
	hints, err := d.hints(o)
	if err != nil {
		return Result{}, err
	}
	return d.run(*text, o, hints), nil
}

// DetectString is Detect for a text that is always present. Invalid hints are ignored
func (d *Detector) DetectString(text string, o Options) Result {
	hints, err := d.hints(o)
	if err != nil {
		hints = nil
	}
	return d.run(text, o, hints)
}

// DetectBytes is Detect for raw bytes. Malformed UTF-8 is repaired, never an error
func (d *Detector) DetectBytes(raw []byte, o Options) (Result, error) {
	if raw == nil {
		return Result{}, ErrInvalidArgument
	}
	hints, err := d.hints(o)
	if err != nil {
		return Result{}, err
	}
	return d.run(string(raw), o, hints), nil
}

func (d *Detector) run(raw string, o Options, hints []langmodel.LangID) Result {
	src := raw
	if o.HTML {
		src = normalize.StripMarkup(src)
	}
	sample, _ := d.norm.Normalize(&src)

	t := d.sc.Score(ngram.Extract(sample, d.m.Width), scorer.Options{
		ExcludeExtended: o.ExcludeExtended,
		Hints:           hints,
	})
	res := ranker.Rank(t, d.m, ranker.Options{
		MaxResults:      o.MaxResults,
		SkipWeakMatches: o.SkipWeakMatches,
		PickSummary:     o.PickSummary,
	})
	res.TextBytes = len(raw)
	return res
}
