// Package normalize turns raw text into the code point sample the detector works on
// Pipeline order
// 1 UTF-8 repair, each malformed sequence becomes one U+FFFD
// 2 Strip control characters except line breaks and tabs
// 3 Unicode NFKC normalization
// 4 Case folding
// 5 Remove format characters (ZWJ, ZWNJ, BOM)
// 6 Width fold
// 7 Collapse whitespace to single spaces and trim
//
// Combining marks survive; vowel signs in Devanagari, Thai and Arabic carry signal
package normalize

import (
	"strings"
	"sync"
	"unicode"

	perr "langid/internal/platform/errors"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// ErrInvalidInput is returned for an absent text. An empty text is not an error
var ErrInvalidInput = perr.WithField(perr.InvalidArgf("text is absent"), "text")

// Sample is a normalized text. It is never mutated after Normalize returns
type Sample struct {
	Runes       []rune
	SourceBytes int // length of the raw input
	Repaired    int // malformed UTF-8 sequences replaced with U+FFFD
}

// Len returns the number of code points
func (s Sample) Len() int { return len(s.Runes) }

// Empty reports whether nothing survived normalization
func (s Sample) Empty() bool { return len(s.Runes) == 0 }

// String returns the normalized text
func (s Sample) String() string { return string(s.Runes) }

// Normalizer is concurrency safe when used with the pool below
type Normalizer struct{}

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Cf)), // ZWJ ZWNJ FEFF etc
			width.Fold,
		)
	},
}

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

// Normalize returns the sample for raw. A nil raw is ErrInvalidInput
func (n *Normalizer) Normalize(raw *string) (Sample, error) {
	if raw == nil {
		return Sample{}, ErrInvalidInput
	}
	return n.sample(*raw), nil
}

// NormalizeBytes is Normalize for byte input. nil is absent, a non-nil empty slice is empty text
func (n *Normalizer) NormalizeBytes(raw []byte) (Sample, error) {
	if raw == nil {
		return Sample{}, ErrInvalidInput
	}
	return n.sample(string(raw)), nil
}

// Text returns the normalized form of s as a string
func (n *Normalizer) Text(s string) string { return n.sample(s).String() }

func (n *Normalizer) sample(s string) Sample {
	out := Sample{SourceBytes: len(s)}
	if s == "" {
		return out
	}

	// 1-2 repair and strip controls
	s, out.Repaired = Sanitize(s)

	// 3-6 transform via pooled chain then reset and return it
	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		// the chain only fails on invalid UTF-8, which Sanitize already repaired
		ns = s
	}

	// 7 collapse whitespace and trim
	out.Runes = []rune(collapseSpaces(ns))
	return out
}

// collapseSpaces converts every whitespace run to a single ASCII space and trims the edges
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
