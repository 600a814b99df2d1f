// Package langmodel loads the static n-gram language model and serves read-only lookups.
// The model is parsed once, validated, and compiled into dense per-gram vectors
package langmodel

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/json"
	"io"
	"math"
	"os"
	"slices"
	"strings"

	"langid/internal/core/ngram"
	"langid/internal/core/script"
	perr "langid/internal/platform/errors"

	"github.com/klauspost/compress/gzip"
)

// SchemaVersion is the model file format this package understands
const SchemaVersion = 1

//go:embed model.json.gz
var embedded []byte

// LangID indexes Model.Languages and every Vector
type LangID uint16

// Language is one entry of the closed language table
type Language struct {
	ID       LangID        `json:"-"`
	Code     string        `json:"code"`
	Name     string        `json:"name"`
	Script   script.Script `json:"script"`
	Extended bool          `json:"extended"`
	TLDs     []string      `json:"tlds,omitempty"`
	Floor    float32       `json:"-"`
}

// Vector holds one log-probability per language, floors filled in for languages that never saw the gram
type Vector []float32

// Policy carries the tuning constants shipped with the model
type Policy struct {
	ChunkGrams         int     `json:"chunk_grams"`
	WeakChunkMargin    float64 `json:"weak_chunk_margin"`
	SentenceGrams      int     `json:"sentence_grams"` // a sentence start closes a chunk this long; 0 disables
	MinReliableLetters int     `json:"min_reliable_letters"`
	MinShareMargin     float64 `json:"min_share_margin"`
	MinTopShare        float64 `json:"min_top_share"`
	WeakMatchPercent   int     `json:"weak_match_percent"`
	HintBoost          float64 `json:"hint_boost"`
	SummaryMinPercent  int     `json:"summary_min_percent"`
	MaxResults         int     `json:"max_results"`
}

// Model is immutable once Parse returns and safe for concurrent readers
type Model struct {
	Name     string
	Revision string
	Width    int
	Policy   Policy

	langs   []Language
	byCode  map[string]LangID
	byTLD   map[string]LangID
	scripts map[script.Script]LangID
	grams   map[uint64]Vector
}

type rawLanguage struct {
	Code     string   `json:"code"`
	Name     string   `json:"name"`
	Script   string   `json:"script"`
	Extended bool     `json:"extended"`
	TLDs     []string `json:"tlds"`
	Floor    *float64 `json:"floor"`
}

type rawModel struct {
	Version    int                     `json:"version"`
	Name       string                  `json:"name"`
	Revision   string                  `json:"revision"`
	NgramWidth int                     `json:"ngram_width"`
	Policy     Policy                  `json:"policy"`
	Languages  []rawLanguage           `json:"languages"`
	Scripts    map[string]string       `json:"scripts"`
	Grams      map[string][][2]float64 `json:"grams"`
}

// Load parses the embedded model
func Load() (*Model, error) {
	return Parse(bytes.NewReader(embedded))
}

// LoadFile parses a model file from disk, gzipped or plain JSON
func LoadFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeModel, "open model %s", path)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads, validates and compiles a model. Gzip input is detected by its magic bytes
func Parse(r io.Reader) (*Model, error) {
	br := bufio.NewReader(r)
	var src io.Reader = br
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeModel, "model gzip header")
		}
		defer zr.Close()
		src = zr
	}

	var raw rawModel
	dec := json.NewDecoder(src)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeModel, "decode model")
	}
	return compile(raw)
}

func compile(raw rawModel) (*Model, error) {
	if raw.Version != SchemaVersion {
		return nil, perr.Modelf("unsupported model version %d", raw.Version)
	}
	if raw.NgramWidth < 1 {
		return nil, perr.Modelf("ngram width must be at least 1, got %d", raw.NgramWidth)
	}
	if err := raw.Policy.validate(); err != nil {
		return nil, err
	}
	if len(raw.Languages) == 0 {
		return nil, perr.Modelf("model has no languages")
	}
	if len(raw.Languages) > math.MaxUint16 {
		return nil, perr.Modelf("too many languages: %d", len(raw.Languages))
	}

	m := &Model{
		Name:     raw.Name,
		Revision: raw.Revision,
		Width:    raw.NgramWidth,
		Policy:   raw.Policy,
		langs:    make([]Language, 0, len(raw.Languages)),
		byCode:   make(map[string]LangID, len(raw.Languages)),
		byTLD:    make(map[string]LangID),
		scripts:  make(map[script.Script]LangID, len(raw.Scripts)),
		grams:    make(map[uint64]Vector, len(raw.Grams)),
	}

	lowest := 0.0
	for _, rl := range raw.Languages {
		if rl.Floor != nil && *rl.Floor < lowest {
			lowest = *rl.Floor
		}
	}
	if lowest == 0 {
		lowest = -20
	}

	for i, rl := range raw.Languages {
		code := strings.ToLower(strings.TrimSpace(rl.Code))
		if code == "" || code == Unknown {
			return nil, perr.Modelf("language %d has an invalid code %q", i, rl.Code)
		}
		if _, dup := m.byCode[code]; dup {
			return nil, perr.Modelf("duplicate language code %q", code)
		}
		sc, ok := script.ParseName(rl.Script)
		if !ok || sc == script.Other {
			return nil, perr.Modelf("language %q has unknown script %q", code, rl.Script)
		}
		floor := lowest
		if rl.Floor != nil {
			if !finite(*rl.Floor) {
				return nil, perr.Modelf("language %q has a non-finite floor", code)
			}
			floor = *rl.Floor
		}
		id := LangID(i)
		m.langs = append(m.langs, Language{
			ID:       id,
			Code:     code,
			Name:     rl.Name,
			Script:   sc,
			Extended: rl.Extended,
			TLDs:     slices.Clone(rl.TLDs),
			Floor:    float32(floor),
		})
		m.byCode[code] = id
		for _, tld := range rl.TLDs {
			tld = strings.ToLower(strings.TrimPrefix(tld, "."))
			if _, taken := m.byTLD[tld]; !taken {
				m.byTLD[tld] = id
			}
		}
	}

	for name, code := range raw.Scripts {
		sc, ok := script.ParseName(name)
		if !ok {
			return nil, perr.Modelf("script table names unknown script %q", name)
		}
		id, ok := m.byCode[code]
		if !ok {
			return nil, perr.Modelf("script %s maps to unknown language %q", name, code)
		}
		m.scripts[sc] = id
	}

	for text, row := range raw.Grams {
		if text == "" {
			return nil, perr.Modelf("empty gram text")
		}
		key := ngram.KeyOf(text)
		if _, dup := m.grams[key]; dup {
			return nil, perr.Modelf("gram %q collides with another gram key", text)
		}
		v := make(Vector, len(m.langs))
		for i := range m.langs {
			v[i] = m.langs[i].Floor
		}
		for _, cell := range row {
			idx, w := cell[0], cell[1]
			if idx < 0 || int(idx) >= len(m.langs) || idx != math.Trunc(idx) {
				return nil, perr.Modelf("gram %q references language index %v", text, idx)
			}
			if !finite(w) {
				return nil, perr.Modelf("gram %q has a non-finite weight", text)
			}
			v[int(idx)] = float32(w)
		}
		m.grams[key] = v
	}

	return m, nil
}

func (p Policy) validate() error {
	switch {
	case p.ChunkGrams < 2:
		return perr.Modelf("policy chunk_grams must be at least 2")
	case p.MinReliableLetters < 0 || p.WeakMatchPercent < 0 || p.SummaryMinPercent < 0 || p.SentenceGrams < 0:
		return perr.Modelf("policy thresholds must not be negative")
	case p.MinTopShare < 0 || p.MinTopShare > 1 || p.MinShareMargin < 0 || p.MinShareMargin > 1:
		return perr.Modelf("policy shares must be within [0,1]")
	case !finite(p.WeakChunkMargin) || p.WeakChunkMargin < 0 || !finite(p.HintBoost) || p.HintBoost < 0:
		return perr.Modelf("policy margins must be finite and non-negative")
	case p.MaxResults < 1:
		return perr.Modelf("policy max_results must be at least 1")
	}
	return nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
