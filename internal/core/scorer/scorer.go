// Package scorer turns a gram stream into per-language letter evidence.
//
// Grams of n-gram scored scripts are grouped into chunks of roughly Policy.ChunkGrams grams,
// cut only at word boundaries. A sentence start also cuts once the chunk holds
// Policy.SentenceGrams grams, so alternating languages land in separate chunks. Each chunk is scored by mean log-probability per found gram
// over the languages written in its script; the winner takes the chunk's letters, or shares
// them with the runner-up when the margin is thin. Letters in single-language scripts go
// straight to that language and letters no language claims are counted as unknown
package scorer

import (
	"iter"
	"slices"
	"strings"

	"langid/internal/core/langmodel"
	"langid/internal/core/ngram"
	"langid/internal/core/script"
)

// Options tunes one Score call
type Options struct {
	ExcludeExtended bool
	Hints           []langmodel.LangID // boosted by Policy.HintBoost per chunk
}

// Tally is the per-call accumulator. Slices are indexed by LangID
type Tally struct {
	Letters []int     // evidence letters attributed to each language
	LogSum  []float64 // summed log-probabilities over scored grams
	Scored  []int     // grams that contributed to LogSum
	Unknown int       // letters no language claims
	Scripts script.Counts
	Grams   int // grams seen
	Chunks  int // n-gram chunks scored
}

// Evidence returns letters attributed to real languages
func (t Tally) Evidence() int {
	n := 0
	for _, l := range t.Letters {
		n += l
	}
	return n
}

// Total returns every letter seen, unknown included
func (t Tally) Total() int { return t.Evidence() + t.Unknown }

// LogScore returns the mean log-probability per scored gram for id, 0 when nothing was scored
func (t Tally) LogScore(id langmodel.LangID) float64 {
	if int(id) >= len(t.Scored) || t.Scored[id] == 0 {
		return 0
	}
	return t.LogSum[id] / float64(t.Scored[id])
}

// Scorer is safe for concurrent use; all call state lives in Score
type Scorer struct {
	m *langmodel.Model
	// candidates per script, [0] with extended languages and [1] without
	cands [2]map[script.Script][]langmodel.LangID
}

// New prepares a scorer over m
func New(m *langmodel.Model) *Scorer {
	s := &Scorer{m: m}
	for i, extended := range []bool{true, false} {
		s.cands[i] = make(map[script.Script][]langmodel.LangID)
		for _, sc := range script.All() {
			for _, l := range m.LanguagesFor(sc, extended) {
				s.cands[i][sc] = append(s.cands[i][sc], l.ID)
			}
		}
	}
	return s
}

// Model returns the model the scorer reads
func (s *Scorer) Model() *langmodel.Model { return s.m }

type chunk struct {
	vecs     []langmodel.Vector
	size     int // grams, found or not
	letters  int
	sentence bool // opened at a sentence start
}

func (c *chunk) empty() bool { return c.size == 0 }

func (c *chunk) absorb(o chunk) {
	c.vecs = append(c.vecs, o.vecs...)
	c.size += o.size
	c.letters += o.letters
}

// call holds the state of one Score call
type call struct {
	s     *Scorer
	pol   langmodel.Policy
	t     Tally
	cands map[script.Script][]langmodel.LangID
	boost []float64
	sums  []float64

	run     script.Script
	word    int
	pending chunk
	cur     chunk
	han     int
}

// Score consumes grams once and returns the tally
func (s *Scorer) Score(grams iter.Seq[ngram.Gram], opts Options) Tally {
	n := len(s.m.Languages())
	c := &call{
		s:   s,
		pol: s.m.Policy,
		t: Tally{
			Letters: make([]int, n),
			LogSum:  make([]float64, n),
			Scored:  make([]int, n),
		},
		cands: s.cands[0],
		boost: make([]float64, n),
		run:   script.None,
		word:  -1,
	}
	if opts.ExcludeExtended {
		c.cands = s.cands[1]
	}
	for _, id := range opts.Hints {
		if int(id) < n {
			c.boost[id] = s.m.Policy.HintBoost
		}
	}

	for g := range grams {
		c.add(g)
	}
	c.endRun()
	c.resolveHan()
	return c.t
}

func (c *call) add(g ngram.Gram) {
	c.t.Grams++
	if g.Script != c.run {
		c.endRun()
		c.run = g.Script
	}
	newWord := g.Word != c.word
	c.word = g.Word
	if g.Letters > 0 {
		c.t.Scripts.Add(g.Script, g.Letters)
	}

	if _, ok := c.cands[g.Script]; !ok {
		c.direct(g.Script, g.Letters)
		return
	}

	sentence := g.Sentence && c.pol.SentenceGrams > 0
	if newWord && c.full(sentence) {
		c.cut(sentence)
	}
	c.cur.size++
	c.cur.letters += g.Letters
	if v, ok := c.s.m.Lookup(g.Key); ok {
		c.cur.vecs = append(c.cur.vecs, v)
	}
}

// direct routes letters of scripts that are not n-gram scored
func (c *call) direct(sc script.Script, letters int) {
	if letters == 0 {
		return
	}
	if sc == script.Han {
		c.han += letters
		return
	}
	if l, ok := c.s.m.ScriptLanguage(sc); ok {
		c.t.Letters[l.ID] += letters
		return
	}
	c.t.Unknown += letters
}

// resolveHan sends Han letters to the kana language when the sample has kana
func (c *call) resolveHan() {
	if c.han == 0 {
		return
	}
	sc := script.Han
	if c.t.Scripts[script.Hiragana]+c.t.Scripts[script.Katakana] > 0 {
		sc = script.Hiragana
	}
	if l, ok := c.s.m.ScriptLanguage(sc); ok {
		c.t.Letters[l.ID] += c.han
	} else {
		c.t.Unknown += c.han
	}
	c.han = 0
}

// full reports whether the current chunk closes before the next word
func (c *call) full(sentence bool) bool {
	if c.cur.size >= c.pol.ChunkGrams {
		return true
	}
	return sentence && c.cur.size >= c.pol.SentenceGrams
}

// cut closes the current chunk. A short piece that does not open a sentence
// joins the pending chunk rather than being scored alone
func (c *call) cut(sentence bool) {
	if c.cur.empty() {
		return
	}
	if !c.pending.empty() && !c.cur.sentence && c.cur.size < c.pol.ChunkGrams/2 {
		c.pending.absorb(c.cur)
	} else {
		c.scorePending()
		c.pending = c.cur
	}
	c.cur = chunk{sentence: sentence}
}

// endRun flushes the chunks of the current script run
func (c *call) endRun() {
	c.cut(false)
	c.scorePending()
}

func (c *call) scorePending() {
	if c.pending.empty() {
		return
	}
	c.scoreChunk(c.pending)
	c.pending = chunk{}
}

func (c *call) scoreChunk(ch chunk) {
	cands := c.cands[c.run]
	scored := len(ch.vecs)
	if len(cands) == 0 || scored == 0 {
		c.t.Unknown += ch.letters
		return
	}
	c.t.Chunks++

	c.sums = slices.Grow(c.sums[:0], len(cands))[:len(cands)]
	clear(c.sums)
	for _, v := range ch.vecs {
		for j, id := range cands {
			c.sums[j] += float64(v[id])
		}
	}

	order := make([]int, len(cands))
	means := make([]float64, len(cands))
	for j, id := range cands {
		c.t.LogSum[id] += c.sums[j]
		c.t.Scored[id] += scored
		means[j] = c.sums[j]/float64(scored) + c.boost[id]
		order[j] = j
	}
	langs := c.s.m.Languages()
	slices.SortFunc(order, func(a, b int) int {
		if means[a] != means[b] {
			if means[a] > means[b] {
				return -1
			}
			return 1
		}
		return strings.Compare(langs[cands[a]].Code, langs[cands[b]].Code)
	})

	best := cands[order[0]]
	if len(order) == 1 {
		c.t.Letters[best] += ch.letters
		return
	}
	runner := cands[order[1]]
	if means[order[0]]-means[order[1]] < c.pol.WeakChunkMargin {
		c.t.Letters[best] += (ch.letters + 1) / 2
		c.t.Letters[runner] += ch.letters / 2
		return
	}
	c.t.Letters[best] += ch.letters
}
