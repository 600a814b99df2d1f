// Package ngram slices a normalized sample into padded character n-grams
package ngram

import (
	"iter"

	"langid/internal/core/normalize"
	"langid/internal/core/script"

	"github.com/cespare/xxhash/v2"
)

// Pad marks word boundaries inside grams
const Pad = ' '

// Gram is one window over a padded word
type Gram struct {
	Key     uint64 // KeyOf(Text)
	Text    string
	Offset  int // rune offset of the window start in the sample
	Script  script.Script
	Word    int // index of the word the window belongs to
	Letters int // letters in the word, set on the word's first window only
	// Sentence marks the first window of a word that follows sentence-ending punctuation
	Sentence bool
}

// KeyOf hashes a gram's text. The model loader keys its table the same way
func KeyOf(text string) uint64 { return xxhash.Sum64String(text) }

// Extract yields the grams of s lazily, one word at a time.
// Words are letter runs of one script plus attached combining marks.
// A padded word shorter than width yields exactly one degenerate gram
func Extract(s normalize.Sample, width int) iter.Seq[Gram] {
	if width < 1 {
		width = 1
	}
	return func(yield func(Gram) bool) {
		var (
			buf     = make([]rune, 0, 32)
			cur     = script.None
			start   = 0
			letters = 0
			word    = 0
			stop    = false
		)
		flush := func() bool {
			if letters == 0 {
				return true
			}
			ok := emit(buf, width, Gram{Script: cur, Offset: start, Word: word, Letters: letters, Sentence: stop}, yield)
			buf = buf[:0]
			cur, letters, stop = script.None, 0, false
			word++
			return ok
		}

		for i, r := range s.Runes {
			sc := script.Of(r)
			switch {
			case sc != script.None:
				if letters > 0 && sc != cur {
					if !flush() {
						return
					}
				}
				if letters == 0 {
					buf = append(buf[:0], Pad)
					start = i
					cur = sc
				}
				buf = append(buf, r)
				letters++
			case letters > 0 && script.IsMark(r):
				buf = append(buf, r)
			default:
				if !flush() {
					return
				}
				if EndsSentence(r) {
					stop = true
				}
			}
		}
		flush()
	}
}

// emit yields the windows of one word; buf holds the leading pad and the word.
// first carries the word's fields with Offset set to the word start
func emit(buf []rune, width int, first Gram, yield func(Gram) bool) bool {
	start := first.Offset
	padded := append(buf, Pad)
	if len(padded) < width {
		first.Text = string(padded)
		first.Key = KeyOf(first.Text)
		first.Offset = max(start-1, 0)
		return yield(first)
	}
	for i := 0; i+width <= len(padded); i++ {
		g := Gram{Text: string(padded[i : i+width]), Offset: max(start+i-1, 0), Script: first.Script, Word: first.Word}
		g.Key = KeyOf(g.Text)
		if i == 0 {
			g.Letters, g.Sentence = first.Letters, first.Sentence
		}
		if !yield(g) {
			return false
		}
	}
	return true
}

// EndsSentence reports whether r closes a sentence
func EndsSentence(r rune) bool {
	switch r {
	case '.', '!', '?', ';', '…', '。', '！', '？', '।', '؟', '۔':
		return true
	}
	return false
}

// Count returns how many grams Extract would yield
func Count(s normalize.Sample, width int) int {
	n := 0
	for range Extract(s, width) {
		n++
	}
	return n
}
