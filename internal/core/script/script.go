// Package script classifies letters into the writing systems the language model knows about
package script

import (
	"fmt"
	"unicode"
)

// Script is a closed set of writing systems. Values are stable for a model's lifetime
type Script uint8

const (
	// None marks a non-letter, which always ends a word
	None Script = iota
	Latin
	Cyrillic
	Greek
	Arabic
	Hebrew
	Devanagari
	Thai
	Georgian
	Armenian
	Hangul
	Hiragana
	Katakana
	Han
	// Other is any letter in a script with no modeled language
	Other

	numScripts
)

var names = [numScripts]string{
	None:       "None",
	Latin:      "Latin",
	Cyrillic:   "Cyrillic",
	Greek:      "Greek",
	Arabic:     "Arabic",
	Hebrew:     "Hebrew",
	Devanagari: "Devanagari",
	Thai:       "Thai",
	Georgian:   "Georgian",
	Armenian:   "Armenian",
	Hangul:     "Hangul",
	Hiragana:   "Hiragana",
	Katakana:   "Katakana",
	Han:        "Han",
	Other:      "Other",
}

// tables are probed in order; CJK first since those blocks are the most frequent non-Latin letters
var tables = []struct {
	s  Script
	rt *unicode.RangeTable
}{
	{Hangul, unicode.Hangul},
	{Hiragana, unicode.Hiragana},
	{Katakana, unicode.Katakana},
	{Han, unicode.Han},
	{Latin, unicode.Latin},
	{Cyrillic, unicode.Cyrillic},
	{Greek, unicode.Greek},
	{Arabic, unicode.Arabic},
	{Hebrew, unicode.Hebrew},
	{Devanagari, unicode.Devanagari},
	{Thai, unicode.Thai},
	{Georgian, unicode.Georgian},
	{Armenian, unicode.Armenian},
}

// String returns the name used in model files
func (s Script) String() string {
	if s < numScripts {
		return names[s]
	}
	return fmt.Sprintf("script(%d)", uint8(s))
}

// MarshalText encodes the script by name
func (s Script) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a script name, including the name of None
func (s *Script) UnmarshalText(b []byte) error {
	name := string(b)
	if name == names[None] {
		*s = None
		return nil
	}
	v, ok := ParseName(name)
	if !ok {
		return fmt.Errorf("unknown script %q", name)
	}
	*s = v
	return nil
}

// ParseName maps a model file script name back to a Script
func ParseName(name string) (Script, bool) {
	for i, n := range names {
		if n == name && Script(i) != None {
			return Script(i), true
		}
	}
	return None, false
}

// All returns every letter script, Other last
func All() []Script {
	out := make([]Script, 0, numScripts-1)
	for s := Latin; s < numScripts; s++ {
		out = append(out, s)
	}
	return out
}

// Of classifies r. Non-letters return None
func Of(r rune) Script {
	if r < 0x80 {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return Latin
		}
		return None
	}
	if !unicode.IsLetter(r) {
		return None
	}
	// the prolonged sound mark is Common in the unicode tables but only ever written in kana
	if r == 0x30FC || r == 0xFF70 {
		return Katakana
	}
	for _, t := range tables {
		if unicode.Is(t.rt, r) {
			return t.s
		}
	}
	return Other
}

// IsMark reports whether r is a combining mark that stays attached to the preceding letter
func IsMark(r rune) bool {
	return r >= 0x300 && (unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r))
}

// IsKana reports whether s is one of the Japanese syllabaries
func (s Script) IsKana() bool { return s == Hiragana || s == Katakana }

// Counts tallies letters per script
type Counts [numScripts]int

// Add counts one letter of script s; None is ignored
func (c *Counts) Add(s Script, n int) {
	if s != None && s < numScripts {
		c[s] += n
	}
}

// Total returns the number of letters counted
func (c *Counts) Total() int {
	t := 0
	for _, n := range c {
		t += n
	}
	return t
}

// Dominant returns the script with the most letters, ties going to the lower enum value.
// An empty tally returns None
func (c *Counts) Dominant() Script {
	best, bestN := None, 0
	for s := Latin; s < numScripts; s++ {
		if c[s] > bestN {
			best, bestN = s, c[s]
		}
	}
	return best
}
