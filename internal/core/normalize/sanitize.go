package normalize

import (
	"strings"
	"unicode/utf8"
)

// Sanitize repairs and cleans s:
// - each maximal run of invalid UTF-8 bytes becomes one U+FFFD
// - ASCII controls except '\n', '\r', '\t' are dropped
// - DEL (0x7F) and C1 controls U+0080..U+009F are dropped
// It returns the cleaned string and the number of repaired runs.
// Fast path returns s unchanged when no cleaning is needed
func Sanitize(s string) (string, int) {
	if s == "" {
		return s, 0
	}

	n := len(s)
	i := 0

	// Fast path: scan until first "bad" byte/rune
	for i < n {
		b := s[i]
		if b < 0x20 {
			if b == '\n' || b == '\r' || b == '\t' {
				i++
				continue
			}
			break
		}
		if b == 0x7F {
			break
		}
		if b < 0x80 {
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			break
		}
		if r >= 0x80 && r <= 0x9F {
			break
		}
		i += size
	}
	if i == n {
		return s, 0
	}

	// Slow path: build cleaned string from here on
	var bldr strings.Builder
	bldr.Grow(n + 2)
	bldr.WriteString(s[:i])

	repaired := 0
	inBad := false
	for i < n {
		c := s[i]

		if c < 0x80 {
			inBad = false
			if c >= 0x20 && c != 0x7F || c == '\n' || c == '\r' || c == '\t' {
				bldr.WriteByte(c)
			}
			i++
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			if !inBad {
				bldr.WriteRune(utf8.RuneError)
				repaired++
				inBad = true
			}
			i++
			continue
		}
		inBad = false
		if r <= 0x9F {
			i += size
			continue
		}

		bldr.WriteString(s[i : i+size])
		i += size
	}

	return bldr.String(), repaired
}
