package langmodel

import (
	"strings"

	"langid/internal/core/script"
)

// Unknown is the code reported for letters no modeled language claims
const Unknown = "unknown"

// Lookup returns the vector for a gram key. Absent grams contribute nothing
func (m *Model) Lookup(key uint64) (Vector, bool) {
	v, ok := m.grams[key]
	return v, ok
}

// Grams returns the number of distinct grams in the table
func (m *Model) Grams() int { return len(m.grams) }

// Languages returns the language table in model order
func (m *Model) Languages() []Language { return m.langs }

// Language returns the language for id
func (m *Model) Language(id LangID) Language { return m.langs[id] }

// ByCode finds a language by its code, case-insensitively
func (m *Model) ByCode(code string) (Language, bool) {
	id, ok := m.byCode[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return Language{}, false
	}
	return m.langs[id], true
}

// ByTLD finds the language a top-level domain suggests; a leading dot is ignored
func (m *Model) ByTLD(tld string) (Language, bool) {
	id, ok := m.byTLD[strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tld), "."))]
	if !ok {
		return Language{}, false
	}
	return m.langs[id], true
}

// ScriptLanguage returns the language a single-language script maps to directly
func (m *Model) ScriptLanguage(sc script.Script) (Language, bool) {
	id, ok := m.scripts[sc]
	if !ok {
		return Language{}, false
	}
	return m.langs[id], true
}

// LanguagesFor returns the n-gram scored languages written in sc.
// Extended languages are included only when extended is true
func (m *Model) LanguagesFor(sc script.Script, extended bool) []Language {
	if _, direct := m.scripts[sc]; direct {
		return nil
	}
	var out []Language
	for _, l := range m.langs {
		if l.Script == sc && (extended || !l.Extended) {
			out = append(out, l)
		}
	}
	return out
}
