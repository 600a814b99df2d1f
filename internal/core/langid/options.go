package langid

import (
	"slices"
	"strings"

	"langid/internal/core/langmodel"
	perr "langid/internal/platform/errors"
	pstr "langid/internal/platform/strings"

	"golang.org/x/text/language"
)

// Options tunes one detection. The zero value is the default behavior
type Options struct {
	HTML            bool   // strip markup before detection
	ExcludeExtended bool   // leave out rarely written languages
	SkipWeakMatches bool   // drop non-top candidates under the model's weak match percent
	PickSummary     bool   // report the best real language ahead of an unknown top
	TLDHint         string // top-level domain the text came from, e.g. "br"
	LanguageHint    string // BCP 47 tag of a language the caller expects, e.g. "pt-BR"
	MaxResults      int    // 0 uses the model policy
}

// hints resolves the language and TLD hints to model languages.
// Malformed hints are errors; well formed hints the model does not know are ignored
func (d *Detector) hints(o Options) ([]langmodel.LangID, error) {
	var out []langmodel.LangID
	add := func(l langmodel.Language) {
		if !slices.Contains(out, l.ID) {
			out = append(out, l.ID)
		}
	}

	if h := strings.TrimSpace(o.LanguageHint); h != "" {
		tag, err := language.Parse(h)
		if err != nil {
			return nil, perr.WithField(perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "invalid language hint %q", h), "language")
		}
		base, _ := tag.Base()
		if l, ok := d.m.ByCode(base.String()); ok {
			add(l)
		}
	}

	if h := strings.TrimSpace(o.TLDHint); h != "" {
		tld := strings.ToLower(strings.TrimPrefix(h, "."))
		if !ValidTLD(tld) {
			return nil, perr.WithField(perr.InvalidArgf("invalid tld hint %q", h), "tld")
		}
		if l, ok := d.m.ByTLD(tld); ok {
			add(l)
		}
	}
	return out, nil
}

// ValidTLD reports whether s looks like a top-level domain label, a leading dot allowed.
// IDNA labels such as "xn--p1ai" are valid
func ValidTLD(s string) bool { return pstr.IsTLD(s) }
