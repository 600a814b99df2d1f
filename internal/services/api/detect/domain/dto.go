// Package domain holds the detect API request and response shapes
package domain

import (
	"langid/internal/core/langid"
	"langid/internal/core/langmodel"
	perr "langid/internal/platform/errors"
)

// DetectOptions are the knobs shared by single and batch requests
type DetectOptions struct {
	HTML          bool   `json:"html"           example:"false"`
	TLD           string `json:"tld"            example:"br"    validate:"omitempty,tld"`
	Language      string `json:"language"       example:"pt-BR" validate:"omitempty,bcp47"`
	AllowExtended *bool  `json:"allow_extended" example:"true"`
	SkipWeak      bool   `json:"skip_weak"      example:"false"`
	Summary       bool   `json:"summary"        example:"false"`
	MaxResults    int    `json:"max_results"    example:"3"     validate:"omitempty,min=1,max=10"`
}

// Options maps the request knobs to engine options. Extended languages are allowed unless refused
func (o DetectOptions) Options() langid.Options {
	return langid.Options{
		HTML:            o.HTML,
		ExcludeExtended: o.AllowExtended != nil && !*o.AllowExtended,
		SkipWeakMatches: o.SkipWeak,
		PickSummary:     o.Summary,
		TLDHint:         o.TLD,
		LanguageHint:    o.Language,
		MaxResults:      o.MaxResults,
	}
}

// DetectInput is the body of POST /detect. A null or missing text is rejected, "" is valid
type DetectInput struct {
	Text *string `json:"text" example:"Hello, how are you today?"`
	DetectOptions
}

// BatchInput is the body of POST /detect/batch
type BatchInput struct {
	Texts []*string `json:"texts" validate:"required,min=1"`
	DetectOptions
}

// BatchItem is one batch entry; exactly one of Result and Error is set
type BatchItem struct {
	Index  int            `json:"index"`
	Result *langid.Result `json:"result,omitempty"`
	Error  *perr.Wire     `json:"error,omitempty"`
}

// BatchOutput is the response of POST /detect/batch
type BatchOutput struct {
	BatchID string      `json:"batch_id" example:"4f1c2a9e-6c1d-4a4e-9a57-0b7c8f0d2e11"`
	Items   []BatchItem `json:"items"`
}

// LanguagesOutput is the response of GET /languages
type LanguagesOutput struct {
	Model     string               `json:"model"    example:"langid-core"`
	Revision  string               `json:"revision" example:"2026.10.2"`
	Languages []langmodel.Language `json:"languages"`
}
