// Package http provides http transport for language detection
package http

import (
	stdhttp "net/http"

	"langid/internal/modkit/httpkit"
	"langid/internal/services/api/detect/domain"
	svc "langid/internal/services/api/detect/service"
)

// Register mounts the detect endpoints on the module router
func Register(r httpkit.Router, s svc.Service, body httpkit.JSONOptions) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.DetectInput](r, "/", h.detect, body)
	httpkit.PostJSON[domain.BatchInput](r, "/batch", h.batch, body)
}

// RegisterCatalog mounts the language table endpoint
func RegisterCatalog(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/languages", h.languages)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /detect Detect detectText
// @Summary Identify the languages of a text
// @Tags Detect
// @Accept json
// @Produce json
// @Param payload body domain.DetectInput true "Text and options"
// @Success 200 {object} langid.Result "ok"
// @Failure 422 {object} httpkit.Envelope "text is absent"
// @Router /detect [post]
func (h *handlers) detect(r *stdhttp.Request, in domain.DetectInput) (any, error) {
	return h.svc.Detect(r.Context(), in)
}

// swagger:route POST /detect/batch Detect detectBatch
// @Summary Identify the languages of many texts
// @Tags Detect
// @Accept json
// @Produce json
// @Param payload body domain.BatchInput true "Texts and options"
// @Success 200 {object} domain.BatchOutput "ok"
// @Router /detect/batch [post]
func (h *handlers) batch(r *stdhttp.Request, in domain.BatchInput) (any, error) {
	return h.svc.DetectBatch(r.Context(), in)
}

// swagger:route GET /languages Detect detectLanguages
// @Summary Languages known to the loaded model
// @Tags Detect
// @Produce json
// @Success 200 {object} domain.LanguagesOutput "ok"
// @Router /languages [get]
func (h *handlers) languages(r *stdhttp.Request) (any, error) {
	return h.svc.Languages(r.Context())
}
