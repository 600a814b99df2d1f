// Package http provides meta endpoints
package http

import (
	"context"
	"net/http"
	"time"

	"langid/internal/core/langmodel"
	"langid/internal/core/version"
	"langid/internal/modkit/httpkit"
	perr "langid/internal/platform/errors"

	"langid/internal/services/api/detect/domain"
)

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Models      *langmodel.Provider
	// Detect resolves the detect service at request time; modules register after meta is built
	Detect func() (domain.ServicePort, bool)
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/model", h.model)
}

//
// Swagger DTOs and route docs
//

// HealthResponse is the health payload
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"langid-api"`
	Started string `json:"started"  example:"2026-10-18T13:00:00Z"`
	Now     string `json:"now"      example:"2026-10-18T13:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"model"`
	Status string `json:"status" example:"ok"` // ok fail
	Error  string `json:"error,omitempty" example:"open model /etc/langid/model.json.gz: no such file or directory"`
	// Languages served by the detect module
	Languages int `json:"languages,omitempty" example:"25"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-10-18T13:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"    example:"langid-api"`
	Started string `json:"started" example:"2026-10-18T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// ModelResponse reports the loaded language model
type ModelResponse struct {
	Source    string           `json:"source"    example:"embedded"`
	Name      string           `json:"name"      example:"langid-core"`
	Revision  string           `json:"revision"  example:"2026.10.2"`
	Width     int              `json:"ngram_width" example:"3"`
	Languages int              `json:"languages" example:"25"`
	Grams     int              `json:"grams"     example:"3961"`
	Policy    langmodel.Policy `json:"policy"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 type HealthResponse ok
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness probe, ok once the model is loaded and the detect module serves it
// @Tags Meta
// @Produce json
// @Success 200 type ReadyResponse ok
// @Failure 503 {object} httpkit.Envelope "model not loaded or detect module missing"
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	checks := []ReadyCheck{h.modelCheck(), h.detectCheck(r.Context())}
	for _, c := range checks {
		if c.Status != "ok" {
			return nil, perr.Unavailablef("%s not ready: %s", c.Name, c.Error)
		}
	}
	return ReadyResponse{
		Status: "ok",
		Checks: checks,
		Now:    time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (h *handlers) modelCheck() ReadyCheck {
	check := ReadyCheck{Name: "model", Status: "ok"}
	switch {
	case h.deps.Models == nil:
		check = ReadyCheck{Name: "model", Status: "fail", Error: "no model provider"}
	case !h.deps.Models.Loaded():
		if _, err := h.deps.Models.Model(); err != nil {
			check.Status, check.Error = "fail", err.Error()
		}
	}
	return check
}

func (h *handlers) detectCheck(ctx context.Context) ReadyCheck {
	check := ReadyCheck{Name: "detect", Status: "fail"}
	if h.deps.Detect == nil {
		check.Error = "detect module not wired"
		return check
	}
	svc, ok := h.deps.Detect()
	if !ok {
		check.Error = "detect module not registered"
		return check
	}
	out, err := svc.Languages(ctx)
	if err != nil {
		check.Error = err.Error()
		return check
	}
	check.Status, check.Languages = "ok", len(out.Languages)
	return check
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 type version.BuildInfo ok
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(h.deps.ServiceName), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 type ServiceResponse ok
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := time.Since(h.deps.StartedAt)
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(uptime / time.Second),
	}, nil
}

// swagger:route GET /meta/model Meta metaModel
// @Summary Loaded language model and its policy
// @Tags Meta
// @Produce json
// @Success 200 type ModelResponse ok
// @Router /meta/model [get]
func (h *handlers) model(_ *http.Request) (any, error) {
	if h.deps.Models == nil {
		return nil, perr.Unavailablef("no model provider")
	}
	m, err := h.deps.Models.Model()
	if err != nil {
		return nil, err
	}
	return ModelResponse{
		Source:    h.deps.Models.Source(),
		Name:      m.Name,
		Revision:  m.Revision,
		Width:     m.Width,
		Languages: len(m.Languages()),
		Grams:     m.Grams(),
		Policy:    m.Policy,
	}, nil
}
