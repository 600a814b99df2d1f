// Package module wires language detection into the API using modkit
package module

import (
	"net/http"

	modkit "langid/internal/modkit"
	"langid/internal/modkit/httpkit"
	"langid/internal/platform/net/http/bind"
	str "langid/internal/platform/strings"

	detecthttp "langid/internal/services/api/detect/http"
	detectsvc "langid/internal/services/api/detect/service"
)

// Name is the default module name and the key its Ports are registered under
const Name = "detect"

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws      []func(http.Handler) http.Handler
	ports    any
	register func(httpkit.Router)

	svc detectsvc.Service
}

// New constructs a detect module with the provided dependencies and options.
// Reads MAX_BATCH, WORKERS and MAX_BODY_BYTES under the deps config prefix
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName(Name), modkit.WithPrefix("/detect")}, opts...)...)

	svc := detectsvc.New(deps.Models, detectsvc.Options{
		MaxBatch: deps.Cfg.MayInt("MAX_BATCH", 256),
		Workers:  deps.Cfg.MayInt("WORKERS", 0),
	})
	body := bind.DefaultJSONOptions()
	body.MaxBytes = int64(deps.Cfg.MayInt("MAX_BODY_BYTES", int(body.MaxBytes)))

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    svc,
	}
	m.ports = b.Ports
	if m.ports == nil {
		m.ports = Ports{Service: svc}
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		detecthttp.Register(r, m.svc, body)
		external(r)
	}
	return m
}

// MountRoutes implements the modkit.Module interface. The language table sits beside the prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.Prefix(), func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		m.register(rr)
	})
	r.Group(func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		detecthttp.RegisterCatalog(rr, m.svc)
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.Lower(m.name) }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
