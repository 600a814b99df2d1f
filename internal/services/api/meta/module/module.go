// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"net/http"
	"time"

	modkit "langid/internal/modkit"
	"langid/internal/modkit/httpkit"
	"langid/internal/modkit/module"
	str "langid/internal/platform/strings"

	"langid/internal/services/api/detect/domain"
	detectmod "langid/internal/services/api/detect/module"
	metahttp "langid/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	register func(httpkit.Router)

	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		startedAt: time.Now(),
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: deps.Cfg.MayString("SERVICE_NAME", "langid-api"),
			StartedAt:   m.startedAt,
			Models:      deps.Models,
			Detect:      detectService,
		})
		external(r)
	}

	return m
}

// detectService looks up the detect module's ports in the process registry
func detectService() (domain.ServicePort, bool) {
	p, ok := module.PortsAs[detectmod.Ports](detectmod.Name)
	return p.Service, ok && p.Service != nil
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.Prefix(), func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		m.register(rr)
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.Lower(m.name) }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares implements the modkit.Module interface
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
