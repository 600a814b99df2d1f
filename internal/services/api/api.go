// Package api provides the HTTP API for the application
package api

import (
	"langid/internal/core/langmodel"
	"langid/internal/platform/config"
	"langid/internal/platform/logger"
	"langid/internal/platform/metrics"
	phttp "langid/internal/platform/net/http"

	"langid/internal/modkit"
	"langid/internal/modkit/httpkit"
	"langid/internal/modkit/module"
	"langid/internal/modkit/swaggerkit"

	detectmod "langid/internal/services/api/detect/module"
	metamod "langid/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Logger         *logger.Logger
	Models         *langmodel.Provider
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	log := opt.Logger
	if log == nil {
		log = logger.Named("api")
	}
	if opt.Models == nil {
		opt.Models = langmodel.Embedded()
	}

	deps := modkit.Deps{
		Log:    log,
		Cfg:    opt.Config,
		Models: opt.Models,
	}

	mods := []module.Module{
		metamod.New(deps),
		detectmod.New(deps),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(httpkit.StackConfigFrom(opt.Config)), func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name for cross-module lookups
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	r.Handle("/metrics", metrics.Handler())

	log.Info().
		Int("modules", len(mods)).
		Bool("swagger", opt.EnableSwagger).
		Bool("profiler", opt.EnableProfiler).
		Str("model", opt.Models.Source()).
		Msg("api mounted")
}
