// @title         langid API
// @version       1.0.0
// @description   Language identification over HTTP

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"langid/internal/core/langmodel"
	"langid/internal/platform/config"
	"langid/internal/platform/logger"
	phttp "langid/internal/platform/net/http"
	"langid/internal/platform/net/middleware"

	"langid/internal/services/api"

	"github.com/go-chi/chi/v5"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		logger.Get().Fatal().Err(err).Msg("read .env")
	}

	// service-scoped config for HTTP etc (CORE_API_*)
	apiCfg := config.New().Prefix("CORE_API_")

	// bring up logging early
	opt := logger.FromEnv()
	if opt.Service == "" {
		opt.Service = "langid-api"
	}
	logger.Init(opt)
	l := logger.Get()

	// load the model before taking traffic so a bad file fails the deploy
	models := langmodel.File(apiCfg.MayString("MODEL_PATH", ""))
	m, err := models.Model()
	if err != nil {
		l.Fatal().Err(err).Str("source", models.Source()).Msg("model load failed")
	}
	l.Info().
		Str("model", m.Name).
		Str("revision", m.Revision).
		Int("languages", len(m.Languages())).
		Msg("model ready")

	timeout := apiCfg.MayDuration("REQUEST_TIMEOUT", 30*time.Second)
	srv := phttp.NewServer(phttp.ServerConfigFrom(apiCfg), func(mux *chi.Mux) {
		mux.Use(middleware.Defaults(timeout)...)
	})

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Logger:         logger.Named("api"),
			Models:         models,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		l.Fatal().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("bye")
}
