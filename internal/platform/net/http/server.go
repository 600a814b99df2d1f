package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"langid/internal/platform/config"
	"langid/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// ServerConfig holds listener settings, read from CORE_API_* by ServerConfigFrom
type ServerConfig struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
}

// ServerConfigFrom reads listener settings under cfg's prefix
func ServerConfigFrom(cfg config.Conf) ServerConfig {
	return ServerConfig{
		Addr:              cfg.MayString("PORT", ":4000"),
		ReadHeaderTimeout: cfg.MayDuration("READ_HEADER_TIMEOUT", 10*time.Second),
		ReadTimeout:       cfg.MayDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:      cfg.MayDuration("WRITE_TIMEOUT", 60*time.Second),
		IdleTimeout:       cfg.MayDuration("IDLE_TIMEOUT", 2*time.Minute),
	}
}

// Server is chi behind a stdlib http.Server
type Server struct {
	addr string
	mux  *chi.Mux
	srv  *stdhttp.Server
}

// NewServer builds a server. opts see the raw mux before any route is mounted
func NewServer(sc ServerConfig, opts ...func(*chi.Mux)) *Server {
	if sc.Addr == "" {
		sc.Addr = ":4000"
	}
	m := chi.NewRouter()
	for _, o := range opts {
		o(m)
	}
	return &Server{
		addr: sc.Addr,
		mux:  m,
		srv: &stdhttp.Server{
			Addr:              sc.Addr,
			Handler:           m,
			ReadHeaderTimeout: sc.ReadHeaderTimeout,
			ReadTimeout:       sc.ReadTimeout,
			WriteTimeout:      sc.WriteTimeout,
			IdleTimeout:       sc.IdleTimeout,
		},
	}
}

// Router returns the mountable facade over the mux
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr returns the configured listen address
func (s *Server) Addr() string { return s.addr }

// Run serves until ctx ends or the listener fails. A ctx-triggered stop drains
// in-flight requests for up to 10 seconds and returns nil
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.addr).Msg("http listening")
		errc <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info().Msg("http draining")
		if err := s.srv.Shutdown(sctx); err != nil {
			return err
		}
		<-errc
		return nil
	}
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }
