package langmodel

import (
	"sync"
	"sync/atomic"
	"time"

	"langid/internal/platform/logger"
	"langid/internal/platform/metrics"
)

// Provider loads a model lazily, exactly once, and hands every caller the same result
type Provider struct {
	source string
	get    func() (*Model, error)
	loaded atomic.Bool
}

// NewProvider wraps load so it runs on first use only
func NewProvider(source string, load func() (*Model, error)) *Provider {
	p := &Provider{source: source}
	p.get = sync.OnceValues(func() (*Model, error) {
		start := time.Now()
		m, err := load()
		log := logger.Named("langmodel")
		if err != nil {
			metrics.RecordModelLoad(0, err)
			log.Error().Err(err).Str("source", source).Msg("model load failed")
			return nil, err
		}
		metrics.RecordModelLoad(len(m.Languages()), nil)
		log.Info().
			Str("source", source).
			Str("model", m.Name).
			Str("revision", m.Revision).
			Int("languages", len(m.Languages())).
			Int("grams", m.Grams()).
			Dur("took", time.Since(start)).
			Msg("model loaded")
		p.loaded.Store(true)
		return m, nil
	})
	return p
}

// Embedded returns a provider for the model compiled into the binary
func Embedded() *Provider { return NewProvider("embedded", Load) }

// File returns a provider for a model on disk; an empty path means the embedded model
func File(path string) *Provider {
	if path == "" {
		return Embedded()
	}
	return NewProvider(path, func() (*Model, error) { return LoadFile(path) })
}

// Model loads on first call and returns the same model or error afterwards
func (p *Provider) Model() (*Model, error) { return p.get() }

// Loaded reports whether a model has been loaded successfully
func (p *Provider) Loaded() bool { return p.loaded.Load() }

// Source names where the model comes from
func (p *Provider) Source() string { return p.source }
