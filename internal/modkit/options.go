package modkit

import (
	"net/http"

	phttp "langid/internal/platform/net/http"
)

// Option mutates a module's build configuration
type Option func(*buildCfg)

type buildCfg struct {
	name     string
	prefix   string
	mw       []func(http.Handler) http.Handler
	ports    any
	register func(phttp.Router)
}

// WithName names the module in logs and the port registry
func WithName(name string) Option { return func(c *buildCfg) { c.name = name } }

// WithPrefix mounts the module under prefix
func WithPrefix(prefix string) Option { return func(c *buildCfg) { c.prefix = prefix } }

// WithMiddlewares appends module scoped middleware, outermost first
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(c *buildCfg) { c.mw = append(c.mw, mw...) }
}

// WithPorts sets the port set the module exposes to others
func WithPorts[T any](p T) Option { return func(c *buildCfg) { c.ports = p } }

// WithRegister sets the function that attaches endpoints to the module router
func WithRegister(fn func(phttp.Router)) Option { return func(c *buildCfg) { c.register = fn } }
