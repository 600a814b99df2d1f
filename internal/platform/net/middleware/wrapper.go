// Package middleware wraps chi middleware and adds the service's own request middleware
package middleware

import (
	"compress/flate"
	"net/http"
	"time"

	pstrings "langid/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Middleware is the stdlib middleware shape every helper here returns
type Middleware = func(http.Handler) http.Handler

// RequestID propagates X-Request-ID or mints one
func RequestID() Middleware { return chimw.RequestID }

// RealIP rewrites RemoteAddr from X-Forwarded-For / X-Real-IP
func RealIP() Middleware { return chimw.RealIP }

// Timeout cancels the request context after d
func Timeout(d time.Duration) Middleware { return chimw.Timeout(d) }

// NoCache disables client and proxy caching
func NoCache() Middleware { return chimw.NoCache }

// Compress negotiates gzip/deflate at level
func Compress(level int) Middleware {
	c := chimw.NewCompressor(level)
	return c.Handler
}

// StripSlashes drops a trailing slash before routing
func StripSlashes() Middleware { return chimw.StripSlashes }

// AllowContentType rejects bodies with other content types with 415
func AllowContentType(ct ...string) Middleware { return chimw.AllowContentType(ct...) }

// Throttle caps in-flight requests globally
func Throttle(limit int) Middleware { return chimw.Throttle(limit) }

// CORSOptions is the subset of go-chi/cors the service configures
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// CORS applies go-chi/cors, filling methods and headers the detect API needs when unset
func CORS(o CORSOptions) Middleware {
	return chicors.Handler(chicors.Options{
		AllowedOrigins:   pstrings.IfEmpty(o.AllowedOrigins, []string{"*"}),
		AllowedMethods:   pstrings.IfEmpty(o.AllowedMethods, []string{"GET", "POST", "OPTIONS"}),
		AllowedHeaders:   pstrings.IfEmpty(o.AllowedHeaders, []string{"Accept", "Content-Type", "X-Request-ID"}),
		ExposedHeaders:   pstrings.IfEmpty(o.ExposedHeaders, []string{"X-Request-ID", "Retry-After"}),
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}

// Defaults is the stack every route shares, outermost first
func Defaults(timeout time.Duration) []Middleware {
	return []Middleware{
		RealIP(),
		RequestID(),
		RecoverJSON,
		Timeout(timeout),
		Compress(flate.DefaultCompression),
		NoCache(),
	}
}
