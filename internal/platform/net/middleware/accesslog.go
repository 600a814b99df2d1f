package middleware

import (
	"net/http"
	"time"

	"langid/internal/platform/logger"
	"langid/internal/platform/metrics"
	pnet "langid/internal/platform/net"

	"github.com/go-chi/chi/v5"
)

// AccessLogOptions configures the zerolog access log
type AccessLogOptions struct {
	// Slow logs requests at or above this duration at warn level; 0 disables
	Slow time.Duration
}

// captureWriter records status and body size
type captureWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	n, err := cw.ResponseWriter.Write(b)
	cw.bytes += n
	return n, err
}

func capture(w http.ResponseWriter) *captureWriter {
	if cw, ok := w.(*captureWriter); ok {
		return cw
	}
	return &captureWriter{ResponseWriter: w, status: http.StatusOK}
}

// AccessLogZerolog writes one line per request through the request scoped logger
func AccessLogZerolog(opt AccessLogOptions) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cw := capture(w)
			start := time.Now()
			r = r.WithContext(pnet.WithRequest(r.Context(), pnet.RequestID(r.Context())))

			next.ServeHTTP(cw, r)

			elapsed := time.Since(start)
			log := logger.C(r.Context())
			evt := log.Info()
			if opt.Slow > 0 && elapsed >= opt.Slow {
				evt = log.Warn()
			}
			evt.Int("status", cw.status).
				Dur("elapsed", elapsed).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("bytes", cw.bytes).
				Msg("request done")
		})
	}
}

// Metrics records request count and latency labeled by the matched chi route
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cw := capture(w)
		start := time.Now()

		next.ServeHTTP(cw, r)

		metrics.RecordHTTP(r.Method, routeOf(r), cw.status, time.Since(start))
	})
}

// routeOf keeps label cardinality bounded: unmatched paths collapse to one label
func routeOf(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
