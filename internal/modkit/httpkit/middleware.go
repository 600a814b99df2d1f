package httpkit

import (
	"net/http"
	"time"

	"langid/internal/platform/config"
	"langid/internal/platform/net/middleware"
)

// StackConfig tunes the API scope middleware
type StackConfig struct {
	Slow        time.Duration
	RateRPS     float64
	RateBurst   int
	CORSOrigins []string
}

// StackConfigFrom reads CORE_API_* style keys under cfg's prefix
func StackConfigFrom(cfg config.Conf) StackConfig {
	return StackConfig{
		Slow:        cfg.MayDuration("SLOW", 250*time.Millisecond),
		RateRPS:     cfg.MayFloat64("RATE_RPS", 20),
		RateBurst:   cfg.MayInt("RATE_BURST", 40),
		CORSOrigins: cfg.MayCSV("CORS_ORIGINS", nil),
	}
}

// CommonStack is the middleware for /api scopes, outermost first
func CommonStack(sc StackConfig) []func(http.Handler) http.Handler {
	limiter := middleware.NewRateLimiter(middleware.RateLimitOptions{RPS: sc.RateRPS, Burst: sc.RateBurst})
	return []func(http.Handler) http.Handler{
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: sc.CORSOrigins}),
		middleware.Metrics,
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: sc.Slow}),
		limiter.Handler,
	}
}
