// Package net carries request scoped identifiers between middleware and handlers
package net

import (
	"context"
	stdnet "net"
	"net/http"

	"langid/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// WithRequest puts reqID where both chi and the logger look for it
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	return logger.WithRequest(ctx, reqID)
}

// RequestID returns the chi request id or ""
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// ClientIP returns the host part of RemoteAddr. Mount chi's RealIP first when behind a proxy
func ClientIP(r *http.Request) string {
	host, _, err := stdnet.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
