package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	kit "langid/internal/platform/testkit"
)

func TestRateLimiterPerClientBuckets(t *testing.T) {
	l := NewRateLimiter(RateLimitOptions{RPS: 1, Burst: 2})
	now := time.Unix(1_700_000_000, 0)
	l.now = func() time.Time { return now }

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatalf("burst of two should pass")
	}
	if l.Allow("a") {
		t.Fatalf("third request inside the burst window should be refused")
	}
	if !l.Allow("b") {
		t.Fatalf("other clients have their own bucket")
	}

	now = now.Add(time.Second)
	if !l.Allow("a") {
		t.Fatalf("one token refills per second")
	}
}

func TestRateLimiterDisabled(t *testing.T) {
	l := NewRateLimiter(RateLimitOptions{})
	for i := range 100 {
		if !l.Allow("a") {
			t.Fatalf("request %d refused with limiting off", i)
		}
	}
	if n := l.Clients(); n != 0 {
		t.Fatalf("Clients() = %d, want 0", n)
	}
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	l := NewRateLimiter(RateLimitOptions{RPS: 5, Burst: 1, IdleTTL: time.Minute})
	now := time.Unix(1_700_000_000, 0)
	l.now = func() time.Time { return now }

	l.Allow("a")
	l.Allow("b")
	if n := l.Clients(); n != 2 {
		t.Fatalf("Clients() = %d, want 2", n)
	}

	now = now.Add(2 * time.Minute)
	l.Allow("c")
	if n := l.Clients(); n != 1 {
		t.Fatalf("idle clients kept: Clients() = %d, want 1", n)
	}
}

func TestRateLimiterHandler(t *testing.T) {
	l := NewRateLimiter(RateLimitOptions{RPS: 0.5, Burst: 1})
	h := l.Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/detect", nil)
	req.RemoteAddr = "192.0.2.1:4000"
	h.ServeHTTP(first, req)
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d", first.Code)
	}

	second := httptest.NewRecorder()
	h.ServeHTTP(second, req)
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second status = %d, want 429", second.Code)
	}
	if got := second.Header().Get("Retry-After"); got != "2" {
		t.Fatalf("Retry-After = %q, want 2", got)
	}
	kit.MustContain(t, second.Body.String(), "rate limit exceeded")
}
