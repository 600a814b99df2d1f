package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "langid/internal/platform/errors"
	pnet "langid/internal/platform/net"
	phttp "langid/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func reqWithID(method, path, body, rid string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	return req.WithContext(pnet.WithRequest(req.Context(), rid))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) phttp.Envelope {
	t.Helper()
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	return env
}

func TestRespondOKAndError(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.RespondOK(rec, reqWithID("GET", "/", "", "rid-1"), map[string]string{"code": "en"})
	env := decode(t, rec)
	if rec.Code != http.StatusOK || env.RequestID != "rid-1" || env.Data == nil {
		t.Fatalf("ok envelope = %+v", env)
	}

	rec = httptest.NewRecorder()
	phttp.RespondError(rec, reqWithID("GET", "/", "", "rid-2"), perr.WithField(perr.InvalidArgf("text is required"), "text"))
	env = decode(t, rec)
	if rec.Code != http.StatusUnprocessableEntity || env.Code != perr.ErrorCodeInvalidArgument ||
		env.Field != "text" || env.Error != "text is required" {
		t.Fatalf("error envelope = %d %+v", rec.Code, env)
	}
}

func TestHandleVariants(t *testing.T) {
	cases := []struct {
		name string
		resp phttp.Response
		want int
	}{
		{"ok", phttp.OK("x"), http.StatusOK},
		{"zero status", phttp.Response{Body: "x"}, http.StatusOK},
		{"no content", phttp.NoContent(), http.StatusNoContent},
		{"project error", phttp.Error(perr.TooManyRequestsf("slow down")), http.StatusTooManyRequests},
		{"foreign error", phttp.Error(errors.New("boom")), http.StatusInternalServerError},
		{"header", phttp.Response{Status: http.StatusAccepted, Header: http.Header{"X-Batch": {"b1"}}}, http.StatusAccepted},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			phttp.Handle(func(*http.Request) phttp.Response { return c.resp })(rec, reqWithID("GET", "/", "", "r"))
			if rec.Code != c.want {
				t.Fatalf("status = %d, want %d", rec.Code, c.want)
			}
			if c.want == http.StatusNoContent && rec.Body.Len() != 0 {
				t.Fatalf("204 should have no body")
			}
			if c.resp.Header != nil && rec.Header().Get("X-Batch") != "b1" {
				t.Fatalf("header not copied")
			}
		})
	}
}

type echoIn struct {
	Text string `json:"text" validate:"required"`
}

func TestJSONSugar(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	phttp.PostJSON(r, "/echo", func(_ *http.Request, in echoIn) (any, error) {
		return map[string]int{"len": len(in.Text)}, nil
	})
	phttp.GetJSON(r, "/fail", func(*http.Request) (any, error) {
		return nil, perr.Unavailablef("model loading")
	})

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, reqWithID("POST", "/echo", `{"text":"abc"}`, "r1"))
	env := decode(t, rec)
	if m, ok := env.Data.(map[string]any); !ok || m["len"] != float64(3) {
		t.Fatalf("echo data = %#v", env.Data)
	}

	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, reqWithID("POST", "/echo", `{}`, "r2"))
	if env := decode(t, rec); rec.Code != http.StatusBadRequest || env.Field != "text" {
		t.Fatalf("validation = %d %+v", rec.Code, env)
	}

	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, reqWithID("GET", "/fail", "", "r3"))
	if env := decode(t, rec); rec.Code != http.StatusServiceUnavailable || env.Code != perr.ErrorCodeUnavailable {
		t.Fatalf("fail = %d %+v", rec.Code, env)
	}
}
