package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	kit "langid/internal/platform/testkit"
)

func scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	return string(body)
}

func TestCollectorsAreExposed(t *testing.T) {
	RecordHTTP("POST", "/api/v1/detect", 200, 3*time.Millisecond)
	RecordDetection("en", true, 24, time.Millisecond)
	RecordRateLimited("/api/v1/detect")
	RecordBatch(4)

	out := scrape(t)
	kit.MustContain(t, out, `langid_http_requests_total{method="POST",route="/api/v1/detect",status="200"}`)
	kit.MustContain(t, out, `langid_detections_total{language="en",reliable="true"}`)
	kit.MustContain(t, out, `langid_rate_limit_hits_total{route="/api/v1/detect"}`)
	kit.MustContain(t, out, "langid_batch_size_bucket")
	kit.MustContain(t, out, "langid_detection_text_bytes_sum")
}

func TestRecordModelLoad(t *testing.T) {
	RecordModelLoad(25, nil)
	RecordModelLoad(0, errors.New("corrupt"))

	out := scrape(t)
	kit.MustContain(t, out, "langid_model_languages 25")
	kit.MustContain(t, out, `langid_model_loads_total{status="error"}`)
	kit.MustContain(t, out, `langid_model_loads_total{status="ok"}`)
}
