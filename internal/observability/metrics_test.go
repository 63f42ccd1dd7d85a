package observability

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestMetricsDisabledIsNil(t *testing.T) {
	m := NewMetrics(MetricsConfig{}, nil)
	if m != nil {
		t.Fatalf("expected nil metrics when disabled")
	}
	// nil receivers are no-ops
	m.IncWebhookEvent("stripe", "checkout.session.completed", "enrolled")
	m.ObserveAPI("GET", "/x", 200, time.Millisecond)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestMetricsExposition(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true}, nil)
	m.ObserveAPI("POST", "/stripe", 200, 30*time.Millisecond)
	m.IncWebhookEvent("stripe", "checkout.session.completed", "enrolled")
	m.IncWebhookEvent("stripe", "checkout.session.completed", "enrolled")
	m.ObserveAI("summary", "ok", 2*time.Second)
	m.IncRateLimited("chatbot")

	if got := m.WebhookEventCount("stripe", "checkout.session.completed", "enrolled"); got != 2 {
		t.Fatalf("webhook count = %v", got)
	}

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`skn_api_requests_total{method="POST",route="/stripe",status="200"} 1`,
		`skn_webhook_events_total{provider="stripe",event_type="checkout.session.completed",outcome="enrolled"} 2`,
		`skn_ai_request_duration_seconds_bucket{feature="summary",le="2"} 1`,
		`skn_ai_request_duration_seconds_bucket{feature="summary",le="1"} 0`,
		`skn_rate_limited_total{limiter="chatbot"} 1`,
		"# TYPE skn_api_request_duration_seconds histogram",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}
