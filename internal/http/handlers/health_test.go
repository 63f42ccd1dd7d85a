package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestHealthEndpoints(t *testing.T) {
	healthy := NewHealthHandler(func(context.Context) error { return nil }, true)
	r := newTestRouter()
	r.GET("/healthcheck", healthy.HealthCheck)
	r.GET("/api/health", healthy.Summary)

	rec := do(t, r, http.MethodGet, "/healthcheck", "", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthcheck: %d %q", rec.Code, rec.Body.String())
	}
	rec = do(t, r, http.MethodGet, "/api/health", "", nil)
	services := decode(t, rec)["services"].(map[string]any)
	if rec.Code != http.StatusOK || services["ai_service"] != "configured" {
		t.Fatalf("summary: %d %v", rec.Code, services)
	}

	down := NewHealthHandler(func(context.Context) error { return errors.New("no db") }, false)
	r = newTestRouter()
	r.GET("/api/health", down.Summary)
	rec = do(t, r, http.MethodGet, "/api/health", "", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
