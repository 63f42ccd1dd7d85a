package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillnest-backend/internal/platform/apierr"
)

type withFallback struct{ error }

func (withFallback) FallbackMessage() string { return "try later" }

func (w withFallback) Unwrap() error { return w.error }

func render(t *testing.T, fn func(c *gin.Context)) (*httptest.ResponseRecorder, ErrorBody) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	fn(c)
	var body ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v (%s)", err, rec.Body.String())
	}
	return rec, body
}

func TestRespondAPIError(t *testing.T) {
	rec, body := render(t, func(c *gin.Context) {
		RespondAPIError(c, apierr.NotFound(apierr.CodeCourseNotFound, errors.New("course not found")))
	})
	if rec.Code != http.StatusNotFound || body.Success || body.Code != apierr.CodeCourseNotFound || body.Message != "course not found" {
		t.Fatalf("unexpected response %d %+v", rec.Code, body)
	}

	rec, body = render(t, func(c *gin.Context) { RespondAPIError(c, errors.New("boom")) })
	if rec.Code != http.StatusInternalServerError || body.Code != apierr.CodeInternal {
		t.Fatalf("unexpected response %d %+v", rec.Code, body)
	}
}

func TestRespondAPIErrorFallback(t *testing.T) {
	err := withFallback{apierr.New(http.StatusServiceUnavailable, apierr.CodeAIServiceUnavailable, errors.New("down"))}
	rec, body := render(t, func(c *gin.Context) { RespondAPIError(c, err) })
	if rec.Code != http.StatusServiceUnavailable || body.Fallback != "try later" {
		t.Fatalf("unexpected response %d %+v", rec.Code, body)
	}
}
