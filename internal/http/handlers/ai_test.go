package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/skillnest-backend/internal/clients/aiservice"
	"github.com/yungbote/skillnest-backend/internal/services"
)

func TestGenerateQuizPassesThrough(t *testing.T) {
	var got aiservice.QuizRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"quiz_id":"q-9","questions":[{"q":"?"}]}`))
	}))
	defer srv.Close()

	log := newTestLogger(t)
	h := NewAIHandler(log, services.NewQuizService(log, aiservice.New(aiservice.Options{BaseURL: srv.URL, HTTPClient: srv.Client()})))
	r := newTestRouter()
	r.POST("/api/ai/generate-quiz", asUser("user_7", ""), h.GenerateQuiz)

	rec := do(t, r, http.MethodPost, "/api/ai/generate-quiz", `{"content":"closures","settings":{"questionCount":3}}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"quiz_id":"q-9","questions":[{"q":"?"}]}`, rec.Body.String())
	require.Equal(t, 3, got.Settings.QuestionCount)
	require.Equal(t, "user_7", got.UserID)

	rec = do(t, r, http.MethodPost, "/api/ai/generate-quiz", `{"settings":{}}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAIHealthUnavailable(t *testing.T) {
	log := newTestLogger(t)
	h := NewAIHandler(log, services.NewQuizService(log, aiservice.New(aiservice.Options{})))
	r := newTestRouter()
	r.GET("/api/ai/health", h.Health)

	rec := do(t, r, http.MethodGet, "/api/ai/health", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, services.FallbackOffline, decode(t, rec)["fallback"])
}
