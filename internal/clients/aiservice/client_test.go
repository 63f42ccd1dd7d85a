package aiservice

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSummarizeSendsSnakeCaseAndAuth(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/video-ai/summarize", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"video_id":"v1","summary":"short","key_points":["a","b"],"ai_powered":true}`))
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL + "/", APIKey: "k-123", HTTPClient: srv.Client()})
	out, err := c.Summarize(context.Background(), SummarizeRequest{
		VideoID:     "v1",
		Transcript:  []TranscriptSegment{{Timestamp: "00:00", Text: "hello"}},
		SummaryType: "brief",
	})
	require.NoError(t, err)
	require.Equal(t, "short", out.Summary)
	require.Equal(t, []string{"a", "b"}, out.KeyPoints)
	require.Equal(t, "Bearer k-123", gotAuth)
	require.Equal(t, "v1", gotBody["video_id"])
	require.Equal(t, "brief", gotBody["summary_type"])
}

func TestHTTPErrorParsesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":"transcript too short"}`))
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL, HTTPClient: srv.Client()})
	_, err := c.AskQuestion(context.Background(), QuestionRequest{VideoID: "v1", Question: "why?"})
	var he *HTTPError
	require.True(t, errors.As(err, &he))
	require.Equal(t, http.StatusUnprocessableEntity, he.StatusCode)
	require.Equal(t, "transcript too short", he.Detail)
	require.False(t, IsUnavailable(err))
}

func TestNotConfigured(t *testing.T) {
	c := New(Options{})
	require.False(t, c.Configured())
	_, err := c.Chat(context.Background(), ChatRequest{Message: "hi", SessionID: "s"})
	require.ErrorIs(t, err, ErrNotConfigured)
	require.True(t, IsUnavailable(err))
}

func TestTimeoutIsUnavailable(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := New(Options{BaseURL: srv.URL, Timeout: 50 * time.Millisecond, HTTPClient: srv.Client()})
	_, err := c.GenerateQuiz(context.Background(), QuizRequest{Content: "x"})
	require.Error(t, err)
	require.True(t, IsUnavailable(err))
	require.ErrorIs(t, err, ErrTimeout)
}

func TestChatHistoryNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chatbot/history/sess%201", r.URL.EscapedPath())
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL, HTTPClient: srv.Client()})
	_, err := c.ChatHistory(context.Background(), "sess 1")
	require.True(t, IsNotFound(err))
}

func TestAnswerHelpers(t *testing.T) {
	a := &AnswerResponse{RelevantTimestamps: []string{"01:10"}, Confidence: "HIGH"}
	require.Equal(t, []string{"01:10"}, a.AllTimestamps())
	require.Equal(t, "high", a.NormalizedConfidence())

	b := &AnswerResponse{Timestamps: []string{"00:05"}, Confidence: "unsure"}
	require.Equal(t, []string{"00:05"}, b.AllTimestamps())
	require.Equal(t, "medium", b.NormalizedConfidence())
}
