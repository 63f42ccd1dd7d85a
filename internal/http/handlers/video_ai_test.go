package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/skillnest-backend/internal/clients/aiservice"
	"github.com/yungbote/skillnest-backend/internal/data/repos"
	"github.com/yungbote/skillnest-backend/internal/data/repos/testutil"
	"github.com/yungbote/skillnest-backend/internal/services"
)

type videoAIFixture struct {
	router     http.Handler
	summarize  atomic.Int32
	askedCount atomic.Int32
}

func newVideoAIFixture(t *testing.T) *videoAIFixture {
	t.Helper()
	f := &videoAIFixture{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/video-ai/summarize":
			f.summarize.Add(1)
			_, _ = w.Write([]byte(`{"summary":"Hooks add state to function components.","key_points":["useState","useEffect"],"ai_powered":true}`))
		case "/api/video-ai/ask-question":
			f.askedCount.Add(1)
			_, _ = w.Write([]byte(`{"answer":"useState declares a state variable.","relevant_timestamps":["00:30"],"confidence":"high"}`))
		case "/api/video-ai/health":
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	db := testutil.DB(t)
	log := newTestLogger(t)
	testutil.SeedTranscript(t, context.Background(), db, "react-hooks-intro")
	svc := services.NewVideoAIService(
		log,
		aiservice.New(aiservice.Options{BaseURL: srv.URL, HTTPClient: srv.Client()}),
		repos.NewVideoTranscriptRepo(db, log),
		repos.NewVideoSummaryRepo(db, log),
		repos.NewVideoQARepo(db, log),
	)
	h := NewVideoAIHandler(log, svc, srv.URL)
	r := newTestRouter()
	g := r.Group("/api/video-ai", asUser("student_1", ""))
	g.POST("/summarize", h.Summarize)
	g.POST("/summarize/:videoId", h.Summarize)
	g.POST("/ask-question/:videoId", h.AskQuestion)
	g.GET("/questions/:videoId", h.QuestionHistory)
	g.GET("/summaries/:videoId", h.Summaries)
	g.GET("/videos", h.ListVideos)
	g.POST("/transcripts", h.UploadTranscript)
	g.GET("/health", h.Health)
	f.router = r
	return f
}

func TestVideoSummaryIsCachedAfterFirstCall(t *testing.T) {
	f := newVideoAIFixture(t)

	rec := do(t, f.router, http.MethodPost, "/api/video-ai/summarize/react-hooks-intro", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	first := decode(t, rec)
	require.Equal(t, services.SourceAI, first["source"])

	rec = do(t, f.router, http.MethodPost, "/api/video-ai/summarize", `{"videoId":"react-hooks-intro"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	second := decode(t, rec)
	require.Equal(t, services.SourceCache, second["source"])
	require.Equal(t, first["data"].(map[string]any)["id"], second["data"].(map[string]any)["id"])
	require.EqualValues(t, 1, f.summarize.Load())

	rec = do(t, f.router, http.MethodGet, "/api/video-ai/summaries/react-hooks-intro", "", nil)
	require.Len(t, decode(t, rec)["data"], 1)
}

func TestVideoQuestionServedFromCache(t *testing.T) {
	f := newVideoAIFixture(t)

	rec := do(t, f.router, http.MethodPost, "/api/video-ai/ask-question/react-hooks-intro", `{"question":"What is useState?"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, services.SourceAI, decode(t, rec)["source"])

	rec = do(t, f.router, http.MethodPost, "/api/video-ai/ask-question/react-hooks-intro", `{"question":"what is  usestate"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Equal(t, services.SourceCache, body["source"])
	require.Equal(t, "useState declares a state variable.", body["data"].(map[string]any)["answer"])
	require.EqualValues(t, 1, f.askedCount.Load())

	rec = do(t, f.router, http.MethodGet, "/api/video-ai/questions/react-hooks-intro", "", nil)
	require.Len(t, decode(t, rec)["data"], 1)
}

func TestVideoAIMissingTranscript(t *testing.T) {
	f := newVideoAIFixture(t)
	rec := do(t, f.router, http.MethodPost, "/api/video-ai/summarize/unknown-video", `{"summaryType":"brief"}`, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "transcript_not_found", decode(t, rec)["code"])
	require.EqualValues(t, 0, f.summarize.Load())
}

func TestVideoAIListAndHealth(t *testing.T) {
	f := newVideoAIFixture(t)
	rec := do(t, f.router, http.MethodGet, "/api/video-ai/videos", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 1, decode(t, rec)["count"])

	rec = do(t, f.router, http.MethodGet, "/api/video-ai/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Equal(t, "connected", body["services"].(map[string]any)["ai_service"])
}

func TestUploadTranscriptValidatesSegments(t *testing.T) {
	f := newVideoAIFixture(t)

	bad := `{"videoId":"go-basics","title":"Go Basics","transcript":[{"timestamp":"soon","text":"hello"}]}`
	rec := do(t, f.router, http.MethodPost, "/api/video-ai/transcripts", bad, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	good := `{"videoId":"go-basics","title":"Go Basics","cloudinaryUrl":"https://cdn.example/go.mp4","transcript":[{"timestamp":"00:00","text":"hello"},{"timestamp":"1:02:03","text":"bye"}]}`
	rec = do(t, f.router, http.MethodPost, "/api/video-ai/transcripts", good, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	data := decode(t, rec)["data"].(map[string]any)
	require.Equal(t, "https://cdn.example/go.mp4", data["mediaUrl"])

	rec = do(t, f.router, http.MethodGet, "/api/video-ai/videos", "", nil)
	require.EqualValues(t, 2, decode(t, rec)["count"])
}
