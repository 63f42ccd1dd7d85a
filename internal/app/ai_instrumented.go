package app

import (
	"context"
	"encoding/json"
	"time"

	"github.com/yungbote/skillnest-backend/internal/clients/aiservice"
	"github.com/yungbote/skillnest-backend/internal/observability"
)

// aiBackend is the subset of *aiservice.Client the services call.
type aiBackend interface {
	GenerateQuiz(ctx context.Context, req aiservice.QuizRequest) (json.RawMessage, error)
	Summarize(ctx context.Context, req aiservice.SummarizeRequest) (*aiservice.SummaryResponse, error)
	AskQuestion(ctx context.Context, req aiservice.QuestionRequest) (*aiservice.AnswerResponse, error)
	Chat(ctx context.Context, req aiservice.ChatRequest) (*aiservice.ChatResponse, error)
	ChatHistory(ctx context.Context, sessionID string) (*aiservice.ChatHistory, error)
	ClearConversation(ctx context.Context, sessionID string) error
	Health(ctx context.Context, path string) (json.RawMessage, error)
}

type instrumentedAI struct {
	inner   aiBackend
	metrics *observability.Metrics
}

// instrumentAI records call counts and latency per AI feature. It returns
// inner unchanged when metrics are off.
func instrumentAI(inner aiBackend, m *observability.Metrics) aiBackend {
	if m == nil {
		return inner
	}
	return &instrumentedAI{inner: inner, metrics: m}
}

func (a *instrumentedAI) GenerateQuiz(ctx context.Context, req aiservice.QuizRequest) (json.RawMessage, error) {
	start := time.Now()
	out, err := a.inner.GenerateQuiz(ctx, req)
	a.observe("quiz", err, time.Since(start))
	return out, err
}

func (a *instrumentedAI) Summarize(ctx context.Context, req aiservice.SummarizeRequest) (*aiservice.SummaryResponse, error) {
	start := time.Now()
	out, err := a.inner.Summarize(ctx, req)
	a.observe("video_summary", err, time.Since(start))
	return out, err
}

func (a *instrumentedAI) AskQuestion(ctx context.Context, req aiservice.QuestionRequest) (*aiservice.AnswerResponse, error) {
	start := time.Now()
	out, err := a.inner.AskQuestion(ctx, req)
	a.observe("video_qa", err, time.Since(start))
	return out, err
}

func (a *instrumentedAI) Chat(ctx context.Context, req aiservice.ChatRequest) (*aiservice.ChatResponse, error) {
	start := time.Now()
	out, err := a.inner.Chat(ctx, req)
	a.observe("chat", err, time.Since(start))
	return out, err
}

func (a *instrumentedAI) ChatHistory(ctx context.Context, sessionID string) (*aiservice.ChatHistory, error) {
	start := time.Now()
	out, err := a.inner.ChatHistory(ctx, sessionID)
	a.observe("chat_history", err, time.Since(start))
	return out, err
}

func (a *instrumentedAI) ClearConversation(ctx context.Context, sessionID string) error {
	start := time.Now()
	err := a.inner.ClearConversation(ctx, sessionID)
	a.observe("chat_clear", err, time.Since(start))
	return err
}

func (a *instrumentedAI) Health(ctx context.Context, path string) (json.RawMessage, error) {
	start := time.Now()
	out, err := a.inner.Health(ctx, path)
	a.observe("health", err, time.Since(start))
	return out, err
}

func (a *instrumentedAI) observe(feature string, err error, dur time.Duration) {
	result := "success"
	switch {
	case err == nil:
	case aiservice.IsUnavailable(err):
		result = "unavailable"
	default:
		result = "error"
	}
	a.metrics.ObserveAI(feature, result, dur)
}
