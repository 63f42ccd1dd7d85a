package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/yungbote/skillnest-backend/internal/clients/aiservice"
	"github.com/yungbote/skillnest-backend/internal/observability"
)

type fakeAI struct {
	err error
}

func (f fakeAI) GenerateQuiz(context.Context, aiservice.QuizRequest) (json.RawMessage, error) {
	return json.RawMessage(`{"questions":[]}`), f.err
}

func (f fakeAI) Summarize(context.Context, aiservice.SummarizeRequest) (*aiservice.SummaryResponse, error) {
	return &aiservice.SummaryResponse{}, f.err
}

func (f fakeAI) AskQuestion(context.Context, aiservice.QuestionRequest) (*aiservice.AnswerResponse, error) {
	return &aiservice.AnswerResponse{}, f.err
}

func (f fakeAI) Chat(context.Context, aiservice.ChatRequest) (*aiservice.ChatResponse, error) {
	return &aiservice.ChatResponse{}, f.err
}

func (f fakeAI) ChatHistory(context.Context, string) (*aiservice.ChatHistory, error) {
	return &aiservice.ChatHistory{}, f.err
}

func (f fakeAI) ClearConversation(context.Context, string) error { return f.err }

func (f fakeAI) Health(context.Context, string) (json.RawMessage, error) {
	return json.RawMessage(`{"status":"ok"}`), f.err
}

func TestInstrumentAIDisabledReturnsInner(t *testing.T) {
	inner := fakeAI{}
	if got := instrumentAI(inner, nil); got != aiBackend(inner) {
		t.Fatalf("expected inner client when metrics are off")
	}
}

func TestInstrumentAIRecordsResults(t *testing.T) {
	m := observability.NewMetrics(observability.MetricsConfig{Enabled: true}, nil)
	ctx := context.Background()

	ok := instrumentAI(fakeAI{}, m)
	if _, err := ok.GenerateQuiz(ctx, aiservice.QuizRequest{}); err != nil {
		t.Fatalf("GenerateQuiz: %v", err)
	}
	if _, err := ok.Chat(ctx, aiservice.ChatRequest{}); err != nil {
		t.Fatalf("Chat: %v", err)
	}

	down := instrumentAI(fakeAI{err: aiservice.ErrNotConfigured}, m)
	if _, err := down.Summarize(ctx, aiservice.SummarizeRequest{}); !errors.Is(err, aiservice.ErrNotConfigured) {
		t.Fatalf("expected error to pass through, got %v", err)
	}

	broken := instrumentAI(fakeAI{err: errors.New("boom")}, m)
	_, _ = broken.AskQuestion(ctx, aiservice.QuestionRequest{})

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`skn_ai_requests_total{feature="quiz",result="success"} 1`,
		`skn_ai_requests_total{feature="chat",result="success"} 1`,
		`skn_ai_requests_total{feature="video_summary",result="unavailable"} 1`,
		`skn_ai_requests_total{feature="video_qa",result="error"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}
