package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/yungbote/skillnest-backend/internal/clients/aiservice"
	"github.com/yungbote/skillnest-backend/internal/platform/apierr"
	"github.com/yungbote/skillnest-backend/internal/platform/logger"
)

const (
	defaultQuizQuestionCount = 10
	defaultQuizDifficulty    = "medium"
	defaultQuizQuestionType  = "mcq"

	quizHealthPath = "/health"
)

type QuizAIClient interface {
	GenerateQuiz(ctx context.Context, req aiservice.QuizRequest) (json.RawMessage, error)
	Health(ctx context.Context, path string) (json.RawMessage, error)
}

type QuizSettings struct {
	QuestionCount int      `json:"questionCount"`
	Difficulty    string   `json:"difficulty"`
	QuestionTypes []string `json:"questionTypes"`
	CourseID      string   `json:"courseId"`
	UserID        string   `json:"userId"`
}

type QuizService interface {
	// GenerateQuiz returns the AI service's quiz payload as-is. Nothing is cached.
	GenerateQuiz(ctx context.Context, content string, settings QuizSettings) (json.RawMessage, error)
	// Health returns the AI service's own health payload.
	Health(ctx context.Context) (json.RawMessage, error)
}

type quizService struct {
	log *logger.Logger
	ai  QuizAIClient
}

func NewQuizService(baseLog *logger.Logger, ai QuizAIClient) QuizService {
	return &quizService{log: baseLog.With("service", "QuizService"), ai: ai}
}

func (s *quizService) GenerateQuiz(ctx context.Context, content string, settings QuizSettings) (json.RawMessage, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apierr.BadRequest(errors.New("content is required"))
	}
	req := aiservice.QuizRequest{
		Content: content,
		Settings: aiservice.QuizSettings{
			QuestionCount: settings.QuestionCount,
			Difficulty:    strings.TrimSpace(settings.Difficulty),
			QuestionTypes: settings.QuestionTypes,
		},
		CourseID: settings.CourseID,
		UserID:   settings.UserID,
	}
	if req.Settings.QuestionCount <= 0 {
		req.Settings.QuestionCount = defaultQuizQuestionCount
	}
	if req.Settings.Difficulty == "" {
		req.Settings.Difficulty = defaultQuizDifficulty
	}
	if len(req.Settings.QuestionTypes) == 0 {
		req.Settings.QuestionTypes = []string{defaultQuizQuestionType}
	}

	out, err := s.ai.GenerateQuiz(ctx, req)
	if err != nil {
		s.log.Error("Quiz generation failed", "course_id", req.CourseID, "error", err)
		return nil, classifyAIError(err)
	}
	return out, nil
}

func (s *quizService) Health(ctx context.Context) (json.RawMessage, error) {
	body, err := s.ai.Health(ctx, quizHealthPath)
	if err != nil {
		s.log.Warn("AI service health probe failed", "error", err)
		return nil, classifyAIError(err)
	}
	return body, nil
}
