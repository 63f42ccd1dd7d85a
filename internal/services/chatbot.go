package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yungbote/skillnest-backend/internal/clients/aiservice"
	"github.com/yungbote/skillnest-backend/internal/platform/apierr"
	"github.com/yungbote/skillnest-backend/internal/platform/logger"
)

const (
	MaxChatMessageLength = 1000
	chatbotHealthPath    = "/api/chatbot/health"
)

type ChatAIClient interface {
	Chat(ctx context.Context, req aiservice.ChatRequest) (*aiservice.ChatResponse, error)
	ChatHistory(ctx context.Context, sessionID string) (*aiservice.ChatHistory, error)
	ClearConversation(ctx context.Context, sessionID string) error
	Health(ctx context.Context, path string) (json.RawMessage, error)
}

type ChatbotService interface {
	Chat(ctx context.Context, message, sessionID string) (*aiservice.ChatResponse, error)
	// History never fails; upstream errors yield an empty history.
	History(ctx context.Context, sessionID string) []json.RawMessage
	ClearConversation(ctx context.Context, sessionID string) error
	Health(ctx context.Context) (json.RawMessage, error)
}

type chatbotService struct {
	log *logger.Logger
	ai  ChatAIClient
}

func NewChatbotService(baseLog *logger.Logger, ai ChatAIClient) ChatbotService {
	return &chatbotService{log: baseLog.With("service", "ChatbotService"), ai: ai}
}

// ValidateChatRequest trims both fields and enforces presence and the message length cap.
func ValidateChatRequest(message, sessionID string) (string, string, error) {
	message = strings.TrimSpace(message)
	sessionID = strings.TrimSpace(sessionID)
	if message == "" || sessionID == "" {
		return "", "", apierr.BadRequest(errors.New("message and sessionId are required"))
	}
	if utf8.RuneCountInString(message) > MaxChatMessageLength {
		return "", "", apierr.BadRequest(fmt.Errorf("message too long, maximum %d characters allowed", MaxChatMessageLength))
	}
	return message, sessionID, nil
}

func (s *chatbotService) Chat(ctx context.Context, message, sessionID string) (*aiservice.ChatResponse, error) {
	message, sessionID, err := ValidateChatRequest(message, sessionID)
	if err != nil {
		return nil, err
	}
	log := s.log.With("session_id", sessionID)
	log.Debug("Chat request", "message_len", len(message))

	resp, err := s.ai.Chat(ctx, aiservice.ChatRequest{Message: message, SessionID: sessionID})
	if err != nil {
		log.Error("Chat request failed", "error", err)
		return nil, classifyAIError(err)
	}
	if resp == nil || strings.TrimSpace(resp.Response) == "" {
		log.Error("AI service returned an empty chat response")
		return nil, invalidAIResponse()
	}
	if resp.SessionID == "" {
		resp.SessionID = sessionID
	}
	return resp, nil
}

func (s *chatbotService) History(ctx context.Context, sessionID string) []json.RawMessage {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return []json.RawMessage{}
	}
	h, err := s.ai.ChatHistory(ctx, sessionID)
	if err != nil {
		if !aiservice.IsNotFound(err) {
			s.log.Warn("Chat history unavailable", "session_id", sessionID, "error", err)
		}
		return []json.RawMessage{}
	}
	if h == nil || h.Messages == nil {
		return []json.RawMessage{}
	}
	return h.Messages
}

func (s *chatbotService) ClearConversation(ctx context.Context, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return apierr.BadRequest(errors.New("session id is required"))
	}
	if err := s.ai.ClearConversation(ctx, sessionID); err != nil {
		s.log.Error("Clear conversation failed", "session_id", sessionID, "error", err)
		return apierr.From(fmt.Errorf("clear conversation: %w", err))
	}
	return nil
}

func (s *chatbotService) Health(ctx context.Context) (json.RawMessage, error) {
	body, err := s.ai.Health(ctx, chatbotHealthPath)
	if err != nil {
		s.log.Warn("Chatbot health probe failed", "error", err)
		return nil, classifyAIError(err)
	}
	return body, nil
}
