package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/skillnest-backend/internal/clients/aiservice"
	"github.com/yungbote/skillnest-backend/internal/data/repos/testutil"
	"github.com/yungbote/skillnest-backend/internal/platform/apierr"
)

func chatbotWithServer(t *testing.T, h http.HandlerFunc) ChatbotService {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewChatbotService(testutil.Logger(t), aiservice.New(aiservice.Options{BaseURL: srv.URL, HTTPClient: srv.Client()}))
}

func TestChatForwardsTrimmedValues(t *testing.T) {
	var got aiservice.ChatRequest
	svc := chatbotWithServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chatbot/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"response":"Hi, I'm Bobby!","sessionId":"s-1"}`))
	})

	resp, err := svc.Chat(context.Background(), "  hello  ", " s-1 ")
	require.NoError(t, err)
	require.Equal(t, "Hi, I'm Bobby!", resp.Response)
	require.Equal(t, "hello", got.Message)
	require.Equal(t, "s-1", got.SessionID)
}

func TestChatValidation(t *testing.T) {
	svc := NewChatbotService(testutil.Logger(t), aiservice.New(aiservice.Options{}))

	_, err := svc.Chat(context.Background(), "   ", "s-1")
	require.Equal(t, http.StatusBadRequest, apierr.From(err).Status)

	_, err = svc.Chat(context.Background(), "hi", "")
	require.Equal(t, http.StatusBadRequest, apierr.From(err).Status)

	_, err = svc.Chat(context.Background(), strings.Repeat("a", MaxChatMessageLength+1), "s-1")
	require.Equal(t, http.StatusBadRequest, apierr.From(err).Status)

	// Exactly at the limit passes validation and fails on the unconfigured AI client.
	_, err = svc.Chat(context.Background(), strings.Repeat("a", MaxChatMessageLength), "s-1")
	var aiErr *AIError
	require.True(t, errors.As(err, &aiErr))
	require.Equal(t, http.StatusServiceUnavailable, aiErr.API.Status)
	require.Equal(t, FallbackOffline, aiErr.Fallback)
}

func TestChatUpstreamErrorCarriesFallback(t *testing.T) {
	svc := chatbotWithServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"boom"}`))
	})
	_, err := svc.Chat(context.Background(), "hello", "s-1")
	var aiErr *AIError
	require.True(t, errors.As(err, &aiErr))
	require.Equal(t, FallbackTechnicalDifficulties, aiErr.Fallback)
}

func TestHistoryDegradesToEmpty(t *testing.T) {
	svc := chatbotWithServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	require.Empty(t, svc.History(context.Background(), "s-1"))

	svc = chatbotWithServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"messages":[{"role":"user","content":"hi"}]}`))
	})
	msgs := svc.History(context.Background(), "s-1")
	require.Len(t, msgs, 1)
}

func TestClearConversationFailure(t *testing.T) {
	svc := chatbotWithServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusBadGateway)
	})
	err := svc.ClearConversation(context.Background(), "s-1")
	require.Error(t, err)
	require.Equal(t, http.StatusInternalServerError, apierr.From(err).Status)
}
