package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/yungbote/skillnest-backend/internal/http/response"
	"github.com/yungbote/skillnest-backend/internal/platform/apierr"
	"github.com/yungbote/skillnest-backend/internal/platform/logger"
	"github.com/yungbote/skillnest-backend/internal/services"
)

type ChatbotHandler struct {
	log     *logger.Logger
	chatbot services.ChatbotService
}

func NewChatbotHandler(log *logger.Logger, chatbot services.ChatbotService) *ChatbotHandler {
	return &ChatbotHandler{log: log.With("handler", "ChatbotHandler"), chatbot: chatbot}
}

// POST /api/chatbot/chat
// body: { "message": "...", "sessionId": "..." }
// Read with ShouldBindBodyWith because the rate limiter already consumed the body.
func (h *ChatbotHandler) Chat(c *gin.Context) {
	var req struct {
		Message   string `json:"message"`
		SessionID string `json:"sessionId"`
	}
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.RespondAPIError(c, apierr.BadRequest(err))
		return
	}
	out, err := h.chatbot.Chat(c.Request.Context(), req.Message, req.SessionID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondData(c, http.StatusOK, gin.H{"response": out.Response, "sessionId": out.SessionID})
}

// GET /api/chatbot/history/:sessionId
func (h *ChatbotHandler) History(c *gin.Context) {
	messages := h.chatbot.History(c.Request.Context(), c.Param("sessionId"))
	response.RespondData(c, http.StatusOK, gin.H{"messages": messages})
}

// DELETE /api/chatbot/conversation/:sessionId
func (h *ChatbotHandler) ClearConversation(c *gin.Context) {
	if err := h.chatbot.ClearConversation(c.Request.Context(), c.Param("sessionId")); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"success": true, "message": "Conversation cleared successfully"})
}

// GET /api/chatbot/health
func (h *ChatbotHandler) Health(c *gin.Context) {
	out, err := h.chatbot.Health(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"message": "chatbot AI service unavailable",
			"code":    apierr.CodeAIServiceUnavailable,
		})
		return
	}
	response.RespondData(c, http.StatusOK, gin.H{
		"status":     "healthy",
		"ai_service": out,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}
