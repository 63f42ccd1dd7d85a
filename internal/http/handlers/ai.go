package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillnest-backend/internal/http/response"
	"github.com/yungbote/skillnest-backend/internal/platform/apierr"
	"github.com/yungbote/skillnest-backend/internal/platform/ctxutil"
	"github.com/yungbote/skillnest-backend/internal/platform/logger"
	"github.com/yungbote/skillnest-backend/internal/services"
)

type AIHandler struct {
	log         *logger.Logger
	quizService services.QuizService
}

func NewAIHandler(log *logger.Logger, quizService services.QuizService) *AIHandler {
	return &AIHandler{log: log.With("handler", "AIHandler"), quizService: quizService}
}

// POST /api/ai/generate-quiz
// body: { "content": "...", "settings": { "questionCount": 10, "difficulty": "medium", ... } }
func (h *AIHandler) GenerateQuiz(c *gin.Context) {
	var req struct {
		Content  string                `json:"content" binding:"required"`
		Settings services.QuizSettings `json:"settings"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondAPIError(c, apierr.BadRequest(err))
		return
	}
	if req.Settings.UserID == "" {
		req.Settings.UserID = ctxutil.UserIDOr(c.Request.Context(), "")
	}
	out, err := h.quizService.GenerateQuiz(c.Request.Context(), req.Content, req.Settings)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	// The AI service payload is passed through untouched.
	c.Data(http.StatusOK, "application/json; charset=utf-8", out)
}

// GET /api/ai/health
func (h *AIHandler) Health(c *gin.Context) {
	out, err := h.quizService.Health(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", out)
}
