package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/skillnest-backend/internal/domain"
	"github.com/yungbote/skillnest-backend/internal/http/response"
	"github.com/yungbote/skillnest-backend/internal/platform/apierr"
	"github.com/yungbote/skillnest-backend/internal/platform/ctxutil"
	"github.com/yungbote/skillnest-backend/internal/platform/logger"
	"github.com/yungbote/skillnest-backend/internal/services"
)

type VideoAIHandler struct {
	log     *logger.Logger
	videoAI services.VideoAIService
	// aiBaseURL is reported by the health endpoint.
	aiBaseURL string
}

func NewVideoAIHandler(log *logger.Logger, videoAI services.VideoAIService, aiBaseURL string) *VideoAIHandler {
	registerValidations()
	return &VideoAIHandler{
		log:       log.With("handler", "VideoAIHandler"),
		videoAI:   videoAI,
		aiBaseURL: aiBaseURL,
	}
}

// videoIDFrom prefers the path parameter and falls back to the body field.
func videoIDFrom(c *gin.Context, bodyID string) string {
	if id := strings.TrimSpace(c.Param("videoId")); id != "" {
		return id
	}
	return strings.TrimSpace(bodyID)
}

func requester(c *gin.Context) string {
	return ctxutil.UserIDOr(c.Request.Context(), types.AnonymousUserID)
}

// POST /api/video-ai/summarize/:videoId
// body: { "summaryType": "detailed" | "brief" | "key_points" }
func (h *VideoAIHandler) Summarize(c *gin.Context) {
	var req struct {
		VideoID     string `json:"videoId"`
		SummaryType string `json:"summaryType"`
	}
	// The body is optional here.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.RespondAPIError(c, apierr.BadRequest(err))
		return
	}
	res, err := h.videoAI.Summarize(c.Request.Context(), videoIDFrom(c, req.VideoID), requester(c), req.SummaryType)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": res.Summary, "source": res.Source})
}

// POST /api/video-ai/ask-question/:videoId
// body: { "question": "..." }
func (h *VideoAIHandler) AskQuestion(c *gin.Context) {
	var req struct {
		VideoID  string `json:"videoId"`
		Question string `json:"question"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondAPIError(c, apierr.BadRequest(err))
		return
	}
	res, err := h.videoAI.AskQuestion(c.Request.Context(), videoIDFrom(c, req.VideoID), requester(c), req.Question)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": res.QA, "source": res.Source})
}

// GET /api/video-ai/questions/:videoId
func (h *VideoAIHandler) QuestionHistory(c *gin.Context) {
	response.RespondData(c, http.StatusOK, h.videoAI.QuestionHistory(c.Request.Context(), c.Param("videoId"), requester(c)))
}

// GET /api/video-ai/summaries/:videoId
func (h *VideoAIHandler) Summaries(c *gin.Context) {
	response.RespondData(c, http.StatusOK, h.videoAI.Summaries(c.Request.Context(), c.Param("videoId"), requester(c)))
}

// GET /api/video-ai/videos
func (h *VideoAIHandler) ListVideos(c *gin.Context) {
	videos, err := h.videoAI.ListVideos(c.Request.Context())
	if err != nil {
		h.log.Error("ListVideos failed", "error", err)
		response.RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": videos, "count": len(videos)})
}

type transcriptUploadRequest struct {
	VideoID  string `json:"videoId" binding:"required"`
	CourseID string `json:"courseId"`
	Title    string `json:"title" binding:"required"`
	Segments []struct {
		Timestamp string `json:"timestamp" binding:"required,clock"`
		Text      string `json:"text" binding:"required"`
		Speaker   string `json:"speaker"`
	} `json:"transcript" binding:"required,min=1,dive"`
	MediaURL      string `json:"mediaUrl"`
	CloudinaryURL string `json:"cloudinaryUrl"`
	Duration      string `json:"duration"`
}

// POST /api/video-ai/transcripts
func (h *VideoAIHandler) UploadTranscript(c *gin.Context) {
	var req transcriptUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondAPIError(c, apierr.BadRequest(err))
		return
	}
	t := &types.VideoTranscript{
		VideoID:    req.VideoID,
		CourseID:   req.CourseID,
		Title:      req.Title,
		MediaURL:   req.MediaURL,
		Duration:   req.Duration,
		UploadedBy: ctxutil.UserIDOr(c.Request.Context(), ""),
	}
	if t.MediaURL == "" {
		t.MediaURL = req.CloudinaryURL
	}
	for _, s := range req.Segments {
		t.Segments = append(t.Segments, types.TranscriptSegment{Timestamp: s.Timestamp, Text: s.Text, Speaker: s.Speaker})
	}
	created, err := h.videoAI.UploadTranscript(c.Request.Context(), t)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Transcript uploaded successfully", "data": created})
}

// POST /api/video-ai/initialize-showcase
func (h *VideoAIHandler) InitializeShowcase(c *gin.Context) {
	n, err := h.videoAI.InitializeShowcase(c.Request.Context())
	if err != nil {
		h.log.Error("InitializeShowcase failed", "error", err)
		response.RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":               true,
		"message":               "Showcase data initialized successfully",
		"transcripts_available": n,
	})
}

// GET /api/video-ai/health
func (h *VideoAIHandler) Health(c *gin.Context) {
	hs := h.videoAI.Health(c.Request.Context())
	aiState := "disconnected"
	if hs.AIConnected {
		aiState = "connected"
	}
	status, dbState, code := "healthy", "connected", http.StatusOK
	if !hs.Healthy {
		status, dbState, code = "unhealthy", "disconnected", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"success": hs.Healthy,
		"status":  status,
		"services": gin.H{
			"database":       dbState,
			"ai_service":     aiState,
			"ai_service_url": h.aiBaseURL,
		},
		"transcripts_available": hs.TranscriptsAvailable,
	})
}
