package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillnest-backend/internal/http/response"
	"github.com/yungbote/skillnest-backend/internal/platform/ctxutil"
	"github.com/yungbote/skillnest-backend/internal/platform/logger"
	"github.com/yungbote/skillnest-backend/internal/services"
)

type CourseHandler struct {
	log           *logger.Logger
	courseService services.CourseService
}

func NewCourseHandler(log *logger.Logger, courseService services.CourseService) *CourseHandler {
	return &CourseHandler{
		log:           log.With("handler", "CourseHandler"),
		courseService: courseService,
	}
}

// GET /api/course/all
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courseService.ListPublished(c.Request.Context())
	if err != nil {
		h.log.Error("ListCourses failed", "error", err)
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"success": true, "courses": courses})
}

// GET /api/course/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	course, err := h.courseService.GetCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"success": true, "courseData": course})
}

// DELETE /api/course/:id
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	auth := ctxutil.GetAuthData(c.Request.Context())
	if err := h.courseService.DeleteCourse(c.Request.Context(), auth, c.Param("id")); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"success": true, "message": "Course deleted successfully"})
}
