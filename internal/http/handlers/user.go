package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillnest-backend/internal/http/response"
	"github.com/yungbote/skillnest-backend/internal/platform/apierr"
	"github.com/yungbote/skillnest-backend/internal/platform/ctxutil"
	"github.com/yungbote/skillnest-backend/internal/platform/logger"
	"github.com/yungbote/skillnest-backend/internal/services"
)

type UserHandler struct {
	log         *logger.Logger
	userService services.UserService
}

func NewUserHandler(log *logger.Logger, userService services.UserService) *UserHandler {
	return &UserHandler{
		log:         log.With("handler", "UserHandler"),
		userService: userService,
	}
}

// GET /api/user/data
func (uh *UserHandler) GetUserData(c *gin.Context) {
	userID := ctxutil.UserIDOr(c.Request.Context(), "")
	user, err := uh.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"success": true, "user": user})
}

// GET /api/user/enrolled-courses
func (uh *UserHandler) EnrolledCourses(c *gin.Context) {
	userID := ctxutil.UserIDOr(c.Request.Context(), "")
	courses, err := uh.userService.EnrolledCourses(c.Request.Context(), userID)
	if err != nil {
		uh.log.Error("EnrolledCourses failed", "user_id", userID, "error", err)
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"success": true, "enrolledCourses": courses})
}

// POST /api/user/purchase
// body: { "courseId": "..." }
func (uh *UserHandler) PurchaseCourse(c *gin.Context) {
	var req struct {
		CourseID string `json:"courseId" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondAPIError(c, apierr.BadRequest(err))
		return
	}
	userID := ctxutil.UserIDOr(c.Request.Context(), "")
	origin := strings.TrimSpace(c.GetHeader("Origin"))

	res, err := uh.userService.PurchaseCourse(c.Request.Context(), userID, req.CourseID, origin)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"success": true, "sessionUrl": res.SessionURL, "purchaseId": res.PurchaseID})
}
