package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillnest-backend/internal/http/response"
	"github.com/yungbote/skillnest-backend/internal/platform/apierr"
	"github.com/yungbote/skillnest-backend/internal/platform/ctxutil"
	"github.com/yungbote/skillnest-backend/internal/platform/logger"
	"github.com/yungbote/skillnest-backend/internal/services"
)

// sessionCookie is where the identity provider's browser SDK keeps the session token.
const sessionCookie = "__session"

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{log: log.With("middleware", "AuthMiddleware"), authService: authService}
}

// OptionalAuth attaches the caller identity when a valid token is present and
// lets anonymous requests through.
func (am *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.Next()
			return
		}
		ctx, err := am.authService.SetContextFromToken(c.Request.Context(), tokenString)
		if err != nil {
			am.log.Debug("ignoring invalid session token", "error", err)
			c.Next()
			return
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			abortUnauthorized(c, errors.New("missing or invalid token"))
			return
		}
		ctx, err := am.authService.SetContextFromToken(c.Request.Context(), tokenString)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}
		c.Request = c.Request.WithContext(ctx)
		if ad := ctxutil.GetAuthData(ctx); ad == nil || ad.UserID == "" {
			abortUnauthorized(c, errors.New("missing or invalid token"))
			return
		}
		c.Next()
	}
}

// RequireEducator must run after RequireAuth.
func (am *AuthMiddleware) RequireEducator() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ctxutil.GetAuthData(c.Request.Context()).IsEducator() {
			response.RespondError(c, http.StatusForbidden, apierr.CodeForbidden, errors.New("unauthorized access"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, err error) {
	response.RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, err)
	c.Abort()
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	if v, err := c.Cookie(sessionCookie); err == nil {
		return strings.TrimSpace(v)
	}
	return ""
}
