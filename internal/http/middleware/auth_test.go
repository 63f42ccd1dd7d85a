package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/yungbote/skillnest-backend/internal/platform/ctxutil"
	"github.com/yungbote/skillnest-backend/internal/platform/logger"
	"github.com/yungbote/skillnest-backend/internal/services"
)

const testSecret = "middleware-test-secret"

func newTestAuth(t *testing.T) *AuthMiddleware {
	t.Helper()
	as, err := services.NewAuthService(logger.Nop(), services.AuthConfig{HMACSecret: testSecret})
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	return NewAuthMiddleware(logger.Nop(), as)
}

func token(t *testing.T, sub, role string) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": sub, "exp": time.Now().Add(time.Hour).Unix()}
	if role != "" {
		claims["public_metadata"] = map[string]any{"role": role}
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func whoami(c *gin.Context) {
	c.String(http.StatusOK, ctxutil.UserIDOr(c.Request.Context(), "anonymous"))
}

func serve(r http.Handler, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	am := newTestAuth(t)
	r := gin.New()
	r.GET("/optional", am.OptionalAuth(), whoami)
	r.GET("/private", am.RequireAuth(), whoami)
	r.GET("/educator", am.RequireAuth(), am.RequireEducator(), whoami)

	if rec := serve(r, "/optional", ""); rec.Code != http.StatusOK || rec.Body.String() != "anonymous" {
		t.Fatalf("optional anonymous: %d %q", rec.Code, rec.Body.String())
	}
	if rec := serve(r, "/optional", "garbage"); rec.Code != http.StatusOK || rec.Body.String() != "anonymous" {
		t.Fatalf("optional invalid token: %d %q", rec.Code, rec.Body.String())
	}
	if rec := serve(r, "/private", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("private without token: %d", rec.Code)
	}
	if rec := serve(r, "/private", token(t, "user_1", "")); rec.Code != http.StatusOK || rec.Body.String() != "user_1" {
		t.Fatalf("private with token: %d %q", rec.Code, rec.Body.String())
	}
	if rec := serve(r, "/educator", token(t, "user_1", "")); rec.Code != http.StatusForbidden {
		t.Fatalf("educator route as student: %d", rec.Code)
	}
	if rec := serve(r, "/educator", token(t, "edu_1", "educator")); rec.Code != http.StatusOK || rec.Body.String() != "edu_1" {
		t.Fatalf("educator route as educator: %d %q", rec.Code, rec.Body.String())
	}
}
