package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/skillnest-backend/internal/clients/stripe"
	"github.com/yungbote/skillnest-backend/internal/data/repos"
	"github.com/yungbote/skillnest-backend/internal/data/repos/testutil"
	"github.com/yungbote/skillnest-backend/internal/services"
)

type stubCheckout struct{ origin string }

func (s *stubCheckout) CreateCheckoutSession(_ context.Context, in stripe.CheckoutInput) (*stripe.CheckoutSession, error) {
	s.origin = in.Origin
	return &stripe.CheckoutSession{ID: "cs_1", URL: "https://checkout.example/cs_1"}, nil
}

func TestUserRoutes(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	log := newTestLogger(t)
	u := testutil.SeedUser(t, ctx, db, "learner@example.com")
	owned := testutil.SeedCourse(t, ctx, db, "educator_1")
	fresh := testutil.SeedCourse(t, ctx, db, "educator_1")
	testutil.SeedEnrollment(t, ctx, db, u.ID, owned.ID)

	checkout := &stubCheckout{}
	svc := services.NewUserService(db, log,
		repos.NewUserRepo(db, log),
		repos.NewCourseRepo(db, log),
		repos.NewEnrollmentRepo(db, log),
		repos.NewPurchaseRepo(db, log),
		checkout,
	)
	h := NewUserHandler(log, svc)
	r := newTestRouter()
	g := r.Group("/api/user", asUser(u.ID, ""))
	g.GET("/data", h.GetUserData)
	g.GET("/enrolled-courses", h.EnrolledCourses)
	g.POST("/purchase", h.PurchaseCourse)

	rec := do(t, r, http.MethodGet, "/api/user/data", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "learner@example.com", decode(t, rec)["user"].(map[string]any)["email"])

	rec = do(t, r, http.MethodGet, "/api/user/enrolled-courses", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode(t, rec)["enrolledCourses"], 1)

	rec = do(t, r, http.MethodPost, "/api/user/purchase", `{"courseId":"`+fresh.ID.String()+`"}`, map[string]string{"Origin": "https://learn.example.com"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "https://checkout.example/cs_1", decode(t, rec)["sessionUrl"])
	require.Equal(t, "https://learn.example.com", checkout.origin)

	rec = do(t, r, http.MethodPost, "/api/user/purchase", `{"courseId":"`+owned.ID.String()+`"}`, nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, r, http.MethodPost, "/api/user/purchase", `{}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "validation_error", decode(t, rec)["code"])
}
