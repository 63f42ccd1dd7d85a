package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/skillnest-backend/internal/clients/stripe"
	"github.com/yungbote/skillnest-backend/internal/data/repos"
	"github.com/yungbote/skillnest-backend/internal/data/repos/testutil"
	types "github.com/yungbote/skillnest-backend/internal/domain"
	"github.com/yungbote/skillnest-backend/internal/platform/apierr"
)

type fakeCheckout struct {
	inputs []stripe.CheckoutInput
	err    error
}

func (f *fakeCheckout) CreateCheckoutSession(_ context.Context, in stripe.CheckoutInput) (*stripe.CheckoutSession, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	return &stripe.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.example/cs_test_1"}, nil
}

func newUserService(t *testing.T, db *gorm.DB, checkout CheckoutProvider) UserService {
	t.Helper()
	log := testutil.Logger(t)
	return NewUserService(
		db,
		log,
		repos.NewUserRepo(db, log),
		repos.NewCourseRepo(db, log),
		repos.NewEnrollmentRepo(db, log),
		repos.NewPurchaseRepo(db, log),
		checkout,
	)
}

func TestPurchaseCourseCreatesPendingPurchase(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	u := testutil.SeedUser(t, ctx, db, "buyer@example.com")
	c := testutil.SeedCourse(t, ctx, db, "educator_1")
	checkout := &fakeCheckout{}
	svc := newUserService(t, db, checkout)

	res, err := svc.PurchaseCourse(ctx, u.ID, c.ID.String(), "https://app.example")
	require.NoError(t, err)
	require.Equal(t, "https://checkout.example/cs_test_1", res.SessionURL)

	var p types.Purchase
	require.NoError(t, db.Where("id = ?", res.PurchaseID).First(&p).Error)
	require.Equal(t, types.PurchaseStatusPending, p.Status)
	require.InDelta(t, 44.99, p.Amount, 0.001)
	require.Equal(t, "cs_test_1", p.CheckoutSessionID)

	require.Len(t, checkout.inputs, 1)
	require.Equal(t, res.PurchaseID, checkout.inputs[0].PurchaseID)
	require.Equal(t, "https://app.example", checkout.inputs[0].Origin)
}

func TestPurchaseCourseRejections(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	u := testutil.SeedUser(t, ctx, db, "buyer@example.com")
	c := testutil.SeedCourse(t, ctx, db, "educator_1")
	svc := newUserService(t, db, &fakeCheckout{})

	_, err := svc.PurchaseCourse(ctx, "user_missing", c.ID.String(), "")
	require.True(t, errors.Is(err, ErrUserNotFound))

	_, err = svc.PurchaseCourse(ctx, u.ID, "6f1c3c1e-0000-4000-8000-000000000000", "")
	require.True(t, errors.Is(err, ErrCourseNotFound))

	testutil.SeedEnrollment(t, ctx, db, u.ID, c.ID)
	_, err = svc.PurchaseCourse(ctx, u.ID, c.ID.String(), "")
	require.True(t, errors.Is(err, ErrAlreadyEnrolled))
	require.Equal(t, http.StatusConflict, apierr.From(err).Status)

	var purchases int64
	require.NoError(t, db.Model(&types.Purchase{}).Where("user_id = ?", u.ID).Count(&purchases).Error)
	require.Zero(t, purchases)
}

func TestPurchaseCourseCheckoutFailureMarksPurchaseFailed(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	u := testutil.SeedUser(t, ctx, db, "buyer@example.com")
	c := testutil.SeedCourse(t, ctx, db, "educator_1")
	svc := newUserService(t, db, &fakeCheckout{err: errors.New("card network down")})

	_, err := svc.PurchaseCourse(ctx, u.ID, c.ID.String(), "")
	require.Error(t, err)
	require.Equal(t, http.StatusBadGateway, apierr.From(err).Status)

	var p types.Purchase
	require.NoError(t, db.Where("user_id = ?", u.ID).First(&p).Error)
	require.Equal(t, types.PurchaseStatusFailed, p.Status)
}

func TestEnrolledCourses(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	u := testutil.SeedUser(t, ctx, db, "learner@example.com")
	c := testutil.SeedCourse(t, ctx, db, "educator_1")
	svc := newUserService(t, db, nil)

	got, err := svc.EnrolledCourses(ctx, u.ID)
	require.NoError(t, err)
	require.Empty(t, got)

	testutil.SeedEnrollment(t, ctx, db, u.ID, c.ID)
	got, err = svc.EnrolledCourses(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, c.ID, got[0].ID)

	_, err = svc.PurchaseCourse(ctx, u.ID, c.ID.String(), "")
	require.True(t, errors.Is(err, ErrCheckoutUnavailable))
}
