package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/skillnest-backend/internal/clients/stripe"
	"github.com/yungbote/skillnest-backend/internal/data/repos"
	types "github.com/yungbote/skillnest-backend/internal/domain"
	"github.com/yungbote/skillnest-backend/internal/platform/apierr"
	"github.com/yungbote/skillnest-backend/internal/platform/dbctx"
	"github.com/yungbote/skillnest-backend/internal/platform/logger"
)

// CheckoutProvider opens a hosted payment page for a pending purchase.
type CheckoutProvider interface {
	CreateCheckoutSession(ctx context.Context, in stripe.CheckoutInput) (*stripe.CheckoutSession, error)
}

type PurchaseResult struct {
	SessionURL string `json:"sessionUrl"`
	PurchaseID string `json:"purchaseId"`
}

type UserService interface {
	GetUser(ctx context.Context, userID string) (*types.User, error)
	EnrolledCourses(ctx context.Context, userID string) ([]*types.Course, error)
	// PurchaseCourse records a pending purchase and returns the checkout URL.
	// Enrollment happens later, when the payment webhook confirms it.
	PurchaseCourse(ctx context.Context, userID, courseID, origin string) (*PurchaseResult, error)
}

type userService struct {
	db          *gorm.DB
	log         *logger.Logger
	users       repos.UserRepo
	courses     repos.CourseRepo
	enrollments repos.EnrollmentRepo
	purchases   repos.PurchaseRepo
	checkout    CheckoutProvider
}

func NewUserService(
	db *gorm.DB,
	baseLog *logger.Logger,
	users repos.UserRepo,
	courses repos.CourseRepo,
	enrollments repos.EnrollmentRepo,
	purchases repos.PurchaseRepo,
	checkout CheckoutProvider,
) UserService {
	return &userService{
		db:          db,
		log:         baseLog.With("service", "UserService"),
		users:       users,
		courses:     courses,
		enrollments: enrollments,
		purchases:   purchases,
		checkout:    checkout,
	}
}

func (s *userService) GetUser(ctx context.Context, userID string) (*types.User, error) {
	u, err := s.users.GetByID(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if u == nil {
		return nil, apierr.NotFound(apierr.CodeUserNotFound, ErrUserNotFound)
	}
	return u, nil
}

func (s *userService) EnrolledCourses(ctx context.Context, userID string) ([]*types.Course, error) {
	dbc := dbctx.Context{Ctx: ctx}
	ids, err := s.enrollments.ListCourseIDsByUser(dbc, userID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	if len(ids) == 0 {
		return []*types.Course{}, nil
	}
	courses, err := s.courses.GetByIDs(dbc, ids)
	if err != nil {
		return nil, fmt.Errorf("load enrolled courses: %w", err)
	}
	for _, c := range courses {
		c.Content = nil
	}
	return courses, nil
}

func (s *userService) PurchaseCourse(ctx context.Context, userID, courseID, origin string) (*PurchaseResult, error) {
	if s.checkout == nil {
		return nil, apierr.New(http.StatusServiceUnavailable, apierr.CodeInternal, ErrCheckoutUnavailable)
	}
	if strings.TrimSpace(courseID) == "" {
		return nil, apierr.BadRequest(errors.New("courseId is required"))
	}
	cid, err := parseCourseID(courseID)
	if err != nil {
		return nil, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	log := s.log.With("user_id", userID, "course_id", cid)

	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	course, err := s.courses.GetByID(dbc, cid)
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	if course == nil || !course.IsPublished {
		return nil, apierr.NotFound(apierr.CodeCourseNotFound, ErrCourseNotFound)
	}
	// Enrollment check and pending row commit together.
	var purchase *types.Purchase
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txc := dbctx.Context{Ctx: ctx, Tx: tx}
		enrolled, err := s.enrollments.Exists(txc, userID, cid)
		if err != nil {
			return fmt.Errorf("check enrollment: %w", err)
		}
		if enrolled {
			return apierr.Conflict(ErrAlreadyEnrolled)
		}
		purchase, err = s.purchases.Create(txc, &types.Purchase{
			UserID:   userID,
			CourseID: cid,
			Amount:   course.DiscountedPrice(),
			Currency: "usd",
			Status:   types.PurchaseStatusPending,
		})
		if err != nil {
			return fmt.Errorf("create purchase: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	session, err := s.checkout.CreateCheckoutSession(ctx, stripe.CheckoutInput{
		PurchaseID:  purchase.ID.String(),
		CourseTitle: course.Title,
		Amount:      purchase.Amount,
		Currency:    purchase.Currency,
		Origin:      origin,
	})
	if err != nil {
		log.Error("Checkout session creation failed", "purchase_id", purchase.ID, "error", err)
		if _, terr := s.purchases.Transition(dbc, purchase.ID, types.PurchaseStatusPending, types.PurchaseStatusFailed); terr != nil {
			log.Warn("Failed to mark purchase failed", "purchase_id", purchase.ID, "error", terr)
		}
		if errors.Is(err, stripe.ErrNotConfigured) {
			return nil, apierr.New(http.StatusServiceUnavailable, apierr.CodeInternal, ErrCheckoutUnavailable)
		}
		return nil, apierr.New(http.StatusBadGateway, apierr.CodeInternal, fmt.Errorf("create checkout session: %w", err))
	}
	if err := s.purchases.SetCheckoutSession(dbc, purchase.ID, session.ID); err != nil {
		log.Warn("Failed to store checkout session id", "purchase_id", purchase.ID, "error", err)
	}
	log.Info("Checkout session created", "purchase_id", purchase.ID)
	return &PurchaseResult{SessionURL: session.URL, PurchaseID: purchase.ID.String()}, nil
}
