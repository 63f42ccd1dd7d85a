package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	stripego "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
	"gorm.io/gorm"

	"github.com/yungbote/skillnest-backend/internal/clients/stripe"
	"github.com/yungbote/skillnest-backend/internal/data/repos"
	types "github.com/yungbote/skillnest-backend/internal/domain"
	"github.com/yungbote/skillnest-backend/internal/platform/apierr"
	"github.com/yungbote/skillnest-backend/internal/platform/dbctx"
	"github.com/yungbote/skillnest-backend/internal/platform/logger"
)

const (
	StripeEventCheckoutCompleted    = "checkout.session.completed"
	StripeEventCheckoutExpired      = "checkout.session.expired"
	StripeEventPaymentSucceeded     = "payment_intent.succeeded"
	StripeEventPaymentFailed        = "payment_intent.payment_failed"
	defaultStripeWebhookTolerance   = 5 * time.Minute
	stripeObjectTypePaymentIntent   = "payment_intent"
	stripeObjectTypeCheckoutSession = "checkout.session"
)

// Outcome actions reported for a processed payment event.
const (
	PaymentActionEnrolled         = "enrolled"
	PaymentActionAlreadyCompleted = "already_completed"
	PaymentActionIgnoredTerminal  = "ignored_terminal"
	PaymentActionMarkedFailed     = "marked_failed"
	PaymentActionPurchaseMissing  = "purchase_missing"
	PaymentActionDuplicateEvent   = "duplicate_event"
	PaymentActionIgnoredType      = "ignored_event_type"
)

// SessionLookup resolves a purchase id from a payment intent when the intent
// itself carries no metadata.
type SessionLookup interface {
	PurchaseIDForPaymentIntent(ctx context.Context, paymentIntentID string) (string, error)
}

type PaymentWebhookConfig struct {
	Secret    string
	Tolerance time.Duration
}

type PaymentOutcome struct {
	EventID    string
	EventType  string
	PurchaseID string
	Action     string
}

type PaymentWebhookService interface {
	// HandleStripeWebhook verifies the raw payload against the signature header
	// and applies the event. Signature failures are reported before any write.
	HandleStripeWebhook(ctx context.Context, payload []byte, signature string) (*PaymentOutcome, error)
}

type paymentWebhookService struct {
	db  *gorm.DB
	log *logger.Logger
	cfg PaymentWebhookConfig

	purchases   repos.PurchaseRepo
	events      repos.BillingEventRepo
	users       repos.UserRepo
	courses     repos.CourseRepo
	enrollments repos.EnrollmentRepo

	sessions  SessionLookup
	publisher EnrollmentPublisher
}

func NewPaymentWebhookService(
	db *gorm.DB,
	baseLog *logger.Logger,
	cfg PaymentWebhookConfig,
	purchases repos.PurchaseRepo,
	events repos.BillingEventRepo,
	users repos.UserRepo,
	courses repos.CourseRepo,
	enrollments repos.EnrollmentRepo,
	sessions SessionLookup,
	publisher EnrollmentPublisher,
) PaymentWebhookService {
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = defaultStripeWebhookTolerance
	}
	if publisher == nil {
		publisher = NoopEnrollmentPublisher{}
	}
	return &paymentWebhookService{
		db:          db,
		log:         baseLog.With("service", "PaymentWebhookService"),
		cfg:         cfg,
		purchases:   purchases,
		events:      events,
		users:       users,
		courses:     courses,
		enrollments: enrollments,
		sessions:    sessions,
		publisher:   publisher,
	}
}

func (s *paymentWebhookService) HandleStripeWebhook(ctx context.Context, payload []byte, signature string) (*PaymentOutcome, error) {
	if strings.TrimSpace(s.cfg.Secret) == "" {
		return nil, apierr.New(http.StatusServiceUnavailable, apierr.CodeInternal, ErrWebhookNotConfigured)
	}
	evt, err := webhook.ConstructEventWithOptions(payload, signature, s.cfg.Secret, webhook.ConstructEventOptions{
		Tolerance:                s.cfg.Tolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		s.log.Warn("Stripe signature verification failed", "error", err)
		return nil, apierr.New(http.StatusBadRequest, apierr.CodeSignatureInvalid, fmt.Errorf("%w: %v", ErrSignatureInvalid, err))
	}

	evtType := string(evt.Type)
	s.log.Info("Stripe event received", "event_id", evt.ID, "event_type", evtType)

	switch evtType {
	case StripeEventCheckoutCompleted, StripeEventPaymentSucceeded:
		return s.handleSucceeded(ctx, evt)
	case StripeEventPaymentFailed, StripeEventCheckoutExpired:
		return s.handleFailed(ctx, evt)
	default:
		s.log.Info("Unhandled Stripe event type", "event_id", evt.ID, "event_type", evtType)
		return &PaymentOutcome{EventID: evt.ID, EventType: evtType, Action: PaymentActionIgnoredType}, nil
	}
}

type stripeEventObject struct {
	ID       string            `json:"id"`
	Object   string            `json:"object"`
	Metadata map[string]string `json:"metadata"`
}

// resolvePurchaseID reads purchaseId from the event object's metadata, falling
// back to the originating checkout session for bare payment intents.
func (s *paymentWebhookService) resolvePurchaseID(ctx context.Context, evt stripego.Event) (string, error) {
	if evt.Data == nil || len(evt.Data.Raw) == 0 {
		return "", apierr.New(http.StatusUnprocessableEntity, apierr.CodeMetadataMissing, ErrMetadataMissing)
	}
	var obj stripeEventObject
	if err := json.Unmarshal(evt.Data.Raw, &obj); err != nil {
		return "", apierr.New(http.StatusUnprocessableEntity, apierr.CodeMetadataMissing, fmt.Errorf("%w: decode object: %v", ErrMetadataMissing, err))
	}
	if id := strings.TrimSpace(obj.Metadata[stripe.MetadataPurchaseID]); id != "" {
		return id, nil
	}
	if obj.Object == stripeObjectTypePaymentIntent && obj.ID != "" && s.sessions != nil {
		id, err := s.sessions.PurchaseIDForPaymentIntent(ctx, obj.ID)
		if err != nil {
			s.log.Warn("Checkout session lookup failed", "event_id", evt.ID, "payment_intent", obj.ID, "error", err)
		} else if id != "" {
			return id, nil
		}
	}
	return "", apierr.New(http.StatusUnprocessableEntity, apierr.CodeMetadataMissing, ErrMetadataMissing)
}

func (s *paymentWebhookService) alreadySeen(ctx context.Context, evt stripego.Event) (bool, error) {
	seen, err := s.events.Seen(dbctx.Context{Ctx: ctx}, evt.ID)
	if err != nil {
		return false, fmt.Errorf("check billing event ledger: %w", err)
	}
	return seen, nil
}

func (s *paymentWebhookService) handleSucceeded(ctx context.Context, evt stripego.Event) (*PaymentOutcome, error) {
	out := &PaymentOutcome{EventID: evt.ID, EventType: string(evt.Type)}

	rawID, err := s.resolvePurchaseID(ctx, evt)
	if err != nil {
		s.log.Error("Payment succeeded event without purchase id", "event_id", evt.ID, "event_type", out.EventType)
		return nil, err
	}
	out.PurchaseID = rawID
	log := s.log.With("event_id", evt.ID, "event_type", out.EventType, "purchase_id", rawID)

	purchaseID, err := uuid.Parse(rawID)
	if err != nil {
		log.Error("Malformed purchase id in event metadata")
		return nil, apierr.NotFound(apierr.CodePurchaseNotFound, ErrPurchaseNotFound)
	}

	seen, err := s.alreadySeen(ctx, evt)
	if err != nil {
		return nil, err
	}
	if seen {
		log.Info("Stripe event already processed")
		out.Action = PaymentActionDuplicateEvent
		return out, nil
	}

	var granted *types.Enrollment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		purchase, err := s.purchases.GetByID(dbc, purchaseID)
		if err != nil {
			return fmt.Errorf("load purchase: %w", err)
		}
		if purchase == nil {
			return apierr.NotFound(apierr.CodePurchaseNotFound, ErrPurchaseNotFound)
		}
		user, err := s.users.GetByID(dbc, purchase.UserID)
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}
		if user == nil {
			return apierr.NotFound(apierr.CodeUserNotFound, ErrUserNotFound)
		}
		course, err := s.courses.GetByID(dbc, purchase.CourseID)
		if err != nil {
			return fmt.Errorf("load course: %w", err)
		}
		if course == nil {
			return apierr.NotFound(apierr.CodeCourseNotFound, ErrCourseNotFound)
		}

		switch purchase.Status {
		case types.PurchaseStatusCompleted:
			out.Action = PaymentActionAlreadyCompleted
			return s.record(dbc, evt, purchaseID, types.EventOutcomeSkipped)
		case types.PurchaseStatusFailed:
			// A failed purchase stays failed; a late success is acknowledged but not applied.
			out.Action = PaymentActionIgnoredTerminal
			return s.record(dbc, evt, purchaseID, types.EventOutcomeSkipped)
		}

		claimed, err := s.purchases.Transition(dbc, purchaseID, types.PurchaseStatusPending, types.PurchaseStatusCompleted)
		if err != nil {
			return fmt.Errorf("complete purchase: %w", err)
		}
		if !claimed {
			// Another delivery completed (or failed) it between our read and the update.
			out.Action = PaymentActionAlreadyCompleted
			return s.record(dbc, evt, purchaseID, types.EventOutcomeSkipped)
		}

		enrollment := &types.Enrollment{UserID: user.ID, CourseID: course.ID, PurchaseID: &purchase.ID}
		created, err := s.enrollments.CreateIfAbsent(dbc, enrollment)
		if err != nil {
			return fmt.Errorf("grant enrollment: %w", err)
		}
		out.Action = PaymentActionEnrolled
		if created {
			granted = enrollment
		}
		return s.record(dbc, evt, purchaseID, types.EventOutcomeCompleted)
	})
	if err != nil {
		log.Error("Failed to apply payment success", "error", err)
		return nil, err
	}

	switch out.Action {
	case PaymentActionIgnoredTerminal:
		log.Warn("Success event for failed purchase ignored")
	case PaymentActionAlreadyCompleted:
		log.Info("Purchase already completed, nothing to do")
	default:
		log.Info("Purchase completed and enrollment granted")
	}

	if granted != nil {
		if err := s.publisher.PublishEnrollmentGranted(ctx, EnrollmentGranted{
			EnrollmentID: granted.ID.String(),
			UserID:       granted.UserID,
			CourseID:     granted.CourseID.String(),
			PurchaseID:   purchaseID.String(),
			GrantedAt:    granted.CreatedAt,
		}); err != nil {
			log.Warn("Failed to publish enrollment event", "error", err)
		}
	}
	return out, nil
}

func (s *paymentWebhookService) handleFailed(ctx context.Context, evt stripego.Event) (*PaymentOutcome, error) {
	out := &PaymentOutcome{EventID: evt.ID, EventType: string(evt.Type)}

	rawID, err := s.resolvePurchaseID(ctx, evt)
	if err != nil {
		s.log.Error("Payment failure event without purchase id", "event_id", evt.ID, "event_type", out.EventType)
		return nil, err
	}
	out.PurchaseID = rawID
	log := s.log.With("event_id", evt.ID, "event_type", out.EventType, "purchase_id", rawID)

	purchaseID, err := uuid.Parse(rawID)
	if err != nil {
		log.Warn("Malformed purchase id on failure event; ignoring")
		out.Action = PaymentActionPurchaseMissing
		return out, nil
	}

	seen, err := s.alreadySeen(ctx, evt)
	if err != nil {
		return nil, err
	}
	if seen {
		out.Action = PaymentActionDuplicateEvent
		return out, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		purchase, err := s.purchases.GetByID(dbc, purchaseID)
		if err != nil {
			return fmt.Errorf("load purchase: %w", err)
		}
		if purchase == nil {
			out.Action = PaymentActionPurchaseMissing
			return nil
		}
		if purchase.IsTerminal() {
			out.Action = PaymentActionIgnoredTerminal
			return s.record(dbc, evt, purchaseID, types.EventOutcomeSkipped)
		}
		moved, err := s.purchases.Transition(dbc, purchaseID, types.PurchaseStatusPending, types.PurchaseStatusFailed)
		if err != nil {
			return fmt.Errorf("fail purchase: %w", err)
		}
		if !moved {
			out.Action = PaymentActionIgnoredTerminal
			return s.record(dbc, evt, purchaseID, types.EventOutcomeSkipped)
		}
		out.Action = PaymentActionMarkedFailed
		return s.record(dbc, evt, purchaseID, types.EventOutcomeFailed)
	})
	if err != nil {
		log.Error("Failed to apply payment failure", "error", err)
		return nil, err
	}

	switch out.Action {
	case PaymentActionPurchaseMissing:
		log.Warn("Purchase for failure event not found")
	case PaymentActionMarkedFailed:
		log.Info("Purchase marked failed")
	default:
		log.Info("Purchase already terminal, failure event ignored")
	}
	return out, nil
}

func (s *paymentWebhookService) record(dbc dbctx.Context, evt stripego.Event, purchaseID uuid.UUID, outcome string) error {
	if _, err := s.events.Record(dbc, &types.BillingEvent{
		Provider:        "stripe",
		ProviderEventID: evt.ID,
		EventType:       string(evt.Type),
		PurchaseID:      &purchaseID,
		Outcome:         outcome,
	}); err != nil {
		return fmt.Errorf("record billing event: %w", err)
	}
	return nil
}
