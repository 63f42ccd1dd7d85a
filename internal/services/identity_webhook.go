package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	svix "github.com/svix/svix-webhooks/go"
	"gorm.io/gorm"

	"github.com/yungbote/skillnest-backend/internal/data/repos"
	types "github.com/yungbote/skillnest-backend/internal/domain"
	"github.com/yungbote/skillnest-backend/internal/platform/apierr"
	"github.com/yungbote/skillnest-backend/internal/platform/dbctx"
	"github.com/yungbote/skillnest-backend/internal/platform/logger"
)

const (
	ClerkEventUserCreated = "user.created"
	ClerkEventUserUpdated = "user.updated"
	ClerkEventUserDeleted = "user.deleted"
)

const (
	IdentityActionCreated = "created"
	IdentityActionExists  = "exists"
	IdentityActionUpdated = "updated"
	IdentityActionDeleted = "deleted"
	IdentityActionIgnored = "ignored"
)

type IdentityOutcome struct {
	EventType string
	UserID    string
	Action    string
}

type IdentityWebhookService interface {
	HandleClerkWebhook(ctx context.Context, payload []byte, headers http.Header) (*IdentityOutcome, error)
}

type identityWebhookService struct {
	db          *gorm.DB
	log         *logger.Logger
	wh          *svix.Webhook
	users       repos.UserRepo
	enrollments repos.EnrollmentRepo
}

// NewIdentityWebhookService returns an error when the secret is set but not a
// valid svix secret; an empty secret yields a service that rejects every call.
func NewIdentityWebhookService(
	db *gorm.DB,
	baseLog *logger.Logger,
	secret string,
	users repos.UserRepo,
	enrollments repos.EnrollmentRepo,
) (IdentityWebhookService, error) {
	s := &identityWebhookService{
		db:          db,
		log:         baseLog.With("service", "IdentityWebhookService"),
		users:       users,
		enrollments: enrollments,
	}
	if secret = strings.TrimSpace(secret); secret != "" {
		wh, err := svix.NewWebhook(secret)
		if err != nil {
			return nil, fmt.Errorf("init clerk webhook verifier: %w", err)
		}
		s.wh = wh
	}
	return s, nil
}

type clerkEvent struct {
	Type string        `json:"type"`
	Data clerkUserData `json:"data"`
}

type clerkEmailAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

type clerkUserData struct {
	ID                    string              `json:"id"`
	EmailAddresses        []clerkEmailAddress `json:"email_addresses"`
	PrimaryEmailAddressID string              `json:"primary_email_address_id"`
	FirstName             string              `json:"first_name"`
	LastName              string              `json:"last_name"`
	ImageURL              string              `json:"image_url"`
}

func (d clerkUserData) primaryEmail() string {
	for _, e := range d.EmailAddresses {
		if e.ID != "" && e.ID == d.PrimaryEmailAddressID {
			return e.EmailAddress
		}
	}
	if len(d.EmailAddresses) > 0 {
		return d.EmailAddresses[0].EmailAddress
	}
	return ""
}

func (d clerkUserData) toUser() *types.User {
	return &types.User{
		ID:       d.ID,
		Email:    d.primaryEmail(),
		Name:     strings.TrimSpace(d.FirstName + " " + d.LastName),
		ImageURL: d.ImageURL,
	}
}

func (s *identityWebhookService) HandleClerkWebhook(ctx context.Context, payload []byte, headers http.Header) (*IdentityOutcome, error) {
	if s.wh == nil {
		return nil, apierr.New(http.StatusServiceUnavailable, apierr.CodeInternal, ErrWebhookNotConfigured)
	}
	if err := s.wh.Verify(payload, headers); err != nil {
		s.log.Warn("Clerk signature verification failed", "error", err)
		return nil, apierr.New(http.StatusBadRequest, apierr.CodeSignatureInvalid, fmt.Errorf("%w: %v", ErrSignatureInvalid, err))
	}

	var evt clerkEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		return nil, apierr.BadRequest(fmt.Errorf("decode clerk event: %w", err))
	}
	out := &IdentityOutcome{EventType: evt.Type, UserID: evt.Data.ID}

	switch evt.Type {
	case ClerkEventUserCreated, ClerkEventUserUpdated, ClerkEventUserDeleted:
		if strings.TrimSpace(evt.Data.ID) == "" {
			return nil, apierr.BadRequest(errors.New("clerk event missing data.id"))
		}
	default:
		s.log.Info("Unhandled Clerk event type", "event_type", evt.Type)
		out.Action = IdentityActionIgnored
		return out, nil
	}

	dbc := dbctx.Context{Ctx: ctx}
	log := s.log.With("event_type", evt.Type, "user_id", evt.Data.ID)

	switch evt.Type {
	case ClerkEventUserCreated:
		created, err := s.users.CreateIfAbsent(dbc, evt.Data.toUser())
		if err != nil {
			log.Error("Failed to create user", "error", err)
			return nil, fmt.Errorf("create user: %w", err)
		}
		out.Action = IdentityActionExists
		if created {
			out.Action = IdentityActionCreated
		}
	case ClerkEventUserUpdated:
		if err := s.users.Upsert(dbc, evt.Data.toUser()); err != nil {
			log.Error("Failed to update user", "error", err)
			return nil, fmt.Errorf("update user: %w", err)
		}
		out.Action = IdentityActionUpdated
	case ClerkEventUserDeleted:
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			txc := dbctx.Context{Ctx: ctx, Tx: tx}
			if _, err := s.enrollments.DeleteByUser(txc, evt.Data.ID); err != nil {
				return fmt.Errorf("delete enrollments: %w", err)
			}
			if _, err := s.users.DeleteByID(txc, evt.Data.ID); err != nil {
				return fmt.Errorf("delete user: %w", err)
			}
			return nil
		})
		if err != nil {
			log.Error("Failed to delete user", "error", err)
			return nil, err
		}
		out.Action = IdentityActionDeleted
	}
	log.Info("Clerk event applied", "action", out.Action)
	return out, nil
}
