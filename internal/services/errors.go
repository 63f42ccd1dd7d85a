package services

import (
	"errors"
	"net/http"

	"github.com/yungbote/skillnest-backend/internal/clients/aiservice"
	"github.com/yungbote/skillnest-backend/internal/platform/apierr"
)

var (
	ErrSignatureInvalid     = errors.New("webhook signature verification failed")
	ErrWebhookNotConfigured = errors.New("webhook secret not configured")
	ErrMetadataMissing      = errors.New("purchaseId missing from event metadata")
	ErrPurchaseNotFound     = errors.New("purchase not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrCourseNotFound       = errors.New("course not found")
	ErrTranscriptNotFound   = errors.New("transcript not found for this video")
	ErrInvalidAIResponse    = errors.New("invalid response from AI service")
	ErrAIServiceUnavailable = errors.New("AI service is currently unavailable")
	ErrCourseHasStudents    = errors.New("cannot delete course with enrolled students")
	ErrAlreadyEnrolled      = errors.New("already enrolled in this course")
	ErrCheckoutUnavailable  = errors.New("payments are not configured")
)

// Chat fallback messages shown to the user in place of a bot reply.
const (
	FallbackTechnicalDifficulties = "I'm experiencing technical difficulties. Please try again in a moment."
	FallbackOffline               = "I'm currently offline. Please try again later."
	FallbackGeneric               = "Something went wrong. Please try again."
)

// AIError is an AI-layer failure with the fallback text a client can show instead of an answer.
type AIError struct {
	API      *apierr.Error
	Fallback string
}

func (e *AIError) Error() string { return e.API.Error() }

func (e *AIError) Unwrap() error { return e.API }

func (e *AIError) FallbackMessage() string { return e.Fallback }

// classifyAIError maps an aiservice failure onto the API error taxonomy.
func classifyAIError(err error) *AIError {
	var he *aiservice.HTTPError
	var de *aiservice.DecodeError
	switch {
	case aiservice.IsUnavailable(err):
		return &AIError{
			API:      apierr.New(http.StatusServiceUnavailable, apierr.CodeAIServiceUnavailable, ErrAIServiceUnavailable),
			Fallback: FallbackOffline,
		}
	case errors.As(err, &he):
		return &AIError{
			API:      apierr.New(http.StatusBadGateway, apierr.CodeAIServiceError, err),
			Fallback: FallbackTechnicalDifficulties,
		}
	case errors.As(err, &de), errors.Is(err, aiservice.ErrEmptyResponse):
		return &AIError{
			API:      apierr.New(http.StatusBadGateway, apierr.CodeInvalidAIResponse, ErrInvalidAIResponse),
			Fallback: FallbackTechnicalDifficulties,
		}
	default:
		return &AIError{
			API:      apierr.New(http.StatusInternalServerError, apierr.CodeInternal, err),
			Fallback: FallbackGeneric,
		}
	}
}

func invalidAIResponse() *AIError {
	return &AIError{
		API:      apierr.New(http.StatusBadGateway, apierr.CodeInvalidAIResponse, ErrInvalidAIResponse),
		Fallback: FallbackTechnicalDifficulties,
	}
}
