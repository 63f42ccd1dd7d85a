package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine-readable codes surfaced in API error envelopes.
const (
	CodeSignatureInvalid     = "signature_invalid"
	CodeMetadataMissing      = "metadata_missing"
	CodePurchaseNotFound     = "purchase_not_found"
	CodeUserNotFound         = "user_not_found"
	CodeCourseNotFound       = "course_not_found"
	CodeTranscriptNotFound   = "transcript_not_found"
	CodeInvalidAIResponse    = "invalid_ai_response"
	CodeAIServiceUnavailable = "ai_service_unavailable"
	CodeAIServiceError       = "ai_service_error"
	CodeValidation           = "validation_error"
	CodeRateLimited          = "rate_limited"
	CodeUnauthorized         = "unauthorized"
	CodeForbidden            = "forbidden"
	CodeConflict             = "conflict"
	CodeInternal             = "internal_error"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func NotFound(code string, err error) *Error {
	return New(http.StatusNotFound, code, err)
}

func BadRequest(err error) *Error {
	return New(http.StatusBadRequest, CodeValidation, err)
}

func Conflict(err error) *Error {
	return New(http.StatusConflict, CodeConflict, err)
}

// From extracts an *Error from err's chain, falling back to a 500.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) && ae != nil {
		return ae
	}
	return New(http.StatusInternalServerError, CodeInternal, err)
}
