package aiservice

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrNotConfigured = errors.New("ai service base url not configured")
	ErrTimeout       = errors.New("ai service request timed out")
	ErrEmptyResponse = errors.New("ai service returned an empty body")
)

// HTTPError is a non-2xx response from the AI service.
type HTTPError struct {
	StatusCode int
	Detail     string
	Body       string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "http error"
	}
	msg := strings.TrimSpace(e.Detail)
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("ai service http error: status=%d message=%s", e.StatusCode, msg)
}

// UnavailableError means the service could not be reached or did not answer in time.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	return "ai service unavailable: " + e.Err.Error()
}

func (e *UnavailableError) Unwrap() error { return e.Err }

type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "ai service response decode: " + e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }

// IsUnavailable reports whether err means the service was unreachable,
// timed out, or is not configured.
func IsUnavailable(err error) bool {
	if errors.Is(err, ErrNotConfigured) {
		return true
	}
	var ue *UnavailableError
	if errors.As(err, &ue) {
		return true
	}
	var he *HTTPError
	return errors.As(err, &he) && he.StatusCode == http.StatusServiceUnavailable
}

// IsNotFound reports whether the service answered 404.
func IsNotFound(err error) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.StatusCode == http.StatusNotFound
}

func parseHTTPError(status int, raw []byte) error {
	body := strings.TrimSpace(string(raw))

	// FastAPI reports errors as {"detail": "..."}; some routes use {"message": "..."}.
	var env struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	detail := ""
	if err := json.Unmarshal(raw, &env); err == nil {
		var s string
		if len(env.Detail) > 0 && json.Unmarshal(env.Detail, &s) == nil {
			detail = s
		} else if len(env.Detail) > 0 {
			detail = string(env.Detail)
		} else {
			detail = env.Message
		}
	}
	return &HTTPError{StatusCode: status, Detail: strings.TrimSpace(detail), Body: body}
}
