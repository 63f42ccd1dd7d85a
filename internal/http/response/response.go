package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillnest-backend/internal/platform/apierr"
)

type ErrorBody struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Code     string `json:"code,omitempty"`
	Fallback string `json:"fallback,omitempty"`
}

// fallbacker is implemented by errors that carry user-facing replacement text.
type fallbacker interface {
	FallbackMessage() string
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	if msg == "" {
		msg = "unknown error"
	}
	c.JSON(status, ErrorBody{Message: msg, Code: code})
}

// RespondAPIError renders err using its *apierr.Error status and code. Errors
// outside the taxonomy become a 500.
func RespondAPIError(c *gin.Context, err error) {
	ae := apierr.From(err)
	if ae == nil {
		RespondError(c, http.StatusInternalServerError, apierr.CodeInternal, nil)
		return
	}
	status := ae.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	body := ErrorBody{Message: ae.Error(), Code: ae.Code}
	var fb fallbacker
	if errors.As(err, &fb) {
		body.Fallback = fb.FallbackMessage()
	}
	c.JSON(status, body)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondData wraps data in the {success:true, data} envelope.
func RespondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}
