package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillnest-backend/internal/observability"
	"github.com/yungbote/skillnest-backend/internal/platform/apierr"
	"github.com/yungbote/skillnest-backend/internal/platform/logger"
	"github.com/yungbote/skillnest-backend/internal/services"
)

const maxWebhookBodyBytes = 1 << 20

type WebhookHandler struct {
	log      *logger.Logger
	payments services.PaymentWebhookService
	identity services.IdentityWebhookService
	metrics  *observability.Metrics
}

func NewWebhookHandler(
	log *logger.Logger,
	payments services.PaymentWebhookService,
	identity services.IdentityWebhookService,
	metrics *observability.Metrics,
) *WebhookHandler {
	return &WebhookHandler{
		log:      log.With("handler", "WebhookHandler"),
		payments: payments,
		identity: identity,
		metrics:  metrics,
	}
}

func readRawBody(c *gin.Context) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBodyBytes))
}

// POST /stripe
// Signature failures answer 400 and processing failures 500, so the
// provider retries the latter.
func (h *WebhookHandler) Stripe(c *gin.Context) {
	payload, err := readRawBody(c)
	if err != nil {
		h.metrics.IncWebhookEvent("stripe", "unknown", "unreadable")
		c.JSON(http.StatusBadRequest, gin.H{"received": false, "error": "unreadable body"})
		return
	}

	outcome, err := h.payments.HandleStripeWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		ae := apierr.From(err)
		switch ae.Status {
		case http.StatusBadRequest, http.StatusServiceUnavailable:
			h.metrics.IncWebhookEvent("stripe", "unknown", ae.Code)
			c.JSON(ae.Status, gin.H{"received": false, "error": ae.Error()})
		default:
			h.metrics.IncWebhookEvent("stripe", "unknown", "error")
			h.log.Error("Stripe webhook processing failed", "code", ae.Code, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"received": false,
				"error":    "webhook processing failed",
				"details":  ae.Error(),
			})
		}
		return
	}
	h.metrics.IncWebhookEvent("stripe", outcome.EventType, outcome.Action)
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// POST /clerk
func (h *WebhookHandler) Clerk(c *gin.Context) {
	payload, err := readRawBody(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "unreadable body"})
		return
	}

	outcome, err := h.identity.HandleClerkWebhook(c.Request.Context(), payload, c.Request.Header)
	if err != nil {
		ae := apierr.From(err)
		status := ae.Status
		if status != http.StatusBadRequest && status != http.StatusServiceUnavailable {
			status = http.StatusInternalServerError
			h.log.Error("Clerk webhook processing failed", "code", ae.Code, "error", err)
		}
		h.metrics.IncWebhookEvent("clerk", "unknown", ae.Code)
		c.JSON(status, gin.H{"success": false, "message": ae.Error()})
		return
	}
	h.metrics.IncWebhookEvent("clerk", outcome.EventType, outcome.Action)
	c.JSON(http.StatusOK, gin.H{})
}
