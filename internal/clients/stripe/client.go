package stripe

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	stripego "github.com/stripe/stripe-go/v79"
	stripeclient "github.com/stripe/stripe-go/v79/client"

	"github.com/yungbote/skillnest-backend/internal/platform/logger"
)

// MetadataPurchaseID is the metadata key that ties Stripe objects back to a Purchase row.
const MetadataPurchaseID = "purchaseId"

var ErrNotConfigured = errors.New("stripe secret key not configured")

type Options struct {
	SecretKey  string
	SuccessURL string
	CancelURL  string
	Currency   string
	// Backends overrides the Stripe API endpoints; nil uses the live API.
	Backends *stripego.Backends
}

type CheckoutInput struct {
	PurchaseID  string
	CourseTitle string
	Amount      float64
	Currency    string
	// Origin overrides the configured success/cancel URL host when set.
	Origin string
}

type CheckoutSession struct {
	ID  string
	URL string
}

type Client struct {
	api  *stripeclient.API
	opts Options
	log  *logger.Logger
}

// New returns a client; without a secret key every call fails with ErrNotConfigured.
func New(opts Options, log *logger.Logger) *Client {
	c := &Client{opts: opts, log: log.With("client", "StripeClient")}
	if strings.TrimSpace(opts.SecretKey) != "" {
		c.api = &stripeclient.API{}
		c.api.Init(strings.TrimSpace(opts.SecretKey), opts.Backends)
	}
	if c.opts.Currency == "" {
		c.opts.Currency = "usd"
	}
	return c
}

func (c *Client) Configured() bool { return c != nil && c.api != nil }

func (c *Client) CreateCheckoutSession(ctx context.Context, in CheckoutInput) (*CheckoutSession, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	currency := strings.ToLower(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = c.opts.Currency
	}
	successURL, cancelURL := c.opts.SuccessURL, c.opts.CancelURL
	if origin := strings.TrimRight(strings.TrimSpace(in.Origin), "/"); origin != "" {
		successURL = origin + "/loading/my-enrollments"
		cancelURL = origin + "/"
	}

	params := &stripego.CheckoutSessionParams{
		Mode:       stripego.String(string(stripego.CheckoutSessionModePayment)),
		SuccessURL: stripego.String(successURL),
		CancelURL:  stripego.String(cancelURL),
		LineItems: []*stripego.CheckoutSessionLineItemParams{{
			PriceData: &stripego.CheckoutSessionLineItemPriceDataParams{
				Currency: stripego.String(currency),
				ProductData: &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripego.String(in.CourseTitle),
				},
				UnitAmount: stripego.Int64(int64(math.Round(in.Amount * 100))),
			},
			Quantity: stripego.Int64(1),
		}},
		PaymentIntentData: &stripego.CheckoutSessionPaymentIntentDataParams{
			Metadata: map[string]string{MetadataPurchaseID: in.PurchaseID},
		},
	}
	params.AddMetadata(MetadataPurchaseID, in.PurchaseID)
	params.Context = ctx

	s, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return &CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

// PurchaseIDForPaymentIntent finds the checkout session that created the
// payment intent and returns its purchase id metadata ("" when none).
func (c *Client) PurchaseIDForPaymentIntent(ctx context.Context, paymentIntentID string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	params := &stripego.CheckoutSessionListParams{PaymentIntent: stripego.String(paymentIntentID)}
	params.Context = ctx
	params.Limit = stripego.Int64(1)

	it := c.api.CheckoutSessions.List(params)
	for it.Next() {
		if id := strings.TrimSpace(it.CheckoutSession().Metadata[MetadataPurchaseID]); id != "" {
			return id, nil
		}
	}
	if err := it.Err(); err != nil {
		return "", fmt.Errorf("list checkout sessions: %w", err)
	}
	return "", nil
}
