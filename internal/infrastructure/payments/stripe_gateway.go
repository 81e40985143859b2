package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/uuid"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"github.com/stripe/stripe-go/v82/webhook"
	"github.com/vinay2003/Airion-backend-sub001/domain"
)

// Config holds Stripe credentials.
type Config struct {
	SecretKey     string
	WebhookSecret string
	Currency      string
}

// StripeGateway implements domain.PaymentGateway with Stripe PaymentIntents
type StripeGateway struct {
	cfg       Config
	newIntent func(*stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// NewStripeGateway creates a gateway; without a secret key card payments
// fail with domain.ErrPaymentsUnavailable.
func NewStripeGateway(cfg Config) domain.PaymentGateway {
	if cfg.SecretKey != "" {
		stripe.Key = cfg.SecretKey
	}
	return &StripeGateway{cfg: cfg, newIntent: paymentintent.New}
}

// CreateIntent implements domain.PaymentGateway
func (g *StripeGateway) CreateIntent(ctx context.Context, bookingID uuid.UUID, amount float64) (*domain.PaymentIntent, error) {
	if g.cfg.SecretKey == "" {
		return nil, domain.ErrPaymentsUnavailable
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(math.Round(amount * 100))),
		Currency: stripe.String(g.cfg.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("booking_id", bookingID.String())
	params.SetIdempotencyKey("booking-" + bookingID.String())

	pi, err := g.newIntent(params)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	return &domain.PaymentIntent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

// ParseEvent implements domain.PaymentGateway
func (g *StripeGateway) ParseEvent(payload []byte, signature string) (*domain.PaymentEvent, bool, error) {
	if g.cfg.WebhookSecret == "" {
		return nil, false, domain.ErrPaymentsUnavailable
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, g.cfg.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", domain.ErrWebhookSignature, err)
	}

	var status string
	switch event.Type {
	case "payment_intent.succeeded":
		status = domain.PaymentPaid
	case "payment_intent.payment_failed", "payment_intent.canceled":
		status = domain.PaymentFailed
	default:
		return nil, false, nil
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return nil, false, fmt.Errorf("decode payment intent: %w", err)
	}
	return &domain.PaymentEvent{Reference: pi.ID, Status: status}, true, nil
}
