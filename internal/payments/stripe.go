package payments

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"go.uber.org/zap"

	"github.com/erendoru/panobu-api/internal/config"
	"github.com/erendoru/panobu-api/pkg/errors"
)

// stripeCheckoutAPI is the slice of the Stripe client the provider uses,
// extracted so tests can substitute it.
type stripeCheckoutAPI interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	Get(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// StripeProvider implements Provider on top of Stripe Checkout.
type StripeProvider struct {
	api    stripeCheckoutAPI
	cfg    config.PaymentsConfig
	logger *zap.Logger
}

// NewStripeProvider creates a Stripe-backed payment provider
func NewStripeProvider(cfg config.PaymentsConfig, logger *zap.Logger) (*StripeProvider, error) {
	apiKey := strings.TrimSpace(cfg.StripeAPIKey)
	if apiKey == "" {
		return nil, &errors.ErrValidation{Field: "STRIPE_API_KEY", Message: "is required"}
	}

	sc := &client.API{}
	sc.Init(apiKey, nil)

	return &StripeProvider{
		api:    sc.CheckoutSessions,
		cfg:    cfg,
		logger: logger,
	}, nil
}

func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	successURL := req.SuccessURL
	if successURL == "" {
		successURL = p.cfg.SuccessURL
	}
	cancelURL := req.CancelURL
	if cancelURL == "" {
		cancelURL = p.cfg.CancelURL
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		ClientReferenceID: stripe.String(req.OrderID),
		SuccessURL:        stripe.String(successURL),
		CancelURL:         stripe.String(cancelURL),
	}
	params.Context = ctx

	currency := strings.ToLower(req.Currency)
	for _, item := range req.Items {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(item.Quantity),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(currency),
				UnitAmount: stripe.Int64(toMinorUnits(item.Amount)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
			},
		})
	}

	session, err := p.api.New(params)
	if err != nil {
		p.logger.Error("Failed to create checkout session", zap.String("order_id", req.OrderID), zap.Error(err))
		return nil, err
	}

	return &CheckoutSession{
		ID:          session.ID,
		RedirectURL: session.URL,
	}, nil
}

func (p *StripeProvider) LookupSession(ctx context.Context, sessionID string) (*SessionDetails, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	session, err := p.api.Get(sessionID, params)
	if err != nil {
		p.logger.Error("Failed to look up checkout session", zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}

	details := &SessionDetails{ID: session.ID, Status: StatusPending}
	switch {
	case session.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid:
		details.Status = StatusSucceeded
	case session.Status == stripe.CheckoutSessionStatusExpired:
		details.Status = StatusFailed
	}

	return details, nil
}

// toMinorUnits converts a decimal price to the PSP's integer minor units.
func toMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
