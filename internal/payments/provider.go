package payments

import (
	"context"

	"github.com/shopspring/decimal"
)

// Status enumerates normalised payment states reported by the PSP.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// LineItem describes a single order line included in a checkout session.
type LineItem struct {
	Name     string
	Quantity int64
	Amount   decimal.Decimal
}

// CheckoutRequest captures the payload required to open a checkout session.
type CheckoutRequest struct {
	OrderID    string
	Amount     decimal.Decimal
	Currency   string
	SuccessURL string
	CancelURL  string
	Items      []LineItem
}

// CheckoutSession represents the PSP session returned to the client.
type CheckoutSession struct {
	ID          string
	RedirectURL string
}

// SessionDetails reports the state of a previously opened session.
type SessionDetails struct {
	ID     string
	Status Status
}

// Provider is the boundary to the payment service provider. The rest of the
// system only ever sees normalised sessions and statuses.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	LookupSession(ctx context.Context, sessionID string) (*SessionDetails, error)
}
