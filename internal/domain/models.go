package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents a platform account (admin, screen owner or advertiser)
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	CompanyName  *string
	Role         UserRole
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Panel represents an outdoor advertising surface available for rent
type Panel struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Type        PanelType
	OwnerName   *string
	City        string
	District    *string
	WeeklyPrice decimal.Decimal
	WidthCM     *int
	HeightCM    *int
	ImageURL    *string
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CartOwner identifies a cart by user id or anonymous session token.
// Exactly one of the fields is set; resolution happens in the HTTP layer.
type CartOwner struct {
	UserID    *uuid.UUID
	SessionID *string
}

// CartItem represents a panel placed in a cart
type CartItem struct {
	ID        uuid.UUID
	PanelID   uuid.UUID
	UserID    *uuid.UUID
	SessionID *string
	StartDate *time.Time
	EndDate   *time.Time
	Panel     *Panel
	CreatedAt time.Time
}

// PricingRule represents a quantity-based discount rule managed by admins.
// Nil scope fields act as wildcards during matching.
type PricingRule struct {
	ID              uuid.UUID
	Name            string
	PanelType       *PanelType
	OwnerName       *string
	City            *string
	MinQuantity     int
	DiscountPercent *decimal.Decimal
	FixedUnitPrice  *decimal.Decimal
	Priority        int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Order represents a placed rental order
type Order struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Status           OrderStatus
	Subtotal         decimal.Decimal
	Discount         decimal.Decimal
	Total            decimal.Decimal
	PaymentSessionID *string
	CancelReason     *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// OrderItem represents a single panel rental in an order
type OrderItem struct {
	ID              uuid.UUID
	OrderID         uuid.UUID
	PanelID         uuid.UUID
	PanelName       string
	PanelType       PanelType
	City            string
	Weeks           int
	OriginalPrice   decimal.Decimal
	DiscountedPrice decimal.Decimal
	StartDate       *time.Time
	EndDate         *time.Time
	CreatedAt       time.Time
}
