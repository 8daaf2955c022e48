package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/erendoru/panobu-api/internal/pricing"
)

// AddCartItemRequest represents the add-to-cart payload
type AddCartItemRequest struct {
	PanelID   string     `json:"panel_id" binding:"required,uuid"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// CartItemResponse represents one cart line in API responses
type CartItemResponse struct {
	ID              string          `json:"id"`
	PanelID         string          `json:"panel_id"`
	PanelName       string          `json:"panel_name"`
	PanelType       string          `json:"panel_type"`
	OwnerName       *string         `json:"owner_name,omitempty"`
	City            string          `json:"city"`
	WeeklyPrice     decimal.Decimal `json:"weekly_price"`
	StartDate       *time.Time      `json:"start_date,omitempty"`
	EndDate         *time.Time      `json:"end_date,omitempty"`
	Weeks           int             `json:"weeks"`
	OriginalPrice   decimal.Decimal `json:"original_price"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
}

// CartResponse represents the cart with its computed price breakdown
type CartResponse struct {
	Items       []CartItemResponse   `json:"items"`
	Subtotal    decimal.Decimal      `json:"subtotal"`
	Discount    decimal.Decimal      `json:"discount"`
	Total       decimal.Decimal      `json:"total"`
	Suggestions []pricing.Suggestion `json:"suggestions"`
	ItemCount   int                  `json:"item_count"`
}

// PricingRuleRequest represents the admin create/update payload for a rule
type PricingRuleRequest struct {
	Name            string           `json:"name" binding:"required"`
	PanelType       *string          `json:"panel_type,omitempty"`
	OwnerName       *string          `json:"owner_name,omitempty"`
	City            *string          `json:"city,omitempty"`
	MinQuantity     int              `json:"min_quantity" binding:"required,min=1"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty"`
	FixedUnitPrice  *decimal.Decimal `json:"fixed_unit_price,omitempty"`
	Priority        int              `json:"priority"`
	IsActive        *bool            `json:"is_active,omitempty"`
}

// CreatePanelRequest represents the screen-owner create/update payload
type CreatePanelRequest struct {
	Name        string          `json:"name" binding:"required"`
	Type        string          `json:"type" binding:"required"`
	OwnerName   *string         `json:"owner_name,omitempty"`
	City        string          `json:"city" binding:"required"`
	District    *string         `json:"district,omitempty"`
	WeeklyPrice decimal.Decimal `json:"weekly_price" binding:"required"`
	WidthCM     *int            `json:"width_cm,omitempty"`
	HeightCM    *int            `json:"height_cm,omitempty"`
	ImageURL    *string         `json:"image_url,omitempty"`
	IsAvailable *bool           `json:"is_available,omitempty"`
}
