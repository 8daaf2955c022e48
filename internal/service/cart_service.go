package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/erendoru/panobu-api/internal/domain"
	"github.com/erendoru/panobu-api/internal/pricing"
	"github.com/erendoru/panobu-api/internal/repository"
	"github.com/erendoru/panobu-api/pkg/errors"
)

type cartService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(repos *repository.Repositories, logger *zap.Logger) *cartService {
	return &cartService{
		repos:  repos,
		logger: logger,
	}
}

// GetCart loads the owner's cart items together with the active pricing rules
// and returns the computed breakdown. Items and rules are read back to back;
// the engine itself never touches storage.
func (s *cartService) GetCart(ctx context.Context, owner domain.CartOwner) (*CartResponse, error) {
	items, err := s.repos.CartItem.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	rules, err := s.repos.PricingRule.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	breakdown := pricing.ComputeCartPricing(items, rules)
	return buildCartResponse(items, breakdown), nil
}

// AddItem places a panel into the owner's cart
func (s *cartService) AddItem(ctx context.Context, owner domain.CartOwner, req AddCartItemRequest) (*domain.CartItem, error) {
	panelID, err := uuid.Parse(req.PanelID)
	if err != nil {
		return nil, &errors.ErrValidation{Field: "panel_id", Message: "must be a valid UUID"}
	}

	if (req.StartDate == nil) != (req.EndDate == nil) {
		return nil, &errors.ErrValidation{Field: "start_date", Message: "start and end date must be set together"}
	}
	if req.StartDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, &errors.ErrValidation{Field: "end_date", Message: "must not be before start date"}
	}

	panel, err := s.repos.Panel.GetByID(ctx, panelID)
	if err != nil {
		return nil, err
	}
	if !panel.IsAvailable {
		return nil, &errors.ErrValidation{Field: "panel_id", Message: "panel is not available for rent"}
	}

	item := &domain.CartItem{
		PanelID:   panel.ID,
		UserID:    owner.UserID,
		SessionID: owner.SessionID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}

	if err := s.repos.CartItem.Add(ctx, item); err != nil {
		return nil, err
	}

	item.Panel = panel
	return item, nil
}

// RemoveItem deletes a single cart line after verifying it belongs to the owner
func (s *cartService) RemoveItem(ctx context.Context, owner domain.CartOwner, itemID uuid.UUID) error {
	item, err := s.repos.CartItem.GetByID(ctx, itemID)
	if err != nil {
		return err
	}

	if !sameOwner(item, owner) {
		return &errors.ErrForbidden{Message: "cart item belongs to another cart"}
	}

	return s.repos.CartItem.Remove(ctx, itemID)
}

// Clear empties the owner's cart
func (s *cartService) Clear(ctx context.Context, owner domain.CartOwner) error {
	return s.repos.CartItem.Clear(ctx, owner)
}

func sameOwner(item *domain.CartItem, owner domain.CartOwner) bool {
	if owner.UserID != nil {
		return item.UserID != nil && *item.UserID == *owner.UserID
	}
	if owner.SessionID != nil {
		return item.SessionID != nil && *item.SessionID == *owner.SessionID
	}
	return false
}

func buildCartResponse(items []domain.CartItem, breakdown pricing.Breakdown) *CartResponse {
	prices := make(map[uuid.UUID]pricing.ItemPrice, len(breakdown.ItemPrices))
	for _, ip := range breakdown.ItemPrices {
		prices[ip.ItemID] = ip
	}

	responses := make([]CartItemResponse, 0, len(items))
	for _, item := range items {
		ip := prices[item.ID]
		responses = append(responses, CartItemResponse{
			ID:              item.ID.String(),
			PanelID:         item.PanelID.String(),
			PanelName:       item.Panel.Name,
			PanelType:       string(item.Panel.Type),
			OwnerName:       item.Panel.OwnerName,
			City:            item.Panel.City,
			WeeklyPrice:     item.Panel.WeeklyPrice,
			StartDate:       item.StartDate,
			EndDate:         item.EndDate,
			Weeks:           ip.Weeks,
			OriginalPrice:   ip.OriginalPrice,
			DiscountedPrice: ip.DiscountedPrice,
		})
	}

	return &CartResponse{
		Items:       responses,
		Subtotal:    breakdown.Subtotal,
		Discount:    breakdown.Discount,
		Total:       breakdown.Total,
		Suggestions: breakdown.Suggestions,
		ItemCount:   breakdown.ItemCount,
	}
}
