package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/erendoru/panobu-api/internal/domain"
	"github.com/erendoru/panobu-api/internal/repository"
	"github.com/erendoru/panobu-api/pkg/errors"
)

type ruleService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewRuleService creates a new pricing rule service
func NewRuleService(repos *repository.Repositories, logger *zap.Logger) *ruleService {
	return &ruleService{
		repos:  repos,
		logger: logger,
	}
}

// Create validates and persists a new pricing rule
func (s *ruleService) Create(ctx context.Context, req PricingRuleRequest) (*domain.PricingRule, error) {
	rule, err := ruleFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.repos.PricingRule.Create(ctx, rule); err != nil {
		return nil, err
	}

	return rule, nil
}

// Update validates and applies changes to an existing rule
func (s *ruleService) Update(ctx context.Context, id uuid.UUID, req PricingRuleRequest) (*domain.PricingRule, error) {
	existing, err := s.repos.PricingRule.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rule, err := ruleFromRequest(req)
	if err != nil {
		return nil, err
	}
	rule.ID = existing.ID
	rule.CreatedAt = existing.CreatedAt

	if err := s.repos.PricingRule.Update(ctx, rule); err != nil {
		return nil, err
	}

	return rule, nil
}

// Delete removes a rule
func (s *ruleService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repos.PricingRule.Delete(ctx, id)
}

// List returns all rules, active or not, for the admin dashboard
func (s *ruleService) List(ctx context.Context) ([]domain.PricingRule, error) {
	return s.repos.PricingRule.List(ctx)
}

// ruleFromRequest validates the rule payload. The engine itself assumes sane
// inputs, so this is where malformed rules are rejected.
func ruleFromRequest(req PricingRuleRequest) (*domain.PricingRule, error) {
	if req.MinQuantity < 1 {
		return nil, &errors.ErrValidation{Field: "min_quantity", Message: "must be at least 1"}
	}
	if req.DiscountPercent == nil && req.FixedUnitPrice == nil {
		return nil, &errors.ErrValidation{Message: "either discount_percent or fixed_unit_price must be set"}
	}
	if req.DiscountPercent != nil {
		if req.DiscountPercent.IsNegative() || req.DiscountPercent.GreaterThanOrEqual(decimal.NewFromInt(100)) {
			return nil, &errors.ErrValidation{Field: "discount_percent", Message: "must be in [0, 100)"}
		}
	}
	if req.FixedUnitPrice != nil && req.FixedUnitPrice.IsNegative() {
		return nil, &errors.ErrValidation{Field: "fixed_unit_price", Message: "must not be negative"}
	}

	rule := &domain.PricingRule{
		Name:            req.Name,
		OwnerName:       req.OwnerName,
		City:            req.City,
		MinQuantity:     req.MinQuantity,
		DiscountPercent: req.DiscountPercent,
		FixedUnitPrice:  req.FixedUnitPrice,
		Priority:        req.Priority,
		IsActive:        true,
	}

	if req.PanelType != nil {
		pt := domain.PanelType(*req.PanelType)
		if !pt.IsValid() {
			return nil, &errors.ErrValidation{Field: "panel_type", Message: "unknown panel type"}
		}
		rule.PanelType = &pt
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}

	return rule, nil
}
