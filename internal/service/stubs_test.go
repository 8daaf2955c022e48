package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/erendoru/panobu-api/internal/domain"
	"github.com/erendoru/panobu-api/internal/repository"
	"github.com/erendoru/panobu-api/pkg/errors"
)

type stubCartItemRepo struct {
	addFunc     func(ctx context.Context, item *domain.CartItem) error
	getFunc     func(ctx context.Context, id uuid.UUID) (*domain.CartItem, error)
	listFunc    func(ctx context.Context, owner domain.CartOwner) ([]domain.CartItem, error)
	removeFunc  func(ctx context.Context, id uuid.UUID) error
	clearFunc   func(ctx context.Context, owner domain.CartOwner) error
	clearCalled int
}

func (s *stubCartItemRepo) Add(ctx context.Context, item *domain.CartItem) error {
	if s.addFunc != nil {
		return s.addFunc(ctx, item)
	}
	return nil
}

func (s *stubCartItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CartItem, error) {
	if s.getFunc != nil {
		return s.getFunc(ctx, id)
	}
	return nil, &errors.ErrNotFound{Resource: "cart item", ID: id.String()}
}

func (s *stubCartItemRepo) ListByOwner(ctx context.Context, owner domain.CartOwner) ([]domain.CartItem, error) {
	if s.listFunc != nil {
		return s.listFunc(ctx, owner)
	}
	return nil, nil
}

func (s *stubCartItemRepo) Remove(ctx context.Context, id uuid.UUID) error {
	if s.removeFunc != nil {
		return s.removeFunc(ctx, id)
	}
	return nil
}

func (s *stubCartItemRepo) Clear(ctx context.Context, owner domain.CartOwner) error {
	s.clearCalled++
	if s.clearFunc != nil {
		return s.clearFunc(ctx, owner)
	}
	return nil
}

type stubPricingRuleRepo struct {
	rules []domain.PricingRule
}

func (s *stubPricingRuleRepo) Create(ctx context.Context, rule *domain.PricingRule) error {
	s.rules = append(s.rules, *rule)
	return nil
}

func (s *stubPricingRuleRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PricingRule, error) {
	for i := range s.rules {
		if s.rules[i].ID == id {
			return &s.rules[i], nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "pricing rule", ID: id.String()}
}

func (s *stubPricingRuleRepo) List(ctx context.Context) ([]domain.PricingRule, error) {
	return s.rules, nil
}

func (s *stubPricingRuleRepo) ListActive(ctx context.Context) ([]domain.PricingRule, error) {
	var active []domain.PricingRule
	for _, r := range s.rules {
		if r.IsActive {
			active = append(active, r)
		}
	}
	return active, nil
}

func (s *stubPricingRuleRepo) Update(ctx context.Context, rule *domain.PricingRule) error {
	for i := range s.rules {
		if s.rules[i].ID == rule.ID {
			s.rules[i] = *rule
			return nil
		}
	}
	return &errors.ErrNotFound{Resource: "pricing rule", ID: rule.ID.String()}
}

func (s *stubPricingRuleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i := range s.rules {
		if s.rules[i].ID == id {
			s.rules = append(s.rules[:i], s.rules[i+1:]...)
			return nil
		}
	}
	return &errors.ErrNotFound{Resource: "pricing rule", ID: id.String()}
}

type stubPanelRepo struct {
	panels map[uuid.UUID]*domain.Panel
}

func (s *stubPanelRepo) Create(ctx context.Context, panel *domain.Panel) error {
	if s.panels == nil {
		s.panels = make(map[uuid.UUID]*domain.Panel)
	}
	s.panels[panel.ID] = panel
	return nil
}

func (s *stubPanelRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Panel, error) {
	if panel, ok := s.panels[id]; ok {
		return panel, nil
	}
	return nil, &errors.ErrNotFound{Resource: "panel", ID: id.String()}
}

func (s *stubPanelRepo) List(ctx context.Context, filter repository.PanelFilter) ([]*domain.Panel, error) {
	var panels []*domain.Panel
	for _, p := range s.panels {
		panels = append(panels, p)
	}
	return panels, nil
}

func (s *stubPanelRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Panel, error) {
	var panels []*domain.Panel
	for _, p := range s.panels {
		if p.OwnerID == ownerID {
			panels = append(panels, p)
		}
	}
	return panels, nil
}

func (s *stubPanelRepo) Update(ctx context.Context, panel *domain.Panel) error {
	s.panels[panel.ID] = panel
	return nil
}

type stubOrderRepo struct {
	orders map[uuid.UUID]*domain.Order
}

func (s *stubOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if s.orders == nil {
		s.orders = make(map[uuid.UUID]*domain.Order)
	}
	stored := *order
	s.orders[order.ID] = &stored
	return nil
}

func (s *stubOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if order, ok := s.orders[id]; ok {
		copied := *order
		return &copied, nil
	}
	return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
}

func (s *stubOrderRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	var orders []*domain.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (s *stubOrderRepo) ListAll(ctx context.Context) ([]*domain.Order, error) {
	var orders []*domain.Order
	for _, o := range s.orders {
		orders = append(orders, o)
	}
	return orders, nil
}

func (s *stubOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus, reason *string) error {
	order, ok := s.orders[id]
	if !ok {
		return &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	order.Status = status
	order.CancelReason = reason
	return nil
}

func (s *stubOrderRepo) UpdatePaymentSession(ctx context.Context, id uuid.UUID, sessionID string) error {
	order, ok := s.orders[id]
	if !ok {
		return &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	order.PaymentSessionID = &sessionID
	return nil
}

type stubOrderItemRepo struct {
	items map[uuid.UUID][]*domain.OrderItem
}

func (s *stubOrderItemRepo) CreateBatch(ctx context.Context, items []*domain.OrderItem) error {
	if s.items == nil {
		s.items = make(map[uuid.UUID][]*domain.OrderItem)
	}
	for _, item := range items {
		s.items[item.OrderID] = append(s.items[item.OrderID], item)
	}
	return nil
}

func (s *stubOrderItemRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderItem, error) {
	return s.items[orderID], nil
}
