package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/erendoru/panobu-api/internal/domain"
)

// UserRepository manages platform accounts
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// PanelFilter narrows panel listings
type PanelFilter struct {
	City          *string
	Type          *domain.PanelType
	OnlyAvailable bool
}

// PanelRepository manages advertising panels
type PanelRepository interface {
	Create(ctx context.Context, panel *domain.Panel) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Panel, error)
	List(ctx context.Context, filter PanelFilter) ([]*domain.Panel, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Panel, error)
	Update(ctx context.Context, panel *domain.Panel) error
}

// CartItemRepository manages cart contents for a user or anonymous session
type CartItemRepository interface {
	Add(ctx context.Context, item *domain.CartItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CartItem, error)
	ListByOwner(ctx context.Context, owner domain.CartOwner) ([]domain.CartItem, error)
	Remove(ctx context.Context, id uuid.UUID) error
	Clear(ctx context.Context, owner domain.CartOwner) error
}

// PricingRuleRepository manages quantity-discount rules
type PricingRuleRepository interface {
	Create(ctx context.Context, rule *domain.PricingRule) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PricingRule, error)
	List(ctx context.Context) ([]domain.PricingRule, error)
	ListActive(ctx context.Context) ([]domain.PricingRule, error)
	Update(ctx context.Context, rule *domain.PricingRule) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderRepository manages rental orders
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error)
	ListAll(ctx context.Context) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus, reason *string) error
	UpdatePaymentSession(ctx context.Context, id uuid.UUID, sessionID string) error
}

// OrderItemRepository manages the line items of orders
type OrderItemRepository interface {
	CreateBatch(ctx context.Context, items []*domain.OrderItem) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderItem, error)
}

// Repositories bundles all repository implementations
type Repositories struct {
	User        UserRepository
	Panel       PanelRepository
	CartItem    CartItemRepository
	PricingRule PricingRuleRepository
	Order       OrderRepository
	OrderItem   OrderItemRepository
}
