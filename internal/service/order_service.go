package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/erendoru/panobu-api/internal/domain"
	"github.com/erendoru/panobu-api/internal/payments"
	"github.com/erendoru/panobu-api/internal/pricing"
	"github.com/erendoru/panobu-api/internal/repository"
	"github.com/erendoru/panobu-api/pkg/errors"
)

type orderService struct {
	repos    *repository.Repositories
	provider payments.Provider
	logger   *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(repos *repository.Repositories, provider payments.Provider, logger *zap.Logger) *orderService {
	return &orderService{
		repos:    repos,
		provider: provider,
		logger:   logger,
	}
}

// CreateFromCart turns the user's cart into a pending order. Prices are fixed
// at order time by running the pricing engine against the current rule set;
// the cart is cleared afterwards.
func (s *orderService) CreateFromCart(ctx context.Context, userID uuid.UUID) (*domain.Order, error) {
	owner := domain.CartOwner{UserID: &userID}

	items, err := s.repos.CartItem.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, &errors.ErrValidation{Message: "cart is empty"}
	}

	rules, err := s.repos.PricingRule.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	breakdown := pricing.ComputeCartPricing(items, rules)

	order := &domain.Order{
		UserID:   userID,
		Status:   domain.OrderStatusPendingPayment,
		Subtotal: breakdown.Subtotal,
		Discount: breakdown.Discount,
		Total:    breakdown.Total,
	}

	if err := s.repos.Order.Create(ctx, order); err != nil {
		return nil, err
	}

	prices := make(map[uuid.UUID]pricing.ItemPrice, len(breakdown.ItemPrices))
	for _, ip := range breakdown.ItemPrices {
		prices[ip.ItemID] = ip
	}

	orderItems := make([]*domain.OrderItem, 0, len(items))
	for _, item := range items {
		ip := prices[item.ID]
		orderItems = append(orderItems, &domain.OrderItem{
			OrderID:         order.ID,
			PanelID:         item.PanelID,
			PanelName:       item.Panel.Name,
			PanelType:       item.Panel.Type,
			City:            item.Panel.City,
			Weeks:           ip.Weeks,
			OriginalPrice:   ip.OriginalPrice,
			DiscountedPrice: ip.DiscountedPrice,
			StartDate:       item.StartDate,
			EndDate:         item.EndDate,
		})
	}

	if err := s.repos.OrderItem.CreateBatch(ctx, orderItems); err != nil {
		return nil, err
	}

	if err := s.repos.CartItem.Clear(ctx, owner); err != nil {
		// Order exists at this point; a stale cart is recoverable.
		s.logger.Warn("Failed to clear cart after order creation",
			zap.String("order_id", order.ID.String()), zap.Error(err))
	}

	return order, nil
}

// GetForUser returns an order only if it belongs to the given user
func (s *orderService) GetForUser(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, []*domain.OrderItem, error) {
	order, err := s.repos.Order.GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if order.UserID != userID {
		return nil, nil, &errors.ErrForbidden{Message: "access denied"}
	}

	items, err := s.repos.OrderItem.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	return order, items, nil
}

// Checkout opens a payment session for a pending order
func (s *orderService) Checkout(ctx context.Context, userID, orderID uuid.UUID) (*payments.CheckoutSession, error) {
	order, items, err := s.GetForUser(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderStatusPendingPayment {
		return nil, &errors.ErrInvalidStateTransition{From: string(order.Status), To: string(domain.OrderStatusPaid)}
	}

	lineItems := make([]payments.LineItem, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, payments.LineItem{
			Name:     item.PanelName,
			Quantity: int64(item.Weeks),
			Amount:   item.DiscountedPrice.Div(decimalFromInt(item.Weeks)),
		})
	}

	session, err := s.provider.CreateCheckoutSession(ctx, payments.CheckoutRequest{
		OrderID:  order.ID.String(),
		Amount:   order.Total,
		Currency: "TRY",
		Items:    lineItems,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repos.Order.UpdatePaymentSession(ctx, order.ID, session.ID); err != nil {
		return nil, err
	}

	return session, nil
}

// ConfirmPayment polls the PSP session and marks the order paid on success
func (s *orderService) ConfirmPayment(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, error) {
	order, _, err := s.GetForUser(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentSessionID == nil {
		return nil, &errors.ErrValidation{Message: "order has no payment session"}
	}
	if order.Status == domain.OrderStatusPaid {
		return order, nil
	}

	details, err := s.provider.LookupSession(ctx, *order.PaymentSessionID)
	if err != nil {
		return nil, err
	}
	if details.Status != payments.StatusSucceeded {
		return nil, &errors.ErrValidation{Message: "payment not completed"}
	}

	if err := s.transition(ctx, order, domain.OrderStatusPaid, nil); err != nil {
		return nil, err
	}

	return s.repos.Order.GetByID(ctx, orderID)
}

// UpdateStatus performs an admin-driven status change
func (s *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus, reason *string) (*domain.Order, error) {
	if !status.IsValid() {
		return nil, &errors.ErrValidation{Field: "status", Message: "unknown order status"}
	}

	order, err := s.repos.Order.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.transition(ctx, order, status, reason); err != nil {
		return nil, err
	}

	return s.repos.Order.GetByID(ctx, orderID)
}

func (s *orderService) transition(ctx context.Context, order *domain.Order, to domain.OrderStatus, reason *string) error {
	if !order.Status.CanTransitionTo(to) {
		return &errors.ErrInvalidStateTransition{From: string(order.Status), To: string(to)}
	}
	return s.repos.Order.UpdateStatus(ctx, order.ID, to, reason)
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
