package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/erendoru/panobu-api/internal/domain"
	"github.com/erendoru/panobu-api/internal/payments"
	"github.com/erendoru/panobu-api/internal/repository"
	"github.com/erendoru/panobu-api/pkg/errors"
)

type stubProvider struct {
	createFunc func(ctx context.Context, req payments.CheckoutRequest) (*payments.CheckoutSession, error)
	lookupFunc func(ctx context.Context, sessionID string) (*payments.SessionDetails, error)
}

func (s *stubProvider) CreateCheckoutSession(ctx context.Context, req payments.CheckoutRequest) (*payments.CheckoutSession, error) {
	if s.createFunc != nil {
		return s.createFunc(ctx, req)
	}
	return &payments.CheckoutSession{ID: "sess_1", RedirectURL: "https://psp.example/sess_1"}, nil
}

func (s *stubProvider) LookupSession(ctx context.Context, sessionID string) (*payments.SessionDetails, error) {
	if s.lookupFunc != nil {
		return s.lookupFunc(ctx, sessionID)
	}
	return &payments.SessionDetails{ID: sessionID, Status: payments.StatusSucceeded}, nil
}

func orderTestRepos(cartItems []domain.CartItem, rules []domain.PricingRule) (*repository.Repositories, *stubCartItemRepo, *stubOrderRepo, *stubOrderItemRepo) {
	cartRepo := &stubCartItemRepo{
		listFunc: func(ctx context.Context, owner domain.CartOwner) ([]domain.CartItem, error) {
			return cartItems, nil
		},
	}
	orderRepo := &stubOrderRepo{}
	orderItemRepo := &stubOrderItemRepo{}

	return &repository.Repositories{
		CartItem:    cartRepo,
		PricingRule: &stubPricingRuleRepo{rules: rules},
		Order:       orderRepo,
		OrderItem:   orderItemRepo,
	}, cartRepo, orderRepo, orderItemRepo
}

func TestOrderServiceCreateFromCart(t *testing.T) {
	userID := uuid.New()
	panel := testPanel("Acme", 2000)
	items := []domain.CartItem{
		cartItemFor(panel, userID),
		cartItemFor(panel, userID),
	}

	percent := decimal.NewFromInt(25)
	panelType := domain.PanelTypeBillboard
	rules := []domain.PricingRule{{
		ID:              uuid.New(),
		Name:            "pair",
		PanelType:       &panelType,
		MinQuantity:     2,
		DiscountPercent: &percent,
		IsActive:        true,
	}}

	repos, cartRepo, orderRepo, orderItemRepo := orderTestRepos(items, rules)
	svc := NewOrderService(repos, &stubProvider{}, zap.NewNop())

	order, err := svc.CreateFromCart(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusPendingPayment, order.Status)
	assert.Equal(t, "4000", order.Subtotal.String())
	assert.Equal(t, "1000", order.Discount.String())
	assert.Equal(t, "3000", order.Total.String())
	assert.Equal(t, 1, cartRepo.clearCalled, "cart must be cleared after order creation")

	stored, err := orderRepo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.Total.String(), stored.Total.String())

	orderItems, err := orderItemRepo.GetByOrderID(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, orderItems, 2)
	assert.Equal(t, "1500", orderItems[0].DiscountedPrice.String())
}

func TestOrderServiceCreateFromEmptyCart(t *testing.T) {
	repos, _, _, _ := orderTestRepos(nil, nil)
	svc := NewOrderService(repos, &stubProvider{}, zap.NewNop())

	_, err := svc.CreateFromCart(context.Background(), uuid.New())

	var validationErr *errors.ErrValidation
	require.ErrorAs(t, err, &validationErr)
}

func TestOrderServiceGetForUserDeniesOthers(t *testing.T) {
	repos, _, orderRepo, _ := orderTestRepos(nil, nil)
	owner := uuid.New()
	order := &domain.Order{UserID: owner, Status: domain.OrderStatusPendingPayment}
	require.NoError(t, orderRepo.Create(context.Background(), order))

	svc := NewOrderService(repos, &stubProvider{}, zap.NewNop())
	_, _, err := svc.GetForUser(context.Background(), uuid.New(), order.ID)

	var forbiddenErr *errors.ErrForbidden
	require.ErrorAs(t, err, &forbiddenErr)
}

func TestOrderServiceCheckoutStoresSession(t *testing.T) {
	userID := uuid.New()
	repos, _, orderRepo, orderItemRepo := orderTestRepos(nil, nil)

	order := &domain.Order{
		UserID:   userID,
		Status:   domain.OrderStatusPendingPayment,
		Subtotal: decimal.NewFromInt(3000),
		Total:    decimal.NewFromInt(3000),
	}
	require.NoError(t, orderRepo.Create(context.Background(), order))
	require.NoError(t, orderItemRepo.CreateBatch(context.Background(), []*domain.OrderItem{{
		OrderID:         order.ID,
		PanelName:       "Kadikoy Billboard",
		Weeks:           2,
		DiscountedPrice: decimal.NewFromInt(3000),
	}}))

	var captured payments.CheckoutRequest
	provider := &stubProvider{
		createFunc: func(ctx context.Context, req payments.CheckoutRequest) (*payments.CheckoutSession, error) {
			captured = req
			return &payments.CheckoutSession{ID: "sess_42", RedirectURL: "https://psp.example/sess_42"}, nil
		},
	}

	svc := NewOrderService(repos, provider, zap.NewNop())
	session, err := svc.Checkout(context.Background(), userID, order.ID)
	require.NoError(t, err)

	assert.Equal(t, "sess_42", session.ID)
	assert.Equal(t, order.ID.String(), captured.OrderID)
	assert.Equal(t, "TRY", captured.Currency)
	require.Len(t, captured.Items, 1)
	assert.Equal(t, int64(2), captured.Items[0].Quantity)
	assert.Equal(t, "1500", captured.Items[0].Amount.String())

	stored, err := orderRepo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.PaymentSessionID)
	assert.Equal(t, "sess_42", *stored.PaymentSessionID)
}

func TestOrderServiceCheckoutRequiresPendingStatus(t *testing.T) {
	userID := uuid.New()
	repos, _, orderRepo, _ := orderTestRepos(nil, nil)

	order := &domain.Order{UserID: userID, Status: domain.OrderStatusPaid}
	require.NoError(t, orderRepo.Create(context.Background(), order))

	svc := NewOrderService(repos, &stubProvider{}, zap.NewNop())
	_, err := svc.Checkout(context.Background(), userID, order.ID)

	var transitionErr *errors.ErrInvalidStateTransition
	require.ErrorAs(t, err, &transitionErr)
}

func TestOrderServiceConfirmPaymentMarksPaid(t *testing.T) {
	userID := uuid.New()
	repos, _, orderRepo, _ := orderTestRepos(nil, nil)

	sessionID := "sess_7"
	order := &domain.Order{
		UserID:           userID,
		Status:           domain.OrderStatusPendingPayment,
		PaymentSessionID: &sessionID,
	}
	require.NoError(t, orderRepo.Create(context.Background(), order))

	svc := NewOrderService(repos, &stubProvider{}, zap.NewNop())
	updated, err := svc.ConfirmPayment(context.Background(), userID, order.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusPaid, updated.Status)
}

func TestOrderServiceConfirmPaymentPendingSession(t *testing.T) {
	userID := uuid.New()
	repos, _, orderRepo, _ := orderTestRepos(nil, nil)

	sessionID := "sess_8"
	order := &domain.Order{
		UserID:           userID,
		Status:           domain.OrderStatusPendingPayment,
		PaymentSessionID: &sessionID,
	}
	require.NoError(t, orderRepo.Create(context.Background(), order))

	provider := &stubProvider{
		lookupFunc: func(ctx context.Context, id string) (*payments.SessionDetails, error) {
			return &payments.SessionDetails{ID: id, Status: payments.StatusPending}, nil
		},
	}

	svc := NewOrderService(repos, provider, zap.NewNop())
	_, err := svc.ConfirmPayment(context.Background(), userID, order.ID)

	var validationErr *errors.ErrValidation
	require.ErrorAs(t, err, &validationErr)

	stored, err := orderRepo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPendingPayment, stored.Status)
}

func TestOrderServiceUpdateStatusRejectsInvalidTransition(t *testing.T) {
	repos, _, orderRepo, _ := orderTestRepos(nil, nil)

	order := &domain.Order{UserID: uuid.New(), Status: domain.OrderStatusCompleted}
	require.NoError(t, orderRepo.Create(context.Background(), order))

	svc := NewOrderService(repos, &stubProvider{}, zap.NewNop())
	_, err := svc.UpdateStatus(context.Background(), order.ID, domain.OrderStatusCancelled, nil)

	var transitionErr *errors.ErrInvalidStateTransition
	require.ErrorAs(t, err, &transitionErr)
}
