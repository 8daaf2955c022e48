package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/erendoru/panobu-api/internal/api/middleware"
	"github.com/erendoru/panobu-api/internal/domain"
	"github.com/erendoru/panobu-api/internal/payments"
	"github.com/erendoru/panobu-api/internal/repository"
	"github.com/erendoru/panobu-api/internal/service"
)

// OrderResponse represents the order response
type OrderResponse struct {
	ID           string              `json:"id"`
	Status       domain.OrderStatus  `json:"status"`
	Subtotal     decimal.Decimal     `json:"subtotal"`
	Discount     decimal.Decimal     `json:"discount"`
	Total        decimal.Decimal     `json:"total"`
	CancelReason *string             `json:"cancel_reason,omitempty"`
	Items        []OrderItemResponse `json:"items,omitempty"`
	CreatedAt    string              `json:"created_at"`
	UpdatedAt    string              `json:"updated_at"`
}

type OrderItemResponse struct {
	PanelID         string          `json:"panel_id"`
	PanelName       string          `json:"panel_name"`
	PanelType       string          `json:"panel_type"`
	City            string          `json:"city"`
	Weeks           int             `json:"weeks"`
	OriginalPrice   decimal.Decimal `json:"original_price"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
	StartDate       *time.Time      `json:"start_date,omitempty"`
	EndDate         *time.Time      `json:"end_date,omitempty"`
}

func orderResponse(order *domain.Order, items []*domain.OrderItem) OrderResponse {
	response := OrderResponse{
		ID:           order.ID.String(),
		Status:       order.Status,
		Subtotal:     order.Subtotal,
		Discount:     order.Discount,
		Total:        order.Total,
		CancelReason: order.CancelReason,
		CreatedAt:    order.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    order.UpdatedAt.Format(time.RFC3339),
	}

	for _, item := range items {
		response.Items = append(response.Items, OrderItemResponse{
			PanelID:         item.PanelID.String(),
			PanelName:       item.PanelName,
			PanelType:       string(item.PanelType),
			City:            item.City,
			Weeks:           item.Weeks,
			OriginalPrice:   item.OriginalPrice,
			DiscountedPrice: item.DiscountedPrice,
			StartDate:       item.StartDate,
			EndDate:         item.EndDate,
		})
	}

	return response
}

// HandleCreateOrder handles POST /v1/orders
func HandleCreateOrder(repos *repository.Repositories, provider payments.Provider, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.GetClaims(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		orderService := service.NewOrderService(repos, provider, logger)
		order, err := orderService.CreateFromCart(c.Request.Context(), claims.UserID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, orderResponse(order, nil))
	}
}

// HandleListOrders handles GET /v1/orders
func HandleListOrders(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.GetClaims(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		orders, err := repos.Order.ListByUser(c.Request.Context(), claims.UserID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		responses := make([]OrderResponse, 0, len(orders))
		for _, order := range orders {
			responses = append(responses, orderResponse(order, nil))
		}

		c.JSON(http.StatusOK, gin.H{"orders": responses})
	}
}

// HandleGetOrder handles GET /v1/orders/:id
func HandleGetOrder(repos *repository.Repositories, provider payments.Provider, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.GetClaims(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		orderService := service.NewOrderService(repos, provider, logger)
		order, items, err := orderService.GetForUser(c.Request.Context(), claims.UserID, orderID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, orderResponse(order, items))
	}
}

// HandleCheckout handles POST /v1/orders/:id/checkout
func HandleCheckout(repos *repository.Repositories, provider payments.Provider, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.GetClaims(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		orderService := service.NewOrderService(repos, provider, logger)
		session, err := orderService.Checkout(c.Request.Context(), claims.UserID, orderID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"session_id":   session.ID,
			"redirect_url": session.RedirectURL,
		})
	}
}

// HandleConfirmPayment handles POST /v1/orders/:id/confirm-payment
func HandleConfirmPayment(repos *repository.Repositories, provider payments.Provider, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.GetClaims(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		orderService := service.NewOrderService(repos, provider, logger)
		order, err := orderService.ConfirmPayment(c.Request.Context(), claims.UserID, orderID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":     order.ID.String(),
			"status": order.Status,
		})
	}
}
