package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/erendoru/panobu-api/internal/domain"
	"github.com/erendoru/panobu-api/internal/payments"
	"github.com/erendoru/panobu-api/internal/repository"
	"github.com/erendoru/panobu-api/internal/service"
)

// PricingRuleResponse represents a rule in admin responses
type PricingRuleResponse struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	PanelType       *string          `json:"panel_type,omitempty"`
	OwnerName       *string          `json:"owner_name,omitempty"`
	City            *string          `json:"city,omitempty"`
	MinQuantity     int              `json:"min_quantity"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty"`
	FixedUnitPrice  *decimal.Decimal `json:"fixed_unit_price,omitempty"`
	Priority        int              `json:"priority"`
	IsActive        bool             `json:"is_active"`
	CreatedAt       string           `json:"created_at"`
}

// CancelOrderRequest represents the admin order-cancel payload
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func ruleResponse(rule *domain.PricingRule) PricingRuleResponse {
	response := PricingRuleResponse{
		ID:              rule.ID.String(),
		Name:            rule.Name,
		OwnerName:       rule.OwnerName,
		City:            rule.City,
		MinQuantity:     rule.MinQuantity,
		DiscountPercent: rule.DiscountPercent,
		FixedUnitPrice:  rule.FixedUnitPrice,
		Priority:        rule.Priority,
		IsActive:        rule.IsActive,
		CreatedAt:       rule.CreatedAt.Format(time.RFC3339),
	}
	if rule.PanelType != nil {
		pt := string(*rule.PanelType)
		response.PanelType = &pt
	}
	return response
}

// HandleListPricingRules handles GET /v1/admin/pricing-rules
func HandleListPricingRules(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ruleService := service.NewRuleService(repos, logger)
		rules, err := ruleService.List(c.Request.Context())
		if err != nil {
			respondError(c, logger, err)
			return
		}

		responses := make([]PricingRuleResponse, 0, len(rules))
		for i := range rules {
			responses = append(responses, ruleResponse(&rules[i]))
		}

		c.JSON(http.StatusOK, gin.H{"rules": responses})
	}
}

// HandleCreatePricingRule handles POST /v1/admin/pricing-rules
func HandleCreatePricingRule(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.PricingRuleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		ruleService := service.NewRuleService(repos, logger)
		rule, err := ruleService.Create(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, ruleResponse(rule))
	}
}

// HandleUpdatePricingRule handles PUT /v1/admin/pricing-rules/:id
func HandleUpdatePricingRule(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ruleID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rule ID"})
			return
		}

		var req service.PricingRuleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		ruleService := service.NewRuleService(repos, logger)
		rule, err := ruleService.Update(c.Request.Context(), ruleID, req)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, ruleResponse(rule))
	}
}

// HandleDeletePricingRule handles DELETE /v1/admin/pricing-rules/:id
func HandleDeletePricingRule(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ruleID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rule ID"})
			return
		}

		ruleService := service.NewRuleService(repos, logger)
		if err := ruleService.Delete(c.Request.Context(), ruleID); err != nil {
			respondError(c, logger, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// HandleAdminListOrders handles GET /v1/admin/orders
func HandleAdminListOrders(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := repos.Order.ListAll(c.Request.Context())
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

// HandleCancelOrder handles POST /v1/admin/orders/:id/cancel
func HandleCancelOrder(repos *repository.Repositories, provider payments.Provider, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		var req CancelOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		orderService := service.NewOrderService(repos, provider, logger)
		order, err := orderService.UpdateStatus(c.Request.Context(), orderID, domain.OrderStatusCancelled, &req.Reason)
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
