package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/erendoru/panobu-api/internal/api/middleware"
	"github.com/erendoru/panobu-api/internal/repository"
	"github.com/erendoru/panobu-api/internal/service"
)

// HandleGetCart handles GET /v1/cart
func HandleGetCart(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := middleware.ResolveCartOwner(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "authenticate or provide an X-Session-ID header"})
			return
		}

		cartService := service.NewCartService(repos, logger)
		cart, err := cartService.GetCart(c.Request.Context(), owner)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, cart)
	}
}

// HandleAddCartItem handles POST /v1/cart/items
func HandleAddCartItem(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := middleware.ResolveCartOwner(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "authenticate or provide an X-Session-ID header"})
			return
		}

		var req service.AddCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		cartService := service.NewCartService(repos, logger)
		item, err := cartService.AddItem(c.Request.Context(), owner, req)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":       item.ID.String(),
			"panel_id": item.PanelID.String(),
		})
	}
}

// HandleRemoveCartItem handles DELETE /v1/cart/items/:id
func HandleRemoveCartItem(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := middleware.ResolveCartOwner(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "authenticate or provide an X-Session-ID header"})
			return
		}

		itemID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart item ID"})
			return
		}

		cartService := service.NewCartService(repos, logger)
		if err := cartService.RemoveItem(c.Request.Context(), owner, itemID); err != nil {
			respondError(c, logger, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// HandleClearCart handles DELETE /v1/cart
func HandleClearCart(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := middleware.ResolveCartOwner(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "authenticate or provide an X-Session-ID header"})
			return
		}

		cartService := service.NewCartService(repos, logger)
		if err := cartService.Clear(c.Request.Context(), owner); err != nil {
			respondError(c, logger, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}
