package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/erendoru/panobu-api/internal/api/middleware"
	"github.com/erendoru/panobu-api/internal/domain"
	"github.com/erendoru/panobu-api/internal/repository"
	"github.com/erendoru/panobu-api/internal/service"
)

// HandleListOwnerPanels handles GET /v1/owner/panels
func HandleListOwnerPanels(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.GetClaims(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		panels, err := repos.Panel.ListByOwner(c.Request.Context(), claims.UserID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		responses := make([]PanelResponse, 0, len(panels))
		for _, panel := range panels {
			responses = append(responses, panelResponse(panel))
		}

		c.JSON(http.StatusOK, gin.H{"panels": responses})
	}
}

// HandleCreatePanel handles POST /v1/owner/panels
func HandleCreatePanel(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.GetClaims(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req service.CreatePanelRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		panel, ok := panelFromRequest(c, req)
		if !ok {
			return
		}
		panel.OwnerID = claims.UserID

		if err := repos.Panel.Create(c.Request.Context(), panel); err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, panelResponse(panel))
	}
}

// HandleUpdatePanel handles PUT /v1/owner/panels/:id
func HandleUpdatePanel(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.GetClaims(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		panelID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid panel ID"})
			return
		}

		existing, err := repos.Panel.GetByID(c.Request.Context(), panelID)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		if existing.OwnerID != claims.UserID {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}

		var req service.CreatePanelRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		panel, ok := panelFromRequest(c, req)
		if !ok {
			return
		}
		panel.ID = existing.ID
		panel.OwnerID = existing.OwnerID
		panel.CreatedAt = existing.CreatedAt

		if err := repos.Panel.Update(c.Request.Context(), panel); err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, panelResponse(panel))
	}
}

func panelFromRequest(c *gin.Context, req service.CreatePanelRequest) (*domain.Panel, bool) {
	panelType := domain.PanelType(req.Type)
	if !panelType.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown panel type"})
		return nil, false
	}
	if req.WeeklyPrice.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "weekly price must not be negative"})
		return nil, false
	}

	panel := &domain.Panel{
		Name:        req.Name,
		Type:        panelType,
		OwnerName:   req.OwnerName,
		City:        req.City,
		District:    req.District,
		WeeklyPrice: req.WeeklyPrice,
		WidthCM:     req.WidthCM,
		HeightCM:    req.HeightCM,
		ImageURL:    req.ImageURL,
		IsAvailable: true,
	}
	if req.IsAvailable != nil {
		panel.IsAvailable = *req.IsAvailable
	}

	return panel, true
}
