package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/erendoru/panobu-api/internal/domain"
	"github.com/erendoru/panobu-api/internal/repository"
)

// PanelResponse represents a panel in API responses
type PanelResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	OwnerName   *string         `json:"owner_name,omitempty"`
	City        string          `json:"city"`
	District    *string         `json:"district,omitempty"`
	WeeklyPrice decimal.Decimal `json:"weekly_price"`
	WidthCM     *int            `json:"width_cm,omitempty"`
	HeightCM    *int            `json:"height_cm,omitempty"`
	ImageURL    *string         `json:"image_url,omitempty"`
	IsAvailable bool            `json:"is_available"`
	CreatedAt   string          `json:"created_at"`
}

func panelResponse(panel *domain.Panel) PanelResponse {
	return PanelResponse{
		ID:          panel.ID.String(),
		Name:        panel.Name,
		Type:        string(panel.Type),
		OwnerName:   panel.OwnerName,
		City:        panel.City,
		District:    panel.District,
		WeeklyPrice: panel.WeeklyPrice,
		WidthCM:     panel.WidthCM,
		HeightCM:    panel.HeightCM,
		ImageURL:    panel.ImageURL,
		IsAvailable: panel.IsAvailable,
		CreatedAt:   panel.CreatedAt.Format(time.RFC3339),
	}
}

// HandleListPanels handles GET /v1/panels
func HandleListPanels(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := repository.PanelFilter{OnlyAvailable: true}

		if city := c.Query("city"); city != "" {
			filter.City = &city
		}
		if typeParam := c.Query("type"); typeParam != "" {
			panelType := domain.PanelType(typeParam)
			if !panelType.IsValid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown panel type"})
				return
			}
			filter.Type = &panelType
		}

		panels, err := repos.Panel.List(c.Request.Context(), filter)
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

// HandleGetPanel handles GET /v1/panels/:id
func HandleGetPanel(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		panelID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid panel ID"})
			return
		}

		panel, err := repos.Panel.GetByID(c.Request.Context(), panelID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, panelResponse(panel))
	}
}
