package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/erendoru/panobu-api/internal/auth"
	"github.com/erendoru/panobu-api/internal/domain"
	"github.com/erendoru/panobu-api/internal/repository"
	"github.com/erendoru/panobu-api/pkg/errors"
)

// RegisterRequest represents the account registration payload
type RegisterRequest struct {
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=8"`
	FullName    string  `json:"full_name" binding:"required"`
	CompanyName *string `json:"company_name,omitempty"`
	Role        string  `json:"role" binding:"required"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the issued token and basic account info
type AuthResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// HandleRegister handles POST /v1/auth/register
func HandleRegister(repos *repository.Repositories, tm *auth.TokenManager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		role := domain.UserRole(req.Role)
		// The admin role is seeded from the CLI, never self-assigned.
		if !role.IsValid() || role == domain.RoleAdmin {
			c.JSON(http.StatusBadRequest, gin.H{"error": "role must be SCREEN_OWNER or ADVERTISER"})
			return
		}

		passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 10)
		if err != nil {
			logger.Error("Failed to hash password", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		user := &domain.User{
			Email:        req.Email,
			PasswordHash: string(passwordHash),
			FullName:     req.FullName,
			CompanyName:  req.CompanyName,
			Role:         role,
			IsActive:     true,
		}

		if err := repos.User.Create(c.Request.Context(), user); err != nil {
			respondError(c, logger, err)
			return
		}

		token, err := tm.Issue(user)
		if err != nil {
			logger.Error("Failed to issue token", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusCreated, AuthResponse{
			Token:    token,
			UserID:   user.ID.String(),
			Email:    user.Email,
			FullName: user.FullName,
			Role:     string(user.Role),
		})
	}
}

// HandleLogin handles POST /v1/auth/login
func HandleLogin(repos *repository.Repositories, tm *auth.TokenManager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		user, err := repos.User.GetByEmail(c.Request.Context(), req.Email)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
				return
			}
			respondError(c, logger, err)
			return
		}

		if !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "account disabled"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		token, err := tm.Issue(user)
		if err != nil {
			logger.Error("Failed to issue token", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, AuthResponse{
			Token:    token,
			UserID:   user.ID.String(),
			Email:    user.Email,
			FullName: user.FullName,
			Role:     string(user.Role),
		})
	}
}
