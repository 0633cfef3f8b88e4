package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flytau/flytau-api/config"
	"github.com/flytau/flytau-api/middleware"
	"github.com/flytau/flytau-api/services"
)

// LoginRequest carries login credentials. Customers log in with their email,
// managers with their manager ID.
type LoginRequest struct {
	IDOrEmail string `json:"id_or_email" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// Signup handles POST /api/v1/auth/signup - registers a new customer
func Signup(c *gin.Context) {
	var req services.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	svc := services.NewAccountService(config.GetDB())
	if err := svc.Register(&req); err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, gin.H{
		"email": req.Email,
	})
}

// Login handles POST /api/v1/auth/login - authenticates a customer or manager
// and returns a signed token
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	svc := services.NewAccountService(config.GetDB())
	subject, role, err := svc.Authenticate(req.IDOrEmail, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_CREDENTIALS",
					"message": "Incorrect ID, email, or password",
				},
			})
			return
		}
		respondError(c, err)
		return
	}

	token, err := middleware.GenerateToken(config.GetConfig(), subject, role)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"token":   token,
		"subject": subject,
		"role":    role,
	})
}
