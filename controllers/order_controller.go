package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flytau/flytau-api/config"
	"github.com/flytau/flytau-api/metrics"
	"github.com/flytau/flytau-api/middleware"
	"github.com/flytau/flytau-api/services"
)

// ListOrders handles GET /api/v1/orders - lists the authenticated customer's
// orders, optionally filtered by status
func ListOrders(c *gin.Context) {
	email, err := middleware.GetUserID(c)
	if err != nil {
		respondUnauthenticated(c)
		return
	}

	svc := services.NewOrderService(config.GetDB())
	orders, err := svc.History(email, c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, orders)
}

// GetOrder handles GET /api/v1/orders/:code - returns one of the
// authenticated customer's orders with its tickets
func GetOrder(c *gin.Context) {
	email, err := middleware.GetUserID(c)
	if err != nil {
		respondUnauthenticated(c)
		return
	}

	svc := services.NewOrderService(config.GetDB())
	detail, err := svc.GetOrder(c.Param("code"), email)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, detail)
}

// CancelOrder handles POST /api/v1/orders/:code/cancel - cancels the
// authenticated customer's order and reports the fee charged
func CancelOrder(c *gin.Context) {
	email, err := middleware.GetUserID(c)
	if err != nil {
		respondUnauthenticated(c)
		return
	}

	svc := services.NewCancellationService(config.GetDB())
	fee, err := svc.CancelOrder(c.Param("code"), email)
	if err != nil {
		respondError(c, err)
		return
	}

	metrics.OrderCancellationsTotal.Inc()
	respondData(c, http.StatusOK, gin.H{
		"order_code": c.Param("code"),
		"fee":        fee,
		"message":    fmt.Sprintf("Order cancelled. A fee of %.2f was charged.", fee),
	})
}

// GuestGetOrder handles GET /api/v1/guest/orders/:code - order lookup for
// guests, keyed by the email supplied at booking time
func GuestGetOrder(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Query parameter 'email' is required",
			},
		})
		return
	}

	svc := services.NewOrderService(config.GetDB())
	detail, err := svc.GetOrder(c.Param("code"), email)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, detail)
}

// GuestCancelRequest identifies the guest cancelling an order.
type GuestCancelRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// GuestCancelOrder handles POST /api/v1/guest/orders/:code/cancel - order
// cancellation for guests
func GuestCancelOrder(c *gin.Context) {
	var req GuestCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	svc := services.NewCancellationService(config.GetDB())
	fee, err := svc.CancelOrder(c.Param("code"), req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	metrics.OrderCancellationsTotal.Inc()
	respondData(c, http.StatusOK, gin.H{
		"order_code": c.Param("code"),
		"fee":        fee,
		"message":    fmt.Sprintf("Order cancelled. A fee of %.2f was charged.", fee),
	})
}

func respondUnauthenticated(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": "Could not extract user information",
		},
	})
}
