package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flytau/flytau-api/config"
	"github.com/flytau/flytau-api/metrics"
	"github.com/flytau/flytau-api/middleware"
	"github.com/flytau/flytau-api/services"
)

// CreateBooking handles POST /api/v1/bookings - books seats on a flight for
// either an authenticated customer or a guest supplying contact details
func CreateBooking(c *gin.Context) {
	var req services.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	// Both are empty for guests; OptionalAuth only sets them for a token.
	subject, _ := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)

	svc := services.NewBookingService(config.GetDB())
	orderCode, err := svc.CreateBooking(subject, role, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	metrics.BookingsTotal.Inc()
	respondData(c, http.StatusCreated, gin.H{
		"order_code": orderCode,
	})
}
