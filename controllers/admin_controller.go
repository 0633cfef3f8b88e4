package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/flytau/flytau-api/config"
	"github.com/flytau/flytau-api/metrics"
	"github.com/flytau/flytau-api/services"
)

// CreateRoute handles POST /api/v1/admin/routes - registers a new route with
// its flight duration
func CreateRoute(c *gin.Context) {
	var req services.RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	svc := services.NewAdmissionService(config.GetDB())
	if err := svc.CreateRoute(&req); err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, gin.H{
		"source_airport":      req.SourceAirport,
		"destination_airport": req.DestinationAirport,
	})
}

// GetResources handles GET /api/v1/admin/resources - lists planes, pilots,
// and attendants free of conflicts for a candidate flight window
func GetResources(c *gin.Context) {
	date := c.Query("date")
	departureTime := c.Query("time")
	duration, err := strconv.Atoi(c.Query("duration"))
	if date == "" || departureTime == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Query parameters 'date', 'time', and integer 'duration' are required",
			},
		})
		return
	}

	svc := services.NewAvailabilityService(config.GetDB())
	resources, err := svc.AvailableResources(date, departureTime, duration)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, resources)
}

// ValidateFlight handles POST /api/v1/admin/flights/validate - runs the full
// admission checks without committing anything
func ValidateFlight(c *gin.Context) {
	var req services.FlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	svc := services.NewAdmissionService(config.GetDB())
	if err := svc.ValidateLogistics(&req); err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"valid": true,
	})
}

// CreateFlight handles POST /api/v1/admin/flights - admits a new flight with
// its crew and pricing
func CreateFlight(c *gin.Context) {
	var req services.FlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	svc := services.NewAdmissionService(config.GetDB())
	if err := svc.CreateFlight(&req); err != nil {
		respondError(c, err)
		return
	}

	metrics.FlightsCreatedTotal.Inc()
	respondData(c, http.StatusCreated, gin.H{
		"flight_id":      req.FlightID,
		"departure_date": req.DepartureDate,
	})
}

// CancelFlight handles POST /api/v1/admin/flights/:id/cancel - cancels a
// flight and cascades to its active orders
func CancelFlight(c *gin.Context) {
	svc := services.NewCancellationService(config.GetDB())
	if err := svc.CancelFlight(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	metrics.FlightCancellationsTotal.Inc()
	respondData(c, http.StatusOK, gin.H{
		"flight_id": c.Param("id"),
		"message":   "Flight cancelled. Affected orders were cancelled and refunded.",
	})
}

// AddWorker handles POST /api/v1/admin/workers - adds a pilot or flight
// attendant to the roster
func AddWorker(c *gin.Context) {
	var req services.WorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	svc := services.NewCrewService(config.GetDB())
	workerID, err := svc.AddWorker(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, gin.H{
		"worker_id": workerID,
		"role":      req.Role,
	})
}
