package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flytau/flytau-api/config"
	"github.com/flytau/flytau-api/middleware"
	"github.com/flytau/flytau-api/services"
)

// ListFlights handles GET /api/v1/flights - searches flights with optional
// date/source/destination filters. Managers may additionally filter by status;
// everyone else only sees Active flights.
func ListFlights(c *gin.Context) {
	role, _ := middleware.GetUserRole(c)

	filters := services.FlightFilters{
		Date:        c.Query("date"),
		Source:      c.Query("source"),
		Destination: c.Query("destination"),
		Status:      c.Query("status"),
	}

	svc := services.NewFlightService(config.GetDB())
	flights, err := svc.SearchFlights(role, filters)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, flights)
}

// GetFlight handles GET /api/v1/flights/:id - returns a single flight
func GetFlight(c *gin.Context) {
	svc := services.NewFlightService(config.GetDB())
	flight, err := svc.GetFlight(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, flight)
}

// GetFlightSeats handles GET /api/v1/flights/:id/seats - returns the seat
// map with per-seat occupancy for the flight
func GetFlightSeats(c *gin.Context) {
	svc := services.NewSeatMapService(config.GetDB())
	seatMap, err := svc.BuildSeatMap(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, seatMap)
}
