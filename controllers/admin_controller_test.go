package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/flytau/flytau-api/models"
)

func TestCreateFlightEndpoint(t *testing.T) {
	db := setupControllerTestDB(t)

	date := time.Now().AddDate(0, 0, 10).Format(models.DateLayout)
	db.Create(&models.Airplane{AirplaneID: "SP-1", Manufacturer: "Embraer", Size: models.AirplaneSizeSmall})
	db.Create(&models.FlightRoute{SourceAirport: "TLV", DestinationAirport: "ATH", FlightDuration: 120})
	for _, id := range []string{"P-001", "P-002"} {
		db.Create(&models.Pilot{PilotID: id, FirstName: "Test", LastName: "Pilot", StartDate: "2020-01-01"})
	}
	for _, id := range []string{"FA-001", "FA-002", "FA-003"} {
		db.Create(&models.FlightAttendant{AttendantID: id, FirstName: "Test", LastName: "Attendant", StartDate: "2020-01-01"})
	}

	router := setupTestRouter()
	router.POST("/admin/flights", CreateFlight)

	flightBody := func(flightID, departureTime string, runway int) []byte {
		body, _ := json.Marshal(map[string]interface{}{
			"flight_id":           flightID,
			"departure_date":      date,
			"departure_time":      departureTime,
			"source_airport":      "TLV",
			"destination_airport": "ATH",
			"airplane_id":         "SP-1",
			"runway_num":          runway,
			"price_economy":       150.0,
			"pilots":              []string{"P-001", "P-002"},
			"attendants":          []string{"FA-001", "FA-002", "FA-003"},
		})
		return body
	}

	t.Run("Successfully create a flight", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/admin/flights", bytes.NewBuffer(flightBody("LY001", "10:00", 1)))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		var count int64
		db.Model(&models.Flight{}).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Runway conflict surfaces as 409", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/admin/flights", bytes.NewBuffer(flightBody("LY002", "10:30", 1)))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		errorData := response["error"].(map[string]interface{})
		assert.Equal(t, "RUNWAY_CONFLICT", errorData["code"])
	})

	t.Run("Missing required fields fail validation", func(t *testing.T) {
		body, _ := json.Marshal(map[string]interface{}{"flight_id": "LY003"})
		req, _ := http.NewRequest(http.MethodPost, "/admin/flights", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetResourcesEndpoint(t *testing.T) {
	db := setupControllerTestDB(t)
	db.Create(&models.Airplane{AirplaneID: "SP-1", Manufacturer: "Embraer", Size: models.AirplaneSizeSmall})

	router := setupTestRouter()
	router.GET("/admin/resources", GetResources)

	t.Run("Missing parameters", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/admin/resources?date=2026-09-01", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Lists free resources", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/admin/resources?date=2026-09-01&time=10:00&duration=120", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		data := response["data"].(map[string]interface{})
		assert.False(t, data["long_haul"].(bool))
		assert.Len(t, data["planes"].([]interface{}), 1)
	})
}

func TestAddWorkerEndpoint(t *testing.T) {
	setupControllerTestDB(t)

	router := setupTestRouter()
	router.POST("/admin/workers", AddWorker)

	body, _ := json.Marshal(map[string]interface{}{
		"role":                 "Pilot",
		"first_name":           "Dana",
		"last_name":            "Levi",
		"long_flight_training": true,
	})
	req, _ := http.NewRequest(http.MethodPost, "/admin/workers", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "P-001", data["worker_id"])
}

func TestCancelFlightEndpoint(t *testing.T) {
	db := setupControllerTestDB(t)

	date := time.Now().AddDate(0, 0, 10).Format(models.DateLayout)
	db.Create(&models.Airplane{AirplaneID: "SP-1", Manufacturer: "Embraer", Size: models.AirplaneSizeSmall})
	db.Create(&models.Flight{FlightID: "LY001", DepartureDate: date, DepartureTime: "10:00", AirplaneID: "SP-1", SourceAirport: "TLV", DestinationAirport: "ATH", Status: models.FlightStatusActive, RunwayNum: 1})

	router := setupTestRouter()
	router.POST("/admin/flights/:id/cancel", CancelFlight)

	req, _ := http.NewRequest(http.MethodPost, "/admin/flights/LY001/cancel", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var flight models.Flight
	db.Where("flight_id = ?", "LY001").First(&flight)
	assert.Equal(t, models.FlightStatusCancelled, flight.Status)
}

func TestReportEndpoints(t *testing.T) {
	setupControllerTestDB(t)

	router := setupTestRouter()
	router.GET("/admin/reports/occupancy", GetOccupancyReport)
	router.GET("/admin/reports/revenue", GetRevenueReport)
	router.GET("/admin/reports/crew-workload", GetCrewWorkloadReport)
	router.GET("/admin/reports/order-trends", GetOrderTrendsReport)
	router.GET("/admin/reports/utilization", GetUtilizationReport)

	for _, path := range []string{
		"/admin/reports/occupancy",
		"/admin/reports/revenue",
		"/admin/reports/crew-workload",
		"/admin/reports/order-trends",
		"/admin/reports/utilization",
	} {
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "report %s should succeed on an empty database", path)
	}
}
