package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flytau/flytau-api/apperrors"
	"github.com/flytau/flytau-api/models"
)

func validBigFlightRequest(date string) *FlightRequest {
	business := 350.0
	return &FlightRequest{
		FlightID:           "LY100",
		DepartureDate:      date,
		DepartureTime:      "10:00",
		SourceAirport:      "TLV",
		DestinationAirport: "JFK",
		AirplaneID:         "BP-1",
		RunwayNum:          1,
		PriceEconomy:       150,
		PriceBusiness:      &business,
		PilotIDs:           []string{"P-001", "P-002", "P-003"},
		AttendantIDs:       []string{"FA-001", "FA-002", "FA-003", "FA-004", "FA-005", "FA-006"},
	}
}

func TestCreateFlight(t *testing.T) {
	db := setupTestDB(t)
	date := futureDate(10)

	seedBigPlane(t, db, "BP-1")
	seedSmallPlane(t, db, "SP-1")
	seedRoute(t, db, "TLV", "JFK", 660)
	seedRoute(t, db, "TLV", "ATH", 120)
	for _, id := range []string{"P-001", "P-002", "P-003"} {
		seedPilot(t, db, id, true)
	}
	for _, id := range []string{"FA-001", "FA-002", "FA-003", "FA-004", "FA-005", "FA-006"} {
		seedAttendant(t, db, id, true)
	}

	svc := NewAdmissionService(db)

	t.Run("Successfully create a long-haul flight", func(t *testing.T) {
		err := svc.CreateFlight(validBigFlightRequest(date))
		assert.NoError(t, err)

		var flight models.Flight
		assert.NoError(t, db.Where("flight_id = ?", "LY100").First(&flight).Error)
		assert.Equal(t, models.FlightStatusActive, flight.Status)
		assert.Equal(t, "10:00", flight.DepartureTime)

		var pilotAssignments, attendantAssignments, pricingRows int64
		db.Model(&models.PilotAssignment{}).Where("flight_id = ?", "LY100").Count(&pilotAssignments)
		db.Model(&models.AttendantAssignment{}).Where("flight_id = ?", "LY100").Count(&attendantAssignments)
		db.Model(&models.ClassPricing{}).Where("flight_id = ?", "LY100").Count(&pricingRows)
		assert.Equal(t, int64(3), pilotAssignments)
		assert.Equal(t, int64(6), attendantAssignments)
		assert.Equal(t, int64(2), pricingRows)
	})

	t.Run("Duplicate flight ID is rejected even on another date", func(t *testing.T) {
		req := validBigFlightRequest(futureDate(20))
		err := svc.CreateFlight(req)
		assert.Equal(t, apperrors.CodeDuplicateID, apperrors.CodeOf(err))
	})

	t.Run("Runway conflict names the blocking flight", func(t *testing.T) {
		req := validBigFlightRequest(date)
		req.FlightID = "LY101"
		req.DepartureTime = "10:30" // within the 60-minute runway buffer of LY100
		req.AirplaneID = "SP-1"
		req.SourceAirport = "TLV"
		req.DestinationAirport = "ATH"
		req.PilotIDs = []string{"P-001", "P-002"}
		req.AttendantIDs = []string{"FA-001", "FA-002", "FA-003"}
		err := svc.CreateFlight(req)
		assert.Equal(t, apperrors.CodeRunwayConflict, apperrors.CodeOf(err))
		assert.Contains(t, err.Error(), "LY100")
	})

	t.Run("Long-haul route rejects a Small aircraft", func(t *testing.T) {
		req := validBigFlightRequest(futureDate(30))
		req.FlightID = "LY102"
		req.AirplaneID = "SP-1"
		req.PilotIDs = []string{"P-001", "P-002"}
		req.AttendantIDs = []string{"FA-001", "FA-002", "FA-003"}
		err := svc.CreateFlight(req)
		assert.Equal(t, apperrors.CodeAircraftConflict, apperrors.CodeOf(err))
	})

	t.Run("Busy aircraft is rejected with the occupying flight named", func(t *testing.T) {
		req := validBigFlightRequest(date)
		req.FlightID = "LY103"
		req.DepartureTime = "12:00" // LY100 occupies BP-1 for 660 minutes
		req.RunwayNum = 2
		err := svc.CreateFlight(req)
		assert.Equal(t, apperrors.CodeAircraftConflict, apperrors.CodeOf(err))
		assert.Contains(t, err.Error(), "LY100")
	})

	t.Run("Crew count mismatch", func(t *testing.T) {
		req := validBigFlightRequest(futureDate(30))
		req.FlightID = "LY104"
		req.PilotIDs = []string{"P-001", "P-002"}
		err := svc.CreateFlight(req)
		assert.Equal(t, apperrors.CodeCrewMismatch, apperrors.CodeOf(err))
	})

	t.Run("Past departure is rejected", func(t *testing.T) {
		req := validBigFlightRequest("2020-01-01")
		req.FlightID = "LY105"
		err := svc.CreateFlight(req)
		assert.Equal(t, apperrors.CodeInvalidInput, apperrors.CodeOf(err))
	})

	t.Run("Unknown route is rejected", func(t *testing.T) {
		req := validBigFlightRequest(futureDate(30))
		req.FlightID = "LY106"
		req.DestinationAirport = "LHR"
		err := svc.CreateFlight(req)
		assert.Equal(t, apperrors.CodeInvalidInput, apperrors.CodeOf(err))
	})

	t.Run("Non-positive economy price is rejected", func(t *testing.T) {
		req := validBigFlightRequest(futureDate(30))
		req.FlightID = "LY107"
		req.PriceEconomy = 0
		err := svc.CreateFlight(req)
		assert.Equal(t, apperrors.CodeInvalidInput, apperrors.CodeOf(err))
	})
}

func TestValidateLogistics_DoesNotCommit(t *testing.T) {
	db := setupTestDB(t)
	date := futureDate(10)

	seedBigPlane(t, db, "BP-1")
	seedRoute(t, db, "TLV", "JFK", 660)
	for _, id := range []string{"P-001", "P-002", "P-003"} {
		seedPilot(t, db, id, true)
	}
	for _, id := range []string{"FA-001", "FA-002", "FA-003", "FA-004", "FA-005", "FA-006"} {
		seedAttendant(t, db, id, true)
	}

	svc := NewAdmissionService(db)
	err := svc.ValidateLogistics(validBigFlightRequest(date))
	assert.NoError(t, err)

	var count int64
	db.Model(&models.Flight{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateRoute(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdmissionService(db)

	tests := []struct {
		name         string
		request      RouteRequest
		expectedCode string
	}{
		{
			name:    "Successfully create route",
			request: RouteRequest{SourceAirport: "tlv", DestinationAirport: "jfk", FlightDuration: 660},
		},
		{
			name:         "Duplicate route",
			request:      RouteRequest{SourceAirport: "TLV", DestinationAirport: "JFK", FlightDuration: 600},
			expectedCode: apperrors.CodeDuplicateID,
		},
		{
			name:         "Source equals destination",
			request:      RouteRequest{SourceAirport: "ATH", DestinationAirport: "ATH", FlightDuration: 60},
			expectedCode: apperrors.CodeInvalidInput,
		},
		{
			name:         "Non-positive duration",
			request:      RouteRequest{SourceAirport: "TLV", DestinationAirport: "ATH", FlightDuration: 0},
			expectedCode: apperrors.CodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.CreateRoute(&tt.request)
			if tt.expectedCode == "" {
				assert.NoError(t, err)
				var route models.FlightRoute
				assert.NoError(t, db.Where("source_airport = ? AND destination_airport = ?", "TLV", "JFK").First(&route).Error)
				assert.Equal(t, 660, route.FlightDuration)
			} else {
				assert.Equal(t, tt.expectedCode, apperrors.CodeOf(err))
			}
		})
	}
}
