package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/flytau/flytau-api/apperrors"
	"github.com/flytau/flytau-api/models"
)

// FlightService serves flight search and lookup. There is no scheduler: the
// Active→Arrived transition happens just-in-time whenever flights are listed.
type FlightService struct {
	db *gorm.DB
}

// NewFlightService creates a new FlightService
func NewFlightService(db *gorm.DB) *FlightService {
	return &FlightService{db: db}
}

// FlightFilters are the optional search filters. Status is only honored for
// managers; everyone else only ever sees Active flights.
type FlightFilters struct {
	Date        string
	Source      string
	Destination string
	Status      string
}

// SearchFlights lists flights matching the filters, after sweeping overdue
// Active flights to Arrived.
func (s *FlightService) SearchFlights(role string, filters FlightFilters) ([]models.Flight, error) {
	if err := s.markArrivedFlights(); err != nil {
		return nil, err
	}

	query := s.db.Model(&models.Flight{})
	if role == models.RoleManager {
		if filters.Status != "" && filters.Status != "All" {
			query = query.Where("status = ?", filters.Status)
		}
	} else {
		query = query.Where("status = ?", models.FlightStatusActive)
	}
	if filters.Date != "" {
		query = query.Where("departure_date = ?", filters.Date)
	}
	if filters.Source != "" {
		query = query.Where("source_airport = ?", filters.Source)
	}
	if filters.Destination != "" {
		query = query.Where("destination_airport = ?", filters.Destination)
	}

	var flights []models.Flight
	if err := query.Order("departure_date, departure_time").Find(&flights).Error; err != nil {
		return nil, apperrors.Persistence(err)
	}
	return flights, nil
}

// GetFlight returns one flight by ID.
func (s *FlightService) GetFlight(flightID string) (*models.Flight, error) {
	var flight models.Flight
	if err := s.db.Where("flight_id = ?", flightID).First(&flight).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, "flight %s not found", flightID)
		}
		return nil, apperrors.Persistence(err)
	}
	return &flight, nil
}

// markArrivedFlights flips Active flights whose departure has passed.
// Departure dates and times are zero-padded strings, so the comparison is
// safe lexically.
func (s *FlightService) markArrivedFlights() error {
	now := time.Now()
	today := now.Format(models.DateLayout)
	currentTime := now.Format(models.TimeLayout)

	err := s.db.Model(&models.Flight{}).
		Where("status = ?", models.FlightStatusActive).
		Where("departure_date < ? OR (departure_date = ? AND departure_time <= ?)", today, today, currentTime).
		Update("status", models.FlightStatusArrived).Error
	if err != nil {
		return apperrors.Persistence(err)
	}
	return nil
}
