package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/flytau/flytau-api/apperrors"
	"github.com/flytau/flytau-api/models"
)

// RunwayBufferMinutes is the exclusion window around a departure during which
// no other flight may use the same runway on the same date.
const RunwayBufferMinutes = 60

// AdmissionService validates and commits new flights. Validation runs twice
// by design: speculatively before the manager picks resources, and again
// inside the commit transaction, since another manager can take the flight
// ID, runway, or aircraft in between.
type AdmissionService struct {
	db *gorm.DB
}

// NewAdmissionService creates a new AdmissionService
func NewAdmissionService(db *gorm.DB) *AdmissionService {
	return &AdmissionService{db: db}
}

// FlightRequest carries all wizard fields for a new flight. The wizard state
// lives entirely in the re-submitted request, never in a server-side session.
type FlightRequest struct {
	FlightID           string   `json:"flight_id" binding:"required"`
	DepartureDate      string   `json:"departure_date" binding:"required"`
	DepartureTime      string   `json:"departure_time" binding:"required"`
	SourceAirport      string   `json:"source_airport" binding:"required"`
	DestinationAirport string   `json:"destination_airport" binding:"required"`
	AirplaneID         string   `json:"airplane_id" binding:"required"`
	RunwayNum          int      `json:"runway_num" binding:"required"`
	PriceEconomy       float64  `json:"price_economy" binding:"required"`
	PriceBusiness      *float64 `json:"price_business"`
	PilotIDs           []string `json:"pilots"`
	AttendantIDs       []string `json:"attendants"`
}

// ValidateLogistics runs the full admission check without committing
// anything. A nil return means the flight would have been admitted at the
// moment the checks ran.
func (s *AdmissionService) ValidateLogistics(req *FlightRequest) error {
	_, err := validateFlight(s.db, req)
	return err
}

// CreateFlight re-validates the request inside a transaction and inserts the
// flight, its crew assignments, and its class pricing. The unique index on
// flight_id backs up the duplicate check against concurrent managers.
func (s *AdmissionService) CreateFlight(req *FlightRequest) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		departure, err := validateFlight(tx, req)
		if err != nil {
			return err
		}

		flight := models.Flight{
			FlightID:           req.FlightID,
			DepartureDate:      departure.Format(models.DateLayout),
			DepartureTime:      departure.Format(models.TimeLayout),
			AirplaneID:         req.AirplaneID,
			SourceAirport:      req.SourceAirport,
			DestinationAirport: req.DestinationAirport,
			Status:             models.FlightStatusActive,
			RunwayNum:          req.RunwayNum,
		}
		if err := tx.Create(&flight).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Lost the race despite the validation read.
				return apperrors.New(apperrors.CodeDuplicateID, "flight ID %s was just taken by another manager", req.FlightID)
			}
			return apperrors.Persistence(err)
		}

		for _, pilotID := range req.PilotIDs {
			assignment := models.PilotAssignment{
				PilotID:       pilotID,
				FlightID:      flight.FlightID,
				DepartureDate: flight.DepartureDate,
			}
			if err := tx.Create(&assignment).Error; err != nil {
				return apperrors.Persistence(err)
			}
		}
		for _, attendantID := range req.AttendantIDs {
			assignment := models.AttendantAssignment{
				AttendantID:   attendantID,
				FlightID:      flight.FlightID,
				DepartureDate: flight.DepartureDate,
			}
			if err := tx.Create(&assignment).Error; err != nil {
				return apperrors.Persistence(err)
			}
		}

		economy := models.ClassPricing{
			FlightID:      flight.FlightID,
			DepartureDate: flight.DepartureDate,
			ClassType:     models.ClassEconomy,
			AirplaneID:    flight.AirplaneID,
			Price:         req.PriceEconomy,
		}
		if err := tx.Create(&economy).Error; err != nil {
			return apperrors.Persistence(err)
		}
		if req.PriceBusiness != nil {
			business := models.ClassPricing{
				FlightID:      flight.FlightID,
				DepartureDate: flight.DepartureDate,
				ClassType:     models.ClassBusiness,
				AirplaneID:    flight.AirplaneID,
				Price:         *req.PriceBusiness,
			}
			if err := tx.Create(&business).Error; err != nil {
				return apperrors.Persistence(err)
			}
		}

		return nil
	})
}

// validateFlight sequences the admission checks against the given database
// handle (the live connection for the speculative pass, the transaction for
// the authoritative one). Returns the parsed departure timestamp on success.
func validateFlight(db *gorm.DB, req *FlightRequest) (time.Time, error) {
	departure, err := models.ParseDeparture(req.DepartureDate, req.DepartureTime)
	if err != nil {
		return time.Time{}, apperrors.New(apperrors.CodeInvalidInput, "invalid departure date or time")
	}
	if departure.Before(time.Now()) {
		return time.Time{}, apperrors.New(apperrors.CodeInvalidInput, "departure must be in the future")
	}
	if req.PriceEconomy <= 0 {
		return time.Time{}, apperrors.New(apperrors.CodeInvalidInput, "economy price must be positive")
	}
	if req.PriceBusiness != nil && *req.PriceBusiness <= 0 {
		return time.Time{}, apperrors.New(apperrors.CodeInvalidInput, "business price must be positive")
	}

	var route models.FlightRoute
	err = db.Where("source_airport = ? AND destination_airport = ?", req.SourceAirport, req.DestinationAirport).
		First(&route).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, apperrors.New(apperrors.CodeInvalidInput, "route %s-%s does not exist", req.SourceAirport, req.DestinationAirport)
		}
		return time.Time{}, apperrors.Persistence(err)
	}

	var plane models.Airplane
	err = db.Where("airplane_id = ?", req.AirplaneID).First(&plane).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, apperrors.New(apperrors.CodeInvalidInput, "airplane %s does not exist", req.AirplaneID)
		}
		return time.Time{}, apperrors.Persistence(err)
	}

	// Flight IDs are unique across all dates.
	var existing int64
	if err := db.Model(&models.Flight{}).Where("flight_id = ?", req.FlightID).Count(&existing).Error; err != nil {
		return time.Time{}, apperrors.Persistence(err)
	}
	if existing > 0 {
		return time.Time{}, apperrors.New(apperrors.CodeDuplicateID, "flight ID %s already exists", req.FlightID)
	}

	if err := checkRunwayConflict(db, departure.Format(models.DateLayout), departure.Format(models.TimeLayout), req.RunwayNum); err != nil {
		return time.Time{}, err
	}

	if route.IsLongHaul() && plane.Size != models.AirplaneSizeBig {
		return time.Time{}, apperrors.New(apperrors.CodeAircraftConflict, "route %s-%s is long-haul and requires a Big aircraft", req.SourceAirport, req.DestinationAirport)
	}
	availability := &AvailabilityService{db: db}
	busyWith, err := availability.PlaneConflict(req.AirplaneID, departure.Format(models.DateLayout), departure.Format(models.TimeLayout), route.FlightDuration)
	if err != nil {
		return time.Time{}, err
	}
	if busyWith != "" {
		return time.Time{}, apperrors.New(apperrors.CodeAircraftConflict, "airplane %s is busy with flight %s", req.AirplaneID, busyWith)
	}

	requiredPilots, requiredAttendants := models.CrewRequirement(plane.Size)
	if len(req.PilotIDs) != requiredPilots {
		return time.Time{}, apperrors.New(apperrors.CodeCrewMismatch, "%s airplane requires exactly %d pilots (selected %d)", plane.Size, requiredPilots, len(req.PilotIDs))
	}
	if len(req.AttendantIDs) != requiredAttendants {
		return time.Time{}, apperrors.New(apperrors.CodeCrewMismatch, "%s airplane requires exactly %d attendants (selected %d)", plane.Size, requiredAttendants, len(req.AttendantIDs))
	}

	return departure, nil
}

// checkRunwayConflict rejects the candidate when any non-cancelled flight on
// the same date and runway departs within the buffer window. The error
// message enumerates every colliding flight.
func checkRunwayConflict(db *gorm.DB, date, departureTime string, runwayNum int) error {
	start, err := minutesOfDay(departureTime)
	if err != nil {
		return apperrors.New(apperrors.CodeInvalidInput, "invalid departure time %q", departureTime)
	}

	var sameRunway []models.Flight
	err = db.Where("departure_date = ? AND runway_num = ? AND status <> ?", date, runwayNum, models.FlightStatusCancelled).
		Find(&sameRunway).Error
	if err != nil {
		return apperrors.Persistence(err)
	}

	var colliding []string
	for _, f := range sameRunway {
		existing, err := minutesOfDay(f.DepartureTime)
		if err != nil {
			continue
		}
		diff := existing - start
		if diff < 0 {
			diff = -diff
		}
		if diff < RunwayBufferMinutes {
			colliding = append(colliding, f.FlightID)
		}
	}
	if len(colliding) > 0 {
		return apperrors.New(apperrors.CodeRunwayConflict, "runway %d is blocked by flight(s) %s", runwayNum, strings.Join(colliding, ", "))
	}
	return nil
}

// RouteRequest carries the fields for a new flight route.
type RouteRequest struct {
	SourceAirport      string `json:"source_airport" binding:"required"`
	DestinationAirport string `json:"destination_airport" binding:"required"`
	FlightDuration     int    `json:"flight_duration" binding:"required"`
}

// CreateRoute inserts a new route after validating it does not loop back to
// its source, has a positive duration, and does not already exist.
func (s *AdmissionService) CreateRoute(req *RouteRequest) error {
	source := strings.ToUpper(strings.TrimSpace(req.SourceAirport))
	destination := strings.ToUpper(strings.TrimSpace(req.DestinationAirport))
	if source == destination {
		return apperrors.New(apperrors.CodeInvalidInput, "source and destination cannot be the same")
	}
	if req.FlightDuration <= 0 {
		return apperrors.New(apperrors.CodeInvalidInput, "flight duration must be positive")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		err := tx.Model(&models.FlightRoute{}).
			Where("source_airport = ? AND destination_airport = ?", source, destination).
			Count(&existing).Error
		if err != nil {
			return apperrors.Persistence(err)
		}
		if existing > 0 {
			return apperrors.New(apperrors.CodeDuplicateID, "route %s-%s already exists", source, destination)
		}

		route := models.FlightRoute{
			SourceAirport:      source,
			DestinationAirport: destination,
			FlightDuration:     req.FlightDuration,
		}
		if err := tx.Create(&route).Error; err != nil {
			return apperrors.Persistence(err)
		}
		return nil
	})
}
