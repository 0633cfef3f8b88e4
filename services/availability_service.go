package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/flytau/flytau-api/apperrors"
	"github.com/flytau/flytau-api/models"
)

// TurnaroundMinutes pads both ends of an aircraft's occupancy window: a plane
// needs an hour on the ground between landing and its next departure.
const TurnaroundMinutes = 60

// AvailabilityService computes which planes, pilots, and attendants are free
// of conflicts for a candidate flight window. Pure reads; the admission
// service re-runs the same checks at commit time because results can go stale
// between display and submission.
type AvailabilityService struct {
	db *gorm.DB
}

// NewAvailabilityService creates a new AvailabilityService
func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{db: db}
}

// AvailableResources is the result of an availability query.
type AvailableResources struct {
	LongHaul   bool                     `json:"long_haul"`
	Planes     []models.Airplane        `json:"planes"`
	Pilots     []models.Pilot           `json:"pilots"`
	Attendants []models.FlightAttendant `json:"attendants"`
}

// scheduledFlight is one existing flight joined with its route duration.
type scheduledFlight struct {
	FlightID       string
	AirplaneID     string
	DepartureTime  string
	FlightDuration int
}

// AvailableResources returns the planes, pilots, and attendants free to serve
// a flight departing on the given date and time with the given duration in
// minutes. Long-haul candidates (duration > 360) are restricted to Big
// airplanes and crew with long-flight training.
func (s *AvailabilityService) AvailableResources(date, startTime string, duration int) (*AvailableResources, error) {
	start, err := minutesOfDay(startTime)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeInvalidInput, "invalid departure time %q", startTime)
	}
	if duration <= 0 {
		return nil, apperrors.New(apperrors.CodeInvalidInput, "flight duration must be positive")
	}
	longHaul := duration > models.LongHaulThresholdMinutes

	scheduled, err := s.scheduledFlights(date)
	if err != nil {
		return nil, err
	}
	busyPlanes := make(map[string]bool)
	for _, f := range scheduled {
		existingStart, err := minutesOfDay(f.DepartureTime)
		if err != nil {
			continue
		}
		if windowsOverlap(start, duration, existingStart, f.FlightDuration) {
			busyPlanes[f.AirplaneID] = true
		}
	}

	planeQuery := s.db.Model(&models.Airplane{})
	if longHaul {
		planeQuery = planeQuery.Where("size = ?", models.AirplaneSizeBig)
	}
	var allPlanes []models.Airplane
	if err := planeQuery.Order("airplane_id").Find(&allPlanes).Error; err != nil {
		return nil, apperrors.Persistence(err)
	}
	planes := make([]models.Airplane, 0, len(allPlanes))
	for _, p := range allPlanes {
		if !busyPlanes[p.AirplaneID] {
			planes = append(planes, p)
		}
	}

	// Crew exclusion is day-granular: anyone assigned to any flight on the
	// date is out, regardless of times.
	assignedPilots := s.db.Model(&models.PilotAssignment{}).
		Select("pilot_id").
		Where("departure_date = ?", date)
	pilotQuery := s.db.Where("pilot_id NOT IN (?)", assignedPilots)
	if longHaul {
		pilotQuery = pilotQuery.Where("long_flight_training = ?", true)
	}
	var pilots []models.Pilot
	if err := pilotQuery.Order("pilot_id").Find(&pilots).Error; err != nil {
		return nil, apperrors.Persistence(err)
	}

	assignedAttendants := s.db.Model(&models.AttendantAssignment{}).
		Select("attendant_id").
		Where("departure_date = ?", date)
	attendantQuery := s.db.Where("attendant_id NOT IN (?)", assignedAttendants)
	if longHaul {
		attendantQuery = attendantQuery.Where("long_flight_training = ?", true)
	}
	var attendants []models.FlightAttendant
	if err := attendantQuery.Order("attendant_id").Find(&attendants).Error; err != nil {
		return nil, apperrors.Persistence(err)
	}

	return &AvailableResources{
		LongHaul:   longHaul,
		Planes:     planes,
		Pilots:     pilots,
		Attendants: attendants,
	}, nil
}

// PlaneConflict returns the ID of a flight occupying the airplane during the
// candidate window, or "" when the plane is free.
func (s *AvailabilityService) PlaneConflict(airplaneID, date, startTime string, duration int) (string, error) {
	start, err := minutesOfDay(startTime)
	if err != nil {
		return "", apperrors.New(apperrors.CodeInvalidInput, "invalid departure time %q", startTime)
	}

	scheduled, err := s.scheduledFlights(date)
	if err != nil {
		return "", err
	}
	for _, f := range scheduled {
		if f.AirplaneID != airplaneID {
			continue
		}
		existingStart, err := minutesOfDay(f.DepartureTime)
		if err != nil {
			continue
		}
		if windowsOverlap(start, duration, existingStart, f.FlightDuration) {
			return f.FlightID, nil
		}
	}
	return "", nil
}

// scheduledFlights loads every non-cancelled flight on the date together with
// its route duration.
func (s *AvailabilityService) scheduledFlights(date string) ([]scheduledFlight, error) {
	var flights []scheduledFlight
	err := s.db.Table("flights f").
		Select("f.flight_id, f.airplane_id, f.departure_time, r.flight_duration").
		Joins("JOIN flight_routes r ON f.source_airport = r.source_airport AND f.destination_airport = r.destination_airport").
		Where("f.departure_date = ? AND f.status <> ?", date, models.FlightStatusCancelled).
		Scan(&flights).Error
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	return flights, nil
}

// windowsOverlap applies the symmetric overlap test with both windows padded
// by the turnaround buffer. Times are minutes since midnight.
func windowsOverlap(startA, durationA, startB, durationB int) bool {
	endA := startA + durationA + TurnaroundMinutes
	endB := startB + durationB + TurnaroundMinutes
	return startB < endA && startA < endB
}

// minutesOfDay converts a "15:04" time string to minutes since midnight.
func minutesOfDay(departureTime string) (int, error) {
	t, err := time.Parse(models.TimeLayout, departureTime)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
