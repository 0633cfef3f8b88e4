package models

import (
	"fmt"
	"time"
)

// Flight statuses. Active flights transition to Arrived once their departure
// time passes, or to Cancelled through a manager-initiated cancellation.
const (
	FlightStatusActive    = "Active"
	FlightStatusArrived   = "Arrived"
	FlightStatusCancelled = "Cancelled"
)

// Wire formats for dates and times. Departure dates and times are stored as
// strings so the same values work unchanged on postgres and sqlite.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Flight represents one scheduled flight instance. Flight IDs are unique
// across all dates (enforced by the index), but the instance is keyed by
// (flight_id, departure_date) since tickets and pricing are date-scoped.
type Flight struct {
	FlightID           string `gorm:"primaryKey;size:10;uniqueIndex" json:"flight_id"`
	DepartureDate      string `gorm:"primaryKey;size:10" json:"departure_date"`
	DepartureTime      string `gorm:"not null;size:5" json:"departure_time"`
	AirplaneID         string `gorm:"not null;index" json:"airplane_id"`
	SourceAirport      string `gorm:"not null;size:3" json:"source_airport"`
	DestinationAirport string `gorm:"not null;size:3" json:"destination_airport"`
	Status             string `gorm:"not null;default:'Active'" json:"status"`
	RunwayNum          int    `gorm:"not null" json:"runway_num"`
}

// TableName specifies the table name for the Flight model
func (Flight) TableName() string {
	return "flights"
}

// DepartureAt combines the flight's date and time into a single timestamp.
func (f *Flight) DepartureAt() (time.Time, error) {
	return ParseDeparture(f.DepartureDate, f.DepartureTime)
}

// ParseDeparture parses a departure date ("2006-01-02") and time ("15:04")
// pair into a local timestamp.
func ParseDeparture(date, departureTime string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+departureTime, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid departure date/time %q %q: %w", date, departureTime, err)
	}
	return t, nil
}
