package models

// LongHaulThresholdMinutes separates short-haul from long-haul routes.
// Long-haul flights require a Big aircraft, larger crews, and crew with
// long-flight training.
const LongHaulThresholdMinutes = 360

// FlightRoute maps a (source, destination) airport pair to its fixed
// duration in minutes.
type FlightRoute struct {
	SourceAirport      string `gorm:"primaryKey;size:3" json:"source_airport"`
	DestinationAirport string `gorm:"primaryKey;size:3" json:"destination_airport"`
	FlightDuration     int    `gorm:"not null" json:"flight_duration"`
}

// TableName specifies the table name for the FlightRoute model
func (FlightRoute) TableName() string {
	return "flight_routes"
}

// IsLongHaul reports whether the route's duration exceeds the long-haul
// threshold.
func (r *FlightRoute) IsLongHaul() bool {
	return r.FlightDuration > LongHaulThresholdMinutes
}
