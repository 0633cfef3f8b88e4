package models

// Seat class types.
const (
	ClassEconomy  = "Economy"
	ClassBusiness = "Business"
)

// ClassPricing is the authoritative per-class price for one flight instance.
// Booking fails closed when the row for a requested class is absent; there is
// no fallback price anywhere in the system.
type ClassPricing struct {
	FlightID      string  `gorm:"primaryKey;size:10" json:"flight_id"`
	DepartureDate string  `gorm:"primaryKey;size:10" json:"departure_date"`
	ClassType     string  `gorm:"primaryKey" json:"class_type"`
	AirplaneID    string  `gorm:"primaryKey;size:20" json:"airplane_id"`
	Price         float64 `gorm:"not null" json:"price"`
}

// TableName specifies the table name for the ClassPricing model
func (ClassPricing) TableName() string {
	return "classes_in_flights"
}
