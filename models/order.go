package models

// Order statuses. "Cancelled by customer" keeps the 5% cancellation fee on
// the tickets; "Cancelled by system" zeroes every ticket (full refund).
const (
	OrderStatusActive              = "Active"
	OrderStatusExecuted            = "Executed"
	OrderStatusCancelledByCustomer = "Cancelled by customer"
	OrderStatusCancelledBySystem   = "Cancelled by system"
)

// Customer types recorded on orders and phone numbers.
const (
	CustomerTypeRegistered   = "Registered"
	CustomerTypeUnregistered = "Unregistered"
)

// Order groups the tickets of one booking under an 8-character code.
type Order struct {
	OrderCode     string `gorm:"primaryKey;size:8" json:"order_code"`
	CustomerEmail string `gorm:"not null;index" json:"customer_email"`
	Status        string `gorm:"not null;default:'Active'" json:"status"`
	OrderDate     string `gorm:"not null;size:10" json:"order_date"`
	CustomerType  string `gorm:"not null" json:"customer_type"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// Ticket is one seat on one flight instance within an order. The price is a
// snapshot taken at booking time; cancellation logic is the only thing that
// rewrites it.
type Ticket struct {
	OrderCode     string  `gorm:"primaryKey;size:8" json:"order_code"`
	FlightID      string  `gorm:"primaryKey;size:10" json:"flight_id"`
	DepartureDate string  `gorm:"primaryKey;size:10" json:"departure_date"`
	RowNum        int     `gorm:"primaryKey" json:"row_num"`
	ColumnNum     string  `gorm:"primaryKey;size:1" json:"column_num"`
	ClassType     string  `gorm:"not null" json:"class_type"`
	AirplaneID    string  `gorm:"not null;size:20" json:"airplane_id"`
	Price         float64 `gorm:"not null" json:"price"`
}

// TableName specifies the table name for the Ticket model
func (Ticket) TableName() string {
	return "flight_tickets"
}
