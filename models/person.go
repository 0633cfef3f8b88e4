package models

// Person roles used as the JWT role claim and for role gates.
const (
	RoleCustomer = "customer"
	RoleManager  = "manager"
)

// RegisteredCustomer is a customer with an account. The email doubles as the
// login identifier and the owner key on orders.
type RegisteredCustomer struct {
	Email            string  `gorm:"primaryKey" json:"email"`
	FirstName        string  `gorm:"not null" json:"first_name"`
	MiddleName       *string `json:"middle_name,omitempty"`
	LastName         string  `gorm:"not null" json:"last_name"`
	PassportNum      string  `gorm:"not null" json:"passport_num"`
	RegistrationDate string  `gorm:"not null;size:10" json:"registration_date"`
	BirthDate        string  `gorm:"not null;size:10" json:"birth_date"`
	Password         string  `gorm:"not null" json:"-"` // bcrypt hash
	CustomerType     string  `gorm:"not null;default:'Registered'" json:"customer_type"`
}

// TableName specifies the table name for the RegisteredCustomer model
func (RegisteredCustomer) TableName() string {
	return "registered_customers"
}

// UnregisteredCustomer is a guest purchaser, identified only by email for the
// duration of a booking or cancellation flow.
type UnregisteredCustomer struct {
	Email        string  `gorm:"primaryKey" json:"email"`
	FirstName    string  `gorm:"not null" json:"first_name"`
	MiddleName   *string `json:"middle_name,omitempty"`
	LastName     string  `gorm:"not null" json:"last_name"`
	CustomerType string  `gorm:"not null;default:'Unregistered'" json:"customer_type"`
}

// TableName specifies the table name for the UnregisteredCustomer model
func (UnregisteredCustomer) TableName() string {
	return "unregistered_customers"
}

// CustomerPhone links a phone number to a customer email. Phone numbers are
// globally unique; re-submitting a known number is tolerated, not an error.
type CustomerPhone struct {
	PhoneNum     string `gorm:"primaryKey;size:20" json:"phone_num"`
	Email        string `gorm:"not null;index" json:"email"`
	CustomerType string `gorm:"not null" json:"customer_type"`
}

// TableName specifies the table name for the CustomerPhone model
func (CustomerPhone) TableName() string {
	return "customer_phones"
}

// Manager is an operations manager. Managers log in with their manager ID and
// are banned from booking flights, including via fabricated guest identities.
type Manager struct {
	ManagerID  string  `gorm:"primaryKey;size:10" json:"manager_id"`
	Email      string  `gorm:"uniqueIndex;not null" json:"email"`
	Password   string  `gorm:"not null" json:"-"` // bcrypt hash
	FirstName  string  `gorm:"not null" json:"first_name"`
	MiddleName *string `json:"middle_name,omitempty"`
	LastName   string  `gorm:"not null" json:"last_name"`
	City       string  `json:"city"`
	Street     string  `json:"street"`
	HouseNum   string  `json:"house_num"`
	StartDate  string  `gorm:"size:10" json:"start_date"`
}

// TableName specifies the table name for the Manager model
func (Manager) TableName() string {
	return "managers"
}

// Pilot is a flight crew member who can command flights. Long-haul flights
// only accept pilots with long-flight training.
type Pilot struct {
	PilotID            string  `gorm:"primaryKey;size:10" json:"pilot_id"`
	FirstName          string  `gorm:"not null" json:"first_name"`
	MiddleName         *string `json:"middle_name,omitempty"`
	LastName           string  `gorm:"not null" json:"last_name"`
	City               string  `json:"city"`
	Street             string  `json:"street"`
	HouseNum           string  `json:"house_num"`
	StartDate          string  `gorm:"size:10" json:"start_date"`
	LongFlightTraining bool    `gorm:"not null;default:false" json:"long_flight_training"`
}

// TableName specifies the table name for the Pilot model
func (Pilot) TableName() string {
	return "pilots"
}

// FlightAttendant is a cabin crew member.
type FlightAttendant struct {
	AttendantID        string  `gorm:"primaryKey;size:10" json:"attendant_id"`
	FirstName          string  `gorm:"not null" json:"first_name"`
	MiddleName         *string `json:"middle_name,omitempty"`
	LastName           string  `gorm:"not null" json:"last_name"`
	City               string  `json:"city"`
	Street             string  `json:"street"`
	HouseNum           string  `json:"house_num"`
	StartDate          string  `gorm:"size:10" json:"start_date"`
	LongFlightTraining bool    `gorm:"not null;default:false" json:"long_flight_training"`
}

// TableName specifies the table name for the FlightAttendant model
func (FlightAttendant) TableName() string {
	return "flight_attendants"
}

// PilotAssignment assigns a pilot to one flight instance. A pilot holds at
// most one assignment per departure date.
type PilotAssignment struct {
	PilotID       string `gorm:"primaryKey;size:10" json:"pilot_id"`
	FlightID      string `gorm:"primaryKey;size:10" json:"flight_id"`
	DepartureDate string `gorm:"primaryKey;size:10" json:"departure_date"`
}

// TableName specifies the table name for the PilotAssignment model
func (PilotAssignment) TableName() string {
	return "pilots_in_flights"
}

// AttendantAssignment assigns a flight attendant to one flight instance.
type AttendantAssignment struct {
	AttendantID   string `gorm:"primaryKey;size:10" json:"attendant_id"`
	FlightID      string `gorm:"primaryKey;size:10" json:"flight_id"`
	DepartureDate string `gorm:"primaryKey;size:10" json:"departure_date"`
}

// TableName specifies the table name for the AttendantAssignment model
func (AttendantAssignment) TableName() string {
	return "attendants_in_flights"
}
