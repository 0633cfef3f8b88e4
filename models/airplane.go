package models

// Airplane sizes. Big airplanes are required for long-haul routes and carry
// the larger crew requirement (3 pilots, 6 attendants).
const (
	AirplaneSizeSmall = "Small"
	AirplaneSizeBig   = "Big"
)

// Airplane represents an aircraft in the fleet.
type Airplane struct {
	AirplaneID   string `gorm:"primaryKey;size:20" json:"airplane_id"`
	Manufacturer string `gorm:"not null" json:"manufacturer"`
	Size         string `gorm:"not null" json:"size"` // "Small" or "Big"
}

// TableName specifies the table name for the Airplane model
func (Airplane) TableName() string {
	return "airplanes"
}

// Seat is one physical seat in an airplane's fixed layout.
type Seat struct {
	AirplaneID string `gorm:"primaryKey;size:20" json:"airplane_id"`
	RowNum     int    `gorm:"primaryKey" json:"row_num"`
	ColumnNum  string `gorm:"primaryKey;size:1" json:"column_num"`
	ClassType  string `gorm:"not null" json:"class_type"` // "Economy" or "Business"
}

// TableName specifies the table name for the Seat model
func (Seat) TableName() string {
	return "seats"
}

// CrewRequirement returns the exact pilot and attendant counts required to
// commit a flight on an airplane of the given size.
func CrewRequirement(size string) (pilots, attendants int) {
	if size == AirplaneSizeBig {
		return 3, 6
	}
	return 2, 3
}
