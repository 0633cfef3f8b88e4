package services

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/flytau/flytau-api/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Airplane{},
		&models.Seat{},
		&models.FlightRoute{},
		&models.Flight{},
		&models.ClassPricing{},
		&models.RegisteredCustomer{},
		&models.UnregisteredCustomer{},
		&models.CustomerPhone{},
		&models.Manager{},
		&models.Pilot{},
		&models.FlightAttendant{},
		&models.PilotAssignment{},
		&models.AttendantAssignment{},
		&models.Order{},
		&models.Ticket{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format(models.DateLayout)
}

// seedSmallPlane creates a Small airplane with a 1-row Business and 2-row
// Economy layout (8 seats total).
func seedSmallPlane(t *testing.T, db *gorm.DB, airplaneID string) models.Airplane {
	plane := models.Airplane{AirplaneID: airplaneID, Manufacturer: "Embraer", Size: models.AirplaneSizeSmall}
	if err := db.Create(&plane).Error; err != nil {
		t.Fatalf("Failed to seed airplane: %v", err)
	}
	seats := []models.Seat{
		{AirplaneID: airplaneID, RowNum: 1, ColumnNum: "A", ClassType: models.ClassBusiness},
		{AirplaneID: airplaneID, RowNum: 1, ColumnNum: "B", ClassType: models.ClassBusiness},
		{AirplaneID: airplaneID, RowNum: 2, ColumnNum: "A", ClassType: models.ClassEconomy},
		{AirplaneID: airplaneID, RowNum: 2, ColumnNum: "B", ClassType: models.ClassEconomy},
		{AirplaneID: airplaneID, RowNum: 2, ColumnNum: "C", ClassType: models.ClassEconomy},
		{AirplaneID: airplaneID, RowNum: 3, ColumnNum: "A", ClassType: models.ClassEconomy},
		{AirplaneID: airplaneID, RowNum: 3, ColumnNum: "B", ClassType: models.ClassEconomy},
		{AirplaneID: airplaneID, RowNum: 3, ColumnNum: "C", ClassType: models.ClassEconomy},
	}
	for _, seat := range seats {
		if err := db.Create(&seat).Error; err != nil {
			t.Fatalf("Failed to seed seat: %v", err)
		}
	}
	return plane
}

func seedBigPlane(t *testing.T, db *gorm.DB, airplaneID string) models.Airplane {
	plane := models.Airplane{AirplaneID: airplaneID, Manufacturer: "Boeing", Size: models.AirplaneSizeBig}
	if err := db.Create(&plane).Error; err != nil {
		t.Fatalf("Failed to seed airplane: %v", err)
	}
	return plane
}

func seedRoute(t *testing.T, db *gorm.DB, source, destination string, duration int) models.FlightRoute {
	route := models.FlightRoute{SourceAirport: source, DestinationAirport: destination, FlightDuration: duration}
	if err := db.Create(&route).Error; err != nil {
		t.Fatalf("Failed to seed route: %v", err)
	}
	return route
}

func seedFlight(t *testing.T, db *gorm.DB, flightID, date, departureTime, airplaneID, source, destination, status string, runway int) models.Flight {
	flight := models.Flight{
		FlightID:           flightID,
		DepartureDate:      date,
		DepartureTime:      departureTime,
		AirplaneID:         airplaneID,
		SourceAirport:      source,
		DestinationAirport: destination,
		Status:             status,
		RunwayNum:          runway,
	}
	if err := db.Create(&flight).Error; err != nil {
		t.Fatalf("Failed to seed flight: %v", err)
	}
	return flight
}

func seedPricing(t *testing.T, db *gorm.DB, flightID, date, classType, airplaneID string, price float64) {
	pricing := models.ClassPricing{
		FlightID:      flightID,
		DepartureDate: date,
		ClassType:     classType,
		AirplaneID:    airplaneID,
		Price:         price,
	}
	if err := db.Create(&pricing).Error; err != nil {
		t.Fatalf("Failed to seed pricing: %v", err)
	}
}

func seedPilot(t *testing.T, db *gorm.DB, pilotID string, trained bool) {
	pilot := models.Pilot{
		PilotID:            pilotID,
		FirstName:          "Test",
		LastName:           "Pilot",
		StartDate:          "2020-01-01",
		LongFlightTraining: trained,
	}
	if err := db.Create(&pilot).Error; err != nil {
		t.Fatalf("Failed to seed pilot: %v", err)
	}
}

func seedAttendant(t *testing.T, db *gorm.DB, attendantID string, trained bool) {
	attendant := models.FlightAttendant{
		AttendantID:        attendantID,
		FirstName:          "Test",
		LastName:           "Attendant",
		StartDate:          "2020-01-01",
		LongFlightTraining: trained,
	}
	if err := db.Create(&attendant).Error; err != nil {
		t.Fatalf("Failed to seed attendant: %v", err)
	}
}

func seedOrder(t *testing.T, db *gorm.DB, orderCode, email, status, orderDate, customerType string) models.Order {
	order := models.Order{
		OrderCode:     orderCode,
		CustomerEmail: email,
		Status:        status,
		OrderDate:     orderDate,
		CustomerType:  customerType,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("Failed to seed order: %v", err)
	}
	return order
}

func seedTicket(t *testing.T, db *gorm.DB, orderCode, flightID, date string, row int, column, classType, airplaneID string, price float64) {
	ticket := models.Ticket{
		OrderCode:     orderCode,
		FlightID:      flightID,
		DepartureDate: date,
		RowNum:        row,
		ColumnNum:     column,
		ClassType:     classType,
		AirplaneID:    airplaneID,
		Price:         price,
	}
	if err := db.Create(&ticket).Error; err != nil {
		t.Fatalf("Failed to seed ticket: %v", err)
	}
}
