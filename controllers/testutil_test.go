package controllers

import (
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/flytau/flytau-api/config"
	"github.com/flytau/flytau-api/models"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return router
}

func setupControllerTestDB(t *testing.T) *gorm.DB {
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

	config.SetDB(db)
	config.SetConfig(&config.Config{JWTSecret: "test-secret", Port: "8080", GoEnv: "test"})
	return db
}

// mockAuthMiddleware injects a principal the way RequireAuth would.
func mockAuthMiddleware(subject, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", subject)
		c.Set("user_role", role)
		c.Next()
	}
}
