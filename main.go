package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/flytau/flytau-api/config"
	"github.com/flytau/flytau-api/controllers"
	"github.com/flytau/flytau-api/metrics"
	"github.com/flytau/flytau-api/middleware"
	"github.com/flytau/flytau-api/models"
)

func main() {
	log.Println("Starting FlyTAU booking API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	config.SetConfig(cfg)

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
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
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	router := setupRouter(cfg)

	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter wires middleware and all API routes.
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(metrics.Middleware())

	router.GET("/metrics", metrics.Handler())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)

		auth := v1.Group("/auth")
		{
			auth.POST("/signup", controllers.Signup)
			auth.POST("/login", controllers.Login)
		}

		// Flight search and booking work for guests too; a supplied token
		// still has to be valid.
		public := v1.Group("")
		public.Use(middleware.OptionalAuth(cfg))
		{
			public.GET("/flights", controllers.ListFlights)
			public.GET("/flights/:id", controllers.GetFlight)
			public.GET("/flights/:id/seats", controllers.GetFlightSeats)
			public.POST("/bookings", controllers.CreateBooking)
		}

		guest := v1.Group("/guest")
		{
			guest.GET("/orders/:code", controllers.GuestGetOrder)
			guest.POST("/orders/:code/cancel", controllers.GuestCancelOrder)
		}

		orders := v1.Group("/orders")
		orders.Use(middleware.RequireAuth(cfg))
		{
			orders.GET("", controllers.ListOrders)
			orders.GET("/:code", controllers.GetOrder)
			orders.POST("/:code/cancel", controllers.CancelOrder)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.RequireAuth(cfg), middleware.RequireManager())
		{
			admin.POST("/routes", controllers.CreateRoute)
			admin.GET("/resources", controllers.GetResources)
			admin.POST("/flights", controllers.CreateFlight)
			admin.POST("/flights/validate", controllers.ValidateFlight)
			admin.POST("/flights/:id/cancel", controllers.CancelFlight)
			admin.POST("/workers", controllers.AddWorker)

			reports := admin.Group("/reports")
			{
				reports.GET("/occupancy", controllers.GetOccupancyReport)
				reports.GET("/revenue", controllers.GetRevenueReport)
				reports.GET("/crew-workload", controllers.GetCrewWorkloadReport)
				reports.GET("/order-trends", controllers.GetOrderTrendsReport)
				reports.GET("/utilization", controllers.GetUtilizationReport)
			}
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "FlyTAU booking API is running",
	})
}
