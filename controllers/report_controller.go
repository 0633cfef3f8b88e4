package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flytau/flytau-api/config"
	"github.com/flytau/flytau-api/services"
)

// GetOccupancyReport handles GET /api/v1/admin/reports/occupancy - average
// seat occupancy across arrived flights
func GetOccupancyReport(c *gin.Context) {
	svc := services.NewReportService(config.GetDB())
	occupancy, err := svc.AverageOccupancy()
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"average_occupancy_percent": occupancy,
	})
}

// GetRevenueReport handles GET /api/v1/admin/reports/revenue - revenue by
// aircraft model and seat class
func GetRevenueReport(c *gin.Context) {
	svc := services.NewReportService(config.GetDB())
	rows, err := svc.RevenueByAircraftClass()
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, rows)
}

// GetCrewWorkloadReport handles GET /api/v1/admin/reports/crew-workload -
// accumulated flight hours per crew member
func GetCrewWorkloadReport(c *gin.Context) {
	svc := services.NewReportService(config.GetDB())
	rows, err := svc.CrewWorkload()
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, rows)
}

// GetOrderTrendsReport handles GET /api/v1/admin/reports/order-trends -
// monthly order volume and cancellation rate
func GetOrderTrendsReport(c *gin.Context) {
	svc := services.NewReportService(config.GetDB())
	rows, err := svc.MonthlyOrderTrends()
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, rows)
}

// GetUtilizationReport handles GET /api/v1/admin/reports/utilization -
// per-airplane monthly activity
func GetUtilizationReport(c *gin.Context) {
	svc := services.NewReportService(config.GetDB())
	rows, err := svc.AircraftUtilization()
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, rows)
}
