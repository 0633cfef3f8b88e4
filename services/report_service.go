package services

import (
	"fmt"
	"math"
	"sort"

	"gorm.io/gorm"

	"github.com/flytau/flytau-api/apperrors"
	"github.com/flytau/flytau-api/models"
)

// ReportService computes the manager-facing operational reports. Month-level
// grouping and ratio math happen in Go so the same queries run on postgres
// and sqlite.
type ReportService struct {
	db *gorm.DB
}

// NewReportService creates a new ReportService
func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// AverageOccupancy returns the mean seat-occupancy percentage across all
// Arrived flights. Only tickets from Active or Executed orders count as
// occupied.
func (s *ReportService) AverageOccupancy() (float64, error) {
	var flights []models.Flight
	if err := s.db.Where("status = ?", models.FlightStatusArrived).Find(&flights).Error; err != nil {
		return 0, apperrors.Persistence(err)
	}

	var sum float64
	var counted int
	for _, f := range flights {
		var occupied int64
		err := s.db.Model(&models.Ticket{}).
			Joins("JOIN orders ON orders.order_code = flight_tickets.order_code").
			Where("flight_tickets.flight_id = ? AND flight_tickets.departure_date = ?", f.FlightID, f.DepartureDate).
			Where("orders.status IN ?", []string{models.OrderStatusActive, models.OrderStatusExecuted}).
			Count(&occupied).Error
		if err != nil {
			return 0, apperrors.Persistence(err)
		}

		var totalSeats int64
		err = s.db.Model(&models.Seat{}).Where("airplane_id = ?", f.AirplaneID).Count(&totalSeats).Error
		if err != nil {
			return 0, apperrors.Persistence(err)
		}
		if totalSeats == 0 {
			continue
		}

		sum += float64(occupied) * 100.0 / float64(totalSeats)
		counted++
	}
	if counted == 0 {
		return 0, nil
	}
	return round2(sum / float64(counted)), nil
}

// RevenueRow is revenue aggregated by aircraft model and seat class.
type RevenueRow struct {
	Manufacturer string  `json:"manufacturer"`
	Size         string  `json:"size"`
	ClassType    string  `json:"class_type"`
	Label        string  `json:"label"`
	TotalRevenue float64 `json:"total_revenue"`
}

// RevenueByAircraftClass shows which aircraft models and classes generate
// the most revenue. Customer-cancellation fees count as revenue.
func (s *ReportService) RevenueByAircraftClass() ([]RevenueRow, error) {
	var rows []RevenueRow
	err := s.db.Table("flight_tickets t").
		Select("a.manufacturer, a.size, t.class_type, SUM(t.price) AS total_revenue").
		Joins("JOIN orders o ON t.order_code = o.order_code").
		Joins("JOIN airplanes a ON t.airplane_id = a.airplane_id").
		Where("o.status IN ?", []string{models.OrderStatusActive, models.OrderStatusExecuted, models.OrderStatusCancelledByCustomer}).
		Group("a.manufacturer, a.size, t.class_type").
		Order("total_revenue DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	for i := range rows {
		rows[i].Label = fmt.Sprintf("%s %s (%s)", rows[i].Manufacturer, rows[i].Size, rows[i].ClassType)
	}
	return rows, nil
}

// CrewWorkloadRow is the accumulated flight hours of one crew member over
// Arrived flights, split at the long-haul threshold.
type CrewWorkloadRow struct {
	EmployeeID       string  `json:"employee_id"`
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	Role             string  `json:"role"`
	ShortFlightHours float64 `json:"short_flight_hours"`
	LongFlightHours  float64 `json:"long_flight_hours"`
	TotalHours       float64 `json:"total_hours"`
}

type crewFlightRow struct {
	EmployeeID     string
	FirstName      string
	LastName       string
	FlightDuration int
}

// CrewWorkload tracks flight hours for pilots and attendants over Arrived
// flights.
func (s *ReportService) CrewWorkload() ([]CrewWorkloadRow, error) {
	var pilotRows []crewFlightRow
	err := s.db.Table("pilots p").
		Select("p.pilot_id AS employee_id, p.first_name, p.last_name, r.flight_duration").
		Joins("JOIN pilots_in_flights pif ON p.pilot_id = pif.pilot_id").
		Joins("JOIN flights f ON pif.flight_id = f.flight_id AND pif.departure_date = f.departure_date").
		Joins("JOIN flight_routes r ON f.source_airport = r.source_airport AND f.destination_airport = r.destination_airport").
		Where("f.status = ?", models.FlightStatusArrived).
		Scan(&pilotRows).Error
	if err != nil {
		return nil, apperrors.Persistence(err)
	}

	var attendantRows []crewFlightRow
	err = s.db.Table("flight_attendants fa").
		Select("fa.attendant_id AS employee_id, fa.first_name, fa.last_name, r.flight_duration").
		Joins("JOIN attendants_in_flights aif ON fa.attendant_id = aif.attendant_id").
		Joins("JOIN flights f ON aif.flight_id = f.flight_id AND aif.departure_date = f.departure_date").
		Joins("JOIN flight_routes r ON f.source_airport = r.source_airport AND f.destination_airport = r.destination_airport").
		Where("f.status = ?", models.FlightStatusArrived).
		Scan(&attendantRows).Error
	if err != nil {
		return nil, apperrors.Persistence(err)
	}

	byEmployee := make(map[string]*CrewWorkloadRow)
	accumulate := func(rows []crewFlightRow, role string) {
		for _, r := range rows {
			entry, ok := byEmployee[r.EmployeeID]
			if !ok {
				entry = &CrewWorkloadRow{
					EmployeeID: r.EmployeeID,
					FirstName:  r.FirstName,
					LastName:   r.LastName,
					Role:       role,
				}
				byEmployee[r.EmployeeID] = entry
			}
			hours := float64(r.FlightDuration) / 60.0
			if r.FlightDuration > models.LongHaulThresholdMinutes {
				entry.LongFlightHours += hours
			} else {
				entry.ShortFlightHours += hours
			}
			entry.TotalHours += hours
		}
	}
	accumulate(pilotRows, "Pilot")
	accumulate(attendantRows, "Attendant")

	result := make([]CrewWorkloadRow, 0, len(byEmployee))
	for _, entry := range byEmployee {
		entry.ShortFlightHours = round2(entry.ShortFlightHours)
		entry.LongFlightHours = round2(entry.LongFlightHours)
		entry.TotalHours = round2(entry.TotalHours)
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EmployeeID < result[j].EmployeeID })
	return result, nil
}

// MonthlyOrdersRow is the order volume and cancellation rate for one month.
type MonthlyOrdersRow struct {
	Month            string  `json:"month"` // "2026-08"
	TotalOrders      int     `json:"total_orders"`
	CancelledOrders  int     `json:"cancelled_orders"`
	CancellationRate float64 `json:"cancellation_rate_percent"`
}

// MonthlyOrderTrends groups orders by order month and reports the share that
// ended cancelled (by either path).
func (s *ReportService) MonthlyOrderTrends() ([]MonthlyOrdersRow, error) {
	var orders []models.Order
	if err := s.db.Find(&orders).Error; err != nil {
		return nil, apperrors.Persistence(err)
	}

	byMonth := make(map[string]*MonthlyOrdersRow)
	for _, o := range orders {
		if len(o.OrderDate) < 7 {
			continue
		}
		month := o.OrderDate[:7]
		entry, ok := byMonth[month]
		if !ok {
			entry = &MonthlyOrdersRow{Month: month}
			byMonth[month] = entry
		}
		entry.TotalOrders++
		if o.Status == models.OrderStatusCancelledByCustomer || o.Status == models.OrderStatusCancelledBySystem {
			entry.CancelledOrders++
		}
	}

	result := make([]MonthlyOrdersRow, 0, len(byMonth))
	for _, entry := range byMonth {
		entry.CancellationRate = round2(float64(entry.CancelledOrders) / float64(entry.TotalOrders) * 100.0)
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month < result[j].Month })
	return result, nil
}

// UtilizationRow is the per-airplane activity for one month.
type UtilizationRow struct {
	AirplaneID         string  `json:"airplane_id"`
	Month              string  `json:"month"`
	FlightsExecuted    int     `json:"flights_executed"`
	FlightsCancelled   int     `json:"flights_cancelled"`
	UtilizationPercent float64 `json:"utilization_percent"`
	DominantRoute      string  `json:"dominant_route"`
}

// AircraftUtilization reports per-airplane monthly stats: executed and
// cancelled flights, the share of days flown (out of 30), and the most
// frequent arrived route.
func (s *ReportService) AircraftUtilization() ([]UtilizationRow, error) {
	var flights []models.Flight
	if err := s.db.Find(&flights).Error; err != nil {
		return nil, apperrors.Persistence(err)
	}

	type bucket struct {
		executed  int
		cancelled int
		daysFlown map[string]bool
		routes    map[string]int
	}
	buckets := make(map[string]*bucket)
	key := func(plane, month string) string { return plane + "|" + month }

	for _, f := range flights {
		if len(f.DepartureDate) < 7 {
			continue
		}
		month := f.DepartureDate[:7]
		b, ok := buckets[key(f.AirplaneID, month)]
		if !ok {
			b = &bucket{daysFlown: make(map[string]bool), routes: make(map[string]int)}
			buckets[key(f.AirplaneID, month)] = b
		}
		switch f.Status {
		case models.FlightStatusArrived:
			b.executed++
			b.daysFlown[f.DepartureDate] = true
			b.routes[f.SourceAirport+"-"+f.DestinationAirport]++
		case models.FlightStatusCancelled:
			b.cancelled++
		}
	}

	result := make([]UtilizationRow, 0, len(buckets))
	for k, b := range buckets {
		var plane, month string
		for i := 0; i < len(k); i++ {
			if k[i] == '|' {
				plane, month = k[:i], k[i+1:]
				break
			}
		}

		// Most frequent route; ties break lexicographically for determinism.
		var dominant string
		var dominantCount int
		for route, count := range b.routes {
			if count > dominantCount || (count == dominantCount && (dominant == "" || route < dominant)) {
				dominant, dominantCount = route, count
			}
		}

		result = append(result, UtilizationRow{
			AirplaneID:         plane,
			Month:              month,
			FlightsExecuted:    b.executed,
			FlightsCancelled:   b.cancelled,
			UtilizationPercent: round2(float64(len(b.daysFlown)) / 30.0 * 100.0),
			DominantRoute:      dominant,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].AirplaneID != result[j].AirplaneID {
			return result[i].AirplaneID < result[j].AirplaneID
		}
		return result[i].Month < result[j].Month
	})
	return result, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
