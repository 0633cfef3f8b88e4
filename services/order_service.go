package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/flytau/flytau-api/apperrors"
	"github.com/flytau/flytau-api/models"
)

// OrderService serves order history and order detail lookups.
type OrderService struct {
	db *gorm.DB
}

// NewOrderService creates a new OrderService
func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// OrderSummary is one order aggregated with its flight and ticket totals.
type OrderSummary struct {
	OrderCode          string  `json:"order_code"`
	Status             string  `json:"status"`
	OrderDate          string  `json:"order_date"`
	FlightID           string  `json:"flight_id"`
	SourceAirport      string  `json:"source_airport"`
	DestinationAirport string  `json:"destination_airport"`
	DepartureDate      string  `json:"departure_date"`
	DepartureTime      string  `json:"departure_time"`
	TotalPrice         float64 `json:"total_price"`
	TicketCount        int     `json:"ticket_count"`
}

// History lists a customer's orders, newest first. The "Cancelled" filter
// matches both cancellation variants.
func (s *OrderService) History(email, statusFilter string) ([]OrderSummary, error) {
	query := s.db.Table("orders o").
		Select("o.order_code, o.status, o.order_date, t.flight_id, f.source_airport, f.destination_airport, "+
			"f.departure_date, f.departure_time, COALESCE(SUM(t.price), 0) AS total_price, COUNT(*) AS ticket_count").
		Joins("JOIN flight_tickets t ON o.order_code = t.order_code").
		Joins("JOIN flights f ON t.flight_id = f.flight_id AND t.departure_date = f.departure_date").
		Where("o.customer_email = ?", email)

	if statusFilter != "" && statusFilter != "All" {
		if statusFilter == "Cancelled" {
			query = query.Where("o.status LIKE ?", "Cancelled%")
		} else {
			query = query.Where("o.status = ?", statusFilter)
		}
	}

	var summaries []OrderSummary
	err := query.
		Group("o.order_code, o.status, o.order_date, t.flight_id, f.source_airport, f.destination_airport, f.departure_date, f.departure_time").
		Order("o.order_date DESC").
		Scan(&summaries).Error
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	return summaries, nil
}

// TicketDetail is one ticket joined with its flight's schedule.
type TicketDetail struct {
	FlightID           string  `json:"flight_id"`
	RowNum             int     `json:"row_num"`
	ColumnNum          string  `json:"column_num"`
	ClassType          string  `json:"class_type"`
	Price              float64 `json:"price"`
	DepartureDate      string  `json:"departure_date"`
	DepartureTime      string  `json:"departure_time"`
	SourceAirport      string  `json:"source_airport"`
	DestinationAirport string  `json:"destination_airport"`
}

// OrderDetail is the full view of one order.
type OrderDetail struct {
	Order      models.Order   `json:"order"`
	TotalPrice float64        `json:"total_price"`
	Tickets    []TicketDetail `json:"tickets"`
}

// GetOrder fetches an order owned by the given email. Guests use the same
// lookup with the email they supplied at booking time.
func (s *OrderService) GetOrder(orderCode, email string) (*OrderDetail, error) {
	var order models.Order
	err := s.db.Where("order_code = ? AND customer_email = ?", orderCode, email).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeOrderNotFound, "order %s not found", orderCode)
		}
		return nil, apperrors.Persistence(err)
	}

	var tickets []TicketDetail
	err = s.db.Table("flight_tickets t").
		Select("t.flight_id, t.row_num, t.column_num, t.class_type, t.price, "+
			"f.departure_date, f.departure_time, f.source_airport, f.destination_airport").
		Joins("JOIN flights f ON t.flight_id = f.flight_id AND t.departure_date = f.departure_date").
		Where("t.order_code = ?", orderCode).
		Order("t.row_num, t.column_num").
		Scan(&tickets).Error
	if err != nil {
		return nil, apperrors.Persistence(err)
	}

	var total float64
	for _, t := range tickets {
		total += t.Price
	}

	return &OrderDetail{
		Order:      order,
		TotalPrice: total,
		Tickets:    tickets,
	}, nil
}
