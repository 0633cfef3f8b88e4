package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/flytau/flytau-api/apperrors"
	"github.com/flytau/flytau-api/models"
)

// Cancellation windows and the self-service fee. The customer and manager
// windows are intentionally different rules, not variants of one.
const (
	SelfServiceCancelWindow = 36 * time.Hour
	SystemCancelWindow      = 72 * time.Hour
	CancellationFeeRate     = 0.05
)

// CancellationService enforces cancellation lead times and applies the two
// refund policies: 5% fee for self-service, full refund for system
// cancellations.
type CancellationService struct {
	db *gorm.DB
}

// NewCancellationService creates a new CancellationService
func NewCancellationService(db *gorm.DB) *CancellationService {
	return &CancellationService{db: db}
}

// CancelOrder cancels one order on behalf of its owner. Guests authenticate
// with the (order code, email) pair; registered customers pass their session
// email. The 5% fee is redistributed evenly across the order's tickets so
// their sum equals the fee; original per-seat prices are discarded.
func (s *CancellationService) CancelOrder(orderCode, ownerEmail string) (float64, error) {
	var fee float64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := tx.Where("order_code = ? AND customer_email = ?", orderCode, ownerEmail).
			First(&order).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.New(apperrors.CodeOrderNotFound, "order %s not found", orderCode)
			}
			return apperrors.Persistence(err)
		}
		if order.Status != models.OrderStatusActive {
			return apperrors.New(apperrors.CodeInvalidInput, "order %s is not active", orderCode)
		}

		var tickets []models.Ticket
		if err := tx.Where("order_code = ?", orderCode).Find(&tickets).Error; err != nil {
			return apperrors.Persistence(err)
		}
		if len(tickets) == 0 {
			return apperrors.New(apperrors.CodeOrderNotFound, "order %s has no tickets", orderCode)
		}

		var flight models.Flight
		err = tx.Where("flight_id = ? AND departure_date = ?", tickets[0].FlightID, tickets[0].DepartureDate).
			First(&flight).Error
		if err != nil {
			return apperrors.Persistence(err)
		}
		departure, err := flight.DepartureAt()
		if err != nil {
			return apperrors.Persistence(err)
		}
		if time.Now().Add(SelfServiceCancelWindow).After(departure) {
			return apperrors.New(apperrors.CodeTooLateToCancel, "cancellation is only allowed up to 36 hours before the flight")
		}

		var total float64
		for _, t := range tickets {
			total += t.Price
		}
		fee = total * CancellationFeeRate
		perTicket := fee / float64(len(tickets))

		err = tx.Model(&models.Order{}).Where("order_code = ?", orderCode).
			Update("status", models.OrderStatusCancelledByCustomer).Error
		if err != nil {
			return apperrors.Persistence(err)
		}
		err = tx.Model(&models.Ticket{}).Where("order_code = ?", orderCode).
			Update("price", perTicket).Error
		if err != nil {
			return apperrors.Persistence(err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return fee, nil
}

// CancelFlight is the manager-initiated system cancellation: the flight is
// cancelled, every Active order on it becomes "Cancelled by system", and all
// their ticket prices are zeroed (full refund, no fee).
func (s *CancellationService) CancelFlight(flightID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var flight models.Flight
		if err := tx.Where("flight_id = ?", flightID).First(&flight).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.New(apperrors.CodeNotFound, "flight %s not found", flightID)
			}
			return apperrors.Persistence(err)
		}
		if flight.Status != models.FlightStatusActive {
			return apperrors.New(apperrors.CodeInvalidInput, "flight %s is not active", flightID)
		}

		departure, err := flight.DepartureAt()
		if err != nil {
			return apperrors.Persistence(err)
		}
		if time.Now().Add(SystemCancelWindow).After(departure) {
			return apperrors.New(apperrors.CodeTooLateToCancel, "flights can only be cancelled up to 72 hours before departure")
		}

		err = tx.Model(&models.Flight{}).
			Where("flight_id = ? AND departure_date = ?", flight.FlightID, flight.DepartureDate).
			Update("status", models.FlightStatusCancelled).Error
		if err != nil {
			return apperrors.Persistence(err)
		}

		var orderCodes []string
		err = tx.Model(&models.Ticket{}).
			Joins("JOIN orders ON orders.order_code = flight_tickets.order_code").
			Where("flight_tickets.flight_id = ? AND flight_tickets.departure_date = ? AND orders.status = ?",
				flight.FlightID, flight.DepartureDate, models.OrderStatusActive).
			Distinct().
			Pluck("flight_tickets.order_code", &orderCodes).Error
		if err != nil {
			return apperrors.Persistence(err)
		}
		if len(orderCodes) == 0 {
			return nil
		}

		err = tx.Model(&models.Order{}).Where("order_code IN ?", orderCodes).
			Update("status", models.OrderStatusCancelledBySystem).Error
		if err != nil {
			return apperrors.Persistence(err)
		}
		err = tx.Model(&models.Ticket{}).Where("order_code IN ?", orderCodes).
			Update("price", 0.0).Error
		if err != nil {
			return apperrors.Persistence(err)
		}
		return nil
	})
}
