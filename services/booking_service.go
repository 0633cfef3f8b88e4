package services

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/flytau/flytau-api/apperrors"
	"github.com/flytau/flytau-api/models"
	"github.com/flytau/flytau-api/utils"
)

// orderCodeAttempts bounds the uniqueness retry loop for order codes.
const orderCodeAttempts = 5

// BookingService creates orders and their tickets as a single transaction:
// either every selected seat is ticketed at its authoritative price, or
// nothing is written.
type BookingService struct {
	db *gorm.DB
}

// NewBookingService creates a new BookingService
func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{db: db}
}

// GuestDetails is the contact bundle supplied by an unauthenticated
// purchaser.
type GuestDetails struct {
	FirstName  string  `json:"first_name"`
	MiddleName *string `json:"middle_name"`
	LastName   string  `json:"last_name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
}

// BookingRequest is one booking attempt. Seats are selector strings in the
// form "row-column-class-airplaneID" (airplane IDs may themselves contain
// dashes).
type BookingRequest struct {
	FlightID string        `json:"flight_id" binding:"required"`
	Seats    []string      `json:"seats" binding:"required,min=1"`
	Guest    *GuestDetails `json:"guest"`
}

// seatSelector is a parsed seat selector string.
type seatSelector struct {
	RowNum     int
	ColumnNum  string
	ClassType  string
	AirplaneID string
}

// CreateBooking books the selected seats for the purchaser and returns the
// new order code. Managers cannot book, not even through a guest identity
// carrying their email.
func (s *BookingService) CreateBooking(subject, role string, req *BookingRequest) (string, error) {
	if role == models.RoleManager {
		return "", apperrors.New(apperrors.CodeForbiddenRole, "managers cannot book flights")
	}

	var orderCode string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var flight models.Flight
		if err := tx.Where("flight_id = ?", req.FlightID).First(&flight).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.New(apperrors.CodeNotFound, "flight %s not found", req.FlightID)
			}
			return apperrors.Persistence(err)
		}

		email, customerType, err := resolvePurchaser(tx, subject, role, req.Guest)
		if err != nil {
			return err
		}

		code, err := uniqueOrderCode(tx)
		if err != nil {
			return err
		}

		order := models.Order{
			OrderCode:     code,
			CustomerEmail: email,
			Status:        models.OrderStatusActive,
			OrderDate:     time.Now().Format(models.DateLayout),
			CustomerType:  customerType,
		}
		if err := tx.Create(&order).Error; err != nil {
			return apperrors.Persistence(err)
		}

		for _, selector := range req.Seats {
			seat, err := parseSeatSelector(selector)
			if err != nil {
				return err
			}

			var pricing models.ClassPricing
			err = tx.Where("flight_id = ? AND departure_date = ? AND class_type = ? AND airplane_id = ?",
				flight.FlightID, flight.DepartureDate, seat.ClassType, seat.AirplaneID).
				First(&pricing).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// Fail closed: a missing price aborts the whole booking.
					return apperrors.New(apperrors.CodePricingUnavailable, "no price set for %s class on flight %s", seat.ClassType, flight.FlightID)
				}
				return apperrors.Persistence(err)
			}

			ticket := models.Ticket{
				OrderCode:     code,
				FlightID:      flight.FlightID,
				DepartureDate: flight.DepartureDate,
				RowNum:        seat.RowNum,
				ColumnNum:     seat.ColumnNum,
				ClassType:     seat.ClassType,
				AirplaneID:    seat.AirplaneID,
				Price:         pricing.Price,
			}
			if err := tx.Create(&ticket).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return apperrors.New(apperrors.CodeInvalidInput, "seat %d%s selected more than once", seat.RowNum, seat.ColumnNum)
				}
				return apperrors.Persistence(err)
			}
		}

		orderCode = code
		return nil
	})
	if err != nil {
		return "", err
	}
	return orderCode, nil
}

// resolvePurchaser classifies the purchaser and upserts guest records. A
// guest email matching a manager is rejected outright, so the manager
// booking ban cannot be bypassed with a fabricated guest identity.
func resolvePurchaser(tx *gorm.DB, subject, role string, guest *GuestDetails) (string, string, error) {
	if role == models.RoleCustomer && subject != "" {
		return subject, models.CustomerTypeRegistered, nil
	}

	if guest == nil || strings.TrimSpace(guest.Email) == "" {
		return "", "", apperrors.New(apperrors.CodeInvalidInput, "guest contact details are required")
	}
	email := strings.TrimSpace(guest.Email)

	var managerCount int64
	if err := tx.Model(&models.Manager{}).Where("email = ?", email).Count(&managerCount).Error; err != nil {
		return "", "", apperrors.Persistence(err)
	}
	if managerCount > 0 {
		return "", "", apperrors.New(apperrors.CodeIdentitySpoofing, "managers are forbidden from booking tickets, even as guests")
	}

	record := models.UnregisteredCustomer{
		Email:        email,
		FirstName:    guest.FirstName,
		MiddleName:   guest.MiddleName,
		LastName:     guest.LastName,
		CustomerType: models.CustomerTypeUnregistered,
	}
	if err := tx.Where("email = ?", email).FirstOrCreate(&record).Error; err != nil {
		return "", "", apperrors.Persistence(err)
	}

	if phone := strings.TrimSpace(guest.Phone); phone != "" {
		// Re-submitting a known phone number is tolerated, not an error.
		phoneRecord := models.CustomerPhone{
			PhoneNum:     phone,
			Email:        email,
			CustomerType: models.CustomerTypeUnregistered,
		}
		if err := tx.Where("phone_num = ?", phone).FirstOrCreate(&phoneRecord).Error; err != nil {
			return "", "", apperrors.Persistence(err)
		}
	}

	return email, models.CustomerTypeUnregistered, nil
}

// uniqueOrderCode draws order codes until one is unused. Collisions on an
// 8-character [A-Z0-9] code are close to impossible, so hitting the attempt
// cap means something else is wrong.
func uniqueOrderCode(tx *gorm.DB) (string, error) {
	for i := 0; i < orderCodeAttempts; i++ {
		code, err := utils.GenerateOrderCode()
		if err != nil {
			return "", apperrors.Persistence(err)
		}
		var count int64
		if err := tx.Model(&models.Order{}).Where("order_code = ?", code).Count(&count).Error; err != nil {
			return "", apperrors.Persistence(err)
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", apperrors.New(apperrors.CodePersistence, "could not allocate a unique order code")
}

// parseSeatSelector parses "row-column-class-airplaneID", re-joining any
// dashes inside the airplane ID.
func parseSeatSelector(selector string) (*seatSelector, error) {
	parts := strings.Split(selector, "-")
	if len(parts) < 4 {
		return nil, apperrors.New(apperrors.CodeInvalidInput, "invalid seat selector %q", selector)
	}
	row, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, apperrors.New(apperrors.CodeInvalidInput, "invalid seat row in selector %q", selector)
	}
	return &seatSelector{
		RowNum:     row,
		ColumnNum:  parts[1],
		ClassType:  parts[2],
		AirplaneID: strings.Join(parts[3:], "-"),
	}, nil
}
