package services

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/flytau/flytau-api/apperrors"
	"github.com/flytau/flytau-api/models"
)

// ErrInvalidCredentials is returned by Authenticate when no principal matches
// the supplied identifier and password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AccountService handles customer registration and credential login for both
// customers and managers.
type AccountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountService
func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{db: db}
}

// SignupRequest is the registration payload.
type SignupRequest struct {
	Email       string   `json:"email" binding:"required,email"`
	FirstName   string   `json:"first_name" binding:"required"`
	MiddleName  *string  `json:"middle_name"`
	LastName    string   `json:"last_name" binding:"required"`
	PassportNum string   `json:"passport_num" binding:"required"`
	BirthDate   string   `json:"birth_date" binding:"required"`
	Password    string   `json:"password" binding:"required,min=6"`
	Phones      []string `json:"phones"`
}

// Register creates a new customer account with its phone numbers. Manager
// emails are barred from registering as customers.
func (s *AccountService) Register(req *SignupRequest) error {
	email := strings.TrimSpace(req.Email)

	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.RegisteredCustomer{}).Where("email = ?", email).Count(&existing).Error; err != nil {
			return apperrors.Persistence(err)
		}
		if existing > 0 {
			return apperrors.New(apperrors.CodeInvalidInput, "email %s is already registered", email)
		}

		var managerCount int64
		if err := tx.Model(&models.Manager{}).Where("email = ?", email).Count(&managerCount).Error; err != nil {
			return apperrors.Persistence(err)
		}
		if managerCount > 0 {
			return apperrors.New(apperrors.CodeForbiddenRole, "managers are not allowed to register as customers")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return apperrors.Persistence(err)
		}

		customer := models.RegisteredCustomer{
			Email:            email,
			FirstName:        req.FirstName,
			MiddleName:       req.MiddleName,
			LastName:         req.LastName,
			PassportNum:      req.PassportNum,
			RegistrationDate: time.Now().Format(models.DateLayout),
			BirthDate:        req.BirthDate,
			Password:         string(hash),
			CustomerType:     models.CustomerTypeRegistered,
		}
		if err := tx.Create(&customer).Error; err != nil {
			return apperrors.Persistence(err)
		}

		for _, phone := range req.Phones {
			phone = strings.TrimSpace(phone)
			if phone == "" {
				continue
			}
			record := models.CustomerPhone{
				PhoneNum:     phone,
				Email:        email,
				CustomerType: models.CustomerTypeRegistered,
			}
			if err := tx.Where("phone_num = ?", phone).FirstOrCreate(&record).Error; err != nil {
				return apperrors.Persistence(err)
			}
		}
		return nil
	})
}

// Authenticate verifies the supplied credentials against registered
// customers (by email) and then managers (by manager ID). Returns the token
// subject and role on success, ErrInvalidCredentials otherwise.
func (s *AccountService) Authenticate(identifier, password string) (string, string, error) {
	identifier = strings.TrimSpace(identifier)

	var customer models.RegisteredCustomer
	err := s.db.Where("email = ?", identifier).First(&customer).Error
	if err == nil {
		if bcrypt.CompareHashAndPassword([]byte(customer.Password), []byte(password)) == nil {
			return customer.Email, models.RoleCustomer, nil
		}
		return "", "", ErrInvalidCredentials
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", "", apperrors.Persistence(err)
	}

	var manager models.Manager
	err = s.db.Where("manager_id = ?", identifier).First(&manager).Error
	if err == nil {
		if bcrypt.CompareHashAndPassword([]byte(manager.Password), []byte(password)) == nil {
			return manager.ManagerID, models.RoleManager, nil
		}
		return "", "", ErrInvalidCredentials
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", "", apperrors.Persistence(err)
	}

	return "", "", ErrInvalidCredentials
}
