package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/flytau/flytau-api/apperrors"
	"github.com/flytau/flytau-api/models"
)

// Worker roles accepted by AddWorker.
const (
	WorkerRolePilot     = "Pilot"
	WorkerRoleAttendant = "Attendant"
)

// CrewService manages the pilot and attendant rosters.
type CrewService struct {
	db *gorm.DB
}

// NewCrewService creates a new CrewService
func NewCrewService(db *gorm.DB) *CrewService {
	return &CrewService{db: db}
}

// WorkerRequest is the payload for adding a crew member.
type WorkerRequest struct {
	Role               string  `json:"role" binding:"required"`
	FirstName          string  `json:"first_name" binding:"required"`
	MiddleName         *string `json:"middle_name"`
	LastName           string  `json:"last_name" binding:"required"`
	City               string  `json:"city"`
	Street             string  `json:"street"`
	HouseNum           string  `json:"house_num"`
	LongFlightTraining bool    `json:"long_flight_training"`
}

// AddWorker inserts a new pilot or flight attendant with a generated
// sequential ID ("P-007" / "FA-012") and returns that ID.
func (s *CrewService) AddWorker(req *WorkerRequest) (string, error) {
	if req.Role != WorkerRolePilot && req.Role != WorkerRoleAttendant {
		return "", apperrors.New(apperrors.CodeInvalidInput, "role must be %q or %q", WorkerRolePilot, WorkerRoleAttendant)
	}

	startDate := time.Now().Format(models.DateLayout)
	var newID string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if req.Role == WorkerRolePilot {
			var count int64
			if err := tx.Model(&models.Pilot{}).Count(&count).Error; err != nil {
				return apperrors.Persistence(err)
			}
			newID = fmt.Sprintf("P-%03d", count+1)
			pilot := models.Pilot{
				PilotID:            newID,
				FirstName:          req.FirstName,
				MiddleName:         req.MiddleName,
				LastName:           req.LastName,
				City:               req.City,
				Street:             req.Street,
				HouseNum:           req.HouseNum,
				StartDate:          startDate,
				LongFlightTraining: req.LongFlightTraining,
			}
			if err := tx.Create(&pilot).Error; err != nil {
				return apperrors.Persistence(err)
			}
			return nil
		}

		var count int64
		if err := tx.Model(&models.FlightAttendant{}).Count(&count).Error; err != nil {
			return apperrors.Persistence(err)
		}
		newID = fmt.Sprintf("FA-%03d", count+1)
		attendant := models.FlightAttendant{
			AttendantID:        newID,
			FirstName:          req.FirstName,
			MiddleName:         req.MiddleName,
			LastName:           req.LastName,
			City:               req.City,
			Street:             req.Street,
			HouseNum:           req.HouseNum,
			StartDate:          startDate,
			LongFlightTraining: req.LongFlightTraining,
		}
		if err := tx.Create(&attendant).Error; err != nil {
			return apperrors.Persistence(err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return newID, nil
}
