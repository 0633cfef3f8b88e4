package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/flytau/flytau-api/apperrors"
	"github.com/flytau/flytau-api/models"
)

// SeatMapService builds the occupancy grid shown during seat selection.
type SeatMapService struct {
	db *gorm.DB
}

// NewSeatMapService creates a new SeatMapService
func NewSeatMapService(db *gorm.DB) *SeatMapService {
	return &SeatMapService{db: db}
}

// SeatStatus is one seat with its occupancy flag for a specific flight
// instance.
type SeatStatus struct {
	RowNum    int    `json:"row_num"`
	ColumnNum string `json:"column_num"`
	ClassType string `json:"class_type"`
	Taken     bool   `json:"taken"`
}

// SeatMap is the full grid for one flight: row → column → seat. MaxRow lets
// a renderer iterate a rectangular grid even though some rows have fewer
// columns (Business rows are narrower).
type SeatMap struct {
	Flight   models.Flight                 `json:"flight"`
	Airplane models.Airplane               `json:"airplane"`
	Rows     map[int]map[string]SeatStatus `json:"rows"`
	MaxRow   int                           `json:"max_row"`
}

// BuildSeatMap fetches the airplane's fixed layout and flags every seat
// already ticketed on this exact flight instance.
func (s *SeatMapService) BuildSeatMap(flightID string) (*SeatMap, error) {
	var flight models.Flight
	if err := s.db.Where("flight_id = ?", flightID).First(&flight).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, "flight %s not found", flightID)
		}
		return nil, apperrors.Persistence(err)
	}

	var airplane models.Airplane
	if err := s.db.Where("airplane_id = ?", flight.AirplaneID).First(&airplane).Error; err != nil {
		return nil, apperrors.Persistence(err)
	}

	var seats []models.Seat
	err := s.db.Where("airplane_id = ?", flight.AirplaneID).
		Order("row_num, column_num").
		Find(&seats).Error
	if err != nil {
		return nil, apperrors.Persistence(err)
	}

	var tickets []models.Ticket
	err = s.db.Where("flight_id = ? AND departure_date = ? AND airplane_id = ?",
		flight.FlightID, flight.DepartureDate, flight.AirplaneID).
		Find(&tickets).Error
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	taken := make(map[string]bool, len(tickets))
	for _, t := range tickets {
		taken[seatKey(t.RowNum, t.ColumnNum)] = true
	}

	rows := make(map[int]map[string]SeatStatus)
	maxRow := 0
	for _, seat := range seats {
		if rows[seat.RowNum] == nil {
			rows[seat.RowNum] = make(map[string]SeatStatus)
		}
		rows[seat.RowNum][seat.ColumnNum] = SeatStatus{
			RowNum:    seat.RowNum,
			ColumnNum: seat.ColumnNum,
			ClassType: seat.ClassType,
			Taken:     taken[seatKey(seat.RowNum, seat.ColumnNum)],
		}
		if seat.RowNum > maxRow {
			maxRow = seat.RowNum
		}
	}

	return &SeatMap{
		Flight:   flight,
		Airplane: airplane,
		Rows:     rows,
		MaxRow:   maxRow,
	}, nil
}

func seatKey(row int, column string) string {
	return fmt.Sprintf("%d-%s", row, column)
}
