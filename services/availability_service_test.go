package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flytau/flytau-api/models"
)

func TestAvailableResources_PlaneConflicts(t *testing.T) {
	db := setupTestDB(t)
	date := futureDate(10)

	seedSmallPlane(t, db, "SP-1")
	plane2 := models.Airplane{AirplaneID: "SP-2", Manufacturer: "Embraer", Size: models.AirplaneSizeSmall}
	db.Create(&plane2)
	seedRoute(t, db, "TLV", "ATH", 120)

	// SP-1 flies 10:00 for 120 minutes; with the 60-minute turnaround pad it
	// is occupied until 13:00.
	seedFlight(t, db, "LY001", date, "10:00", "SP-1", "TLV", "ATH", models.FlightStatusActive, 1)

	svc := NewAvailabilityService(db)

	tests := []struct {
		name       string
		startTime  string
		wantPlanes []string
	}{
		{
			name:       "Overlapping window excludes the busy plane",
			startTime:  "12:00",
			wantPlanes: []string{"SP-2"},
		},
		{
			name:       "Window after the padded occupancy frees the plane",
			startTime:  "14:00",
			wantPlanes: []string{"SP-1", "SP-2"},
		},
		{
			name:       "Window just before departure still conflicts via turnaround",
			startTime:  "09:30",
			wantPlanes: []string{"SP-2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resources, err := svc.AvailableResources(date, tt.startTime, 60)
			assert.NoError(t, err)

			var ids []string
			for _, p := range resources.Planes {
				ids = append(ids, p.AirplaneID)
			}
			assert.Equal(t, tt.wantPlanes, ids)
		})
	}
}

func TestAvailableResources_CrewDayExclusion(t *testing.T) {
	db := setupTestDB(t)
	date := futureDate(10)

	seedSmallPlane(t, db, "SP-1")
	seedRoute(t, db, "TLV", "ATH", 120)
	seedFlight(t, db, "LY001", date, "08:00", "SP-1", "TLV", "ATH", models.FlightStatusActive, 1)

	seedPilot(t, db, "P-001", false)
	seedPilot(t, db, "P-002", false)
	seedAttendant(t, db, "FA-001", false)

	// P-001 already flies that day; even a non-overlapping evening window
	// excludes them.
	db.Create(&models.PilotAssignment{PilotID: "P-001", FlightID: "LY001", DepartureDate: date})

	svc := NewAvailabilityService(db)
	resources, err := svc.AvailableResources(date, "20:00", 60)
	assert.NoError(t, err)

	assert.Len(t, resources.Pilots, 1)
	assert.Equal(t, "P-002", resources.Pilots[0].PilotID)
	assert.Len(t, resources.Attendants, 1)
}

func TestAvailableResources_LongHaulFilters(t *testing.T) {
	db := setupTestDB(t)
	date := futureDate(10)

	seedSmallPlane(t, db, "SP-1")
	seedBigPlane(t, db, "BP-1")
	seedPilot(t, db, "P-001", true)
	seedPilot(t, db, "P-002", false)
	seedAttendant(t, db, "FA-001", true)
	seedAttendant(t, db, "FA-002", false)

	svc := NewAvailabilityService(db)

	// 400 minutes is past the long-haul threshold.
	resources, err := svc.AvailableResources(date, "10:00", 400)
	assert.NoError(t, err)

	assert.True(t, resources.LongHaul)
	assert.Len(t, resources.Planes, 1)
	assert.Equal(t, "BP-1", resources.Planes[0].AirplaneID)
	assert.Len(t, resources.Pilots, 1)
	assert.Equal(t, "P-001", resources.Pilots[0].PilotID)
	assert.Len(t, resources.Attendants, 1)
	assert.Equal(t, "FA-001", resources.Attendants[0].AttendantID)
}

func TestAvailableResources_InvalidInput(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAvailabilityService(db)

	_, err := svc.AvailableResources(futureDate(1), "not-a-time", 60)
	assert.Error(t, err)

	_, err = svc.AvailableResources(futureDate(1), "10:00", 0)
	assert.Error(t, err)
}

func TestPlaneConflict(t *testing.T) {
	db := setupTestDB(t)
	date := futureDate(10)

	seedSmallPlane(t, db, "SP-1")
	seedRoute(t, db, "TLV", "ATH", 120)
	seedFlight(t, db, "LY001", date, "10:00", "SP-1", "TLV", "ATH", models.FlightStatusActive, 1)
	// Cancelled flights do not occupy the plane.
	seedFlight(t, db, "LY002", date, "16:00", "SP-1", "TLV", "ATH", models.FlightStatusCancelled, 2)

	svc := NewAvailabilityService(db)

	conflict, err := svc.PlaneConflict("SP-1", date, "11:00", 60)
	assert.NoError(t, err)
	assert.Equal(t, "LY001", conflict)

	conflict, err = svc.PlaneConflict("SP-1", date, "16:30", 60)
	assert.NoError(t, err)
	assert.Equal(t, "", conflict)

	conflict, err = svc.PlaneConflict("SP-2", date, "11:00", 60)
	assert.NoError(t, err)
	assert.Equal(t, "", conflict)
}
