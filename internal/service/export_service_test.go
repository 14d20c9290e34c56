package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/classedgee/scheduler-api/internal/dto"
	"github.com/classedgee/scheduler-api/internal/models"
	appErrors "github.com/classedgee/scheduler-api/pkg/errors"
)

func newExportFixture() (*ExportService, *stubRunRepo) {
	runs := newStubRunRepo()
	runs.runs["run-1"] = &models.ScheduleRun{ID: "run-1", Status: models.ScheduleRunStatusDraft}
	assignments := &stubAssignmentRepo{details: []models.AssignmentDetail{
		{
			Assignment:  models.Assignment{ID: "det-1", RunID: "run-1", DayOfWeek: 1},
			SubjectName: "Programming",
			FacultyName: "A. Turing",
			RoomNumber:  "101",
			SectionName: "A",
			StartTime:   "09:00",
			EndTime:     "09:50",
		},
		{
			Assignment:  models.Assignment{ID: "det-2", RunID: "run-1", DayOfWeek: 3},
			SubjectName: "Databases",
			FacultyName: "G. Hopper",
			RoomNumber:  "102",
			SectionName: "A",
			StartTime:   "10:00",
			EndTime:     "10:50",
		},
	}}
	return NewExportService(runs, assignments, "Weekly Timetable", zap.NewNop(), nil, nil), runs
}

func TestExportJSON(t *testing.T) {
	svc, _ := newExportFixture()

	result, err := svc.Export(context.Background(), "run-1", ExportFormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "application/json", result.ContentType)
	assert.Equal(t, "schedule-run-1.json", result.Filename)

	var decoded struct {
		Run  models.ScheduleRun `json:"run"`
		Rows []struct {
			Day     int    `json:"day"`
			Subject string `json:"subject"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(result.Payload, &decoded))
	assert.Equal(t, "run-1", decoded.Run.ID)
	require.Len(t, decoded.Rows, 2)
	assert.Equal(t, "Programming", decoded.Rows[0].Subject)
}

func TestExportCSV(t *testing.T) {
	svc, _ := newExportFixture()

	result, err := svc.Export(context.Background(), "run-1", ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)

	lines := strings.Split(strings.TrimSpace(string(result.Payload)), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Day")
	assert.Contains(t, lines[1], "Monday")
	assert.Contains(t, lines[2], "Wednesday")
}

func TestExportPDF(t *testing.T) {
	svc, _ := newExportFixture()

	result, err := svc.Export(context.Background(), "run-1", ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Payload), "%PDF"))
}

// Generates a multi-section run, exports it as JSON and rebuilds per-cell
// occupancy from the exported rows alone. The rebuilt timetable must match
// the committed assignments exactly, with every faculty, room and section
// booked at most once per (day, start time) cell.
func TestExportRoundTripReproducesOccupancy(t *testing.T) {
	catalog := feasibleCatalog()
	catalog.Sections = append(catalog.Sections, models.Section{ID: "sec-2", Name: "B"})
	catalog.Rooms = append(catalog.Rooms, models.Room{ID: "room-2", RoomNumber: "102", Status: models.RoomStatusAvailable})
	catalog.Subjects[0].EligibleFaculty = append(catalog.Subjects[0].EligibleFaculty,
		models.Faculty{ID: "fac-2", FullName: "G. Hopper", MaxWeeklyHours: 20})

	svc, runs, assignments, _, mock := newGenerator(t, catalog)
	mock.ExpectBegin()
	mock.ExpectCommit()

	result, err := svc.Generate(context.Background(), generateRequest())
	require.NoError(t, err)
	require.Equal(t, 6, result.Committed)

	// Project the committed rows into the detail view the export reads,
	// labelled with the raw IDs so exported rows can be matched back.
	slotByID := map[string]models.Timeslot{}
	for _, slot := range catalog.Timeslots {
		slotByID[slot.ID] = slot
	}
	for _, a := range assignments.inserted {
		slot := slotByID[a.TimeslotID]
		assignments.details = append(assignments.details, models.AssignmentDetail{
			Assignment:  a,
			SubjectName: a.SubjectID,
			FacultyName: a.FacultyID,
			RoomNumber:  a.RoomID,
			SectionName: a.SectionID,
			StartTime:   slot.StartTime,
			EndTime:     slot.EndTime,
		})
	}

	exporter := NewExportService(runs, assignments, "Weekly Timetable", zap.NewNop(), nil, nil)
	exported, err := exporter.Export(context.Background(), result.RunID, ExportFormatJSON)
	require.NoError(t, err)

	var decoded struct {
		Rows []dto.ExportRow `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(exported.Payload, &decoded))
	require.Len(t, decoded.Rows, len(assignments.inserted))

	type cell struct {
		day   int
		start string
	}
	booked := map[string]map[cell]bool{}
	exportedSet := map[string]bool{}
	for _, row := range decoded.Rows {
		c := cell{row.Day, row.StartTime}
		for _, id := range []string{row.Faculty, row.Room, row.Section} {
			if booked[id] == nil {
				booked[id] = map[cell]bool{}
			}
			assert.False(t, booked[id][c], "double booking for %s at %+v", id, c)
			booked[id][c] = true
		}
		exportedSet[fmt.Sprintf("%d|%s|%s|%s|%s", row.Day, row.StartTime, row.Faculty, row.Room, row.Section)] = true
	}

	committedSet := map[string]bool{}
	for _, a := range assignments.inserted {
		committedSet[fmt.Sprintf("%d|%s|%s|%s|%s", a.DayOfWeek, slotByID[a.TimeslotID].StartTime, a.FacultyID, a.RoomID, a.SectionID)] = true
	}
	assert.Equal(t, committedSet, exportedSet)
}

func TestExportUnknownFormat(t *testing.T) {
	svc, _ := newExportFixture()

	_, err := svc.Export(context.Background(), "run-1", "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportUnknownRun(t *testing.T) {
	svc, _ := newExportFixture()

	_, err := svc.Export(context.Background(), "missing", ExportFormatJSON)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
