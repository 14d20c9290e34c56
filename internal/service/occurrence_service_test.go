package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classedgee/scheduler-api/internal/models"
)

func TestBuildOccurrencesFansOutWeeklyDates(t *testing.T) {
	// 2026-08-24 is a Monday.
	from := time.Date(2026, time.August, 24, 10, 30, 0, 0, time.UTC)
	assignments := []models.Assignment{
		{ID: "det-1", DayOfWeek: 1, TimeslotID: "slot-1", FacultyID: "fac-1", RoomID: "room-1", SectionID: "sec-1"},
		{ID: "det-2", DayOfWeek: 3, TimeslotID: "slot-2", FacultyID: "fac-1", RoomID: "room-1", SectionID: "sec-1"},
	}

	occurrences := BuildOccurrences(assignments, 3, 2025, 4, from)
	require.Len(t, occurrences, 8)

	monday := time.Date(2026, time.August, 24, 0, 0, 0, 0, time.UTC)
	for week := 0; week < 4; week++ {
		occ := occurrences[week]
		assert.Equal(t, "det-1", occ.DetailID)
		assert.Equal(t, monday.AddDate(0, 0, 7*week), occ.DateOfClass)
		assert.True(t, occ.IsActive)
		assert.Equal(t, 3, occ.Semester)
		assert.Equal(t, 2025, occ.AcademicYear)
	}

	wednesday := monday.AddDate(0, 0, 2)
	for week := 0; week < 4; week++ {
		occ := occurrences[4+week]
		assert.Equal(t, "det-2", occ.DetailID)
		assert.Equal(t, wednesday.AddDate(0, 0, 7*week), occ.DateOfClass)
	}
}

func TestBuildOccurrencesWrapsToNextWeek(t *testing.T) {
	// 2026-08-28 is a Friday; a Monday class first meets the following week.
	friday := time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC)
	occurrences := BuildOccurrences([]models.Assignment{
		{ID: "det-1", DayOfWeek: 1},
	}, 3, 2025, 1, friday)

	require.Len(t, occurrences, 1)
	assert.Equal(t, time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC), occurrences[0].DateOfClass)
}

func TestBuildOccurrencesSkipsDuplicateDroppedRows(t *testing.T) {
	occurrences := BuildOccurrences([]models.Assignment{
		{ID: "", DayOfWeek: 1},
		{ID: "det-1", DayOfWeek: 2},
	}, 3, 2025, 2, time.Date(2026, time.August, 24, 0, 0, 0, 0, time.UTC))

	require.Len(t, occurrences, 2)
	for _, occ := range occurrences {
		assert.Equal(t, "det-1", occ.DetailID)
	}
}
