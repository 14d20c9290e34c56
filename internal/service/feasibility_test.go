package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classedgee/scheduler-api/internal/models"
)

func feasibleCatalog() *models.ResourceCatalog {
	return &models.ResourceCatalog{
		DepartmentID: "dept-1",
		AcademicYear: 2025,
		Semester:     3,
		BatchYear:    2024,
		TotalWeeks:   12,
		Subjects: []models.SubjectDemand{
			{
				Subject:       models.Subject{ID: "sub-1", Code: "CS101", Name: "Programming"},
				TotalHours:    36,
				WeeklyClasses: 3,
				EligibleFaculty: []models.Faculty{
					{ID: "fac-1", FullName: "A. Turing", MaxWeeklyHours: 20},
				},
			},
		},
		Rooms: []models.Room{
			{ID: "room-1", RoomNumber: "101", Status: models.RoomStatusAvailable},
		},
		Timeslots: weeklyGrid(2),
		Sections: []models.Section{
			{ID: "sec-1", Name: "A"},
		},
	}
}

// weeklyGrid builds slotsPerDay slots for each teaching day, ordered like the
// repository returns them.
func weeklyGrid(slotsPerDay int) []models.Timeslot {
	starts := []string{"09:00", "10:00", "11:00", "12:00", "14:00", "15:00"}
	var slots []models.Timeslot
	for day := models.FirstTeachingDay; day <= models.LastTeachingDay; day++ {
		for i := 0; i < slotsPerDay; i++ {
			slots = append(slots, models.Timeslot{
				ID:           slotID(day, i),
				DayOfWeek:    day,
				StartTime:    starts[i],
				EndTime:      starts[i] + ":50",
				Semester:     3,
				AcademicYear: 2025,
			})
		}
	}
	return slots
}

func slotID(day, index int) string {
	return string(rune('a'+day)) + "-" + string(rune('0'+index))
}

func TestCheckFeasibilityPasses(t *testing.T) {
	report := CheckFeasibility(feasibleCatalog())
	assert.True(t, report.Feasible)
	assert.Empty(t, report.Issues)
	assert.Equal(t, 3, report.WeeklyDemand)
	assert.Equal(t, 10, report.SlotsAvailable)
	assert.Equal(t, 1, report.RoomsAvailable)
	assert.Equal(t, 1, report.FacultyAvailable)
}

func TestCheckFeasibilityNoEligibleFaculty(t *testing.T) {
	catalog := feasibleCatalog()
	catalog.Subjects[0].EligibleFaculty = nil

	report := CheckFeasibility(catalog)
	require.False(t, report.Feasible)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, IssueNoEligibleFaculty, report.Issues[0].Code)
	assert.Equal(t, 3, report.Issues[0].Deficit)
}

func TestCheckFeasibilityNoTimeslots(t *testing.T) {
	catalog := feasibleCatalog()
	catalog.Timeslots = nil

	report := CheckFeasibility(catalog)
	require.False(t, report.Feasible)
	assert.Equal(t, IssueNoTimeslots, report.Issues[0].Code)
}

func TestCheckFeasibilitySectionSlotDeficit(t *testing.T) {
	catalog := feasibleCatalog()
	catalog.Subjects[0].WeeklyClasses = 12
	catalog.Subjects[0].EligibleFaculty[0].MaxWeeklyHours = 40

	report := CheckFeasibility(catalog)
	require.False(t, report.Feasible)

	var found bool
	for _, issue := range report.Issues {
		if issue.Code == IssueSectionSlots {
			found = true
			assert.Equal(t, 2, issue.Deficit)
		}
	}
	assert.True(t, found)
}

func TestCheckFeasibilityRoomCapacityDeficit(t *testing.T) {
	catalog := feasibleCatalog()
	// Three sections sharing one room: 9 weekly classes against 10 room-slots
	// still fits, so raise demand past capacity.
	catalog.Sections = append(catalog.Sections,
		models.Section{ID: "sec-2", Name: "B"},
		models.Section{ID: "sec-3", Name: "C"},
		models.Section{ID: "sec-4", Name: "D"},
	)
	catalog.Subjects[0].EligibleFaculty = append(catalog.Subjects[0].EligibleFaculty,
		models.Faculty{ID: "fac-2", FullName: "G. Hopper", MaxWeeklyHours: 20})

	report := CheckFeasibility(catalog)
	require.False(t, report.Feasible)

	var found bool
	for _, issue := range report.Issues {
		if issue.Code == IssueRoomCapacity {
			found = true
			assert.Equal(t, 2, issue.Deficit)
		}
	}
	assert.True(t, found)
}

func TestCheckFeasibilityFacultyCapacityDeficit(t *testing.T) {
	catalog := feasibleCatalog()
	catalog.Sections = append(catalog.Sections, models.Section{ID: "sec-2", Name: "B"})
	catalog.Subjects[0].EligibleFaculty[0].MaxWeeklyHours = 4
	catalog.Rooms = append(catalog.Rooms, models.Room{ID: "room-2", RoomNumber: "102", Status: models.RoomStatusAvailable})

	report := CheckFeasibility(catalog)
	require.False(t, report.Feasible)

	var found bool
	for _, issue := range report.Issues {
		if issue.Code == IssueFacultyCapacity {
			found = true
			assert.Equal(t, 2, issue.Deficit)
		}
	}
	assert.True(t, found)
}
