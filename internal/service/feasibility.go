package service

import (
	"fmt"

	"github.com/classedgee/scheduler-api/internal/dto"
	"github.com/classedgee/scheduler-api/internal/models"
)

// Feasibility issue codes. Each carries a deficit so callers can tell how
// much supply is missing, not just that some is.
const (
	IssueNoTimeslots       = "NO_TIMESLOTS"
	IssueNoRooms           = "NO_ROOMS"
	IssueNoEligibleFaculty = "NO_ELIGIBLE_FACULTY"
	IssueSectionSlots      = "SECTION_SLOT_DEFICIT"
	IssueRoomCapacity      = "ROOM_CAPACITY_DEFICIT"
	IssueFacultyCapacity   = "FACULTY_CAPACITY_DEFICIT"
)

// CheckFeasibility runs the cheap supply/demand arithmetic that gates a
// generation run. A failing report means the greedy search cannot possibly
// place everything, so the engine refuses to start rather than commit a
// half-schedule nobody asked for.
func CheckFeasibility(catalog *models.ResourceCatalog) dto.FeasibilityReport {
	report := dto.FeasibilityReport{
		WeeklyDemand:   catalog.TotalWeeklyDemand(),
		RoomsAvailable: len(catalog.Rooms),
		SlotsAvailable: len(catalog.Timeslots),
	}

	facultySeen := map[string]struct{}{}
	for _, demand := range catalog.Subjects {
		for _, f := range demand.EligibleFaculty {
			facultySeen[f.ID] = struct{}{}
		}
	}
	report.FacultyAvailable = len(facultySeen)

	if len(catalog.Timeslots) == 0 {
		report.Issues = append(report.Issues, dto.FeasibilityIssue{
			Code:    IssueNoTimeslots,
			Message: "no timeslots defined for the term",
			Deficit: report.WeeklyDemand,
		})
	}
	if len(catalog.Rooms) == 0 {
		report.Issues = append(report.Issues, dto.FeasibilityIssue{
			Code:    IssueNoRooms,
			Message: "no available rooms",
			Deficit: report.WeeklyDemand * len(catalog.Sections),
		})
	}

	// Every subject needs at least one eligible faculty member.
	for _, demand := range catalog.Subjects {
		if demand.WeeklyClasses > 0 && len(demand.EligibleFaculty) == 0 {
			report.Issues = append(report.Issues, dto.FeasibilityIssue{
				Code:    IssueNoEligibleFaculty,
				Message: fmt.Sprintf("subject %s has no eligible faculty", demand.Subject.Code),
				Deficit: demand.WeeklyClasses * len(catalog.Sections),
			})
		}
	}

	// A section hosts at most one class per timeslot, so its weekly demand
	// cannot exceed the slot grid.
	if report.WeeklyDemand > report.SlotsAvailable && report.SlotsAvailable > 0 {
		report.Issues = append(report.Issues, dto.FeasibilityIssue{
			Code:    IssueSectionSlots,
			Message: "weekly demand per section exceeds the timeslot grid",
			Deficit: report.WeeklyDemand - report.SlotsAvailable,
		})
	}

	// Rooms bound total concurrent classes: slots x rooms across all sections.
	totalDemand := report.WeeklyDemand * len(catalog.Sections)
	roomCapacity := report.SlotsAvailable * report.RoomsAvailable
	if totalDemand > roomCapacity && roomCapacity > 0 {
		report.Issues = append(report.Issues, dto.FeasibilityIssue{
			Code:    IssueRoomCapacity,
			Message: "total weekly demand exceeds room-slot capacity",
			Deficit: totalDemand - roomCapacity,
		})
	}

	// Faculty hours bound each subject: eligible faculty can jointly teach at
	// most the sum of their weekly hour limits, capped by the slot grid.
	for _, demand := range catalog.Subjects {
		if demand.WeeklyClasses == 0 || len(demand.EligibleFaculty) == 0 {
			continue
		}
		subjectDemand := demand.WeeklyClasses * len(catalog.Sections)
		capacity := 0
		for _, f := range demand.EligibleFaculty {
			hours := f.MaxWeeklyHours
			if hours <= 0 || hours > report.SlotsAvailable {
				hours = report.SlotsAvailable
			}
			capacity += hours
		}
		if subjectDemand > capacity {
			report.Issues = append(report.Issues, dto.FeasibilityIssue{
				Code:    IssueFacultyCapacity,
				Message: fmt.Sprintf("eligible faculty for subject %s cannot cover its weekly demand", demand.Subject.Code),
				Deficit: subjectDemand - capacity,
			})
		}
	}

	report.Feasible = len(report.Issues) == 0
	return report
}
