package models

// SubjectDemand pairs a subject with its derived weekly quota and the
// faculty eligible to teach it, ordered deterministically by faculty ID.
type SubjectDemand struct {
	Subject         Subject   `json:"subject"`
	TotalHours      int       `json:"total_hours"`
	WeeklyClasses   int       `json:"weekly_classes"`
	EligibleFaculty []Faculty `json:"eligible_faculty"`
}

// ResourceCatalog is the read-only input of one scheduling run: subjects
// with quotas, available rooms, the timeslot grid and the sections in scope.
type ResourceCatalog struct {
	DepartmentID string          `json:"department_id"`
	AcademicYear int             `json:"academic_year"`
	Semester     int             `json:"semester"`
	BatchYear    int             `json:"batch_year"`
	TotalWeeks   int             `json:"total_weeks"`
	Subjects     []SubjectDemand `json:"subjects"`
	Rooms        []Room          `json:"rooms"`
	Timeslots    []Timeslot      `json:"timeslots"`
	Sections     []Section       `json:"sections"`
}

// SlotsForDay returns the catalog timeslots belonging to one teaching day,
// preserving the loader's (day, start_time) ordering.
func (c *ResourceCatalog) SlotsForDay(day int) []Timeslot {
	var slots []Timeslot
	for _, slot := range c.Timeslots {
		if slot.DayOfWeek == day {
			slots = append(slots, slot)
		}
	}
	return slots
}

// TotalWeeklyDemand sums weekly class quotas over all subjects in scope.
func (c *ResourceCatalog) TotalWeeklyDemand() int {
	total := 0
	for _, demand := range c.Subjects {
		total += demand.WeeklyClasses
	}
	return total
}
