package models

import "time"

// Teaching days run Monday (1) through Friday (5); 0 and 6 are reserved
// for non-teaching use.
const (
	FirstTeachingDay = 1
	LastTeachingDay  = 5
	TeachingDays     = 5
)

// Timeslot is one cell of the weekly grid shared by a semester/year pair.
type Timeslot struct {
	ID           string    `db:"id" json:"id"`
	DayOfWeek    int       `db:"day_of_week" json:"day_of_week"`
	StartTime    string    `db:"start_time" json:"start_time"`
	EndTime      string    `db:"end_time" json:"end_time"`
	Semester     int       `db:"semester" json:"semester"`
	AcademicYear int       `db:"academic_year" json:"academic_year"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// IsTeachingDay reports whether a day index falls inside the teaching week.
func IsTeachingDay(day int) bool {
	return day >= FirstTeachingDay && day <= LastTeachingDay
}
