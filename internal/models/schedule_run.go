package models

import "time"

// ScheduleRunStatus is the lifecycle state of a scheduling run.
// The "mannual" spelling is kept for compatibility with existing rows.
type ScheduleRunStatus string

const (
	ScheduleRunStatusDraft   ScheduleRunStatus = "draft"
	ScheduleRunStatusMannual ScheduleRunStatus = "mannual"
	ScheduleRunStatusFinal   ScheduleRunStatus = "final"
)

// ScheduleRun is the header grouping every assignment produced by one
// invocation of the engine or one manual session.
type ScheduleRun struct {
	ID           string            `db:"id" json:"id"`
	DepartmentID string            `db:"department_id" json:"department_id"`
	AcademicYear int               `db:"academic_year" json:"academic_year"`
	Semester     int               `db:"semester" json:"semester"`
	BatchYear    int               `db:"batch_year" json:"batch_year"`
	SectionID    *string           `db:"section_id" json:"section_id,omitempty"`
	Status       ScheduleRunStatus `db:"status" json:"status"`
	CreatedBy    string            `db:"created_by" json:"created_by"`
	CreatedAt    time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time         `db:"updated_at" json:"updated_at"`
}

// Assignment is a committed (day, timeslot, subject, faculty, room, section)
// tuple belonging to a schedule run.
type Assignment struct {
	ID         string    `db:"id" json:"id"`
	RunID      string    `db:"schedule_id" json:"schedule_id"`
	DayOfWeek  int       `db:"day_of_week" json:"day_of_week"`
	TimeslotID string    `db:"timeslot_id" json:"timeslot_id"`
	SubjectID  string    `db:"subject_id" json:"subject_id"`
	FacultyID  string    `db:"faculty_id" json:"faculty_id"`
	RoomID     string    `db:"room_id" json:"room_id"`
	SectionID  string    `db:"section_id" json:"section_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// ClassOccurrence is a dated class row derived from an assignment.
type ClassOccurrence struct {
	ID           string    `db:"id" json:"id"`
	DetailID     string    `db:"detail_id" json:"detail_id"`
	FacultyID    string    `db:"faculty_id" json:"faculty_id"`
	RoomID       string    `db:"room_id" json:"room_id"`
	TimeslotID   string    `db:"timeslot_id" json:"timeslot_id"`
	SectionID    string    `db:"section_id" json:"section_id"`
	Semester     int       `db:"semester" json:"semester"`
	AcademicYear int       `db:"academic_year" json:"academic_year"`
	DateOfClass  time.Time `db:"date_of_class" json:"date_of_class"`
	IsActive     bool      `db:"is_active" json:"is_active"`
}

// AssignmentDetail joins an assignment with human-readable names for
// timetable rendering and export.
type AssignmentDetail struct {
	Assignment
	SubjectName string `db:"subject_name" json:"subject_name"`
	FacultyName string `db:"faculty_name" json:"faculty_name"`
	RoomNumber  string `db:"room_number" json:"room_number"`
	SectionName string `db:"section_name" json:"section_name"`
	StartTime   string `db:"start_time" json:"start_time"`
	EndTime     string `db:"end_time" json:"end_time"`
}

// SubjectFulfillment reports committed versus targeted weekly sessions for
// one subject within a run.
type SubjectFulfillment struct {
	SubjectID   string `json:"subject_id"`
	SubjectName string `json:"subject_name"`
	SectionID   string `json:"section_id"`
	Target      int    `json:"target"`
	Fulfilled   int    `json:"fulfilled"`
}

// Complete reports whether the subject met its weekly quota.
func (f SubjectFulfillment) Complete() bool {
	return f.Fulfilled >= f.Target
}
