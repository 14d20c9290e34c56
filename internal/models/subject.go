package models

import "time"

// Subject represents a curriculum subject owned by a department.
type Subject struct {
	ID           string    `db:"id" json:"id"`
	Code         string    `db:"code" json:"code"`
	Name         string    `db:"name" json:"name"`
	DepartmentID string    `db:"department_id" json:"department_id"`
	SubjectType  string    `db:"subject_type" json:"subject_type"`
	Semester     int       `db:"semester" json:"semester"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Unit is a syllabus unit contributing required teaching hours to its subject.
type Unit struct {
	ID            string `db:"id" json:"id"`
	SubjectID     string `db:"subject_id" json:"subject_id"`
	Name          string `db:"name" json:"name"`
	RequiredHours int    `db:"required_hours" json:"required_hours"`
}

// TotalRequiredHours sums the required hours over a subject's units.
func TotalRequiredHours(units []Unit) int {
	total := 0
	for _, unit := range units {
		total += unit.RequiredHours
	}
	return total
}

// FacultySubjectMapping links a faculty member to a subject they may teach.
type FacultySubjectMapping struct {
	ID        string    `db:"id" json:"id"`
	FacultyID string    `db:"faculty_id" json:"faculty_id"`
	SubjectID string    `db:"subject_id" json:"subject_id"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
