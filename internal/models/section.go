package models

import "time"

// Section is a student cohort for a department/batch-year/semester pair;
// the unit that actually attends scheduled classes.
type Section struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	DepartmentID string    `db:"department_id" json:"department_id"`
	BatchYear    int       `db:"batch_year" json:"batch_year"`
	Semester     int       `db:"semester" json:"semester"`
	AcademicYear int       `db:"academic_year" json:"academic_year"`
	StudentCount int       `db:"student_count" json:"student_count"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
