package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/classedgee/scheduler-api/internal/models"
)

// SubjectRepository provides read access to curriculum subjects and units.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository creates a new subject repository.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// ListByDepartmentSemester returns subjects taught by a department in a
// semester, ordered by code for deterministic downstream processing.
func (r *SubjectRepository) ListByDepartmentSemester(ctx context.Context, departmentID string, semester int) ([]models.Subject, error) {
	const query = `SELECT id, code, name, department_id, subject_type, semester, created_at, updated_at
FROM subjects WHERE department_id = $1 AND semester = $2 ORDER BY code ASC`
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query, departmentID, semester); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// FindByID loads a single subject.
func (r *SubjectRepository) FindByID(ctx context.Context, id string) (*models.Subject, error) {
	const query = `SELECT id, code, name, department_id, subject_type, semester, created_at, updated_at
FROM subjects WHERE id = $1`
	var subject models.Subject
	if err := r.db.GetContext(ctx, &subject, query, id); err != nil {
		return nil, err
	}
	return &subject, nil
}

// ListUnits returns the syllabus units for a set of subjects keyed by subject.
func (r *SubjectRepository) ListUnits(ctx context.Context, subjectIDs []string) (map[string][]models.Unit, error) {
	result := make(map[string][]models.Unit, len(subjectIDs))
	if len(subjectIDs) == 0 {
		return result, nil
	}
	query, args, err := sqlx.In(`SELECT id, subject_id, name, required_hours FROM units WHERE subject_id IN (?) ORDER BY id ASC`, subjectIDs)
	if err != nil {
		return nil, fmt.Errorf("build units query: %w", err)
	}
	query = r.db.Rebind(query)

	var units []models.Unit
	if err := r.db.SelectContext(ctx, &units, query, args...); err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	for _, unit := range units {
		result[unit.SubjectID] = append(result[unit.SubjectID], unit)
	}
	return result, nil
}
