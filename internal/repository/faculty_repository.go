package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/classedgee/scheduler-api/internal/models"
)

// FacultyRepository resolves faculty records and subject eligibility.
type FacultyRepository struct {
	db *sqlx.DB
}

// NewFacultyRepository creates a new faculty repository.
func NewFacultyRepository(db *sqlx.DB) *FacultyRepository {
	return &FacultyRepository{db: db}
}

const facultyColumns = `f.id, f.full_name, f.department_id, f.max_weekly_hours, f.preferred_slots, f.unavailable_days, f.active, f.created_at, f.updated_at`

// ListEligibleForSubject returns active faculty mapped to a subject,
// ordered by faculty id so search enumeration is deterministic.
func (r *FacultyRepository) ListEligibleForSubject(ctx context.Context, subjectID string) ([]models.Faculty, error) {
	query := fmt.Sprintf(`SELECT %s
FROM faculty f
JOIN faculty_subject_mapping m ON m.faculty_id = f.id
WHERE m.subject_id = $1 AND m.status = 'active' AND f.active = TRUE
ORDER BY f.id ASC`, facultyColumns)
	var faculty []models.Faculty
	if err := r.db.SelectContext(ctx, &faculty, query, subjectID); err != nil {
		return nil, fmt.Errorf("list eligible faculty: %w", err)
	}
	return faculty, nil
}

// MapEligibleForSubjects returns eligible faculty for many subjects at once,
// keyed by subject id.
func (r *FacultyRepository) MapEligibleForSubjects(ctx context.Context, subjectIDs []string) (map[string][]models.Faculty, error) {
	result := make(map[string][]models.Faculty, len(subjectIDs))
	if len(subjectIDs) == 0 {
		return result, nil
	}
	query, args, err := sqlx.In(fmt.Sprintf(`SELECT m.subject_id AS subject_id, %s
FROM faculty f
JOIN faculty_subject_mapping m ON m.faculty_id = f.id
WHERE m.subject_id IN (?) AND m.status = 'active' AND f.active = TRUE
ORDER BY m.subject_id ASC, f.id ASC`, facultyColumns), subjectIDs)
	if err != nil {
		return nil, fmt.Errorf("build eligibility query: %w", err)
	}
	query = r.db.Rebind(query)

	var rows []struct {
		SubjectID string `db:"subject_id"`
		models.Faculty
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("map eligible faculty: %w", err)
	}
	for _, row := range rows {
		result[row.SubjectID] = append(result[row.SubjectID], row.Faculty)
	}
	return result, nil
}

// FindByID loads one faculty record.
func (r *FacultyRepository) FindByID(ctx context.Context, id string) (*models.Faculty, error) {
	query := fmt.Sprintf(`SELECT %s FROM faculty f WHERE f.id = $1`, facultyColumns)
	var faculty models.Faculty
	if err := r.db.GetContext(ctx, &faculty, query, id); err != nil {
		return nil, err
	}
	return &faculty, nil
}
