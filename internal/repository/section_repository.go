package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/classedgee/scheduler-api/internal/models"
)

// SectionRepository provides read access to student sections.
type SectionRepository struct {
	db *sqlx.DB
}

// NewSectionRepository creates a new section repository.
func NewSectionRepository(db *sqlx.DB) *SectionRepository {
	return &SectionRepository{db: db}
}

// ListByScope returns sections for a department/batch/semester scope,
// ordered by name.
func (r *SectionRepository) ListByScope(ctx context.Context, departmentID string, batchYear, semester int) ([]models.Section, error) {
	const query = `SELECT id, name, department_id, batch_year, semester, academic_year, student_count, created_at
FROM sections WHERE department_id = $1 AND batch_year = $2 AND semester = $3 ORDER BY name ASC`
	var sections []models.Section
	if err := r.db.SelectContext(ctx, &sections, query, departmentID, batchYear, semester); err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	return sections, nil
}

// FindByID loads one section.
func (r *SectionRepository) FindByID(ctx context.Context, id string) (*models.Section, error) {
	const query = `SELECT id, name, department_id, batch_year, semester, academic_year, student_count, created_at
FROM sections WHERE id = $1`
	var section models.Section
	if err := r.db.GetContext(ctx, &section, query, id); err != nil {
		return nil, err
	}
	return &section, nil
}
