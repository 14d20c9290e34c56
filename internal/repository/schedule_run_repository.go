package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/classedgee/scheduler-api/internal/models"
)

// ScheduleRunRepository manages schedule run headers.
type ScheduleRunRepository struct {
	db *sqlx.DB
}

// NewScheduleRunRepository creates a new schedule run repository.
func NewScheduleRunRepository(db *sqlx.DB) *ScheduleRunRepository {
	return &ScheduleRunRepository{db: db}
}

func (r *ScheduleRunRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// Create inserts a run header. The header must exist before any detail rows
// reference it.
func (r *ScheduleRunRepository) Create(ctx context.Context, exec sqlx.ExtContext, run *models.ScheduleRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if run.CreatedAt.IsZero() {
		run.CreatedAt = now
	}
	run.UpdatedAt = now
	if run.Status == "" {
		run.Status = models.ScheduleRunStatusDraft
	}

	const query = `INSERT INTO schedule_runs (id, department_id, academic_year, semester, batch_year, section_id, status, created_by, created_at, updated_at)
VALUES (:id, :department_id, :academic_year, :semester, :batch_year, :section_id, :status, :created_by, :created_at, :updated_at)`
	if _, err := sqlx.NamedExecContext(ctx, r.exec(exec), query, run); err != nil {
		return fmt.Errorf("create schedule run: %w", err)
	}
	return nil
}

// FindByID loads a run header.
func (r *ScheduleRunRepository) FindByID(ctx context.Context, id string) (*models.ScheduleRun, error) {
	const query = `SELECT id, department_id, academic_year, semester, batch_year, section_id, status, created_by, created_at, updated_at
FROM schedule_runs WHERE id = $1`
	var run models.ScheduleRun
	if err := r.db.GetContext(ctx, &run, query, id); err != nil {
		return nil, err
	}
	return &run, nil
}

// LatestBySection returns the newest run covering a section.
func (r *ScheduleRunRepository) LatestBySection(ctx context.Context, sectionID string) (*models.ScheduleRun, error) {
	const query = `SELECT id, department_id, academic_year, semester, batch_year, section_id, status, created_by, created_at, updated_at
FROM schedule_runs WHERE section_id = $1 OR section_id IS NULL
ORDER BY created_at DESC LIMIT 1`
	var run models.ScheduleRun
	if err := r.db.GetContext(ctx, &run, query, sectionID); err != nil {
		return nil, err
	}
	return &run, nil
}

// UpdateStatus transitions a run's lifecycle state.
func (r *ScheduleRunRepository) UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id string, status models.ScheduleRunStatus) error {
	const query = `UPDATE schedule_runs SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := r.exec(exec).ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update schedule run status: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("schedule run %s not found", id)
	}
	return nil
}

// Delete removes a run and cascades to its details.
func (r *ScheduleRunRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM schedule_runs WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete schedule run: %w", err)
	}
	return nil
}
