package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/classedgee/scheduler-api/internal/models"
)

// TimeslotRepository reads the shared weekly timeslot grid.
type TimeslotRepository struct {
	db *sqlx.DB
}

// NewTimeslotRepository creates a new timeslot repository.
func NewTimeslotRepository(db *sqlx.DB) *TimeslotRepository {
	return &TimeslotRepository{db: db}
}

// ListForTerm returns teaching-day timeslots for a semester/year pair,
// ordered by (day_of_week, start_time).
func (r *TimeslotRepository) ListForTerm(ctx context.Context, semester, academicYear int) ([]models.Timeslot, error) {
	const query = `SELECT id, day_of_week, start_time, end_time, semester, academic_year, created_at
FROM timeslots
WHERE semester = $1 AND academic_year = $2 AND day_of_week BETWEEN $3 AND $4
ORDER BY day_of_week ASC, start_time ASC`
	var slots []models.Timeslot
	if err := r.db.SelectContext(ctx, &slots, query, semester, academicYear, models.FirstTeachingDay, models.LastTeachingDay); err != nil {
		return nil, fmt.Errorf("list timeslots: %w", err)
	}
	return slots, nil
}

// FindByID loads one timeslot.
func (r *TimeslotRepository) FindByID(ctx context.Context, id string) (*models.Timeslot, error) {
	const query = `SELECT id, day_of_week, start_time, end_time, semester, academic_year, created_at
FROM timeslots WHERE id = $1`
	var slot models.Timeslot
	if err := r.db.GetContext(ctx, &slot, query, id); err != nil {
		return nil, err
	}
	return &slot, nil
}
