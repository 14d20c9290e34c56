package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/classedgee/scheduler-api/internal/models"
)

const uniqueViolation = "23505"

// AssignmentRepository persists schedule details and class occurrences.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository creates a new assignment repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

const insertAssignmentQuery = `INSERT INTO schedule_details (id, schedule_id, day_of_week, timeslot_id, subject_id, faculty_id, room_id, section_id, created_at)
VALUES (:id, :schedule_id, :day_of_week, :timeslot_id, :subject_id, :faculty_id, :room_id, :section_id, :created_at)`

// BulkInsert writes assignment rows, skipping duplicates on the natural key
// (schedule_id, faculty_id, timeslot_id, day_of_week). It returns how many
// rows were written and how many were skipped so callers can audit the skips.
func (r *AssignmentRepository) BulkInsert(ctx context.Context, exec sqlx.ExtContext, assignments []models.Assignment) (int, int, error) {
	target := r.exec(exec)
	now := time.Now().UTC()

	const query = insertAssignmentQuery + ` ON CONFLICT (schedule_id, faculty_id, timeslot_id, day_of_week) DO NOTHING`

	inserted, skipped := 0, 0
	for i := range assignments {
		row := &assignments[i]
		if row.ID == "" {
			row.ID = uuid.NewString()
		}
		if row.CreatedAt.IsZero() {
			row.CreatedAt = now
		}
		result, err := sqlx.NamedExecContext(ctx, target, query, row)
		if err != nil {
			return inserted, skipped, fmt.Errorf("insert schedule detail: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return inserted, skipped, fmt.Errorf("insert schedule detail result: %w", err)
		}
		if affected == 0 {
			// Clear the ID so downstream fan-out never references a row
			// that was dropped as a duplicate.
			row.ID = ""
			skipped++
			continue
		}
		inserted++
	}
	return inserted, skipped, nil
}

// Insert writes a single assignment. Unlike BulkInsert, a duplicate natural
// key is surfaced to the caller rather than skipped.
func (r *AssignmentRepository) Insert(ctx context.Context, assignment *models.Assignment) error {
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = time.Now().UTC()
	}
	if _, err := r.db.NamedExecContext(ctx, insertAssignmentQuery, assignment); err != nil {
		return fmt.Errorf("insert schedule detail: %w", err)
	}
	return nil
}

// IsDuplicateKey reports whether err stems from a unique constraint.
func IsDuplicateKey(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}

// ExistsFacultyAt reports whether a faculty member already holds an
// assignment at the timeslot inside the run.
func (r *AssignmentRepository) ExistsFacultyAt(ctx context.Context, runID, timeslotID, facultyID string) (bool, error) {
	const query = `SELECT 1 FROM schedule_details WHERE schedule_id = $1 AND timeslot_id = $2 AND faculty_id = $3 LIMIT 1`
	var one int
	err := r.db.GetContext(ctx, &one, query, runID, timeslotID, facultyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check faculty occupancy: %w", err)
	}
	return true, nil
}

// ExistsRoomAt reports whether a room already holds an assignment at the
// timeslot inside the run.
func (r *AssignmentRepository) ExistsRoomAt(ctx context.Context, runID, timeslotID, roomID string) (bool, error) {
	const query = `SELECT 1 FROM schedule_details WHERE schedule_id = $1 AND timeslot_id = $2 AND room_id = $3 LIMIT 1`
	var one int
	err := r.db.GetContext(ctx, &one, query, runID, timeslotID, roomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check room occupancy: %w", err)
	}
	return true, nil
}

// ExistsSectionAt reports whether a section already holds an assignment at
// the timeslot inside the run.
func (r *AssignmentRepository) ExistsSectionAt(ctx context.Context, runID, timeslotID, sectionID string) (bool, error) {
	const query = `SELECT 1 FROM schedule_details WHERE schedule_id = $1 AND timeslot_id = $2 AND section_id = $3 LIMIT 1`
	var one int
	err := r.db.GetContext(ctx, &one, query, runID, timeslotID, sectionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check section occupancy: %w", err)
	}
	return true, nil
}

// ListDetailsByRun returns every assignment of a run joined with readable
// names, ordered by (day, start_time) for timetable rendering.
func (r *AssignmentRepository) ListDetailsByRun(ctx context.Context, runID string) ([]models.AssignmentDetail, error) {
	const query = `SELECT d.id, d.schedule_id, d.day_of_week, d.timeslot_id, d.subject_id, d.faculty_id, d.room_id, d.section_id, d.created_at,
	s.name AS subject_name, f.full_name AS faculty_name, r.room_number AS room_number, sec.name AS section_name,
	t.start_time AS start_time, t.end_time AS end_time
FROM schedule_details d
JOIN subjects s ON s.id = d.subject_id
JOIN faculty f ON f.id = d.faculty_id
JOIN rooms r ON r.id = d.room_id
JOIN sections sec ON sec.id = d.section_id
JOIN timeslots t ON t.id = d.timeslot_id
WHERE d.schedule_id = $1
ORDER BY d.day_of_week ASC, t.start_time ASC`
	var details []models.AssignmentDetail
	if err := r.db.SelectContext(ctx, &details, query, runID); err != nil {
		return nil, fmt.Errorf("list schedule details: %w", err)
	}
	return details, nil
}

// InsertOccurrences writes dated class rows for committed assignments.
func (r *AssignmentRepository) InsertOccurrences(ctx context.Context, exec sqlx.ExtContext, occurrences []models.ClassOccurrence) error {
	target := r.exec(exec)
	const query = `INSERT INTO classes (id, detail_id, faculty_id, room_id, timeslot_id, section_id, semester, academic_year, date_of_class, is_active)
VALUES (:id, :detail_id, :faculty_id, :room_id, :timeslot_id, :section_id, :semester, :academic_year, :date_of_class, :is_active)`
	for i := range occurrences {
		row := &occurrences[i]
		if row.ID == "" {
			row.ID = uuid.NewString()
		}
		if _, err := sqlx.NamedExecContext(ctx, target, query, row); err != nil {
			return fmt.Errorf("insert class occurrence: %w", err)
		}
	}
	return nil
}
