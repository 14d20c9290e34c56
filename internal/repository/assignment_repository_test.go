package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classedgee/scheduler-api/internal/models"
)

func sampleAssignment(slotID string) models.Assignment {
	return models.Assignment{
		RunID:      "run-1",
		DayOfWeek:  1,
		TimeslotID: slotID,
		SubjectID:  "sub-1",
		FacultyID:  "fac-1",
		RoomID:     "room-1",
		SectionID:  "sec-1",
	}
}

func TestAssignmentRepositoryBulkInsertCountsSkips(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectExec("INSERT INTO schedule_details").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO schedule_details").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assignments := []models.Assignment{sampleAssignment("slot-1"), sampleAssignment("slot-2")}
	inserted, skipped, err := repo.BulkInsert(context.Background(), nil, assignments)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
	assert.Equal(t, 1, skipped)
	assert.NotEmpty(t, assignments[0].ID)
	assert.Empty(t, assignments[1].ID, "skipped rows must not keep an id")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryInsertSurfacesDuplicate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectExec("INSERT INTO schedule_details").
		WillReturnError(&pq.Error{Code: "23505"})

	assignment := sampleAssignment("slot-1")
	err := repo.Insert(context.Background(), &assignment)
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryExistsFacultyAt(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectQuery("SELECT 1 FROM schedule_details WHERE schedule_id").
		WithArgs("run-1", "slot-1", "fac-1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	busy, err := repo.ExistsFacultyAt(context.Background(), "run-1", "slot-1", "fac-1")
	require.NoError(t, err)
	assert.True(t, busy)

	mock.ExpectQuery("SELECT 1 FROM schedule_details WHERE schedule_id").
		WithArgs("run-1", "slot-2", "fac-1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	busy, err = repo.ExistsFacultyAt(context.Background(), "run-1", "slot-2", "fac-1")
	require.NoError(t, err)
	assert.False(t, busy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryListDetailsByRun(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	columns := []string{"id", "schedule_id", "day_of_week", "timeslot_id", "subject_id", "faculty_id", "room_id", "section_id", "created_at",
		"subject_name", "faculty_name", "room_number", "section_name", "start_time", "end_time"}
	rows := sqlmock.NewRows(columns).
		AddRow("det-1", "run-1", 1, "slot-1", "sub-1", "fac-1", "room-1", "sec-1", time.Now(),
			"Programming", "A. Turing", "101", "A", "09:00", "09:50")
	mock.ExpectQuery("FROM schedule_details d").
		WithArgs("run-1").
		WillReturnRows(rows)

	details, err := repo.ListDetailsByRun(context.Background(), "run-1")
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "Programming", details[0].SubjectName)
	assert.Equal(t, "09:00", details[0].StartTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryInsertOccurrences(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectExec("INSERT INTO classes").
		WillReturnResult(sqlmock.NewResult(1, 1))

	occurrences := []models.ClassOccurrence{{
		DetailID:     "det-1",
		FacultyID:    "fac-1",
		RoomID:       "room-1",
		TimeslotID:   "slot-1",
		SectionID:    "sec-1",
		Semester:     3,
		AcademicYear: 2025,
		DateOfClass:  time.Now(),
		IsActive:     true,
	}}
	err := repo.InsertOccurrences(context.Background(), nil, occurrences)
	require.NoError(t, err)
	assert.NotEmpty(t, occurrences[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
