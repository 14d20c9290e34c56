package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classedgee/scheduler-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var runColumns = []string{"id", "department_id", "academic_year", "semester", "batch_year", "section_id", "status", "created_by", "created_at", "updated_at"}

func TestScheduleRunRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRunRepository(db)

	mock.ExpectExec("INSERT INTO schedule_runs").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	run := &models.ScheduleRun{
		DepartmentID: "dept-1",
		AcademicYear: 2025,
		Semester:     3,
		BatchYear:    2024,
		CreatedBy:    "coord-1",
	}
	err := repo.Create(context.Background(), nil, run)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, models.ScheduleRunStatusDraft, run.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRunRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRunRepository(db)

	rows := sqlmock.NewRows(runColumns).
		AddRow("run-1", "dept-1", 2025, 3, 2024, nil, models.ScheduleRunStatusDraft, "coord-1", time.Now(), time.Now())
	mock.ExpectQuery("FROM schedule_runs WHERE id").
		WithArgs("run-1").
		WillReturnRows(rows)

	run, err := repo.FindByID(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, "run-1", run.ID)
	assert.Nil(t, run.SectionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRunRepositoryLatestBySection(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRunRepository(db)

	rows := sqlmock.NewRows(runColumns).
		AddRow("run-2", "dept-1", 2025, 3, 2024, "sec-1", models.ScheduleRunStatusFinal, "coord-1", time.Now(), time.Now())
	mock.ExpectQuery("FROM schedule_runs WHERE section_id").
		WithArgs("sec-1").
		WillReturnRows(rows)

	run, err := repo.LatestBySection(context.Background(), "sec-1")
	require.NoError(t, err)
	assert.Equal(t, "run-2", run.ID)
	require.NotNil(t, run.SectionID)
	assert.Equal(t, "sec-1", *run.SectionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRunRepositoryUpdateStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRunRepository(db)

	mock.ExpectExec("UPDATE schedule_runs SET status").
		WithArgs(models.ScheduleRunStatusFinal, sqlmock.AnyArg(), "run-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), nil, "run-1", models.ScheduleRunStatusFinal)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRunRepositoryUpdateStatusMissingRun(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRunRepository(db)

	mock.ExpectExec("UPDATE schedule_runs SET status").
		WithArgs(models.ScheduleRunStatusFinal, sqlmock.AnyArg(), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), nil, "missing", models.ScheduleRunStatusFinal)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRunRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRunRepository(db)

	mock.ExpectExec("DELETE FROM schedule_runs WHERE id").
		WithArgs("run-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), "run-1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
