package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/classedgee/scheduler-api/internal/models"
	appErrors "github.com/classedgee/scheduler-api/pkg/errors"
)

type stubSubjects struct {
	subjects []models.Subject
	units    map[string][]models.Unit
}

func (s *stubSubjects) ListByDepartmentSemester(ctx context.Context, departmentID string, semester int) ([]models.Subject, error) {
	return s.subjects, nil
}

func (s *stubSubjects) FindByID(ctx context.Context, id string) (*models.Subject, error) {
	for _, subject := range s.subjects {
		if subject.ID == id {
			return &subject, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *stubSubjects) ListUnits(ctx context.Context, subjectIDs []string) (map[string][]models.Unit, error) {
	return s.units, nil
}

type stubFacultyRepo struct {
	eligible map[string][]models.Faculty
}

func (s *stubFacultyRepo) MapEligibleForSubjects(ctx context.Context, subjectIDs []string) (map[string][]models.Faculty, error) {
	return s.eligible, nil
}

func (s *stubFacultyRepo) FindByID(ctx context.Context, id string) (*models.Faculty, error) {
	return nil, sql.ErrNoRows
}

func newCatalogService(subjects *stubSubjects) *CatalogService {
	faculty := &stubFacultyRepo{eligible: map[string][]models.Faculty{
		"sub-1": {{ID: "fac-1", FullName: "A. Turing", MaxWeeklyHours: 20}},
	}}
	rooms := &stubRooms{rooms: []models.Room{
		{ID: "room-1", RoomNumber: "101", Status: models.RoomStatusAvailable},
	}}
	timeslots := &stubTimeslots{slots: weeklyGrid(2)}
	sections := &stubSections{sections: map[string]models.Section{
		"sec-1": {ID: "sec-1", Name: "A"},
	}}
	cache := NewCacheService(nil, nil, time.Minute, zap.NewNop(), false)
	return NewCatalogService(subjects, faculty, rooms, timeslots, sections, cache, time.Minute, zap.NewNop())
}

func catalogScope() CatalogScope {
	return CatalogScope{
		DepartmentID: "dept-1",
		AcademicYear: 2025,
		Semester:     3,
		BatchYear:    2024,
		TotalWeeks:   12,
	}
}

func TestCatalogBuildDerivesWeeklyQuotas(t *testing.T) {
	subjects := &stubSubjects{
		subjects: []models.Subject{{ID: "sub-1", Code: "CS101", Name: "Programming"}},
		units: map[string][]models.Unit{
			"sub-1": {
				{ID: "unit-1", SubjectID: "sub-1", RequiredHours: 20},
				{ID: "unit-2", SubjectID: "sub-1", RequiredHours: 17},
			},
		},
	}
	svc := newCatalogService(subjects)

	catalog, err := svc.Build(context.Background(), catalogScope())
	require.NoError(t, err)
	require.Len(t, catalog.Subjects, 1)

	demand := catalog.Subjects[0]
	assert.Equal(t, 37, demand.TotalHours)
	// 37 hours over 12 weeks rounds up to 4 weekly meetings.
	assert.Equal(t, 4, demand.WeeklyClasses)
	require.Len(t, demand.EligibleFaculty, 1)
	assert.Equal(t, "fac-1", demand.EligibleFaculty[0].ID)

	assert.Len(t, catalog.Timeslots, 10)
	assert.Len(t, catalog.Rooms, 1)
	assert.Len(t, catalog.Sections, 1)
	assert.Equal(t, 12, catalog.TotalWeeks)
}

func TestCatalogBuildRejectsEmptyScope(t *testing.T) {
	svc := newCatalogService(&stubSubjects{})

	_, err := svc.Build(context.Background(), catalogScope())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCatalogBuildRequiresPositiveWeeks(t *testing.T) {
	svc := newCatalogService(&stubSubjects{})
	scope := catalogScope()
	scope.TotalWeeks = 0

	_, err := svc.Build(context.Background(), scope)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
