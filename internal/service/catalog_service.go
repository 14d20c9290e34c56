package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/classedgee/scheduler-api/internal/models"
	appErrors "github.com/classedgee/scheduler-api/pkg/errors"
)

type subjectRepository interface {
	ListByDepartmentSemester(ctx context.Context, departmentID string, semester int) ([]models.Subject, error)
	FindByID(ctx context.Context, id string) (*models.Subject, error)
	ListUnits(ctx context.Context, subjectIDs []string) (map[string][]models.Unit, error)
}

type facultyRepository interface {
	MapEligibleForSubjects(ctx context.Context, subjectIDs []string) (map[string][]models.Faculty, error)
	FindByID(ctx context.Context, id string) (*models.Faculty, error)
}

type roomRepository interface {
	ListAvailable(ctx context.Context, filter models.RoomFilter) ([]models.Room, error)
	FindByID(ctx context.Context, id string) (*models.Room, error)
}

type timeslotRepository interface {
	ListForTerm(ctx context.Context, semester, academicYear int) ([]models.Timeslot, error)
	FindByID(ctx context.Context, id string) (*models.Timeslot, error)
}

type sectionRepository interface {
	ListByScope(ctx context.Context, departmentID string, batchYear, semester int) ([]models.Section, error)
	FindByID(ctx context.Context, id string) (*models.Section, error)
}

// CatalogScope identifies the department and term a catalog is built for.
type CatalogScope struct {
	DepartmentID string
	AcademicYear int
	Semester     int
	BatchYear    int
	TotalWeeks   int
}

func (s CatalogScope) cacheKey() string {
	return fmt.Sprintf("catalog:%s:%d:%d:%d", s.DepartmentID, s.AcademicYear, s.Semester, s.BatchYear)
}

// CatalogService assembles the read-only resource catalog a scheduling run
// consumes: subjects with weekly quotas and eligible faculty, available
// rooms, the timeslot grid and the sections in scope.
type CatalogService struct {
	subjects  subjectRepository
	faculty   facultyRepository
	rooms     roomRepository
	timeslots timeslotRepository
	sections  sectionRepository
	cache     *CacheService
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewCatalogService instantiates CatalogService.
func NewCatalogService(subjects subjectRepository, faculty facultyRepository, rooms roomRepository, timeslots timeslotRepository, sections sectionRepository, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		subjects:  subjects,
		faculty:   faculty,
		rooms:     rooms,
		timeslots: timeslots,
		sections:  sections,
		cache:     cache,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// Build loads every resource in scope and derives per-subject weekly quotas.
// Results are cached per (department, year, semester, batch) so repeated
// generation attempts skip the catalog queries.
func (s *CatalogService) Build(ctx context.Context, scope CatalogScope) (*models.ResourceCatalog, error) {
	if scope.TotalWeeks <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "total weeks must be positive")
	}

	key := scope.cacheKey()
	var cached models.ResourceCatalog
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit && cached.TotalWeeks == scope.TotalWeeks {
		return &cached, nil
	}

	subjects, err := s.subjects.ListByDepartmentSemester(ctx, scope.DepartmentID, scope.Semester)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	if len(subjects) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no subjects found for department and semester")
	}

	subjectIDs := make([]string, 0, len(subjects))
	for _, subject := range subjects {
		subjectIDs = append(subjectIDs, subject.ID)
	}

	unitsBySubject, err := s.subjects.ListUnits(ctx, subjectIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subject units")
	}

	eligibleBySubject, err := s.faculty.MapEligibleForSubjects(ctx, subjectIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve subject eligibility")
	}

	demands := make([]models.SubjectDemand, 0, len(subjects))
	for _, subject := range subjects {
		demand, err := BuildDemand(subject, unitsBySubject[subject.ID], scope.TotalWeeks)
		if err != nil {
			return nil, err
		}
		demand.EligibleFaculty = eligibleBySubject[subject.ID]
		demands = append(demands, demand)
	}

	rooms, err := s.rooms.ListAvailable(ctx, models.RoomFilter{Status: models.RoomStatusAvailable})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rooms")
	}

	timeslots, err := s.timeslots.ListForTerm(ctx, scope.Semester, scope.AcademicYear)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list timeslots")
	}

	sections, err := s.sections.ListByScope(ctx, scope.DepartmentID, scope.BatchYear, scope.Semester)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sections")
	}
	if len(sections) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no sections found for department and batch")
	}

	catalog := &models.ResourceCatalog{
		DepartmentID: scope.DepartmentID,
		AcademicYear: scope.AcademicYear,
		Semester:     scope.Semester,
		BatchYear:    scope.BatchYear,
		TotalWeeks:   scope.TotalWeeks,
		Subjects:     demands,
		Rooms:        rooms,
		Timeslots:    timeslots,
		Sections:     sections,
	}

	if err := s.cache.Set(ctx, key, catalog, s.cacheTTL); err != nil {
		s.logger.Debug("catalog cache write skipped", zap.Error(err))
	}

	return catalog, nil
}

// Invalidate drops any cached catalog for the department.
func (s *CatalogService) Invalidate(ctx context.Context, departmentID string) error {
	return s.cache.Invalidate(ctx, fmt.Sprintf("catalog:%s:*", departmentID))
}
