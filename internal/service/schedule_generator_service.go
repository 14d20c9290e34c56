package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/classedgee/scheduler-api/internal/dto"
	"github.com/classedgee/scheduler-api/internal/models"
	appErrors "github.com/classedgee/scheduler-api/pkg/errors"
)

type scheduleRunRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, run *models.ScheduleRun) error
	FindByID(ctx context.Context, id string) (*models.ScheduleRun, error)
	LatestBySection(ctx context.Context, sectionID string) (*models.ScheduleRun, error)
	UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id string, status models.ScheduleRunStatus) error
	Delete(ctx context.Context, id string) error
}

type assignmentRepository interface {
	BulkInsert(ctx context.Context, exec sqlx.ExtContext, assignments []models.Assignment) (int, int, error)
	InsertOccurrences(ctx context.Context, exec sqlx.ExtContext, occurrences []models.ClassOccurrence) error
	ListDetailsByRun(ctx context.Context, runID string) ([]models.AssignmentDetail, error)
}

type catalogBuilder interface {
	Build(ctx context.Context, scope CatalogScope) (*models.ResourceCatalog, error)
	Invalidate(ctx context.Context, departmentID string) error
}

type occurrencePublisher interface {
	PublishRun(runID string, semester, academicYear int, assignments []models.Assignment) error
}

type txStarter interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// slotCell is one open (day, timeslot) cell for a section during the search.
type slotCell struct {
	Day       int
	Slot      models.Timeslot
	SlotIndex int
}

// AssignmentStrategy ranks the candidates the engine has already cleared of
// conflicts. The greedy default takes the first of each, which together with
// the repositories' stable ordering makes runs reproducible.
type AssignmentStrategy interface {
	Pick(cell slotCell, demand models.SubjectDemand, faculty []models.Faculty, rooms []models.Room) (models.Faculty, models.Room, bool)
}

// GreedyStrategy picks the first conflict-free faculty and room.
type GreedyStrategy struct{}

// Pick implements AssignmentStrategy.
func (GreedyStrategy) Pick(_ slotCell, _ models.SubjectDemand, faculty []models.Faculty, rooms []models.Room) (models.Faculty, models.Room, bool) {
	if len(faculty) == 0 || len(rooms) == 0 {
		return models.Faculty{}, models.Room{}, false
	}
	return faculty[0], rooms[0], true
}

type facultySlot struct {
	day       int
	slotID    string
	facultyID string
}

type roomSlot struct {
	day    int
	slotID string
	roomID string
}

type sectionSlot struct {
	sectionID string
	day       int
	slotID    string
}

type facultyDay struct {
	facultyID string
	day       int
}

// runState holds the conflict sets of one in-flight search. Faculty and room
// occupancy are shared across sections; slot occupancy is per section.
type runState struct {
	facultyBusy map[facultySlot]struct{}
	roomBusy    map[roomSlot]struct{}
	sectionBusy map[sectionSlot]struct{}
	dayLoad     map[facultyDay]int
	weekLoad    map[string]int
}

func newRunState() *runState {
	return &runState{
		facultyBusy: make(map[facultySlot]struct{}),
		roomBusy:    make(map[roomSlot]struct{}),
		sectionBusy: make(map[sectionSlot]struct{}),
		dayLoad:     make(map[facultyDay]int),
		weekLoad:    make(map[string]int),
	}
}

func (s *runState) facultyFree(f models.Faculty, cell slotCell) bool {
	if f.UnavailableOn(cell.Day) {
		return false
	}
	if !f.AllowsSlot(cell.SlotIndex) {
		return false
	}
	if _, busy := s.facultyBusy[facultySlot{cell.Day, cell.Slot.ID, f.ID}]; busy {
		return false
	}
	if f.MaxWeeklyHours > 0 {
		if s.weekLoad[f.ID] >= f.MaxWeeklyHours {
			return false
		}
		if limit := f.MaxHoursPerDay(); limit > 0 && s.dayLoad[facultyDay{f.ID, cell.Day}] >= limit {
			return false
		}
	}
	return true
}

func (s *runState) roomFree(r models.Room, cell slotCell) bool {
	_, busy := s.roomBusy[roomSlot{cell.Day, cell.Slot.ID, r.ID}]
	return !busy
}

func (s *runState) sectionFree(sectionID string, cell slotCell) bool {
	_, busy := s.sectionBusy[sectionSlot{sectionID, cell.Day, cell.Slot.ID}]
	return !busy
}

func (s *runState) commit(sectionID string, f models.Faculty, r models.Room, cell slotCell) {
	s.facultyBusy[facultySlot{cell.Day, cell.Slot.ID, f.ID}] = struct{}{}
	s.roomBusy[roomSlot{cell.Day, cell.Slot.ID, r.ID}] = struct{}{}
	s.sectionBusy[sectionSlot{sectionID, cell.Day, cell.Slot.ID}] = struct{}{}
	s.dayLoad[facultyDay{f.ID, cell.Day}]++
	s.weekLoad[f.ID]++
}

// GeneratorConfig tunes one generator instance.
type GeneratorConfig struct {
	DefaultTotalWeeks int
	AttemptMultiplier int
}

// ScheduleGeneratorService drives the automatic scheduling pipeline: build
// the catalog, gate on feasibility, run the conflict-aware search and persist
// the outcome atomically.
type ScheduleGeneratorService struct {
	db          txStarter
	catalog     catalogBuilder
	runs        scheduleRunRepository
	assignments assignmentRepository
	occurrences occurrencePublisher
	strategy    AssignmentStrategy
	metrics     *MetricsService
	validator   *validator.Validate
	cfg         GeneratorConfig
	logger      *zap.Logger
}

// NewScheduleGeneratorService instantiates ScheduleGeneratorService.
func NewScheduleGeneratorService(db txStarter, catalog catalogBuilder, runs scheduleRunRepository, assignments assignmentRepository, occurrences occurrencePublisher, strategy AssignmentStrategy, metrics *MetricsService, validate *validator.Validate, cfg GeneratorConfig, logger *zap.Logger) *ScheduleGeneratorService {
	if strategy == nil {
		strategy = GreedyStrategy{}
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultTotalWeeks <= 0 {
		cfg.DefaultTotalWeeks = 12
	}
	if cfg.AttemptMultiplier <= 0 {
		cfg.AttemptMultiplier = 5
	}
	return &ScheduleGeneratorService{
		db:          db,
		catalog:     catalog,
		runs:        runs,
		assignments: assignments,
		occurrences: occurrences,
		strategy:    strategy,
		metrics:     metrics,
		validator:   validate,
		cfg:         cfg,
		logger:      logger,
	}
}

// Generate runs the full pipeline for one request. Partial fulfillment is not
// an error: subjects that could not be fully placed are reported in the
// response. A run that places nothing at all is rejected and nothing is
// persisted.
func (s *ScheduleGeneratorService) Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generate payload")
	}

	totalWeeks := req.TotalWeeks
	if totalWeeks <= 0 {
		totalWeeks = s.cfg.DefaultTotalWeeks
	}

	catalog, err := s.catalog.Build(ctx, CatalogScope{
		DepartmentID: req.DepartmentID,
		AcademicYear: req.AcademicYear,
		Semester:     req.Semester,
		BatchYear:    req.BatchYear,
		TotalWeeks:   totalWeeks,
	})
	if err != nil {
		s.recordRun("failed")
		return nil, err
	}

	report := CheckFeasibility(catalog)
	if !report.Feasible {
		s.recordRun("infeasible")
		err := appErrors.Clone(appErrors.ErrInfeasible, "")
		err.Err = &infeasibilityError{Report: report}
		return nil, err
	}

	start := time.Now()
	assignments, fulfillment := s.search(catalog)
	if s.metrics != nil {
		s.metrics.ObserveSearch(time.Since(start))
	}

	if len(assignments) == 0 {
		s.recordRun("empty")
		return nil, appErrors.Clone(appErrors.ErrEmptyRun, "")
	}

	run := &models.ScheduleRun{
		DepartmentID: req.DepartmentID,
		AcademicYear: req.AcademicYear,
		Semester:     req.Semester,
		BatchYear:    req.BatchYear,
		Status:       models.ScheduleRunStatusDraft,
		CreatedBy:    req.CreatedBy,
	}

	committed, skipped, err := s.persist(ctx, run, assignments)
	if err != nil {
		s.recordRun("failed")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist schedule run")
	}
	s.recordRun("committed")
	if s.metrics != nil {
		s.metrics.RecordAssignments(committed, skipped)
	}

	if s.occurrences != nil {
		if err := s.occurrences.PublishRun(run.ID, catalog.Semester, catalog.AcademicYear, assignments); err != nil {
			s.logger.Warn("occurrence fan-out not queued", zap.String("run_id", run.ID), zap.Error(err))
		}
	}

	complete := true
	for _, f := range fulfillment {
		if !f.Complete() {
			complete = false
			break
		}
	}

	s.logger.Info("schedule run generated",
		zap.String("run_id", run.ID),
		zap.Int("committed", committed),
		zap.Int("skipped", skipped),
		zap.Bool("complete", complete),
	)

	return &dto.GenerateScheduleResponse{
		RunID:       run.ID,
		Status:      run.Status,
		Committed:   committed,
		Skipped:     skipped,
		Complete:    complete,
		Fulfillment: fulfillment,
	}, nil
}

// Feasibility builds the catalog and returns the supply/demand report without
// starting a run.
func (s *ScheduleGeneratorService) Feasibility(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.FeasibilityReport, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid feasibility payload")
	}
	totalWeeks := req.TotalWeeks
	if totalWeeks <= 0 {
		totalWeeks = s.cfg.DefaultTotalWeeks
	}
	catalog, err := s.catalog.Build(ctx, CatalogScope{
		DepartmentID: req.DepartmentID,
		AcademicYear: req.AcademicYear,
		Semester:     req.Semester,
		BatchYear:    req.BatchYear,
		TotalWeeks:   totalWeeks,
	})
	if err != nil {
		return nil, err
	}
	report := CheckFeasibility(catalog)
	return &report, nil
}

// LatestForSection returns the newest run covering a section with its rows.
func (s *ScheduleGeneratorService) LatestForSection(ctx context.Context, sectionID string) (*models.ScheduleRun, []models.AssignmentDetail, error) {
	run, err := s.runs.LatestBySection(ctx, sectionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "no schedule run for section")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load latest run")
	}
	details, err := s.assignments.ListDetailsByRun(ctx, run.ID)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load run details")
	}
	return run, details, nil
}

// Finalize freezes a draft or manual run. Finalized runs reject further
// mutation.
func (s *ScheduleGeneratorService) Finalize(ctx context.Context, runID string) (*models.ScheduleRun, error) {
	run, err := s.runs.FindByID(ctx, runID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule run not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule run")
	}
	if run.Status == models.ScheduleRunStatusFinal {
		return nil, appErrors.Clone(appErrors.ErrFinalized, "")
	}
	if err := s.runs.UpdateStatus(ctx, nil, run.ID, models.ScheduleRunStatusFinal); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to finalize run")
	}
	run.Status = models.ScheduleRunStatusFinal

	// Resource edits usually follow a freeze, so the department's cached
	// catalog must not outlive it.
	if err := s.catalog.Invalidate(ctx, run.DepartmentID); err != nil {
		s.logger.Warn("catalog cache not invalidated", zap.String("department_id", run.DepartmentID), zap.Error(err))
	}
	return run, nil
}

// search walks sections, subjects (largest weekly quota first) and the day
// grid, placing one meeting per distinct day before doubling up. All
// enumeration follows the catalog's stable ordering so equal inputs produce
// equal schedules.
func (s *ScheduleGeneratorService) search(catalog *models.ResourceCatalog) ([]models.Assignment, []models.SubjectFulfillment) {
	state := newRunState()
	slotIndex := slotIndexByID(catalog.Timeslots)
	attemptBudget := len(catalog.Timeslots) * s.cfg.AttemptMultiplier

	subjects := make([]models.SubjectDemand, len(catalog.Subjects))
	copy(subjects, catalog.Subjects)
	sort.SliceStable(subjects, func(i, j int) bool {
		if subjects[i].WeeklyClasses != subjects[j].WeeklyClasses {
			return subjects[i].WeeklyClasses > subjects[j].WeeklyClasses
		}
		return subjects[i].Subject.ID < subjects[j].Subject.ID
	})

	var assignments []models.Assignment
	var fulfillment []models.SubjectFulfillment

	for _, section := range catalog.Sections {
		for _, demand := range subjects {
			if demand.WeeklyClasses == 0 {
				continue
			}
			placed := s.placeSubject(catalog, state, slotIndex, attemptBudget, section, demand, &assignments)
			fulfillment = append(fulfillment, models.SubjectFulfillment{
				SubjectID:   demand.Subject.ID,
				SubjectName: demand.Subject.Name,
				SectionID:   section.ID,
				Target:      demand.WeeklyClasses,
				Fulfilled:   placed,
			})
		}
	}
	return assignments, fulfillment
}

// placeSubject fills one subject's weekly quota for one section. Each pass
// over the week places at most one meeting per day, so quotas up to five
// spread across distinct days; larger quotas start doubling up on later
// passes.
func (s *ScheduleGeneratorService) placeSubject(catalog *models.ResourceCatalog, state *runState, slotIndex map[string]int, attemptBudget int, section models.Section, demand models.SubjectDemand, out *[]models.Assignment) int {
	remaining := demand.WeeklyClasses
	attempts := 0

	for remaining > 0 && attempts < attemptBudget {
		progressed := false
		for day := models.FirstTeachingDay; day <= models.LastTeachingDay && remaining > 0; day++ {
			for _, slot := range catalog.SlotsForDay(day) {
				attempts++
				cell := slotCell{Day: day, Slot: slot, SlotIndex: slotIndex[slot.ID]}
				if !state.sectionFree(section.ID, cell) {
					continue
				}
				faculty := freeFaculty(state, demand.EligibleFaculty, cell)
				rooms := freeRooms(state, catalog.Rooms, cell)
				pickedFaculty, pickedRoom, ok := s.strategy.Pick(cell, demand, faculty, rooms)
				if !ok {
					continue
				}
				state.commit(section.ID, pickedFaculty, pickedRoom, cell)
				*out = append(*out, models.Assignment{
					DayOfWeek:  day,
					TimeslotID: slot.ID,
					SubjectID:  demand.Subject.ID,
					FacultyID:  pickedFaculty.ID,
					RoomID:     pickedRoom.ID,
					SectionID:  section.ID,
				})
				remaining--
				progressed = true
				break
			}
		}
		if !progressed {
			break
		}
	}
	return demand.WeeklyClasses - remaining
}

func freeFaculty(state *runState, candidates []models.Faculty, cell slotCell) []models.Faculty {
	var free []models.Faculty
	for _, f := range candidates {
		if state.facultyFree(f, cell) {
			free = append(free, f)
		}
	}
	return free
}

func freeRooms(state *runState, candidates []models.Room, cell slotCell) []models.Room {
	var free []models.Room
	for _, r := range candidates {
		if state.roomFree(r, cell) {
			free = append(free, r)
		}
	}
	return free
}

// slotIndexByID numbers slots within each day in grid order, which is what
// faculty preferred-slot lists refer to.
func slotIndexByID(slots []models.Timeslot) map[string]int {
	index := make(map[string]int, len(slots))
	perDay := make(map[int]int)
	for _, slot := range slots {
		perDay[slot.DayOfWeek]++
		index[slot.ID] = perDay[slot.DayOfWeek]
	}
	return index
}

// persist writes the run header and its assignment rows in one transaction.
// The header goes first so detail rows always reference an existing run.
func (s *ScheduleGeneratorService) persist(ctx context.Context, run *models.ScheduleRun, assignments []models.Assignment) (int, int, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.runs.Create(ctx, tx, run); err != nil {
		return 0, 0, err
	}
	for i := range assignments {
		assignments[i].RunID = run.ID
	}
	var committed, skipped int
	committed, skipped, err = s.assignments.BulkInsert(ctx, tx, assignments)
	if err != nil {
		return 0, 0, err
	}
	if skipped > 0 {
		s.logger.Warn("duplicate assignments skipped at persistence",
			zap.String("run_id", run.ID), zap.Int("skipped", skipped))
	}
	if err = tx.Commit(); err != nil {
		return 0, 0, err
	}
	return committed, skipped, nil
}

func (s *ScheduleGeneratorService) recordRun(outcome string) {
	if s.metrics != nil {
		s.metrics.RecordRun(outcome)
	}
}

// infeasibilityError carries the structured report behind ErrInfeasible.
type infeasibilityError struct {
	Report dto.FeasibilityReport
}

func (e *infeasibilityError) Error() string {
	return "schedule generation infeasible"
}

// InfeasibilityReport extracts the report from an error chain, if present.
func InfeasibilityReport(err error) (*dto.FeasibilityReport, bool) {
	var infeasible *infeasibilityError
	if errors.As(err, &infeasible) {
		return &infeasible.Report, true
	}
	return nil, false
}
