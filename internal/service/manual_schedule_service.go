package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/classedgee/scheduler-api/internal/dto"
	"github.com/classedgee/scheduler-api/internal/models"
	"github.com/classedgee/scheduler-api/internal/repository"
	appErrors "github.com/classedgee/scheduler-api/pkg/errors"
)

type manualAssignmentRepository interface {
	Insert(ctx context.Context, assignment *models.Assignment) error
	ExistsFacultyAt(ctx context.Context, runID, timeslotID, facultyID string) (bool, error)
	ExistsRoomAt(ctx context.Context, runID, timeslotID, roomID string) (bool, error)
	ExistsSectionAt(ctx context.Context, runID, timeslotID, sectionID string) (bool, error)
	ListDetailsByRun(ctx context.Context, runID string) ([]models.AssignmentDetail, error)
}

type eligibilityRepository interface {
	ListEligibleForSubject(ctx context.Context, subjectID string) ([]models.Faculty, error)
}

// ManualScheduleService backs the hand-assembly flow: a coordinator opens a
// run for one section, inspects which faculty and rooms are free per slot,
// and commits assignments one at a time.
type ManualScheduleService struct {
	runs        scheduleRunRepository
	assignments manualAssignmentRepository
	eligibility eligibilityRepository
	rooms       roomRepository
	timeslots   timeslotRepository
	sections    sectionRepository
	occurrences occurrencePublisher
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewManualScheduleService instantiates ManualScheduleService.
func NewManualScheduleService(runs scheduleRunRepository, assignments manualAssignmentRepository, eligibility eligibilityRepository, rooms roomRepository, timeslots timeslotRepository, sections sectionRepository, occurrences occurrencePublisher, validate *validator.Validate, logger *zap.Logger) *ManualScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ManualScheduleService{
		runs:        runs,
		assignments: assignments,
		eligibility: eligibility,
		rooms:       rooms,
		timeslots:   timeslots,
		sections:    sections,
		occurrences: occurrences,
		validator:   validate,
		logger:      logger,
	}
}

// InitRun opens a manual run scoped to one section.
func (s *ManualScheduleService) InitRun(ctx context.Context, req dto.InitManualRunRequest) (*models.ScheduleRun, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid init payload")
	}
	if _, err := s.sections.FindByID(ctx, req.SectionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "section not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load section")
	}

	sectionID := req.SectionID
	run := &models.ScheduleRun{
		DepartmentID: req.DepartmentID,
		AcademicYear: req.AcademicYear,
		Semester:     req.Semester,
		BatchYear:    req.BatchYear,
		SectionID:    &sectionID,
		Status:       models.ScheduleRunStatusMannual,
		CreatedBy:    req.CreatedBy,
	}
	if err := s.runs.Create(ctx, nil, run); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create manual run")
	}
	s.logger.Info("manual run opened", zap.String("run_id", run.ID), zap.String("section_id", req.SectionID))
	return run, nil
}

// AvailableFaculty lists the subject's eligible faculty with a per-slot free
// flag. Preferred-slot allow-lists and blocked days make a candidate
// unavailable just like an existing booking does.
func (s *ManualScheduleService) AvailableFaculty(ctx context.Context, runID, subjectID, timeslotID string) ([]dto.FacultyAvailability, error) {
	run, err := s.loadRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	slot, slotIndex, err := s.resolveSlot(ctx, run, timeslotID)
	if err != nil {
		return nil, err
	}

	eligible, err := s.eligibility.ListEligibleForSubject(ctx, subjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list eligible faculty")
	}

	result := make([]dto.FacultyAvailability, 0, len(eligible))
	for _, f := range eligible {
		available := !f.UnavailableOn(slot.DayOfWeek) && f.AllowsSlot(slotIndex)
		if available {
			busy, err := s.assignments.ExistsFacultyAt(ctx, runID, timeslotID, f.ID)
			if err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check faculty occupancy")
			}
			available = !busy
		}
		result = append(result, dto.FacultyAvailability{
			FacultyID:   f.ID,
			FacultyName: f.FullName,
			IsAvailable: available,
		})
	}
	return result, nil
}

// AvailableRooms lists rooms (optionally narrowed to a building) with a
// per-slot free flag.
func (s *ManualScheduleService) AvailableRooms(ctx context.Context, runID, timeslotID, buildingID string) ([]dto.RoomAvailability, error) {
	if _, err := s.loadRun(ctx, runID); err != nil {
		return nil, err
	}

	rooms, err := s.rooms.ListAvailable(ctx, models.RoomFilter{
		BuildingID: buildingID,
		Status:     models.RoomStatusAvailable,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rooms")
	}

	result := make([]dto.RoomAvailability, 0, len(rooms))
	for _, room := range rooms {
		busy, err := s.assignments.ExistsRoomAt(ctx, runID, timeslotID, room.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check room occupancy")
		}
		result = append(result, dto.RoomAvailability{
			RoomID:      room.ID,
			RoomNumber:  room.RoomNumber,
			RoomType:    string(room.Type),
			Capacity:    room.Capacity,
			BuildingID:  room.BuildingID,
			IsAvailable: !busy,
		})
	}
	return result, nil
}

// CommitAssignment validates one explicit placement and writes it. The same
// conflict rules the automatic engine enforces apply here: the faculty, the
// room and the section must all be free at the slot.
func (s *ManualScheduleService) CommitAssignment(ctx context.Context, req dto.CommitAssignmentRequest) (*models.Assignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}

	run, err := s.loadRun(ctx, req.RunID)
	if err != nil {
		return nil, err
	}
	if run.Status == models.ScheduleRunStatusFinal {
		return nil, appErrors.Clone(appErrors.ErrFinalized, "")
	}

	slot, _, err := s.resolveSlot(ctx, run, req.TimeslotID)
	if err != nil {
		return nil, err
	}

	if busy, err := s.assignments.ExistsFacultyAt(ctx, req.RunID, req.TimeslotID, req.FacultyID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check faculty occupancy")
	} else if busy {
		return nil, appErrors.Clone(appErrors.ErrConflict, "faculty already assigned at this slot")
	}
	if busy, err := s.assignments.ExistsRoomAt(ctx, req.RunID, req.TimeslotID, req.RoomID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check room occupancy")
	} else if busy {
		return nil, appErrors.Clone(appErrors.ErrConflict, "room already occupied at this slot")
	}
	if busy, err := s.assignments.ExistsSectionAt(ctx, req.RunID, req.TimeslotID, req.SectionID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check section occupancy")
	} else if busy {
		return nil, appErrors.Clone(appErrors.ErrConflict, "section already has a class at this slot")
	}

	assignment := &models.Assignment{
		RunID:      req.RunID,
		DayOfWeek:  slot.DayOfWeek,
		TimeslotID: req.TimeslotID,
		SubjectID:  req.SubjectID,
		FacultyID:  req.FacultyID,
		RoomID:     req.RoomID,
		SectionID:  req.SectionID,
	}
	if err := s.assignments.Insert(ctx, assignment); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "assignment already exists at this slot")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit assignment")
	}

	// Every committed detail also gets its dated class rows, same as the
	// automatic engine.
	if s.occurrences != nil {
		if err := s.occurrences.PublishRun(req.RunID, run.Semester, run.AcademicYear, []models.Assignment{*assignment}); err != nil {
			s.logger.Warn("occurrence fan-out not queued", zap.String("run_id", req.RunID), zap.Error(err))
		}
	}

	s.logger.Info("manual assignment committed",
		zap.String("run_id", req.RunID),
		zap.String("timeslot_id", req.TimeslotID),
		zap.String("faculty_id", req.FacultyID),
	)
	return assignment, nil
}

// DiscardRun removes an abandoned run together with its detail rows.
// Finalized runs are frozen and cannot be discarded.
func (s *ManualScheduleService) DiscardRun(ctx context.Context, runID string) error {
	run, err := s.loadRun(ctx, runID)
	if err != nil {
		return err
	}
	if run.Status == models.ScheduleRunStatusFinal {
		return appErrors.Clone(appErrors.ErrFinalized, "finalized runs cannot be discarded")
	}
	if err := s.runs.Delete(ctx, runID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to discard run")
	}
	s.logger.Info("schedule run discarded", zap.String("run_id", runID))
	return nil
}

// RunDetails loads the run header and its assignment rows.
func (s *ManualScheduleService) RunDetails(ctx context.Context, runID string) (*models.ScheduleRun, []models.AssignmentDetail, error) {
	run, err := s.loadRun(ctx, runID)
	if err != nil {
		return nil, nil, err
	}
	details, err := s.assignments.ListDetailsByRun(ctx, runID)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load run details")
	}
	return run, details, nil
}

func (s *ManualScheduleService) loadRun(ctx context.Context, runID string) (*models.ScheduleRun, error) {
	run, err := s.runs.FindByID(ctx, runID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule run not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule run")
	}
	return run, nil
}

// resolveSlot loads the timeslot, checks it belongs to the run's term, and
// derives its within-day index for preferred-slot checks.
func (s *ManualScheduleService) resolveSlot(ctx context.Context, run *models.ScheduleRun, timeslotID string) (*models.Timeslot, int, error) {
	slot, err := s.timeslots.FindByID(ctx, timeslotID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, appErrors.Clone(appErrors.ErrNotFound, "timeslot not found")
		}
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timeslot")
	}
	if slot.Semester != run.Semester || slot.AcademicYear != run.AcademicYear {
		return nil, 0, appErrors.Clone(appErrors.ErrValidation, "timeslot belongs to a different term")
	}
	if !models.IsTeachingDay(slot.DayOfWeek) {
		return nil, 0, appErrors.Clone(appErrors.ErrValidation, "timeslot is outside the teaching week")
	}

	grid, err := s.timeslots.ListForTerm(ctx, run.Semester, run.AcademicYear)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timeslot grid")
	}
	return slot, slotIndexByID(grid)[slot.ID], nil
}
