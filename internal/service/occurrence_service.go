package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/classedgee/scheduler-api/internal/models"
	"github.com/classedgee/scheduler-api/pkg/jobs"
)

type occurrenceWriter interface {
	InsertOccurrences(ctx context.Context, exec sqlx.ExtContext, occurrences []models.ClassOccurrence) error
}

type occurrencePayload struct {
	RunID        string
	Semester     int
	AcademicYear int
	Assignments  []models.Assignment
}

// OccurrenceService fans committed assignments out into dated class rows on
// a background queue, so generation responses do not wait on the per-week
// inserts.
type OccurrenceService struct {
	queue  *jobs.Queue
	writer occurrenceWriter
	weeks  int
	clock  func() time.Time
	logger *zap.Logger
}

// NewOccurrenceService builds the fan-out worker.
func NewOccurrenceService(writer occurrenceWriter, weeks int, logger *zap.Logger) *OccurrenceService {
	if weeks <= 0 {
		weeks = 4
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &OccurrenceService{
		writer: writer,
		weeks:  weeks,
		clock:  func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
	s.queue = jobs.NewQueue("class-occurrences", s.handle, jobs.QueueConfig{
		Workers: 2,
		Logger:  logger,
	})
	return s
}

// Start launches the queue workers.
func (s *OccurrenceService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the queue workers.
func (s *OccurrenceService) Stop() {
	s.queue.Stop()
}

// PublishRun enqueues the fan-out for one committed run. Both the automatic
// engine and the manual commit path feed through here, so hand-assembled
// runs land in the dated class table the same way generated ones do.
func (s *OccurrenceService) PublishRun(runID string, semester, academicYear int, assignments []models.Assignment) error {
	return s.queue.Enqueue(jobs.Job{
		ID:   uuid.NewString(),
		Type: "fan_out_run",
		Payload: occurrencePayload{
			RunID:        runID,
			Semester:     semester,
			AcademicYear: academicYear,
			Assignments:  assignments,
		},
	})
}

func (s *OccurrenceService) handle(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(occurrencePayload)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", job.Payload)
	}

	occurrences := BuildOccurrences(payload.Assignments, payload.Semester, payload.AcademicYear, s.weeks, s.clock())
	if len(occurrences) == 0 {
		return nil
	}
	if err := s.writer.InsertOccurrences(ctx, nil, occurrences); err != nil {
		return fmt.Errorf("fan out run %s: %w", payload.RunID, err)
	}
	s.logger.Info("class occurrences created",
		zap.String("run_id", payload.RunID),
		zap.Int("rows", len(occurrences)),
	)
	return nil
}

// BuildOccurrences derives dated class rows for each assignment: the next
// calendar date matching the assignment's weekday, then one row per week.
// Assignments without an ID were dropped as duplicates and produce no rows.
func BuildOccurrences(assignments []models.Assignment, semester, academicYear, weeks int, from time.Time) []models.ClassOccurrence {
	var occurrences []models.ClassOccurrence
	for _, a := range assignments {
		if a.ID == "" {
			continue
		}
		first := nextWeekday(from, a.DayOfWeek)
		for week := 0; week < weeks; week++ {
			occurrences = append(occurrences, models.ClassOccurrence{
				DetailID:     a.ID,
				FacultyID:    a.FacultyID,
				RoomID:       a.RoomID,
				TimeslotID:   a.TimeslotID,
				SectionID:    a.SectionID,
				Semester:     semester,
				AcademicYear: academicYear,
				DateOfClass:  first.AddDate(0, 0, 7*week),
				IsActive:     true,
			})
		}
	}
	return occurrences
}

// nextWeekday returns the first date on or after from whose weekday matches
// day (Monday=1 .. Friday=5).
func nextWeekday(from time.Time, day int) time.Time {
	date := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	offset := (day - int(date.Weekday()) + 7) % 7
	return date.AddDate(0, 0, offset)
}
