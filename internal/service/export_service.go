package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/classedgee/scheduler-api/internal/dto"
	"github.com/classedgee/scheduler-api/internal/models"
	appErrors "github.com/classedgee/scheduler-api/pkg/errors"
	"github.com/classedgee/scheduler-api/pkg/export"
)

// ExportFormat names a supported timetable rendering.
type ExportFormat string

const (
	ExportFormatJSON ExportFormat = "json"
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatPDF  ExportFormat = "pdf"
)

var dayNames = map[int]string{
	1: "Monday",
	2: "Tuesday",
	3: "Wednesday",
	4: "Thursday",
	5: "Friday",
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportResult is one rendered timetable plus its transport metadata.
type ExportResult struct {
	Payload     []byte
	ContentType string
	Filename    string
}

// ExportService renders a run's timetable as JSON, CSV or PDF.
type ExportService struct {
	runs        scheduleRunRepository
	assignments assignmentRepository
	csv         csvRenderer
	pdf         pdfRenderer
	title       string
	logger      *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(runs scheduleRunRepository, assignments assignmentRepository, title string, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if title == "" {
		title = "Class Schedule"
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		runs:        runs,
		assignments: assignments,
		csv:         csv,
		pdf:         pdf,
		title:       title,
		logger:      logger,
	}
}

// Export renders the run in the requested format. Rows arrive from the
// repository already ordered by (day, start time).
func (s *ExportService) Export(ctx context.Context, runID string, format ExportFormat) (*ExportResult, error) {
	run, err := s.runs.FindByID(ctx, runID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule run not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule run")
	}

	details, err := s.assignments.ListDetailsByRun(ctx, runID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load run details")
	}

	rows := make([]dto.ExportRow, 0, len(details))
	for _, d := range details {
		rows = append(rows, dto.ExportRow{
			Day:       d.DayOfWeek,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
			Subject:   d.SubjectName,
			Faculty:   d.FacultyName,
			Room:      d.RoomNumber,
			Section:   d.SectionName,
		})
	}

	switch format {
	case ExportFormatJSON, "":
		payload, err := json.MarshalIndent(struct {
			Run  *models.ScheduleRun `json:"run"`
			Rows []dto.ExportRow     `json:"rows"`
		}{run, rows}, "", "  ")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode export")
		}
		return &ExportResult{
			Payload:     payload,
			ContentType: "application/json",
			Filename:    fmt.Sprintf("schedule-%s.json", runID),
		}, nil
	case ExportFormatCSV:
		payload, err := s.csv.Render(buildDataset(rows))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{
			Payload:     payload,
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("schedule-%s.csv", runID),
		}, nil
	case ExportFormatPDF:
		payload, err := s.pdf.Render(buildDataset(rows), s.title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{
			Payload:     payload,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("schedule-%s.pdf", runID),
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func buildDataset(rows []dto.ExportRow) export.Dataset {
	dataset := export.Dataset{
		Headers: []string{"Day", "Start", "End", "Subject", "Faculty", "Room", "Section"},
	}
	for _, row := range rows {
		day := dayNames[row.Day]
		if day == "" {
			day = fmt.Sprintf("Day %d", row.Day)
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Day":     day,
			"Start":   row.StartTime,
			"End":     row.EndTime,
			"Subject": row.Subject,
			"Faculty": row.Faculty,
			"Room":    row.Room,
			"Section": row.Section,
		})
	}
	return dataset
}
