package dto

import "github.com/classedgee/scheduler-api/internal/models"

// GenerateScheduleRequest asks the engine for an automatic run over a
// department/year/semester/batch scope.
type GenerateScheduleRequest struct {
	DepartmentID string `json:"departmentId" validate:"required"`
	AcademicYear int    `json:"academicYear" validate:"required,min=2000"`
	Semester     int    `json:"semester" validate:"required,min=1,max=12"`
	BatchYear    int    `json:"batchYear" validate:"required,min=2000"`
	TotalWeeks   int    `json:"totalWeeks" validate:"omitempty,min=1"`
	CreatedBy    string `json:"createdBy" validate:"required"`
}

// FeasibilityIssue is one machine-readable reason a run cannot start.
type FeasibilityIssue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Deficit int    `json:"deficit"`
}

// FeasibilityReport aggregates supply/demand checks made before a run.
type FeasibilityReport struct {
	Feasible         bool               `json:"feasible"`
	WeeklyDemand     int                `json:"weekly_demand"`
	FacultyAvailable int                `json:"faculty_available"`
	RoomsAvailable   int                `json:"rooms_available"`
	SlotsAvailable   int                `json:"slots_available"`
	Issues           []FeasibilityIssue `json:"issues,omitempty"`
}

// GenerateScheduleResponse reports the persisted run and its fulfillment.
type GenerateScheduleResponse struct {
	RunID       string                      `json:"runId"`
	Status      models.ScheduleRunStatus    `json:"status"`
	Committed   int                         `json:"committed"`
	Skipped     int                         `json:"skipped"`
	Complete    bool                        `json:"complete"`
	Fulfillment []models.SubjectFulfillment `json:"fulfillment"`
}

// ExportRow is one flattened line of a run export, ordered by (day, start).
type ExportRow struct {
	Day       int    `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Subject   string `json:"subject"`
	Faculty   string `json:"faculty"`
	Room      string `json:"room"`
	Section   string `json:"section"`
}
