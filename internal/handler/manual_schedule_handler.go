package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classedgee/scheduler-api/internal/dto"
	"github.com/classedgee/scheduler-api/internal/service"
	appErrors "github.com/classedgee/scheduler-api/pkg/errors"
	"github.com/classedgee/scheduler-api/pkg/response"
)

// ManualScheduleHandler manages the hand-assembly endpoints.
type ManualScheduleHandler struct {
	service *service.ManualScheduleService
}

// NewManualScheduleHandler constructs handler.
func NewManualScheduleHandler(svc *service.ManualScheduleService) *ManualScheduleHandler {
	return &ManualScheduleHandler{service: svc}
}

// Init godoc
// @Summary Open a manual scheduling run
// @Tags Manual
// @Accept json
// @Produce json
// @Param payload body dto.InitManualRunRequest true "Run scope"
// @Success 201 {object} response.Envelope
// @Router /schedule/manual/init [post]
func (h *ManualScheduleHandler) Init(c *gin.Context) {
	var req dto.InitManualRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	run, err := h.service.InitRun(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, run)
}

// AvailableFaculty godoc
// @Summary List eligible faculty with per-slot availability
// @Tags Manual
// @Produce json
// @Param runId query string true "Run ID"
// @Param subjectId query string true "Subject ID"
// @Param slotId query string true "Timeslot ID"
// @Success 200 {object} response.Envelope
// @Router /schedule/manual/faculty [get]
func (h *ManualScheduleHandler) AvailableFaculty(c *gin.Context) {
	runID := c.Query("runId")
	subjectID := c.Query("subjectId")
	slotID := c.Query("slotId")
	if runID == "" || subjectID == "" || slotID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "runId, subjectId and slotId are required"))
		return
	}
	faculty, err := h.service.AvailableFaculty(c.Request.Context(), runID, subjectID, slotID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, faculty, nil)
}

// AvailableRooms godoc
// @Summary List rooms with per-slot availability
// @Tags Manual
// @Produce json
// @Param runId query string true "Run ID"
// @Param slotId query string true "Timeslot ID"
// @Param buildingId query string false "Narrow to one building"
// @Success 200 {object} response.Envelope
// @Router /schedule/manual/rooms [get]
func (h *ManualScheduleHandler) AvailableRooms(c *gin.Context) {
	runID := c.Query("runId")
	slotID := c.Query("slotId")
	if runID == "" || slotID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "runId and slotId are required"))
		return
	}
	rooms, err := h.service.AvailableRooms(c.Request.Context(), runID, slotID, c.Query("buildingId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rooms, nil)
}

// Assign godoc
// @Summary Commit one manual assignment
// @Tags Manual
// @Accept json
// @Produce json
// @Param payload body dto.CommitAssignmentRequest true "Assignment"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /schedule/manual/assign [post]
func (h *ManualScheduleHandler) Assign(c *gin.Context) {
	var req dto.CommitAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	assignment, err := h.service.CommitAssignment(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assignment)
}

// Details godoc
// @Summary Run header with its committed assignments
// @Tags Manual
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} response.Envelope
// @Router /schedule/manual/{id} [get]
func (h *ManualScheduleHandler) Details(c *gin.Context) {
	run, details, err := h.service.RunDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"run": run, "assignments": details}, nil)
}

// Discard godoc
// @Summary Discard an abandoned run
// @Tags Manual
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /schedule/manual/{id} [delete]
func (h *ManualScheduleHandler) Discard(c *gin.Context) {
	if err := h.service.DiscardRun(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"discarded": true}, nil)
}
