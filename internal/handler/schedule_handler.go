package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classedgee/scheduler-api/internal/dto"
	"github.com/classedgee/scheduler-api/internal/service"
	appErrors "github.com/classedgee/scheduler-api/pkg/errors"
	"github.com/classedgee/scheduler-api/pkg/response"
)

// ScheduleHandler manages the automatic scheduling endpoints.
type ScheduleHandler struct {
	generator *service.ScheduleGeneratorService
	exporter  *service.ExportService
}

// NewScheduleHandler constructs handler.
func NewScheduleHandler(generator *service.ScheduleGeneratorService, exporter *service.ExportService) *ScheduleHandler {
	return &ScheduleHandler{generator: generator, exporter: exporter}
}

// Generate godoc
// @Summary Generate a schedule run
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body dto.GenerateScheduleRequest true "Generation scope"
// @Success 201 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /schedule/generate [post]
func (h *ScheduleHandler) Generate(c *gin.Context) {
	var req dto.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.generator.Generate(c.Request.Context(), req)
	if err != nil {
		if report, ok := service.InfeasibilityReport(err); ok {
			response.ErrorWithData(c, err, report)
			return
		}
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Feasibility godoc
// @Summary Check generation feasibility without starting a run
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body dto.GenerateScheduleRequest true "Generation scope"
// @Success 200 {object} response.Envelope
// @Router /schedule/feasibility [post]
func (h *ScheduleHandler) Feasibility(c *gin.Context) {
	var req dto.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	report, err := h.generator.Feasibility(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// Latest godoc
// @Summary Latest schedule run for a section
// @Tags Schedule
// @Produce json
// @Param sectionId query string true "Section ID"
// @Success 200 {object} response.Envelope
// @Router /schedule/latest [get]
func (h *ScheduleHandler) Latest(c *gin.Context) {
	sectionID := c.Query("sectionId")
	if sectionID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "sectionId is required"))
		return
	}
	run, details, err := h.generator.LatestForSection(c.Request.Context(), sectionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"run": run, "assignments": details}, nil)
}

// Finalize godoc
// @Summary Finalize a schedule run
// @Tags Schedule
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /schedule/{id}/finalize [patch]
func (h *ScheduleHandler) Finalize(c *gin.Context) {
	run, err := h.generator.Finalize(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, run, nil)
}

// Export godoc
// @Summary Export a schedule run
// @Tags Schedule
// @Produce json
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Run ID"
// @Param format query string false "json, csv or pdf" default(json)
// @Success 200 {object} response.Envelope
// @Router /schedule/{id}/export [get]
func (h *ScheduleHandler) Export(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", "json"))
	result, err := h.exporter.Export(c.Request.Context(), c.Param("id"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}
