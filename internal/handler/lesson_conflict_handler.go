package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/uni-schedule-api/internal/dto"
	"github.com/noah-isme/uni-schedule-api/internal/middleware"
	"github.com/noah-isme/uni-schedule-api/internal/service"
	appErrors "github.com/noah-isme/uni-schedule-api/pkg/errors"
	"github.com/noah-isme/uni-schedule-api/pkg/response"
)

type lessonConflictService interface {
	ConflictsSummary(ctx context.Context, scheduleID int64, spec service.WindowSpec, match func(string) bool) (*service.QueryResult[dto.ConflictsSummary], error)
	ScheduleGroups(ctx context.Context, scheduleID int64, match func(string) bool) (*service.QueryResult[dto.ScheduleGroups], error)
	Refresh(ctx context.Context, scheduleID int64) (*dto.RefreshResponse, error)
}

type conflictReportService interface {
	ConflictsReport(ctx context.Context, scheduleID int64, spec service.WindowSpec, format string) (*service.ExportDocument, error)
}

// LessonConflictHandler serves the lesson conflict endpoints.
type LessonConflictHandler struct {
	service  lessonConflictService
	reports  conflictReportService
	validate *validator.Validate
}

// NewLessonConflictHandler constructs the handler.
func NewLessonConflictHandler(service lessonConflictService, reports conflictReportService, validate *validator.Validate) *LessonConflictHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &LessonConflictHandler{service: service, reports: reports, validate: validate}
}

// Summary godoc
// @Summary Conflict summary of a schedule
// @Description Returns single and shared resource conflicts between the lessons of a schedule. The payload is not wrapped in the response envelope.
// @Tags Lesson Conflicts
// @Produce json
// @Param schedule_id query int true "Schedule ID"
// @Param date_from query string false "Window start (YYYY-MM-DD)"
// @Param date_to query string false "Window end, inclusive (YYYY-MM-DD)"
// @Param view query string false "day or week"
// @Param date query string false "Anchor date of the view (YYYY-MM-DD)"
// @Param If-None-Match header string false "ETag of a cached summary"
// @Success 200 {object} dto.ConflictsSummary
// @Success 304
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /lesson/conflicts/summary [get]
func (h *LessonConflictHandler) Summary(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var query dto.ConflictsQuery
	if err := bindQuery(c, h.validate, &query); err != nil {
		response.Error(c, err)
		return
	}
	spec, err := service.ParseWindowSpec(query)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.service.ConflictsSummary(c.Request.Context(), query.ScheduleID, spec, etagMatcher(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	writeQueryResult(c, result)
}

// Groups godoc
// @Summary Groups taking part in a schedule
// @Tags Lesson Conflicts
// @Produce json
// @Param schedule_id query int true "Schedule ID"
// @Success 200 {object} dto.ScheduleGroups
// @Success 304
// @Failure 404 {object} response.Envelope
// @Router /lesson/groups [get]
func (h *LessonConflictHandler) Groups(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var query dto.ScheduleQuery
	if err := bindQuery(c, h.validate, &query); err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.service.ScheduleGroups(c.Request.Context(), query.ScheduleID, etagMatcher(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	writeQueryResult(c, result)
}

// Refresh godoc
// @Summary Drop cached conflict results of a schedule
// @Description Invalidates cached summaries and queues a background recomputation.
// @Tags Lesson Conflicts
// @Produce json
// @Param schedule_id query int true "Schedule ID"
// @Success 202 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /lesson/conflicts/refresh [post]
func (h *LessonConflictHandler) Refresh(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var query dto.ScheduleQuery
	if err := bindQuery(c, h.validate, &query); err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.service.Refresh(c.Request.Context(), query.ScheduleID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if claims := middleware.CurrentClaims(c); claims != nil {
		result.RequestedBy = claims.UserID
	}
	response.Accepted(c, result)
}

// Export godoc
// @Summary Export the conflicts of a schedule
// @Tags Lesson Conflicts
// @Produce text/csv
// @Produce application/pdf
// @Param schedule_id query int true "Schedule ID"
// @Param date_from query string false "Window start (YYYY-MM-DD)"
// @Param date_to query string false "Window end, inclusive (YYYY-MM-DD)"
// @Param view query string false "day or week"
// @Param date query string false "Anchor date of the view (YYYY-MM-DD)"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /lesson/conflicts/export [get]
func (h *LessonConflictHandler) Export(c *gin.Context) {
	if h.reports == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var query dto.ConflictsQuery
	if err := bindQuery(c, h.validate, &query); err != nil {
		response.Error(c, err)
		return
	}
	var format dto.ExportQuery
	if err := bindQuery(c, h.validate, &format); err != nil {
		response.Error(c, err)
		return
	}
	spec, err := service.ParseWindowSpec(query)
	if err != nil {
		response.Error(c, err)
		return
	}
	doc, err := h.reports.ConflictsReport(c.Request.Context(), query.ScheduleID, spec, format.Format)
	if err != nil {
		response.Error(c, err)
		return
	}
	sendDocument(c, doc)
}
