package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/uni-schedule-api/internal/dto"
	"github.com/noah-isme/uni-schedule-api/internal/service"
	appErrors "github.com/noah-isme/uni-schedule-api/pkg/errors"
	"github.com/noah-isme/uni-schedule-api/pkg/response"
)

type workloadWarningService interface {
	CombinedWarnings(ctx context.Context, scheduleID int64, match func(string) bool) (*service.QueryResult[dto.CombinedWarnings], error)
}

type warningReportService interface {
	WarningsReport(ctx context.Context, scheduleID int64, format string) (*service.ExportDocument, error)
}

// WorkloadWarningHandler serves professor and subject workload warnings.
type WorkloadWarningHandler struct {
	service  workloadWarningService
	reports  warningReportService
	validate *validator.Validate
}

// NewWorkloadWarningHandler constructs the handler.
func NewWorkloadWarningHandler(service workloadWarningService, reports warningReportService, validate *validator.Validate) *WorkloadWarningHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &WorkloadWarningHandler{service: service, reports: reports, validate: validate}
}

// Combined godoc
// @Summary Workload warnings of a schedule
// @Description Professors and subjects whose scheduled hours exceed their contract or allocation. The payload is not wrapped in the response envelope.
// @Tags Workload
// @Produce json
// @Param id path int true "Schedule ID"
// @Param If-None-Match header string false "ETag of cached warnings"
// @Success 200 {object} dto.CombinedWarnings
// @Success 304
// @Failure 404 {object} response.Envelope
// @Router /professor_workload/warnings/combined/{id} [get]
func (h *WorkloadWarningHandler) Combined(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	scheduleID, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.service.CombinedWarnings(c.Request.Context(), scheduleID, etagMatcher(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	writeQueryResult(c, result)
}

// Export godoc
// @Summary Export the workload warnings of a schedule
// @Tags Workload
// @Produce text/csv
// @Produce application/pdf
// @Param id path int true "Schedule ID"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /professor_workload/warnings/export/{id} [get]
func (h *WorkloadWarningHandler) Export(c *gin.Context) {
	if h.reports == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	scheduleID, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var query dto.ExportQuery
	if err := bindQuery(c, h.validate, &query); err != nil {
		response.Error(c, err)
		return
	}
	doc, err := h.reports.WarningsReport(c.Request.Context(), scheduleID, query.Format)
	if err != nil {
		response.Error(c, err)
		return
	}
	sendDocument(c, doc)
}
