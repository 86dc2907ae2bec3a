package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-schedule-api/internal/dto"
	appErrors "github.com/noah-isme/uni-schedule-api/pkg/errors"
	"github.com/noah-isme/uni-schedule-api/pkg/response"
)

type templateService interface {
	Occurrences(ctx context.Context, templateID int64, query dto.TemplateOccurrencesQuery) (*dto.TemplateOccurrences, error)
}

// TemplateHandler previews recurring templates.
type TemplateHandler struct {
	service templateService
}

// NewTemplateHandler constructs the handler.
func NewTemplateHandler(service templateService) *TemplateHandler {
	return &TemplateHandler{service: service}
}

// Occurrences godoc
// @Summary Preview the lessons generated by a recurring template
// @Tags Calendar
// @Produce json
// @Param id path int true "Template ID"
// @Param date_from query string false "Range start (YYYY-MM-DD)"
// @Param date_to query string false "Range end, inclusive (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /recurring_template/{id}/occurrences [get]
func (h *TemplateHandler) Occurrences(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	templateID, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var query dto.TemplateOccurrencesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid query parameters"))
		return
	}
	result, err := h.service.Occurrences(c.Request.Context(), templateID, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
