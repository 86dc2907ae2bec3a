package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-schedule-api/internal/dto"
	"github.com/noah-isme/uni-schedule-api/internal/middleware"
	appErrors "github.com/noah-isme/uni-schedule-api/pkg/errors"
	"github.com/noah-isme/uni-schedule-api/pkg/response"
)

type holidayService interface {
	List(ctx context.Context, query dto.HolidayQuery) ([]dto.HolidayItem, error)
}

// HolidayHandler lists university holidays.
type HolidayHandler struct {
	service holidayService
}

// NewHolidayHandler constructs the handler.
func NewHolidayHandler(service holidayService) *HolidayHandler {
	return &HolidayHandler{service: service}
}

// List godoc
// @Summary List university holidays
// @Description One-off holidays are filtered by their date. Annual holidays are matched by
// @Description month/day and projected into the range: with only date_from they are projected
// @Description up to 31 December of that year, with only date_to from 1 January of that year,
// @Description while one-off holidays stay unbounded on the open side.
// @Tags Calendar
// @Produce json
// @Param date_from query string false "Range start (YYYY-MM-DD)"
// @Param date_to query string false "Range end, inclusive (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /university_holiday [get]
func (h *HolidayHandler) List(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var query dto.HolidayQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid query parameters"))
		return
	}
	items, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["count"] = len(items)
	response.JSON(c, http.StatusOK, items, meta)
}
