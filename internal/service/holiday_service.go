package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-schedule-api/internal/dto"
	"github.com/noah-isme/uni-schedule-api/internal/models"
	appErrors "github.com/noah-isme/uni-schedule-api/pkg/errors"
)

// HolidayService lists the university holiday calendar.
type HolidayService struct {
	repo      holidayReader
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewHolidayService constructs the service.
func NewHolidayService(repo holidayReader, validate *validator.Validate, logger *zap.Logger) *HolidayService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HolidayService{repo: repo, validator: validate, logger: logger, now: time.Now}
}

// List returns holidays falling inside the requested range together with the
// dates they land on. One-off holidays match on their stored date. Annual
// holidays match when their month and day fall inside the range in any year.
// With only date_from (or date_to) set, annual holidays are compared against
// the rest (or the start) of that year.
func (s *HolidayService) List(ctx context.Context, q dto.HolidayQuery) ([]dto.HolidayItem, error) {
	if err := s.validator.Struct(q); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}

	var filter models.HolidayFilter
	if q.DateFrom != "" {
		d, err := ParseDate(q.DateFrom)
		if err != nil {
			return nil, err
		}
		filter.DateFrom = &d
	}
	if q.DateTo != "" {
		d, err := ParseDate(q.DateTo)
		if err != nil {
			return nil, err
		}
		filter.DateTo = &d
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateTo.Before(*filter.DateFrom) {
		return nil, appErrors.Clone(appErrors.ErrInvalidWindow, "date_to is before date_from")
	}

	holidays, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list holidays")
	}

	annualWindow := s.annualWindow(filter)
	items := make([]dto.HolidayItem, 0, len(holidays))
	for _, h := range holidays {
		var dates []time.Time
		if h.IsAnnual {
			dates = ProjectHoliday(h, annualWindow)
		} else {
			d := civilDate(h.Date)
			if (filter.DateFrom != nil && d.Before(civilDate(*filter.DateFrom))) ||
				(filter.DateTo != nil && d.After(civilDate(*filter.DateTo))) {
				continue
			}
			dates = []time.Time{d}
		}
		if len(dates) == 0 && (filter.DateFrom != nil || filter.DateTo != nil) {
			continue
		}
		item := dto.HolidayItem{
			ID:          h.ID,
			Name:        h.Name,
			Date:        formatDate(h.Date),
			IsAnnual:    h.IsAnnual,
			Occurrences: make([]string, 0, len(dates)),
		}
		for _, d := range dates {
			item.Occurrences = append(item.Occurrences, formatDate(d))
		}
		items = append(items, item)
	}

	s.logger.Debug("holidays listed", zap.Int("count", len(items)), zap.String("date_from", q.DateFrom), zap.String("date_to", q.DateTo))
	return items, nil
}

// annualWindow is the range annual holidays are projected onto. A half-open
// filter is closed at the year boundary of its one bound, so annual holidays
// are matched by month/day within that year as the legacy listing does, while
// one-off holidays keep the open side unbounded.
func (s *HolidayService) annualWindow(filter models.HolidayFilter) DateWindow {
	switch {
	case filter.DateFrom != nil && filter.DateTo != nil:
		return DateWindow{From: civilDate(*filter.DateFrom), To: civilDate(*filter.DateTo)}
	case filter.DateFrom != nil:
		from := civilDate(*filter.DateFrom)
		return DateWindow{From: from, To: time.Date(from.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)}
	case filter.DateTo != nil:
		to := civilDate(*filter.DateTo)
		return DateWindow{From: time.Date(to.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), To: to}
	default:
		year := s.now().Year()
		return DateWindow{
			From: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
		}
	}
}
