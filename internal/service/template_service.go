package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-schedule-api/internal/dto"
	"github.com/noah-isme/uni-schedule-api/internal/models"
	appErrors "github.com/noah-isme/uni-schedule-api/pkg/errors"
)

type templateFinder interface {
	FindByID(ctx context.Context, id int64) (*models.RecurringTemplate, error)
}

type templateLessonCounter interface {
	CountByTemplate(ctx context.Context, templateID int64, since *time.Time) (int, error)
}

// TemplateService previews the lessons a recurring template generates.
type TemplateService struct {
	templates templateFinder
	schedules scheduleLookup
	holidays  holidayReader
	lessons   templateLessonCounter
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewTemplateService constructs the service.
func NewTemplateService(templates templateFinder, schedules scheduleLookup, holidays holidayReader, lessons templateLessonCounter, validate *validator.Validate, logger *zap.Logger) *TemplateService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplateService{
		templates: templates,
		schedules: schedules,
		holidays:  holidays,
		lessons:   lessons,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// Occurrences expands one template. The window defaults to the template's own
// date range, open ended templates running to the end of their semester.
func (s *TemplateService) Occurrences(ctx context.Context, templateID int64, q dto.TemplateOccurrencesQuery) (*dto.TemplateOccurrences, error) {
	if err := s.validator.Struct(q); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}

	tpl, err := s.templates.FindByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("recurring template %d not found", templateID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load recurring template")
	}
	schedule, err := s.schedules.Schedule(ctx, tpl.ScheduleID)
	if err != nil {
		return nil, err
	}

	from := civilDate(tpl.StartDate)
	to := civilDate(schedule.SemesterEnd)
	if tpl.EndDate != nil {
		to = civilDate(*tpl.EndDate)
	}
	if q.DateFrom != "" {
		if from, err = ParseDate(q.DateFrom); err != nil {
			return nil, err
		}
	}
	if q.DateTo != "" {
		if to, err = ParseDate(q.DateTo); err != nil {
			return nil, err
		}
	}
	window, err := NewDateWindow(from, to)
	if err != nil {
		return nil, err
	}

	holidays, err := s.holidays.List(ctx, models.HolidayFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load holidays")
	}
	occs, err := ExpandTemplate(*tpl, window, schedule.SemesterEnd, NewHolidayCalendar(holidays))
	if err != nil {
		s.logger.Warn("template preview rejected", zap.Int64("template_id", templateID), zap.Error(err))
		return nil, err
	}

	stored, err := s.lessons.CountByTemplate(ctx, templateID, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count template lessons")
	}

	today := civilDate(s.now())
	out := &dto.TemplateOccurrences{
		TemplateID:  templateID,
		Count:       len(occs),
		StoredCount: stored,
		Occurrences: make([]dto.TemplateOccurrence, 0, len(occs)),
	}
	for _, occ := range occs {
		if !occ.Date().Before(today) {
			out.FutureCount++
		}
		out.Occurrences = append(out.Occurrences, dto.TemplateOccurrence{
			Date:      formatDate(occ.Date()),
			StartTime: occ.Interval.Start,
			EndTime:   occ.Interval.End,
		})
	}
	return out, nil
}
