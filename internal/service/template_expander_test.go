package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-schedule-api/internal/models"
	appErrors "github.com/noah-isme/uni-schedule-api/pkg/errors"
)

func monWedFriTemplate() models.RecurringTemplate {
	return models.RecurringTemplate{
		ID:                  42,
		ScheduleID:          1,
		GroupID:             1,
		SubjectAssignmentID: 7,
		RoomID:              int64Ptr(101),
		LessonType:          models.LessonTypeLecture,
		DaysOfWeek:          models.Weekdays{0, 2, 4},
		StartTime:           tod("09:00"),
		EndTime:             tod("10:30"),
		StartDate:           day("2025-01-06"),
		EndDate:             timePtr(day("2025-01-17")),
	}
}

func occurrenceDates(occs []Occurrence) []string {
	out := make([]string, 0, len(occs))
	for _, o := range occs {
		out = append(out, formatDate(o.Date()))
	}
	return out
}

var wideWindow = DateWindow{From: day("2024-09-01"), To: day("2025-06-30")}

func TestExpandTemplateMonWedFri(t *testing.T) {
	occs, err := ExpandTemplate(monWedFriTemplate(), wideWindow, day("2025-06-30"), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-06", "2025-01-08", "2025-01-10", "2025-01-13", "2025-01-15", "2025-01-17"}, occurrenceDates(occs))

	first := occs[0]
	assert.Equal(t, "template:42:2025-01-06", first.Key)
	require.NotNil(t, first.TemplateID)
	assert.Equal(t, int64(42), *first.TemplateID)
	assert.Nil(t, first.LessonID)
	assert.Equal(t, tod("09:00"), first.Interval.Start)
	assert.Equal(t, tod("10:30"), first.Interval.End)
	assert.Equal(t, int64(101), *first.RoomID)
}

func TestExpandTemplateSkipsHolidays(t *testing.T) {
	holidays := NewHolidayCalendar([]models.Holiday{{Date: day("2025-01-08")}})
	occs, err := ExpandTemplate(monWedFriTemplate(), wideWindow, day("2025-06-30"), holidays)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-06", "2025-01-10", "2025-01-13", "2025-01-15", "2025-01-17"}, occurrenceDates(occs))
}

func TestExpandTemplateSkipsAnnualHolidays(t *testing.T) {
	tpl := monWedFriTemplate()
	tpl.StartDate = day("2024-12-30")
	tpl.EndDate = timePtr(day("2025-01-03"))
	holidays := NewHolidayCalendar([]models.Holiday{{Date: day("2019-01-01"), IsAnnual: true}})

	occs, err := ExpandTemplate(tpl, wideWindow, day("2025-06-30"), holidays)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-12-30", "2025-01-03"}, occurrenceDates(occs))
}

func TestExpandTemplateClipsToWindow(t *testing.T) {
	occs, err := ExpandTemplate(monWedFriTemplate(), WeekWindow(day("2025-01-15")), day("2025-06-30"), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-13", "2025-01-15", "2025-01-17"}, occurrenceDates(occs))

	occs, err = ExpandTemplate(monWedFriTemplate(), DayWindow(day("2025-01-14")), day("2025-06-30"), nil)
	require.NoError(t, err)
	assert.Empty(t, occs)

	occs, err = ExpandTemplate(monWedFriTemplate(), DayWindow(day("2025-03-03")), day("2025-06-30"), nil)
	require.NoError(t, err)
	assert.Empty(t, occs)
}

func TestExpandTemplateOpenEndedStopsAtSemesterEnd(t *testing.T) {
	tpl := monWedFriTemplate()
	tpl.EndDate = nil
	tpl.DaysOfWeek = models.Weekdays{4}

	occs, err := ExpandTemplate(tpl, wideWindow, day("2025-01-31"), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-10", "2025-01-17", "2025-01-24", "2025-01-31"}, occurrenceDates(occs))
}

func TestExpandTemplateOnlineHasNoRoom(t *testing.T) {
	tpl := monWedFriTemplate()
	tpl.IsOnline = true

	occs, err := ExpandTemplate(tpl, wideWindow, day("2025-06-30"), nil)
	require.NoError(t, err)
	require.NotEmpty(t, occs)
	assert.Nil(t, occs[0].RoomID)
	assert.Nil(t, occs[0].Ref().RoomID)
}

func TestExpandTemplateIsRestartable(t *testing.T) {
	tpl := monWedFriTemplate()
	first, err := ExpandTemplate(tpl, wideWindow, day("2025-06-30"), nil)
	require.NoError(t, err)
	second, err := ExpandTemplate(tpl, wideWindow, day("2025-06-30"), nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestExpandTemplateInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.RecurringTemplate)
	}{
		{"empty days", func(tpl *models.RecurringTemplate) { tpl.DaysOfWeek = nil }},
		{"start after end", func(tpl *models.RecurringTemplate) { tpl.StartTime = tod("11:00") }},
		{"start equals end", func(tpl *models.RecurringTemplate) { tpl.EndTime = tpl.StartTime }},
		{"end date before start date", func(tpl *models.RecurringTemplate) { tpl.EndDate = timePtr(day("2025-01-01")) }},
		{"offline without room", func(tpl *models.RecurringTemplate) { tpl.RoomID = nil }},
		{"weekday out of range", func(tpl *models.RecurringTemplate) { tpl.DaysOfWeek = models.Weekdays{7} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := monWedFriTemplate()
			tt.mutate(&tpl)
			occs, err := ExpandTemplate(tpl, wideWindow, day("2025-06-30"), nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, appErrors.ErrInvalidTemplate)
			assert.Nil(t, occs)
		})
	}
}

func TestExpandTemplateBoundedByWindow(t *testing.T) {
	tpl := monWedFriTemplate()
	tpl.DaysOfWeek = models.Weekdays{0, 1, 2, 3, 4, 5, 6}
	tpl.StartDate = day("2000-01-01")
	tpl.EndDate = nil

	window := DateWindow{From: day("2025-01-01"), To: day("2025-01-31")}
	start := time.Now()
	occs, err := ExpandTemplate(tpl, window, day("2099-12-31"), nil)
	require.NoError(t, err)
	assert.Len(t, occs, 31)
	assert.Less(t, time.Since(start), time.Second)
}
