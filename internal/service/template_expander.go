package service

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/noah-isme/uni-schedule-api/internal/models"
	appErrors "github.com/noah-isme/uni-schedule-api/pkg/errors"
)

var rruleWeekdays = [7]rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA, rrule.SU}

// ValidateTemplate checks the rules a template must satisfy before it can be
// expanded.
func ValidateTemplate(tpl models.RecurringTemplate) error {
	switch {
	case len(tpl.DaysOfWeek) == 0:
		return invalidTemplate(tpl.ID, "days_of_week is empty")
	case tpl.StartTime >= tpl.EndTime:
		return invalidTemplate(tpl.ID, fmt.Sprintf("start_time %s is not before end_time %s", tpl.StartTime, tpl.EndTime))
	case tpl.EndDate != nil && civilDate(*tpl.EndDate).Before(civilDate(tpl.StartDate)):
		return invalidTemplate(tpl.ID, fmt.Sprintf("end_date %s is before start_date %s", formatDate(*tpl.EndDate), formatDate(tpl.StartDate)))
	case !tpl.IsOnline && tpl.RoomID == nil:
		return invalidTemplate(tpl.ID, "room_id is required for offline lessons")
	}
	for _, d := range tpl.DaysOfWeek {
		if d < 0 || d > 6 {
			return invalidTemplate(tpl.ID, fmt.Sprintf("weekday %d is out of range 0..6", d))
		}
	}
	return nil
}

func invalidTemplate(id int64, reason string) error {
	return appErrors.WithDetails(appErrors.ErrInvalidTemplate,
		fmt.Sprintf("template %d: %s", id, reason),
		map[string]interface{}{"template_id": id, "reason": reason})
}

// ExpandTemplate returns the occurrences tpl generates inside window. Dates run
// from the later of the template start and the window start to the earliest of
// the template end (or semesterEnd when open ended) and the window end. Dates
// on holidays are skipped. The result is ordered by date and carries no
// professor or subject ids; those are resolved against reference data.
func ExpandTemplate(tpl models.RecurringTemplate, window DateWindow, semesterEnd time.Time, holidays *HolidayCalendar) ([]Occurrence, error) {
	if err := ValidateTemplate(tpl); err != nil {
		return nil, err
	}

	lo := civilDate(tpl.StartDate)
	if window.From.After(lo) {
		lo = window.From
	}
	hi := civilDate(semesterEnd)
	if tpl.EndDate != nil {
		hi = civilDate(*tpl.EndDate)
	}
	if window.To.Before(hi) {
		hi = window.To
	}
	if hi.Before(lo) {
		return nil, nil
	}

	days := tpl.DaysOfWeek.Normalized()
	byweekday := make([]rrule.Weekday, 0, len(days))
	for _, d := range days {
		byweekday = append(byweekday, rruleWeekdays[d])
	}
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Wkst:      rrule.MO,
		Byweekday: byweekday,
		Dtstart:   lo,
		Until:     hi,
	})
	if err != nil {
		return nil, fmt.Errorf("build recurrence for template %d: %w", tpl.ID, err)
	}

	id := tpl.ID
	var roomID *int64
	if !tpl.IsOnline {
		roomID = tpl.RoomID
	}
	dates := rule.Between(lo, hi, true)
	out := make([]Occurrence, 0, len(dates))
	for _, date := range dates {
		date = civilDate(date)
		if holidays.IsHoliday(date) {
			continue
		}
		out = append(out, Occurrence{
			Key:                 templateKey(tpl.ID, date),
			TemplateID:          &id,
			ScheduleID:          tpl.ScheduleID,
			Interval:            TimeInterval{Date: date, Start: tpl.StartTime, End: tpl.EndTime},
			RoomID:              roomID,
			IsOnline:            tpl.IsOnline,
			GroupID:             tpl.GroupID,
			SubjectAssignmentID: tpl.SubjectAssignmentID,
			LessonType:          tpl.LessonType,
		})
	}
	return out, nil
}
