package service

import (
	"fmt"
	"time"

	"github.com/noah-isme/uni-schedule-api/internal/models"
	appErrors "github.com/noah-isme/uni-schedule-api/pkg/errors"
)

// civilDate drops the clock and location of t, keeping the calendar date.
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// weekdayIndex returns 0 for Monday through 6 for Sunday.
func weekdayIndex(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}

func formatDate(d time.Time) string {
	return d.Format(models.DateLayout)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(raw string) (time.Time, error) {
	d, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrInvalidWindow, fmt.Sprintf("invalid date %q", raw))
	}
	return d, nil
}

type monthDay struct {
	month time.Month
	day   int
}

// HolidayCalendar answers holiday lookups. Annual holidays match on month and
// day in any year.
type HolidayCalendar struct {
	exact  map[time.Time]struct{}
	annual map[monthDay]struct{}
}

// NewHolidayCalendar indexes holidays for constant time lookups.
func NewHolidayCalendar(holidays []models.Holiday) *HolidayCalendar {
	cal := &HolidayCalendar{
		exact:  make(map[time.Time]struct{}, len(holidays)),
		annual: make(map[monthDay]struct{}),
	}
	for _, h := range holidays {
		d := civilDate(h.Date)
		if h.IsAnnual {
			cal.annual[monthDay{d.Month(), d.Day()}] = struct{}{}
			continue
		}
		cal.exact[d] = struct{}{}
	}
	return cal
}

// IsHoliday reports whether date is a day off.
func (c *HolidayCalendar) IsHoliday(date time.Time) bool {
	if c == nil {
		return false
	}
	d := civilDate(date)
	if _, ok := c.exact[d]; ok {
		return true
	}
	_, ok := c.annual[monthDay{d.Month(), d.Day()}]
	return ok
}

// ProjectHoliday returns the dates inside window on which h falls. Annual
// holidays are projected onto every year the window touches plus the
// neighbouring ones; a 29 February holiday only lands in leap years.
func ProjectHoliday(h models.Holiday, window DateWindow) []time.Time {
	d := civilDate(h.Date)
	if !h.IsAnnual {
		if window.Contains(d) {
			return []time.Time{d}
		}
		return nil
	}
	var out []time.Time
	for year := window.From.Year() - 1; year <= window.To.Year()+1; year++ {
		projected := time.Date(year, d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		if projected.Month() != d.Month() {
			continue
		}
		if window.Contains(projected) {
			out = append(out, projected)
		}
	}
	return out
}

// DateWindow is an inclusive range of calendar dates.
type DateWindow struct {
	From time.Time
	To   time.Time
}

// NewDateWindow builds a window and rejects reversed bounds.
func NewDateWindow(from, to time.Time) (DateWindow, error) {
	w := DateWindow{From: civilDate(from), To: civilDate(to)}
	if w.To.Before(w.From) {
		return DateWindow{}, appErrors.Clone(appErrors.ErrInvalidWindow,
			fmt.Sprintf("date_to %s is before date_from %s", formatDate(w.To), formatDate(w.From)))
	}
	return w, nil
}

// DayWindow covers exactly one date.
func DayWindow(date time.Time) DateWindow {
	d := civilDate(date)
	return DateWindow{From: d, To: d}
}

// WeekWindow covers the Monday to Sunday week containing date.
func WeekWindow(date time.Time) DateWindow {
	d := civilDate(date)
	monday := d.AddDate(0, 0, -weekdayIndex(d))
	return DateWindow{From: monday, To: monday.AddDate(0, 0, 6)}
}

// Contains reports whether date falls inside the window.
func (w DateWindow) Contains(date time.Time) bool {
	d := civilDate(date)
	return !d.Before(w.From) && !d.After(w.To)
}

// Days returns the number of dates in the window.
func (w DateWindow) Days() int {
	return int(w.To.Sub(w.From).Hours()/24) + 1
}

// Clip intersects two windows. ok is false when they are disjoint.
func (w DateWindow) Clip(other DateWindow) (DateWindow, bool) {
	out := w
	if other.From.After(out.From) {
		out.From = other.From
	}
	if other.To.Before(out.To) {
		out.To = other.To
	}
	if out.To.Before(out.From) {
		return DateWindow{}, false
	}
	return out, true
}

func (w DateWindow) String() string {
	return formatDate(w.From) + ".." + formatDate(w.To)
}

// TimeInterval is a half-open [Start, End) slot on one date.
type TimeInterval struct {
	Date  time.Time
	Start models.TimeOfDay
	End   models.TimeOfDay
}

// Valid reports whether the interval is non-empty.
func (i TimeInterval) Valid() bool {
	return i.Start < i.End
}

// Overlaps reports whether both intervals share a date and some instant.
// Touching endpoints do not overlap.
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	if !civilDate(i.Date).Equal(civilDate(other.Date)) {
		return false
	}
	return i.Start < other.End && other.Start < i.End
}

// Duration returns the length of the interval.
func (i TimeInterval) Duration() time.Duration {
	if !i.Valid() {
		return 0
	}
	return time.Duration(i.End-i.Start) * time.Second
}

// Hours returns the length of the interval in fractional hours.
func (i TimeInterval) Hours() float64 {
	return i.Duration().Hours()
}
