package service

import (
	"fmt"
	"time"

	"github.com/noah-isme/uni-schedule-api/internal/dto"
	appErrors "github.com/noah-isme/uni-schedule-api/pkg/errors"
)

const (
	ViewDay  = "day"
	ViewWeek = "week"
)

// WindowSpec is an unresolved query window. The zero value means the whole
// semester of the queried schedule.
type WindowSpec struct {
	From *time.Time
	To   *time.Time
	View string
	Date *time.Time
}

// ParseWindowSpec reads the window parameters of a conflicts query.
func ParseWindowSpec(q dto.ConflictsQuery) (WindowSpec, error) {
	var spec WindowSpec
	parse := func(raw string) (*time.Time, error) {
		if raw == "" {
			return nil, nil
		}
		d, err := ParseDate(raw)
		if err != nil {
			return nil, err
		}
		return &d, nil
	}
	var err error
	if spec.From, err = parse(q.DateFrom); err != nil {
		return WindowSpec{}, err
	}
	if spec.To, err = parse(q.DateTo); err != nil {
		return WindowSpec{}, err
	}
	if spec.Date, err = parse(q.Date); err != nil {
		return WindowSpec{}, err
	}
	switch q.View {
	case "":
	case ViewDay, ViewWeek:
		if spec.Date == nil {
			return WindowSpec{}, appErrors.Clone(appErrors.ErrInvalidWindow, "date is required with view")
		}
		if spec.From != nil || spec.To != nil {
			return WindowSpec{}, appErrors.Clone(appErrors.ErrInvalidWindow, "view cannot be combined with date_from or date_to")
		}
		spec.View = q.View
	default:
		return WindowSpec{}, appErrors.Clone(appErrors.ErrInvalidWindow, fmt.Sprintf("unknown view %q", q.View))
	}
	return spec, nil
}

// Key renders the window request for cache keys.
func (w WindowSpec) Key() string {
	if w.View != "" && w.Date != nil {
		return w.View + "@" + formatDate(*w.Date)
	}
	from, to := "open", "open"
	if w.From != nil {
		from = formatDate(*w.From)
	}
	if w.To != nil {
		to = formatDate(*w.To)
	}
	return from + ".." + to
}

// Resolve turns the request into a concrete window inside semester. Windows
// longer than maxDays are rejected before clipping. ok is false when the
// window does not touch the semester at all.
func (w WindowSpec) Resolve(semester DateWindow, maxDays int) (window DateWindow, ok bool, err error) {
	switch w.View {
	case ViewDay:
		window = DayWindow(*w.Date)
	case ViewWeek:
		window = WeekWindow(*w.Date)
	default:
		from, to := semester.From, semester.To
		if w.From != nil {
			from = *w.From
		}
		if w.To != nil {
			to = *w.To
		}
		if window, err = NewDateWindow(from, to); err != nil {
			return DateWindow{}, false, err
		}
	}
	if maxDays > 0 && window.Days() > maxDays {
		return DateWindow{}, false, appErrors.Clone(appErrors.ErrInvalidWindow,
			fmt.Sprintf("window %s spans %d days, limit is %d", window, window.Days(), maxDays))
	}
	window, ok = window.Clip(semester)
	return window, ok, nil
}
