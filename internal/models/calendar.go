package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical wire format for calendar dates.
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// TimeOfDay is a wall-clock time stored as seconds after midnight.
type TimeOfDay int

// NewTimeOfDay builds a TimeOfDay from its components.
func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay(hour*3600 + minute*60 + second)
}

// ParseTimeOfDay accepts HH:MM or HH:MM:SS. 24:00 is allowed as end of day.
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	raw = strings.TrimSpace(raw)
	parts := strings.Split(raw, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time of day %q", raw)
	}
	values := make([]int, 3)
	for i, part := range parts {
		// postgres may append fractional seconds
		if i == 2 {
			part = strings.SplitN(part, ".", 2)[0]
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return 0, fmt.Errorf("invalid time of day %q: %w", raw, err)
		}
		values[i] = v
	}
	if values[1] < 0 || values[1] > 59 || values[2] < 0 || values[2] > 59 {
		return 0, fmt.Errorf("invalid time of day %q", raw)
	}
	t := NewTimeOfDay(values[0], values[1], values[2])
	if t < 0 || t > secondsPerDay {
		return 0, fmt.Errorf("time of day %q out of range", raw)
	}
	return t, nil
}

// Seconds returns the number of seconds after midnight.
func (t TimeOfDay) Seconds() int {
	return int(t)
}

// String renders HH:MM:SS.
func (t TimeOfDay) String() string {
	s := int(t)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}

// MarshalJSON encodes the time as "HH:MM:SS".
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes "HH:MM" or "HH:MM:SS".
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Scan implements sql.Scanner for TIME columns.
func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*t = NewTimeOfDay(v.Hour(), v.Minute(), v.Second())
		return nil
	case []byte:
		parsed, err := ParseTimeOfDay(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case string:
		parsed, err := ParseTimeOfDay(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case nil:
		return fmt.Errorf("time of day cannot be null")
	default:
		return fmt.Errorf("unsupported time of day source %T", src)
	}
}

// Value implements driver.Valuer.
func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

// Weekdays is a set of weekday indexes where 0 is Monday and 6 is Sunday.
// It is stored as a JSON array string, e.g. "[0,2,4]".
type Weekdays []int

// Normalized returns a sorted copy without duplicates.
func (w Weekdays) Normalized() Weekdays {
	seen := make(map[int]struct{}, len(w))
	out := make(Weekdays, 0, len(w))
	for _, d := range w {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

// Contains reports whether the weekday index is part of the set.
func (w Weekdays) Contains(day int) bool {
	for _, d := range w {
		if d == day {
			return true
		}
	}
	return false
}

// Scan implements sql.Scanner.
func (w *Weekdays) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case []byte:
		raw = string(v)
	case string:
		raw = v
	case nil:
		*w = nil
		return nil
	default:
		return fmt.Errorf("unsupported weekdays source %T", src)
	}
	parsed, err := ParseWeekdays(raw)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// Value implements driver.Valuer.
func (w Weekdays) Value() (driver.Value, error) {
	if w == nil {
		return "[]", nil
	}
	payload, err := json.Marshal([]int(w))
	if err != nil {
		return nil, err
	}
	return string(payload), nil
}

// ParseWeekdays reads a JSON array ("[0,2,4]") or a comma separated list ("0,2,4").
func ParseWeekdays(raw string) (Weekdays, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Weekdays{}, nil
	}
	if strings.HasPrefix(raw, "[") {
		var days []int
		if err := json.Unmarshal([]byte(raw), &days); err != nil {
			return nil, fmt.Errorf("parse weekdays %q: %w", raw, err)
		}
		return Weekdays(days), nil
	}
	parts := strings.Split(raw, ",")
	days := make(Weekdays, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("parse weekdays %q: %w", raw, err)
		}
		days = append(days, d)
	}
	return days, nil
}

// Holiday is a university day off. Annual holidays repeat on the same
// month/day every year regardless of the stored year.
type Holiday struct {
	ID        int64     `db:"id" json:"id"`
	Name      *string   `db:"name" json:"name,omitempty"`
	IsAnnual  bool      `db:"is_annual" json:"is_annual"`
	Date      time.Time `db:"date" json:"date"`
	UpdatedAt time.Time `db:"updated_at" json:"-"`
}

// HolidayFilter narrows holiday listings to a date range.
type HolidayFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
}
