package models

import (
	"strings"
	"time"
)

// LessonType enumerates lesson delivery formats.
type LessonType string

const (
	LessonTypeLecture  LessonType = "lecture"
	LessonTypePractice LessonType = "practice"
	LessonTypeLab      LessonType = "lab"
	LessonTypeSeminar  LessonType = "seminar"
)

// Valid reports whether the lesson type is one of the known values.
func (t LessonType) Valid() bool {
	switch LessonType(strings.ToLower(string(t))) {
	case LessonTypeLecture, LessonTypePractice, LessonTypeLab, LessonTypeSeminar:
		return true
	default:
		return false
	}
}

// RecurringTemplate describes a weekly lesson pattern. Its lessons are
// derived on demand and never stored by the conflict engine.
type RecurringTemplate struct {
	ID                  int64      `db:"id" json:"id"`
	Name                *string    `db:"name" json:"name,omitempty"`
	ScheduleID          int64      `db:"schedule_id" json:"schedule_id"`
	GroupID             int64      `db:"group_id" json:"group_id"`
	SubjectAssignmentID int64      `db:"subject_assignment_id" json:"subject_assignment_id"`
	RoomID              *int64     `db:"room_id" json:"room_id"`
	IsOnline            bool       `db:"is_online" json:"is_online"`
	LessonType          LessonType `db:"lesson_type" json:"lesson_type"`
	DaysOfWeek          Weekdays   `db:"days_of_week" json:"days_of_week"`
	StartTime           TimeOfDay  `db:"start_time" json:"start_time"`
	EndTime             TimeOfDay  `db:"end_time" json:"end_time"`
	StartDate           time.Time  `db:"start_date" json:"start_date"`
	EndDate             *time.Time `db:"end_date" json:"end_date,omitempty"`
	UpdatedAt           time.Time  `db:"updated_at" json:"-"`
}
