package models

import "time"

// Lesson is a one-off lesson entered manually on the calendar.
type Lesson struct {
	ID                  int64      `db:"id" json:"id"`
	ScheduleID          int64      `db:"schedule_id" json:"schedule_id"`
	GroupID             int64      `db:"group_id" json:"group_id"`
	SubjectAssignmentID int64      `db:"subject_assignment_id" json:"subject_assignment_id"`
	RoomID              *int64     `db:"room_id" json:"room_id"`
	IsOnline            bool       `db:"is_online" json:"is_online"`
	LessonType          LessonType `db:"lesson_type" json:"lesson_type"`
	Date                time.Time  `db:"date" json:"date"`
	StartTime           TimeOfDay  `db:"start_time" json:"start_time"`
	EndTime             TimeOfDay  `db:"end_time" json:"end_time"`
	UpdatedAt           time.Time  `db:"updated_at" json:"-"`
}
