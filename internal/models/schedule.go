package models

import "time"

// Schedule is a timetable for one semester. Semester bounds are joined in so
// the conflict queries can default their window to the whole semester.
type Schedule struct {
	ID            int64     `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	SemesterID    int64     `db:"semester_id" json:"semester_id"`
	SemesterStart time.Time `db:"semester_start" json:"semester_start"`
	SemesterEnd   time.Time `db:"semester_end" json:"semester_end"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
