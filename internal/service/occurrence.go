package service

import (
	"fmt"
	"time"

	"github.com/noah-isme/uni-schedule-api/internal/dto"
	"github.com/noah-isme/uni-schedule-api/internal/models"
)

// Occurrence is one concrete lesson on the calendar. It comes either from a
// manual lesson (LessonID set) or from one date of a recurring template
// (TemplateID set). Occurrences are derived per query and never stored.
type Occurrence struct {
	Key                 string
	LessonID            *int64
	TemplateID          *int64
	ScheduleID          int64
	Interval            TimeInterval
	RoomID              *int64
	IsOnline            bool
	GroupID             int64
	SubjectAssignmentID int64
	ProfessorID         int64
	SubjectID           int64
	LessonType          models.LessonType
}

// Date returns the calendar date of the occurrence.
func (o Occurrence) Date() time.Time {
	return o.Interval.Date
}

// resourceID returns the id booked for a resource type. ok is false when the
// occurrence does not hold that resource, e.g. the room of an online lesson.
func (o Occurrence) resourceID(kind dto.ResourceType) (int64, bool) {
	switch kind {
	case dto.ResourceRoom:
		if o.IsOnline || o.RoomID == nil {
			return 0, false
		}
		return *o.RoomID, true
	case dto.ResourceProfessor:
		return o.ProfessorID, o.ProfessorID != 0
	case dto.ResourceGroup:
		return o.GroupID, o.GroupID != 0
	default:
		return 0, false
	}
}

// Ref renders the occurrence for API payloads.
func (o Occurrence) Ref() dto.OccurrenceRef {
	ref := dto.OccurrenceRef{
		ID:                  o.Key,
		LessonID:            o.LessonID,
		RecurringTemplateID: o.TemplateID,
		ScheduleID:          o.ScheduleID,
		Date:                formatDate(o.Interval.Date),
		StartTime:           o.Interval.Start,
		EndTime:             o.Interval.End,
		IsOnline:            o.IsOnline,
		ProfessorID:         o.ProfessorID,
		GroupID:             o.GroupID,
		SubjectID:           o.SubjectID,
		SubjectAssignmentID: o.SubjectAssignmentID,
		LessonType:          o.LessonType,
	}
	if !o.IsOnline {
		ref.RoomID = o.RoomID
	}
	return ref
}

func lessonKey(id int64) string {
	return fmt.Sprintf("lesson:%d", id)
}

func templateKey(id int64, date time.Time) string {
	return fmt.Sprintf("template:%d:%s", id, formatDate(date))
}

// LessonOccurrence converts a manual lesson. Lessons with an empty time range
// are rejected.
func LessonOccurrence(lesson models.Lesson) (Occurrence, error) {
	interval := TimeInterval{Date: civilDate(lesson.Date), Start: lesson.StartTime, End: lesson.EndTime}
	if !interval.Valid() {
		return Occurrence{}, fmt.Errorf("lesson %d: start_time %s is not before end_time %s", lesson.ID, lesson.StartTime, lesson.EndTime)
	}
	id := lesson.ID
	return Occurrence{
		Key:                 lessonKey(lesson.ID),
		LessonID:            &id,
		ScheduleID:          lesson.ScheduleID,
		Interval:            interval,
		RoomID:              lesson.RoomID,
		IsOnline:            lesson.IsOnline,
		GroupID:             lesson.GroupID,
		SubjectAssignmentID: lesson.SubjectAssignmentID,
		LessonType:          lesson.LessonType,
	}, nil
}
