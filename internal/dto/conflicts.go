package dto

import "github.com/noah-isme/uni-schedule-api/internal/models"

// ResourceType names the resource two lessons can double-book.
type ResourceType string

const (
	ResourceRoom      ResourceType = "room"
	ResourceProfessor ResourceType = "professor"
	ResourceGroup     ResourceType = "group"
)

// ResourceTypes lists resource types in reporting order.
var ResourceTypes = []ResourceType{ResourceRoom, ResourceProfessor, ResourceGroup}

// OccurrenceRef identifies one concrete lesson, either a manual lesson or one
// date generated by a recurring template.
type OccurrenceRef struct {
	ID                  string            `json:"id"`
	LessonID            *int64            `json:"lesson_id,omitempty"`
	RecurringTemplateID *int64            `json:"recurring_template_id,omitempty"`
	ScheduleID          int64             `json:"schedule_id"`
	Date                string            `json:"date"`
	StartTime           models.TimeOfDay  `json:"start_time"`
	EndTime             models.TimeOfDay  `json:"end_time"`
	RoomID              *int64            `json:"room_id"`
	IsOnline            bool              `json:"is_online"`
	ProfessorID         int64             `json:"professor_id"`
	GroupID             int64             `json:"group_id"`
	SubjectID           int64             `json:"subject_id"`
	SubjectAssignmentID int64             `json:"subject_assignment_id"`
	LessonType          models.LessonType `json:"lesson_type"`
}

// ResourceRef names one clashing resource.
type ResourceRef struct {
	ResourceType ResourceType `json:"resource_type"`
	ResourceID   int64        `json:"resource_id"`
}

// ConflictEntry is one pair of occurrences double-booking at least one
// resource. Single entries carry exactly one resource; shared entries carry
// every clashing resource and ResourceType is the first of them.
type ConflictEntry struct {
	ResourceType ResourceType  `json:"resource_type"`
	ResourceID   int64         `json:"resource_id"`
	Resources    []ResourceRef `json:"resources"`
	Date         string        `json:"date"`
	OccurrenceA  OccurrenceRef `json:"occurrence_a"`
	OccurrenceB  OccurrenceRef `json:"occurrence_b"`
}

// QueryIssue reports input that was skipped while answering a query, such as
// a template violating its expansion rules.
type QueryIssue struct {
	Kind       string `json:"kind"`
	TemplateID *int64 `json:"template_id,omitempty"`
	LessonID   *int64 `json:"lesson_id,omitempty"`
	Reason     string `json:"reason"`
}

// ConflictsSummary is the payload of the conflict summary endpoint.
type ConflictsSummary struct {
	Single         []ConflictEntry `json:"single"`
	Shared         []ConflictEntry `json:"shared"`
	TotalConflicts int             `json:"total_conflicts"`
	Issues         []QueryIssue    `json:"issues,omitempty"`
}

// ConflictsQuery selects the schedule and window of a conflict summary.
// Either DateFrom/DateTo or View with Date may be given; neither means the
// whole semester.
type ConflictsQuery struct {
	ScheduleID int64  `form:"schedule_id" json:"schedule_id" validate:"required,min=1"`
	DateFrom   string `form:"date_from" json:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo     string `form:"date_to" json:"date_to" validate:"omitempty,datetime=2006-01-02"`
	View       string `form:"view" json:"view" validate:"omitempty,oneof=day week"`
	Date       string `form:"date" json:"date" validate:"required_with=View,omitempty,datetime=2006-01-02"`
}

// ScheduleQuery carries only a schedule id.
type ScheduleQuery struct {
	ScheduleID int64 `form:"schedule_id" json:"schedule_id" validate:"required,min=1"`
}

// ExportQuery selects the output format of a report export.
type ExportQuery struct {
	Format string `form:"format" json:"format" validate:"omitempty,oneof=csv pdf"`
}

// RefreshResponse acknowledges a cache refresh request.
type RefreshResponse struct {
	ScheduleID  int64  `json:"schedule_id"`
	Invalidated int    `json:"invalidated"`
	JobID       string `json:"job_id,omitempty"`
	Queued      bool   `json:"queued"`
	RequestedBy string `json:"requested_by,omitempty"`
}
