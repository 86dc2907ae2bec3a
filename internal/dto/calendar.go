package dto

import "github.com/noah-isme/uni-schedule-api/internal/models"

// HolidayQuery filters the holiday listing.
type HolidayQuery struct {
	DateFrom string `form:"date_from" json:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"date_to" json:"date_to" validate:"omitempty,datetime=2006-01-02"`
}

// HolidayItem is a holiday with its dates projected into the queried range.
type HolidayItem struct {
	ID          int64    `json:"id"`
	Name        *string  `json:"name,omitempty"`
	Date        string   `json:"date"`
	IsAnnual    bool     `json:"is_annual"`
	Occurrences []string `json:"occurrences"`
}

// TemplateOccurrencesQuery bounds a template preview.
type TemplateOccurrencesQuery struct {
	DateFrom string `form:"date_from" json:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"date_to" json:"date_to" validate:"omitempty,datetime=2006-01-02"`
}

// TemplateOccurrence is one generated lesson date of a template.
type TemplateOccurrence struct {
	Date      string           `json:"date"`
	StartTime models.TimeOfDay `json:"start_time"`
	EndTime   models.TimeOfDay `json:"end_time"`
}

// TemplateOccurrences previews the lessons a template produces. StoredCount
// is the number of lessons the legacy backend has materialized for it.
type TemplateOccurrences struct {
	TemplateID  int64                `json:"template_id"`
	Count       int                  `json:"count"`
	FutureCount int                  `json:"future_count"`
	StoredCount int                  `json:"stored_count"`
	Occurrences []TemplateOccurrence `json:"occurrences"`
}
