package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-schedule-api/internal/dto"
	"github.com/noah-isme/uni-schedule-api/internal/models"
	appErrors "github.com/noah-isme/uni-schedule-api/pkg/errors"
	"github.com/noah-isme/uni-schedule-api/pkg/export"
)

const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

type reportSource interface {
	ConflictsSummary(ctx context.Context, scheduleID int64, spec WindowSpec, match func(string) bool) (*QueryResult[dto.ConflictsSummary], error)
	CombinedWarnings(ctx context.Context, scheduleID int64, match func(string) bool) (*QueryResult[dto.CombinedWarnings], error)
}

// Renderer turns a dataset into a document.
type Renderer interface {
	Render(data export.Dataset) ([]byte, error)
	ContentType() string
	Extension() string
}

// ExportDocument is a rendered report ready to be streamed.
type ExportDocument struct {
	ID          string
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders conflict and workload reports as CSV or PDF.
type ExportService struct {
	source    reportSource
	schedules scheduleLookup
	renderers map[string]Renderer
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService. Nil renderers fall back to the
// default CSV and PDF exporters.
func NewExportService(source reportSource, schedules scheduleLookup, logger *zap.Logger, csv, pdf Renderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		source:    source,
		schedules: schedules,
		renderers: map[string]Renderer{FormatCSV: csv, FormatPDF: pdf},
		logger:    logger,
		now:       time.Now,
	}
}

// ConflictsReport renders the conflicts of a schedule window, one row per
// occurrence pair.
func (s *ExportService) ConflictsReport(ctx context.Context, scheduleID int64, spec WindowSpec, format string) (*ExportDocument, error) {
	renderer, err := s.renderer(format)
	if err != nil {
		return nil, err
	}
	schedule, err := s.schedules.Schedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	result, err := s.source.ConflictsSummary(ctx, scheduleID, spec, nil)
	if err != nil {
		return nil, err
	}
	return s.render(renderer, "conflicts", schedule, conflictsDataset(schedule, spec, result.Payload))
}

// WarningsReport renders the workload warnings of a schedule.
func (s *ExportService) WarningsReport(ctx context.Context, scheduleID int64, format string) (*ExportDocument, error) {
	renderer, err := s.renderer(format)
	if err != nil {
		return nil, err
	}
	schedule, err := s.schedules.Schedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	result, err := s.source.CombinedWarnings(ctx, scheduleID, nil)
	if err != nil {
		return nil, err
	}
	return s.render(renderer, "workload_warnings", schedule, warningsDataset(schedule, result.Payload))
}

func (s *ExportService) renderer(format string) (Renderer, error) {
	if format == "" {
		format = FormatCSV
	}
	renderer, ok := s.renderers[strings.ToLower(format)]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	return renderer, nil
}

func (s *ExportService) render(renderer Renderer, kind string, schedule *models.Schedule, data export.Dataset) (*ExportDocument, error) {
	body, err := renderer.Render(data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	doc := &ExportDocument{
		ID:          uuid.NewString(),
		Filename:    fmt.Sprintf("%s_%d_%s.%s", kind, schedule.ID, s.now().UTC().Format("20060102_150405"), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Body:        body,
	}
	s.logger.Info("report exported",
		zap.String("export_id", doc.ID),
		zap.String("kind", kind),
		zap.Int64("schedule_id", schedule.ID),
		zap.String("format", renderer.Extension()),
		zap.Int("rows", len(data.Rows)),
	)
	return doc, nil
}

var conflictHeaders = []string{"Kind", "Resources", "Date", "Lesson A", "Time A", "Lesson B", "Time B"}

func conflictsDataset(schedule *models.Schedule, spec WindowSpec, summary *dto.ConflictsSummary) export.Dataset {
	data := export.Dataset{
		Title:    "Schedule conflicts: " + schedule.Name,
		Subtitle: fmt.Sprintf("Window %s", spec.Key()),
		Headers:  conflictHeaders,
	}
	if summary == nil {
		return data
	}
	data.Subtitle = fmt.Sprintf("Window %s, %d conflicts", spec.Key(), summary.TotalConflicts)
	add := func(kind string, entries []dto.ConflictEntry) {
		for _, e := range entries {
			data.Rows = append(data.Rows, map[string]string{
				"Kind":      kind,
				"Resources": resourcesLabel(e.Resources),
				"Date":      e.Date,
				"Lesson A":  e.OccurrenceA.ID,
				"Time A":    timeRange(e.OccurrenceA),
				"Lesson B":  e.OccurrenceB.ID,
				"Time B":    timeRange(e.OccurrenceB),
			})
		}
	}
	add("single", summary.Single)
	add("shared", summary.Shared)
	return data
}

var warningHeaders = []string{"Kind", "Subject", "Professor", "Scheduled h", "Limit h", "Excess h", "Lessons"}

func warningsDataset(schedule *models.Schedule, warnings *dto.CombinedWarnings) export.Dataset {
	data := export.Dataset{
		Title:   "Workload warnings: " + schedule.Name,
		Headers: warningHeaders,
	}
	if warnings == nil {
		return data
	}
	data.Subtitle = fmt.Sprintf("%d professor warnings, %d subject warnings", warnings.TotalProfessorWarnings, warnings.TotalSubjectWarnings)
	for _, w := range warnings.ProfessorWarnings {
		data.Rows = append(data.Rows, map[string]string{
			"Kind":        "professor",
			"Subject":     w.SubjectName,
			"Professor":   w.ProfessorName,
			"Scheduled h": formatHours(w.ScheduledHours),
			"Limit h":     formatHours(w.AllowedHours),
			"Excess h":    formatHours(w.ExcessHours),
			"Lessons":     strconv.Itoa(len(w.Lessons)),
		})
	}
	for _, w := range warnings.SubjectWarnings {
		subject := w.SubjectName
		if w.SubjectCode != "" {
			subject = w.SubjectCode + " " + subject
		}
		data.Rows = append(data.Rows, map[string]string{
			"Kind":        "subject",
			"Subject":     subject,
			"Scheduled h": formatHours(w.ScheduledHours),
			"Limit h":     formatHours(w.AllocatedHours),
			"Excess h":    formatHours(w.ExcessHours),
			"Lessons":     strconv.Itoa(len(w.Lessons)),
		})
	}
	return data
}

func resourcesLabel(resources []dto.ResourceRef) string {
	parts := make([]string, 0, len(resources))
	for _, r := range resources {
		parts = append(parts, fmt.Sprintf("%s %d", r.ResourceType, r.ResourceID))
	}
	return strings.Join(parts, ", ")
}

func timeRange(ref dto.OccurrenceRef) string {
	return ref.StartTime.String()[:5] + "-" + ref.EndTime.String()[:5]
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 2, 64)
}
