package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/uni-schedule-api/internal/dto"
	"github.com/noah-isme/uni-schedule-api/internal/models"
)

type snapshotSource interface {
	Schedule(ctx context.Context, scheduleID int64) (*models.Schedule, error)
	Load(ctx context.Context, scheduleID int64) (*ScheduleSnapshot, error)
}

// LessonConflictServiceConfig bounds façade queries.
type LessonConflictServiceConfig struct {
	MaxWindowDays int
}

// LessonConflictService answers the conflict summary, combined warnings and
// schedule groups queries. Every call loads a fresh snapshot and keeps
// nothing between calls, so identical inputs give identical results.
type LessonConflictService struct {
	loader  snapshotSource
	metrics *MetricsService
	logger  *zap.Logger
	cfg     LessonConflictServiceConfig
}

// NewLessonConflictService constructs the query façade.
func NewLessonConflictService(loader snapshotSource, metrics *MetricsService, logger *zap.Logger, cfg LessonConflictServiceConfig) *LessonConflictService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LessonConflictService{loader: loader, metrics: metrics, logger: logger, cfg: cfg}
}

// ConflictsSummary reports double-booked rooms, professors and groups of the
// schedule inside the requested window.
func (s *LessonConflictService) ConflictsSummary(ctx context.Context, scheduleID int64, spec WindowSpec) (*dto.ConflictsSummary, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveConflictQuery("conflicts_summary", time.Since(start)) }()

	snap, err := s.loader.Load(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	window, ok, err := spec.Resolve(snap.Semester(), s.cfg.MaxWindowDays)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &dto.ConflictsSummary{Single: []dto.ConflictEntry{}, Shared: []dto.ConflictEntry{}}, nil
	}

	summary, batch, err := SummarizeConflicts(snap, window)
	if err != nil {
		s.logger.Warn("conflict summary failed", zap.Int64("schedule_id", scheduleID), zap.Error(err))
		return nil, err
	}
	s.observeBatch(scheduleID, batch)
	s.metrics.RecordConflicts(len(summary.Single), len(summary.Shared))
	return &summary, nil
}

// CombinedWarnings reports professor and subject workload overruns over the
// whole semester.
func (s *LessonConflictService) CombinedWarnings(ctx context.Context, scheduleID int64) (*dto.CombinedWarnings, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveConflictQuery("combined_warnings", time.Since(start)) }()

	snap, err := s.loader.Load(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	warnings, batch, err := SummarizeWarnings(snap)
	if err != nil {
		s.logger.Warn("workload warnings failed", zap.Int64("schedule_id", scheduleID), zap.Error(err))
		return nil, err
	}
	s.observeBatch(scheduleID, batch)
	s.metrics.RecordWorkloadWarnings(warnings.TotalProfessorWarnings, warnings.TotalSubjectWarnings)
	return &warnings, nil
}

// ScheduleGroups lists the groups taking part in the schedule.
func (s *LessonConflictService) ScheduleGroups(ctx context.Context, scheduleID int64) (*dto.ScheduleGroups, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveConflictQuery("schedule_groups", time.Since(start)) }()

	snap, err := s.loader.Load(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	groups, err := SummarizeGroups(snap)
	if err != nil {
		return nil, err
	}
	return &groups, nil
}

func (s *LessonConflictService) observeBatch(scheduleID int64, batch occurrenceBatch) {
	s.metrics.ObserveOccurrences(len(batch.occurrences))
	s.metrics.RecordInvalidTemplates(batch.invalidTemplates)
	for _, issue := range batch.issues {
		fields := []zap.Field{zap.Int64("schedule_id", scheduleID), zap.String("kind", issue.Kind), zap.String("reason", issue.Reason)}
		if issue.TemplateID != nil {
			fields = append(fields, zap.Int64("template_id", *issue.TemplateID))
		}
		if issue.LessonID != nil {
			fields = append(fields, zap.Int64("lesson_id", *issue.LessonID))
		}
		s.logger.Warn("skipped invalid schedule input", fields...)
	}
}
