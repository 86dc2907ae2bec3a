package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/uni-schedule-api/internal/models"
	appErrors "github.com/noah-isme/uni-schedule-api/pkg/errors"
)

type scheduleReader interface {
	FindByID(ctx context.Context, id int64) (*models.Schedule, error)
	ListIDsBySemester(ctx context.Context, semesterID int64) ([]int64, error)
}

type templateReader interface {
	ListBySchedules(ctx context.Context, scheduleIDs []int64) ([]models.RecurringTemplate, error)
}

type lessonReader interface {
	ListManualBySchedules(ctx context.Context, scheduleIDs []int64, from, to time.Time) ([]models.Lesson, error)
}

type holidayReader interface {
	List(ctx context.Context, filter models.HolidayFilter) ([]models.Holiday, error)
}

type workloadReader interface {
	ListAssignments(ctx context.Context, semesterID int64) ([]models.SubjectAssignment, error)
	ListSubjectAllocations(ctx context.Context, semesterID int64) ([]models.SubjectAllocation, error)
}

type referenceReader interface {
	ListRooms(ctx context.Context) ([]models.Room, error)
	ListGroups(ctx context.Context) ([]models.Group, error)
}

// ScheduleSnapshot is one consistent batch of inputs for a query. It is built
// once per query and never mutated afterwards.
type ScheduleSnapshot struct {
	Schedule    models.Schedule
	ScheduleIDs []int64
	Templates   []models.RecurringTemplate
	Lessons     []models.Lesson
	Holidays    []models.Holiday
	Assignments []models.SubjectAssignment
	Allocations []models.SubjectAllocation
	Rooms       []models.Room
	Groups      []models.Group
}

// Semester returns the semester of the schedule as a date window.
func (s *ScheduleSnapshot) Semester() DateWindow {
	return DateWindow{From: civilDate(s.Schedule.SemesterStart), To: civilDate(s.Schedule.SemesterEnd)}
}

// SnapshotLoaderConfig tunes the loader.
type SnapshotLoaderConfig struct {
	// CrossSchedule loads every schedule of the semester so rooms and
	// professors shared between schedules are checked too.
	CrossSchedule bool
}

// SnapshotLoader fetches query inputs concurrently.
type SnapshotLoader struct {
	schedules  scheduleReader
	templates  templateReader
	lessons    lessonReader
	holidays   holidayReader
	workloads  workloadReader
	references referenceReader
	metrics    *MetricsService
	logger     *zap.Logger
	cfg        SnapshotLoaderConfig
}

// NewSnapshotLoader wires the loader.
func NewSnapshotLoader(schedules scheduleReader, templates templateReader, lessons lessonReader, holidays holidayReader, workloads workloadReader, references referenceReader, metrics *MetricsService, logger *zap.Logger, cfg SnapshotLoaderConfig) *SnapshotLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotLoader{
		schedules:  schedules,
		templates:  templates,
		lessons:    lessons,
		holidays:   holidays,
		workloads:  workloads,
		references: references,
		metrics:    metrics,
		logger:     logger,
		cfg:        cfg,
	}
}

// Schedule resolves a schedule id, mapping a missing row to UNKNOWN_SCHEDULE.
func (l *SnapshotLoader) Schedule(ctx context.Context, scheduleID int64) (*models.Schedule, error) {
	start := time.Now()
	schedule, err := l.schedules.FindByID(ctx, scheduleID)
	l.metrics.ObserveDBQuery("schedule", time.Since(start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUnknownSchedule, fmt.Sprintf("schedule %d not found", scheduleID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}
	return schedule, nil
}

// Load fetches everything a query over scheduleID needs.
func (l *SnapshotLoader) Load(ctx context.Context, scheduleID int64) (*ScheduleSnapshot, error) {
	schedule, err := l.Schedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	snap := &ScheduleSnapshot{Schedule: *schedule, ScheduleIDs: []int64{schedule.ID}}

	if l.cfg.CrossSchedule {
		ids, err := timed(l.metrics, "schedule_ids", func() ([]int64, error) {
			return l.schedules.ListIDsBySemester(ctx, schedule.SemesterID)
		})
		if err != nil {
			return nil, loadError(err, "schedules of semester")
		}
		snap.ScheduleIDs = mergeIDs(snap.ScheduleIDs, ids)
	}

	semester := snap.Semester()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		templates, err := timed(l.metrics, "templates", func() ([]models.RecurringTemplate, error) {
			return l.templates.ListBySchedules(gctx, snap.ScheduleIDs)
		})
		snap.Templates = templates
		return loadError(err, "recurring templates")
	})
	g.Go(func() error {
		lessons, err := timed(l.metrics, "lessons", func() ([]models.Lesson, error) {
			return l.lessons.ListManualBySchedules(gctx, snap.ScheduleIDs, semester.From, semester.To)
		})
		snap.Lessons = lessons
		return loadError(err, "lessons")
	})
	g.Go(func() error {
		holidays, err := timed(l.metrics, "holidays", func() ([]models.Holiday, error) {
			return l.holidays.List(gctx, models.HolidayFilter{})
		})
		snap.Holidays = holidays
		return loadError(err, "holidays")
	})
	g.Go(func() error {
		assignments, err := timed(l.metrics, "assignments", func() ([]models.SubjectAssignment, error) {
			return l.workloads.ListAssignments(gctx, schedule.SemesterID)
		})
		snap.Assignments = assignments
		return loadError(err, "subject assignments")
	})
	g.Go(func() error {
		allocations, err := timed(l.metrics, "allocations", func() ([]models.SubjectAllocation, error) {
			return l.workloads.ListSubjectAllocations(gctx, schedule.SemesterID)
		})
		snap.Allocations = allocations
		return loadError(err, "subject allocations")
	})
	g.Go(func() error {
		rooms, err := timed(l.metrics, "rooms", func() ([]models.Room, error) {
			return l.references.ListRooms(gctx)
		})
		snap.Rooms = rooms
		return loadError(err, "rooms")
	})
	g.Go(func() error {
		groups, err := timed(l.metrics, "groups", func() ([]models.Group, error) {
			return l.references.ListGroups(gctx)
		})
		snap.Groups = groups
		return loadError(err, "groups")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	l.logger.Debug("schedule snapshot loaded",
		zap.Int64("schedule_id", scheduleID),
		zap.Int("schedules", len(snap.ScheduleIDs)),
		zap.Int("templates", len(snap.Templates)),
		zap.Int("lessons", len(snap.Lessons)),
		zap.Int("holidays", len(snap.Holidays)),
	)
	return snap, nil
}

func timed[T any](metrics *MetricsService, label string, fetch func() (T, error)) (T, error) {
	start := time.Now()
	out, err := fetch()
	metrics.ObserveDBQuery(label, time.Since(start))
	return out, err
}

func loadError(err error, what string) error {
	if err == nil {
		return nil
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load "+what)
}

func mergeIDs(base, extra []int64) []int64 {
	seen := make(map[int64]struct{}, len(base)+len(extra))
	out := make([]int64, 0, len(base)+len(extra))
	for _, ids := range [][]int64{base, extra} {
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
