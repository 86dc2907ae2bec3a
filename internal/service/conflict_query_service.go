package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-schedule-api/internal/dto"
	"github.com/noah-isme/uni-schedule-api/internal/models"
	appErrors "github.com/noah-isme/uni-schedule-api/pkg/errors"
	"github.com/noah-isme/uni-schedule-api/pkg/jobs"
)

// WarmupJobType identifies summary warm-up jobs on the queue.
const WarmupJobType = "conflicts.warmup"

type conflictFacade interface {
	ConflictsSummary(ctx context.Context, scheduleID int64, spec WindowSpec) (*dto.ConflictsSummary, error)
	CombinedWarnings(ctx context.Context, scheduleID int64) (*dto.CombinedWarnings, error)
	ScheduleGroups(ctx context.Context, scheduleID int64) (*dto.ScheduleGroups, error)
}

type scheduleLookup interface {
	Schedule(ctx context.Context, scheduleID int64) (*models.Schedule, error)
}

type dataVersioner interface {
	DataVersion(ctx context.Context, semesterID int64) (string, error)
}

type payloadCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, pattern string) (int, error)
}

type jobDispatcher interface {
	Enqueue(job jobs.Job) error
}

// QueryResult carries a façade payload with its validator.
type QueryResult[T any] struct {
	Payload     *T
	ETag        string
	CacheHit    bool
	NotModified bool
}

// ConflictQueryServiceConfig tunes caching.
type ConflictQueryServiceConfig struct {
	CacheTTL       time.Duration
	ComputeTimeout time.Duration
}

// ConflictQueryService puts a version keyed cache in front of the façade.
// Entries are keyed by schedule, window and the data version of the semester,
// so an edit to any input produces a new key and a new ETag.
type ConflictQueryService struct {
	facade    conflictFacade
	schedules scheduleLookup
	versions  dataVersioner
	cache     payloadCache
	queue     jobDispatcher
	logger    *zap.Logger
	cfg       ConflictQueryServiceConfig
}

// NewConflictQueryService wires the caching layer. cache and queue may be nil.
func NewConflictQueryService(facade conflictFacade, schedules scheduleLookup, versions dataVersioner, cache payloadCache, queue jobDispatcher, logger *zap.Logger, cfg ConflictQueryServiceConfig) *ConflictQueryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 30 * time.Second
	}
	return &ConflictQueryService{
		facade:    facade,
		schedules: schedules,
		versions:  versions,
		cache:     cache,
		queue:     queue,
		logger:    logger,
		cfg:       cfg,
	}
}

// ConflictsSummary returns the conflict summary of a schedule window.
// match is called with the ETag before computing; when it reports true the
// result is marked NotModified and carries no payload.
func (s *ConflictQueryService) ConflictsSummary(ctx context.Context, scheduleID int64, spec WindowSpec, match func(etag string) bool) (*QueryResult[dto.ConflictsSummary], error) {
	return cachedQuery(ctx, s, "summary", scheduleID, spec.Key(), match, func(ctx context.Context) (*dto.ConflictsSummary, error) {
		return s.facade.ConflictsSummary(ctx, scheduleID, spec)
	})
}

// CombinedWarnings returns the workload warnings of a schedule.
func (s *ConflictQueryService) CombinedWarnings(ctx context.Context, scheduleID int64, match func(etag string) bool) (*QueryResult[dto.CombinedWarnings], error) {
	return cachedQuery(ctx, s, "warnings", scheduleID, "semester", match, func(ctx context.Context) (*dto.CombinedWarnings, error) {
		return s.facade.CombinedWarnings(ctx, scheduleID)
	})
}

// ScheduleGroups returns the groups of a schedule.
func (s *ConflictQueryService) ScheduleGroups(ctx context.Context, scheduleID int64, match func(etag string) bool) (*QueryResult[dto.ScheduleGroups], error) {
	return cachedQuery(ctx, s, "groups", scheduleID, "semester", match, func(ctx context.Context) (*dto.ScheduleGroups, error) {
		return s.facade.ScheduleGroups(ctx, scheduleID)
	})
}

// Refresh drops cached results of the schedule and queues a warm-up.
func (s *ConflictQueryService) Refresh(ctx context.Context, scheduleID int64) (*dto.RefreshResponse, error) {
	if _, err := s.schedules.Schedule(ctx, scheduleID); err != nil {
		return nil, err
	}
	resp := &dto.RefreshResponse{ScheduleID: scheduleID}
	if s.cache != nil {
		n, err := s.cache.Invalidate(ctx, invalidationPattern(scheduleID))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to invalidate cached conflicts")
		}
		resp.Invalidated = n
	}
	if s.queue == nil {
		return resp, nil
	}
	job := jobs.Job{ID: uuid.NewString(), Type: WarmupJobType, Key: warmupKey(scheduleID), Payload: scheduleID}
	switch err := s.queue.Enqueue(job); {
	case err == nil:
		resp.JobID = job.ID
		resp.Queued = true
	case errors.Is(err, jobs.ErrDuplicate):
		resp.Queued = true
	default:
		s.logger.Warn("failed to queue conflict warm-up", zap.Int64("schedule_id", scheduleID), zap.Error(err))
	}
	return resp, nil
}

// HandleWarmup recomputes and caches every query of a schedule. It is the
// handler of the warm-up queue.
func (s *ConflictQueryService) HandleWarmup(ctx context.Context, job jobs.Job) error {
	scheduleID, ok := job.Payload.(int64)
	if !ok {
		return fmt.Errorf("warm-up job %s: unexpected payload %T", job.ID, job.Payload)
	}
	start := time.Now()
	var errs []error
	if _, err := s.ConflictsSummary(ctx, scheduleID, WindowSpec{}, nil); err != nil {
		errs = append(errs, err)
	}
	if _, err := s.CombinedWarnings(ctx, scheduleID, nil); err != nil {
		errs = append(errs, err)
	}
	if _, err := s.ScheduleGroups(ctx, scheduleID, nil); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	s.logger.Info("conflict cache warmed",
		zap.String("job_id", job.ID),
		zap.Int64("schedule_id", scheduleID),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

func cachedQuery[T any](ctx context.Context, s *ConflictQueryService, kind string, scheduleID int64, windowKey string, match func(string) bool, compute func(context.Context) (*T, error)) (*QueryResult[T], error) {
	schedule, err := s.schedules.Schedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	version, err := s.versions.DataVersion(ctx, schedule.SemesterID)
	if err != nil {
		s.logger.Warn("data version unavailable, bypassing cache", zap.Int64("schedule_id", scheduleID), zap.Error(err))
		version = ""
	}

	result := &QueryResult[T]{}
	var key string
	if version != "" {
		result.ETag = queryETag(kind, scheduleID, windowKey, version)
		if match != nil && match(result.ETag) {
			result.NotModified = true
			return result, nil
		}
		key = cacheKey(kind, scheduleID, windowKey, version)
		if s.cache != nil {
			var cached T
			if hit, _ := s.cache.Get(ctx, key, &cached); hit {
				result.Payload = &cached
				result.CacheHit = true
				return result, nil
			}
		}
	}

	computeCtx := ctx
	if s.cfg.ComputeTimeout > 0 {
		var cancel context.CancelFunc
		computeCtx, cancel = context.WithTimeout(ctx, s.cfg.ComputeTimeout)
		defer cancel()
	}
	payload, err := compute(computeCtx)
	if err != nil {
		return nil, err
	}
	result.Payload = payload
	if key != "" && s.cache != nil {
		_ = s.cache.Set(ctx, key, payload, s.cfg.CacheTTL)
	}
	return result, nil
}

func cacheKey(kind string, scheduleID int64, windowKey, version string) string {
	return fmt.Sprintf("conflicts:%s:%d:%s:%s", kind, scheduleID, windowKey, version)
}

func invalidationPattern(scheduleID int64) string {
	return fmt.Sprintf("conflicts:*:%d:*", scheduleID)
}

func warmupKey(scheduleID int64) string {
	return fmt.Sprintf("schedule:%d", scheduleID)
}

func queryETag(kind string, scheduleID int64, windowKey, version string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(cacheKey(kind, scheduleID, windowKey, version)))
}
