package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-schedule-api/internal/models"
	"github.com/noah-isme/uni-schedule-api/pkg/config"
)

const (
	segmentCookieName    = "cutover_segment"
	defaultStageHeader   = "X-Cutover-Stage"
	defaultSegmentHeader = "X-Client-Segment"
)

// CutoverService reports the rollout stage of the conflict endpoints and
// probes the legacy scheduling backend they replace.
type CutoverService struct {
	cfg     config.CutoverConfig
	metrics *MetricsService
	logger  *zap.Logger
	client  *http.Client
}

// NewCutoverService constructs a CutoverService.
func NewCutoverService(cfg config.CutoverConfig, metrics *MetricsService, logger *zap.Logger) *CutoverService {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.HealthCheckTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &CutoverService{
		cfg:     cfg,
		metrics: metrics,
		logger:  logger,
		client:  &http.Client{Timeout: timeout},
	}
}

// Stage determines the current rollout stage from the flags.
func (s *CutoverService) Stage() models.CutoverStage {
	if s == nil {
		return models.CutoverStageLegacy
	}

	switch {
	case s.cfg.RouteToGo && (s.cfg.LegacyReadOnly || s.cfg.CanaryPercentage >= 100):
		return models.CutoverStageFull
	case s.cfg.RouteToGo:
		return models.CutoverStageCanary
	case s.cfg.ShadowTraffic:
		return models.CutoverStageShadow
	default:
		return models.CutoverStageLegacy
	}
}

// HeadersForRequest returns the rollout headers for r. A client keeps its
// segment, and so its canary membership, across requests.
func (s *CutoverService) HeadersForRequest(r *http.Request) models.CutoverHeaders {
	if s == nil {
		return models.CutoverHeaders{}
	}

	stageHeader := s.cfg.StageHeader
	if stageHeader == "" {
		stageHeader = defaultStageHeader
	}
	segmentHeader := s.cfg.SegmentHeader
	if segmentHeader == "" {
		segmentHeader = defaultSegmentHeader
	}

	segment := segmentForRequest(r, segmentHeader)
	stage := s.Stage()

	return models.CutoverHeaders{
		StageHeader:   stageHeader,
		Stage:         stage,
		SegmentHeader: segmentHeader,
		Segment:       segment,
		Canary:        s.inCanary(stage, segment),
	}
}

func (s *CutoverService) inCanary(stage models.CutoverStage, segment string) bool {
	switch stage {
	case models.CutoverStageFull:
		return true
	case models.CutoverStageCanary:
		return bucket(segment) < uint64(s.cfg.CanaryPercentage)
	default:
		return false
	}
}

func segmentForRequest(r *http.Request, headerName string) string {
	if r == nil {
		return "unknown"
	}
	if value := strings.TrimSpace(r.Header.Get(headerName)); value != "" {
		return value
	}
	if cookie, err := r.Cookie(segmentCookieName); err == nil {
		if trimmed := strings.TrimSpace(cookie.Value); trimmed != "" {
			return trimmed
		}
	}

	source := clientSource(r)
	if source == "" {
		source = r.UserAgent()
	}
	if source == "" {
		source = "fallback"
	}
	return fmt.Sprintf("segment-%02d", bucket(source))
}

func bucket(key string) uint64 {
	return xxhash.Sum64String(key) % 100
}

func clientSource(r *http.Request) string {
	// first hop of a proxy chain wins
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return strings.TrimSpace(host)
}

// PingLegacy probes the health endpoint of the legacy backend.
func (s *CutoverService) PingLegacy(ctx context.Context) (models.CutoverPingResult, error) {
	result := models.CutoverPingResult{
		Target:       "legacy",
		Stage:        s.Stage(),
		RouteToGo:    s.cfg.RouteToGo,
		Shadow:       s.cfg.ShadowTraffic,
		LegacyLocked: s.cfg.LegacyReadOnly,
		CanaryPct:    s.cfg.CanaryPercentage,
		ObservedAt:   time.Now().UTC(),
	}

	if s.cfg.LegacyBaseURL == "" {
		err := errors.New("legacy base URL not configured")
		result.Error = err.Error()
		return result, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.LegacyBaseURL+"/health", nil)
	if err != nil {
		result.Error = err.Error()
		return result, err
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	result.Duration = time.Since(start)

	statusCode := http.StatusServiceUnavailable
	if err != nil {
		result.Error = err.Error()
	} else {
		defer resp.Body.Close()
		statusCode = resp.StatusCode
		result.StatusCode = resp.StatusCode
		result.Reachable = resp.StatusCode < http.StatusInternalServerError
		if !result.Reachable {
			result.Error = fmt.Sprintf("received status %d", resp.StatusCode)
			err = fmt.Errorf("legacy health check failed: %s", result.Error)
		}
	}

	s.metrics.ObserveHTTPRequest(http.MethodGet, "cutover_legacy_health", statusCode, result.Duration)
	if err != nil {
		s.logger.Warn("legacy backend unhealthy",
			zap.String("stage", string(result.Stage)),
			zap.Int("status", statusCode),
			zap.Error(err),
		)
	}

	return result, err
}
