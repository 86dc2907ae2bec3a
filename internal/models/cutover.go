package models

import "time"

// CutoverStage enumerates the rollout phases away from the legacy scheduling
// backend.
type CutoverStage string

const (
	// CutoverStageLegacy means the legacy backend still serves all traffic.
	CutoverStageLegacy CutoverStage = "legacy"
	// CutoverStageShadow mirrors traffic here without affecting responses.
	CutoverStageShadow CutoverStage = "shadow"
	// CutoverStageCanary routes a share of clients here.
	CutoverStageCanary CutoverStage = "canary"
	// CutoverStageFull routes every client here; legacy is read-only.
	CutoverStageFull CutoverStage = "full-cutover"
)

// CutoverHeaders captures header metadata applied for observability.
type CutoverHeaders struct {
	StageHeader   string       `json:"stage_header"`
	Stage         CutoverStage `json:"stage"`
	SegmentHeader string       `json:"segment_header"`
	Segment       string       `json:"segment"`
	Canary        bool         `json:"canary"`
}

// CutoverPingResult describes the outcome of probing the legacy backend.
type CutoverPingResult struct {
	Target       string        `json:"target"`
	Reachable    bool          `json:"reachable"`
	Stage        CutoverStage  `json:"stage"`
	StatusCode   int           `json:"status_code"`
	Duration     time.Duration `json:"duration"`
	ObservedAt   time.Time     `json:"observed_at"`
	Error        string        `json:"error,omitempty"`
	RouteToGo    bool          `json:"route_to_go"`
	Shadow       bool          `json:"shadow"`
	LegacyLocked bool          `json:"legacy_readonly"`
	CanaryPct    int           `json:"canary_percentage"`
}
