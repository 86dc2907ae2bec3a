package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

type endpoint struct {
	Name     string
	Path     string
	Compare  func(legacy, current []byte) (bool, string, error)
	Critical bool
}

type comparison struct {
	Endpoint       endpoint
	ScheduleID     int64
	LegacyStatus   int
	GoStatus       int
	StatusMatch    bool
	BodyMatch      bool
	Detail         string
	Error          error
	DurationGo     time.Duration
	DurationLegacy time.Duration
}

func endpoints(prefix string, scheduleID int64) []endpoint {
	id := strconv.FormatInt(scheduleID, 10)
	return []endpoint{
		{Name: "conflicts_summary", Path: prefix + "/lesson/conflicts/summary?schedule_id=" + id, Compare: compareSummaries, Critical: true},
		{Name: "combined_warnings", Path: prefix + "/professor_workload/warnings/combined/" + id, Compare: compareWarnings, Critical: true},
		{Name: "schedule_groups", Path: prefix + "/lesson/groups?schedule_id=" + id, Compare: compareGroups},
	}
}

func main() {
	var (
		goBase     string
		legacyBase string
		prefix     string
		ids        string
		timeout    time.Duration
	)

	flag.StringVar(&goBase, "go-base", "http://localhost:8080", "Go API base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:3000", "Legacy API base URL")
	flag.StringVar(&prefix, "prefix", "/api", "API prefix shared by both backends")
	flag.StringVar(&ids, "schedules", "", "Comma separated schedule ids")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "HTTP client timeout")
	flag.Parse()

	scheduleIDs, err := parseIDs(ids)
	if err != nil {
		log.Fatalf("invalid -schedules: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	var (
		comparisons  []comparison
		breaking     int
		optionalDiff int
	)

	for _, scheduleID := range scheduleIDs {
		for _, ep := range endpoints(prefix, scheduleID) {
			comp := compareEndpoint(client, goBase, legacyBase, ep)
			comp.ScheduleID = scheduleID
			if comp.Error != nil || !comp.StatusMatch || !comp.BodyMatch {
				if ep.Critical {
					breaking++
				} else {
					optionalDiff++
				}
			}
			comparisons = append(comparisons, comp)
		}
	}

	printReport(comparisons)

	fmt.Printf("Breaking diffs: %d, Optional diffs: %d\n", breaking, optionalDiff)
	if breaking > 0 {
		os.Exit(1)
	}
}

func parseIDs(raw string) ([]int64, error) {
	var out []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("bad schedule id %q", part)
		}
		out = append(out, id)
	}
	if len(out) == 0 {
		return nil, errors.New("no schedule ids given")
	}
	return out, nil
}

func compareEndpoint(client *http.Client, goBase, legacyBase string, ep endpoint) comparison {
	comp := comparison{Endpoint: ep}
	goBody, goStatus, goDur, goErr := fetch(client, goBase, ep.Path)
	legacyBody, legacyStatus, legacyDur, legacyErr := fetch(client, legacyBase, ep.Path)
	comp.DurationGo = goDur
	comp.DurationLegacy = legacyDur

	if goErr != nil {
		comp.Error = fmt.Errorf("go request failed: %w", goErr)
		return comp
	}
	if legacyErr != nil {
		comp.Error = fmt.Errorf("legacy request failed: %w", legacyErr)
		return comp
	}

	comp.GoStatus = goStatus
	comp.LegacyStatus = legacyStatus
	comp.StatusMatch = goStatus == legacyStatus
	if goStatus != http.StatusOK || legacyStatus != http.StatusOK {
		comp.BodyMatch = comp.StatusMatch
		return comp
	}

	match, detail, err := ep.Compare(legacyBody, goBody)
	if err != nil {
		comp.Error = err
		return comp
	}
	comp.BodyMatch = match
	comp.Detail = detail
	return comp
}

func fetch(client *http.Client, base, path string) ([]byte, int, time.Duration, error) {
	url := strings.TrimRight(base, "/") + path
	start := time.Now()
	resp, err := client.Get(url)
	if err != nil {
		return nil, 0, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, time.Since(start), err
	}
	return body, resp.StatusCode, time.Since(start), nil
}

func printReport(results []comparison) {
	fmt.Println("Shadow Compare Report")
	fmt.Println("======================")
	for _, res := range results {
		status := "OK"
		if res.Error != nil {
			status = "ERROR"
		} else if !res.StatusMatch || !res.BodyMatch {
			status = "DIFF"
		}
		fmt.Printf("[%s] schedule %d %s\n", status, res.ScheduleID, res.Endpoint.Name)
		fmt.Printf("  Go Status: %d (%s)\n", res.GoStatus, res.DurationGo)
		fmt.Printf("  Legacy Status: %d (%s)\n", res.LegacyStatus, res.DurationLegacy)
		if res.Error != nil {
			fmt.Printf("  Error: %v\n", res.Error)
			continue
		}
		fmt.Printf("  Status match: %t | Body match: %t | Critical: %t\n", res.StatusMatch, res.BodyMatch, res.Endpoint.Critical)
		if res.Detail != "" {
			fmt.Printf("  %s\n", res.Detail)
		}
	}
}
