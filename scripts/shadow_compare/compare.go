package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/noah-isme/uni-schedule-api/internal/dto"
)

// Parity is set equality: both backends must report the same conflict pairs
// and the same warning ids, in any order.

func compareSummaries(legacy, current []byte) (bool, string, error) {
	var a, b dto.ConflictsSummary
	if err := json.Unmarshal(legacy, &a); err != nil {
		return false, "", fmt.Errorf("decode legacy summary: %w", err)
	}
	if err := json.Unmarshal(current, &b); err != nil {
		return false, "", fmt.Errorf("decode go summary: %w", err)
	}
	return diffSets(conflictKeys(a), conflictKeys(b))
}

func compareWarnings(legacy, current []byte) (bool, string, error) {
	var a, b dto.CombinedWarnings
	if err := json.Unmarshal(legacy, &a); err != nil {
		return false, "", fmt.Errorf("decode legacy warnings: %w", err)
	}
	if err := json.Unmarshal(current, &b); err != nil {
		return false, "", fmt.Errorf("decode go warnings: %w", err)
	}
	return diffSets(warningKeys(a), warningKeys(b))
}

func compareGroups(legacy, current []byte) (bool, string, error) {
	var a, b dto.ScheduleGroups
	if err := json.Unmarshal(legacy, &a); err != nil {
		return false, "", fmt.Errorf("decode legacy groups: %w", err)
	}
	if err := json.Unmarshal(current, &b); err != nil {
		return false, "", fmt.Errorf("decode go groups: %w", err)
	}
	keys := func(g dto.ScheduleGroups) map[string]struct{} {
		out := make(map[string]struct{}, len(g.Groups))
		for _, group := range g.Groups {
			out[strconv.FormatInt(group.ID, 10)] = struct{}{}
		}
		return out
	}
	return diffSets(keys(a), keys(b))
}

// conflictKeys identifies a conflict by its kind, clashing resources and the
// unordered pair of occurrence ids.
func conflictKeys(s dto.ConflictsSummary) map[string]struct{} {
	out := make(map[string]struct{}, len(s.Single)+len(s.Shared))
	add := func(kind string, entries []dto.ConflictEntry) {
		for _, e := range entries {
			resources := make([]string, 0, len(e.Resources))
			for _, r := range e.Resources {
				resources = append(resources, fmt.Sprintf("%s:%d", r.ResourceType, r.ResourceID))
			}
			sort.Strings(resources)
			pair := []string{e.OccurrenceA.ID, e.OccurrenceB.ID}
			sort.Strings(pair)
			out[strings.Join([]string{kind, strings.Join(resources, "+"), pair[0], pair[1]}, "|")] = struct{}{}
		}
	}
	add("single", s.Single)
	add("shared", s.Shared)
	return out
}

func warningKeys(w dto.CombinedWarnings) map[string]struct{} {
	out := make(map[string]struct{}, len(w.ProfessorWarnings)+len(w.SubjectWarnings))
	for _, p := range w.ProfessorWarnings {
		out["professor:"+strconv.FormatInt(p.SubjectAssignmentID, 10)] = struct{}{}
	}
	for _, s := range w.SubjectWarnings {
		out["subject:"+strconv.FormatInt(s.SubjectID, 10)] = struct{}{}
	}
	return out
}

func diffSets(legacy, current map[string]struct{}) (bool, string, error) {
	var missing, extra []string
	for k := range legacy {
		if _, ok := current[k]; !ok {
			missing = append(missing, k)
		}
	}
	for k := range current {
		if _, ok := legacy[k]; !ok {
			extra = append(extra, k)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return true, "", nil
	}
	sort.Strings(missing)
	sort.Strings(extra)
	return false, fmt.Sprintf("missing in go: %v; extra in go: %v", missing, extra), nil
}
