package service

import (
	"math"
	"sort"

	"github.com/noah-isme/uni-schedule-api/internal/dto"
	"github.com/noah-isme/uni-schedule-api/internal/models"
)

type hoursTally struct {
	seconds     int64
	occurrences []Occurrence
}

func (t *hoursTally) add(occ Occurrence) {
	t.seconds += int64(occ.Interval.End - occ.Interval.Start)
	t.occurrences = append(t.occurrences, occ)
}

func (t *hoursTally) hours() float64 {
	return float64(t.seconds) / 3600
}

func (t *hoursTally) refs() []dto.OccurrenceRef {
	sortOccurrences(t.occurrences)
	refs := make([]dto.OccurrenceRef, 0, len(t.occurrences))
	for _, occ := range t.occurrences {
		refs = append(refs, occ.Ref())
	}
	return refs
}

// roundHours rounds for display only.
func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}

// ProfessorWarnings sums scheduled hours per subject assignment and flags
// assignments scheduled beyond their contracted hours. The comparison uses
// unrounded totals. inScope, when set, limits which assignments may be
// reported. Warnings are ordered by assignment id.
func ProfessorWarnings(occurrences []Occurrence, assignments []models.SubjectAssignment, inScope func(assignmentID int64) bool) []dto.ProfessorWarning {
	tallies := make(map[int64]*hoursTally)
	for _, occ := range occurrences {
		t, ok := tallies[occ.SubjectAssignmentID]
		if !ok {
			t = &hoursTally{}
			tallies[occ.SubjectAssignmentID] = t
		}
		t.add(occ)
	}

	warnings := make([]dto.ProfessorWarning, 0)
	for _, a := range assignments {
		if inScope != nil && !inScope(a.ID) {
			continue
		}
		t, ok := tallies[a.ID]
		if !ok {
			continue
		}
		scheduled := t.hours()
		if scheduled <= a.HoursPerSubject {
			continue
		}
		warnings = append(warnings, dto.ProfessorWarning{
			SubjectAssignmentID: a.ID,
			ProfessorID:         a.ProfessorID,
			ProfessorName:       a.ProfessorName,
			SubjectID:           a.SubjectID,
			SubjectName:         a.SubjectName,
			ScheduledHours:      roundHours(scheduled),
			AllowedHours:        roundHours(a.HoursPerSubject),
			ExcessHours:         roundHours(scheduled - a.HoursPerSubject),
			Lessons:             t.refs(),
		})
	}
	sort.Slice(warnings, func(i, j int) bool {
		return warnings[i].SubjectAssignmentID < warnings[j].SubjectAssignmentID
	})
	return warnings
}

// SubjectWarnings sums scheduled hours per subject across every assignment
// teaching it and flags subjects beyond their allocated hours. Subjects
// without an allocation are not checked. Warnings are ordered by subject id.
func SubjectWarnings(occurrences []Occurrence, allocations []models.SubjectAllocation) []dto.SubjectWarning {
	tallies := make(map[int64]*hoursTally)
	for _, occ := range occurrences {
		t, ok := tallies[occ.SubjectID]
		if !ok {
			t = &hoursTally{}
			tallies[occ.SubjectID] = t
		}
		t.add(occ)
	}

	warnings := make([]dto.SubjectWarning, 0)
	for _, s := range allocations {
		t, ok := tallies[s.ID]
		if !ok {
			continue
		}
		scheduled := t.hours()
		if scheduled <= s.AllocatedHours {
			continue
		}
		warnings = append(warnings, dto.SubjectWarning{
			SubjectID:      s.ID,
			SubjectName:    s.Name,
			SubjectCode:    s.Code,
			ScheduledHours: roundHours(scheduled),
			AllocatedHours: roundHours(s.AllocatedHours),
			ExcessHours:    roundHours(scheduled - s.AllocatedHours),
			Lessons:        t.refs(),
		})
	}
	sort.Slice(warnings, func(i, j int) bool {
		return warnings[i].SubjectID < warnings[j].SubjectID
	})
	return warnings
}

// CombineWarnings assembles the combined warnings payload.
func CombineWarnings(professor []dto.ProfessorWarning, subject []dto.SubjectWarning) dto.CombinedWarnings {
	if professor == nil {
		professor = make([]dto.ProfessorWarning, 0)
	}
	if subject == nil {
		subject = make([]dto.SubjectWarning, 0)
	}
	return dto.CombinedWarnings{
		ProfessorWarnings:      professor,
		SubjectWarnings:        subject,
		TotalProfessorWarnings: len(professor),
		TotalSubjectWarnings:   len(subject),
		TotalWarnings:          len(professor) + len(subject),
	}
}
