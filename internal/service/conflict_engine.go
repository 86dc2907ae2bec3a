package service

import (
	"errors"
	"fmt"
	"sort"

	"github.com/noah-isme/uni-schedule-api/internal/dto"
	"github.com/noah-isme/uni-schedule-api/internal/models"
	appErrors "github.com/noah-isme/uni-schedule-api/pkg/errors"
)

const (
	issueInvalidTemplate = "invalid_template"
	issueInvalidLesson   = "invalid_lesson"
)

// referenceIndex resolves ids carried by occurrences.
type referenceIndex struct {
	assignments map[int64]models.SubjectAssignment
	rooms       map[int64]struct{}
	groups      map[int64]models.Group
}

func newReferenceIndex(snap *ScheduleSnapshot) referenceIndex {
	idx := referenceIndex{
		assignments: make(map[int64]models.SubjectAssignment, len(snap.Assignments)),
		rooms:       make(map[int64]struct{}, len(snap.Rooms)),
		groups:      make(map[int64]models.Group, len(snap.Groups)),
	}
	for _, a := range snap.Assignments {
		idx.assignments[a.ID] = a
	}
	for _, r := range snap.Rooms {
		idx.rooms[r.ID] = struct{}{}
	}
	for _, g := range snap.Groups {
		idx.groups[g.ID] = g
	}
	return idx
}

// resolve fills professor and subject ids and rejects references to unknown
// rooms, groups or assignments.
func (idx referenceIndex) resolve(occ *Occurrence) error {
	assignment, ok := idx.assignments[occ.SubjectAssignmentID]
	if !ok {
		return inconsistentResource(*occ, "subject_assignment", occ.SubjectAssignmentID)
	}
	if assignment.ProfessorID == 0 {
		return inconsistentResource(*occ, "professor", assignment.ProfessorID)
	}
	occ.ProfessorID = assignment.ProfessorID
	occ.SubjectID = assignment.SubjectID
	if !occ.IsOnline && occ.RoomID != nil {
		if _, ok := idx.rooms[*occ.RoomID]; !ok {
			return inconsistentResource(*occ, "room", *occ.RoomID)
		}
	}
	if _, ok := idx.groups[occ.GroupID]; !ok {
		return inconsistentResource(*occ, "group", occ.GroupID)
	}
	return nil
}

func inconsistentResource(occ Occurrence, kind string, id int64) error {
	return appErrors.WithDetails(appErrors.ErrInconsistentResource,
		fmt.Sprintf("%s references unknown %s %d", occ.Key, kind, id),
		map[string]interface{}{"occurrence": occ.Key, "resource_type": kind, "resource_id": id})
}

// occurrenceBatch is the expanded input of one query.
type occurrenceBatch struct {
	occurrences      []Occurrence
	issues           []dto.QueryIssue
	invalidTemplates int
}

// buildOccurrences expands templates and manual lessons of the snapshot inside
// window. Invalid templates and lessons are skipped and reported as issues
// when they belong to the queried schedule. Unknown references fail the
// whole batch.
func buildOccurrences(snap *ScheduleSnapshot, window DateWindow) (occurrenceBatch, error) {
	var batch occurrenceBatch
	holidays := NewHolidayCalendar(snap.Holidays)
	semesterEnd := snap.Schedule.SemesterEnd
	target := snap.Schedule.ID

	for _, tpl := range snap.Templates {
		occs, err := ExpandTemplate(tpl, window, semesterEnd, holidays)
		if err != nil {
			if !errors.Is(err, appErrors.ErrInvalidTemplate) {
				return occurrenceBatch{}, err
			}
			batch.invalidTemplates++
			if tpl.ScheduleID == target {
				id := tpl.ID
				batch.issues = append(batch.issues, dto.QueryIssue{Kind: issueInvalidTemplate, TemplateID: &id, Reason: issueReason(err)})
			}
			continue
		}
		batch.occurrences = append(batch.occurrences, occs...)
	}

	for _, lesson := range snap.Lessons {
		if !window.Contains(lesson.Date) {
			continue
		}
		occ, err := LessonOccurrence(lesson)
		if err != nil {
			if lesson.ScheduleID == target {
				id := lesson.ID
				batch.issues = append(batch.issues, dto.QueryIssue{Kind: issueInvalidLesson, LessonID: &id, Reason: err.Error()})
			}
			continue
		}
		batch.occurrences = append(batch.occurrences, occ)
	}

	idx := newReferenceIndex(snap)
	seen := make(map[string]struct{}, len(batch.occurrences))
	resolved := batch.occurrences[:0]
	for _, occ := range batch.occurrences {
		if _, dup := seen[occ.Key]; dup {
			continue
		}
		seen[occ.Key] = struct{}{}
		if err := idx.resolve(&occ); err != nil {
			return occurrenceBatch{}, err
		}
		resolved = append(resolved, occ)
	}
	batch.occurrences = resolved
	sortOccurrences(batch.occurrences)
	sort.SliceStable(batch.issues, func(i, j int) bool {
		return issueSortKey(batch.issues[i]) < issueSortKey(batch.issues[j])
	})
	return batch, nil
}

func issueReason(err error) string {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		if details, ok := appErr.Details.(map[string]interface{}); ok {
			if reason, ok := details["reason"].(string); ok {
				return reason
			}
		}
		return appErr.Message
	}
	return err.Error()
}

func issueSortKey(issue dto.QueryIssue) string {
	var id int64
	switch {
	case issue.TemplateID != nil:
		id = *issue.TemplateID
	case issue.LessonID != nil:
		id = *issue.LessonID
	}
	return fmt.Sprintf("%s:%020d", issue.Kind, id)
}

// SummarizeConflicts detects conflicts inside window for the snapshot's
// schedule. Occurrences of other schedules in the snapshot only matter when
// they clash with the schedule itself.
func SummarizeConflicts(snap *ScheduleSnapshot, window DateWindow) (dto.ConflictsSummary, occurrenceBatch, error) {
	batch, err := buildOccurrences(snap, window)
	if err != nil {
		return dto.ConflictsSummary{}, occurrenceBatch{}, err
	}
	target := snap.Schedule.ID
	pairs := DetectConflicts(batch.occurrences, func(a, b Occurrence) bool {
		return a.ScheduleID == target || b.ScheduleID == target
	})
	summary := ClassifyConflicts(pairs)
	summary.Issues = batch.issues
	return summary, batch, nil
}

// SummarizeWarnings computes workload warnings over the whole semester.
// Professor contracts are checked against lessons of every loaded schedule,
// reporting only assignments taught in the queried schedule. Subject
// allocations are checked against the queried schedule alone.
func SummarizeWarnings(snap *ScheduleSnapshot) (dto.CombinedWarnings, occurrenceBatch, error) {
	batch, err := buildOccurrences(snap, snap.Semester())
	if err != nil {
		return dto.CombinedWarnings{}, occurrenceBatch{}, err
	}
	target := snap.Schedule.ID
	own := make([]Occurrence, 0, len(batch.occurrences))
	taught := make(map[int64]struct{})
	for _, occ := range batch.occurrences {
		if occ.ScheduleID != target {
			continue
		}
		own = append(own, occ)
		taught[occ.SubjectAssignmentID] = struct{}{}
	}

	professor := ProfessorWarnings(batch.occurrences, snap.Assignments, func(id int64) bool {
		_, ok := taught[id]
		return ok
	})
	subject := SubjectWarnings(own, snap.Allocations)
	combined := CombineWarnings(professor, subject)
	combined.Issues = batch.issues
	return combined, batch, nil
}

// SummarizeGroups lists the groups with at least one lesson in the schedule
// during the semester, ordered by name then id.
func SummarizeGroups(snap *ScheduleSnapshot) (dto.ScheduleGroups, error) {
	batch, err := buildOccurrences(snap, snap.Semester())
	if err != nil {
		return dto.ScheduleGroups{}, err
	}
	idx := newReferenceIndex(snap)
	seen := make(map[int64]struct{})
	groups := make([]dto.GroupRef, 0)
	for _, occ := range batch.occurrences {
		if occ.ScheduleID != snap.Schedule.ID {
			continue
		}
		if _, ok := seen[occ.GroupID]; ok {
			continue
		}
		seen[occ.GroupID] = struct{}{}
		groups = append(groups, dto.GroupRef{ID: occ.GroupID, Name: idx.groups[occ.GroupID].Name})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Name != groups[j].Name {
			return groups[i].Name < groups[j].Name
		}
		return groups[i].ID < groups[j].ID
	})
	return dto.ScheduleGroups{Groups: groups}, nil
}
