package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-schedule-api/internal/models"
)

// weeklyOccurrences builds n lessons of the given length for one assignment.
func weeklyOccurrences(assignmentID, subjectID int64, n int, start, end string) []Occurrence {
	out := make([]Occurrence, 0, n)
	base := day("2025-02-03")
	for i := 0; i < n; i++ {
		date := base.AddDate(0, 0, 7*i)
		occ := Occurrence{
			Key:                 templateKey(assignmentID, date),
			TemplateID:          int64Ptr(assignmentID),
			ScheduleID:          1,
			Interval:            TimeInterval{Date: date, Start: tod(start), End: tod(end)},
			SubjectAssignmentID: assignmentID,
			SubjectID:           subjectID,
			ProfessorID:         3,
		}
		out = append(out, occ)
	}
	return out
}

func TestProfessorWarningsAtLimit(t *testing.T) {
	occs := weeklyOccurrences(7, 5, 20, "10:00", "12:00")
	assignments := []models.SubjectAssignment{{ID: 7, SubjectID: 5, ProfessorID: 3, HoursPerSubject: 40}}

	assert.Empty(t, ProfessorWarnings(occs, assignments, nil))
}

func TestProfessorWarningsJustOverLimit(t *testing.T) {
	occs := weeklyOccurrences(7, 5, 20, "10:00", "12:00")
	// 36 extra seconds brings the total to 40.01 hours
	extra := Occurrence{
		Key:                 lessonKey(99),
		LessonID:            int64Ptr(99),
		ScheduleID:          1,
		Interval:            TimeInterval{Date: day("2025-06-02"), Start: models.NewTimeOfDay(10, 0, 0), End: models.NewTimeOfDay(10, 0, 36)},
		SubjectAssignmentID: 7,
		SubjectID:           5,
		ProfessorID:         3,
	}
	occs = append(occs, extra)
	assignments := []models.SubjectAssignment{{ID: 7, SubjectID: 5, SubjectName: "Algorithms", ProfessorID: 3, ProfessorName: "Ivanova", HoursPerSubject: 40}}

	warnings := ProfessorWarnings(occs, assignments, nil)
	require.Len(t, warnings, 1)
	w := warnings[0]
	assert.Equal(t, int64(7), w.SubjectAssignmentID)
	assert.Equal(t, "Ivanova", w.ProfessorName)
	assert.Equal(t, "Algorithms", w.SubjectName)
	assert.InDelta(t, 40.01, w.ScheduledHours, 1e-9)
	assert.InDelta(t, 40, w.AllowedHours, 1e-9)
	assert.InDelta(t, 0.01, w.ExcessHours, 1e-9)
	assert.Len(t, w.Lessons, 21)
}

func TestProfessorWarningsTinyExcessIsStillReported(t *testing.T) {
	occs := weeklyOccurrences(7, 5, 1, "10:00", "11:00")
	occs[0].Interval.End = models.NewTimeOfDay(11, 0, 1)
	assignments := []models.SubjectAssignment{{ID: 7, HoursPerSubject: 1}}

	warnings := ProfessorWarnings(occs, assignments, nil)
	require.Len(t, warnings, 1)
	assert.Zero(t, warnings[0].ExcessHours)
}

func TestProfessorWarningsScope(t *testing.T) {
	occs := append(weeklyOccurrences(7, 5, 3, "10:00", "12:00"), weeklyOccurrences(8, 6, 3, "10:00", "12:00")...)
	assignments := []models.SubjectAssignment{{ID: 7, HoursPerSubject: 1}, {ID: 8, HoursPerSubject: 1}}

	warnings := ProfessorWarnings(occs, assignments, func(id int64) bool { return id == 8 })
	require.Len(t, warnings, 1)
	assert.Equal(t, int64(8), warnings[0].SubjectAssignmentID)
}

func TestSubjectWarningsAcrossAssignments(t *testing.T) {
	occs := append(weeklyOccurrences(7, 5, 10, "10:00", "11:30"), weeklyOccurrences(8, 5, 10, "12:00", "13:30")...)
	allocations := []models.SubjectAllocation{
		{ID: 5, Name: "Algorithms", Code: "CS101", AllocatedHours: 24},
		{ID: 6, Name: "Databases", Code: "CS102", AllocatedHours: 1},
	}

	warnings := SubjectWarnings(occs, allocations)
	require.Len(t, warnings, 1)
	w := warnings[0]
	assert.Equal(t, int64(5), w.SubjectID)
	assert.Equal(t, "CS101", w.SubjectCode)
	assert.InDelta(t, 30, w.ScheduledHours, 1e-9)
	assert.InDelta(t, 6, w.ExcessHours, 1e-9)
	assert.Len(t, w.Lessons, 20)
	assert.Equal(t, "2025-02-03", w.Lessons[0].Date)
}

func TestSubjectWarningsWithoutAllocation(t *testing.T) {
	occs := weeklyOccurrences(7, 5, 10, "10:00", "12:00")
	assert.Empty(t, SubjectWarnings(occs, nil))
}

func TestCombineWarnings(t *testing.T) {
	combined := CombineWarnings(nil, nil)
	assert.NotNil(t, combined.ProfessorWarnings)
	assert.NotNil(t, combined.SubjectWarnings)
	assert.Zero(t, combined.TotalWarnings)

	occs := weeklyOccurrences(7, 5, 2, "10:00", "12:00")
	combined = CombineWarnings(
		ProfessorWarnings(occs, []models.SubjectAssignment{{ID: 7, HoursPerSubject: 1}}, nil),
		SubjectWarnings(occs, []models.SubjectAllocation{{ID: 5, AllocatedHours: 1}}),
	)
	assert.Equal(t, 1, combined.TotalProfessorWarnings)
	assert.Equal(t, 1, combined.TotalSubjectWarnings)
	assert.Equal(t, 2, combined.TotalWarnings)
}

func TestRoundHours(t *testing.T) {
	assert.Equal(t, 1.33, roundHours(4.0/3))
	assert.Equal(t, 0.01, roundHours(0.01))
	assert.Equal(t, 2.5, roundHours(2.5))
}
