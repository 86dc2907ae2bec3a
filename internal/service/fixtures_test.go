package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/noah-isme/uni-schedule-api/internal/models"
)

func day(raw string) time.Time {
	d, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		panic(err)
	}
	return d
}

func tod(raw string) models.TimeOfDay {
	t, err := models.ParseTimeOfDay(raw)
	if err != nil {
		panic(err)
	}
	return t
}

func int64Ptr(v int64) *int64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }

// memoryStore serves every collaborator input from memory.
type memoryStore struct {
	schedules   map[int64]models.Schedule
	templates   []models.RecurringTemplate
	lessons     []models.Lesson
	holidays    []models.Holiday
	assignments []models.SubjectAssignment
	allocations []models.SubjectAllocation
	rooms       []models.Room
	groups      []models.Group
	version     string
	stored      int

	failTemplates error
	versionErr    error
}

func (m *memoryStore) FindByID(ctx context.Context, id int64) (*models.Schedule, error) {
	s, ok := m.schedules[id]
	if !ok {
		return nil, fmt.Errorf("find schedule %d: %w", id, sql.ErrNoRows)
	}
	return &s, nil
}

func (m *memoryStore) ListIDsBySemester(ctx context.Context, semesterID int64) ([]int64, error) {
	var ids []int64
	for id, s := range m.schedules {
		if s.SemesterID == semesterID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (m *memoryStore) DataVersion(ctx context.Context, semesterID int64) (string, error) {
	return m.version, m.versionErr
}

func (m *memoryStore) ListBySchedules(ctx context.Context, scheduleIDs []int64) ([]models.RecurringTemplate, error) {
	if m.failTemplates != nil {
		return nil, m.failTemplates
	}
	var out []models.RecurringTemplate
	for _, tpl := range m.templates {
		if containsID(scheduleIDs, tpl.ScheduleID) {
			out = append(out, tpl)
		}
	}
	return out, nil
}

func (m *memoryStore) ListManualBySchedules(ctx context.Context, scheduleIDs []int64, from, to time.Time) ([]models.Lesson, error) {
	var out []models.Lesson
	for _, l := range m.lessons {
		if containsID(scheduleIDs, l.ScheduleID) && !l.Date.Before(from) && !l.Date.After(to) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memoryStore) List(ctx context.Context, filter models.HolidayFilter) ([]models.Holiday, error) {
	var out []models.Holiday
	for _, h := range m.holidays {
		if !h.IsAnnual {
			if filter.DateFrom != nil && h.Date.Before(*filter.DateFrom) {
				continue
			}
			if filter.DateTo != nil && h.Date.After(*filter.DateTo) {
				continue
			}
		}
		out = append(out, h)
	}
	return out, nil
}

func (m *memoryStore) ListAssignments(ctx context.Context, semesterID int64) ([]models.SubjectAssignment, error) {
	return m.assignments, nil
}

func (m *memoryStore) ListSubjectAllocations(ctx context.Context, semesterID int64) ([]models.SubjectAllocation, error) {
	return m.allocations, nil
}

func (m *memoryStore) ListRooms(ctx context.Context) ([]models.Room, error) {
	return m.rooms, nil
}

func (m *memoryStore) ListGroups(ctx context.Context) ([]models.Group, error) {
	return m.groups, nil
}

func (m *memoryStore) CountByTemplate(ctx context.Context, templateID int64, since *time.Time) (int, error) {
	return m.stored, nil
}

// templateByID adapts memoryStore to the template lookup.
type templateByID struct{ store *memoryStore }

func (t templateByID) FindByID(ctx context.Context, id int64) (*models.RecurringTemplate, error) {
	for _, tpl := range t.store.templates {
		if tpl.ID == id {
			tpl := tpl
			return &tpl, nil
		}
	}
	return nil, fmt.Errorf("find recurring template %d: %w", id, sql.ErrNoRows)
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func newLoader(store *memoryStore, cross bool) *SnapshotLoader {
	return NewSnapshotLoader(store, store, store, store, store, store, nil, nil, SnapshotLoaderConfig{CrossSchedule: cross})
}

// scenarioStore is schedule 1 with template T (Mon/Wed 10:00-11:30 in room
// 101 during February 2025) and a manual lesson L on Wednesday 5 February
// 10:30-11:00 in the same room for another group and professor.
func scenarioStore() *memoryStore {
	return &memoryStore{
		schedules: map[int64]models.Schedule{
			1: {ID: 1, Name: "Spring CS-1", SemesterID: 10, SemesterStart: day("2025-02-01"), SemesterEnd: day("2025-06-30")},
		},
		templates: []models.RecurringTemplate{{
			ID:                  1,
			ScheduleID:          1,
			GroupID:             1,
			SubjectAssignmentID: 7,
			RoomID:              int64Ptr(101),
			LessonType:          models.LessonTypeLecture,
			DaysOfWeek:          models.Weekdays{0, 2},
			StartTime:           tod("10:00"),
			EndTime:             tod("11:30"),
			StartDate:           day("2025-02-03"),
			EndDate:             timePtr(day("2025-02-28")),
		}},
		lessons: []models.Lesson{{
			ID:                  1,
			ScheduleID:          1,
			GroupID:             2,
			SubjectAssignmentID: 8,
			RoomID:              int64Ptr(101),
			LessonType:          models.LessonTypePractice,
			Date:                day("2025-02-05"),
			StartTime:           tod("10:30"),
			EndTime:             tod("11:00"),
		}},
		assignments: []models.SubjectAssignment{
			{ID: 7, SubjectID: 5, SubjectName: "Algorithms", ProfessorID: 3, ProfessorName: "Ivanova", HoursPerSubject: 40},
			{ID: 8, SubjectID: 6, SubjectName: "Databases", ProfessorID: 4, ProfessorName: "Petrov", HoursPerSubject: 40},
		},
		allocations: []models.SubjectAllocation{
			{ID: 5, Name: "Algorithms", Code: "CS101", AllocatedHours: 60},
			{ID: 6, Name: "Databases", Code: "CS102", AllocatedHours: 60},
		},
		rooms:   []models.Room{{ID: 101, Number: "R101", Capacity: 30}},
		groups:  []models.Group{{ID: 1, Name: "CS-11"}, {ID: 2, Name: "CS-12"}},
		version: "v1",
	}
}
