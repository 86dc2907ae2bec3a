package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/uni-schedule-api/internal/models"
)

// ScheduleRepository reads schedules together with their semester bounds.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository creates a new schedule repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// FindByID returns the schedule or sql.ErrNoRows.
func (r *ScheduleRepository) FindByID(ctx context.Context, id int64) (*models.Schedule, error) {
	const query = `SELECT s.id, s.name, s.semester_id, sem.start_date AS semester_start, sem.end_date AS semester_end, s.updated_at
FROM schedule s JOIN semester sem ON sem.id = s.semester_id WHERE s.id = $1`
	var schedule models.Schedule
	if err := r.db.GetContext(ctx, &schedule, query, id); err != nil {
		return nil, fmt.Errorf("find schedule %d: %w", id, err)
	}
	return &schedule, nil
}

// ListIDsBySemester returns every schedule id sharing the semester.
func (r *ScheduleRepository) ListIDsBySemester(ctx context.Context, semesterID int64) ([]int64, error) {
	const query = `SELECT id FROM schedule WHERE semester_id = $1 ORDER BY id`
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, semesterID); err != nil {
		return nil, fmt.Errorf("list schedules of semester %d: %w", semesterID, err)
	}
	return ids, nil
}

type versionRow struct {
	Source string `db:"source"`
	Rows   int64  `db:"rows"`
	Digest string `db:"digest"`
}

// versionSources lists every table a conflict or workload answer is built
// from, scoped to the semester where the table allows it. Each source is
// fingerprinted by row count and an md5 over its rows, so in-place edits
// change the version even when updated_at is left alone.
var versionSources = []struct {
	name  string
	alias string
	from  string
}{
	{"semester", "sem", "semester sem WHERE sem.id = $1"},
	{"schedule", "s", "schedule s WHERE s.semester_id = $1"},
	{"template", "t", "recurring_lesson_template t JOIN schedule s ON s.id = t.schedule_id WHERE s.semester_id = $1"},
	{"lesson", "l", "lesson l JOIN schedule s ON s.id = l.schedule_id WHERE s.semester_id = $1"},
	{"professor_workload", "w", "professor_workload w WHERE w.semester_id = $1"},
	{"professor", "p", "professor p WHERE p.id IN (SELECT professor_id FROM professor_workload WHERE semester_id = $1)"},
	{"assignment", "sa", "subject_assignment sa JOIN professor_workload w ON w.id = sa.workload_id WHERE w.semester_id = $1"},
	{"subject", "sub", "subject sub WHERE sub.semester_id = $1"},
	{"room", "r", "room r"},
	{"study_group", "g", "study_group g"},
	{"holiday", "h", "university_holiday h"},
}

var dataVersionQuery = buildDataVersionQuery()

func buildDataVersionQuery() string {
	parts := make([]string, 0, len(versionSources))
	for i, src := range versionSources {
		columns := fmt.Sprintf("'%s', COUNT(*), COALESCE(md5(string_agg(%s::text, '|' ORDER BY %s.id)), '')", src.name, src.alias, src.alias)
		if i == 0 {
			columns = fmt.Sprintf("'%s' AS source, COUNT(*) AS rows, COALESCE(md5(string_agg(%s::text, '|' ORDER BY %s.id)), '') AS digest", src.name, src.alias, src.alias)
		}
		parts = append(parts, "SELECT "+columns+"\nFROM "+src.from)
	}
	return strings.Join(parts, "\nUNION ALL\n")
}

// DataVersion fingerprints every input of the conflict queries for a
// semester.
func (r *ScheduleRepository) DataVersion(ctx context.Context, semesterID int64) (string, error) {
	var rows []versionRow
	if err := r.db.SelectContext(ctx, &rows, dataVersionQuery, semesterID); err != nil {
		return "", fmt.Errorf("data version of semester %d: %w", semesterID, err)
	}
	var b strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&b, "%s:%d:%s;", row.Source, row.Rows, row.Digest)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64String(b.String())), nil
}

// Ping checks database availability for readiness probes.
func (r *ScheduleRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
