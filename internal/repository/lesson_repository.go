package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/uni-schedule-api/internal/models"
)

// LessonRepository reads manually placed lessons. Lessons generated from a
// template are re-derived from the template and never read here.
type LessonRepository struct {
	db *sqlx.DB
}

// NewLessonRepository constructs a lesson repository.
func NewLessonRepository(db *sqlx.DB) *LessonRepository {
	return &LessonRepository{db: db}
}

// ListManualBySchedules returns manual lessons of the schedules dated within [from, to].
func (r *LessonRepository) ListManualBySchedules(ctx context.Context, scheduleIDs []int64, from, to time.Time) ([]models.Lesson, error) {
	if len(scheduleIDs) == 0 {
		return nil, nil
	}
	const query = `SELECT id, schedule_id, group_id, subject_assignment_id, room_id, is_online, lesson_type, date, start_time, end_time, updated_at
FROM lesson
WHERE recurring_template_id IS NULL AND schedule_id = ANY($1) AND date BETWEEN $2 AND $3
ORDER BY date, start_time, id`
	var lessons []models.Lesson
	if err := r.db.SelectContext(ctx, &lessons, query, pq.Array(scheduleIDs), from, to); err != nil {
		return nil, fmt.Errorf("list manual lessons: %w", err)
	}
	return lessons, nil
}

// CountByTemplate returns how many lessons are stored for a template,
// optionally limited to lessons dated on or after since.
func (r *LessonRepository) CountByTemplate(ctx context.Context, templateID int64, since *time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM lesson WHERE recurring_template_id = $1`
	args := []interface{}{templateID}
	if since != nil {
		query += ` AND date >= $2`
		args = append(args, *since)
	}
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count lessons of template %d: %w", templateID, err)
	}
	return count, nil
}
