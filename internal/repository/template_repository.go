package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/uni-schedule-api/internal/models"
)

const templateColumns = `t.id, t.name, t.schedule_id, t.group_id, t.subject_assignment_id, t.room_id, t.is_online, t.lesson_type,
t.days_of_week, t.start_time, t.end_time, t.start_date, t.end_date, t.updated_at`

// TemplateRepository reads recurring lesson templates.
type TemplateRepository struct {
	db *sqlx.DB
}

// NewTemplateRepository constructs a template repository.
func NewTemplateRepository(db *sqlx.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// ListBySchedules returns the templates of the given schedules ordered by id.
func (r *TemplateRepository) ListBySchedules(ctx context.Context, scheduleIDs []int64) ([]models.RecurringTemplate, error) {
	if len(scheduleIDs) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM recurring_lesson_template t WHERE t.schedule_id = ANY($1) ORDER BY t.id`, templateColumns)
	var templates []models.RecurringTemplate
	if err := r.db.SelectContext(ctx, &templates, query, pq.Array(scheduleIDs)); err != nil {
		return nil, fmt.Errorf("list recurring templates: %w", err)
	}
	return templates, nil
}

// FindByID returns one template or sql.ErrNoRows.
func (r *TemplateRepository) FindByID(ctx context.Context, id int64) (*models.RecurringTemplate, error) {
	query := fmt.Sprintf(`SELECT %s FROM recurring_lesson_template t WHERE t.id = $1`, templateColumns)
	var tpl models.RecurringTemplate
	if err := r.db.GetContext(ctx, &tpl, query, id); err != nil {
		return nil, fmt.Errorf("find recurring template %d: %w", id, err)
	}
	return &tpl, nil
}
