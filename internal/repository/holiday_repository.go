package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/uni-schedule-api/internal/models"
)

// HolidayRepository reads the university holiday calendar.
type HolidayRepository struct {
	db *sqlx.DB
}

// NewHolidayRepository constructs a holiday repository.
func NewHolidayRepository(db *sqlx.DB) *HolidayRepository {
	return &HolidayRepository{db: db}
}

// List returns holidays. Range filters apply to one-off holidays only; annual
// holidays are always returned so callers can project them onto the range.
func (r *HolidayRepository) List(ctx context.Context, filter models.HolidayFilter) ([]models.Holiday, error) {
	var conditions []string
	var args []interface{}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}

	query := `SELECT id, name, is_annual, date, updated_at FROM university_holiday`
	if len(conditions) > 0 {
		query += " WHERE is_annual OR (" + strings.Join(conditions, " AND ") + ")"
	}
	query += " ORDER BY date, id"

	var holidays []models.Holiday
	if err := r.db.SelectContext(ctx, &holidays, query, args...); err != nil {
		return nil, fmt.Errorf("list holidays: %w", err)
	}
	return holidays, nil
}
