package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/uni-schedule-api/internal/models"
)

// ReferenceRepository reads rooms and student groups.
type ReferenceRepository struct {
	db *sqlx.DB
}

// NewReferenceRepository constructs a reference data repository.
func NewReferenceRepository(db *sqlx.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

// ListRooms returns every room.
func (r *ReferenceRepository) ListRooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := r.db.SelectContext(ctx, &rooms, `SELECT id, number, capacity FROM room ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

// ListGroups returns every student group.
func (r *ReferenceRepository) ListGroups(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	if err := r.db.SelectContext(ctx, &groups, `SELECT id, name FROM study_group ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}
