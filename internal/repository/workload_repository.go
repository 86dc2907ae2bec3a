package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/uni-schedule-api/internal/models"
)

// WorkloadRepository reads professor contracts and subject hour allocations.
type WorkloadRepository struct {
	db *sqlx.DB
}

// NewWorkloadRepository constructs a workload repository.
func NewWorkloadRepository(db *sqlx.DB) *WorkloadRepository {
	return &WorkloadRepository{db: db}
}

// ListAssignments returns every subject assignment of the semester with the
// professor and subject it binds.
func (r *WorkloadRepository) ListAssignments(ctx context.Context, semesterID int64) ([]models.SubjectAssignment, error) {
	const query = `SELECT sa.id, sa.workload_id, sa.subject_id, sub.name AS subject_name,
w.professor_id, p.full_name AS professor_name, sa.hours_per_subject
FROM subject_assignment sa
JOIN professor_workload w ON w.id = sa.workload_id
JOIN professor p ON p.id = w.professor_id
JOIN subject sub ON sub.id = sa.subject_id
WHERE w.semester_id = $1
ORDER BY sa.id`
	var assignments []models.SubjectAssignment
	if err := r.db.SelectContext(ctx, &assignments, query, semesterID); err != nil {
		return nil, fmt.Errorf("list subject assignments: %w", err)
	}
	return assignments, nil
}

// ListSubjectAllocations returns the allocated hours of every subject in the semester.
func (r *WorkloadRepository) ListSubjectAllocations(ctx context.Context, semesterID int64) ([]models.SubjectAllocation, error) {
	const query = `SELECT id, name, code, allocated_hours FROM subject WHERE semester_id = $1 ORDER BY id`
	var subjects []models.SubjectAllocation
	if err := r.db.SelectContext(ctx, &subjects, query, semesterID); err != nil {
		return nil, fmt.Errorf("list subject allocations: %w", err)
	}
	return subjects, nil
}
