package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkloadRepositoryListAssignments(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewWorkloadRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM subject_assignment sa")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "workload_id", "subject_id", "subject_name", "professor_id", "professor_name", "hours_per_subject"}).
			AddRow(int64(21), int64(4), int64(31), "Algebra", int64(51), "Dr. Ivanova", 40.0))

	assignments, err := repo.ListAssignments(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, "Dr. Ivanova", assignments[0].ProfessorName)
	assert.Equal(t, 40.0, assignments[0].HoursPerSubject)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkloadRepositoryListSubjectAllocations(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewWorkloadRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, code, allocated_hours FROM subject WHERE semester_id = $1")).
		WithArgs(int64(3)).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.ListSubjectAllocations(context.Background(), 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list subject allocations")
}
