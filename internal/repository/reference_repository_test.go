package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceRepositoryListRoomsAndGroups(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewReferenceRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, number, capacity FROM room ORDER BY id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "number", "capacity"}).AddRow(int64(101), "R101", 30))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM study_group ORDER BY id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(11), "CS-101"))

	rooms, err := repo.ListRooms(context.Background())
	require.NoError(t, err)
	groups, err := repo.ListGroups(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "R101", rooms[0].Number)
	assert.Equal(t, "CS-101", groups[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
