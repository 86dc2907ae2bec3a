package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-schedule-api/internal/models"
)

func TestHolidayRepositoryListWithRange(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewHolidayRepository(db)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM university_holiday WHERE is_annual OR (date >= $1 AND date <= $2) ORDER BY date, id")).
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_annual", "date", "updated_at"}).
			AddRow(int64(1), "New Year", true, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Now()).
			AddRow(int64(2), nil, false, time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC), time.Now()))

	holidays, err := repo.List(context.Background(), models.HolidayFilter{DateFrom: &from, DateTo: &to})
	require.NoError(t, err)
	require.Len(t, holidays, 2)
	assert.True(t, holidays[0].IsAnnual)
	assert.Nil(t, holidays[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHolidayRepositoryListAll(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewHolidayRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, is_annual, date, updated_at FROM university_holiday ORDER BY date, id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_annual", "date", "updated_at"}))

	holidays, err := repo.List(context.Background(), models.HolidayFilter{})
	require.NoError(t, err)
	assert.Empty(t, holidays)
	assert.NoError(t, mock.ExpectationsWereMet())
}
