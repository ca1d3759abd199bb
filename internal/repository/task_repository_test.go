package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamtrackhq/teamtrack-api/internal/authz"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestListIDsUpdatedSince(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTaskRepository(db)

	since := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT `id` FROM `tasks`").
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3).AddRow(7))

	ids, err := repo.ListIDsUpdatedSince(since)
	require.NoError(t, err)
	assert.Equal(t, []uint64{3, 7}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListIDsUpdatedSince_QueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTaskRepository(db)

	dbErr := errors.New("connection refused")
	mock.ExpectQuery("SELECT `id` FROM `tasks`").WillReturnError(dbErr)

	_, err := repo.ListIDsUpdatedSince(time.Now())
	assert.ErrorIs(t, err, dbErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskList_CountError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTaskRepository(db)

	dbErr := errors.New("table gone")
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `tasks`").WillReturnError(dbErr)

	_, _, err := repo.List(TaskFilter{
		Scope:   authz.Scope{All: true},
		ActorID: 1,
	})
	assert.ErrorIs(t, err, dbErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
