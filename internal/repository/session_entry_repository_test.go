package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var entryDate = time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)

func TestSessionEntryRepositoryMarkCompleteInserts(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSessionEntryRepository(db)

	mock.ExpectQuery("INSERT INTO session_entries").
		WithArgs(sqlmock.AnyArg(), "s1", "2026-03-02", "Ali", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("entry-1"))

	inserted, err := repo.MarkComplete(context.Background(), "s1", entryDate, "Ali")
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionEntryRepositoryMarkCompleteDuplicateIsNoOp(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSessionEntryRepository(db)

	// ON CONFLICT DO NOTHING yields no row for an existing (session_id, entry_date).
	mock.ExpectQuery("INSERT INTO session_entries").
		WithArgs(sqlmock.AnyArg(), "s1", "2026-03-02", "Ali", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	inserted, err := repo.MarkComplete(context.Background(), "s1", entryDate, "Ali")
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionEntryRepositoryIsComplete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSessionEntryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM session_entries WHERE session_id = $1 AND entry_date = $2 LIMIT 1")).
		WithArgs("s1", "2026-03-02").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	complete, err := repo.IsComplete(context.Background(), "s1", entryDate)
	require.NoError(t, err)
	assert.True(t, complete)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM session_entries WHERE session_id = $1 AND entry_date = $2 LIMIT 1")).
		WithArgs("s2", "2026-03-02").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	complete, err = repo.IsComplete(context.Background(), "s2", entryDate)
	require.NoError(t, err)
	assert.False(t, complete)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionEntryRepositoryCompletedSessionIDs(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSessionEntryRepository(db)

	rows := sqlmock.NewRows([]string{"session_id"}).AddRow("s1").AddRow("s2")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT session_id FROM session_entries WHERE entry_date = $1")).
		WithArgs("2026-03-02").
		WillReturnRows(rows)

	set, err := repo.CompletedSessionIDs(context.Background(), entryDate)
	require.NoError(t, err)
	assert.Len(t, set, 2)
	_, ok := set["s1"]
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
