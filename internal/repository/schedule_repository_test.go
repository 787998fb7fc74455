package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rasd-app/rasd-api/internal/models"
)

func TestScheduleRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	rows := sqlmock.NewRows([]string{"id", "day_of_week", "period", "class_room", "subject", "teacher_name", "created_at", "updated_at"}).
		AddRow("s1", models.DayMonday, 1, "3A", "Math", "Ali", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, day_of_week, period, class_room, subject, teacher_name, created_at, updated_at FROM schedule_sessions WHERE 1=1 AND day_of_week = $1 ORDER BY day_of_week ASC, period ASC LIMIT 50 OFFSET 0")).
		WithArgs(models.DayMonday).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM schedule_sessions WHERE 1=1 AND day_of_week = $1")).
		WithArgs(models.DayMonday).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	sessions, total, err := repo.List(context.Background(), models.ScheduleFilter{Day: models.DayMonday})
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryReplaceAll(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM schedule_sessions").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO schedule_sessions").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO schedule_sessions").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	sessions := []models.ScheduleSession{
		{Day: models.DayMonday, Period: 1, ClassRoom: "3A", Subject: "Math", Teacher: "Ali"},
		{Day: models.DayTuesday, Period: 2, ClassRoom: "4B", Subject: "Science", Teacher: "Sara"},
	}
	require.NoError(t, repo.ReplaceAll(context.Background(), sessions))
	assert.NotEmpty(t, sessions[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryReplaceAllRollsBackOnError(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM schedule_sessions").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.ReplaceAll(context.Background(), []models.ScheduleSession{{Day: models.DayMonday}})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
