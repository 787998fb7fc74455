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

func TestSubstitutionRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubstitutionRepository(db)

	mock.ExpectExec("INSERT INTO substitutions").WillReturnResult(sqlmock.NewResult(1, 1))

	sub := &models.Substitution{
		Date:              time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		ScheduleItemID:    "s1",
		SubstituteTeacher: "Omar",
	}
	require.NoError(t, repo.Create(context.Background(), sub))
	assert.NotEmpty(t, sub.ID)
	assert.False(t, sub.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubstitutionRepositoryListForDate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubstitutionRepository(db)

	date := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "sub_date", "schedule_item_id", "substitute_teacher", "created_at"}).
		AddRow("u1", date, "s1", "Omar", time.Now()).
		AddRow("u2", date, "s1", "Nadia", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, sub_date, schedule_item_id, substitute_teacher, created_at")).
		WithArgs("2026-03-02").
		WillReturnRows(rows)

	subs, err := repo.ListForDate(context.Background(), date)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	// Oldest first: overlay's first-match rule keeps the earliest assignment.
	assert.Equal(t, "u1", subs[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
