package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rasd-app/rasd-api/internal/models"
)

// SessionEntryRepository persists the daily session-completion ledger.
type SessionEntryRepository struct {
	db *sqlx.DB
}

// NewSessionEntryRepository creates a new session entry repository.
func NewSessionEntryRepository(db *sqlx.DB) *SessionEntryRepository {
	return &SessionEntryRepository{db: db}
}

// MarkComplete records a session as entered for the given date. The insert is
// an idempotent upsert keyed on (session_id, entry_date) so retries and
// concurrent writers collapse to one record. Returns true only when the row
// was newly inserted.
func (r *SessionEntryRepository) MarkComplete(ctx context.Context, sessionID string, date time.Time, teacherName string) (bool, error) {
	const query = `INSERT INTO session_entries (id, session_id, entry_date, teacher_name, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (session_id, entry_date) DO NOTHING RETURNING id`
	var insertedID string
	err := r.db.QueryRowxContext(ctx, query, uuid.NewString(), sessionID, models.DateKey(date), teacherName, time.Now().UTC()).Scan(&insertedID)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("mark session %s complete: %w", sessionID, err)
	}
	return true, nil
}

// IsComplete reports whether a session was already entered on the given date.
func (r *SessionEntryRepository) IsComplete(ctx context.Context, sessionID string, date time.Time) (bool, error) {
	const query = `SELECT 1 FROM session_entries WHERE session_id = $1 AND entry_date = $2 LIMIT 1`
	var one int
	err := r.db.GetContext(ctx, &one, query, sessionID, models.DateKey(date))
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check session %s completion: %w", sessionID, err)
	}
	return true, nil
}

// CompletedSessionIDs returns the set of session ids entered on the given date.
func (r *SessionEntryRepository) CompletedSessionIDs(ctx context.Context, date time.Time) (map[string]struct{}, error) {
	const query = `SELECT session_id FROM session_entries WHERE entry_date = $1`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, models.DateKey(date)); err != nil {
		return nil, fmt.Errorf("list completed session ids: %w", err)
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// ListForDate returns the full entry records for a date, newest first.
func (r *SessionEntryRepository) ListForDate(ctx context.Context, date time.Time) ([]models.SessionEntry, error) {
	const query = `SELECT id, session_id, entry_date, teacher_name, created_at
		FROM session_entries WHERE entry_date = $1 ORDER BY created_at DESC`
	var entries []models.SessionEntry
	if err := r.db.SelectContext(ctx, &entries, query, models.DateKey(date)); err != nil {
		return nil, fmt.Errorf("list session entries: %w", err)
	}
	return entries, nil
}
