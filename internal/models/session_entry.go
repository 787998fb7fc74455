package models

import "time"

// SessionEntry records that a scheduled session was entered (completed) on a
// given calendar date. Uniqueness on (session_id, entry_date) is what makes
// marking idempotent at the store level.
type SessionEntry struct {
	ID          string    `db:"id" json:"id"`
	SessionID   string    `db:"session_id" json:"session_id"`
	EntryDate   time.Time `db:"entry_date" json:"entry_date"`
	TeacherName string    `db:"teacher_name" json:"teacher_name"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
