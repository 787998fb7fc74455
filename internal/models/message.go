package models

import "time"

// Message is one internal-messaging record. Reminders produced by the
// readiness dashboard land here; delivery beyond the store is fire-and-forget.
type Message struct {
	ID               string    `db:"id" json:"id"`
	RecipientTeacher string    `db:"recipient_teacher" json:"recipient_teacher"`
	Body             string    `db:"body" json:"body"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}
