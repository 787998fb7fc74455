package models

import "time"

// Audit actions emitted by the session-entry ledger.
const (
	AuditActionSessionEntered            = "session_entered"
	AuditActionSessionEnteredSubstituted = "session_entered_substituted"
)

// AuditEvent is one activity-log record. The store assigns id and timestamp.
type AuditEvent struct {
	ID          string    `db:"id" json:"id"`
	Action      string    `db:"action" json:"action"`
	TeacherName string    `db:"teacher_name" json:"teacher_name"`
	Subject     string    `db:"subject" json:"subject"`
	ClassRoom   string    `db:"class_room" json:"class_room"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
