package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rasd-app/rasd-api/internal/models"
)

// AuditRepository persists activity-log events. Id and timestamp are assigned
// here, not by the event producers.
type AuditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository creates a new audit repository.
func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// CreateEvent records one audit event.
func (r *AuditRepository) CreateEvent(ctx context.Context, event *models.AuditEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO audit_events (id, action, teacher_name, subject, class_room, created_at)
		VALUES (:id, :action, :teacher_name, :subject, :class_room, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("create audit event: %w", err)
	}
	return nil
}

// ListRecent returns the newest audit events up to limit.
func (r *AuditRepository) ListRecent(ctx context.Context, limit int) ([]models.AuditEvent, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	query := fmt.Sprintf(`SELECT id, action, teacher_name, subject, class_room, created_at
		FROM audit_events ORDER BY created_at DESC LIMIT %d`, limit)
	var events []models.AuditEvent
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	return events, nil
}
