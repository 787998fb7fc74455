package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rasd-app/rasd-api/internal/models"
)

// SubstitutionRepository provides persistence for substitution assignments.
type SubstitutionRepository struct {
	db *sqlx.DB
}

// NewSubstitutionRepository creates a new substitution repository.
func NewSubstitutionRepository(db *sqlx.DB) *SubstitutionRepository {
	return &SubstitutionRepository{db: db}
}

// Create records a new substitution. Existing records for the same slot and
// date are never mutated; the earliest record for a slot keeps precedence.
func (r *SubstitutionRepository) Create(ctx context.Context, sub *models.Substitution) error {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO substitutions (id, sub_date, schedule_item_id, substitute_teacher, created_at)
		VALUES (:id, :sub_date, :schedule_item_id, :substitute_teacher, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, sub); err != nil {
		return fmt.Errorf("create substitution: %w", err)
	}
	return nil
}

// ListForDate returns substitutions valid on the given calendar date, oldest
// first so that overlay's first-match tie-break keeps the earliest assignment.
func (r *SubstitutionRepository) ListForDate(ctx context.Context, date time.Time) ([]models.Substitution, error) {
	const query = `SELECT id, sub_date, schedule_item_id, substitute_teacher, created_at
		FROM substitutions WHERE sub_date = $1 ORDER BY created_at ASC, id ASC`
	var subs []models.Substitution
	if err := r.db.SelectContext(ctx, &subs, query, models.DateKey(date)); err != nil {
		return nil, fmt.Errorf("list substitutions for date: %w", err)
	}
	return subs, nil
}
