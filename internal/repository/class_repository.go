package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rasd-app/rasd-api/internal/models"
)

// ClassRepository reads the administrative class roster.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository creates a new class repository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// List returns the roster in its administrative order.
func (r *ClassRepository) List(ctx context.Context) ([]models.Class, error) {
	const query = `SELECT id, name, position, created_at, updated_at FROM classes ORDER BY position ASC, name ASC`
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// ListNames returns the ordered class-name allow-list used by readiness
// aggregation.
func (r *ClassRepository) ListNames(ctx context.Context) ([]string, error) {
	const query = `SELECT name FROM classes ORDER BY position ASC, name ASC`
	var names []string
	if err := r.db.SelectContext(ctx, &names, query); err != nil {
		return nil, fmt.Errorf("list class names: %w", err)
	}
	return names, nil
}
