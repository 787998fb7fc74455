package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rasd-app/rasd-api/internal/models"
)

// ScheduleRepository provides persistence for the canonical weekly timetable.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository creates a new schedule repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

const scheduleColumns = "id, day_of_week, period, class_room, subject, teacher_name, created_at, updated_at"

// List returns timetable slots with optional filtering and pagination.
func (r *ScheduleRepository) List(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleSession, int, error) {
	base := "FROM schedule_sessions WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Day != "" {
		conditions = append(conditions, fmt.Sprintf("day_of_week = $%d", len(args)+1))
		args = append(args, filter.Day)
	}
	if filter.ClassRoom != "" {
		conditions = append(conditions, fmt.Sprintf("class_room = $%d", len(args)+1))
		args = append(args, filter.ClassRoom)
	}
	if filter.Teacher != "" {
		conditions = append(conditions, fmt.Sprintf("teacher_name = $%d", len(args)+1))
		args = append(args, filter.Teacher)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]bool{
		"day_of_week": true,
		"period":      true,
		"class_room":  true,
		"created_at":  true,
	}
	if !allowedSorts[sortBy] {
		sortBy = "day_of_week"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s, period ASC LIMIT %d OFFSET %d", scheduleColumns, base, sortBy, order, size, offset)
	var sessions []models.ScheduleSession
	if err := r.db.SelectContext(ctx, &sessions, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list schedule sessions: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count schedule sessions: %w", err)
	}

	return sessions, total, nil
}

// ListAll loads the full weekly timetable ordered for overlay resolution.
func (r *ScheduleRepository) ListAll(ctx context.Context) ([]models.ScheduleSession, error) {
	query := fmt.Sprintf("SELECT %s FROM schedule_sessions ORDER BY day_of_week ASC, period ASC", scheduleColumns)
	var sessions []models.ScheduleSession
	if err := r.db.SelectContext(ctx, &sessions, query); err != nil {
		return nil, fmt.Errorf("list all schedule sessions: %w", err)
	}
	return sessions, nil
}

// FindByID loads a single timetable slot.
func (r *ScheduleRepository) FindByID(ctx context.Context, id string) (*models.ScheduleSession, error) {
	query := fmt.Sprintf("SELECT %s FROM schedule_sessions WHERE id = $1", scheduleColumns)
	var session models.ScheduleSession
	if err := r.db.GetContext(ctx, &session, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find schedule session %s: %w", id, err)
	}
	return &session, nil
}

// ReplaceAll swaps the entire timetable in one transaction. Bulk replace is
// the only mutation the canonical schedule admits.
func (r *ScheduleRepository) ReplaceAll(ctx context.Context, sessions []models.ScheduleSession) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schedule replace: %w", err)
	}
	commit := false
	defer func() {
		if !commit {
			tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM schedule_sessions"); err != nil {
		return fmt.Errorf("clear schedule sessions: %w", err)
	}

	const insert = `INSERT INTO schedule_sessions (id, day_of_week, period, class_room, subject, teacher_name, created_at, updated_at)
		VALUES (:id, :day_of_week, :period, :class_room, :subject, :teacher_name, :created_at, :updated_at)`
	now := time.Now().UTC()
	for i := range sessions {
		session := &sessions[i]
		if session.ID == "" {
			session.ID = uuid.NewString()
		}
		if session.CreatedAt.IsZero() {
			session.CreatedAt = now
		}
		session.UpdatedAt = now
		if _, err := tx.NamedExecContext(ctx, insert, session); err != nil {
			return fmt.Errorf("insert schedule session %s: %w", session.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schedule replace: %w", err)
	}
	commit = true
	return nil
}
