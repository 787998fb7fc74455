package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rasd-app/rasd-api/internal/models"
	appErrors "github.com/rasd-app/rasd-api/pkg/errors"
)

type substitutionStore interface {
	Create(ctx context.Context, sub *models.Substitution) error
	ListForDate(ctx context.Context, date time.Time) ([]models.Substitution, error)
}

type sessionFinder interface {
	FindByID(ctx context.Context, id string) (*models.ScheduleSession, error)
}

// SubstitutionService handles substitute-teacher assignments.
type SubstitutionService struct {
	repo      substitutionStore
	sessions  sessionFinder
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubstitutionService constructs the service.
func NewSubstitutionService(repo substitutionStore, sessions sessionFinder, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *SubstitutionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubstitutionService{repo: repo, sessions: sessions, cache: cache, validator: validate, logger: logger}
}

// AssignSubstituteRequest creates a substitution for one slot on one date.
type AssignSubstituteRequest struct {
	Date              string `json:"date" validate:"required"`
	ScheduleItemID    string `json:"schedule_item_id" validate:"required"`
	SubstituteTeacher string `json:"substitute_teacher" validate:"required"`
}

// Assign records a substitution after checking the slot exists. Stale
// substitutions are tolerated at read time, but assigning against an unknown
// slot is an admin mistake worth rejecting.
func (s *SubstitutionService) Assign(ctx context.Context, req AssignSubstituteRequest) (*models.Substitution, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid substitution payload")
	}
	date, err := time.Parse(models.DateLayout, req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must be in YYYY-MM-DD form")
	}

	if _, err := s.sessions.FindByID(ctx, req.ScheduleItemID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule session not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule session")
	}

	sub := &models.Substitution{
		Date:              date,
		ScheduleItemID:    req.ScheduleItemID,
		SubstituteTeacher: req.SubstituteTeacher,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create substitution")
	}

	if s.cache != nil {
		key := fmt.Sprintf("readiness:%s", models.DateKey(date))
		if err := s.cache.Invalidate(ctx, key); err != nil {
			s.logger.Warn("readiness cache invalidation failed after substitution", zap.String("key", key), zap.Error(err))
		}
	}

	s.logger.Info("substitute assigned",
		zap.String("schedule_item_id", sub.ScheduleItemID),
		zap.String("date", models.DateKey(sub.Date)),
		zap.String("substitute", sub.SubstituteTeacher),
	)
	return sub, nil
}

// ListForDate returns substitutions valid on date, oldest first.
func (s *SubstitutionService) ListForDate(ctx context.Context, date time.Time) ([]models.Substitution, error) {
	subs, err := s.repo.ListForDate(ctx, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list substitutions")
	}
	return subs, nil
}
