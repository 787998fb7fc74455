package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rasd-app/rasd-api/internal/models"
	"github.com/rasd-app/rasd-api/internal/timetable"
	appErrors "github.com/rasd-app/rasd-api/pkg/errors"
)

type scheduleStore interface {
	List(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleSession, int, error)
	ListAll(ctx context.Context) ([]models.ScheduleSession, error)
	FindByID(ctx context.Context, id string) (*models.ScheduleSession, error)
	ReplaceAll(ctx context.Context, sessions []models.ScheduleSession) error
}

type substitutionLister interface {
	ListForDate(ctx context.Context, date time.Time) ([]models.Substitution, error)
}

// ScheduleService serves the canonical timetable and its effective
// (substitution-overlaid) views.
type ScheduleService struct {
	repo      scheduleStore
	subs      substitutionLister
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewScheduleService constructs the service.
func NewScheduleService(repo scheduleStore, subs substitutionLister, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{repo: repo, subs: subs, cache: cache, validator: validate, logger: logger}
}

// ScheduleSlotInput is one timetable slot in a bulk replace payload.
type ScheduleSlotInput struct {
	Day       string `json:"day" validate:"required,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY SUNDAY"`
	Period    int    `json:"period" validate:"required,min=1"`
	ClassRoom string `json:"class_room" validate:"required"`
	Subject   string `json:"subject" validate:"required"`
	Teacher   string `json:"teacher" validate:"required"`
}

// ReplaceScheduleRequest swaps the full weekly timetable.
type ReplaceScheduleRequest struct {
	Sessions []ScheduleSlotInput `json:"sessions" validate:"dive"`
}

// List returns timetable slots with pagination metadata.
func (s *ScheduleService) List(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleSession, *models.Pagination, error) {
	sessions, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedule")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	return sessions, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Replace swaps the entire canonical timetable, the only mutation it admits.
// Derived readiness caches are invalidated afterwards.
func (s *ScheduleService) Replace(ctx context.Context, req ReplaceScheduleRequest) (int, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}
	sessions := make([]models.ScheduleSession, 0, len(req.Sessions))
	for _, slot := range req.Sessions {
		sessions = append(sessions, models.ScheduleSession{
			Day:       slot.Day,
			Period:    slot.Period,
			ClassRoom: slot.ClassRoom,
			Subject:   slot.Subject,
			Teacher:   slot.Teacher,
		})
	}
	if err := s.repo.ReplaceAll(ctx, sessions); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to replace schedule")
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, "readiness:*"); err != nil {
			s.logger.Warn("readiness cache invalidation failed after schedule replace", zap.Error(err))
		}
	}
	s.logger.Info("schedule replaced", zap.Int("sessions", len(sessions)))
	return len(sessions), nil
}

// EffectiveForDate resolves the effective schedule for exactly date.
func (s *ScheduleService) EffectiveForDate(ctx context.Context, date time.Time) ([]models.EffectiveSession, error) {
	schedule, subs, err := s.loadSnapshot(ctx, date)
	if err != nil {
		return nil, err
	}
	return timetable.ResolveForDate(schedule, subs, date), nil
}

// EffectiveWeek applies today's substitutions across the full weekly
// timetable for admin-wide browsing.
func (s *ScheduleService) EffectiveWeek(ctx context.Context, today time.Time) ([]models.EffectiveSession, error) {
	schedule, subs, err := s.loadSnapshot(ctx, today)
	if err != nil {
		return nil, err
	}
	return timetable.ResolveAll(schedule, subs, today), nil
}

// TeacherDay returns the named teacher's effective sessions for date,
// matching names through the shared normalisation.
func (s *ScheduleService) TeacherDay(ctx context.Context, teacherName string, date time.Time) ([]models.EffectiveSession, error) {
	if timetable.NormalizeName(teacherName) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teacher name is required")
	}
	effective, err := s.EffectiveForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return timetable.ForTeacher(effective, teacherName), nil
}

func (s *ScheduleService) loadSnapshot(ctx context.Context, date time.Time) ([]models.ScheduleSession, []models.Substitution, error) {
	schedule, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}
	subs, err := s.subs.ListForDate(ctx, date)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load substitutions")
	}
	return schedule, subs, nil
}
