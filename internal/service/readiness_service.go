package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rasd-app/rasd-api/internal/dto"
	"github.com/rasd-app/rasd-api/internal/models"
	"github.com/rasd-app/rasd-api/internal/timetable"
	appErrors "github.com/rasd-app/rasd-api/pkg/errors"
)

type scheduleSnapshotLoader interface {
	ListAll(ctx context.Context) ([]models.ScheduleSession, error)
}

type completedSetLoader interface {
	CompletedSessionIDs(ctx context.Context, date time.Time) (map[string]struct{}, error)
}

type classNameLister interface {
	ListNames(ctx context.Context) ([]string, error)
}

type reminderDispatcher interface {
	Dispatch(ctx context.Context, msg models.Message) error
}

// ReadinessServiceConfig tunes readiness dashboard behaviour.
type ReadinessServiceConfig struct {
	CacheTTL time.Duration
}

// ReadinessService computes per-class completion state for a day and
// dispatches reminders for classes that are not ready.
type ReadinessService struct {
	schedule  scheduleSnapshotLoader
	subs      substitutionLister
	entries   completedSetLoader
	classes   classNameLister
	dispatch  reminderDispatcher
	cache     *CacheService
	logger    *zap.Logger
	cfg       ReadinessServiceConfig
}

// ReadinessServiceParams groups constructor dependencies.
type ReadinessServiceParams struct {
	Schedule   scheduleSnapshotLoader
	Subs       substitutionLister
	Entries    completedSetLoader
	Classes    classNameLister
	Dispatcher reminderDispatcher
	Cache      *CacheService
	Logger     *zap.Logger
	Config     ReadinessServiceConfig
}

// NewReadinessService constructs a ReadinessService with sane defaults.
func NewReadinessService(params ReadinessServiceParams) *ReadinessService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 2 * time.Minute
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReadinessService{
		schedule: params.Schedule,
		subs:     params.Subs,
		entries:  params.Entries,
		classes:  params.Classes,
		dispatch: params.Dispatcher,
		cache:    params.Cache,
		logger:   logger,
		cfg:      cfg,
	}
}

// ClassReadiness returns per-class readiness for date and indicates cache
// utilisation.
func (s *ReadinessService) ClassReadiness(ctx context.Context, date time.Time) (*dto.ReadinessResponse, bool, error) {
	cacheKey := fmt.Sprintf("readiness:%s", models.DateKey(date))
	if s.cache != nil {
		var cached dto.ReadinessResponse
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	summary, err := s.compute(ctx, date)
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, summary, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("readiness cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return summary, false, nil
}

// SendReminder dispatches a reminder to the class's first associated teacher
// (original preferred over substitute). One-shot, no delivery guarantee.
func (s *ReadinessService) SendReminder(ctx context.Context, className string, date time.Time) (*dto.ReminderReceipt, error) {
	summary, _, err := s.ClassReadiness(ctx, date)
	if err != nil {
		return nil, err
	}

	var class *models.ClassReadiness
	for i := range summary.Classes {
		if summary.Classes[i].ClassName == className {
			class = &summary.Classes[i]
			break
		}
	}
	if class == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "class has no scheduled sessions today")
	}
	if class.IsReady {
		return nil, appErrors.Clone(appErrors.ErrConflict, "class sessions already fully entered")
	}

	teacher, ok := timetable.FirstReminderTeacher(*class)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "class has no associated teacher")
	}

	msg := models.Message{
		RecipientTeacher: teacher.Name,
		Body:             fmt.Sprintf("Dear %s, please remember to enter today's sessions for class %s.", teacher.Name, className),
	}
	if err := s.dispatch.Dispatch(ctx, msg); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to dispatch reminder")
	}

	s.logger.Info("reminder dispatched",
		zap.String("class", className),
		zap.String("recipient", teacher.Name),
		zap.String("date", models.DateKey(date)),
	)
	return &dto.ReminderReceipt{
		ClassName:        className,
		RecipientTeacher: teacher.Name,
		MessageText:      msg.Body,
	}, nil
}

func (s *ReadinessService) compute(ctx context.Context, date time.Time) (*dto.ReadinessResponse, error) {
	schedule, err := s.schedule.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}
	subs, err := s.subs.ListForDate(ctx, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load substitutions")
	}
	completed, err := s.entries.CompletedSessionIDs(ctx, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load completed sessions")
	}
	knownClasses, err := s.classes.ListNames(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class roster")
	}

	effective := timetable.ResolveForDate(schedule, subs, date)
	classes := timetable.ComputeClassReadiness(effective, completed, knownClasses)

	ready := 0
	for _, class := range classes {
		if class.IsReady {
			ready++
		}
	}
	return &dto.ReadinessResponse{
		Date:       models.DateKey(date),
		Classes:    classes,
		ReadyCount: ready,
		TotalCount: len(classes),
	}, nil
}
