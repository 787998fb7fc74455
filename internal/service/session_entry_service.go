package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rasd-app/rasd-api/internal/models"
	"github.com/rasd-app/rasd-api/internal/timetable"
	appErrors "github.com/rasd-app/rasd-api/pkg/errors"
)

type sessionEntryStore interface {
	MarkComplete(ctx context.Context, sessionID string, date time.Time, teacherName string) (bool, error)
	IsComplete(ctx context.Context, sessionID string, date time.Time) (bool, error)
	CompletedSessionIDs(ctx context.Context, date time.Time) (map[string]struct{}, error)
	ListForDate(ctx context.Context, date time.Time) ([]models.SessionEntry, error)
}

type auditRecorder interface {
	CreateEvent(ctx context.Context, event *models.AuditEvent) error
}

// SessionEntryService is the daily session-completion ledger. Marking is
// idempotent: duplicate and concurrent calls for the same session and date
// collapse to one record and exactly one audit event.
type SessionEntryService struct {
	repo     sessionEntryStore
	sessions sessionFinder
	subs     substitutionLister
	audit    auditRecorder
	cache    *CacheService
	logger   *zap.Logger
}

// NewSessionEntryService constructs the ledger service.
func NewSessionEntryService(repo sessionEntryStore, sessions sessionFinder, subs substitutionLister, audit auditRecorder, cache *CacheService, logger *zap.Logger) *SessionEntryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionEntryService{repo: repo, sessions: sessions, subs: subs, audit: audit, cache: cache, logger: logger}
}

// MarkComplete records that the session was entered on date. The returned
// bool reports whether this call actually created the record; repeated calls
// return false and produce no further audit events.
func (s *SessionEntryService) MarkComplete(ctx context.Context, sessionID string, date time.Time) (*models.EffectiveSession, bool, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, appErrors.Clone(appErrors.ErrNotFound, "schedule session not found")
		}
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule session")
	}

	subs, err := s.subs.ListForDate(ctx, date)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load substitutions")
	}
	effective := timetable.ResolveAll([]models.ScheduleSession{*session}, subs, date)[0]

	inserted, err := s.repo.MarkComplete(ctx, sessionID, date, effective.Teacher)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark session complete")
	}
	if !inserted {
		return &effective, false, nil
	}

	action := models.AuditActionSessionEntered
	if effective.IsSubstituted {
		action = models.AuditActionSessionEnteredSubstituted
	}
	if s.audit != nil {
		event := &models.AuditEvent{
			Action:      action,
			TeacherName: effective.Teacher,
			Subject:     effective.Subject,
			ClassRoom:   effective.ClassRoom,
		}
		if err := s.audit.CreateEvent(ctx, event); err != nil {
			s.logger.Warn("audit event write failed", zap.String("session_id", sessionID), zap.Error(err))
		}
	}

	if s.cache != nil {
		key := fmt.Sprintf("readiness:%s", models.DateKey(date))
		if err := s.cache.Invalidate(ctx, key); err != nil {
			s.logger.Warn("readiness cache invalidation failed after session entry", zap.String("key", key), zap.Error(err))
		}
	}

	s.logger.Info("session entered",
		zap.String("session_id", sessionID),
		zap.String("date", models.DateKey(date)),
		zap.String("teacher", effective.Teacher),
		zap.Bool("substituted", effective.IsSubstituted),
	)
	return &effective, true, nil
}

// IsComplete reports whether the session was entered on date.
func (s *SessionEntryService) IsComplete(ctx context.Context, sessionID string, date time.Time) (bool, error) {
	complete, err := s.repo.IsComplete(ctx, sessionID, date)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check session completion")
	}
	return complete, nil
}

// CompletedSet returns the ids of all sessions entered on date.
func (s *SessionEntryService) CompletedSet(ctx context.Context, date time.Time) (map[string]struct{}, error) {
	set, err := s.repo.CompletedSessionIDs(ctx, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load completed sessions")
	}
	return set, nil
}

// CompletedCountForClass counts how many of the given sessions are in the
// completed set.
func (s *SessionEntryService) CompletedCountForClass(classSessions []models.EffectiveSession, completed map[string]struct{}) int {
	return timetable.CompletedCount(classSessions, completed)
}

// ListForDate returns the raw ledger entries for date.
func (s *SessionEntryService) ListForDate(ctx context.Context, date time.Time) ([]models.SessionEntry, error) {
	entries, err := s.repo.ListForDate(ctx, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list session entries")
	}
	return entries, nil
}
