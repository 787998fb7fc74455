package timetable

import (
	"strings"
	"time"

	"github.com/rasd-app/rasd-api/internal/models"
)

// WeekdayName maps a point in time onto the schedule day vocabulary.
func WeekdayName(t time.Time) string {
	return strings.ToUpper(t.Weekday().String())
}

// ResolveForDate returns the effective schedule for exactly date: canonical
// sessions falling on date's weekday, with substitutions valid for that date
// applied. Substitutions referencing unknown sessions or other dates are
// ignored. When several substitutions target the same session and date, the
// first one in input order wins.
func ResolveForDate(schedule []models.ScheduleSession, subs []models.Substitution, date time.Time) []models.EffectiveSession {
	day := WeekdayName(date)
	key := models.DateKey(date)
	out := make([]models.EffectiveSession, 0, len(schedule))
	for _, session := range schedule {
		if !strings.EqualFold(session.Day, day) {
			continue
		}
		out = append(out, overlay(session, subs, key))
	}
	return out
}

// ResolveAll applies substitutions valid on today's date onto the full weekly
// schedule, without weekday filtering. Admin week views use this so a
// substitution taking effect today stays visible while browsing other days.
func ResolveAll(schedule []models.ScheduleSession, subs []models.Substitution, today time.Time) []models.EffectiveSession {
	key := models.DateKey(today)
	out := make([]models.EffectiveSession, 0, len(schedule))
	for _, session := range schedule {
		out = append(out, overlay(session, subs, key))
	}
	return out
}

// ForTeacher filters sessions down to those covered by the named teacher,
// matching on the effective (post-overlay) teacher via NormalizeName.
func ForTeacher(sessions []models.EffectiveSession, teacherName string) []models.EffectiveSession {
	out := make([]models.EffectiveSession, 0, len(sessions))
	for _, session := range sessions {
		if SameTeacher(session.Teacher, teacherName) {
			out = append(out, session)
		}
	}
	return out
}

func overlay(session models.ScheduleSession, subs []models.Substitution, dateKey string) models.EffectiveSession {
	eff := models.EffectiveSession{ScheduleSession: session}
	if session.ID == "" {
		return eff
	}
	for _, sub := range subs {
		if sub.ScheduleItemID == "" || sub.ScheduleItemID != session.ID {
			continue
		}
		if sub.SubstituteTeacher == "" {
			continue
		}
		if models.DateKey(sub.Date) != dateKey {
			continue
		}
		eff.IsSubstituted = true
		eff.OriginalTeacher = session.Teacher
		eff.Teacher = sub.SubstituteTeacher
		break
	}
	return eff
}
