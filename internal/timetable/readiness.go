package timetable

import (
	"sort"
	"strings"

	"github.com/rasd-app/rasd-api/internal/models"
)

// Separators accepted between a known class name and its section suffix, so
// "Grade4/A" groups under "Grade4" while "Grade40" does not.
var classNameSeparators = []string{"/", "-", "_"}

// MatchesKnownClass reports whether a scheduled room name belongs to a known
// class: exact match, or the known name followed by a section separator.
func MatchesKnownClass(room, known string) bool {
	if room == "" || known == "" {
		return false
	}
	if room == known {
		return true
	}
	for _, sep := range classNameSeparators {
		if strings.HasPrefix(room, known+sep) {
			return true
		}
	}
	return false
}

// CompletedCount counts how many of the given sessions are in the completed set.
func CompletedCount(sessions []models.EffectiveSession, completed map[string]struct{}) int {
	count := 0
	for _, session := range sessions {
		if _, ok := completed[session.ID]; ok {
			count++
		}
	}
	return count
}

// ComputeClassReadiness aggregates today's effective sessions into per-class
// completion state. Only classes present in knownClassNames and with at least
// one session today appear; a class is ready iff every session is completed.
// Output is sorted by class name for stable rendering.
func ComputeClassReadiness(effectiveToday []models.EffectiveSession, completed map[string]struct{}, knownClassNames []string) []models.ClassReadiness {
	groups := make(map[string][]models.EffectiveSession)
	for _, session := range effectiveToday {
		if session.ClassRoom == "" {
			continue
		}
		groups[session.ClassRoom] = append(groups[session.ClassRoom], session)
	}

	out := make([]models.ClassReadiness, 0, len(groups))
	for room, group := range groups {
		if !isKnown(room, knownClassNames) {
			continue
		}
		progress := CompletedCount(group, completed)
		out = append(out, models.ClassReadiness{
			ClassName: room,
			Total:     len(group),
			Progress:  progress,
			IsReady:   len(group) > 0 && progress == len(group),
			Teachers:  teacherList(group),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ClassName < out[j].ClassName })
	return out
}

// FirstReminderTeacher picks the reminder recipient for a class: the first
// listed teacher, preferring an originally assigned one over a substitute.
func FirstReminderTeacher(readiness models.ClassReadiness) (models.ClassTeacher, bool) {
	for _, teacher := range readiness.Teachers {
		if !teacher.IsSubstituted {
			return teacher, true
		}
	}
	if len(readiness.Teachers) > 0 {
		return readiness.Teachers[0], true
	}
	return models.ClassTeacher{}, false
}

func isKnown(room string, knownClassNames []string) bool {
	for _, known := range knownClassNames {
		if MatchesKnownClass(room, known) {
			return true
		}
	}
	return false
}

// teacherList builds the ordered, de-duplicated list of teacher identities
// touched by a class's sessions. A substituted slot contributes both the
// substitute (flagged, with the back-reference) and the original teacher.
func teacherList(group []models.EffectiveSession) []models.ClassTeacher {
	var list []models.ClassTeacher
	seen := make(map[string]struct{})
	add := func(teacher models.ClassTeacher) {
		key := NormalizeName(teacher.Name)
		if key == "" {
			return
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		list = append(list, teacher)
	}
	for _, session := range group {
		if session.IsSubstituted {
			add(models.ClassTeacher{Name: session.Teacher, IsSubstituted: true, OriginalTeacher: session.OriginalTeacher})
			add(models.ClassTeacher{Name: session.OriginalTeacher})
		} else {
			add(models.ClassTeacher{Name: session.Teacher})
		}
	}
	return list
}
