package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rasd-app/rasd-api/internal/models"
)

func effectiveSession(id, room, subject, teacher string) models.EffectiveSession {
	return models.EffectiveSession{ScheduleSession: models.ScheduleSession{ID: id, ClassRoom: room, Subject: subject, Teacher: teacher}}
}

func completedSet(ids ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func TestComputeClassReadinessThreshold(t *testing.T) {
	sessions := []models.EffectiveSession{
		effectiveSession("s1", "3A", "Math", "Ali"),
		effectiveSession("s2", "3A", "Science", "Sara"),
		effectiveSession("s3", "3A", "Arabic", "Nadia"),
	}

	partial := ComputeClassReadiness(sessions, completedSet("s1", "s2"), []string{"3A"})
	require.Len(t, partial, 1)
	assert.Equal(t, 2, partial[0].Progress)
	assert.Equal(t, 3, partial[0].Total)
	assert.False(t, partial[0].IsReady)

	full := ComputeClassReadiness(sessions, completedSet("s1", "s2", "s3"), []string{"3A"})
	require.Len(t, full, 1)
	assert.True(t, full[0].IsReady)
}

func TestComputeClassReadinessExcludesClassesWithoutSessions(t *testing.T) {
	sessions := []models.EffectiveSession{effectiveSession("s1", "3A", "Math", "Ali")}

	out := ComputeClassReadiness(sessions, nil, []string{"3A", "4B"})
	require.Len(t, out, 1)
	assert.Equal(t, "3A", out[0].ClassName)
}

func TestComputeClassReadinessKnownNameFilter(t *testing.T) {
	sessions := []models.EffectiveSession{
		effectiveSession("s1", "Grade4/A", "Math", "Ali"),
		effectiveSession("s2", "Grade5/A", "Math", "Sara"),
		effectiveSession("s3", "Grade40", "Math", "Nadia"),
	}

	out := ComputeClassReadiness(sessions, nil, []string{"Grade4"})
	require.Len(t, out, 1)
	assert.Equal(t, "Grade4/A", out[0].ClassName)
}

func TestMatchesKnownClassSeparators(t *testing.T) {
	assert.True(t, MatchesKnownClass("Grade4", "Grade4"))
	assert.True(t, MatchesKnownClass("Grade4/A", "Grade4"))
	assert.True(t, MatchesKnownClass("Grade4-B", "Grade4"))
	assert.True(t, MatchesKnownClass("Grade4_C", "Grade4"))
	assert.False(t, MatchesKnownClass("Grade40", "Grade4"))
	assert.False(t, MatchesKnownClass("Grade4A", "Grade4"))
	assert.False(t, MatchesKnownClass("", "Grade4"))
	assert.False(t, MatchesKnownClass("Grade4", ""))
}

func TestComputeClassReadinessSortedByClassName(t *testing.T) {
	sessions := []models.EffectiveSession{
		effectiveSession("s1", "4B", "Math", "Ali"),
		effectiveSession("s2", "3A", "Math", "Sara"),
		effectiveSession("s3", "10C", "Math", "Nadia"),
	}

	out := ComputeClassReadiness(sessions, nil, []string{"3A", "4B", "10C"})
	require.Len(t, out, 3)
	assert.Equal(t, "10C", out[0].ClassName)
	assert.Equal(t, "3A", out[1].ClassName)
	assert.Equal(t, "4B", out[2].ClassName)
}

func TestComputeClassReadinessTeacherListing(t *testing.T) {
	substituted := effectiveSession("s1", "3A", "Math", "Omar")
	substituted.IsSubstituted = true
	substituted.OriginalTeacher = "Ali"
	sessions := []models.EffectiveSession{
		substituted,
		effectiveSession("s2", "3A", "Science", "Sara"),
		effectiveSession("s3", "3A", "Arabic", "sara"), // same identity, different case
	}

	out := ComputeClassReadiness(sessions, nil, []string{"3A"})
	require.Len(t, out, 1)
	teachers := out[0].Teachers
	require.Len(t, teachers, 3)

	assert.Equal(t, "Omar", teachers[0].Name)
	assert.True(t, teachers[0].IsSubstituted)
	assert.Equal(t, "Ali", teachers[0].OriginalTeacher)

	assert.Equal(t, "Ali", teachers[1].Name)
	assert.False(t, teachers[1].IsSubstituted)

	assert.Equal(t, "Sara", teachers[2].Name)
	assert.False(t, teachers[2].IsSubstituted)
}

func TestFirstReminderTeacherPrefersOriginal(t *testing.T) {
	readiness := models.ClassReadiness{Teachers: []models.ClassTeacher{
		{Name: "Omar", IsSubstituted: true, OriginalTeacher: "Ali"},
		{Name: "Ali"},
	}}
	teacher, ok := FirstReminderTeacher(readiness)
	require.True(t, ok)
	assert.Equal(t, "Ali", teacher.Name)

	onlySub := models.ClassReadiness{Teachers: []models.ClassTeacher{
		{Name: "Omar", IsSubstituted: true, OriginalTeacher: "Ali"},
	}}
	teacher, ok = FirstReminderTeacher(onlySub)
	require.True(t, ok)
	assert.Equal(t, "Omar", teacher.Name)

	_, ok = FirstReminderTeacher(models.ClassReadiness{})
	assert.False(t, ok)
}

func TestCompletedCount(t *testing.T) {
	sessions := []models.EffectiveSession{
		effectiveSession("s1", "3A", "Math", "Ali"),
		effectiveSession("s2", "3A", "Science", "Sara"),
	}
	assert.Equal(t, 1, CompletedCount(sessions, completedSet("s1", "unrelated")))
	assert.Equal(t, 0, CompletedCount(sessions, nil))
}
