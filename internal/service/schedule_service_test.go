package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rasd-app/rasd-api/internal/models"
)

type scheduleStoreStub struct {
	sessions   []models.ScheduleSession
	replaced   [][]models.ScheduleSession
	listErr    error
	replaceErr error
}

func (s *scheduleStoreStub) List(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleSession, int, error) {
	return s.sessions, len(s.sessions), s.listErr
}

func (s *scheduleStoreStub) ListAll(ctx context.Context) ([]models.ScheduleSession, error) {
	return s.sessions, s.listErr
}

func (s *scheduleStoreStub) FindByID(ctx context.Context, id string) (*models.ScheduleSession, error) {
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			return &s.sessions[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *scheduleStoreStub) ReplaceAll(ctx context.Context, sessions []models.ScheduleSession) error {
	if s.replaceErr != nil {
		return s.replaceErr
	}
	s.replaced = append(s.replaced, sessions)
	s.sessions = sessions
	return nil
}

func TestScheduleServiceReplaceValidatesSlots(t *testing.T) {
	store := &scheduleStoreStub{}
	svc := NewScheduleService(store, substitutionListerStub{}, nil, nil, nil)

	_, err := svc.Replace(context.Background(), ReplaceScheduleRequest{Sessions: []ScheduleSlotInput{
		{Day: "FUNDAY", Period: 1, ClassRoom: "3A", Subject: "Math", Teacher: "Ali"},
	}})
	require.Error(t, err)
	assert.Empty(t, store.replaced)
}

func TestScheduleServiceReplaceSwapsTimetable(t *testing.T) {
	store := &scheduleStoreStub{}
	svc := NewScheduleService(store, substitutionListerStub{}, nil, nil, nil)

	count, err := svc.Replace(context.Background(), ReplaceScheduleRequest{Sessions: []ScheduleSlotInput{
		{Day: models.DayMonday, Period: 1, ClassRoom: "3A", Subject: "Math", Teacher: "Ali"},
		{Day: models.DayTuesday, Period: 2, ClassRoom: "4B", Subject: "Science", Teacher: "Sara"},
	}})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, store.replaced, 1)
	assert.Equal(t, "3A", store.replaced[0][0].ClassRoom)
}

func TestScheduleServiceEffectiveForDateOverlaysSubstitutions(t *testing.T) {
	store := &scheduleStoreStub{sessions: []models.ScheduleSession{
		*mondaySession("s1", "3A", "Math", "Ali"),
		{ID: "s2", Day: models.DayTuesday, Period: 1, ClassRoom: "3A", Subject: "Science", Teacher: "Sara"},
	}}
	svc := NewScheduleService(store, substitutionListerStub{subs: []models.Substitution{
		{ID: "u1", ScheduleItemID: "s1", SubstituteTeacher: "Omar", Date: testMonday},
	}}, nil, nil, nil)

	effective, err := svc.EffectiveForDate(context.Background(), testMonday)
	require.NoError(t, err)
	require.Len(t, effective, 1, "only Monday sessions")
	assert.Equal(t, "Omar", effective[0].Teacher)
	assert.Equal(t, "Ali", effective[0].OriginalTeacher)

	week, err := svc.EffectiveWeek(context.Background(), testMonday)
	require.NoError(t, err)
	assert.Len(t, week, 2, "week view keeps every day")
}

func TestScheduleServiceTeacherDay(t *testing.T) {
	store := &scheduleStoreStub{sessions: []models.ScheduleSession{
		*mondaySession("s1", "3A", "Math", "Ali Hassan"),
		{ID: "s2", Day: models.DayMonday, Period: 2, ClassRoom: "4B", Subject: "Science", Teacher: "Sara"},
	}}
	svc := NewScheduleService(store, substitutionListerStub{}, nil, nil, nil)

	mine, err := svc.TeacherDay(context.Background(), "  ali   HASSAN ", testMonday)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "s1", mine[0].ID)

	_, err = svc.TeacherDay(context.Background(), "   ", testMonday)
	require.Error(t, err)
}
