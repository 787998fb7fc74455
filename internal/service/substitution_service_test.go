package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rasd-app/rasd-api/internal/models"
	appErrors "github.com/rasd-app/rasd-api/pkg/errors"
)

type substitutionStoreStub struct {
	created []models.Substitution
	listed  []models.Substitution
}

func (s *substitutionStoreStub) Create(ctx context.Context, sub *models.Substitution) error {
	sub.ID = "sub-1"
	sub.CreatedAt = time.Now().UTC()
	s.created = append(s.created, *sub)
	return nil
}

func (s *substitutionStoreStub) ListForDate(ctx context.Context, date time.Time) ([]models.Substitution, error) {
	return s.listed, nil
}

func TestSubstitutionServiceAssign(t *testing.T) {
	store := &substitutionStoreStub{}
	finder := sessionFinderStub{sessions: map[string]*models.ScheduleSession{
		"sess-1": {ID: "sess-1", Day: models.DayMonday, ClassRoom: "Grade 4", Teacher: "Ali"},
	}}
	svc := NewSubstitutionService(store, finder, nil, nil, nil)

	sub, err := svc.Assign(context.Background(), AssignSubstituteRequest{
		Date:              "2026-03-02",
		ScheduleItemID:    "sess-1",
		SubstituteTeacher: "Omar",
	})
	require.NoError(t, err)
	require.Equal(t, "sub-1", sub.ID)
	require.Equal(t, "Omar", sub.SubstituteTeacher)
	require.Equal(t, "2026-03-02", models.DateKey(sub.Date))
	require.Len(t, store.created, 1)
}

func TestSubstitutionServiceAssignUnknownSession(t *testing.T) {
	store := &substitutionStoreStub{}
	svc := NewSubstitutionService(store, sessionFinderStub{}, nil, nil, nil)

	_, err := svc.Assign(context.Background(), AssignSubstituteRequest{
		Date:              "2026-03-02",
		ScheduleItemID:    "missing",
		SubstituteTeacher: "Omar",
	})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	require.Empty(t, store.created)
}

func TestSubstitutionServiceAssignValidation(t *testing.T) {
	svc := NewSubstitutionService(&substitutionStoreStub{}, sessionFinderStub{}, nil, nil, nil)

	cases := []AssignSubstituteRequest{
		{ScheduleItemID: "sess-1", SubstituteTeacher: "Omar"},
		{Date: "2026-03-02", SubstituteTeacher: "Omar"},
		{Date: "2026-03-02", ScheduleItemID: "sess-1"},
		{Date: "March 2nd", ScheduleItemID: "sess-1", SubstituteTeacher: "Omar"},
	}
	for _, req := range cases {
		_, err := svc.Assign(context.Background(), req)
		require.Error(t, err)
		require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	}
}
