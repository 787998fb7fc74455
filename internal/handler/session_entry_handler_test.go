package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/rasd-app/rasd-api/internal/models"
	appErrors "github.com/rasd-app/rasd-api/pkg/errors"
)

type sessionEntryServiceMock struct {
	session  *models.EffectiveSession
	inserted bool
	err      *appErrors.Error
	lastID   string
	lastDate time.Time
}

func (m *sessionEntryServiceMock) MarkComplete(ctx context.Context, sessionID string, date time.Time) (*models.EffectiveSession, bool, error) {
	m.lastID = sessionID
	m.lastDate = date
	if m.err != nil {
		return nil, false, m.err
	}
	return m.session, m.inserted, nil
}

func (m *sessionEntryServiceMock) ListForDate(ctx context.Context, date time.Time) ([]models.SessionEntry, error) {
	return []models.SessionEntry{{SessionID: "sess-1", EntryDate: date}}, nil
}

func TestSessionEntryHandlerEnter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &sessionEntryServiceMock{
		session: &models.EffectiveSession{
			ScheduleSession: models.ScheduleSession{ID: "sess-1", ClassRoom: "Grade 4", Teacher: "Ali"},
		},
		inserted: true,
	}
	handler := NewSessionEntryHandler(mock)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/sessions/sess-1/entries?date=2026-03-02", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "sess-1"}}

	handler.Enter(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "sess-1", mock.lastID)
	require.Equal(t, "2026-03-02", models.DateKey(mock.lastDate))

	var body envelopeBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, true, body.Meta["entered"])
	require.Equal(t, "2026-03-02", body.Meta["date"])
}

func TestSessionEntryHandlerEnterDuplicate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &sessionEntryServiceMock{
		session: &models.EffectiveSession{
			ScheduleSession: models.ScheduleSession{ID: "sess-1", ClassRoom: "Grade 4", Teacher: "Ali"},
		},
		inserted: false,
	}
	handler := NewSessionEntryHandler(mock)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/sessions/sess-1/entries?date=2026-03-02", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "sess-1"}}

	handler.Enter(c)
	require.Equal(t, http.StatusOK, w.Code)

	var body envelopeBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, false, body.Meta["entered"])
}

func TestSessionEntryHandlerEnterUnknownSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &sessionEntryServiceMock{err: appErrors.Clone(appErrors.ErrNotFound, "schedule session not found")}
	handler := NewSessionEntryHandler(mock)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/sessions/nope/entries", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	handler.Enter(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionEntryHandlerEnterBadDate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSessionEntryHandler(&sessionEntryServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/sessions/sess-1/entries?date=yesterday", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "sess-1"}}

	handler.Enter(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
