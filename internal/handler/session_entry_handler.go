package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rasd-app/rasd-api/internal/models"
	appErrors "github.com/rasd-app/rasd-api/pkg/errors"
	"github.com/rasd-app/rasd-api/pkg/response"
)

type sessionEntryService interface {
	MarkComplete(ctx context.Context, sessionID string, date time.Time) (*models.EffectiveSession, bool, error)
	ListForDate(ctx context.Context, date time.Time) ([]models.SessionEntry, error)
}

// SessionEntryHandler manages the session-completion ledger endpoints.
type SessionEntryHandler struct {
	service sessionEntryService
	now     func() time.Time
}

// NewSessionEntryHandler constructs the handler.
func NewSessionEntryHandler(svc sessionEntryService) *SessionEntryHandler {
	return &SessionEntryHandler{service: svc, now: time.Now}
}

// Enter godoc
// @Summary Mark a session as entered for a date
// @Tags Session Entries
// @Produce json
// @Param id path string true "Schedule session ID"
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/entries [post]
func (h *SessionEntryHandler) Enter(c *gin.Context) {
	date, ok := dateFromQuery(c, h.now)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date must be in YYYY-MM-DD form"))
		return
	}
	effective, entered, err := h.service.MarkComplete(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	// Re-marking an already entered session succeeds but changes nothing.
	response.JSON(c, http.StatusOK, effective, nil, map[string]interface{}{
		"date":    models.DateKey(date),
		"entered": entered,
	})
}

// List godoc
// @Summary List session entries for a date
// @Tags Session Entries
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Envelope
// @Router /session-entries [get]
func (h *SessionEntryHandler) List(c *gin.Context) {
	date, ok := dateFromQuery(c, h.now)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date must be in YYYY-MM-DD form"))
		return
	}
	entries, err := h.service.ListForDate(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil, map[string]interface{}{"date": models.DateKey(date)})
}
