package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rasd-app/rasd-api/internal/dto"
	"github.com/rasd-app/rasd-api/internal/middleware"
	"github.com/rasd-app/rasd-api/internal/models"
	appErrors "github.com/rasd-app/rasd-api/pkg/errors"
	"github.com/rasd-app/rasd-api/pkg/response"
)

type readinessService interface {
	ClassReadiness(ctx context.Context, date time.Time) (*dto.ReadinessResponse, bool, error)
	SendReminder(ctx context.Context, className string, date time.Time) (*dto.ReminderReceipt, error)
}

// DashboardHandler serves the per-class readiness view and reminders.
type DashboardHandler struct {
	service readinessService
	now     func() time.Time
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(svc readinessService) *DashboardHandler {
	return &DashboardHandler{service: svc, now: time.Now}
}

// Readiness godoc
// @Summary Per-class session entry readiness for a date
// @Tags Dashboard
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Envelope
// @Router /dashboard/readiness [get]
func (h *DashboardHandler) Readiness(c *gin.Context) {
	date, ok := dateFromQuery(c, h.now)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date must be in YYYY-MM-DD form"))
		return
	}
	result, cacheHit, err := h.service.ClassReadiness(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	meta["date"] = models.DateKey(date)
	response.JSON(c, http.StatusOK, result, nil, meta)
}

// Remind godoc
// @Summary Queue a reminder to the first pending teacher of a class
// @Tags Dashboard
// @Produce json
// @Param className path string true "Class name"
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 202 {object} response.Envelope
// @Router /dashboard/readiness/{className}/remind [post]
func (h *DashboardHandler) Remind(c *gin.Context) {
	date, ok := dateFromQuery(c, h.now)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date must be in YYYY-MM-DD form"))
		return
	}
	receipt, err := h.service.SendReminder(c.Request.Context(), c.Param("className"), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, receipt, nil, map[string]interface{}{"date": models.DateKey(date)})
}
