package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rasd-app/rasd-api/internal/models"
	"github.com/rasd-app/rasd-api/internal/service"
	appErrors "github.com/rasd-app/rasd-api/pkg/errors"
	"github.com/rasd-app/rasd-api/pkg/response"
)

// ScheduleHandler manages timetable endpoints.
type ScheduleHandler struct {
	service *service.ScheduleService
	now     func() time.Time
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(svc *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: svc, now: time.Now}
}

// List godoc
// @Summary List canonical timetable slots
// @Tags Schedules
// @Produce json
// @Param day query string false "Filter by weekday"
// @Param classRoom query string false "Filter by class room"
// @Param teacher query string false "Filter by teacher"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /schedules [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	var filter models.ScheduleFilter
	filter.Day = strings.ToUpper(c.Query("day"))
	filter.ClassRoom = c.Query("classRoom")
	filter.Teacher = c.Query("teacher")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		filter.PageSize = limit
	}
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")

	sessions, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessions, pagination)
}

// Replace godoc
// @Summary Replace the full weekly timetable
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body service.ReplaceScheduleRequest true "Timetable payload"
// @Success 200 {object} response.Envelope
// @Router /schedules [put]
func (h *ScheduleHandler) Replace(c *gin.Context) {
	var req service.ReplaceScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	count, err := h.service.Replace(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"replaced": count}, nil)
}

// Effective godoc
// @Summary Effective schedule for a date
// @Tags Schedules
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Param scope query string false "day (default) or week"
// @Success 200 {object} response.Envelope
// @Router /schedules/effective [get]
func (h *ScheduleHandler) Effective(c *gin.Context) {
	date, ok := dateFromQuery(c, h.now)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date must be in YYYY-MM-DD form"))
		return
	}

	var (
		sessions []models.EffectiveSession
		err      error
	)
	if c.DefaultQuery("scope", "day") == "week" {
		sessions, err = h.service.EffectiveWeek(c.Request.Context(), date)
	} else {
		sessions, err = h.service.EffectiveForDate(c.Request.Context(), date)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessions, nil, map[string]interface{}{"date": models.DateKey(date)})
}

// TeacherDay godoc
// @Summary A teacher's effective sessions for a date
// @Tags Schedules
// @Produce json
// @Param name path string true "Teacher name"
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Envelope
// @Router /teachers/{name}/schedules [get]
func (h *ScheduleHandler) TeacherDay(c *gin.Context) {
	date, ok := dateFromQuery(c, h.now)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date must be in YYYY-MM-DD form"))
		return
	}
	sessions, err := h.service.TeacherDay(c.Request.Context(), c.Param("name"), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessions, nil, map[string]interface{}{"date": models.DateKey(date)})
}
