package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rasd-app/rasd-api/internal/models"
	"github.com/rasd-app/rasd-api/internal/service"
	appErrors "github.com/rasd-app/rasd-api/pkg/errors"
	"github.com/rasd-app/rasd-api/pkg/response"
)

// SubstitutionHandler manages substitution endpoints.
type SubstitutionHandler struct {
	service *service.SubstitutionService
	now     func() time.Time
}

// NewSubstitutionHandler constructs the handler.
func NewSubstitutionHandler(svc *service.SubstitutionService) *SubstitutionHandler {
	return &SubstitutionHandler{service: svc, now: time.Now}
}

// Assign godoc
// @Summary Assign a substitute teacher
// @Tags Substitutions
// @Accept json
// @Produce json
// @Param payload body service.AssignSubstituteRequest true "Substitution payload"
// @Success 201 {object} response.Envelope
// @Router /substitutions [post]
func (h *SubstitutionHandler) Assign(c *gin.Context) {
	var req service.AssignSubstituteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	sub, err := h.service.Assign(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, sub)
}

// List godoc
// @Summary List substitutions for a date
// @Tags Substitutions
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Envelope
// @Router /substitutions [get]
func (h *SubstitutionHandler) List(c *gin.Context) {
	date, ok := dateFromQuery(c, h.now)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date must be in YYYY-MM-DD form"))
		return
	}
	subs, err := h.service.ListForDate(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subs, nil, map[string]interface{}{"date": models.DateKey(date)})
}
