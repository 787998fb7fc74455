package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rasd-app/rasd-api/internal/repository"
	"github.com/rasd-app/rasd-api/pkg/response"
)

// AuditHandler exposes the session-entry audit feed.
type AuditHandler struct {
	repo *repository.AuditRepository
}

// NewAuditHandler constructs the handler.
func NewAuditHandler(repo *repository.AuditRepository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

// Recent godoc
// @Summary List recent session entry audit events
// @Tags Audit
// @Produce json
// @Param limit query int false "Maximum events to return" default(50)
// @Success 200 {object} response.Envelope
// @Router /audit/events [get]
func (h *AuditHandler) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	events, err := h.repo.ListRecent(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, nil)
}
