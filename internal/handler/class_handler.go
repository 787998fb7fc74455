package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rasd-app/rasd-api/internal/repository"
	"github.com/rasd-app/rasd-api/pkg/response"
)

// ClassHandler exposes the administrative class roster.
type ClassHandler struct {
	repo *repository.ClassRepository
}

// NewClassHandler constructs the handler.
func NewClassHandler(repo *repository.ClassRepository) *ClassHandler {
	return &ClassHandler{repo: repo}
}

// List godoc
// @Summary List classes in administrative order
// @Tags Classes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /classes [get]
func (h *ClassHandler) List(c *gin.Context) {
	classes, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes, nil)
}
