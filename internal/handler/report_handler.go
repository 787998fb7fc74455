package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rasd-app/rasd-api/internal/service"
	appErrors "github.com/rasd-app/rasd-api/pkg/errors"
	"github.com/rasd-app/rasd-api/pkg/response"
)

// ReportHandler serves downloadable readiness reports.
type ReportHandler struct {
	service *service.ReportService
	now     func() time.Time
}

// NewReportHandler constructs the handler.
func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{service: svc, now: time.Now}
}

// Readiness godoc
// @Summary Download the readiness report for a date
// @Tags Reports
// @Produce application/pdf
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Param format query string false "Report format (pdf or csv)" default(pdf)
// @Success 200 {file} binary
// @Router /reports/readiness [get]
func (h *ReportHandler) Readiness(c *gin.Context) {
	date, ok := dateFromQuery(c, h.now)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date must be in YYYY-MM-DD form"))
		return
	}
	file, err := h.service.ReadinessReport(c.Request.Context(), date, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Bytes)
}
