package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rasd-app/rasd-api/internal/models"
)

// dateFromQuery parses the date query param, defaulting to now when absent.
// The parsed value is what flows into the core as the explicit "today".
func dateFromQuery(c *gin.Context, now func() time.Time) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return now().UTC(), true
	}
	date, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}
