package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"bookingengine/internal/app/dto"
	reportsapp "bookingengine/internal/app/handlers/reports"
	"bookingengine/internal/app/queries"
)

type ReportHTTP interface {
	Revenue(c *gin.Context)
}

type ReportHandler struct {
	Queries queries.Bus
}

func (h ReportHandler) Revenue(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	var from, to time.Time
	if raw := c.Query("from"); raw != "" {
		t, err := parseDateParam(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
			return
		}
		from = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := parseDateParam(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
			return
		}
		to = t
	}
	result, err := queries.Ask[reportsapp.RevenueQuery, dto.Revenue](c.Request.Context(), h.Queries, reportsapp.RevenueQuery{From: from, To: to})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ ReportHTTP = ReportHandler{}
