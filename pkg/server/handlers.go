package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/battrack/battrack/pkg/battery"
	"github.com/battrack/battrack/pkg/store"
	"github.com/battrack/battrack/pkg/tracker"
)

const (
	defaultHistoryDays = 30
	maxHistoryDays     = 365
)

// daysParam reads and clamps the ?days query parameter. Non-numeric
// input is a client error; out-of-range values are clamped like the
// CLI does.
func daysParam(c *gin.Context) (int, bool) {
	raw := c.DefaultQuery("days", strconv.Itoa(defaultHistoryDays))
	days, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "days must be an integer"})
		return 0, false
	}
	if days < 1 {
		days = 1
	}
	if days > maxHistoryDays {
		days = maxHistoryDays
	}
	return days, true
}

func (s *Server) getCurrent(c *gin.Context) {
	metrics, err := s.extractor.Extract(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   "could not retrieve battery information",
		})
		return
	}
	metrics = battery.Derive(metrics)

	data := gin.H{"metrics": metrics}
	if charge, err := battery.ReadChargeState(); err == nil {
		data["charge"] = charge
	} else {
		logrus.WithError(err).Debug("charge state unavailable")
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"data":      data,
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) getHistory(c *gin.Context) {
	days, ok := daysParam(c)
	if !ok {
		return
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)
	records, err := s.store.Range(start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	if records == nil {
		records = []store.Record{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    records,
		"days":    days,
	})
}

func (s *Server) postRecord(c *gin.Context) {
	force := c.Query("force") == "true"

	res := s.collector.Collect(c.Request.Context(), force)
	if res.Status == tracker.StatusFailed {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"status":  res.Status,
			"error":   res.Err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"status":  res.Status,
		"data":    res.Record,
	})
}

func (s *Server) getStats(c *gin.Context) {
	days, ok := daysParam(c)
	if !ok {
		return
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)
	stats, err := s.store.Stats(start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	// stats is nil for an empty range: serialized as null, not zeros.
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
		"days":    days,
	})
}
