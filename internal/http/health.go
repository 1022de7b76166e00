package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger verifies connectivity to the backing store.
type Pinger interface {
	Ping() error
}

// HealthController reports service health.
type HealthController struct {
	db      Pinger
	version string
}

// NewHealthController creates a new HealthController.
func NewHealthController(db Pinger, version string) *HealthController {
	return &HealthController{db: db, version: version}
}

// Status answers 200 when the database is reachable, 503 otherwise.
// GET /health
func (hc *HealthController) Status(c *gin.Context) {
	if hc.db != nil {
		if err := hc.db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unavailable",
				"version": hc.version,
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": hc.version,
	})
}
