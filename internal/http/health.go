package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/sentences/internal/database"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// ScheduleReporter exposes the state of the periodic structure audit.
type ScheduleReporter interface {
	IsRunning() bool
	GetNextRunTime() *time.Time
}

type HealthController struct {
	db        *database.Database
	scheduler ScheduleReporter
	version   string
}

func NewHealthController(db *database.Database, scheduler ScheduleReporter, version string) *HealthController {
	return &HealthController{
		db:        db,
		scheduler: scheduler,
		version:   version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
	}

	// Informational only; a stopped schedule does not make the service unhealthy
	if h.scheduler != nil {
		if next := h.scheduler.GetNextRunTime(); h.scheduler.IsRunning() && next != nil {
			checks["structure_audit_schedule"] = "next run " + next.Format(time.RFC3339)
		} else {
			checks["structure_audit_schedule"] = "stopped"
		}
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}

func (h *HealthController) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
	})
}
