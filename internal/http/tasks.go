package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/sentences/internal/entities"
	"github.com/mrlokans/sentences/internal/tasks"
)

// TaskQueue enqueues background tasks and reports their status.
type TaskQueue interface {
	Enqueue(ctx context.Context, task backlite.Task) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// StructureAuditReader reads stored structure audit reports.
type StructureAuditReader interface {
	Latest(ctx context.Context) (*entities.StructureAudit, error)
	History(ctx context.Context, limit int) ([]entities.StructureAudit, error)
}

// AuditsController handles structure audit and task status endpoints.
type AuditsController struct {
	auditor StructureAuditReader
	queue   TaskQueue
}

// NewAuditsController creates a new AuditsController. queue may be nil.
func NewAuditsController(auditor StructureAuditReader, queue TaskQueue) *AuditsController {
	return &AuditsController{auditor: auditor, queue: queue}
}

// RunAudit enqueues a structure audit
// POST /admin/structure-audits
func (ac *AuditsController) RunAudit(c *gin.Context) {
	if ac.queue == nil {
		respondError(c, http.StatusServiceUnavailable, "task queue is disabled", "tasks_disabled")
		return
	}

	taskID, err := ac.queue.Enqueue(c.Request.Context(), tasks.StructureAuditTask{Trigger: entities.AuditTriggerManual})
	if err != nil {
		respondInternalError(c, err, "enqueue structure audit")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"task_id": taskID,
		"message": "structure audit enqueued",
	})
}

// LatestAudit returns the most recent audit report
// GET /admin/structure-audits/latest
func (ac *AuditsController) LatestAudit(c *gin.Context) {
	report, err := ac.auditor.Latest(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "latest structure audit")
		return
	}
	c.JSON(http.StatusOK, report)
}

// ListAudits returns recent audit reports, newest first
// GET /admin/structure-audits?limit=N
func (ac *AuditsController) ListAudits(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid limit",
				Code:    "invalid_limit",
				Details: gin.H{"limit": raw, "expected": "positive integer"},
			})
			return
		}
		limit = parsed
	}

	reports, err := ac.auditor.History(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err, "list structure audits")
		return
	}
	c.JSON(http.StatusOK, reports)
}

// GetTaskStatus returns the status of a background task
// GET /admin/tasks/:id
func (ac *AuditsController) GetTaskStatus(c *gin.Context) {
	if ac.queue == nil {
		respondError(c, http.StatusServiceUnavailable, "task queue is disabled", "tasks_disabled")
		return
	}

	taskID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := ac.queue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}
	if status == backlite.TaskStatusNotFound {
		respondNotFound(c, "task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
