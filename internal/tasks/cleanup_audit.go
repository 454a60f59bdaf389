package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

const defaultRetentionDays = 30

// AuditReportCleaner deletes structure audit reports.
type AuditReportCleaner interface {
	DeleteOldReports(ctx context.Context, olderThan time.Time) (int64, error)
}

// CleanupStructureAuditsTask removes audit reports older than the retention period.
type CleanupStructureAuditsTask struct {
	RetentionDays int `json:"retention_days"`
}

// Config returns the queue configuration for report cleanup tasks.
func (t CleanupStructureAuditsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_structure_audits",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupStructureAuditsProcessor creates a processor function for CleanupStructureAuditsTask.
func CleanupStructureAuditsProcessor(cleaner AuditReportCleaner) backlite.QueueProcessor[CleanupStructureAuditsTask] {
	return func(ctx context.Context, task CleanupStructureAuditsTask) error {
		if cleaner == nil {
			return fmt.Errorf("audit report cleaner not configured")
		}

		retentionDays := task.RetentionDays
		if retentionDays <= 0 {
			retentionDays = defaultRetentionDays
		}
		cutoff := time.Now().Add(-time.Duration(retentionDays) * 24 * time.Hour)

		deleted, err := cleaner.DeleteOldReports(ctx, cutoff)
		if err != nil {
			return fmt.Errorf("cleanup structure audits: %w", err)
		}

		log.Printf("[TASK] Cleaned up %d structure audit reports older than %d days", deleted, retentionDays)
		return nil
	}
}

// NewCleanupStructureAuditsQueue creates a backlite queue for report cleanup tasks.
func NewCleanupStructureAuditsQueue(cleaner AuditReportCleaner) backlite.Queue {
	return backlite.NewQueue(CleanupStructureAuditsProcessor(cleaner))
}
