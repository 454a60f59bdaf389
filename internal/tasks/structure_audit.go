package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/sentences/internal/entities"
)

// StructureAuditRunner runs a structure audit and stores its report.
type StructureAuditRunner interface {
	Run(ctx context.Context, trigger entities.AuditTrigger) (*entities.StructureAudit, error)
}

// StructureAuditTask sweeps all structured sentences for stale structures.
type StructureAuditTask struct {
	Trigger entities.AuditTrigger `json:"trigger"`
}

// Config returns the queue configuration for structure audit tasks.
func (t StructureAuditTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "structure_audit",
		MaxAttempts: 2,
		Backoff:     time.Minute,
		Timeout:     30 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// StructureAuditProcessor creates a processor function for StructureAuditTask.
func StructureAuditProcessor(runner StructureAuditRunner) backlite.QueueProcessor[StructureAuditTask] {
	return func(ctx context.Context, task StructureAuditTask) error {
		if runner == nil {
			return fmt.Errorf("structure auditor not configured")
		}

		trigger := task.Trigger
		if trigger == "" {
			trigger = entities.AuditTriggerManual
		}

		report, err := runner.Run(ctx, trigger)
		if err != nil {
			return fmt.Errorf("structure audit: %w", err)
		}

		log.Printf("[TASK] Structure audit %d finished: %d/%d mismatched", report.ID, report.Mismatched, report.Checked)
		return nil
	}
}

// NewStructureAuditQueue creates a backlite queue for structure audit tasks.
func NewStructureAuditQueue(runner StructureAuditRunner) backlite.Queue {
	return backlite.NewQueue(StructureAuditProcessor(runner))
}
