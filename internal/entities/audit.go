package entities

import "time"

// AuditTrigger records what started a structure audit.
type AuditTrigger string

const (
	AuditTriggerManual   AuditTrigger = "manual"
	AuditTriggerSchedule AuditTrigger = "schedule"
	AuditTriggerCLI      AuditTrigger = "cli"
)

// StructureAudit records one sweep over stored sentences looking for
// structures that no longer match their content.
type StructureAudit struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	Trigger       AuditTrigger `gorm:"size:20" json:"trigger"`
	Checked       int          `json:"checked"`
	Mismatched    int          `json:"mismatched"`
	MismatchedIDs string       `gorm:"type:text" json:"mismatched_ids,omitempty"` // comma separated sentence IDs
	StartedAt     time.Time    `gorm:"index" json:"started_at"`
	FinishedAt    time.Time    `json:"finished_at"`
}

func (StructureAudit) TableName() string {
	return "structure_audits"
}
