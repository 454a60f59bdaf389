package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/sentences/internal/entities"
	"github.com/mrlokans/sentences/internal/structure"
)

const (
	DefaultAuditBatchSize = 200

	// maxReportedMismatches caps the IDs kept in a report.
	maxReportedMismatches = 1000
)

// StructureAuditor finds sentences whose structure no longer flattens to
// their content, which happens after a content-only update. It only reports;
// sentences are never modified.
type StructureAuditor struct {
	sentences StructuredSentenceSource
	reports   AuditReportStore
	batchSize int
}

func NewStructureAuditor(sentences StructuredSentenceSource, reports AuditReportStore, batchSize int) *StructureAuditor {
	if batchSize <= 0 {
		batchSize = DefaultAuditBatchSize
	}
	return &StructureAuditor{sentences: sentences, reports: reports, batchSize: batchSize}
}

// Run checks every structured sentence and stores the resulting report.
func (a *StructureAuditor) Run(ctx context.Context, trigger entities.AuditTrigger) (*entities.StructureAudit, error) {
	report := &entities.StructureAudit{
		Trigger:   trigger,
		StartedAt: time.Now(),
	}

	var mismatched []string
	err := a.sentences.ForEachStructured(ctx, a.batchSize, func(batch []entities.Sentence) error {
		for _, sentence := range batch {
			if sentence.Structure == nil {
				continue
			}
			report.Checked++
			if !structure.Validate(*sentence.Structure, sentence.Content) {
				report.Mismatched++
				if len(mismatched) < maxReportedMismatches {
					mismatched = append(mismatched, sentence.ID)
				}
			}
		}
		return ctx.Err()
	})
	if err != nil {
		return nil, storageError("scan structured sentences", err)
	}

	report.MismatchedIDs = strings.Join(mismatched, ",")
	report.FinishedAt = time.Now()

	if err := a.reports.SaveReport(ctx, report); err != nil {
		return nil, storageError("save structure audit", err)
	}

	log.Printf("Structure audit (%s): checked %d sentences, %d mismatched", trigger, report.Checked, report.Mismatched)
	return report, nil
}

// Latest returns the most recent audit report.
func (a *StructureAuditor) Latest(ctx context.Context) (*entities.StructureAudit, error) {
	report, err := a.reports.LatestReport(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAuditNotFound
	}
	if err != nil {
		return nil, storageError("latest structure audit", err)
	}
	return report, nil
}

// History returns up to limit reports, newest first.
func (a *StructureAuditor) History(ctx context.Context, limit int) ([]entities.StructureAudit, error) {
	reports, err := a.reports.GetReports(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list structure audits: %w", err)
	}
	return reports, nil
}
