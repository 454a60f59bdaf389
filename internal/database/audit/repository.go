package audit

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/sentences/internal/database"
	"github.com/mrlokans/sentences/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// SaveReport stores the outcome of a structure audit.
func (r *Repository) SaveReport(ctx context.Context, report *entities.StructureAudit) error {
	if report.StartedAt.IsZero() {
		report.StartedAt = time.Now()
	}
	return database.TranslateError(r.db.WithContext(ctx).Create(report).Error)
}

// LatestReport retrieves the most recently started audit.
func (r *Repository) LatestReport(ctx context.Context) (*entities.StructureAudit, error) {
	var report entities.StructureAudit
	err := r.db.WithContext(ctx).Order("started_at DESC").Order("id DESC").First(&report).Error
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return &report, nil
}

// GetReports retrieves audit reports, most recent first.
func (r *Repository) GetReports(ctx context.Context, limit int) ([]entities.StructureAudit, error) {
	if limit <= 0 {
		limit = 50
	}

	var reports []entities.StructureAudit
	err := r.db.WithContext(ctx).Order("started_at DESC").Order("id DESC").Limit(limit).Find(&reports).Error
	return reports, database.TranslateError(err)
}

// DeleteOldReports removes reports started before olderThan.
// Returns the number of deleted reports.
func (r *Repository) DeleteOldReports(ctx context.Context, olderThan time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("started_at < ?", olderThan).Delete(&entities.StructureAudit{})
	return result.RowsAffected, database.TranslateError(result.Error)
}
