package services

import (
	"context"

	"github.com/mrlokans/sentences/internal/entities"
)

// SentenceStore persists sentences. Implementations rely on the schema for
// uniqueness and report violations as database.ErrDuplicateID or
// database.ErrDuplicateKey, a missing sentence as gorm.ErrRecordNotFound and
// a missing language as sentences.ErrUnknownLanguage.
type SentenceStore interface {
	Create(ctx context.Context, sentence *entities.Sentence, languageCode string) error
	GetByID(ctx context.Context, id string) (*entities.Sentence, error)
	FindByContent(ctx context.Context, content, languageCode string) (*entities.Sentence, error)
	FindContentConflict(ctx context.Context, id, content string) (*entities.Sentence, error)
	List(ctx context.Context, fromID string, limit int) ([]entities.Sentence, error)
	ListByLanguage(ctx context.Context, languageCode string, limit int) ([]entities.Sentence, error)
	UpdateContent(ctx context.Context, id, content string) error
	UpdateStructure(ctx context.Context, id, expectedContent, structure string) error
	UpdateLanguage(ctx context.Context, id, languageCode string) error
}

// LanguageStore persists languages.
type LanguageStore interface {
	Create(ctx context.Context, code string) (*entities.Language, error)
	GetByCode(ctx context.Context, code string) (*entities.Language, error)
	List(ctx context.Context) ([]entities.Language, error)
}

// StructuredSentenceSource iterates over sentences that carry a structure.
type StructuredSentenceSource interface {
	ForEachStructured(ctx context.Context, batchSize int, fn func([]entities.Sentence) error) error
}

// AuditReportStore persists structure audit reports.
type AuditReportStore interface {
	SaveReport(ctx context.Context, report *entities.StructureAudit) error
	LatestReport(ctx context.Context) (*entities.StructureAudit, error)
	GetReports(ctx context.Context, limit int) ([]entities.StructureAudit, error)
}
