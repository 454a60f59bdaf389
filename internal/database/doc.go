// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, pool limits, migrations
//	├── errors.go        # SQLite constraint and lock errors mapped to sentinels
//	├── languages/       # ISO 639-3 languages
//	├── sentences/       # Sentences, structure updates, batch scans
//	└── audit/           # Structure audit reports
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase(cfg.Database)
//
//	languagesRepo := languages.NewRepository(db.DB)
//	sentencesRepo := sentences.NewRepository(db.DB)
//
//	err := sentencesRepo.Create(ctx, sentence, "eng")
//	if errors.Is(err, database.ErrDuplicateKey) {
//		// another sentence already has this text in this language
//	}
//
// # Interface Implementations
//
//   - languages.Repository: implements services.LanguageStore
//   - sentences.Repository: implements services.SentenceStore and services.StructuredSentenceSource
//   - audit.Repository: implements services.AuditReportStore and tasks.AuditReportCleaner
//
// Compile-time checks live in internal/interfaces.
package database
