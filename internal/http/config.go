package http

import (
	"time"

	"github.com/mrlokans/sentences/internal/database"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Sentences SentenceManager
	Languages LanguageManager
	Database  *database.Database

	// Structure audits; TaskQueue is nil when background tasks are disabled
	Auditor   StructureAuditReader
	TaskQueue TaskQueue
	Scheduler ScheduleReporter // nil when scheduled audits are disabled

	// RequestTimeout bounds the context of every request. Zero disables it.
	RequestTimeout time.Duration

	// Application info
	Version string
}
