package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/sentences/internal/database/audit"
	"github.com/mrlokans/sentences/internal/database/languages"
	"github.com/mrlokans/sentences/internal/database/sentences"
	"github.com/mrlokans/sentences/internal/http"
	"github.com/mrlokans/sentences/internal/scheduler"
	"github.com/mrlokans/sentences/internal/services"
	"github.com/mrlokans/sentences/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ services.LanguageStore = (*languages.Repository)(nil)

var _ services.SentenceStore = (*sentences.Repository)(nil)
var _ services.StructuredSentenceSource = (*sentences.Repository)(nil)

var _ services.AuditReportStore = (*audit.Repository)(nil)
var _ tasks.AuditReportCleaner = (*audit.Repository)(nil)

// =============================================================================
// Services exposed over HTTP
// =============================================================================

var _ http.SentenceManager = (*services.SentenceService)(nil)
var _ http.LanguageManager = (*services.LanguageService)(nil)
var _ http.StructureAuditReader = (*services.StructureAuditor)(nil)

// =============================================================================
// Background Tasks
// =============================================================================

var _ tasks.StructureAuditRunner = (*services.StructureAuditor)(nil)
var _ http.TaskQueue = (*tasks.Client)(nil)
var _ scheduler.Enqueuer = (*tasks.Client)(nil)
var _ http.ScheduleReporter = (*scheduler.StructureAuditScheduler)(nil)
