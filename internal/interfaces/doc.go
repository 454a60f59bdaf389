// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - SentenceStore: Sentence persistence (internal/services/interfaces.go)
//   - LanguageStore: Language registry (internal/services/interfaces.go)
//   - StructuredSentenceSource: Batched reads for audits (internal/services/interfaces.go)
//   - AuditReportStore: Audit report persistence (internal/services/interfaces.go)
//
// ## HTTP Boundary Interfaces
//
//   - SentenceManager: Sentence operations (internal/http/sentences.go)
//   - LanguageManager: Language operations (internal/http/languages.go)
//   - StructureAuditReader: Audit reports (internal/http/tasks.go)
//   - TaskQueue: Background task submission and status (internal/http/tasks.go)
//   - ScheduleReporter: Scheduled audit state for /health (internal/http/health.go)
//
// ## Background Task Interfaces
//
//   - StructureAuditRunner: Runs a structure audit (internal/tasks/structure_audit.go)
//   - AuditReportCleaner: Purges old reports (internal/tasks/cleanup_audit.go)
//   - Enqueuer: Scheduled task submission (internal/scheduler/structure_audit.go)
//
// # Adding a New Background Task
//
//  1. Define the task and its queue in internal/tasks/
//
//     type ReindexTask struct{}
//
//     func (t ReindexTask) Config() backlite.QueueConfig {
//         return backlite.QueueConfig{Name: "reindex", MaxAttempts: 1}
//     }
//
//  2. Register the queue in entrypoint.go
//
//  3. Enqueue it from a controller or the scheduler through TaskQueue
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
