package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mrlokans/sentences/internal/config"
	"github.com/mrlokans/sentences/internal/database"
	"github.com/mrlokans/sentences/internal/database/audit"
	"github.com/mrlokans/sentences/internal/database/languages"
	"github.com/mrlokans/sentences/internal/database/sentences"
	http_controllers "github.com/mrlokans/sentences/internal/http"
	"github.com/mrlokans/sentences/internal/scheduler"
	"github.com/mrlokans/sentences/internal/services"
	"github.com/mrlokans/sentences/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop accepting requests before the storage goes away
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	sentenceRepo := sentences.NewRepository(db.DB)
	auditRepo := audit.NewRepository(db.DB)

	sentenceService := services.NewSentenceService(sentenceRepo, cfg.Sentences.PageSize)
	languageService := services.NewLanguageService(languages.NewRepository(db.DB), sentenceService)
	auditor := services.NewStructureAuditor(sentenceRepo, auditRepo, cfg.StructureAudit.BatchSize)

	routerCfg := http_controllers.RouterConfig{
		Sentences:      sentenceService,
		Languages:      languageService,
		Database:       db,
		Auditor:        auditor,
		RequestTimeout: cfg.HTTP.RequestTimeout,
		Version:        version,
	}

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var auditScheduler *scheduler.StructureAuditScheduler
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.ConfigFrom(cfg.Tasks))
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewStructureAuditQueue(auditor),
			tasks.NewCleanupStructureAuditsQueue(auditRepo),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		routerCfg.TaskQueue = taskClient

		if cfg.StructureAudit.Enabled {
			auditScheduler = scheduler.NewStructureAuditScheduler(taskClient, cfg.StructureAudit.Schedule, cfg.StructureAudit.RetentionDays)
			if err := auditScheduler.Start(taskCtx); err != nil {
				log.Printf("WARNING: structure audit scheduler not started: %v", err)
				auditScheduler = nil
			} else {
				routerCfg.Scheduler = auditScheduler
			}
		}
	} else if cfg.StructureAudit.Enabled {
		log.Printf("WARNING: STRUCTURE_AUDIT_ENABLED requires TASKS_ENABLED. Scheduled audits are disabled.")
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if auditScheduler != nil {
			auditScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
