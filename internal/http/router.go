package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Global middleware also runs for unmatched routes, which is how
	// preflight requests on any path get their 204.
	router.Use(CORSMiddleware())
	router.Use(RequestTimeoutMiddleware(cfg.RequestTimeout))

	health := NewHealthController(cfg.Database, cfg.Scheduler, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	if cfg.Languages != nil {
		languagesController := NewLanguagesController(cfg.Languages)
		router.POST("/languages", languagesController.CreateLanguage)
		router.GET("/languages", languagesController.ListLanguages)
		router.GET("/languages/:code", languagesController.GetLanguage)
		router.GET("/languages/:code/sentences", languagesController.GetSentences)
	}

	if cfg.Sentences != nil {
		sentencesController := NewSentencesController(cfg.Sentences)
		router.POST("/sentences", sentencesController.CreateSentence)
		router.GET("/sentences", sentencesController.ListSentences)
		router.GET("/sentences/:id", sentencesController.GetSentence)
		router.PUT("/sentences/:id/text", sentencesController.UpdateText)
		router.PUT("/sentences/:id/structure", sentencesController.UpdateStructure)
		router.PUT("/sentences/:id/language", sentencesController.UpdateLanguage)
	}

	if cfg.Auditor != nil {
		auditsController := NewAuditsController(cfg.Auditor, cfg.TaskQueue)
		router.POST("/admin/structure-audits", auditsController.RunAudit)
		router.GET("/admin/structure-audits", auditsController.ListAudits)
		router.GET("/admin/structure-audits/latest", auditsController.LatestAudit)
		router.GET("/admin/tasks/:id", auditsController.GetTaskStatus)
	}

	return router
}
