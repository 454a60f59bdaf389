package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Sentences
		Tasks
		StructureAudit
	}

	HTTP struct {
		Port           int32
		Host           string
		RequestTimeout time.Duration // Deadline applied to every request context
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path            string
		MaxOpenConns    int
		MaxIdleConns    int
		ConnMaxLifetime time.Duration
		LogLevel        string // silent, error, warn, info
	}
	Sentences struct {
		PageSize int // Maximum sentences per list response
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	StructureAudit struct {
		Enabled       bool
		Schedule      string // Cron format: "0 3 * * *" = daily at 03:00
		BatchSize     int
		RetentionDays int // Days to keep audit reports (default: 30)
	}
)

// NewConfig reads the configuration from the environment. A .env file in the
// working directory, when present, is loaded first and never overrides
// variables that are already set.
func NewConfig() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", DefaultPort)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("request_timeout", "10s")

	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("db_max_open_conns", 4)
	v.SetDefault("db_max_idle_conns", 4)
	v.SetDefault("db_conn_max_lifetime", "30m")
	v.SetDefault("db_log_level", "warn")

	v.SetDefault("sentences_page_size", DefaultPageSize)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	v.SetDefault("structure_audit_enabled", false)
	v.SetDefault("structure_audit_schedule", "0 3 * * *") // Daily at 03:00
	v.SetDefault("structure_audit_batch_size", 200)
	v.SetDefault("audit_retention_days", 30)

	return &Config{
		HTTP: HTTP{
			Port:           v.GetInt32("PORT"),
			Host:           v.GetString("HOST"),
			RequestTimeout: v.GetDuration("REQUEST_TIMEOUT"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:            v.GetString("DATABASE_PATH"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			LogLevel:        v.GetString("DB_LOG_LEVEL"),
		},
		Sentences: Sentences{
			PageSize: v.GetInt("SENTENCES_PAGE_SIZE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		StructureAudit: StructureAudit{
			Enabled:       v.GetBool("STRUCTURE_AUDIT_ENABLED"),
			Schedule:      v.GetString("STRUCTURE_AUDIT_SCHEDULE"),
			BatchSize:     v.GetInt("STRUCTURE_AUDIT_BATCH_SIZE"),
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
		},
	}
}
