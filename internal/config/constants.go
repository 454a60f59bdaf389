package config

const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./sentences.db"

	DefaultPort = 8000

	// DefaultPageSize is the default number of sentences per list response
	DefaultPageSize = 100
)
