// Package languages provides database operations for ISO 639-3 languages.
//
// This package implements the LanguageStore interface defined in
// internal/services/interfaces.go.
//
// # Usage
//
//	repo := languages.NewRepository(db)
//	lang, err := repo.Create(ctx, "eng")
package languages

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/sentences/internal/database"
	"github.com/mrlokans/sentences/internal/entities"
)

// Repository handles all language database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new languages repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a language. A code that is already taken yields
// database.ErrDuplicateKey from the unique index.
func (r *Repository) Create(ctx context.Context, code string) (*entities.Language, error) {
	language := &entities.Language{ISO6393: code}
	if err := r.db.WithContext(ctx).Create(language).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return language, nil
}

// GetByCode retrieves a language by its ISO 639-3 code.
func (r *Repository) GetByCode(ctx context.Context, code string) (*entities.Language, error) {
	var language entities.Language
	err := r.db.WithContext(ctx).Where("iso639_3 = ?", code).First(&language).Error
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return &language, nil
}

// List returns all languages ordered by code.
func (r *Repository) List(ctx context.Context) ([]entities.Language, error) {
	var languages []entities.Language
	err := r.db.WithContext(ctx).Order("iso639_3 ASC").Find(&languages).Error
	return languages, database.TranslateError(err)
}
