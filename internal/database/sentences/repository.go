// Package sentences provides database operations for sentences.
//
// Uniqueness of sentence IDs and of (language, content) pairs is left to the
// schema: writes are attempted directly and constraint failures come back as
// database.ErrDuplicateID or database.ErrDuplicateKey.
//
// # Usage
//
//	repo := sentences.NewRepository(db)
//	err := repo.Create(ctx, &entities.Sentence{ID: id, Content: "Hello."}, "eng")
package sentences

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/sentences/internal/database"
	"github.com/mrlokans/sentences/internal/entities"
)

var (
	// ErrUnknownLanguage is returned when a write references a language code
	// that does not exist.
	ErrUnknownLanguage = errors.New("unknown language")

	// ErrContentChanged is returned by UpdateStructure when the sentence no
	// longer has the content the structure was checked against.
	ErrContentChanged = errors.New("sentence content changed")
)

// Repository handles all sentence database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new sentences repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create resolves languageCode and inserts the sentence in one transaction.
func (r *Repository) Create(ctx context.Context, sentence *entities.Sentence, languageCode string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		language, err := findLanguage(tx, languageCode)
		if err != nil {
			return err
		}

		sentence.LanguageID = &language.ID
		if err := tx.Omit("Language").Create(sentence).Error; err != nil {
			return err
		}
		sentence.Language = language
		return nil
	})
	return database.TranslateError(err)
}

// GetByID retrieves a sentence with its language.
func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Sentence, error) {
	var sentence entities.Sentence
	err := r.db.WithContext(ctx).Preload("Language").Where("id = ?", id).First(&sentence).Error
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return &sentence, nil
}

// FindByContent retrieves the sentence holding content in the given language.
func (r *Repository) FindByContent(ctx context.Context, content, languageCode string) (*entities.Sentence, error) {
	var sentence entities.Sentence
	err := r.db.WithContext(ctx).Preload("Language").
		Where("content = ? AND language_id = (SELECT id FROM languages WHERE iso639_3 = ?)", content, languageCode).
		First(&sentence).Error
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return &sentence, nil
}

// FindContentConflict retrieves the sentence, other than id, that already holds
// content in id's language.
func (r *Repository) FindContentConflict(ctx context.Context, id, content string) (*entities.Sentence, error) {
	var sentence entities.Sentence
	err := r.db.WithContext(ctx).Preload("Language").
		Where("id <> ? AND content = ? AND language_id = (SELECT language_id FROM sentences WHERE id = ?)", id, content, id).
		First(&sentence).Error
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return &sentence, nil
}

// List returns sentences ordered by insertion time then ID.
// A non-empty fromID keeps only sentences whose ID is >= fromID.
func (r *Repository) List(ctx context.Context, fromID string, limit int) ([]entities.Sentence, error) {
	query := r.db.WithContext(ctx).Preload("Language").Where("language_id IS NOT NULL")
	if fromID != "" {
		query = query.Where("id >= ?", fromID)
	}
	return r.find(query, limit)
}

// ListByLanguage returns the sentences of one language, in the same order as
// List. An unknown code yields an empty slice.
func (r *Repository) ListByLanguage(ctx context.Context, languageCode string, limit int) ([]entities.Sentence, error) {
	query := r.db.WithContext(ctx).Preload("Language").
		Where("language_id = (SELECT id FROM languages WHERE iso639_3 = ?)", languageCode)
	return r.find(query, limit)
}

func (r *Repository) find(query *gorm.DB, limit int) ([]entities.Sentence, error) {
	query = query.Order("added_at ASC").Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	sentences := []entities.Sentence{}
	if err := query.Find(&sentences).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return sentences, nil
}

// UpdateContent replaces the content of a sentence, leaving structure and
// language untouched.
func (r *Repository) UpdateContent(ctx context.Context, id, content string) error {
	result := r.db.WithContext(ctx).Model(&entities.Sentence{}).Where("id = ?", id).Update("content", content)
	if result.Error != nil {
		return database.TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateStructure replaces the structure of a sentence provided its content
// still equals expectedContent.
func (r *Repository) UpdateStructure(ctx context.Context, id, expectedContent, structure string) error {
	db := r.db.WithContext(ctx)
	result := db.Model(&entities.Sentence{}).
		Where("id = ? AND content = ?", id, expectedContent).
		Update("structure", structure)
	if result.Error != nil {
		return database.TranslateError(result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.Model(&entities.Sentence{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return database.TranslateError(err)
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return ErrContentChanged
}

// UpdateLanguage moves a sentence to another language.
func (r *Repository) UpdateLanguage(ctx context.Context, id, languageCode string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entities.Sentence{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}

		language, err := findLanguage(tx, languageCode)
		if err != nil {
			return err
		}

		return tx.Model(&entities.Sentence{}).Where("id = ?", id).Update("language_id", language.ID).Error
	})
	return database.TranslateError(err)
}

// ForEachStructured calls fn with successive batches of sentences that carry a
// structure. Iteration stops at the first error returned by fn.
func (r *Repository) ForEachStructured(ctx context.Context, batchSize int, fn func([]entities.Sentence) error) error {
	var batch []entities.Sentence
	result := r.db.WithContext(ctx).Where("structure IS NOT NULL").
		FindInBatches(&batch, batchSize, func(tx *gorm.DB, _ int) error {
			return fn(batch)
		})
	return database.TranslateError(result.Error)
}

func findLanguage(tx *gorm.DB, code string) (*entities.Language, error) {
	var language entities.Language
	err := tx.Where("iso639_3 = ?", code).First(&language).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnknownLanguage
	}
	if err != nil {
		return nil, err
	}
	return &language, nil
}
