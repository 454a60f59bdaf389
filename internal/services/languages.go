package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/sentences/internal/database"
	"github.com/mrlokans/sentences/internal/entities"
)

var languageCodePattern = regexp.MustCompile(`^[A-Za-z]{3}$`)

// LanguageService manages languages and language-scoped sentence lookups.
type LanguageService struct {
	store     LanguageStore
	sentences *SentenceService
}

func NewLanguageService(store LanguageStore, sentences *SentenceService) *LanguageService {
	return &LanguageService{store: store, sentences: sentences}
}

// Create registers a language under its ISO 639-3 code.
func (s *LanguageService) Create(ctx context.Context, code string) (*entities.Language, error) {
	code, err := ParseLanguageCode(code)
	if err != nil {
		return nil, err
	}

	language, err := s.store.Create(ctx, code)
	switch {
	case err == nil:
		return language, nil
	case errors.Is(err, database.ErrDuplicateKey):
		return nil, fmt.Errorf("%w: %s", ErrLanguageExists, code)
	default:
		return nil, storageError("create language", err)
	}
}

// Get looks up a language by its ISO 639-3 code.
func (s *LanguageService) Get(ctx context.Context, code string) (*entities.Language, error) {
	code, err := ParseLanguageCode(code)
	if err != nil {
		return nil, err
	}

	language, err := s.store.GetByCode(ctx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLanguageNotFound
	}
	if err != nil {
		return nil, storageError("get language", err)
	}
	return language, nil
}

// List returns all registered languages ordered by code.
func (s *LanguageService) List(ctx context.Context) ([]entities.Language, error) {
	languages, err := s.store.List(ctx)
	if err != nil {
		return nil, storageError("list languages", err)
	}
	return languages, nil
}

// GetSentencesByLanguage returns the sentences of a language, empty when the
// language is unknown.
func (s *LanguageService) GetSentencesByLanguage(ctx context.Context, code string) ([]entities.Sentence, error) {
	return s.sentences.ListByLanguage(ctx, code)
}

// ParseLanguageCode trims code and checks it is three ASCII letters.
func ParseLanguageCode(code string) (string, error) {
	code = strings.TrimSpace(code)
	if !languageCodePattern.MatchString(code) {
		return "", fmt.Errorf("%w: %q", ErrInvalidLanguageCode, code)
	}
	return code, nil
}
