package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/sentences/internal/database"
	"github.com/mrlokans/sentences/internal/database/sentences"
	"github.com/mrlokans/sentences/internal/entities"
	"github.com/mrlokans/sentences/internal/structure"
)

const (
	DefaultPageSize = 100

	// structureUpdateAttempts bounds how often UpdateStructure re-reads a
	// sentence whose content changes underneath it.
	structureUpdateAttempts = 3
)

// CreateSentenceInput carries the fields of a new sentence.
// ID and Structure are optional.
type CreateSentenceInput struct {
	ID           *string
	Content      string
	LanguageCode string
	Structure    *string
}

// SentenceService implements the sentence operations on top of a SentenceStore.
type SentenceService struct {
	store    SentenceStore
	pageSize int
}

func NewSentenceService(store SentenceStore, pageSize int) *SentenceService {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &SentenceService{store: store, pageSize: pageSize}
}

// PageSize returns the maximum number of sentences a list call returns.
func (s *SentenceService) PageSize() int {
	return s.pageSize
}

// Create validates and inserts a sentence and returns its ID.
func (s *SentenceService) Create(ctx context.Context, input CreateSentenceInput) (string, error) {
	if input.Content == "" {
		return "", ErrEmptyContent
	}

	id := uuid.NewString()
	if input.ID != nil {
		parsed, err := ParseSentenceID(*input.ID)
		if err != nil {
			return "", err
		}
		id = parsed
	}

	if input.Structure != nil && !structure.Validate(*input.Structure, input.Content) {
		return "", ErrStructureMismatch
	}

	sentence := &entities.Sentence{
		ID:        id,
		Content:   input.Content,
		Structure: input.Structure,
	}

	languageCode := strings.TrimSpace(input.LanguageCode)
	err := s.store.Create(ctx, sentence, languageCode)
	switch {
	case err == nil:
		return id, nil
	case errors.Is(err, sentences.ErrUnknownLanguage):
		return "", ErrUnknownLanguage
	case errors.Is(err, database.ErrDuplicateID), errors.Is(err, database.ErrDuplicateKey):
		return "", s.insertConflict(ctx, id, input.Content, languageCode, err)
	default:
		return "", storageError("create sentence", err)
	}
}

// insertConflict works out which constraint rejected an insert and loads the
// sentence that holds it.
func (s *SentenceService) insertConflict(ctx context.Context, id, content, languageCode string, cause error) error {
	if existing, err := s.store.GetByID(ctx, id); err == nil {
		return &ConflictError{Err: ErrSentenceIDTaken, Existing: existing}
	}

	existing, err := s.store.FindByContent(ctx, content, languageCode)
	if err != nil {
		// The conflicting row vanished between the insert and the lookup.
		log.Printf("Conflict on sentence %s but no holder found: %v", id, err)
		if errors.Is(cause, database.ErrDuplicateID) {
			return &ConflictError{Err: ErrSentenceIDTaken}
		}
		return &ConflictError{Err: ErrDuplicateContent}
	}
	return &ConflictError{Err: ErrDuplicateContent, Existing: existing}
}

// GetByID retrieves a sentence with its language.
func (s *SentenceService) GetByID(ctx context.Context, id string) (*entities.Sentence, error) {
	id, err := ParseSentenceID(id)
	if err != nil {
		return nil, err
	}

	sentence, err := s.store.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSentenceNotFound
	}
	if err != nil {
		return nil, storageError("get sentence", err)
	}
	return sentence, nil
}

// List returns one page of sentences ordered by insertion time. A non-empty
// afterID starts the page at that sentence, so it is repeated from the
// previous page.
func (s *SentenceService) List(ctx context.Context, afterID string) ([]entities.Sentence, error) {
	if afterID != "" {
		parsed, err := ParseSentenceID(afterID)
		if err != nil {
			return nil, err
		}
		afterID = parsed
	}

	list, err := s.store.List(ctx, afterID, s.pageSize)
	if err != nil {
		return nil, storageError("list sentences", err)
	}
	return list, nil
}

// ListByLanguage returns one page of the sentences of a language. An unknown
// language has no sentences.
func (s *SentenceService) ListByLanguage(ctx context.Context, languageCode string) ([]entities.Sentence, error) {
	list, err := s.store.ListByLanguage(ctx, strings.TrimSpace(languageCode), s.pageSize)
	if err != nil {
		return nil, storageError("list sentences by language", err)
	}
	return list, nil
}

// UpdateContent replaces the text of a sentence. The structure is kept as is
// even if it no longer matches.
func (s *SentenceService) UpdateContent(ctx context.Context, id, content string) error {
	id, err := ParseSentenceID(id)
	if err != nil {
		return err
	}
	if content == "" {
		return ErrEmptyContent
	}

	err = s.store.UpdateContent(ctx, id, content)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrSentenceNotFound
	case errors.Is(err, database.ErrDuplicateKey):
		existing, lookupErr := s.store.FindContentConflict(ctx, id, content)
		if lookupErr != nil {
			log.Printf("Content conflict on sentence %s but no holder found: %v", id, lookupErr)
			return &ConflictError{Err: ErrDuplicateContent}
		}
		return &ConflictError{Err: ErrDuplicateContent, Existing: existing}
	default:
		return storageError("update sentence content", err)
	}
}

// UpdateStructure replaces the structure of a sentence after checking it
// against the current content. The write only lands if the content is still
// the one it was checked against.
func (s *SentenceService) UpdateStructure(ctx context.Context, id, markup string) error {
	id, err := ParseSentenceID(id)
	if err != nil {
		return err
	}

	for attempt := 0; attempt < structureUpdateAttempts; attempt++ {
		sentence, err := s.store.GetByID(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSentenceNotFound
		}
		if err != nil {
			return storageError("get sentence", err)
		}

		if !structure.Validate(markup, sentence.Content) {
			return ErrStructureMismatch
		}

		err = s.store.UpdateStructure(ctx, id, sentence.Content, markup)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrSentenceNotFound
		case errors.Is(err, sentences.ErrContentChanged):
			log.Printf("Content of sentence %s changed during structure update, retrying", id)
			continue
		default:
			return storageError("update sentence structure", err)
		}
	}
	return ErrConcurrentUpdate
}

// UpdateLanguage moves a sentence to another language.
func (s *SentenceService) UpdateLanguage(ctx context.Context, id, languageCode string) error {
	id, err := ParseSentenceID(id)
	if err != nil {
		return err
	}
	languageCode = strings.TrimSpace(languageCode)

	err = s.store.UpdateLanguage(ctx, id, languageCode)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrSentenceNotFound
	case errors.Is(err, sentences.ErrUnknownLanguage):
		return ErrLanguageNotFound
	case errors.Is(err, database.ErrDuplicateKey):
		sentence, lookupErr := s.store.GetByID(ctx, id)
		if lookupErr != nil {
			return &ConflictError{Err: ErrDuplicateContent}
		}
		existing, lookupErr := s.store.FindByContent(ctx, sentence.Content, languageCode)
		if lookupErr != nil {
			return &ConflictError{Err: ErrDuplicateContent}
		}
		return &ConflictError{Err: ErrDuplicateContent, Existing: existing}
	default:
		return storageError("update sentence language", err)
	}
}

// ParseSentenceID checks that id is a UUID and returns its canonical form.
func ParseSentenceID(id string) (string, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidSentenceID, id)
	}
	return parsed.String(), nil
}

// storageError classifies an unexpected store error. Unavailability is kept
// distinct so callers can tell a busy database from a broken one.
func storageError(op string, err error) error {
	if errors.Is(err, database.ErrUnavailable) {
		return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
