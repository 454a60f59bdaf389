package services

import (
	"errors"

	"github.com/mrlokans/sentences/internal/entities"
)

// Validation errors: the request is well-formed but its data is unacceptable.
var (
	ErrEmptyContent        = errors.New("sentence text must not be empty")
	ErrInvalidSentenceID   = errors.New("sentence id must be a UUID")
	ErrInvalidLanguageCode = errors.New("language code must be exactly 3 ASCII letters")
	ErrStructureMismatch   = errors.New("structure text does not match sentence content")
)

// ErrUnknownLanguage is a reference error: a new sentence names a language
// that does not exist.
var ErrUnknownLanguage = errors.New("referenced language does not exist")

// Not found errors.
var (
	ErrSentenceNotFound = errors.New("sentence not found")
	ErrLanguageNotFound = errors.New("language not found")
	ErrAuditNotFound    = errors.New("no structure audit has run yet")
)

// Conflict errors.
var (
	ErrSentenceIDTaken  = errors.New("sentence id already used")
	ErrDuplicateContent = errors.New("sentence with the same text already exists in this language")
	ErrLanguageExists   = errors.New("language already exists")
	ErrConcurrentUpdate = errors.New("sentence content kept changing while updating its structure")
)

// ErrStorageUnavailable indicates the storage could not serve the request.
var ErrStorageUnavailable = errors.New("storage unavailable")

// ConflictError is a uniqueness violation. Existing, when known, is the
// sentence that already holds the contested identifier or content.
type ConflictError struct {
	Err      error
	Existing *entities.Sentence
}

func (e *ConflictError) Error() string {
	return e.Err.Error()
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a client data error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyContent) ||
		errors.Is(err, ErrInvalidSentenceID) ||
		errors.Is(err, ErrInvalidLanguageCode) ||
		errors.Is(err, ErrStructureMismatch) ||
		errors.Is(err, ErrUnknownLanguage)
}

// IsNotFound reports whether err is a missing entity error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSentenceNotFound) ||
		errors.Is(err, ErrLanguageNotFound) ||
		errors.Is(err, ErrAuditNotFound)
}

// IsConflict reports whether err is a uniqueness or concurrency conflict.
func IsConflict(err error) bool {
	var conflict *ConflictError
	return errors.As(err, &conflict) ||
		errors.Is(err, ErrLanguageExists) ||
		errors.Is(err, ErrConcurrentUpdate)
}
