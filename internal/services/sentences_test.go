package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/sentences/internal/config"
	"github.com/mrlokans/sentences/internal/database"
	"github.com/mrlokans/sentences/internal/database/audit"
	"github.com/mrlokans/sentences/internal/database/languages"
	"github.com/mrlokans/sentences/internal/database/sentences"
	"github.com/mrlokans/sentences/internal/entities"
)

type testEnv struct {
	db        *database.Database
	sentences *SentenceService
	languages *LanguageService
	auditor   *StructureAuditor
}

func setupTestEnv(t *testing.T, pageSize int, codes ...string) *testEnv {
	t.Helper()
	db, err := database.NewDatabase(config.Database{
		Path:     filepath.Join(t.TempDir(), "test.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sentenceRepo := sentences.NewRepository(db.DB)
	sentenceService := NewSentenceService(sentenceRepo, pageSize)
	env := &testEnv{
		db:        db,
		sentences: sentenceService,
		languages: NewLanguageService(languages.NewRepository(db.DB), sentenceService),
		auditor:   NewStructureAuditor(sentenceRepo, audit.NewRepository(db.DB), 2),
	}

	for _, code := range codes {
		_, err := env.languages.Create(context.Background(), code)
		require.NoError(t, err)
	}
	return env
}

func strPtr(s string) *string {
	return &s
}

func sentenceID(i int) string {
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", i)
}

func TestSentenceService_Create(t *testing.T) {
	env := setupTestEnv(t, 0, "eng", "deu")
	ctx := context.Background()

	t.Run("generates an id when none is given", func(t *testing.T) {
		id, err := env.sentences.Create(ctx, CreateSentenceInput{Content: "Hello.", LanguageCode: "eng"})
		require.NoError(t, err)
		_, err = ParseSentenceID(id)
		assert.NoError(t, err)
	})

	t.Run("uses the supplied id in canonical form", func(t *testing.T) {
		id, err := env.sentences.Create(ctx, CreateSentenceInput{
			ID:           strPtr("6BA7B810-9DAD-11D1-80B4-00C04FD430C8"),
			Content:      "Upper case id.",
			LanguageCode: "eng",
		})
		require.NoError(t, err)
		assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", id)
	})

	t.Run("trims the language code like language creation does", func(t *testing.T) {
		id, err := env.sentences.Create(ctx, CreateSentenceInput{Content: "Padded code.", LanguageCode: " eng\n"})
		require.NoError(t, err)

		sentence, err := env.sentences.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "eng", sentence.LanguageCode())
	})

	t.Run("null structure reads back as null", func(t *testing.T) {
		id, err := env.sentences.Create(ctx, CreateSentenceInput{Content: "No structure.", LanguageCode: "eng"})
		require.NoError(t, err)

		sentence, err := env.sentences.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, sentence.Structure)
	})

	t.Run("matching structure round-trips unchanged", func(t *testing.T) {
		markup := `<s><w pos="n">Cats</w> <w pos="v">sleep</w>.</s>`
		id, err := env.sentences.Create(ctx, CreateSentenceInput{Content: "Cats sleep.", LanguageCode: "eng", Structure: &markup})
		require.NoError(t, err)

		sentence, err := env.sentences.GetByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, sentence.Structure)
		assert.Equal(t, markup, *sentence.Structure)
		assert.Equal(t, "eng", sentence.LanguageCode())
	})

	t.Run("empty content", func(t *testing.T) {
		_, err := env.sentences.Create(ctx, CreateSentenceInput{Content: "", LanguageCode: "eng"})
		assert.ErrorIs(t, err, ErrEmptyContent)
		assert.True(t, IsValidation(err))
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := env.sentences.Create(ctx, CreateSentenceInput{ID: strPtr("not-a-uuid"), Content: "x", LanguageCode: "eng"})
		assert.ErrorIs(t, err, ErrInvalidSentenceID)
	})

	t.Run("structure that does not match", func(t *testing.T) {
		_, err := env.sentences.Create(ctx, CreateSentenceInput{
			Content:      "This is",
			LanguageCode: "eng",
			Structure:    strPtr("<a>This</a><b>is</b>"),
		})
		assert.ErrorIs(t, err, ErrStructureMismatch)
	})

	t.Run("unknown language persists nothing", func(t *testing.T) {
		id := sentenceID(500)
		_, err := env.sentences.Create(ctx, CreateSentenceInput{ID: &id, Content: "Orphan.", LanguageCode: "xxx"})
		assert.ErrorIs(t, err, ErrUnknownLanguage)
		assert.True(t, IsValidation(err))

		_, err = env.sentences.GetByID(ctx, id)
		assert.ErrorIs(t, err, ErrSentenceNotFound)
	})

	t.Run("duplicate content in a language returns the existing sentence", func(t *testing.T) {
		markup := "<w>Twice</w>."
		firstID, err := env.sentences.Create(ctx, CreateSentenceInput{Content: "Twice.", LanguageCode: "deu", Structure: &markup})
		require.NoError(t, err)

		_, err = env.sentences.Create(ctx, CreateSentenceInput{Content: "Twice.", LanguageCode: "deu"})
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.ErrorIs(t, err, ErrDuplicateContent)
		require.NotNil(t, conflict.Existing)
		assert.Equal(t, firstID, conflict.Existing.ID)
		assert.Equal(t, "Twice.", conflict.Existing.Content)
		assert.Equal(t, "deu", conflict.Existing.LanguageCode())
		assert.Equal(t, markup, *conflict.Existing.Structure)
	})

	t.Run("taken id returns the sentence holding it", func(t *testing.T) {
		id := sentenceID(600)
		_, err := env.sentences.Create(ctx, CreateSentenceInput{ID: &id, Content: "First owner.", LanguageCode: "eng"})
		require.NoError(t, err)

		_, err = env.sentences.Create(ctx, CreateSentenceInput{ID: &id, Content: "Second owner.", LanguageCode: "eng"})
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.ErrorIs(t, err, ErrSentenceIDTaken)
		require.NotNil(t, conflict.Existing)
		assert.Equal(t, "First owner.", conflict.Existing.Content)
		assert.True(t, IsConflict(err))
	})
}

func TestSentenceService_GetByID(t *testing.T) {
	env := setupTestEnv(t, 0, "eng")
	ctx := context.Background()

	t.Run("malformed id", func(t *testing.T) {
		_, err := env.sentences.GetByID(ctx, "123")
		assert.ErrorIs(t, err, ErrInvalidSentenceID)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := env.sentences.GetByID(ctx, sentenceID(1))
		assert.ErrorIs(t, err, ErrSentenceNotFound)
		assert.True(t, IsNotFound(err))
	})
}

func TestSentenceService_List(t *testing.T) {
	env := setupTestEnv(t, 10, "eng")
	ctx := context.Background()

	for i := 1; i <= 14; i++ {
		id := sentenceID(i)
		_, err := env.sentences.Create(ctx, CreateSentenceInput{ID: &id, Content: fmt.Sprintf("Sentence %d.", i), LanguageCode: "eng"})
		require.NoError(t, err)
	}

	t.Run("no cursor returns the first page", func(t *testing.T) {
		page, err := env.sentences.List(ctx, "")
		require.NoError(t, err)
		require.Len(t, page, 10)
		assert.Equal(t, sentenceID(1), page[0].ID)
		assert.Equal(t, sentenceID(10), page[9].ID)
	})

	t.Run("cursor repeats the last sentence of the previous page", func(t *testing.T) {
		first, err := env.sentences.List(ctx, "")
		require.NoError(t, err)

		page, err := env.sentences.List(ctx, first[len(first)-1].ID)
		require.NoError(t, err)
		require.Len(t, page, 5)
		assert.Equal(t, sentenceID(10), page[0].ID)
		assert.Equal(t, sentenceID(14), page[4].ID)
	})

	t.Run("malformed cursor", func(t *testing.T) {
		_, err := env.sentences.List(ctx, "nope")
		assert.ErrorIs(t, err, ErrInvalidSentenceID)
	})
}

func TestSentenceService_UpdateContent(t *testing.T) {
	env := setupTestEnv(t, 0, "eng", "deu")
	ctx := context.Background()

	markup := "<w>Alpha</w>."
	alpha, err := env.sentences.Create(ctx, CreateSentenceInput{Content: "Alpha.", LanguageCode: "eng", Structure: &markup})
	require.NoError(t, err)
	beta, err := env.sentences.Create(ctx, CreateSentenceInput{Content: "Beta.", LanguageCode: "eng"})
	require.NoError(t, err)
	_, err = env.sentences.Create(ctx, CreateSentenceInput{Content: "Gamma.", LanguageCode: "deu"})
	require.NoError(t, err)

	t.Run("content used in the same language conflicts", func(t *testing.T) {
		err := env.sentences.UpdateContent(ctx, beta, "Alpha.")
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
		require.NotNil(t, conflict.Existing)
		assert.Equal(t, alpha, conflict.Existing.ID)
	})

	t.Run("content used in another language succeeds", func(t *testing.T) {
		require.NoError(t, env.sentences.UpdateContent(ctx, beta, "Gamma."))

		sentence, err := env.sentences.GetByID(ctx, beta)
		require.NoError(t, err)
		assert.Equal(t, "Gamma.", sentence.Content)
	})

	t.Run("structure is left stale", func(t *testing.T) {
		require.NoError(t, env.sentences.UpdateContent(ctx, alpha, "Omega."))

		sentence, err := env.sentences.GetByID(ctx, alpha)
		require.NoError(t, err)
		assert.Equal(t, markup, *sentence.Structure)
	})

	t.Run("empty content", func(t *testing.T) {
		assert.ErrorIs(t, env.sentences.UpdateContent(ctx, alpha, ""), ErrEmptyContent)
	})

	t.Run("unknown sentence", func(t *testing.T) {
		assert.ErrorIs(t, env.sentences.UpdateContent(ctx, sentenceID(99), "x"), ErrSentenceNotFound)
	})
}

func TestSentenceService_UpdateStructure(t *testing.T) {
	env := setupTestEnv(t, 0, "eng")
	ctx := context.Background()

	id, err := env.sentences.Create(ctx, CreateSentenceInput{Content: "This is", LanguageCode: "eng"})
	require.NoError(t, err)

	t.Run("matching structure is stored", func(t *testing.T) {
		require.NoError(t, env.sentences.UpdateStructure(ctx, id, "<a>This</a> <b>is</b>"))

		sentence, err := env.sentences.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "<a>This</a> <b>is</b>", *sentence.Structure)
	})

	t.Run("structure is checked against the current content", func(t *testing.T) {
		err := env.sentences.UpdateStructure(ctx, id, "<a>This</a><b>is</b>")
		assert.ErrorIs(t, err, ErrStructureMismatch)
	})

	t.Run("unknown sentence", func(t *testing.T) {
		assert.ErrorIs(t, env.sentences.UpdateStructure(ctx, sentenceID(99), "x"), ErrSentenceNotFound)
	})
}

func TestSentenceService_UpdateLanguage(t *testing.T) {
	env := setupTestEnv(t, 0, "eng", "deu")
	ctx := context.Background()

	english, err := env.sentences.Create(ctx, CreateSentenceInput{Content: "Hallo.", LanguageCode: "eng"})
	require.NoError(t, err)
	german, err := env.sentences.Create(ctx, CreateSentenceInput{Content: "Hallo.", LanguageCode: "deu"})
	require.NoError(t, err)
	other, err := env.sentences.Create(ctx, CreateSentenceInput{Content: "Danke.", LanguageCode: "eng"})
	require.NoError(t, err)

	t.Run("moves the sentence", func(t *testing.T) {
		require.NoError(t, env.sentences.UpdateLanguage(ctx, other, " deu "))

		sentence, err := env.sentences.GetByID(ctx, other)
		require.NoError(t, err)
		assert.Equal(t, "deu", sentence.LanguageCode())
	})

	t.Run("content already present in the target language", func(t *testing.T) {
		err := env.sentences.UpdateLanguage(ctx, english, "deu")
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
		require.NotNil(t, conflict.Existing)
		assert.Equal(t, german, conflict.Existing.ID)
	})

	t.Run("unknown language", func(t *testing.T) {
		err := env.sentences.UpdateLanguage(ctx, english, "xxx")
		assert.ErrorIs(t, err, ErrLanguageNotFound)
		assert.True(t, IsNotFound(err))
	})

	t.Run("unknown sentence", func(t *testing.T) {
		assert.ErrorIs(t, env.sentences.UpdateLanguage(ctx, sentenceID(99), "deu"), ErrSentenceNotFound)
	})
}

// racingStore changes the content of the sentence every time a structure
// write is attempted, so the conditional write never lands.
type racingStore struct {
	SentenceStore
	reads  int
	writes int
}

func (s *racingStore) GetByID(_ context.Context, id string) (*entities.Sentence, error) {
	s.reads++
	return &entities.Sentence{ID: id, Content: fmt.Sprintf("Version %d", s.reads)}, nil
}

func (s *racingStore) UpdateStructure(context.Context, string, string, string) error {
	s.writes++
	return sentences.ErrContentChanged
}

func TestSentenceService_UpdateStructureRace(t *testing.T) {
	store := &racingStore{}
	service := NewSentenceService(store, 0)

	// Each read produces new content, so a structure matching the first
	// version goes stale on every retry.
	err := service.UpdateStructure(context.Background(), sentenceID(1), "<w>Version</w> 1")
	assert.ErrorIs(t, err, ErrStructureMismatch)

	store = &racingStore{}
	service = NewSentenceService(&fixedContentRacingStore{racingStore: store}, 0)
	err = service.UpdateStructure(context.Background(), sentenceID(1), "Same")
	assert.ErrorIs(t, err, ErrConcurrentUpdate)
	assert.True(t, IsConflict(err))
	assert.Equal(t, structureUpdateAttempts, store.writes)
}

// fixedContentRacingStore always reports the same content but still loses
// every conditional write.
type fixedContentRacingStore struct {
	*racingStore
}

func (s *fixedContentRacingStore) GetByID(_ context.Context, id string) (*entities.Sentence, error) {
	s.reads++
	return &entities.Sentence{ID: id, Content: "Same"}, nil
}

// unavailableStore fails every call as if the pool timed out.
type unavailableStore struct {
	SentenceStore
}

func (unavailableStore) GetByID(context.Context, string) (*entities.Sentence, error) {
	return nil, fmt.Errorf("%w: %w", database.ErrUnavailable, context.DeadlineExceeded)
}

func (unavailableStore) List(context.Context, string, int) ([]entities.Sentence, error) {
	return nil, database.ErrUnavailable
}

func TestSentenceService_StorageUnavailable(t *testing.T) {
	service := NewSentenceService(unavailableStore{}, 0)

	_, err := service.GetByID(context.Background(), sentenceID(1))
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	_, err = service.List(context.Background(), "")
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	_, err = NewSentenceService(failingStore{}, 0).List(context.Background(), "")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrStorageUnavailable))
}

type failingStore struct {
	SentenceStore
}

func (failingStore) List(context.Context, string, int) ([]entities.Sentence, error) {
	return nil, errors.New("disk on fire")
}

func TestNewSentenceService_DefaultPageSize(t *testing.T) {
	assert.Equal(t, DefaultPageSize, NewSentenceService(nil, 0).PageSize())
	assert.Equal(t, 25, NewSentenceService(nil, 25).PageSize())
}
