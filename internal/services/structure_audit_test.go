package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/sentences/internal/entities"
)

func TestStructureAuditor_Run(t *testing.T) {
	env := setupTestEnv(t, 0, "eng")
	ctx := context.Background()

	t.Run("latest before any run", func(t *testing.T) {
		_, err := env.auditor.Latest(ctx)
		assert.ErrorIs(t, err, ErrAuditNotFound)
	})

	ids := make([]string, 0, 5)
	for _, content := range []string{"One.", "Two.", "Three.", "Four."} {
		markup := "<w>" + strings.TrimSuffix(content, ".") + "</w>."
		id, err := env.sentences.Create(ctx, CreateSentenceInput{Content: content, LanguageCode: "eng", Structure: &markup})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	_, err := env.sentences.Create(ctx, CreateSentenceInput{Content: "Unstructured.", LanguageCode: "eng"})
	require.NoError(t, err)

	// Content-only updates leave the structure behind.
	require.NoError(t, env.sentences.UpdateContent(ctx, ids[1], "Deux."))
	require.NoError(t, env.sentences.UpdateContent(ctx, ids[3], "Quatre."))

	report, err := env.auditor.Run(ctx, entities.AuditTriggerManual)
	require.NoError(t, err)

	t.Run("counts structured sentences only", func(t *testing.T) {
		assert.Equal(t, 4, report.Checked)
		assert.Equal(t, 2, report.Mismatched)
	})

	t.Run("lists stale sentences", func(t *testing.T) {
		mismatched := strings.Split(report.MismatchedIDs, ",")
		assert.ElementsMatch(t, []string{ids[1], ids[3]}, mismatched)
	})

	t.Run("does not modify sentences", func(t *testing.T) {
		sentence, err := env.sentences.GetByID(ctx, ids[1])
		require.NoError(t, err)
		assert.Equal(t, "Deux.", sentence.Content)
		assert.Equal(t, "<w>Two</w>.", *sentence.Structure)
	})

	t.Run("is stored as the latest report", func(t *testing.T) {
		latest, err := env.auditor.Latest(ctx)
		require.NoError(t, err)
		assert.Equal(t, report.ID, latest.ID)
		assert.Equal(t, entities.AuditTriggerManual, latest.Trigger)
		assert.False(t, latest.FinishedAt.Before(latest.StartedAt))
	})

	t.Run("history lists reports newest first", func(t *testing.T) {
		_, err := env.auditor.Run(ctx, entities.AuditTriggerCLI)
		require.NoError(t, err)

		history, err := env.auditor.History(ctx, 10)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, entities.AuditTriggerCLI, history[0].Trigger)
	})
}

func TestStructureAuditor_RunCancelled(t *testing.T) {
	env := setupTestEnv(t, 0, "eng")

	_, err := env.sentences.Create(context.Background(), CreateSentenceInput{Content: "A.", LanguageCode: "eng", Structure: strPtr("A.")})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = env.auditor.Run(ctx, entities.AuditTriggerSchedule)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}
