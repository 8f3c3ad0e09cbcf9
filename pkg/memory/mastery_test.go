package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GeminiLight/KiddleMentor-dev/pkg/core"
)

func TestMastery_EmptyRead(t *testing.T) {
	store := newLearnerStore(t)

	mastery := store.ReadMastery()
	assert.NotNil(t, mastery)
	assert.Empty(t, mastery)
}

func TestAppendMasteryEntry(t *testing.T) {
	store := newLearnerStore(t)

	require.NoError(t, store.AppendMasteryEntry(core.Document{"skill": "goroutines", "score": "0.7"}))
	require.NoError(t, store.AppendMasteryEntry(core.Document{"skill": "channels", "score": "0.4"}))

	mastery := store.ReadMastery()
	entries, ok := mastery["entries"].([]any)
	require.True(t, ok)
	require.Len(t, entries, 2)

	first, ok := entries[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "goroutines", first["skill"])
	assert.NotEmpty(t, first["timestamp"], "a timestamp is injected when absent")
}

func TestAppendMasteryEntry_KeepsCallerTimestamp(t *testing.T) {
	store := newLearnerStore(t)

	require.NoError(t, store.AppendMasteryEntry(core.Document{"skill": "maps", "timestamp": "2026-01-01T00:00:00Z"}))

	entries := store.ReadMastery()["entries"].([]any)
	entry := entries[0].(map[string]any)
	assert.Equal(t, "2026-01-01T00:00:00Z", entry["timestamp"])
}

func TestUpdateEvaluations(t *testing.T) {
	store := newLearnerStore(t)

	require.NoError(t, store.UpdateEvaluations(core.Document{"verdict": "improving"}))
	require.NoError(t, store.UpdateEvaluations(core.Document{"verdict": "mastered"}))

	mastery := store.ReadMastery()

	last, ok := mastery["last_evaluation"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "mastered", last["verdict"])

	history, ok := mastery["evaluations_history"].([]any)
	require.True(t, ok)
	require.Len(t, history, 2, "every evaluation is kept in the history")

	first := history[0].(map[string]any)
	assert.Equal(t, "improving", first["verdict"])
	assert.NotEmpty(t, first["timestamp"])
}

func TestMasteryPathsAreIndependent(t *testing.T) {
	store := newLearnerStore(t)

	require.NoError(t, store.AppendMasteryEntry(core.Document{"skill": "slices"}))
	require.NoError(t, store.UpdateEvaluations(core.Document{"verdict": "steady"}))

	mastery := store.ReadMastery()
	entries := mastery["entries"].([]any)
	history := mastery["evaluations_history"].([]any)

	assert.Len(t, entries, 1, "evaluations never touch the entries log")
	assert.Len(t, history, 1, "entries never touch the evaluations history")
}
