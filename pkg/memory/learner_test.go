package memory_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GeminiLight/KiddleMentor-dev/pkg/core"
	"github.com/GeminiLight/KiddleMentor-dev/pkg/memory"
)

func TestLearnerStore_CreatesDirectory(t *testing.T) {
	tmp := t.TempDir()
	store, err := memory.NewLearnerStore(tmp, "learner_ada")
	require.NoError(t, err)
	assert.Equal(t, "learner_ada", store.LearnerID())

	info, err := os.Stat(filepath.Join(tmp, "memory", "learner_ada"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestProfile_RoundTrip(t *testing.T) {
	store := newLearnerStore(t)

	profile := store.ReadProfile()
	assert.NotNil(t, profile)
	assert.Empty(t, profile)

	require.NoError(t, store.WriteProfile(core.Document{"name": "Ada", "grade": "7"}))

	got := store.ReadProfile()
	assert.Equal(t, "Ada", got["name"])
	assert.Equal(t, "7", got["grade"])
}

func TestProfile_WriteReplacesWholesale(t *testing.T) {
	store := newLearnerStore(t)

	require.NoError(t, store.WriteProfile(core.Document{"name": "Ada", "grade": "7"}))
	require.NoError(t, store.WriteProfile(core.Document{"name": "Ada"}))

	got := store.ReadProfile()
	assert.NotContains(t, got, "grade", "writes never merge")
}

func TestProfile_CorruptFileDegrades(t *testing.T) {
	tmp := t.TempDir()
	store, err := memory.NewLearnerStore(tmp, "learner_ada")
	require.NoError(t, err)

	path := filepath.Join(tmp, "memory", "learner_ada", "profile.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	profile := store.ReadProfile()
	assert.NotNil(t, profile)
	assert.Empty(t, profile, "corrupt profile reads as absent")
}

func TestLearnerIsolation(t *testing.T) {
	tmp := t.TempDir()
	ada, err := memory.NewLearnerStore(tmp, "learner_ada")
	require.NoError(t, err)
	bob, err := memory.NewLearnerStore(tmp, "learner_bob")
	require.NoError(t, err)

	require.NoError(t, ada.WriteProfile(core.Document{"name": "Ada"}))
	require.NoError(t, ada.AppendHistory("user", "hello from ada", nil))

	assert.Empty(t, bob.ReadProfile())
	assert.Empty(t, bob.ReadHistory())
}
