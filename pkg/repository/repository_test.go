package repository_test

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GeminiLight/KiddleMentor-dev/pkg/core"
	"github.com/GeminiLight/KiddleMentor-dev/pkg/repository"
)

func newRepo(t *testing.T) *repository.LearnerRepository {
	t.Helper()
	repo := repository.New(t.TempDir())
	require.True(t, repo.Available())
	return repo
}

func TestExistsAndDelete(t *testing.T) {
	repo := newRepo(t)

	assert.False(t, repo.Exists("learner_ada"))

	require.NoError(t, repo.SaveProfile("learner_ada", core.Document{"name": "Ada"}))
	assert.True(t, repo.Exists("learner_ada"))

	require.NoError(t, repo.Delete("learner_ada"))
	assert.False(t, repo.Exists("learner_ada"))

	// Deleting an absent learner is not an error.
	require.NoError(t, repo.Delete("learner_ada"))
}

func TestProfileRoundTrip(t *testing.T) {
	repo := newRepo(t)

	assert.Nil(t, repo.Profile("learner_ada"), "absent profile reads as nil")

	require.NoError(t, repo.SaveProfile("learner_ada", core.Document{"name": "Ada"}))

	profile := repo.Profile("learner_ada")
	require.NotNil(t, profile)
	assert.Equal(t, "Ada", profile["name"])
}

func TestGoalFlow(t *testing.T) {
	repo := newRepo(t)

	assert.Nil(t, repo.LearningGoals("learner_ada"))
	assert.Empty(t, repo.ActiveGoalID("learner_ada"))

	first, err := repo.AddGoal("learner_ada", "Learn Go", nil)
	require.NoError(t, err)
	second, err := repo.AddGoal("learner_ada", "Learn Rust", nil)
	require.NoError(t, err)

	assert.Equal(t, second, repo.ActiveGoalID("learner_ada"))

	require.NoError(t, repo.ActivateGoal("learner_ada", first))
	active := repo.ActiveGoal("learner_ada")
	require.NotNil(t, active)
	assert.Equal(t, first, active.GoalID)

	require.NoError(t, repo.ArchiveGoal("learner_ada", first))
	assert.Nil(t, repo.ActiveGoal("learner_ada"))

	ledger := repo.LearningGoals("learner_ada")
	require.NotNil(t, ledger)
	assert.Len(t, ledger.Goals, 2)
}

func TestSideTables(t *testing.T) {
	repo := newRepo(t)

	require.NoError(t, repo.SaveSkillGapsForGoal("learner_ada", "goal_a", core.Document{"gap": "pointers"}))
	require.NoError(t, repo.SaveLearningPathForGoal("learner_ada", "goal_a", core.Document{"stage": "intro"}))

	gaps := repo.SkillGapsForGoal("learner_ada", "goal_a")
	assert.Equal(t, "pointers", gaps["gap"])

	path := repo.LearningPathForGoal("learner_ada", "goal_a")
	assert.Equal(t, "intro", path["stage"])

	assert.Empty(t, repo.SkillGapsForGoal("learner_ada", "goal_other"))
}

func TestBestEffortWritesNeverError(t *testing.T) {
	repo := newRepo(t)

	// None of these return errors; they must also actually persist when
	// storage is healthy.
	repo.AppendHistory("learner_ada", "user", "hello", nil)
	repo.LogInteraction("learner_ada", "tutor", "hi there", nil)
	repo.AppendMasteryEntry("learner_ada", core.Document{"skill": "maps"})
	repo.UpdateEvaluations("learner_ada", core.Document{"verdict": "steady"})

	history := repo.History("learner_ada", 0)
	assert.Len(t, history, 2)

	mastery := repo.Mastery("learner_ada")
	require.NotNil(t, mastery)
	assert.Len(t, mastery["entries"], 1)
	assert.NotNil(t, mastery["last_evaluation"])
}

func TestHistoryLimit(t *testing.T) {
	repo := newRepo(t)

	for i := 0; i < 5; i++ {
		repo.AppendHistory("learner_ada", "user", fmt.Sprintf("msg-%d", i), nil)
	}

	recent := repo.History("learner_ada", 2)
	require.Len(t, recent, 2)
	assert.Equal(t, "msg-3", recent[0].Content)
	assert.Equal(t, "msg-4", recent[1].Content)

	all := repo.History("learner_ada", 0)
	assert.Len(t, all, 5)
}

func TestSearchHistory(t *testing.T) {
	repo := newRepo(t)

	repo.AppendHistory("learner_ada", "user", "explain goroutines", nil)
	repo.AppendHistory("learner_ada", "tutor", "channels first", nil)

	matches := repo.SearchHistory("learner_ada", "goroutine")
	require.Len(t, matches, 1)
	assert.Equal(t, "explain goroutines", matches[0].Content)
}

func TestConcurrentAppendsAreSerialized(t *testing.T) {
	repo := newRepo(t)

	const writers = 10
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(i int) {
			defer wg.Done()
			repo.AppendHistory("learner_ada", "user", fmt.Sprintf("msg-%d", i), nil)
		}(i)
	}
	wg.Wait()

	history := repo.History("learner_ada", 0)
	assert.Len(t, history, writers, "no append may be lost to a racing writer")
}

func TestUnavailableWorkspace(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "ws")
	require.NoError(t, os.WriteFile(blocker, []byte("file, not a directory"), 0644))

	repo := repository.New(blocker)
	require.False(t, repo.Available())

	assert.Nil(t, repo.Profile("learner_ada"))
	assert.Empty(t, repo.History("learner_ada", 0))

	err := repo.SaveProfile("learner_ada", core.Document{"name": "Ada"})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnavailable)

	assert.ErrorIs(t, repo.Delete("learner_ada"), core.ErrUnavailable)

	// Best-effort writes stay silent even when storage is missing.
	repo.AppendHistory("learner_ada", "user", "dropped", nil)
}
