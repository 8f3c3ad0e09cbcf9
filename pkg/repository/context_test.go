package repository_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GeminiLight/KiddleMentor-dev/pkg/core"
)

func TestLearnerContext_EmptyLearner(t *testing.T) {
	repo := newRepo(t)

	bundle := repo.LearnerContext("learner_ghost")
	assert.Equal(t, "learner_ghost", bundle.LearnerID)
	assert.NotNil(t, bundle.Profile)
	assert.Empty(t, bundle.Profile)
	assert.Empty(t, bundle.LearningGoals.Goals)
	assert.NotNil(t, bundle.RecentHistory)
	assert.Empty(t, bundle.RecentHistory)
}

func TestLearnerContext_FullBundle(t *testing.T) {
	repo := newRepo(t)

	require.NoError(t, repo.SaveProfile("learner_ada", core.Document{"name": "Ada"}))
	goalID, err := repo.AddGoal("learner_ada", "Learn Go", nil)
	require.NoError(t, err)
	require.NoError(t, repo.SaveSkillGapsForGoal("learner_ada", goalID, core.Document{"gap": "pointers"}))
	repo.AppendMasteryEntry("learner_ada", core.Document{"skill": "slices"})
	repo.AppendHistory("learner_ada", "user", "hello", nil)

	bundle := repo.LearnerContext("learner_ada")
	assert.Equal(t, "Ada", bundle.Profile["name"])
	assert.Equal(t, goalID, bundle.LearningGoals.ActiveGoalID)
	assert.Contains(t, bundle.SkillGaps, goalID)
	assert.Contains(t, bundle.Mastery, "entries")
	require.Len(t, bundle.RecentHistory, 1)
	assert.Equal(t, "hello", bundle.RecentHistory[0].Content)
}

func TestLearnerContext_RecentHistoryIsCapped(t *testing.T) {
	repo := newRepo(t)

	for i := 0; i < 15; i++ {
		repo.AppendHistory("learner_ada", "user", fmt.Sprintf("msg-%d", i), nil)
	}

	bundle := repo.LearnerContext("learner_ada")
	require.Len(t, bundle.RecentHistory, 10)
	assert.Equal(t, "msg-5", bundle.RecentHistory[0].Content)
	assert.Equal(t, "msg-14", bundle.RecentHistory[9].Content)
}

func TestContextSummary(t *testing.T) {
	repo := newRepo(t)

	assert.Empty(t, repo.ContextSummary("learner_ghost"))

	require.NoError(t, repo.SaveProfile("learner_ada", core.Document{"name": "Ada"}))

	summary := repo.ContextSummary("learner_ada")
	assert.Contains(t, summary, "## Learner Profile")
	assert.Contains(t, summary, `"name": "Ada"`)
}
