package repository

import (
	"github.com/GeminiLight/KiddleMentor-dev/pkg/core"
)

// recentHistoryLimit bounds the history slice included in a context bundle.
const recentHistoryLimit = 10

// ContextBundle is everything an agent needs about one learner in a single
// round trip.
type ContextBundle struct {
	LearnerID     string                   `json:"learner_id"`
	Profile       core.Document            `json:"profile"`
	LearningGoals core.Ledger              `json:"learning_goals"`
	SkillGaps     map[string]core.Document `json:"skill_gaps"`
	Mastery       core.Document            `json:"mastery"`
	LearningPath  core.Document            `json:"learning_path"`
	RecentHistory []core.HistoryEntry      `json:"recent_history"`
}

// LearnerContext assembles the aggregate context bundle. Every section
// degrades independently to its empty value; the bundle itself is always
// returned.
func (r *LearnerRepository) LearnerContext(learnerID string) ContextBundle {
	bundle := ContextBundle{
		LearnerID:     learnerID,
		Profile:       core.Document{},
		SkillGaps:     map[string]core.Document{},
		Mastery:       core.Document{},
		LearningPath:  core.Document{},
		RecentHistory: []core.HistoryEntry{},
	}

	if profile := r.Profile(learnerID); profile != nil {
		bundle.Profile = profile
	}
	if ledger := r.LearningGoals(learnerID); ledger != nil {
		bundle.LearningGoals = *ledger
	}
	if gaps := r.SkillGaps(learnerID); gaps != nil {
		bundle.SkillGaps = gaps
	}
	if mastery := r.Mastery(learnerID); mastery != nil {
		bundle.Mastery = mastery
	}
	if path := r.LearningPath(learnerID); path != nil {
		bundle.LearningPath = path
	}
	bundle.RecentHistory = r.History(learnerID, recentHistoryLimit)

	return bundle
}

// ContextSummary returns the formatted context string for LLM prompts,
// or "" when storage is unavailable.
func (r *LearnerRepository) ContextSummary(learnerID string) string {
	store, err := r.store(learnerID)
	if err != nil {
		r.warn("context summary degraded", "learner_id", learnerID, "error", err)
		return ""
	}
	return store.LearnerContext()
}
