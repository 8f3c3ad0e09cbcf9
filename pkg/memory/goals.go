package memory

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GeminiLight/KiddleMentor-dev/pkg/core"
)

// newGoalID generates a fresh goal id: goal_<date>_<random-hex>.
func newGoalID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return fmt.Sprintf("goal_%s_%s", time.Now().Format("20060102"), suffix)
}

// ReadLearningGoals returns the goal ledger, or a zero ledger if none yet.
func (s *LearnerStore) ReadLearningGoals() core.Ledger {
	var ledger core.Ledger
	s.codec.ReadInto(s.learningGoalFile, &ledger)
	return ledger
}

// WriteLearningGoals replaces the goal ledger wholesale.
func (s *LearnerStore) WriteLearningGoals(ledger core.Ledger) error {
	return s.codec.Write(s.learningGoalFile, ledger)
}

// AddGoal appends a new goal record and makes it the active one, flipping
// every previously active record to inactive. Re-setting or refining an
// existing goal always creates a new record rather than updating in place.
func (s *LearnerStore) AddGoal(learningGoal string, refinedGoal any) (string, error) {
	ledger := s.ReadLearningGoals()

	goalID := newGoalID()
	ts := now()

	for i := range ledger.Goals {
		if ledger.Goals[i].Status == core.GoalStatusActive {
			ledger.Goals[i].Status = core.GoalStatusInactive
		}
	}

	ledger.Goals = append(ledger.Goals, core.GoalRecord{
		GoalID:       goalID,
		LearningGoal: learningGoal,
		RefinedGoal:  refinedGoal,
		Status:       core.GoalStatusActive,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	})
	ledger.ActiveGoalID = goalID

	if err := s.WriteLearningGoals(ledger); err != nil {
		return "", err
	}
	return goalID, nil
}

// GetActiveGoal resolves the active pointer against the goal list.
// Returns nil when the ledger is empty or the pointer dangles; a dangling
// pointer is not repaired here.
func (s *LearnerStore) GetActiveGoal() *core.GoalRecord {
	ledger := s.ReadLearningGoals()
	if ledger.ActiveGoalID == "" {
		return nil
	}
	for i := range ledger.Goals {
		if ledger.Goals[i].GoalID == ledger.ActiveGoalID {
			g := ledger.Goals[i]
			return &g
		}
	}
	return nil
}

// GetActiveGoalID returns the active goal id, or "" if none.
func (s *LearnerStore) GetActiveGoalID() string {
	return s.ReadLearningGoals().ActiveGoalID
}

// GetGoal looks up a goal record by id.
func (s *LearnerStore) GetGoal(goalID string) *core.GoalRecord {
	ledger := s.ReadLearningGoals()
	for i := range ledger.Goals {
		if ledger.Goals[i].GoalID == goalID {
			g := ledger.Goals[i]
			return &g
		}
	}
	return nil
}

// ActivateGoal resumes a previously created goal: it becomes the single
// active record, any other active record flips to inactive, and the active
// pointer follows. Archived goals can be reactivated.
func (s *LearnerStore) ActivateGoal(goalID string) error {
	ledger := s.ReadLearningGoals()

	found := false
	ts := now()
	for i := range ledger.Goals {
		switch {
		case ledger.Goals[i].GoalID == goalID:
			ledger.Goals[i].Status = core.GoalStatusActive
			ledger.Goals[i].UpdatedAt = ts
			found = true
		case ledger.Goals[i].Status == core.GoalStatusActive:
			ledger.Goals[i].Status = core.GoalStatusInactive
			ledger.Goals[i].UpdatedAt = ts
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", core.ErrGoalNotFound, goalID)
	}

	ledger.ActiveGoalID = goalID
	return s.WriteLearningGoals(ledger)
}

// ArchiveGoal marks a goal archived. If it was the active goal, the active
// pointer is cleared; no other goal is promoted implicitly. Goals are never
// deleted, so the goal-keyed side tables stay referentially consistent.
func (s *LearnerStore) ArchiveGoal(goalID string) error {
	ledger := s.ReadLearningGoals()

	found := false
	for i := range ledger.Goals {
		if ledger.Goals[i].GoalID == goalID {
			ledger.Goals[i].Status = core.GoalStatusArchived
			ledger.Goals[i].UpdatedAt = now()
			found = true
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", core.ErrGoalNotFound, goalID)
	}

	if ledger.ActiveGoalID == goalID {
		ledger.ActiveGoalID = ""
	}
	return s.WriteLearningGoals(ledger)
}
