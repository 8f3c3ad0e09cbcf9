package memory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/GeminiLight/KiddleMentor-dev/pkg/adapters/fs"
	"github.com/GeminiLight/KiddleMentor-dev/pkg/core"
)

// LearnerStore is the learner-scoped memory variant. It owns every document
// under workspace/memory/<learner_id>/ exclusively; no other learner's code
// path may touch that subtree.
type LearnerStore struct {
	Store

	learnerID string

	profileFile      string
	learningGoalFile string
	skillGapsFile    string
	masteryFile      string
	pathFile         string
	pathByGoalFile   string
}

// NewLearnerStore creates a store scoped to one learner, creating the
// learner directory on first use. The learner id is opaque and must be
// pre-sanitized by the caller; it becomes a directory segment verbatim.
func NewLearnerStore(workspace, learnerID string, opts ...Option) (*LearnerStore, error) {
	if learnerID == "" {
		return nil, fmt.Errorf("learner id is required")
	}

	layout := fs.NewLayout(workspace)
	dir := layout.LearnerDir(learnerID)

	ls := &LearnerStore{
		Store: Store{
			layout:      layout,
			dir:         dir,
			factsFile:   filepath.Join(dir, fs.FileUserFacts),
			historyFile: filepath.Join(dir, fs.FileChatHistory),
		},
		learnerID:        learnerID,
		profileFile:      filepath.Join(dir, fs.FileProfile),
		learningGoalFile: filepath.Join(dir, fs.FileLearningGoal),
		skillGapsFile:    filepath.Join(dir, fs.FileSkillGaps),
		masteryFile:      filepath.Join(dir, fs.FileMastery),
		pathFile:         filepath.Join(dir, fs.FileLearningPath),
		pathByGoalFile:   filepath.Join(dir, fs.FileLearningPathByGoal),
	}
	for _, opt := range opts {
		opt(&ls.Store)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create learner directory: %w", err)
	}
	return ls, nil
}

// LearnerID returns the learner this store is scoped to.
func (s *LearnerStore) LearnerID() string {
	return s.learnerID
}

// --- Profile ---

// ReadProfile returns the learner profile, or {} if none exists.
// The store enforces no schema; callers are responsible for shape.
func (s *LearnerStore) ReadProfile() core.Document {
	return s.codec.ReadMap(s.profileFile)
}

// WriteProfile replaces the learner profile wholesale. The store never
// merges; partial updates are the repository layer's job.
func (s *LearnerStore) WriteProfile(profile core.Document) error {
	return s.codec.Write(s.profileFile, profile)
}

// --- Unscoped learning path ---

// ReadLearningPath returns the unscoped learning path, or {} if none.
// This is the pre-goal-ledger fallback used before any goal exists.
func (s *LearnerStore) ReadLearningPath() core.Document {
	return s.codec.ReadMap(s.pathFile)
}

// WriteLearningPath replaces the unscoped learning path.
func (s *LearnerStore) WriteLearningPath(path core.Document) error {
	return s.codec.Write(s.pathFile, path)
}
