package memory

import (
	"github.com/GeminiLight/KiddleMentor-dev/pkg/core"
)

// sideTable is a dictionary-of-documents keyed by goal id, persisted as one
// file. Every write is a read-modify-write of the whole table: updating one
// goal's entry rewrites the file, but never alters another goal's entry.
type sideTable struct {
	store *Store
	path  string
}

func (t sideTable) readAll() map[string]core.Document {
	all := make(map[string]core.Document)
	if !t.store.codec.ReadInto(t.path, &all) {
		return map[string]core.Document{}
	}
	if all == nil {
		return map[string]core.Document{}
	}
	return all
}

func (t sideTable) readForGoal(goalID string) core.Document {
	if doc, ok := t.readAll()[goalID]; ok && doc != nil {
		return doc
	}
	return core.Document{}
}

func (t sideTable) writeForGoal(goalID string, doc core.Document) error {
	all := t.readAll()
	if doc == nil {
		doc = core.Document{}
	}
	doc["updated_at"] = now()
	all[goalID] = doc
	return t.store.codec.Write(t.path, all)
}

func (t sideTable) writeAll(all map[string]core.Document) error {
	return t.store.codec.Write(t.path, all)
}

// --- Skill gaps ---

func (s *LearnerStore) skillGaps() sideTable {
	return sideTable{store: &s.Store, path: s.skillGapsFile}
}

// ReadSkillGaps returns all skill gaps keyed by goal id.
func (s *LearnerStore) ReadSkillGaps() map[string]core.Document {
	return s.skillGaps().readAll()
}

// WriteSkillGaps replaces the whole skill-gaps table.
func (s *LearnerStore) WriteSkillGaps(all map[string]core.Document) error {
	return s.skillGaps().writeAll(all)
}

// ReadSkillGapsForGoal returns the skill-gap document for one goal,
// or {} if absent.
func (s *LearnerStore) ReadSkillGapsForGoal(goalID string) core.Document {
	return s.skillGaps().readForGoal(goalID)
}

// WriteSkillGapsForGoal stores a skill-gap document under the goal id,
// stamping it with an updated_at timestamp.
func (s *LearnerStore) WriteSkillGapsForGoal(goalID string, doc core.Document) error {
	return s.skillGaps().writeForGoal(goalID, doc)
}

// --- Goal-scoped learning paths ---
//
// Goal-keyed paths live in their own file (learning_path_by_goal.json),
// distinct from the unscoped learning_path.json fallback, so the two
// document shapes can never be read through the wrong accessor.

func (s *LearnerStore) learningPaths() sideTable {
	return sideTable{store: &s.Store, path: s.pathByGoalFile}
}

// ReadLearningPathsByGoal returns all goal-scoped learning paths.
func (s *LearnerStore) ReadLearningPathsByGoal() map[string]core.Document {
	return s.learningPaths().readAll()
}

// ReadLearningPathForGoal returns the learning path for one goal,
// or {} if absent.
func (s *LearnerStore) ReadLearningPathForGoal(goalID string) core.Document {
	return s.learningPaths().readForGoal(goalID)
}

// WriteLearningPathForGoal stores a learning path under the goal id,
// stamping it with an updated_at timestamp.
func (s *LearnerStore) WriteLearningPathForGoal(goalID string, doc core.Document) error {
	return s.learningPaths().writeForGoal(goalID, doc)
}
