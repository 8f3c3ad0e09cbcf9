package fs

import (
	"os"
	"path/filepath"
	"strings"
)

// Canonical per-learner document names.
const (
	FileProfile            = "profile.json"
	FileLearningGoal       = "learning_goal.json"
	FileSkillGaps          = "skill_gaps.json"
	FileMastery            = "mastery.json"
	FileLearningPath       = "learning_path.json"
	FileLearningPathByGoal = "learning_path_by_goal.json"
	FileChatHistory        = "chat_history.json"
	FileUserFacts          = "user_facts.md"

	// FileUsers is the workspace-wide registry document.
	FileUsers = "users.json"

	memoryDirName = "memory"
)

// Layout maps a workspace root to the memory directory tree.
// The root is expanded (~ and environment references) exactly once,
// at construction time.
type Layout struct {
	Workspace string
}

// NewLayout resolves the workspace root.
func NewLayout(workspace string) Layout {
	return Layout{Workspace: ExpandPath(workspace)}
}

// ExpandPath expands a leading ~ and any $VAR references in a path.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return filepath.Clean(os.ExpandEnv(path))
}

// MemoryDir returns the workspace-level memory directory.
func (l Layout) MemoryDir() string {
	return filepath.Join(l.Workspace, memoryDirName)
}

// LearnerDir returns the dedicated directory of one learner.
// The learner id is treated as an opaque, pre-sanitized string; path
// validation against traversal is the caller's responsibility.
func (l Layout) LearnerDir(learnerID string) string {
	return filepath.Join(l.MemoryDir(), learnerID)
}

// LearnerFile returns the path of a canonical document for one learner.
func (l Layout) LearnerFile(learnerID, name string) string {
	return filepath.Join(l.LearnerDir(learnerID), name)
}

// UsersPath returns the workspace-wide registry file.
func (l Layout) UsersPath() string {
	return filepath.Join(l.Workspace, FileUsers)
}
