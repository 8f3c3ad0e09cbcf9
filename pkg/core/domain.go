// Document is the central entity of the domain.
package core

import "fmt"

// Document represents a schemaless JSON-compatible tree.
// The store imposes structure only at the top level; callers own the shape.
type Document = map[string]any

// Goal lifecycle statuses. A goal is never deleted; it moves between
// active, inactive and archived.
const (
	GoalStatusActive   = "active"
	GoalStatusInactive = "inactive"
	GoalStatusArchived = "archived"
)

// GoalRecord is one learning objective a learner has stated.
// GoalID is generated at creation and immutable thereafter.
type GoalRecord struct {
	GoalID       string `json:"goal_id"`
	LearningGoal string `json:"learning_goal"`
	RefinedGoal  any    `json:"refined_goal"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// Ledger holds all goals of one learner plus the active-goal pointer.
// Invariant: at most one record has Status "active" at any time, and
// ActiveGoalID equals that record's GoalID (or is empty).
type Ledger struct {
	Goals        []GoalRecord `json:"goals"`
	ActiveGoalID string       `json:"active_goal_id,omitempty"`
}

// IsZero reports whether the ledger has never been written.
func (l Ledger) IsZero() bool {
	return len(l.Goals) == 0 && l.ActiveGoalID == ""
}

// HistoryEntry is one interaction in the append-only log.
// Ordering is insertion order; there is no separate sort key.
type HistoryEntry struct {
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	Timestamp string         `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// UserRecord is one entry in the workspace-wide registry.
// It stores denormalized summary fields only and is never authoritative
// beyond id/name/email/created_at.
type UserRecord struct {
	LearnerID string `json:"learner_id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	CreatedAt string `json:"created_at"`
}

// EventType represents the type of change in the workspace.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a learner document.
// ID is the document path relative to the memory root,
// e.g. "learner_abc123/profile.json".
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer (and thus lifecycle.Event).
func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.ID)
}
