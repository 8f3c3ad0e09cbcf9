// Package repository exposes the stable, caller-facing surface over the
// per-learner memory stores. It is the only object the endpoint layer
// touches.
//
// Error policy (deliberately asymmetric):
//   - Reads degrade: storage trouble yields nil/empty plus a log line, so a
//     single learner's corrupt file never fails an unrelated request.
//   - Best-effort writes (history and mastery appends) log failures and
//     move on; they are telemetry, not user actions.
//   - Must-persist writes (profile, goals, paths, side tables) return the
//     error so the caller can surface a user-visible failure.
//
// Callers that need to distinguish "storage not configured" from a bug
// check Available() instead of probing for swallowed errors.
package repository

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/GeminiLight/KiddleMentor-dev/pkg/adapters/fs"
	"github.com/GeminiLight/KiddleMentor-dev/pkg/core"
	"github.com/GeminiLight/KiddleMentor-dev/pkg/memory"
)

// LearnerRepository provides CRUD access to learner data keyed by learner
// id. A fresh LearnerStore is constructed per call (stores are cheap path
// holders); a per-learner mutex serializes the read-modify-write cycles of
// in-process racers, which the raw store does not do.
type LearnerRepository struct {
	layout    fs.Layout
	logger    *slog.Logger
	available bool

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Option configures the repository.
type Option func(*LearnerRepository)

// WithLogger sets the logger used for degraded reads and best-effort write
// failures.
func WithLogger(logger *slog.Logger) Option {
	return func(r *LearnerRepository) {
		r.logger = logger
	}
}

// New creates a repository over the given workspace. When the workspace is
// not writable (e.g. cloud mode with no local volume) the repository still
// constructs, reports Available() == false, serves empty reads and rejects
// writes with core.ErrUnavailable.
func New(workspace string, opts ...Option) *LearnerRepository {
	r := &LearnerRepository{
		layout: fs.NewLayout(workspace),
		locks:  make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := os.MkdirAll(r.layout.MemoryDir(), 0755); err != nil {
		r.warn("learner storage unavailable", "workspace", r.layout.Workspace, "error", err)
	} else {
		r.available = true
	}
	return r
}

// Available reports whether the backing storage is usable.
func (r *LearnerRepository) Available() bool {
	return r.available
}

// Workspace returns the expanded workspace root.
func (r *LearnerRepository) Workspace() string {
	return r.layout.Workspace
}

func (r *LearnerRepository) warn(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Warn(msg, args...)
	}
}

// lockFor returns the mutex serializing operations for one learner.
func (r *LearnerRepository) lockFor(learnerID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.locks[learnerID]; ok {
		return l
	}
	l := &sync.Mutex{}
	r.locks[learnerID] = l
	return l
}

func (r *LearnerRepository) store(learnerID string) (*memory.LearnerStore, error) {
	if !r.available {
		return nil, core.ErrUnavailable
	}
	var opts []memory.Option
	if r.logger != nil {
		opts = append(opts, memory.WithLogger(r.logger))
	}
	return memory.NewLearnerStore(r.layout.Workspace, learnerID, opts...)
}

// --- Base operations ---

// Exists reports whether a profile has ever been saved for the learner.
func (r *LearnerRepository) Exists(learnerID string) bool {
	_, err := os.Stat(r.layout.LearnerFile(learnerID, fs.FileProfile))
	return err == nil
}

// Delete removes all of the learner's data from disk.
func (r *LearnerRepository) Delete(learnerID string) error {
	if !r.available {
		return core.ErrUnavailable
	}
	lock := r.lockFor(learnerID)
	lock.Lock()
	defer lock.Unlock()

	dir := r.layout.LearnerDir(learnerID)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to delete learner data: %w", err)
	}
	return nil
}

// --- Profile ---

// Profile returns the learner profile, or nil when absent or unreadable.
func (r *LearnerRepository) Profile(learnerID string) core.Document {
	store, err := r.store(learnerID)
	if err != nil {
		r.warn("profile read degraded", "learner_id", learnerID, "error", err)
		return nil
	}
	profile := store.ReadProfile()
	if len(profile) == 0 {
		return nil
	}
	return profile
}

// SaveProfile persists the full profile. Must-persist: errors propagate.
func (r *LearnerRepository) SaveProfile(learnerID string, profile core.Document) error {
	store, err := r.store(learnerID)
	if err != nil {
		return err
	}
	lock := r.lockFor(learnerID)
	lock.Lock()
	defer lock.Unlock()
	return store.WriteProfile(profile)
}

// --- Learning goals ---

// LearningGoals returns the goal ledger, or nil when none exists.
func (r *LearnerRepository) LearningGoals(learnerID string) *core.Ledger {
	store, err := r.store(learnerID)
	if err != nil {
		r.warn("goals read degraded", "learner_id", learnerID, "error", err)
		return nil
	}
	ledger := store.ReadLearningGoals()
	if ledger.IsZero() {
		return nil
	}
	return &ledger
}

// SaveLearningGoals replaces the goal ledger. Must-persist.
func (r *LearnerRepository) SaveLearningGoals(learnerID string, ledger core.Ledger) error {
	store, err := r.store(learnerID)
	if err != nil {
		return err
	}
	lock := r.lockFor(learnerID)
	lock.Lock()
	defer lock.Unlock()
	return store.WriteLearningGoals(ledger)
}

// AddGoal creates a new goal and makes it active. Must-persist.
func (r *LearnerRepository) AddGoal(learnerID, learningGoal string, refinedGoal any) (string, error) {
	store, err := r.store(learnerID)
	if err != nil {
		return "", err
	}
	lock := r.lockFor(learnerID)
	lock.Lock()
	defer lock.Unlock()
	return store.AddGoal(learningGoal, refinedGoal)
}

// ActiveGoal returns the learner's active goal, or nil.
func (r *LearnerRepository) ActiveGoal(learnerID string) *core.GoalRecord {
	store, err := r.store(learnerID)
	if err != nil {
		r.warn("active goal read degraded", "learner_id", learnerID, "error", err)
		return nil
	}
	return store.GetActiveGoal()
}

// ActiveGoalID returns the active goal id, or "".
func (r *LearnerRepository) ActiveGoalID(learnerID string) string {
	store, err := r.store(learnerID)
	if err != nil {
		return ""
	}
	return store.GetActiveGoalID()
}

// ActivateGoal resumes a prior goal. Must-persist.
func (r *LearnerRepository) ActivateGoal(learnerID, goalID string) error {
	store, err := r.store(learnerID)
	if err != nil {
		return err
	}
	lock := r.lockFor(learnerID)
	lock.Lock()
	defer lock.Unlock()
	return store.ActivateGoal(goalID)
}

// ArchiveGoal archives a goal. Must-persist.
func (r *LearnerRepository) ArchiveGoal(learnerID, goalID string) error {
	store, err := r.store(learnerID)
	if err != nil {
		return err
	}
	lock := r.lockFor(learnerID)
	lock.Lock()
	defer lock.Unlock()
	return store.ArchiveGoal(goalID)
}

// --- Skill gaps ---

// SkillGaps returns all skill gaps keyed by goal id, or nil when none.
func (r *LearnerRepository) SkillGaps(learnerID string) map[string]core.Document {
	store, err := r.store(learnerID)
	if err != nil {
		r.warn("skill gaps read degraded", "learner_id", learnerID, "error", err)
		return nil
	}
	gaps := store.ReadSkillGaps()
	if len(gaps) == 0 {
		return nil
	}
	return gaps
}

// SaveSkillGaps replaces the whole skill-gaps table. Must-persist.
func (r *LearnerRepository) SaveSkillGaps(learnerID string, gaps map[string]core.Document) error {
	store, err := r.store(learnerID)
	if err != nil {
		return err
	}
	lock := r.lockFor(learnerID)
	lock.Lock()
	defer lock.Unlock()
	return store.WriteSkillGaps(gaps)
}

// SkillGapsForGoal returns the skill-gap document for one goal ({} if
// absent).
func (r *LearnerRepository) SkillGapsForGoal(learnerID, goalID string) core.Document {
	store, err := r.store(learnerID)
	if err != nil {
		return core.Document{}
	}
	return store.ReadSkillGapsForGoal(goalID)
}

// SaveSkillGapsForGoal stores skill gaps under the goal id. Must-persist.
func (r *LearnerRepository) SaveSkillGapsForGoal(learnerID, goalID string, doc core.Document) error {
	store, err := r.store(learnerID)
	if err != nil {
		return err
	}
	lock := r.lockFor(learnerID)
	lock.Lock()
	defer lock.Unlock()
	return store.WriteSkillGapsForGoal(goalID, doc)
}

// --- Learning paths ---

// LearningPathForGoal returns the goal-scoped learning path ({} if absent).
func (r *LearnerRepository) LearningPathForGoal(learnerID, goalID string) core.Document {
	store, err := r.store(learnerID)
	if err != nil {
		return core.Document{}
	}
	return store.ReadLearningPathForGoal(goalID)
}

// SaveLearningPathForGoal stores a learning path under the goal id.
// Must-persist.
func (r *LearnerRepository) SaveLearningPathForGoal(learnerID, goalID string, doc core.Document) error {
	store, err := r.store(learnerID)
	if err != nil {
		return err
	}
	lock := r.lockFor(learnerID)
	lock.Lock()
	defer lock.Unlock()
	return store.WriteLearningPathForGoal(goalID, doc)
}

// LearningPath returns the unscoped learning path, or nil when none. Used
// before any goal exists.
func (r *LearnerRepository) LearningPath(learnerID string) core.Document {
	store, err := r.store(learnerID)
	if err != nil {
		r.warn("learning path read degraded", "learner_id", learnerID, "error", err)
		return nil
	}
	path := store.ReadLearningPath()
	if len(path) == 0 {
		return nil
	}
	return path
}

// SaveLearningPath replaces the unscoped learning path. Must-persist.
func (r *LearnerRepository) SaveLearningPath(learnerID string, path core.Document) error {
	store, err := r.store(learnerID)
	if err != nil {
		return err
	}
	lock := r.lockFor(learnerID)
	lock.Lock()
	defer lock.Unlock()
	return store.WriteLearningPath(path)
}

// --- Mastery ---

// Mastery returns the mastery document, or nil when none.
func (r *LearnerRepository) Mastery(learnerID string) core.Document {
	store, err := r.store(learnerID)
	if err != nil {
		r.warn("mastery read degraded", "learner_id", learnerID, "error", err)
		return nil
	}
	mastery := store.ReadMastery()
	if len(mastery) == 0 {
		return nil
	}
	return mastery
}

// SaveMastery replaces the mastery document. Must-persist.
func (r *LearnerRepository) SaveMastery(learnerID string, mastery core.Document) error {
	store, err := r.store(learnerID)
	if err != nil {
		return err
	}
	lock := r.lockFor(learnerID)
	lock.Lock()
	defer lock.Unlock()
	return store.WriteMastery(mastery)
}

// AppendMasteryEntry appends a progress entry. Best-effort: failures are
// logged, never returned.
func (r *LearnerRepository) AppendMasteryEntry(learnerID string, entry core.Document) {
	store, err := r.store(learnerID)
	if err != nil {
		r.warn("mastery append dropped", "learner_id", learnerID, "error", err)
		return
	}
	lock := r.lockFor(learnerID)
	lock.Lock()
	defer lock.Unlock()
	if err := store.AppendMasteryEntry(entry); err != nil {
		r.warn("mastery append dropped", "learner_id", learnerID, "error", err)
	}
}

// UpdateEvaluations records an evaluation. Best-effort.
func (r *LearnerRepository) UpdateEvaluations(learnerID string, evaluation core.Document) {
	store, err := r.store(learnerID)
	if err != nil {
		r.warn("evaluation update dropped", "learner_id", learnerID, "error", err)
		return
	}
	lock := r.lockFor(learnerID)
	lock.Lock()
	defer lock.Unlock()
	if err := store.UpdateEvaluations(evaluation); err != nil {
		r.warn("evaluation update dropped", "learner_id", learnerID, "error", err)
	}
}

// --- History ---

// History returns the interaction log, newest last. limit > 0 caps the
// result to the most recent entries; limit <= 0 returns everything.
func (r *LearnerRepository) History(learnerID string, limit int) []core.HistoryEntry {
	store, err := r.store(learnerID)
	if err != nil {
		r.warn("history read degraded", "learner_id", learnerID, "error", err)
		return []core.HistoryEntry{}
	}
	entries := store.ReadHistory()
	if limit > 0 && len(entries) > limit {
		return entries[len(entries)-limit:]
	}
	return entries
}

// AppendHistory appends one interaction. Best-effort: failures are logged,
// never returned.
func (r *LearnerRepository) AppendHistory(learnerID, role, content string, metadata map[string]any) {
	store, err := r.store(learnerID)
	if err != nil {
		r.warn("history append dropped", "learner_id", learnerID, "error", err)
		return
	}
	lock := r.lockFor(learnerID)
	lock.Lock()
	defer lock.Unlock()
	if err := store.AppendHistory(role, content, metadata); err != nil {
		r.warn("history append dropped", "learner_id", learnerID, "error", err)
	}
}

// LogInteraction records a tutor interaction; alias for AppendHistory.
func (r *LearnerRepository) LogInteraction(learnerID, role, content string, metadata map[string]any) {
	r.AppendHistory(learnerID, role, content, metadata)
}

// SearchHistory returns history entries whose content matches the query.
func (r *LearnerRepository) SearchHistory(learnerID, query string) []core.HistoryEntry {
	store, err := r.store(learnerID)
	if err != nil {
		return []core.HistoryEntry{}
	}
	return store.SearchHistory(query)
}
