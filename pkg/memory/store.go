// Package memory implements the per-learner goal-scoped memory store.
//
// Two variants exist, selected at construction time: Store is scoped to the
// workspace-level memory directory and carries only the long-term facts file
// and the interaction history log; LearnerStore is scoped to one learner's
// directory and adds the profile, goal ledger, goal-scoped side tables,
// mastery log and learning path documents.
package memory

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/GeminiLight/KiddleMentor-dev/pkg/adapters/fs"
)

// Store is the workspace-scoped memory: long-term user facts plus the
// interaction history log.
type Store struct {
	layout fs.Layout
	codec  fs.Codec
	logger *slog.Logger

	dir         string
	factsFile   string
	historyFile string
}

// Option configures a store.
type Option func(*Store)

// WithLogger sets the logger used for degraded-read diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
		s.codec.Logger = logger
	}
}

// NewStore creates a workspace-scoped store rooted at workspace/memory.
// The workspace path is expanded (~, $VARS) exactly once, here.
func NewStore(workspace string, opts ...Option) (*Store, error) {
	layout := fs.NewLayout(workspace)
	s := &Store{
		layout:      layout,
		dir:         layout.MemoryDir(),
		factsFile:   filepath.Join(layout.MemoryDir(), fs.FileUserFacts),
		historyFile: filepath.Join(layout.MemoryDir(), fs.FileChatHistory),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create memory directory: %w", err)
	}
	return s, nil
}

// Layout returns the workspace layout backing this store.
func (s *Store) Layout() fs.Layout {
	return s.layout
}

// Dir returns the memory directory this store operates on.
func (s *Store) Dir() string {
	return s.dir
}

// --- Long-term facts ---

// ReadLongTerm returns the long-term facts content, or "" if none exists.
func (s *Store) ReadLongTerm() string {
	return s.codec.ReadFacts(s.factsFile).Content
}

// ReadFacts returns the full facts document including frontmatter metadata.
func (s *Store) ReadFacts() fs.Facts {
	return s.codec.ReadFacts(s.factsFile)
}

// WriteLongTerm replaces the long-term facts content, preserving any
// existing frontmatter metadata.
func (s *Store) WriteLongTerm(content string) error {
	f := s.codec.ReadFacts(s.factsFile)
	f.Content = content
	return s.codec.WriteFacts(s.factsFile, f)
}

// WriteFacts replaces the full facts document.
func (s *Store) WriteFacts(f fs.Facts) error {
	return s.codec.WriteFacts(s.factsFile, f)
}

// AppendLongTerm appends to the facts content without replacing it,
// inserting a blank-line separator when needed.
func (s *Store) AppendLongTerm(content string) error {
	f := s.codec.ReadFacts(s.factsFile)
	if f.Content != "" && !strings.HasSuffix(f.Content, "\n\n") {
		f.Content += "\n\n"
	}
	f.Content += content
	return s.codec.WriteFacts(s.factsFile, f)
}

// MemoryContext formats the long-term facts for agent prompts.
// Returns "" when no facts exist.
func (s *Store) MemoryContext() string {
	longTerm := s.ReadLongTerm()
	if longTerm == "" {
		return ""
	}
	return "## User Facts & Context\n\n" + longTerm
}

// --- Removal ---

// ClearHistory removes the interaction history log.
func (s *Store) ClearHistory() error {
	return removeIfExists(s.historyFile)
}

// ClearMemory removes the long-term facts document.
func (s *Store) ClearMemory() error {
	return removeIfExists(s.factsFile)
}

// ClearAll removes both facts and history.
func (s *Store) ClearAll() error {
	if err := s.ClearMemory(); err != nil {
		return err
	}
	return s.ClearHistory()
}

func removeIfExists(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// now returns the current time serialized the way every document timestamp
// is stored.
func now() string {
	return time.Now().Format(time.RFC3339)
}
