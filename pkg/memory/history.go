package memory

import (
	"fmt"
	"strings"

	"github.com/GeminiLight/KiddleMentor-dev/pkg/core"
)

// ReadHistory returns the full interaction log in insertion order.
// A learner who has never been written to gets an empty slice.
func (s *Store) ReadHistory() []core.HistoryEntry {
	var entries []core.HistoryEntry
	if !s.codec.ReadInto(s.historyFile, &entries) {
		return []core.HistoryEntry{}
	}
	if entries == nil {
		return []core.HistoryEntry{}
	}
	return entries
}

// WriteHistory replaces the full interaction log.
func (s *Store) WriteHistory(entries []core.HistoryEntry) error {
	return s.codec.Write(s.historyFile, entries)
}

// AppendHistory appends one entry with a generated timestamp.
// This is a read-modify-write of the whole log; two concurrent appenders on
// the same learner can lose one entry (last writer wins on the whole file).
func (s *Store) AppendHistory(role, content string, metadata map[string]any) error {
	entries := s.ReadHistory()
	entry := core.HistoryEntry{
		Role:      role,
		Content:   content,
		Timestamp: now(),
	}
	if len(metadata) > 0 {
		entry.Metadata = metadata
	}
	entries = append(entries, entry)
	return s.WriteHistory(entries)
}

// LogInteraction records a tutor interaction; alias for AppendHistory.
func (s *Store) LogInteraction(role, content string, metadata map[string]any) error {
	return s.AppendHistory(role, content, metadata)
}

// RecentHistory formats the last n entries for LLM context injection,
// one "**ROLE**: content" line per entry, joined by blank lines.
func (s *Store) RecentHistory(n int) string {
	entries := s.ReadHistory()
	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		role := e.Role
		if role == "" {
			role = "unknown"
		}
		lines = append(lines, fmt.Sprintf("**%s**: %s", strings.ToUpper(role), e.Content))
	}
	return strings.Join(lines, "\n\n")
}

// SearchHistory returns entries whose content contains the query,
// case-insensitive, in original order. Metadata is not searched.
func (s *Store) SearchHistory(query string) []core.HistoryEntry {
	needle := strings.ToLower(query)
	matches := []core.HistoryEntry{}
	for _, e := range s.ReadHistory() {
		if strings.Contains(strings.ToLower(e.Content), needle) {
			matches = append(matches, e)
		}
	}
	return matches
}
