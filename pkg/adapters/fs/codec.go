package fs

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Codec reads and writes single JSON documents.
//
// Reads are tolerant: a missing or corrupt file yields the empty sentinel
// for the requested shape, never an error. A truncated write that slipped
// past the atomic rename (e.g. restored from a partial backup) is therefore
// indistinguishable from "document absent" by design.
//
// Writes are full-file overwrites with human-readable indentation, since the
// files are operator-inspectable.
type Codec struct {
	Logger *slog.Logger
}

// ReadInto decodes the JSON document at path into v.
// It returns false (leaving v untouched) when the file is absent or does not
// decode. Reading never creates the file or its directory.
func (c Codec) ReadInto(path string, v any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) && c.Logger != nil {
			c.Logger.Debug("document unreadable, treating as absent", "path", path, "error", err)
		}
		return false
	}

	if err := json.Unmarshal(data, v); err != nil {
		if c.Logger != nil {
			c.Logger.Debug("document corrupt, treating as absent", "path", path, "error", err)
		}
		return false
	}
	return true
}

// ReadMap reads an object-shaped document, or {} if absent/corrupt.
func (c Codec) ReadMap(path string) map[string]any {
	out := make(map[string]any)
	if !c.ReadInto(path, &out) {
		return map[string]any{}
	}
	if out == nil {
		return map[string]any{}
	}
	return out
}

// ReadSlice reads a list-shaped document, or [] if absent/corrupt.
func (c Codec) ReadSlice(path string) []map[string]any {
	var out []map[string]any
	if !c.ReadInto(path, &out) {
		return []map[string]any{}
	}
	return out
}

// Write serializes v as indented JSON and persists it atomically,
// creating parent directories if absent.
func (c Codec) Write(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	if err := writeFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// ReadText returns the raw contents of a text document, or "" if absent.
func (c Codec) ReadText(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}

// WriteText persists a text document atomically.
func (c Codec) WriteText(path string, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}
	if err := writeFileAtomic(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
