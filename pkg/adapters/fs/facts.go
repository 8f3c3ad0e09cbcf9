package fs

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Facts is the parsed form of a user_facts.md document: free text plus an
// optional YAML frontmatter block.
type Facts struct {
	Content  string
	Metadata map[string]any
}

// ParseFacts splits a facts document into frontmatter and body.
// A document without a leading "---" delimiter is all content.
func ParseFacts(data []byte) (Facts, error) {
	f := Facts{}

	if !bytes.HasPrefix(data, []byte("---\n")) && !bytes.HasPrefix(data, []byte("---\r\n")) {
		f.Content = string(data)
		return f, nil
	}

	rest := data[3:]
	parts := bytes.SplitN(rest, []byte("---"), 2)
	if len(parts) == 1 {
		return Facts{}, errors.New("frontmatter started but no closing delimiter found")
	}

	if err := yaml.Unmarshal(parts[0], &f.Metadata); err != nil {
		return Facts{}, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	f.Content = strings.TrimPrefix(string(parts[1]), "\n")
	f.Content = strings.TrimPrefix(f.Content, "\r\n")
	return f, nil
}

// RenderFacts serializes a facts document back to markdown, emitting a
// frontmatter block only when metadata is present.
func RenderFacts(f Facts) ([]byte, error) {
	var buf bytes.Buffer
	if len(f.Metadata) > 0 {
		buf.WriteString("---\n")
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(f.Metadata); err != nil {
			return nil, err
		}
		encoder.Close()
		buf.WriteString("---\n")
	}
	buf.WriteString(f.Content)
	return buf.Bytes(), nil
}

// ReadFacts reads and parses a facts document.
// Absent file or broken frontmatter degrade to empty facts.
func (c Codec) ReadFacts(path string) Facts {
	raw := c.ReadText(path)
	if raw == "" {
		return Facts{}
	}
	f, err := ParseFacts([]byte(raw))
	if err != nil {
		if c.Logger != nil {
			c.Logger.Debug("facts frontmatter unreadable, returning raw content", "path", path, "error", err)
		}
		return Facts{Content: raw}
	}
	return f
}

// WriteFacts serializes and persists a facts document atomically.
func (c Codec) WriteFacts(path string, f Facts) error {
	data, err := RenderFacts(f)
	if err != nil {
		return fmt.Errorf("failed to render facts: %w", err)
	}
	return c.WriteText(path, string(data))
}
