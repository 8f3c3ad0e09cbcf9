package memory

import (
	"encoding/json"
	"fmt"
	"strings"
)

// LearnerContext assembles the complete learner context for agent prompts:
// profile, learning goals, skill gaps, mastery and user facts, in that
// order, each rendered as a markdown heading plus a fenced JSON block (raw
// text for the facts). Empty sections are omitted. Pure function of the
// on-disk state.
func (s *LearnerStore) LearnerContext() string {
	var sections []string

	if profile := s.ReadProfile(); len(profile) > 0 {
		sections = append(sections, jsonSection("Learner Profile", profile))
	}

	if ledger := s.ReadLearningGoals(); !ledger.IsZero() {
		sections = append(sections, jsonSection("Learning Goals", ledger))
	}

	if gaps := s.ReadSkillGaps(); len(gaps) > 0 {
		sections = append(sections, jsonSection("Skill Gaps", gaps))
	}

	if mastery := s.ReadMastery(); len(mastery) > 0 {
		sections = append(sections, jsonSection("Learning Mastery & Performance", mastery))
	}

	if facts := s.ReadLongTerm(); facts != "" {
		sections = append(sections, "## User Facts & Context\n\n"+facts)
	}

	return strings.Join(sections, "\n\n")
}

func jsonSection(heading string, v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		// Documents come from json.Unmarshal, so this only fires for
		// values a caller injected in-process.
		data = []byte("{}")
	}
	return fmt.Sprintf("## %s\n\n```json\n%s\n```", heading, data)
}
