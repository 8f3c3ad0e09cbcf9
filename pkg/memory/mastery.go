package memory

import (
	"github.com/GeminiLight/KiddleMentor-dev/pkg/core"
)

// ReadMastery returns the mastery document, or {} if none exists.
func (s *LearnerStore) ReadMastery() core.Document {
	return s.codec.ReadMap(s.masteryFile)
}

// WriteMastery replaces the mastery document wholesale.
func (s *LearnerStore) WriteMastery(mastery core.Document) error {
	return s.codec.Write(s.masteryFile, mastery)
}

// AppendMasteryEntry appends one progress entry to the mastery log,
// injecting a timestamp when the entry carries none. Prior entries are
// never reordered or rewritten.
func (s *LearnerStore) AppendMasteryEntry(entry core.Document) error {
	existing := s.ReadMastery()

	entries, _ := existing["entries"].([]any)
	if entry == nil {
		entry = core.Document{}
	}
	if _, ok := entry["timestamp"]; !ok {
		entry["timestamp"] = now()
	}

	existing["entries"] = append(entries, entry)
	return s.WriteMastery(existing)
}

// UpdateEvaluations overwrites last_evaluation and appends a timestamped
// copy to evaluations_history. This path is independent of
// AppendMasteryEntry; the two never cross-update.
func (s *LearnerStore) UpdateEvaluations(evaluation core.Document) error {
	existing := s.ReadMastery()
	if evaluation == nil {
		evaluation = core.Document{}
	}
	existing["last_evaluation"] = evaluation

	history, _ := existing["evaluations_history"].([]any)

	entry := make(core.Document, len(evaluation)+1)
	for k, v := range evaluation {
		entry[k] = v
	}
	if _, ok := entry["timestamp"]; !ok {
		entry["timestamp"] = now()
	}

	existing["evaluations_history"] = append(history, entry)
	return s.WriteMastery(existing)
}
