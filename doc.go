// Package mentormem is the composition root for the learner memory system.
//
// It connects the per-learner document stores (Persistence Layer) with the
// caller-facing repository and the workspace-wide user registry, following a
// ports-and-adapters layout.
//
// Philosophy:
//
// mentormem treats a directory of plain JSON and Markdown files as the
// long-term memory of a tutoring platform. Every learner owns a directory of
// canonical documents (profile, goal ledger, skill gaps, mastery, learning
// paths, chat history, free-form facts); the workspace root carries a
// denormalized user registry. All files stay operator-inspectable: anything
// readable by a text editor is readable by this library, and vice versa.
//
// Features:
//
//   - **Tolerant reads**: an absent or corrupt document degrades to its empty
//     value instead of failing the caller.
//   - **Atomic writes**: documents are replaced via write-temp-then-rename.
//   - **Goal ledger**: multiple goals per learner with a single active goal
//     and goal-keyed side tables for gaps and paths.
//   - **Registry sync**: users.json can be rebuilt from disk at any time, or
//     kept in step continuously by the workspace watcher.
//   - **Observability**: components expose State() snapshots for inspection.
//
// Usage:
//
//	sys := mentormem.New("./workspace",
//		mentormem.WithLogger(logger),
//	)
//
//	goalID, err := sys.Repository.AddGoal("learner_ada", "Learn Go", nil)
//	bundle := sys.Repository.LearnerContext("learner_ada")
package mentormem
