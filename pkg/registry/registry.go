// Package registry maintains the workspace-wide user index (users.json).
//
// The registry stores denormalized summary fields only and is eventually
// consistent with the per-learner stores: drift is repaired explicitly by
// SyncFromDisk (e.g. at process start) or continuously by AutoSync fed from
// the workspace watcher.
package registry

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/GeminiLight/KiddleMentor-dev/pkg/adapters/fs"
	"github.com/GeminiLight/KiddleMentor-dev/pkg/core"
)

// DefaultName is used when a profile carries no name.
const DefaultName = "Anonymous Learner"

// scanPattern matches the profile documents picked up by SyncFromDisk,
// relative to the memory root. Directories that don't look like learner ids
// are skipped.
const scanPattern = "learner_*/" + fs.FileProfile

// registryFile is the persisted shape of users.json.
type registryFile struct {
	Users []core.UserRecord `json:"users"`
}

// Service manages the user registry. The registry file is the one document
// genuinely shared across all learners, so a single mutex serializes every
// mutation.
type Service struct {
	layout fs.Layout
	codec  fs.Codec
	logger *slog.Logger

	mu sync.Mutex
}

// Option configures the service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
		s.codec.Logger = logger
	}
}

// NewService creates a registry service over the given workspace.
func NewService(workspace string, opts ...Option) *Service {
	s := &Service{layout: fs.NewLayout(workspace)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) load() registryFile {
	var reg registryFile
	s.codec.ReadInto(s.layout.UsersPath(), &reg)
	return reg
}

func (s *Service) save(reg registryFile) error {
	return s.codec.Write(s.layout.UsersPath(), reg)
}

// ListUsers returns all registered users.
func (s *Service) ListUsers() []core.UserRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := s.load().Users
	if users == nil {
		return []core.UserRecord{}
	}
	return users
}

// GetUser returns a single user by learner id, or nil.
func (s *Service) GetUser(learnerID string) *core.UserRecord {
	for _, u := range s.ListUsers() {
		if u.LearnerID == learnerID {
			user := u
			return &user
		}
	}
	return nil
}

// RegisterUser upserts a user. An existing entry keeps its created_at; the
// name is updated, the email only when non-empty. Always persists.
func (s *Service) RegisterUser(learnerID, name, email, createdAt string) (core.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		name = DefaultName
	}

	reg := s.load()
	for i := range reg.Users {
		if reg.Users[i].LearnerID == learnerID {
			reg.Users[i].Name = name
			if email != "" {
				reg.Users[i].Email = email
			}
			if err := s.save(reg); err != nil {
				return core.UserRecord{}, err
			}
			return reg.Users[i], nil
		}
	}

	if createdAt == "" {
		createdAt = nowTimestamp()
	}
	user := core.UserRecord{
		LearnerID: learnerID,
		Name:      name,
		Email:     email,
		CreatedAt: createdAt,
	}
	reg.Users = append(reg.Users, user)
	if err := s.save(reg); err != nil {
		return core.UserRecord{}, err
	}
	return user, nil
}

// DeleteUser removes the registry entry and the learner's entire memory
// directory. Reports whether an entry was found; the directory removal is
// guarded by an existence check and happens only when an entry existed.
func (s *Service) DeleteUser(learnerID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg := s.load()
	kept := reg.Users[:0:0]
	for _, u := range reg.Users {
		if u.LearnerID != learnerID {
			kept = append(kept, u)
		}
	}
	if len(kept) == len(reg.Users) {
		return false, nil
	}

	reg.Users = kept
	if err := s.save(reg); err != nil {
		return false, err
	}

	dir := s.layout.LearnerDir(learnerID)
	if _, err := os.Stat(dir); err == nil {
		if err := os.RemoveAll(dir); err != nil {
			return true, fmt.Errorf("failed to remove learner directory: %w", err)
		}
	}
	return true, nil
}

// SyncFromDisk scans memory/learner_*/profile.json and upserts one registry
// entry per readable profile. Returns the number of users synced. This is
// the only bulk repair mechanism for registry/store drift and must be
// invoked explicitly.
func (s *Service) SyncFromDisk() (int, error) {
	matches, err := doublestar.FilepathGlob(filepath.Join(s.layout.MemoryDir(), scanPattern))
	if err != nil {
		return 0, fmt.Errorf("failed to scan memory directory: %w", err)
	}

	count := 0
	for _, profilePath := range matches {
		if s.syncProfile(profilePath) {
			count++
		}
	}
	return count, nil
}

// syncProfile upserts one registry entry from a profile document.
// Unreadable profiles are skipped.
func (s *Service) syncProfile(profilePath string) bool {
	var profile core.Document
	if !s.codec.ReadInto(profilePath, &profile) {
		if s.logger != nil {
			s.logger.Debug("skipping unreadable profile", "path", profilePath)
		}
		return false
	}

	dirName := filepath.Base(filepath.Dir(profilePath))
	learnerID := stringField(profile, "learner_id", dirName)
	name := stringField(profile, "name", DefaultName)
	email := stringField(profile, "email", "")
	createdAt := stringField(profile, "created_at", "")

	if _, err := s.RegisterUser(learnerID, name, email, createdAt); err != nil {
		if s.logger != nil {
			s.logger.Warn("failed to register user during sync", "learner_id", learnerID, "error", err)
		}
		return false
	}
	return true
}

func stringField(doc core.Document, key, fallback string) string {
	if v, ok := doc[key].(string); ok && v != "" {
		return v
	}
	return fallback
}
