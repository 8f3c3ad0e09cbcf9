package fs

import (
	"path/filepath"
	"testing"
)

func TestLayout(t *testing.T) {
	l := NewLayout("/workspace")

	t.Run("Memory Dir", func(t *testing.T) {
		want := filepath.Join("/workspace", "memory")
		if got := l.MemoryDir(); got != want {
			t.Errorf("MemoryDir = %q, want %q", got, want)
		}
	})

	t.Run("Learner File", func(t *testing.T) {
		want := filepath.Join("/workspace", "memory", "learner_abc", "profile.json")
		if got := l.LearnerFile("learner_abc", FileProfile); got != want {
			t.Errorf("LearnerFile = %q, want %q", got, want)
		}
	})

	t.Run("Users Path Is Workspace Level", func(t *testing.T) {
		want := filepath.Join("/workspace", "users.json")
		if got := l.UsersPath(); got != want {
			t.Errorf("UsersPath = %q, want %q", got, want)
		}
	})
}

func TestExpandPath(t *testing.T) {
	t.Run("Env Var", func(t *testing.T) {
		t.Setenv("MEMTEST_ROOT", "/data/mem")
		if got := ExpandPath("$MEMTEST_ROOT/ws"); got != filepath.Clean("/data/mem/ws") {
			t.Errorf("ExpandPath = %q", got)
		}
	})

	t.Run("Cleans Path", func(t *testing.T) {
		if got := ExpandPath("/a//b/../c"); got != filepath.Clean("/a/c") {
			t.Errorf("ExpandPath = %q", got)
		}
	})
}
