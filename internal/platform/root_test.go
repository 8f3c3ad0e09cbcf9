package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindRoot(t *testing.T) {
	t.Run("Finds Memory Dir Upwards", func(t *testing.T) {
		tmpDir := t.TempDir()
		if err := os.MkdirAll(filepath.Join(tmpDir, "memory"), 0755); err != nil {
			t.Fatal(err)
		}
		nested := filepath.Join(tmpDir, "a", "b")
		if err := os.MkdirAll(nested, 0755); err != nil {
			t.Fatal(err)
		}

		root, err := FindRoot(nested)
		if err != nil {
			t.Fatalf("FindRoot failed: %v", err)
		}
		resolved, _ := filepath.EvalSymlinks(tmpDir)
		gotResolved, _ := filepath.EvalSymlinks(root)
		if gotResolved != resolved {
			t.Errorf("FindRoot = %q, want %q", root, tmpDir)
		}
	})

	t.Run("Finds Users File", func(t *testing.T) {
		tmpDir := t.TempDir()
		if err := os.WriteFile(filepath.Join(tmpDir, "users.json"), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}

		root, err := FindRoot(tmpDir)
		if err != nil {
			t.Fatalf("FindRoot failed: %v", err)
		}
		if root == "" {
			t.Error("Expected non-empty root")
		}
	})

	t.Run("Fails Without Indicator", func(t *testing.T) {
		// A bare temp dir has no workspace indicator; FindRoot should walk
		// to the filesystem root and give up. Only assert when no ancestor
		// accidentally carries one.
		tmpDir := t.TempDir()
		if _, err := FindRoot(tmpDir); err == nil {
			t.Skip("an ancestor directory carries a workspace indicator")
		}
	})
}
