package platform_test

import (
	"context"
	"testing"
	"time"

	"github.com/GeminiLight/KiddleMentor-dev/internal/platform"
	"github.com/GeminiLight/KiddleMentor-dev/pkg/core"
)

func TestSystem_Assembly(t *testing.T) {
	sys := platform.New(t.TempDir())

	if sys.Repository == nil || sys.Registry == nil {
		t.Fatal("System must assemble repository and registry")
	}
	if !sys.Repository.Available() {
		t.Error("Repository should be available on a writable workspace")
	}
	if sys.Watcher() != nil {
		t.Error("No watcher should exist before Watch is called")
	}
}

func TestSystem_RepositoryAndRegistryShareWorkspace(t *testing.T) {
	tmp := t.TempDir()
	sys := platform.New(tmp)

	if err := sys.Repository.SaveProfile("learner_ada", core.Document{"learner_id": "learner_ada", "name": "Ada"}); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	count, err := sys.Registry.SyncFromDisk()
	if err != nil {
		t.Fatalf("SyncFromDisk failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 synced user, got %d", count)
	}
	if u := sys.Registry.GetUser("learner_ada"); u == nil || u.Name != "Ada" {
		t.Errorf("Registry entry missing or wrong: %+v", u)
	}
}

func TestSystem_WatchDeliversEvents(t *testing.T) {
	tmp := t.TempDir()
	sys := platform.New(tmp, platform.WithAutoSync(false))

	// The learner directory exists before the watch starts, so the write
	// below lands in an already-watched directory.
	if err := sys.Repository.SaveProfile("learner_ada", core.Document{"name": "Ada"}); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, err := sys.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer sys.Stop(context.Background())

	time.Sleep(100 * time.Millisecond)

	if err := sys.Repository.SaveProfile("learner_ada", core.Document{"name": "Ada", "grade": "7"}); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	deadline := time.After(4 * time.Second)
	for {
		select {
		case e, ok := <-events:
			if !ok {
				t.Fatal("Events channel closed before delivery")
			}
			if e.ID == "learner_ada/profile.json" {
				return
			}
		case <-deadline:
			t.Fatal("Timed out waiting for profile event")
		}
	}
}

func TestSystem_WatchAutoSyncsRegistry(t *testing.T) {
	tmp := t.TempDir()
	sys := platform.New(tmp)

	if err := sys.Repository.SaveProfile("learner_ada", core.Document{"learner_id": "learner_ada"}); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()

	events, err := sys.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer sys.Stop(context.Background())

	// Drain the caller-facing feed so the tee never stalls.
	go func() {
		for range events {
		}
	}()

	time.Sleep(100 * time.Millisecond)

	if err := sys.Repository.SaveProfile("learner_ada", core.Document{"learner_id": "learner_ada", "name": "Ada"}); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if u := sys.Registry.GetUser("learner_ada"); u != nil {
			if u.Name != "Ada" {
				t.Errorf("Registry entry has wrong name: %+v", u)
			}
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("Registry was never synced from the watcher feed")
}

func TestSystem_DoubleWatchFails(t *testing.T) {
	sys := platform.New(t.TempDir(), platform.WithAutoSync(false))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := sys.Watch(ctx); err != nil {
		t.Fatalf("First Watch failed: %v", err)
	}
	defer sys.Stop(context.Background())

	if _, err := sys.Watch(ctx); err == nil {
		t.Error("Second Watch should fail")
	}
}
