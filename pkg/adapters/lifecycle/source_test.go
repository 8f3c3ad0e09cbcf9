package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memlifecycle "github.com/GeminiLight/KiddleMentor-dev/pkg/adapters/lifecycle"
	"github.com/GeminiLight/KiddleMentor-dev/pkg/core"
)

func TestSource_BridgesEvents(t *testing.T) {
	in := make(chan core.Event, 2)
	source := memlifecycle.NewSource(in)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	require.NoError(t, source.Start(ctx))

	want := core.Event{Type: core.EventModify, ID: "learner_ada/profile.json", Timestamp: 42}
	in <- want

	select {
	case got := <-source.Events():
		assert.Equal(t, want.String(), got.String())
	case <-ctx.Done():
		t.Fatal("Timed out waiting for bridged event")
	}
}

func TestSource_ClosesOnInputClose(t *testing.T) {
	in := make(chan core.Event)
	source := memlifecycle.NewSource(in)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	require.NoError(t, source.Start(ctx))
	close(in)

	select {
	case _, ok := <-source.Events():
		assert.False(t, ok, "output must close when the input closes")
	case <-ctx.Done():
		t.Fatal("Timed out waiting for close")
	}
}
