package game

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSnapshotCache_DisabledClient(t *testing.T) {
	ctx := context.Background()
	cache := NewSnapshotCache(nil, time.Minute, slog.Default())

	if got := cache.Get(ctx, uuid.New()); got != nil {
		t.Errorf("Get on disabled cache = %+v, want nil", got)
	}
	// Store and Invalidate must be no-ops, not panics.
	cache.Store(ctx, &Snapshot{})
	cache.Invalidate(ctx, uuid.New())
}

func TestSnapshotCache_NilReceiver(t *testing.T) {
	ctx := context.Background()
	var cache *SnapshotCache

	if got := cache.Get(ctx, uuid.New()); got != nil {
		t.Errorf("Get on nil cache = %+v, want nil", got)
	}
	cache.Store(ctx, &Snapshot{})
	cache.Invalidate(ctx, uuid.New())
}
