package game

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"starmap-server/internal/shared/redis"
)

const cacheKeyPrefix = "starmap:game:"

// SnapshotCache keeps JSON-encoded game snapshots in Redis so repeated loads
// skip the database. A nil client disables the cache; every operation then
// falls through to Postgres.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewSnapshotCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *SnapshotCache {
	return &SnapshotCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get returns the cached snapshot for a game, or nil on miss. Cache failures
// are logged and treated as misses.
func (c *SnapshotCache) Get(ctx context.Context, gameID uuid.UUID) *Snapshot {
	if c == nil || c.client == nil {
		return nil
	}

	logger := c.logger.With("component", "snapshot_cache", "operation", "get", "game_id", gameID)

	data, err := c.client.Get(ctx, cacheKeyPrefix+gameID.String()).Bytes()
	if err != nil {
		logger.Debug("Snapshot cache miss", "error", err)
		return nil
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		logger.Warn("Failed to decode cached snapshot, ignoring", "error", err)
		return nil
	}

	logger.Debug("Snapshot cache hit")
	return &snapshot
}

// Store writes a snapshot to the cache with the configured TTL. Failures are
// logged and ignored; the database remains the source of truth.
func (c *SnapshotCache) Store(ctx context.Context, snapshot *Snapshot) {
	if c == nil || c.client == nil {
		return
	}

	logger := c.logger.With("component", "snapshot_cache", "operation", "store", "game_id", snapshot.Game.ID)

	data, err := json.Marshal(snapshot)
	if err != nil {
		logger.Warn("Failed to encode snapshot for cache", "error", err)
		return
	}

	if err := c.client.Set(ctx, cacheKeyPrefix+snapshot.Game.ID.String(), data, c.ttl).Err(); err != nil {
		logger.Warn("Failed to store snapshot in cache", "error", err)
		return
	}

	logger.Debug("Snapshot cached", "size_bytes", len(data))
}

// Invalidate drops the cached snapshot for a game.
func (c *SnapshotCache) Invalidate(ctx context.Context, gameID uuid.UUID) {
	if c == nil || c.client == nil {
		return
	}

	if err := c.client.Del(ctx, cacheKeyPrefix+gameID.String()).Err(); err != nil {
		c.logger.Warn("Failed to invalidate snapshot cache", "game_id", gameID, "error", err)
	}
}
