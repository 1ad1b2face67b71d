package game

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"starmap-server/internal/galaxy"
	"starmap-server/internal/shared/database"
	"starmap-server/internal/shared/errors"
	"starmap-server/internal/starmap"
)

type Service struct {
	repo   *Repository
	db     *database.DB
	cache  *SnapshotCache
	logger *slog.Logger
}

func NewService(repo *Repository, db *database.DB, cache *SnapshotCache, logger *slog.Logger) *Service {
	logger.Debug("Initializing game service")

	return &Service{
		repo:   repo,
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

// CreateGame generates a galaxy from the configuration and persists it as a
// new saved game. The game row and all map records are written in one
// transaction; the snapshot is cached afterwards.
func (s *Service) CreateGame(ctx context.Context, name string, cfg galaxy.Config) (*Game, *galaxy.Result, error) {
	logger := s.logger.With("component", "game_service", "operation", "create_game",
		"name", name, "seed", cfg.Seed)
	logger.Info("Creating game")

	result, err := galaxy.Generate(cfg)
	if err != nil {
		logger.Error("Galaxy generation failed", "error", err)
		return nil, nil, fmt.Errorf("failed to generate galaxy: %w", err)
	}

	worldWidth, worldHeight := result.Model.Extent()
	game := &Game{
		ID:            uuid.New(),
		Name:          name,
		Seed:          cfg.Seed,
		MapSize:       cfg.MapSize,
		DensityMin:    cfg.DensityMin,
		DensityMax:    cfg.DensityMax,
		WorldWidth:    worldWidth,
		WorldHeight:   worldHeight,
		StarCount:     result.Model.StarCount(),
		WormholeCount: len(result.Model.Wormholes()),
	}

	snapshot := snapshotOf(game, result)

	tx, err := s.db.BeginTxContext(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err.Error() != "sql: transaction has already been committed or rolled back" {
			logger.Error("Failed to rollback transaction", "error", err)
		}
	}()

	if err := s.repo.CreateGame(ctx, game, tx); err != nil {
		return nil, nil, err
	}
	if err := s.repo.InsertStars(ctx, game.ID, snapshot.Stars, tx); err != nil {
		return nil, nil, err
	}
	if err := s.repo.InsertWormholes(ctx, game.ID, snapshot.Wormholes, tx); err != nil {
		return nil, nil, err
	}
	if err := s.repo.InsertStarts(ctx, game.ID, snapshot.Starts, tx); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit game: %w", err)
	}

	snapshot.Game = *game
	s.cache.Store(ctx, snapshot)

	logger.Info("Game created successfully",
		"game_id", game.ID,
		"stars", game.StarCount,
		"wormholes", game.WormholeCount)

	return game, result, nil
}

// LoadGame rebuilds a saved game into a queryable map model, preferring the
// snapshot cache over the database.
func (s *Service) LoadGame(ctx context.Context, gameID uuid.UUID) (*LoadedGame, error) {
	logger := s.logger.With("component", "game_service", "operation", "load_game", "game_id", gameID)
	logger.Debug("Loading game")

	if snapshot := s.cache.Get(ctx, gameID); snapshot != nil {
		loaded, err := snapshot.Rebuild()
		if err == nil {
			logger.Info("Game loaded from cache", "stars", loaded.Model.StarCount())
			return loaded, nil
		}
		logger.Warn("Cached snapshot failed to rebuild, falling back to database", "error", err)
	}

	gameRow, err := s.repo.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if gameRow == nil {
		return nil, errors.NotFoundf("game %s not found", gameID)
	}

	stars, wormholes, starts, err := s.repo.LoadRecords(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load game records: %w", err)
	}

	snapshot := &Snapshot{
		Game:      *gameRow,
		Stars:     stars,
		Wormholes: wormholes,
		Starts:    starts,
	}

	loaded, err := snapshot.Rebuild()
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild map model: %w", err)
	}

	s.cache.Store(ctx, snapshot)

	logger.Info("Game loaded",
		"stars", loaded.Model.StarCount(),
		"wormholes", len(loaded.Model.Wormholes()),
		"connected", loaded.Model.Connected())

	return loaded, nil
}

// ListGames returns all saved games.
func (s *Service) ListGames(ctx context.Context) ([]Game, error) {
	return s.repo.ListGames(ctx)
}

// DeleteGame removes a saved game and drops its cached snapshot.
func (s *Service) DeleteGame(ctx context.Context, gameID uuid.UUID) error {
	logger := s.logger.With("component", "game_service", "operation", "delete_game", "game_id", gameID)
	logger.Info("Deleting game")

	if err := s.repo.DeleteGame(ctx, gameID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, gameID)
	return nil
}

func snapshotOf(game *Game, result *galaxy.Result) *Snapshot {
	modelStars := result.Model.Stars()
	stars := make([]starmap.Star, 0, len(modelStars))
	for _, star := range modelStars {
		stars = append(stars, *star)
	}

	return &Snapshot{
		Game:      *game,
		Stars:     stars,
		Wormholes: result.Model.Wormholes(),
		Starts:    result.Starts,
	}
}
