package game

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"starmap-server/internal/shared/database"
	"starmap-server/internal/starmap"
)

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing game repository")
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) getExecutor(tx *database.Tx) database.Executor {
	if tx != nil {
		return tx
	}
	return r.db
}

// CreateGame inserts the game row.
func (r *Repository) CreateGame(ctx context.Context, game *Game, tx *database.Tx) error {
	logger := r.logger.With(
		"component", "game_repository",
		"operation", "create_game",
		"game_id", game.ID,
		"name", game.Name,
	)
	logger.Info("Creating game")

	exec := r.getExecutor(tx)

	query := `
		INSERT INTO games (id, name, seed, map_size, density_min, density_max,
			world_width, world_height, star_count, wormhole_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	err := exec.QueryRowContext(ctx, query,
		game.ID, game.Name, game.Seed, game.MapSize, game.DensityMin, game.DensityMax,
		game.WorldWidth, game.WorldHeight, game.StarCount, game.WormholeCount,
	).Scan(&game.CreatedAt, &game.UpdatedAt)

	if err != nil {
		logger.Error("Failed to create game", "error", err)
		return fmt.Errorf("failed to create game: %w", err)
	}

	logger.Info("Game created successfully")
	return nil
}

// InsertStars batch-inserts the star records of a game using a single JSON
// insert.
func (r *Repository) InsertStars(ctx context.Context, gameID uuid.UUID, stars []starmap.Star, tx *database.Tx) error {
	if len(stars) == 0 {
		return nil
	}

	logger := r.logger.With(
		"component", "game_repository",
		"operation", "insert_stars",
		"game_id", gameID,
		"count", len(stars),
	)
	logger.Debug("Inserting stars in batch")

	starsJSON, err := json.Marshal(stars)
	if err != nil {
		logger.Error("Failed to marshal stars to JSON", "error", err)
		return fmt.Errorf("failed to marshal stars: %w", err)
	}

	query := `
		INSERT INTO stars (game_id, id, name, x, y, z, sector_row, sector_col, resources, owner)
		SELECT
			$1,
			(data->>'id')::integer,
			data->>'name',
			(data->>'x')::double precision,
			(data->>'y')::double precision,
			(data->>'z')::double precision,
			(data->>'sector_row')::integer,
			(data->>'sector_col')::integer,
			(data->>'resources')::integer,
			COALESCE(data->>'owner', '')
		FROM json_array_elements($2::json) AS data`

	if _, err := r.getExecutor(tx).ExecContext(ctx, query, gameID, string(starsJSON)); err != nil {
		logger.Error("Failed to batch insert stars", "error", err)
		return fmt.Errorf("failed to batch insert stars: %w", err)
	}

	logger.Info("Stars inserted successfully")
	return nil
}

// InsertWormholes batch-inserts the wormhole records of a game.
func (r *Repository) InsertWormholes(ctx context.Context, gameID uuid.UUID, wormholes []starmap.Wormhole, tx *database.Tx) error {
	if len(wormholes) == 0 {
		return nil
	}

	logger := r.logger.With(
		"component", "game_repository",
		"operation", "insert_wormholes",
		"game_id", gameID,
		"count", len(wormholes),
	)
	logger.Debug("Inserting wormholes in batch")

	wormholesJSON, err := json.Marshal(wormholes)
	if err != nil {
		logger.Error("Failed to marshal wormholes to JSON", "error", err)
		return fmt.Errorf("failed to marshal wormholes: %w", err)
	}

	query := `
		INSERT INTO wormholes (game_id, star_a_id, star_b_id, distance)
		SELECT
			$1,
			(data->>'star_a_id')::integer,
			(data->>'star_b_id')::integer,
			(data->>'distance')::double precision
		FROM json_array_elements($2::json) AS data`

	if _, err := r.getExecutor(tx).ExecContext(ctx, query, gameID, string(wormholesJSON)); err != nil {
		logger.Error("Failed to batch insert wormholes", "error", err)
		return fmt.Errorf("failed to batch insert wormholes: %w", err)
	}

	logger.Info("Wormholes inserted successfully")
	return nil
}

// InsertStarts batch-inserts the suggested player starts of a game.
func (r *Repository) InsertStarts(ctx context.Context, gameID uuid.UUID, starts []starmap.PlayerStart, tx *database.Tx) error {
	if len(starts) == 0 {
		return nil
	}

	logger := r.logger.With(
		"component", "game_repository",
		"operation", "insert_starts",
		"game_id", gameID,
		"count", len(starts),
	)
	logger.Debug("Inserting player starts in batch")

	startsJSON, err := json.Marshal(starts)
	if err != nil {
		logger.Error("Failed to marshal player starts to JSON", "error", err)
		return fmt.Errorf("failed to marshal player starts: %w", err)
	}

	query := `
		INSERT INTO player_starts (game_id, sector_row, sector_col, star_id)
		SELECT
			$1,
			(data->>'sector_row')::integer,
			(data->>'sector_col')::integer,
			(data->>'star_id')::integer
		FROM json_array_elements($2::json) AS data`

	if _, err := r.getExecutor(tx).ExecContext(ctx, query, gameID, string(startsJSON)); err != nil {
		logger.Error("Failed to batch insert player starts", "error", err)
		return fmt.Errorf("failed to batch insert player starts: %w", err)
	}

	logger.Info("Player starts inserted successfully")
	return nil
}

// GetGameByID returns the game row, or nil when it does not exist.
func (r *Repository) GetGameByID(ctx context.Context, gameID uuid.UUID) (*Game, error) {
	logger := r.logger.With("component", "game_repository", "operation", "get_game", "game_id", gameID)
	logger.Debug("Getting game by ID")

	query := `
		SELECT id, name, seed, map_size, density_min, density_max,
			world_width, world_height, star_count, wormhole_count, created_at, updated_at
		FROM games
		WHERE id = $1
	`

	var game Game
	err := r.db.QueryRowContext(ctx, query, gameID).Scan(
		&game.ID,
		&game.Name,
		&game.Seed,
		&game.MapSize,
		&game.DensityMin,
		&game.DensityMax,
		&game.WorldWidth,
		&game.WorldHeight,
		&game.StarCount,
		&game.WormholeCount,
		&game.CreatedAt,
		&game.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			logger.Debug("Game not found")
			return nil, nil
		}
		logger.Error("Database error getting game", "error", err)
		return nil, fmt.Errorf("database error: %w", err)
	}

	logger.Debug("Game retrieved", "name", game.Name)
	return &game, nil
}

// ListGames returns all saved games, newest first.
func (r *Repository) ListGames(ctx context.Context) ([]Game, error) {
	query := `
		SELECT id, name, seed, map_size, density_min, density_max,
			world_width, world_height, star_count, wormhole_count, created_at, updated_at
		FROM games
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.Error("Failed to close rows", "error", err)
		}
	}()

	var games []Game
	for rows.Next() {
		var game Game
		if err := rows.Scan(
			&game.ID, &game.Name, &game.Seed, &game.MapSize,
			&game.DensityMin, &game.DensityMax,
			&game.WorldWidth, &game.WorldHeight,
			&game.StarCount, &game.WormholeCount,
			&game.CreatedAt, &game.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, game)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating games: %w", err)
	}

	return games, nil
}

// LoadRecords loads the star, wormhole and player-start records of a game.
// The three queries run concurrently.
func (r *Repository) LoadRecords(ctx context.Context, gameID uuid.UUID) ([]starmap.Star, []starmap.Wormhole, []starmap.PlayerStart, error) {
	logger := r.logger.With("component", "game_repository", "operation", "load_records", "game_id", gameID)
	logger.Debug("Loading game records")

	var (
		stars     []starmap.Star
		wormholes []starmap.Wormhole
		starts    []starmap.PlayerStart
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stars, err = r.loadStars(ctx, gameID)
		return err
	})
	g.Go(func() error {
		var err error
		wormholes, err = r.loadWormholes(ctx, gameID)
		return err
	})
	g.Go(func() error {
		var err error
		starts, err = r.loadStarts(ctx, gameID)
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Error("Failed to load game records", "error", err)
		return nil, nil, nil, err
	}

	logger.Debug("Game records loaded",
		"stars", len(stars), "wormholes", len(wormholes), "starts", len(starts))
	return stars, wormholes, starts, nil
}

func (r *Repository) loadStars(ctx context.Context, gameID uuid.UUID) ([]starmap.Star, error) {
	query := `
		SELECT id, name, x, y, z, sector_row, sector_col, resources, owner
		FROM stars
		WHERE game_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stars: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.Error("Failed to close rows", "error", err)
		}
	}()

	var stars []starmap.Star
	for rows.Next() {
		var star starmap.Star
		if err := rows.Scan(
			&star.ID, &star.Name, &star.X, &star.Y, &star.Z,
			&star.SectorRow, &star.SectorCol, &star.Resources, &star.Owner,
		); err != nil {
			return nil, fmt.Errorf("failed to scan star: %w", err)
		}
		stars = append(stars, star)
	}
	return stars, rows.Err()
}

func (r *Repository) loadWormholes(ctx context.Context, gameID uuid.UUID) ([]starmap.Wormhole, error) {
	query := `
		SELECT star_a_id, star_b_id, distance
		FROM wormholes
		WHERE game_id = $1
		ORDER BY star_a_id, star_b_id
	`

	rows, err := r.db.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wormholes: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.Error("Failed to close rows", "error", err)
		}
	}()

	var wormholes []starmap.Wormhole
	for rows.Next() {
		var wh starmap.Wormhole
		if err := rows.Scan(&wh.StarA, &wh.StarB, &wh.Distance); err != nil {
			return nil, fmt.Errorf("failed to scan wormhole: %w", err)
		}
		wormholes = append(wormholes, wh)
	}
	return wormholes, rows.Err()
}

func (r *Repository) loadStarts(ctx context.Context, gameID uuid.UUID) ([]starmap.PlayerStart, error) {
	query := `
		SELECT sector_row, sector_col, star_id
		FROM player_starts
		WHERE game_id = $1
		ORDER BY sector_row, sector_col
	`

	rows, err := r.db.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load player starts: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.Error("Failed to close rows", "error", err)
		}
	}()

	var starts []starmap.PlayerStart
	for rows.Next() {
		var start starmap.PlayerStart
		if err := rows.Scan(&start.SectorRow, &start.SectorCol, &start.StarID); err != nil {
			return nil, fmt.Errorf("failed to scan player start: %w", err)
		}
		starts = append(starts, start)
	}
	return starts, rows.Err()
}

// DeleteGame removes a game and all its records. Child tables cascade.
func (r *Repository) DeleteGame(ctx context.Context, gameID uuid.UUID) error {
	logger := r.logger.With("component", "game_repository", "operation", "delete_game", "game_id", gameID)
	logger.Info("Deleting game")

	if _, err := r.db.ExecContext(ctx, "DELETE FROM games WHERE id = $1", gameID); err != nil {
		logger.Error("Failed to delete game", "error", err)
		return fmt.Errorf("failed to delete game: %w", err)
	}

	logger.Info("Game deleted successfully")
	return nil
}
