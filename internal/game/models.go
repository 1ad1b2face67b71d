package game

import (
	"time"

	"github.com/google/uuid"

	"starmap-server/internal/starmap"
)

// Game is one saved galaxy: the generation parameters plus summary counts.
// The parameters are stored so a loaded map can rebuild its sector grid with
// the original map size and extent.
type Game struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Seed          int64     `json:"seed"`
	MapSize       int       `json:"map_size"`
	DensityMin    int       `json:"density_min"`
	DensityMax    int       `json:"density_max"`
	WorldWidth    float64   `json:"world_width"`
	WorldHeight   float64   `json:"world_height"`
	StarCount     int       `json:"star_count"`
	WormholeCount int       `json:"wormhole_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Snapshot is the flat storage form of a saved game. The record shapes are
// the generator's output shapes; the snapshot is what the repository persists
// and what the cache serializes.
type Snapshot struct {
	Game      Game                  `json:"game"`
	Stars     []starmap.Star        `json:"stars"`
	Wormholes []starmap.Wormhole    `json:"wormholes"`
	Starts    []starmap.PlayerStart `json:"starts"`
}

// LoadedGame is a saved game rebuilt into a queryable map model.
type LoadedGame struct {
	Game   Game
	Model  *starmap.Model
	Starts []starmap.PlayerStart
}

// Rebuild reconstructs the in-memory map model from a snapshot. The model is
// rebuilt from scratch: star index first, then wormholes resolved against it,
// then the sector grid from the original map size.
func (s *Snapshot) Rebuild() (*LoadedGame, error) {
	model := starmap.New(s.Game.WorldWidth, s.Game.WorldHeight)
	model.SetStars(s.Stars)
	model.SetWormholes(s.Wormholes)
	if err := model.BuildSectors(s.Game.MapSize); err != nil {
		return nil, err
	}

	return &LoadedGame{
		Game:   s.Game,
		Model:  model,
		Starts: s.Starts,
	}, nil
}
