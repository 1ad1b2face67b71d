package galaxy

import (
	"starmap-server/internal/shared/config"
	"starmap-server/internal/shared/errors"
	"starmap-server/internal/starmap"
)

// Config drives one generation run. The same Config always yields the same
// map. Seed may come from an integer directly or from rng.HashSeed for string
// seeds.
type Config struct {
	Seed       int64 `json:"seed"`
	MapSize    int   `json:"map_size"`
	DensityMin int   `json:"density_min"`
	DensityMax int   `json:"density_max"`

	// World extent and star depth range. Zero values fall back to the
	// configured defaults.
	WorldWidth  float64 `json:"world_width"`
	WorldHeight float64 `json:"world_height"`
	DepthMin    float64 `json:"depth_min"`
	DepthMax    float64 `json:"depth_max"`
}

// DefaultConfig returns a Config populated from the galaxy section of the
// global configuration.
func DefaultConfig() Config {
	cfg := config.GlobalConfig.Galaxy
	return Config{
		MapSize:     cfg.DefaultMapSize,
		DensityMin:  cfg.DefaultDensityMin,
		DensityMax:  cfg.DefaultDensityMax,
		WorldWidth:  cfg.WorldWidth,
		WorldHeight: cfg.WorldHeight,
		DepthMin:    cfg.DepthMin,
		DepthMax:    cfg.DepthMax,
	}
}

func (c *Config) applyDefaults() {
	if c.WorldWidth == 0 {
		c.WorldWidth = 1000
	}
	if c.WorldHeight == 0 {
		c.WorldHeight = 1000
	}
	if c.DepthMin == 0 && c.DepthMax == 0 {
		c.DepthMin = -25
		c.DepthMax = 25
	}
}

// validate reports configuration errors. These indicate a caller bug and are
// raised before any placement occurs.
func (c Config) validate() error {
	if c.MapSize < 1 || c.MapSize > starmap.MaxMapSize {
		return errors.Validationf("map size must be between 1 and %d, got %d", starmap.MaxMapSize, c.MapSize)
	}
	if c.DensityMin < 0 || c.DensityMax > 9 {
		return errors.Validationf("density bounds must be between 0 and 9, got [%d, %d]", c.DensityMin, c.DensityMax)
	}
	if c.DensityMin > c.DensityMax {
		return errors.Validationf("density min %d exceeds density max %d", c.DensityMin, c.DensityMax)
	}
	if c.WorldWidth <= 0 || c.WorldHeight <= 0 {
		return errors.Validationf("world extent must be positive, got %gx%g", c.WorldWidth, c.WorldHeight)
	}
	if c.DepthMin > c.DepthMax {
		return errors.Validationf("depth min %g exceeds depth max %g", c.DepthMin, c.DepthMax)
	}
	return nil
}

// PlacementReport records the placement outcome for one sector, so callers
// can distinguish "requested 0 stars" from "exhausted retry attempts".
type PlacementReport struct {
	Row       int `json:"row"`
	Col       int `json:"col"`
	Requested int `json:"requested"`
	Placed    int `json:"placed"`
}

// Exhausted reports whether at least one star failed all placement attempts.
func (r PlacementReport) Exhausted() bool {
	return r.Placed < r.Requested
}

// Result is the output of one generation run.
type Result struct {
	Model   *starmap.Model
	Starts  []starmap.PlayerStart
	Reports []PlacementReport
}
