// Package galaxy generates reproducible galaxy maps: a sector grid, stars
// placed under spacing constraints, a wormhole graph that makes the map
// traversable, and suggested player starting positions. The same seed and
// configuration always produce the same map.
//
// The pipeline is strictly linear and single-pass: grid, per-sector star
// placement, intra-sector connectivity, inter-sector bridging, start
// suggestions. Downstream stages only add data, never revise earlier
// placements, and every random draw goes through one shared source in a
// fixed order.
package galaxy

import (
	"log/slog"

	"starmap-server/internal/rng"
	"starmap-server/internal/starmap"
)

// Generate builds a complete map from the configuration. It returns a
// validation error for an impossible configuration before any placement
// occurs; placement exhaustion and empty sectors degrade gracefully and are
// reported through the placement reports instead.
func Generate(cfg Config) (*Result, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logger := slog.With("component", "galaxy", "operation", "generate",
		"seed", cfg.Seed, "map_size", cfg.MapSize,
		"density_min", cfg.DensityMin, "density_max", cfg.DensityMax)
	logger.Debug("Starting galaxy generation")

	r := rng.New(cfg.Seed)
	model := starmap.New(cfg.WorldWidth, cfg.WorldHeight)
	sectors := starmap.BuildGrid(cfg.MapSize, cfg.WorldWidth, cfg.WorldHeight)
	model.InstallSectors(cfg.MapSize, sectors)

	namer := newNameGenerator()
	field := newResourceField(cfg.Seed)

	// Sectors are populated row-major; star ids ascend in placement order.
	nextID := 0
	reports := make([]PlacementReport, 0, len(sectors))
	for _, sector := range sectors {
		report := placeSector(r, model, sector, cfg, namer, field, &nextID)
		if report.Exhausted() {
			logger.Debug("Placement exhaustion in sector",
				"row", report.Row, "col", report.Col,
				"requested", report.Requested, "placed", report.Placed)
		}
		reports = append(reports, report)
	}

	buildConnectivity(model, cfg.MapSize)
	starts := suggestStarts(r, model)

	logger.Info("Galaxy generated",
		"stars", model.StarCount(),
		"wormholes", len(model.Wormholes()),
		"starts", len(starts),
		"connected", model.Connected(),
		"draws", r.Draws())

	return &Result{Model: model, Starts: starts, Reports: reports}, nil
}
