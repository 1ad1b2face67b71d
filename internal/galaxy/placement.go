package galaxy

import (
	"math"

	"starmap-server/internal/rng"
	"starmap-server/internal/starmap"
)

const (
	// placementAttempts bounds the rejection sampling per star. A star that
	// fails every attempt is simply not placed.
	placementAttempts = 50
	// edgeInsetRatio keeps candidates away from sector edges, as a fraction
	// of sector width/height.
	edgeInsetRatio = 0.05
	// minSeparationRatio is the minimum distance between two stars in the
	// same sector, as a fraction of sector width.
	minSeparationRatio = 0.10
)

// placeSector draws a star count from the density range and places that many
// stars inside the sector interior under the minimum-separation constraint.
// Draw order is fixed: count, then per star the x/y candidates, then depth and
// name draws only once a candidate is accepted.
func placeSector(
	r *rng.Source,
	model *starmap.Model,
	sector *starmap.Sector,
	cfg Config,
	namer *nameGenerator,
	field *resourceField,
	nextID *int,
) PlacementReport {
	requested := r.IntN(cfg.DensityMin, cfg.DensityMax)

	insetX := sector.Width * edgeInsetRatio
	insetY := sector.Height * edgeInsetRatio
	minSeparation := sector.Width * minSeparationRatio

	placed := 0
	for i := 0; i < requested; i++ {
		x, y, ok := sampleCandidate(r, model, sector, insetX, insetY, minSeparation)
		if !ok {
			continue
		}

		star := &starmap.Star{
			ID:        *nextID,
			X:         x,
			Y:         y,
			Z:         r.FloatN(cfg.DepthMin, cfg.DepthMax),
			SectorRow: sector.Row,
			SectorCol: sector.Col,
			Resources: field.valueAt(x, y),
		}
		star.Name = namer.next(r)
		*nextID++

		if err := model.AddStar(star); err != nil {
			// Ids are assigned monotonically, so this cannot happen.
			panic(err)
		}
		sector.StarIDs = append(sector.StarIDs, star.ID)
		placed++
	}

	return PlacementReport{
		Row:       sector.Row,
		Col:       sector.Col,
		Requested: requested,
		Placed:    placed,
	}
}

// sampleCandidate tries up to placementAttempts positions inside the inset
// sector interior, rejecting any candidate too close to a star already placed
// in this sector.
func sampleCandidate(
	r *rng.Source,
	model *starmap.Model,
	sector *starmap.Sector,
	insetX, insetY, minSeparation float64,
) (float64, float64, bool) {
	for attempt := 0; attempt < placementAttempts; attempt++ {
		x := r.FloatN(sector.X+insetX, sector.X+sector.Width-insetX)
		y := r.FloatN(sector.Y+insetY, sector.Y+sector.Height-insetY)
		if separated(model, sector, x, y, minSeparation) {
			return x, y, true
		}
	}
	return 0, 0, false
}

func separated(model *starmap.Model, sector *starmap.Sector, x, y, minSeparation float64) bool {
	for _, id := range sector.StarIDs {
		star, ok := model.StarByID(id)
		if !ok {
			continue
		}
		dx := star.X - x
		dy := star.Y - y
		if math.Sqrt(dx*dx+dy*dy) < minSeparation {
			return false
		}
	}
	return true
}
