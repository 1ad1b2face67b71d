package galaxy

import (
	"log/slog"
	"math"

	"starmap-server/internal/starmap"
)

// connectSector links every star in a sector into one connected component by
// iterative nearest-pair attachment: repeatedly find the minimal-distance
// (unconnected, connected) pair across the entire current frontier and attach
// it. Ties go to the first pair in scan order, which keeps the result
// deterministic. The result is a spanning tree over the sector's stars.
func connectSector(model *starmap.Model, sector *starmap.Sector) {
	if len(sector.StarIDs) < 2 {
		return
	}

	connected := make([]int, 0, len(sector.StarIDs))
	connected = append(connected, sector.StarIDs[0])
	unconnected := make([]int, len(sector.StarIDs)-1)
	copy(unconnected, sector.StarIDs[1:])

	for len(unconnected) > 0 {
		bestDist := math.Inf(1)
		bestFrom := -1
		bestTo := 0

		for ui, uid := range unconnected {
			from, _ := model.StarByID(uid)
			for _, cid := range connected {
				to, _ := model.StarByID(cid)
				d := distance2D(from, to)
				if d < bestDist {
					bestDist = d
					bestFrom = ui
					bestTo = cid
				}
			}
		}

		attached := unconnected[bestFrom]
		if _, err := model.Link(attached, bestTo); err != nil {
			slog.Error("Failed to link stars within sector", "star_a", attached, "star_b", bestTo, "error", err)
		}
		unconnected = append(unconnected[:bestFrom], unconnected[bestFrom+1:]...)
		connected = append(connected, attached)
	}
}

// bridgeSectors creates one wormhole between two adjacent sectors, connecting
// the closest pair of stars found by exhaustive pairwise comparison. When
// either sector is empty no bridge is created; map-wide connectivity may then
// legitimately be broken, which upstream callers decide how to treat.
func bridgeSectors(model *starmap.Model, a, b *starmap.Sector) {
	if len(a.StarIDs) == 0 || len(b.StarIDs) == 0 {
		return
	}

	bestDist := math.Inf(1)
	bestA := 0
	bestB := 0

	for _, aid := range a.StarIDs {
		sa, _ := model.StarByID(aid)
		for _, bid := range b.StarIDs {
			sb, _ := model.StarByID(bid)
			d := distance2D(sa, sb)
			if d < bestDist {
				bestDist = d
				bestA = aid
				bestB = bid
			}
		}
	}

	if _, err := model.Link(bestA, bestB); err != nil {
		slog.Error("Failed to bridge sectors",
			"from_row", a.Row, "from_col", a.Col,
			"to_row", b.Row, "to_col", b.Col,
			"error", err)
	}
}

// buildConnectivity runs the two wormhole phases: intra-sector spanning trees
// first, then right/bottom bridges between adjacent sectors. Bridging only
// right and bottom avoids creating the same bridge twice from the other side.
// Sectors are scanned row-major so the edge list is reproducible.
func buildConnectivity(model *starmap.Model, mapSize int) {
	for row := 0; row < mapSize; row++ {
		for col := 0; col < mapSize; col++ {
			connectSector(model, model.SectorAt(row, col))
		}
	}

	for row := 0; row < mapSize; row++ {
		for col := 0; col < mapSize; col++ {
			sector := model.SectorAt(row, col)
			if col+1 < mapSize {
				bridgeSectors(model, sector, model.SectorAt(row, col+1))
			}
			if row+1 < mapSize {
				bridgeSectors(model, sector, model.SectorAt(row+1, col))
			}
		}
	}
}

// distance2D is the star distance used for placement and connectivity. Depth
// is visual only and carries no gameplay meaning, so it never enters the
// metric.
func distance2D(a, b *starmap.Star) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
