package galaxy

import (
	"starmap-server/internal/rng"
	"starmap-server/internal/starmap"
)

// suggestStarts proposes one player start per distinct corner sector, scanning
// corners in a fixed order: top-left, top-right, bottom-left, bottom-right.
// For a 1x1 map all corners coincide and yield a single suggestion. Corners
// whose sector holds no stars are omitted; that is not an error.
func suggestStarts(r *rng.Source, model *starmap.Model) []starmap.PlayerStart {
	size := model.MapSize()
	corners := [][2]int{
		{0, 0},
		{0, size - 1},
		{size - 1, 0},
		{size - 1, size - 1},
	}

	var starts []starmap.PlayerStart
	seen := make(map[[2]int]bool, len(corners))

	for _, corner := range corners {
		if seen[corner] {
			continue
		}
		seen[corner] = true

		sector := model.SectorAt(corner[0], corner[1])
		if sector == nil || len(sector.StarIDs) == 0 {
			continue
		}

		starts = append(starts, starmap.PlayerStart{
			SectorRow: sector.Row,
			SectorCol: sector.Col,
			StarID:    rng.PickOne(r, sector.StarIDs),
		})
	}
	return starts
}
