package starmap

// BuildGrid partitions a world extent into a mapSize x mapSize grid of empty
// sectors, returned in row-major order. Sectors tile the extent without gaps
// or overlaps; no randomness is involved.
func BuildGrid(mapSize int, width, height float64) []*Sector {
	sectorWidth := width / float64(mapSize)
	sectorHeight := height / float64(mapSize)

	sectors := make([]*Sector, 0, mapSize*mapSize)
	for row := 0; row < mapSize; row++ {
		for col := 0; col < mapSize; col++ {
			sectors = append(sectors, &Sector{
				Row:    row,
				Col:    col,
				X:      float64(col) * sectorWidth,
				Y:      float64(row) * sectorHeight,
				Width:  sectorWidth,
				Height: sectorHeight,
			})
		}
	}
	return sectors
}
