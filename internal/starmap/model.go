// Package starmap owns the assembled galaxy map: the canonical star-by-id
// index, the sector grid and the wormhole list. The model is the only place
// allowed to mutate star gameplay fields after generation; sectors and the
// base star set are read-only once assembled. Loading a persisted map rebuilds
// the model from scratch through SetStars, SetWormholes and BuildSectors.
package starmap

import (
	"log/slog"
	"math"
	"sort"

	"starmap-server/internal/shared/errors"
)

// MaxMapSize is the largest supported sector grid dimension.
const MaxMapSize = 9

// Model is the queryable result of galaxy generation.
type Model struct {
	mapSize     int
	worldWidth  float64
	worldHeight float64
	stars       map[int]*Star
	order       []int
	sectors     []*Sector
	wormholes   []Wormhole
	edges       map[[2]int]bool
}

// New creates an empty model for the given world extent.
func New(worldWidth, worldHeight float64) *Model {
	return &Model{
		worldWidth:  worldWidth,
		worldHeight: worldHeight,
		stars:       make(map[int]*Star),
		edges:       make(map[[2]int]bool),
	}
}

// InstallSectors attaches a freshly built sector grid. Used by the generator;
// loaded maps go through BuildSectors instead.
func (m *Model) InstallSectors(mapSize int, sectors []*Sector) {
	m.mapSize = mapSize
	m.sectors = sectors
}

// AddStar registers a star in the index. Star ids are immutable and unique.
func (m *Model) AddStar(star *Star) error {
	if _, exists := m.stars[star.ID]; exists {
		return errors.Conflictf("star id %d already present", star.ID)
	}
	m.stars[star.ID] = star
	m.order = append(m.order, star.ID)
	return nil
}

// Link creates a wormhole between two stars, recording the Euclidean distance
// between them. Linking a star to itself is a caller bug; a duplicate edge is
// returned as-is without creating a second wormhole.
func (m *Model) Link(a, b int) (Wormhole, error) {
	if a == b {
		return Wormhole{}, errors.Validationf("cannot link star %d to itself", a)
	}
	sa, ok := m.stars[a]
	if !ok {
		return Wormhole{}, errors.NotFoundf("star %d not in index", a)
	}
	sb, ok := m.stars[b]
	if !ok {
		return Wormhole{}, errors.NotFoundf("star %d not in index", b)
	}

	key := edgeKey(a, b)
	if m.edges[key] {
		for _, wh := range m.wormholes {
			if edgeKey(wh.StarA, wh.StarB) == key {
				return wh, nil
			}
		}
	}

	wh := Wormhole{StarA: a, StarB: b, Distance: starDistance(sa, sb)}
	m.wormholes = append(m.wormholes, wh)
	m.edges[key] = true
	sa.Links = append(sa.Links, b)
	sb.Links = append(sb.Links, a)
	return wh, nil
}

// SetStars rebuilds the star index from persisted records, discarding any
// previous stars, wormholes and sector assignments.
func (m *Model) SetStars(records []Star) {
	m.stars = make(map[int]*Star, len(records))
	m.order = m.order[:0]
	m.wormholes = nil
	m.edges = make(map[[2]int]bool)

	for i := range records {
		star := records[i]
		star.Links = nil
		if _, exists := m.stars[star.ID]; exists {
			slog.Warn("Duplicate star record dropped", "star_id", star.ID)
			continue
		}
		m.stars[star.ID] = &star
		m.order = append(m.order, star.ID)
	}
	sort.Ints(m.order)
}

// SetWormholes rebuilds the wormhole list from persisted records, resolving
// each edge through the current star index. An edge referencing a missing star
// id is dropped with a warning rather than failing the load.
func (m *Model) SetWormholes(records []Wormhole) {
	m.wormholes = nil
	m.edges = make(map[[2]int]bool)
	for _, s := range m.stars {
		s.Links = nil
	}

	logger := slog.With("component", "starmap", "operation", "set_wormholes")
	for _, rec := range records {
		if _, err := m.Link(rec.StarA, rec.StarB); err != nil {
			logger.Warn("Dropping wormhole record", "star_a", rec.StarA, "star_b", rec.StarB, "error", err)
		}
	}
}

// BuildSectors reconstructs the sector grid from existing star positions and
// the original grid size the map was generated with. The size is required:
// there is deliberately no inferred fallback, since guessing the wrong sector
// count would silently corrupt gameplay.
func (m *Model) BuildSectors(originalMapSize int) error {
	if originalMapSize < 1 {
		return errors.Validationf("original map size is required to rebuild sectors, got %d", originalMapSize)
	}
	if originalMapSize > MaxMapSize {
		return errors.Validationf("original map size %d exceeds maximum %d", originalMapSize, MaxMapSize)
	}
	if m.worldWidth <= 0 || m.worldHeight <= 0 {
		return errors.Validation("world extent must be set before rebuilding sectors")
	}

	m.mapSize = originalMapSize
	m.sectors = BuildGrid(originalMapSize, m.worldWidth, m.worldHeight)

	for _, id := range m.order {
		star := m.stars[id]
		row := clampIndex(star.Y/m.sectors[0].Height, originalMapSize)
		col := clampIndex(star.X/m.sectors[0].Width, originalMapSize)
		star.SectorRow = row
		star.SectorCol = col
		sec := m.sectors[row*originalMapSize+col]
		sec.StarIDs = append(sec.StarIDs, id)
	}
	return nil
}

// AssignOwner sets the owning player of a star.
func (m *Model) AssignOwner(starID int, owner string) error {
	star, ok := m.stars[starID]
	if !ok {
		return errors.NotFoundf("star %d not in index", starID)
	}
	star.Owner = owner
	return nil
}

// AddShip records a ship stationed at a star.
func (m *Model) AddShip(starID int, ship string) error {
	star, ok := m.stars[starID]
	if !ok {
		return errors.NotFoundf("star %d not in index", starID)
	}
	star.Ships = append(star.Ships, ship)
	return nil
}

// RemoveShip removes the first matching ship from a star. Removing a ship
// that is not present is a no-op.
func (m *Model) RemoveShip(starID int, ship string) error {
	star, ok := m.stars[starID]
	if !ok {
		return errors.NotFoundf("star %d not in index", starID)
	}
	for i, s := range star.Ships {
		if s == ship {
			star.Ships = append(star.Ships[:i], star.Ships[i+1:]...)
			break
		}
	}
	return nil
}

// AttachEconomy attaches an economy record to a star.
func (m *Model) AttachEconomy(starID int, economy Economy) error {
	star, ok := m.stars[starID]
	if !ok {
		return errors.NotFoundf("star %d not in index", starID)
	}
	star.Economy = &economy
	return nil
}

// StarByID returns the star with the given id.
func (m *Model) StarByID(id int) (*Star, bool) {
	star, ok := m.stars[id]
	return star, ok
}

// Stars returns all stars in ascending id order.
func (m *Model) Stars() []*Star {
	out := make([]*Star, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.stars[id])
	}
	return out
}

// StarCount returns the number of stars on the map.
func (m *Model) StarCount() int {
	return len(m.stars)
}

// Wormholes returns the wormhole list in creation order.
func (m *Model) Wormholes() []Wormhole {
	out := make([]Wormhole, len(m.wormholes))
	copy(out, m.wormholes)
	return out
}

// Sectors returns the sector grid in row-major order.
func (m *Model) Sectors() []*Sector {
	return m.sectors
}

// SectorAt returns the sector at the given grid coordinates, or nil when out
// of range.
func (m *Model) SectorAt(row, col int) *Sector {
	if row < 0 || col < 0 || row >= m.mapSize || col >= m.mapSize {
		return nil
	}
	return m.sectors[row*m.mapSize+col]
}

// MapSize returns the sector grid dimension.
func (m *Model) MapSize() int {
	return m.mapSize
}

// Extent returns the world width and height.
func (m *Model) Extent() (float64, float64) {
	return m.worldWidth, m.worldHeight
}

// ComponentCount returns the number of connected components in the wormhole
// graph, via breadth-first traversal over the star adjacency.
func (m *Model) ComponentCount() int {
	visited := make(map[int]bool, len(m.stars))
	components := 0

	for _, id := range m.order {
		if visited[id] {
			continue
		}
		components++
		queue := []int{id}
		visited[id] = true
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			for _, next := range m.stars[current].Links {
				if !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}
	}
	return components
}

// Connected reports whether every star is reachable from every other star by
// following wormholes. An empty map counts as connected.
func (m *Model) Connected() bool {
	return m.ComponentCount() <= 1
}

func edgeKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

func starDistance(a, b *Star) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func clampIndex(v float64, size int) int {
	idx := int(v)
	if idx < 0 {
		return 0
	}
	if idx >= size {
		return size - 1
	}
	return idx
}
