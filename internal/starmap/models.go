package starmap

// Star is a single star on the map. The generator sets everything except the
// gameplay fields; Owner, Ships and Economy are written later through the model.
// A star's id and sector assignment never change after placement, and the
// output shape doubles as the storage format.
type Star struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	X         float64  `json:"x"`
	Y         float64  `json:"y"`
	Z         float64  `json:"z"`
	SectorRow int      `json:"sector_row"`
	SectorCol int      `json:"sector_col"`
	Resources int      `json:"resources"`
	Owner     string   `json:"owner,omitempty"`
	Ships     []string `json:"ships,omitempty"`
	Economy   *Economy `json:"economy,omitempty"`
	Links     []int    `json:"links"`
}

// Economy is a plain data holder attached to an owned star by the economy
// subsystem. The generator never sets one.
type Economy struct {
	Credits  int `json:"credits"`
	Industry int `json:"industry"`
}

// Sector is one cell of the generation grid: a spatial region plus the ordered
// list of stars placed inside it.
type Sector struct {
	Row     int     `json:"row"`
	Col     int     `json:"col"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	StarIDs []int   `json:"star_ids"`
}

// CenterX returns the x coordinate of the sector center.
func (s *Sector) CenterX() float64 { return s.X + s.Width/2 }

// CenterY returns the y coordinate of the sector center.
func (s *Sector) CenterY() float64 { return s.Y + s.Height/2 }

// Wormhole is an undirected edge between two stars, with the Euclidean
// distance between them at creation time.
type Wormhole struct {
	StarA    int     `json:"star_a_id"`
	StarB    int     `json:"star_b_id"`
	Distance float64 `json:"distance"`
}

// PlayerStart is a suggested player starting location: one star in one corner
// sector of the map.
type PlayerStart struct {
	SectorRow int `json:"sector_row"`
	SectorCol int `json:"sector_col"`
	StarID    int `json:"star_id"`
}
