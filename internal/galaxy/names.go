package galaxy

import (
	"fmt"

	"starmap-server/internal/rng"
)

// Star name fragments. Names are assembled from the shared seeded source, so
// the same seed always yields the same names in the same order.
var (
	nameRoots = []string{
		"Altair", "Vega", "Sirius", "Arcturus", "Capella", "Rigel", "Procyon",
		"Deneb", "Antares", "Pollux", "Castor", "Mirach", "Alcyone", "Electra",
		"Naos", "Sargas", "Thuban", "Izar", "Nashira", "Kaus", "Meissa",
		"Sadr", "Atria", "Alnair", "Diphda", "Hamal", "Ankaa", "Acrux",
	}
	nameDesignations = []string{
		"", "", "", "Prime", "Alpha", "Beta", "Gamma", "Major", "Minor",
		"Core", "Outer", "Secundus",
	}
)

// nameGenerator produces deterministic, unique star names. Collisions on the
// base name are disambiguated with a numeric designation instead of consuming
// extra draws.
type nameGenerator struct {
	used map[string]int
}

func newNameGenerator() *nameGenerator {
	return &nameGenerator{used: make(map[string]int)}
}

func (g *nameGenerator) next(r *rng.Source) string {
	root := rng.PickOne(r, nameRoots)
	designation := rng.PickOne(r, nameDesignations)

	name := root
	if designation != "" {
		name = root + " " + designation
	}

	g.used[name]++
	if n := g.used[name]; n > 1 {
		name = fmt.Sprintf("%s %d", name, n)
	}
	return name
}
