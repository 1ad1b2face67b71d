package galaxy

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// resourceFrequency scales world coordinates into noise space. Low enough
// that nearby stars get correlated resource values, forming rich and poor
// regions rather than pure per-star noise.
const resourceFrequency = 0.004

// resourceField derives each star's natural resource value (0-100) from
// seeded simplex noise sampled at the star position. The field consumes no
// draws from the shared random source, so it cannot perturb placement.
type resourceField struct {
	noise opensimplex.Noise
}

func newResourceField(seed int64) *resourceField {
	return &resourceField{noise: opensimplex.NewNormalized(seed)}
}

func (f *resourceField) valueAt(x, y float64) int {
	v := f.noise.Eval2(x*resourceFrequency, y*resourceFrequency)
	value := int(v * 100)
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	return value
}
