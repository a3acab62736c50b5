package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Soup returns the live cells of a w*h box anchored at origin where each cell
// is alive with the given probability.
func (r *RNG) Soup(origin Point, w, h int, density float64) []Point {
	var points []Point
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if r.r.Float64() < density {
				points = append(points, origin.Add(Point{X: int64(x), Y: int64(y)}))
			}
		}
	}
	return points
}
