package pointer

import "math/rand"

// Jitter returns an offset with each component drawn uniformly from the
// closed interval [-radius, radius].
func Jitter(rng *rand.Rand, radius int) (dx, dy int) {
	if radius <= 0 || rng == nil {
		return 0, 0
	}
	span := 2*radius + 1
	return rng.Intn(span) - radius, rng.Intn(span) - radius
}
