package dodge

import "math/rand"

// RandomSource produces uniform integers in an inclusive range.
type RandomSource interface {
	IntRange(min, max int) int
}

// seededSource is the default RandomSource, backed by a seeded generator.
type seededSource struct {
	rng *rand.Rand
}

// NewSeededSource returns a RandomSource seeded with seed.
func NewSeededSource(seed int64) RandomSource {
	return &seededSource{rng: rand.New(rand.NewSource(seed))}
}

// IntRange returns a value in [min, max]. A reversed range collapses to min.
func (s *seededSource) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.rng.Intn(max-min+1)
}
