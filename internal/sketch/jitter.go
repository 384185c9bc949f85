package sketch

import "math"

// Hash constants chosen large and unrelated so nearby (seed, offset)
// pairs decorrelate. Not cryptographic; purely for visual
// reproducibility.
const (
	hashSeedScale = 127.1
	hashMagnitude = 43758.5453123
)

// Jitter maps (seed, offset) to a deterministic value in [0, 1).
// It replaces a stateful RNG so frames can be evaluated in any order,
// or in parallel, and still agree on every squiggle.
func Jitter(seed int, offset float64) float64 {
	v := math.Sin(float64(seed)*hashSeedScale+offset) * hashMagnitude
	return v - math.Floor(v)
}

// JitterSigned maps (seed, offset) to [-1, 1).
func JitterSigned(seed int, offset float64) float64 {
	return Jitter(seed, offset)*2 - 1
}
