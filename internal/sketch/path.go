// Package sketch synthesizes hand-drawn-looking vector paths for the
// annotation overlay: a closed squircle loop, a wavy underline, and a
// roughened highlight rectangle. All jitter is driven by a pure hash of
// (seed, offset), so the same span always yields the same squiggle.
package sketch

import "math"

// Point is a 2D point in output-space pixels.
type Point struct {
	X, Y float64
}

// Path is a sampled polyline intended to be rendered as quadratic
// Bézier segments through successive midpoints. ArcLength is the
// polyline length scaled up to compensate for the curve running
// slightly longer than its chords.
type Path struct {
	Points    []Point
	ArcLength float64
}

// arcCompensation corrects the straight-segment length estimate for
// quadratic curves: the curve is longer than its chords.
const arcCompensation = 1.1

// measure accumulates straight-line segment lengths and applies the
// curve compensation factor.
func measure(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}
	total := 0.0
	for i := 1; i < len(points); i++ {
		dx := points[i].X - points[i-1].X
		dy := points[i].Y - points[i-1].Y
		total += math.Hypot(dx, dy)
	}
	return total * arcCompensation
}

// Rect is an axis-aligned rectangle in output-space pixels.
type Rect struct {
	X, Y, W, H float64
}

// Right returns the right edge.
func (r Rect) Right() float64 { return r.X + r.W }
