package sketch

import (
	"math"

	"github.com/ivlev/wordmark/internal/layout"
)

const (
	// One sample roughly every 20px, never fewer than 8, keeps short
	// and long underlines equally organic.
	underlineSampleSpacing = 20.0
	underlineMinSamples    = 8

	// The pen droops toward the middle of the stroke and carries a
	// faster secondary wave on top.
	underlineBulgeFraction = 0.08
	underlineWaveFraction  = 0.025
	underlineWaveCycles    = 4.0

	underlineJitterFraction = 0.02
)

// Underline returns a wavy line under a span: a straight segment with a
// sinusoidal mid-bulge, a smaller secondary wave, and per-sample jitter
// in both axes. Seeded by the 1-based span index.
func Underline(span layout.Span, seed int) Path {
	h := span.Height()
	y := span.Bottom + h*0.2
	startX := span.Left - h*0.1
	endX := span.Right + h*0.1

	length := endX - startX
	samples := int(length / underlineSampleSpacing)
	if samples < underlineMinSamples {
		samples = underlineMinSamples
	}

	points := make([]Point, 0, samples+1)
	for i := 0; i <= samples; i++ {
		t := float64(i) / float64(samples)
		x := startX + length*t

		// Peak droop at the midpoint.
		bulge := math.Sin(t*math.Pi) * h * underlineBulgeFraction
		wave := math.Sin(t*math.Pi*underlineWaveCycles+float64(seed)) * h * underlineWaveFraction

		jx := JitterSigned(seed, float64(i)*12.9898) * h * underlineJitterFraction
		jy := JitterSigned(seed, float64(i)*78.233+17.3) * h * underlineJitterFraction

		points = append(points, Point{X: x + jx, Y: y + bulge + wave + jy})
	}

	return Path{Points: points, ArcLength: measure(points)}
}
