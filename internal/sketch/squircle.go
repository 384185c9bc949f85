package sketch

import (
	"math"

	"github.com/ivlev/wordmark/internal/layout"
)

const (
	// squircleExponent sits between an ellipse (2) and a rounded
	// rectangle: the loop hugs a text span better than a pure ellipse.
	squircleExponent = 3.5

	// squircleSamples is the number of angular steps around the loop.
	squircleSamples = 32

	// The stroke starts a little past twelve o'clock and sweeps just
	// over a full turn so it visibly overlaps its own start, the way a
	// hand-drawn circle closes.
	squircleStartOffset = 0.15
	squircleTurns       = 1.08

	// Jitter amplitude as a fraction of the relevant half-axis.
	squircleJitter = 0.025

	// Low-frequency wobble keeps the loop from reading as machine-made.
	squircleWaveFreq = 2.0
	squircleWaveAmp  = 0.015
)

// Squircle returns the closed hand-drawn loop around a span. The seed
// is the 1-based span index, so every span keeps its own stable shape
// across frames and renders.
func Squircle(span layout.Span, seed int) Path {
	cx := (span.Left + span.Right) / 2
	cy := (span.Top + span.Bottom) / 2

	// Half-axes padded past the text so the ink clears the glyphs.
	a := span.Width()/2 + span.Height()*0.35
	b := span.Height()/2 + span.Height()*0.4

	start := -math.Pi/2 + squircleStartOffset
	sweep := 2 * math.Pi * squircleTurns
	power := 2.0 / squircleExponent

	points := make([]Point, 0, squircleSamples+1)
	for i := 0; i <= squircleSamples; i++ {
		theta := start + sweep*float64(i)/float64(squircleSamples)

		cos, sin := math.Cos(theta), math.Sin(theta)
		x := cx + a*signedPow(cos, power)
		y := cy + b*signedPow(sin, power)

		x += a * squircleWaveAmp * math.Sin(theta*squircleWaveFreq+float64(seed))
		y += b * squircleWaveAmp * math.Cos(theta*squircleWaveFreq+float64(seed))

		x += a * squircleJitter * JitterSigned(seed, float64(i)*12.9898)
		y += b * squircleJitter * JitterSigned(seed, float64(i)*78.233+31.7)

		points = append(points, Point{X: x, Y: y})
	}

	return Path{Points: points, ArcLength: measure(points)}
}

// signedPow raises |v| to the exponent and keeps the sign, the
// parametric superellipse form.
func signedPow(v, exp float64) float64 {
	if v == 0 {
		return 0
	}
	return math.Copysign(math.Pow(math.Abs(v), exp), v)
}
