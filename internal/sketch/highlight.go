package sketch

import "github.com/ivlev/wordmark/internal/layout"

// Padding fractions of span height, so a marker stroke scales with the
// text size instead of a fixed pixel border.
const (
	highlightPadXFraction = 0.25
	highlightPadYFraction = 0.15
)

// HighlightRect returns the padded rectangle a marker stroke covers for
// one span.
func HighlightRect(span layout.Span) Rect {
	padX := span.Height() * highlightPadXFraction
	padY := span.Height() * highlightPadYFraction
	return Rect{
		X: span.Left - padX,
		Y: span.Top - padY,
		W: span.Width() + 2*padX,
		H: span.Height() + 2*padY,
	}
}

// HighlightRects pads every span; the highlight sweep distributes its
// travel across these widths.
func HighlightRects(spans []layout.Span) []Rect {
	rects := make([]Rect, len(spans))
	for i, s := range spans {
		rects[i] = HighlightRect(s)
	}
	return rects
}

// RoughRect returns a slightly bowed outline for a highlight rectangle.
// Edge midpoints bow outward or inward by a seeded fraction of the
// rectangle height, mimicking a marker's uneven pressure.
func RoughRect(r Rect, seed int) Path {
	bow := func(offset float64) float64 {
		return JitterSigned(seed, offset) * r.H * 0.06
	}

	// Corners get small jitter, edges get a bowed midpoint, so the
	// midpoint-smoothed curve renders each edge with a gentle arc.
	corner := func(x, y float64, offset float64) Point {
		return Point{
			X: x + JitterSigned(seed, offset)*r.H*0.04,
			Y: y + JitterSigned(seed, offset+57.7)*r.H*0.04,
		}
	}

	points := []Point{
		corner(r.X, r.Y, 1),
		{X: r.X + r.W/2, Y: r.Y + bow(2)},
		corner(r.X+r.W, r.Y, 3),
		{X: r.X + r.W, Y: r.Y + r.H/2 + bow(4)},
		corner(r.X+r.W, r.Y+r.H, 5),
		{X: r.X + r.W/2, Y: r.Y + r.H + bow(6)},
		corner(r.X, r.Y+r.H, 7),
		{X: r.X + bow(8), Y: r.Y + r.H/2},
	}
	points = append(points, points[0])

	return Path{Points: points, ArcLength: measure(points)}
}
