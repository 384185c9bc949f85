// Package analyzer classifies the source image's background so the
// overlay picks ink and blend modes that read correctly against it.
package analyzer

// Luminance computes Rec.601 luma for an RGB triple, normalized to
// [0,1].
func Luminance(r, g, b uint8) float64 {
	return (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255.0
}

// IsDark reports whether a background color counts as dark. The
// boundary sits at exactly 0.5, strictly less-than: mid gray
// (128,128,128) lands at 0.502 and classifies as light.
func IsDark(c [3]uint8) bool {
	return Luminance(c[0], c[1], c[2]) < 0.5
}

// BlendMode names the compositing mode the highlight layer should use.
type BlendMode string

const (
	// BlendScreen drops black to transparent: marker ink over dark
	// backgrounds.
	BlendScreen BlendMode = "screen"

	// BlendMultiply drops white to transparent: marker ink over light
	// backgrounds.
	BlendMultiply BlendMode = "multiply"
)

// HighlightBlend picks the highlight layer's compositing mode for a
// background classification.
func HighlightBlend(isDark bool) BlendMode {
	if isDark {
		return BlendScreen
	}
	return BlendMultiply
}

// Curated annotation palettes. Light backgrounds take saturated marker
// tones; dark backgrounds take brighter inks that survive the screen
// blend.
var (
	lightPalette = []string{
		"#ffd532", // marker yellow
		"#ff8a3d",
		"#ff5d5d",
		"#4dc36b",
		"#3d9bff",
		"#c264ff",
	}
	darkPalette = []string{
		"#ffe34d",
		"#ffa94d",
		"#ff7a7a",
		"#6fe08a",
		"#6cb8ff",
		"#d48aff",
	}
)

// Palette returns the curated color list offered for a background
// classification. Callers must not mutate the returned slice.
func Palette(isDark bool) []string {
	if isDark {
		return darkPalette
	}
	return lightPalette
}

// Policy bundles every color decision made once per image.
type Policy struct {
	Background [3]uint8
	Dark       bool
	Blend      BlendMode
	Palette    []string
}

// Classify derives the full color policy from a sampled background.
func Classify(background [3]uint8) Policy {
	dark := IsDark(background)
	return Policy{
		Background: background,
		Dark:       dark,
		Blend:      HighlightBlend(dark),
		Palette:    Palette(dark),
	}
}
