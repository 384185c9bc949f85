package analyzer

import (
	"image"
	"image/color"
)

// bucketSize quantizes sampled colors so near-identical edge pixels
// vote together when picking the dominant background.
const bucketSize = 32

// SampleBackground estimates the dominant background color by sampling
// pixels along the image border and at the corners, bucketing them, and
// returning the center of the most common bucket. Border pixels are a
// good proxy for background in screenshots and document scans, the
// images this engine annotates.
func SampleBackground(img image.Image) [3]uint8 {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return [3]uint8{255, 255, 255}
	}

	votes := make(map[[3]uint8]int)
	vote := func(x, y int) {
		c := color.RGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.RGBA)
		key := [3]uint8{
			uint8(int(c.R)/bucketSize*bucketSize + bucketSize/2),
			uint8(int(c.G)/bucketSize*bucketSize + bucketSize/2),
			uint8(int(c.B)/bucketSize*bucketSize + bucketSize/2),
		}
		votes[key]++
	}

	// Sample the border at a stride that keeps the cost flat for large
	// images, and always include the corners.
	strideX := w / 64
	if strideX < 1 {
		strideX = 1
	}
	strideY := h / 64
	if strideY < 1 {
		strideY = 1
	}

	for x := 0; x < w; x += strideX {
		vote(x, 0)
		vote(x, h-1)
	}
	for y := 0; y < h; y += strideY {
		vote(0, y)
		vote(w-1, y)
	}
	for _, p := range [][2]int{{0, 0}, {w - 1, 0}, {0, h - 1}, {w - 1, h - 1}} {
		vote(p[0], p[1])
	}

	var best [3]uint8
	bestCount := -1
	for key, count := range votes {
		// Ties break toward the lexicographically smaller bucket so the
		// result never depends on map iteration order.
		if count > bestCount || (count == bestCount && lessRGB(key, best)) {
			best = key
			bestCount = count
		}
	}
	return best
}

func lessRGB(a, b [3]uint8) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
