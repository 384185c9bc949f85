package overlay

import (
	"image"

	"github.com/ivlev/wordmark/internal/sketch"
)

const (
	scanlineDarken   = 0.82 // luminance kept on odd rows
	scanlineDesat    = 0.9  // chroma kept on odd rows
	jitterBandCount  = 3
	jitterBandHeight = 4
	jitterMaxShift   = 6
	vignetteStrength = 0.25
)

// ApplyVCR runs the tape-playback pass over a finished frame in place:
// scanline darkening with mild desaturation, a few horizontally
// displaced bands, and a corner vignette. Everything is seeded by the
// frame index, so out-of-order workers produce identical pixels.
func ApplyVCR(img *image.RGBA, frame int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}

	applyScanlines(img, w, h)
	applyJitterBands(img, w, h, frame)
	applyVignette(img, w, h)
}

func applyScanlines(img *image.RGBA, w, h int) {
	for y := 1; y < h; y += 2 {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < w*4; x += 4 {
			r := float64(row[x])
			g := float64(row[x+1])
			bl := float64(row[x+2])
			// Pull toward gray before darkening so the line reads as
			// tape, not just shadow.
			gray := (r + g + bl) / 3
			r = gray + (r-gray)*scanlineDesat
			g = gray + (g-gray)*scanlineDesat
			bl = gray + (bl-gray)*scanlineDesat
			row[x] = uint8(r * scanlineDarken)
			row[x+1] = uint8(g * scanlineDarken)
			row[x+2] = uint8(bl * scanlineDarken)
		}
	}
}

// applyJitterBands shifts a few thin horizontal bands sideways. Band
// positions and shifts come from the frame-seeded hash, never from a
// random source.
func applyJitterBands(img *image.RGBA, w, h, frame int) {
	for band := 0; band < jitterBandCount; band++ {
		y0 := int(sketch.Jitter(frame+1, float64(band)*3.7) * float64(h-jitterBandHeight))
		shift := int(sketch.JitterSigned(frame+1, float64(band)*9.1+1.3) * jitterMaxShift)
		if shift == 0 {
			continue
		}
		for y := y0; y < y0+jitterBandHeight && y < h; y++ {
			shiftRow(img, y, w, shift)
		}
	}
}

func shiftRow(img *image.RGBA, y, w, shift int) {
	row := img.Pix[y*img.Stride : y*img.Stride+w*4]
	tmp := make([]byte, len(row))
	copy(tmp, row)
	for x := 0; x < w; x++ {
		src := x - shift
		if src < 0 {
			src = 0
		} else if src >= w {
			src = w - 1
		}
		copy(row[x*4:x*4+4], tmp[src*4:src*4+4])
	}
}

// applyVignette darkens toward the corners with a quadratic falloff.
func applyVignette(img *image.RGBA, w, h int) {
	cx := float64(w) / 2
	cy := float64(h) / 2
	maxDist2 := cx*cx + cy*cy
	for y := 0; y < h; y++ {
		dy := float64(y) - cy
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < w; x++ {
			dx := float64(x) - cx
			factor := 1 - vignetteStrength*(dx*dx+dy*dy)/maxDist2
			i := x * 4
			row[i] = uint8(float64(row[i]) * factor)
			row[i+1] = uint8(float64(row[i+1]) * factor)
			row[i+2] = uint8(float64(row[i+2]) * factor)
		}
	}
}
