package camera

import (
	"github.com/ivlev/wordmark/internal/config"
	"github.com/ivlev/wordmark/internal/reveal"
)

// minZoomWidth is the smallest normalized width a zoom box may clamp
// down to. Shrinking below this would zoom past anything readable, so
// the box is enlarged instead of the zoom being skipped.
const minZoomWidth = 0.05

// LockAspect adjusts a user-drawn zoom box so its pixel aspect matches
// the output video's aspect, then clamps it back inside the image.
// The user's drawn width wins; the height is derived:
//
//	height = width × (imageW/imageH) / (outputW/outputH)
//
// If clamping collapses the box under the minimum width it is enlarged,
// never silently dropped.
func LockAspect(box config.ZoomBox, imageW, imageH, outputW, outputH int) config.ZoomBox {
	if imageW <= 0 || imageH <= 0 || outputW <= 0 || outputH <= 0 {
		return box
	}
	imageAspect := float64(imageW) / float64(imageH)
	outputAspect := float64(outputW) / float64(outputH)
	ratio := imageAspect / outputAspect

	locked := box
	locked.Height = locked.Width * ratio

	if locked.Height > 1 {
		locked.Height = 1
		locked.Width = locked.Height / ratio
	}
	if locked.Width > 1 {
		locked.Width = 1
		locked.Height = locked.Width * ratio
		if locked.Height > 1 {
			locked.Height = 1
		}
	}

	if locked.Width < minZoomWidth {
		locked.Width = minZoomWidth
		locked.Height = locked.Width * ratio
		if locked.Height > 1 {
			locked.Height = 1
		}
	}

	// Keep the box inside the image, preserving its size.
	if locked.X+locked.Width > 1 {
		locked.X = 1 - locked.Width
	}
	if locked.Y+locked.Height > 1 {
		locked.Y = 1 - locked.Height
	}
	if locked.X < 0 {
		locked.X = 0
	}
	if locked.Y < 0 {
		locked.Y = 0
	}

	return locked
}

// ZoomState is the interpolated zoom-to-region transform at one frame:
// scale grows from 1 to 1/box.Width, and the translation moves the
// box center toward the frame center. Offsets are in normalized image
// units; the renderer multiplies by the content size.
type ZoomState struct {
	Scale   float64
	CenterX float64
	CenterY float64
}

// Zoom interpolates toward the locked box by eased progress p in [0,1].
func Zoom(box config.ZoomBox, p float64) ZoomState {
	p = reveal.Clamp01(p)

	targetScale := 1.0
	if box.Width > 0 {
		targetScale = 1 / box.Width
	}

	boxCX := box.X + box.Width/2
	boxCY := box.Y + box.Height/2

	return ZoomState{
		Scale:   reveal.Lerp(1, targetScale, p),
		CenterX: reveal.Lerp(0.5, boxCX, p),
		CenterY: reveal.Lerp(0.5, boxCY, p),
	}
}
