// Package camera composes the per-frame 2D/3D transform that wraps the
// whole visual stack: enter and exit transitions, the ambient camera
// movement, and the zoom-to-region transform. Compose is a pure
// function of (frame, duration, config) with no retained state.
package camera

import (
	"github.com/ivlev/wordmark/internal/config"
	"github.com/ivlev/wordmark/internal/reveal"
)

// Transform is the combined per-frame transform. Blur is in pixels,
// translate in output pixels, rotation in degrees, opacity and scale
// are unitless.
type Transform struct {
	Blur       float64
	TranslateX float64
	TranslateY float64
	Opacity    float64
	RotateX    float64
	RotateY    float64
	Scale      float64
}

const (
	// slideTravel is how far a sliding frame moves off screen.
	slideTravel = 150.0

	// edgeBlurMax is the blur radius at the far end of a blur
	// transition.
	edgeBlurMax = 20.0

	// panTiltDegrees is the rotation applied on the axis opposing a
	// pan direction.
	panTiltDegrees = 7.5

	panZoomScale  = 1.05
	fullZoomScale = 1.15
)

// Compose computes the transform for one frame of a clip that is
// durationInFrames long. The enter window covers roughly the first
// second, the exit window the last, and the camera movement spans the
// whole clip. Enter and exit blur/translate sum; opacity is the
// minimum of the two; both are identity outside their windows, so the
// summation never double-applies.
func Compose(frame, durationInFrames int, req *config.Request) Transform {
	fps := req.FrameRate
	t := Transform{Opacity: 1, Scale: 1}

	enter := enterTransform(frame, fps, req.EnterAnimation)
	exit := exitTransform(frame, durationInFrames, fps, req.ExitAnimation)

	t.Blur = enter.Blur + exit.Blur
	t.TranslateX = enter.TranslateX + exit.TranslateX
	t.TranslateY = enter.TranslateY + exit.TranslateY
	t.Opacity = min(enter.Opacity, exit.Opacity)

	applyMovement(&t, frame, durationInFrames, req.CameraMovement)
	return t
}

// enterTransform covers the first fps frames (one second), eased
// out-cubic so the motion decelerates into rest.
func enterTransform(frame, fps int, kind config.EdgeAnimation) Transform {
	t := Transform{Opacity: 1}
	if kind == config.EdgeNone {
		return t
	}

	p := reveal.EaseOutCubic(reveal.Progress(frame, 0, fps))
	if p >= 1 {
		return t
	}
	remain := 1 - p

	switch kind {
	case config.EdgeBlur:
		t.Blur = edgeBlurMax * remain
		t.Opacity = p
	case config.EdgeSlideTop:
		t.TranslateY = -slideTravel * remain
		t.Opacity = p
	case config.EdgeSlideBottom:
		t.TranslateY = slideTravel * remain
		t.Opacity = p
	case config.EdgeSlideLeft:
		t.TranslateX = -slideTravel * remain
		t.Opacity = p
	case config.EdgeSlideRight:
		t.TranslateX = slideTravel * remain
		t.Opacity = p
	}
	return t
}

// exitTransform mirrors the enter: the last fps frames, eased in-cubic.
// Slide exits finish half a second before clip end; the timeline adds
// that buffer so the frame is fully gone before the cut.
func exitTransform(frame, durationInFrames, fps int, kind config.EdgeAnimation) Transform {
	t := Transform{Opacity: 1}
	if kind == config.EdgeNone {
		return t
	}

	end := durationInFrames
	if kind.IsSlide() {
		end -= fps / 2
	}
	start := end - fps
	if start < 0 {
		start = 0
	}

	p := reveal.EaseInCubic(reveal.Progress(frame, start, end-start))
	if p <= 0 {
		return t
	}

	switch kind {
	case config.EdgeBlur:
		t.Blur = edgeBlurMax * p
		t.Opacity = 1 - p
	case config.EdgeSlideTop:
		t.TranslateY = -slideTravel * p
		t.Opacity = 1 - p
	case config.EdgeSlideBottom:
		t.TranslateY = slideTravel * p
		t.Opacity = 1 - p
	case config.EdgeSlideLeft:
		t.TranslateX = -slideTravel * p
		t.Opacity = 1 - p
	case config.EdgeSlideRight:
		t.TranslateX = slideTravel * p
		t.Opacity = 1 - p
	}
	return t
}

// applyMovement interpolates the ambient camera motion linearly from
// clip start to clip end. Pans tilt the opposing axis and carry a slow
// zoom; the dedicated zoom modes push further.
func applyMovement(t *Transform, frame, durationInFrames int, movement config.CameraMovement) {
	if movement == config.CameraNone || durationInFrames <= 1 {
		return
	}
	p := reveal.Clamp01(float64(frame) / float64(durationInFrames-1))

	switch movement {
	case config.CameraLeftRight:
		t.RotateY = reveal.Lerp(-panTiltDegrees, panTiltDegrees, p)
		t.Scale *= reveal.Lerp(1, panZoomScale, p)
	case config.CameraRightLeft:
		t.RotateY = reveal.Lerp(panTiltDegrees, -panTiltDegrees, p)
		t.Scale *= reveal.Lerp(1, panZoomScale, p)
	case config.CameraUpDown:
		t.RotateX = reveal.Lerp(panTiltDegrees, -panTiltDegrees, p)
		t.Scale *= reveal.Lerp(1, panZoomScale, p)
	case config.CameraDownUp:
		t.RotateX = reveal.Lerp(-panTiltDegrees, panTiltDegrees, p)
		t.Scale *= reveal.Lerp(1, panZoomScale, p)
	case config.CameraZoomIn:
		t.Scale *= reveal.Lerp(1, fullZoomScale, p)
	case config.CameraZoomOut:
		t.Scale *= reveal.Lerp(fullZoomScale, 1, p)
	}
}
