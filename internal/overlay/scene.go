// Package overlay rasterizes one frame of an annotated clip: the base
// image under the camera transform, the time-varying annotation
// geometry on top, and the output-space passes (VCR, lower third).
//
// A Scene is built once per render and then read-only; RenderFrame is a
// pure function of the frame number, so the engine may evaluate frames
// in any order across workers.
package overlay

import (
	"fmt"
	"image"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gg/text"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/ivlev/wordmark/internal/analyzer"
	"github.com/ivlev/wordmark/internal/camera"
	"github.com/ivlev/wordmark/internal/config"
	"github.com/ivlev/wordmark/internal/layout"
	"github.com/ivlev/wordmark/internal/sketch"
	"github.com/ivlev/wordmark/internal/timing"
)

// Options are host-side knobs that are not part of the render request.
type Options struct {
	// FontPath points at a TTF for the lower third. Empty falls back
	// to a built-in bitmap face.
	FontPath string
}

// Scene holds everything precomputed for a render: clustered spans,
// synthesized paths, the color policy and the fitted base image. All
// geometry is in output-frame pixels.
type Scene struct {
	Req      *config.Request
	Timeline timing.Timeline
	Policy   analyzer.Policy

	// Base image fitted into the output frame.
	fitted   image.Image
	fittedX  float64
	fittedY  float64
	imgScale float64

	spans          []layout.Span
	highlightRects []sketch.Rect
	roughRects     []sketch.Path
	loops          []sketch.Path
	underlines     []sketch.Path
	unblurRects    []sketch.Rect

	zoomBox config.ZoomBox
	hasZoom bool

	face    text.Face
	qrImage image.Image

	// Blur results are cached per quantized radius; unblur and the
	// enter/exit windows revisit the same radii across frames.
	blurMu    sync.Mutex
	blurCache map[int]image.Image
}

// NewScene prepares a render. The image must already be the source the
// request's word boxes were measured on.
func NewScene(req *config.Request, img image.Image, opts Options) (*Scene, error) {
	if req.ImageWidth == 0 || req.ImageHeight == 0 {
		b := img.Bounds()
		req.ImageWidth = b.Dx()
		req.ImageHeight = b.Dy()
	}
	if req.ImageWidth != img.Bounds().Dx() || req.ImageHeight != img.Bounds().Dy() {
		return nil, fmt.Errorf("request image size %dx%d does not match supplied image %dx%d",
			req.ImageWidth, req.ImageHeight, img.Bounds().Dx(), img.Bounds().Dy())
	}

	tl := timing.Resolve(req)

	s := &Scene{
		Req:       req,
		Timeline:  tl,
		Policy:    analyzer.Classify(req.BackgroundColor),
		blurCache: make(map[int]image.Image),
	}

	s.fitImage(img)
	s.buildGeometry()

	if req.ZoomBox != nil && req.MarkingMode == config.ModeZoom {
		s.zoomBox = camera.LockAspect(*req.ZoomBox, req.ImageWidth, req.ImageHeight, tl.Width, tl.Height)
		s.hasZoom = true
	}

	if opts.FontPath != "" {
		src, err := text.NewFontSourceFromFile(opts.FontPath)
		if err != nil {
			return nil, fmt.Errorf("load font: %w", err)
		}
		s.face = src.Face(float64(tl.Height) * 0.022)
	}

	if req.AttributionURL != "" {
		qr, err := qrcode.New(req.AttributionURL, qrcode.Medium)
		if err != nil {
			return nil, fmt.Errorf("attribution qr: %w", err)
		}
		qr.DisableBorder = true
		s.qrImage = qr.Image(int(float64(tl.Height) * 0.06))
	}

	return s, nil
}

// fitImage scales the source into the output frame, preserving aspect
// ratio and centering.
func (s *Scene) fitImage(img image.Image) {
	tl := s.Timeline
	b := img.Bounds()
	scale := min(float64(tl.Width)/float64(b.Dx()), float64(tl.Height)/float64(b.Dy()))

	w := int(float64(b.Dx()) * scale)
	h := int(float64(b.Dy()) * scale)
	s.fitted = imaging.Resize(img, w, h, imaging.Lanczos)
	s.fittedX = float64(tl.Width-w) / 2
	s.fittedY = float64(tl.Height-h) / 2
	s.imgScale = scale
}

// buildGeometry clusters the selection and synthesizes every path once.
// Seeds are the 1-based span index, so span shapes survive re-renders.
func (s *Scene) buildGeometry() {
	spans := layout.Cluster(s.Req.SelectedWords)

	// Map spans from image space into output space.
	mapped := make([]layout.Span, 0, len(spans))
	for _, sp := range spans {
		mapped = append(mapped, layout.Span{
			Left:   sp.Left*s.imgScale + s.fittedX,
			Top:    sp.Top*s.imgScale + s.fittedY,
			Right:  sp.Right*s.imgScale + s.fittedX,
			Bottom: sp.Bottom*s.imgScale + s.fittedY,
		})
	}
	s.spans = mapped

	switch s.Req.MarkingMode {
	case config.ModeHighlight:
		s.highlightRects = sketch.HighlightRects(mapped)
		for i, r := range s.highlightRects {
			s.roughRects = append(s.roughRects, sketch.RoughRect(r, i+1))
		}
	case config.ModeCircle:
		for i, sp := range mapped {
			s.loops = append(s.loops, sketch.Squircle(sp, i+1))
		}
	case config.ModeUnderline:
		for i, sp := range mapped {
			s.underlines = append(s.underlines, sketch.Underline(sp, i+1))
		}
	case config.ModeUnblur:
		for _, sp := range mapped {
			s.unblurRects = append(s.unblurRects, unblurRect(sp))
		}
	}
}

// unblurRect pads a span for the reveal mask: 12% of span height
// horizontally and 8% vertically, with the horizontal pad capped at
// 15% of span width so short words do not balloon.
func unblurRect(sp layout.Span) sketch.Rect {
	padX := sp.Height() * 0.12
	if maxPad := sp.Width() * 0.15; padX > maxPad {
		padX = maxPad
	}
	padY := sp.Height() * 0.08
	return sketch.Rect{
		X: sp.Left - padX,
		Y: sp.Top - padY,
		W: sp.Width() + 2*padX,
		H: sp.Height() + 2*padY,
	}
}

// blurredBase returns the fitted image blurred by radius, cached per
// half-pixel step.
func (s *Scene) blurredBase(radius float64) image.Image {
	key := int(radius * 2)
	if key <= 0 {
		return s.fitted
	}

	s.blurMu.Lock()
	defer s.blurMu.Unlock()
	if img, ok := s.blurCache[key]; ok {
		return img
	}
	img := imaging.Blur(s.fitted, float64(key)/2)
	s.blurCache[key] = img
	return img
}

// Spans exposes the clustered, output-space spans (for tests and
// callers that report selection statistics).
func (s *Scene) Spans() []layout.Span {
	return s.spans
}
