package overlay

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gg"

	"github.com/ivlev/wordmark/internal/analyzer"
	"github.com/ivlev/wordmark/internal/camera"
	"github.com/ivlev/wordmark/internal/config"
	"github.com/ivlev/wordmark/internal/reveal"
	"github.com/ivlev/wordmark/internal/sketch"
)

const (
	highlightOpacity = 0.85
	highlightSoften  = 1.5
	strokeMinWidth   = 3.0
)

// RenderFrame rasterizes a single frame. It is safe for concurrent use
// from multiple workers.
func (s *Scene) RenderFrame(frame int) (*image.RGBA, error) {
	tl := s.Timeline
	cam := camera.Compose(frame, tl.TotalFrames, s.Req)

	content, err := s.renderContent(frame)
	if err != nil {
		return nil, err
	}

	out := gg.NewContext(tl.Width, tl.Height)
	bg := s.Req.BackgroundColor
	out.SetRGBA(float64(bg[0])/255, float64(bg[1])/255, float64(bg[2])/255, 1)
	out.DrawRectangle(0, 0, float64(tl.Width), float64(tl.Height))
	if err := out.Fill(); err != nil {
		return nil, fmt.Errorf("fill background: %w", err)
	}

	frameImg := content
	if cam.Blur > 0 {
		frameImg = toRGBA(imaging.Blur(frameImg, cam.Blur))
	}
	if cam.RotateX != 0 || cam.RotateY != 0 {
		frameImg = shearImage(frameImg, cam.RotateX, cam.RotateY)
	}

	// Opacity 0 means the frame is fully off; skip the draw so the
	// background shows through clean.
	if cam.Opacity > 0 {
		cx := float64(tl.Width) / 2
		cy := float64(tl.Height) / 2
		out.Push()
		out.Translate(cx+cam.TranslateX, cy+cam.TranslateY)
		out.Scale(cam.Scale, cam.Scale)
		out.Translate(-cx, -cy)
		out.DrawImageEx(gg.ImageBufFromImage(frameImg), gg.DrawImageOptions{
			Opacity: cam.Opacity,
		})
		out.Pop()
	}

	result := toRGBA(out.Image())

	if s.Req.VCREffect {
		ApplyVCR(result, frame)
	}
	if err := s.drawLowerThird(result, frame); err != nil {
		return nil, err
	}
	return result, nil
}

// renderContent draws the fitted image and the annotation pass into a
// full-size transparent canvas, before any camera motion.
func (s *Scene) renderContent(frame int) (*image.RGBA, error) {
	tl := s.Timeline
	dc := gg.NewContext(tl.Width, tl.Height)

	zoomed := s.hasZoom && s.Req.MarkingMode == config.ModeZoom
	if zoomed {
		p := reveal.ZoomProgress(frame, tl.HighlightStart(), tl.HighlightFrames)
		zs := camera.Zoom(s.zoomBox, p)
		fw := float64(s.fitted.Bounds().Dx())
		fh := float64(s.fitted.Bounds().Dy())
		px := s.fittedX + zs.CenterX*fw
		py := s.fittedY + zs.CenterY*fh
		dc.Push()
		dc.Translate(float64(tl.Width)/2, float64(tl.Height)/2)
		dc.Scale(zs.Scale, zs.Scale)
		dc.Translate(-px, -py)
		defer dc.Pop()
	}

	if s.Req.MarkingMode == config.ModeUnblur {
		if err := s.renderUnblur(dc, frame); err != nil {
			return nil, err
		}
		return toRGBA(dc.Image()), nil
	}

	dc.DrawImageEx(gg.ImageBufFromImage(s.fitted), gg.DrawImageOptions{
		X: s.fittedX, Y: s.fittedY,
	})

	p := reveal.Progress(frame, tl.HighlightStart(), tl.HighlightFrames)

	switch s.Req.MarkingMode {
	case config.ModeHighlight:
		if err := s.renderHighlight(dc, p); err != nil {
			return nil, err
		}
	case config.ModeCircle:
		if err := s.renderStrokes(dc, s.loops, p, true); err != nil {
			return nil, err
		}
	case config.ModeUnderline:
		if err := s.renderStrokes(dc, s.underlines, p, false); err != nil {
			return nil, err
		}
	}

	return toRGBA(dc.Image()), nil
}

// renderHighlight sweeps a marker fill left to right across all rows
// as one continuous stroke, then composites the layer with the blend
// mode chosen for the background. The marker moves at constant speed:
// distance traveled is progress times the summed row widths, no easing.
func (s *Scene) renderHighlight(dc *gg.Context, progress float64) error {
	if len(s.highlightRects) == 0 {
		return nil
	}
	widths := make([]float64, len(s.highlightRects))
	for i, r := range s.highlightRects {
		widths[i] = r.W
	}
	visible := reveal.SweepWidths(widths, progress)

	tl := s.Timeline
	layer := gg.NewContext(tl.Width, tl.Height)
	layer.SetHexColor(s.Req.HighlightColor)
	for i, r := range s.highlightRects {
		if visible[i] <= 0 {
			continue
		}
		layer.ClipRect(r.X, r.Y, visible[i], r.H)
		pathTo(layer, s.roughRects[i])
		if err := layer.Fill(); err != nil {
			return fmt.Errorf("fill highlight: %w", err)
		}
		layer.ResetClip()
	}

	soft := imaging.Blur(toRGBA(layer.Image()), highlightSoften)
	blend := gg.BlendMultiply
	if s.Policy.Blend == analyzer.BlendScreen {
		blend = gg.BlendScreen
	}
	dc.DrawImageEx(gg.ImageBufFromImage(soft), gg.DrawImageOptions{
		Opacity:   highlightOpacity,
		BlendMode: blend,
	})
	return nil
}

// renderStrokes reveals each path with the dash trick: a single dash
// the length of the drawn portion followed by a gap longer than the
// whole path. Spans animate in sequence through per-span windows.
func (s *Scene) renderStrokes(dc *gg.Context, paths []sketch.Path, progress float64, closed bool) error {
	dc.SetHexColor(s.Req.HighlightColor)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	for i, path := range paths {
		wp := reveal.WindowProgress(i, len(paths), progress)
		if wp <= 0 {
			continue
		}
		h := s.spans[i].Height()
		dc.SetLineWidth(math.Max(strokeMinWidth, h*0.08))

		if wp < 1 {
			dc.SetDash(path.ArcLength*wp, path.ArcLength+1)
		}
		pathTo(dc, path)
		if closed && wp >= 1 {
			dc.ClosePath()
		}
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("stroke annotation: %w", err)
		}
		dc.ClearDash()
	}
	return nil
}

// renderUnblur starts from a fully blurred base and fades the sharp
// layer in, shrinking the residual blur in lockstep with opacity. One
// global progress drives every span region: they all sharpen together.
func (s *Scene) renderUnblur(dc *gg.Context, frame int) error {
	tl := s.Timeline
	blurred := s.blurredBase(reveal.MaxUnblurRadius)
	dc.DrawImageEx(gg.ImageBufFromImage(blurred), gg.DrawImageOptions{
		X: s.fittedX, Y: s.fittedY,
	})

	p := reveal.Progress(frame, tl.HighlightStart(), tl.HighlightFrames)
	opacity, radius := reveal.Unblur(p)
	if opacity <= 0 {
		return nil
	}
	sharp := s.blurredBase(radius)
	fb := s.fitted.Bounds()

	for _, r := range s.unblurRects {
		// Region in fitted-image coordinates.
		src := image.Rect(
			int(r.X-s.fittedX), int(r.Y-s.fittedY),
			int(r.Right()-s.fittedX), int(r.Y-s.fittedY+r.H),
		).Intersect(fb)
		if src.Empty() {
			continue
		}
		dc.DrawImageEx(gg.ImageBufFromImage(sharp), gg.DrawImageOptions{
			X:       float64(src.Min.X) + s.fittedX,
			Y:       float64(src.Min.Y) + s.fittedY,
			SrcRect: &src,
			Opacity: opacity,
		})
	}
	return nil
}

// shearImage approximates the small-angle camera tilt by shifting rows
// (yaw) and columns (pitch) proportionally to their distance from the
// center. Vacated pixels stay transparent.
func shearImage(src *image.RGBA, rotXDeg, rotYDeg float64) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewRGBA(image.Rect(0, 0, w, h))

	shearX := math.Tan(rotYDeg * math.Pi / 180)
	shearY := math.Tan(rotXDeg * math.Pi / 180)
	cx := float64(w) / 2
	cy := float64(h) / 2

	for y := 0; y < h; y++ {
		dx := int(shearX * (float64(y) - cy))
		for x := 0; x < w; x++ {
			sx := x - dx
			sy := y - int(shearY*(float64(x)-cx))
			if sx < 0 || sx >= w || sy < 0 || sy >= h {
				continue
			}
			si := sy*src.Stride + sx*4
			di := y*out.Stride + x*4
			copy(out.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
	return out
}

func pathTo(dc *gg.Context, p sketch.Path) {
	pts := p.Points
	if len(pts) < 2 {
		return
	}
	// Midpoint quadratics keep the hand-drawn wobble smooth.
	dc.MoveTo(pts[0].X, pts[0].Y)
	for i := 1; i < len(pts)-1; i++ {
		mx := (pts[i].X + pts[i+1].X) / 2
		my := (pts[i].Y + pts[i+1].Y) / 2
		dc.QuadraticTo(pts[i].X, pts[i].Y, mx, my)
	}
	last := pts[len(pts)-1]
	dc.LineTo(last.X, last.Y)
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
