package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ivlev/wordmark/internal/config"
	"github.com/ivlev/wordmark/internal/reveal"
)

// drawLowerThird composites the attribution badge in output space,
// after camera motion, so it stays put while the content moves. The
// badge slides up and fades in over its entrance window.
func (s *Scene) drawLowerThird(dst *image.RGBA, frame int) error {
	req := s.Req
	if req.AttributionText == "" && req.MarkingMode != config.ModeLowerThird {
		return nil
	}

	tl := s.Timeline
	var p float64
	if req.MarkingMode == config.ModeLowerThird {
		p = reveal.EaseOutCubic(reveal.Progress(frame, tl.HighlightStart(), tl.HighlightFrames))
	} else {
		p = reveal.EaseOutCubic(reveal.Progress(frame, 0, tl.FPS))
	}
	if p <= 0 {
		return nil
	}

	w := float64(tl.Width)
	h := float64(tl.Height)
	margin := h * 0.05
	badgeH := h * 0.085
	padX := badgeH * 0.45

	textW := s.measureAttribution(req.AttributionText)
	badgeW := textW + 2*padX
	if s.qrImage != nil {
		badgeW += badgeH // square QR cell on the right
	}
	if badgeW > w-2*margin {
		badgeW = w - 2*margin
	}

	slide := (1 - p) * badgeH * 1.5
	bx := margin
	by := h - margin - badgeH + slide

	dc := gg.NewContextForImage(dst)
	dc.PushLayer(gg.BlendNormal, p)

	dc.SetHexColor(req.AttributionBgColor)
	dc.DrawRoundedRectangle(bx, by, badgeW, badgeH, badgeH*0.25)
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("fill badge: %w", err)
	}

	if s.qrImage != nil {
		qrSize := badgeH * 0.72
		qrPad := (badgeH - qrSize) / 2
		dc.DrawImageEx(gg.ImageBufFromImage(s.qrImage), gg.DrawImageOptions{
			X:         bx + badgeW - qrSize - qrPad,
			Y:         by + qrPad,
			DstWidth:  qrSize,
			DstHeight: qrSize,
		})
	}

	if s.face != nil && req.AttributionText != "" {
		dc.SetFont(s.face)
		dc.SetHexColor(req.AttributionColor)
		dc.DrawStringAnchored(req.AttributionText, bx+padX, by+badgeH/2, 0, 0.5)
	}
	dc.PopLayer()
	draw.Draw(dst, dst.Bounds(), dc.Image(), dc.Image().Bounds().Min, draw.Src)

	// Without a TTF the text goes down in the bitmap face, straight
	// onto the pixels.
	if s.face == nil && req.AttributionText != "" {
		drawBitmapString(dst, req.AttributionText,
			int(bx+padX), int(by+badgeH/2)+4, parseHex(req.AttributionColor))
	}
	return nil
}

// measureAttribution returns the rendered text width for badge sizing.
func (s *Scene) measureAttribution(text string) float64 {
	if text == "" {
		return 0
	}
	if s.face != nil {
		dc := gg.NewContext(1, 1)
		dc.SetFont(s.face)
		w, _ := dc.MeasureString(text)
		return w
	}
	return float64(font.MeasureString(basicfont.Face7x13, text)) / 64
}

func drawBitmapString(dst *image.RGBA, text string, x, y int, c color.Color) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// parseHex reads a #rrggbb string, tolerating the missing hash. Bad
// input falls back to white.
func parseHex(s string) color.RGBA {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return color.RGBA{255, 255, 255, 255}
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{255, 255, 255, 255}
	}
	return color.RGBA{r, g, b, 255}
}
