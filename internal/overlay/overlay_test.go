package overlay

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/ivlev/wordmark/internal/config"
	"github.com/ivlev/wordmark/internal/layout"
	"github.com/ivlev/wordmark/internal/ocr"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x % 256), uint8(y % 256), 200, 255})
		}
	}
	return img
}

func testRequest(mode config.MarkingMode) *config.Request {
	req := config.Default()
	req.MarkingMode = mode
	req.ImageWidth = 960
	req.ImageHeight = 540
	req.SelectedWords = []ocr.WordBox{
		{Text: "hello", Left: 100, Top: 100, Width: 120, Height: 30, Confidence: 0.9},
		{Text: "world", Left: 240, Top: 100, Width: 130, Height: 30, Confidence: 0.9},
	}
	return &req
}

func TestNewSceneMapsSpansToOutputSpace(t *testing.T) {
	req := testRequest(config.ModeHighlight)
	img := testImage(960, 540)

	scene, err := NewScene(req, img, Options{})
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}

	spans := scene.Spans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1 merged row", len(spans))
	}

	// 960x540 into 1920x1080 is an exact 2x fit with no offset.
	sp := spans[0]
	if math.Abs(sp.Left-200) > 1e-9 || math.Abs(sp.Top-200) > 1e-9 {
		t.Errorf("span origin = (%v, %v), want (200, 200)", sp.Left, sp.Top)
	}
	if math.Abs(sp.Right-740) > 1e-9 {
		t.Errorf("span right = %v, want 740", sp.Right)
	}
}

func TestNewSceneRejectsSizeMismatch(t *testing.T) {
	req := testRequest(config.ModeHighlight)
	req.ImageWidth = 800

	if _, err := NewScene(req, testImage(960, 540), Options{}); err == nil {
		t.Fatal("expected size mismatch error")
	}
}

func TestUnblurRectPadding(t *testing.T) {
	sp := layout.Span{Left: 100, Top: 50, Right: 400, Bottom: 90}
	r := unblurRect(sp)

	wantPadX := 40 * 0.12
	wantPadY := 40 * 0.08
	if math.Abs(r.X-(100-wantPadX)) > 1e-9 {
		t.Errorf("r.X = %v, want %v", r.X, 100-wantPadX)
	}
	if math.Abs(r.Y-(50-wantPadY)) > 1e-9 {
		t.Errorf("r.Y = %v, want %v", r.Y, 50-wantPadY)
	}
}

func TestUnblurRectPadCappedForShortWords(t *testing.T) {
	// Tall narrow span: horizontal pad must fall back to 15% of width.
	sp := layout.Span{Left: 100, Top: 50, Right: 120, Bottom: 130}
	r := unblurRect(sp)

	wantPadX := 20 * 0.15
	if math.Abs(r.X-(100-wantPadX)) > 1e-9 {
		t.Errorf("r.X = %v, want pad capped at %v", r.X, wantPadX)
	}
}

// checkerImage has enough high-frequency detail that blurring changes
// it visibly everywhere.
func checkerImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{255, 255, 255, 255}
			if (x/8+y/8)%2 == 0 {
				c = color.RGBA{10, 10, 10, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func meanAbsDiff(a, b *image.RGBA, r image.Rectangle) float64 {
	var sum, n float64
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			ca := a.RGBAAt(x, y)
			cb := b.RGBAAt(x, y)
			sum += math.Abs(float64(ca.R)-float64(cb.R)) +
				math.Abs(float64(ca.G)-float64(cb.G)) +
				math.Abs(float64(ca.B)-float64(cb.B))
			n += 3
		}
	}
	return sum / n
}

func TestUnblurRevealsSpansInLockstep(t *testing.T) {
	req := testRequest(config.ModeUnblur)
	req.EnterAnimation = config.EdgeNone
	req.ExitAnimation = config.EdgeNone
	req.SelectedWords = []ocr.WordBox{
		{Text: "alphabet", Left: 100, Top: 100, Width: 200, Height: 30, Confidence: 0.9},
		{Text: "boundary", Left: 100, Top: 300, Width: 200, Height: 30, Confidence: 0.9},
	}

	scene, err := NewScene(req, checkerImage(960, 540), Options{})
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	spans := scene.Spans()
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}

	tl := scene.Timeline
	mid, err := scene.RenderFrame(tl.HighlightStart() + tl.HighlightFrames/2)
	if err != nil {
		t.Fatalf("RenderFrame mid: %v", err)
	}
	final, err := scene.RenderFrame(tl.HighlightEnd() + 10)
	if err != nil {
		t.Fatalf("RenderFrame final: %v", err)
	}

	diffs := make([]float64, len(spans))
	for i, sp := range spans {
		r := image.Rect(int(sp.Left)+2, int(sp.Top)+2, int(sp.Right)-2, int(sp.Bottom)-2)
		diffs[i] = meanAbsDiff(mid, final, r)
	}

	// Halfway through, every span is partially blurred: none may be
	// fully sharp already, and all must sit at the same reveal state.
	for i, d := range diffs {
		if d < 1 {
			t.Errorf("span %d already fully revealed at midpoint (diff %.2f)", i, d)
		}
	}
	hi := math.Max(diffs[0], diffs[1])
	if math.Abs(diffs[0]-diffs[1]) > 0.25*hi {
		t.Errorf("spans reveal unevenly at midpoint: diffs %.2f vs %.2f", diffs[0], diffs[1])
	}
}

func TestHighlightSweepLinearAtMidpoint(t *testing.T) {
	req := testRequest(config.ModeHighlight)
	req.EnterAnimation = config.EdgeNone
	req.ExitAnimation = config.EdgeNone
	req.SelectedWords = []ocr.WordBox{
		{Text: "borrowword", Left: 100, Top: 100, Width: 400, Height: 40, Confidence: 0.9},
	}

	white := image.NewRGBA(image.Rect(0, 0, 960, 540))
	for i := range white.Pix {
		white.Pix[i] = 255
	}

	scene, err := NewScene(req, white, Options{})
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}

	tl := scene.Timeline
	frame, err := scene.RenderFrame(tl.HighlightStart() + tl.HighlightFrames/2)
	if err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}

	// Span maps to output [200,1000]x[200,280]; the highlight rect pads
	// to x [180,1020] (width 840). At half the window the marker has
	// covered exactly half that width, so the ink edge sits near
	// x = 180 + 420 = 600. An eased sweep would sit near x = 915.
	edge := -1
	y := 240
	for x := 1020; x >= 180; x-- {
		if frame.RGBAAt(x, y).B < 200 {
			edge = x
			break
		}
	}
	if edge < 0 {
		t.Fatal("no highlight ink found on the span row")
	}
	if edge < 560 || edge > 645 {
		t.Errorf("sweep edge at x=%d, want near 600 (linear midpoint)", edge)
	}
}

func TestRenderFrameDimensions(t *testing.T) {
	req := testRequest(config.ModeHighlight)
	scene, err := NewScene(req, testImage(960, 540), Options{})
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}

	frame, err := scene.RenderFrame(scene.Timeline.HighlightStart() + 5)
	if err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	b := frame.Bounds()
	if b.Dx() != 1920 || b.Dy() != 1080 {
		t.Errorf("frame size = %dx%d, want 1920x1080", b.Dx(), b.Dy())
	}
}

func TestRenderFrameDeterministic(t *testing.T) {
	req := testRequest(config.ModeCircle)
	req.VCREffect = true
	scene, err := NewScene(req, testImage(960, 540), Options{})
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}

	n := scene.Timeline.HighlightStart() + 10
	a, err := scene.RenderFrame(n)
	if err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	b, err := scene.RenderFrame(n)
	if err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("same frame rendered twice differs")
	}
}

func TestApplyVCRDeterministicAndDarkening(t *testing.T) {
	a := testImage(64, 64)
	b := testImage(64, 64)

	ApplyVCR(a, 7)
	ApplyVCR(b, 7)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("same frame index produced different VCR output")
	}

	c := testImage(64, 64)
	ApplyVCR(c, 8)
	if bytes.Equal(a.Pix, c.Pix) {
		t.Error("different frame indices produced identical jitter")
	}

	// Odd scanlines must come out darker than the untouched original.
	orig := testImage(64, 64)
	sum := func(img *image.RGBA, y int) int {
		total := 0
		for x := 0; x < 64*4; x++ {
			total += int(img.Pix[y*img.Stride+x])
		}
		return total
	}
	if sum(a, 1) >= sum(orig, 1) {
		t.Error("scanline row not darkened")
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#1a2b3c", color.RGBA{0x1a, 0x2b, 0x3c, 255}},
		{"ffd532", color.RGBA{0xff, 0xd5, 0x32, 255}},
		{"junk", color.RGBA{255, 255, 255, 255}},
		{"", color.RGBA{255, 255, 255, 255}},
	}
	for _, tt := range tests {
		if got := parseHex(tt.in); got != tt.want {
			t.Errorf("parseHex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
