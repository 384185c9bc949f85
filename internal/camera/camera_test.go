package camera

import (
	"math"
	"testing"

	"github.com/ivlev/wordmark/internal/config"
)

func baseRequest() config.Request {
	req := config.Default()
	req.FrameRate = 30
	req.EnterAnimation = config.EdgeBlur
	req.ExitAnimation = config.EdgeBlur
	req.CameraMovement = config.CameraNone
	return req
}

func TestComposeEnterBlur(t *testing.T) {
	req := baseRequest()
	total := 300

	at0 := Compose(0, total, &req)
	if at0.Blur != 20 {
		t.Errorf("frame 0 should carry full enter blur, got %f", at0.Blur)
	}
	if at0.Opacity != 0 {
		t.Errorf("frame 0 should be fully faded, got opacity %f", at0.Opacity)
	}

	settled := Compose(30, total, &req)
	if settled.Blur != 0 || settled.Opacity != 1 {
		t.Errorf("after the enter window the frame should be at rest: %+v", settled)
	}
}

func TestComposeExitBlurMirrors(t *testing.T) {
	req := baseRequest()
	total := 300

	last := Compose(300, total, &req)
	if last.Blur != 20 || last.Opacity != 0 {
		t.Errorf("final frame should be fully blurred out: %+v", last)
	}

	mid := Compose(150, total, &req)
	if mid.Blur != 0 || mid.Opacity != 1 {
		t.Errorf("mid-clip frame should be untouched: %+v", mid)
	}
}

func TestComposeSlideDirections(t *testing.T) {
	total := 300
	tests := []struct {
		kind   config.EdgeAnimation
		wantTX float64
		wantTY float64
	}{
		{config.EdgeSlideLeft, -150, 0},
		{config.EdgeSlideRight, 150, 0},
		{config.EdgeSlideTop, 0, -150},
		{config.EdgeSlideBottom, 0, 150},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			req := baseRequest()
			req.EnterAnimation = tt.kind
			req.ExitAnimation = config.EdgeNone

			at0 := Compose(0, total, &req)
			if at0.TranslateX != tt.wantTX || at0.TranslateY != tt.wantTY {
				t.Errorf("frame 0 translate = (%f, %f), want (%f, %f)",
					at0.TranslateX, at0.TranslateY, tt.wantTX, tt.wantTY)
			}
			if at0.Opacity != 0 {
				t.Errorf("slide-in should start faded, got opacity %f", at0.Opacity)
			}
		})
	}
}

func TestComposeSlideExitBufferedBeforeEnd(t *testing.T) {
	req := baseRequest()
	req.EnterAnimation = config.EdgeNone
	req.ExitAnimation = config.EdgeSlideLeft
	total := 300

	// The slide completes fps/2 frames before clip end.
	atBuffer := Compose(285, total, &req)
	if math.Abs(atBuffer.TranslateX+150) > 1e-9 {
		t.Errorf("slide should be complete at the buffer boundary, got %f", atBuffer.TranslateX)
	}
	if atBuffer.Opacity != 0 {
		t.Errorf("slide exit should be fully faded at buffer, got %f", atBuffer.Opacity)
	}
}

func TestComposeNoAnimationIdentity(t *testing.T) {
	req := baseRequest()
	req.EnterAnimation = config.EdgeNone
	req.ExitAnimation = config.EdgeNone

	for _, frame := range []int{0, 10, 150, 300} {
		tr := Compose(frame, 300, &req)
		if tr.Blur != 0 || tr.TranslateX != 0 || tr.TranslateY != 0 || tr.Opacity != 1 || tr.Scale != 1 {
			t.Errorf("frame %d should be identity: %+v", frame, tr)
		}
	}
}

func TestComposeCameraPan(t *testing.T) {
	req := baseRequest()
	req.EnterAnimation = config.EdgeNone
	req.ExitAnimation = config.EdgeNone
	req.CameraMovement = config.CameraLeftRight
	total := 301

	start := Compose(0, total, &req)
	end := Compose(300, total, &req)

	if math.Abs(start.RotateY+7.5) > 1e-9 {
		t.Errorf("pan should start at -7.5 degrees, got %f", start.RotateY)
	}
	if math.Abs(end.RotateY-7.5) > 1e-9 {
		t.Errorf("pan should end at +7.5 degrees, got %f", end.RotateY)
	}
	if start.Scale != 1 {
		t.Errorf("pan zoom should start at 1, got %f", start.Scale)
	}
	if math.Abs(end.Scale-1.05) > 1e-9 {
		t.Errorf("pan zoom should end at 1.05, got %f", end.Scale)
	}

	// Vertical pan tilts the X axis instead.
	req.CameraMovement = config.CameraUpDown
	if tr := Compose(0, total, &req); tr.RotateX == 0 || tr.RotateY != 0 {
		t.Errorf("vertical pan should tilt RotateX only: %+v", tr)
	}
}

func TestComposeDedicatedZoom(t *testing.T) {
	req := baseRequest()
	req.EnterAnimation = config.EdgeNone
	req.ExitAnimation = config.EdgeNone
	req.CameraMovement = config.CameraZoomIn
	total := 301

	if tr := Compose(300, total, &req); math.Abs(tr.Scale-1.15) > 1e-9 {
		t.Errorf("zoom-in should reach 1.15, got %f", tr.Scale)
	}

	req.CameraMovement = config.CameraZoomOut
	if tr := Compose(0, total, &req); math.Abs(tr.Scale-1.15) > 1e-9 {
		t.Errorf("zoom-out should start at 1.15, got %f", tr.Scale)
	}
}

func TestLockAspectDerivesHeight(t *testing.T) {
	// 0.4-wide box on a 1920x1080 image targeting portrait output:
	// height = 0.4 × (1920/1080) / (1080/1920), then clamped into [0,1].
	box := config.ZoomBox{X: 0.1, Y: 0.1, Width: 0.4}
	locked := LockAspect(box, 1920, 1080, 1080, 1920)

	ratio := (1920.0 / 1080.0) / (1080.0 / 1920.0)
	raw := 0.4 * ratio
	if raw <= 1 {
		t.Fatalf("scenario expects the raw height %f to overflow", raw)
	}
	if locked.Height != 1 {
		t.Errorf("height must clamp to 1, got %f", locked.Height)
	}
	if math.Abs(locked.Width-1/ratio) > 1e-9 {
		t.Errorf("width must shrink to match the clamped height, got %f", locked.Width)
	}
}

func TestLockAspectWithoutClamping(t *testing.T) {
	// Landscape output on a landscape image: ratio 1, box unchanged.
	box := config.ZoomBox{X: 0.2, Y: 0.2, Width: 0.3}
	locked := LockAspect(box, 1920, 1080, 1920, 1080)
	if math.Abs(locked.Height-0.3) > 1e-9 {
		t.Errorf("expected height 0.3, got %f", locked.Height)
	}
}

func TestLockAspectMinimumWidth(t *testing.T) {
	box := config.ZoomBox{X: 0.5, Y: 0.5, Width: 0.01}
	locked := LockAspect(box, 1920, 1080, 1920, 1080)
	if locked.Width < minZoomWidth {
		t.Errorf("box must be enlarged to the minimum width, got %f", locked.Width)
	}
}

func TestLockAspectKeepsBoxInsideImage(t *testing.T) {
	box := config.ZoomBox{X: 0.9, Y: 0.95, Width: 0.3}
	locked := LockAspect(box, 1920, 1080, 1920, 1080)
	if locked.X+locked.Width > 1+1e-9 || locked.Y+locked.Height > 1+1e-9 {
		t.Errorf("box must stay inside [0,1]: %+v", locked)
	}
	if locked.X < 0 || locked.Y < 0 {
		t.Errorf("box origin must stay non-negative: %+v", locked)
	}
}

func TestZoomInterpolation(t *testing.T) {
	box := config.ZoomBox{X: 0.25, Y: 0.25, Width: 0.5, Height: 0.5}

	at0 := Zoom(box, 0)
	if at0.Scale != 1 || at0.CenterX != 0.5 || at0.CenterY != 0.5 {
		t.Errorf("at progress 0 the camera is at rest: %+v", at0)
	}

	at1 := Zoom(box, 1)
	if math.Abs(at1.Scale-2) > 1e-9 {
		t.Errorf("scale must reach 1/width = 2, got %f", at1.Scale)
	}
	if math.Abs(at1.CenterX-0.5) > 1e-9 || math.Abs(at1.CenterY-0.5) > 1e-9 {
		t.Errorf("box center must become the frame center: %+v", at1)
	}

	off := config.ZoomBox{X: 0, Y: 0, Width: 0.25, Height: 0.25}
	target := Zoom(off, 1)
	if math.Abs(target.CenterX-0.125) > 1e-9 {
		t.Errorf("camera should center the box: %+v", target)
	}
}
