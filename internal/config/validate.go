package config

import "fmt"

// Validate rejects configuration-range violations before the engine
// runs. Degenerate selections (zero words) are not errors; the engine
// degrades to a minimum-duration clip for those.
func (r *Request) Validate() error {
	switch r.FrameRate {
	case 24, 30, 60:
	default:
		return fmt.Errorf("frame rate must be 24, 30 or 60, got %d", r.FrameRate)
	}

	if r.CharsPerSecond <= 0 {
		return fmt.Errorf("chars per second must be positive, got %f", r.CharsPerSecond)
	}
	if r.LeadInSeconds < 0 {
		return fmt.Errorf("lead-in must not be negative, got %f", r.LeadInSeconds)
	}
	if r.LeadOutSeconds < 0 {
		return fmt.Errorf("lead-out must not be negative, got %f", r.LeadOutSeconds)
	}
	if r.ZoomDurationSeconds < 0 {
		return fmt.Errorf("zoom duration must not be negative, got %f", r.ZoomDurationSeconds)
	}
	if r.ImageWidth < 0 || r.ImageHeight < 0 {
		return fmt.Errorf("image dimensions must not be negative, got %dx%d", r.ImageWidth, r.ImageHeight)
	}

	switch r.MarkingMode {
	case ModeHighlight, ModeCircle, ModeUnderline, ModeUnblur, ModeZoom, ModeLowerThird, "":
	default:
		return fmt.Errorf("unknown marking mode: %s", r.MarkingMode)
	}

	switch r.CameraMovement {
	case CameraNone, CameraLeftRight, CameraRightLeft, CameraUpDown, CameraDownUp, CameraZoomIn, CameraZoomOut, "":
	default:
		return fmt.Errorf("unknown camera movement: %s", r.CameraMovement)
	}

	for _, edge := range []EdgeAnimation{r.EnterAnimation, r.ExitAnimation} {
		switch edge {
		case EdgeNone, EdgeBlur, EdgeSlideTop, EdgeSlideBottom, EdgeSlideLeft, EdgeSlideRight, "":
		default:
			return fmt.Errorf("unknown enter/exit animation: %s", edge)
		}
	}

	switch r.OutputFormat {
	case FormatLandscape, FormatPortrait, FormatSquare, "":
	default:
		return fmt.Errorf("unknown output format: %s", r.OutputFormat)
	}

	if r.ZoomBox != nil {
		b := r.ZoomBox
		if b.Width <= 0 || b.Height <= 0 {
			return fmt.Errorf("zoom box must have positive size, got %fx%f", b.Width, b.Height)
		}
		if b.X < 0 || b.Y < 0 || b.X > 1 || b.Y > 1 {
			return fmt.Errorf("zoom box origin must be within [0,1], got (%f, %f)", b.X, b.Y)
		}
	}

	return nil
}
