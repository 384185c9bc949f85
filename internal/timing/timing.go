// Package timing derives a clip's frame layout from a render request.
// Resolve is a pure function of the request, so any client can predict
// clip length before rendering and concurrent requests can recompute it
// redundantly without coordination.
package timing

import (
	"math"

	"github.com/ivlev/wordmark/internal/config"
	"github.com/ivlev/wordmark/internal/ocr"
)

// Timeline fixes every frame boundary for one render.
type Timeline struct {
	FPS    int
	Width  int
	Height int

	LeadInFrames     int
	HighlightFrames  int
	LeadOutFrames    int
	ExitBufferFrames int

	TotalFrames int
	TotalChars  int
}

// HighlightStart is the frame on which annotation reveal begins.
func (t Timeline) HighlightStart() int {
	return t.LeadInFrames
}

// HighlightEnd is the first frame on which the reveal is complete.
func (t Timeline) HighlightEnd() int {
	return t.LeadInFrames + t.HighlightFrames
}

// DurationSeconds is the clip length in seconds.
func (t Timeline) DurationSeconds() float64 {
	return float64(t.TotalFrames) / float64(t.FPS)
}

// Resolve computes the timeline for a request.
//
// The lead-in never drops below one second of frames so the enter
// animation always has room to complete. An empty selection still
// produces a clip: the highlight window defaults to two seconds.
func Resolve(req *config.Request) Timeline {
	fps := req.FrameRate
	width, height := req.OutputFormat.Dimensions()

	leadIn := int(math.Round(req.LeadInSeconds * float64(fps)))
	if leadIn < fps {
		leadIn = fps
	}

	chars := ocr.CharCount(req.SelectedWords)
	highlight := highlightFrames(req, chars, fps)

	leadOut := int(math.Round(req.LeadOutSeconds * float64(fps)))
	if leadOut < 0 {
		leadOut = 0
	}

	exitBuffer := 0
	if req.ExitAnimation.IsSlide() {
		// A sliding frame overshoots visually; give it half a second
		// of runway before the clip ends.
		exitBuffer = fps / 2
	}

	return Timeline{
		FPS:              fps,
		Width:            width,
		Height:           height,
		LeadInFrames:     leadIn,
		HighlightFrames:  highlight,
		LeadOutFrames:    leadOut,
		ExitBufferFrames: exitBuffer,
		TotalFrames:      leadIn + highlight + leadOut + exitBuffer,
		TotalChars:       chars,
	}
}

func highlightFrames(req *config.Request, chars, fps int) int {
	switch req.MarkingMode {
	case config.ModeZoom:
		// Zoom runs on elapsed time, not text length.
		return int(math.Round(req.ZoomDurationSeconds * float64(fps)))
	case config.ModeLowerThird:
		return 2 * fps
	}

	if chars == 0 {
		return 2 * fps
	}

	frames := int(math.Ceil(float64(chars) / req.CharsPerSecond * float64(fps)))
	if frames < fps {
		frames = fps
	}
	return frames
}
