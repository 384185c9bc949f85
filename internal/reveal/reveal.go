// Package reveal maps the frame clock to per-span reveal progress.
// Every function here is pure in (frame, config)-derived inputs, which
// is what lets the rendering host evaluate frames out of order or in
// parallel workers.
package reveal

// Clamp01 clamps v into [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// EaseOutCubic decelerates toward the end: the pen lifting off.
func EaseOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// EaseInCubic accelerates from rest.
func EaseInCubic(t float64) float64 {
	return t * t * t
}

// EaseInOutCubic accelerates then decelerates.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// Progress maps a frame to clamped linear progress over a window of
// duration frames starting at start. Frames before the window report 0,
// frames past it report 1.
func Progress(frame, start, duration int) float64 {
	if duration <= 0 {
		if frame >= start {
			return 1
		}
		return 0
	}
	return Clamp01(float64(frame-start) / float64(duration))
}

// SweepWidths resolves the continuous marker sweep for highlight mode.
// All spans share one stroke: progress scales into a travel distance
// across the summed widths, and each span reports the portion of its
// own width the marker has covered so far. Returned values are
// non-decreasing in progress for a fixed width list.
func SweepWidths(widths []float64, progress float64) []float64 {
	total := 0.0
	for _, w := range widths {
		total += w
	}

	visible := make([]float64, len(widths))
	if total <= 0 {
		return visible
	}

	traveled := Clamp01(progress) * total
	cumulative := 0.0
	for i, w := range widths {
		if traveled <= cumulative {
			break // marker has not reached this span yet
		}
		covered := traveled - cumulative
		if covered > w {
			covered = w
		}
		visible[i] = covered
		cumulative += w
	}
	return visible
}

// WindowProgress gives span i of n its equal slice of the overall
// progress and applies ease-out-cubic inside the slice. Used by circle
// and underline modes, where spans animate strictly in reading order.
func WindowProgress(i, n int, progress float64) float64 {
	if n <= 0 {
		return 0
	}
	start := float64(i) / float64(n)
	end := float64(i+1) / float64(n)
	linear := Clamp01((progress - start) / (end - start))
	return EaseOutCubic(linear)
}

// MaxUnblurRadius is the blur the base image starts from in unblur
// mode, in pixels at output scale.
const MaxUnblurRadius = 14.0

// Unblur resolves the sharp-layer opacity and the companion blur radius
// for a clamped progress value. The radius decays to zero in lockstep
// with the opacity so the revealed region visibly sharpens.
func Unblur(progress float64) (opacity, blurRadius float64) {
	p := Clamp01(progress)
	return p, MaxUnblurRadius * (1 - p)
}

// ZoomProgress eases elapsed time into zoom progress. Character count
// plays no part in zoom mode.
func ZoomProgress(frame, leadInFrames, zoomFrames int) float64 {
	return EaseInOutCubic(Progress(frame, leadInFrames, zoomFrames))
}
