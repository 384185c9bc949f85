package ocr

import "unicode/utf8"

// WordBox is a single recognized word with its bounding box in
// source-image pixel space. Boxes are input data and are never
// mutated by the animation core.
type WordBox struct {
	Text       string  `json:"text" yaml:"text"`
	Left       float64 `json:"left" yaml:"left"`
	Top        float64 `json:"top" yaml:"top"`
	Width      float64 `json:"width" yaml:"width"`
	Height     float64 `json:"height" yaml:"height"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// Right returns the right edge of the box.
func (w WordBox) Right() float64 {
	return w.Left + w.Width
}

// Bottom returns the bottom edge of the box.
func (w WordBox) Bottom() float64 {
	return w.Top + w.Height
}

// CharCount counts the characters across a selection of words.
// Drives the highlight duration: more text means a longer sweep.
func CharCount(words []WordBox) int {
	total := 0
	for _, w := range words {
		total += utf8.RuneCountInString(w.Text)
	}
	return total
}

// FilterConfident drops detections below the given confidence.
// Tesseract reports -1 for non-word rows; those are dropped too.
func FilterConfident(words []WordBox, minConfidence float64) []WordBox {
	kept := make([]WordBox, 0, len(words))
	for _, w := range words {
		if w.Confidence >= minConfidence && w.Width > 0 && w.Height > 0 {
			kept = append(kept, w)
		}
	}
	return kept
}
