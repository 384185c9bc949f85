// Package layout groups unordered OCR word boxes into visual rows and
// merges adjacent words on a row into contiguous spans. Spans come out
// in reading order (top-to-bottom, left-to-right); the reveal engine
// animates them in exactly that order, so the ordering is load-bearing.
package layout

import (
	"sort"

	"github.com/ivlev/wordmark/internal/ocr"
)

// Span is the axis-aligned bounding box of one or more adjacent words
// on the same visual row, treated as a single animatable unit. Spans
// are ephemeral: recomputed whenever the selection changes, never
// persisted.
type Span struct {
	Left, Top, Right, Bottom float64
}

func (s Span) Width() float64  { return s.Right - s.Left }
func (s Span) Height() float64 { return s.Bottom - s.Top }

// row tracks the current vertical extent of a cluster of words.
type row struct {
	minTop    float64
	maxBottom float64
	boxes     []ocr.WordBox
}

// gapFactor ties the span-merge tolerance to the text size: the gap
// between two words may be up to three times their average height
// before a new span starts. Normal inter-word spacing passes; column
// gutters break.
const gapFactor = 3.0

// Cluster produces the ordered span list for a word selection.
//
// Row assignment is first-fit: each box, in top-sorted order, joins the
// first existing row whose vertical extent intersects its own. This is
// a heuristic, not a transitive-closure clustering; a tall word that
// bridges two short rows can merge them. Accepted limitation: swapping
// in connected-components clustering would reorder spans and therefore
// change reveal sequencing.
func Cluster(words []ocr.WordBox) []Span {
	if len(words) == 0 {
		return nil
	}

	sorted := make([]ocr.WordBox, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Top < sorted[j].Top
	})

	var rows []*row
	for _, box := range sorted {
		placed := false
		for _, r := range rows {
			if box.Top < r.maxBottom && box.Bottom() > r.minTop {
				r.boxes = append(r.boxes, box)
				if box.Top < r.minTop {
					r.minTop = box.Top
				}
				if box.Bottom() > r.maxBottom {
					r.maxBottom = box.Bottom()
				}
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, &row{minTop: box.Top, maxBottom: box.Bottom(), boxes: []ocr.WordBox{box}})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].minTop < rows[j].minTop
	})
	for _, r := range rows {
		sort.SliceStable(r.boxes, func(i, j int) bool {
			return r.boxes[i].Left < r.boxes[j].Left
		})
	}

	var spans []Span
	for _, r := range rows {
		spans = append(spans, mergeRow(r.boxes)...)
	}
	return spans
}

// mergeRow walks a row's boxes left to right, extending the current
// span while the horizontal gap stays under gapFactor × average height.
func mergeRow(boxes []ocr.WordBox) []Span {
	var spans []Span
	var cur Span
	open := false

	for _, box := range boxes {
		if box.Width <= 0 || box.Height <= 0 {
			continue
		}
		if !open {
			cur = Span{Left: box.Left, Top: box.Top, Right: box.Right(), Bottom: box.Bottom()}
			open = true
			continue
		}

		gap := box.Left - cur.Right
		avgHeight := (cur.Height() + box.Height) / 2
		if gap < gapFactor*avgHeight {
			if box.Top < cur.Top {
				cur.Top = box.Top
			}
			if box.Bottom() > cur.Bottom {
				cur.Bottom = box.Bottom()
			}
			if box.Right() > cur.Right {
				cur.Right = box.Right()
			}
		} else {
			spans = append(spans, cur)
			cur = Span{Left: box.Left, Top: box.Top, Right: box.Right(), Bottom: box.Bottom()}
		}
	}

	if open {
		spans = append(spans, cur)
	}
	return spans
}

// TotalWidth sums span widths; the highlight sweep distributes its
// travel distance across this total.
func TotalWidth(spans []Span) float64 {
	total := 0.0
	for _, s := range spans {
		total += s.Width()
	}
	return total
}

// Union returns the bounding box of all spans. Zero value for an empty
// list.
func Union(spans []Span) Span {
	if len(spans) == 0 {
		return Span{}
	}
	u := spans[0]
	for _, s := range spans[1:] {
		if s.Left < u.Left {
			u.Left = s.Left
		}
		if s.Top < u.Top {
			u.Top = s.Top
		}
		if s.Right > u.Right {
			u.Right = s.Right
		}
		if s.Bottom > u.Bottom {
			u.Bottom = s.Bottom
		}
	}
	return u
}
