package layout

import (
	"reflect"
	"testing"

	"github.com/ivlev/wordmark/internal/ocr"
)

func box(text string, left, top, width, height float64) ocr.WordBox {
	return ocr.WordBox{Text: text, Left: left, Top: top, Width: width, Height: height, Confidence: 0.9}
}

func TestClusterEmptySelection(t *testing.T) {
	if spans := Cluster(nil); spans != nil {
		t.Errorf("expected nil spans for empty selection, got %v", spans)
	}
}

func TestClusterSingleRowMerge(t *testing.T) {
	// Two words of height 20 with a 50px gap: 50 < 3*20, one span.
	words := []ocr.WordBox{
		box("hello", 100, 50, 60, 20),
		box("world", 210, 50, 60, 20),
	}
	spans := Cluster(words)
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	want := Span{Left: 100, Top: 50, Right: 270, Bottom: 70}
	if !reflect.DeepEqual(spans[0], want) {
		t.Errorf("expected %+v, got %+v", want, spans[0])
	}
}

func TestClusterGapBreaksSpan(t *testing.T) {
	// Height 20, gap 65 > 3*20 = 60: two spans.
	words := []ocr.WordBox{
		box("left", 100, 50, 40, 20),
		box("right", 205, 50, 40, 20),
	}
	spans := Cluster(words)
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Left != 100 || spans[1].Left != 205 {
		t.Errorf("spans out of order: %+v", spans)
	}
}

func TestClusterGapScenario(t *testing.T) {
	// The merge threshold is strict: gap of exactly 50 merges, 65 breaks.
	tests := []struct {
		name      string
		gap       float64
		wantSpans int
	}{
		{"gap under threshold", 50, 1},
		{"gap over threshold", 65, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words := []ocr.WordBox{
				box("a", 0, 0, 30, 20),
				box("b", 30+tt.gap, 0, 30, 20),
			}
			if got := len(Cluster(words)); got != tt.wantSpans {
				t.Errorf("gap %.0f: expected %d spans, got %d", tt.gap, tt.wantSpans, got)
			}
		})
	}
}

func TestClusterReadingOrder(t *testing.T) {
	// Supplied out of order; spans must come back row-major.
	words := []ocr.WordBox{
		box("third", 400, 100, 50, 20),
		box("first", 10, 10, 50, 20),
		box("fourth", 10, 200, 50, 20),
		box("second", 10, 100, 50, 20),
	}
	spans := Cluster(words)
	if len(spans) != 4 {
		t.Fatalf("expected 4 spans, got %d", len(spans))
	}
	for i := 1; i < len(spans); i++ {
		prev, cur := spans[i-1], spans[i]
		sameRow := prev.Top < cur.Bottom && cur.Top < prev.Bottom
		if sameRow {
			if prev.Left >= cur.Left {
				t.Errorf("span %d not left of span %d on shared row", i-1, i)
			}
		} else if prev.Top >= cur.Top {
			t.Errorf("span %d row not above span %d", i-1, i)
		}
	}
}

func TestClusterRowAssignmentByOverlap(t *testing.T) {
	// Slightly offset words still share a row when their vertical
	// intervals intersect.
	words := []ocr.WordBox{
		box("a", 10, 50, 40, 20),
		box("b", 60, 55, 40, 20),
	}
	spans := Cluster(words)
	if len(spans) != 1 {
		t.Fatalf("expected words to share a row, got %d spans", len(spans))
	}
	if spans[0].Top != 50 || spans[0].Bottom != 75 {
		t.Errorf("span should cover both extents, got %+v", spans[0])
	}
}

func TestClusterDeterminism(t *testing.T) {
	words := []ocr.WordBox{
		box("w1", 5, 5, 30, 15),
		box("w2", 40, 6, 30, 15),
		box("w3", 200, 5, 30, 15),
		box("w4", 5, 40, 30, 15),
	}
	first := Cluster(words)
	for i := 0; i < 10; i++ {
		if got := Cluster(words); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differed: %v vs %v", i, got, first)
		}
	}
}

func TestClusterSkipsZeroAreaBoxes(t *testing.T) {
	words := []ocr.WordBox{
		box("ok", 10, 10, 40, 20),
		box("", 60, 10, 0, 20),
	}
	spans := Cluster(words)
	if len(spans) != 1 {
		t.Fatalf("expected zero-area box to be dropped, got %d spans", len(spans))
	}
}

func TestTotalWidthAndUnion(t *testing.T) {
	spans := []Span{
		{Left: 0, Top: 0, Right: 100, Bottom: 20},
		{Left: 10, Top: 40, Right: 60, Bottom: 60},
	}
	if w := TotalWidth(spans); w != 150 {
		t.Errorf("expected total width 150, got %f", w)
	}
	u := Union(spans)
	want := Span{Left: 0, Top: 0, Right: 100, Bottom: 60}
	if u != want {
		t.Errorf("expected union %+v, got %+v", want, u)
	}
	if z := Union(nil); z != (Span{}) {
		t.Errorf("expected zero union for empty list, got %+v", z)
	}
}
