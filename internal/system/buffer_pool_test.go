package system

import (
	"image"
	"testing"
)

func TestFramePoolReusesBuffers(t *testing.T) {
	var p FramePool
	rect := image.Rect(0, 0, 64, 32)

	a := p.Get(rect)
	if a.Bounds() != rect {
		t.Fatalf("Get bounds = %v, want %v", a.Bounds(), rect)
	}
	p.Put(a)

	b := p.Get(rect)
	if b != a {
		t.Error("buffer not reused for the same size")
	}
}

func TestFramePoolDropsStockOnSizeChange(t *testing.T) {
	var p FramePool
	small := image.Rect(0, 0, 16, 16)
	large := image.Rect(0, 0, 128, 64)

	a := p.Get(small)
	p.Put(a)

	b := p.Get(large)
	if b.Bounds() != large {
		t.Fatalf("Get bounds = %v, want %v", b.Bounds(), large)
	}

	// A stale small buffer must not come back after the size change.
	p.Put(a)
	c := p.Get(large)
	if c.Bounds() != large {
		t.Errorf("Get bounds = %v after stale Put, want %v", c.Bounds(), large)
	}
	if c == a {
		t.Error("stale buffer returned after size change")
	}
}

func TestFramePoolNilPut(t *testing.T) {
	var p FramePool
	p.Put(nil) // must not panic
}
