package system

import (
	"image"
	"sync"
)

// FramePool recycles *image.RGBA frame buffers to keep GC pressure flat
// while streaming long clips. A render session emits frames at exactly
// one output rectangle, so the pool holds one size at a time and drops
// its stock when the requested size changes.
type FramePool struct {
	mu   sync.Mutex
	size image.Rectangle
	pool *sync.Pool
}

var globalPool FramePool

// GetFrame returns a frame buffer with the given bounds, reusing a
// previously returned one when available.
func GetFrame(rect image.Rectangle) *image.RGBA {
	return globalPool.Get(rect)
}

// PutFrame hands a buffer back. The caller must not use it afterwards.
func PutFrame(img *image.RGBA) {
	globalPool.Put(img)
}

func (p *FramePool) Get(rect image.Rectangle) *image.RGBA {
	p.mu.Lock()
	if p.pool == nil || p.size != rect {
		p.size = rect
		p.pool = &sync.Pool{}
	}
	v := p.pool.Get()
	p.mu.Unlock()

	if v == nil {
		return image.NewRGBA(rect)
	}
	return v.(*image.RGBA)
}

// Put accepts only buffers matching the pool's current size; stale
// buffers from before a size change are left to the GC.
func (p *FramePool) Put(img *image.RGBA) {
	if img == nil {
		return
	}
	p.mu.Lock()
	if p.pool != nil && img.Rect == p.size {
		p.pool.Put(img)
	}
	p.mu.Unlock()
}
