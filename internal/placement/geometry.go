package placement

import (
	"log"
	"sync"

	"github.com/1broseidon/zonesnap/internal/geometry"
	"github.com/1broseidon/zonesnap/internal/platform"
)

// FrameReader reads a window's current frame from the window server.
// The second return value is false when the window no longer exists or its
// bounds cannot be read.
type FrameReader interface {
	Frame(windowID platform.WindowID) (geometry.Rect, bool)
}

// GeometryCache remembers each tracked window's pre-snap frame for later
// restoration. Update must be called strictly before the first geometric
// mutation of a window so the cache reflects pre-snap state.
type GeometryCache struct {
	mu     sync.Mutex
	frames map[platform.WindowID]geometry.Rect
	reader FrameReader
}

// NewGeometryCache creates a cache backed by the given frame reader.
func NewGeometryCache(reader FrameReader) *GeometryCache {
	return &GeometryCache{
		frames: make(map[platform.WindowID]geometry.Rect),
		reader: reader,
	}
}

// Update captures the window's current frame, overwriting any prior entry.
// An unreadable window is a logged no-op; the previous cache entry, if any,
// is left untouched.
func (c *GeometryCache) Update(windowID platform.WindowID) {
	frame, ok := c.reader.Frame(windowID)
	if !ok {
		log.Printf("geometry cache: frame unreadable for window %d, keeping previous entry", windowID)
		return
	}

	c.mu.Lock()
	c.frames[windowID] = frame
	c.mu.Unlock()
}

// Frame returns the last captured frame for windowID.
func (c *GeometryCache) Frame(windowID platform.WindowID) (geometry.Rect, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	frame, ok := c.frames[windowID]
	return frame, ok
}

// Position returns the last captured origin for windowID.
func (c *GeometryCache) Position(windowID platform.WindowID) (x, y float64, ok bool) {
	frame, ok := c.Frame(windowID)
	return frame.X, frame.Y, ok
}

// Size returns the last captured size for windowID.
func (c *GeometryCache) Size(windowID platform.WindowID) (width, height float64, ok bool) {
	frame, ok := c.Frame(windowID)
	return frame.Width, frame.Height, ok
}

// Forget drops the cached frame for windowID. Called when a window is
// unplaced, since the record and its original geometry live and die together.
func (c *GeometryCache) Forget(windowID platform.WindowID) {
	c.mu.Lock()
	delete(c.frames, windowID)
	c.mu.Unlock()
}
