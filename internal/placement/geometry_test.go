package placement

import (
	"testing"

	"github.com/1broseidon/zonesnap/internal/geometry"
	"github.com/1broseidon/zonesnap/internal/platform"
)

type fakeFrameReader struct {
	frames map[platform.WindowID]geometry.Rect
}

func (f *fakeFrameReader) Frame(id platform.WindowID) (geometry.Rect, bool) {
	frame, ok := f.frames[id]
	return frame, ok
}

func TestGeometryCacheCapture(t *testing.T) {
	reader := &fakeFrameReader{frames: map[platform.WindowID]geometry.Rect{
		42: {X: 100, Y: 100, Width: 640, Height: 480},
	}}
	cache := NewGeometryCache(reader)

	cache.Update(42)

	frame, ok := cache.Frame(42)
	if !ok {
		t.Fatal("expected cached frame for window 42")
	}
	want := geometry.Rect{X: 100, Y: 100, Width: 640, Height: 480}
	if frame != want {
		t.Fatalf("frame = %+v, want %+v", frame, want)
	}

	// Window moves, cache is updated again before a new snap: the new
	// frame wins.
	reader.frames[42] = geometry.Rect{X: 200, Y: 50, Width: 800, Height: 600}
	cache.Update(42)

	frame, _ = cache.Frame(42)
	if frame.X != 200 || frame.Width != 800 {
		t.Fatalf("frame = %+v, want updated frame", frame)
	}
}

func TestGeometryCacheUnreadableKeepsPrevious(t *testing.T) {
	reader := &fakeFrameReader{frames: map[platform.WindowID]geometry.Rect{
		7: {X: 10, Y: 20, Width: 300, Height: 200},
	}}
	cache := NewGeometryCache(reader)

	cache.Update(7)
	delete(reader.frames, 7)
	cache.Update(7) // unreadable now, must not clobber the entry

	frame, ok := cache.Frame(7)
	if !ok {
		t.Fatal("previous entry should survive an unreadable update")
	}
	if frame.X != 10 || frame.Height != 200 {
		t.Fatalf("frame = %+v, want original capture", frame)
	}
}

func TestGeometryCacheUnreadableWithoutEntry(t *testing.T) {
	cache := NewGeometryCache(&fakeFrameReader{frames: map[platform.WindowID]geometry.Rect{}})

	cache.Update(99) // no frame, no prior entry; silent no-op

	if _, ok := cache.Frame(99); ok {
		t.Fatal("no entry should exist for an unreadable, never-captured window")
	}
}

func TestGeometryCacheForget(t *testing.T) {
	reader := &fakeFrameReader{frames: map[platform.WindowID]geometry.Rect{
		5: {X: 0, Y: 0, Width: 100, Height: 100},
	}}
	cache := NewGeometryCache(reader)

	cache.Update(5)
	cache.Forget(5)

	if _, ok := cache.Frame(5); ok {
		t.Fatal("frame should be gone after Forget")
	}

	cache.Forget(5) // idempotent
}

func TestGeometryCacheAccessors(t *testing.T) {
	reader := &fakeFrameReader{frames: map[platform.WindowID]geometry.Rect{
		3: {X: 15, Y: 25, Width: 320, Height: 240},
	}}
	cache := NewGeometryCache(reader)
	cache.Update(3)

	x, y, ok := cache.Position(3)
	if !ok || x != 15 || y != 25 {
		t.Fatalf("Position = (%v, %v, %v), want (15, 25, true)", x, y, ok)
	}

	w, h, ok := cache.Size(3)
	if !ok || w != 320 || h != 240 {
		t.Fatalf("Size = (%v, %v, %v), want (320, 240, true)", w, h, ok)
	}
}
