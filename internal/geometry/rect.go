package geometry

import "math"

// Rect describes a rectangular region in screen coordinates.
//
// All engine geometry uses a single top-left-origin coordinate space in
// floating point. Pixel values from the window system are converted once at
// the platform boundary (FromPixels) and converted back once when issuing
// move/resize requests (Pixels); nothing in between mixes conventions.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// FromPixels converts integer pixel geometry into the engine coordinate space.
func FromPixels(x, y, width, height int) Rect {
	return Rect{
		X:      float64(x),
		Y:      float64(y),
		Width:  float64(width),
		Height: float64(height),
	}
}

// Pixels converts back to integer pixel geometry, rounding to nearest.
func (r Rect) Pixels() (x, y, width, height int) {
	return int(math.Round(r.X)),
		int(math.Round(r.Y)),
		int(math.Round(r.Width)),
		int(math.Round(r.Height))
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// MidX returns the horizontal midpoint ((minX+maxX)/2).
func (r Rect) MidX() float64 {
	return r.X + r.Width/2
}

// MidY returns the vertical midpoint ((minY+maxY)/2).
func (r Rect) MidY() float64 {
	return r.Y + r.Height/2
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// The right and bottom edges are exclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// ContainsMidpoint reports whether the midpoint of other lies inside r.
func (r Rect) ContainsMidpoint(other Rect) bool {
	return r.Contains(other.MidX(), other.MidY())
}

// WithinTolerance reports whether two rectangles match within tol display
// units. Both origin deltas and both size deltas must be within tolerance;
// a single axis off by more than tol fails the match.
func WithinTolerance(a, b Rect, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol &&
		math.Abs(a.Y-b.Y) <= tol &&
		math.Abs(a.Width-b.Width) <= tol &&
		math.Abs(a.Height-b.Height) <= tol
}
