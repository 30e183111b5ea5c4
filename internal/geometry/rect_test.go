package geometry

import "testing"

func TestWithinTolerance(t *testing.T) {
	zone := Rect{X: 100, Y: 100, Width: 400, Height: 300}

	tests := []struct {
		name   string
		window Rect
		want   bool
	}{
		{
			name:   "all deltas within tolerance",
			window: Rect{X: 104, Y: 96, Width: 403, Height: 297},
			want:   true,
		},
		{
			name:   "x delta exceeds tolerance",
			window: Rect{X: 110, Y: 100, Width: 400, Height: 300},
			want:   false,
		},
		{
			name:   "exact match",
			window: zone,
			want:   true,
		},
		{
			name:   "delta exactly at tolerance",
			window: Rect{X: 106, Y: 94, Width: 406, Height: 294},
			want:   true,
		},
		{
			name:   "height delta just over tolerance",
			window: Rect{X: 100, Y: 100, Width: 400, Height: 293},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithinTolerance(zone, tt.window, 6); got != tt.want {
				t.Fatalf("WithinTolerance(%+v, %+v, 6) = %v, want %v", zone, tt.window, got, tt.want)
			}
		})
	}
}

func TestMidpointContainment(t *testing.T) {
	screen := Rect{X: 1920, Y: 0, Width: 1920, Height: 1080}

	// Window straddling the screen edge; midpoint decides ownership.
	window := Rect{X: 1800, Y: 100, Width: 400, Height: 300}
	if !screen.ContainsMidpoint(window) {
		t.Fatalf("expected midpoint (%v, %v) inside screen %+v", window.MidX(), window.MidY(), screen)
	}

	offscreen := Rect{X: 100, Y: 100, Width: 400, Height: 300}
	if screen.ContainsMidpoint(offscreen) {
		t.Fatalf("did not expect midpoint of %+v inside screen %+v", offscreen, screen)
	}
}

func TestPixelsRoundTrip(t *testing.T) {
	r := FromPixels(10, 20, 640, 480)
	x, y, w, h := r.Pixels()
	if x != 10 || y != 20 || w != 640 || h != 480 {
		t.Fatalf("round trip mismatch: got (%d,%d %dx%d)", x, y, w, h)
	}

	// Fractional values round to nearest pixel.
	frac := Rect{X: 10.6, Y: 19.4, Width: 639.5, Height: 480.49}
	x, y, w, h = frac.Pixels()
	if x != 11 || y != 19 || w != 640 || h != 480 {
		t.Fatalf("fractional rounding: got (%d,%d %dx%d), want (11,19 640x480)", x, y, w, h)
	}
}
