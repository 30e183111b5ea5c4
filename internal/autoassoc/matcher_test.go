package autoassoc

import (
	"errors"
	"testing"

	"github.com/1broseidon/zonesnap/internal/geometry"
	"github.com/1broseidon/zonesnap/internal/zone"
)

type fakeLister struct {
	windows []WindowInfo
	err     error
}

func (f *fakeLister) Windows() ([]WindowInfo, error) {
	return f.windows, f.err
}

type fakeScreens struct {
	screens []geometry.Rect
}

func (f *fakeScreens) ScreenFor(x, y float64) (int, geometry.Rect, bool) {
	for i, s := range f.screens {
		if s.Contains(x, y) {
			return i, s, true
		}
	}
	return 0, geometry.Rect{}, false
}

// testLayout has one zone whose absolute frame on a 1000x1000 screen at the
// origin is {100, 100, 400, 300}.
func testLayout() zone.Layout {
	return zone.Layout{
		Name: "work",
		Zones: []zone.Config{
			{Number: 1, X: 0.1, Y: 0.1, Width: 0.4, Height: 0.3},
		},
	}
}

func TestScanTolerance(t *testing.T) {
	screens := &fakeScreens{screens: []geometry.Rect{
		{X: 0, Y: 0, Width: 1000, Height: 1000},
	}}

	tests := []struct {
		name  string
		frame geometry.Rect
		match bool
	}{
		{"exact", geometry.Rect{X: 100, Y: 100, Width: 400, Height: 300}, true},
		{"within tolerance", geometry.Rect{X: 104, Y: 96, Width: 403, Height: 297}, true},
		{"x off by 10", geometry.Rect{X: 110, Y: 100, Width: 400, Height: 300}, false},
		{"at tolerance edge", geometry.Rect{X: 106, Y: 94, Width: 406, Height: 294}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lister := &fakeLister{windows: []WindowInfo{
				{ID: 1, Frame: tt.frame, Standard: true, Title: "editor"},
			}}
			matcher := New(lister, screens)

			matches, err := matcher.Scan(testLayout())
			if err != nil {
				t.Fatalf("Scan: %v", err)
			}
			if got := len(matches) == 1; got != tt.match {
				t.Fatalf("matched = %v, want %v", got, tt.match)
			}
			if tt.match && matches[0].ZoneNumber != 1 {
				t.Fatalf("zone = %d, want 1", matches[0].ZoneNumber)
			}
		})
	}
}

func TestScanFirstZoneInOrderWins(t *testing.T) {
	// Two zones with identical frames; zone order decides.
	layout := zone.Layout{
		Name: "dup",
		Zones: []zone.Config{
			{Number: 5, X: 0.1, Y: 0.1, Width: 0.4, Height: 0.3},
			{Number: 2, X: 0.1, Y: 0.1, Width: 0.4, Height: 0.3},
		},
	}
	lister := &fakeLister{windows: []WindowInfo{
		{ID: 1, Frame: geometry.Rect{X: 100, Y: 100, Width: 400, Height: 300}, Standard: true},
	}}
	screens := &fakeScreens{screens: []geometry.Rect{
		{X: 0, Y: 0, Width: 1000, Height: 1000},
	}}

	matches, err := New(lister, screens).Scan(layout)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1 (one window, one match)", len(matches))
	}
	if matches[0].ZoneNumber != 5 {
		t.Fatalf("zone = %d, want 5 (first in layout order)", matches[0].ZoneNumber)
	}
}

func TestScanFiltersNonStandard(t *testing.T) {
	lister := &fakeLister{windows: []WindowInfo{
		{ID: 1, Frame: geometry.Rect{X: 100, Y: 100, Width: 400, Height: 300}, Standard: false, Title: "dock"},
	}}
	screens := &fakeScreens{screens: []geometry.Rect{
		{X: 0, Y: 0, Width: 1000, Height: 1000},
	}}

	matches, err := New(lister, screens).Scan(testLayout())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("matches = %d, want 0 (non-standard windows are filtered)", len(matches))
	}
}

func TestScanSkipsUnresolvableWindows(t *testing.T) {
	lister := &fakeLister{windows: []WindowInfo{
		// Midpoint off every screen.
		{ID: 1, Frame: geometry.Rect{X: 5000, Y: 5000, Width: 400, Height: 300}, Standard: true},
		// Empty frame.
		{ID: 2, Frame: geometry.Rect{}, Standard: true},
		// Resolvable and in-zone.
		{ID: 3, Frame: geometry.Rect{X: 100, Y: 100, Width: 400, Height: 300}, Standard: true},
	}}
	screens := &fakeScreens{screens: []geometry.Rect{
		{X: 0, Y: 0, Width: 1000, Height: 1000},
	}}

	matches, err := New(lister, screens).Scan(testLayout())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(matches) != 1 || matches[0].Window.ID != 3 {
		t.Fatalf("matches = %+v, want only window 3", matches)
	}
}

func TestScanMultiScreenResolution(t *testing.T) {
	// Side-by-side 1000x1000 screens; the window sits in the second
	// screen's zone frame.
	screens := &fakeScreens{screens: []geometry.Rect{
		{X: 0, Y: 0, Width: 1000, Height: 1000},
		{X: 1000, Y: 0, Width: 1000, Height: 1000},
	}}
	lister := &fakeLister{windows: []WindowInfo{
		{ID: 1, Frame: geometry.Rect{X: 1100, Y: 100, Width: 400, Height: 300}, Standard: true},
	}}

	matches, err := New(lister, screens).Scan(testLayout())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}
	if matches[0].ScreenIndex != 1 {
		t.Fatalf("screen = %d, want 1", matches[0].ScreenIndex)
	}
}

func TestScanListerError(t *testing.T) {
	wantErr := errors.New("connection lost")
	lister := &fakeLister{err: wantErr}

	_, err := New(lister, &fakeScreens{}).Scan(testLayout())
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want wrapped %v", err, wantErr)
	}
}
