package zone

import (
	"testing"

	"github.com/1broseidon/zonesnap/internal/geometry"
)

func TestAbsoluteRect(t *testing.T) {
	screen := geometry.Rect{X: 1920, Y: 0, Width: 1920, Height: 1080}

	// Right half of the screen.
	z := Config{Number: 2, X: 0.5, Y: 0, Width: 0.5, Height: 1}
	got := z.AbsoluteRect(screen)
	want := geometry.Rect{X: 2880, Y: 0, Width: 960, Height: 1080}
	if got != want {
		t.Fatalf("AbsoluteRect = %+v, want %+v", got, want)
	}

	// Bottom-left quarter.
	z = Config{Number: 3, X: 0, Y: 0.5, Width: 0.5, Height: 0.5}
	got = z.AbsoluteRect(screen)
	want = geometry.Rect{X: 1920, Y: 540, Width: 960, Height: 540}
	if got != want {
		t.Fatalf("AbsoluteRect = %+v, want %+v", got, want)
	}
}

func TestLayoutValidate(t *testing.T) {
	valid := Layout{
		Name: "halves",
		Zones: []Config{
			{Number: 1, X: 0, Y: 0, Width: 0.5, Height: 1},
			{Number: 2, X: 0.5, Y: 0, Width: 0.5, Height: 1},
		},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid layout rejected: %v", err)
	}

	dup := valid
	dup.Zones = []Config{
		{Number: 1, X: 0, Y: 0, Width: 0.5, Height: 1},
		{Number: 1, X: 0.5, Y: 0, Width: 0.5, Height: 1},
	}
	if err := dup.Validate(); err == nil {
		t.Fatal("expected duplicate zone number to be rejected")
	}

	oversize := valid
	oversize.Zones = []Config{{Number: 1, X: 0.6, Y: 0, Width: 0.5, Height: 1}}
	if err := oversize.Validate(); err == nil {
		t.Fatal("expected zone extending past screen edge to be rejected")
	}

	empty := Layout{Name: "empty"}
	if err := empty.Validate(); err == nil {
		t.Fatal("expected layout without zones to be rejected")
	}
}

func TestLayoutZoneLookup(t *testing.T) {
	l := Layout{
		Name: "thirds",
		Zones: []Config{
			{Number: 1, X: 0, Width: 1.0 / 3, Height: 1},
			{Number: 2, X: 1.0 / 3, Width: 1.0 / 3, Height: 1},
			{Number: 3, X: 2.0 / 3, Width: 1.0 / 3, Height: 1},
		},
	}

	z, ok := l.Zone(2)
	if !ok || z.Number != 2 {
		t.Fatalf("Zone(2) = %+v, %v", z, ok)
	}
	if _, ok := l.Zone(9); ok {
		t.Fatal("Zone(9) should not exist")
	}
}

func testLayouts() []Layout {
	return []Layout{
		{Name: "work", Zones: []Config{{Number: 1, Width: 1, Height: 1}}},
		{Name: "home", Zones: []Config{{Number: 1, Width: 1, Height: 1}}},
		{Name: "wide", Zones: []Config{{Number: 1, Width: 1, Height: 1}}},
	}
}

func TestStoreActiveAndCycle(t *testing.T) {
	s := NewStore(testLayouts(), "work")

	if got := s.ActiveName(); got != "work" {
		t.Fatalf("initial active = %q, want work", got)
	}

	// Sorted order is home, wide, work.
	if got := s.Cycle(1); got != "home" {
		t.Fatalf("Cycle(1) from work = %q, want home (wraparound)", got)
	}
	if got := s.Cycle(-1); got != "work" {
		t.Fatalf("Cycle(-1) = %q, want work", got)
	}
	if got := s.Cycle(-1); got != "wide" {
		t.Fatalf("Cycle(-1) = %q, want wide", got)
	}
}

func TestStoreReplacePreservesActive(t *testing.T) {
	s := NewStore(testLayouts(), "home")

	s.Replace(testLayouts(), "work")
	if got := s.ActiveName(); got != "home" {
		t.Fatalf("active after Replace = %q, want home (preserved)", got)
	}

	// Active layout removed: falls back to the new default.
	s.Replace([]Layout{
		{Name: "solo", Zones: []Config{{Number: 1, Width: 1, Height: 1}}},
	}, "solo")
	if got := s.ActiveName(); got != "solo" {
		t.Fatalf("active after removal = %q, want solo", got)
	}
}

func TestStoreFirstWhenDefaultMissing(t *testing.T) {
	s := NewStore(testLayouts(), "nonexistent")
	if got := s.ActiveName(); got != "home" {
		t.Fatalf("active = %q, want home (first by sorted name)", got)
	}
}
