package quicksnap

import (
	"testing"
	"time"

	"github.com/1broseidon/zonesnap/internal/engine"
	"github.com/1broseidon/zonesnap/internal/geometry"
	"github.com/1broseidon/zonesnap/internal/placement"
	"github.com/1broseidon/zonesnap/internal/platform"
	"github.com/1broseidon/zonesnap/internal/zone"
)

type fakeLister struct {
	items []Item
	err   error
}

func (f *fakeLister) VisibleWindows() ([]Item, error) {
	return append([]Item(nil), f.items...), f.err
}

type fakePanel struct {
	shown    []Item
	selected int
	shows    int
	hides    int
	focuses  int
}

func (f *fakePanel) Show(items []Item, selected int) {
	f.shown = items
	f.selected = selected
	f.shows++
}
func (f *fakePanel) SetSelected(selected int) { f.selected = selected }
func (f *fakePanel) Hide()                    { f.hides++ }
func (f *fakePanel) Focus()                   { f.focuses++ }

type fakeZones struct {
	rects  map[int]geometry.Rect
	screen int
}

func (f *fakeZones) ZoneRect(number int) (geometry.Rect, int, bool) {
	rect, ok := f.rects[number]
	return rect, f.screen, ok
}

type fakeOps struct {
	frames map[platform.WindowID]geometry.Rect
	raised []platform.WindowID
}

func (f *fakeOps) Frame(id platform.WindowID) (geometry.Rect, bool) {
	frame, ok := f.frames[id]
	return frame, ok
}

func (f *fakeOps) MoveResize(id platform.WindowID, frame geometry.Rect) error {
	f.frames[id] = frame
	return nil
}

func (f *fakeOps) Raise(id platform.WindowID) error {
	f.raised = append(f.raised, id)
	return nil
}

type navHarness struct {
	nav        *Navigator
	panel      *fakePanel
	ops        *fakeOps
	snapper    *engine.Snapper
	layouts    *zone.Store
	zonesShown int
	zonesHid   int
	layoutsHid int
}

func newNavHarness(items []Item, frames map[platform.WindowID]geometry.Rect, zones *fakeZones) *navHarness {
	h := &navHarness{
		panel: &fakePanel{},
		ops:   &fakeOps{frames: frames},
	}
	h.layouts = zone.NewStore([]zone.Layout{
		{Name: "work", Zones: []zone.Config{{Number: 1, Width: 0.5, Height: 1}}},
		{Name: "home", Zones: []zone.Config{{Number: 1, Width: 1, Height: 0.5}}},
	}, "work")
	h.snapper = engine.NewSnapper(placement.NewLedger(), placement.NewGeometryCache(h.ops), h.ops)
	trigger := engine.NewTrigger(engine.TriggerConfig{
		HoldDelay: func() time.Duration { return time.Hour },
	}, func(fn func()) { fn() }, engine.Hooks{})

	h.nav = New(Deps{
		Windows:     &fakeLister{items: items},
		MRU:         &MRU{},
		Panel:       h.panel,
		Zones:       zones,
		Snapper:     h.snapper,
		Layouts:     h.layouts,
		Trigger:     trigger,
		ShowZones:   func() { h.zonesShown++ },
		HideZones:   func() { h.zonesHid++ },
		HideLayout:  func() { h.layoutsHid++ },
		Raise:       func(id platform.WindowID) { h.ops.Raise(id) },
		Desktop:     func() int { return 5 },
		ScreenIndex: func() int { return 0 },
		Post:        func(fn func()) { fn() },
	})
	return h
}

func sampleItems() []Item {
	return []Item{
		{ID: 10, Handle: platform.HandleFor(10), Title: "editor"},
		{ID: 11, Handle: platform.HandleFor(11), Title: "browser"},
		{ID: 12, Handle: platform.HandleFor(12), Title: "terminal"},
	}
}

func TestOpenShowsPanelAndDefersZones(t *testing.T) {
	h := newNavHarness(sampleItems(), map[platform.WindowID]geometry.Rect{}, &fakeZones{})

	h.nav.Open()

	if !h.nav.IsOpen() {
		t.Fatal("navigator should be open")
	}
	if h.panel.shows != 1 || len(h.panel.shown) != 3 {
		t.Fatalf("panel shows = %d with %d items, want 1 show of 3 items", h.panel.shows, len(h.panel.shown))
	}
	if h.zonesShown != 0 {
		t.Fatal("zones must not appear synchronously; the show is delayed")
	}
}

func TestOpenSortsByFocusHistory(t *testing.T) {
	h := newNavHarness(sampleItems(), map[platform.WindowID]geometry.Rect{}, &fakeZones{})
	h.nav.deps.MRU.Touch(11)
	h.nav.deps.MRU.Touch(12) // most recent

	h.nav.Open()

	if h.panel.shown[0].ID != 12 || h.panel.shown[1].ID != 11 || h.panel.shown[2].ID != 10 {
		t.Fatalf("order = %v, want most-recently-focused first (12, 11, 10)",
			[]platform.WindowID{h.panel.shown[0].ID, h.panel.shown[1].ID, h.panel.shown[2].ID})
	}
}

func TestOpenWhileOpenRestarts(t *testing.T) {
	h := newNavHarness(sampleItems(), map[platform.WindowID]geometry.Rect{}, &fakeZones{})

	h.nav.Open()
	h.nav.HandleArrow(DirDown)
	h.nav.Open()

	if !h.nav.IsOpen() {
		t.Fatal("navigator should still be open after restart")
	}
	if h.panel.hides != 1 {
		t.Fatalf("hides = %d, want 1 (restart closes the prior session)", h.panel.hides)
	}
	if sel, _ := h.nav.Selected(); sel.ID != h.panel.shown[0].ID {
		t.Fatal("restart should reset the selection")
	}
}

func TestDigitSnapsSelectedWindow(t *testing.T) {
	original := geometry.Rect{X: 30, Y: 40, Width: 500, Height: 400}
	zoneRect := geometry.Rect{X: 0, Y: 540, Width: 960, Height: 540}
	h := newNavHarness(sampleItems(),
		map[platform.WindowID]geometry.Rect{10: original},
		&fakeZones{rects: map[int]geometry.Rect{4: zoneRect}})

	h.nav.Open()
	h.nav.HandleDigit(4)

	if !h.snapper.Ledger().IsPlaced(10) {
		t.Fatal("selected window should be placed")
	}
	rec, _ := h.snapper.Ledger().Get(10)
	if rec.ZoneNumber != 4 || rec.LayoutName != "work" || rec.DesktopIndex != 5 {
		t.Fatalf("record = %+v, want zone 4 of work on desktop 5", rec)
	}
	if got, _ := h.snapper.Cache().Frame(10); got != original {
		t.Fatalf("captured frame = %+v, want pre-snap %+v", got, original)
	}
	if h.ops.frames[10] != zoneRect {
		t.Fatalf("frame = %+v, want zone %+v", h.ops.frames[10], zoneRect)
	}
	if len(h.ops.raised) != 1 || h.ops.raised[0] != 10 {
		t.Fatalf("raised = %v, want [10]", h.ops.raised)
	}
	if h.panel.focuses < 2 {
		t.Fatalf("focuses = %d, want at least 2 (open focus plus post-snap re-focus)", h.panel.focuses)
	}
}

func TestDigitWithMissingZoneIsSilent(t *testing.T) {
	h := newNavHarness(sampleItems(),
		map[platform.WindowID]geometry.Rect{10: {Width: 100, Height: 100}},
		&fakeZones{rects: map[int]geometry.Rect{}})

	h.nav.Open()
	h.nav.HandleDigit(7)

	if h.snapper.Ledger().Len() != 0 {
		t.Fatal("a missing zone must not place anything")
	}
	if !h.nav.IsOpen() {
		t.Fatal("navigator must stay open after a skipped entry")
	}
}

func TestDigitWithNoWindowsIsSilent(t *testing.T) {
	h := newNavHarness(nil, map[platform.WindowID]geometry.Rect{},
		&fakeZones{rects: map[int]geometry.Rect{1: {Width: 100, Height: 100}}})

	h.nav.Open()
	h.nav.HandleDigit(1)

	if h.snapper.Ledger().Len() != 0 {
		t.Fatal("nothing to place with an empty window list")
	}
}

func TestArrowCyclesWindowsWithWrap(t *testing.T) {
	h := newNavHarness(sampleItems(), map[platform.WindowID]geometry.Rect{}, &fakeZones{})
	h.nav.Open()

	h.nav.HandleArrow(DirDown)
	if sel, _ := h.nav.Selected(); sel.ID != 11 {
		t.Fatalf("selected = %d, want 11", sel.ID)
	}

	h.nav.HandleArrow(DirUp)
	h.nav.HandleArrow(DirUp)
	if sel, _ := h.nav.Selected(); sel.ID != 12 {
		t.Fatalf("selected = %d, want 12 (wraps to last)", sel.ID)
	}
}

func TestArrowCyclesLayouts(t *testing.T) {
	h := newNavHarness(sampleItems(), map[platform.WindowID]geometry.Rect{}, &fakeZones{})
	h.nav.Open()
	h.zonesShown = 0

	h.nav.HandleArrow(DirRight) // sorted names [home, work]; work wraps to home
	if got := h.layouts.ActiveName(); got != "home" {
		t.Fatalf("active layout = %q, want home", got)
	}
	if h.layoutsHid != 1 {
		t.Fatalf("layout hides = %d, want 1 (previous layout hidden before switch)", h.layoutsHid)
	}
	if h.zonesShown != 1 {
		t.Fatalf("zonesShown = %d, want 1 (new layout rendered)", h.zonesShown)
	}
}

func TestUnsnapRestoresSelection(t *testing.T) {
	original := geometry.Rect{X: 30, Y: 40, Width: 500, Height: 400}
	h := newNavHarness(sampleItems(),
		map[platform.WindowID]geometry.Rect{10: original},
		&fakeZones{rects: map[int]geometry.Rect{1: {Width: 960, Height: 1080}}})

	h.nav.Open()
	h.nav.HandleDigit(1)
	h.nav.HandleUnsnap()

	if h.snapper.Ledger().IsPlaced(10) {
		t.Fatal("window should be unplaced")
	}
	if h.ops.frames[10] != original {
		t.Fatalf("frame = %+v, want restored %+v", h.ops.frames[10], original)
	}

	// Unsnap again: no placement, no-op.
	h.nav.HandleUnsnap()
	if h.ops.frames[10] != original {
		t.Fatal("repeat unsnap must not move the window")
	}
}

func TestCloseTearsDownOnce(t *testing.T) {
	h := newNavHarness(sampleItems(), map[platform.WindowID]geometry.Rect{}, &fakeZones{})
	h.nav.Open()

	h.nav.Close()
	if h.nav.IsOpen() {
		t.Fatal("navigator should be closed")
	}
	if h.panel.hides != 1 || h.zonesHid != 1 {
		t.Fatalf("hides = %d, zonesHid = %d; want 1, 1", h.panel.hides, h.zonesHid)
	}

	h.nav.Close() // idempotent
	if h.panel.hides != 1 {
		t.Fatal("second close must be a no-op")
	}
}

func TestToggle(t *testing.T) {
	h := newNavHarness(sampleItems(), map[platform.WindowID]geometry.Rect{}, &fakeZones{})

	h.nav.Toggle()
	if !h.nav.IsOpen() {
		t.Fatal("toggle should open a closed navigator")
	}
	h.nav.Toggle()
	if h.nav.IsOpen() {
		t.Fatal("toggle should close an open navigator")
	}
}
