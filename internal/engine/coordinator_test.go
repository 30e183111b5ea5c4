package engine

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/1broseidon/zonesnap/internal/prefs"
	"github.com/1broseidon/zonesnap/internal/zone"
)

type fakeContext struct {
	screen  int
	desktop int
}

func (f *fakeContext) CurrentScreen() (int, error)  { return f.screen, nil }
func (f *fakeContext) CurrentDesktop() (int, error) { return f.desktop, nil }

type coordinatorHarness struct {
	coord        *Coordinator
	ctx          *fakeContext
	perDesktop   bool
	editsCancel  int
	zonesHidden  int
	layoutsHid   int
	navCloses    int
	rescans      int
	rescanActive string
}

func newCoordinatorHarness(t *testing.T) *coordinatorHarness {
	t.Helper()

	layouts := zone.NewStore([]zone.Layout{
		{Name: "Work", Zones: []zone.Config{{Number: 1, Width: 0.5, Height: 1}}},
		{Name: "Home", Zones: []zone.Config{{Number: 1, Width: 1, Height: 0.5}}},
	}, "Work")

	store := prefs.Load(filepath.Join(t.TempDir(), "prefs.json"))
	store.Set(prefs.Key{Screen: 0, Desktop: 5}, "Work")
	store.Set(prefs.Key{Screen: 0, Desktop: 7}, "Home")

	h := &coordinatorHarness{
		ctx:        &fakeContext{screen: 0, desktop: 5},
		perDesktop: true,
	}
	trigger := NewTrigger(TriggerConfig{
		HoldDelay:        func() time.Duration { return time.Hour },
		RightClickToggle: func() bool { return true },
	}, func(fn func()) { fn() }, Hooks{})

	h.coord = &Coordinator{
		Trigger:        trigger,
		Layouts:        layouts,
		Prefs:          store,
		Resolver:       h.ctx,
		PerDesktop:     func() bool { return h.perDesktop },
		CancelEdit:     func() { h.editsCancel++ },
		HideZones:      func() { h.zonesHidden++ },
		HideLayout:     func() { h.layoutsHid++ },
		CloseNavigator: func() { h.navCloses++ },
		Rescan: func() {
			h.rescans++
			h.rescanActive = layouts.ActiveName()
		},
	}
	return h
}

func TestDesktopSwitchAppliesPreferredLayout(t *testing.T) {
	h := newCoordinatorHarness(t)

	h.ctx.desktop = 7
	h.coord.HandleDesktopSwitch()

	if got := h.coord.Layouts.ActiveName(); got != "Home" {
		t.Fatalf("active layout = %q, want Home", got)
	}
	if h.layoutsHid != 1 {
		t.Fatalf("layout hides = %d, want 1 (previous layout hidden)", h.layoutsHid)
	}
	if h.editsCancel != 1 || h.zonesHidden != 1 || h.navCloses != 1 {
		t.Fatalf("teardown = (edits %d, zones %d, nav %d), want all 1",
			h.editsCancel, h.zonesHidden, h.navCloses)
	}
}

func TestDesktopSwitchDropsShowingState(t *testing.T) {
	h := newCoordinatorHarness(t)
	h.coord.Trigger.RightClick(true)
	if !h.coord.Trigger.Showing() {
		t.Fatal("setup: trigger should be showing")
	}

	h.coord.HandleDesktopSwitch()
	if h.coord.Trigger.State() != StateIdle {
		t.Fatalf("state = %v, want idle", h.coord.Trigger.State())
	}
}

func TestDesktopSwitchWithPerDesktopDisabled(t *testing.T) {
	h := newCoordinatorHarness(t)
	h.perDesktop = false

	h.ctx.desktop = 7
	h.coord.HandleDesktopSwitch()

	if got := h.coord.Layouts.ActiveName(); got != "Work" {
		t.Fatalf("active layout = %q, want unchanged Work", got)
	}
	if h.navCloses != 1 {
		t.Fatal("navigator must still close on desktop switch")
	}
}

func TestDesktopSwitchStalePreferenceFallsBack(t *testing.T) {
	h := newCoordinatorHarness(t)
	h.coord.Prefs.Set(prefs.Key{Screen: 0, Desktop: 9}, "Gone")

	h.ctx.desktop = 9
	h.coord.HandleDesktopSwitch()

	got := h.coord.Layouts.ActiveName()
	if !h.coord.Layouts.Has(got) {
		t.Fatalf("active layout = %q, want some valid layout", got)
	}
}

func TestDesktopSwitchRescansUnderNewLayout(t *testing.T) {
	h := newCoordinatorHarness(t)

	h.ctx.desktop = 7
	h.coord.HandleDesktopSwitch()

	if h.rescans != 1 {
		t.Fatalf("rescans = %d, want 1 (auto-association runs after a desktop switch)", h.rescans)
	}
	if h.rescanActive != "Home" {
		t.Fatalf("rescan saw active layout %q, want Home (rescan runs after the layout swap)", h.rescanActive)
	}
}

func TestDisplayChangeRescans(t *testing.T) {
	h := newCoordinatorHarness(t)

	h.ctx.desktop = 7
	h.coord.HandleDisplayChange()

	if h.rescans != 1 || h.rescanActive != "Home" {
		t.Fatalf("rescans = %d under %q, want 1 under Home", h.rescans, h.rescanActive)
	}
}

func TestDisplayChangeSkipsEditTeardown(t *testing.T) {
	h := newCoordinatorHarness(t)

	h.ctx.desktop = 7
	h.coord.HandleDisplayChange()

	if h.editsCancel != 0 || h.zonesHidden != 0 {
		t.Fatalf("display change ran desktop-only teardown (edits %d, zones %d)",
			h.editsCancel, h.zonesHidden)
	}
	if h.navCloses != 1 {
		t.Fatal("navigator must close on display change")
	}
	if got := h.coord.Layouts.ActiveName(); got != "Home" {
		t.Fatalf("active layout = %q, want Home", got)
	}
}
