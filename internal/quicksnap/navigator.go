// Package quicksnap implements the keyboard-driven window picker.
//
// The navigator lists visible windows most-recently-focused first; digit
// keys snap the selected window into a zone, arrows cycle windows and
// layouts, and a dedicated key restores the selection's pre-snap frame.
// Anything stale (closed window, vanished zone) is skipped silently so one
// dead entry never takes the whole session down.
package quicksnap

import (
	"log"
	"time"

	"github.com/1broseidon/zonesnap/internal/engine"
	"github.com/1broseidon/zonesnap/internal/geometry"
	"github.com/1broseidon/zonesnap/internal/placement"
	"github.com/1broseidon/zonesnap/internal/platform"
	"github.com/1broseidon/zonesnap/internal/zone"
)

// zoneShowDelay lets the panel settle before zones appear.
const zoneShowDelay = 500 * time.Millisecond

// refocusDelay is the follow-up re-focus that wins the focus race against a
// just-activated application.
const refocusDelay = 50 * time.Millisecond

// Item is one selectable window in the navigator list.
type Item struct {
	ID     platform.WindowID
	Handle platform.WindowHandle
	Title  string
	AppID  string
}

// Direction is an arrow key.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Lister enumerates currently visible standard windows, already filtered to
// those with a non-empty title, in enumeration order.
type Lister interface {
	VisibleWindows() ([]Item, error)
}

// Panel is the navigator's on-screen list surface.
type Panel interface {
	Show(items []Item, selected int)
	SetSelected(selected int)
	Hide()
	Focus()
}

// Zones resolves the active layout's zone frames on the focused screen.
type Zones interface {
	ZoneRect(number int) (rect geometry.Rect, screenIndex int, ok bool)
}

// Deps wires the navigator into the rest of the engine.
type Deps struct {
	Windows Lister
	MRU     *MRU
	Panel   Panel
	Zones   Zones
	Snapper *engine.Snapper
	Layouts *zone.Store
	Trigger *engine.Trigger

	// PrepareLayout re-resolves the per-desktop layout preference.
	PrepareLayout func()
	ShowZones     func()
	HideZones     func()
	HideLayout    func()
	Raise         func(platform.WindowID)
	Desktop       func() int
	ScreenIndex   func() int

	// Post funnels timer callbacks onto the owner thread.
	Post func(func())

	// OnOpened and OnClosed bracket the session; the daemon uses them to
	// grab and release the keyboard.
	OnOpened func()
	OnClosed func()
}

// Navigator is the quick-snap session controller. All methods must run on
// the owner thread.
type Navigator struct {
	deps Deps

	open     bool
	items    []Item
	selected int

	showTimer    engine.Timer
	refocusTimer engine.Timer
}

// New creates a closed navigator.
func New(deps Deps) *Navigator {
	if deps.Post == nil {
		deps.Post = func(fn func()) { fn() }
	}
	return &Navigator{deps: deps}
}

// IsOpen reports whether a session is active.
func (n *Navigator) IsOpen() bool { return n.open }

// Open starts a session. Opening while already open restarts: the previous
// session is closed first so state never leaks between sessions.
func (n *Navigator) Open() {
	if n.open {
		n.Close()
	}

	if n.deps.PrepareLayout != nil {
		n.deps.PrepareLayout()
	}
	n.reloadWindows()

	n.deps.Trigger.NavigatorOpened()
	n.deps.Panel.Show(n.items, n.selected)
	n.deps.Panel.Focus()
	n.open = true
	if n.deps.OnOpened != nil {
		n.deps.OnOpened()
	}

	n.showTimer.Schedule(zoneShowDelay, func() {
		n.deps.Post(func() {
			if n.open && n.deps.ShowZones != nil {
				n.deps.ShowZones()
			}
		})
	})
}

// Close ends the session. Every exit path (Escape, Enter, explicit close,
// desktop switch) funnels through here and behaves identically.
func (n *Navigator) Close() {
	if !n.open {
		return
	}

	n.showTimer.Cancel()
	n.refocusTimer.Cancel()
	n.deps.Panel.Hide()
	if n.deps.HideZones != nil {
		n.deps.HideZones()
	}
	n.deps.Trigger.NavigatorClosed()
	n.open = false
	n.items = nil
	n.selected = 0
	if n.deps.OnClosed != nil {
		n.deps.OnClosed()
	}
}

// Toggle opens a closed navigator and closes an open one.
func (n *Navigator) Toggle() {
	if n.open {
		n.Close()
		return
	}
	n.Open()
}

// HandleDigit snaps the selected window into zone digit (1-9). A missing
// selection or unresolvable zone is skipped silently.
func (n *Navigator) HandleDigit(digit int) {
	if !n.open || digit < 1 || digit > 9 {
		return
	}

	item, ok := n.selectedItem()
	if !ok {
		return
	}

	rect, screenIdx, ok := n.deps.Zones.ZoneRect(digit)
	if !ok {
		return
	}

	desktop := 0
	if n.deps.Desktop != nil {
		desktop = n.deps.Desktop()
	}
	rec := placement.Record{
		ZoneNumber:   digit,
		LayoutName:   n.deps.Layouts.ActiveName(),
		ScreenIndex:  screenIdx,
		DesktopIndex: desktop,
		Handle:       item.Handle,
	}

	if err := n.deps.Snapper.Snap(item.ID, rec, rect); err != nil {
		log.Printf("quick snap: %v", err)
		return
	}

	if n.deps.Raise != nil {
		n.deps.Raise(item.ID)
	}
	n.deps.Panel.Focus()
	n.refocusTimer.Schedule(refocusDelay, func() {
		n.deps.Post(func() {
			if n.open {
				n.deps.Panel.Focus()
			}
		})
	})
}

// HandleArrow cycles the selected window (up/down) or the active layout
// (left/right), both with wrap-around.
func (n *Navigator) HandleArrow(dir Direction) {
	if !n.open {
		return
	}

	switch dir {
	case DirUp:
		n.cycleWindow(-1)
	case DirDown:
		n.cycleWindow(1)
	case DirLeft:
		n.cycleLayout(-1)
	case DirRight:
		n.cycleLayout(1)
	}
}

// HandleUnsnap restores the selected window to its pre-snap frame. A no-op
// for unplaced windows.
func (n *Navigator) HandleUnsnap() {
	if !n.open {
		return
	}

	item, ok := n.selectedItem()
	if !ok {
		return
	}
	n.deps.Snapper.Unsnap(item.ID)
}

// Selected returns the highlighted item, for status reporting.
func (n *Navigator) Selected() (Item, bool) {
	return n.selectedItem()
}

func (n *Navigator) cycleWindow(delta int) {
	count := len(n.items)
	if count < 2 {
		return
	}
	n.selected = ((n.selected+delta)%count + count) % count
	n.deps.Panel.SetSelected(n.selected)
}

func (n *Navigator) cycleLayout(delta int) {
	prev := n.deps.Layouts.ActiveName()
	next := n.deps.Layouts.Cycle(delta)
	if next == "" || next == prev {
		return
	}
	if n.deps.HideLayout != nil && prev != "" {
		n.deps.HideLayout()
	}
	if n.deps.ShowZones != nil {
		n.deps.ShowZones()
	}
}

func (n *Navigator) reloadWindows() {
	items, err := n.deps.Windows.VisibleWindows()
	if err != nil {
		log.Printf("quick snap: window enumeration failed: %v", err)
		n.items = nil
		n.selected = 0
		return
	}

	if n.deps.MRU != nil {
		n.deps.MRU.SortByFocus(items)
	}
	n.items = items
	n.selected = 0
}

func (n *Navigator) selectedItem() (Item, bool) {
	if n.selected < 0 || n.selected >= len(n.items) {
		return Item{}, false
	}
	return n.items[n.selected], true
}
