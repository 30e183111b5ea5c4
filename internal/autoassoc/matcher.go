// Package autoassoc re-associates windows that already sit in a zone.
//
// After a layout switch or daemon restart the placement ledger is empty even
// though windows may still occupy zone frames from a previous session. The
// matcher scans the current window population and reports every standard
// window whose frame lies within tolerance of a zone, so the engine can
// adopt it without moving anything.
package autoassoc

import (
	"fmt"

	"github.com/1broseidon/zonesnap/internal/geometry"
	"github.com/1broseidon/zonesnap/internal/platform"
	"github.com/1broseidon/zonesnap/internal/zone"
)

// Tolerance is the per-edge slack, in engine units, allowed between a window
// frame and a zone frame for the two to count as the same placement. Window
// managers routinely nudge frames by a few pixels for borders and shadows.
const Tolerance = 6.0

// WindowInfo is the per-window snapshot the matcher operates on. Frames are
// resolved once, up front, by the lister; the matcher itself never talks to
// the window server.
type WindowInfo struct {
	ID       platform.WindowID
	Handle   platform.WindowHandle
	Frame    geometry.Rect
	Standard bool
	Title    string
}

// Lister enumerates candidate windows with their current frames.
type Lister interface {
	Windows() ([]WindowInfo, error)
}

// Screens resolves a point to the screen containing it.
type Screens interface {
	ScreenFor(x, y float64) (index int, bounds geometry.Rect, ok bool)
}

// Match pairs a window with the zone it was found occupying.
type Match struct {
	Window      WindowInfo
	ZoneNumber  int
	ScreenIndex int
}

// Matcher scans batches of windows against a layout's zones.
type Matcher struct {
	windows Lister
	screens Screens
}

// New creates a matcher over the given window and screen sources.
func New(windows Lister, screens Screens) *Matcher {
	return &Matcher{windows: windows, screens: screens}
}

// Scan returns all standard windows whose frame matches a zone of layout.
// Each window is resolved against the screen containing its frame midpoint;
// zones are tried in layout order and the first within-tolerance zone wins.
// Windows that cannot be resolved (empty frame, midpoint off every screen)
// are skipped, never reported as errors.
func (m *Matcher) Scan(layout zone.Layout) ([]Match, error) {
	windows, err := m.windows.Windows()
	if err != nil {
		return nil, fmt.Errorf("auto-association scan: %w", err)
	}

	var matches []Match
	for _, w := range windows {
		if !w.Standard {
			continue
		}
		if w.Frame.Empty() {
			continue
		}

		screenIdx, screenBounds, ok := m.screens.ScreenFor(w.Frame.MidX(), w.Frame.MidY())
		if !ok {
			continue
		}

		for _, zc := range layout.Zones {
			target := zc.AbsoluteRect(screenBounds)
			if geometry.WithinTolerance(w.Frame, target, Tolerance) {
				matches = append(matches, Match{
					Window:      w,
					ZoneNumber:  zc.Number,
					ScreenIndex: screenIdx,
				})
				break
			}
		}
	}

	return matches, nil
}
