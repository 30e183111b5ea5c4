package daemon

import (
	"github.com/1broseidon/zonesnap/internal/autoassoc"
	"github.com/1broseidon/zonesnap/internal/geometry"
	"github.com/1broseidon/zonesnap/internal/platform"
	"github.com/1broseidon/zonesnap/internal/quicksnap"
	"github.com/1broseidon/zonesnap/internal/zone"
)

// backendAdapter bridges the pixel-space platform backend into the
// float-space engine interfaces. All pixel conversion happens here.
type backendAdapter struct {
	backend platform.Backend
}

func pixelRect(r platform.Rect) geometry.Rect {
	return geometry.FromPixels(r.X, r.Y, r.Width, r.Height)
}

// Frame implements placement.FrameReader.
func (a *backendAdapter) Frame(windowID platform.WindowID) (geometry.Rect, bool) {
	r, err := a.backend.WindowFrame(windowID)
	if err != nil {
		return geometry.Rect{}, false
	}
	return pixelRect(r), true
}

// MoveResize implements engine.WindowOps.
func (a *backendAdapter) MoveResize(windowID platform.WindowID, frame geometry.Rect) error {
	x, y, w, h := frame.Pixels()
	return a.backend.MoveResize(windowID, platform.Rect{X: x, Y: y, Width: w, Height: h})
}

// Raise implements engine.WindowOps.
func (a *backendAdapter) Raise(windowID platform.WindowID) error {
	return a.backend.Raise(windowID)
}

// Windows implements autoassoc.Lister.
func (a *backendAdapter) Windows() ([]autoassoc.WindowInfo, error) {
	wins, err := a.backend.ListWindows()
	if err != nil {
		return nil, err
	}

	out := make([]autoassoc.WindowInfo, 0, len(wins))
	for _, w := range wins {
		out = append(out, autoassoc.WindowInfo{
			ID:       w.ID,
			Handle:   w.Handle,
			Frame:    pixelRect(w.Bounds),
			Standard: w.Standard,
			Title:    w.Title,
		})
	}
	return out, nil
}

// ScreenFor implements autoassoc.Screens. The index is the position in the
// display enumeration, which is also what placement records store.
func (a *backendAdapter) ScreenFor(x, y float64) (int, geometry.Rect, bool) {
	displays, err := a.backend.Displays()
	if err != nil {
		return 0, geometry.Rect{}, false
	}
	for i, d := range displays {
		bounds := pixelRect(d.Usable)
		if bounds.Contains(x, y) {
			return i, bounds, true
		}
	}
	return 0, geometry.Rect{}, false
}

// VisibleWindows implements quicksnap.Lister: standard windows on the
// current desktop, plus sticky windows (desktop -1).
func (a *backendAdapter) VisibleWindows() ([]quicksnap.Item, error) {
	desktop, err := a.backend.CurrentDesktop()
	if err != nil {
		desktop = -1
	}

	wins, err := a.backend.ListWindows()
	if err != nil {
		return nil, err
	}

	items := make([]quicksnap.Item, 0, len(wins))
	for _, w := range wins {
		if !w.Standard {
			continue
		}
		if desktop >= 0 && w.Desktop >= 0 && w.Desktop != desktop {
			continue
		}
		items = append(items, quicksnap.Item{
			ID:     w.ID,
			Handle: w.Handle,
			Title:  w.Title,
			AppID:  w.AppID,
		})
	}
	return items, nil
}

// contextResolver implements prefs.Resolver from the backend.
type contextResolver struct {
	backend platform.Backend
}

func (r *contextResolver) CurrentScreen() (int, error) {
	display, err := r.backend.ActiveDisplay()
	if err != nil {
		return 0, err
	}
	return display.ID, nil
}

func (r *contextResolver) CurrentDesktop() (int, error) {
	return r.backend.CurrentDesktop()
}

// zoneResolver implements quicksnap.Zones: active layout zones projected
// onto the active display's usable area.
type zoneResolver struct {
	layouts *zone.Store
	backend platform.Backend
}

func (z *zoneResolver) ZoneRect(number int) (geometry.Rect, int, bool) {
	layout, ok := z.layouts.Active()
	if !ok {
		return geometry.Rect{}, 0, false
	}
	zc, ok := layout.Zone(number)
	if !ok {
		return geometry.Rect{}, 0, false
	}
	display, err := z.backend.ActiveDisplay()
	if err != nil {
		return geometry.Rect{}, 0, false
	}
	return zc.AbsoluteRect(pixelRect(display.Usable)), display.ID, true
}
