package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Monitor represents a physical display. The Usable* fields are the bounds
// with dock and panel struts subtracted; zones project onto the usable area.
type Monitor struct {
	ID     int
	Name   string
	X      int
	Y      int
	Width  int
	Height int

	UsableX      int
	UsableY      int
	UsableWidth  int
	UsableHeight int
}

// GetMonitors retrieves all active monitors via XRandR and computes each
// monitor's usable area from the dock struts advertised by EWMH clients.
func (c *Connection) GetMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		// Disabled CRTC
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		if outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(outputInfo.Name)
		}

		m := Monitor{
			ID:     i,
			Name:   name,
			X:      int(crtcInfo.X),
			Y:      int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
		}
		m.UsableX, m.UsableY = m.X, m.Y
		m.UsableWidth, m.UsableHeight = m.Width, m.Height
		monitors = append(monitors, m)
	}

	c.applyUsableAreas(monitors)
	return monitors, nil
}

// GetActiveMonitor returns the monitor considered focused: the one holding
// the active window, falling back to the pointer, then the first monitor.
func (c *Connection) GetActiveMonitor() (*Monitor, error) {
	monitors, err := c.GetMonitors()
	if err != nil {
		return nil, err
	}
	if len(monitors) == 0 {
		return nil, fmt.Errorf("no monitors found")
	}

	if activeWin, err := ewmh.ActiveWindowGet(c.XUtil); err == nil && activeWin != 0 {
		if geom, terr := c.windowCenter(activeWin); terr == nil {
			if mon := monitorAt(monitors, geom.x, geom.y); mon != nil {
				return mon, nil
			}
		}
	}

	if pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply(); err == nil {
		if mon := monitorAt(monitors, int(pointer.RootX), int(pointer.RootY)); mon != nil {
			return mon, nil
		}
	}

	return &monitors[0], nil
}

type point struct{ x, y int }

func (c *Connection) windowCenter(windowID xproto.Window) (point, error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return point{}, err
	}
	translate, err := xproto.TranslateCoordinates(c.XUtil.Conn(), windowID, c.Root, 0, 0).Reply()
	if err != nil {
		return point{}, err
	}
	return point{
		x: int(translate.DstX) + int(geom.Width)/2,
		y: int(translate.DstY) + int(geom.Height)/2,
	}, nil
}

func monitorAt(monitors []Monitor, x, y int) *Monitor {
	for i := range monitors {
		m := &monitors[i]
		if x >= m.X && x < m.X+m.Width && y >= m.Y && y < m.Y+m.Height {
			return m
		}
	}
	return nil
}

// applyUsableAreas shrinks each monitor's usable area by the struts of every
// dock window that overlaps it. Monitors without overlapping docks fall back
// to intersecting with _NET_WORKAREA, which single-monitor WMs keep accurate.
func (c *Connection) applyUsableAreas(monitors []Monitor) {
	struts := c.collectDockStruts()

	anyApplied := false
	for i := range monitors {
		if applyStrutsToMonitor(&monitors[i], struts) {
			anyApplied = true
		}
	}
	if anyApplied {
		return
	}

	workArea, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(workArea) == 0 {
		return
	}
	desktopIndex := 0
	if current, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(current) < len(workArea) {
		desktopIndex = int(current)
	}
	wa := workArea[desktopIndex]

	for i := range monitors {
		m := &monitors[i]
		x1 := max(m.X, int(wa.X))
		y1 := max(m.Y, int(wa.Y))
		x2 := min(m.X+m.Width, int(wa.X)+int(wa.Width))
		y2 := min(m.Y+m.Height, int(wa.Y)+int(wa.Height))
		if x2 > x1 && y2 > y1 {
			m.UsableX, m.UsableY = x1, y1
			m.UsableWidth, m.UsableHeight = x2-x1, y2-y1
		}
	}
}

// strutRects is the strut of one dock window expanded to screen-edge
// rectangles, ready to intersect with monitor bounds.
type strutRects struct {
	left, right, top, bottom rect
}

type rect struct{ x1, y1, x2, y2 int }

func (r rect) intersect(o rect) rect {
	out := rect{
		x1: max(r.x1, o.x1),
		y1: max(r.y1, o.y1),
		x2: min(r.x2, o.x2),
		y2: min(r.y2, o.y2),
	}
	if out.x2 <= out.x1 || out.y2 <= out.y1 {
		return rect{}
	}
	return out
}

func (r rect) width() int  { return r.x2 - r.x1 }
func (r rect) height() int { return r.y2 - r.y1 }
func (r rect) empty() bool { return r.x2 <= r.x1 || r.y2 <= r.y1 }

// collectDockStruts scans EWMH clients for dock windows and converts their
// struts into screen-edge rectangles.
func (c *Connection) collectDockStruts() []strutRects {
	rootGeom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return nil
	}
	rootW := int(rootGeom.Width)
	rootH := int(rootGeom.Height)

	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil
	}

	var out []strutRects
	for _, windowID := range clients {
		types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
		if err != nil {
			continue
		}
		isDock := false
		for _, t := range types {
			if t == "_NET_WM_WINDOW_TYPE_DOCK" {
				isDock = true
				break
			}
		}
		if !isDock {
			continue
		}

		sp, err := ewmh.WmStrutPartialGet(c.XUtil, windowID)
		if err != nil {
			// Some docks only set _NET_WM_STRUT (no partial ranges).
			s, serr := ewmh.WmStrutGet(c.XUtil, windowID)
			if serr != nil {
				continue
			}
			sp = &ewmh.WmStrutPartial{
				Left: s.Left, Right: s.Right, Top: s.Top, Bottom: s.Bottom,
				LeftStartY: 0, LeftEndY: uint(rootH - 1),
				RightStartY: 0, RightEndY: uint(rootH - 1),
				TopStartX: 0, TopEndX: uint(rootW - 1),
				BottomStartX: 0, BottomEndX: uint(rootW - 1),
			}
		}

		out = append(out, strutRects{
			left:   rect{0, int(sp.LeftStartY), int(sp.Left), int(sp.LeftEndY) + 1},
			right:  rect{rootW - int(sp.Right), int(sp.RightStartY), rootW, int(sp.RightEndY) + 1},
			top:    rect{int(sp.TopStartX), 0, int(sp.TopEndX) + 1, int(sp.Top)},
			bottom: rect{int(sp.BottomStartX), rootH - int(sp.Bottom), int(sp.BottomEndX) + 1, rootH},
		})
	}
	return out
}

// applyStrutsToMonitor shrinks one monitor's usable area by every strut
// rectangle overlapping it. Returns whether anything was subtracted.
func applyStrutsToMonitor(m *Monitor, struts []strutRects) bool {
	bounds := rect{m.X, m.Y, m.X + m.Width, m.Y + m.Height}

	var left, right, top, bottom int
	for _, s := range struts {
		if isect := bounds.intersect(s.left); !isect.empty() {
			left = max(left, isect.width())
		}
		if isect := bounds.intersect(s.right); !isect.empty() {
			right = max(right, isect.width())
		}
		if isect := bounds.intersect(s.top); !isect.empty() {
			top = max(top, isect.height())
		}
		if isect := bounds.intersect(s.bottom); !isect.empty() {
			bottom = max(bottom, isect.height())
		}
	}

	if left == 0 && right == 0 && top == 0 && bottom == 0 {
		return false
	}

	m.UsableX = m.X + left
	m.UsableY = m.Y + top
	m.UsableWidth = max(m.Width-left-right, 1)
	m.UsableHeight = max(m.Height-top-bottom, 1)
	return true
}
