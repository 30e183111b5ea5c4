// Package overlay renders zone outlines on screen.
//
// Each zone is drawn as four thin override-redirect windows forming a border,
// plus a small label window showing the zone number. Override-redirect keeps
// the window manager from decorating or focusing them.
package overlay

import (
	"fmt"
	"strconv"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// Border colors
const (
	ColorZone      = 0x3498db // Blue - zone outline
	ColorHighlight = 0x27ae60 // Green - zone under the pointer / selected
	ColorLabelText = 0xf5f7fa
	ColorLabelBg   = 0x1f2933
)

// BorderThickness is the zone outline width in pixels.
const BorderThickness = 4

const (
	labelPaddingX   = 10
	labelPaddingY   = 8
	labelLineHeight = 16
	labelCharWidth  = 7
)

// Zone is one rectangle to outline, in root pixel coordinates.
type Zone struct {
	Number      int
	X, Y        int
	Width       int
	Height      int
	Highlighted bool
}

// borderOverlay is a rectangular border made of 4 thin windows.
type borderOverlay struct {
	top     xproto.Window
	bottom  xproto.Window
	left    xproto.Window
	right   xproto.Window
	created bool
	mapped  bool
}

// labelOverlay is a small text window carrying a zone number.
type labelOverlay struct {
	window   xproto.Window
	gc       xproto.Gcontext
	font     xproto.Font
	created  bool
	mapped   bool
	disabled bool
}

// Manager owns the overlay windows, reusing them across show/hide cycles.
type Manager struct {
	xu   *xgbutil.XUtil
	root xproto.Window

	borders []*borderOverlay
	labels  []*labelOverlay
}

// NewManager creates an overlay manager drawing on the given root window.
func NewManager(xu *xgbutil.XUtil, root xproto.Window) *Manager {
	return &Manager{xu: xu, root: root}
}

// ShowZones draws a border and number label for every zone, hiding any
// leftover windows from a previous, larger layout.
func (m *Manager) ShowZones(zones []Zone) error {
	if m.xu == nil {
		return fmt.Errorf("overlay manager has no X connection")
	}

	if err := m.ensureBorders(len(zones)); err != nil {
		return err
	}

	for i, z := range zones {
		color := uint32(ColorZone)
		if z.Highlighted {
			color = ColorHighlight
		}
		if err := m.showBorder(m.borders[i], z, color); err != nil {
			return err
		}
		m.showLabel(i, z)
	}
	return nil
}

// HideAll hides every overlay window without destroying it.
func (m *Manager) HideAll() {
	for _, border := range m.borders {
		m.hideBorder(border)
	}
	for _, label := range m.labels {
		m.hideLabel(label)
	}
}

// Cleanup destroys all overlay windows.
func (m *Manager) Cleanup() {
	for _, border := range m.borders {
		m.destroyBorder(border)
	}
	for _, label := range m.labels {
		m.destroyLabel(label)
	}
	m.borders = nil
	m.labels = nil
}

func (m *Manager) ensureBorders(count int) error {
	for i := count; i < len(m.borders); i++ {
		m.hideBorder(m.borders[i])
	}
	for i := count; i < len(m.labels); i++ {
		m.hideLabel(m.labels[i])
	}

	for len(m.borders) < count {
		border := &borderOverlay{}
		if err := m.createBorderWindows(border); err != nil {
			return err
		}
		m.borders = append(m.borders, border)
	}
	for len(m.labels) < count {
		m.labels = append(m.labels, &labelOverlay{})
	}
	return nil
}

func (m *Manager) showBorder(border *borderOverlay, z Zone, color uint32) error {
	if !border.created {
		if err := m.createBorderWindows(border); err != nil {
			return err
		}
	}

	x, y := z.X, z.Y
	w, h := z.Width, z.Height
	t := BorderThickness

	m.updateWindow(border.top, x, y, w, t, color)
	m.updateWindow(border.bottom, x, y+h-t, w, t, color)
	m.updateWindow(border.left, x, y+t, t, h-2*t, color)
	m.updateWindow(border.right, x+w-t, y+t, t, h-2*t, color)

	conn := m.xu.Conn()
	xproto.MapWindow(conn, border.top)
	xproto.MapWindow(conn, border.bottom)
	xproto.MapWindow(conn, border.left)
	xproto.MapWindow(conn, border.right)

	border.mapped = true
	return nil
}

func (m *Manager) hideBorder(border *borderOverlay) {
	if !border.mapped {
		return
	}

	conn := m.xu.Conn()
	xproto.UnmapWindow(conn, border.top)
	xproto.UnmapWindow(conn, border.bottom)
	xproto.UnmapWindow(conn, border.left)
	xproto.UnmapWindow(conn, border.right)

	border.mapped = false
}

func (m *Manager) destroyBorder(border *borderOverlay) {
	conn := m.xu.Conn()
	for _, wid := range []xproto.Window{border.top, border.bottom, border.left, border.right} {
		if wid != 0 {
			xproto.DestroyWindow(conn, wid)
		}
	}
	*border = borderOverlay{}
}

func (m *Manager) createBorderWindows(border *borderOverlay) error {
	var err error

	if border.top, err = m.createOverrideRedirectWindow(); err != nil {
		return err
	}
	if border.bottom, err = m.createOverrideRedirectWindow(); err != nil {
		return err
	}
	if border.left, err = m.createOverrideRedirectWindow(); err != nil {
		return err
	}
	if border.right, err = m.createOverrideRedirectWindow(); err != nil {
		return err
	}

	border.created = true
	return nil
}

func (m *Manager) createOverrideRedirectWindow() (xproto.Window, error) {
	conn := m.xu.Conn()
	screen := m.xu.Screen()

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return 0, err
	}

	// override_redirect=true bypasses the window manager entirely.
	err = xproto.CreateWindowChecked(
		conn,
		screen.RootDepth,
		wid,
		m.root,
		0, 0,
		1, 1,
		0,
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwOverrideRedirect|xproto.CwBackPixel,
		// Value list order follows the bit positions of the mask (low to
		// high); CwBackPixel precedes CwOverrideRedirect.
		[]uint32{0, 1},
	).Check()
	if err != nil {
		return 0, err
	}

	return wid, nil
}

func (m *Manager) updateWindow(wid xproto.Window, x, y, width, height int, color uint32) {
	conn := m.xu.Conn()

	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	xproto.ConfigureWindow(
		conn,
		wid,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|xproto.ConfigWindowStackMode,
		[]uint32{
			uint32(x),
			uint32(y),
			uint32(width),
			uint32(height),
			xproto.StackModeAbove,
		},
	)

	xproto.ChangeWindowAttributes(conn, wid, xproto.CwBackPixel, []uint32{color})
	xproto.ClearArea(conn, false, wid, 0, 0, 0, 0)
}

func (m *Manager) showLabel(idx int, z Zone) {
	label := m.labels[idx]
	if !m.ensureLabelResources(label) {
		return
	}

	conn := m.xu.Conn()
	text := strconv.Itoa(z.Number)
	width := len(text)*labelCharWidth + 2*labelPaddingX
	height := labelLineHeight + 2*labelPaddingY

	// Centered in the zone so the number reads at a glance.
	x := z.X + (z.Width-width)/2
	y := z.Y + (z.Height-height)/2
	if x < z.X+BorderThickness {
		x = z.X + BorderThickness
	}
	if y < z.Y+BorderThickness {
		y = z.Y + BorderThickness
	}

	xproto.ConfigureWindow(
		conn,
		label.window,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|xproto.ConfigWindowStackMode,
		[]uint32{
			uint32(x),
			uint32(y),
			uint32(width),
			uint32(height),
			xproto.StackModeAbove,
		},
	)
	xproto.ChangeWindowAttributes(conn, label.window, xproto.CwBackPixel, []uint32{ColorLabelBg})
	xproto.ChangeGC(
		conn,
		label.gc,
		xproto.GcForeground|xproto.GcBackground,
		[]uint32{ColorLabelText, ColorLabelBg},
	)
	xproto.ClearArea(conn, false, label.window, 0, 0, 0, 0)

	baseline := labelPaddingY + labelLineHeight - 4
	xproto.ImageText8(
		conn,
		byte(len(text)),
		xproto.Drawable(label.window),
		label.gc,
		int16(labelPaddingX),
		int16(baseline),
		text,
	)

	xproto.MapWindow(conn, label.window)
	label.mapped = true
}

func (m *Manager) ensureLabelResources(label *labelOverlay) bool {
	if label.disabled {
		return false
	}
	if label.created {
		return true
	}

	conn := m.xu.Conn()

	window, err := m.createOverrideRedirectWindow()
	if err != nil {
		label.disabled = true
		return false
	}

	font, err := xproto.NewFontId(conn)
	if err != nil {
		xproto.DestroyWindow(conn, window)
		label.disabled = true
		return false
	}

	fontNames := []string{"fixed", "9x15", "8x13", "6x13"}
	opened := false
	for _, fontName := range fontNames {
		if err := xproto.OpenFontChecked(conn, font, uint16(len(fontName)), fontName).Check(); err == nil {
			opened = true
			break
		}
	}
	if !opened {
		xproto.DestroyWindow(conn, window)
		label.disabled = true
		return false
	}

	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		xproto.CloseFont(conn, font)
		xproto.DestroyWindow(conn, window)
		label.disabled = true
		return false
	}

	err = xproto.CreateGCChecked(
		conn,
		gc,
		xproto.Drawable(window),
		xproto.GcForeground|xproto.GcBackground|xproto.GcFont|xproto.GcGraphicsExposures,
		[]uint32{
			ColorLabelText,
			ColorLabelBg,
			uint32(font),
			0,
		},
	).Check()
	if err != nil {
		xproto.FreeGC(conn, gc)
		xproto.CloseFont(conn, font)
		xproto.DestroyWindow(conn, window)
		label.disabled = true
		return false
	}

	label.window = window
	label.gc = gc
	label.font = font
	label.created = true
	return true
}

func (m *Manager) hideLabel(label *labelOverlay) {
	if !label.mapped {
		return
	}
	xproto.UnmapWindow(m.xu.Conn(), label.window)
	label.mapped = false
}

func (m *Manager) destroyLabel(label *labelOverlay) {
	conn := m.xu.Conn()
	if label.gc != 0 {
		xproto.FreeGC(conn, label.gc)
	}
	if label.font != 0 {
		xproto.CloseFont(conn, label.font)
	}
	if label.window != 0 {
		xproto.DestroyWindow(conn, label.window)
	}
	*label = labelOverlay{}
}
