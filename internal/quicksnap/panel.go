package quicksnap

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

const (
	panelColorText     = 0xf5f7fa
	panelColorSelected = 0x3498db
	panelColorBg       = 0x1f2933

	panelPaddingX   = 10
	panelPaddingY   = 8
	panelLineHeight = 16
	panelCharWidth  = 7
	panelMinWidth   = 260
	panelMaxTitle   = 48
	panelMargin     = 24
)

// XPanel renders the navigator list as a single override-redirect text
// window near the top of the screen.
type XPanel struct {
	xu   *xgbutil.XUtil
	root xproto.Window

	window   xproto.Window
	gc       xproto.Gcontext
	font     xproto.Font
	created  bool
	mapped   bool
	disabled bool

	items    []Item
	selected int
}

var _ Panel = (*XPanel)(nil)

// NewXPanel creates an unmapped panel on the given root window.
func NewXPanel(xu *xgbutil.XUtil, root xproto.Window) *XPanel {
	return &XPanel{xu: xu, root: root}
}

// Show renders the window list with the given selection highlighted.
func (p *XPanel) Show(items []Item, selected int) {
	p.items = items
	p.selected = selected
	p.render()
}

// SetSelected re-renders with a new highlighted row.
func (p *XPanel) SetSelected(selected int) {
	p.selected = selected
	p.render()
}

// Hide unmaps the panel without destroying it.
func (p *XPanel) Hide() {
	if !p.mapped {
		return
	}
	xproto.UnmapWindow(p.xu.Conn(), p.window)
	p.mapped = false
}

// Focus restacks the panel above everything and takes input focus.
func (p *XPanel) Focus() {
	if !p.created {
		return
	}
	conn := p.xu.Conn()
	xproto.ConfigureWindow(
		conn,
		p.window,
		xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove},
	)
	xproto.SetInputFocus(conn, xproto.InputFocusPointerRoot, p.window, xproto.TimeCurrentTime)
}

// Cleanup destroys the panel's X resources.
func (p *XPanel) Cleanup() {
	if !p.created {
		return
	}
	conn := p.xu.Conn()
	if p.gc != 0 {
		xproto.FreeGC(conn, p.gc)
	}
	if p.font != 0 {
		xproto.CloseFont(conn, p.font)
	}
	if p.window != 0 {
		xproto.DestroyWindow(conn, p.window)
	}
	p.window = 0
	p.gc = 0
	p.font = 0
	p.created = false
	p.mapped = false
}

func (p *XPanel) render() {
	if !p.ensureResources() {
		return
	}

	lines := p.buildLines()
	width, height := p.dimensions(lines)
	x, y := p.position(width)

	conn := p.xu.Conn()
	xproto.ConfigureWindow(
		conn,
		p.window,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|xproto.ConfigWindowStackMode,
		[]uint32{
			uint32(x),
			uint32(y),
			uint32(width),
			uint32(height),
			xproto.StackModeAbove,
		},
	)
	xproto.ChangeWindowAttributes(conn, p.window, xproto.CwBackPixel, []uint32{panelColorBg})
	xproto.ClearArea(conn, false, p.window, 0, 0, 0, 0)

	baseline := panelPaddingY + panelLineHeight - 4
	for i, line := range lines {
		if line == "" {
			continue
		}
		if len(line) > 255 {
			line = line[:255]
		}

		fg := uint32(panelColorText)
		// First two lines are the header; item rows start at index 2.
		if i == p.selected+2 {
			fg = panelColorSelected
		}
		xproto.ChangeGC(
			conn,
			p.gc,
			xproto.GcForeground|xproto.GcBackground,
			[]uint32{fg, panelColorBg},
		)

		xproto.ImageText8(
			conn,
			byte(len(line)),
			xproto.Drawable(p.window),
			p.gc,
			int16(panelPaddingX),
			int16(baseline+i*panelLineHeight),
			line,
		)
	}

	xproto.MapWindow(conn, p.window)
	p.mapped = true
}

func (p *XPanel) buildLines() []string {
	lines := []string{
		"Quick Snap: 1-9 zone, arrows cycle, BkSp unsnap, Esc close",
		"",
	}
	if len(p.items) == 0 {
		lines = append(lines, "  (no windows)")
		return lines
	}

	for i, item := range p.items {
		marker := "  "
		if i == p.selected {
			marker = "> "
		}
		title := item.Title
		if len(title) > panelMaxTitle {
			title = title[:panelMaxTitle-3] + "..."
		}
		if item.AppID != "" {
			lines = append(lines, fmt.Sprintf("%s%s - %s", marker, item.AppID, title))
		} else {
			lines = append(lines, marker+title)
		}
	}
	return lines
}

func (p *XPanel) dimensions(lines []string) (width, height int) {
	maxChars := 0
	for _, line := range lines {
		if len(line) > maxChars {
			maxChars = len(line)
		}
	}
	width = maxChars*panelCharWidth + 2*panelPaddingX
	if width < panelMinWidth {
		width = panelMinWidth
	}
	height = len(lines)*panelLineHeight + 2*panelPaddingY
	return width, height
}

func (p *XPanel) position(width int) (x, y int) {
	screen := p.xu.Screen()
	if screen == nil {
		return panelMargin, panelMargin
	}
	x = (int(screen.WidthInPixels) - width) / 2
	if x < 0 {
		x = 0
	}
	return x, panelMargin
}

func (p *XPanel) ensureResources() bool {
	if p.disabled {
		return false
	}
	if p.created {
		return true
	}
	if p.xu == nil {
		p.disabled = true
		return false
	}

	conn := p.xu.Conn()
	screen := p.xu.Screen()

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		p.disabled = true
		return false
	}

	err = xproto.CreateWindowChecked(
		conn,
		screen.RootDepth,
		wid,
		p.root,
		0, 0,
		1, 1,
		0,
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwOverrideRedirect|xproto.CwBackPixel,
		[]uint32{0, 1},
	).Check()
	if err != nil {
		p.disabled = true
		return false
	}

	font, err := xproto.NewFontId(conn)
	if err != nil {
		xproto.DestroyWindow(conn, wid)
		p.disabled = true
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
		xproto.DestroyWindow(conn, wid)
		p.disabled = true
		return false
	}

	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		xproto.CloseFont(conn, font)
		xproto.DestroyWindow(conn, wid)
		p.disabled = true
		return false
	}

	err = xproto.CreateGCChecked(
		conn,
		gc,
		xproto.Drawable(wid),
		xproto.GcForeground|xproto.GcBackground|xproto.GcFont|xproto.GcGraphicsExposures,
		[]uint32{
			panelColorText,
			panelColorBg,
			uint32(font),
			0,
		},
	).Check()
	if err != nil {
		xproto.FreeGC(conn, gc)
		xproto.CloseFont(conn, font)
		xproto.DestroyWindow(conn, wid)
		p.disabled = true
		return false
	}

	p.window = wid
	p.gc = gc
	p.font = font
	p.created = true
	return true
}
