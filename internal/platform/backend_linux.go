//go:build linux

package platform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/1broseidon/zonesnap/internal/x11"
)

// LinuxBackend wraps an existing X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// NewLinuxBackendFromDisplay creates a new Linux backend by opening a fresh X11 connection.
func NewLinuxBackendFromDisplay() (*LinuxBackend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn}, nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// EventLoop starts the X11 event loop (blocking).
func (b *LinuxBackend) EventLoop() {
	if b != nil && b.conn != nil {
		b.conn.EventLoop()
	}
}

// XUtil returns the underlying xgbutil connection for X11-specific operations.
func (b *LinuxBackend) XUtil() *xgbutil.XUtil {
	if b == nil || b.conn == nil {
		return nil
	}
	return b.conn.XUtil
}

// RootWindow returns the X11 root window ID.
func (b *LinuxBackend) RootWindow() xproto.Window {
	if b == nil || b.conn == nil {
		return 0
	}
	return b.conn.Root
}

// Connection returns the underlying X11 connection.
func (b *LinuxBackend) Connection() *x11.Connection {
	if b == nil {
		return nil
	}
	return b.conn
}

// Displays returns all active displays in stable ID order. Screen indexes
// used by placement records are indexes into this slice.
func (b *LinuxBackend) Displays() ([]Display, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	monitors, err := conn.GetMonitors()
	if err != nil {
		return nil, err
	}

	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		displays = append(displays, displayFromMonitor(m))
	}

	sort.Slice(displays, func(i, j int) bool {
		return displays[i].ID < displays[j].ID
	})

	return displays, nil
}

// ActiveDisplay returns the display considered focused: the one holding the
// active window, falling back to the pointer, then the first display.
func (b *LinuxBackend) ActiveDisplay() (Display, error) {
	conn, err := b.connection()
	if err != nil {
		return Display{}, err
	}

	active, err := conn.GetActiveMonitor()
	if err != nil {
		return Display{}, err
	}

	return displayFromMonitor(*active), nil
}

// ActiveWindow returns the currently active/focused window ID.
func (b *LinuxBackend) ActiveWindow() (WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}

	wid, err := conn.GetActiveWindow()
	if err != nil {
		return 0, err
	}
	return WindowID(wid), nil
}

// CurrentDesktop returns the active virtual desktop number.
func (b *LinuxBackend) CurrentDesktop() (int, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}
	return conn.GetCurrentDesktop()
}

// ListWindows enumerates top-level windows on the current desktop. Windows
// with a non-normal EWMH type are still returned but flagged non-standard so
// callers can filter without a second round trip.
func (b *LinuxBackend) ListWindows() ([]Window, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	clients, err := ewmh.ClientListGet(conn.XUtil)
	if err != nil {
		return nil, err
	}

	currentDesktop, desktopErr := ewmh.CurrentDesktopGet(conn.XUtil)
	hasCurrentDesktop := desktopErr == nil

	windows := make([]Window, 0, len(clients))
	for _, windowID := range clients {
		desktop := -1
		if d, err := ewmh.WmDesktopGet(conn.XUtil, windowID); err == nil {
			if d != uint(0xFFFFFFFF) {
				desktop = int(d)
			}
		}

		// Windows on other desktops are invisible; skip them. Sticky
		// windows (desktop == -1) stay in.
		if hasCurrentDesktop && desktop >= 0 && desktop != int(currentDesktop) {
			continue
		}

		if b.shouldSkipByState(windowID) {
			continue
		}

		rect, ok := b.windowRect(windowID)
		if !ok {
			continue
		}

		pid := 0
		if p, err := ewmh.WmPidGet(conn.XUtil, windowID); err == nil {
			pid = int(p)
		}

		windows = append(windows, Window{
			ID:       WindowID(windowID),
			Handle:   HandleFor(WindowID(windowID)),
			PID:      pid,
			AppID:    b.windowAppID(windowID),
			Title:    b.windowTitle(windowID),
			Bounds:   rect,
			Standard: conn.IsNormalWindow(windowID),
			Desktop:  desktop,
		})
	}

	return windows, nil
}

// ResolveHandle resolves a handle back to a window ID, verifying the window
// still exists. A closed window yields an error, never a stale ID.
func (b *LinuxBackend) ResolveHandle(handle WindowHandle) (WindowID, error) {
	if handle.IsZero() {
		return 0, fmt.Errorf("empty window handle")
	}

	conn, err := b.connection()
	if err != nil {
		return 0, err
	}

	win := xproto.Window(handle.ref)
	if _, err := xproto.GetWindowAttributes(conn.XUtil.Conn(), win).Reply(); err != nil {
		return 0, fmt.Errorf("window handle is stale: %w", err)
	}
	return WindowID(handle.ref), nil
}

// WindowFrame returns the current root-relative frame of a window.
func (b *LinuxBackend) WindowFrame(windowID WindowID) (Rect, error) {
	if _, err := b.connection(); err != nil {
		return Rect{}, err
	}

	rect, ok := b.windowRect(xproto.Window(windowID))
	if !ok {
		return Rect{}, fmt.Errorf("window %d frame unreadable", windowID)
	}
	return rect, nil
}

// MoveResize moves and resizes a window to the specified bounds.
func (b *LinuxBackend) MoveResize(windowID WindowID, bounds Rect) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}

	return conn.MoveResizeWindow(
		xproto.Window(windowID),
		bounds.X,
		bounds.Y,
		bounds.Width,
		bounds.Height,
	)
}

// Raise activates and raises a window.
func (b *LinuxBackend) Raise(windowID WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.FocusWindow(uint32(windowID))
}

// PointerPosition returns the pointer location in root coordinates.
func (b *LinuxBackend) PointerPosition() (int, int, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, 0, err
	}
	return conn.PointerPosition()
}

func (b *LinuxBackend) shouldSkipByState(windowID xproto.Window) bool {
	states, err := ewmh.WmStateGet(b.conn.XUtil, windowID)
	if err != nil {
		return false
	}
	for _, state := range states {
		switch state {
		case "_NET_WM_STATE_HIDDEN", "_NET_WM_STATE_FULLSCREEN":
			return true
		}
	}
	return false
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

func displayFromMonitor(m x11.Monitor) Display {
	return Display{
		ID:   m.ID,
		Name: m.Name,
		Bounds: Rect{
			X:      m.X,
			Y:      m.Y,
			Width:  m.Width,
			Height: m.Height,
		},
		Usable: Rect{
			X:      m.UsableX,
			Y:      m.UsableY,
			Width:  m.UsableWidth,
			Height: m.UsableHeight,
		},
	}
}

func (b *LinuxBackend) windowRect(windowID xproto.Window) (Rect, bool) {
	conn := b.conn
	geom, err := xproto.GetGeometry(conn.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return Rect{}, false
	}

	translate, err := xproto.TranslateCoordinates(
		conn.XUtil.Conn(),
		windowID,
		conn.Root,
		0, 0,
	).Reply()
	if err != nil {
		return Rect{}, false
	}

	return Rect{
		X:      int(translate.DstX),
		Y:      int(translate.DstY),
		Width:  int(geom.Width),
		Height: int(geom.Height),
	}, true
}

func (b *LinuxBackend) windowAppID(windowID xproto.Window) string {
	wmClass, err := icccm.WmClassGet(b.conn.XUtil, windowID)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(wmClass.Class)
}

func (b *LinuxBackend) windowTitle(windowID xproto.Window) string {
	title, err := ewmh.WmNameGet(b.conn.XUtil, windowID)
	if err == nil {
		title = strings.TrimSpace(title)
		if title != "" {
			return title
		}
	}

	title, err = icccm.WmNameGet(b.conn.XUtil, windowID)
	if err == nil {
		title = strings.TrimSpace(title)
		if title != "" {
			return title
		}
	}

	return ""
}
