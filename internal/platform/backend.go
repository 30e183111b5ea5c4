package platform

// WindowID is the stable numeric window identifier assigned by the window
// server. It is the sole key for all placement bookkeeping.
type WindowID uint32

// WindowHandle is an opaque reference to a window owned by another process.
// Unlike a WindowID it is not a durable identifier: it goes stale when the
// window closes, so every handle-based operation re-validates before use.
type WindowHandle struct {
	ref uint32
}

// HandleFor wraps a window identifier in an opaque handle.
func HandleFor(id WindowID) WindowHandle {
	return WindowHandle{ref: uint32(id)}
}

// IsZero reports whether the handle refers to nothing.
func (h WindowHandle) IsZero() bool {
	return h.ref == 0
}

// Rect describes a rectangular region in pixel screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Display describes a physical display and its usable work area.
type Display struct {
	ID     int
	Name   string
	Bounds Rect
	Usable Rect
}

// Window contains metadata and geometry for a top-level window.
type Window struct {
	ID       WindowID
	Handle   WindowHandle
	PID      int
	AppID    string
	Title    string
	Bounds   Rect
	Standard bool
	Desktop  int
}

// Backend abstracts window-system operations across platforms.
type Backend interface {
	Displays() ([]Display, error)
	ActiveDisplay() (Display, error)
	ActiveWindow() (WindowID, error)
	CurrentDesktop() (int, error)
	ListWindows() ([]Window, error)
	ResolveHandle(handle WindowHandle) (WindowID, error)
	WindowFrame(windowID WindowID) (Rect, error)
	MoveResize(windowID WindowID, bounds Rect) error
	Raise(windowID WindowID) error
	PointerPosition() (x, y int, err error)
}
