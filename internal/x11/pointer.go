package x11

import (
	"fmt"
	"log"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
)

// PointerPosition returns the pointer location in root coordinates.
func (c *Connection) PointerPosition() (int, int, error) {
	reply, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query pointer: %w", err)
	}
	return int(reply.RootX), int(reply.RootY), nil
}

// DragInProgress reports whether the primary mouse button is currently held,
// the closest X11 approximation of "a window move is in progress."
func (c *Connection) DragInProgress() (bool, error) {
	reply, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return false, fmt.Errorf("failed to query pointer: %w", err)
	}
	return reply.Mask&xproto.ButtonMaskAny != 0 && reply.Mask&xproto.ButtonMask1 != 0, nil
}

// RightClickWatch is a passive synchronous grab on button 3. While the
// primary button is held (a drag), the press is consumed and reported to the
// callback; otherwise it is replayed to the client underneath, so normal
// right-click behavior is unaffected.
type RightClickWatch struct {
	xu       *xgbutil.XUtil
	root     xproto.Window
	onToggle func(dragging bool)
	active   bool
}

// NewRightClickWatch creates an inactive watch. onToggle runs on the X event
// loop goroutine; callers funnel it onto the owner thread themselves.
func NewRightClickWatch(xu *xgbutil.XUtil, root xproto.Window, onToggle func(dragging bool)) *RightClickWatch {
	return &RightClickWatch{xu: xu, root: root, onToggle: onToggle}
}

// Start installs the grab and the button-press handler.
func (w *RightClickWatch) Start() error {
	if w.active {
		return nil
	}

	conn := w.xu.Conn()
	err := xproto.GrabButtonChecked(
		conn,
		false,
		w.root,
		uint16(xproto.EventMaskButtonPress),
		xproto.GrabModeSync,
		xproto.GrabModeAsync,
		xproto.WindowNone,
		xproto.CursorNone,
		3, // right button
		xproto.ModMaskAny,
	).Check()
	if err != nil {
		return fmt.Errorf("failed to grab button 3: %w", err)
	}

	xevent.ButtonPressFun(w.handlePress).Connect(w.xu, w.root)
	w.active = true
	return nil
}

// Stop releases the grab.
func (w *RightClickWatch) Stop() {
	if !w.active {
		return
	}
	if err := xproto.UngrabButtonChecked(w.xu.Conn(), 3, w.root, xproto.ModMaskAny).Check(); err != nil {
		log.Printf("right-click watch: ungrab failed: %v", err)
	}
	w.active = false
}

func (w *RightClickWatch) handlePress(xu *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
	if ev.Detail != 3 {
		xproto.AllowEvents(xu.Conn(), xproto.AllowReplayPointer, ev.Time)
		return
	}

	dragging := ev.State&xproto.ButtonMask1 != 0
	if dragging {
		// Consume the press; a right click mid-drag is ours.
		xproto.AllowEvents(xu.Conn(), xproto.AllowAsyncPointer, ev.Time)
	} else {
		// Not dragging: hand the click back to whoever it was for.
		xproto.AllowEvents(xu.Conn(), xproto.AllowReplayPointer, ev.Time)
	}

	if w.onToggle != nil {
		w.onToggle(dragging)
	}
}
