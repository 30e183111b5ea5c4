package quicksnap

import (
	"fmt"
	"log"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

const (
	keysymUp        = 0xff52
	keysymDown      = 0xff54
	keysymLeft      = 0xff51
	keysymRight     = 0xff53
	keysymReturn    = 0xff0d
	keysymEscape    = 0xff1b
	keysymKPEnter   = 0xff8d
	keysymBackspace = 0xff08
	keysym1         = 0x0031
	keysym9         = 0x0039
)

// Keyboard grabs the keyboard for the duration of a navigator session and
// dispatches keysyms to navigator actions through the owner-thread queue.
type Keyboard struct {
	xu   *xgbutil.XUtil
	root xproto.Window
	nav  *Navigator
	post func(func())

	grabWindow xproto.Window
	attached   bool
	grabbed    bool
}

// NewKeyboard creates a keyboard front-end for nav.
func NewKeyboard(xu *xgbutil.XUtil, root xproto.Window, nav *Navigator, post func(func())) *Keyboard {
	return &Keyboard{xu: xu, root: root, nav: nav, post: post}
}

// Grab takes the keyboard. When the grab is entered from a globally grabbed
// hotkey the keyboard may already be held by this client; ungrab and retry
// once before giving up.
func (k *Keyboard) Grab() error {
	if k.grabbed {
		return nil
	}
	if err := k.ensureGrabWindow(); err != nil {
		return err
	}

	conn := k.xu.Conn()
	grab := func() (*xproto.GrabKeyboardReply, error) {
		return xproto.GrabKeyboard(
			conn,
			false,
			k.root,
			xproto.TimeCurrentTime,
			xproto.GrabModeAsync,
			xproto.GrabModeAsync,
		).Reply()
	}

	reply, err := grab()
	if err != nil {
		return err
	}
	if reply.Status == xproto.GrabStatusAlreadyGrabbed {
		xproto.UngrabKeyboard(conn, xproto.TimeCurrentTime)
		reply, err = grab()
		if err != nil {
			return err
		}
	}
	if reply.Status != xproto.GrabStatusSuccess {
		return fmt.Errorf("keyboard grab failed with status %d", reply.Status)
	}

	xevent.RedirectKeyEvents(k.xu, k.grabWindow)
	if !k.attached {
		xevent.KeyPressFun(k.handleKeyPress).Connect(k.xu, k.grabWindow)
		k.attached = true
	}

	k.grabbed = true
	log.Println("quick snap: keyboard grabbed")
	return nil
}

// Ungrab releases the keyboard.
func (k *Keyboard) Ungrab() {
	if !k.grabbed {
		return
	}

	xproto.UngrabKeyboard(k.xu.Conn(), xproto.TimeCurrentTime)
	xevent.RedirectKeyEvents(k.xu, 0)
	if k.attached && k.grabWindow != 0 {
		xevent.Detach(k.xu, k.grabWindow)
		k.attached = false
	}

	k.grabbed = false
	log.Println("quick snap: keyboard released")
}

func (k *Keyboard) ensureGrabWindow() error {
	if k.grabWindow != 0 {
		return nil
	}

	conn := k.xu.Conn()
	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return err
	}

	// InputOnly window used solely as a key-event target while grabbed.
	err = xproto.CreateWindowChecked(
		conn,
		0,
		wid,
		k.root,
		0, 0,
		1, 1,
		0,
		xproto.WindowClassInputOnly,
		xproto.Visualid(0),
		xproto.CwEventMask,
		[]uint32{uint32(xproto.EventMaskKeyPress)},
	).Check()
	if err != nil {
		return err
	}

	xproto.MapWindow(conn, wid)
	k.grabWindow = wid
	return nil
}

func (k *Keyboard) handleKeyPress(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
	keysym := keybind.KeysymGet(xu, ev.Detail, 0)

	k.post(func() {
		nav := k.nav
		switch {
		case keysym >= keysym1 && keysym <= keysym9:
			nav.HandleDigit(int(keysym - keysym1 + 1))
		case keysym == keysymUp:
			nav.HandleArrow(DirUp)
		case keysym == keysymDown:
			nav.HandleArrow(DirDown)
		case keysym == keysymLeft:
			nav.HandleArrow(DirLeft)
		case keysym == keysymRight:
			nav.HandleArrow(DirRight)
		case keysym == keysymBackspace:
			nav.HandleUnsnap()
		case keysym == keysymReturn, keysym == keysymKPEnter, keysym == keysymEscape:
			nav.Close()
		}
	})
}
