package x11

import (
	"log"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// RootEvents subscribes to the root-window notifications the engine reacts
// to: desktop switches, active-window changes, display reconfiguration, and
// windows appearing or being destroyed. Callbacks run on the X event loop
// goroutine; callers funnel them onto the owner thread themselves.
type RootEvents struct {
	OnDesktopSwitch   func()
	OnActivation      func(windowID uint32)
	OnDisplayChange   func()
	OnWindowMapped    func(windowID uint32)
	OnWindowDestroyed func(windowID uint32)
}

// Watch starts listening for root property and substructure events.
func (r *RootEvents) Watch(c *Connection) error {
	root := xwindow.New(c.XUtil, c.Root)
	if err := root.Listen(xproto.EventMaskPropertyChange | xproto.EventMaskSubstructureNotify); err != nil {
		return err
	}

	xevent.PropertyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		name, err := xprop.AtomName(xu, ev.Atom)
		if err != nil {
			return
		}
		switch name {
		case "_NET_CURRENT_DESKTOP":
			if r.OnDesktopSwitch != nil {
				r.OnDesktopSwitch()
			}
		case "_NET_ACTIVE_WINDOW":
			if r.OnActivation != nil {
				if win, err := c.GetActiveWindow(); err == nil && win != 0 {
					r.OnActivation(uint32(win))
				}
			}
		case "_NET_DESKTOP_GEOMETRY", "_NET_WORKAREA":
			if r.OnDisplayChange != nil {
				r.OnDisplayChange()
			}
		}
	}).Connect(c.XUtil, c.Root)

	xevent.MapNotifyFun(func(xu *xgbutil.XUtil, ev xevent.MapNotifyEvent) {
		// Override-redirect maps (menus, tooltips) are not placement
		// candidates.
		if ev.OverrideRedirect {
			return
		}
		if r.OnWindowMapped != nil {
			r.OnWindowMapped(uint32(ev.Window))
		}
	}).Connect(c.XUtil, c.Root)

	xevent.DestroyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.DestroyNotifyEvent) {
		if r.OnWindowDestroyed != nil {
			r.OnWindowDestroyed(uint32(ev.Window))
		}
	}).Connect(c.XUtil, c.Root)

	log.Println("x11: root event watch installed")
	return nil
}
