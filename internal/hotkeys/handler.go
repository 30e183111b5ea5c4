// Package hotkeys registers global keyboard shortcuts on the X root window.
package hotkeys

import (
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Handler manages global keyboard shortcuts. Shortcut specs use the keybind
// grammar, e.g. "Control-Shift-s" or a bare keysym like "Super_L".
type Handler struct {
	xu   *xgbutil.XUtil
	root xproto.Window
}

var ignoreModsOnce sync.Once

// NewHandler creates a hotkey handler on the given connection.
func NewHandler(xu *xgbutil.XUtil, root xproto.Window) *Handler {
	ignoreModsOnce.Do(func() {
		configureIgnoreMods(xu)
	})

	return &Handler{xu: xu, root: root}
}

// RegisterPress registers a callback fired on the key press of keySequence.
func (h *Handler) RegisterPress(keySequence string, callback func()) error {
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(h.xu, h.root, keySequence, true)
}

// RegisterPressRelease registers callbacks for both edges of keySequence.
// Used for the bare modifier and snap keys, where hold and release both
// drive the trigger state machine.
func (h *Handler) RegisterPressRelease(keySequence string, onPress, onRelease func()) error {
	if err := keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		onPress()
	}).Connect(h.xu, h.root, keySequence, true); err != nil {
		return err
	}
	return keybind.KeyReleaseFun(func(xu *xgbutil.XUtil, ev xevent.KeyReleaseEvent) {
		onRelease()
	}).Connect(h.xu, h.root, keySequence, true)
}

// configureIgnoreMods makes registered hotkeys fire regardless of lock
// modifiers (CapsLock, NumLock, ScrollLock) by registering every subset.
func configureIgnoreMods(xu *xgbutil.XUtil) {
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	unique := make(map[uint16]struct{})
	add := func(mask uint16) {
		unique[mask] = struct{}{}
	}

	add(0)
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		add(mask)
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}

	xevent.IgnoreMods = ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
