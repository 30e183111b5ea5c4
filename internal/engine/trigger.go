package engine

import (
	"time"
)

// State enumerates the trigger states. Showing means zones are visible and
// primed for a snap; QuickSnapping means the navigator owns the session and
// manual triggers are suppressed.
type State int

const (
	StateIdle State = iota
	StateShowing
	StateQuickSnapping
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateShowing:
		return "showing"
	case StateQuickSnapping:
		return "quick-snapping"
	default:
		return "unknown"
	}
}

// DefaultHoldDelay is how long the modifier key must be held before zones
// appear when no delay is configured.
const DefaultHoldDelay = 1000 * time.Millisecond

// MaxHoldDelay caps the configurable modifier hold delay.
const MaxHoldDelay = 2000 * time.Millisecond

// ClampHoldDelay restricts d to the supported 0–2000 ms range.
func ClampHoldDelay(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	if d > MaxHoldDelay {
		return MaxHoldDelay
	}
	return d
}

// Hooks are the trigger's outputs. PrepareLayout runs before every Showing
// entry so per-desktop layout preference can be re-resolved first; ShowZones
// and HideZones drive the overlay.
type Hooks struct {
	PrepareLayout func()
	ShowZones     func()
	HideZones     func()
}

// TriggerConfig supplies the settings the trigger polls at decision time.
type TriggerConfig struct {
	HoldDelay        func() time.Duration
	RightClickToggle func() bool
}

// Trigger is the snap trigger state machine. All methods must be called on
// the owner thread; the hold timer's callback is funneled back through the
// post function rather than fired on the timer goroutine.
type Trigger struct {
	state   State
	editing bool
	cfg     TriggerConfig
	hooks   Hooks
	post    func(func())
	hold    Timer
}

// NewTrigger creates an idle trigger.
func NewTrigger(cfg TriggerConfig, post func(func()), hooks Hooks) *Trigger {
	if cfg.HoldDelay == nil {
		cfg.HoldDelay = func() time.Duration { return DefaultHoldDelay }
	}
	if cfg.RightClickToggle == nil {
		cfg.RightClickToggle = func() bool { return false }
	}
	return &Trigger{cfg: cfg, hooks: hooks, post: post}
}

// State returns the current trigger state.
func (t *Trigger) State() State { return t.state }

// Showing reports whether zones are currently visible via a manual trigger.
func (t *Trigger) Showing() bool { return t.state == StateShowing }

// QuickSnapping reports whether the navigator owns the session.
func (t *Trigger) QuickSnapping() bool { return t.state == StateQuickSnapping }

// Editing reports whether zone-edit mode is active.
func (t *Trigger) Editing() bool { return t.editing }

// SetEditing toggles zone-edit mode. Entering edit mode cancels any pending
// hold transition and hides zones shown by a manual trigger.
func (t *Trigger) SetEditing(editing bool) {
	t.editing = editing
	if editing {
		t.hold.Cancel()
		if t.state == StateShowing {
			t.leaveShowing()
		}
	}
}

// ModifierDown schedules the delayed Idle -> Showing transition.
func (t *Trigger) ModifierDown() {
	if t.state != StateIdle || t.editing {
		return
	}
	delay := ClampHoldDelay(t.cfg.HoldDelay())
	t.hold.Schedule(delay, func() {
		t.post(t.holdElapsed)
	})
}

// ModifierUp cancels a pending transition or, if zones are showing, hides
// them. While quick-snapping, hiding is deferred to the navigator's close.
func (t *Trigger) ModifierUp() {
	t.hold.Cancel()
	if t.state == StateShowing {
		t.leaveShowing()
	}
}

// KeyDown is the debounce input: any unrelated key press cancels a pending
// hold transition without touching visible zones.
func (t *Trigger) KeyDown() {
	t.hold.Cancel()
}

// SnapKeyDown enters Showing immediately when a window drag is in progress.
// This path has no delay and takes priority over the modifier hold.
func (t *Trigger) SnapKeyDown(dragging bool) {
	if !dragging || t.editing || t.state != StateIdle {
		return
	}
	t.hold.Cancel()
	t.enterShowing()
}

// SnapKeyUp behaves like ModifierUp.
func (t *Trigger) SnapKeyUp() {
	t.ModifierUp()
}

// RightClick toggles Idle <-> Showing while a window drag is in progress,
// when the feature is enabled.
func (t *Trigger) RightClick(dragging bool) {
	if !t.cfg.RightClickToggle() || !dragging || t.editing || t.state == StateQuickSnapping {
		return
	}
	switch t.state {
	case StateIdle:
		t.hold.Cancel()
		t.enterShowing()
	case StateShowing:
		t.leaveShowing()
	}
}

// NavigatorOpened moves the machine into QuickSnapping from any state.
func (t *Trigger) NavigatorOpened() {
	t.hold.Cancel()
	t.state = StateQuickSnapping
}

// NavigatorClosed returns to Idle, hiding zones as part of the close.
func (t *Trigger) NavigatorClosed() {
	t.state = StateIdle
	if t.hooks.HideZones != nil {
		t.hooks.HideZones()
	}
}

// ForceIdle drops any pending transition and hides zones. Used on desktop
// switches, where everything visible must come down at once.
func (t *Trigger) ForceIdle() {
	t.hold.Cancel()
	if t.state == StateShowing {
		t.leaveShowing()
		return
	}
	t.state = StateIdle
}

func (t *Trigger) holdElapsed() {
	if t.state != StateIdle || t.editing {
		return
	}
	t.enterShowing()
}

func (t *Trigger) enterShowing() {
	if t.hooks.PrepareLayout != nil {
		t.hooks.PrepareLayout()
	}
	if t.hooks.ShowZones != nil {
		t.hooks.ShowZones()
	}
	t.state = StateShowing
}

func (t *Trigger) leaveShowing() {
	t.state = StateIdle
	if t.hooks.HideZones != nil {
		t.hooks.HideZones()
	}
}
