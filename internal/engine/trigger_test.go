package engine

import (
	"testing"
	"time"
)

// triggerHarness counts hook invocations and runs posted tasks inline so
// tests stay single-threaded except for the hold timer itself.
type triggerHarness struct {
	trigger  *Trigger
	prepared int
	shown    int
	hidden   int
	fired    chan struct{}
}

func newTriggerHarness(holdDelay time.Duration, rightClick bool) *triggerHarness {
	h := &triggerHarness{fired: make(chan struct{}, 8)}
	cfg := TriggerConfig{
		HoldDelay:        func() time.Duration { return holdDelay },
		RightClickToggle: func() bool { return rightClick },
	}
	post := func(fn func()) {
		fn()
		h.fired <- struct{}{}
	}
	h.trigger = NewTrigger(cfg, post, Hooks{
		PrepareLayout: func() { h.prepared++ },
		ShowZones:     func() { h.shown++ },
		HideZones:     func() { h.hidden++ },
	})
	return h
}

func (h *triggerHarness) waitHold(t *testing.T) {
	t.Helper()
	select {
	case <-h.fired:
	case <-time.After(time.Second):
		t.Fatal("hold timer never fired")
	}
}

func TestModifierHoldShowsZones(t *testing.T) {
	h := newTriggerHarness(time.Millisecond, false)

	h.trigger.ModifierDown()
	h.waitHold(t)

	if h.trigger.State() != StateShowing {
		t.Fatalf("state = %v, want showing", h.trigger.State())
	}
	if h.prepared != 1 || h.shown != 1 {
		t.Fatalf("prepared = %d, shown = %d; want 1, 1 (layout resolved before show)", h.prepared, h.shown)
	}

	h.trigger.ModifierUp()
	if h.trigger.State() != StateIdle {
		t.Fatalf("state = %v after release, want idle", h.trigger.State())
	}
	if h.hidden != 1 {
		t.Fatalf("hidden = %d, want 1", h.hidden)
	}
}

func TestModifierReleaseBeforeDelayCancels(t *testing.T) {
	h := newTriggerHarness(20*time.Millisecond, false)

	h.trigger.ModifierDown()
	h.trigger.ModifierUp()

	time.Sleep(80 * time.Millisecond)
	if h.trigger.State() != StateIdle {
		t.Fatalf("state = %v, want idle (release cancels pending show)", h.trigger.State())
	}
	if h.shown != 0 {
		t.Fatalf("shown = %d, want 0", h.shown)
	}
}

func TestOtherKeyDownDebouncesPendingShow(t *testing.T) {
	h := newTriggerHarness(20*time.Millisecond, false)

	h.trigger.ModifierDown()
	h.trigger.KeyDown()

	time.Sleep(80 * time.Millisecond)
	if h.shown != 0 {
		t.Fatalf("shown = %d, want 0 (unrelated key cancels the hold)", h.shown)
	}
}

func TestSnapKeyDuringDragIsImmediate(t *testing.T) {
	h := newTriggerHarness(time.Hour, false) // hold path must not be needed

	h.trigger.SnapKeyDown(true)
	if h.trigger.State() != StateShowing {
		t.Fatalf("state = %v, want showing without any delay", h.trigger.State())
	}

	h.trigger.SnapKeyUp()
	if h.trigger.State() != StateIdle {
		t.Fatalf("state = %v after release, want idle", h.trigger.State())
	}
}

func TestSnapKeyRequiresDrag(t *testing.T) {
	h := newTriggerHarness(time.Hour, false)

	h.trigger.SnapKeyDown(false)
	if h.trigger.State() != StateIdle {
		t.Fatalf("state = %v, want idle (snap key only acts during a drag)", h.trigger.State())
	}
}

func TestRightClickToggle(t *testing.T) {
	h := newTriggerHarness(time.Hour, true)

	h.trigger.RightClick(true)
	if h.trigger.State() != StateShowing {
		t.Fatalf("state = %v, want showing", h.trigger.State())
	}

	h.trigger.RightClick(true)
	if h.trigger.State() != StateIdle {
		t.Fatalf("state = %v, want idle (second click toggles off)", h.trigger.State())
	}
}

func TestRightClickDisabledOrNoDrag(t *testing.T) {
	disabled := newTriggerHarness(time.Hour, false)
	disabled.trigger.RightClick(true)
	if disabled.trigger.State() != StateIdle {
		t.Fatal("right-click acted while the feature is disabled")
	}

	enabled := newTriggerHarness(time.Hour, true)
	enabled.trigger.RightClick(false)
	if enabled.trigger.State() != StateIdle {
		t.Fatal("right-click acted without a drag in progress")
	}
}

func TestEditingSuppressesTriggers(t *testing.T) {
	h := newTriggerHarness(time.Millisecond, true)
	h.trigger.SetEditing(true)

	h.trigger.ModifierDown()
	h.trigger.SnapKeyDown(true)
	h.trigger.RightClick(true)

	time.Sleep(50 * time.Millisecond)
	if h.shown != 0 {
		t.Fatalf("shown = %d, want 0 while editing", h.shown)
	}
}

func TestQuickSnappingSuppressesManualTriggers(t *testing.T) {
	h := newTriggerHarness(time.Millisecond, true)
	h.trigger.NavigatorOpened()

	h.trigger.ModifierDown()
	h.trigger.RightClick(true)
	h.trigger.ModifierUp()

	if h.trigger.State() != StateQuickSnapping {
		t.Fatalf("state = %v, want quick-snapping (manual triggers deferred)", h.trigger.State())
	}
	if h.hidden != 0 {
		t.Fatalf("hidden = %d, want 0 (hiding deferred to navigator close)", h.hidden)
	}

	h.trigger.NavigatorClosed()
	if h.trigger.State() != StateIdle {
		t.Fatalf("state = %v after close, want idle", h.trigger.State())
	}
	if h.hidden != 1 {
		t.Fatalf("hidden = %d, want 1 (zones hidden as part of close)", h.hidden)
	}
}

func TestForceIdleFromShowing(t *testing.T) {
	h := newTriggerHarness(time.Hour, true)
	h.trigger.RightClick(true)

	h.trigger.ForceIdle()
	if h.trigger.State() != StateIdle {
		t.Fatalf("state = %v, want idle", h.trigger.State())
	}
	if h.hidden != 1 {
		t.Fatalf("hidden = %d, want 1", h.hidden)
	}
}

func TestClampHoldDelay(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want time.Duration
	}{
		{-time.Second, 0},
		{0, 0},
		{500 * time.Millisecond, 500 * time.Millisecond},
		{3 * time.Second, MaxHoldDelay},
	}
	for _, tt := range tests {
		if got := ClampHoldDelay(tt.in); got != tt.want {
			t.Fatalf("ClampHoldDelay(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
