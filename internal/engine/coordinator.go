package engine

import (
	"log"

	"github.com/1broseidon/zonesnap/internal/prefs"
	"github.com/1broseidon/zonesnap/internal/zone"
)

// Coordinator reacts to desktop-switch and display-reconfiguration
// notifications: it tears down anything visible and, when per-desktop
// layouts are enabled, swaps the active layout to the stored preference
// for the new context.
type Coordinator struct {
	Trigger  *Trigger
	Layouts  *zone.Store
	Prefs    *prefs.Store
	Resolver prefs.Resolver

	PerDesktop func() bool

	CancelEdit     func()
	HideZones      func()
	HideLayout     func()
	CloseNavigator func()

	// Rescan re-runs auto-association after the layout for the new context
	// is in place, so windows opened or aligned meanwhile get adopted.
	Rescan func()
}

// HandleDesktopSwitch runs the full teardown: cancel zone editing, drop the
// showing state, hide zones, close the navigator, then re-resolve the
// layout for the new desktop.
func (c *Coordinator) HandleDesktopSwitch() {
	if c.CancelEdit != nil {
		c.CancelEdit()
	}
	c.Trigger.SetEditing(false)
	c.Trigger.ForceIdle()
	if c.HideZones != nil {
		c.HideZones()
	}
	if c.CloseNavigator != nil {
		c.CloseNavigator()
	}
	c.applyPreferredLayout()
	if c.Rescan != nil {
		c.Rescan()
	}
}

// HandleDisplayChange closes the navigator and re-resolves the layout; the
// edit and showing state survive a monitor plug/unplug.
func (c *Coordinator) HandleDisplayChange() {
	if c.CloseNavigator != nil {
		c.CloseNavigator()
	}
	c.applyPreferredLayout()
	if c.Rescan != nil {
		c.Rescan()
	}
}

// ApplyPreferredLayout re-resolves the stored layout preference for the
// current (screen, desktop) pair. Also used right before zones are shown.
func (c *Coordinator) ApplyPreferredLayout() {
	c.applyPreferredLayout()
}

func (c *Coordinator) applyPreferredLayout() {
	if c.PerDesktop == nil || !c.PerDesktop() {
		return
	}

	prev := c.Layouts.ActiveName()
	name := c.Prefs.GetCurrent(c.Resolver, c.Layouts.First())
	if !c.Layouts.Has(name) {
		name = c.Layouts.First()
	}
	if name == "" {
		return
	}

	if err := c.Layouts.SetActive(name); err != nil {
		log.Printf("coordinator: cannot activate layout %q: %v", name, err)
		return
	}
	if prev != "" && prev != name && c.HideLayout != nil {
		c.HideLayout()
	}
}
