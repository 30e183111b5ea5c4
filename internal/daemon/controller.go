package daemon

import (
	"errors"
	"fmt"
	"time"

	"github.com/1broseidon/zonesnap/internal/ipc"
	"github.com/1broseidon/zonesnap/internal/placement"
	"github.com/1broseidon/zonesnap/internal/platform"
)

// controller implements ipc.Controller. Every mutation is funneled onto the
// engine loop so IPC handlers never race the daemon's own state.
type controller struct {
	d *Daemon
}

const funnelTimeout = 3 * time.Second

var errDaemonBusy = errors.New("daemon did not respond in time")

// run executes fn on the engine loop and waits for its result.
func (c *controller) run(fn func() error) error {
	errCh := make(chan error, 1)
	c.d.loop.Post(func() { errCh <- fn() })

	select {
	case err := <-errCh:
		return err
	case <-time.After(funnelTimeout):
		return errDaemonBusy
	}
}

func (c *controller) Status() ipc.StatusData {
	var status ipc.StatusData
	c.run(func() error {
		desktop, err := c.d.backend.CurrentDesktop()
		if err != nil {
			desktop = -1
		}
		status = ipc.StatusData{
			ActiveLayout:   c.d.layouts.ActiveName(),
			PlacementCount: c.d.snapper.Ledger().Len(),
			CurrentDesktop: desktop,
		}
		return nil
	})
	return status
}

func (c *controller) Monitors() (ipc.MonitorsData, error) {
	displays, err := c.d.backend.Displays()
	if err != nil {
		return ipc.MonitorsData{}, err
	}

	monitors := make([]ipc.MonitorInfo, len(displays))
	for i, d := range displays {
		monitors[i] = ipc.MonitorInfo{
			ID:     d.ID,
			Name:   d.Name,
			X:      d.Bounds.X,
			Y:      d.Bounds.Y,
			Width:  d.Bounds.Width,
			Height: d.Bounds.Height,
		}
	}
	return ipc.MonitorsData{Monitors: monitors}, nil
}

func (c *controller) Layouts() ipc.LayoutsData {
	var data ipc.LayoutsData
	c.run(func() error {
		data = ipc.LayoutsData{
			Layouts:       c.d.layouts.Names(),
			DefaultLayout: c.d.config().DefaultLayout,
			ActiveLayout:  c.d.layouts.ActiveName(),
		}
		return nil
	})
	return data
}

func (c *controller) ApplyLayout(name string) error {
	return c.run(func() error {
		return c.d.applyLayout(name)
	})
}

func (c *controller) Placements() ipc.PlacementsData {
	data := ipc.PlacementsData{Placements: []ipc.PlacementInfo{}}
	c.run(func() error {
		for id, rec := range c.d.snapper.Ledger().Snapshot() {
			data.Placements = append(data.Placements, ipc.PlacementInfo{
				WindowID:   uint32(id),
				ZoneNumber: rec.ZoneNumber,
				Layout:     rec.LayoutName,
				Screen:     rec.ScreenIndex,
				Desktop:    rec.DesktopIndex,
			})
		}
		return nil
	})
	return data
}

func (c *controller) SnapWindow(windowID uint32, zoneNumber int) error {
	return c.run(func() error {
		id := platform.WindowID(windowID)
		if id == 0 {
			active, err := c.d.backend.ActiveWindow()
			if err != nil {
				return fmt.Errorf("cannot resolve active window: %w", err)
			}
			id = active
		}

		resolver := zoneResolver{layouts: c.d.layouts, backend: c.d.backend}
		target, screenIdx, ok := resolver.ZoneRect(zoneNumber)
		if !ok {
			return fmt.Errorf("zone %d not found in active layout", zoneNumber)
		}

		desktop, err := c.d.backend.CurrentDesktop()
		if err != nil {
			desktop = -1
		}

		return c.d.snapper.Snap(id, placement.Record{
			ZoneNumber:   zoneNumber,
			LayoutName:   c.d.layouts.ActiveName(),
			ScreenIndex:  screenIdx,
			DesktopIndex: desktop,
			Handle:       platform.HandleFor(id),
		}, target)
	})
}

func (c *controller) UnsnapWindow(windowID uint32) error {
	return c.run(func() error {
		id := platform.WindowID(windowID)
		if id == 0 {
			active, err := c.d.backend.ActiveWindow()
			if err != nil {
				return fmt.Errorf("cannot resolve active window: %w", err)
			}
			id = active
		}
		c.d.snapper.Unsnap(id)
		return nil
	})
}

func (c *controller) QuickSnap() error {
	return c.run(func() error {
		c.d.nav.Open()
		return nil
	})
}

func (c *controller) Reload() error {
	return c.run(c.d.reload)
}
