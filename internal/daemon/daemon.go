// Package daemon wires the engine to X11, the IPC socket, and the config.
package daemon

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"
	"time"

	"github.com/1broseidon/zonesnap/internal/autoassoc"
	"github.com/1broseidon/zonesnap/internal/config"
	"github.com/1broseidon/zonesnap/internal/engine"
	"github.com/1broseidon/zonesnap/internal/hotkeys"
	"github.com/1broseidon/zonesnap/internal/ipc"
	"github.com/1broseidon/zonesnap/internal/overlay"
	"github.com/1broseidon/zonesnap/internal/placement"
	"github.com/1broseidon/zonesnap/internal/platform"
	"github.com/1broseidon/zonesnap/internal/prefs"
	"github.com/1broseidon/zonesnap/internal/quicksnap"
	"github.com/1broseidon/zonesnap/internal/x11"
	"github.com/1broseidon/zonesnap/internal/zone"
)

// Daemon owns the engine loop and every X-facing component. All engine
// state is mutated on the loop goroutine only; X event callbacks and IPC
// handlers post onto it.
type Daemon struct {
	cfg   *config.Config
	cfgMu sync.RWMutex

	conn    *x11.Connection
	backend *platform.LinuxBackend
	adapter *backendAdapter

	loop        *engine.Loop
	layouts     *zone.Store
	prefsStore  *prefs.Store
	resolver    prefs.Resolver
	trigger     *engine.Trigger
	snapper     *engine.Snapper
	coordinator *engine.Coordinator
	matcher     *autoassoc.Matcher

	overlay    *overlay.Manager
	panel      *quicksnap.XPanel
	keyboard   *quicksnap.Keyboard
	nav        *quicksnap.Navigator
	mru        *quicksnap.MRU
	rightClick *x11.RightClickWatch
	reconciler *Reconciler

	server *ipc.Server
}

// New connects to the X server and assembles the daemon. Nothing is
// visible or grabbed until Run.
func New(cfg *config.Config) (*Daemon, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}

	backend := platform.NewLinuxBackend(conn)
	adapter := &backendAdapter{backend: backend}

	d := &Daemon{
		cfg:      cfg,
		conn:     conn,
		backend:  backend,
		adapter:  adapter,
		loop:     engine.NewLoop(),
		resolver: &contextResolver{backend: backend},
		mru:      &quicksnap.MRU{},
	}

	d.layouts = zone.NewStore(layoutsFromConfig(cfg), cfg.DefaultLayout)

	prefsPath, err := config.PreferencesPath()
	if err != nil {
		return nil, err
	}
	d.prefsStore = prefs.Load(prefsPath)

	ledger := placement.NewLedger()
	cache := placement.NewGeometryCache(adapter)
	d.snapper = engine.NewSnapper(ledger, cache, adapter)
	d.matcher = autoassoc.New(adapter, adapter)

	d.overlay = overlay.NewManager(conn.XUtil, conn.Root)
	d.panel = quicksnap.NewXPanel(conn.XUtil, conn.Root)

	d.trigger = engine.NewTrigger(engine.TriggerConfig{
		HoldDelay:        func() time.Duration { return d.config().HoldDelay() },
		RightClickToggle: func() bool { return d.config().RightClickToggleEnabled() },
	}, d.loop.Post, engine.Hooks{
		PrepareLayout: func() { d.coordinator.ApplyPreferredLayout() },
		ShowZones:     d.showZones,
		HideZones:     d.overlay.HideAll,
	})

	d.coordinator = &engine.Coordinator{
		Trigger:        d.trigger,
		Layouts:        d.layouts,
		Prefs:          d.prefsStore,
		Resolver:       d.resolver,
		PerDesktop:     func() bool { return d.config().PerDesktopLayoutsEnabled() },
		HideZones:      d.overlay.HideAll,
		HideLayout:     d.overlay.HideAll,
		CloseNavigator: func() { d.nav.Close() },
		Rescan:         d.applyAutoAssociation,
	}

	d.nav = quicksnap.New(quicksnap.Deps{
		Windows: adapter,
		MRU:     d.mru,
		Panel:   d.panel,
		Zones:   &zoneResolver{layouts: d.layouts, backend: backend},
		Snapper: d.snapper,
		Layouts: d.layouts,
		Trigger: d.trigger,

		PrepareLayout: func() {
			d.coordinator.ApplyPreferredLayout()
			d.applyAutoAssociation()
		},
		ShowZones:  d.showZones,
		HideZones:  d.overlay.HideAll,
		HideLayout: d.overlay.HideAll,
		Raise: func(id platform.WindowID) {
			if err := backend.Raise(id); err != nil {
				log.Printf("daemon: raise window %d: %v", id, err)
			}
		},
		Desktop: func() int {
			desktop, err := backend.CurrentDesktop()
			if err != nil {
				return -1
			}
			return desktop
		},
		ScreenIndex: func() int {
			display, err := backend.ActiveDisplay()
			if err != nil {
				return 0
			}
			return display.ID
		},
		Post: d.loop.Post,

		OnOpened: func() {
			if err := d.keyboard.Grab(); err != nil {
				log.Printf("daemon: keyboard grab failed: %v", err)
			}
		},
		OnClosed: func() { d.keyboard.Ungrab() },
	})
	d.keyboard = quicksnap.NewKeyboard(conn.XUtil, conn.Root, d.nav, d.loop.Post)

	d.rightClick = x11.NewRightClickWatch(conn.XUtil, conn.Root, func(dragging bool) {
		d.loop.Post(func() { d.trigger.RightClick(dragging) })
	})

	d.reconciler = NewReconciler(ReconcilerConfig{
		Logger: slog.Default(),
	}, d.snapper, d.mru, WindowListerFromBackend(backend), d.loop.Post)

	server, err := ipc.NewServer(&controller{d: d})
	if err != nil {
		return nil, err
	}
	d.server = server

	return d, nil
}

// Run starts every subsystem and blocks on the engine loop until Stop or a
// termination signal.
func (d *Daemon) Run() error {
	if err := d.server.Start(); err != nil {
		return err
	}
	defer d.server.Stop()

	if err := d.registerHotkeys(); err != nil {
		return err
	}

	if err := d.rightClick.Start(); err != nil {
		log.Printf("daemon: right-click toggle unavailable: %v", err)
	}

	events := &x11.RootEvents{
		OnDesktopSwitch: func() {
			d.loop.Post(d.coordinator.HandleDesktopSwitch)
		},
		OnActivation: func(windowID uint32) {
			d.loop.Post(func() { d.mru.Touch(platform.WindowID(windowID)) })
		},
		OnDisplayChange: func() {
			d.loop.Post(d.coordinator.HandleDisplayChange)
		},
		OnWindowMapped: func(uint32) {
			d.loop.Post(d.applyAutoAssociation)
		},
		OnWindowDestroyed: func(windowID uint32) {
			d.loop.Post(func() {
				id := platform.WindowID(windowID)
				d.snapper.Drop(id)
				d.mru.Forget(id)
			})
		},
	}
	if err := events.Watch(d.conn); err != nil {
		return fmt.Errorf("failed to watch root events: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.reconciler.Run(ctx)

	go d.conn.EventLoop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		for sig := range sigCh {
			switch sig {
			case syscall.SIGHUP:
				d.loop.Post(func() {
					if err := d.reload(); err != nil {
						log.Printf("daemon: reload failed: %v", err)
					}
				})
			default:
				log.Println("Shutting down zonesnap daemon...")
				d.Stop()
				return
			}
		}
	}()

	// Adopt anything already sitting in a zone frame.
	d.loop.Post(d.applyAutoAssociation)

	log.Println("zonesnap daemon started")
	d.loop.Run()

	d.cleanup()
	return nil
}

// Stop unblocks Run.
func (d *Daemon) Stop() {
	d.loop.Stop()
}

func (d *Daemon) cleanup() {
	d.nav.Close()
	d.overlay.Cleanup()
	d.panel.Cleanup()
	d.rightClick.Stop()
	d.conn.Close()
}

func (d *Daemon) config() *config.Config {
	d.cfgMu.RLock()
	defer d.cfgMu.RUnlock()
	return d.cfg
}

func (d *Daemon) setConfig(cfg *config.Config) {
	d.cfgMu.Lock()
	d.cfg = cfg
	d.cfgMu.Unlock()
}

func (d *Daemon) registerHotkeys() error {
	hk := hotkeys.NewHandler(d.conn.XUtil, d.conn.Root)
	cfg := d.config()

	err := hk.RegisterPressRelease(cfg.ModifierKey,
		func() { d.loop.Post(d.trigger.ModifierDown) },
		func() { d.loop.Post(d.trigger.ModifierUp) })
	if err != nil {
		return fmt.Errorf("failed to register modifier key %q: %w", cfg.ModifierKey, err)
	}

	if cfg.SnapKey != "" {
		err := hk.RegisterPressRelease(cfg.SnapKey,
			func() {
				dragging, derr := d.conn.DragInProgress()
				if derr != nil {
					dragging = false
				}
				d.loop.Post(func() { d.trigger.SnapKeyDown(dragging) })
			},
			func() { d.loop.Post(d.trigger.SnapKeyUp) })
		if err != nil {
			return fmt.Errorf("failed to register snap key %q: %w", cfg.SnapKey, err)
		}
	}

	if cfg.QuickSnapHotkey != "" {
		err := hk.RegisterPress(cfg.QuickSnapHotkey, func() {
			d.loop.Post(func() {
				d.trigger.KeyDown()
				d.nav.Toggle()
			})
		})
		if err != nil {
			return fmt.Errorf("failed to register quick snap hotkey %q: %w", cfg.QuickSnapHotkey, err)
		}
	}

	if cfg.UnsnapHotkey != "" {
		err := hk.RegisterPress(cfg.UnsnapHotkey, func() {
			d.loop.Post(func() {
				d.trigger.KeyDown()
				d.unsnapActiveWindow()
			})
		})
		if err != nil {
			return fmt.Errorf("failed to register unsnap hotkey %q: %w", cfg.UnsnapHotkey, err)
		}
	}

	return nil
}

// showZones projects the active layout onto the active display and draws
// the border overlays. Runs on the loop goroutine.
func (d *Daemon) showZones() {
	layout, ok := d.layouts.Active()
	if !ok {
		return
	}
	display, err := d.backend.ActiveDisplay()
	if err != nil {
		log.Printf("daemon: cannot resolve active display: %v", err)
		return
	}

	screen := pixelRect(display.Usable)
	zones := make([]overlay.Zone, 0, len(layout.Zones))
	for _, zc := range layout.Zones {
		x, y, w, h := zc.AbsoluteRect(screen).Pixels()
		zones = append(zones, overlay.Zone{Number: zc.Number, X: x, Y: y, Width: w, Height: h})
	}
	if err := d.overlay.ShowZones(zones); err != nil {
		log.Printf("daemon: show zones: %v", err)
	}
}

// applyAutoAssociation adopts unplaced windows whose frames already match a
// zone of the active layout. Runs on the loop goroutine.
func (d *Daemon) applyAutoAssociation() {
	if !d.config().AutoAssociationEnabled() {
		return
	}
	layout, ok := d.layouts.Active()
	if !ok {
		return
	}

	matches, err := d.matcher.Scan(layout)
	if err != nil {
		log.Printf("daemon: %v", err)
		return
	}

	desktop, err := d.backend.CurrentDesktop()
	if err != nil {
		desktop = -1
	}

	for _, m := range matches {
		d.snapper.Adopt(m.Window.ID, placement.Record{
			ZoneNumber:   m.ZoneNumber,
			LayoutName:   layout.Name,
			ScreenIndex:  m.ScreenIndex,
			DesktopIndex: desktop,
			Handle:       m.Window.Handle,
		})
	}
}

// applyLayout switches the active layout, records the preference, and
// rescans for adoptable windows. Runs on the loop goroutine.
func (d *Daemon) applyLayout(name string) error {
	prev := d.layouts.ActiveName()
	if err := d.layouts.SetActive(name); err != nil {
		return err
	}
	d.prefsStore.SetCurrent(d.resolver, name)

	if prev != "" && prev != name {
		d.overlay.HideAll()
	}
	if d.trigger.Showing() {
		d.showZones()
	}
	d.applyAutoAssociation()
	return nil
}

// reload re-reads the config file and applies everything that can change
// at runtime. Hotkey bindings need a restart.
func (d *Daemon) reload() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	d.setConfig(cfg)
	d.layouts.Replace(layoutsFromConfig(cfg), cfg.DefaultLayout)
	d.overlay.HideAll()
	if d.trigger.Showing() {
		d.showZones()
	}
	d.applyAutoAssociation()

	log.Println("daemon: config reloaded (hotkey changes take effect after restart)")
	return nil
}

// unsnapActiveWindow restores the focused window. Runs on the loop goroutine.
func (d *Daemon) unsnapActiveWindow() {
	windowID, err := d.backend.ActiveWindow()
	if err != nil {
		log.Printf("daemon: cannot resolve active window: %v", err)
		return
	}
	d.snapper.Unsnap(windowID)
}

// layoutsFromConfig converts the config layouts in stable name order so the
// store's first layout, the fallback, is deterministic.
func layoutsFromConfig(cfg *config.Config) []zone.Layout {
	byName := cfg.ZoneLayouts()
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	layouts := make([]zone.Layout, 0, len(names))
	for _, name := range names {
		layouts = append(layouts, byName[name])
	}
	return layouts
}
