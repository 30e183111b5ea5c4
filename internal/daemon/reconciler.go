package daemon

import (
	"context"
	"log/slog"
	"time"

	"github.com/1broseidon/zonesnap/internal/engine"
	"github.com/1broseidon/zonesnap/internal/platform"
	"github.com/1broseidon/zonesnap/internal/quicksnap"
)

// WindowLister is a function that returns current top-level window IDs.
type WindowLister func() ([]platform.WindowID, error)

// WindowListerFromBackend adapts a platform backend into a WindowLister.
func WindowListerFromBackend(backend platform.Backend) WindowLister {
	return func() ([]platform.WindowID, error) {
		wins, err := backend.ListWindows()
		if err != nil {
			return nil, err
		}
		ids := make([]platform.WindowID, len(wins))
		for i, w := range wins {
			ids[i] = w.ID
		}
		return ids, nil
	}
}

// ReconcilerConfig holds configuration for the reconciler.
type ReconcilerConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Reconciler periodically drops ledger records whose windows no longer
// exist. DestroyNotify normally handles this; the sweep catches windows
// that vanished while the daemon was wedged or events were lost.
type Reconciler struct {
	interval    time.Duration
	snapper     *engine.Snapper
	mru         *quicksnap.MRU
	listWindows WindowLister
	post        func(func())
	logger      *slog.Logger
}

// NewReconciler creates a reconciler. post funnels ledger mutations onto
// the engine loop.
func NewReconciler(cfg ReconcilerConfig, snapper *engine.Snapper, mru *quicksnap.MRU, listWindows WindowLister, post func(func())) *Reconciler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Reconciler{
		interval:    interval,
		snapper:     snapper,
		mru:         mru,
		listWindows: listWindows,
		post:        post,
		logger:      logger,
	}
}

// Run starts the reconciliation loop. Blocks until context is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("reconciler started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reconciler stopped")
			return
		case <-ticker.C:
			r.reconcile()
		}
	}
}

// reconcile performs a single pass.
func (r *Reconciler) reconcile() {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("reconciler panic recovered", "error", err)
		}
	}()

	tracked := r.snapper.Ledger().Snapshot()
	if len(tracked) == 0 {
		return
	}

	actualIDs, err := r.listWindows()
	if err != nil {
		r.logger.Error("reconciler: failed to list windows", "error", err)
		return
	}

	actual := make(map[platform.WindowID]bool, len(actualIDs))
	for _, id := range actualIDs {
		actual[id] = true
	}

	for windowID, rec := range tracked {
		if actual[windowID] {
			continue
		}
		id := windowID
		r.logger.Info("reconciler: orphaned placement detected",
			"window_id", id,
			"zone", rec.ZoneNumber,
			"layout", rec.LayoutName)
		r.post(func() {
			r.snapper.Drop(id)
			r.mru.Forget(id)
		})
	}
}

// ReconcileNow triggers an immediate reconciliation pass.
func (r *Reconciler) ReconcileNow() {
	r.reconcile()
}
