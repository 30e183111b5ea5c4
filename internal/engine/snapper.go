package engine

import (
	"fmt"
	"log"

	"github.com/1broseidon/zonesnap/internal/geometry"
	"github.com/1broseidon/zonesnap/internal/placement"
	"github.com/1broseidon/zonesnap/internal/platform"
)

// WindowOps are the geometric mutations the snapper performs on windows.
type WindowOps interface {
	MoveResize(windowID platform.WindowID, frame geometry.Rect) error
	Raise(windowID platform.WindowID) error
}

// Snapper applies and reverses placements, keeping the ledger and the
// geometry cache in lockstep: both are written on snap, both cleared on
// unsnap.
type Snapper struct {
	ledger *placement.Ledger
	cache  *placement.GeometryCache
	ops    WindowOps
}

// NewSnapper wires a snapper over the shared ledger and cache.
func NewSnapper(ledger *placement.Ledger, cache *placement.GeometryCache, ops WindowOps) *Snapper {
	return &Snapper{ledger: ledger, cache: cache, ops: ops}
}

// Snap moves windowID into target and records the placement. The pre-snap
// frame is captured only on the unplaced -> placed transition; re-snapping
// an already-placed window keeps its original capture.
func (s *Snapper) Snap(windowID platform.WindowID, rec placement.Record, target geometry.Rect) error {
	if !s.ledger.IsPlaced(windowID) {
		s.cache.Update(windowID)
	}
	if err := s.ops.MoveResize(windowID, target); err != nil {
		return fmt.Errorf("snap window %d to zone %d: %w", windowID, rec.ZoneNumber, err)
	}
	s.ledger.Place(windowID, rec)
	return nil
}

// Unsnap restores windowID to its cached pre-snap frame and removes its
// placement record. Returns false when the window was not placed. A failed
// restore still unplaces; the record must not outlive the user's intent.
func (s *Snapper) Unsnap(windowID platform.WindowID) bool {
	if !s.ledger.IsPlaced(windowID) {
		return false
	}

	if orig, ok := s.cache.Frame(windowID); ok {
		if err := s.ops.MoveResize(windowID, orig); err != nil {
			log.Printf("unsnap: restore window %d: %v", windowID, err)
		}
	}

	s.ledger.Unplace(windowID)
	s.cache.Forget(windowID)
	return true
}

// Adopt records a placement for a window already sitting in a zone without
// moving it. Used by auto-association; a no-op when already placed.
func (s *Snapper) Adopt(windowID platform.WindowID, rec placement.Record) {
	if s.ledger.IsPlaced(windowID) {
		return
	}
	s.cache.Update(windowID)
	s.ledger.Place(windowID, rec)
}

// Drop clears all bookkeeping for a destroyed window. No geometry is
// touched; the window is gone.
func (s *Snapper) Drop(windowID platform.WindowID) {
	if !s.ledger.IsPlaced(windowID) {
		return
	}
	s.ledger.Unplace(windowID)
	s.cache.Forget(windowID)
}

// Ledger exposes the underlying placement ledger for read-side consumers.
func (s *Snapper) Ledger() *placement.Ledger { return s.ledger }

// Cache exposes the underlying geometry cache.
func (s *Snapper) Cache() *placement.GeometryCache { return s.cache }
