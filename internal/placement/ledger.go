package placement

import (
	"sync"

	"github.com/1broseidon/zonesnap/internal/platform"
)

// Record describes where a window is placed. A window has at most one
// record at any time; presence in the ledger is the definition of "placed."
type Record struct {
	ZoneNumber   int
	LayoutName   string
	ScreenIndex  int
	DesktopIndex int
	Handle       platform.WindowHandle
}

// Ledger is the authoritative map from window ID to placement. All
// operations are O(1) and idempotent: placing an already-placed window
// overwrites its record, unplacing an absent window is a no-op.
type Ledger struct {
	mu        sync.Mutex
	records   map[platform.WindowID]Record
	mutations uint64
	onMutate  func()
}

// NewLedger creates an empty placement ledger.
func NewLedger() *Ledger {
	return &Ledger{
		records: make(map[platform.WindowID]Record),
	}
}

// SetNotify installs a hook invoked after every Place/Unplace call. The UI
// layer uses it to refresh; the engine itself does not depend on it.
func (l *Ledger) SetNotify(fn func()) {
	l.mu.Lock()
	l.onMutate = fn
	l.mu.Unlock()
}

// Place inserts or overwrites the record for windowID.
func (l *Ledger) Place(windowID platform.WindowID, rec Record) {
	l.mu.Lock()
	l.records[windowID] = rec
	l.mutations++
	fn := l.onMutate
	l.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Unplace removes the record for windowID. Unplacing an absent window
// leaves the ledger unchanged but still counts as a mutation call.
func (l *Ledger) Unplace(windowID platform.WindowID) {
	l.mu.Lock()
	delete(l.records, windowID)
	l.mutations++
	fn := l.onMutate
	l.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Get returns the placement record for windowID.
func (l *Ledger) Get(windowID platform.WindowID) (Record, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec, ok := l.records[windowID]
	return rec, ok
}

// IsPlaced reports whether windowID has a placement record.
func (l *Ledger) IsPlaced(windowID platform.WindowID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.records[windowID]
	return ok
}

// IsPlacedInLayout reports whether windowID is placed under the given layout.
func (l *Ledger) IsPlacedInLayout(layoutName string, windowID platform.WindowID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec, ok := l.records[windowID]
	return ok && rec.LayoutName == layoutName
}

// Mutations returns the count of Place/Unplace calls since creation. Each
// call increments the counter exactly once regardless of outcome.
func (l *Ledger) Mutations() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mutations
}

// Len returns the number of placed windows.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Snapshot returns a copy of all placement records.
func (l *Ledger) Snapshot() map[platform.WindowID]Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[platform.WindowID]Record, len(l.records))
	for id, rec := range l.records {
		out[id] = rec
	}
	return out
}
