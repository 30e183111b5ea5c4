package quicksnap

import (
	"sort"
	"sync"

	"github.com/1broseidon/zonesnap/internal/platform"
)

// MRU tracks window focus order via the activation observer. Most recently
// activated first; windows never activated rank behind all touched ones.
type MRU struct {
	mu    sync.Mutex
	order []platform.WindowID
}

// Touch moves id to the front of the focus order.
func (m *MRU) Touch(id platform.WindowID) {
	if id == 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.order {
		if existing == id {
			copy(m.order[1:i+1], m.order[:i])
			m.order[0] = id
			return
		}
	}
	m.order = append([]platform.WindowID{id}, m.order...)
}

// Forget drops id from the focus order.
func (m *MRU) Forget(id platform.WindowID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			return
		}
	}
}

// rank returns id's position in the focus order, or len(order) when the
// window was never activated.
func (m *MRU) rank(id platform.WindowID) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.order {
		if existing == id {
			return i
		}
	}
	return len(m.order)
}

// SortByFocus orders items most-recently-focused first. Windows with no
// recorded activation keep their enumeration order behind all focused ones.
func (m *MRU) SortByFocus(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return m.rank(items[i].ID) < m.rank(items[j].ID)
	})
}
