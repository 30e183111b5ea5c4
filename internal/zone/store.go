package zone

import (
	"fmt"
	"sort"
	"sync"
)

// Store holds the set of named layouts and the currently selected one.
// Layouts are created and edited by the management surface (config reloads);
// the engine consumes them read-only.
type Store struct {
	mu      sync.RWMutex
	layouts map[string]Layout
	names   []string // sorted layout names, recomputed on Replace
	active  string
}

// NewStore creates a store from the given layouts. The active layout starts
// as defaultName when it exists, otherwise the first layout by sorted name.
func NewStore(layouts []Layout, defaultName string) *Store {
	s := &Store{}
	s.Replace(layouts, defaultName)
	return s
}

// Replace swaps the full layout set, e.g. after a config reload. The active
// selection is preserved when the name survives, otherwise it falls back to
// defaultName or the first available layout.
func (s *Store) Replace(layouts []Layout, defaultName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.layouts = make(map[string]Layout, len(layouts))
	s.names = s.names[:0]
	for _, l := range layouts {
		s.layouts[l.Name] = l
		s.names = append(s.names, l.Name)
	}
	sort.Strings(s.names)

	if _, ok := s.layouts[s.active]; ok {
		return
	}
	if _, ok := s.layouts[defaultName]; ok {
		s.active = defaultName
		return
	}
	s.active = s.firstLocked()
}

// Names returns all layout names in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.names...)
}

// Get returns the layout with the given name.
func (s *Store) Get(name string) (Layout, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.layouts[name]
	return l, ok
}

// Has reports whether a layout with the given name exists.
func (s *Store) Has(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.layouts[name]
	return ok
}

// First returns the first layout name in sorted order, or "" when empty.
func (s *Store) First() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.firstLocked()
}

func (s *Store) firstLocked() string {
	if len(s.names) == 0 {
		return ""
	}
	return s.names[0]
}

// ActiveName returns the currently selected layout name.
func (s *Store) ActiveName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Active returns the currently selected layout.
func (s *Store) Active() (Layout, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.layouts[s.active]
	return l, ok
}

// SetActive selects a layout by name.
func (s *Store) SetActive(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.layouts[name]; !ok {
		return fmt.Errorf("layout %q not found", name)
	}
	s.active = name
	return nil
}

// Cycle moves the active selection by delta through the sorted layout names,
// wrapping at both ends, and returns the new active name.
func (s *Store) Cycle(delta int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.names)
	if n == 0 {
		return ""
	}

	idx := 0
	for i, name := range s.names {
		if name == s.active {
			idx = i
			break
		}
	}

	idx = ((idx+delta)%n + n) % n
	s.active = s.names[idx]
	return s.active
}
