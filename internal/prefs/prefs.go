// Package prefs persists the per-screen, per-desktop layout choice.
//
// Each (screen, desktop) pair remembers the layout last applied there, so
// switching desktops or restarting the daemon restores the layout the user
// chose for that context. Persistence failures are logged and otherwise
// ignored; preferences are a convenience, never a correctness requirement.
package prefs

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Key identifies a (screen, desktop) context. Screen is an index into the
// sorted display list, Desktop the window manager's desktop number.
type Key struct {
	Screen  int
	Desktop int
}

// Resolver reports the currently focused screen and desktop.
type Resolver interface {
	CurrentScreen() (int, error)
	CurrentDesktop() (int, error)
}

type entry struct {
	Screen  int    `json:"screen"`
	Desktop int    `json:"desktop"`
	Layout  string `json:"layout"`
}

// Store holds layout preferences keyed by screen and desktop, mirrored to a
// JSON file on every change.
type Store struct {
	mu      sync.Mutex
	path    string
	entries map[Key]string
}

// Load reads preferences from path. A missing file yields an empty store;
// a corrupt file is logged and discarded rather than blocking startup.
func Load(path string) *Store {
	s := &Store{
		path:    path,
		entries: make(map[Key]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("prefs: failed to read %s: %v", path, err)
		}
		return s
	}

	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("prefs: failed to parse %s: %v", path, err)
		return s
	}

	for _, e := range entries {
		s.entries[Key{Screen: e.Screen, Desktop: e.Desktop}] = e.Layout
	}
	return s
}

// Set records layout for key and saves best-effort.
func (s *Store) Set(key Key, layout string) {
	s.mu.Lock()
	s.entries[key] = layout
	s.mu.Unlock()

	s.save()
}

// Get returns the stored layout name for key.
func (s *Store) Get(key Key) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	layout, ok := s.entries[key]
	return layout, ok
}

// Resolve returns the stored layout for key, or fallback when the pair has
// no recorded preference yet.
func (s *Store) Resolve(key Key, fallback string) string {
	if layout, ok := s.Get(key); ok {
		return layout
	}
	return fallback
}

// SetCurrent records layout for the resolver's current (screen, desktop)
// pair. Resolution failures are logged no-ops.
func (s *Store) SetCurrent(r Resolver, layout string) {
	key, err := currentKey(r)
	if err != nil {
		log.Printf("prefs: %v", err)
		return
	}
	s.Set(key, layout)
}

// GetCurrent returns the stored layout for the resolver's current
// (screen, desktop) pair, falling back when the pair is unknown or cannot
// be resolved.
func (s *Store) GetCurrent(r Resolver, fallback string) string {
	key, err := currentKey(r)
	if err != nil {
		log.Printf("prefs: %v", err)
		return fallback
	}
	return s.Resolve(key, fallback)
}

// Len returns the number of stored preferences.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func currentKey(r Resolver) (Key, error) {
	screen, err := r.CurrentScreen()
	if err != nil {
		return Key{}, fmt.Errorf("cannot resolve current screen: %w", err)
	}
	desktop, err := r.CurrentDesktop()
	if err != nil {
		return Key{}, fmt.Errorf("cannot resolve current desktop: %w", err)
	}
	return Key{Screen: screen, Desktop: desktop}, nil
}

func (s *Store) save() {
	s.mu.Lock()
	entries := make([]entry, 0, len(s.entries))
	for key, layout := range s.entries {
		entries = append(entries, entry{Screen: key.Screen, Desktop: key.Desktop, Layout: layout})
	}
	path := s.path
	s.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Screen != entries[j].Screen {
			return entries[i].Screen < entries[j].Screen
		}
		return entries[i].Desktop < entries[j].Desktop
	})

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		log.Printf("prefs: failed to encode preferences: %v", err)
		return
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.Printf("prefs: failed to create directory for %s: %v", path, err)
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Printf("prefs: failed to write %s: %v", path, err)
	}
}
