package app

import (
	"sort"
	"sync"
)

// Screen is a live screen reactor.
type Screen interface {
	ID() string
	Name() string
	Dispose()
}

// Manager tracks screen lifecycles
type Manager struct {
	screens   sync.Map
	focusedID *string
	mu        sync.RWMutex
}

// NewManager creates a new screen manager
func NewManager() *Manager {
	return &Manager{}
}

// Track registers a screen and focuses it
func (m *Manager) Track(s Screen) {
	m.screens.Store(s.ID(), s)
	m.setFocused(s.ID())
}

// Get retrieves a screen by ID
func (m *Manager) Get(id string) (Screen, bool) {
	val, ok := m.screens.Load(id)
	if !ok {
		return nil, false
	}
	return val.(Screen), true
}

// List returns all live screens, ordered by name then ID
func (m *Manager) List() []Screen {
	var screens []Screen
	m.screens.Range(func(_, value interface{}) bool {
		screens = append(screens, value.(Screen))
		return true
	})
	sort.Slice(screens, func(i, j int) bool {
		if screens[i].Name() != screens[j].Name() {
			return screens[i].Name() < screens[j].Name()
		}
		return screens[i].ID() < screens[j].ID()
	})
	return screens
}

// Focus brings a screen to the foreground
func (m *Manager) Focus(id string) bool {
	if _, ok := m.Get(id); !ok {
		return false
	}
	m.setFocused(id)
	return true
}

// Focused returns the focused screen
func (m *Manager) Focused() (Screen, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.focusedID == nil {
		return nil, false
	}
	return m.Get(*m.focusedID)
}

// Close disposes a screen and forgets it
func (m *Manager) Close(id string) bool {
	val, ok := m.screens.LoadAndDelete(id)
	if !ok {
		return false
	}
	val.(Screen).Dispose()

	m.mu.Lock()
	if m.focusedID != nil && *m.focusedID == id {
		m.focusedID = nil
	}
	m.mu.Unlock()
	return true
}

// CloseAll disposes every screen and returns how many were closed
func (m *Manager) CloseAll() int {
	closed := 0
	for _, s := range m.List() {
		if m.Close(s.ID()) {
			closed++
		}
	}
	return closed
}

// Count returns the number of live screens
func (m *Manager) Count() int {
	count := 0
	m.screens.Range(func(_, _ interface{}) bool {
		count++
		return true
	})
	return count
}

func (m *Manager) setFocused(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.focusedID = &id
}
