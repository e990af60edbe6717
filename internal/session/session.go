package session

import (
	"sync"
)

// Pending is a disambiguation waiting for the user to pick a product.
type Pending struct {
	Query   string
	Options []string
}

// Manager keeps per-chat pending-disambiguation state. The matching engine
// itself is stateless between calls; everything conversational lives here,
// in memory only.
type Manager struct {
	mu      sync.RWMutex
	pending map[int64]Pending
}

func NewManager() *Manager {
	return &Manager{pending: make(map[int64]Pending)}
}

func (m *Manager) Set(chatID int64, p Pending) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending[chatID] = p
}

func (m *Manager) Get(chatID int64) (Pending, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.pending[chatID]
	return p, ok
}

// Take returns and clears the pending state in one step, so a double-tapped
// button cannot answer twice.
func (m *Manager) Take(chatID int64) (Pending, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pending[chatID]
	if ok {
		delete(m.pending, chatID)
	}
	return p, ok
}

func (m *Manager) Clear(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pending, chatID)
}
