package session

import "sync"

// Manager tracks live interviews by session ID so concurrent interviews
// don't share state. Within one session all writes are sequential; the
// RWMutex here only protects the map itself.
type Manager struct {
	mu         sync.RWMutex
	interviews map[string]*Interview
}

func NewManager() *Manager {
	return &Manager{
		interviews: make(map[string]*Interview),
	}
}

func (m *Manager) Add(iv *Interview) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interviews[iv.ID] = iv
}

func (m *Manager) Get(sessionID string) (*Interview, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	iv, ok := m.interviews[sessionID]
	return iv, ok
}

func (m *Manager) Remove(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.interviews, sessionID)
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.interviews)
}
