// internal/domain/checkout/manager.go
package checkout

import (
	"sync"
	"time"
)

// Manager owns the live checkout sessions. Sessions are process-local and
// are not persisted across restarts; an expired or finished session simply
// disappears.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewManager creates a session manager with the given session lifetime
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Create starts a new checkout session for the user
func (m *Manager) Create(userID uint, userName string) *Session {
	session := newSession(userID, userName, m.ttl)

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	return session
}

// Get returns a live session by id. Expired sessions are dropped on access.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	session, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}

	if time.Now().UTC().After(session.ExpiresAt) {
		m.Delete(id)
		return nil, ErrSessionNotFound
	}

	return session, nil
}

// Delete discards a session
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Count returns the number of live sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
