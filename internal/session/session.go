// Package session holds the explicit register session objects handed to the
// services: who is logged in, their role, and the upstream bearer token. The
// manager replaces ambient token storage with a defined issue/validate/revoke
// lifecycle.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session identifies an authenticated terminal operator.
type Session struct {
	ID        string
	Username  string
	Role      string
	Token     string // upstream API bearer token
	ExpiresAt time.Time
}

// Manager is an in-memory session store keyed by session ID.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]Session
	ttl      time.Duration
	now      func() time.Time
}

func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Issue creates a session for a logged-in operator and returns it.
func (m *Manager) Issue(username, role, token string) Session {
	s := Session{
		ID:        uuid.NewString(),
		Username:  username,
		Role:      role,
		Token:     token,
		ExpiresAt: m.now().Add(m.ttl),
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Validate looks up a session by ID. Expired sessions are dropped and report
// as absent.
func (m *Manager) Validate(id string) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return Session{}, false
	}
	if m.now().After(s.ExpiresAt) {
		delete(m.sessions, id)
		return Session{}, false
	}
	return s, true
}

// Revoke tears the session down; revoking an unknown ID is a no-op.
func (m *Manager) Revoke(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}
