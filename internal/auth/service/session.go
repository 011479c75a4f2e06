package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// ============================================================
// Session Manager
// ============================================================

const defaultTTL = 24 * time.Hour

type session struct {
	userID    string
	expiresAt time.Time
}

type SessionManager struct {
	mu     sync.Mutex
	tokens map[string]session
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		tokens: make(map[string]session),
		ttl:    defaultTTL,
		now:    time.Now,
	}
}

// Issue выдает новый токен для пользователя.
func (m *SessionManager) Issue(userID string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	token := uuid.NewString()
	m.tokens[token] = session{
		userID:    userID,
		expiresAt: m.now().Add(m.ttl),
	}
	return token
}

// Resolve возвращает userID по токену. Протухшие токены удаляются.
func (m *SessionManager) Resolve(token string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.tokens[token]
	if !ok {
		return "", false
	}
	if m.now().After(s.expiresAt) {
		delete(m.tokens, token)
		return "", false
	}
	return s.userID, true
}

// Revoke снимает токен (logout).
func (m *SessionManager) Revoke(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, token)
}
