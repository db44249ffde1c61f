// Package session holds the client's authentication state: the cached user
// record and the bearer token, mirrored into a durable local store so a
// restart immediately after login never loses the session.
package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/mkalinin/healthportal/internal/client/models"
	"github.com/mkalinin/healthportal/internal/logging"
)

// Persisted store keys.
const (
	KeyUser  = "hp:user"
	KeyToken = "hp:token"
)

// Session is a snapshot of the current authentication state. User and Token
// are set and cleared together under normal operation.
type Session struct {
	User  *models.User
	Token string
}

// LoggedIn reports whether the snapshot carries an authenticated user.
func (s Session) LoggedIn() bool {
	return s.User != nil && s.Token != ""
}

// Manager is the single source of truth for the session. Every mutation goes
// through its setters, which mirror the new value to the Store before
// returning, and every reader observes the latest value.
type Manager struct {
	mu    sync.RWMutex
	store Store
	log   logging.Logger

	user  *models.User
	token string
}

func NewManager(store Store, log logging.Logger) *Manager {
	return &Manager{store: store, log: log}
}

// Restore loads the persisted session at startup. A malformed user record or
// a missing token means the session starts empty; the leftover keys are
// discarded best-effort and the failure is never surfaced to the user.
func (m *Manager) Restore(ctx context.Context) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rawToken, err := m.store.Get(ctx, KeyToken)
	if err != nil {
		m.log.Warn(ctx, "session restore failed", "error", err)
		return Session{}, false
	}
	rawUser, err := m.store.Get(ctx, KeyUser)
	if err != nil {
		m.log.Warn(ctx, "session restore failed", "error", err)
		return Session{}, false
	}

	if len(rawToken) == 0 || len(rawUser) == 0 {
		m.discardLocked(ctx)
		return Session{}, false
	}

	var user models.User
	if err := json.Unmarshal(rawUser, &user); err != nil {
		m.log.Warn(ctx, "discarding corrupt persisted session", "error", err)
		m.discardLocked(ctx)
		return Session{}, false
	}

	m.user = &user
	m.token = string(rawToken)
	return Session{User: m.user, Token: m.token}, true
}

// SetUser updates the cached user record and mirrors it to the store before
// returning: non-nil writes, nil removes.
func (m *Manager) SetUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.user = user
	if user == nil {
		return m.store.Delete(ctx, KeyUser)
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return m.store.Set(ctx, KeyUser, raw)
}

// SetToken updates the bearer token and mirrors it to the store before
// returning: non-empty writes, empty removes.
func (m *Manager) SetToken(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = token
	if token == "" {
		return m.store.Delete(ctx, KeyToken)
	}
	return m.store.Set(ctx, KeyToken, []byte(token))
}

// Current returns the current snapshot.
func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Session{User: m.user, Token: m.token}
}

// Token reports the current bearer token, or "" when logged out. It satisfies
// the API transport's token source and is re-evaluated on every request.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// Logout clears both fields and both persisted keys. Readers never observe a
// half-cleared session: the lock is held across the whole operation and the
// store wipes both keys in one statement.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.user = nil
	m.token = ""
	return m.store.Clear(ctx)
}

// discardLocked wipes in-memory state and best-effort removes the persisted
// keys. Callers must hold the write lock.
func (m *Manager) discardLocked(ctx context.Context) {
	m.user = nil
	m.token = ""
	if err := m.store.Clear(ctx); err != nil {
		m.log.Warn(ctx, "failed to clear persisted session", "error", err)
	}
}
