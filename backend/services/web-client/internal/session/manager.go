package session

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager creates and rehydrates sessions over a Store.
type Manager struct {
	store  Store
	logger *zap.Logger

	mu        sync.RWMutex
	listeners []func(id string)
}

// NewManager builds a session manager.
func NewManager(store Store, logger *zap.Logger) *Manager {
	return &Manager{store: store, logger: logger}
}

// OnLogout registers fn to be called after a session drops its token.
func (m *Manager) OnLogout(fn func(id string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// New mints an empty session with a fresh id.
func (m *Manager) New() *Session {
	return m.build(uuid.NewString(), "")
}

// Open rehydrates the session for id. Malformed ids and ids the store does not know
// yield a fresh session; callers compare ID() with the cookie to decide whether it
// has to be reissued.
func (m *Manager) Open(ctx context.Context, id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return m.New(), nil
	}
	token, err := m.store.Load(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return m.New(), nil
	}
	if err != nil {
		return nil, err
	}
	return m.build(id, token), nil
}

func (m *Manager) build(id, token string) *Session {
	return &Session{
		id:       id,
		token:    token,
		store:    m.store,
		mint:     uuid.NewString,
		onLogout: m.notifyLogout,
	}
}

func (m *Manager) notifyLogout(id string) {
	m.mu.RLock()
	listeners := append([]func(string){}, m.listeners...)
	m.mu.RUnlock()

	m.logger.Info("session logged out", zap.String("session_id", id))
	for _, fn := range listeners {
		fn(id)
	}
}
