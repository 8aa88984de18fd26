package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Session is the per-browser holder of the bearer token.
// Every change is written through to the Store before it becomes visible.
type Session struct {
	mu       sync.RWMutex
	id       string
	token    string
	store    Store
	mint     func() string
	onLogout func(id string)
}

// ID returns the session identifier carried by the cookie.
func (s *Session) ID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

// Token returns the current token and whether one is present.
func (s *Session) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Subject returns the display label of the signed-in user, if the token carries one.
func (s *Session) Subject() string {
	token, ok := s.Token()
	if !ok {
		return ""
	}
	return Subject(token)
}

// SetToken replaces the token. An empty token removes the persisted value.
func (s *Session) SetToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)

	s.mu.Lock()
	var err error
	if token != "" {
		err = s.store.Save(ctx, s.id, token)
	} else {
		err = s.store.Delete(ctx, s.id)
	}
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("session: sync %s: %w", s.id, err)
	}
	hadToken := s.token != ""
	s.token = token
	s.mu.Unlock()

	if hadToken && token == "" && s.onLogout != nil {
		s.onLogout(s.id)
	}
	return nil
}

// Renew stores token under a freshly minted id and forgets the previous one, so an id
// known before sign-in never carries the token. The caller reissues the cookie.
func (s *Session) Renew(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("session: empty token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	oldID, newID := s.id, s.mint()
	if err := s.store.Save(ctx, newID, token); err != nil {
		return fmt.Errorf("session: sync %s: %w", newID, err)
	}
	if err := s.store.Delete(ctx, oldID); err != nil {
		_ = s.store.Delete(ctx, newID)
		return fmt.Errorf("session: drop %s: %w", oldID, err)
	}
	s.id = newID
	s.token = token
	return nil
}

// Logout clears the token.
func (s *Session) Logout(ctx context.Context) error {
	return s.SetToken(ctx, "")
}
