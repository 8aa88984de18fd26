package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// EventLogout tells every page of a session to leave for the login view.
const EventLogout = "logout"

// Event is pushed to browser pages as JSON.
type Event struct {
	Type     string `json:"type"`
	Redirect string `json:"redirect,omitempty"`
}

// Hub tracks the live page connections of each browser session.
type Hub struct {
	mu           sync.RWMutex
	sessions     map[string]map[*Connection]struct{}
	pingInterval time.Duration
	logger       *zap.Logger
}

// NewHub builds connection hub.
func NewHub(pingInterval time.Duration, logger *zap.Logger) *Hub {
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}
	return &Hub{
		sessions:     make(map[string]map[*Connection]struct{}),
		pingInterval: pingInterval,
		logger:       logger,
	}
}

// Add registers new connection.
func (h *Hub) Add(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.sessions[conn.SessionID()]
	if !ok {
		set = make(map[*Connection]struct{})
		h.sessions[conn.SessionID()] = set
	}
	set[conn] = struct{}{}
}

// Remove drops connection.
func (h *Hub) Remove(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.sessions[conn.SessionID()]
	if !ok {
		return
	}
	delete(set, conn)
	if len(set) == 0 {
		delete(h.sessions, conn.SessionID())
	}
}

// Count returns the number of open pages for a session.
func (h *Hub) Count(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionID])
}

// Broadcast sends ev to every page of the session and returns how many were addressed.
func (h *Hub) Broadcast(sessionID string, ev Event) int {
	payload, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("failed to encode event", zap.Error(err))
		return 0
	}

	targets := h.snapshot(sessionID)
	for _, conn := range targets {
		conn.Send(payload)
	}
	return len(targets)
}

// NotifyLogout is registered as a session logout listener.
func (h *Hub) NotifyLogout(sessionID string) {
	n := h.Broadcast(sessionID, Event{Type: EventLogout, Redirect: "/login"})
	if n > 0 {
		h.logger.Debug("logout pushed", zap.String("session_id", sessionID), zap.Int("pages", n))
	}
}

// Start begins ping loop to keep connections active.
func (h *Hub) Start(ctx context.Context) {
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, conn := range h.connections() {
				_ = conn.Ping()
			}
		}
	}
}

// snapshot copies the connections of one session so writes happen outside the lock.
func (h *Hub) snapshot(sessionID string) []*Connection {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*Connection, 0, len(h.sessions[sessionID]))
	for conn := range h.sessions[sessionID] {
		out = append(out, conn)
	}
	return out
}

// connections copies every open connection for the ping loop.
func (h *Hub) connections() []*Connection {
	h.mu.RLock()
	defer h.mu.RUnlock()
	var out []*Connection
	for _, set := range h.sessions {
		for conn := range set {
			out = append(out, conn)
		}
	}
	return out
}
