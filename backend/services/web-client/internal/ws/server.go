package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// SessionResolver returns the session id of a request that holds a token.
type SessionResolver func(r *http.Request) (string, bool)

// Server upgrades page requests to session event streams.
type Server struct {
	hub          *Hub
	resolve      SessionResolver
	logger       *zap.Logger
	writeTimeout time.Duration
	upgrader     websocket.Upgrader
}

// NewServer builds ws server.
func NewServer(hub *Hub, resolve SessionResolver, writeTimeout time.Duration, logger *zap.Logger) *Server {
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Second
	}
	return &Server{
		hub:          hub,
		resolve:      resolve,
		logger:       logger,
		writeTimeout: writeTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWS is HTTP handler for /ws/session.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := s.resolve(r)
	if !ok {
		http.Error(w, "session required", http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	connection := NewConnection(sessionID, conn, s.writeTimeout, s.logger, func(c *Connection) {
		s.hub.Remove(c)
		_ = conn.Close()
		cancel()
	})
	s.hub.Add(connection)

	go connection.Start(ctx)
}
