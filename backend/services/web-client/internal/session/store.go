package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Store.Load when no token is persisted for the id.
var ErrNotFound = errors.New("session: not found")

// Store persists the single token string held by a browser session.
type Store interface {
	Load(ctx context.Context, id string) (string, error)
	Save(ctx context.Context, id, token string) error
	Delete(ctx context.Context, id string) error
}
