package session

import (
	"context"
	"database/sql"
	"errors"

	libdb "busreserva/backend/libs/db"
)

const createSessionsTable = `
	CREATE TABLE IF NOT EXISTS web_sessions (
		id         TEXT PRIMARY KEY,
		token      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

// PostgresStore persists tokens in the web_sessions table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore returns store instance.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the backing table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	return libdb.ApplySchema(ctx, s.db, createSessionsTable)
}

// Load returns the token for id.
func (s *PostgresStore) Load(ctx context.Context, id string) (string, error) {
	const query = `
		SELECT token
		FROM web_sessions
		WHERE id = $1
		LIMIT 1
	`
	var token string
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return token, nil
}

// Save upserts the token for id.
func (s *PostgresStore) Save(ctx context.Context, id, token string) error {
	const query = `
		INSERT INTO web_sessions (id, token, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET token = EXCLUDED.token, updated_at = now()
	`
	_, err := s.db.ExecContext(ctx, query, id, token)
	return err
}

// Delete removes the row for id.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM web_sessions WHERE id = $1`
	_, err := s.db.ExecContext(ctx, query, id)
	return err
}
