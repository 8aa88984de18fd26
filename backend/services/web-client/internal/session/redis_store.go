package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type storedToken struct {
	Token   string    `json:"token"`
	SavedAt time.Time `json:"saved_at"`
}

// RedisStore persists tokens in redis. A zero ttl keeps keys until logout.
type RedisStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisStore returns redis-backed store.
func NewRedisStore(client redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) key(id string) string {
	return fmt.Sprintf("webclient:session:%s", id)
}

// Load returns the token for id.
func (s *RedisStore) Load(ctx context.Context, id string) (string, error) {
	result, err := s.client.Get(ctx, s.key(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}
	var stored storedToken
	if err := json.Unmarshal([]byte(result), &stored); err != nil {
		return "", fmt.Errorf("session: decode %s: %w", id, err)
	}
	return stored.Token, nil
}

// Save stores the token for id.
func (s *RedisStore) Save(ctx context.Context, id, token string) error {
	data, err := json.Marshal(storedToken{Token: token, SavedAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(id), data, s.ttl).Err()
}

// Delete removes the token for id.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}
