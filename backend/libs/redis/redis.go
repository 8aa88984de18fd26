package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dialTimeout  = 5 * time.Second
	ioTimeout    = 3 * time.Second
	pingDeadline = 5 * time.Second
)

// Options describes how to reach redis. Addr is either host:port or a redis:// URL;
// values carried by a URL take precedence over Password and DB.
type Options struct {
	Addr     string
	Password string
	DB       int
}

func (o Options) clientOptions() (*redis.Options, error) {
	addr := strings.TrimSpace(o.Addr)
	if addr == "" {
		return nil, errors.New("redis: addr is empty")
	}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("redis: parse url: %w", err)
		}
		return parsed, nil
	}
	return &redis.Options{Addr: addr, Password: o.Password, DB: o.DB}, nil
}

// NewRedisClient returns a go-redis client once PING succeeds.
func NewRedisClient(ctx context.Context, opts Options) (*redis.Client, error) {
	clientOpts, err := opts.clientOptions()
	if err != nil {
		return nil, err
	}
	clientOpts.DialTimeout = dialTimeout
	clientOpts.ReadTimeout = ioTimeout
	clientOpts.WriteTimeout = ioTimeout

	client := redis.NewClient(clientOpts)

	pingCtx, cancel := context.WithTimeout(ctx, pingDeadline)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", clientOpts.Addr, err)
	}
	return client, nil
}
