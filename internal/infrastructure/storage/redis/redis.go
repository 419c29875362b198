package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dialTimeout = 5 * time.Second

// Config selects the Redis instance and key prefix holding the session.
type Config struct {
	Addr     string
	DB       int
	Password string
	Prefix   string
	// Timeout bounds dialing, each command and the startup ping.
	Timeout time.Duration
}

// Open connects, pings the server and returns storage that owns the client.
// Close releases the connection pool.
func Open(ctx context.Context, cfg Config) (*SessionStorage, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = dialTimeout
	}
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		DB:           cfg.DB,
		Password:     cfg.Password,
		DialTimeout:  cfg.Timeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s: %w", cfg.Addr, err)
	}
	return NewSessionStorage(client, cfg.Prefix), nil
}

// Close closes the underlying client.
func (s *SessionStorage) Close() error {
	return s.client.Close()
}
