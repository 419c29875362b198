package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/roxiler/storerating-client/internal/core/ports"
)

const defaultPrefix = "storerating"

// SessionStorage keeps the session in two Redis keys, shared by every client
// process pointed at the same instance and prefix.
// Key format: <prefix>:token and <prefix>:user
type SessionStorage struct {
	client *redis.Client
	prefix string
}

var _ ports.SessionStorage = (*SessionStorage)(nil)

// NewSessionStorage wraps client. An empty prefix falls back to "storerating".
func NewSessionStorage(client *redis.Client, prefix string) *SessionStorage {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &SessionStorage{client: client, prefix: prefix}
}

func (s *SessionStorage) Read(ctx context.Context) (ports.SessionRecord, error) {
	vals, err := s.client.MGet(ctx, s.tokenKey(), s.userKey()).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return ports.SessionRecord{}, fmt.Errorf("redis read session: %w", err)
	}

	var rec ports.SessionRecord
	if len(vals) == 2 {
		rec.Token, _ = vals[0].(string)
		rec.User, _ = vals[1].(string)
	}
	return rec, nil
}

// Write sets both keys in one transaction.
func (s *SessionStorage) Write(ctx context.Context, rec ports.SessionRecord) error {
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, s.tokenKey(), rec.Token, 0)
		p.Set(ctx, s.userKey(), rec.User, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis write session: %w", err)
	}
	return nil
}

// Clear deletes both keys with a single DEL.
func (s *SessionStorage) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.tokenKey(), s.userKey()).Err(); err != nil {
		return fmt.Errorf("redis clear session: %w", err)
	}
	return nil
}

func (s *SessionStorage) tokenKey() string { return s.prefix + ":token" }

func (s *SessionStorage) userKey() string { return s.prefix + ":user" }
