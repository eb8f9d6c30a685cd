package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	pkgerrors "github.com/jngsolar/storefront-backend/pkg/errors"
	redisclient "github.com/jngsolar/storefront-backend/pkg/redis"
)

type cartValueStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	GetDel(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CartKey(sessionID string) string
}

// RedisStore keeps session carts as JSON documents under namespaced,
// TTL-bound keys, so carts expire with the session.
type RedisStore struct {
	client cartValueStore
	ttl    time.Duration
}

// NewRedisStore builds a Redis-backed cart store.
func NewRedisStore(client *redisclient.Client, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cart ttl must be positive")
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func (s *RedisStore) Lines(ctx context.Context, sessionID string) ([]Line, error) {
	raw, err := s.client.Get(ctx, s.client.CartKey(sessionID))
	if err != nil {
		if errors.Is(err, redisclient.Nil) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reading cart")
	}
	return decodeLines(raw)
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, lines []Line) error {
	payload, err := json.Marshal(lines)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding cart")
	}
	if err := s.client.Set(ctx, s.client.CartKey(sessionID), string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "writing cart")
	}
	return nil
}

func (s *RedisStore) Take(ctx context.Context, sessionID string) ([]Line, error) {
	raw, err := s.client.GetDel(ctx, s.client.CartKey(sessionID))
	if err != nil {
		if errors.Is(err, redisclient.Nil) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "taking cart")
	}
	return decodeLines(raw)
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.client.CartKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing cart")
	}
	return nil
}

func decodeLines(raw string) ([]Line, error) {
	if raw == "" {
		return nil, nil
	}
	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding cart")
	}
	return lines, nil
}
