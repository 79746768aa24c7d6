// Package sessionstore implements adapter.SessionStore in memory and on redis.
package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/financy/backend/internal/application/adapter"
	"github.com/financy/backend/internal/application/session"
	domainerror "github.com/financy/backend/internal/domain/error"
)

const keyPrefix = "financy:session:"

// redisStore keeps each session as a JSON value with a sliding TTL.
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a redis backed session store. A zero ttl keeps
// sessions forever.
func NewRedisStore(client *redis.Client, ttl time.Duration) adapter.SessionStore {
	return &redisStore{
		client: client,
		ttl:    ttl,
	}
}

func key(id string) string {
	return keyPrefix + id
}

// Create stores a new logged out session.
func (s *redisStore) Create(ctx context.Context) (*session.Session, error) {
	created := session.New(uuid.New().String())
	if err := s.write(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

// Get reads a session and refreshes its TTL.
func (s *redisStore) Get(ctx context.Context, id string) (*session.Session, error) {
	data, err := s.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domainerror.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	if s.ttl > 0 {
		if err := s.client.Expire(ctx, key(id), s.ttl).Err(); err != nil {
			return nil, fmt.Errorf("failed to refresh session: %w", err)
		}
	}
	return &sess, nil
}

// Save replaces a stored session. Saving an expired session fails.
func (s *redisStore) Save(ctx context.Context, sess *session.Session) error {
	exists, err := s.client.Exists(ctx, key(sess.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check session: %w", err)
	}
	if exists == 0 {
		return domainerror.ErrSessionNotFound
	}
	return s.write(ctx, sess)
}

// Delete removes a session.
func (s *redisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *redisStore) write(ctx context.Context, sess *session.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.client.Set(ctx, key(sess.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}
