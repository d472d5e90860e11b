package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrSessionRevoked indicates the token is signed correctly but its session
// was logged out or expired server-side.
var ErrSessionRevoked = errors.New("session revoked or expired")

const sessionKeyPrefix = "session:"

// SessionStore tracks live session ids in Redis so logout can invalidate a
// token before its JWT expiry. A token is only accepted while its session id
// is present.
type SessionStore struct {
	client      *redis.Client
	sessionTTL  time.Duration
	rememberTTL time.Duration
}

// NewSessionStore builds a store with base and "remember me" lifetimes.
func NewSessionStore(client *redis.Client, sessionTTL, rememberTTL time.Duration) *SessionStore {
	return &SessionStore{client: client, sessionTTL: sessionTTL, rememberTTL: rememberTTL}
}

// Open registers a new session for the account and returns its id and
// lifetime. remember selects the extended TTL.
func (s *SessionStore) Open(ctx context.Context, accountID int64, remember bool) (string, time.Duration, error) {
	ttl := s.sessionTTL
	if remember {
		ttl = s.rememberTTL
	}
	sessionID := uuid.NewString()
	key := sessionKeyPrefix + sessionID
	if err := s.client.Set(ctx, key, strconv.FormatInt(accountID, 10), ttl).Err(); err != nil {
		return "", 0, err
	}
	return sessionID, ttl, nil
}

// Check verifies the session id is still live.
func (s *SessionStore) Check(ctx context.Context, sessionID string) error {
	exists, err := s.client.Exists(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return ErrSessionRevoked
	}
	return nil
}

// Revoke deletes the session id, invalidating any token bound to it.
func (s *SessionStore) Revoke(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
