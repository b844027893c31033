package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sparkconnect/directory/internal/core/domain"
	"github.com/sparkconnect/directory/internal/core/ports"
)

const sessionTTL = 7 * 24 * time.Hour

// SessionStore keeps login sessions in Redis.
// Key format: session:<id> -> user id, expiring after sessionTTL.
type SessionStore struct {
	client *redis.Client
}

var _ ports.SessionStore = (*SessionStore)(nil)

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Create mints a random session id for the user.
func (s *SessionStore) Create(ctx context.Context, userID int) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("session id: %w", err)
	}
	id := hex.EncodeToString(buf)

	if err := s.client.Set(ctx, s.key(id), userID, sessionTTL).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return id, nil
}

// UserID resolves a session id to the logged-in user. A hit refreshes the
// session's expiry; a miss reports domain.ErrNoSession.
func (s *SessionStore) UserID(ctx context.Context, sessionID string) (int, error) {
	val, err := s.client.GetEx(ctx, s.key(sessionID), sessionTTL).Result()
	if err == redis.Nil {
		return 0, domain.ErrNoSession
	}
	if err != nil {
		return 0, fmt.Errorf("resolve session: %w", err)
	}
	userID, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("decode session: %w", err)
	}
	return userID, nil
}

// Delete discards the session. Deleting an unknown id is a no-op.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.key(sessionID)).Err()
}

func (s *SessionStore) key(id string) string {
	return "session:" + id
}
