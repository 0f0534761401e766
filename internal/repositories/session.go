package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/warbler-app/warbler/internal/logger"
)

// SessionRepository stores live login sessions in Redis. A session record
// maps a session identifier to the logged-in user's id; logout deletes the
// record, so a token whose session is gone is rejected even when its
// signature is still valid.
type SessionRepository struct {
	client *redis.Client
	exp    time.Duration // session lifetime
}

// NewSessionRepository creates a new repository instance with the given TTL.
func NewSessionRepository(client *redis.Client, expiration time.Duration) *SessionRepository {
	return &SessionRepository{
		client: client,
		exp:    expiration,
	}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

// Set registers a session for the given user.
func (r *SessionRepository) Set(ctx context.Context, sessionID string, userID int64) error {
	key := sessionKey(sessionID)
	err := r.client.Set(ctx, key, strconv.FormatInt(userID, 10), r.exp).Err()

	logger.Log.Infow(
		"key", key,
		"user_id", userID,
		"error", err,
	)

	return err
}

// Get returns the user id bound to the session, or ErrNotFound when the
// session does not exist or has expired.
func (r *SessionRepository) Get(ctx context.Context, sessionID string) (int64, error) {
	key := sessionKey(sessionID)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.Log.Infow(
			"key", key,
			"error", err,
		)
		if errors.Is(err, redis.Nil) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		logger.Log.Infow(
			"key", key,
			"value", val,
			"error", err,
		)
		return 0, err
	}

	logger.Log.Infow(
		"key", key,
		"result", userID,
		"error", nil,
	)

	return userID, nil
}

// Delete removes the session record. Deleting an absent session is a no-op.
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	key := sessionKey(sessionID)
	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow(
		"key", key,
		"error", err,
	)

	return err
}
