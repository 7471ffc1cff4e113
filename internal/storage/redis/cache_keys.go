package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recruit-platform/internal/auth"
)

const (
	RateLimitWindowTTL = 1 * time.Minute
)

func SessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

func QuizKey(userID int64) string {
	return fmt.Sprintf("quiz:user:%d", userID)
}

func RateLimitKey(client string) string {
	return fmt.Sprintf("ratelimit:client:%s", client)
}

// GetSession returns nil, nil when the session does not exist or has expired.
func (c *Cache) GetSession(ctx context.Context, sessionID string) (*auth.Session, error) {
	var sess auth.Session
	err := c.Get(ctx, SessionKey(sessionID), &sess)
	if errors.Is(err, ErrCacheMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (c *Cache) SetSession(ctx context.Context, sessionID string, sess *auth.Session, ttl time.Duration) error {
	return c.Set(ctx, SessionKey(sessionID), sess, ttl)
}

func (c *Cache) DeleteSession(ctx context.Context, sessionID string) error {
	return c.Delete(ctx, SessionKey(sessionID))
}

// GetQuiz returns "" when no quiz is cached for the user.
func (c *Cache) GetQuiz(ctx context.Context, userID int64) (string, error) {
	quiz, err := c.GetString(ctx, QuizKey(userID))
	if errors.Is(err, ErrCacheMiss) {
		return "", nil
	}
	return quiz, err
}

func (c *Cache) SetQuiz(ctx context.Context, userID int64, quiz string, ttl time.Duration) error {
	return c.SetString(ctx, QuizKey(userID), quiz, ttl)
}

func (c *Cache) DeleteQuiz(ctx context.Context, userID int64) error {
	return c.Delete(ctx, QuizKey(userID))
}

func (c *Cache) IncrementRateLimit(ctx context.Context, client string) (int64, error) {
	return c.IncrementWithExpiry(ctx, RateLimitKey(client), RateLimitWindowTTL)
}
