package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRepository keeps issued session tokens in Redis so that logout can
// revoke a token before its JWT expiry.
type TokenRepository struct {
	client *redis.Client
}

func NewTokenRepository(client *redis.Client) *TokenRepository {
	return &TokenRepository{client: client}
}

func tokenLookupKey(token string) string {
	return fmt.Sprintf("session:token:%s", token)
}

func userSessionKey(userID string) string {
	return fmt.Sprintf("session:user:%s", userID)
}

func (r *TokenRepository) StoreToken(ctx context.Context, userID string, token string, ttl time.Duration) error {
	if err := r.client.Set(ctx, tokenLookupKey(token), userID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session token: %w", err)
	}

	if err := r.client.Set(ctx, userSessionKey(userID), token, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store user session: %w", err)
	}

	return nil
}

func (r *TokenRepository) GetUserIDByToken(ctx context.Context, token string) (string, error) {
	userID, err := r.client.Get(ctx, tokenLookupKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", errors.New("token not found")
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up token: %w", err)
	}

	return userID, nil
}

func (r *TokenRepository) DeleteToken(ctx context.Context, userID string, token string) error {
	if err := r.client.Del(ctx, tokenLookupKey(token), userSessionKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session token: %w", err)
	}

	return nil
}
