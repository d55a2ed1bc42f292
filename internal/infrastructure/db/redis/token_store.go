package redis

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/inkwell/blog-service/internal/core/domain"
)

const tokenBytes = 20

// TokenStore is the authoritative opaque token mapping, backed by Redis.
// Tokens are random hex strings handed to clients as-is; only their SHA-256
// digest is stored, so a dump of the store never yields usable credentials.
// Key format: token:<sha256_hex> → user id.
type TokenStore struct {
	client *redis.Client
	// ttl of 0 means tokens never expire and live until revoked.
	ttl time.Duration
}

// NewTokenStore creates a TokenStore wrapping the given Redis client.
func NewTokenStore(client *redis.Client, ttl time.Duration) *TokenStore {
	return &TokenStore{client: client, ttl: ttl}
}

// Issue generates a fresh token bound to userID and persists the mapping.
func (s *TokenStore) Issue(ctx context.Context, userID int64) (string, error) {
	raw := make([]byte, tokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	token := hex.EncodeToString(raw)

	err := s.client.Set(ctx, s.key(token), strconv.FormatInt(userID, 10), s.ttl).Err()
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Validate resolves a presented token to a user id. Absent, malformed or
// revoked tokens all yield domain.ErrUnauthenticated.
func (s *TokenStore) Validate(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, domain.ErrUnauthenticated
	}

	val, err := s.client.Get(ctx, s.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, domain.ErrUnauthenticated
		}
		return 0, fmt.Errorf("validate token: %w", err)
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, domain.ErrUnauthenticated
	}
	return userID, nil
}

// Revoke deletes the mapping. Deleting an absent key is a no-op, which makes
// revocation idempotent.
func (s *TokenStore) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *TokenStore) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "token:" + hex.EncodeToString(sum[:])
}
