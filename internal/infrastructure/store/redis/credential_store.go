package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/diycomponents/storefront/internal/core/ports"
)

// Fixed key suffixes inherited from the web client's localStorage contract.
const (
	keyAuthToken = "auth_token"
	keyUserEmail = "user_email"
)

const defaultCredentialTTL = 30 * 24 * time.Hour

// CredentialStore persists one visitor's credential pair under fixed keys.
// Entries survive process restarts and are removed on logout, on
// server-side rejection, or when the TTL lapses for abandoned visitors.
type CredentialStore struct {
	client    *redis.Client
	visitorID string
	ttl       time.Duration
}

var _ ports.CredentialStore = (*CredentialStore)(nil)

// NewCredentialStore scopes a store to visitorID. A non-positive ttl
// selects the default.
func NewCredentialStore(client *redis.Client, visitorID string, ttl time.Duration) *CredentialStore {
	if ttl <= 0 {
		ttl = defaultCredentialTTL
	}
	return &CredentialStore{client: client, visitorID: visitorID, ttl: ttl}
}

func (s *CredentialStore) Load(ctx context.Context) (ports.Credentials, error) {
	vals, err := s.client.MGet(ctx, s.key(keyAuthToken), s.key(keyUserEmail)).Result()
	if err != nil {
		return ports.Credentials{}, fmt.Errorf("load credentials: %w", err)
	}

	var creds ports.Credentials
	if token, ok := vals[0].(string); ok {
		creds.Token = token
	}
	if email, ok := vals[1].(string); ok {
		creds.Email = email
	}
	return creds, nil
}

func (s *CredentialStore) Save(ctx context.Context, creds ports.Credentials) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(keyAuthToken), creds.Token, s.ttl)
	pipe.Set(ctx, s.key(keyUserEmail), creds.Email, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

func (s *CredentialStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key(keyAuthToken), s.key(keyUserEmail)).Err(); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

func (s *CredentialStore) key(suffix string) string {
	return fmt.Sprintf("storefront:cred:%s:%s", s.visitorID, suffix)
}
