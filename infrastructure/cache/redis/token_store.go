// Package redis keeps the Zoho access token in Redis so every API instance and the CLI
// reuse one refresh instead of each hitting the OAuth endpoint.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	goredis "github.com/redis/go-redis/v9"

	zohodomain "github.com/indubai/portal-api/infrastructure/integrator/zoho/domain"
	"github.com/indubai/portal-api/internal/config"
	"github.com/indubai/portal-api/pkg/clock"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// NewClient returns nil when no address is configured; Redis is optional.
func NewClient(ctx context.Context, cfg config.Redis) (*goredis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", cfg.Addr, err)
	}

	return client, nil
}

type TokenStore struct {
	client *goredis.Client
	prefix string
	clock  clock.Clock
}

func NewTokenStore(client *goredis.Client, prefix string, clk clock.Clock) *TokenStore {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &TokenStore{client: client, prefix: prefix, clock: clk}
}

func (s *TokenStore) key() string {
	return fmt.Sprintf("%s:zoho:access_token", s.prefix)
}

func (s *TokenStore) Load(ctx context.Context) (*zohodomain.AccessToken, error) {
	data, err := s.client.Get(ctx, s.key()).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis: get token: %w", err)
	}

	var token zohodomain.AccessToken
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("redis: decode token: %w", err)
	}

	return &token, nil
}

// Save stores the token until it expires. Already expired tokens are not stored.
func (s *TokenStore) Save(ctx context.Context, token zohodomain.AccessToken) error {
	ttl := token.ExpiresAt.Sub(s.clock.Now()).Truncate(time.Second)
	if ttl < time.Second {
		return nil
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("redis: encode token: %w", err)
	}

	if err := s.client.Set(ctx, s.key(), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis: set token: %w", err)
	}

	return nil
}
