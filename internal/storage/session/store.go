package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
)

const (
	loginStatePrefix = "login_state:"
	revokedPrefix    = "revoked:"
)

type client interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	GetDel(ctx context.Context, key string) *redis.StringCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

var newClient = func(opts *redis.Options) client {
	return redis.NewClient(opts)
}

// Store keeps OAuth login state and revoked token ids in Redis.
type Store struct {
	rdb    client
	logger *slog.Logger
}

// Options configures the Redis connection.
type Options struct {
	Address  string
	Password string
	DB       int
}

// New connects to Redis and verifies the connection.
func New(ctx context.Context, opts Options, logger *slog.Logger) (*Store, error) {
	rdb := newClient(&redis.Options{Addr: opts.Address, Password: opts.Password, DB: opts.DB})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return &Store{rdb: rdb, logger: logger}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.rdb.Close()
}

// SaveLoginState remembers state and the referral code it was issued with.
func (s *Store) SaveLoginState(ctx context.Context, state, referralCode string, ttl time.Duration) error {
	return s.rdb.Set(ctx, loginStatePrefix+state, referralCode, ttl).Err()
}

// ConsumeLoginState returns the referral code of state and forgets it.
func (s *Store) ConsumeLoginState(ctx context.Context, state string) (string, error) {
	code, err := s.rdb.GetDel(ctx, loginStatePrefix+state).Result()
	if errors.Is(err, redis.Nil) {
		return "", domainErrors.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return code, nil
}

// RevokeToken marks tokenID as revoked until ttl elapses.
func (s *Store) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, revokedPrefix+tokenID, 1, ttl).Err(); err != nil {
		return err
	}
	s.logger.Debug("token revoked", slog.String("token_id", tokenID), slog.Duration("ttl", ttl))
	return nil
}

// IsTokenRevoked reports whether tokenID was revoked.
func (s *Store) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revokedPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// HealthCheck pings Redis.
func (s *Store) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.rdb.Ping(ctx).Err()
}
