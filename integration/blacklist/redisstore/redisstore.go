// Package redisstore keeps the IP blacklist in a Redis set so every server
// instance sees bans immediately.
package redisstore

import (
	"context"
	"fmt"
	"net/netip"

	"github.com/redis/go-redis/v9"
)

// DefaultKey is the Redis set holding banned addresses.
const DefaultKey = "ip:blacklist"

// Client is the subset of redis.Cmdable the store uses.
type Client interface {
	SIsMember(ctx context.Context, key string, member any) *redis.BoolCmd
	SAdd(ctx context.Context, key string, members ...any) *redis.IntCmd
	SRem(ctx context.Context, key string, members ...any) *redis.IntCmd
}

// Store is a middleware.BlacklistStore backed by a Redis set of exact addresses.
type Store struct {
	client Client
	key    string
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// New creates a Store.
func New(client Client, opts ...Option) *Store {
	s := &Store{client: client, key: DefaultKey}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsBlacklisted reports whether ip is in the set. Unparseable addresses are
// never banned and never sent to Redis.
func (s *Store) IsBlacklisted(ctx context.Context, ip string) (bool, error) {
	addr, ok := normalize(ip)
	if !ok {
		return false, nil
	}
	banned, err := s.client.SIsMember(ctx, s.key, addr).Result()
	if err != nil {
		return false, fmt.Errorf("redisstore: check %s: %w", addr, err)
	}
	return banned, nil
}

// Add bans ip.
func (s *Store) Add(ctx context.Context, ip string) error {
	addr, ok := normalize(ip)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidIP, ip)
	}
	if err := s.client.SAdd(ctx, s.key, addr).Err(); err != nil {
		return fmt.Errorf("redisstore: add %s: %w", addr, err)
	}
	return nil
}

// Remove lifts the ban on ip.
func (s *Store) Remove(ctx context.Context, ip string) error {
	addr, ok := normalize(ip)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidIP, ip)
	}
	if err := s.client.SRem(ctx, s.key, addr).Err(); err != nil {
		return fmt.Errorf("redisstore: remove %s: %w", addr, err)
	}
	return nil
}

func normalize(ip string) (string, bool) {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return "", false
	}
	return addr.Unmap().String(), true
}
