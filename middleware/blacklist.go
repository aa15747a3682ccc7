package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/netip"
	"strings"
	"sync"

	"github.com/forumkit/errgate/core/apperr"
	"github.com/forumkit/errgate/core/handler"
	"github.com/forumkit/errgate/core/logger"
	"github.com/forumkit/errgate/core/response"
)

// DefaultBlacklistMessage is the translation token sent to blacklisted clients.
const DefaultBlacklistMessage = "[[error:blacklisted-ip]]"

// BlacklistStore answers whether a client address is banned.
type BlacklistStore interface {
	IsBlacklisted(ctx context.Context, ip string) (bool, error)
}

// BlacklistConfig configures the blacklist middleware.
type BlacklistConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// Store is consulted for every request
	Store BlacklistStore
	// Message is sent verbatim to rejected clients (default: DefaultBlacklistMessage)
	Message string
	// Logger receives store failures (default: slog.Default())
	Logger *slog.Logger
}

// Blacklist creates a blacklist middleware backed by store.
func Blacklist[C handler.Context](store BlacklistStore) handler.Middleware[C] {
	return BlacklistWithConfig[C](BlacklistConfig{Store: store})
}

// BlacklistWithConfig creates a blacklist middleware with custom configuration.
// Store errors let the request through.
func BlacklistWithConfig[C handler.Context](cfg BlacklistConfig) handler.Middleware[C] {
	if cfg.Store == nil {
		panic("middleware: blacklist store is required")
	}
	if cfg.Message == "" {
		cfg.Message = DefaultBlacklistMessage
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			ip := clientIPOf(ctx)
			banned, err := cfg.Store.IsBlacklisted(ctx, ip)
			if err != nil {
				cfg.Logger.WarnContext(ctx, "blacklist lookup failed",
					logger.Component("blacklist"),
					logger.ClientIP(ip),
					logger.Error(err),
				)
				return next(ctx)
			}
			if banned {
				return response.Error(apperr.BlacklistedIP(cfg.Message))
			}
			return next(ctx)
		}
	}
}

// MemoryBlacklist is an in-process BlacklistStore of exact addresses and CIDR ranges.
type MemoryBlacklist struct {
	mu       sync.RWMutex
	addrs    map[netip.Addr]struct{}
	prefixes []netip.Prefix
}

// NewMemoryBlacklist creates a store seeded with entries. See Add for the format.
func NewMemoryBlacklist(entries ...string) (*MemoryBlacklist, error) {
	b := &MemoryBlacklist{addrs: make(map[netip.Addr]struct{})}
	for _, e := range entries {
		if err := b.Add(e); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Add bans an address ("203.0.113.7") or a range ("198.51.100.0/24").
func (b *MemoryBlacklist) Add(entry string) error {
	entry = strings.TrimSpace(entry)

	b.mu.Lock()
	defer b.mu.Unlock()

	if strings.Contains(entry, "/") {
		p, err := netip.ParsePrefix(entry)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidBlacklistEntry, entry)
		}
		b.prefixes = append(b.prefixes, p.Masked())
		return nil
	}

	addr, err := netip.ParseAddr(entry)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidBlacklistEntry, entry)
	}
	b.addrs[addr.Unmap()] = struct{}{}
	return nil
}

// Remove lifts a ban added with the same entry string.
func (b *MemoryBlacklist) Remove(entry string) {
	entry = strings.TrimSpace(entry)

	b.mu.Lock()
	defer b.mu.Unlock()

	if p, err := netip.ParsePrefix(entry); err == nil {
		p = p.Masked()
		for i, existing := range b.prefixes {
			if existing == p {
				b.prefixes = append(b.prefixes[:i], b.prefixes[i+1:]...)
				return
			}
		}
		return
	}
	if addr, err := netip.ParseAddr(entry); err == nil {
		delete(b.addrs, addr.Unmap())
	}
}

// IsBlacklisted implements BlacklistStore. Unparseable addresses are never banned.
func (b *MemoryBlacklist) IsBlacklisted(_ context.Context, ip string) (bool, error) {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false, nil
	}
	addr = addr.Unmap()

	b.mu.RLock()
	defer b.mu.RUnlock()

	if _, ok := b.addrs[addr]; ok {
		return true, nil
	}
	for _, p := range b.prefixes {
		if p.Contains(addr) {
			return true, nil
		}
	}
	return false, nil
}
