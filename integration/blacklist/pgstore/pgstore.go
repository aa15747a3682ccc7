// Package pgstore keeps the IP blacklist in a PostgreSQL table of cidr
// ranges; a single address is stored as a /32 or /128 range.
package pgstore

import (
	"context"
	"fmt"
	"net/netip"
	"strings"

	"github.com/forumkit/errgate/integration/database/pg"
)

const (
	schemaSQL = `CREATE TABLE IF NOT EXISTS ip_blacklist (
	network    cidr PRIMARY KEY,
	created_at timestamptz NOT NULL DEFAULT now()
)`
	containsSQL = `SELECT EXISTS (SELECT 1 FROM ip_blacklist WHERE $1::inet <<= network)`
	insertSQL   = `INSERT INTO ip_blacklist (network) VALUES ($1::cidr) ON CONFLICT DO NOTHING`
	deleteSQL   = `DELETE FROM ip_blacklist WHERE network = $1::cidr`
)

// Store is a middleware.BlacklistStore backed by PostgreSQL.
type Store struct {
	db pg.DB
}

// New creates a Store. db is usually a *pgxpool.Pool; a transaction stored
// in the context with pg.WithTx takes precedence.
func New(db pg.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the blacklist table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := pg.Querier(ctx, s.db).Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("pgstore: create schema: %w", err)
	}
	return nil
}

// IsBlacklisted reports whether any stored range contains ip. Unparseable
// addresses are never banned and never sent to the database.
func (s *Store) IsBlacklisted(ctx context.Context, ip string) (bool, error) {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false, nil
	}

	var banned bool
	if err := pg.Querier(ctx, s.db).QueryRow(ctx, containsSQL, addr.Unmap().String()).Scan(&banned); err != nil {
		return false, fmt.Errorf("pgstore: check %s: %w", ip, err)
	}
	return banned, nil
}

// Add bans an address or CIDR range.
func (s *Store) Add(ctx context.Context, entry string) error {
	p, err := parseEntry(entry)
	if err != nil {
		return err
	}
	if _, err := pg.Querier(ctx, s.db).Exec(ctx, insertSQL, p.String()); err != nil {
		return fmt.Errorf("pgstore: add %s: %w", p, err)
	}
	return nil
}

// Remove lifts a ban added with the same entry.
func (s *Store) Remove(ctx context.Context, entry string) error {
	p, err := parseEntry(entry)
	if err != nil {
		return err
	}
	if _, err := pg.Querier(ctx, s.db).Exec(ctx, deleteSQL, p.String()); err != nil {
		return fmt.Errorf("pgstore: remove %s: %w", p, err)
	}
	return nil
}

func parseEntry(entry string) (netip.Prefix, error) {
	entry = strings.TrimSpace(entry)
	if strings.Contains(entry, "/") {
		p, err := netip.ParsePrefix(entry)
		if err != nil {
			return netip.Prefix{}, fmt.Errorf("%w: %q", ErrInvalidEntry, entry)
		}
		return p.Masked(), nil
	}
	addr, err := netip.ParseAddr(entry)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("%w: %q", ErrInvalidEntry, entry)
	}
	addr = addr.Unmap()
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}
