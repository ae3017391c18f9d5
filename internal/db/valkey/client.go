// Package valkey adapts the rueidis store to Valkey with valkey-search, which
// only serves FT.SEARCH for vector queries. Plain listing falls back to SCAN.
package valkey

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/stayfinder/internal/db"
	dbredis "github.com/kailas-cloud/stayfinder/internal/db/redis"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Config holds connection parameters for a Valkey store.
type Config struct {
	Addrs    []string
	Password string
}

// Store reuses the Redis implementation and overrides search.
type Store struct {
	*dbredis.Store
}

// NewStore creates a Valkey store via rueidis.
func NewStore(cfg Config) (*Store, error) {
	rs, err := dbredis.NewStore(dbredis.Config{Addrs: cfg.Addrs, Password: cfg.Password})
	if err != nil {
		return nil, fmt.Errorf("valkey: %w", err)
	}
	return &Store{Store: rs}, nil
}

// SupportsQuery returns false: valkey-search rejects FT.SEARCH without KNN.
func (s *Store) SupportsQuery(_ context.Context) bool {
	return false
}
