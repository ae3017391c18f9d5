// Package backend opens the configured listing store and its repository.
package backend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/stayfinder/internal/db"
	dbmongo "github.com/kailas-cloud/stayfinder/internal/db/mongo"
	dbredis "github.com/kailas-cloud/stayfinder/internal/db/redis"
	dbvalkey "github.com/kailas-cloud/stayfinder/internal/db/valkey"
	domlisting "github.com/kailas-cloud/stayfinder/internal/domain/listing"
	"github.com/kailas-cloud/stayfinder/internal/domain/search/predicate"
	listingrepo "github.com/kailas-cloud/stayfinder/internal/repository/listing"
	"github.com/kailas-cloud/stayfinder/internal/repository/listingmongo"
)

// Supported drivers.
const (
	DriverRedis  = "redis"
	DriverValkey = "valkey"
	DriverMongo  = "mongo"
)

const defaultReadinessTimeout = 10 * time.Second

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown database driver")

// Listings is the repository surface both drivers provide.
//
//nolint:interfacebloat // read side for discovery, write side for import and SDK
type Listings interface {
	EnsureIndex(ctx context.Context) error
	Find(ctx context.Context, p predicate.Predicate) ([]domlisting.Listing, error)
	FindWithCoordinates(ctx context.Context) ([]domlisting.Listing, error)
	Get(ctx context.Context, id string) (domlisting.Listing, error)
	Upsert(ctx context.Context, l *domlisting.Listing) (bool, error)
	BatchUpsert(ctx context.Context, ls []domlisting.Listing) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	Reset(ctx context.Context) error
}

// Compile-time checks: both repositories satisfy Listings.
var (
	_ Listings = (*listingrepo.Repo)(nil)
	_ Listings = (*listingmongo.Repo)(nil)
)

// Config selects and configures a driver.
type Config struct {
	Driver           string
	Addrs            []string // redis, valkey
	Password         string   // redis, valkey
	URI              string   // mongo
	Database         string   // mongo
	KeyPrefix        string   // redis, valkey
	ReadinessTimeout time.Duration
}

// Backend owns a store connection and the listing repository built on it.
type Backend struct {
	Listings Listings
	Driver   string

	pinger db.Pinger
	close  func()
}

// New assembles a Backend from parts. closeFn may be nil.
func New(driver string, listings Listings, pinger db.Pinger, closeFn func()) *Backend {
	if closeFn == nil {
		closeFn = func() {}
	}
	return &Backend{Listings: listings, Driver: driver, pinger: pinger, close: closeFn}
}

// Open connects to the configured store, waits until it answers and ensures
// the listing index exists.
func Open(ctx context.Context, cfg Config) (*Backend, error) {
	timeout := cfg.ReadinessTimeout
	if timeout <= 0 {
		timeout = defaultReadinessTimeout
	}

	b, waitForReady, err := connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := waitForReady(ctx, timeout); err != nil {
		b.Close()
		return nil, fmt.Errorf("%s not ready: %w", cfg.Driver, err)
	}
	if err := b.Listings.EnsureIndex(ctx); err != nil {
		b.Close()
		return nil, fmt.Errorf("ensure listing index: %w", err)
	}
	return b, nil
}

type readyFunc func(ctx context.Context, timeout time.Duration) error

func connect(ctx context.Context, cfg Config) (*Backend, readyFunc, error) {
	switch cfg.Driver {
	case DriverRedis, "":
		s, err := dbredis.NewStore(dbredis.Config{Addrs: cfg.Addrs, Password: cfg.Password})
		if err != nil {
			return nil, nil, fmt.Errorf("create redis store: %w", err)
		}
		repo := listingrepo.New(s).WithKeyPrefix(cfg.KeyPrefix)
		return New(DriverRedis, repo, s, s.Close), s.WaitForReady, nil
	case DriverValkey:
		s, err := dbvalkey.NewStore(dbvalkey.Config{Addrs: cfg.Addrs, Password: cfg.Password})
		if err != nil {
			return nil, nil, fmt.Errorf("create valkey store: %w", err)
		}
		repo := listingrepo.New(s).WithKeyPrefix(cfg.KeyPrefix)
		return New(DriverValkey, repo, s, s.Close), s.WaitForReady, nil
	case DriverMongo:
		s, err := dbmongo.NewStore(ctx, dbmongo.Config{URI: cfg.URI, Database: cfg.Database})
		if err != nil {
			return nil, nil, fmt.Errorf("create mongo store: %w", err)
		}
		repo := listingmongo.New(
			s.Collection(listingmongo.ListingsCollection),
			s.Collection(listingmongo.CountersCollection),
		)
		return New(DriverMongo, repo, s, s.Close), s.WaitForReady, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// Ping checks store connectivity.
func (b *Backend) Ping(ctx context.Context) error {
	if b.pinger == nil {
		return errors.New("no store connection")
	}
	return b.pinger.Ping(ctx)
}

// Close releases the store connection.
func (b *Backend) Close() {
	b.close()
}
