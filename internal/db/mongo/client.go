// Package mongo connects to MongoDB, the listing management service's document store.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Config holds connection parameters for a MongoDB store.
type Config struct {
	URI      string
	Database string
}

// Store owns a MongoDB client bound to one database.
type Store struct {
	client *mongodrv.Client
	db     *mongodrv.Database
}

// NewStore creates a client. The driver connects lazily; use WaitForReady
// to block until the server answers.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URI == "" {
		return nil, errors.New("uri is required")
	}
	if cfg.Database == "" {
		return nil, errors.New("database is required")
	}

	client, err := mongodrv.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Store{client: client, db: client.Database(cfg.Database)}, nil
}

// NewStoreFromDatabase wraps an existing database handle.
func NewStoreFromDatabase(d *mongodrv.Database) *Store {
	return &Store{client: d.Client(), db: d}
}

// Collection returns a handle to the named collection.
func (s *Store) Collection(name string) *mongodrv.Collection {
	return s.db.Collection(name)
}

// Ping checks connectivity against the primary.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.client.Disconnect(ctx)
}

// WaitForReady polls Ping until the server responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}
