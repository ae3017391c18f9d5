// Package ingest imports listings in batches with per-item error reporting.
package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kailas-cloud/stayfinder/internal/domain"
	dombatch "github.com/kailas-cloud/stayfinder/internal/domain/batch"
	"github.com/kailas-cloud/stayfinder/internal/domain/geo"
	"github.com/kailas-cloud/stayfinder/internal/domain/listing"
)

// MaxBatchSize is the default number of listings written per round trip.
const MaxBatchSize = 100

// Service validates records and writes them through the listing repository.
type Service struct {
	store        BulkUpserter
	reset        Resetter
	newID        func() string
	maxBatchSize int
}

// New creates an import service.
func New(store BulkUpserter) *Service {
	return &Service{store: store, newID: uuid.NewString, maxBatchSize: MaxBatchSize}
}

// WithMaxBatchSize configures how many listings are written per round trip.
func (s *Service) WithMaxBatchSize(size int) *Service {
	if size > 0 {
		s.maxBatchSize = size
	}
	return s
}

// WithResetter enables Reset.
func (s *Service) WithResetter(r Resetter) *Service {
	s.reset = r
	return s
}

// WithIDGenerator replaces the uuid generator used for records without an ID.
func (s *Service) WithIDGenerator(fn func() string) *Service {
	if fn != nil {
		s.newID = fn
	}
	return s
}

// Reset removes all stored listings before an import.
func (s *Service) Reset(ctx context.Context) error {
	if s.reset == nil {
		return fmt.Errorf("reset is not supported by this store")
	}
	if err := s.reset.Reset(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	return nil
}

// Import validates every record and upserts the valid ones in batches.
// Results are positional: results[i] describes records[i].
func (s *Service) Import(ctx context.Context, records []Record) []dombatch.Result {
	results := make([]dombatch.Result, len(records))

	valid := make([]listing.Listing, 0, len(records))
	validIdx := make([]int, 0, len(records))
	for i := range records {
		l, err := s.toListing(&records[i])
		if err != nil {
			results[i] = dombatch.NewError(i, records[i].id(), err)
			continue
		}
		valid = append(valid, l)
		validIdx = append(validIdx, i)
	}

	for start := 0; start < len(valid); start += s.maxBatchSize {
		end := min(start+s.maxBatchSize, len(valid))
		chunk := valid[start:end]

		err := s.store.BatchUpsert(ctx, chunk)
		for j := start; j < end; j++ {
			i := validIdx[j]
			if err != nil {
				results[i] = dombatch.NewError(i, valid[j].ID(), fmt.Errorf("batch upsert: %w", err))
				continue
			}
			results[i] = dombatch.NewOK(i, valid[j].ID())
		}
	}

	return results
}

func (s *Service) toListing(r *Record) (listing.Listing, error) {
	id := strings.TrimSpace(r.id())
	if id == "" {
		id = s.newID()
	}

	attrs := listing.Attributes{
		Name:        strings.TrimSpace(r.Name),
		City:        r.City,
		Location:    r.Location,
		Description: r.description(),
		Address:     r.Address,
		Category:    r.category(),
		Price:       r.Price,
		Amenities:   r.Amenities,
	}

	lat, lon := r.coordinates()
	switch {
	case lat != nil && lon != nil:
		attrs.Coordinates = &geo.Point{Lat: *lat, Lon: *lon}
	case lat != nil || lon != nil:
		return listing.Listing{}, domain.InvalidInput("latitude and longitude must be given together")
	}

	l, err := listing.New(id, attrs)
	if err != nil {
		return listing.Listing{}, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return l, nil
}
