package ingest

import (
	"context"

	"github.com/kailas-cloud/stayfinder/internal/domain/listing"
)

// BulkUpserter writes listings in one round trip.
type BulkUpserter interface {
	BatchUpsert(ctx context.Context, ls []listing.Listing) error
}

// Resetter removes every stored listing.
type Resetter interface {
	Reset(ctx context.Context) error
}
