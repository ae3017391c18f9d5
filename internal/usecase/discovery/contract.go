package discovery

import (
	"context"
	"time"

	"github.com/kailas-cloud/stayfinder/internal/domain/landmark"
	"github.com/kailas-cloud/stayfinder/internal/domain/listing"
	"github.com/kailas-cloud/stayfinder/internal/domain/search/predicate"
)

// ListingStore reads listings. Results come back in the store's natural order.
type ListingStore interface {
	Find(ctx context.Context, p predicate.Predicate) ([]listing.Listing, error)
	// FindWithCoordinates returns listings that carry a position.
	FindWithCoordinates(ctx context.Context) ([]listing.Listing, error)
	Get(ctx context.Context, id string) (listing.Listing, error)
}

// LandmarkIndex resolves landmark names.
type LandmarkIndex interface {
	FindByName(query string) (landmark.Landmark, bool)
	All() []landmark.Landmark
}

// Recorder receives discovery telemetry.
type Recorder interface {
	SearchCompleted(mode, outcome string, results int)
	StoreCall(op string, d time.Duration, err error)
}
