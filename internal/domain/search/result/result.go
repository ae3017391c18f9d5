package result

import (
	"github.com/kailas-cloud/stayfinder/internal/domain/listing"
)

// Match is a single discovery hit: a listing plus, in proximity mode, its distance.
type Match struct {
	listing     listing.Listing
	distanceKm  float64
	hasDistance bool
}

// New creates a text-mode match.
func New(l listing.Listing) Match {
	return Match{listing: l}
}

// NewWithDistance creates a proximity match. distanceKm keeps full precision.
func NewWithDistance(l listing.Listing, distanceKm float64) Match {
	return Match{listing: l, distanceKm: distanceKm, hasDistance: true}
}

// Listing returns the matched listing.
func (m *Match) Listing() listing.Listing { return m.listing }

// DistanceKm returns the distance from the landmark. ok is false in text mode.
func (m *Match) DistanceKm() (km float64, ok bool) { return m.distanceKm, m.hasDistance }
