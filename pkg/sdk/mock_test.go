package stayfinder

import (
	"context"

	domlandmark "github.com/kailas-cloud/stayfinder/internal/domain/landmark"
	domlisting "github.com/kailas-cloud/stayfinder/internal/domain/listing"
	"github.com/kailas-cloud/stayfinder/internal/domain/search/request"
	discoveryuc "github.com/kailas-cloud/stayfinder/internal/usecase/discovery"
	healthuc "github.com/kailas-cloud/stayfinder/internal/usecase/health"
)

// --- discoveryUseCase mock ---

type mockDiscoveryUC struct {
	searchFn    func(ctx context.Context, req *request.Text) (discoveryuc.TextResult, error)
	nearbyFn    func(ctx context.Context, req *request.Proximity) (discoveryuc.ProximityResult, error)
	landmarksFn func() []domlandmark.Landmark
	listingFn   func(ctx context.Context, id string) (domlisting.Listing, error)
}

func (m *mockDiscoveryUC) Search(ctx context.Context, req *request.Text) (discoveryuc.TextResult, error) {
	return m.searchFn(ctx, req)
}

func (m *mockDiscoveryUC) Nearby(ctx context.Context, req *request.Proximity) (discoveryuc.ProximityResult, error) {
	return m.nearbyFn(ctx, req)
}

func (m *mockDiscoveryUC) Landmarks() []domlandmark.Landmark {
	return m.landmarksFn()
}

func (m *mockDiscoveryUC) Listing(ctx context.Context, id string) (domlisting.Listing, error) {
	return m.listingFn(ctx, id)
}

func (m *mockDiscoveryUC) DefaultRadiusKm() float64 { return 30 }

// --- listingWriter mock ---

type mockWriter struct {
	upsertFn func(ctx context.Context, l *domlisting.Listing) (bool, error)
}

func (m *mockWriter) Upsert(ctx context.Context, l *domlisting.Listing) (bool, error) {
	return m.upsertFn(ctx, l)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }
