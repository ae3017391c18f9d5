package discovery

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/stayfinder/internal/domain"
	"github.com/kailas-cloud/stayfinder/internal/domain/geo"
	"github.com/kailas-cloud/stayfinder/internal/domain/landmark"
	"github.com/kailas-cloud/stayfinder/internal/domain/listing"
	"github.com/kailas-cloud/stayfinder/internal/domain/search/category"
	"github.com/kailas-cloud/stayfinder/internal/domain/search/mode"
	"github.com/kailas-cloud/stayfinder/internal/domain/search/predicate"
	"github.com/kailas-cloud/stayfinder/internal/domain/search/request"
	"github.com/kailas-cloud/stayfinder/internal/domain/search/result"
	"github.com/kailas-cloud/stayfinder/internal/domain/search/textmatch"
	"github.com/kailas-cloud/stayfinder/internal/logger"
)

// Search outcomes reported to the Recorder.
const (
	OutcomeOK               = "ok"
	OutcomeInvalidInput     = "invalid_input"
	OutcomeLandmarkNotFound = "landmark_not_found"
	OutcomeStoreUnavailable = "store_unavailable"
	OutcomeError            = "error"
)

// TextResult is the outcome of a text search.
type TextResult struct {
	Matches  []result.Match
	Query    string
	Category category.Category
}

// ProximityResult is the outcome of a landmark search, nearest first.
type ProximityResult struct {
	Matches  []result.Match
	Landmark landmark.Landmark
	RadiusKm float64
}

// Service answers text and proximity discovery queries. Stateless per call.
type Service struct {
	store     ListingStore
	landmarks LandmarkIndex
	cfg       domain.SearchConfig
	rec       Recorder
}

// New creates a discovery service. Zero config values fall back to domain defaults.
func New(store ListingStore, landmarks LandmarkIndex, cfg domain.SearchConfig) *Service {
	def := domain.DefaultSearchConfig()
	if cfg.DefaultRadiusKm <= 0 {
		cfg.DefaultRadiusKm = def.DefaultRadiusKm
	}
	if cfg.StoreTimeoutMs <= 0 {
		cfg.StoreTimeoutMs = def.StoreTimeoutMs
	}
	if landmarks == nil {
		landmarks = landmark.NewIndex(nil)
	}
	return &Service{store: store, landmarks: landmarks, cfg: cfg}
}

// WithRecorder sets the telemetry sink.
func (s *Service) WithRecorder(r Recorder) *Service {
	s.rec = r
	return s
}

// DefaultRadiusKm returns the radius used when a proximity request omits one.
func (s *Service) DefaultRadiusKm() float64 { return s.cfg.DefaultRadiusKm }

// Search runs a text search: text predicate AND category predicate, in store order.
func (s *Service) Search(ctx context.Context, req *request.Text) (res TextResult, err error) {
	defer func() { s.complete(ctx, mode.Text, len(res.Matches), err) }()

	p := predicate.And(textmatch.Build(req.Query()), req.Category().Predicate())
	logger.FromContext(ctx).Debug("text search",
		zap.String("predicate", p.String()),
	)

	ls, err := s.find(ctx, p)
	if err != nil {
		return TextResult{}, err
	}

	matches := make([]result.Match, len(ls))
	for i := range ls {
		matches[i] = result.New(ls[i])
	}
	return TextResult{Matches: matches, Query: req.Query(), Category: req.Category()}, nil
}

// Nearby runs a proximity search around the named landmark. Listings without
// coordinates are skipped; the radius is inclusive; ties keep store order.
func (s *Service) Nearby(ctx context.Context, req *request.Proximity) (res ProximityResult, err error) {
	defer func() { s.complete(ctx, mode.Proximity, len(res.Matches), err) }()

	lm, ok := s.landmarks.FindByName(req.Landmark())
	if !ok {
		return ProximityResult{}, domain.NewLandmarkNotFound(req.Landmark())
	}

	ls, err := s.findWithCoordinates(ctx)
	if err != nil {
		return ProximityResult{}, err
	}

	inCategory, err := predicate.Compile(req.Category().Predicate())
	if err != nil {
		return ProximityResult{}, fmt.Errorf("compile category: %w", err)
	}

	origin := lm.Point()
	radius := req.RadiusKm()
	matches := make([]result.Match, 0, len(ls))
	for i := range ls {
		pt, ok := ls[i].Coordinates()
		if !ok {
			continue
		}
		d := geo.Distance(origin, pt)
		if d > radius {
			continue
		}
		if !inCategory(&ls[i]) {
			continue
		}
		matches = append(matches, result.NewWithDistance(ls[i], d))
	}

	sort.SliceStable(matches, func(i, j int) bool {
		di, _ := matches[i].DistanceKm()
		dj, _ := matches[j].DistanceKm()
		return di < dj
	})

	return ProximityResult{Matches: matches, Landmark: lm, RadiusKm: radius}, nil
}

// Landmarks returns every known landmark in dataset order.
func (s *Service) Landmarks() []landmark.Landmark {
	return s.landmarks.All()
}

// Listing returns one listing by id.
func (s *Service) Listing(ctx context.Context, id string) (listing.Listing, error) {
	if id == "" {
		return listing.Listing{}, domain.InvalidInput("listing id is required")
	}
	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	start := time.Now()
	l, err := s.store.Get(ctx, id)
	s.storeCall("get", start, err)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return listing.Listing{}, fmt.Errorf("listing %q: %w", id, domain.ErrNotFound)
		}
		return listing.Listing{}, unavailable("get listing", err)
	}
	return l, nil
}

func (s *Service) find(ctx context.Context, p predicate.Predicate) ([]listing.Listing, error) {
	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	start := time.Now()
	ls, err := s.store.Find(ctx, p)
	s.storeCall("find", start, err)
	if err != nil {
		return nil, unavailable("find listings", err)
	}
	return ls, nil
}

func (s *Service) findWithCoordinates(ctx context.Context) ([]listing.Listing, error) {
	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	start := time.Now()
	ls, err := s.store.FindWithCoordinates(ctx)
	s.storeCall("find_with_coordinates", start, err)
	if err != nil {
		return nil, unavailable("find listings with coordinates", err)
	}
	return ls, nil
}

func (s *Service) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(s.cfg.StoreTimeoutMs)*time.Millisecond)
}

func (s *Service) storeCall(op string, start time.Time, err error) {
	if s.rec != nil {
		s.rec.StoreCall(op, time.Since(start), err)
	}
}

func (s *Service) complete(ctx context.Context, m mode.Mode, n int, err error) {
	outcome := Outcome(err)
	if s.rec != nil {
		s.rec.SearchCompleted(string(m), outcome, n)
	}
	if outcome == OutcomeStoreUnavailable || outcome == OutcomeError {
		logger.FromContext(ctx).Warn("search failed",
			zap.String("mode", string(m)),
			zap.Error(err),
		)
	}
}

// unavailable marks a store failure as retryable. Deadline expiry is included.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}

// Outcome classifies err into a metrics label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrInvalidInput):
		return OutcomeInvalidInput
	case errors.Is(err, domain.ErrLandmarkNotFound):
		return OutcomeLandmarkNotFound
	case errors.Is(err, domain.ErrStoreUnavailable):
		return OutcomeStoreUnavailable
	default:
		return OutcomeError
	}
}
