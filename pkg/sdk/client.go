package stayfinder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/stayfinder/internal/domain"
	domlandmark "github.com/kailas-cloud/stayfinder/internal/domain/landmark"
	domlisting "github.com/kailas-cloud/stayfinder/internal/domain/listing"
	"github.com/kailas-cloud/stayfinder/internal/domain/search/request"
	"github.com/kailas-cloud/stayfinder/internal/repository/backend"
	landmarkrepo "github.com/kailas-cloud/stayfinder/internal/repository/landmark"
	discoveryuc "github.com/kailas-cloud/stayfinder/internal/usecase/discovery"
	healthuc "github.com/kailas-cloud/stayfinder/internal/usecase/health"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, replaced by mocks in tests.
type discoveryUseCase interface {
	Search(ctx context.Context, req *request.Text) (discoveryuc.TextResult, error)
	Nearby(ctx context.Context, req *request.Proximity) (discoveryuc.ProximityResult, error)
	Landmarks() []domlandmark.Landmark
	Listing(ctx context.Context, id string) (domlisting.Listing, error)
	DefaultRadiusKm() float64
}

type listingWriter interface {
	Upsert(ctx context.Context, l *domlisting.Listing) (bool, error)
}

// Client is the stayfinder SDK entry point.
type Client struct {
	store     *backend.Backend
	discovery discoveryUseCase
	writer    listingWriter
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client, loads the landmark dataset and connects to the store.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("stayfinder: listing store required (use WithRedis, WithValkey or WithMongo)")
	}

	landmarks, err := buildLandmarks(cfg)
	if err != nil {
		return nil, err
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := backend.Open(ctx, backend.Config{
		Driver:           cfg.driver,
		Addrs:            cfg.addrs,
		Password:         cfg.password,
		URI:              cfg.uri,
		Database:         cfg.database,
		KeyPrefix:        cfg.keyPrefix,
		ReadinessTimeout: defaultReadinessTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("stayfinder: %w", err)
	}

	return wireClient(store, landmarks, cfg, obs), nil
}

func buildLandmarks(cfg *clientConfig) (*domlandmark.Index, error) {
	var items []domlandmark.Landmark
	if cfg.landmarkFile != "" {
		loaded, err := landmarkrepo.LoadFile(cfg.landmarkFile)
		if err != nil {
			return nil, fmt.Errorf("stayfinder: %w", err)
		}
		items = loaded
	}
	for _, lm := range cfg.landmarks {
		v, err := domlandmark.New(lm.Name, lm.Latitude, lm.Longitude)
		if err != nil {
			return nil, fmt.Errorf("stayfinder: %w", err)
		}
		items = append(items, v)
	}
	return domlandmark.NewIndex(items), nil
}

func wireClient(store *backend.Backend, landmarks *domlandmark.Index, cfg *clientConfig, obs *observer) *Client {
	searchCfg := domain.SearchConfig{
		DefaultRadiusKm: cfg.defaultRadiusKm,
		StoreTimeoutMs:  int(cfg.storeTimeout / time.Millisecond),
	}
	disc := discoveryuc.New(store.Listings, landmarks, searchCfg).WithRecorder(obs)

	return &Client{
		store:     store,
		discovery: disc,
		writer:    store.Listings,
		healthSvc: healthuc.New(store, landmarks),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks listing store connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search runs a text search. An empty query matches every listing in the category.
func (c *Client) Search(ctx context.Context, query, category string) (res SearchResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	req, err := request.NewText(query, category)
	if err != nil {
		return SearchResult{}, err
	}
	out, err := c.discovery.Search(ctx, &req)
	if err != nil {
		return SearchResult{}, err
	}
	return SearchResult{
		Matches:  matchesFromDomain(out.Matches),
		Query:    out.Query,
		Category: out.Category.String(),
	}, nil
}

// Nearby runs a proximity search around the first landmark whose name
// contains q.Landmark.
func (c *Client) Nearby(ctx context.Context, q NearbyQuery) (res NearbyResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("nearby", start, err) }()

	req, err := request.NewProximity(q.Landmark, q.Category, q.RadiusKm, c.discovery.DefaultRadiusKm())
	if err != nil {
		return NearbyResult{}, err
	}
	out, err := c.discovery.Nearby(ctx, &req)
	if err != nil {
		return NearbyResult{}, err
	}
	return NearbyResult{
		Matches:  matchesFromDomain(out.Matches),
		Landmark: landmarkFromDomain(out.Landmark),
		RadiusKm: out.RadiusKm,
	}, nil
}

// Landmarks returns the landmark dataset in order.
func (c *Client) Landmarks() []Landmark {
	all := c.discovery.Landmarks()
	out := make([]Landmark, len(all))
	for i, lm := range all {
		out[i] = landmarkFromDomain(lm)
	}
	return out
}

// Listing returns one listing by ID.
func (c *Client) Listing(ctx context.Context, id string) (l Listing, err error) {
	start := time.Now()
	defer func() { c.obs.observe("listing", start, err) }()

	dl, err := c.discovery.Listing(ctx, id)
	if err != nil {
		return Listing{}, err
	}
	return listingFromDomain(&dl), nil
}

// Upsert creates or replaces a listing. Returns true if it was created.
func (c *Client) Upsert(ctx context.Context, l Listing) (created bool, err error) {
	start := time.Now()
	defer func() { c.obs.observe("upsert", start, err) }()

	if (l.Latitude == nil) != (l.Longitude == nil) {
		return false, domain.InvalidInput("latitude and longitude must be set together")
	}
	dl, err := domlisting.New(l.ID, attributesFromListing(&l))
	if err != nil {
		return false, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	created, err = c.writer.Upsert(ctx, &dl)
	if err != nil {
		return false, fmt.Errorf("upsert: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return created, nil
}
