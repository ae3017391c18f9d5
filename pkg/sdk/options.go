package stayfinder

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/stayfinder/internal/repository/backend"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver    string
	addrs     []string
	password  string
	uri       string
	database  string
	keyPrefix string

	landmarks    []Landmark
	landmarkFile string

	storeTimeout    time.Duration
	defaultRadiusKm float64

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = backend.DriverRedis
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithValkey configures the client to connect to a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = backend.DriverValkey
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithMongo configures the client to read listings from a MongoDB database.
func WithMongo(uri, database string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = backend.DriverMongo
		c.uri = uri
		c.database = database
	})
}

// WithKeyPrefix sets the Redis/Valkey key namespace. Default: "stayfinder:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithLandmarks appends landmarks to the dataset, after any loaded from file.
func WithLandmarks(ls ...Landmark) Option {
	return optionFunc(func(c *clientConfig) {
		c.landmarks = append(c.landmarks, ls...)
	})
}

// WithLandmarkFile loads landmarks from a .json, .yaml or .yml file.
func WithLandmarkFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.landmarkFile = path
	})
}

// WithStoreTimeout bounds every listing store call. Default: 2s.
func WithStoreTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.storeTimeout = d
	})
}

// WithDefaultRadius sets the radius used when a NearbyQuery leaves it unset. Default: 30 km.
func WithDefaultRadius(km float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultRadiusKm = km
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operations, searches, store calls)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
