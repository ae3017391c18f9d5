package stayfinder

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	discoveryuc "github.com/kailas-cloud/stayfinder/internal/usecase/discovery"
)

// sdkMetrics holds prometheus metrics registered for the SDK.
type sdkMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	searches   *prometheus.CounterVec
	storeCalls *prometheus.HistogramVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stayfinder",
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "Total SDK operations by type and status.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "stayfinder",
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "SDK operation duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stayfinder",
			Subsystem: "sdk",
			Name:      "searches_total",
			Help:      "Discovery searches by mode and outcome.",
		}, []string{"mode", "outcome"}),
		storeCalls: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "stayfinder",
			Subsystem: "sdk",
			Name:      "store_duration_seconds",
			Help:      "Listing store call duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op", "status"}),
	}
	if err := registerOrReuse(reg, &m.operations); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.searches); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.storeCalls); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers a collector or reuses an existing one.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("stayfinder: metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("stayfinder: register metric: %w", err)
	}
	return nil
}

// observer provides logging and metrics for SDK operations. It also receives
// discovery telemetry.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

var _ discoveryuc.Recorder = (*observer)(nil)

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	var m *sdkMetrics
	if reg != nil {
		var err error
		m, err = newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
	}
	return &observer{logger: logger, metrics: m}, nil
}

func (o *observer) observe(
	op string, start time.Time, err error,
) {
	if o == nil {
		return
	}
	dur := time.Since(start)

	if o.metrics != nil {
		o.metrics.operations.WithLabelValues(op, status(err)).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(
			dur.Seconds(),
		)
	}

	if o.logger != nil {
		if err != nil {
			o.logger.Warn("operation failed",
				"op", op,
				"duration", dur,
				"error", err,
			)
		} else {
			o.logger.Debug("operation completed",
				"op", op,
				"duration", dur,
			)
		}
	}
}

// SearchCompleted implements discovery.Recorder.
func (o *observer) SearchCompleted(mode, outcome string, results int) {
	if o == nil {
		return
	}
	if o.metrics != nil {
		o.metrics.searches.WithLabelValues(mode, outcome).Inc()
	}
	if o.logger != nil {
		o.logger.Debug("search completed",
			"mode", mode,
			"outcome", outcome,
			"results", results,
		)
	}
}

// StoreCall implements discovery.Recorder.
func (o *observer) StoreCall(op string, d time.Duration, err error) {
	if o == nil || o.metrics == nil {
		return
	}
	o.metrics.storeCalls.WithLabelValues(op, status(err)).Observe(d.Seconds())
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
