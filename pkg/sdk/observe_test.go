package stayfinder

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserver_NilSafe(t *testing.T) {
	var obs *observer
	obs.observe("test", time.Now(), nil)
	obs.observe("test", time.Now(), errors.New("err"))
	obs.SearchCompleted("text", "ok", 1)
	obs.StoreCall("find", time.Millisecond, nil)
}

func TestObserver_WithPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	obs.observe("search", time.Now().Add(-10*time.Millisecond), nil)
	obs.observe("search", time.Now(), errors.New("fail"))

	if got := testutil.ToFloat64(obs.metrics.operations.WithLabelValues("search", "ok")); got != 1 {
		t.Errorf("ok operations = %v, want 1", got)
	}
	if got := testutil.ToFloat64(obs.metrics.operations.WithLabelValues("search", "error")); got != 1 {
		t.Errorf("error operations = %v, want 1", got)
	}
}

func TestObserver_Recorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	obs.SearchCompleted("proximity", "landmark_not_found", 0)
	obs.StoreCall("find_with_coordinates", 5*time.Millisecond, nil)

	if got := testutil.ToFloat64(obs.metrics.searches.WithLabelValues("proximity", "landmark_not_found")); got != 1 {
		t.Errorf("searches = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(obs.metrics.storeCalls); n != 1 {
		t.Errorf("store call series = %d, want 1", n)
	}
}

func TestObserver_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("first newObserver: %v", err)
	}
	second, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("second newObserver: %v", err)
	}

	first.observe("ping", time.Now(), nil)
	second.observe("ping", time.Now(), nil)

	if got := testutil.ToFloat64(first.metrics.operations.WithLabelValues("ping", "ok")); got != 2 {
		t.Errorf("shared counter = %v, want 2", got)
	}
}

func TestObserver_WithLogger(t *testing.T) {
	obs, err := newObserver(slog.Default(), nil)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}
	obs.observe("test.op", time.Now(), nil)
	obs.observe("test.op", time.Now(), errors.New("test error"))
	obs.SearchCompleted("text", "ok", 3)
}
