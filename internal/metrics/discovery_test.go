package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder_SearchCompleted(t *testing.T) {
	var rec Recorder

	before := testutil.ToFloat64(SearchesTotal.WithLabelValues("text", "ok"))
	rec.SearchCompleted("text", "ok", 3)
	rec.SearchCompleted("proximity", "landmark_not_found", 0)

	if got := testutil.ToFloat64(SearchesTotal.WithLabelValues("text", "ok")); got != before+1 {
		t.Errorf("searches_total{text,ok} = %f, want %f", got, before+1)
	}
	if got := testutil.ToFloat64(SearchesTotal.WithLabelValues("proximity", "landmark_not_found")); got < 1 {
		t.Errorf("searches_total{proximity,landmark_not_found} = %f", got)
	}
	if testutil.CollectAndCount(SearchResults) == 0 {
		t.Error("expected search_results observations")
	}
}

func TestRecorder_StoreCall(t *testing.T) {
	var rec Recorder
	rec.StoreCall("find", 5*time.Millisecond, nil)
	rec.StoreCall("find", time.Millisecond, errors.New("boom"))

	if n := testutil.CollectAndCount(StoreDuration); n < 2 {
		t.Errorf("expected ok and error series, got %d", n)
	}
}
