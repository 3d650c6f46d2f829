package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRecordsRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("GET", "/api/v1/pool/lots", 200, 15*time.Millisecond)
	m.Observe("POST", "/api/v1/pool/lots/{lotID}/offer", 409, 5*time.Millisecond)

	count := testutil.CollectAndCount(m.requests)
	if count != 2 {
		t.Fatalf("expected 2 request series, got %d", count)
	}

	got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/v1/pool/lots", "2xx"))
	if got != 1 {
		t.Fatalf("expected 1 GET request, got %v", got)
	}
}

func TestObserveOnNilMetricsIsNoop(t *testing.T) {
	var m *HTTPMetrics
	m.Observe("GET", "/", 200, time.Millisecond)

	empty := NewHTTPMetrics(nil)
	empty.Observe("GET", "/", 200, time.Millisecond)
}

func TestStatusLabelBuckets(t *testing.T) {
	cases := map[int]string{
		200: "2xx",
		301: "3xx",
		404: "4xx",
		503: "5xx",
		100: "unknown",
	}
	for status, want := range cases {
		if got := statusLabel(status); got != want {
			t.Fatalf("status %d expected %q got %q", status, want, got)
		}
	}
}
