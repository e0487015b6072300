package ops

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/solimanzein/storefront-bot/pkg/logger"
	"github.com/solimanzein/storefront-bot/pkg/metrics"
)

func newTestServer(t *testing.T, ready func() bool) *Server {
	t.Helper()
	registry := prometheus.NewRegistry()
	metrics.NewInteractionMetrics(registry).IncHandled("checkout", "ok")

	s, err := NewServer(ServerParams{
		Logger:   logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		Addr:     ":0",
		Gatherer: registry,
		Ready:    ready,
	})
	if err != nil {
		t.Fatalf("setup error: %v", err)
	}
	return s
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthLive(t *testing.T) {
	s := newTestServer(t, nil)
	if rec := get(t, s, "/health/live"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthReadyTracksGateway(t *testing.T) {
	up := true
	s := newTestServer(t, func() bool { return up })

	if rec := get(t, s, "/health/ready"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 while connected, got %d", rec.Code)
	}

	up = false
	if rec := get(t, s, "/health/ready"); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 while disconnected, got %d", rec.Code)
	}
}

func TestMetricsEndpointServesRegistry(t *testing.T) {
	s := newTestServer(t, nil)

	rec := get(t, s, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "interactions_handled_total") {
		t.Fatal("expected interaction metrics exposed")
	}
}
