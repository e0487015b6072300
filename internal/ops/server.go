package ops

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/solimanzein/storefront-bot/pkg/logger"
)

// ServerParams configure the operational HTTP server.
type ServerParams struct {
	Logger   *logger.Logger
	Addr     string
	Gatherer prometheus.Gatherer
	// Ready reports whether the gateway connection is up. Nil means
	// always ready.
	Ready func() bool
}

// Server exposes health probes and Prometheus metrics next to the bot.
type Server struct {
	logg   *logger.Logger
	addr   string
	server *http.Server
}

// NewServer builds the operational server.
func NewServer(params ServerParams) (*Server, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Addr == "" {
		return nil, fmt.Errorf("listen address required")
	}
	gatherer := params.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	ready := params.Ready
	if ready == nil {
		ready = func() bool { return true }
	}

	r := chi.NewRouter()
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
		r.Get("/ready", func(w http.ResponseWriter, _ *http.Request) {
			if !ready() {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("gateway disconnected"))
				return
			}
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return &Server{
		logg: params.Logger,
		addr: params.Addr,
		server: &http.Server{
			Addr:              params.Addr,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Run serves until the context is canceled, then drains.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down ops server: %w", err)
	}
	return <-errCh
}
