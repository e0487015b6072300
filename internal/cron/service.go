package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/solimanzein/storefront-bot/pkg/logger"
	"github.com/solimanzein/storefront-bot/pkg/metrics"
)

const defaultInterval = 15 * time.Minute

// ServiceParams configure the maintenance service.
type ServiceParams struct {
	Logger   *logger.Logger
	Registry *Registry
	Metrics  *metrics.JobMetrics
	Interval time.Duration
}

// Service executes registered jobs on a fixed cadence. The bot runs as
// a single process, so no cross-instance lock is needed.
type Service struct {
	logg     *logger.Logger
	registry *Registry
	metrics  *metrics.JobMetrics
	interval time.Duration
}

// NewService builds a maintenance service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	registry := params.Registry
	if registry == nil {
		registry = NewRegistry()
	}
	interval := params.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Service{
		logg:     params.Logger,
		registry: registry,
		metrics:  params.Metrics,
		interval: interval,
	}, nil
}

// Run starts the maintenance loop until the context is canceled.
func (s *Service) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logg.Info(ctx, "maintenance service context canceled")
			return ctx.Err()
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

func (s *Service) runCycle(ctx context.Context) {
	s.logg.Debug(ctx, "maintenance run starting")
	for _, job := range s.registry.Jobs() {
		s.runJob(ctx, job)
	}
	s.logg.Debug(ctx, "maintenance run complete")
}

func (s *Service) runJob(ctx context.Context, job Job) {
	jobCtx := s.logg.WithField(ctx, "job", job.Name())
	start := time.Now()
	err := job.Run(jobCtx)
	duration := time.Since(start)
	s.metrics.ObserveDuration(job.Name(), duration)
	jobCtx = s.logg.WithField(jobCtx, "duration_ms", duration.Milliseconds())
	if err != nil {
		s.logg.Error(jobCtx, "job failed", err)
		s.metrics.IncFailure(job.Name())
		return
	}
	s.logg.Debug(jobCtx, "job completed")
	s.metrics.IncSuccess(job.Name())
}
