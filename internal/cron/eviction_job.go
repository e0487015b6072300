package cron

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/solimanzein/storefront-bot/internal/cart"
	"github.com/solimanzein/storefront-bot/internal/checkout"
	"github.com/solimanzein/storefront-bot/pkg/logger"
)

// MessageDeleter removes a tracked message from the platform.
type MessageDeleter interface {
	DeleteMessage(ctx context.Context, ref cart.DisplayRef) error
}

// EvictionJobParams configure the idle-state eviction job.
type EvictionJobParams struct {
	Logger   *logger.Logger
	Store    *cart.Store
	Sessions *checkout.Sessions
	Deleter  MessageDeleter
	IdleTTL  time.Duration
}

// NewEvictionJob builds the job that drops carts and checkout sessions
// idle past the TTL and deletes their lingering messages.
func NewEvictionJob(params EvictionJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if params.Sessions == nil {
		return nil, fmt.Errorf("checkout sessions required")
	}
	if params.Deleter == nil {
		return nil, fmt.Errorf("message deleter required")
	}
	if params.IdleTTL <= 0 {
		return nil, fmt.Errorf("idle ttl must be positive")
	}
	return &evictionJob{
		logg:     params.Logger,
		store:    params.Store,
		sessions: params.Sessions,
		deleter:  params.Deleter,
		idleTTL:  params.IdleTTL,
		now:      time.Now,
	}, nil
}

type evictionJob struct {
	logg     *logger.Logger
	store    *cart.Store
	sessions *checkout.Sessions
	deleter  MessageDeleter
	idleTTL  time.Duration
	now      func() time.Time
}

func (j *evictionJob) Name() string { return "idle-eviction" }

func (j *evictionJob) Run(ctx context.Context) error {
	cutoff := j.now().Add(-j.idleTTL)
	var errs []error

	carts := j.store.Evict(cutoff)
	for _, snap := range carts {
		if snap.Display.IsZero() {
			continue
		}
		if err := j.deleter.DeleteMessage(ctx, snap.Display); err != nil {
			errs = append(errs, fmt.Errorf("delete cart display for %s: %w", snap.UserID, err))
		}
	}

	sessions := j.sessions.Evict(cutoff)
	for _, session := range sessions {
		if session.Prompt.IsZero() {
			continue
		}
		if err := j.deleter.DeleteMessage(ctx, session.Prompt); err != nil {
			errs = append(errs, fmt.Errorf("delete payment prompt for %s: %w", session.UserID, err))
		}
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"carts_evicted":    len(carts),
		"sessions_evicted": len(sessions),
	})
	j.logg.Info(logCtx, "idle eviction loop complete")
	return multierr.Combine(errs...)
}
