package cron

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/solimanzein/storefront-bot/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestServiceRunsEveryRegisteredJob(t *testing.T) {
	healthy := &namedJob{name: "healthy"}
	failing := &namedJob{name: "failing", err: errors.New("boom")}
	trailing := &namedJob{name: "trailing"}

	service, err := NewService(ServiceParams{
		Logger:   testLogger(),
		Registry: NewRegistry(healthy, failing, trailing),
		Interval: time.Minute,
	})
	if err != nil {
		t.Fatalf("setup error: %v", err)
	}

	service.runCycle(context.Background())

	// A failing job must not stop the ones after it.
	for _, job := range []*namedJob{healthy, failing, trailing} {
		if job.runs != 1 {
			t.Fatalf("job %s: expected 1 run, got %d", job.name, job.runs)
		}
	}
}

func TestServiceRequiresLogger(t *testing.T) {
	if _, err := NewService(ServiceParams{}); err == nil {
		t.Fatal("expected error without logger")
	}
}

func TestServiceRunStopsOnContextCancel(t *testing.T) {
	service, err := NewService(ServiceParams{
		Logger:   testLogger(),
		Interval: time.Hour,
	})
	if err != nil {
		t.Fatalf("setup error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- service.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("service did not stop after cancel")
	}
}
