package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/solimanzein/storefront-bot/internal/cart"
	"github.com/solimanzein/storefront-bot/internal/catalog"
	"github.com/solimanzein/storefront-bot/internal/checkout"
	"github.com/solimanzein/storefront-bot/internal/cron"
	"github.com/solimanzein/storefront-bot/internal/discord"
	"github.com/solimanzein/storefront-bot/internal/ops"
	"github.com/solimanzein/storefront-bot/internal/payments"
	"github.com/solimanzein/storefront-bot/internal/render"
	"github.com/solimanzein/storefront-bot/internal/router"
	"github.com/solimanzein/storefront-bot/pkg/config"
	"github.com/solimanzein/storefront-bot/pkg/instance"
	"github.com/solimanzein/storefront-bot/pkg/logger"
	"github.com/solimanzein/storefront-bot/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "bot"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "bot",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logg.Error(ctx, "failed to load catalog", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	interactionMetrics := metrics.NewInteractionMetrics(registry)
	jobMetrics := metrics.NewJobMetrics(registry)

	store := cart.NewStore(cfg.Cart.MaxQuantity)
	sessions := checkout.NewSessions()

	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		logg.Error(ctx, "failed to create discord session", err)
		os.Exit(1)
	}

	sink, err := discord.NewSink(session)
	if err != nil {
		logg.Error(ctx, "failed to create display sink", err)
		os.Exit(1)
	}

	renderer, err := render.NewController(render.ControllerParams{
		Logger:           logg,
		Store:            store,
		Sink:             sink,
		AutoCloseOnEmpty: cfg.Cart.AutoCloseOnEmpty,
		PageSize:         cfg.Cart.PageSize,
		MaxSelect:        cfg.Cart.MaxSelect,
	})
	if err != nil {
		logg.Error(ctx, "failed to create render controller", err)
		os.Exit(1)
	}

	formatter, err := payments.NewFormatter(cfg.Payments)
	if err != nil {
		logg.Error(ctx, "failed to create payment formatter", err)
		os.Exit(1)
	}

	interactionRouter, err := router.NewRouter(router.Params{
		Logger:   logg,
		Store:    store,
		Sessions: sessions,
		Catalog:  cat,
		Renderer: renderer,
		Payments: formatter,
		Metrics:  interactionMetrics,
	})
	if err != nil {
		logg.Error(ctx, "failed to create interaction router", err)
		os.Exit(1)
	}

	adapter, err := discord.NewAdapter(discord.AdapterParams{
		Logger:       logg,
		Session:      session,
		Router:       interactionRouter,
		TriggerRoles: cfg.Discord.TriggerRoles,
	})
	if err != nil {
		logg.Error(ctx, "failed to create gateway adapter", err)
		os.Exit(1)
	}

	evictionJob, err := cron.NewEvictionJob(cron.EvictionJobParams{
		Logger:   logg,
		Store:    store,
		Sessions: sessions,
		Deleter:  renderer,
		IdleTTL:  cfg.Cart.IdleTTL,
	})
	if err != nil {
		logg.Error(ctx, "failed to create eviction job", err)
		os.Exit(1)
	}

	maintenance, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(evictionJob),
		Metrics:  jobMetrics,
		Interval: cfg.Cart.SweepInterval,
	})
	if err != nil {
		logg.Error(ctx, "failed to create maintenance service", err)
		os.Exit(1)
	}

	if err := adapter.Start(); err != nil {
		logg.Error(ctx, "failed to open gateway connection", err)
		os.Exit(1)
	}
	defer func() {
		if err := adapter.Stop(); err != nil {
			logg.Error(context.Background(), "error closing gateway connection", err)
		}
	}()

	go func() {
		if err := maintenance.Run(ctx); err != nil && ctx.Err() == nil {
			logg.Error(ctx, "maintenance service stopped unexpectedly", err)
		}
	}()

	if cfg.Ops.Enabled {
		opsServer, err := ops.NewServer(ops.ServerParams{
			Logger:   logg,
			Addr:     cfg.Ops.Addr,
			Gatherer: registry,
			Ready:    func() bool { return session.DataReady },
		})
		if err != nil {
			logg.Error(ctx, "failed to create ops server", err)
			os.Exit(1)
		}
		go func() {
			if err := opsServer.Run(ctx); err != nil {
				logg.Error(ctx, "ops server stopped unexpectedly", err)
			}
		}()
	}

	runCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"instance": instance.GetID(),
	})
	logg.Info(runCtx, "storefront bot running")

	<-ctx.Done()
	logg.Info(context.Background(), "shutdown signal received")
}
