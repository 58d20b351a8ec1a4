package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"expenses/internal/backend"
	"expenses/internal/cache"
	"expenses/internal/cli"
	"expenses/internal/config"
	apphttp "expenses/internal/http"
	applog "expenses/internal/log"
	"expenses/internal/services"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cli.LoadEnvFile()

	cfg, logger, err := cli.LoadConfig()
	if err != nil {
		logger.Error("Configuration validation failed",
			applog.FieldError, err.Error(),
			applog.FieldErrorType, applog.ErrorTypeConfiguration)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("Server error", applog.FieldError, err.Error())
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

func run(cfg *config.Config, logger *applog.Logger) error {
	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return err
	}
	result, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := result.Cleanup(); err != nil {
			logger.Warn("Backend cleanup failed", applog.FieldError, err.Error())
		}
	}()

	svc := services.NewExpenseService(result.Store, services.ExpenseServiceConfig{
		CacheSize: cfg.CacheSize,
		CacheTTL:  cfg.CacheTTL,
	}, logger)

	cacheManager := cache.NewManager(logger)
	for _, c := range svc.Caches() {
		cacheManager.Register(c)
	}

	sinks := []services.SummarySink{services.NewLogSink(logger)}
	if result.Publisher != nil {
		sinks = append(sinks, services.NewPublishSink(result.Publisher))
	}
	summarizer := services.NewSummarizer(svc, services.SummarizerConfig{
		Interval: cfg.SummaryInterval,
		Windows:  []int{7, 30},
	}, logger, sinks...)

	var ready func(context.Context) error
	if p, ok := result.Store.(backend.Pinger); ok {
		ready = p.Ping
	}
	srv := apphttp.NewServer(cfg.Addr(), svc, apphttp.Options{
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Logger:             logger,
		Ready:              ready,
	})
	srv.MaxHeaderBytes = 1 << 16

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting expense server",
			"port", cfg.Port,
			applog.FieldBackend, cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		return summarizer.Run(gctx)
	})

	g.Go(func() error {
		return cacheManager.Run(gctx, cfg.CacheTTL)
	})

	return g.Wait()
}
