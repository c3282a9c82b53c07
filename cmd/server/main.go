package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"pulse/internal/access"
	"pulse/internal/errlog"
	"pulse/internal/platform/config"
	"pulse/internal/platform/httpserver"
	"pulse/internal/platform/logger"
	"pulse/internal/platform/postgres"
	platformredis "pulse/internal/platform/redis"
	"pulse/internal/report"
	"pulse/internal/report/cache"
	reportmetrics "pulse/internal/report/metrics"
	"pulse/internal/timeseries"
	httptransport "pulse/internal/transport/http"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Clients are constructed here and injected; nothing holds a package-level
// instance.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx := context.Background()

	pool, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("postgres unavailable", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis unavailable", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	store := timeseries.New(cfg.TimeSeries)
	// Best-effort connectivity check; the server still starts if the store
	// is briefly unreachable, and /healthz reports the state.
	if err := store.Ping(ctx); err != nil {
		log.Warn("time-series store unreachable at startup", "error", err)
	}

	relational := access.NewPostgresStore(pool)
	guard, err := access.NewGuard(relational, relational, access.WithLogger(log))
	if err != nil {
		log.Error("build access guard", "error", err)
		os.Exit(1)
	}

	opts := []report.Option{
		report.WithLogger(log),
		report.WithMetrics(reportmetrics.New()),
	}
	if redisClient != nil {
		opts = append(opts, report.WithCache(
			cache.NewRedisStore(redisClient.Client, cache.WithLogger(log))))
	}

	reports, err := report.New(guard, store, errlog.NewPostgresStore(pool), relational, opts...)
	if err != nil {
		log.Error("build reporting service", "error", err)
		os.Exit(1)
	}

	handler := httptransport.NewHandler(reports, store)
	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(handler))

	log.Info("starting pulse", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
