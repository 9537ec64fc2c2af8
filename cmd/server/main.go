package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nestegg/internal/contribution/events"
	"nestegg/internal/platform/config"
	"nestegg/internal/platform/httpserver"
	"nestegg/internal/platform/logger"
	platformmetrics "nestegg/internal/platform/metrics"
	platformotel "nestegg/internal/platform/otel"
	"nestegg/internal/platform/postgres"
	"nestegg/internal/platform/redis"
	httptransport "nestegg/internal/transport/http"
	"nestegg/pkg/platform/circuit"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	shutdownTracing, err := platformotel.Setup(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn("tracer shutdown failed", "error", err)
		}
	}()

	st := memoryStores()
	var in infra

	if cfg.Database.URL != "" {
		db, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := postgres.ApplyMigrations(ctx, db); err != nil {
			return err
		}
		st = postgresStores(db)
		in.db = db
		log.Info("using postgres stores")
	} else {
		log.Info("DATABASE_URL not set, using in-memory stores")
	}

	rc, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if rc != nil {
		defer rc.Close()
		in.redis = rc
	}

	if len(cfg.Kafka.Brokers) > 0 {
		kp, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return err
		}
		defer kp.Close()
		if err := kp.EnsureTopic(ctx, cfg.Kafka.Partitions, cfg.Kafka.Replication); err != nil {
			log.Warn("contribution topic not ensured, relying on auto-creation", "topic", cfg.Kafka.Topic, "error", err)
		}
		in.publisher = events.NewGuardedPublisher(kp, circuit.New("kafka",
			circuit.WithFailureThreshold(cfg.Kafka.BreakerFailures),
			circuit.WithCooldown(cfg.Kafka.BreakerCooldown),
		), log)
	}

	reg := platformmetrics.NewRegistry()
	routerCfg, err := buildRouter(ctx, cfg, log, reg, st, in)
	if err != nil {
		return err
	}
	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(routerCfg))

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting nestegg", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
