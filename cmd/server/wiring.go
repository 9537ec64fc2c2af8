package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	activityhandler "nestegg/internal/activity/handler"
	activityservice "nestegg/internal/activity/service"
	advisorhandler "nestegg/internal/advisor/handler"
	advisorservice "nestegg/internal/advisor/service"
	alertshandler "nestegg/internal/alerts/handler"
	alertsmetrics "nestegg/internal/alerts/metrics"
	alertsservice "nestegg/internal/alerts/service"
	analyticshandler "nestegg/internal/analytics/handler"
	analyticsservice "nestegg/internal/analytics/service"
	"nestegg/internal/balance/lock"
	balancemetrics "nestegg/internal/balance/metrics"
	balanceservice "nestegg/internal/balance/service"
	balancestore "nestegg/internal/balance/store"
	catalogmodels "nestegg/internal/catalog/models"
	catalogstore "nestegg/internal/catalog/store"
	"nestegg/internal/contribution/attribution"
	"nestegg/internal/contribution/events"
	contributionhandler "nestegg/internal/contribution/handler"
	contributionmetrics "nestegg/internal/contribution/metrics"
	contributionservice "nestegg/internal/contribution/service"
	contributionstore "nestegg/internal/contribution/store"
	coveragestore "nestegg/internal/coverage/store"
	dashboardhandler "nestegg/internal/dashboard/handler"
	dashboardmetrics "nestegg/internal/dashboard/metrics"
	dashboardservice "nestegg/internal/dashboard/service"
	historyhandler "nestegg/internal/history/handler"
	historyservice "nestegg/internal/history/service"
	historystore "nestegg/internal/history/store"
	"nestegg/internal/platform/config"
	"nestegg/internal/platform/redis"
	profilestore "nestegg/internal/profile/store"
	"nestegg/internal/seed"
	httptransport "nestegg/internal/transport/http"
	id "nestegg/pkg/domain"
	"nestegg/pkg/platform/tx"
)

type catalogStore interface {
	attribution.Catalog
	contributionservice.InstitutionReader
	seed.CatalogWriter
}

type profileStore interface {
	contributionservice.ProfileReader
	seed.ProfileWriter
}

type contributionStore interface {
	contributionservice.Store
	SumByUserAndYear(ctx context.Context, userID id.UserID, year int) (decimal.Decimal, error)
	SumByUserAndInstitutionType(ctx context.Context, userID id.UserID, t catalogmodels.InstitutionType) (decimal.Decimal, error)
}

type coverageStore interface {
	alertsservice.CoverageReader
	seed.CoverageWriter
}

type stores struct {
	catalog       catalogStore
	profiles      profileStore
	contributions contributionStore
	snapshots     balanceservice.SnapshotStore
	coverage      coverageStore
	history       historyservice.Store
}

func memoryStores() stores {
	return stores{
		catalog:       catalogstore.NewInMemory(),
		profiles:      profilestore.NewInMemory(),
		contributions: contributionstore.NewInMemory(),
		snapshots:     balancestore.NewInMemory(),
		coverage:      coveragestore.NewInMemory(),
		history:       historystore.NewInMemory(),
	}
}

func postgresStores(db *sql.DB) stores {
	return stores{
		catalog:       catalogstore.NewPostgres(db),
		profiles:      profilestore.NewPostgres(db),
		contributions: contributionstore.NewPostgres(db),
		snapshots:     balancestore.NewPostgres(db),
		coverage:      coveragestore.NewPostgres(db),
		history:       historystore.NewPostgres(db),
	}
}

// infra holds the optional backends. Nil fields select in-process fallbacks.
type infra struct {
	db        *sql.DB
	redis     *redis.Client
	publisher contributionservice.Publisher
}

// recomputeLocker picks the strongest lock the deployment offers: a Redis
// lease spans replicas, a Postgres advisory lock spans replicas sharing one
// database, and the in-process lock covers single-instance runs.
func recomputeLocker(cfg config.Server, in infra, logger *slog.Logger) balanceservice.Locker {
	switch {
	case in.redis != nil:
		return lock.NewRedis(in.redis.Client, cfg.Lock.TTL, cfg.Lock.WaitTimeout, lock.WithLogger(logger))
	case in.db != nil:
		return lock.NewPostgres(tx.NewRunner(in.db, cfg.Database.TxTimeout))
	default:
		return lock.NewMemory()
	}
}

// buildRouter wires every bounded context over st and returns the router config.
func buildRouter(ctx context.Context, cfg config.Server, logger *slog.Logger, reg *prometheus.Registry, st stores, in infra) (httptransport.Config, error) {
	if cfg.SeedDemoData {
		if err := seed.Demo(ctx, st.catalog, st.profiles, st.coverage, time.Now()); err != nil {
			return httptransport.Config{}, fmt.Errorf("seed demo data: %w", err)
		}
		logger.InfoContext(ctx, "demo data seeded", "user_id", seed.DemoUserID)
	}

	publisher := in.publisher
	if publisher == nil {
		publisher = events.NopPublisher{}
	}

	contribMetrics := contributionmetrics.New(reg)
	engine := balanceservice.New(st.contributions, st.snapshots, recomputeLocker(cfg, in, logger),
		balanceservice.WithLogger(logger),
		balanceservice.WithMetrics(balancemetrics.New(reg)),
	)
	resolver := attribution.New(st.catalog,
		attribution.WithLogger(logger),
		attribution.WithMetrics(contribMetrics),
	)
	contributions := contributionservice.New(st.contributions, st.profiles, st.catalog, resolver, engine,
		contributionservice.WithLogger(logger),
		contributionservice.WithMetrics(contribMetrics),
		contributionservice.WithPublisher(publisher),
	)
	analytics := analyticsservice.New(st.profiles, st.contributions, st.snapshots,
		analyticsservice.WithLogger(logger),
	)
	alerts := alertsservice.New(st.coverage, st.contributions,
		alertsservice.WithLogger(logger),
		alertsservice.WithMetrics(alertsmetrics.New(reg)),
	)
	history := historyservice.New(st.history, historyservice.WithLogger(logger))
	activity := activityservice.New(st.history, st.contributions, activityservice.WithLogger(logger))
	dashboard := dashboardservice.New(st.profiles, engine, st.coverage, alerts, activity, analytics,
		dashboardservice.WithLogger(logger),
		dashboardservice.WithMetrics(dashboardmetrics.New(reg)),
	)
	advisor := advisorservice.New(st.profiles, st.snapshots, st.contributions, st.coverage,
		advisorservice.WithLogger(logger),
	)

	checks := map[string]httptransport.HealthCheck{}
	if in.db != nil {
		checks["postgres"] = in.db.PingContext
	}
	if in.redis != nil {
		checks["redis"] = in.redis.Health
	}
	if p, ok := publisher.(interface{ Ping(context.Context) error }); ok {
		checks["kafka"] = p.Ping
	}

	return httptransport.Config{
		Logger:         logger,
		Registry:       reg,
		RequestTimeout: cfg.RequestTimeout,
		Checks:         checks,
		Handlers: []httptransport.Registrar{
			contributionhandler.New(contributions, logger),
			analyticshandler.New(analytics, logger),
			alertshandler.New(alerts, logger),
			activityhandler.New(activity, logger),
			dashboardhandler.New(dashboard, logger),
			advisorhandler.New(advisor, logger),
			historyhandler.New(history, logger),
		},
	}, nil
}
