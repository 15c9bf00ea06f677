package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/buildsense/energy-backend/config"
	"github.com/buildsense/energy-backend/internal/analysis"
	httpapi "github.com/buildsense/energy-backend/internal/api/http"
	"github.com/buildsense/energy-backend/internal/api/http/routes"
	"github.com/buildsense/energy-backend/internal/cache"
	"github.com/buildsense/energy-backend/internal/cities"
	designhttp "github.com/buildsense/energy-backend/internal/designs/http"
	"github.com/buildsense/energy-backend/internal/designs/repository"
	"github.com/buildsense/energy-backend/internal/designs/service"
	"github.com/buildsense/energy-backend/internal/energy"
	"github.com/buildsense/energy-backend/internal/events"
	"github.com/buildsense/energy-backend/internal/history"
	"github.com/buildsense/energy-backend/internal/observability"
	"github.com/buildsense/energy-backend/internal/reports"
	"github.com/buildsense/energy-backend/internal/reports/llm"
	"github.com/buildsense/energy-backend/internal/storage/postgres"
)

// App holds the wired HTTP router and everything that must be released on shutdown.
type App struct {
	Router *gin.Engine
	Cron   *cron.Cron

	closers []func() error
}

// NewApp wires storage, cache, events, services and routes from cfg.
// Postgres is required when enabled; Redis and Kafka degrade to no-ops.
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	app := &App{}
	clock := clockwork.NewRealClock()
	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)

	var (
		designRepo service.Repository
		cityStore  cities.Store
		dbPing     httpapi.PingFunc
		redisPing  httpapi.PingFunc
	)

	if cfg.Database.Enabled {
		sqlDB, err := postgres.NewConnection(ctx, &cfg.Database)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, sqlDB.Close)

		if err := postgres.Migrate(ctx, sqlDB); err != nil {
			app.Close()
			return nil, err
		}

		pool, err := OpenDB(ctx, DBOptions{
			DSN:      postgres.DSN(&cfg.Database),
			AppName:  cfg.App.ServiceName,
			MaxConns: int32(cfg.Database.MaxConns),
		})
		if err != nil {
			app.Close()
			return nil, err
		}
		app.closers = append(app.closers, func() error { pool.Close(); return nil })

		cityRepo := cities.NewRepo(pool)
		seeded, err := cityRepo.Seed(ctx, energy.DefaultCities())
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("seed cities: %w", err)
		}
		if seeded > 0 {
			logger.Info("seeded city data", zap.Int("count", seeded))
		}

		designRepo = repository.NewDesignRepository(sqlDB)
		cityStore = cityRepo
		dbPing = pool.Ping
	} else {
		logger.Warn("database disabled, using in-memory designs and built-in cities")
		designRepo = repository.NewMemoryRepository()
		cityStore = cities.NewStatic(energy.DefaultCities())
	}

	var analysisCache cache.Cache = cache.Noop{}
	if cfg.Redis.Enabled {
		client, err := OpenRedis(ctx, cfg.Redis)
		if err != nil {
			logger.Warn("redis unavailable, analyses will be recomputed until it recovers", zap.Error(err))
		}
		app.closers = append(app.closers, client.Close)
		analysisCache = cache.NewRedisCache(client, cfg.Cache.TTL)
		redisPing = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	}

	var publisher events.Publisher = events.Noop{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, metrics)
		logger.Info("publishing design events", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}
	app.closers = append(app.closers, publisher.Close)

	store, err := reportStore(ctx, cfg.Reports)
	if err != nil {
		app.Close()
		return nil, err
	}

	designSvc := service.NewDesignService(designRepo, service.Options{
		Cache:   analysisCache,
		Events:  publisher,
		History: history.NewRegistry(clock, history.DefaultMaxStates),
		Clock:   clock,
		Metrics: metrics,
	})
	analysisSvc := analysis.NewService(designSvc, cityStore, analysisCache, clock, metrics)

	narrator := llm.NewClient(cfg.LLM)
	if !narrator.Enabled() {
		logger.Warn("OPENAI_API_KEY not set, reports will carry placeholder insights")
	}
	reportSvc := reports.NewService(analysisSvc, narrator, store, clock, metrics)

	if cfg.Reports.Retention > 0 && cfg.Reports.PruneSchedule != "" {
		pruner := reports.NewPruner(store, cfg.Reports.Retention, clock, metrics)
		c, err := reports.Schedule(pruner, cfg.Reports.PruneSchedule)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("schedule report pruning: %w", err)
		}
		app.Cron = c
	}

	app.Router = BuildRouter(RouterDeps{
		ServiceName: cfg.App.ServiceName,
		Version:     cfg.App.Version,
		CORSOrigins: cfg.Server.CORSOrigins,
		Logger:      logger,
		Metrics:     metrics,
		Gatherer:    prometheus.DefaultGatherer,
		DBPing:      dbPing,
		RedisPing:   redisPing,
		V1: routes.V1Deps{
			Designs:  designhttp.New(designSvc),
			Cities:   cityStore,
			Analysis: analysis.NewHandler(analysisSvc),
			Reports:  reports.NewHandler(reportSvc),
		},
	})

	return app, nil
}

func reportStore(ctx context.Context, cfg config.ReportsConfig) (reports.Store, error) {
	if cfg.S3Bucket == "" {
		return reports.NewFSStore(cfg.Dir)
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return reports.NewS3Store(s3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.S3Prefix), nil
}

// Server wraps the router in an http.Server listening on port.
func (a *App) Server(port string) *http.Server {
	return &http.Server{
		Addr:    ":" + port,
		Handler: a.Router,
	}
}

// Close stops the pruning schedule and releases connections in reverse order.
func (a *App) Close() error {
	if a.Cron != nil {
		<-a.Cron.Stop().Done()
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
