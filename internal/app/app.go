// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-co-op/gocron/v2"
	"github.com/go-redis/redis/v8"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-beat-party/internal/bootstrap"
	"github.com/AccelByte/extend-beat-party/internal/config"
	"github.com/AccelByte/extend-beat-party/internal/server"
	"github.com/AccelByte/extend-beat-party/pkg/beat"
	"github.com/AccelByte/extend-beat-party/pkg/boost"
	"github.com/AccelByte/extend-beat-party/pkg/game"
	"github.com/AccelByte/extend-beat-party/pkg/handler"
	"github.com/AccelByte/extend-beat-party/pkg/notify"
	"github.com/AccelByte/extend-beat-party/pkg/state"
)

// App holds all application dependencies and manages the application lifecycle.
type App struct {
	cfg               *config.Config
	clock             clockwork.Clock
	httpServer        *server.HTTPServer
	metricsServer     *server.MetricsServer
	redisClient       *redis.Client
	engine            *game.Engine
	dispatcher        *notify.Dispatcher
	driver            *beat.Driver
	flow              *boost.Flow
	scheduler         gocron.Scheduler
	shutdownTelemetry func(context.Context) error
}

// New creates and initializes a new application instance.
//
// Components are initialized in dependency order:
// 1. Profile store (Redis or memory)
// 2. Game engine (tuning, restore)
// 3. Beat driver, boost flow and refresh scheduler
// 4. Servers (HTTP, metrics)
// 5. Telemetry (OpenTelemetry tracing)
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logrus.Info("initializing application...")

	app := &App{cfg: cfg, clock: clockwork.NewRealClock()}

	store, err := app.initStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init profile store: %w", err)
	}

	app.engine, app.dispatcher, err = bootstrap.InitEngine(ctx, bootstrap.EngineConfig{
		TuningPath: cfg.TuningPath,
		DeviceID:   cfg.DeviceID,
		DefaultBPM: cfg.DefaultBPM,
	}, store, app.clock)
	if err != nil {
		app.closeRedis()
		return nil, err
	}

	app.driver = bootstrap.InitBeatDriver(app.engine, app.clock)

	gate := boost.NewSimulatedGate(app.clock, cfg.RewardReadyDelay())
	app.flow = bootstrap.InitBoostFlow(app.engine, gate, boost.FlowConfig{
		PollInterval: cfg.AdPollInterval(),
		MaxPolls:     uint64(cfg.AdPollMaxRetries),
		QueueTimeout: cfg.AdQueueTimeout(),
	}, app.clock)

	app.scheduler, err = bootstrap.InitRefreshScheduler(app.engine, cfg.RefreshInterval(), app.clock)
	if err != nil {
		app.cleanup()
		return nil, err
	}

	h := handler.New(app.engine, app.flow, state.NewHealthChecker(app.redisClient))
	app.httpServer = server.NewHTTPServer(cfg.HTTPPort, h)
	if err := app.httpServer.Setup(); err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to setup HTTP server: %w", err)
	}

	app.metricsServer = server.NewMetricsServer(cfg.MetricsPort, "/metrics")
	if err := app.metricsServer.Setup(); err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to setup metrics server: %w", err)
	}

	if cfg.OtelEnabled {
		shutdownTelemetry, err := server.SetupTelemetry(ctx, cfg.ServiceName, cfg.Environment, cfg.OtelEndpoint, 0)
		if err != nil {
			app.cleanup()
			return nil, fmt.Errorf("failed to setup telemetry: %w", err)
		}
		app.shutdownTelemetry = shutdownTelemetry
	}

	logrus.Info("application initialized successfully")

	return app, nil
}

// initStore connects the configured profile store.
func (a *App) initStore(ctx context.Context) (state.Store, error) {
	if a.cfg.ProfileStore == config.StoreMemory {
		logrus.Warn("profiles are kept in memory and will not survive a restart")
		return state.NewMemoryStore(), nil
	}

	if err := a.initRedis(ctx); err != nil {
		return nil, fmt.Errorf("failed to init Redis: %w", err)
	}
	return state.NewRedisStore(a.redisClient, state.RedisStoreConfig{}), nil
}

// initRedis initializes the Redis client.
func (a *App) initRedis(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:         a.cfg.RedisHost + ":" + a.cfg.RedisPort,
		Password:     a.cfg.RedisPassword,
		DB:           0, // use default DB
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = a.cfg.RedisRetryDelay()
	maxRetries := backoff.WithContext(backoff.WithMaxRetries(b, uint64(a.cfg.RedisMaxRetries)), ctx)

	err := backoff.Retry(
		func() error {
			_, err := client.Ping(ctx).Result()
			if err != nil {
				logrus.Warnf("Redis connection failed: %v, retrying...", err)
				return err
			}
			return nil
		},
		maxRetries,
	)

	if err != nil {
		_ = client.Close()
		return err
	}

	a.redisClient = client
	logrus.Info("Redis client initialized")
	return nil
}

// Engine exposes the game engine.
func (a *App) Engine() *game.Engine {
	return a.engine
}

// HTTPServer exposes the HTTP server.
func (a *App) HTTPServer() *server.HTTPServer {
	return a.httpServer
}
