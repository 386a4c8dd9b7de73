// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

// Run starts the application and blocks until a shutdown signal is received.
func (a *App) Run(ctx context.Context) error {
	if err := a.httpServer.Start(ctx); err != nil {
		return err
	}
	if err := a.metricsServer.Start(ctx); err != nil {
		return err
	}

	logrus.Info("application started successfully")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logrus.Info("shutdown signal received")
	return a.Shutdown(context.Background())
}

// Shutdown gracefully shuts down all application components.
//
// Components are shut down in reverse dependency order:
// 1. Stop accepting new requests (HTTP + metrics servers)
// 2. Stop the game: scheduler, queued boosts, beat loop, pending notifications
// 3. Close external connections (Redis)
// 4. Flush telemetry data (OpenTelemetry)
//
// Shutdown errors are logged but don't stop the shutdown sequence.
func (a *App) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down application...")

	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			logrus.Errorf("HTTP server shutdown error: %v", err)
		}
	}
	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			logrus.Errorf("metrics server shutdown error: %v", err)
		}
	}

	a.cleanup()

	if a.shutdownTelemetry != nil {
		if err := a.shutdownTelemetry(ctx); err != nil {
			logrus.Errorf("telemetry shutdown error: %v", err)
		}
	}

	logrus.Info("application shutdown complete")
	return nil
}

// cleanup stops whatever game components and connections were started.
// It is safe on a partially initialized App.
func (a *App) cleanup() {
	if a.scheduler != nil {
		if err := a.scheduler.Shutdown(); err != nil {
			logrus.Errorf("scheduler shutdown error: %v", err)
		}
		a.scheduler = nil
	}
	a.stopGame()
	a.closeRedis()
}

func (a *App) stopGame() {
	if a.flow != nil {
		a.flow.Close()
	}
	if a.driver != nil {
		a.driver.Close()
	}
	if a.dispatcher != nil {
		a.dispatcher.Wait()
	}
}

func (a *App) closeRedis() {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			logrus.Errorf("Redis close error: %v", err)
		}
		a.redisClient = nil
	}
}
