// Package server boots the application: config, database, cache, audit
// sinks, queue workers, and the HTTP server with graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/bazaar/app/jobs"
	"github.com/shashiranjanraj/bazaar/config"
	"github.com/shashiranjanraj/bazaar/internal/kernel"
	"github.com/shashiranjanraj/bazaar/pkg/audit"
	"github.com/shashiranjanraj/bazaar/pkg/cache"
	"github.com/shashiranjanraj/bazaar/pkg/database"
	"github.com/shashiranjanraj/bazaar/pkg/gateway"
	"github.com/shashiranjanraj/bazaar/pkg/logger"
	"github.com/shashiranjanraj/bazaar/pkg/queue"
)

const shutdownTimeout = 15 * time.Second

// Start boots everything and blocks until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, caching disabled", "error", err)
	} else {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}

	sink, closeSink := buildAuditSink()
	defer closeSink()

	gw := gateway.NewStripeGateway(config.StripeSecret(), config.GatewayTimeout())

	jobs.RegisterAll()
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	queue.StartWorkers(workerCtx, 4)

	handler := kernel.Build(kernel.Deps{
		DB:      database.DB,
		Gateway: gw,
		Audit:   sink,
	})

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("bazaar listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	stopWorkers()
	return srv.Shutdown(ctx)
}

// buildAuditSink always logs locally; when AUDIT_MONGO_URI is set the
// trail is additionally persisted to MongoDB.
func buildAuditSink() (audit.Sink, func()) {
	logSink := audit.NewLogSink()
	uri := config.AuditMongoURI()
	if uri == "" {
		return logSink, func() {}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	mongoSink, err := audit.NewMongoSink(ctx, uri, config.AuditMongoDB())
	if err != nil {
		logger.Warn("mongo audit sink unavailable, using log only", "error", err)
		return logSink, func() {}
	}

	closeFn := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoSink.Close(ctx); err != nil {
			logger.Warn("audit sink close failed", "error", err)
		}
	}
	return audit.NewMultiSink(logSink, mongoSink), closeFn
}
