// Package server owns the boot sequence and HTTP lifecycle: load config,
// connect the backing services (soft-failing the ones the app can degrade
// without), build the middleware stack and serve until a shutdown signal.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pethive/pethive/app/jobs"
	"github.com/pethive/pethive/app/routes"
	"github.com/pethive/pethive/app/services"
	"github.com/pethive/pethive/config"
	"github.com/pethive/pethive/pkg/cache"
	"github.com/pethive/pethive/pkg/database"
	pethivegrpc "github.com/pethive/pethive/pkg/grpc"
	"github.com/pethive/pethive/pkg/logger"
	"github.com/pethive/pethive/pkg/metrics"
	"github.com/pethive/pethive/pkg/middleware"
	"github.com/pethive/pethive/pkg/notification"
	"github.com/pethive/pethive/pkg/queue"
	"github.com/pethive/pethive/pkg/reqid"
	"github.com/pethive/pethive/pkg/router"
	"github.com/pethive/pethive/pkg/schedule"
	"github.com/pethive/pethive/pkg/session"
	"github.com/pethive/pethive/pkg/storage"
)

const (
	shutdownTimeout = 15 * time.Second
	queueWorkers    = 4
)

// Start boots everything and blocks until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	boot(ctx)

	handler := BuildHandler()

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var grpcStop func()
	if port := config.GRPCPort(); port != "" {
		grpcSrv, _, err := pethivegrpc.Start(port)
		if err != nil {
			logger.Warn("server: grpc disabled", "error", err)
		} else {
			grpcStop = func() { pethivegrpc.Stop(grpcSrv) }
		}
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("server: shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if grpcStop != nil {
		grpcStop()
	}
	return srv.Shutdown(shutdownCtx)
}

// boot connects the backing services. The store and Redis soft-fail: the
// app serves the demo experience without them.
func boot(ctx context.Context) {
	if err := database.Connect(); err != nil {
		logger.Warn("server: store unavailable, serving demo data", "error", err)
	}
	if err := cache.Connect(); err != nil {
		logger.Warn("server: redis unavailable, sessions fall back to cookies", "error", err)
	}
	storage.Connect()

	if uri := config.LogMongoURI(); uri != "" {
		attachMongoSink(uri)
	}
	if hook := config.Get("SLACK_WEBHOOK_URL", ""); hook != "" {
		notification.SetSlackWebhook(hook)
	}

	// Background work: confirmation jobs plus the stats cache warmer.
	jobs.Boot()
	if cache.Available() {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	if database.Available() {
		queue.UseDB(database.DB)
	}
	queue.StartWorkers(ctx, queueWorkers)

	RegisterSchedules()
	schedule.Start(ctx)
}

// RegisterSchedules declares the recurring tasks. Shared with the
// standalone scheduler command.
func RegisterSchedules() {
	stats := services.NewStatsService()
	schedule.Every(5).Minutes().Name("stats.warm").WithoutOverlapping().Run(stats.WarmCache)
}

// attachMongoSink mirrors every log record into MongoDB alongside stdout.
func attachMongoSink(uri string) {
	mh, err := logger.NewMongoHandler(uri, "pethive", "logs")
	if err != nil {
		logger.Warn("server: mongo log sink disabled", "error", err)
		return
	}
	logger.L = slog.New(logger.NewMultiHandler(logger.L.Handler(), mh))
	slog.SetDefault(logger.L)
}

// BuildHandler assembles the middleware stack and the route table.
// Exposed for the CLI (route:list) and for end-to-end tests.
func BuildHandler() http.Handler {
	r := router.New()

	// Outermost to innermost: metrics wrap everything for honest latency,
	// recovery catches panics from the rest of the stack.
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(session.Middleware(session.DefaultOptions()))
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.CORS(middleware.CredentialedCORSOptions(config.ClientURLs())))
	r.Use(middleware.RateLimit(200, time.Minute))

	r.HandleFunc("/metrics", metrics.Handler())

	routes.RegisterAPI(r)

	return r.Handler()
}
