package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geocoder89/authhub/internal/activity"
	"github.com/geocoder89/authhub/internal/auth"
	"github.com/geocoder89/authhub/internal/authn"
	"github.com/geocoder89/authhub/internal/config"
	"github.com/geocoder89/authhub/internal/db"
	httpx "github.com/geocoder89/authhub/internal/http"
	"github.com/geocoder89/authhub/internal/http/handlers"
	"github.com/geocoder89/authhub/internal/observability"
	"github.com/geocoder89/authhub/internal/queue/redisclient"
	"github.com/geocoder89/authhub/internal/repo/memory"
	"github.com/geocoder89/authhub/internal/repo/postgres"
	"github.com/geocoder89/authhub/internal/security"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load the config set up; a missing signing secret stops us here
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// start up the observability logger
	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := observability.InitTracer(ctx, cfg.ServiceName, cfg.Env, cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := config.WithTimeout(5 * time.Second)
		defer cancel()
		_ = shutdownTracer(sctx)
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewProm(reg)

	ready := map[string]handlers.Pinger{}

	// credential store
	var users authn.UserStore

	switch cfg.Store {
	case config.StoreMemory:
		log.Warn("using in-memory credential store; data is lost on restart")
		users = memory.NewUsersRepo()
	default:
		pool, err := db.NewPool(ctx, cfg.DBURL)
		if err != nil {
			return fmt.Errorf("db connect: %w", err)
		}
		defer pool.Close()

		if err := db.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("db migrate: %w", err)
		}

		repo := postgres.NewUsersRepo(pool, prom)
		users = repo
		ready["db"] = repo
	}

	// activity feed: logs + metrics, plus a redis stream when configured
	sinks := []activity.Sink{
		activity.NewLogSink(log),
		activity.SinkFunc(prom.RecordActivity),
	}

	if cfg.RedisAddr != "" {
		rc, err := redisclient.Connect(ctx, redisclient.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return err
		}
		defer rc.Close()

		sinks = append(sinks, activity.NewProtectedSink(
			activity.NewRedisSink(rc.Raw(), cfg.ActivityStream, 0),
			activity.ProtectedSinkConfig{},
		))
		ready["redis"] = rc
	}

	tokens := auth.NewManager(cfg.JWTSecret)
	svc := authn.NewService(users, security.NewHasher(), tokens, activity.Fanout(sinks...), log)
	guard := authn.NewGuard(tokens, users)

	created, err := db.EnsureSeedUser(ctx, svc, cfg.SeedEmail, cfg.SeedPassword)
	if err != nil {
		return fmt.Errorf("seed user: %w", err)
	}
	if created {
		log.Info("seed user created", "email", cfg.SeedEmail)
	}

	// set up routers with the log
	router := httpx.NewRouter(log, cfg.Env, httpx.Deps{
		Auth:         svc,
		Users:        svc,
		Guard:        guard,
		Ready:        ready,
		Prom:         prom,
		Metrics:      promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		ServiceName:  cfg.ServiceName,
		CORSOrigins:  cfg.CORSAllowedOrigins,
		MaxBodyBytes: cfg.MaxBodyBytes,
	})

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.Store)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	// Graceful shutdown
	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("server shutting down")

	sctx, cancel := config.WithTimeout(10 * time.Second)
	defer cancel()

	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("shutdown complete")
	return nil
}
