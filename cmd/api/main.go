package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/placementtrack/api/internal/auth"
	"github.com/placementtrack/api/internal/config"
	"github.com/placementtrack/api/internal/db"
	httpx "github.com/placementtrack/api/internal/http"
	"github.com/placementtrack/api/internal/observability"
	"github.com/placementtrack/api/internal/repo/memory"
	"github.com/placementtrack/api/internal/repo/postgres"
	"github.com/placementtrack/api/internal/service"
)

func main() {
	// .env is optional; real env always wins
	_ = godotenv.Load()

	cfg := config.Load()

	// start up the observability logger
	log := observability.NewLogger(cfg.Env)

	// tracing (best effort; the service runs without a collector)
	traceShutdown, err := observability.InitTracer(context.Background(), "placementtrack-api", cfg.OTLPEndpoint)

	if err != nil {
		log.Warn("tracer init failed", "err", err)
		traceShutdown = func(context.Context) error { return nil }
	}

	promRegistry := prometheus.NewRegistry()
	prom := observability.NewProm(promRegistry)

	// Store selection: probe the database once. Any failure means the
	// process runs on the in-memory store until it exits; there is no
	// reconnect. Availability over durability in degraded environments.
	var store service.UserStore

	pool, err := db.NewPool(cfg.DBURL)

	if err != nil {
		log.Warn("database unreachable, falling back to in-memory store", "err", err)
		store = memory.NewUsersRepo()
	} else {
		ctx, cancel := config.WithTimeout(5 * time.Second)

		err = db.EnsureSchema(ctx, pool)
		cancel()

		if err != nil {
			log.Warn("schema setup failed, falling back to in-memory store", "err", err)
			pool.Close()
			pool = nil
			store = memory.NewUsersRepo()
		} else {
			log.Info("database connected")
			store = postgres.NewUsersRepo(pool, prom)
		}
	}

	// bootstrap admin for an empty store, fallback mode included
	seedCtx, seedCancel := config.WithTimeout(5 * time.Second)

	if err := db.EnsureAdminUser(seedCtx, store, cfg); err != nil {
		log.Warn("admin seed failed", "err", err)
	}
	seedCancel()

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL())
	svc := service.NewAuthService(store, jwtManager, log)

	router := httpx.NewRouter(log, cfg, svc, jwtManager, prom, promRegistry)

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)

		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}

		if err := traceShutdown(ctx); err != nil {
			log.Error("tracer shutdown failed", "err", err)
		}

		if pool != nil {
			pool.Close()
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
