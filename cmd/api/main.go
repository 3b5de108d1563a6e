package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baharkarakas/point-service/internal/api"
	"github.com/baharkarakas/point-service/internal/config"
	"github.com/baharkarakas/point-service/internal/db"
	"github.com/baharkarakas/point-service/internal/lock"
	"github.com/baharkarakas/point-service/internal/logger"
	"github.com/baharkarakas/point-service/internal/metrics"
	repo "github.com/baharkarakas/point-service/internal/repository"
	"github.com/baharkarakas/point-service/internal/repository/memory"
	"github.com/baharkarakas/point-service/internal/repository/postgres"
	"github.com/baharkarakas/point-service/internal/services"
	"github.com/baharkarakas/point-service/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		balances  repo.Balances
		histories repo.Histories
		auditLogs repo.AuditLogs
	)

	if cfg.DatabaseURL == "memory" {
		// dev mode without a database; nothing survives a restart
		m := memory.NewRepositories()
		balances, histories, auditLogs = m.Balances, m.Histories, m.AuditLogs
		log.Warn("running on in-memory stores")
	} else {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("db connect", "err", err)
			os.Exit(1)
		}
		defer pool.Close()

		if os.Getenv("APP_MIGRATE") == "true" {
			if err := db.RunMigrations(ctx, pool); err != nil {
				log.Error("migrations", "err", err)
				os.Exit(1)
			}
		}

		repos := postgres.NewRepositories(pool)
		balances, histories, auditLogs = repos.Balances, repos.Histories, repos.AuditLogs
	}

	metrics.Init()
	wp := worker.NewPool(cfg.Workers)
	defer wp.Stop()

	points := services.NewPointService(balances, histories, auditLogs, lock.NewRegistry(), wp, cfg.MaxPoint)
	r := api.NewRouter(cfg, points)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "max_point", cfg.MaxPoint)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
