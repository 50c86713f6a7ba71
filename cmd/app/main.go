package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kalrend/warchest/internal/allocation"
	"github.com/kalrend/warchest/internal/character"
	"github.com/kalrend/warchest/internal/concurrency"
	"github.com/kalrend/warchest/internal/config"
	"github.com/kalrend/warchest/internal/database"
	"github.com/kalrend/warchest/internal/database/postgres"
	"github.com/kalrend/warchest/internal/ledger"
	"github.com/kalrend/warchest/internal/logger"
	"github.com/kalrend/warchest/internal/loot"
	"github.com/kalrend/warchest/internal/merge"
	"github.com/kalrend/warchest/internal/scheduler"
	"github.com/kalrend/warchest/internal/server"
	"github.com/kalrend/warchest/internal/warehouse"
	"github.com/kalrend/warchest/internal/worker"
)

const (
	dbMaxConns    = 10
	dbMaxIdleTime = 5 * time.Minute
	dbMaxLifetime = 30 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	if err := database.Migrate(ctx, cfg.GetDBConnString()); err != nil {
		slog.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	pool, err := database.NewPool(cfg.GetDBConnString(), dbMaxConns, dbMaxIdleTime, dbMaxLifetime)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	locks := concurrency.NewLockManager()

	warehouseRepo := postgres.NewWarehouseRepository(pool)
	mergeRepo := postgres.NewMergeRepository(pool)
	lootRepo := postgres.NewLootRepository(pool)
	characterRepo := postgres.NewCharacterRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)

	characterService, err := character.NewService(characterRepo)
	if err != nil {
		slog.Error("Failed to create character service", "error", err)
		os.Exit(1)
	}

	mergeService := merge.NewService(mergeRepo, locks)

	svcs := server.Services{
		Warehouse:  warehouse.NewService(warehouseRepo),
		Allocation: allocation.NewService(warehouseRepo, characterRepo, locks),
		Merge:      mergeService,
		Loot:       loot.NewService(lootRepo, locks),
		Character:  characterService,
		Ledger:     ledger.NewService(ledgerRepo),
	}

	if cfg.MergeCurrencyOnStart {
		if _, err := mergeService.MergeCurrency(ctx); err != nil {
			// The sweep is opportunistic; a failure should not stop startup.
			slog.Warn("Startup currency sweep failed", "error", err)
		}
	}

	if cfg.SweepInterval > 0 {
		jobs := worker.NewPool(1, 4)
		jobs.Start()
		defer jobs.Stop()

		sched := scheduler.New(jobs)
		sched.Schedule(cfg.SweepInterval, merge.NewSweepJob(mergeService))
		defer sched.Stop()
	}

	srv := server.NewServer(cfg.Port, pool, svcs)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server stopped unexpectedly", "error", err)
		os.Exit(1)
	case sig := <-quit:
		slog.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
