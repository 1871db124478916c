package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"equipment-tracker/internal/ledger"
	"equipment-tracker/internal/repositories"
	"equipment-tracker/pkg/config"
	applogger "equipment-tracker/pkg/logger"
	"equipment-tracker/seeders"
)

func main() {
	storage := flag.String("storage", "", "snapshot storage to seed (memory, postgres, redis); defaults to LEDGER_STORAGE")
	flag.Parse()

	cfg := config.New()
	if *storage != "" {
		cfg.Ledger.Storage = *storage
	}
	if cfg.Ledger.Storage == config.StorageMemory {
		log.Println("memory storage is not persisted, nothing to seed")
		return
	}

	logger := applogger.NewLogger(cfg.Log.Level, cfg.Log.OutputPaths)
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, closeStore, err := repositories.OpenSnapshotRepository(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("open snapshot storage", zap.Error(err))
	}
	defer closeStore()

	l := ledger.New(store,
		ledger.WithLogger(logger),
		ledger.WithSystemActor(cfg.Ledger.SystemActorID, cfg.Ledger.SystemActorName),
	)
	if err := l.Load(ctx); err != nil {
		logger.Fatal("load ledger", zap.Error(err))
	}

	system := ledger.Actor{ID: cfg.Ledger.SystemActorID, Name: cfg.Ledger.SystemActorName}
	if err := seeders.SeedLedger(ctx, l, system, logger); err != nil {
		logger.Fatal("seed ledger", zap.Error(err))
	}
	logger.Info("seeding finished", zap.String("storage", cfg.Ledger.Storage))
}
