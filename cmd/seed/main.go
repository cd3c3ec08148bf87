// Command seed resets the configured storage backend and reseeds the fixture
// snapshot, printing the resulting user.
package main

import (
	"context"
	"encoding/json"
	"fmt"

	"asimply_pulse/internal/config"
	"asimply_pulse/internal/ledger"
	"asimply_pulse/internal/logger"
	"asimply_pulse/internal/storage"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	st := openStorage(cfg)
	store := ledger.New(st)
	ctx := context.Background()

	if err := store.Reset(ctx); err != nil {
		logger.Fatal("reset failed", "error", err)
	}

	user, err := store.GetUser(ctx)
	if err != nil {
		logger.Fatal("reseed failed", "error", err)
	}

	out, _ := json.MarshalIndent(user, "", "  ")
	fmt.Println(string(out))
	logger.Info("store reseeded", "storage", cfg.StorageDriver, "balance", user.ASTBalance)
}

func openStorage(cfg *config.Config) storage.Storage {
	switch cfg.StorageDriver {
	case "memory":
		return storage.NewMemory()
	case "file":
		st, err := storage.NewFile(cfg.DataDir)
		if err != nil {
			logger.Fatal("failed to open data dir", "dir", cfg.DataDir, "error", err)
		}
		return st
	case "redis":
		st, err := storage.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Fatal("failed to connect to redis", "addr", cfg.RedisAddr, "error", err)
		}
		return st
	case "postgres":
		st, err := storage.NewPostgres(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("failed to connect to postgres", "error", err)
		}
		return st
	default:
		logger.Fatal("unknown storage driver", "driver", cfg.StorageDriver)
		return nil
	}
}
