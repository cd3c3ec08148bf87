package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"asimply_pulse/internal/config"
	"asimply_pulse/internal/domain"
	httpServer "asimply_pulse/internal/http"
	"asimply_pulse/internal/http/middleware"
	"asimply_pulse/internal/ledger"
	"asimply_pulse/internal/logger"
	"asimply_pulse/internal/service"
	"asimply_pulse/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	service.InitJWT(cfg.JWTSecret)

	st := openStorage(cfg)
	store := ledger.New(st, ledger.WithPools(map[domain.PoolType]domain.Pool{
		domain.Pool30Day: {TermDays: cfg.Pool30TermDays, APY: cfg.Pool30APY},
		domain.Pool90Day: {TermDays: cfg.Pool90TermDays, APY: cfg.Pool90APY},
	}))

	r := gin.Default()

	// CORS for production (frontend on different domain)
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	httpServer.RegisterRoutes(ctx, r, store, cfg, version)

	if cfg.SettleInterval > 0 {
		go settleLoop(ctx, store, time.Duration(cfg.SettleInterval)*time.Second)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "storage", cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}

// settleLoop periodically moves matured staking positions to completed and
// pays them out.
func settleLoop(ctx context.Context, store *ledger.Store, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			settled, err := store.SettleMatured(ctx)
			if err != nil {
				logger.Error("maturity sweep failed", "error", err)
				continue
			}
			if len(settled) > 0 {
				logger.Info("settled matured positions", "count", len(settled))
			}
		}
	}
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
