package http

import (
	"context"
	"time"

	"asimply_pulse/internal/config"
	"asimply_pulse/internal/http/handlers"
	"asimply_pulse/internal/http/middleware"
	"asimply_pulse/internal/ledger"
	"asimply_pulse/internal/ws"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the API surface over the ledger store. Background
// consumers such as the battle feed stop when ctx is cancelled.
func RegisterRoutes(ctx context.Context, r *gin.Engine, store *ledger.Store, cfg *config.Config, version string) {
	h := handlers.NewHandler(store)
	healthHandler := handlers.NewHealthHandler(store, version)

	r.Use(middleware.Metrics())

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	apiRateWindow := time.Duration(cfg.APIRateWindow) * time.Second
	authRateWindow := time.Duration(cfg.AuthRateWindow) * time.Second

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, apiRateWindow))

	// Auth
	v1.POST("/auth", middleware.RedisRateLimit(cfg.AuthRateLimit, authRateWindow), h.Auth)

	// User profile
	v1.GET("/me", middleware.JWT(), h.Me)
	v1.PATCH("/me", middleware.JWT(), h.UpdateMe)
	v1.POST("/me/balance", middleware.JWT(), h.UpdateBalance)

	// Activities
	v1.GET("/activities", h.GetActivities)
	v1.POST("/activities/:id/progress", middleware.JWT(), h.UpdateActivityProgress)

	// Achievements
	v1.GET("/achievements", h.GetAchievements)
	v1.POST("/achievements/:id/mint", middleware.JWT(), h.MintAchievement)

	// Staking
	v1.GET("/staking", h.GetStaking)
	v1.POST("/staking", middleware.JWT(), h.CreateStake)
	v1.POST("/staking/:id/unstake", middleware.JWT(), h.Unstake)

	// Battles
	v1.GET("/battles", h.GetBattles)
	v1.POST("/battles/:id/join", middleware.JWT(), h.JoinBattle)

	// Mini-games
	v1.GET("/games/sessions", h.GetGameSessions)
	v1.POST("/games/sessions", middleware.JWT(), h.AddGameSession)
	v1.POST("/game/spin", middleware.JWT(), h.Spin)
	v1.POST("/game/runner", middleware.JWT(), h.Runner)

	// Wallet
	v1.GET("/wallet", h.GetWallet)
	v1.POST("/wallet/connect", middleware.JWT(), h.ConnectWallet)
	v1.POST("/wallet/disconnect", middleware.JWT(), h.DisconnectWallet)

	// Admin
	v1.POST("/admin/reset", middleware.JWT(), h.Reset)

	// Battle standings feed
	hub := ws.NewHub()
	feed := ws.NewBattleFeed(hub, store, time.Duration(cfg.BattleFeedPeriod)*time.Second)
	go feed.Run(ctx)
	r.GET("/ws", ws.Serve(hub))
}
