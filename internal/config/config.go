package config

import (
	"os"
	"strconv"

	"asimply_pulse/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort   string
	LogLevel  string
	LogJSON   bool
	JWTSecret string

	// Storage backend: memory | file | redis | postgres
	StorageDriver string
	DataDir       string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	DatabaseURL   string

	// API rate limits
	APIRateLimit   int
	APIRateWindow  int // seconds
	AuthRateLimit  int
	AuthRateWindow int // seconds

	// Staking pool overrides
	Pool30APY      float64
	Pool30TermDays int
	Pool90APY      float64
	Pool90TermDays int

	SettleInterval   int // seconds between maturity sweeps, 0 disables
	BattleFeedPeriod int // seconds between ws standings pushes
}

// Load reads configuration from the environment (plus .env when present).
func Load() *Config {
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	driver := os.Getenv("STORAGE_DRIVER")
	if driver == "" {
		driver = "file"
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}

	return &Config{
		AppPort:   port,
		LogLevel:  envString("LOG_LEVEL", "info"),
		LogJSON:   os.Getenv("LOG_JSON") == "true",
		JWTSecret: jwtSecret,

		StorageDriver: driver,
		DataDir:       dataDir,
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),
		DatabaseURL:   os.Getenv("DATABASE_URL"),

		APIRateLimit:   envInt("API_RATE_LIMIT", 60),
		APIRateWindow:  envInt("API_RATE_WINDOW_SECONDS", 60),
		AuthRateLimit:  envInt("AUTH_RATE_LIMIT", 5),
		AuthRateWindow: envInt("AUTH_RATE_WINDOW_SECONDS", 60),

		Pool30APY:      envFloat("POOL_30DAY_APY", 8),
		Pool30TermDays: envInt("POOL_30DAY_TERM_DAYS", 30),
		Pool90APY:      envFloat("POOL_90DAY_APY", 16),
		Pool90TermDays: envInt("POOL_90DAY_TERM_DAYS", 90),

		SettleInterval:   envInt("SETTLE_INTERVAL_SECONDS", 3600),
		BattleFeedPeriod: envInt("BATTLE_FEED_SECONDS", 5),
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return def
}
