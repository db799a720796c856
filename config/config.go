package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pizza-tracker/models"
)

// DefaultDSN keeps the history database in memory, so it lives and dies with the process
const DefaultDSN = "file:pizza_tracker?mode=memory&cache=shared"

type Config struct {
	Port          string
	GinMode       string
	LogLevel      string
	TickInterval  time.Duration
	IDPolicy      string
	StrictLookups bool
	DBDSN         string
}

// Load reads settings from the environment, after pulling in .env if there is one
func Load() (*Config, error) {
	_ = godotenv.Load()

	tick, err := time.ParseDuration(getEnv("TICK_INTERVAL", "60s"))
	if err != nil {
		return nil, fmt.Errorf("parse TICK_INTERVAL: %w", err)
	}
	if tick <= 0 {
		return nil, fmt.Errorf("TICK_INTERVAL must be positive, got %s", tick)
	}
	strict, err := strconv.ParseBool(getEnv("STRICT_LOOKUPS", "false"))
	if err != nil {
		return nil, fmt.Errorf("parse STRICT_LOOKUPS: %w", err)
	}

	return &Config{
		Port:          getEnv("PORT", "8080"),
		GinMode:       os.Getenv("GIN_MODE"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		TickInterval:  tick,
		IDPolicy:      getEnv("ORDER_ID_POLICY", "length"),
		StrictLookups: strict,
		DBDSN:         getEnv("DB_DSN", DefaultDSN),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB opens the history database and migrates its tables
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// one connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.StageHistory{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}
