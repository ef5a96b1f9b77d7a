package database

import (
	"Tripmate/internal/api/config"
	"Tripmate/internal/pkg/logger"
	"fmt"
	log "log/slog"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

const (
	defaultMaxIdle     = 10
	defaultMaxOpen     = 50
	defaultMaxLifetime = 30 * time.Minute
)

// NewGormDB 打开 MySQL 连接并配置连接池，未配置的池参数使用默认值
func NewGormDB(cfg *config.DBConfig) (*gorm.DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database dsn is empty")
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger:         logger.NewGormLogger(),
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}

	maxIdle, maxOpen, lifetime := poolSettings(cfg)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(lifetime)

	if err = sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database connection check failed: %w", err)
	}

	log.Info("Database connection established", "max_idle", maxIdle, "max_open", maxOpen, "max_lifetime", lifetime)
	return db, nil
}

func poolSettings(cfg *config.DBConfig) (int, int, time.Duration) {
	maxIdle, maxOpen, lifetime := cfg.MaxIdle, cfg.MaxOpen, time.Duration(cfg.MaxLifetime)*time.Minute
	if maxIdle <= 0 {
		maxIdle = defaultMaxIdle
	}
	if maxOpen <= 0 {
		maxOpen = defaultMaxOpen
	}
	if maxIdle > maxOpen {
		maxIdle = maxOpen
	}
	if lifetime <= 0 {
		lifetime = defaultMaxLifetime
	}
	return maxIdle, maxOpen, lifetime
}
