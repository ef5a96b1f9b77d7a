package database

import (
	"Tripmate/internal/api/config"
	"Tripmate/internal/model"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestPoolSettings(t *testing.T) {
	idle, open, lifetime := poolSettings(&config.DBConfig{})
	if idle != defaultMaxIdle || open != defaultMaxOpen || lifetime != defaultMaxLifetime {
		t.Errorf("defaults = (%d, %d, %v)", idle, open, lifetime)
	}

	idle, open, lifetime = poolSettings(&config.DBConfig{MaxIdle: 40, MaxOpen: 20, MaxLifetime: 5})
	if idle != 20 || open != 20 || lifetime != 5*time.Minute {
		t.Errorf("clamped = (%d, %d, %v), want (20, 20, 5m)", idle, open, lifetime)
	}
}

func TestNewGormDBRejectsEmptyDSN(t *testing.T) {
	if _, err := NewGormDB(&config.DBConfig{}); err == nil {
		t.Error("expected error for empty dsn")
	}
}

func TestAutoMigrateAndSeedThemesIdempotent(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:database_test?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for i := 0; i < 2; i++ {
		if err = AutoMigrate(db); err != nil {
			t.Fatalf("AutoMigrate() run %d error = %v", i, err)
		}
		if err = SeedThemes(db); err != nil {
			t.Fatalf("SeedThemes() run %d error = %v", i, err)
		}
	}

	indexes := []struct {
		table any
		name  string
	}{
		{&model.Like{}, "idx_like_place_id"},
		{&model.Review{}, "idx_review_place_id"},
		{&model.Review{}, "idx_user_place"},
		{&model.Place{}, "idx_theme_score"},
	}
	for _, idx := range indexes {
		if !db.Migrator().HasIndex(idx.table, idx.name) {
			t.Errorf("index %s missing after migrate", idx.name)
		}
	}

	var count int64
	db.Model(&model.Theme{}).Count(&count)
	if count != int64(len(model.DefaultThemes)) {
		t.Errorf("theme rows = %d, want %d", count, len(model.DefaultThemes))
	}
}
