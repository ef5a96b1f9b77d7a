package database

import (
	"Tripmate/internal/model"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AutoMigrate 同步全部表结构
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Region{},
		&model.Ward{},
		&model.Category{},
		&model.Theme{},
		&model.User{},
		&model.Place{},
		&model.Review{},
		&model.Like{},
		&model.PlaceDailyMetric{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	return nil
}

// SeedThemes 写入固定的主题字典，已存在则跳过
func SeedThemes(db *gorm.DB) error {
	themes := make([]model.Theme, len(model.DefaultThemes))
	copy(themes, model.DefaultThemes)
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&themes).Error
}
