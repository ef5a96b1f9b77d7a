package model

import (
	"time"
)

type PlaceDailyMetric struct {
	ID           uint64    `gorm:"primaryKey"`
	PlaceID      uint64    `gorm:"not null;uniqueIndex:idx_place_date,priority:1" json:"placeId"`
	MetricDate   time.Time `gorm:"not null;uniqueIndex:idx_place_date,priority:2;column:metric_date" json:"metricDate"`
	TotalViews   int64     `gorm:"not null;default:0" json:"totalViews"`
	TotalLikes   int64     `gorm:"not null;default:0" json:"totalLikes"`
	TotalReviews int64     `gorm:"not null;default:0" json:"totalReviews"`
	Rating       float64   `gorm:"not null;default:0" json:"rating"`
	Score        float64   `gorm:"not null;default:0" json:"score"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (PlaceDailyMetric) TableName() string {
	return "place_daily_metrics"
}
