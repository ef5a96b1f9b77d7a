package repository

import (
	"Tripmate/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlaceMetricRepo interface {
	SaveOrUpdateMetric(ctx context.Context, metric *model.PlaceDailyMetric) error
	GetRange(ctx context.Context, placeID uint64, from time.Time) ([]*model.PlaceDailyMetric, error)
	GetLatestBefore(ctx context.Context, placeID uint64, date time.Time) (*model.PlaceDailyMetric, error)
}

type placeMetricRepoImpl struct {
	db *gorm.DB
}

func NewPlaceMetricRepo(db *gorm.DB) PlaceMetricRepo {
	return &placeMetricRepoImpl{db: db}
}

// SaveOrUpdateMetric place_id + metric_date 已存在时覆盖各项数值
func (r *placeMetricRepoImpl) SaveOrUpdateMetric(ctx context.Context, metric *model.PlaceDailyMetric) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "place_id"}, {Name: "metric_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_views",
			"total_likes",
			"total_reviews",
			"rating",
			"score",
		}),
	}).Create(metric).Error
}

// GetRange 获取 from 当天及之后的快照，按日期升序
func (r *placeMetricRepoImpl) GetRange(ctx context.Context, placeID uint64, from time.Time) ([]*model.PlaceDailyMetric, error) {
	metrics := make([]*model.PlaceDailyMetric, 0)
	err := r.db.WithContext(ctx).
		Where("place_id = ? AND metric_date >= ?", placeID, from).
		Order("metric_date ASC").
		Find(&metrics).Error
	if err != nil {
		return nil, err
	}
	return metrics, nil
}

// GetLatestBefore 获取指定日期前最近的一条快照，用于补齐区间起点
func (r *placeMetricRepoImpl) GetLatestBefore(ctx context.Context, placeID uint64, date time.Time) (*model.PlaceDailyMetric, error) {
	var metric model.PlaceDailyMetric
	err := r.db.WithContext(ctx).
		Where("place_id = ? AND metric_date < ?", placeID, date).
		Order("metric_date DESC").
		First(&metric).Error
	return notFoundAsNil(&metric, err)
}
