package service

import (
	"Tripmate/internal/api/dto"
	"Tripmate/internal/model"
	"Tripmate/internal/pkg/consts"
	"Tripmate/internal/pkg/util"
	"Tripmate/internal/repository"
	"context"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

type PlaceMetricService interface {
	// SyncPlaceMetric 将 places 表的实时统计刷入每日快照
	SyncPlaceMetric(ctx context.Context, placeID uint64) error
	// GetPlaceTrend 获取最近 7 或 30 天的趋势，缺失日期沿用上一次的值
	GetPlaceTrend(ctx context.Context, contentID string, days int) (*dto.PlaceTrendDTO, error)
}

type placeMetricServiceImpl struct {
	placeMetricRepo repository.PlaceMetricRepo
	placeRepo       repository.PlaceRepo
	cache           Cache
	now             func() time.Time
}

func NewPlaceMetricService(placeMetricRepo repository.PlaceMetricRepo, placeRepo repository.PlaceRepo, cache Cache) PlaceMetricService {
	return &placeMetricServiceImpl{
		placeMetricRepo: placeMetricRepo,
		placeRepo:       placeRepo,
		cache:           cache,
		now:             time.Now,
	}
}

func trendCacheKey(days int, placeID uint64) string {
	prefix := consts.PlaceMetrics7Key
	if days == 30 {
		prefix = consts.PlaceMetrics30Key
	}
	return prefix + strconv.FormatUint(placeID, 10)
}

func (s *placeMetricServiceImpl) SyncPlaceMetric(ctx context.Context, placeID uint64) error {
	place, err := s.placeRepo.GetByID(ctx, placeID)
	if err != nil {
		return err
	}
	if place == nil {
		return ErrPlaceNotFound
	}

	metric := &model.PlaceDailyMetric{
		PlaceID:      placeID,
		MetricDate:   util.GetMidnight(s.now()),
		TotalViews:   place.ViewCount,
		TotalLikes:   place.LikeCount,
		TotalReviews: place.ReviewCount,
		Rating:       place.Rating,
		Score:        place.Score,
	}
	if err = s.placeMetricRepo.SaveOrUpdateMetric(ctx, metric); err != nil {
		return err
	}

	if s.cache != nil {
		_ = s.cache.DeleteKey(ctx, trendCacheKey(7, placeID), trendCacheKey(30, placeID))
	}
	return nil
}

func (s *placeMetricServiceImpl) GetPlaceTrend(ctx context.Context, contentID string, days int) (*dto.PlaceTrendDTO, error) {
	if days != 7 && days != 30 {
		return nil, ErrMetricDaysInvalid
	}
	place, err := s.placeRepo.GetByContentID(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, ErrPlaceNotFound
	}

	key := trendCacheKey(days, place.ID)
	if s.cache != nil {
		if val, err := s.cache.GetValue(ctx, key); err == nil && val != "" {
			var res dto.PlaceTrendDTO
			if err := json.Unmarshal([]byte(val), &res); err == nil {
				return &res, nil
			}
		}
	}

	now := s.now()
	startTime := util.GetMidnight(now).AddDate(0, 0, -(days - 1))
	rawData, err := s.placeMetricRepo.GetRange(ctx, place.ID, startTime)
	if err != nil {
		return nil, err
	}

	var lastValid *model.PlaceDailyMetric
	if len(rawData) == 0 || !rawData[0].MetricDate.Equal(startTime) {
		lastValid, err = s.placeMetricRepo.GetLatestBefore(ctx, place.ID, startTime)
		if err != nil {
			return nil, err
		}
	}

	dataMap := make(map[string]*model.PlaceDailyMetric, len(rawData))
	for _, m := range rawData {
		dataMap[m.MetricDate.Format(time.DateOnly)] = m
	}

	res := &dto.PlaceTrendDTO{
		ContentID: contentID,
		Days:      days,
		Views:     make([]*dto.PlaceMetricDTO, 0, days),
		Likes:     make([]*dto.PlaceMetricDTO, 0, days),
		Reviews:   make([]*dto.PlaceMetricDTO, 0, days),
		Ratings:   make([]*dto.PlaceMetricDTO, 0, days),
		Scores:    make([]*dto.PlaceMetricDTO, 0, days),
	}

	for i := days - 1; i >= 0; i-- {
		dateStr := util.GetMidnight(now).AddDate(0, 0, -i).Format(time.DateOnly)
		if val, ok := dataMap[dateStr]; ok {
			lastValid = val
		}
		var v, l, r, rating, score float64
		if lastValid != nil {
			v = float64(lastValid.TotalViews)
			l = float64(lastValid.TotalLikes)
			r = float64(lastValid.TotalReviews)
			rating, score = lastValid.Rating, lastValid.Score
		}
		res.Views = append(res.Views, &dto.PlaceMetricDTO{Date: dateStr, Value: v})
		res.Likes = append(res.Likes, &dto.PlaceMetricDTO{Date: dateStr, Value: l})
		res.Reviews = append(res.Reviews, &dto.PlaceMetricDTO{Date: dateStr, Value: r})
		res.Ratings = append(res.Ratings, &dto.PlaceMetricDTO{Date: dateStr, Value: rating})
		res.Scores = append(res.Scores, &dto.PlaceMetricDTO{Date: dateStr, Value: score})
	}

	if s.cache != nil {
		if b, err := json.Marshal(res); err == nil {
			_ = s.cache.SetWithExpiration(ctx, key, string(b), util.GetMidnight(now).AddDate(0, 0, 1).Sub(now))
		}
	}
	return res, nil
}
