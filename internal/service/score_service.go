package service

import (
	"Tripmate/internal/api/dto"
	"Tripmate/internal/model"
	"Tripmate/internal/pkg/metrics"
	"Tripmate/internal/repository"
	"context"
	"math"

	"gorm.io/gorm"
)

// 排名权重，浏览量先除以 10
const (
	viewDivisor  = 10.0
	viewWeight   = 1.0
	likeWeight   = 3.0
	reviewWeight = 2.0
	ratingWeight = 4.0
)

type ScoreService interface {
	// CalculateScore 纯函数，不做任何持久化
	CalculateScore(viewCount, likeCount, reviewCount int64, rating float64) float64
	// PreviewScore 校验入参后返回预览分数
	PreviewScore(ctx context.Context, req *dto.ScorePreviewDTO) (*dto.ScoreDTO, error)
	// UpdateScore 锁定景点行并按当前统计值重算分数
	UpdateScore(ctx context.Context, placeID uint64) (*dto.PlaceStatsDTO, error)
}

type scoreServiceImpl struct {
	transactor repository.Transactor
	placeRepo  repository.PlaceRepo
	cache      Cache
}

func NewScoreService(transactor repository.Transactor, placeRepo repository.PlaceRepo, cache Cache) ScoreService {
	return &scoreServiceImpl{
		transactor: transactor,
		placeRepo:  placeRepo,
		cache:      cache,
	}
}

// CalculateScore 加权求和后保留一位小数（四舍五入）
func CalculateScore(viewCount, likeCount, reviewCount int64, rating float64) float64 {
	raw := float64(viewCount)/viewDivisor*viewWeight +
		float64(likeCount)*likeWeight +
		float64(reviewCount)*reviewWeight +
		rating*ratingWeight
	return round1(raw)
}

func round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

func (s *scoreServiceImpl) CalculateScore(viewCount, likeCount, reviewCount int64, rating float64) float64 {
	return CalculateScore(viewCount, likeCount, reviewCount, rating)
}

func (s *scoreServiceImpl) PreviewScore(_ context.Context, req *dto.ScorePreviewDTO) (*dto.ScoreDTO, error) {
	if req.ViewCount < 0 || req.LikeCount < 0 || req.ReviewCount < 0 {
		return nil, ErrParamInvalid
	}
	if math.IsNaN(req.Rating) || req.Rating < 0 || req.Rating > 5 {
		return nil, ErrParamInvalid
	}
	return &dto.ScoreDTO{
		Score: CalculateScore(req.ViewCount, req.LikeCount, req.ReviewCount, req.Rating),
	}, nil
}

func (s *scoreServiceImpl) UpdateScore(ctx context.Context, placeID uint64) (*dto.PlaceStatsDTO, error) {
	var stats *dto.PlaceStatsDTO
	err := s.transactor.Transaction(ctx, func(tx *gorm.DB) error {
		placeRepo := s.placeRepo.WithTx(tx)
		place, err := placeRepo.LockByID(ctx, placeID)
		if err != nil {
			return err
		}
		if place == nil {
			return ErrPlaceNotFound
		}
		if err = persistScore(ctx, placeRepo, place, metrics.TriggerManual); err != nil {
			return err
		}
		stats = toPlaceStatsDTO(place)
		return nil
	})
	if err != nil {
		return nil, err
	}
	markDirty(ctx, s.cache, placeID)
	return stats, nil
}

// persistScore 按内存中的统计值重算分数并写回，调用方需持有行锁
func persistScore(ctx context.Context, placeRepo repository.PlaceRepo, place *model.Place, trigger string) error {
	place.Score = CalculateScore(place.ViewCount, place.LikeCount, place.ReviewCount, place.Rating)
	err := placeRepo.UpdateStats(ctx, place.ID, &repository.PlaceStats{
		LikeCount:   place.LikeCount,
		ReviewCount: place.ReviewCount,
		Rating:      place.Rating,
		Score:       place.Score,
	})
	if err != nil {
		return err
	}
	metrics.RecordScoreRefresh(trigger)
	return nil
}

func toPlaceStatsDTO(place *model.Place) *dto.PlaceStatsDTO {
	return &dto.PlaceStatsDTO{
		PlaceID:     place.ID,
		ContentID:   place.ContentID,
		ViewCount:   place.ViewCount,
		LikeCount:   place.LikeCount,
		ReviewCount: place.ReviewCount,
		Rating:      place.Rating,
		Score:       place.Score,
	}
}
