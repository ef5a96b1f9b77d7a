package service

import (
	"Tripmate/internal/api/dto"
	"Tripmate/internal/model"
	"Tripmate/internal/pkg/metrics"
	"Tripmate/internal/repository"
	"context"
	"time"

	"gorm.io/gorm"
)

// LikeResult 点赞切换后的状态
type LikeResult int

const (
	LikeRemoved LikeResult = 0
	LikeAdded   LikeResult = 1
)

type StatsService interface {
	// IncrementView 原子自增浏览量并刷新分数
	IncrementView(ctx context.Context, contentID string) (*dto.PlaceStatsDTO, error)
	// ToggleLike 存在则取消、不存在则点赞，同一事务内刷新点赞数与分数
	ToggleLike(ctx context.Context, userID, placeID uint64) (LikeResult, error)
	// RecomputeReviewStats 在调用方事务内重算评论数、平均分与分数
	RecomputeReviewStats(ctx context.Context, tx *gorm.DB, placeID uint64) error
	// Reconcile 从子表重算全部派生统计，返回是否有变化
	Reconcile(ctx context.Context, placeID uint64) (bool, error)
}

type statsServiceImpl struct {
	transactor repository.Transactor
	placeRepo  repository.PlaceRepo
	likeRepo   repository.LikeRepo
	reviewRepo repository.ReviewRepo
	cache      Cache
}

func NewStatsService(
	transactor repository.Transactor,
	placeRepo repository.PlaceRepo,
	likeRepo repository.LikeRepo,
	reviewRepo repository.ReviewRepo,
	cache Cache,
) StatsService {
	return &statsServiceImpl{
		transactor: transactor,
		placeRepo:  placeRepo,
		likeRepo:   likeRepo,
		reviewRepo: reviewRepo,
		cache:      cache,
	}
}

func (s *statsServiceImpl) IncrementView(ctx context.Context, contentID string) (*dto.PlaceStatsDTO, error) {
	target, err := s.placeRepo.GetByContentID(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrPlaceNotFound
	}

	var stats *dto.PlaceStatsDTO
	err = s.transactor.Transaction(ctx, func(tx *gorm.DB) error {
		placeRepo := s.placeRepo.WithTx(tx)
		place, err := placeRepo.LockByID(ctx, target.ID)
		if err != nil {
			return err
		}
		if place == nil {
			return ErrPlaceNotFound
		}
		if err = placeRepo.IncrementViewCount(ctx, place.ID); err != nil {
			return err
		}
		// 行锁保证此处的 +1 与库中一致
		place.ViewCount++
		if err = persistScore(ctx, placeRepo, place, metrics.TriggerView); err != nil {
			return err
		}
		stats = toPlaceStatsDTO(place)
		return nil
	})
	if err != nil {
		return nil, err
	}
	markDirty(ctx, s.cache, target.ID)
	return stats, nil
}

func (s *statsServiceImpl) ToggleLike(ctx context.Context, userID, placeID uint64) (LikeResult, error) {
	var result LikeResult
	err := s.transactor.Transaction(ctx, func(tx *gorm.DB) error {
		placeRepo := s.placeRepo.WithTx(tx)
		likeRepo := s.likeRepo.WithTx(tx)

		place, err := placeRepo.LockByID(ctx, placeID)
		if err != nil {
			return err
		}
		if place == nil {
			return ErrPlaceNotFound
		}

		exists, err := likeRepo.Exists(ctx, userID, placeID)
		if err != nil {
			return err
		}
		if exists {
			if _, err = likeRepo.Delete(ctx, userID, placeID); err != nil {
				return err
			}
			result = LikeRemoved
		} else {
			err = likeRepo.Create(ctx, &model.Like{UserID: userID, PlaceID: placeID, CreatedAt: time.Now()})
			if err != nil {
				if isDuplicateKey(err) {
					return ErrActionDuplicate
				}
				return err
			}
			result = LikeAdded
		}

		if place.LikeCount, err = likeRepo.CountByPlace(ctx, placeID); err != nil {
			return err
		}
		return persistScore(ctx, placeRepo, place, metrics.TriggerLike)
	})
	if err != nil {
		return LikeRemoved, err
	}
	metrics.RecordLikeToggle(result == LikeAdded)
	markDirty(ctx, s.cache, placeID)
	return result, nil
}

func (s *statsServiceImpl) RecomputeReviewStats(ctx context.Context, tx *gorm.DB, placeID uint64) error {
	placeRepo := s.placeRepo.WithTx(tx)
	place, err := placeRepo.LockByID(ctx, placeID)
	if err != nil {
		return err
	}
	if place == nil {
		return ErrPlaceNotFound
	}
	agg, err := s.reviewRepo.WithTx(tx).AggregateByPlace(ctx, placeID)
	if err != nil {
		return err
	}
	place.ReviewCount = agg.Count
	place.Rating = agg.Rating
	if agg.Count == 0 {
		place.Rating = 0
	}
	return persistScore(ctx, placeRepo, place, metrics.TriggerReview)
}

func (s *statsServiceImpl) Reconcile(ctx context.Context, placeID uint64) (bool, error) {
	changed := false
	err := s.transactor.Transaction(ctx, func(tx *gorm.DB) error {
		placeRepo := s.placeRepo.WithTx(tx)
		place, err := placeRepo.LockByID(ctx, placeID)
		if err != nil {
			return err
		}
		if place == nil {
			return ErrPlaceNotFound
		}
		before := *place

		if place.LikeCount, err = s.likeRepo.WithTx(tx).CountByPlace(ctx, placeID); err != nil {
			return err
		}
		agg, err := s.reviewRepo.WithTx(tx).AggregateByPlace(ctx, placeID)
		if err != nil {
			return err
		}
		place.ReviewCount = agg.Count
		place.Rating = agg.Rating
		place.Score = CalculateScore(place.ViewCount, place.LikeCount, place.ReviewCount, place.Rating)

		if place.LikeCount == before.LikeCount &&
			place.ReviewCount == before.ReviewCount &&
			place.Rating == before.Rating &&
			place.Score == before.Score {
			return nil
		}
		changed = true
		return persistScore(ctx, placeRepo, place, metrics.TriggerReconcile)
	})
	if err != nil {
		return false, err
	}
	if changed {
		markDirty(ctx, s.cache, placeID)
	}
	return changed, nil
}
