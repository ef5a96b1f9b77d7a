package repository

import (
	"Tripmate/internal/model"
	"context"

	"gorm.io/gorm"
)

// ReviewAggregate 单个景点的评论数与平均分
type ReviewAggregate struct {
	Count  int64
	Rating float64
}

type ReviewRepo interface {
	WithTx(tx *gorm.DB) ReviewRepo
	Create(ctx context.Context, review *model.Review) error
	Update(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, id uint64) error
	GetByID(ctx context.Context, id uint64) (*model.Review, error)
	ExistsByUserAndPlace(ctx context.Context, userID, placeID uint64) (bool, error)
	AggregateByPlace(ctx context.Context, placeID uint64) (*ReviewAggregate, error)
	ListByPlace(ctx context.Context, placeID uint64, limit, offset int) ([]*model.Review, int64, error)
	ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]*model.Review, int64, error)
}

type reviewRepoImpl struct {
	db *gorm.DB
}

func NewReviewRepo(db *gorm.DB) ReviewRepo {
	return &reviewRepoImpl{db: db}
}

func (s *reviewRepoImpl) WithTx(tx *gorm.DB) ReviewRepo {
	return &reviewRepoImpl{db: tx}
}

func (s *reviewRepoImpl) Create(ctx context.Context, review *model.Review) error {
	return s.db.WithContext(ctx).Create(review).Error
}

func (s *reviewRepoImpl) Update(ctx context.Context, review *model.Review) error {
	return s.db.WithContext(ctx).Model(review).
		Select("rating", "content", "updated_at").
		Updates(review).Error
}

func (s *reviewRepoImpl) Delete(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Review{}, id).Error
}

func (s *reviewRepoImpl) GetByID(ctx context.Context, id uint64) (*model.Review, error) {
	var review model.Review
	err := s.db.WithContext(ctx).First(&review, id).Error
	return notFoundAsNil(&review, err)
}

func (s *reviewRepoImpl) ExistsByUserAndPlace(ctx context.Context, userID, placeID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Review{}).
		Where("user_id = ? AND place_id = ?", userID, placeID).
		Count(&count).Error
	return count > 0, err
}

// AggregateByPlace 没有评论时返回 0 条、0 分
func (s *reviewRepoImpl) AggregateByPlace(ctx context.Context, placeID uint64) (*ReviewAggregate, error) {
	var agg ReviewAggregate
	err := s.db.WithContext(ctx).Model(&model.Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS rating").
		Where("place_id = ?", placeID).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

func (s *reviewRepoImpl) ListByPlace(ctx context.Context, placeID uint64, limit, offset int) ([]*model.Review, int64, error) {
	return s.list(ctx, "place_id = ?", placeID, limit, offset)
}

func (s *reviewRepoImpl) ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]*model.Review, int64, error) {
	return s.list(ctx, "user_id = ?", userID, limit, offset)
}

func (s *reviewRepoImpl) list(ctx context.Context, cond string, arg uint64, limit, offset int) ([]*model.Review, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&model.Review{}).Where(cond, arg).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	reviews := make([]*model.Review, 0, limit)
	err := s.db.WithContext(ctx).
		Preload("User").
		Where(cond, arg).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}
