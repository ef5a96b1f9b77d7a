package repository

import (
	"Tripmate/internal/model"
	"context"

	"gorm.io/gorm"
)

type LikeRepo interface {
	WithTx(tx *gorm.DB) LikeRepo
	Exists(ctx context.Context, userID, placeID uint64) (bool, error)
	Create(ctx context.Context, like *model.Like) error
	Delete(ctx context.Context, userID, placeID uint64) (int64, error)
	CountByPlace(ctx context.Context, placeID uint64) (int64, error)
	ListPlaceIDsByUser(ctx context.Context, userID uint64, limit, offset int) ([]uint64, int64, error)
}

type likeRepoImpl struct {
	db *gorm.DB
}

func NewLikeRepo(db *gorm.DB) LikeRepo {
	return &likeRepoImpl{db: db}
}

func (s *likeRepoImpl) WithTx(tx *gorm.DB) LikeRepo {
	return &likeRepoImpl{db: tx}
}

func (s *likeRepoImpl) Exists(ctx context.Context, userID, placeID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND place_id = ?", userID, placeID).
		Count(&count).Error
	return count > 0, err
}

func (s *likeRepoImpl) Create(ctx context.Context, like *model.Like) error {
	return s.db.WithContext(ctx).Create(like).Error
}

// Delete 返回实际删除的行数
func (s *likeRepoImpl) Delete(ctx context.Context, userID, placeID uint64) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND place_id = ?", userID, placeID).
		Delete(&model.Like{})
	return res.RowsAffected, res.Error
}

func (s *likeRepoImpl) CountByPlace(ctx context.Context, placeID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("place_id = ?", placeID).
		Count(&count).Error
	return count, err
}

func (s *likeRepoImpl) ListPlaceIDsByUser(ctx context.Context, userID uint64, limit, offset int) ([]uint64, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&model.Like{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var placeIDs []uint64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ?", userID).
		Order("created_at DESC, place_id DESC").
		Limit(limit).Offset(offset).
		Pluck("place_id", &placeIDs).Error
	return placeIDs, total, err
}
