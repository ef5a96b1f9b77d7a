package service

import (
	"Tripmate/internal/api/dto"
	"Tripmate/internal/model"
	"Tripmate/internal/pkg/util"
	"Tripmate/internal/repository"
	"context"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"
)

const (
	minRating        = 1
	maxRating        = 5
	maxReviewContent = 1000
)

type ReviewService interface {
	CreateReview(ctx context.Context, userID uint64, req *dto.ReviewCreateDTO) (*dto.ReviewIDDTO, error)
	UpdateReview(ctx context.Context, userID, reviewID uint64, req *dto.ReviewUpdateDTO) (*dto.ReviewIDDTO, error)
	DeleteReview(ctx context.Context, userID, reviewID uint64) error
	ListByPlace(ctx context.Context, contentID string, page, size int) (*dto.ReviewPageDTO, error)
	ListByUser(ctx context.Context, userID uint64, page, size int) (*dto.ReviewPageDTO, error)
}

type reviewServiceImpl struct {
	transactor   repository.Transactor
	reviewRepo   repository.ReviewRepo
	placeRepo    repository.PlaceRepo
	statsService StatsService
	cache        Cache
}

func NewReviewService(
	transactor repository.Transactor,
	reviewRepo repository.ReviewRepo,
	placeRepo repository.PlaceRepo,
	statsService StatsService,
	cache Cache,
) ReviewService {
	return &reviewServiceImpl{
		transactor:   transactor,
		reviewRepo:   reviewRepo,
		placeRepo:    placeRepo,
		statsService: statsService,
		cache:        cache,
	}
}

func validateReview(rating int, content string) (string, error) {
	if rating < minRating || rating > maxRating {
		return "", ErrRatingInvalid
	}
	content = strings.TrimSpace(content)
	if n := utf8.RuneCountInString(content); n == 0 || n > maxReviewContent {
		return "", ErrReviewContentInvalid
	}
	return content, nil
}

func (s *reviewServiceImpl) CreateReview(ctx context.Context, userID uint64, req *dto.ReviewCreateDTO) (*dto.ReviewIDDTO, error) {
	content, err := validateReview(req.Rating, req.Content)
	if err != nil {
		return nil, err
	}

	review := &model.Review{
		PlaceID: req.PlaceID,
		UserID:  userID,
		Rating:  req.Rating,
		Content: content,
	}
	err = s.transactor.Transaction(ctx, func(tx *gorm.DB) error {
		place, err := s.placeRepo.WithTx(tx).LockByID(ctx, req.PlaceID)
		if err != nil {
			return err
		}
		if place == nil {
			return ErrPlaceNotFound
		}

		reviewRepo := s.reviewRepo.WithTx(tx)
		exists, err := reviewRepo.ExistsByUserAndPlace(ctx, userID, req.PlaceID)
		if err != nil {
			return err
		}
		if exists {
			return ErrReviewDuplicate
		}
		if err = reviewRepo.Create(ctx, review); err != nil {
			if isDuplicateKey(err) {
				return ErrReviewDuplicate
			}
			return err
		}
		return s.statsService.RecomputeReviewStats(ctx, tx, req.PlaceID)
	})
	if err != nil {
		return nil, err
	}

	markDirty(ctx, s.cache, req.PlaceID)
	return &dto.ReviewIDDTO{ReviewID: review.ID}, nil
}

func (s *reviewServiceImpl) UpdateReview(ctx context.Context, userID, reviewID uint64, req *dto.ReviewUpdateDTO) (*dto.ReviewIDDTO, error) {
	content, err := validateReview(req.Rating, req.Content)
	if err != nil {
		return nil, err
	}

	var placeID uint64
	err = s.transactor.Transaction(ctx, func(tx *gorm.DB) error {
		review, err := s.loadOwnedReview(ctx, tx, userID, reviewID)
		if err != nil {
			return err
		}
		placeID = review.PlaceID
		if _, err = s.placeRepo.WithTx(tx).LockByID(ctx, placeID); err != nil {
			return err
		}

		review.Rating = req.Rating
		review.Content = content
		if err = s.reviewRepo.WithTx(tx).Update(ctx, review); err != nil {
			return err
		}
		return s.statsService.RecomputeReviewStats(ctx, tx, placeID)
	})
	if err != nil {
		return nil, err
	}

	markDirty(ctx, s.cache, placeID)
	return &dto.ReviewIDDTO{ReviewID: reviewID}, nil
}

func (s *reviewServiceImpl) DeleteReview(ctx context.Context, userID, reviewID uint64) error {
	var placeID uint64
	err := s.transactor.Transaction(ctx, func(tx *gorm.DB) error {
		review, err := s.loadOwnedReview(ctx, tx, userID, reviewID)
		if err != nil {
			return err
		}
		placeID = review.PlaceID
		if _, err = s.placeRepo.WithTx(tx).LockByID(ctx, placeID); err != nil {
			return err
		}
		if err = s.reviewRepo.WithTx(tx).Delete(ctx, reviewID); err != nil {
			return err
		}
		return s.statsService.RecomputeReviewStats(ctx, tx, placeID)
	})
	if err != nil {
		return err
	}

	markDirty(ctx, s.cache, placeID)
	return nil
}

// loadOwnedReview 评论不存在返回 NotFound，非作者返回 Forbidden
func (s *reviewServiceImpl) loadOwnedReview(ctx context.Context, tx *gorm.DB, userID, reviewID uint64) (*model.Review, error) {
	review, err := s.reviewRepo.WithTx(tx).GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	if review.UserID != userID {
		return nil, ErrReviewForbidden
	}
	return review, nil
}

func (s *reviewServiceImpl) ListByPlace(ctx context.Context, contentID string, page, size int) (*dto.ReviewPageDTO, error) {
	page, size, ok := util.NormalizePage(page, size)
	if !ok {
		return nil, ErrParamInvalid
	}
	place, err := s.placeRepo.GetByContentID(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, ErrPlaceNotFound
	}
	reviews, total, err := s.reviewRepo.ListByPlace(ctx, place.ID, size, page*size)
	if err != nil {
		return nil, err
	}
	return &dto.ReviewPageDTO{Results: ToReviewDTOs(reviews), TotalCount: total, Page: page, Size: size}, nil
}

func (s *reviewServiceImpl) ListByUser(ctx context.Context, userID uint64, page, size int) (*dto.ReviewPageDTO, error) {
	page, size, ok := util.NormalizePage(page, size)
	if !ok {
		return nil, ErrParamInvalid
	}
	reviews, total, err := s.reviewRepo.ListByUser(ctx, userID, size, page*size)
	if err != nil {
		return nil, err
	}
	return &dto.ReviewPageDTO{Results: ToReviewDTOs(reviews), TotalCount: total, Page: page, Size: size}, nil
}
