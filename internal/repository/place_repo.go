package repository

import (
	"Tripmate/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlaceFilter 列表查询条件，ThemeCode 必填
type PlaceFilter struct {
	ThemeCode      int
	RegionID       *uint64
	WardIDs        []uint64
	CategoryColumn string
	CategoryCode   string
	OrderColumn    string
	Offset         int
	Limit          int
}

// PlaceStats 景点的派生统计值
type PlaceStats struct {
	LikeCount   int64
	ReviewCount int64
	Rating      float64
	Score       float64
}

type PlaceRepo interface {
	WithTx(tx *gorm.DB) PlaceRepo
	GetByID(ctx context.Context, id uint64) (*model.Place, error)
	GetByContentID(ctx context.Context, contentID string) (*model.Place, error)
	GetByIDs(ctx context.Context, ids []uint64) ([]*model.Place, error)
	Find(ctx context.Context, filter *PlaceFilter) ([]*model.Place, int64, error)
	LockByID(ctx context.Context, id uint64) (*model.Place, error)
	IncrementViewCount(ctx context.Context, id uint64) error
	UpdateStats(ctx context.Context, id uint64, stats *PlaceStats) error
	UpdateScore(ctx context.Context, id uint64, score float64) error
	Upsert(ctx context.Context, place *model.Place) error
	ListIDs(ctx context.Context, afterID uint64, limit int) ([]uint64, error)
}

type placeRepoImpl struct {
	db *gorm.DB
}

func NewPlaceRepo(db *gorm.DB) PlaceRepo {
	return &placeRepoImpl{db: db}
}

func (s *placeRepoImpl) WithTx(tx *gorm.DB) PlaceRepo {
	return &placeRepoImpl{db: tx}
}

// GetByID 不存在时返回 (nil, nil)
func (s *placeRepoImpl) GetByID(ctx context.Context, id uint64) (*model.Place, error) {
	var place model.Place
	err := s.db.WithContext(ctx).Joins("Region").Joins("Ward").First(&place, "places.id = ?", id).Error
	return notFoundAsNil(&place, err)
}

func (s *placeRepoImpl) GetByContentID(ctx context.Context, contentID string) (*model.Place, error) {
	var place model.Place
	err := s.db.WithContext(ctx).Joins("Region").Joins("Ward").First(&place, "places.content_id = ?", contentID).Error
	return notFoundAsNil(&place, err)
}

func (s *placeRepoImpl) GetByIDs(ctx context.Context, ids []uint64) ([]*model.Place, error) {
	places := make([]*model.Place, 0, len(ids))
	if len(ids) == 0 {
		return places, nil
	}
	err := s.db.WithContext(ctx).Joins("Region").Joins("Ward").
		Where("places.id IN ?", ids).
		Find(&places).Error
	return places, err
}

// Find 按条件统计总数并分页查询，Region/Ward 通过 LEFT JOIN 一次取回
func (s *placeRepoImpl) Find(ctx context.Context, filter *PlaceFilter) ([]*model.Place, int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.Place{}).
		Scopes(placeFilterScope(filter)).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	places := make([]*model.Place, 0, filter.Limit)
	if total == 0 || int64(filter.Offset) >= total {
		return places, total, nil
	}

	orderColumn := filter.OrderColumn
	if orderColumn == "" {
		orderColumn = "score"
	}
	err = s.db.WithContext(ctx).
		Scopes(placeFilterScope(filter)).
		Joins("Region").Joins("Ward").
		Order(clause.OrderBy{Columns: []clause.OrderByColumn{
			{Column: clause.Column{Table: "places", Name: orderColumn}, Desc: true},
			{Column: clause.Column{Table: "places", Name: "id"}},
		}}).
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&places).Error
	if err != nil {
		return nil, 0, err
	}
	return places, total, nil
}

func placeFilterScope(filter *PlaceFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("places.content_type_id = ?", filter.ThemeCode)
		if filter.RegionID != nil {
			db = db.Where("places.region_id = ?", *filter.RegionID)
		}
		if len(filter.WardIDs) > 0 {
			db = db.Where("places.ward_id IN ?", filter.WardIDs)
		}
		if filter.CategoryColumn != "" {
			db = db.Where(clause.Eq{
				Column: clause.Column{Table: "places", Name: filter.CategoryColumn},
				Value:  filter.CategoryCode,
			})
		}
		return db
	}
}

// LockByID 对景点行加排他锁，需在事务内调用
func (s *placeRepoImpl) LockByID(ctx context.Context, id uint64) (*model.Place, error) {
	var place model.Place
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&place, id).Error
	return notFoundAsNil(&place, err)
}

// IncrementViewCount 由数据库原子自增，行不存在时返回 gorm.ErrRecordNotFound
func (s *placeRepoImpl) IncrementViewCount(ctx context.Context, id uint64) error {
	res := s.db.WithContext(ctx).Model(&model.Place{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *placeRepoImpl) UpdateStats(ctx context.Context, id uint64, stats *PlaceStats) error {
	return s.db.WithContext(ctx).Model(&model.Place{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"like_count":   stats.LikeCount,
			"review_count": stats.ReviewCount,
			"rating":       stats.Rating,
			"score":        stats.Score,
			"updated_at":   gorm.Expr("CURRENT_TIMESTAMP"),
		}).Error
}

func (s *placeRepoImpl) UpdateScore(ctx context.Context, id uint64, score float64) error {
	return s.db.WithContext(ctx).Model(&model.Place{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"score":      score,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}).Error
}

// Upsert 导入数据时按 content_id 覆盖描述字段，不触碰统计字段
func (s *placeRepoImpl) Upsert(ctx context.Context, place *model.Place) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "content_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"content_type_id", "title", "addr1", "addr2", "zip_code", "tel", "first_image",
			"map_x", "map_y", "cat1", "cat2", "cat3", "region_id", "ward_id", "updated_at",
		}),
	}).Create(place).Error
}

func (s *placeRepoImpl) ListIDs(ctx context.Context, afterID uint64, limit int) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.Place{}).
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Pluck("id", &ids).Error
	return ids, err
}

func notFoundAsNil[T any](v *T, err error) (*T, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}
