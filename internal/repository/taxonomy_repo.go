package repository

import (
	"Tripmate/internal/model"
	"context"

	"gorm.io/gorm"
)

// CategoryMatch 分类名称命中的层级与编码
type CategoryMatch struct {
	Level model.CategoryLevel
	Code  string
}

type TaxonomyRepo interface {
	FindThemeByName(ctx context.Context, name string) (*model.Theme, error)
	ListThemes(ctx context.Context) ([]*model.Theme, error)
	FindRegionByName(ctx context.Context, name string) (*model.Region, error)
	FindRegionByCode(ctx context.Context, code int) (*model.Region, error)
	ListRegions(ctx context.Context) ([]*model.Region, error)
	FindWardsByNames(ctx context.Context, regionID uint64, names []string) ([]*model.Ward, error)
	FindWardByCode(ctx context.Context, regionID uint64, code int) (*model.Ward, error)
	ListWards(ctx context.Context, regionID uint64) ([]*model.Ward, error)
	FindCategoryByName(ctx context.Context, name string) (*CategoryMatch, error)
	ListCategories(ctx context.Context) ([]*model.Category, error)
}

type taxonomyRepoImpl struct {
	db *gorm.DB
}

func NewTaxonomyRepo(db *gorm.DB) TaxonomyRepo {
	return &taxonomyRepoImpl{db: db}
}

func (s *taxonomyRepoImpl) FindThemeByName(ctx context.Context, name string) (*model.Theme, error) {
	var theme model.Theme
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&theme).Error
	return notFoundAsNil(&theme, err)
}

func (s *taxonomyRepoImpl) ListThemes(ctx context.Context) ([]*model.Theme, error) {
	themes := make([]*model.Theme, 0)
	err := s.db.WithContext(ctx).Order("code ASC").Find(&themes).Error
	return themes, err
}

func (s *taxonomyRepoImpl) FindRegionByName(ctx context.Context, name string) (*model.Region, error) {
	var region model.Region
	err := s.db.WithContext(ctx).Where("name = ?", name).Order("id ASC").First(&region).Error
	return notFoundAsNil(&region, err)
}

func (s *taxonomyRepoImpl) FindRegionByCode(ctx context.Context, code int) (*model.Region, error) {
	var region model.Region
	err := s.db.WithContext(ctx).Where("code = ?", code).First(&region).Error
	return notFoundAsNil(&region, err)
}

func (s *taxonomyRepoImpl) ListRegions(ctx context.Context) ([]*model.Region, error) {
	regions := make([]*model.Region, 0)
	err := s.db.WithContext(ctx).Order("code ASC").Find(&regions).Error
	return regions, err
}

// FindWardsByNames 只在给定地区内解析区县名称，未命中的名称直接忽略
func (s *taxonomyRepoImpl) FindWardsByNames(ctx context.Context, regionID uint64, names []string) ([]*model.Ward, error) {
	wards := make([]*model.Ward, 0, len(names))
	if len(names) == 0 {
		return wards, nil
	}
	err := s.db.WithContext(ctx).
		Where("region_id = ? AND name IN ?", regionID, names).
		Order("code ASC").
		Find(&wards).Error
	return wards, err
}

func (s *taxonomyRepoImpl) FindWardByCode(ctx context.Context, regionID uint64, code int) (*model.Ward, error) {
	var ward model.Ward
	err := s.db.WithContext(ctx).Where("region_id = ? AND code = ?", regionID, code).First(&ward).Error
	return notFoundAsNil(&ward, err)
}

func (s *taxonomyRepoImpl) ListWards(ctx context.Context, regionID uint64) ([]*model.Ward, error) {
	wards := make([]*model.Ward, 0)
	err := s.db.WithContext(ctx).Where("region_id = ?", regionID).Order("code ASC").Find(&wards).Error
	return wards, err
}

// FindCategoryByName 依次匹配小类、中类、大类名称
func (s *taxonomyRepoImpl) FindCategoryByName(ctx context.Context, name string) (*CategoryMatch, error) {
	levels := []model.CategoryLevel{model.CategoryLevel3, model.CategoryLevel2, model.CategoryLevel1}
	for _, level := range levels {
		var category model.Category
		err := s.db.WithContext(ctx).
			Where(level.Column()+"_name = ?", name).
			Order("id ASC").
			First(&category).Error
		found, err := notFoundAsNil(&category, err)
		if err != nil {
			return nil, err
		}
		if found == nil {
			continue
		}
		match := &CategoryMatch{Level: level}
		switch level {
		case model.CategoryLevel1:
			match.Code = found.Cat1Code
		case model.CategoryLevel2:
			match.Code = found.Cat2Code
		default:
			match.Code = found.Cat3Code
		}
		return match, nil
	}
	return nil, nil
}

func (s *taxonomyRepoImpl) ListCategories(ctx context.Context) ([]*model.Category, error) {
	categories := make([]*model.Category, 0)
	err := s.db.WithContext(ctx).Order("cat1_code ASC, cat2_code ASC, cat3_code ASC").Find(&categories).Error
	return categories, err
}
