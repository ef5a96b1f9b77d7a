package service

import (
	"Tripmate/internal/api/dto"
	"Tripmate/internal/model"
	"Tripmate/internal/pkg/consts"
	"Tripmate/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"
)

const taxonomyCacheExpiration = time.Hour

type TaxonomyService interface {
	ResolveTheme(ctx context.Context, name string) (*model.Theme, error)
	ResolveRegion(ctx context.Context, name string) (*model.Region, error)
	ResolveWards(ctx context.Context, regionID uint64, names []string) ([]*model.Ward, error)
	ResolveCategory(ctx context.Context, name string) (*repository.CategoryMatch, error)
	ListThemes(ctx context.Context) ([]*dto.ThemeDTO, error)
	ListRegions(ctx context.Context) ([]*dto.RegionDTO, error)
	ListWards(ctx context.Context, regionName string) ([]*dto.WardDTO, error)
	ListCategories(ctx context.Context) ([]*dto.CategoryDTO, error)
	// EvictTable 分类表发生变更时清理列表缓存及变更行名称对应的缓存
	EvictTable(ctx context.Context, table string, names ...string) error
}

type taxonomyServiceImpl struct {
	taxonomyRepo repository.TaxonomyRepo
	cache        Cache
}

func NewTaxonomyService(taxonomyRepo repository.TaxonomyRepo, cache Cache) TaxonomyService {
	return &taxonomyServiceImpl{
		taxonomyRepo: taxonomyRepo,
		cache:        cache,
	}
}

func (s *taxonomyServiceImpl) ResolveTheme(ctx context.Context, name string) (*model.Theme, error) {
	return getOrLoad(ctx, s.cache, consts.ThemeByNameKey+name, taxonomyCacheExpiration, func() (*model.Theme, error) {
		return s.taxonomyRepo.FindThemeByName(ctx, name)
	})
}

func (s *taxonomyServiceImpl) ResolveRegion(ctx context.Context, name string) (*model.Region, error) {
	return getOrLoad(ctx, s.cache, consts.RegionByNameKey+name, taxonomyCacheExpiration, func() (*model.Region, error) {
		return s.taxonomyRepo.FindRegionByName(ctx, name)
	})
}

func (s *taxonomyServiceImpl) ResolveWards(ctx context.Context, regionID uint64, names []string) ([]*model.Ward, error) {
	return s.taxonomyRepo.FindWardsByNames(ctx, regionID, names)
}

func (s *taxonomyServiceImpl) ResolveCategory(ctx context.Context, name string) (*repository.CategoryMatch, error) {
	return getOrLoad(ctx, s.cache, consts.CategoryByNameKey+name, taxonomyCacheExpiration, func() (*repository.CategoryMatch, error) {
		return s.taxonomyRepo.FindCategoryByName(ctx, name)
	})
}

func (s *taxonomyServiceImpl) ListThemes(ctx context.Context) ([]*dto.ThemeDTO, error) {
	res, err := getOrLoad(ctx, s.cache, consts.ThemeListKey, taxonomyCacheExpiration, func() (*[]*dto.ThemeDTO, error) {
		themes, err := s.taxonomyRepo.ListThemes(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]*dto.ThemeDTO, 0, len(themes))
		for _, t := range themes {
			out = append(out, &dto.ThemeDTO{Code: t.Code, Name: t.Name})
		}
		return &out, nil
	})
	if err != nil {
		return nil, err
	}
	return *res, nil
}

func (s *taxonomyServiceImpl) ListRegions(ctx context.Context) ([]*dto.RegionDTO, error) {
	res, err := getOrLoad(ctx, s.cache, consts.RegionListKey, taxonomyCacheExpiration, func() (*[]*dto.RegionDTO, error) {
		regions, err := s.taxonomyRepo.ListRegions(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]*dto.RegionDTO, 0, len(regions))
		for _, r := range regions {
			out = append(out, &dto.RegionDTO{Code: r.Code, Name: r.Name})
		}
		return &out, nil
	})
	if err != nil {
		return nil, err
	}
	return *res, nil
}

// ListWards 未知地区返回空列表
func (s *taxonomyServiceImpl) ListWards(ctx context.Context, regionName string) ([]*dto.WardDTO, error) {
	region, err := s.ResolveRegion(ctx, regionName)
	if err != nil {
		return nil, err
	}
	if region == nil {
		return []*dto.WardDTO{}, nil
	}
	key := consts.WardListKey + strconv.FormatUint(region.ID, 10)
	res, err := getOrLoad(ctx, s.cache, key, taxonomyCacheExpiration, func() (*[]*dto.WardDTO, error) {
		wards, err := s.taxonomyRepo.ListWards(ctx, region.ID)
		if err != nil {
			return nil, err
		}
		out := make([]*dto.WardDTO, 0, len(wards))
		for _, w := range wards {
			out = append(out, &dto.WardDTO{Code: w.Code, Name: w.Name})
		}
		return &out, nil
	})
	if err != nil {
		return nil, err
	}
	return *res, nil
}

func (s *taxonomyServiceImpl) ListCategories(ctx context.Context) ([]*dto.CategoryDTO, error) {
	res, err := getOrLoad(ctx, s.cache, consts.CategoryListKey, taxonomyCacheExpiration, func() (*[]*dto.CategoryDTO, error) {
		categories, err := s.taxonomyRepo.ListCategories(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]*dto.CategoryDTO, 0, len(categories))
		for _, c := range categories {
			out = append(out, &dto.CategoryDTO{
				Cat1Code: c.Cat1Code, Cat1Name: c.Cat1Name,
				Cat2Code: c.Cat2Code, Cat2Name: c.Cat2Name,
				Cat3Code: c.Cat3Code, Cat3Name: c.Cat3Name,
			})
		}
		return &out, nil
	})
	if err != nil {
		return nil, err
	}
	return *res, nil
}

func (s *taxonomyServiceImpl) EvictTable(ctx context.Context, table string, names ...string) error {
	if s.cache == nil {
		return nil
	}
	var keys []string
	switch table {
	case "themes":
		keys = append(keys, consts.ThemeListKey)
		for _, name := range names {
			keys = append(keys, consts.ThemeByNameKey+name)
		}
	case "regions":
		keys = append(keys, consts.RegionListKey)
		for _, name := range names {
			keys = append(keys, consts.RegionByNameKey+name)
		}
	case "wards":
		regions, err := s.taxonomyRepo.ListRegions(ctx)
		if err != nil {
			return err
		}
		for _, r := range regions {
			keys = append(keys, consts.WardListKey+strconv.FormatUint(r.ID, 10))
		}
	case "categories":
		keys = append(keys, consts.CategoryListKey)
		for _, name := range names {
			keys = append(keys, consts.CategoryByNameKey+name)
		}
	default:
		return nil
	}
	if len(keys) == 0 {
		return nil
	}
	log.InfoContext(ctx, "evict taxonomy cache", "table", table, "keys", len(keys))
	return s.cache.DeleteKey(ctx, keys...)
}
