package service

import (
	"Tripmate/internal/model"
	"Tripmate/internal/pkg/consts"
	"Tripmate/internal/pkg/util"
	"Tripmate/internal/repository"
	"context"
	"strings"
)

// SortKey 列表排序字段，均为降序
type SortKey string

const (
	SortScore       SortKey = "SCORE"
	SortViewCount   SortKey = "VIEW_COUNT"
	SortLikeCount   SortKey = "LIKE_COUNT"
	SortRating      SortKey = "RATING"
	SortReviewCount SortKey = "REVIEW_COUNT"
)

var sortColumns = map[SortKey]string{
	SortScore:       "score",
	SortViewCount:   "view_count",
	SortLikeCount:   "like_count",
	SortRating:      "rating",
	SortReviewCount: "review_count",
}

// ParseSortKey 无法识别时退回 SCORE
func ParseSortKey(raw string) SortKey {
	key := SortKey(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := sortColumns[key]; ok {
		return key
	}
	return SortScore
}

func (k SortKey) Column() string {
	if col, ok := sortColumns[k]; ok {
		return col
	}
	return sortColumns[SortScore]
}

// regionScope 地区筛选的三种形态
type regionScope interface {
	apply(filter *repository.PlaceFilter)
	shape() string
}

type nationwideScope struct{}

func (nationwideScope) apply(*repository.PlaceFilter) {}

func (nationwideScope) shape() string { return "nationwide" }

type regionOnlyScope struct {
	region *model.Region
}

func (s regionOnlyScope) apply(filter *repository.PlaceFilter) {
	regionID := s.region.ID
	filter.RegionID = &regionID
}

func (regionOnlyScope) shape() string { return "region" }

type regionAndWardsScope struct {
	region  *model.Region
	wardIDs []uint64
}

func (s regionAndWardsScope) apply(filter *repository.PlaceFilter) {
	regionID := s.region.ID
	filter.RegionID = &regionID
	filter.WardIDs = s.wardIDs
}

func (regionAndWardsScope) shape() string { return "region_wards" }

// resolveScope 返回 nil 表示软未命中，调用方应返回空页
func resolveScope(ctx context.Context, taxonomy TaxonomyService, regionName string, wardNames []string) (regionScope, error) {
	regionName = strings.TrimSpace(regionName)
	if regionName == "" || regionName == consts.NationwideRegion {
		return nationwideScope{}, nil
	}

	region, err := taxonomy.ResolveRegion(ctx, regionName)
	if err != nil {
		return nil, err
	}
	if region == nil {
		return nil, nil
	}

	wardNames = util.UniqueNonEmpty(wardNames)
	if len(wardNames) == 0 {
		return regionOnlyScope{region: region}, nil
	}

	wards, err := taxonomy.ResolveWards(ctx, region.ID, wardNames)
	if err != nil {
		return nil, err
	}
	// 指定了区县但全部不属于该地区
	if len(wards) == 0 {
		return nil, nil
	}
	wardIDs := make([]uint64, 0, len(wards))
	for _, w := range wards {
		wardIDs = append(wardIDs, w.ID)
	}
	return regionAndWardsScope{region: region, wardIDs: wardIDs}, nil
}
