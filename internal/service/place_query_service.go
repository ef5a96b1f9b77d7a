package service

import (
	"Tripmate/internal/api/dto"
	"Tripmate/internal/model"
	"Tripmate/internal/pkg/metrics"
	"Tripmate/internal/pkg/util"
	"Tripmate/internal/repository"
	"context"
	log "log/slog"
	"strings"
	"time"
)

// PlaceSearcher 关键词检索，返回按相关度排序的景点 ID
type PlaceSearcher interface {
	Search(ctx context.Context, keyword string, themeCode int, from, size int) ([]uint64, int64, error)
}

type PlaceQueryService interface {
	FindPlaces(ctx context.Context, req *dto.PlaceQueryDTO) (*dto.PlacePageDTO, error)
	GetPlaceDetail(ctx context.Context, contentID string, userID uint64) (*dto.PlaceDTO, error)
	SearchPlaces(ctx context.Context, req *dto.PlaceSearchDTO) (*dto.PlacePageDTO, error)
	GetLikedPlaces(ctx context.Context, userID uint64, page, size int) (*dto.PlacePageDTO, error)
}

type placeQueryServiceImpl struct {
	placeRepo repository.PlaceRepo
	likeRepo  repository.LikeRepo
	taxonomy  TaxonomyService
	searcher  PlaceSearcher
}

func NewPlaceQueryService(
	placeRepo repository.PlaceRepo,
	likeRepo repository.LikeRepo,
	taxonomy TaxonomyService,
	searcher PlaceSearcher,
) PlaceQueryService {
	return &placeQueryServiceImpl{
		placeRepo: placeRepo,
		likeRepo:  likeRepo,
		taxonomy:  taxonomy,
		searcher:  searcher,
	}
}

func emptyPage(page, size int) *dto.PlacePageDTO {
	return &dto.PlacePageDTO{Results: []*dto.PlaceDTO{}, TotalCount: 0, Page: page, Size: size}
}

func (s *placeQueryServiceImpl) FindPlaces(ctx context.Context, req *dto.PlaceQueryDTO) (*dto.PlacePageDTO, error) {
	themeName := strings.TrimSpace(req.Theme)
	if themeName == "" {
		return nil, ErrThemeInvalid
	}
	theme, err := s.taxonomy.ResolveTheme(ctx, themeName)
	if err != nil {
		return nil, err
	}
	if theme == nil {
		return nil, ErrThemeInvalid
	}

	page, size, ok := util.NormalizePage(req.Page, req.Size)
	if !ok {
		return nil, ErrParamInvalid
	}
	sortKey := ParseSortKey(req.Sort)

	scope, err := resolveScope(ctx, s.taxonomy, req.Region, req.Wards)
	if err != nil {
		return nil, err
	}
	if scope == nil {
		return emptyPage(page, size), nil
	}

	filter := &repository.PlaceFilter{
		ThemeCode:   theme.Code,
		OrderColumn: sortKey.Column(),
		Offset:      page * size,
		Limit:       size,
	}
	scope.apply(filter)

	if category := strings.TrimSpace(req.Category); category != "" {
		match, err := s.taxonomy.ResolveCategory(ctx, category)
		if err != nil {
			return nil, err
		}
		if match == nil {
			return emptyPage(page, size), nil
		}
		filter.CategoryColumn = match.Level.Column()
		filter.CategoryCode = match.Code
	}

	start := time.Now()
	places, total, err := s.placeRepo.Find(ctx, filter)
	metrics.RecordPlaceQuery(scope.shape(), string(sortKey), time.Since(start))
	if err != nil {
		return nil, err
	}

	return &dto.PlacePageDTO{
		Results:    ToPlaceDTOs(places),
		TotalCount: total,
		Page:       page,
		Size:       size,
	}, nil
}

// GetPlaceDetail userID 为 0 时不返回点赞状态
func (s *placeQueryServiceImpl) GetPlaceDetail(ctx context.Context, contentID string, userID uint64) (*dto.PlaceDTO, error) {
	place, err := s.placeRepo.GetByContentID(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, ErrPlaceNotFound
	}
	out := ToPlaceDTO(place)
	if userID > 0 {
		liked, err := s.likeRepo.Exists(ctx, userID, place.ID)
		if err != nil {
			return nil, err
		}
		out.IsLiked = &liked
	}
	return out, nil
}

// SearchPlaces 索引异常时降级为空结果
func (s *placeQueryServiceImpl) SearchPlaces(ctx context.Context, req *dto.PlaceSearchDTO) (*dto.PlacePageDTO, error) {
	page, size, ok := util.NormalizePage(req.Page, req.Size)
	if !ok {
		return nil, ErrParamInvalid
	}
	keyword := strings.TrimSpace(req.Keyword)
	if keyword == "" {
		return nil, ErrParamInvalid
	}

	themeCode := 0
	if name := strings.TrimSpace(req.Theme); name != "" {
		theme, err := s.taxonomy.ResolveTheme(ctx, name)
		if err != nil {
			return nil, err
		}
		if theme == nil {
			return nil, ErrThemeInvalid
		}
		themeCode = theme.Code
	}

	if s.searcher == nil {
		metrics.RecordSearchFallback()
		return emptyPage(page, size), nil
	}
	ids, total, err := s.searcher.Search(ctx, keyword, themeCode, page*size, size)
	if err != nil {
		log.WarnContext(ctx, "place search failed, fallback to empty page", "keyword", keyword, "err", err)
		metrics.RecordSearchFallback()
		return emptyPage(page, size), nil
	}

	places, err := s.loadOrdered(ctx, ids)
	if err != nil {
		return nil, err
	}
	return &dto.PlacePageDTO{Results: ToPlaceDTOs(places), TotalCount: total, Page: page, Size: size}, nil
}

func (s *placeQueryServiceImpl) GetLikedPlaces(ctx context.Context, userID uint64, page, size int) (*dto.PlacePageDTO, error) {
	page, size, ok := util.NormalizePage(page, size)
	if !ok {
		return nil, ErrParamInvalid
	}
	ids, total, err := s.likeRepo.ListPlaceIDsByUser(ctx, userID, size, page*size)
	if err != nil {
		return nil, err
	}
	places, err := s.loadOrdered(ctx, ids)
	if err != nil {
		return nil, err
	}
	results := ToPlaceDTOs(places)
	liked := true
	for _, p := range results {
		p.IsLiked = &liked
	}
	return &dto.PlacePageDTO{Results: results, TotalCount: total, Page: page, Size: size}, nil
}

// loadOrdered 按 ids 顺序返回，已删除的景点被跳过
func (s *placeQueryServiceImpl) loadOrdered(ctx context.Context, ids []uint64) ([]*model.Place, error) {
	places, err := s.placeRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint64]*model.Place, len(places))
	for _, p := range places {
		byID[p.ID] = p
	}
	ordered := make([]*model.Place, 0, len(places))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}
