package job

import (
	"Tripmate/internal/model"
	"Tripmate/internal/pkg/consts"
	"Tripmate/internal/pkg/metrics"
	"Tripmate/internal/pkg/tourapi"
	"Tripmate/internal/pkg/util"
	"Tripmate/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	importLockTTL = 3 * time.Hour
	maxImportPage = 1000
)

// PlaceSource 外部景点数据源
type PlaceSource interface {
	AreaBasedList(ctx context.Context, contentTypeID, pageNo int) ([]tourapi.Item, int64, error)
	PageSize() int
}

// PlaceImportJob 按主题分页拉取公共旅游接口数据并写入 places，地区与区县按编码关联
type PlaceImportJob struct {
	locker       Locker
	source       PlaceSource
	taxonomyRepo repository.TaxonomyRepo
	placeRepo    repository.PlaceRepo
}

func NewPlaceImportJob(locker Locker, source PlaceSource, taxonomyRepo repository.TaxonomyRepo, placeRepo repository.PlaceRepo) *PlaceImportJob {
	return &PlaceImportJob{
		locker:       locker,
		source:       source,
		taxonomyRepo: taxonomyRepo,
		placeRepo:    placeRepo,
	}
}

func (s *PlaceImportJob) Run() {
	ctx := jobContext("place-import")
	err := s.Import(ctx)
	if err != nil {
		log.ErrorContext(ctx, "place import job failed", "err", err)
	}
	metrics.RecordJobRun("place_import", err)
}

// codeResolver 单次导入内缓存编码到地区/区县的映射，未知编码同样缓存为 nil
type codeResolver struct {
	repo    repository.TaxonomyRepo
	regions map[int]*model.Region
	wards   map[string]*model.Ward
}

func (r *codeResolver) resolve(ctx context.Context, areaCode, sigunguCode int) (*uint64, *uint64, error) {
	if areaCode == 0 {
		return nil, nil, nil
	}
	region, ok := r.regions[areaCode]
	if !ok {
		var err error
		if region, err = r.repo.FindRegionByCode(ctx, areaCode); err != nil {
			return nil, nil, err
		}
		r.regions[areaCode] = region
	}
	if region == nil {
		return nil, nil, nil
	}
	regionID := region.ID
	if sigunguCode == 0 {
		return &regionID, nil, nil
	}

	key := fmt.Sprintf("%d:%d", region.ID, sigunguCode)
	ward, ok := r.wards[key]
	if !ok {
		var err error
		if ward, err = r.repo.FindWardByCode(ctx, region.ID, sigunguCode); err != nil {
			return nil, nil, err
		}
		r.wards[key] = ward
	}
	if ward == nil {
		return &regionID, nil, nil
	}
	wardID := ward.ID
	return &regionID, &wardID, nil
}

func (s *PlaceImportJob) Import(ctx context.Context) error {
	token := uuid.NewString()
	ok, err := s.locker.TryLock(ctx, consts.PlaceImportLock, token, importLockTTL, 1)
	if err != nil {
		return err
	}
	if !ok {
		log.InfoContext(ctx, "place import running elsewhere, skip")
		return nil
	}
	defer s.locker.UnLock(ctx, consts.PlaceImportLock, token)

	themes, err := s.taxonomyRepo.ListThemes(ctx)
	if err != nil {
		return err
	}

	resolver := &codeResolver{repo: s.taxonomyRepo, regions: map[int]*model.Region{}, wards: map[string]*model.Ward{}}
	var imported, skipped int
	for _, theme := range themes {
		n, m, err := s.importTheme(ctx, resolver, theme)
		imported += n
		skipped += m
		if err != nil {
			return fmt.Errorf("导入主题 %s 失败: %w", theme.Name, err)
		}
	}

	log.InfoContext(ctx, "place import finished", "imported", imported, "skipped", skipped)
	return nil
}

func (s *PlaceImportJob) importTheme(ctx context.Context, resolver *codeResolver, theme *model.Theme) (int, int, error) {
	var imported, skipped int
	pageSize := s.source.PageSize()
	for pageNo := 1; pageNo <= maxImportPage; pageNo++ {
		items, total, err := s.source.AreaBasedList(ctx, theme.Code, pageNo)
		if err != nil {
			return imported, skipped, err
		}
		for i := range items {
			place, err := s.toPlace(ctx, resolver, &items[i], theme.Code)
			if err != nil {
				return imported, skipped, err
			}
			if place == nil {
				skipped++
				continue
			}
			if err = s.placeRepo.Upsert(ctx, place); err != nil {
				log.WarnContext(ctx, "upsert imported place error", "content_id", place.ContentID, "err", err)
				skipped++
				continue
			}
			imported++
		}
		if len(items) == 0 || int64(pageNo*pageSize) >= total {
			break
		}
	}
	return imported, skipped, nil
}

// toPlace 缺少 contentid 或标题的条目返回 nil
func (s *PlaceImportJob) toPlace(ctx context.Context, resolver *codeResolver, item *tourapi.Item, themeCode int) (*model.Place, error) {
	contentID := strings.TrimSpace(item.ContentID)
	title := strings.TrimSpace(item.Title)
	if contentID == "" || title == "" {
		return nil, nil
	}

	regionID, wardID, err := resolver.resolve(ctx, util.ParseCode(item.AreaCode), util.ParseCode(item.SigunguCode))
	if err != nil {
		return nil, err
	}

	contentTypeID := util.ParseCode(item.ContentTypeID)
	if contentTypeID == 0 {
		contentTypeID = themeCode
	}

	return &model.Place{
		ContentID:     contentID,
		ContentTypeID: contentTypeID,
		Title:         title,
		Addr1:         item.Addr1,
		Addr2:         item.Addr2,
		ZipCode:       item.ZipCode,
		Tel:           item.Tel,
		FirstImage:    item.FirstImage,
		MapX:          item.MapX,
		MapY:          item.MapY,
		Cat1:          item.Cat1,
		Cat2:          item.Cat2,
		Cat3:          item.Cat3,
		RegionID:      regionID,
		WardID:        wardID,
	}, nil
}
