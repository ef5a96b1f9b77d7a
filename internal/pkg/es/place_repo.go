package es

import (
	"context"
	"errors"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/versiontype"
	"github.com/goccy/go-json"
)

// MaxSearchDepth from + size 超过该值不再查询
const MaxSearchDepth = 1000

var searchFields = []string{"title^3", "region_name^2", "ward_name^2", "addr1", "addr2"}

type PlaceRepo interface {
	EnsureIndex(ctx context.Context) error
	IndexPlace(ctx context.Context, place *PlaceES) error
	DeletePlace(ctx context.Context, id uint64) error
	// Search 按相关度、分数排序返回景点 ID，themeCode 为 0 时不过滤主题
	Search(ctx context.Context, keyword string, themeCode int, from, size int) ([]uint64, int64, error)
}

type PlaceRepoImpl struct {
	client *elasticsearch.TypedClient
	index  string
}

func NewPlaceRepo(client *elasticsearch.TypedClient, index string) PlaceRepo {
	return &PlaceRepoImpl{client: client, index: index}
}

// EnsureIndex 索引不存在时按映射创建
func (s *PlaceRepoImpl) EnsureIndex(ctx context.Context) error {
	exists, err := s.client.Indices.Exists(s.index).Do(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = s.client.Indices.Create(s.index).Mappings(placeMapping()).Do(ctx)
	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) && e.ErrorCause.Type == "resource_already_exists_exception" {
			return nil
		}
		return err
	}
	return nil
}

func placeMapping() *types.TypeMapping {
	return &types.TypeMapping{
		Properties: map[string]types.Property{
			"id":              types.NewLongNumberProperty(),
			"content_id":      types.NewKeywordProperty(),
			"content_type_id": types.NewIntegerNumberProperty(),
			"title":           types.NewTextProperty(),
			"addr1":           types.NewTextProperty(),
			"addr2":           types.NewTextProperty(),
			"cat1":            types.NewKeywordProperty(),
			"cat2":            types.NewKeywordProperty(),
			"cat3":            types.NewKeywordProperty(),
			"region_name":     types.NewTextProperty(),
			"ward_name":       types.NewTextProperty(),
			"location":        types.NewGeoPointProperty(),
			"view_count":      types.NewLongNumberProperty(),
			"like_count":      types.NewLongNumberProperty(),
			"review_count":    types.NewLongNumberProperty(),
			"rating":          types.NewDoubleNumberProperty(),
			"score":           types.NewDoubleNumberProperty(),
			"updated_at":      types.NewDateProperty(),
		},
	}
}

func (s *PlaceRepoImpl) IndexPlace(ctx context.Context, place *PlaceES) error {
	docID := strconv.FormatUint(place.ID, 10)

	_, err := s.client.Index(s.index).
		Id(docID).
		Document(place).
		Version(strconv.FormatInt(place.Version(), 10)).
		VersionType(versiontype.External).
		Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) && e.Status == ConflictCode {
			return nil
		}
		return err
	}
	return nil
}

func (s *PlaceRepoImpl) DeletePlace(ctx context.Context, id uint64) error {
	docID := strconv.FormatUint(id, 10)

	_, err := s.client.Delete(s.index, docID).Do(ctx)
	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) && e.Status == NotFoundCode {
			return nil
		}
		return err
	}
	return nil
}

func (s *PlaceRepoImpl) Search(ctx context.Context, keyword string, themeCode int, from, size int) ([]uint64, int64, error) {
	if from+size > MaxSearchDepth {
		return []uint64{}, 0, nil
	}

	req := s.client.Search().
		Index(s.index).
		Query(buildSearchQuery(keyword, themeCode)).
		Sort(
			types.SortOptions{SortOptions: map[string]types.FieldSort{"_score": {Order: &sortorder.Desc}}},
			types.SortOptions{SortOptions: map[string]types.FieldSort{"score": {Order: &sortorder.Desc}}},
			types.SortOptions{SortOptions: map[string]types.FieldSort{"id": {Order: &sortorder.Asc}}},
		).
		Source_(&types.SourceFilter{Includes: []string{"id"}}).
		From(from).
		Size(size)

	return s.executeSearch(ctx, req)
}

func buildSearchQuery(keyword string, themeCode int) *types.Query {
	boolQuery := &types.BoolQuery{
		Must: []types.Query{{
			MultiMatch: &types.MultiMatchQuery{
				Query:  keyword,
				Fields: searchFields,
			},
		}},
	}
	if themeCode > 0 {
		boolQuery.Filter = []types.Query{{
			Term: map[string]types.TermQuery{
				"content_type_id": {Value: themeCode},
			},
		}}
	}
	return &types.Query{Bool: boolQuery}
}

func (s *PlaceRepoImpl) executeSearch(ctx context.Context, req *search.Search) ([]uint64, int64, error) {
	resp, err := req.Do(ctx)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if resp.Hits.Total != nil {
		total = resp.Hits.Total.Value
	}

	ids := make([]uint64, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		if hit.Source_ == nil {
			continue
		}
		var doc struct {
			ID uint64 `json:"id"`
		}
		if err = json.Unmarshal(hit.Source_, &doc); err != nil || doc.ID == 0 {
			continue
		}
		ids = append(ids, doc.ID)
	}
	return ids, total, nil
}
