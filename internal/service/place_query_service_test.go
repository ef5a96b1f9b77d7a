package service

import (
	"Tripmate/internal/api/dto"
	"Tripmate/internal/model"
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
)

type queryFixture struct {
	*fixture
	places map[string]*model.Place
}

func seedQueryFixture(t *testing.T, s *services) *queryFixture {
	t.Helper()
	f := seedFixture(t, s.db)
	q := &queryFixture{fixture: f, places: map[string]*model.Place{}}
	add := func(id string, theme int, opts ...placeOpt) {
		q.places[id] = createPlace(t, s.db, id, theme, opts...)
	}
	add("1001", 12, inWard(f.seoul, f.gangnam), withStats(100, 10, 5, 4.5, 68), withCategory("A01", "A0101", "A01010100"))
	add("1002", 12, inWard(f.seoul, f.jongno), withStats(50, 2, 1, 3.0, 25), withCategory("A02", "A0201", "A02010100"))
	add("1003", 12, inWard(f.seoul, f.gangnam), withStats(10, 0, 0, 0, 1))
	add("1004", 12, inWard(f.busan, f.haeu), withStats(500, 1, 1, 5, 75))
	add("1005", 12, withStats(20, 0, 0, 0, 2))
	add("1006", 12, inWard(f.seoul, nil))
	add("1007", 39, inWard(f.seoul, f.gangnam), withStats(1000, 20, 10, 5, 200))
	add("1008", 12, inWard(f.seoul, f.gangnam), withStats(10, 0, 0, 0, 1))
	return q
}

func contentIDs(page *dto.PlacePageDTO) []string {
	ids := make([]string, 0, len(page.Results))
	for _, p := range page.Results {
		ids = append(ids, p.ContentID)
	}
	return ids
}

func TestFindPlacesScopes(t *testing.T) {
	db := newTestDB(t)
	s := newServices(t, db, nil)
	seedQueryFixture(t, s)
	ctx := context.Background()

	tests := []struct {
		name   string
		region string
		wards  []string
		want   []string
	}{
		{"nationwide", "", nil, []string{"1004", "1001", "1002", "1005", "1003", "1008", "1006"}},
		{"nationwide sentinel", "전국", []string{"강남구"}, []string{"1004", "1001", "1002", "1005", "1003", "1008", "1006"}},
		{"region only", "서울", nil, []string{"1001", "1002", "1003", "1008", "1006"}},
		{"region and ward", "서울", []string{"강남구"}, []string{"1001", "1003", "1008"}},
		{"foreign ward ignored", "서울", []string{"강남구", "해운대구"}, []string{"1001", "1003", "1008"}},
		{"two wards", "서울", []string{"종로구", "강남구"}, []string{"1001", "1002", "1003", "1008"}},
		{"only foreign wards", "서울", []string{"해운대구"}, []string{}},
		{"unknown region", "NonexistentRegion", nil, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := s.query.FindPlaces(ctx, &dto.PlaceQueryDTO{
				Theme:  "관광지",
				Region: tt.region,
				Wards:  tt.wards,
				Size:   50,
			})
			if err != nil {
				t.Fatalf("FindPlaces() error = %v", err)
			}
			if got := contentIDs(page); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FindPlaces() = %v, want %v", got, tt.want)
			}
			if page.TotalCount != int64(len(tt.want)) {
				t.Errorf("total = %d, want %d", page.TotalCount, len(tt.want))
			}
		})
	}
}

func TestFindPlacesUnknownTheme(t *testing.T) {
	db := newTestDB(t)
	s := newServices(t, db, nil)
	seedQueryFixture(t, s)

	_, err := s.query.FindPlaces(context.Background(), &dto.PlaceQueryDTO{Theme: "우주여행"})
	if !errors.Is(err, ErrThemeInvalid) {
		t.Errorf("FindPlaces(unknown theme) error = %v, want ErrThemeInvalid", err)
	}
	if ErrorMap[ErrThemeInvalid] != BadRequest {
		t.Errorf("unknown theme should map to %d", BadRequest)
	}
}

func TestFindPlacesSort(t *testing.T) {
	db := newTestDB(t)
	s := newServices(t, db, nil)
	seedQueryFixture(t, s)
	ctx := context.Background()

	tests := []struct {
		sort string
		want []string
	}{
		{"VIEW_COUNT", []string{"1004", "1001", "1002", "1005", "1003", "1008", "1006"}},
		{"view_count", []string{"1004", "1001", "1002", "1005", "1003", "1008", "1006"}},
		{"LIKE_COUNT", []string{"1001", "1002", "1004", "1003", "1005", "1006", "1008"}},
		{"RATING", []string{"1004", "1001", "1002", "1003", "1005", "1006", "1008"}},
		{"REVIEW_COUNT", []string{"1001", "1002", "1004", "1003", "1005", "1006", "1008"}},
		{"SCORE", []string{"1004", "1001", "1002", "1005", "1003", "1008", "1006"}},
		{"not-a-sort", []string{"1004", "1001", "1002", "1005", "1003", "1008", "1006"}},
	}
	for _, tt := range tests {
		t.Run(tt.sort, func(t *testing.T) {
			page, err := s.query.FindPlaces(ctx, &dto.PlaceQueryDTO{Theme: "관광지", Sort: tt.sort, Size: 50})
			if err != nil {
				t.Fatalf("FindPlaces() error = %v", err)
			}
			if got := contentIDs(page); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("sort %s = %v, want %v", tt.sort, got, tt.want)
			}
		})
	}
}

func TestFindPlacesSubsetLaw(t *testing.T) {
	db := newTestDB(t)
	s := newServices(t, db, nil)
	seedQueryFixture(t, s)
	ctx := context.Background()

	sorts := []string{"SCORE", "VIEW_COUNT", "LIKE_COUNT", "RATING", "REVIEW_COUNT"}
	wards := []string{"강남구", "종로구"}

	for _, sort := range sorts {
		nationwide := findSet(t, s, ctx, "", nil, sort)
		region := findSet(t, s, ctx, "서울", nil, sort)
		if !isSubset(region, nationwide) {
			t.Errorf("sort %s: region results %v not within nationwide %v", sort, region, nationwide)
		}
		for _, w := range wards {
			ward := findSet(t, s, ctx, "서울", []string{w}, sort)
			if len(ward) == 0 {
				t.Errorf("sort %s ward %s: expected results", sort, w)
			}
			if !isSubset(ward, region) {
				t.Errorf("sort %s ward %s: %v not within region %v", sort, w, ward, region)
			}
		}
	}
}

func findSet(t *testing.T, s *services, ctx context.Context, region string, wards []string, sort string) map[string]struct{} {
	t.Helper()
	page, err := s.query.FindPlaces(ctx, &dto.PlaceQueryDTO{Theme: "관광지", Region: region, Wards: wards, Sort: sort, Size: 100})
	if err != nil {
		t.Fatalf("FindPlaces() error = %v", err)
	}
	set := make(map[string]struct{}, len(page.Results))
	for _, id := range contentIDs(page) {
		set[id] = struct{}{}
	}
	return set
}

func isSubset(sub, super map[string]struct{}) bool {
	for k := range sub {
		if _, ok := super[k]; !ok {
			return false
		}
	}
	return true
}

func TestFindPlacesPagination(t *testing.T) {
	db := newTestDB(t)
	s := newServices(t, db, nil)
	seedQueryFixture(t, s)
	ctx := context.Background()

	seen := map[string]int{}
	var total int64
	count := 0
	for page := 0; page < 4; page++ {
		res, err := s.query.FindPlaces(ctx, &dto.PlaceQueryDTO{Theme: "관광지", Page: page, Size: 3})
		if err != nil {
			t.Fatalf("page %d error = %v", page, err)
		}
		if res.Page != page || res.Size != 3 {
			t.Errorf("page echo = %d/%d, want %d/3", res.Page, res.Size, page)
		}
		total = res.TotalCount
		for _, id := range contentIDs(res) {
			if prev, dup := seen[id]; dup {
				t.Errorf("place %s appears on pages %d and %d", id, prev, page)
			}
			seen[id] = page
			count++
		}
	}
	if int64(count) != total || total != 7 {
		t.Errorf("sum of pages = %d, total = %d, want 7", count, total)
	}

	if _, err := s.query.FindPlaces(ctx, &dto.PlaceQueryDTO{Theme: "관광지", Page: -1}); !errors.Is(err, ErrParamInvalid) {
		t.Errorf("negative page error = %v, want ErrParamInvalid", err)
	}
	far := &dto.PlaceQueryDTO{Theme: "관광지", Page: math.MaxInt/20 + 1, Size: 20}
	if res, err := s.query.FindPlaces(ctx, far); !errors.Is(err, ErrParamInvalid) {
		t.Errorf("overflowing page = %v, %v, want ErrParamInvalid", res, err)
	}
}

func TestFindPlacesCategory(t *testing.T) {
	db := newTestDB(t)
	s := newServices(t, db, nil)
	seedQueryFixture(t, s)
	ctx := context.Background()

	tests := []struct {
		category string
		want     []string
	}{
		{"국립공원", []string{"1001"}},
		{"역사관광지", []string{"1002"}},
		{"자연", []string{"1001"}},
		{"없는분류", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			page, err := s.query.FindPlaces(ctx, &dto.PlaceQueryDTO{Theme: "관광지", Region: "서울", Category: tt.category})
			if err != nil {
				t.Fatalf("FindPlaces() error = %v", err)
			}
			if got := contentIDs(page); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("category %s = %v, want %v", tt.category, got, tt.want)
			}
		})
	}
}

func TestFindPlacesInlinesRegionAndWard(t *testing.T) {
	db := newTestDB(t)
	s := newServices(t, db, nil)
	seedQueryFixture(t, s)

	page, err := s.query.FindPlaces(context.Background(), &dto.PlaceQueryDTO{Theme: "관광지", Size: 50})
	if err != nil {
		t.Fatalf("FindPlaces() error = %v", err)
	}
	byID := map[string]*dto.PlaceDTO{}
	for _, p := range page.Results {
		byID[p.ContentID] = p
	}

	p1 := byID["1001"]
	if p1.RegionName == nil || *p1.RegionName != "서울" || p1.WardCode == nil || *p1.WardCode != 1 {
		t.Errorf("1001 region/ward not inlined: %+v", p1)
	}
	p6 := byID["1006"]
	if p6.RegionName == nil || p6.WardName != nil {
		t.Errorf("1006 should have region but no ward: %+v", p6)
	}
	p5 := byID["1005"]
	if p5.RegionName != nil || p5.RegionCode != nil || p5.WardName != nil || p5.WardCode != nil {
		t.Errorf("1005 should have no region/ward: %+v", p5)
	}
}

func TestGetPlaceDetail(t *testing.T) {
	db := newTestDB(t)
	s := newServices(t, db, nil)
	q := seedQueryFixture(t, s)
	ctx := context.Background()

	user := q.users[0].ID
	if _, err := s.stats.ToggleLike(ctx, user, q.places["1001"].ID); err != nil {
		t.Fatalf("ToggleLike() error = %v", err)
	}

	detail, err := s.query.GetPlaceDetail(ctx, "1001", user)
	if err != nil {
		t.Fatalf("GetPlaceDetail() error = %v", err)
	}
	if detail.IsLiked == nil || !*detail.IsLiked {
		t.Error("expected is_liked = true")
	}

	anon, err := s.query.GetPlaceDetail(ctx, "1001", 0)
	if err != nil {
		t.Fatalf("GetPlaceDetail(anon) error = %v", err)
	}
	if anon.IsLiked != nil {
		t.Error("anonymous detail should omit is_liked")
	}

	if _, err := s.query.GetPlaceDetail(ctx, "nope", 0); !errors.Is(err, ErrPlaceNotFound) {
		t.Errorf("GetPlaceDetail(missing) error = %v, want ErrPlaceNotFound", err)
	}
}

type fakeSearcher struct {
	ids       []uint64
	total     int64
	err       error
	themeCode int
}

func (f *fakeSearcher) Search(_ context.Context, _ string, themeCode int, _, _ int) ([]uint64, int64, error) {
	f.themeCode = themeCode
	return f.ids, f.total, f.err
}

func TestSearchPlaces(t *testing.T) {
	db := newTestDB(t)
	searcher := &fakeSearcher{}
	s := newServices(t, db, searcher)
	q := seedQueryFixture(t, s)
	ctx := context.Background()

	searcher.ids = []uint64{q.places["1002"].ID, 9999, q.places["1001"].ID}
	searcher.total = 3

	page, err := s.query.SearchPlaces(ctx, &dto.PlaceSearchDTO{Keyword: "궁", Theme: "관광지"})
	if err != nil {
		t.Fatalf("SearchPlaces() error = %v", err)
	}
	if got := contentIDs(page); !reflect.DeepEqual(got, []string{"1002", "1001"}) {
		t.Errorf("SearchPlaces() = %v, want relevance order [1002 1001]", got)
	}
	if searcher.themeCode != 12 {
		t.Errorf("theme code passed = %d, want 12", searcher.themeCode)
	}

	searcher.err = errors.New("index unavailable")
	page, err = s.query.SearchPlaces(ctx, &dto.PlaceSearchDTO{Keyword: "궁"})
	if err != nil {
		t.Fatalf("SearchPlaces() fallback error = %v", err)
	}
	if page.TotalCount != 0 || len(page.Results) != 0 {
		t.Errorf("fallback page = %+v, want empty", page)
	}

	if _, err := s.query.SearchPlaces(ctx, &dto.PlaceSearchDTO{Keyword: "궁", Theme: "없는테마"}); !errors.Is(err, ErrThemeInvalid) {
		t.Errorf("unknown theme error = %v, want ErrThemeInvalid", err)
	}
}

func TestGetLikedPlaces(t *testing.T) {
	db := newTestDB(t)
	s := newServices(t, db, nil)
	q := seedQueryFixture(t, s)
	ctx := context.Background()

	user := q.users[3].ID
	for _, id := range []string{"1003", "1004"} {
		if _, err := s.stats.ToggleLike(ctx, user, q.places[id].ID); err != nil {
			t.Fatalf("ToggleLike() error = %v", err)
		}
	}

	page, err := s.query.GetLikedPlaces(ctx, user, 0, 10)
	if err != nil {
		t.Fatalf("GetLikedPlaces() error = %v", err)
	}
	if page.TotalCount != 2 || len(page.Results) != 2 {
		t.Fatalf("liked page = %+v, want 2 results", page)
	}
	for _, p := range page.Results {
		if p.IsLiked == nil || !*p.IsLiked {
			t.Errorf("place %s should be marked liked", p.ContentID)
		}
	}
}
