package api

import (
	"Tripmate/internal/api/dto"
	"Tripmate/internal/api/handler"
	"Tripmate/internal/model"
	"Tripmate/internal/pkg/database"
	"Tripmate/internal/repository"
	"Tripmate/internal/service"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type memCache struct {
	mu     sync.Mutex
	values map[string]string
}

func (c *memCache) GetValue(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[key], nil
}

func (c *memCache) SetWithExpiration(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = fmt.Sprint(value)
	return nil
}

func (c *memCache) DeleteKey(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.values, k)
	}
	return nil
}

func (c *memCache) SAdd(context.Context, string, ...interface{}) error {
	return nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err = database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err = database.SeedThemes(db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cache := &memCache{values: make(map[string]string)}
	transactor := repository.NewTransactor(db)
	placeRepo := repository.NewPlaceRepo(db)
	likeRepo := repository.NewLikeRepo(db)
	reviewRepo := repository.NewReviewRepo(db)
	taxonomy := service.NewTaxonomyService(repository.NewTaxonomyRepo(db), cache)
	stats := service.NewStatsService(transactor, placeRepo, likeRepo, reviewRepo, cache)
	reviews := service.NewReviewService(transactor, reviewRepo, placeRepo, stats, cache)
	query := service.NewPlaceQueryService(placeRepo, likeRepo, taxonomy, nil)
	metric := service.NewPlaceMetricService(repository.NewPlaceMetricRepo(db), placeRepo, cache)
	users := service.NewUserService(repository.NewUserRepo(db), cache)

	r := SetupRouter(&HandlersGroup{
		PlaceHandler:       handler.NewPlaceHandler(query, reviews, metric),
		PlaceActionHandler: handler.NewPlaceActionHandler(stats),
		ReviewHandler:      handler.NewReviewHandler(reviews),
		ScoreHandler:       handler.NewScoreHandler(service.NewScoreService(transactor, placeRepo, cache)),
		TaxonomyHandler:    handler.NewTaxonomyHandler(taxonomy),
		UserHandler:        handler.NewUserHandler(users, query, reviews),
		TokenChecker:       users,
	})
	return r, db
}

func request(r *gin.Engine, method, target string) (*httptest.ResponseRecorder, dto.Response) {
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var body dto.Response
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestRouter_PlaceRoutes(t *testing.T) {
	r, db := newTestRouter(t)

	region := &model.Region{Code: 1, Name: "서울"}
	if err := db.Create(region).Error; err != nil {
		t.Fatalf("create region: %v", err)
	}
	rid := region.ID
	for i, score := range []float64{10, 30, 20} {
		p := &model.Place{
			ContentID:     fmt.Sprintf("c%d", i+1),
			ContentTypeID: 12,
			Title:         fmt.Sprintf("place %d", i+1),
			RegionID:      &rid,
			Score:         score,
		}
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("create place: %v", err)
		}
	}

	q := url.Values{"theme": {"관광지"}, "region": {"서울"}, "size": {"2"}}
	w, body := request(r, http.MethodGet, "/api/places?"+q.Encode())
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/places status = %d, body = %s", w.Code, w.Body.String())
	}
	raw, _ := json.Marshal(body.Data)
	var page dto.PlacePageDTO
	if err := json.Unmarshal(raw, &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if page.TotalCount != 3 || len(page.Results) != 2 || page.Page != 0 {
		t.Fatalf("page = %+v, want total 3, 2 results, page 0", page)
	}
	if page.Results[0].ContentID != "c2" {
		t.Errorf("first result = %s, want c2 (highest score)", page.Results[0].ContentID)
	}

	if w, _ = request(r, http.MethodGet, "/api/places?"+url.Values{"theme": {"없는테마"}}.Encode()); w.Code != http.StatusBadRequest {
		t.Errorf("unknown theme status = %d, want 400", w.Code)
	}
	if w, _ = request(r, http.MethodGet, "/api/places"); w.Code != http.StatusBadRequest {
		t.Errorf("missing theme status = %d, want 400", w.Code)
	}
	if w, _ = request(r, http.MethodGet, "/api/places/nope"); w.Code != http.StatusNotFound {
		t.Errorf("missing detail status = %d, want 404", w.Code)
	}
	if w, _ = request(r, http.MethodGet, "/api/places/c1"); w.Code != http.StatusOK {
		t.Errorf("detail status = %d, want 200, body = %s", w.Code, w.Body.String())
	}
	if w, _ = request(r, http.MethodPost, "/api/place/action/views/c1"); w.Code != http.StatusOK {
		t.Errorf("view status = %d, want 200, body = %s", w.Code, w.Body.String())
	}
}

func TestRouter_AuthAndMisc(t *testing.T) {
	r, _ := newTestRouter(t)

	cases := []struct {
		method, target string
		want           int
	}{
		{http.MethodGet, "/api/ping", http.StatusOK},
		{http.MethodGet, "/api/themes", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodPost, "/api/place/action/likes/1", http.StatusUnauthorized},
		{http.MethodPost, "/api/reviews", http.StatusUnauthorized},
		{http.MethodPost, "/api/admin/places/1/score", http.StatusUnauthorized},
		{http.MethodGet, "/api/user/info", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		if w, _ := request(r, tc.method, tc.target); w.Code != tc.want {
			t.Errorf("%s %s status = %d, want %d", tc.method, tc.target, w.Code, tc.want)
		}
	}
}
