package service

import (
	"Tripmate/internal/model"
	"Tripmate/internal/pkg/database"
	"Tripmate/internal/repository"
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:service_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err = database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err = database.SeedThemes(db); err != nil {
		t.Fatalf("seed themes: %v", err)
	}
	return db
}

type fakeCache struct {
	mu     sync.Mutex
	values map[string]string
	sets   map[string]map[string]struct{}
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		values: make(map[string]string),
		sets:   make(map[string]map[string]struct{}),
	}
}

func (c *fakeCache) GetValue(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[key], nil
}

func (c *fakeCache) SetWithExpiration(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = fmt.Sprint(value)
	return nil
}

func (c *fakeCache) DeleteKey(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.values, k)
		delete(c.sets, k)
	}
	return nil
}

func (c *fakeCache) SAdd(_ context.Context, key string, members ...interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	set, ok := c.sets[key]
	if !ok {
		set = make(map[string]struct{})
		c.sets[key] = set
	}
	for _, m := range members {
		set[fmt.Sprint(m)] = struct{}{}
	}
	return nil
}

func (c *fakeCache) isMember(key string, member interface{}) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.sets[key][fmt.Sprint(member)]
	return ok
}

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.values[key]
	return ok
}

// fixture 两个地区、三个区县、一组分类与若干景点
type fixture struct {
	seoul, busan          *model.Region
	gangnam, jongno, haeu *model.Ward
	users                 []*model.User
}

func seedFixture(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()
	f := &fixture{
		seoul: &model.Region{Code: 1, Name: "서울"},
		busan: &model.Region{Code: 6, Name: "부산"},
	}
	mustCreate(t, db, f.seoul)
	mustCreate(t, db, f.busan)

	f.gangnam = &model.Ward{RegionID: f.seoul.ID, Code: 1, Name: "강남구"}
	f.jongno = &model.Ward{RegionID: f.seoul.ID, Code: 23, Name: "종로구"}
	f.haeu = &model.Ward{RegionID: f.busan.ID, Code: 16, Name: "해운대구"}
	mustCreate(t, db, f.gangnam)
	mustCreate(t, db, f.jongno)
	mustCreate(t, db, f.haeu)

	mustCreate(t, db, &model.Category{
		Cat1Code: "A01", Cat1Name: "자연",
		Cat2Code: "A0101", Cat2Name: "자연관광지",
		Cat3Code: "A01010100", Cat3Name: "국립공원",
	})
	mustCreate(t, db, &model.Category{
		Cat1Code: "A02", Cat1Name: "인문(문화/예술/역사)",
		Cat2Code: "A0201", Cat2Name: "역사관광지",
		Cat3Code: "A02010100", Cat3Name: "고궁",
	})

	for i := 1; i <= 12; i++ {
		u := &model.User{Username: fmt.Sprintf("user%02d", i), Password: "x", Nickname: fmt.Sprintf("nick%02d", i), Role: model.RoleUser}
		mustCreate(t, db, u)
		f.users = append(f.users, u)
	}
	return f
}

type placeOpt func(p *model.Place)

func inWard(region *model.Region, ward *model.Ward) placeOpt {
	return func(p *model.Place) {
		rid := region.ID
		p.RegionID = &rid
		if ward != nil {
			wid := ward.ID
			p.WardID = &wid
		}
	}
}

func withStats(view, like, review int64, rating, score float64) placeOpt {
	return func(p *model.Place) {
		p.ViewCount, p.LikeCount, p.ReviewCount, p.Rating, p.Score = view, like, review, rating, score
	}
}

func withCategory(cat1, cat2, cat3 string) placeOpt {
	return func(p *model.Place) {
		p.Cat1, p.Cat2, p.Cat3 = cat1, cat2, cat3
	}
}

func createPlace(t *testing.T, db *gorm.DB, contentID string, theme int, opts ...placeOpt) *model.Place {
	t.Helper()
	p := &model.Place{ContentID: contentID, ContentTypeID: theme, Title: "place " + contentID}
	for _, opt := range opts {
		opt(p)
	}
	mustCreate(t, db, p)
	return p
}

func mustCreate(t *testing.T, db *gorm.DB, v interface{}) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("create %T: %v", v, err)
	}
}

func reloadPlace(t *testing.T, db *gorm.DB, id uint64) *model.Place {
	t.Helper()
	var p model.Place
	if err := db.First(&p, id).Error; err != nil {
		t.Fatalf("reload place %d: %v", id, err)
	}
	return &p
}

type services struct {
	db       *gorm.DB
	cache    *fakeCache
	score    ScoreService
	stats    StatsService
	reviews  ReviewService
	taxonomy TaxonomyService
	query    PlaceQueryService
	metric   *placeMetricServiceImpl
	users    UserService
}

func newServices(t *testing.T, db *gorm.DB, searcher PlaceSearcher) *services {
	t.Helper()
	cache := newFakeCache()
	transactor := repository.NewTransactor(db)
	placeRepo := repository.NewPlaceRepo(db)
	likeRepo := repository.NewLikeRepo(db)
	reviewRepo := repository.NewReviewRepo(db)
	taxonomy := NewTaxonomyService(repository.NewTaxonomyRepo(db), cache)
	stats := NewStatsService(transactor, placeRepo, likeRepo, reviewRepo, cache)
	return &services{
		db:       db,
		cache:    cache,
		score:    NewScoreService(transactor, placeRepo, cache),
		stats:    stats,
		reviews:  NewReviewService(transactor, reviewRepo, placeRepo, stats, cache),
		taxonomy: taxonomy,
		query:    NewPlaceQueryService(placeRepo, likeRepo, taxonomy, searcher),
		metric:   NewPlaceMetricService(repository.NewPlaceMetricRepo(db), placeRepo, cache).(*placeMetricServiceImpl),
		users:    NewUserService(repository.NewUserRepo(db), cache),
	}
}
