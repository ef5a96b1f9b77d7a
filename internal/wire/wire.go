package wire

import (
	"Tripmate/internal/api"
	"Tripmate/internal/api/config"
	"Tripmate/internal/api/handler"
	"Tripmate/internal/job"
	"Tripmate/internal/pkg/cron"
	"Tripmate/internal/pkg/es"
	"Tripmate/internal/pkg/kafka"
	"Tripmate/internal/pkg/redis"
	"Tripmate/internal/pkg/tourapi"
	"Tripmate/internal/repository"
	"Tripmate/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gin-gonic/gin"
	robfigcron "github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
}

func BuildApplication(db *gorm.DB, esClient *elasticsearch.TypedClient, cfg *config.Config) (*ApplicationContainer, error) {
	store := redis.NewStore()

	transactor := repository.NewTransactor(db)
	placeRepo := repository.NewPlaceRepo(db)
	taxonomyRepo := repository.NewTaxonomyRepo(db)
	likeRepo := repository.NewLikeRepo(db)
	reviewRepo := repository.NewReviewRepo(db)
	userRepo := repository.NewUserRepo(db)
	placeMetricRepo := repository.NewPlaceMetricRepo(db)

	// 搜索索引未启用时关键词搜索返回空页
	var placeESRepo es.PlaceRepo
	var searcher service.PlaceSearcher
	if esClient != nil {
		placeESRepo = es.NewPlaceRepo(esClient, es.PlaceIndex)
		searcher = placeESRepo
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := placeESRepo.EnsureIndex(ctx); err != nil {
			log.Warn("ensure place index failed", "index", es.PlaceIndex, "err", err)
		}
		cancel()
	}

	taxonomyService := service.NewTaxonomyService(taxonomyRepo, store)
	scoreService := service.NewScoreService(transactor, placeRepo, store)
	statsService := service.NewStatsService(transactor, placeRepo, likeRepo, reviewRepo, store)
	reviewService := service.NewReviewService(transactor, reviewRepo, placeRepo, statsService, store)
	placeQueryService := service.NewPlaceQueryService(placeRepo, likeRepo, taxonomyService, searcher)
	placeMetricService := service.NewPlaceMetricService(placeMetricRepo, placeRepo, store)
	userService := service.NewUserService(userRepo, store)

	handlers := &api.HandlersGroup{
		PlaceHandler:       handler.NewPlaceHandler(placeQueryService, reviewService, placeMetricService),
		PlaceActionHandler: handler.NewPlaceActionHandler(statsService),
		ReviewHandler:      handler.NewReviewHandler(reviewService),
		ScoreHandler:       handler.NewScoreHandler(scoreService),
		TaxonomyHandler:    handler.NewTaxonomyHandler(taxonomyService),
		UserHandler:        handler.NewUserHandler(userService, placeQueryService, reviewService),
		TokenChecker:       userService,
		QueryTimeout:       time.Duration(cfg.Server.QueryTimeoutMs) * time.Millisecond,
	}
	router := api.SetupRouter(handlers)

	var indexJob robfigcron.Job
	if placeESRepo != nil {
		indexJob = job.NewPlaceIndexJob(store, placeRepo, placeESRepo)
	}
	var importJob robfigcron.Job
	if cfg.TourAPI.Enabled {
		importJob = job.NewPlaceImportJob(store, tourapi.NewClient(cfg.TourAPI), taxonomyRepo, placeRepo)
	}
	cronMgr := cron.NewCronManager(cron.DefaultJobs(
		cfg.Cron,
		indexJob,
		job.NewScoreReconcileJob(store, placeRepo, statsService),
		job.NewPlaceMetricJob(placeRepo, placeMetricService),
		importJob,
	)...)

	var kafkaMgr *kafka.ConsumerManager
	if len(cfg.Kafka.Brokers) > 0 && cfg.KafkaPlaceConsumer.Topic != "" {
		var deleter kafka.PlaceIndexDeleter
		if placeESRepo != nil {
			deleter = placeESRepo
		}
		var err error
		kafkaMgr, err = kafka.NewConsumerManager(cfg, kafka.NewPlaceSyncHandler(store, deleter, taxonomyService))
		if err != nil {
			return nil, err
		}
	}

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
