package job

import (
	"Tripmate/internal/pkg/metrics"
	"Tripmate/internal/repository"
	"Tripmate/internal/service"
	"context"
	"fmt"
	log "log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

const metricConcurrency = 8

// PlaceMetricJob 每日将所有景点的统计写入快照表
type PlaceMetricJob struct {
	placeRepo      repository.PlaceRepo
	placeMetricSvc service.PlaceMetricService
	batchSize      int
}

func NewPlaceMetricJob(placeRepo repository.PlaceRepo, placeMetricSvc service.PlaceMetricService) *PlaceMetricJob {
	return &PlaceMetricJob{
		placeRepo:      placeRepo,
		placeMetricSvc: placeMetricSvc,
		batchSize:      defaultBatchSize,
	}
}

func (s *PlaceMetricJob) Run() {
	ctx := jobContext("place-metric")
	err := s.Snapshot(ctx)
	if err != nil {
		log.ErrorContext(ctx, "place metric job failed", "err", err)
	}
	metrics.RecordJobRun("place_metric", err)
}

func (s *PlaceMetricJob) Snapshot(ctx context.Context) error {
	var afterID uint64
	var total int
	var failed atomic.Int64
	for {
		ids, err := s.placeRepo.ListIDs(ctx, afterID, s.batchSize)
		if err != nil {
			return err
		}

		g, gCtx := errgroup.WithContext(ctx)
		g.SetLimit(metricConcurrency)
		for _, id := range ids {
			g.Go(func() error {
				if err := s.placeMetricSvc.SyncPlaceMetric(gCtx, id); err != nil {
					log.ErrorContext(gCtx, "sync place metric error", "place_id", id, "err", err)
					failed.Add(1)
				}
				return nil
			})
		}
		_ = g.Wait()

		total += len(ids)
		if len(ids) < s.batchSize {
			break
		}
		afterID = ids[len(ids)-1]
	}

	log.InfoContext(ctx, "place metric snapshot finished", "place_count", total, "failed_count", failed.Load())
	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d places failed to snapshot", n)
	}
	return nil
}
