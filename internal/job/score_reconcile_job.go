package job

import (
	"Tripmate/internal/pkg/consts"
	"Tripmate/internal/pkg/metrics"
	"Tripmate/internal/repository"
	"Tripmate/internal/service"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const reconcileLockTTL = 2 * time.Hour

// ScoreReconcileJob 从子表重算所有景点的点赞数、评论数、平均分与分数，修正漂移
type ScoreReconcileJob struct {
	locker    Locker
	placeRepo repository.PlaceRepo
	statsSvc  service.StatsService
	batchSize int
}

func NewScoreReconcileJob(locker Locker, placeRepo repository.PlaceRepo, statsSvc service.StatsService) *ScoreReconcileJob {
	return &ScoreReconcileJob{
		locker:    locker,
		placeRepo: placeRepo,
		statsSvc:  statsSvc,
		batchSize: defaultBatchSize,
	}
}

func (s *ScoreReconcileJob) Run() {
	ctx := jobContext("score-reconcile")
	err := s.Reconcile(ctx)
	if err != nil {
		log.ErrorContext(ctx, "score reconcile job failed", "err", err)
	}
	metrics.RecordJobRun("score_reconcile", err)
}

func (s *ScoreReconcileJob) Reconcile(ctx context.Context) error {
	token := uuid.NewString()
	ok, err := s.locker.TryLock(ctx, consts.ScoreReconcileLock, token, reconcileLockTTL, 1)
	if err != nil {
		return err
	}
	if !ok {
		log.InfoContext(ctx, "score reconcile running elsewhere, skip")
		return nil
	}
	defer s.locker.UnLock(ctx, consts.ScoreReconcileLock, token)

	var afterID uint64
	var total, changed, failed int
	for {
		ids, err := s.placeRepo.ListIDs(ctx, afterID, s.batchSize)
		if err != nil {
			return err
		}
		for _, id := range ids {
			total++
			c, err := s.statsSvc.Reconcile(ctx, id)
			if err != nil {
				log.ErrorContext(ctx, "reconcile place error", "place_id", id, "err", err)
				failed++
				continue
			}
			if c {
				changed++
			}
		}
		if len(ids) < s.batchSize {
			break
		}
		afterID = ids[len(ids)-1]
	}

	log.InfoContext(ctx, "score reconcile finished", "place_count", total, "changed_count", changed, "failed_count", failed)
	if failed > 0 {
		return fmt.Errorf("%d places failed to reconcile", failed)
	}
	return nil
}
