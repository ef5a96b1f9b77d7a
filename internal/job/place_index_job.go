package job

import (
	"Tripmate/internal/pkg/consts"
	"Tripmate/internal/pkg/es"
	"Tripmate/internal/pkg/metrics"
	"Tripmate/internal/pkg/util"
	"Tripmate/internal/repository"
	"context"
	"fmt"
	log "log/slog"
)

const placeIndexBatch = 200

type PlaceIndexJob struct {
	store     DirtyStore
	placeRepo repository.PlaceRepo
	index     es.PlaceRepo
}

func NewPlaceIndexJob(store DirtyStore, placeRepo repository.PlaceRepo, index es.PlaceRepo) *PlaceIndexJob {
	return &PlaceIndexJob{
		store:     store,
		placeRepo: placeRepo,
		index:     index,
	}
}

func (s *PlaceIndexJob) Run() {
	ctx := jobContext("place-index")
	err := s.Sync(ctx)
	if err != nil {
		log.ErrorContext(ctx, "place index job failed", "err", err)
	}
	metrics.RecordJobRun("place_index", err)
}

// Sync 将 dirty 集合中的景点写入搜索索引，已删除的景点同时删除文档，失败的 ID 放回 dirty
func (s *PlaceIndexJob) Sync(ctx context.Context) error {
	processingKey := consts.PlaceDirtyKey + ":processing"

	// 上次中断遗留的 processing 集合优先处理
	members, err := s.store.GetSet(ctx, processingKey)
	if err != nil {
		return err
	}
	if len(members) == 0 {
		if err = s.store.Rename(ctx, consts.PlaceDirtyKey, processingKey); err != nil {
			if isNoSuchKey(err) {
				return nil
			}
			return err
		}
		if members, err = s.store.GetSet(ctx, processingKey); err != nil {
			return err
		}
	}

	ids := util.ParseIDs(members)
	var failed []interface{}
	for start := 0; start < len(ids); start += placeIndexBatch {
		end := min(start+placeIndexBatch, len(ids))
		failed = append(failed, s.indexBatch(ctx, ids[start:end])...)
	}

	if len(failed) > 0 {
		if err = s.store.SAdd(ctx, consts.PlaceDirtyKey, failed...); err != nil {
			return err
		}
	}
	if err = s.store.DeleteKey(ctx, processingKey); err != nil {
		return err
	}

	log.InfoContext(ctx, "sync place index finished", "place_count", len(ids), "failed_count", len(failed))
	if len(failed) > 0 {
		return fmt.Errorf("%d places failed to sync", len(failed))
	}
	return nil
}

func (s *PlaceIndexJob) indexBatch(ctx context.Context, ids []uint64) []interface{} {
	var failed []interface{}

	places, err := s.placeRepo.GetByIDs(ctx, ids)
	if err != nil {
		log.ErrorContext(ctx, "load places for index error", "err", err)
		for _, id := range ids {
			failed = append(failed, id)
		}
		return failed
	}

	found := make(map[uint64]struct{}, len(places))
	for _, place := range places {
		found[place.ID] = struct{}{}
		if err = s.index.IndexPlace(ctx, es.NewPlaceES(place)); err != nil {
			log.ErrorContext(ctx, "index place error", "place_id", place.ID, "err", err)
			failed = append(failed, place.ID)
		}
	}

	for _, id := range ids {
		if _, ok := found[id]; ok {
			continue
		}
		if err = s.index.DeletePlace(ctx, id); err != nil {
			log.ErrorContext(ctx, "delete place document error", "place_id", id, "err", err)
			failed = append(failed, id)
		}
	}
	return failed
}
