package kafka

import (
	"Tripmate/internal/pkg/consts"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// DirtyMarker 记录待同步的景点
type DirtyMarker interface {
	SAdd(ctx context.Context, key string, members ...interface{}) error
}

// PlaceIndexDeleter 删除搜索索引中的景点文档
type PlaceIndexDeleter interface {
	DeletePlace(ctx context.Context, id uint64) error
}

// TaxonomyEvictor 清理分类表缓存
type TaxonomyEvictor interface {
	EvictTable(ctx context.Context, table string, names ...string) error
}

// PlaceSyncHandler 消费 places 及分类表的 binlog：
// 景点新增修改标记 dirty 交给索引任务，删除直接删文档；分类表变更清理缓存
type PlaceSyncHandler struct {
	dirty    DirtyMarker
	index    PlaceIndexDeleter
	taxonomy TaxonomyEvictor
}

func NewPlaceSyncHandler(dirty DirtyMarker, index PlaceIndexDeleter, taxonomy TaxonomyEvictor) *PlaceSyncHandler {
	return &PlaceSyncHandler{
		dirty:    dirty,
		index:    index,
		taxonomy: taxonomy,
	}
}

func (s *PlaceSyncHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("place sync consumer setup")
	return nil
}

func (s *PlaceSyncHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("place sync consumer cleanup")
	return nil
}

func (s *PlaceSyncHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	return pullMessageBatch(session, claim, s.logic)
}

func (s *PlaceSyncHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := DecodeCanalMessage(msg)
	if err != nil || canalMsg == nil {
		return err
	}

	switch canalMsg.Table {
	case "places":
		return s.syncPlaces(ctx, canalMsg)
	case "themes", "regions", "wards":
		return s.taxonomy.EvictTable(ctx, canalMsg.Table, canalMsg.Strings("name")...)
	case "categories":
		return s.taxonomy.EvictTable(ctx, canalMsg.Table, canalMsg.Strings("cat1_name", "cat2_name", "cat3_name")...)
	default:
		return nil
	}
}

func (s *PlaceSyncHandler) syncPlaces(ctx context.Context, canalMsg *CanalMessage) error {
	ids := canalMsg.IDs()
	if len(ids) == 0 {
		return nil
	}

	switch canalMsg.Type {
	case canalInsert, canalUpdate:
		members := make([]interface{}, len(ids))
		for i, id := range ids {
			members[i] = id
		}
		return s.dirty.SAdd(ctx, consts.PlaceDirtyKey, members...)
	case canalDelete:
		if s.index == nil {
			return nil
		}
		for _, id := range ids {
			if err := s.index.DeletePlace(ctx, id); err != nil {
				return err
			}
		}
		log.InfoContext(ctx, "place documents deleted", "place_ids", ids)
	}
	return nil
}
