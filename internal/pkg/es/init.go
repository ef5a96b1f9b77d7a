package es

import (
	"Tripmate/internal/api/config"
	"Tripmate/internal/pkg/logger"
	"context"
	log "log/slog"

	"github.com/elastic/go-elasticsearch/v8"
)

var Client *elasticsearch.TypedClient

var PlaceIndex = "places"

const (
	NotFoundCode = 404
	ConflictCode = 409
)

// InitClient 初始化 Elasticsearch 客户端，地址为空时不启用搜索
func InitClient() error {
	elasticCfg := config.Cfg.Elastic
	if elasticCfg.Address == "" {
		log.Warn("Elasticsearch address empty, keyword search disabled")
		return nil
	}
	if elasticCfg.Indices.PlaceIndex != "" {
		PlaceIndex = elasticCfg.Indices.PlaceIndex
	}

	cfg := elasticsearch.Config{
		Addresses: []string{elasticCfg.Address},
		Username:  elasticCfg.Username,
		Password:  elasticCfg.Password,
		Transport: logger.NewESTransport(nil),
	}

	client, err := elasticsearch.NewTypedClient(cfg)
	if err != nil {
		log.Error("Cannot Connect to Elasticsearch", "err", err)
		return err
	}

	info, err := client.Info().Do(context.Background())
	if err != nil {
		log.Error("Cannot Connect to Elasticsearch", "err", err)
		return err
	}

	Client = client
	log.Info("Connected to Elasticsearch", "version", info.Version.Int, "index", PlaceIndex)
	return nil
}
