package kafka

import (
	"Tripmate/internal/api/config"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理 Kafka 消费者
type ConsumerManager struct {
	topic         string
	placeConsumer sarama.ConsumerGroup
	placeHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(cfg *config.Config, placeHandler sarama.ConsumerGroupHandler) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	placeConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaPlaceConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &ConsumerManager{
		topic:         cfg.KafkaPlaceConsumer.Topic,
		placeConsumer: placeConsumer,
		placeHandler:  placeHandler,
	}, nil
}

// Start 启动消费者，阻塞直到 ctx 结束
func (m *ConsumerManager) Start(ctx context.Context) error {
	go func() {
		for err := range m.placeConsumer.Errors() {
			log.Error("place consumer error", "err", err)
		}
	}()

	go func() {
		log.Info("Place sync consumer started", "topic", m.topic)
		for {
			if err := m.placeConsumer.Consume(ctx, []string{m.topic}, m.placeHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.placeConsumer.Close(); err != nil {
		log.Error("Failed to close place consumer", "err", err)
	}
	return nil
}
