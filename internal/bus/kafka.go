package bus

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"

	"github.com/partsearch/parts-search/internal/config"
	apperrors "github.com/partsearch/parts-search/internal/pkg/errors"
	"github.com/partsearch/parts-search/internal/pkg/logger"
)

// KafkaPublisher sends events to Kafka topics as JSON. This service only
// produces; consumers live in downstream analytics.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	log      *logger.Logger
}

// NewKafkaPublisher connects a synchronous producer to the configured
// brokers.
func NewKafkaPublisher(cfg config.BusConfig, log *logger.Logger) (*KafkaPublisher, error) {
	saramaCfg := sarama.NewConfig()
	saramaCfg.ClientID = cfg.ClientID
	saramaCfg.Producer.Return.Successes = true
	saramaCfg.Producer.RequiredAcks = sarama.WaitForLocal

	producer, err := sarama.NewSyncProducer(cfg.KafkaBrokerList(), saramaCfg)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeUnavailable, "connecting kafka producer", err)
	}
	return &KafkaPublisher{
		producer: producer,
		log:      log.WithComponent("kafka-bus"),
	}, nil
}

func (k *KafkaPublisher) Publish(_ context.Context, topic string, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, "encoding event", err)
	}
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(event.ID),
		Value: sarama.ByteEncoder(payload),
	}
	if _, _, err := k.producer.SendMessage(msg); err != nil {
		k.log.WithError(err).Warn("event publish failed", "topic", topic)
		return apperrors.Wrap(apperrors.CodeUnavailable, "publishing event", err)
	}
	return nil
}

func (k *KafkaPublisher) Close() error {
	return k.producer.Close()
}
