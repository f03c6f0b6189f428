package export

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"trendscout/types"
)

// KafkaSink publishes each video of a run as one message, keyed by video
// ID so replays of the same video land on the same partition.
type KafkaSink struct {
	producer sarama.SyncProducer
	topic    string
}

// NewKafkaSink connects a synchronous producer to the given brokers.
func NewKafkaSink(brokers []string, topic string) (*KafkaSink, error) {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V3_6_0_0
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return &KafkaSink{producer: producer, topic: topic}, nil
}

// NewKafkaSinkWithProducer injects a producer, for tests.
func NewKafkaSinkWithProducer(producer sarama.SyncProducer, topic string) *KafkaSink {
	return &KafkaSink{producer: producer, topic: topic}
}

func (s *KafkaSink) Name() string { return "kafka" }

func (s *KafkaSink) Export(_ context.Context, result *types.ScrapeResult) error {
	for _, v := range result.Videos {
		payload, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal video %s: %w", v.ID, err)
		}
		msg := &sarama.ProducerMessage{
			Topic: s.topic,
			Key:   sarama.StringEncoder(v.ID),
			Value: sarama.ByteEncoder(payload),
		}
		if _, _, err := s.producer.SendMessage(msg); err != nil {
			return fmt.Errorf("failed to publish video %s: %w", v.ID, err)
		}
	}
	return nil
}

// Close shuts the underlying producer down.
func (s *KafkaSink) Close() error {
	return s.producer.Close()
}
